// Package announcement provides CRUD over the notice board collection.
// Announcements have no relationships with rooms or tenants, so operations
// are plain passthroughs with no workflow around them.
package announcement

import (
	"context"
	"sort"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jovz/residence-hub/internal/domain/announcement"
	"github.com/jovz/residence-hub/pkg/common/logger"
	"github.com/jovz/residence-hub/pkg/common/timeutil"
)

// Service exposes announcement operations backed by the upstream collection.
type Service struct {
	repo   announcement.Repository
	clock  timeutil.Provider
	logger *logger.Logger
	tracer trace.Tracer
}

// NewService creates an announcement Service.
func NewService(repo announcement.Repository, clock timeutil.Provider, log *logger.Logger, tracer trace.Tracer) *Service {
	return &Service{repo: repo, clock: clock, logger: log, tracer: tracer}
}

// List returns all announcements, newest first.
func (s *Service) List(ctx context.Context) ([]announcement.Announcement, error) {
	ctx, span := s.tracer.Start(ctx, "announcement.list")
	defer span.End()

	items, err := s.repo.List(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PostedAt.After(items[j].PostedAt)
	})
	return items, nil
}

// Post validates and publishes a new announcement stamped with the current
// time.
func (s *Service) Post(ctx context.Context, title, body string) (*announcement.Announcement, error) {
	ctx, span := s.tracer.Start(ctx, "announcement.post",
		trace.WithAttributes(attribute.String("announcement.title", title)))
	defer span.End()

	a, err := announcement.New(title, body, s.clock.Now())
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, a)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.logger.Info(ctx, "announcement posted", "announcement_id", created.ID)
	return created, nil
}

// Edit rewrites an existing announcement's title and body. The original
// posting time is preserved.
func (s *Service) Edit(ctx context.Context, id int64, title, body string) (*announcement.Announcement, error) {
	ctx, span := s.tracer.Start(ctx, "announcement.edit",
		trace.WithAttributes(attribute.Int64("announcement.id", id)))
	defer span.End()

	existing, err := s.findByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	updated, err := announcement.New(title, body, existing.PostedAt)
	if err != nil {
		return nil, err
	}

	persisted, err := s.repo.Update(ctx, id, updated)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	s.logger.Info(ctx, "announcement edited", "announcement_id", id)
	return persisted, nil
}

// Remove deletes an announcement.
func (s *Service) Remove(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "announcement.remove",
		trace.WithAttributes(attribute.Int64("announcement.id", id)))
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		span.RecordError(err)
		return err
	}

	s.logger.Info(ctx, "announcement removed", "announcement_id", id)
	return nil
}

func (s *Service) findByID(ctx context.Context, id int64) (*announcement.Announcement, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, announcement.ErrAnnouncementNotFound
}
