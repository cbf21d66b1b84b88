// Package rest implements the announcement repository over the persistence
// service's REST interface.
package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jovz/residence-hub/internal/domain/announcement"
	"github.com/jovz/residence-hub/internal/infra/storage"
	"github.com/jovz/residence-hub/internal/infra/storage/upstream"
)

var _ announcement.Repository = (*announcementStore)(nil)

const collectionPath = "/announcements"

type announcementRecord struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Body     string    `json:"body"`
	PostedAt time.Time `json:"postedAt"`
}

func (rec announcementRecord) toDomain() announcement.Announcement {
	return announcement.Announcement{
		ID:       rec.ID,
		Title:    rec.Title,
		Body:     rec.Body,
		PostedAt: rec.PostedAt,
	}
}

func toRecord(a *announcement.Announcement) announcementRecord {
	return announcementRecord{
		ID:       a.ID,
		Title:    a.Title,
		Body:     a.Body,
		PostedAt: a.PostedAt,
	}
}

type announcementStore struct {
	client *resty.Client
	tracer trace.Tracer
}

// NewAnnouncementStore creates an announcement.Repository backed by the
// persistence service.
func NewAnnouncementStore(client *resty.Client, tracer trace.Tracer) announcement.Repository {
	return &announcementStore{client: client, tracer: tracer}
}

func (s *announcementStore) List(ctx context.Context) ([]announcement.Announcement, error) {
	var records []announcementRecord

	err := storage.ExecuteAndTrace(ctx, s.tracer, "announcementStore.List", nil,
		func(ctx context.Context) error {
			resp, err := s.client.R().
				SetContext(ctx).
				SetResult(&records).
				Get(collectionPath)
			return upstream.Check(resp, err, http.MethodGet, collectionPath)
		})
	if err != nil {
		return nil, err
	}

	items := make([]announcement.Announcement, 0, len(records))
	for _, rec := range records {
		items = append(items, rec.toDomain())
	}
	return items, nil
}

func (s *announcementStore) Create(ctx context.Context, a *announcement.Announcement) (*announcement.Announcement, error) {
	var created announcementRecord

	err := storage.ExecuteAndTrace(ctx, s.tracer, "announcementStore.Create", nil,
		func(ctx context.Context) error {
			resp, err := s.client.R().
				SetContext(ctx).
				SetBody(toRecord(a)).
				SetResult(&created).
				Post(collectionPath)
			return upstream.Check(resp, err, http.MethodPost, collectionPath)
		})
	if err != nil {
		return nil, err
	}

	result := created.toDomain()
	return &result, nil
}

func (s *announcementStore) Update(ctx context.Context, id int64, a *announcement.Announcement) (*announcement.Announcement, error) {
	path := fmt.Sprintf("%s/%d", collectionPath, id)
	var updated announcementRecord

	err := storage.ExecuteAndTrace(ctx, s.tracer, "announcementStore.Update",
		[]attribute.KeyValue{attribute.Int64("announcement.id", id)},
		func(ctx context.Context) error {
			resp, err := s.client.R().
				SetContext(ctx).
				SetBody(toRecord(a)).
				SetResult(&updated).
				Put(path)
			if resp != nil && resp.StatusCode() == http.StatusNotFound {
				return announcement.ErrAnnouncementNotFound
			}
			return upstream.Check(resp, err, http.MethodPut, path)
		})
	if err != nil {
		return nil, err
	}

	result := updated.toDomain()
	return &result, nil
}

func (s *announcementStore) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("%s/%d", collectionPath, id)

	return storage.ExecuteAndTrace(ctx, s.tracer, "announcementStore.Delete",
		[]attribute.KeyValue{attribute.Int64("announcement.id", id)},
		func(ctx context.Context) error {
			resp, err := s.client.R().
				SetContext(ctx).
				Delete(path)
			if resp != nil && resp.StatusCode() == http.StatusNotFound {
				return announcement.ErrAnnouncementNotFound
			}
			return upstream.Check(resp, err, http.MethodDelete, path)
		})
}
