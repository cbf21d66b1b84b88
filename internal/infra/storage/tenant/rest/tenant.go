// Package rest implements the tenant repository over the persistence
// service's REST interface.
package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jovz/residence-hub/internal/domain/room"
	"github.com/jovz/residence-hub/internal/domain/tenant"
	"github.com/jovz/residence-hub/internal/infra/storage"
	"github.com/jovz/residence-hub/internal/infra/storage/upstream"
)

var _ tenant.Repository = (*tenantStore)(nil)

const collectionPath = "/tenants"

// tenantRecord is the wire shape: {id, name, room, contact}. No envelope,
// no pagination; the full collection arrives in one response.
type tenantRecord struct {
	ID      int64               `json:"id"`
	Name    string              `json:"name"`
	Room    upstream.FlexString `json:"room"`
	Contact string              `json:"contact"`
}

func (rec tenantRecord) toDomain() tenant.Tenant {
	return tenant.Tenant{
		ID:      rec.ID,
		Name:    rec.Name,
		Room:    room.CanonicalNumber(rec.Room.String()),
		Contact: rec.Contact,
	}
}

func toRecord(t *tenant.Tenant) tenantRecord {
	return tenantRecord{
		ID:      t.ID,
		Name:    t.Name,
		Room:    upstream.FlexString(room.CanonicalNumber(t.Room)),
		Contact: t.Contact,
	}
}

type tenantStore struct {
	client *resty.Client
	tracer trace.Tracer
}

// NewTenantStore creates a tenant.Repository backed by the persistence
// service.
func NewTenantStore(client *resty.Client, tracer trace.Tracer) tenant.Repository {
	return &tenantStore{client: client, tracer: tracer}
}

// List fetches the full tenant collection. Room references are canonicalized
// at this boundary so every comparison upstream of here is
// representation-stable.
func (s *tenantStore) List(ctx context.Context) ([]tenant.Tenant, error) {
	var records []tenantRecord

	err := storage.ExecuteAndTrace(ctx, s.tracer, "tenantStore.List", nil,
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

	tenants := make([]tenant.Tenant, 0, len(records))
	for _, rec := range records {
		tenants = append(tenants, rec.toDomain())
	}
	return tenants, nil
}

func (s *tenantStore) Create(ctx context.Context, t *tenant.Tenant) (*tenant.Tenant, error) {
	var created tenantRecord

	err := storage.ExecuteAndTrace(ctx, s.tracer, "tenantStore.Create",
		[]attribute.KeyValue{attribute.String("tenant.room", t.Room)},
		func(ctx context.Context) error {
			resp, err := s.client.R().
				SetContext(ctx).
				SetBody(toRecord(t)).
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

func (s *tenantStore) Update(ctx context.Context, id int64, t *tenant.Tenant) (*tenant.Tenant, error) {
	path := fmt.Sprintf("%s/%d", collectionPath, id)
	var updated tenantRecord

	err := storage.ExecuteAndTrace(ctx, s.tracer, "tenantStore.Update",
		[]attribute.KeyValue{attribute.Int64("tenant.id", id)},
		func(ctx context.Context) error {
			resp, err := s.client.R().
				SetContext(ctx).
				SetBody(toRecord(t)).
				SetResult(&updated).
				Put(path)
			if resp != nil && resp.StatusCode() == http.StatusNotFound {
				return tenant.ErrTenantNotFound
			}
			return upstream.Check(resp, err, http.MethodPut, path)
		})
	if err != nil {
		return nil, err
	}

	result := updated.toDomain()
	return &result, nil
}

func (s *tenantStore) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("%s/%d", collectionPath, id)

	return storage.ExecuteAndTrace(ctx, s.tracer, "tenantStore.Delete",
		[]attribute.KeyValue{attribute.Int64("tenant.id", id)},
		func(ctx context.Context) error {
			resp, err := s.client.R().
				SetContext(ctx).
				Delete(path)
			if resp != nil && resp.StatusCode() == http.StatusNotFound {
				return tenant.ErrTenantNotFound
			}
			return upstream.Check(resp, err, http.MethodDelete, path)
		})
}
