// Package rest implements the room repository over the persistence service's
// REST interface.
package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/jovz/residence-hub/internal/domain/room"
	"github.com/jovz/residence-hub/internal/infra/storage"
	"github.com/jovz/residence-hub/internal/infra/storage/upstream"
)

var _ room.Repository = (*roomStore)(nil)

const collectionPath = "/rooms"

// roomRecord is the wire shape: {id, roomNumber, floor, rate, status}.
type roomRecord struct {
	ID         int64               `json:"id"`
	RoomNumber upstream.FlexString `json:"roomNumber"`
	Floor      int                 `json:"floor"`
	Rate       float64             `json:"rate"`
	Status     string              `json:"status"`
}

func (rec roomRecord) toDomain() room.Room {
	status := room.Status(rec.Status)
	if status != room.StatusOccupied {
		// Anything the service has not explicitly flagged occupied reads as
		// vacant, including records predating the status column.
		status = room.StatusVacant
	}
	return room.Room{
		ID:         rec.ID,
		RoomNumber: room.CanonicalNumber(rec.RoomNumber.String()),
		Floor:      rec.Floor,
		Rate:       rec.Rate,
		Status:     status,
	}
}

func toRecord(r *room.Room) roomRecord {
	return roomRecord{
		ID:         r.ID,
		RoomNumber: upstream.FlexString(room.CanonicalNumber(r.RoomNumber)),
		Floor:      r.Floor,
		Rate:       r.Rate,
		Status:     string(r.Status),
	}
}

type roomStore struct {
	client *resty.Client
	tracer trace.Tracer
}

// NewRoomStore creates a room.Repository backed by the persistence service.
func NewRoomStore(client *resty.Client, tracer trace.Tracer) room.Repository {
	return &roomStore{client: client, tracer: tracer}
}

func (s *roomStore) List(ctx context.Context) ([]room.Room, error) {
	var records []roomRecord

	err := storage.ExecuteAndTrace(ctx, s.tracer, "roomStore.List", nil,
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

	rooms := make([]room.Room, 0, len(records))
	for _, rec := range records {
		rooms = append(rooms, rec.toDomain())
	}
	return rooms, nil
}

func (s *roomStore) Create(ctx context.Context, r *room.Room) (*room.Room, error) {
	var created roomRecord

	err := storage.ExecuteAndTrace(ctx, s.tracer, "roomStore.Create",
		[]attribute.KeyValue{attribute.String("room.number", r.RoomNumber)},
		func(ctx context.Context) error {
			resp, err := s.client.R().
				SetContext(ctx).
				SetBody(toRecord(r)).
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

func (s *roomStore) Update(ctx context.Context, id int64, r *room.Room) (*room.Room, error) {
	path := fmt.Sprintf("%s/%d", collectionPath, id)
	var updated roomRecord

	err := storage.ExecuteAndTrace(ctx, s.tracer, "roomStore.Update",
		[]attribute.KeyValue{
			attribute.Int64("room.id", id),
			attribute.String("room.status", string(r.Status)),
		},
		func(ctx context.Context) error {
			resp, err := s.client.R().
				SetContext(ctx).
				SetBody(toRecord(r)).
				SetResult(&updated).
				Put(path)
			if resp != nil && resp.StatusCode() == http.StatusNotFound {
				return room.ErrRoomNotFound
			}
			return upstream.Check(resp, err, http.MethodPut, path)
		})
	if err != nil {
		return nil, err
	}

	result := updated.toDomain()
	return &result, nil
}

func (s *roomStore) Delete(ctx context.Context, id int64) error {
	path := fmt.Sprintf("%s/%d", collectionPath, id)

	return storage.ExecuteAndTrace(ctx, s.tracer, "roomStore.Delete",
		[]attribute.KeyValue{attribute.Int64("room.id", id)},
		func(ctx context.Context) error {
			resp, err := s.client.R().
				SetContext(ctx).
				Delete(path)
			if resp != nil && resp.StatusCode() == http.StatusNotFound {
				return room.ErrRoomNotFound
			}
			return upstream.Check(resp, err, http.MethodDelete, path)
		})
}
