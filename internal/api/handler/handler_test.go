package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/jovz/residence-hub/internal/api/handler"
	"github.com/jovz/residence-hub/internal/api/mid"
	"github.com/jovz/residence-hub/internal/api/routes"
	announcementApp "github.com/jovz/residence-hub/internal/application/announcement"
	"github.com/jovz/residence-hub/internal/application/occupancy"
	"github.com/jovz/residence-hub/internal/application/refresh"
	roomApp "github.com/jovz/residence-hub/internal/application/room"
	tenantApp "github.com/jovz/residence-hub/internal/application/tenant"
	"github.com/jovz/residence-hub/internal/application/workflow"
	announcementDomain "github.com/jovz/residence-hub/internal/domain/announcement"
	roomDomain "github.com/jovz/residence-hub/internal/domain/room"
	"github.com/jovz/residence-hub/internal/domain/snapshot"
	tenantDomain "github.com/jovz/residence-hub/internal/domain/tenant"
	"github.com/jovz/residence-hub/internal/domain/validation"
	"github.com/jovz/residence-hub/pkg/common/logger"
	"github.com/jovz/residence-hub/pkg/common/timeutil"
)

type MockTenantRepo struct{ mock.Mock }

func (m *MockTenantRepo) List(ctx context.Context) ([]tenantDomain.Tenant, error) {
	args := m.Called(ctx)
	tenants, _ := args.Get(0).([]tenantDomain.Tenant)
	return tenants, args.Error(1)
}

func (m *MockTenantRepo) Create(ctx context.Context, t *tenantDomain.Tenant) (*tenantDomain.Tenant, error) {
	args := m.Called(ctx, t)
	created, _ := args.Get(0).(*tenantDomain.Tenant)
	return created, args.Error(1)
}

func (m *MockTenantRepo) Update(ctx context.Context, id int64, t *tenantDomain.Tenant) (*tenantDomain.Tenant, error) {
	args := m.Called(ctx, id, t)
	updated, _ := args.Get(0).(*tenantDomain.Tenant)
	return updated, args.Error(1)
}

func (m *MockTenantRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRoomRepo struct{ mock.Mock }

func (m *MockRoomRepo) List(ctx context.Context) ([]roomDomain.Room, error) {
	args := m.Called(ctx)
	rooms, _ := args.Get(0).([]roomDomain.Room)
	return rooms, args.Error(1)
}

func (m *MockRoomRepo) Create(ctx context.Context, r *roomDomain.Room) (*roomDomain.Room, error) {
	args := m.Called(ctx, r)
	created, _ := args.Get(0).(*roomDomain.Room)
	return created, args.Error(1)
}

func (m *MockRoomRepo) Update(ctx context.Context, id int64, r *roomDomain.Room) (*roomDomain.Room, error) {
	args := m.Called(ctx, id, r)
	updated, _ := args.Get(0).(*roomDomain.Room)
	return updated, args.Error(1)
}

func (m *MockRoomRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAnnouncementRepo struct{ mock.Mock }

func (m *MockAnnouncementRepo) List(ctx context.Context) ([]announcementDomain.Announcement, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]announcementDomain.Announcement)
	return items, args.Error(1)
}

func (m *MockAnnouncementRepo) Create(ctx context.Context, a *announcementDomain.Announcement) (*announcementDomain.Announcement, error) {
	args := m.Called(ctx, a)
	created, _ := args.Get(0).(*announcementDomain.Announcement)
	return created, args.Error(1)
}

func (m *MockAnnouncementRepo) Update(ctx context.Context, id int64, a *announcementDomain.Announcement) (*announcementDomain.Announcement, error) {
	args := m.Called(ctx, id, a)
	updated, _ := args.Get(0).(*announcementDomain.Announcement)
	return updated, args.Error(1)
}

func (m *MockAnnouncementRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type apiFixture struct {
	tenants       *MockTenantRepo
	rooms         *MockRoomRepo
	announcements *MockAnnouncementRepo
	store         *refresh.Store
	engine        *gin.Engine
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tenants := new(MockTenantRepo)
	rooms := new(MockRoomRepo)
	announcements := new(MockAnnouncementRepo)

	tracer := noop.NewTracerProvider().Tracer("test")
	log := logger.Noop()
	clock := timeutil.NewMock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	sync := occupancy.NewSynchronizer(rooms, tenants, log, tracer)
	store := refresh.NewStore(tenants, rooms, clock, log, tracer, nil)
	checker, err := validation.NewChecker()
	require.NoError(t, err)

	tenantService := tenantApp.NewService(tenants, sync, store, checker, log, tracer, workflow.NoopMetrics{})
	roomService := roomApp.NewService(rooms, tenants, sync, store, checker, log, tracer, workflow.NoopMetrics{})
	announcementService := announcementApp.NewService(announcements, clock, log, tracer)

	engine := routes.New(routes.Config{
		Log:           log,
		Tenants:       handler.NewTenantHandler(tenantService, store),
		Rooms:         handler.NewRoomHandler(roomService, store),
		Stats:         handler.NewStatsHandler(store),
		Announcements: handler.NewAnnouncementHandler(announcementService),
		Health:        handler.NewHealthHandler(store, clock),
	})

	return &apiFixture{
		tenants:       tenants,
		rooms:         rooms,
		announcements: announcements,
		store:         store,
		engine:        engine,
	}
}

func (f *apiFixture) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	f := newAPI(t)

	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/healthz", "").Code)

	// Not ready before the first snapshot.
	assert.Equal(t, http.StatusServiceUnavailable, f.do(http.MethodGet, "/readyz", "").Code)

	f.store.Replace(snapshot.Snapshot{LoadedAt: time.Now()})
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/readyz", "").Code)
}

func TestCreateTenantValidationErrors(t *testing.T) {
	f := newAPI(t)

	rec := f.do(http.MethodPost, "/api/tenants", `{"name": "", "room": "A1", "contact": "123"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Full name is required.", body.Errors["name"])
	assert.Equal(t, "Room number must contain digits only.", body.Errors["room"])
	assert.Equal(t, "Enter a valid phone number (10-15 digits).", body.Errors["contact"])
}

func TestCreateTenantRunsWorkflow(t *testing.T) {
	f := newAPI(t)

	created := &tenantDomain.Tenant{ID: 11, Name: "Ana Silva", Room: "104", Contact: "9876543210"}
	f.tenants.On("Create", mock.Anything, mock.Anything).Return(created, nil)
	f.rooms.On("List", mock.Anything).Return([]roomDomain.Room{
		{ID: 4, RoomNumber: "104", Status: roomDomain.StatusVacant},
	}, nil)
	f.rooms.On("Update", mock.Anything, int64(4), mock.Anything).
		Return(&roomDomain.Room{ID: 4, RoomNumber: "104", Status: roomDomain.StatusOccupied}, nil)
	f.tenants.On("List", mock.Anything).Return([]tenantDomain.Tenant{*created}, nil)

	rec := f.do(http.MethodPost, "/api/tenants", `{"name": "Ana Silva", "room": "104", "contact": "(987) 654-3210"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	// The snapshot was reloaded as the final step, so a follow-up list sees
	// the new tenant without another upstream call.
	list := f.do(http.MethodGet, "/api/tenants", "")
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), "Ana Silva")
}

func TestDeleteUnknownTenantReturns404(t *testing.T) {
	f := newAPI(t)

	f.tenants.On("List", mock.Anything).Return([]tenantDomain.Tenant{}, nil)

	rec := f.do(http.MethodDelete, "/api/tenants/99", "")

	require.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Error string `json:"error"`
		Step  string `json:"step"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "load-tenant", body.Step)
}

func TestAssignOccupiedRoomReturns409(t *testing.T) {
	f := newAPI(t)

	f.rooms.On("List", mock.Anything).Return([]roomDomain.Room{
		{ID: 5, RoomNumber: "205", Status: roomDomain.StatusOccupied},
	}, nil)

	rec := f.do(http.MethodPut, "/api/rooms/5/assign/11", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestStatsComputedFromSnapshot(t *testing.T) {
	f := newAPI(t)

	f.store.Replace(snapshot.Snapshot{
		Tenants: []tenantDomain.Tenant{
			{ID: 1, Name: "A", Room: "101"},
			{ID: 2, Name: "B", Room: "101"},
		},
		Rooms: []roomDomain.Room{
			{ID: 1, RoomNumber: "101"},
			{ID: 2, RoomNumber: "102"},
		},
		LoadedAt: time.Now(),
	})

	rec := f.do(http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Summary struct {
			TotalTenants  int            `json:"totalTenants"`
			OccupiedRooms int            `json:"occupiedRooms"`
			VacantRooms   int            `json:"vacantRooms"`
			PerRoom       map[string]int `json:"roomDistribution"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Summary.TotalTenants)
	assert.Equal(t, 1, body.Summary.OccupiedRooms)
	assert.Equal(t, 1, body.Summary.VacantRooms)
	assert.Equal(t, map[string]int{"101": 2}, body.Summary.PerRoom)
}

func TestListRoomsFiltersByDerivedStatus(t *testing.T) {
	f := newAPI(t)

	f.store.Replace(snapshot.Snapshot{
		Tenants: []tenantDomain.Tenant{{ID: 1, Name: "A", Room: "101"}},
		Rooms: []roomDomain.Room{
			{ID: 1, RoomNumber: "101", Status: roomDomain.StatusVacant},
			{ID: 2, RoomNumber: "102", Status: roomDomain.StatusVacant},
		},
		LoadedAt: time.Now(),
	})

	rec := f.do(http.MethodGet, "/api/rooms?status=Occupied", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Rooms []struct {
			RoomNumber string `json:"roomNumber"`
		} `json:"rooms"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Total)
}

func TestRequestIDHeaderIsSet(t *testing.T) {
	f := newAPI(t)

	rec := f.do(http.MethodGet, "/healthz", "")
	assert.NotEmpty(t, rec.Header().Get(mid.RequestIDHeader))
}

func TestPostAnnouncement(t *testing.T) {
	f := newAPI(t)

	f.announcements.On("Create", mock.Anything, mock.Anything).
		Return(&announcementDomain.Announcement{ID: 3, Title: "Water maintenance"}, nil)

	rec := f.do(http.MethodPost, "/api/announcements", `{"title": "Water maintenance", "body": "Sunday"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	blank := f.do(http.MethodPost, "/api/announcements", `{"title": "  ", "body": "x"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, blank.Code)
}
