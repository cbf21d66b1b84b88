package room_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/jovz/residence-hub/internal/application/occupancy"
	"github.com/jovz/residence-hub/internal/application/refresh"
	roomApp "github.com/jovz/residence-hub/internal/application/room"
	"github.com/jovz/residence-hub/internal/application/workflow"
	roomDomain "github.com/jovz/residence-hub/internal/domain/room"
	tenantDomain "github.com/jovz/residence-hub/internal/domain/tenant"
	"github.com/jovz/residence-hub/internal/domain/validation"
	"github.com/jovz/residence-hub/pkg/common/logger"
	"github.com/jovz/residence-hub/pkg/common/timeutil"
)

// MockRoomRepo is a testify mock for room.Repository.
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

// MockTenantRepo is a testify mock for tenant.Repository.
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

type serviceFixture struct {
	rooms   *MockRoomRepo
	tenants *MockTenantRepo
	service *roomApp.Service
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()

	rooms := new(MockRoomRepo)
	tenants := new(MockTenantRepo)
	tracer := noop.NewTracerProvider().Tracer("test")
	log := logger.Noop()

	sync := occupancy.NewSynchronizer(rooms, tenants, log, tracer)
	store := refresh.NewStore(tenants, rooms, timeutil.NewMock(time.Now()), log, tracer, nil)
	checker, err := validation.NewChecker()
	require.NoError(t, err)

	service := roomApp.NewService(rooms, tenants, sync, store, checker, log, tracer, workflow.NoopMetrics{})
	return &serviceFixture{rooms: rooms, tenants: tenants, service: service}
}

func TestCreateRegistersVacantRoom(t *testing.T) {
	f := newFixture(t)

	created := &roomDomain.Room{ID: 4, RoomNumber: "104", Floor: 1, Rate: 4500, Status: roomDomain.StatusVacant}
	f.rooms.On("Create", mock.Anything, mock.MatchedBy(func(r *roomDomain.Room) bool {
		return r.RoomNumber == "104" && r.Status == roomDomain.StatusVacant
	})).Return(created, nil)
	f.tenants.On("List", mock.Anything).Return([]tenantDomain.Tenant{}, nil)
	f.rooms.On("List", mock.Anything).Return([]roomDomain.Room{*created}, nil)

	got, fieldErrs, err := f.service.Create(context.Background(), validation.RoomInput{
		RoomNumber: "104",
		Floor:      1,
		Rate:       4500,
	})

	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	assert.Equal(t, int64(4), got.ID)
	f.rooms.AssertExpectations(t)
}

func TestCreateRejectsNonNumericRoomNumber(t *testing.T) {
	f := newFixture(t)

	got, fieldErrs, err := f.service.Create(context.Background(), validation.RoomInput{
		RoomNumber: "A-104",
		Floor:      1,
		Rate:       4500,
	})

	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Contains(t, fieldErrs, "roomNumber")
	f.rooms.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateCarriesStatusOver(t *testing.T) {
	f := newFixture(t)

	existing := roomDomain.Room{ID: 4, RoomNumber: "104", Floor: 1, Rate: 4500, Status: roomDomain.StatusOccupied}
	f.rooms.On("List", mock.Anything).Return([]roomDomain.Room{existing}, nil)
	f.rooms.On("Update", mock.Anything, int64(4), mock.MatchedBy(func(r *roomDomain.Room) bool {
		return r.Rate == 5000 && r.Status == roomDomain.StatusOccupied
	})).Return(&roomDomain.Room{ID: 4, RoomNumber: "104", Floor: 1, Rate: 5000, Status: roomDomain.StatusOccupied}, nil)
	f.tenants.On("List", mock.Anything).Return([]tenantDomain.Tenant{}, nil)

	got, fieldErrs, err := f.service.Update(context.Background(), 4, validation.RoomInput{
		RoomNumber: "104",
		Floor:      1,
		Rate:       5000,
	})

	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	assert.Equal(t, roomDomain.StatusOccupied, got.Status)
	f.rooms.AssertExpectations(t)
}

func TestDeletePropagatesUpstreamFailure(t *testing.T) {
	f := newFixture(t)

	upstreamErr := errors.New("502 from upstream")
	f.rooms.On("Delete", mock.Anything, int64(4)).Return(upstreamErr)

	err := f.service.Delete(context.Background(), 4)

	require.Error(t, err)
	var stepErr *workflow.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "delete-room", stepErr.Step)
	assert.ErrorIs(t, err, upstreamErr)
}

func TestAssignMovesTenantIntoFreeRoom(t *testing.T) {
	f := newFixture(t)

	free := roomDomain.Room{ID: 5, RoomNumber: "205", Floor: 2, Status: roomDomain.StatusVacant}
	old := roomDomain.Room{ID: 4, RoomNumber: "104", Floor: 1, Status: roomDomain.StatusOccupied}
	occupant := tenantDomain.Tenant{ID: 11, Name: "Ana Silva", Room: "104", Contact: "9876543210"}
	moved := tenantDomain.Tenant{ID: 11, Name: "Ana Silva", Room: "205", Contact: "9876543210"}

	f.rooms.On("List", mock.Anything).Return([]roomDomain.Room{old, free}, nil)
	f.tenants.On("List", mock.Anything).Return([]tenantDomain.Tenant{occupant}, nil).Once()
	f.tenants.On("Update", mock.Anything, int64(11), mock.MatchedBy(func(tn *tenantDomain.Tenant) bool {
		return tn.Room == "205"
	})).Return(&moved, nil)
	// Post-update listings see the tenant in the new room.
	f.tenants.On("List", mock.Anything).Return([]tenantDomain.Tenant{moved}, nil)

	f.rooms.On("Update", mock.Anything, int64(5), mock.MatchedBy(func(r *roomDomain.Room) bool {
		return r.Status == roomDomain.StatusOccupied
	})).Return(&roomDomain.Room{ID: 5, RoomNumber: "205", Status: roomDomain.StatusOccupied}, nil)
	f.rooms.On("Update", mock.Anything, int64(4), mock.MatchedBy(func(r *roomDomain.Room) bool {
		return r.Status == roomDomain.StatusVacant
	})).Return(&roomDomain.Room{ID: 4, RoomNumber: "104", Status: roomDomain.StatusVacant}, nil)

	require.NoError(t, f.service.Assign(context.Background(), 5, 11))
	f.rooms.AssertExpectations(t)
	f.tenants.AssertExpectations(t)
}

func TestAssignRefusesOccupiedRoom(t *testing.T) {
	f := newFixture(t)

	f.rooms.On("List", mock.Anything).Return([]roomDomain.Room{
		{ID: 5, RoomNumber: "205", Status: roomDomain.StatusOccupied},
	}, nil)

	err := f.service.Assign(context.Background(), 5, 11)

	require.Error(t, err)
	assert.ErrorIs(t, err, roomDomain.ErrRoomOccupied)
	f.tenants.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestAssignUnknownRoom(t *testing.T) {
	f := newFixture(t)

	f.rooms.On("List", mock.Anything).Return([]roomDomain.Room{}, nil)

	err := f.service.Assign(context.Background(), 5, 11)

	require.Error(t, err)
	assert.ErrorIs(t, err, roomDomain.ErrRoomNotFound)
}

func TestVacateForcesFlagVacant(t *testing.T) {
	f := newFixture(t)

	f.rooms.On("List", mock.Anything).Return([]roomDomain.Room{
		{ID: 5, RoomNumber: "205", Status: roomDomain.StatusOccupied},
	}, nil)
	f.rooms.On("Update", mock.Anything, int64(5), mock.MatchedBy(func(r *roomDomain.Room) bool {
		return r.Status == roomDomain.StatusVacant
	})).Return(&roomDomain.Room{ID: 5, RoomNumber: "205", Status: roomDomain.StatusVacant}, nil)
	f.tenants.On("List", mock.Anything).Return([]tenantDomain.Tenant{}, nil)

	require.NoError(t, f.service.Vacate(context.Background(), 5))
	f.rooms.AssertExpectations(t)
}

func TestVacateClearsOccupantReferences(t *testing.T) {
	f := newFixture(t)

	occupant := tenantDomain.Tenant{ID: 11, Name: "Ana Silva", Room: "205", Contact: "9876543210"}
	neighbor := tenantDomain.Tenant{ID: 12, Name: "Ravi Patel", Room: "104", Contact: "9876543211"}

	f.rooms.On("List", mock.Anything).Return([]roomDomain.Room{
		{ID: 5, RoomNumber: "205", Status: roomDomain.StatusOccupied},
		{ID: 4, RoomNumber: "104", Status: roomDomain.StatusOccupied},
	}, nil)
	f.rooms.On("Update", mock.Anything, int64(5), mock.MatchedBy(func(r *roomDomain.Room) bool {
		return r.Status == roomDomain.StatusVacant
	})).Return(&roomDomain.Room{ID: 5, RoomNumber: "205", Status: roomDomain.StatusVacant}, nil)

	f.tenants.On("List", mock.Anything).Return([]tenantDomain.Tenant{occupant, neighbor}, nil)
	f.tenants.On("Update", mock.Anything, int64(11), mock.MatchedBy(func(tn *tenantDomain.Tenant) bool {
		return tn.Room == ""
	})).Return(&tenantDomain.Tenant{ID: 11, Name: "Ana Silva", Contact: "9876543210"}, nil)

	require.NoError(t, f.service.Vacate(context.Background(), 5))

	// The occupant is unassigned; the tenant in another room is untouched.
	f.tenants.AssertNumberOfCalls(t, "Update", 1)
	f.tenants.AssertNotCalled(t, "Update", mock.Anything, int64(12), mock.Anything)
	f.rooms.AssertExpectations(t)
}

func TestVacateAlreadyVacantSkipsWrite(t *testing.T) {
	f := newFixture(t)

	f.rooms.On("List", mock.Anything).Return([]roomDomain.Room{
		{ID: 5, RoomNumber: "205", Status: roomDomain.StatusVacant},
	}, nil)
	f.tenants.On("List", mock.Anything).Return([]tenantDomain.Tenant{}, nil)

	require.NoError(t, f.service.Vacate(context.Background(), 5))
	f.rooms.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
