package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
	slotRepo "github.com/mentorweb/MW-SchedulingService/internal/infra/storage/slot"
	"github.com/mentorweb/MW-SchedulingService/internal/service/slots/models"
	"github.com/mentorweb/MW-SchedulingService/pkg/ptr"
)

// Фейки

type fakeSlotRepo struct {
	slot          *domain.Slot
	getErr        error
	list          []*domain.Slot
	listFilter    *domain.ProgramSlotsFilter
	updatedStatus *domain.SlotStatus
	deleted       bool
}

func (f *fakeSlotRepo) GetByID(_ context.Context, _ int64) (*domain.Slot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.slot, nil
}

func (f *fakeSlotRepo) GetByProgramWithFilter(_ context.Context, filter domain.ProgramSlotsFilter) ([]*domain.Slot, error) {
	f.listFilter = &filter
	return f.list, nil
}

func (f *fakeSlotRepo) UpdateStatus(_ context.Context, _ int64, status domain.SlotStatus) error {
	f.updatedStatus = &status
	return nil
}

func (f *fakeSlotRepo) Delete(_ context.Context, _ int64) error {
	f.deleted = true
	return nil
}

type fakeAppointmentRepo struct {
	activeCount int
}

func (f *fakeAppointmentRepo) CountActiveBySlot(_ context.Context, _ int64) (int, error) {
	return f.activeCount, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Вспомогательное

func testSlot(status domain.SlotStatus) *domain.Slot {
	return &domain.Slot{
		ID:        1,
		ProgramID: 5,
		HostID:    10,
		Date:      time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "11:00",
		Status:    status,
	}
}

func hostActor(userID int64) domain.ActorContext {
	return domain.ActorContext{UserID: userID, Role: domain.RoleHost, AccountStatus: domain.AccountActive}
}

func adminActor() domain.ActorContext {
	return domain.ActorContext{UserID: 500, Role: domain.RoleAdmin, AccountStatus: domain.AccountActive}
}

// GetProgramSlots

func TestGetProgramSlots_ReturnsSlots(t *testing.T) {
	repo := &fakeSlotRepo{list: []*domain.Slot{testSlot(domain.SlotStatusOpen)}}
	svc := NewService(repo, &fakeAppointmentRepo{}, nopLogger{})

	resp, err := svc.GetProgramSlots(context.Background(), &models.GetProgramSlotsRequest{ProgramID: 5})

	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "open", resp.Slots[0].Status)
	assert.Equal(t, "2024-06-11", resp.Slots[0].Date)
}

func TestGetProgramSlots_StatusFilterPassedToRepository(t *testing.T) {
	repo := &fakeSlotRepo{}
	svc := NewService(repo, &fakeAppointmentRepo{}, nopLogger{})

	_, err := svc.GetProgramSlots(context.Background(), &models.GetProgramSlotsRequest{
		ProgramID: 5,
		Status:    ptr.Ptr("open"),
	})

	require.NoError(t, err)
	require.NotNil(t, repo.listFilter)
	require.NotNil(t, repo.listFilter.Status)
	assert.Equal(t, domain.SlotStatusOpen, *repo.listFilter.Status)
}

func TestGetProgramSlots_UnknownStatusRejected(t *testing.T) {
	svc := NewService(&fakeSlotRepo{}, &fakeAppointmentRepo{}, nopLogger{})

	_, err := svc.GetProgramSlots(context.Background(), &models.GetProgramSlotsRequest{
		ProgramID: 5,
		Status:    ptr.Ptr("booked"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

// UpdateStatus

func TestUpdateStatus_TogglesOpenToInactive(t *testing.T) {
	repo := &fakeSlotRepo{slot: testSlot(domain.SlotStatusOpen)}
	svc := NewService(repo, &fakeAppointmentRepo{}, nopLogger{})

	err := svc.UpdateStatus(context.Background(), &models.UpdateSlotStatusRequest{
		Actor:  hostActor(10),
		SlotID: 1,
		Status: "inactive",
	})

	require.NoError(t, err)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.SlotStatusInactive, *repo.updatedStatus)
}

func TestUpdateStatus_ReservedIsNotAValidTarget(t *testing.T) {
	repo := &fakeSlotRepo{slot: testSlot(domain.SlotStatusOpen)}
	svc := NewService(repo, &fakeAppointmentRepo{}, nopLogger{})

	// Статусом reserved управляет жизненный цикл записи
	err := svc.UpdateStatus(context.Background(), &models.UpdateSlotStatusRequest{
		Actor:  hostActor(10),
		SlotID: 1,
		Status: "reserved",
	})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_ReservedSlotCannotBeToggled(t *testing.T) {
	repo := &fakeSlotRepo{slot: testSlot(domain.SlotStatusReserved)}
	svc := NewService(repo, &fakeAppointmentRepo{}, nopLogger{})

	err := svc.UpdateStatus(context.Background(), &models.UpdateSlotStatusRequest{
		Actor:  hostActor(10),
		SlotID: 1,
		Status: "inactive",
	})

	assert.ErrorIs(t, err, ErrSlotReserved)
	assert.Nil(t, repo.updatedStatus)
}

func TestUpdateStatus_SameStatusIsNoop(t *testing.T) {
	repo := &fakeSlotRepo{slot: testSlot(domain.SlotStatusOpen)}
	svc := NewService(repo, &fakeAppointmentRepo{}, nopLogger{})

	err := svc.UpdateStatus(context.Background(), &models.UpdateSlotStatusRequest{
		Actor:  hostActor(10),
		SlotID: 1,
		Status: "open",
	})

	require.NoError(t, err)
	assert.Nil(t, repo.updatedStatus)
}

func TestUpdateStatus_NonHostDenied(t *testing.T) {
	repo := &fakeSlotRepo{slot: testSlot(domain.SlotStatusOpen)}
	svc := NewService(repo, &fakeAppointmentRepo{}, nopLogger{})

	err := svc.UpdateStatus(context.Background(), &models.UpdateSlotStatusRequest{
		Actor:  hostActor(999),
		SlotID: 1,
		Status: "inactive",
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_AdminMayToggleAnySlot(t *testing.T) {
	repo := &fakeSlotRepo{slot: testSlot(domain.SlotStatusInactive)}
	svc := NewService(repo, &fakeAppointmentRepo{}, nopLogger{})

	err := svc.UpdateStatus(context.Background(), &models.UpdateSlotStatusRequest{
		Actor:  adminActor(),
		SlotID: 1,
		Status: "open",
	})

	require.NoError(t, err)
	require.NotNil(t, repo.updatedStatus)
	assert.Equal(t, domain.SlotStatusOpen, *repo.updatedStatus)
}

// Delete

func TestDelete_RemovesUnbookedSlot(t *testing.T) {
	repo := &fakeSlotRepo{slot: testSlot(domain.SlotStatusOpen)}
	svc := NewService(repo, &fakeAppointmentRepo{}, nopLogger{})

	err := svc.Delete(context.Background(), 1, hostActor(10))

	require.NoError(t, err)
	assert.True(t, repo.deleted)
}

func TestDelete_BookedSlotRejected(t *testing.T) {
	repo := &fakeSlotRepo{slot: testSlot(domain.SlotStatusReserved)}
	svc := NewService(repo, &fakeAppointmentRepo{activeCount: 1}, nopLogger{})

	err := svc.Delete(context.Background(), 1, hostActor(10))

	assert.ErrorIs(t, err, ErrSlotBooked)
	assert.False(t, repo.deleted)
}

func TestDelete_SlotNotFound(t *testing.T) {
	repo := &fakeSlotRepo{getErr: slotRepo.ErrSlotNotFound}
	svc := NewService(repo, &fakeAppointmentRepo{}, nopLogger{})

	err := svc.Delete(context.Background(), 1, hostActor(10))

	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestDelete_NonHostDenied(t *testing.T) {
	repo := &fakeSlotRepo{slot: testSlot(domain.SlotStatusOpen)}
	svc := NewService(repo, &fakeAppointmentRepo{}, nopLogger{})

	err := svc.Delete(context.Background(), 1, hostActor(999))

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, repo.deleted)
}
