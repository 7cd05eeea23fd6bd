package transition_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
	slotRepo "github.com/mentorweb/MW-SchedulingService/internal/infra/storage/slot"
	"github.com/mentorweb/MW-SchedulingService/pkg/ptr"
)

// Фейки

type fakeAppointmentRepo struct {
	appointment   *domain.Appointment
	updatedStatus *domain.AppointmentStatus
	cancelReason  *string
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	copied := *f.appointment
	return &copied, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, _ int64, status domain.AppointmentStatus) error {
	f.updatedStatus = &status
	return nil
}

func (f *fakeAppointmentRepo) Cancel(_ context.Context, _ int64, reason string) error {
	f.cancelReason = &reason
	return nil
}

type fakeSlotRepo struct {
	reopenCalled bool
	reopenErr    error
}

func (f *fakeSlotRepo) Reopen(_ context.Context, _ int64) error {
	if f.reopenErr != nil {
		return f.reopenErr
	}
	f.reopenCalled = true
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePublisher struct {
	events []domain.Event
}

func (f *fakePublisher) Publish(_ context.Context, event domain.Event) {
	f.events = append(f.events, event)
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Вспомогательное

var testNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

// Запись на завтра относительно testNow
func futureAppointment(status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:         100,
		SlotID:     1,
		ProgramID:  5,
		HostID:     10,
		AttendeeID: 20,
		Status:     status,
		Date:       time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
		StartTime:  "10:00",
		EndTime:    "11:00",
	}
}

// Запись, закончившаяся вчера относительно testNow
func pastAppointment(status domain.AppointmentStatus) *domain.Appointment {
	a := futureAppointment(status)
	a.Date = time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)
	return a
}

func hostActor() domain.ActorContext {
	return domain.ActorContext{UserID: 10, Role: domain.RoleHost, AccountStatus: domain.AccountActive}
}

func attendeeActor() domain.ActorContext {
	return domain.ActorContext{UserID: 20, Role: domain.RoleAttendee, AccountStatus: domain.AccountActive}
}

type fixture struct {
	uc           *UseCase
	appointments *fakeAppointmentRepo
	slots        *fakeSlotRepo
	publisher    *fakePublisher
}

func newFixture(appointment *domain.Appointment) *fixture {
	appointments := &fakeAppointmentRepo{appointment: appointment}
	slots := &fakeSlotRepo{}
	publisher := &fakePublisher{}

	uc := NewUseCase(appointments, slots, &fakeTxManager{}, publisher, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: testNow}

	return &fixture{uc: uc, appointments: appointments, slots: slots, publisher: publisher}
}

// Тесты

func TestExecute_HostApprovesPending(t *testing.T) {
	f := newFixture(futureAppointment(domain.StatusPending))

	resp, err := f.uc.Execute(context.Background(), &Request{
		Actor:         hostActor(),
		AppointmentID: 100,
		TargetStatus:  domain.StatusReserved,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusReserved, resp.Appointment.Status)
	require.NotNil(t, f.appointments.updatedStatus)
	assert.Equal(t, domain.StatusReserved, *f.appointments.updatedStatus)

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, domain.EventStatusChanged, f.publisher.events[0].Type)
	assert.Equal(t, domain.StatusPending, f.publisher.events[0].FromStatus)
	assert.Equal(t, domain.StatusReserved, f.publisher.events[0].ToStatus)
}

func TestExecute_AttendeeMayNotApprove(t *testing.T) {
	f := newFixture(futureAppointment(domain.StatusPending))

	_, err := f.uc.Execute(context.Background(), &Request{
		Actor:         attendeeActor(),
		AppointmentID: 100,
		TargetStatus:  domain.StatusReserved,
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, f.publisher.events)
}

func TestExecute_IllegalTransition(t *testing.T) {
	f := newFixture(futureAppointment(domain.StatusCompleted))

	_, err := f.uc.Execute(context.Background(), &Request{
		Actor:         hostActor(),
		AppointmentID: 100,
		TargetStatus:  domain.StatusReserved,
	})

	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestExecute_CancelReopensFutureSlot(t *testing.T) {
	f := newFixture(futureAppointment(domain.StatusReserved))

	resp, err := f.uc.Execute(context.Background(), &Request{
		Actor:              attendeeActor(),
		AppointmentID:      100,
		TargetStatus:       domain.StatusCancelled,
		CancellationReason: ptr.Ptr("conflict with exam"),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, resp.Appointment.Status)
	require.NotNil(t, f.appointments.cancelReason)
	assert.Equal(t, "conflict with exam", *f.appointments.cancelReason)
	// Слот возвращается в пул бронирования
	assert.True(t, f.slots.reopenCalled)
}

func TestExecute_CancelPendingReopensSlot(t *testing.T) {
	f := newFixture(futureAppointment(domain.StatusPending))

	_, err := f.uc.Execute(context.Background(), &Request{
		Actor:         attendeeActor(),
		AppointmentID: 100,
		TargetStatus:  domain.StatusCancelled,
	})

	require.NoError(t, err)
	assert.True(t, f.slots.reopenCalled)
}

func TestExecute_CancelAfterStartRejected(t *testing.T) {
	f := newFixture(pastAppointment(domain.StatusReserved))

	_, err := f.uc.Execute(context.Background(), &Request{
		Actor:         attendeeActor(),
		AppointmentID: 100,
		TargetStatus:  domain.StatusCancelled,
	})

	assert.ErrorIs(t, err, ErrTooLate)
	assert.Nil(t, f.appointments.cancelReason)
}

func TestExecute_AdminCancelsStartedAppointmentWithoutReopen(t *testing.T) {
	f := newFixture(pastAppointment(domain.StatusReserved))

	// Админ минует ограничение по времени
	resp, err := f.uc.Execute(context.Background(), &Request{
		Actor:         domain.ActorContext{UserID: 500, Role: domain.RoleAdmin, AccountStatus: domain.AccountActive},
		AppointmentID: 100,
		TargetStatus:  domain.StatusCancelled,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, resp.Appointment.Status)
	// Время слота прошло - переоткрытие не выполняется
	assert.False(t, f.slots.reopenCalled)
}

func TestExecute_AdminCompletesBeforeEnd(t *testing.T) {
	f := newFixture(futureAppointment(domain.StatusReserved))

	// Админ минует ограничение "только после окончания"
	resp, err := f.uc.Execute(context.Background(), &Request{
		Actor:         domain.ActorContext{UserID: 500, Role: domain.RoleAdmin, AccountStatus: domain.AccountActive},
		AppointmentID: 100,
		TargetStatus:  domain.StatusCompleted,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, resp.Appointment.Status)
}

func TestExecute_ReopenToleratesInactiveSlot(t *testing.T) {
	f := newFixture(futureAppointment(domain.StatusReserved))
	// Хост успел перевести слот в inactive - compare-and-set промахивается
	f.slots.reopenErr = slotRepo.ErrSlotNotFound

	resp, err := f.uc.Execute(context.Background(), &Request{
		Actor:         attendeeActor(),
		AppointmentID: 100,
		TargetStatus:  domain.StatusCancelled,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, resp.Appointment.Status)
}

func TestExecute_CompleteBeforeEndRejected(t *testing.T) {
	f := newFixture(futureAppointment(domain.StatusReserved))

	_, err := f.uc.Execute(context.Background(), &Request{
		Actor:         hostActor(),
		AppointmentID: 100,
		TargetStatus:  domain.StatusCompleted,
	})

	assert.ErrorIs(t, err, ErrTooEarly)
}

func TestExecute_CompleteAfterEnd(t *testing.T) {
	f := newFixture(pastAppointment(domain.StatusReserved))

	resp, err := f.uc.Execute(context.Background(), &Request{
		Actor:         hostActor(),
		AppointmentID: 100,
		TargetStatus:  domain.StatusCompleted,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, resp.Appointment.Status)
}

func TestExecute_MarkMissedAfterEnd(t *testing.T) {
	f := newFixture(pastAppointment(domain.StatusReserved))

	resp, err := f.uc.Execute(context.Background(), &Request{
		Actor:         hostActor(),
		AppointmentID: 100,
		TargetStatus:  domain.StatusMissed,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusMissed, resp.Appointment.Status)
}

func TestExecute_NonParticipantDenied(t *testing.T) {
	f := newFixture(futureAppointment(domain.StatusPending))

	_, err := f.uc.Execute(context.Background(), &Request{
		Actor:         domain.ActorContext{UserID: 777, Role: domain.RoleHost, AccountStatus: domain.AccountActive},
		AppointmentID: 100,
		TargetStatus:  domain.StatusReserved,
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_ReasonOnlyForCancellation(t *testing.T) {
	f := newFixture(futureAppointment(domain.StatusPending))

	_, err := f.uc.Execute(context.Background(), &Request{
		Actor:              hostActor(),
		AppointmentID:      100,
		TargetStatus:       domain.StatusReserved,
		CancellationReason: ptr.Ptr("not applicable"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
