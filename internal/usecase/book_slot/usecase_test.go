package book_slot

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
	appointmentRepo "github.com/mentorweb/MW-SchedulingService/internal/infra/storage/appointment"
	slotRepo "github.com/mentorweb/MW-SchedulingService/internal/infra/storage/slot"
	"github.com/mentorweb/MW-SchedulingService/internal/integrations/programservice"
)

// Фейки

type fakeSlotRepo struct {
	slot       *domain.Slot
	reserveErr error
	reserved   bool
	getErr     error
}

func (f *fakeSlotRepo) GetByID(_ context.Context, _ int64) (*domain.Slot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	copied := *f.slot
	return &copied, nil
}

func (f *fakeSlotRepo) MarkReserved(_ context.Context, _ int64) error {
	if f.reserveErr != nil {
		return f.reserveErr
	}
	f.reserved = true
	f.slot.Status = domain.SlotStatusReserved
	return nil
}

type fakeAppointmentRepo struct {
	created   *domain.Appointment
	createErr error
}

func (f *fakeAppointmentRepo) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	a.ID = 100
	f.created = a
	return a, nil
}

type fakeProgramClient struct {
	program *programservice.Program
	err     error
}

func (f *fakeProgramClient) GetProgram(_ context.Context, _ int64) (*programservice.Program, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.program, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (f *fakePublisher) Publish(_ context.Context, event domain.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
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

func openSlot() *domain.Slot {
	return &domain.Slot{
		ID:        1,
		ProgramID: 5,
		HostID:    10,
		Date:      time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
		EndTime:   "11:00",
		Status:    domain.SlotStatusOpen,
	}
}

func attendeeActor(userID int64) domain.ActorContext {
	return domain.ActorContext{UserID: userID, Role: domain.RoleAttendee, AccountStatus: domain.AccountActive}
}

type fixture struct {
	uc           *UseCase
	slots        *fakeSlotRepo
	appointments *fakeAppointmentRepo
	publisher    *fakePublisher
}

func newFixture(slot *domain.Slot, program *programservice.Program) *fixture {
	slots := &fakeSlotRepo{slot: slot}
	appointments := &fakeAppointmentRepo{}
	publisher := &fakePublisher{}

	uc := NewUseCase(slots, appointments, &fakeProgramClient{program: program}, &fakeTxManager{}, publisher, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: testNow}

	return &fixture{uc: uc, slots: slots, appointments: appointments, publisher: publisher}
}

// Тесты

func TestExecute_CreatesPendingAppointment(t *testing.T) {
	f := newFixture(openSlot(), &programservice.Program{ID: 5, HostID: 10, Name: "Algorithms"})

	resp, err := f.uc.Execute(context.Background(), &Request{Actor: attendeeActor(20), SlotID: 1})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, resp.Appointment.Status)
	assert.Equal(t, int64(20), resp.Appointment.AttendeeID)
	assert.Equal(t, int64(10), resp.Appointment.HostID)
	assert.Equal(t, "Algorithms", resp.Appointment.ProgramName)
	// Слот резервируется сразу, даже пока запись ждет подтверждения
	assert.True(t, f.slots.reserved)
}

func TestExecute_DropinSlotSkipsPending(t *testing.T) {
	slot := openSlot()
	slot.IsDropin = true
	f := newFixture(slot, &programservice.Program{ID: 5, HostID: 10, Name: "Office Hours"})

	resp, err := f.uc.Execute(context.Background(), &Request{Actor: attendeeActor(20), SlotID: 1})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusReserved, resp.Appointment.Status)
}

func TestExecute_AutoApproveProgramSkipsPending(t *testing.T) {
	f := newFixture(openSlot(), &programservice.Program{ID: 5, HostID: 10, Name: "Algorithms", AutoApprove: true})

	resp, err := f.uc.Execute(context.Background(), &Request{Actor: attendeeActor(20), SlotID: 1})

	require.NoError(t, err)
	assert.Equal(t, domain.StatusReserved, resp.Appointment.Status)
}

func TestExecute_PublishesCreatedEvent(t *testing.T) {
	f := newFixture(openSlot(), &programservice.Program{ID: 5, HostID: 10, Name: "Algorithms"})

	_, err := f.uc.Execute(context.Background(), &Request{Actor: attendeeActor(20), SlotID: 1})

	require.NoError(t, err)
	require.Len(t, f.publisher.events, 1)
	event := f.publisher.events[0]
	assert.Equal(t, domain.EventAppointmentCreated, event.Type)
	assert.Equal(t, int64(100), event.AppointmentID)
	assert.Equal(t, int64(1), event.SlotID)
	assert.Equal(t, int64(20), event.AttendeeID)
}

func TestExecute_HostCannotBookOwnSlot(t *testing.T) {
	f := newFixture(openSlot(), &programservice.Program{ID: 5, HostID: 10, Name: "Algorithms"})

	// Админ проходит гейт участника, но владеет этим слотом
	_, err := f.uc.Execute(context.Background(), &Request{
		Actor:  domain.ActorContext{UserID: 10, Role: domain.RoleAdmin, AccountStatus: domain.AccountActive},
		SlotID: 1,
	})

	assert.ErrorIs(t, err, ErrOwnSlot)
	assert.False(t, f.slots.reserved)
}

func TestExecute_SlotNotOpen(t *testing.T) {
	slot := openSlot()
	slot.Status = domain.SlotStatusReserved
	f := newFixture(slot, &programservice.Program{ID: 5, HostID: 10, Name: "Algorithms"})

	_, err := f.uc.Execute(context.Background(), &Request{Actor: attendeeActor(20), SlotID: 1})

	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_SlotInPast(t *testing.T) {
	slot := openSlot()
	slot.Date = time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)
	f := newFixture(slot, &programservice.Program{ID: 5, HostID: 10, Name: "Algorithms"})

	_, err := f.uc.Execute(context.Background(), &Request{Actor: attendeeActor(20), SlotID: 1})

	assert.ErrorIs(t, err, ErrSlotInPast)
	assert.False(t, f.slots.reserved)
}

func TestExecute_LoserOfReservationRace(t *testing.T) {
	f := newFixture(openSlot(), &programservice.Program{ID: 5, HostID: 10, Name: "Algorithms"})
	// Compare-and-set проигран: конкурент успел занять слот
	f.slots.reserveErr = slotRepo.ErrSlotUnavailable

	_, err := f.uc.Execute(context.Background(), &Request{Actor: attendeeActor(20), SlotID: 1})

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Empty(t, f.publisher.events)
}

func TestExecute_UniqueIndexViolationMapsToUnavailable(t *testing.T) {
	f := newFixture(openSlot(), &programservice.Program{ID: 5, HostID: 10, Name: "Algorithms"})
	f.appointments.createErr = appointmentRepo.ErrSlotTaken

	_, err := f.uc.Execute(context.Background(), &Request{Actor: attendeeActor(20), SlotID: 1})

	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestExecute_SlotNotFound(t *testing.T) {
	f := newFixture(openSlot(), &programservice.Program{ID: 5, HostID: 10, Name: "Algorithms"})
	f.slots.getErr = slotRepo.ErrSlotNotFound

	_, err := f.uc.Execute(context.Background(), &Request{Actor: attendeeActor(20), SlotID: 1})

	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_ProgramNotFound(t *testing.T) {
	slots := &fakeSlotRepo{slot: openSlot()}
	uc := NewUseCase(slots, &fakeAppointmentRepo{}, &fakeProgramClient{err: programservice.ErrProgramNotFound},
		&fakeTxManager{}, &fakePublisher{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Actor: attendeeActor(20), SlotID: 1})

	assert.ErrorIs(t, err, ErrProgramNotFound)
}

// racingSlotRepo потокобезопасный репозиторий с настоящим compare-and-set
type racingSlotRepo struct {
	mu   sync.Mutex
	slot *domain.Slot
}

func (f *racingSlotRepo) GetByID(_ context.Context, _ int64) (*domain.Slot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *f.slot
	return &copied, nil
}

func (f *racingSlotRepo) MarkReserved(_ context.Context, _ int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.slot.Status != domain.SlotStatusOpen {
		return slotRepo.ErrSlotUnavailable
	}
	f.slot.Status = domain.SlotStatusReserved
	return nil
}

type racingAppointmentRepo struct {
	mu      sync.Mutex
	created []*domain.Appointment
}

func (f *racingAppointmentRepo) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a.ID = int64(100 + len(f.created))
	f.created = append(f.created, a)
	return a, nil
}

func TestExecute_ConcurrentBookersExactlyOneWins(t *testing.T) {
	const bookers = 8

	slots := &racingSlotRepo{slot: openSlot()}
	appointments := &racingAppointmentRepo{}
	publisher := &fakePublisher{}

	uc := NewUseCase(slots, appointments,
		&fakeProgramClient{program: &programservice.Program{ID: 5, HostID: 10, Name: "Algorithms"}},
		&fakeTxManager{}, publisher, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: testNow}

	var wg sync.WaitGroup
	results := make(chan error, bookers)

	for i := 0; i < bookers; i++ {
		wg.Add(1)
		go func(attendeeID int64) {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), &Request{Actor: attendeeActor(attendeeID), SlotID: 1})
			results <- err
		}(int64(20 + i))
	}

	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrSlotUnavailable):
			losses++
		default:
			t.Fatalf("unexpected booking error: %v", err)
		}
	}

	// Ровно один конкурент получает запись, остальные - ErrSlotUnavailable
	assert.Equal(t, 1, wins)
	assert.Equal(t, bookers-1, losses)
	assert.Len(t, appointments.created, 1)
	assert.Len(t, publisher.events, 1)
}

func TestExecute_HostActorRejected(t *testing.T) {
	f := newFixture(openSlot(), &programservice.Program{ID: 5, HostID: 10, Name: "Algorithms"})

	_, err := f.uc.Execute(context.Background(), &Request{
		Actor:  domain.ActorContext{UserID: 30, Role: domain.RoleHost, AccountStatus: domain.AccountActive},
		SlotID: 1,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
