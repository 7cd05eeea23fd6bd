package expand_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
	"github.com/mentorweb/MW-SchedulingService/internal/integrations/programservice"
	"github.com/mentorweb/MW-SchedulingService/pkg/types"
)

// Фейки

type fakeSlotRepo struct {
	existing []*domain.Slot
	created  []*domain.Slot
	nextID   int64
}

func (f *fakeSlotRepo) CreateBatch(_ context.Context, slots []*domain.Slot) ([]*domain.Slot, error) {
	for _, s := range slots {
		f.nextID++
		s.ID = f.nextID
	}
	f.created = append(f.created, slots...)
	return slots, nil
}

func (f *fakeSlotRepo) GetByProgramWithFilter(_ context.Context, _ domain.ProgramSlotsFilter) ([]*domain.Slot, error) {
	return f.existing, nil
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(slotRepo *fakeSlotRepo, program *programservice.Program) *UseCase {
	return NewUseCase(slotRepo, &fakeProgramClient{program: program}, &fakeTxManager{}, nopLogger{})
}

func hostActor(userID int64) domain.ActorContext {
	return domain.ActorContext{UserID: userID, Role: domain.RoleHost, AccountStatus: domain.AccountActive}
}

func date(value string) time.Time {
	d, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		panic(err)
	}
	return d
}

func mondayPattern(start, end string) domain.WeeklyPattern {
	return domain.WeeklyPattern{
		Monday: &domain.DayInterval{
			StartTime: types.TimeString(start),
			EndTime:   types.TimeString(end),
		},
	}
}

// Тесты

func TestExecute_ExpandsPatternOverMatchingWeekdays(t *testing.T) {
	repo := &fakeSlotRepo{}
	uc := newTestUseCase(repo, &programservice.Program{ID: 1, HostID: 10, Name: "Algorithms"})

	// 2024-01-01, 2024-01-08 и 2024-01-15 - понедельники
	resp, err := uc.Execute(context.Background(), &Request{
		Actor:     hostActor(10),
		ProgramID: 1,
		Pattern:   mondayPattern("10:00", "16:00"),
		StartDate: date("2024-01-01"),
		EndDate:   date("2024-01-15"),
	})

	require.NoError(t, err)
	require.Len(t, resp.Created, 3)
	assert.Equal(t, 0, resp.Skipped)

	for i, expected := range []string{"2024-01-01", "2024-01-08", "2024-01-15"} {
		assert.Equal(t, expected, resp.Created[i].Date.Format(domain.DateFormat))
		assert.Equal(t, types.TimeString("10:00"), resp.Created[i].StartTime)
		assert.Equal(t, types.TimeString("16:00"), resp.Created[i].EndTime)
		assert.Equal(t, domain.SlotStatusOpen, resp.Created[i].Status)
	}
}

func TestExecute_SubdividesIntervalByDuration(t *testing.T) {
	repo := &fakeSlotRepo{}
	uc := newTestUseCase(repo, &programservice.Program{ID: 1, HostID: 10, Name: "Algorithms"})

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:           hostActor(10),
		ProgramID:       1,
		Pattern:         mondayPattern("10:00", "11:30"),
		StartDate:       date("2024-01-01"),
		EndDate:         date("2024-01-01"),
		DurationMinutes: 60,
	})

	require.NoError(t, err)
	// Хвост 11:00-11:30 короче часа и не эмитится
	require.Len(t, resp.Created, 1)
	assert.Equal(t, types.TimeString("10:00"), resp.Created[0].StartTime)
	assert.Equal(t, types.TimeString("11:00"), resp.Created[0].EndTime)
}

func TestExecute_SubdivisionEmitsConsecutiveSlots(t *testing.T) {
	repo := &fakeSlotRepo{}
	uc := newTestUseCase(repo, &programservice.Program{ID: 1, HostID: 10, Name: "Algorithms"})

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:           hostActor(10),
		ProgramID:       1,
		Pattern:         mondayPattern("10:00", "12:00"),
		StartDate:       date("2024-01-01"),
		EndDate:         date("2024-01-01"),
		DurationMinutes: 30,
	})

	require.NoError(t, err)
	require.Len(t, resp.Created, 4)

	// Слоты примыкают друг к другу без зазоров
	for i := 1; i < len(resp.Created); i++ {
		assert.Equal(t, resp.Created[i-1].EndTime, resp.Created[i].StartTime)
	}
}

func TestExecute_ResubmissionSkipsExistingSlots(t *testing.T) {
	repo := &fakeSlotRepo{
		existing: []*domain.Slot{
			{
				ProgramID: 1,
				Date:      date("2024-01-01"),
				StartTime: "10:00",
				EndTime:   "16:00",
				Status:    domain.SlotStatusReserved,
			},
		},
	}
	uc := newTestUseCase(repo, &programservice.Program{ID: 1, HostID: 10, Name: "Algorithms"})

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:     hostActor(10),
		ProgramID: 1,
		Pattern:   mondayPattern("10:00", "16:00"),
		StartDate: date("2024-01-01"),
		EndDate:   date("2024-01-08"),
	})

	require.NoError(t, err)
	// Забронированный слот 2024-01-01 не дублируется и не мутируется
	require.Len(t, resp.Created, 1)
	assert.Equal(t, "2024-01-08", resp.Created[0].Date.Format(domain.DateFormat))
	assert.Equal(t, 1, resp.Skipped)
}

func TestExecute_InactiveSlotDoesNotBlockReexpansion(t *testing.T) {
	repo := &fakeSlotRepo{
		existing: []*domain.Slot{
			{
				ProgramID: 1,
				Date:      date("2024-01-01"),
				StartTime: "10:00",
				EndTime:   "16:00",
				Status:    domain.SlotStatusInactive,
			},
		},
	}
	uc := newTestUseCase(repo, &programservice.Program{ID: 1, HostID: 10, Name: "Algorithms"})

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:     hostActor(10),
		ProgramID: 1,
		Pattern:   mondayPattern("10:00", "16:00"),
		StartDate: date("2024-01-01"),
		EndDate:   date("2024-01-01"),
	})

	require.NoError(t, err)
	require.Len(t, resp.Created, 1)
	assert.Equal(t, 0, resp.Skipped)
}

func TestExecute_InvalidRange(t *testing.T) {
	uc := newTestUseCase(&fakeSlotRepo{}, &programservice.Program{ID: 1, HostID: 10})

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     hostActor(10),
		ProgramID: 1,
		Pattern:   mondayPattern("10:00", "16:00"),
		StartDate: date("2024-01-15"),
		EndDate:   date("2024-01-01"),
	})

	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestExecute_InvalidInterval(t *testing.T) {
	uc := newTestUseCase(&fakeSlotRepo{}, &programservice.Program{ID: 1, HostID: 10})

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     hostActor(10),
		ProgramID: 1,
		Pattern:   mondayPattern("16:00", "10:00"),
		StartDate: date("2024-01-01"),
		EndDate:   date("2024-01-15"),
	})

	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestExecute_NotProgramHost(t *testing.T) {
	uc := newTestUseCase(&fakeSlotRepo{}, &programservice.Program{ID: 1, HostID: 10})

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     hostActor(99),
		ProgramID: 1,
		Pattern:   mondayPattern("10:00", "16:00"),
		StartDate: date("2024-01-01"),
		EndDate:   date("2024-01-15"),
	})

	assert.ErrorIs(t, err, ErrNotProgramHost)
}

func TestExecute_AdminMayPublishForHost(t *testing.T) {
	repo := &fakeSlotRepo{}
	uc := newTestUseCase(repo, &programservice.Program{ID: 1, HostID: 10, Name: "Algorithms"})

	resp, err := uc.Execute(context.Background(), &Request{
		Actor:     domain.ActorContext{UserID: 500, Role: domain.RoleAdmin, AccountStatus: domain.AccountActive},
		ProgramID: 1,
		Pattern:   mondayPattern("10:00", "16:00"),
		StartDate: date("2024-01-01"),
		EndDate:   date("2024-01-01"),
	})

	require.NoError(t, err)
	require.Len(t, resp.Created, 1)
	// Слоты принадлежат хосту программы, а не админу
	assert.Equal(t, int64(10), resp.Created[0].HostID)
}

func TestExecute_AttendeeMayNotPublish(t *testing.T) {
	uc := newTestUseCase(&fakeSlotRepo{}, &programservice.Program{ID: 1, HostID: 10})

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     domain.ActorContext{UserID: 10, Role: domain.RoleAttendee, AccountStatus: domain.AccountActive},
		ProgramID: 1,
		Pattern:   mondayPattern("10:00", "16:00"),
		StartDate: date("2024-01-01"),
		EndDate:   date("2024-01-01"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ProgramNotFound(t *testing.T) {
	uc := NewUseCase(
		&fakeSlotRepo{},
		&fakeProgramClient{err: programservice.ErrProgramNotFound},
		&fakeTxManager{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		Actor:     hostActor(10),
		ProgramID: 42,
		Pattern:   mondayPattern("10:00", "16:00"),
		StartDate: date("2024-01-01"),
		EndDate:   date("2024-01-01"),
	})

	assert.ErrorIs(t, err, ErrProgramNotFound)
}
