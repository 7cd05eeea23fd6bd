package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
	appointmentRepo "github.com/mentorweb/MW-SchedulingService/internal/infra/storage/appointment"
	"github.com/mentorweb/MW-SchedulingService/internal/service/appointments/models"
	"github.com/mentorweb/MW-SchedulingService/pkg/ptr"
	"github.com/mentorweb/MW-SchedulingService/pkg/types"
)

// Фейки

type fakeAppointmentRepo struct {
	byID     *domain.Appointment
	byIDErr  error
	attendee []*domain.Appointment
	host     []*domain.Appointment
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, _ int64) (*domain.Appointment, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byID, nil
}

func (f *fakeAppointmentRepo) GetByAttendeeWithFilter(_ context.Context, _ domain.AttendeeAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.attendee, nil
}

func (f *fakeAppointmentRepo) GetByHostWithFilter(_ context.Context, _ domain.HostAppointmentsFilter) ([]*domain.Appointment, error) {
	return f.host, nil
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

func newTestService(repo *fakeAppointmentRepo) *Service {
	svc := NewService(repo, nopLogger{})
	svc.timeProvider = &fakeTimeProvider{now: testNow}
	return svc
}

func appointment(id int64, status domain.AppointmentStatus, date string, start string) *domain.Appointment {
	d, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		panic(err)
	}
	return &domain.Appointment{
		ID:          id,
		SlotID:      id,
		ProgramID:   5,
		HostID:      10,
		AttendeeID:  20,
		Status:      status,
		ProgramName: "Algorithms",
		Date:        d,
		StartTime:   types.TimeString(start),
		EndTime:     "18:00",
	}
}

func attendeeActor(userID int64) domain.ActorContext {
	return domain.ActorContext{UserID: userID, Role: domain.RoleAttendee, AccountStatus: domain.AccountActive}
}

// GetByID

func TestGetByID_ParticipantSeesAppointment(t *testing.T) {
	repo := &fakeAppointmentRepo{byID: appointment(100, domain.StatusReserved, "2024-06-11", "10:00")}
	svc := newTestService(repo)

	resp, err := svc.GetByID(context.Background(), 100, attendeeActor(20))

	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, "reserved", resp.Status)
	assert.Equal(t, "2024-06-11", resp.Date)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	repo := &fakeAppointmentRepo{byID: appointment(100, domain.StatusReserved, "2024-06-11", "10:00")}
	svc := newTestService(repo)

	_, err := svc.GetByID(context.Background(), 100, attendeeActor(999))

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_AdminSeesAnyAppointment(t *testing.T) {
	repo := &fakeAppointmentRepo{byID: appointment(100, domain.StatusReserved, "2024-06-11", "10:00")}
	svc := newTestService(repo)

	resp, err := svc.GetByID(context.Background(), 100,
		domain.ActorContext{UserID: 500, Role: domain.RoleAdmin, AccountStatus: domain.AccountActive})

	require.NoError(t, err)
	assert.Equal(t, int64(100), resp.ID)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &fakeAppointmentRepo{byIDErr: appointmentRepo.ErrAppointmentNotFound}
	svc := newTestService(repo)

	_, err := svc.GetByID(context.Background(), 100, attendeeActor(20))

	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

// GetUserAppointments: корзины

func TestGetUserAppointments_Buckets(t *testing.T) {
	repo := &fakeAppointmentRepo{
		attendee: []*domain.Appointment{
			appointment(1, domain.StatusPending, "2024-06-12", "10:00"),
			appointment(2, domain.StatusReserved, "2024-06-12", "10:00"), // впереди
			appointment(3, domain.StatusReserved, "2024-06-09", "10:00"), // уже началась
			appointment(4, domain.StatusCompleted, "2024-06-01", "10:00"),
			appointment(5, domain.StatusMissed, "2024-06-02", "10:00"),
			appointment(6, domain.StatusCancelled, "2024-06-12", "10:00"),
		},
	}
	svc := newTestService(repo)

	resp, err := svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		Actor:       attendeeActor(20),
		UserID:      20,
		Perspective: models.PerspectiveAttendee,
	})

	require.NoError(t, err)
	require.Len(t, resp.Pending, 1)
	assert.Equal(t, int64(1), resp.Pending[0].ID)

	require.Len(t, resp.Upcoming, 1)
	assert.Equal(t, int64(2), resp.Upcoming[0].ID)

	// Начавшаяся reserved-запись уходит в past вместе с завершенными
	require.Len(t, resp.Past, 3)

	// Отмененная запись не попадает ни в одну корзину
	for _, bucket := range [][]models.AppointmentResponse{resp.Pending, resp.Upcoming, resp.Past} {
		for _, a := range bucket {
			assert.NotEqual(t, int64(6), a.ID)
		}
	}
}

func TestGetUserAppointments_OtherUserDenied(t *testing.T) {
	svc := newTestService(&fakeAppointmentRepo{})

	_, err := svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		Actor:       attendeeActor(20),
		UserID:      21,
		Perspective: models.PerspectiveAttendee,
	})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetUserAppointments_AdminSeesAnyUser(t *testing.T) {
	repo := &fakeAppointmentRepo{
		host: []*domain.Appointment{appointment(1, domain.StatusPending, "2024-06-12", "10:00")},
	}
	svc := newTestService(repo)

	resp, err := svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		Actor:       domain.ActorContext{UserID: 500, Role: domain.RoleAdmin, AccountStatus: domain.AccountActive},
		UserID:      10,
		Perspective: models.PerspectiveHost,
	})

	require.NoError(t, err)
	assert.Len(t, resp.Pending, 1)
}

// Сортировка

func located(a *domain.Appointment, name, location string) *domain.Appointment {
	a.ProgramName = name
	if location != "" {
		a.PhysicalLocation = ptr.Ptr(location)
	}
	return a
}

func TestSortAppointments_ByDate(t *testing.T) {
	list := []*domain.Appointment{
		appointment(1, domain.StatusReserved, "2024-06-14", "10:00"),
		appointment(2, domain.StatusReserved, "2024-06-12", "10:00"),
		appointment(3, domain.StatusReserved, "2024-06-13", "10:00"),
	}

	sortAppointments(list, SortKeyDate, false)

	assert.Equal(t, []int64{2, 3, 1}, ids(list))
}

func TestSortAppointments_ByDateSameDateOrderedByStartTime(t *testing.T) {
	list := []*domain.Appointment{
		appointment(1, domain.StatusReserved, "2024-02-01", "09:00"),
		appointment(2, domain.StatusReserved, "2024-02-01", "08:00"),
		appointment(3, domain.StatusReserved, "2024-01-31", "10:00"),
	}

	sortAppointments(list, SortKeyDate, false)

	// Равная дата упорядочивается по времени начала
	assert.Equal(t, []int64{3, 2, 1}, ids(list))
}

func TestSortAppointments_ByDateDescending(t *testing.T) {
	list := []*domain.Appointment{
		appointment(1, domain.StatusReserved, "2024-06-12", "10:00"),
		appointment(2, domain.StatusReserved, "2024-06-14", "10:00"),
	}

	sortAppointments(list, SortKeyDate, true)

	assert.Equal(t, []int64{2, 1}, ids(list))
}

func TestSortAppointments_ByDay(t *testing.T) {
	list := []*domain.Appointment{
		appointment(1, domain.StatusReserved, "2024-06-16", "10:00"), // воскресенье
		appointment(2, domain.StatusReserved, "2024-06-12", "10:00"), // среда
		appointment(3, domain.StatusReserved, "2024-06-10", "10:00"), // понедельник
		appointment(4, domain.StatusReserved, "2024-06-15", "10:00"), // суббота
	}

	sortAppointments(list, SortKeyDay, false)

	// Рабочая неделя с понедельника, выходные в конце
	assert.Equal(t, []int64{3, 2, 4, 1}, ids(list))
}

func TestSortAppointments_ByDayPreservesOrderWithinDay(t *testing.T) {
	// 2024-06-10 и 2024-06-17 - понедельники
	list := []*domain.Appointment{
		appointment(1, domain.StatusReserved, "2024-06-17", "14:00"),
		appointment(2, domain.StatusReserved, "2024-06-12", "10:00"), // среда
		appointment(3, domain.StatusReserved, "2024-06-10", "09:00"),
	}

	sortAppointments(list, SortKeyDay, false)

	// Записи одного дня недели сохраняют исходный взаимный порядок
	assert.Equal(t, []int64{1, 3, 2}, ids(list))
}

func TestSortAppointments_ByName(t *testing.T) {
	list := []*domain.Appointment{
		located(appointment(1, domain.StatusReserved, "2024-06-12", "10:00"), "Databases", ""),
		located(appointment(2, domain.StatusReserved, "2024-06-12", "10:00"), "Algorithms", ""),
	}

	sortAppointments(list, SortKeyName, false)

	assert.Equal(t, []int64{2, 1}, ids(list))
}

func TestSortAppointments_ByLocationNilLast(t *testing.T) {
	list := []*domain.Appointment{
		located(appointment(1, domain.StatusReserved, "2024-06-12", "10:00"), "A", ""),
		located(appointment(2, domain.StatusReserved, "2024-06-12", "10:00"), "B", "Room 2"),
		located(appointment(3, domain.StatusReserved, "2024-06-12", "10:00"), "C", "Room 1"),
	}

	sortAppointments(list, SortKeyLocation, false)

	// Записи без места встречи идут последними
	assert.Equal(t, []int64{3, 2, 1}, ids(list))
}

func TestSortAppointments_UnknownKeyKeepsOrder(t *testing.T) {
	list := []*domain.Appointment{
		appointment(3, domain.StatusReserved, "2024-06-14", "10:00"),
		appointment(1, domain.StatusReserved, "2024-06-12", "10:00"),
		appointment(2, domain.StatusReserved, "2024-06-13", "10:00"),
	}

	sortAppointments(list, "Nonsense", false)

	assert.Equal(t, []int64{3, 1, 2}, ids(list))
}

func ids(list []*domain.Appointment) []int64 {
	result := make([]int64, 0, len(list))
	for _, a := range list {
		result = append(result, a.ID)
	}
	return result
}
