package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
	appointmentRepo "github.com/mentorweb/MW-SchedulingService/internal/infra/storage/appointment"
	"github.com/mentorweb/MW-SchedulingService/internal/service/appointments/models"
)

// Service сервис чтения записей: доступ, корзины, сортировка
type Service struct {
	appointmentRepo AppointmentRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(appointmentRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// GetByID получает запись по ID
// Запись видят только ее участники и админ
func (s *Service) GetByID(ctx context.Context, id int64, actor domain.ActorContext) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for actor=%d", id, actor.UserID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if actor.Role != domain.RoleAdmin &&
		actor.UserID != appointment.HostID &&
		actor.UserID != appointment.AttendeeID {
		s.logger.Warn("GetByID: access denied for actor=%d to appointment id=%d", actor.UserID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appointment), nil
}

// GetUserAppointments получает записи пользователя, разложенные по корзинам:
// pending (ждут подтверждения), upcoming (подтверждены и впереди),
// past (завершены, пропущены или уже начались)
// Отмененные записи не попадают ни в одну корзину
func (s *Service) GetUserAppointments(ctx context.Context, req *models.GetUserAppointmentsRequest) (*models.AppointmentBucketsResponse, error) {
	s.logger.Info("GetUserAppointments: fetching %s appointments for user=%d, sort=%q",
		req.Perspective, req.UserID, req.SortKey)

	// Пользователь видит только свои записи; админ - любые
	if req.Actor.Role != domain.RoleAdmin && req.Actor.UserID != req.UserID {
		s.logger.Warn("GetUserAppointments: access denied for actor=%d to user=%d appointments",
			req.Actor.UserID, req.UserID)
		return nil, ErrAccessDenied
	}

	appointments, err := s.fetch(ctx, req)
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	pending, upcoming, past := classify(appointments, now)

	sortAppointments(pending, req.SortKey, req.Descending)
	sortAppointments(upcoming, req.SortKey, req.Descending)
	sortAppointments(past, req.SortKey, req.Descending)

	s.logger.Info("GetUserAppointments: user=%d has %d pending, %d upcoming, %d past",
		req.UserID, len(pending), len(upcoming), len(past))

	return &models.AppointmentBucketsResponse{
		Pending:  models.FromDomainAppointmentList(pending),
		Upcoming: models.FromDomainAppointmentList(upcoming),
		Past:     models.FromDomainAppointmentList(past),
	}, nil
}

func (s *Service) fetch(ctx context.Context, req *models.GetUserAppointmentsRequest) ([]*domain.Appointment, error) {
	switch req.Perspective {
	case models.PerspectiveHost:
		appointments, err := s.appointmentRepo.GetByHostWithFilter(ctx, domain.HostAppointmentsFilter{
			HostID:    req.UserID,
			ProgramID: req.ProgramID,
		})
		if err != nil {
			s.logger.Error("GetUserAppointments: repository error for host=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %v", ErrInternal, err)
		}
		return appointments, nil
	case models.PerspectiveAttendee:
		appointments, err := s.appointmentRepo.GetByAttendeeWithFilter(ctx, domain.AttendeeAppointmentsFilter{
			AttendeeID: req.UserID,
			ProgramID:  req.ProgramID,
		})
		if err != nil {
			s.logger.Error("GetUserAppointments: repository error for attendee=%d: %v", req.UserID, err)
			return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %v", ErrInternal, err)
		}
		return appointments, nil
	}

	s.logger.Warn("GetUserAppointments: unknown perspective %q", req.Perspective)
	return nil, fmt.Errorf("%w: unknown perspective %q", ErrInvalidInput, req.Perspective)
}

// classify раскладывает записи по корзинам относительно текущего момента
func classify(appointments []*domain.Appointment, now time.Time) (pending, upcoming, past []*domain.Appointment) {
	pending = make([]*domain.Appointment, 0)
	upcoming = make([]*domain.Appointment, 0)
	past = make([]*domain.Appointment, 0)

	for _, a := range appointments {
		switch a.Status {
		case domain.StatusPending:
			pending = append(pending, a)
		case domain.StatusCompleted, domain.StatusMissed:
			past = append(past, a)
		case domain.StatusReserved:
			// Подтвержденная запись уходит в past, как только началась,
			// даже если хост еще не записал исход
			startsAt, err := a.StartsAt()
			if err == nil && startsAt.Before(now) {
				past = append(past, a)
			} else {
				upcoming = append(upcoming, a)
			}
		case domain.StatusCancelled:
			// Отмененные записи не показываются
		}
	}

	return pending, upcoming, past
}
