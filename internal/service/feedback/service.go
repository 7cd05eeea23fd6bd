package feedback

import (
	"context"
	"errors"
	"fmt"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
	appointmentRepo "github.com/mentorweb/MW-SchedulingService/internal/infra/storage/appointment"
	feedbackRepo "github.com/mentorweb/MW-SchedulingService/internal/infra/storage/feedback"
	"github.com/mentorweb/MW-SchedulingService/internal/service/feedback/models"
)

// Policy настройки приема отзывов
type Policy struct {
	// FeedbackAfterMissed разрешает отзывы по пропущенным записям
	FeedbackAfterMissed bool
}

// Service сервис отзывов по завершенным записям
type Service struct {
	feedbackRepo    FeedbackRepository
	appointmentRepo AppointmentRepository
	publisher       EventPublisher
	policy          Policy
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(
	feedbackRepo FeedbackRepository,
	appointmentRepo AppointmentRepository,
	publisher EventPublisher,
	policy Policy,
	logger Logger,
) *Service {
	return &Service{
		feedbackRepo:    feedbackRepo,
		appointmentRepo: appointmentRepo,
		publisher:       publisher,
		policy:          policy,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Submit принимает отзыв одной из сторон записи
// Отзыв возможен только по завершенной записи (и по пропущенной,
// если это разрешено политикой); не более одного отзыва на роль
func (s *Service) Submit(ctx context.Context, req *models.SubmitFeedbackRequest) (*models.FeedbackResponse, error) {
	s.logger.Info("Submit: feedback for appointment=%d from actor=%d (%s)",
		req.AppointmentID, req.Actor.UserID, req.Actor.Role)

	// 1. Валидация входных данных
	if err := validateSubmitRequest(req); err != nil {
		s.logger.Warn("Submit: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем запись
	appointment, err := s.appointmentRepo.GetByID(ctx, req.AppointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Submit: appointment id=%d not found", req.AppointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Submit: repository error for appointment id=%d: %v", req.AppointmentID, err)
		return nil, fmt.Errorf("%w: Submit - repository error: %v", ErrInternal, err)
	}

	// 3. Отзыв оставляют стороны записи от своей роли
	authorRole, err := s.resolveAuthorRole(req.Actor, appointment)
	if err != nil {
		s.logger.Warn("Submit: access denied for actor=%d to appointment id=%d",
			req.Actor.UserID, req.AppointmentID)
		return nil, err
	}

	// 4. Статус записи должен допускать отзыв
	if err := s.checkFeedbackAllowed(appointment); err != nil {
		s.logger.Warn("Submit: feedback not allowed for appointment id=%d, status=%s",
			appointment.ID, appointment.Status)
		return nil, err
	}

	// 5. Создаем отзыв; уникальный индекс отсекает повторную отправку
	created, err := s.feedbackRepo.Create(ctx, &domain.Feedback{
		AppointmentID: appointment.ID,
		AuthorRole:    authorRole,
		Rating:        req.Rating,
		Notes:         req.Notes,
	})
	if err != nil {
		if errors.Is(err, feedbackRepo.ErrFeedbackExists) {
			s.logger.Warn("Submit: feedback already exists for appointment=%d, role=%s",
				appointment.ID, authorRole)
			return nil, ErrFeedbackExists
		}
		s.logger.Error("Submit: failed to create feedback for appointment=%d: %v", appointment.ID, err)
		return nil, fmt.Errorf("%w: Submit - repository error: %v", ErrInternal, err)
	}

	// 6. Публикуем событие
	s.publisher.Publish(ctx, domain.Event{
		Type:          domain.EventFeedbackRecorded,
		AppointmentID: appointment.ID,
		SlotID:        appointment.SlotID,
		ProgramID:     appointment.ProgramID,
		HostID:        appointment.HostID,
		AttendeeID:    appointment.AttendeeID,
		OccurredAt:    s.timeProvider.Now(),
	})

	s.logger.Info("Submit: recorded feedback id=%d for appointment=%d", created.ID, appointment.ID)
	return models.FromDomainFeedback(created), nil
}

// GetByAppointment получает отзывы записи
// Отзывы видят только участники записи и админ
func (s *Service) GetByAppointment(ctx context.Context, appointmentID int64, actor domain.ActorContext) (*models.FeedbackListResponse, error) {
	s.logger.Info("GetByAppointment: fetching feedback for appointment=%d, actor=%d", appointmentID, actor.UserID)

	appointment, err := s.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByAppointment: appointment id=%d not found", appointmentID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByAppointment: repository error for appointment id=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: GetByAppointment - repository error: %v", ErrInternal, err)
	}

	if actor.Role != domain.RoleAdmin &&
		actor.UserID != appointment.HostID &&
		actor.UserID != appointment.AttendeeID {
		s.logger.Warn("GetByAppointment: access denied for actor=%d to appointment id=%d", actor.UserID, appointmentID)
		return nil, ErrAccessDenied
	}

	feedbacks, err := s.feedbackRepo.GetByAppointment(ctx, appointmentID)
	if err != nil {
		s.logger.Error("GetByAppointment: failed to get feedback for appointment=%d: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: GetByAppointment - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainFeedbackList(feedbacks), nil
}

// resolveAuthorRole определяет роль актора в записи
// Отзыв персонален: админ не оставляет отзывы за стороны
func (s *Service) resolveAuthorRole(actor domain.ActorContext, appointment *domain.Appointment) (domain.Role, error) {
	switch {
	case actor.Role == domain.RoleHost && actor.UserID == appointment.HostID:
		return domain.RoleHost, nil
	case actor.Role == domain.RoleAttendee && actor.UserID == appointment.AttendeeID:
		return domain.RoleAttendee, nil
	}
	return "", ErrAccessDenied
}

// checkFeedbackAllowed проверяет, что статус записи допускает отзыв
func (s *Service) checkFeedbackAllowed(appointment *domain.Appointment) error {
	switch appointment.Status {
	case domain.StatusCompleted:
		return nil
	case domain.StatusMissed:
		if s.policy.FeedbackAfterMissed {
			return nil
		}
		return ErrFeedbackNotAllowed
	default:
		// pending, reserved, cancelled
		return ErrFeedbackNotAllowed
	}
}

// validateSubmitRequest валидирует входные данные запроса
func validateSubmitRequest(req *models.SubmitFeedbackRequest) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.Rating < domain.DefaultFeedbackRatingMin || req.Rating > domain.DefaultFeedbackRatingMax {
		return fmt.Errorf("%w: rating must be in [%d, %d]", ErrInvalidInput,
			domain.DefaultFeedbackRatingMin, domain.DefaultFeedbackRatingMax)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
