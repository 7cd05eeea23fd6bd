package transition_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
	appointmentRepo "github.com/mentorweb/MW-SchedulingService/internal/infra/storage/appointment"
	slotRepo "github.com/mentorweb/MW-SchedulingService/internal/infra/storage/slot"
)

// UseCase use case перевода записи по жизненному циклу
// pending -> reserved/cancelled, reserved -> cancelled/completed/missed
type UseCase struct {
	appointmentRepo AppointmentRepository
	slotRepo        SlotRepository
	txManager       TransactionManager
	publisher       EventPublisher
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		slotRepo:        slotRepo,
		txManager:       txManager,
		publisher:       publisher,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute переводит запись в целевой статус
// Допустимость перехода определяется таблицей переходов: роль актора
// и ограничение по времени слота проверяются до какой-либо записи в БД
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("TransitionAppointment: actor=%d, appointment=%d, target=%s",
		req.Actor.UserID, req.AppointmentID, req.TargetStatus)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("TransitionAppointment: validation failed: %v", err)
		return nil, err
	}

	var appointment *domain.Appointment
	var fromStatus domain.AppointmentStatus

	// 2. Переход выполняется в сериализуемой транзакции:
	// конкурентные переходы одной записи сериализуются блокировкой строки
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Читаем запись под блокировкой (FOR UPDATE)
		var err error
		appointment, err = uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("TransitionAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}
		fromStatus = appointment.Status

		// 2.2. Переход доступен только участникам записи; админ - исключение
		if !isParticipant(req.Actor, appointment) {
			uc.logger.Warn("TransitionAppointment: actor=%d is not a participant of appointment=%d",
				req.Actor.UserID, appointment.ID)
			return ErrAccessDenied
		}

		// 2.3. Пара (from, to) должна быть в таблице переходов
		transition, ok := domain.TransitionFor(appointment.Status, req.TargetStatus)
		if !ok {
			uc.logger.Warn("TransitionAppointment: illegal transition %s -> %s for appointment=%d",
				appointment.Status, req.TargetStatus, appointment.ID)
			return ErrIllegalTransition
		}

		// 2.4. Роль актора должна быть допущена к переходу
		if !transition.AllowsRole(req.Actor.Role) {
			uc.logger.Warn("TransitionAppointment: role %s may not perform %s -> %s",
				req.Actor.Role, appointment.Status, req.TargetStatus)
			return ErrAccessDenied
		}

		// 2.5. Ограничение по времени слота; админ минует его
		now := uc.timeProvider.Now()
		if req.Actor.Role != domain.RoleAdmin {
			if err := checkTimingGuard(transition.Guard, appointment, now); err != nil {
				return err
			}
		}

		// 2.6. Применяем переход
		if req.TargetStatus == domain.StatusCancelled {
			return uc.applyCancellation(txCtx, req, appointment, now)
		}

		if err := uc.appointmentRepo.UpdateStatus(txCtx, appointment.ID, req.TargetStatus); err != nil {
			uc.logger.Error("TransitionAppointment: failed to update status of appointment=%d: %v",
				appointment.ID, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}
		appointment.Status = req.TargetStatus

		return nil
	})

	if err != nil {
		return nil, err
	}

	// 3. Публикуем событие после коммита
	uc.publisher.Publish(ctx, domain.Event{
		Type:          domain.EventStatusChanged,
		AppointmentID: appointment.ID,
		SlotID:        appointment.SlotID,
		ProgramID:     appointment.ProgramID,
		HostID:        appointment.HostID,
		AttendeeID:    appointment.AttendeeID,
		FromStatus:    fromStatus,
		ToStatus:      appointment.Status,
		OccurredAt:    uc.timeProvider.Now(),
	})

	uc.logger.Info("TransitionAppointment: appointment=%d moved %s -> %s",
		appointment.ID, fromStatus, appointment.Status)

	return &Response{Appointment: appointment}, nil
}

// applyCancellation отменяет запись и возвращает слот в пул,
// если его время еще не прошло
func (uc *UseCase) applyCancellation(
	ctx context.Context,
	req *Request,
	appointment *domain.Appointment,
	now time.Time,
) error {
	reason := ""
	if req.CancellationReason != nil {
		reason = *req.CancellationReason
	}

	if err := uc.appointmentRepo.Cancel(ctx, appointment.ID, reason); err != nil {
		uc.logger.Error("TransitionAppointment: failed to cancel appointment=%d: %v", appointment.ID, err)
		return fmt.Errorf("%w: failed to cancel appointment: %v", ErrInternal, err)
	}

	appointment.Status = domain.StatusCancelled
	if req.CancellationReason != nil {
		appointment.CancellationReason = req.CancellationReason
	}

	// Прошедший слот переоткрывать бессмысленно - его уже никто не забронирует
	startsAt, err := appointment.StartsAt()
	if err != nil {
		uc.logger.Error("TransitionAppointment: failed to compute start of appointment=%d: %v",
			appointment.ID, err)
		return fmt.Errorf("%w: failed to compute appointment start: %v", ErrInternal, err)
	}
	if !startsAt.After(now) {
		return nil
	}

	if err := uc.slotRepo.Reopen(ctx, appointment.SlotID); err != nil {
		// Слот мог быть переведен хостом в inactive - отмена от этого не ломается
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("TransitionAppointment: slot=%d was not in reserved state, skip reopen",
				appointment.SlotID)
			return nil
		}
		uc.logger.Error("TransitionAppointment: failed to reopen slot=%d: %v", appointment.SlotID, err)
		return fmt.Errorf("%w: failed to reopen slot: %v", ErrInternal, err)
	}

	return nil
}

// checkTimingGuard проверяет ограничение перехода по времени слота
func checkTimingGuard(guard domain.TimingGuard, appointment *domain.Appointment, now time.Time) error {
	switch guard {
	case domain.GuardBeforeStart:
		startsAt, err := appointment.StartsAt()
		if err != nil {
			return fmt.Errorf("%w: failed to compute appointment start: %v", ErrInternal, err)
		}
		if !now.Before(startsAt) {
			return ErrTooLate
		}
	case domain.GuardAfterEnd:
		endsAt, err := appointment.EndsAt()
		if err != nil {
			return fmt.Errorf("%w: failed to compute appointment end: %v", ErrInternal, err)
		}
		if !now.After(endsAt) {
			return ErrTooEarly
		}
	}
	return nil
}

// isParticipant возвращает true, если актор - хост или участник записи
// Админ проходит проверку всегда
func isParticipant(actor domain.ActorContext, appointment *domain.Appointment) bool {
	switch actor.Role {
	case domain.RoleAdmin:
		return true
	case domain.RoleHost:
		return actor.UserID == appointment.HostID
	case domain.RoleAttendee:
		return actor.UserID == appointment.AttendeeID
	}
	return false
}
