package book_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
	appointmentRepo "github.com/mentorweb/MW-SchedulingService/internal/infra/storage/appointment"
	slotRepo "github.com/mentorweb/MW-SchedulingService/internal/infra/storage/slot"
	programClient "github.com/mentorweb/MW-SchedulingService/internal/integrations/programservice"
)

// UseCase use case бронирования слота участником
type UseCase struct {
	slotRepo        SlotRepository
	appointmentRepo AppointmentRepository
	programClient   ProgramServiceClient
	txManager       TransactionManager
	publisher       EventPublisher
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	appointmentRepo AppointmentRepository,
	programClient ProgramServiceClient,
	txManager TransactionManager,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:        slotRepo,
		appointmentRepo: appointmentRepo,
		programClient:   programClient,
		txManager:       txManager,
		publisher:       publisher,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute бронирует открытый слот для участника
// Взаимное исключение на слот: compare-and-set open -> reserved внутри
// сериализуемой транзакции; ровно один конкурентный запрос выигрывает
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookSlot: actor=%d, slot=%d", req.Actor.UserID, req.SlotID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Читаем слот без блокировки - только ради programID,
	// все решающие проверки повторяются под блокировкой внутри транзакции
	preview, err := uc.slotRepo.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Warn("BookSlot: slot id=%d not found", req.SlotID)
			return nil, ErrSlotNotFound
		}
		uc.logger.Error("BookSlot: failed to get slot id=%d: %v", req.SlotID, err)
		return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
	}

	// 3. Получаем программу - HTTP-вызов вне транзакции
	program, err := uc.programClient.GetProgram(ctx, preview.ProgramID)
	if err != nil {
		if errors.Is(err, programClient.ErrProgramNotFound) {
			uc.logger.Warn("BookSlot: program id=%d not found", preview.ProgramID)
			return nil, ErrProgramNotFound
		}
		uc.logger.Error("BookSlot: failed to get program id=%d: %v", preview.ProgramID, err)
		return nil, fmt.Errorf("%w: failed to get program: %v", ErrInternal, err)
	}

	var appointment *domain.Appointment

	// 4. Бронируем в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Перечитываем слот под блокировкой (FOR UPDATE)
		slot, err := uc.slotRepo.GetByID(txCtx, req.SlotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				return ErrSlotNotFound
			}
			uc.logger.Error("BookSlot: failed to lock slot id=%d: %v", req.SlotID, err)
			return fmt.Errorf("%w: failed to lock slot: %v", ErrInternal, err)
		}

		// 4.2. Хост не бронирует собственный слот
		if req.Actor.UserID == slot.HostID {
			return ErrOwnSlot
		}

		// 4.3. Слот должен быть открыт и в будущем
		if !slot.IsBookable() {
			return ErrSlotUnavailable
		}
		if slot.IsInPast(uc.timeProvider.Now()) {
			return ErrSlotInPast
		}

		// 4.4. Compare-and-set open -> reserved
		if err := uc.slotRepo.MarkReserved(txCtx, slot.ID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotUnavailable) {
				return ErrSlotUnavailable
			}
			uc.logger.Error("BookSlot: failed to reserve slot id=%d: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to reserve slot: %v", ErrInternal, err)
		}

		// 4.5. Создаем запись; drop-in слоты и auto-approve программы
		// минуют статус pending
		appointment, err = uc.appointmentRepo.Create(txCtx, newAppointment(req, slot, program))
		if err != nil {
			// Частичный уникальный индекс - вторая линия защиты
			// после compare-and-set по статусу слота
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				return ErrSlotUnavailable
			}
			uc.logger.Error("BookSlot: failed to create appointment for slot id=%d: %v", slot.ID, err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	// 5. Публикуем событие после коммита
	uc.publisher.Publish(ctx, domain.Event{
		Type:          domain.EventAppointmentCreated,
		AppointmentID: appointment.ID,
		SlotID:        appointment.SlotID,
		ProgramID:     appointment.ProgramID,
		HostID:        appointment.HostID,
		AttendeeID:    appointment.AttendeeID,
		OccurredAt:    uc.timeProvider.Now(),
	})

	uc.logger.Info("BookSlot: created appointment id=%d for slot=%d with status=%s",
		appointment.ID, appointment.SlotID, appointment.Status)

	return &Response{Appointment: appointment}, nil
}

// newAppointment собирает запись из слота и программы
// Данные слота денормализуются в запись: история не зависит от
// последующих изменений слота
func newAppointment(req *Request, slot *domain.Slot, program *programClient.Program) *domain.Appointment {
	status := domain.StatusPending
	if slot.IsDropin || program.AutoApprove {
		status = domain.StatusReserved
	}

	return &domain.Appointment{
		SlotID:           slot.ID,
		ProgramID:        slot.ProgramID,
		HostID:           slot.HostID,
		AttendeeID:       req.Actor.UserID,
		Status:           status,
		ProgramName:      program.Name,
		Date:             slot.Date,
		StartTime:        slot.StartTime,
		EndTime:          slot.EndTime,
		PhysicalLocation: slot.PhysicalLocation,
		MeetingURL:       slot.MeetingURL,
		Notes:            req.Notes,
	}
}
