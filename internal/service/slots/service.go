package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
	slotRepo "github.com/mentorweb/MW-SchedulingService/internal/infra/storage/slot"
	"github.com/mentorweb/MW-SchedulingService/internal/service/slots/models"
)

// Service сервис администрирования слотов хостом
type Service struct {
	slotRepo        SlotRepository
	appointmentRepo AppointmentRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса слотов
func NewService(
	slotRepo SlotRepository,
	appointmentRepo AppointmentRepository,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:        slotRepo,
		appointmentRepo: appointmentRepo,
		logger:          logger,
	}
}

// GetProgramSlots получает слоты программы с фильтрацией по периоду и статусу
// Доступно любому аутентифицированному пользователю - участники выбирают
// из открытых слотов при бронировании
func (s *Service) GetProgramSlots(ctx context.Context, req *models.GetProgramSlotsRequest) (*models.SlotListResponse, error) {
	s.logger.Info("GetProgramSlots: fetching slots for program=%d", req.ProgramID)

	if req.ProgramID <= 0 {
		return nil, fmt.Errorf("%w: programID must be positive", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetProgramSlots: invalid filter for program=%d: %v", req.ProgramID, err)
		return nil, fmt.Errorf("%w: invalid status filter", ErrInvalidInput)
	}

	slots, err := s.slotRepo.GetByProgramWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetProgramSlots: repository error for program=%d: %v", req.ProgramID, err)
		return nil, fmt.Errorf("%w: GetProgramSlots - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetProgramSlots: fetched %d slots for program=%d", len(slots), req.ProgramID)
	return models.FromDomainSlotList(slots), nil
}

// UpdateStatus переключает статус слота open <-> inactive
// Забронированный слот переключить нельзя: его статусом управляет
// жизненный цикл записи
func (s *Service) UpdateStatus(ctx context.Context, req *models.UpdateSlotStatusRequest) error {
	s.logger.Info("UpdateStatus: slot=%d to status=%s by actor=%d", req.SlotID, req.Status, req.Actor.UserID)

	target, err := models.ToDomainSlotStatus(req.Status)
	if err != nil || target == domain.SlotStatusReserved {
		s.logger.Warn("UpdateStatus: invalid target status=%s for slot=%d", req.Status, req.SlotID)
		return ErrInvalidStatus
	}

	slot, err := s.getHostedSlot(ctx, req.SlotID, req.Actor)
	if err != nil {
		return err
	}

	if slot.Status == domain.SlotStatusReserved {
		s.logger.Warn("UpdateStatus: slot=%d is reserved, cannot toggle", req.SlotID)
		return ErrSlotReserved
	}

	if slot.Status == target {
		return nil
	}

	if err := s.slotRepo.UpdateStatus(ctx, req.SlotID, target); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return ErrSlotNotFound
		}
		s.logger.Error("UpdateStatus: repository error for slot=%d: %v", req.SlotID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: slot=%d moved to status=%s", req.SlotID, target)
	return nil
}

// Delete удаляет слот
// Слот с не-отмененной записью удалить нельзя - сначала отменяется запись
func (s *Service) Delete(ctx context.Context, slotID int64, actor domain.ActorContext) error {
	s.logger.Info("Delete: slot=%d by actor=%d", slotID, actor.UserID)

	if _, err := s.getHostedSlot(ctx, slotID, actor); err != nil {
		return err
	}

	count, err := s.appointmentRepo.CountActiveBySlot(ctx, slotID)
	if err != nil {
		s.logger.Error("Delete: failed to count appointments for slot=%d: %v", slotID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}
	if count > 0 {
		s.logger.Warn("Delete: slot=%d has %d active appointments", slotID, count)
		return ErrSlotBooked
	}

	if err := s.slotRepo.Delete(ctx, slotID); err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return ErrSlotNotFound
		}
		s.logger.Error("Delete: repository error for slot=%d: %v", slotID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: slot=%d deleted", slotID)
	return nil
}

// getHostedSlot получает слот и проверяет, что актор - его хост
// Админ проходит проверку всегда
func (s *Service) getHostedSlot(ctx context.Context, slotID int64, actor domain.ActorContext) (*domain.Slot, error) {
	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("getHostedSlot: slot=%d not found", slotID)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("getHostedSlot: repository error for slot=%d: %v", slotID, err)
		return nil, fmt.Errorf("%w: getHostedSlot - repository error: %v", ErrInternal, err)
	}

	if actor.Role != domain.RoleAdmin && actor.UserID != slot.HostID {
		s.logger.Warn("getHostedSlot: actor=%d is not host of slot=%d", actor.UserID, slotID)
		return nil, ErrAccessDenied
	}

	return slot, nil
}
