package expand_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
	programClient "github.com/mentorweb/MW-SchedulingService/internal/integrations/programservice"
	"github.com/mentorweb/MW-SchedulingService/pkg/ptr"
)

// UseCase use case публикации недельной доступности хоста
type UseCase struct {
	slotRepo      SlotRepository
	programClient ProgramServiceClient
	txManager     TransactionManager
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	programClient ProgramServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:      slotRepo,
		programClient: programClient,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute разворачивает недельный паттерн в дискретные слоты
// Повторная отправка того же паттерна аддитивна: уже существующие слоты
// (включая забронированные) не дублируются и не мутируются
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ExpandAvailability: actor=%d, program=%d, range=%s..%s, duration=%d",
		req.Actor.UserID, req.ProgramID,
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat),
		req.DurationMinutes)

	// 1. Валидация входных данных - до любых записей
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ExpandAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем программу
	program, err := uc.programClient.GetProgram(ctx, req.ProgramID)
	if err != nil {
		if errors.Is(err, programClient.ErrProgramNotFound) {
			uc.logger.Warn("ExpandAvailability: program id=%d not found", req.ProgramID)
			return nil, ErrProgramNotFound
		}
		uc.logger.Error("ExpandAvailability: failed to get program id=%d: %v", req.ProgramID, err)
		return nil, fmt.Errorf("%w: failed to get program: %v", ErrInternal, err)
	}

	// 3. Паттерн публикует хост программы; админ может публиковать за него
	if req.Actor.Role != domain.RoleAdmin && req.Actor.UserID != program.HostID {
		uc.logger.Warn("ExpandAvailability: actor=%d is not host of program=%d", req.Actor.UserID, req.ProgramID)
		return nil, ErrNotProgramHost
	}

	// 4. Разворачиваем паттерн в кандидатов
	candidates, err := buildSlots(req, program.HostID)
	if err != nil {
		uc.logger.Error("ExpandAvailability: failed to build slots: %v", err)
		return nil, fmt.Errorf("%w: failed to build slots: %v", ErrInternal, err)
	}

	var created []*domain.Slot
	var skipped int

	// 5. Дедупликация и вставка в сериализуемой транзакции:
	// конкурентная повторная отправка не дублирует слоты
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.slotRepo.GetByProgramWithFilter(txCtx, domain.ProgramSlotsFilter{
			ProgramID: req.ProgramID,
			StartDate: ptr.Ptr(req.StartDate),
			EndDate:   ptr.Ptr(req.EndDate),
		})
		if err != nil {
			uc.logger.Error("ExpandAvailability: failed to get existing slots: %v", err)
			return fmt.Errorf("%w: failed to get existing slots: %v", ErrInternal, err)
		}

		kept, dup := filterDuplicates(candidates, existing)
		skipped = dup

		if len(kept) == 0 {
			created = []*domain.Slot{}
			return nil
		}

		created, err = uc.slotRepo.CreateBatch(txCtx, kept)
		if err != nil {
			uc.logger.Error("ExpandAvailability: failed to create slots: %v", err)
			return fmt.Errorf("%w: failed to create slots: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ExpandAvailability: created %d slots for program=%d (%d duplicates skipped)",
		len(created), req.ProgramID, skipped)

	return &Response{
		ProgramID: req.ProgramID,
		Created:   created,
		Skipped:   skipped,
	}, nil
}
