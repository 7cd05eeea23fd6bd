package expand_availability

import (
	"context"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
	"github.com/mentorweb/MW-SchedulingService/internal/integrations/programservice"
)

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	CreateBatch(ctx context.Context, slots []*domain.Slot) ([]*domain.Slot, error)
	GetByProgramWithFilter(ctx context.Context, filter domain.ProgramSlotsFilter) ([]*domain.Slot, error)
}

// ProgramServiceClient интерфейс клиента для ProgramService
type ProgramServiceClient interface {
	GetProgram(ctx context.Context, programID int64) (*programservice.Program, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
