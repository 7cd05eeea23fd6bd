package events

import (
	"context"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// LogPublisher публикует события жизненного цикла в лог
// Доставка внешним потребителям (уведомления, выгрузки) подключается
// отдельным publisher-ом с тем же интерфейсом
type LogPublisher struct {
	logger Logger
}

// NewLogPublisher создает publisher, пишущий события в лог
func NewLogPublisher(logger Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish пишет событие в лог
// Вызывается после коммита транзакции; ошибок не возвращает,
// ядро не зависит от завершения потребителей
func (p *LogPublisher) Publish(_ context.Context, event domain.Event) {
	switch event.Type {
	case domain.EventStatusChanged:
		p.logger.Info("event %s: appointment=%d slot=%d %s -> %s",
			event.Type, event.AppointmentID, event.SlotID, event.FromStatus, event.ToStatus)
	default:
		p.logger.Info("event %s: appointment=%d slot=%d program=%d host=%d attendee=%d",
			event.Type, event.AppointmentID, event.SlotID, event.ProgramID, event.HostID, event.AttendeeID)
	}
}
