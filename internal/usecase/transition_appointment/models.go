package transition_appointment

import (
	"github.com/mentorweb/MW-SchedulingService/internal/domain"
)

// Request модель запроса на перевод записи в новый статус
type Request struct {
	Actor              domain.ActorContext      // Актор операции (участник записи или админ)
	AppointmentID      int64                    // ID записи
	TargetStatus       domain.AppointmentStatus // Целевой статус
	CancellationReason *string                  // Причина отмены (только для cancelled)
}

// Response модель ответа с обновленной записью
type Response struct {
	Appointment *domain.Appointment
}
