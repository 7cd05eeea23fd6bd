package book_slot

import (
	"github.com/mentorweb/MW-SchedulingService/internal/domain"
)

// Request модель запроса на бронирование слота
type Request struct {
	Actor  domain.ActorContext // Актор операции (участник или админ)
	SlotID int64               // ID бронируемого слота
	Notes  *string             // Заметка участника к записи (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	Appointment *domain.Appointment
}
