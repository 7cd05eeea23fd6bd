package expand_availability

import (
	"time"

	"github.com/mentorweb/MW-SchedulingService/internal/domain"
)

// Request модель запроса на публикацию недельной доступности
type Request struct {
	Actor            domain.ActorContext  // Актор операции (хост программы или админ)
	ProgramID        int64                // ID программы
	Pattern          domain.WeeklyPattern // Недельный паттерн доступности
	StartDate        time.Time            // Начало диапазона (включительно)
	EndDate          time.Time            // Конец диапазона (включительно)
	DurationMinutes  int                  // Длительность слота; 0 = один слот на весь интервал
	PhysicalLocation *string              // Место встречи (опционально)
	MeetingURL       *string              // Ссылка на встречу (опционально)
	IsDropin         bool                 // Слоты без подтверждения хоста
}

// Response модель ответа с созданными слотами
type Response struct {
	ProgramID int64
	Created   []*domain.Slot // Отсортированы по дате и времени начала
	Skipped   int            // Кандидаты, совпавшие с уже существующими слотами
}
