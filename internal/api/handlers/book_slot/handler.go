package book_slot

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mentorweb/MW-SchedulingService/internal/api/handlers"
	"github.com/mentorweb/MW-SchedulingService/internal/api/middleware"
	bookSlot "github.com/mentorweb/MW-SchedulingService/internal/usecase/book_slot"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlotID      = "некорректный ID слота"
	msgSlotNotFound       = "слот не найден"
	msgSlotUnavailable    = "слот уже занят или недоступен"
	msgSlotInPast         = "время слота уже прошло"
	msgOwnSlot            = "хост не может забронировать собственный слот"
	msgProgramNotFound    = "программа не найдена"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase BookSlotUseCase
	logger  Logger
}

func NewHandler(useCase BookSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/{slotID}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "требуется аутентификация")
		return
	}

	slotID, err := strconv.ParseInt(mux.Vars(r)["slotID"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /slots/{slotID}/appointments - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	// Тело опционально - бронирование без заметки
	var req BookSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /slots/%d/appointments - Invalid request body: %v", slotID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &bookSlot.Request{
		Actor:  actor,
		SlotID: slotID,
		Notes:  req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookSlot.ErrSlotNotFound):
			h.logger.Warn("POST /slots/%d/appointments - Slot not found", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, bookSlot.ErrSlotUnavailable):
			h.logger.Warn("POST /slots/%d/appointments - Slot unavailable for actor=%d", slotID, actor.UserID)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		case errors.Is(err, bookSlot.ErrSlotInPast):
			h.logger.Warn("POST /slots/%d/appointments - Slot is in the past", slotID)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, bookSlot.ErrOwnSlot):
			h.logger.Warn("POST /slots/%d/appointments - Actor %d is the slot host", slotID, actor.UserID)
			handlers.RespondForbidden(w, msgOwnSlot)

		case errors.Is(err, bookSlot.ErrProgramNotFound):
			h.logger.Warn("POST /slots/%d/appointments - Program not found", slotID)
			handlers.RespondNotFound(w, msgProgramNotFound)

		case errors.Is(err, bookSlot.ErrInvalidInput):
			h.logger.Warn("POST /slots/%d/appointments - Invalid input: %v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /slots/%d/appointments - Failed to book slot: %v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/%d/appointments - Appointment id=%d created with status=%s for actor=%d",
		slotID, result.Appointment.ID, result.Appointment.Status, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
