package update_slot_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mentorweb/MW-SchedulingService/internal/api/handlers"
	"github.com/mentorweb/MW-SchedulingService/internal/api/middleware"
	slotsService "github.com/mentorweb/MW-SchedulingService/internal/service/slots"
	"github.com/mentorweb/MW-SchedulingService/internal/service/slots/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlotID      = "некорректный ID слота"
	msgInvalidStatus      = "недопустимый статус слота"
	msgSlotNotFound       = "слот не найден"
	msgSlotReserved       = "забронированный слот нельзя переключить"
	msgAccessDenied       = "доступ запрещен"
)

type Handler struct {
	service SlotsService
	logger  Logger
}

func NewHandler(service SlotsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/slots/{slotID}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "требуется аутентификация")
		return
	}

	slotID, err := strconv.ParseInt(mux.Vars(r)["slotID"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /slots/{slotID}/status - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req UpdateSlotStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /slots/%d/status - Invalid request body: %v", slotID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.UpdateStatus(r.Context(), &models.UpdateSlotStatusRequest{
		Actor:  actor,
		SlotID: slotID,
		Status: req.Status,
	})
	if err != nil {
		switch {
		case errors.Is(err, slotsService.ErrInvalidStatus):
			h.logger.Warn("PATCH /slots/%d/status - Invalid status %q", slotID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, slotsService.ErrSlotNotFound):
			h.logger.Warn("PATCH /slots/%d/status - Slot not found", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slotsService.ErrSlotReserved):
			h.logger.Warn("PATCH /slots/%d/status - Slot is reserved", slotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotReserved)

		case errors.Is(err, slotsService.ErrAccessDenied):
			h.logger.Warn("PATCH /slots/%d/status - Access denied for actor=%d", slotID, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("PATCH /slots/%d/status - Failed to update status: %v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /slots/%d/status - Status updated to %s by actor=%d", slotID, req.Status, actor.UserID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
