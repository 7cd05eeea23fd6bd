package delete_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mentorweb/MW-SchedulingService/internal/api/handlers"
	"github.com/mentorweb/MW-SchedulingService/internal/api/middleware"
	slotsService "github.com/mentorweb/MW-SchedulingService/internal/service/slots"
)

const (
	msgInvalidSlotID = "некорректный ID слота"
	msgSlotNotFound  = "слот не найден"
	msgSlotBooked    = "слот с активной записью удалить нельзя"
	msgAccessDenied  = "доступ запрещен"
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

// Handle DELETE /api/v1/slots/{slotID}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "требуется аутентификация")
		return
	}

	slotID, err := strconv.ParseInt(mux.Vars(r)["slotID"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /slots/{slotID} - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	if err := h.service.Delete(r.Context(), slotID, actor); err != nil {
		switch {
		case errors.Is(err, slotsService.ErrSlotNotFound):
			h.logger.Warn("DELETE /slots/%d - Slot not found", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slotsService.ErrSlotBooked):
			h.logger.Warn("DELETE /slots/%d - Slot has an active appointment", slotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotBooked)

		case errors.Is(err, slotsService.ErrAccessDenied):
			h.logger.Warn("DELETE /slots/%d - Access denied for actor=%d", slotID, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("DELETE /slots/%d - Failed to delete slot: %v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /slots/%d - Slot deleted by actor=%d", slotID, actor.UserID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
