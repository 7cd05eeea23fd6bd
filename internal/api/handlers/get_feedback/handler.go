package get_feedback

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mentorweb/MW-SchedulingService/internal/api/handlers"
	"github.com/mentorweb/MW-SchedulingService/internal/api/middleware"
	feedbackService "github.com/mentorweb/MW-SchedulingService/internal/service/feedback"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgAppointmentNotFound  = "запись не найдена"
	msgAccessDenied         = "доступ запрещен"
)

type Handler struct {
	service FeedbackService
	logger  Logger
}

func NewHandler(service FeedbackService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/{appointmentID}/feedback
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "требуется аутентификация")
		return
	}

	appointmentID, err := strconv.ParseInt(mux.Vars(r)["appointmentID"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /appointments/{appointmentID}/feedback - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	result, err := h.service.GetByAppointment(r.Context(), appointmentID, actor)
	if err != nil {
		switch {
		case errors.Is(err, feedbackService.ErrAppointmentNotFound):
			h.logger.Warn("GET /appointments/%d/feedback - Appointment not found", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, feedbackService.ErrAccessDenied):
			h.logger.Warn("GET /appointments/%d/feedback - Access denied for actor=%d", appointmentID, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /appointments/%d/feedback - Failed to fetch feedback: %v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/%d/feedback - Fetched %d feedback records", appointmentID, len(result.Feedback))
	handlers.RespondJSON(w, http.StatusOK, result)
}
