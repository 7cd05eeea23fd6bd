package submit_feedback

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mentorweb/MW-SchedulingService/internal/api/handlers"
	"github.com/mentorweb/MW-SchedulingService/internal/api/middleware"
	feedbackService "github.com/mentorweb/MW-SchedulingService/internal/service/feedback"
	"github.com/mentorweb/MW-SchedulingService/internal/service/feedback/models"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidAppointmentID = "некорректный ID записи"
	msgAppointmentNotFound  = "запись не найдена"
	msgAccessDenied         = "доступ запрещен"
	msgFeedbackNotAllowed   = "отзыв по этой записи недоступен"
	msgFeedbackExists       = "отзыв уже отправлен"
	msgInvalidInput         = "некорректные входные данные"
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

// Handle POST /api/v1/appointments/{appointmentID}/feedback
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "требуется аутентификация")
		return
	}

	appointmentID, err := strconv.ParseInt(mux.Vars(r)["appointmentID"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{appointmentID}/feedback - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req SubmitFeedbackRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/%d/feedback - Invalid request body: %v", appointmentID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Submit(r.Context(), &models.SubmitFeedbackRequest{
		Actor:         actor,
		AppointmentID: appointmentID,
		Rating:        req.Rating,
		Notes:         req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, feedbackService.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/%d/feedback - Appointment not found", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, feedbackService.ErrAccessDenied):
			h.logger.Warn("POST /appointments/%d/feedback - Access denied for actor=%d", appointmentID, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, feedbackService.ErrFeedbackNotAllowed):
			h.logger.Warn("POST /appointments/%d/feedback - Feedback not allowed", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgFeedbackNotAllowed)

		case errors.Is(err, feedbackService.ErrFeedbackExists):
			h.logger.Warn("POST /appointments/%d/feedback - Feedback already exists for actor=%d", appointmentID, actor.UserID)
			handlers.RespondError(w, http.StatusConflict, msgFeedbackExists)

		case errors.Is(err, feedbackService.ErrInvalidInput):
			h.logger.Warn("POST /appointments/%d/feedback - Invalid input: %v", appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments/%d/feedback - Failed to submit feedback: %v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/%d/feedback - Feedback id=%d recorded by actor=%d",
		appointmentID, result.ID, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
