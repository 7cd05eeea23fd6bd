package transition_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mentorweb/MW-SchedulingService/internal/api/handlers"
	"github.com/mentorweb/MW-SchedulingService/internal/api/middleware"
	"github.com/mentorweb/MW-SchedulingService/internal/domain"
	transitionAppointment "github.com/mentorweb/MW-SchedulingService/internal/usecase/transition_appointment"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidAppointmentID  = "некорректный ID записи"
	msgAppointmentNotFound   = "запись не найдена"
	msgIllegalTransition     = "переход в указанный статус не разрешен"
	msgAccessDenied          = "доступ запрещен"
	msgTooEarlyForTransition = "слот записи еще не закончился"
	msgTooLateForTransition  = "слот записи уже начался"
	msgInvalidInput          = "некорректные входные данные"
)

type Handler struct {
	useCase TransitionAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase TransitionAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentID}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "требуется аутентификация")
		return
	}

	appointmentID, err := strconv.ParseInt(mux.Vars(r)["appointmentID"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{appointmentID}/status - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req TransitionAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/%d/status - Invalid request body: %v", appointmentID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &transitionAppointment.Request{
		Actor:              actor,
		AppointmentID:      appointmentID,
		TargetStatus:       domain.AppointmentStatus(req.Status),
		CancellationReason: req.CancellationReason,
	})
	if err != nil {
		switch {
		case errors.Is(err, transitionAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/%d/status - Appointment not found", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, transitionAppointment.ErrIllegalTransition):
			h.logger.Warn("PATCH /appointments/%d/status - Illegal transition to %s", appointmentID, req.Status)
			handlers.RespondError(w, http.StatusConflict, msgIllegalTransition)

		case errors.Is(err, transitionAppointment.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/%d/status - Access denied for actor=%d", appointmentID, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, transitionAppointment.ErrTooEarly):
			h.logger.Warn("PATCH /appointments/%d/status - Too early for %s", appointmentID, req.Status)
			handlers.RespondError(w, http.StatusConflict, msgTooEarlyForTransition)

		case errors.Is(err, transitionAppointment.ErrTooLate):
			h.logger.Warn("PATCH /appointments/%d/status - Too late for %s", appointmentID, req.Status)
			handlers.RespondError(w, http.StatusConflict, msgTooLateForTransition)

		case errors.Is(err, transitionAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/%d/status - Invalid input: %v", appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /appointments/%d/status - Failed to transition: %v", appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/%d/status - Moved to %s by actor=%d",
		appointmentID, result.Appointment.Status, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
