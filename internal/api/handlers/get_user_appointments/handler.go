package get_user_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mentorweb/MW-SchedulingService/internal/api/handlers"
	"github.com/mentorweb/MW-SchedulingService/internal/api/middleware"
	appointmentsService "github.com/mentorweb/MW-SchedulingService/internal/service/appointments"
	"github.com/mentorweb/MW-SchedulingService/internal/service/appointments/models"
)

const (
	msgInvalidUserID      = "некорректный ID пользователя"
	msgInvalidProgramID   = "некорректный ID программы"
	msgInvalidPerspective = "некорректный параметр perspective, ожидается host или attendee"
	msgAccessDenied       = "доступ запрещен"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userID}/appointments
// Query параметры: perspective (host|attendee), programId, sort, order (asc|desc)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "требуется аутентификация")
		return
	}

	userID, err := strconv.ParseInt(mux.Vars(r)["userID"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{userID}/appointments - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	query := r.URL.Query()

	perspective := models.Perspective(query.Get("perspective"))
	if perspective == "" {
		perspective = models.PerspectiveAttendee
	}
	if perspective != models.PerspectiveHost && perspective != models.PerspectiveAttendee {
		h.logger.Warn("GET /users/%d/appointments - Invalid perspective %q", userID, perspective)
		handlers.RespondBadRequest(w, msgInvalidPerspective)
		return
	}

	req := &models.GetUserAppointmentsRequest{
		Actor:       actor,
		UserID:      userID,
		Perspective: perspective,
		SortKey:     query.Get("sort"),
		Descending:  query.Get("order") == "desc",
	}

	if raw := query.Get("programId"); raw != "" {
		programID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidProgramID)
			return
		}
		req.ProgramID = &programID
	}

	result, err := h.service.GetUserAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrAccessDenied):
			h.logger.Warn("GET /users/%d/appointments - Access denied for actor=%d", userID, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, appointmentsService.ErrInvalidInput):
			h.logger.Warn("GET /users/%d/appointments - Invalid input: %v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidPerspective)

		default:
			h.logger.Error("GET /users/%d/appointments - Failed to fetch appointments: %v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/%d/appointments - Fetched %d pending, %d upcoming, %d past",
		userID, len(result.Pending), len(result.Upcoming), len(result.Past))
	handlers.RespondJSON(w, http.StatusOK, result)
}
