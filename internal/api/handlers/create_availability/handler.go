package create_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mentorweb/MW-SchedulingService/internal/api/handlers"
	"github.com/mentorweb/MW-SchedulingService/internal/api/middleware"
	expandAvailability "github.com/mentorweb/MW-SchedulingService/internal/usecase/expand_availability"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidProgramID   = "некорректный ID программы"
	msgInvalidDateOrTime  = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgInvalidRange       = "некорректный диапазон дат"
	msgInvalidInterval    = "некорректный интервал паттерна"
	msgProgramNotFound    = "программа не найдена"
	msgNotProgramHost     = "доступность публикует только хост программы"
	msgInvalidInput       = "некорректные входные данные"
)

type Handler struct {
	useCase ExpandAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase ExpandAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/programs/{programID}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "требуется аутентификация")
		return
	}

	programID, err := strconv.ParseInt(mux.Vars(r)["programID"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /programs/{programID}/availability - Invalid program ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProgramID)
		return
	}

	var req CreateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /programs/%d/availability - Invalid request body: %v", programID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor, programID)
	if err != nil {
		h.logger.Warn("POST /programs/%d/availability - Failed to parse request: %v", programID, err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, expandAvailability.ErrInvalidRange):
			h.logger.Warn("POST /programs/%d/availability - Invalid range: %v", programID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, expandAvailability.ErrInvalidInterval):
			h.logger.Warn("POST /programs/%d/availability - Invalid interval: %v", programID, err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, expandAvailability.ErrProgramNotFound):
			h.logger.Warn("POST /programs/%d/availability - Program not found", programID)
			handlers.RespondNotFound(w, msgProgramNotFound)

		case errors.Is(err, expandAvailability.ErrNotProgramHost):
			h.logger.Warn("POST /programs/%d/availability - Actor %d is not program host", programID, actor.UserID)
			handlers.RespondForbidden(w, msgNotProgramHost)

		case errors.Is(err, expandAvailability.ErrInvalidInput):
			h.logger.Warn("POST /programs/%d/availability - Invalid input: %v", programID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /programs/%d/availability - Failed to expand availability: %v", programID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /programs/%d/availability - Created %d slots (%d skipped) by actor=%d",
		programID, len(result.Created), result.Skipped, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
