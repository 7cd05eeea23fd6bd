package get_program_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/mentorweb/MW-SchedulingService/internal/api/handlers"
	"github.com/mentorweb/MW-SchedulingService/internal/domain"
	slotsService "github.com/mentorweb/MW-SchedulingService/internal/service/slots"
	"github.com/mentorweb/MW-SchedulingService/internal/service/slots/models"
)

const (
	msgInvalidProgramID = "некорректный ID программы"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidFilter    = "некорректные параметры фильтрации"
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

// Handle GET /api/v1/programs/{programID}/slots
// Query параметры: startDate, endDate (YYYY-MM-DD), status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	programID, err := strconv.ParseInt(mux.Vars(r)["programID"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /programs/{programID}/slots - Invalid program ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProgramID)
		return
	}

	req := &models.GetProgramSlotsRequest{ProgramID: programID}

	query := r.URL.Query()
	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &startDate
	}
	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &endDate
	}
	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	result, err := h.service.GetProgramSlots(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, slotsService.ErrInvalidInput):
			h.logger.Warn("GET /programs/%d/slots - Invalid filter: %v", programID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /programs/%d/slots - Failed to fetch slots: %v", programID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /programs/%d/slots - Fetched %d slots", programID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
