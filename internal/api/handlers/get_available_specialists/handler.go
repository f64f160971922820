package get_available_specialists

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/Diana0617/BC-sub011/internal/api/handlers"
	"github.com/Diana0617/BC-sub011/internal/domain"
	"github.com/Diana0617/BC-sub011/internal/service/availability"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgInvalidBranchID   = "некорректный ID филиала"
	msgInvalidServiceID  = "некорректный ID услуги"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime       = "некорректный формат времени, ожидается HH:MM"
	msgInvalidRequest    = "некорректные параметры запроса"
	msgBusinessNotFound  = "бизнес не найден"
	msgBranchNotFound    = "филиал не найден"
	msgServiceNotFound   = "услуга не найдена"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/branches/{branchId}/available-specialists
// Query params: serviceId, date (YYYY-MM-DD), time (HH:MM)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	query := r.URL.Query()

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /available-specialists - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	branchID, err := strconv.ParseInt(vars["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /available-specialists - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	serviceID, err := strconv.ParseInt(query.Get("serviceId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /available-specialists - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /available-specialists - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	at, err := availability.ParseTimeOfDay(query.Get("time"))
	if err != nil {
		h.logger.Warn("GET /available-specialists - Invalid time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	list, err := h.service.GetAvailableSpecialists(r.Context(), &availability.SpecialistsRequest{
		BusinessID: businessID,
		BranchID:   branchID,
		ServiceID:  serviceID,
		Date:       date,
		Time:       at,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrBusinessNotFound):
			h.logger.Warn("GET /available-specialists - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, availability.ErrBranchNotFound):
			h.logger.Warn("GET /available-specialists - Branch not found: business_id=%d, branch_id=%d", businessID, branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, availability.ErrServiceNotFound):
			h.logger.Warn("GET /available-specialists - Service not found: business_id=%d, service_id=%d", businessID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /available-specialists - Invalid request: %v", err)
			handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidRequest, err)

		default:
			h.logger.Error("GET /available-specialists - Failed to list specialists: business_id=%d, branch_id=%d, error=%v",
				businessID, branchID, err)
			handlers.RespondInternalErrorDetails(w, err)
		}
		return
	}

	h.logger.Info("GET /available-specialists - Specialists found: business_id=%d, branch_id=%d, service_id=%d, count=%d",
		businessID, branchID, serviceID, len(list))
	handlers.RespondJSON(w, http.StatusOK, FromAvailableSpecialists(
		date.Format(domain.DateFormat), at.String(), serviceID, list))
}
