package get_availability_range

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
	msgInvalidBusinessID   = "некорректный ID бизнеса"
	msgInvalidBranchID     = "некорректный ID филиала"
	msgInvalidSpecialistID = "укажите ровно один из specialistProfileId и specialistUserId"
	msgInvalidServiceID    = "некорректный ID услуги"
	msgInvalidStartDate    = "некорректный формат startDate, ожидается YYYY-MM-DD"
	msgInvalidEndDate      = "некорректный формат endDate, ожидается YYYY-MM-DD"
	msgInvalidRange        = "некорректный диапазон дат"
	msgRangeTooLarge       = "диапазон дат не может превышать 31 день"
	msgBusinessNotFound    = "бизнес не найден"
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

// Handle GET /api/v1/businesses/{businessId}/branches/{branchId}/availability/range
// Query params: specialistProfileId или specialistUserId, serviceId, startDate, endDate (YYYY-MM-DD, включительно)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	query := r.URL.Query()

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /availability/range - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	branchID, err := strconv.ParseInt(vars["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /availability/range - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	specialist, err := handlers.SpecialistRefFromQuery(query)
	if err != nil {
		h.logger.Warn("GET /availability/range - Invalid specialist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	serviceID, err := strconv.ParseInt(query.Get("serviceId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /availability/range - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	startDate, err := time.Parse(domain.DateFormat, query.Get("startDate"))
	if err != nil {
		h.logger.Warn("GET /availability/range - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartDate)
		return
	}

	endDate, err := time.Parse(domain.DateFormat, query.Get("endDate"))
	if err != nil {
		h.logger.Warn("GET /availability/range - Invalid end date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEndDate)
		return
	}

	days, err := h.service.GetAvailabilityRange(r.Context(), &availability.RangeRequest{
		BusinessID: businessID,
		BranchID:   branchID,
		Specialist: specialist,
		ServiceID:  serviceID,
		StartDate:  startDate,
		EndDate:    endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrRangeTooLarge):
			h.logger.Warn("GET /availability/range - Range too large: business_id=%d, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgRangeTooLarge)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("GET /availability/range - Invalid range: business_id=%d, error=%v", businessID, err)
			handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidRange, err)

		case errors.Is(err, availability.ErrBusinessNotFound):
			h.logger.Warn("GET /availability/range - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		default:
			h.logger.Error("GET /availability/range - Failed to compute range: business_id=%d, branch_id=%d, error=%v",
				businessID, branchID, err)
			handlers.RespondInternalErrorDetails(w, err)
		}
		return
	}

	h.logger.Info("GET /availability/range - Range computed: business_id=%d, branch_id=%d, specialist=%s, days=%d",
		businessID, branchID, specialist, len(days))
	handlers.RespondJSON(w, http.StatusOK, FromDays(
		startDate.Format(domain.DateFormat), endDate.Format(domain.DateFormat), days))
}
