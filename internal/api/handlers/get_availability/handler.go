package get_availability

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
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRequest      = "некорректные параметры запроса"
	msgDateTooFar          = "дата слишком далеко в будущем"
	msgBusinessNotFound    = "бизнес не найден"
	msgBranchNotFound      = "филиал не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgSpecialistNotFound  = "специалист не найден"
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

// Handle GET /api/v1/businesses/{businessId}/branches/{branchId}/availability
// Query params: specialistProfileId или specialistUserId, serviceId, date (YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	query := r.URL.Query()

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	branchID, err := strconv.ParseInt(vars["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	specialist, err := handlers.SpecialistRefFromQuery(query)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid specialist ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSpecialistID)
		return
	}

	serviceID, err := strconv.ParseInt(query.Get("serviceId"), 10, 64)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	day, err := h.service.GenerateAvailableSlots(r.Context(), &availability.SlotsRequest{
		BusinessID: businessID,
		BranchID:   branchID,
		Specialist: specialist,
		ServiceID:  serviceID,
		Date:       date,
	})
	if err != nil {
		h.respondServiceError(w, err, businessID, branchID)
		return
	}

	h.logger.Info("GET /availability - Slots computed: business_id=%d, branch_id=%d, specialist=%s, date=%s, available=%d",
		businessID, branchID, specialist, day.Date.Format(domain.DateFormat), day.AvailableSlots)
	handlers.RespondJSON(w, http.StatusOK, FromDayAvailability(day))
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error, businessID, branchID int64) {
	switch {
	case errors.Is(err, availability.ErrBusinessNotFound):
		h.logger.Warn("GET /availability - Business not found: business_id=%d", businessID)
		handlers.RespondNotFound(w, msgBusinessNotFound)

	case errors.Is(err, availability.ErrBranchNotFound):
		h.logger.Warn("GET /availability - Branch not found: business_id=%d, branch_id=%d", businessID, branchID)
		handlers.RespondNotFound(w, msgBranchNotFound)

	case errors.Is(err, availability.ErrServiceNotFound):
		h.logger.Warn("GET /availability - Service not found: business_id=%d", businessID)
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, availability.ErrSpecialistNotFound):
		h.logger.Warn("GET /availability - Specialist not found: business_id=%d", businessID)
		handlers.RespondNotFound(w, msgSpecialistNotFound)

	case errors.Is(err, availability.ErrDateTooFarInFuture):
		h.logger.Warn("GET /availability - Date too far: business_id=%d, error=%v", businessID, err)
		handlers.RespondErrorDetails(w, http.StatusBadRequest, msgDateTooFar, err)

	case errors.Is(err, availability.ErrInvalidInput):
		h.logger.Warn("GET /availability - Invalid request: %v", err)
		handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidRequest, err)

	default:
		h.logger.Error("GET /availability - Failed to compute slots: business_id=%d, branch_id=%d, error=%v",
			businessID, branchID, err)
		handlers.RespondInternalErrorDetails(w, err)
	}
}
