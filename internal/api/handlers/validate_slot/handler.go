package validate_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Diana0617/BC-sub011/internal/api/handlers"
	"github.com/Diana0617/BC-sub011/internal/service/availability"
)

const (
	msgInvalidBusinessID  = "некорректный ID бизнеса"
	msgInvalidBranchID    = "некорректный ID филиала"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRequest     = "некорректные параметры запроса"
	msgBusinessNotFound   = "бизнес не найден"
	msgBranchNotFound     = "филиал не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgSpecialistNotFound = "специалист не найден"
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

// Handle POST /api/v1/businesses/{businessId}/branches/{branchId}/availability/validate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	businessID, err := strconv.ParseInt(vars["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /availability/validate - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	branchID, err := strconv.ParseInt(vars["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /availability/validate - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	var req ValidateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability/validate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.ValidateStruct(req); err != nil {
		h.logger.Warn("POST /availability/validate - Validation failed: %s", handlers.DescribeValidation(err))
		handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidRequest, errors.New(handlers.DescribeValidation(err)))
		return
	}

	serviceReq, err := req.ToServiceRequest(businessID, branchID)
	if err != nil {
		h.logger.Warn("POST /availability/validate - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	available, err := h.service.ValidateSlotAvailability(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrBusinessNotFound):
			h.logger.Warn("POST /availability/validate - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, availability.ErrBranchNotFound):
			h.logger.Warn("POST /availability/validate - Branch not found: business_id=%d, branch_id=%d", businessID, branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, availability.ErrServiceNotFound):
			h.logger.Warn("POST /availability/validate - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, availability.ErrSpecialistNotFound):
			h.logger.Warn("POST /availability/validate - Specialist not found: %s", serviceReq.Specialist)
			handlers.RespondNotFound(w, msgSpecialistNotFound)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /availability/validate - Invalid request: %v", err)
			handlers.RespondErrorDetails(w, http.StatusBadRequest, msgInvalidRequest, err)

		default:
			h.logger.Error("POST /availability/validate - Failed to validate slot: business_id=%d, branch_id=%d, error=%v",
				businessID, branchID, err)
			handlers.RespondInternalErrorDetails(w, err)
		}
		return
	}

	h.logger.Info("POST /availability/validate - Slot checked: business_id=%d, branch_id=%d, specialist=%s, available=%t",
		businessID, branchID, serviceReq.Specialist, available)
	handlers.RespondJSON(w, http.StatusOK, &ValidateSlotResponse{
		Available: available,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
}
