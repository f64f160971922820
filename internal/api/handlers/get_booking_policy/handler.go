package get_booking_policy

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Diana0617/BC-sub011/internal/api/handlers"
	"github.com/Diana0617/BC-sub011/internal/service/rules"
)

const (
	msgInvalidBusinessID = "некорректный ID бизнеса"
	msgBusinessNotFound  = "бизнес не найден"
)

type Handler struct {
	service RulesService
	logger  Logger
}

func NewHandler(service RulesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/booking-policy
// Публичный endpoint - без авторизации. Отсутствующие правила заменяются значениями по умолчанию
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := strconv.ParseInt(mux.Vars(r)["businessId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/booking-policy - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	business, err := h.service.GetBusiness(r.Context(), businessID)
	if err != nil {
		if errors.Is(err, rules.ErrBusinessNotFound) {
			h.logger.Warn("GET /businesses/{id}/booking-policy - Business not found: business_id=%d", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)
			return
		}
		h.logger.Error("GET /businesses/{id}/booking-policy - Failed to get business: business_id=%d, error=%v", businessID, err)
		handlers.RespondInternalErrorDetails(w, err)
		return
	}

	policy, err := h.service.BookingPolicy(r.Context(), businessID)
	if err != nil {
		h.logger.Error("GET /businesses/{id}/booking-policy - Failed to get policy: business_id=%d, error=%v", businessID, err)
		handlers.RespondInternalErrorDetails(w, err)
		return
	}

	h.logger.Info("GET /businesses/{id}/booking-policy - Policy retrieved: business_id=%d, online=%t",
		businessID, policy.OnlineBookingEnabled)
	handlers.RespondJSON(w, http.StatusOK, FromDomain(business, policy))
}
