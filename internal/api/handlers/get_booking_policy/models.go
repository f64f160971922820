package get_booking_policy

import (
	"github.com/Diana0617/BC-sub011/internal/domain"
)

// BookingPolicyResponse правила онлайн-записи бизнеса
type BookingPolicyResponse struct {
	BusinessID              int64  `json:"businessId"`
	BusinessName            string `json:"businessName"`
	Timezone                string `json:"timezone,omitempty"`
	AcceptsBookings         bool   `json:"acceptsBookings"`
	OnlineBookingEnabled    bool   `json:"onlineBookingEnabled"`
	OnlinePaymentRequired   bool   `json:"onlinePaymentRequired"`
	AdvanceBookingDays      int    `json:"advanceBookingDays"` // 0 = без ограничения
	MinBookingNoticeMinutes int    `json:"minBookingNoticeMinutes"`
}

// FromDomain собирает ответ из бизнеса и его политики
func FromDomain(business *domain.Business, policy domain.BookingPolicy) *BookingPolicyResponse {
	return &BookingPolicyResponse{
		BusinessID:              business.ID,
		BusinessName:            business.Name,
		Timezone:                business.Timezone,
		AcceptsBookings:         business.CanAcceptBookings() && policy.OnlineBookingEnabled,
		OnlineBookingEnabled:    policy.OnlineBookingEnabled,
		OnlinePaymentRequired:   policy.OnlinePaymentRequired,
		AdvanceBookingDays:      policy.AdvanceBookingDays,
		MinBookingNoticeMinutes: policy.MinBookingNoticeMinutes,
	}
}
