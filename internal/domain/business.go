package domain

// BusinessStatus статус подписки бизнеса
type BusinessStatus string

const (
	BusinessStatusActive    BusinessStatus = "ACTIVE"
	BusinessStatusTrial     BusinessStatus = "TRIAL"
	BusinessStatusSuspended BusinessStatus = "SUSPENDED"
	BusinessStatusInactive  BusinessStatus = "INACTIVE"
)

// Business тенант системы
type Business struct {
	ID       int64
	Name     string
	Status   BusinessStatus
	Timezone string
}

// CanAcceptBookings returns true if the business may receive new appointments
func (b *Business) CanAcceptBookings() bool {
	return b.Status == BusinessStatusActive || b.Status == BusinessStatusTrial
}

// Ключи бизнес-правил
const (
	RuleOnlineBookingEnabled  = "online_booking_enabled"
	RuleOnlinePaymentRequired = "online_payment_required"
)
