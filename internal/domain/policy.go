package domain

import "time"

// Default booking policy values
const (
	DefaultAdvanceBookingDays      = 0  // 0 = unlimited
	DefaultMinBookingNoticeMinutes = 60 // 1 hour
)

// Ключи бизнес-правил для политики записи
const (
	RuleAdvanceBookingDays      = "booking_advance_days"
	RuleMinBookingNoticeMinutes = "booking_min_notice_minutes"
)

// BookingPolicy ограничения онлайн-записи бизнеса, собранные из бизнес-правил
type BookingPolicy struct {
	OnlineBookingEnabled    bool
	OnlinePaymentRequired   bool
	AdvanceBookingDays      int // 0 = unlimited
	MinBookingNoticeMinutes int
}

// DefaultBookingPolicy политика, когда у бизнеса нет правил
func DefaultBookingPolicy() BookingPolicy {
	return BookingPolicy{
		OnlineBookingEnabled:    true,
		OnlinePaymentRequired:   false,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
	}
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (p BookingPolicy) HasAdvanceBookingLimit() bool {
	return p.AdvanceBookingDays > 0
}

// IsDateTooFar returns true if date exceeds the advance booking window counted from now
func (p BookingPolicy) IsDateTooFar(date, now time.Time) bool {
	if !p.HasAdvanceBookingLimit() {
		return false
	}
	maxDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, p.AdvanceBookingDays)
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.After(maxDate)
}

// EarliestStart returns the earliest bookable instant for the given moment
func (p BookingPolicy) EarliestStart(now time.Time) time.Time {
	return now.Add(time.Duration(p.MinBookingNoticeMinutes) * time.Minute)
}
