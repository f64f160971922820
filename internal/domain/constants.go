package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Default values
const (
	DefaultTimezone       = "America/Bogota"
	DefaultCurrency       = "COP"
	MaxAvailabilityDays   = 31 // максимальный диапазон дат для GetAvailabilityRange
	MaxServicesPerBooking = 10
)

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// InactiveStatuses статусы, которые не занимают время специалиста.
// Используется для фильтрации при подсчёте занятости слотов
var InactiveStatuses = []AppointmentStatus{
	StatusCanceled,
	StatusNoShow,
}

// ActiveStatuses статусы, которые занимают время специалиста
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusRescheduled,
}
