package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending     AppointmentStatus = "PENDING"
	StatusConfirmed   AppointmentStatus = "CONFIRMED"
	StatusInProgress  AppointmentStatus = "IN_PROGRESS"
	StatusCompleted   AppointmentStatus = "COMPLETED"
	StatusCanceled    AppointmentStatus = "CANCELED"
	StatusNoShow      AppointmentStatus = "NO_SHOW"
	StatusRescheduled AppointmentStatus = "RESCHEDULED"
)

// PaymentStatus статус оплаты записи
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "PENDING"
	PaymentStatusPaid     PaymentStatus = "PAID"
	PaymentStatusPartial  PaymentStatus = "PARTIAL"
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// PaymentMethod способ оплаты, выбранный при онлайн-записи
type PaymentMethod string

const (
	PaymentMethodOnSite PaymentMethod = "ON_SITE"
	PaymentMethodOnline PaymentMethod = "ONLINE"
)

// RequiresOnlineCharge returns true if the booking must be charged through the payment gateway
func (m PaymentMethod) RequiresOnlineCharge() bool {
	return m == PaymentMethodOnline
}

// allowedTransitions переходы статусов, доступные операторам
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:    {StatusConfirmed, StatusCanceled, StatusNoShow, StatusRescheduled},
	StatusConfirmed:  {StatusInProgress, StatusCanceled, StatusNoShow, StatusRescheduled},
	StatusInProgress: {StatusCompleted},
}

// Appointment запись клиента к специалисту
type Appointment struct {
	ID           int64
	BusinessID   int64
	BranchID     int64
	ClientID     int64
	SpecialistID UserID
	ServiceID    int64 // основная (первая) услуга
	StartTime    time.Time
	EndTime      time.Time
	Status       AppointmentStatus

	TotalAmount      decimal.Decimal
	PaidAmount       decimal.Decimal
	PaymentStatus    PaymentStatus
	PaymentReference *string
	PaymentURL       *string
	Notes            *string

	CancellationReason *string
	CanceledAt         *time.Time

	Services []AppointmentService

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppointmentService строка услуги в записи с исторической ценой и длительностью
type AppointmentService struct {
	AppointmentID int64
	ServiceID     int64
	Price         decimal.Decimal
	Duration      int
	Order         int
}

// IsActive returns true if the appointment occupies the specialist's time
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCanceled && a.Status != StatusNoShow
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.CanTransitionTo(StatusCanceled)
}

// IsFinal returns true if no further transitions are possible
func (a *Appointment) IsFinal() bool {
	return len(allowedTransitions[a.Status]) == 0
}

// CanTransitionTo returns true if the status change is allowed
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	for _, s := range allowedTransitions[a.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// DurationMinutes returns the appointment length in minutes
func (a *Appointment) DurationMinutes() int {
	return int(a.EndTime.Sub(a.StartTime) / time.Minute)
}

// IsValidAppointmentStatus проверяет, что строка - известный статус
func IsValidAppointmentStatus(s string) bool {
	switch AppointmentStatus(s) {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted,
		StatusCanceled, StatusNoShow, StatusRescheduled:
		return true
	}
	return false
}

// AppointmentsFilter фильтр для получения записей
type AppointmentsFilter struct {
	BusinessID      int64              // Обязательный параметр
	BranchID        *int64             // Фильтр по филиалу (опционально)
	SpecialistID    *UserID            // Фильтр по специалисту (опционально)
	From            *time.Time         // Начало периода, включительно (опционально)
	To              *time.Time         // Конец периода, не включительно (опционально)
	Status          *AppointmentStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли отмененные и no-show
	ForUpdate       bool               // Заблокировать строки (только внутри транзакции)
}
