package models

import (
	"errors"
	"time"

	"github.com/Diana0617/BC-sub011/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// ListRequest запрос на получение записей бизнеса
type ListRequest struct {
	UserID          int64      `json:"userId"`
	BusinessID      int64      `json:"businessId"`
	BranchID        *int64     `json:"branchId,omitempty"`        // Фильтр по филиалу (опционально)
	SpecialistID    *int64     `json:"specialistId,omitempty"`    // Фильтр по специалисту, ID пользователя (опционально)
	From            *time.Time `json:"from,omitempty"`            // Начало периода (опционально)
	To              *time.Time `json:"to,omitempty"`              // Конец периода, не включительно (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отмененные и no-show
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		BusinessID:      r.BusinessID,
		BranchID:        r.BranchID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.SpecialistID != nil {
		id := domain.UserID(*r.SpecialistID)
		filter.SpecialistID = &id
	}

	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"` // только для CANCELED
}

// Response модели

// ServiceLineResponse строка услуги в записи
type ServiceLineResponse struct {
	ServiceID int64  `json:"serviceId"`
	Price     string `json:"price"`
	Duration  int    `json:"duration"`
	Order     int    `json:"order"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	BusinessID      int64  `json:"businessId"`
	BranchID        int64  `json:"branchId"`
	ClientID        int64  `json:"clientId"`
	SpecialistID    int64  `json:"specialistId"`
	ServiceID       int64  `json:"serviceId"`
	StartTime       string `json:"startTime"` // RFC 3339
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	TotalAmount      string  `json:"totalAmount"`
	PaidAmount       string  `json:"paidAmount"`
	PaymentStatus    string  `json:"paymentStatus"`
	PaymentReference *string `json:"paymentReference,omitempty"`
	PaymentURL       *string `json:"paymentUrl,omitempty"`
	Notes            *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CanceledAt         *string `json:"canceledAt,omitempty"`

	Services []ServiceLineResponse `json:"services"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		BusinessID:         a.BusinessID,
		BranchID:           a.BranchID,
		ClientID:           a.ClientID,
		SpecialistID:       int64(a.SpecialistID),
		ServiceID:          a.ServiceID,
		StartTime:          a.StartTime.Format(time.RFC3339),
		EndTime:            a.EndTime.Format(time.RFC3339),
		DurationMinutes:    a.DurationMinutes(),
		Status:             string(a.Status),
		TotalAmount:        a.TotalAmount.StringFixed(2),
		PaidAmount:         a.PaidAmount.StringFixed(2),
		PaymentStatus:      string(a.PaymentStatus),
		PaymentReference:   a.PaymentReference,
		PaymentURL:         a.PaymentURL,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		Services:           make([]ServiceLineResponse, 0, len(a.Services)),
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	if a.CanceledAt != nil {
		canceled := a.CanceledAt.Format(time.RFC3339)
		resp.CanceledAt = &canceled
	}

	for _, line := range a.Services {
		resp.Services = append(resp.Services, ServiceLineResponse{
			ServiceID: line.ServiceID,
			Price:     line.Price.StringFixed(2),
			Duration:  line.Duration,
			Order:     line.Order,
		})
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, apt := range appointments {
		if aptResp := FromDomainAppointment(apt); aptResp != nil {
			resp.Appointments = append(resp.Appointments, *aptResp)
		}
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus с валидацией
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	if !domain.IsValidAppointmentStatus(status) {
		return "", ErrInvalidStatus
	}
	return domain.AppointmentStatus(status), nil
}
