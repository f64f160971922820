package create_booking

import (
	"time"

	"github.com/Diana0617/BC-sub011/internal/domain"
	createBooking "github.com/Diana0617/BC-sub011/internal/usecase/create_booking"
	"github.com/Diana0617/BC-sub011/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BusinessID int64 `json:"businessId" validate:"required,gt=0"`
	BranchID   int64 `json:"branchId" validate:"required,gt=0"`
	// Специалист задается ровно одним из двух идентификаторов
	SpecialistProfileID int64         `json:"specialistProfileId,omitempty" validate:"required_without=SpecialistUserID,excluded_with=SpecialistUserID,gte=0"`
	SpecialistUserID    int64         `json:"specialistUserId,omitempty" validate:"required_without=SpecialistProfileID,excluded_with=SpecialistProfileID,gte=0"`
	ServiceIDs          []int64       `json:"serviceIds" validate:"required,min=1,max=10,dive,gt=0"`
	Date                string        `json:"date" validate:"required,datetime=2006-01-02"` // "2025-10-15"
	StartTime           string        `json:"startTime" validate:"required"`                // "10:00"
	Client              ClientRequest `json:"client"`
	Notes               *string       `json:"notes,omitempty" validate:"omitempty,max=500"`
	PaymentMethod       string        `json:"paymentMethod,omitempty" validate:"omitempty,oneof=ON_SITE ONLINE"`
}

// ClientRequest данные клиента
type ClientRequest struct {
	FirstName string  `json:"firstName" validate:"required,max=100"`
	LastName  string  `json:"lastName" validate:"max=100"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=30"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	AppointmentID int64   `json:"appointmentId"`
	Status        string  `json:"status"`
	ClientID      int64   `json:"clientId"`
	SpecialistID  int64   `json:"specialistId"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	TotalAmount   string  `json:"totalAmount"`
	TotalDuration int     `json:"totalDuration"`
	PaymentURL    *string `json:"paymentUrl,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		BusinessID: r.BusinessID,
		BranchID:   r.BranchID,
		Specialist: domain.SpecialistRef{
			ProfileID: domain.SpecialistProfileID(r.SpecialistProfileID),
			UserID:    domain.UserID(r.SpecialistUserID),
		},
		ServiceIDs: r.ServiceIDs,
		Date:       date,
		StartTime:  startTime,
		Client: createBooking.ClientData{
			FirstName: r.Client.FirstName,
			LastName:  r.Client.LastName,
			Email:     r.Client.Email,
			Phone:     r.Client.Phone,
		},
		Notes:         r.Notes,
		PaymentMethod: domain.PaymentMethod(r.PaymentMethod),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		AppointmentID: resp.AppointmentID,
		Status:        string(resp.Status),
		ClientID:      resp.ClientID,
		SpecialistID:  int64(resp.SpecialistID),
		StartTime:     resp.StartTime.Format(time.RFC3339),
		EndTime:       resp.EndTime.Format(time.RFC3339),
		TotalAmount:   resp.TotalAmount.StringFixed(2),
		TotalDuration: resp.TotalDuration,
		PaymentURL:    resp.PaymentURL,
	}
}
