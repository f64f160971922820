package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Diana0617/BC-sub011/internal/domain"
	"github.com/Diana0617/BC-sub011/pkg/types"
)

// ClientData данные клиента из публичной формы записи
type ClientData struct {
	FirstName string
	LastName  string
	Email     string
	Phone     *string
}

// Request модель запроса на создание записи
type Request struct {
	BusinessID    int64
	BranchID      int64
	Specialist    domain.SpecialistRef
	ServiceIDs    []int64          // первая услуга - основная
	Date          time.Time        // Дата записи (без времени)
	StartTime     types.TimeString // Время начала (например, "10:00")
	Client        ClientData
	Notes         *string
	PaymentMethod domain.PaymentMethod // пусто = ON_SITE
}

// Response модель ответа с созданной записью
type Response struct {
	AppointmentID int64
	Status        domain.AppointmentStatus
	ClientID      int64
	SpecialistID  domain.UserID
	StartTime     time.Time
	EndTime       time.Time
	TotalAmount   decimal.Decimal
	TotalDuration int // минуты
	PaymentURL    *string
}

// booking подготовленные вне транзакции данные запроса
type booking struct {
	req        *Request
	business   *domain.Business
	policy     domain.BookingPolicy
	specialist domain.SpecialistIdentity
	loc        *time.Location
	day        time.Time // полночь даты записи в часовом поясе бизнеса
	now        time.Time
	email      string
}

// outcome результат успешной транзакции
type outcome struct {
	appointment *domain.Appointment
	client      *domain.Client
	services    []int64
	duration    int
}
