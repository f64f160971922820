package create_booking

import (
	"context"
	"time"

	"github.com/Diana0617/BC-sub011/internal/domain"
	"github.com/Diana0617/BC-sub011/internal/integrations/events"
	"github.com/Diana0617/BC-sub011/internal/integrations/wompi"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, apt *domain.Appointment) (*domain.Appointment, error)
	CreateServices(ctx context.Context, services []domain.AppointmentService) error
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	SetPayment(ctx context.Context, id int64, reference, paymentURL string) error
}

// ClientRepository интерфейс репозитория клиентов
type ClientRepository interface {
	FindByEmail(ctx context.Context, businessID int64, email string) (*domain.Client, error)
	Create(ctx context.Context, c *domain.Client) (*domain.Client, error)
}

// BranchRepository интерфейс репозитория филиалов
type BranchRepository interface {
	GetByID(ctx context.Context, businessID, branchID int64) (*domain.Branch, error)
}

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetByIDs(ctx context.Context, businessID int64, ids []int64) (map[int64]*domain.Service, error)
}

// ScheduleRepository интерфейс репозитория расписаний специалистов
type ScheduleRepository interface {
	GetActive(ctx context.Context, profileID domain.SpecialistProfileID, branchID int64, dayOfWeek string) (*domain.SpecialistBranchSchedule, error)
}

// SpecialistResolver нормализатор идентификаторов специалиста
type SpecialistResolver interface {
	Resolve(ctx context.Context, businessID int64, ref domain.SpecialistRef) (domain.SpecialistIdentity, error)
	OffersService(ctx context.Context, specialist domain.SpecialistIdentity, serviceID int64) (bool, error)
}

// RulesProvider бизнес и его политика записи
type RulesProvider interface {
	GetBusiness(ctx context.Context, businessID int64) (*domain.Business, error)
	BookingPolicy(ctx context.Context, businessID int64) (domain.BookingPolicy, error)
}

// PaymentGateway интерфейс платежного шлюза
type PaymentGateway interface {
	CreatePayment(ctx context.Context, p wompi.PaymentRequest) (*wompi.Payment, error)
}

// CalendarLocker блокировка календаря специалиста на дату
type CalendarLocker interface {
	Acquire(ctx context.Context, specialistID domain.UserID, date time.Time) (func(), error)
}

// EventPublisher публикатор доменных событий
type EventPublisher interface {
	PublishAppointmentCreated(ctx context.Context, event events.AppointmentCreated) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
