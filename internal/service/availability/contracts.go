package availability

import (
	"context"
	"time"

	"github.com/Diana0617/BC-sub011/internal/domain"
)

// BranchRepository интерфейс репозитория филиалов
type BranchRepository interface {
	GetByID(ctx context.Context, businessID, branchID int64) (*domain.Branch, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, businessID, serviceID int64) (*domain.Service, error)
}

// ScheduleRepository интерфейс репозитория расписаний специалистов
type ScheduleRepository interface {
	GetActive(ctx context.Context, profileID domain.SpecialistProfileID, branchID int64, dayOfWeek string) (*domain.SpecialistBranchSchedule, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// SpecialistResolver нормализатор идентификаторов специалиста
type SpecialistResolver interface {
	Resolve(ctx context.Context, businessID int64, ref domain.SpecialistRef) (domain.SpecialistIdentity, error)
	ListForService(ctx context.Context, businessID, serviceID int64) ([]domain.SpecialistIdentity, error)
}

// RulesProvider бизнес и его политика записи
type RulesProvider interface {
	GetBusiness(ctx context.Context, businessID int64) (*domain.Business, error)
	BookingPolicy(ctx context.Context, businessID int64) (domain.BookingPolicy, error)
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
