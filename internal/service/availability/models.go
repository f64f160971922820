package availability

import (
	"time"

	"github.com/Diana0617/BC-sub011/internal/domain"
	"github.com/Diana0617/BC-sub011/pkg/types"
)

// Сообщения для дней без доступных слотов
const (
	MessageBranchClosed  = "branch closed"
	MessageNoOverlap     = "specialist schedule does not overlap branch hours"
	MessageDateInPast    = "date is in the past"
	MessageFullyOccupied = "no available slots"
)

// SlotsRequest запрос слотов специалиста на день
type SlotsRequest struct {
	BusinessID int64
	BranchID   int64
	Specialist domain.SpecialistRef
	ServiceID  int64
	Date       time.Time
}

// RangeRequest запрос слотов на диапазон дат (включительно)
type RangeRequest struct {
	BusinessID int64
	BranchID   int64
	Specialist domain.SpecialistRef
	ServiceID  int64
	StartDate  time.Time
	EndDate    time.Time
}

// SpecialistsRequest запрос специалистов, свободных в конкретный слот
type SpecialistsRequest struct {
	BusinessID int64
	BranchID   int64
	ServiceID  int64
	Date       time.Time
	Time       types.TimeString
}

// ValidateRequest запрос проверки доступности интервала
type ValidateRequest struct {
	BusinessID int64
	BranchID   int64
	Specialist domain.SpecialistRef
	ServiceID  int64
	StartTime  time.Time
	EndTime    time.Time
}

// BranchInfo краткая информация о филиале
type BranchInfo struct {
	ID   int64
	Name string
}

// ServiceInfo краткая информация об услуге
type ServiceInfo struct {
	ID       int64
	Name     string
	Duration int
	Price    string
}

// DayAvailability доступность специалиста на день
type DayAvailability struct {
	Date           time.Time
	DayOfWeek      string
	Branch         BranchInfo
	Specialist     *domain.SpecialistIdentity
	Service        *ServiceInfo
	WorkingHours   *domain.WorkingWindow
	Slots          []domain.Slot
	TotalSlots     int
	AvailableSlots int
	OccupiedSlots  int
	Closed         bool
	Message        string
}

// AvailableSpecialist специалист, свободный в запрошенный слот
type AvailableSpecialist struct {
	Specialist   domain.SpecialistIdentity
	WorkingHours domain.WorkingWindow
	Slot         domain.Slot
}
