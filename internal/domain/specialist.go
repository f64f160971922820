package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Diana0617/BC-sub011/pkg/types"
)

// UserRole роль пользователя внутри бизнеса
type UserRole string

const (
	RoleBusiness               UserRole = "BUSINESS"
	RoleSpecialist             UserRole = "SPECIALIST"
	RoleReceptionistSpecialist UserRole = "RECEPTIONIST_SPECIALIST"
	RoleReceptionist           UserRole = "RECEPTIONIST"
	RoleClient                 UserRole = "CLIENT"
)

// UserStatus статус пользователя
type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

// SpecialistRoles роли, которым можно назначать записи
var SpecialistRoles = []UserRole{
	RoleBusiness,
	RoleSpecialist,
	RoleReceptionistSpecialist,
}

// CanAttendAppointments returns true if users with this role can be booked as specialists
func (r UserRole) CanAttendAppointments() bool {
	for _, role := range SpecialistRoles {
		if r == role {
			return true
		}
	}
	return false
}

// DefaultSpecialization текст специализации для лениво созданного профиля
func (r UserRole) DefaultSpecialization() string {
	switch r {
	case RoleBusiness:
		return "Propietario - Especialista"
	case RoleReceptionistSpecialist:
		return "Recepcionista - Especialista"
	default:
		return "Especialista"
	}
}

// User пользователь бизнеса
type User struct {
	ID         UserID
	BusinessID int64
	FirstName  string
	LastName   string
	Email      string
	Role       UserRole
	Status     UserStatus
}

// IsActive returns true if the user account is active
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// SpecialistProfile профиль специалиста, один на пару (user, business)
type SpecialistProfile struct {
	ID             SpecialistProfileID
	UserID         UserID
	BusinessID     int64
	Specialization string
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SpecialistCandidate специалист из выборки по услуге вместе с ролью пользователя.
// Роль задает специализацию профиля, если его придется создать
type SpecialistCandidate struct {
	Identity SpecialistIdentity
	Role     UserRole
}

// SpecialistService услуга, которую оказывает специалист
type SpecialistService struct {
	SpecialistID UserID
	ServiceID    int64
	IsActive     bool
	CustomPrice  *decimal.Decimal
}

// SpecialistBranchSchedule рабочее время специалиста в филиале на день недели
type SpecialistBranchSchedule struct {
	ID                  int64
	SpecialistProfileID SpecialistProfileID
	BranchID            int64
	DayOfWeek           string
	StartTime           types.TimeString
	EndTime             types.TimeString
	IsActive            bool
}
