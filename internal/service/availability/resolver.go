package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Diana0617/BC-sub011/internal/domain"
	branchRepo "github.com/Diana0617/BC-sub011/internal/infra/storage/branch"
	catalogRepo "github.com/Diana0617/BC-sub011/internal/infra/storage/catalog"
	scheduleRepo "github.com/Diana0617/BC-sub011/internal/infra/storage/schedule"
	"github.com/Diana0617/BC-sub011/internal/service/rules"
	"github.com/Diana0617/BC-sub011/internal/service/specialists"
)

// businessContext часовой пояс, политика и текущее время бизнеса.
// Загружается один раз на запрос, в том числе для диапазона дат
type businessContext struct {
	businessID int64
	loc        *time.Location
	policy     domain.BookingPolicy
	now        time.Time
}

// dayPlan результат разрешения расписания на день
type dayPlan struct {
	date       time.Time // полночь в часовом поясе бизнеса
	dayOfWeek  string
	branch     *domain.Branch
	specialist *domain.SpecialistIdentity
	service    *domain.Service
	window     domain.WorkingWindow
	closed     bool
	message    string
}

func (s *Service) loadBusinessContext(ctx context.Context, businessID int64) (*businessContext, error) {
	business, err := s.rules.GetBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, rules.ErrBusinessNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("%w: load business: %w", ErrInternal, err)
	}

	loc := s.defaultLoc
	if business.Timezone != "" {
		if l, err := time.LoadLocation(business.Timezone); err == nil {
			loc = l
		} else {
			s.logger.Warn("availability: business=%d has invalid timezone %q, using %s", businessID, business.Timezone, loc)
		}
	}

	policy, err := s.rules.BookingPolicy(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("%w: load booking policy: %w", ErrInternal, err)
	}

	return &businessContext{
		businessID: businessID,
		loc:        loc,
		policy:     policy,
		now:        s.timeProvider.Now().In(loc),
	}, nil
}

// resolveDay разрешает рабочее окно специалиста в филиале на дату:
// филиал -> день недели -> часы филиала -> специалист -> расписание -> пересечение -> услуга
func (s *Service) resolveDay(ctx context.Context, bc *businessContext, branchID int64, ref domain.SpecialistRef, serviceID int64, date time.Time) (*dayPlan, error) {
	branch, err := s.getBranch(ctx, bc.businessID, branchID)
	if err != nil {
		return nil, err
	}

	day := startOfDay(date, bc.loc)
	plan := &dayPlan{
		date:      day,
		dayOfWeek: domain.WeekdayName(day),
		branch:    branch,
	}

	hours := branch.BusinessHours.ForDate(day)
	if hours.Closed || hours.Window.IsEmpty() {
		plan.closed = true
		plan.message = MessageBranchClosed
		return plan, nil
	}

	specialist, err := s.specialists.Resolve(ctx, bc.businessID, ref)
	if err != nil {
		if errors.Is(err, specialists.ErrSpecialistNotFound) || errors.Is(err, specialists.ErrInvalidInput) {
			return nil, ErrSpecialistNotFound
		}
		return nil, fmt.Errorf("%w: resolve specialist: %w", ErrInternal, err)
	}
	plan.specialist = &specialist

	window, err := s.specialistWindow(ctx, specialist, branch.ID, plan.dayOfWeek, hours.Window)
	if err != nil {
		return nil, err
	}
	plan.window = window

	service, err := s.getService(ctx, bc.businessID, serviceID)
	if err != nil {
		return nil, err
	}
	plan.service = service

	if window.IsEmpty() {
		plan.message = MessageNoOverlap
	}

	return plan, nil
}

// specialistWindow пересекает часы филиала с расписанием специалиста.
// Без расписания специалист работает все часы филиала
func (s *Service) specialistWindow(ctx context.Context, specialist domain.SpecialistIdentity, branchID int64, dayOfWeek string, branchWindow domain.WorkingWindow) (domain.WorkingWindow, error) {
	schedule, err := s.scheduleRepo.GetActive(ctx, specialist.ProfileID, branchID, dayOfWeek)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return branchWindow, nil
		}
		return domain.WorkingWindow{}, fmt.Errorf("%w: get schedule: %w", ErrInternal, err)
	}

	return branchWindow.Intersect(domain.WorkingWindow{Start: schedule.StartTime, End: schedule.EndTime}), nil
}

// getBranch получает активный филиал бизнеса
func (s *Service) getBranch(ctx context.Context, businessID, branchID int64) (*domain.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, businessID, branchID)
	if err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			return nil, ErrBranchNotFound
		}
		return nil, fmt.Errorf("%w: get branch: %w", ErrInternal, err)
	}
	if !branch.IsActive() {
		return nil, ErrBranchNotFound
	}
	return branch, nil
}

func (s *Service) getService(ctx context.Context, businessID, serviceID int64) (*domain.Service, error) {
	service, err := s.serviceRepo.GetByID(ctx, businessID, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: get service: %w", ErrInternal, err)
	}
	if !service.IsActive || service.Duration <= 0 {
		return nil, ErrServiceNotFound
	}
	return service, nil
}

// dayAppointments получает активные записи специалиста в филиале, пересекающие день
func (s *Service) dayAppointments(ctx context.Context, businessID, branchID int64, specialistID domain.UserID, day time.Time) ([]*domain.Appointment, error) {
	from := day
	to := day.AddDate(0, 0, 1)

	appointments, err := s.appointmentRepo.List(ctx, domain.AppointmentsFilter{
		BusinessID:   businessID,
		BranchID:     &branchID,
		SpecialistID: &specialistID,
		From:         &from,
		To:           &to,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: list appointments: %w", ErrInternal, err)
	}
	return appointments, nil
}
