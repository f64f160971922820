package availability

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Diana0617/BC-sub011/internal/domain"
	"github.com/Diana0617/BC-sub011/pkg/metrics"
	"github.com/Diana0617/BC-sub011/pkg/types"
)

const defaultRangeConcurrency = 4

// Service расчет доступных слотов
type Service struct {
	branchRepo      BranchRepository
	serviceRepo     ServiceRepository
	scheduleRepo    ScheduleRepository
	appointmentRepo AppointmentRepository
	specialists     SpecialistResolver
	rules           RulesProvider
	timeProvider    TimeProvider
	logger          Logger
	metrics         *metrics.Metrics

	defaultLoc       *time.Location
	rangeConcurrency int
}

// Option настройка сервиса
type Option func(*Service)

// WithTimeProvider подменяет источник времени
func WithTimeProvider(tp TimeProvider) Option {
	return func(s *Service) { s.timeProvider = tp }
}

// WithMetrics включает метрики расчета слотов
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithRangeConcurrency ограничивает число дней, считаемых параллельно
func WithRangeConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.rangeConcurrency = n
		}
	}
}

// NewService создает новый экземпляр сервиса доступности.
// defaultLoc используется для бизнесов без корректного часового пояса
func NewService(
	branchRepo BranchRepository,
	serviceRepo ServiceRepository,
	scheduleRepo ScheduleRepository,
	appointmentRepo AppointmentRepository,
	specialists SpecialistResolver,
	rules RulesProvider,
	defaultLoc *time.Location,
	logger Logger,
	opts ...Option,
) *Service {
	s := &Service{
		branchRepo:       branchRepo,
		serviceRepo:      serviceRepo,
		scheduleRepo:     scheduleRepo,
		appointmentRepo:  appointmentRepo,
		specialists:      specialists,
		rules:            rules,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
		defaultLoc:       defaultLoc,
		rangeConcurrency: defaultRangeConcurrency,
	}
	if s.defaultLoc == nil {
		s.defaultLoc = time.UTC
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateAvailableSlots возвращает свободные слоты специалиста в филиале на дату.
// Выходной день филиала - обычный результат с Closed=true и пустыми слотами
func (s *Service) GenerateAvailableSlots(ctx context.Context, req *SlotsRequest) (*DayAvailability, error) {
	if err := validateSlotsRequest(req.BusinessID, req.BranchID, req.Specialist, req.ServiceID, req.Date); err != nil {
		return nil, err
	}

	s.logger.Info("GenerateAvailableSlots: business=%d branch=%d specialist=%s service=%d date=%s",
		req.BusinessID, req.BranchID, req.Specialist, req.ServiceID, req.Date.Format(domain.DateFormat))

	bc, err := s.loadBusinessContext(ctx, req.BusinessID)
	if err != nil {
		s.observe("error")
		return nil, err
	}

	result, err := s.generateForDay(ctx, bc, req.BranchID, req.Specialist, req.ServiceID, req.Date)
	if err != nil {
		s.observe("error")
		s.logger.Warn("GenerateAvailableSlots: business=%d branch=%d date=%s: %v",
			req.BusinessID, req.BranchID, req.Date.Format(domain.DateFormat), err)
		return nil, err
	}

	return result, nil
}

func (s *Service) generateForDay(ctx context.Context, bc *businessContext, branchID int64, ref domain.SpecialistRef, serviceID int64, date time.Time) (*DayAvailability, error) {
	day := startOfDay(date, bc.loc)
	if bc.policy.IsDateTooFar(day, bc.now) {
		return nil, fmt.Errorf("%w: %s exceeds %d days", ErrDateTooFarInFuture, day.Format(domain.DateFormat), bc.policy.AdvanceBookingDays)
	}

	plan, err := s.resolveDay(ctx, bc, branchID, ref, serviceID, date)
	if err != nil {
		return nil, err
	}

	result := &DayAvailability{
		Date:       plan.date,
		DayOfWeek:  plan.dayOfWeek,
		Branch:     BranchInfo{ID: plan.branch.ID, Name: plan.branch.Name},
		Specialist: plan.specialist,
		Slots:      []domain.Slot{},
		Closed:     plan.closed,
		Message:    plan.message,
	}
	if plan.service != nil {
		result.Service = &ServiceInfo{
			ID:       plan.service.ID,
			Name:     plan.service.Name,
			Duration: plan.service.Duration,
			Price:    plan.service.Price.StringFixed(2),
		}
	}

	if plan.closed {
		s.observe("closed")
		return result, nil
	}

	window := plan.window
	result.WorkingHours = &window
	if window.IsEmpty() {
		s.observe("no_overlap")
		return result, nil
	}

	if day.Before(startOfDay(bc.now, bc.loc)) {
		result.Message = MessageDateInPast
		s.observe("past")
		return result, nil
	}

	all := GenerateTimeSlots(window.Start, window.End, plan.service.Duration)

	appointments, err := s.dayAppointments(ctx, bc.businessID, plan.branch.ID, plan.specialist.UserID, day)
	if err != nil {
		return nil, err
	}

	free := FilterOccupied(all, appointments, day)
	free = dropBeforeNotice(free, day, bc.policy.EarliestStart(bc.now))

	result.Slots = free
	result.TotalSlots = len(all)
	result.AvailableSlots = len(free)
	result.OccupiedSlots = len(all) - len(FilterOccupied(all, appointments, day))
	if len(free) == 0 {
		result.Message = MessageFullyOccupied
	}

	s.observe("ok")
	return result, nil
}

// GetAvailabilityRange считает слоты на каждый день диапазона [StartDate, EndDate].
// В результат попадают только дни хотя бы с одним слотом.
// Ошибка отдельного дня логируется, и день пропускается
func (s *Service) GetAvailabilityRange(ctx context.Context, req *RangeRequest) ([]*DayAvailability, error) {
	if err := validateSlotsRequest(req.BusinessID, req.BranchID, req.Specialist, req.ServiceID, req.StartDate); err != nil {
		return nil, err
	}
	if req.EndDate.IsZero() || req.EndDate.Before(req.StartDate) {
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	bc, err := s.loadBusinessContext(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}

	first := startOfDay(req.StartDate, bc.loc)
	last := startOfDay(req.EndDate, bc.loc)
	days := calendarDays(first, last)
	if days > domain.MaxAvailabilityDays {
		return nil, fmt.Errorf("%w: %d days requested, max %d", ErrRangeTooLarge, days, domain.MaxAvailabilityDays)
	}

	s.logger.Info("GetAvailabilityRange: business=%d branch=%d specialist=%s service=%d %s..%s",
		req.BusinessID, req.BranchID, req.Specialist, req.ServiceID,
		first.Format(domain.DateFormat), last.Format(domain.DateFormat))

	results := make([]*DayAvailability, days)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.rangeConcurrency)

	for i := 0; i < days; i++ {
		i := i
		date := first.AddDate(0, 0, i)
		g.Go(func() error {
			day, err := s.generateForDay(gctx, bc, req.BranchID, req.Specialist, req.ServiceID, date)
			if err != nil {
				s.observe("error")
				s.logger.Warn("GetAvailabilityRange: skipping %s: %v", date.Format(domain.DateFormat), err)
				return nil
			}
			results[i] = day
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	available := make([]*DayAvailability, 0, days)
	for _, day := range results {
		if day != nil && day.AvailableSlots > 0 {
			available = append(available, day)
		}
	}

	return available, nil
}

// GetAvailableSpecialists возвращает специалистов, оказывающих услугу и свободных
// в интервале [Time, Time+длительность услуги) на дату
func (s *Service) GetAvailableSpecialists(ctx context.Context, req *SpecialistsRequest) ([]AvailableSpecialist, error) {
	if req.BusinessID <= 0 || req.BranchID <= 0 || req.ServiceID <= 0 || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: businessId, branchId, serviceId and date are required", ErrInvalidInput)
	}
	if err := req.Time.Validate(); err != nil {
		return nil, fmt.Errorf("%w: time: %w", ErrInvalidInput, err)
	}

	bc, err := s.loadBusinessContext(ctx, req.BusinessID)
	if err != nil {
		return nil, err
	}

	branch, err := s.getBranch(ctx, req.BusinessID, req.BranchID)
	if err != nil {
		return nil, err
	}

	service, err := s.getService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		return nil, err
	}

	slotEnd, err := req.Time.AddMinutes(service.Duration)
	if err != nil {
		return nil, fmt.Errorf("%w: slot exceeds the day: %w", ErrInvalidInput, err)
	}
	slot := domain.Slot{StartTime: req.Time, EndTime: slotEnd}

	day := startOfDay(req.Date, bc.loc)
	result := make([]AvailableSpecialist, 0)

	hours := branch.BusinessHours.ForDate(day)
	if hours.Closed || !hours.Window.Contains(slot.StartTime, slot.EndTime) {
		return result, nil
	}
	if slot.StartTime.On(day, bc.loc).Before(bc.policy.EarliestStart(bc.now)) {
		return result, nil
	}

	candidates, err := s.specialists.ListForService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("%w: list specialists: %w", ErrInternal, err)
	}

	dayOfWeek := domain.WeekdayName(day)
	for _, candidate := range candidates {
		window, err := s.specialistWindow(ctx, candidate, branch.ID, dayOfWeek, hours.Window)
		if err != nil {
			return nil, err
		}
		if !window.Contains(slot.StartTime, slot.EndTime) {
			continue
		}

		appointments, err := s.dayAppointments(ctx, req.BusinessID, branch.ID, candidate.UserID, day)
		if err != nil {
			return nil, err
		}
		if len(FilterOccupied([]domain.Slot{slot}, appointments, day)) == 0 {
			continue
		}

		result = append(result, AvailableSpecialist{
			Specialist:   candidate,
			WorkingHours: window,
			Slot:         slot,
		})
	}

	s.logger.Info("GetAvailableSpecialists: business=%d branch=%d service=%d %s %s: %d free",
		req.BusinessID, req.BranchID, req.ServiceID, day.Format(domain.DateFormat), req.Time, len(result))

	return result, nil
}

// ValidateSlotAvailability проверяет, что интервал [StartTime, EndTime) лежит в рабочем окне
// специалиста и не пересекается с активными записями
func (s *Service) ValidateSlotAvailability(ctx context.Context, req *ValidateRequest) (bool, error) {
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return false, fmt.Errorf("%w: startTime and endTime are required", ErrInvalidInput)
	}
	if !req.EndTime.After(req.StartTime) {
		return false, fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
	}
	if err := validateSlotsRequest(req.BusinessID, req.BranchID, req.Specialist, req.ServiceID, req.StartTime); err != nil {
		return false, err
	}

	bc, err := s.loadBusinessContext(ctx, req.BusinessID)
	if err != nil {
		return false, err
	}

	start := req.StartTime.In(bc.loc)
	end := req.EndTime.In(bc.loc)
	day := startOfDay(start, bc.loc)

	// Интервал через полночь не помещается ни в одно рабочее окно
	if end.After(day.AddDate(0, 0, 1)) {
		return false, nil
	}

	plan, err := s.resolveDay(ctx, bc, req.BranchID, req.Specialist, req.ServiceID, day)
	if err != nil {
		return false, err
	}
	if plan.closed || plan.window.IsEmpty() {
		return false, nil
	}

	interval := domain.Slot{
		StartTime: minutesToTime(wallMinutes(start, day)),
		EndTime:   minutesToTime(wallMinutes(end, day)),
	}
	if !plan.window.Contains(interval.StartTime, interval.EndTime) {
		return false, nil
	}

	appointments, err := s.dayAppointments(ctx, bc.businessID, plan.branch.ID, plan.specialist.UserID, day)
	if err != nil {
		return false, err
	}

	return len(FilterOccupied([]domain.Slot{interval}, appointments, day)) == 1, nil
}

func (s *Service) observe(result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.SlotsComputedTotal.WithLabelValues(result).Inc()
}

func validateSlotsRequest(businessID, branchID int64, specialist domain.SpecialistRef, serviceID int64, date time.Time) error {
	if businessID <= 0 || branchID <= 0 {
		return fmt.Errorf("%w: businessId and branchId are required", ErrInvalidInput)
	}
	if err := specialist.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if serviceID <= 0 {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}
	if date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

// ParseTimeOfDay разбирает "HH:MM" из запроса
func ParseTimeOfDay(s string) (types.TimeString, error) {
	t, err := types.ParseTime(s)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return t, nil
}
