package create_booking

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/Diana0617/BC-sub011/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessId must be positive", ErrInvalidInput)
	}

	if req.BranchID <= 0 {
		return fmt.Errorf("%w: branchId must be positive", ErrInvalidInput)
	}

	if err := req.Specialist.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one service is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) > domain.MaxServicesPerBooking {
		return fmt.Errorf("%w: at most %d services per booking", ErrInvalidInput, domain.MaxServicesPerBooking)
	}

	seen := make(map[int64]struct{}, len(req.ServiceIDs))
	for _, id := range req.ServiceIDs {
		if id <= 0 {
			return fmt.Errorf("%w: serviceIds must be positive", ErrInvalidInput)
		}
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: service %d is listed twice", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %w", ErrInvalidInput, err)
	}

	if strings.TrimSpace(req.Client.FirstName) == "" {
		return fmt.Errorf("%w: client firstName is required", ErrInvalidInput)
	}

	email := domain.NormalizeEmail(req.Client.Email)
	if email == "" || !strings.Contains(email, "@") {
		return fmt.Errorf("%w: client email is invalid", ErrInvalidInput)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	switch req.PaymentMethod {
	case "", domain.PaymentMethodOnSite, domain.PaymentMethodOnline:
	default:
		return fmt.Errorf("%w: unknown paymentMethod %q", ErrInvalidInput, req.PaymentMethod)
	}

	return nil
}

// validateDate проверяет, что дата подходит для записи
func validateDate(day, now time.Time, policy domain.BookingPolicy) error {
	if isDateInPast(day, now) {
		return ErrInvalidDate
	}

	if policy.IsDateTooFar(day, now) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, policy.AdvanceBookingDays)
	}

	return nil
}

// validateBookingTime проверяет минимальное время до начала записи
func validateBookingTime(start, now time.Time, policy domain.BookingPolicy) error {
	if start.Before(policy.EarliestStart(now)) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, policy.MinBookingNoticeMinutes)
	}
	return nil
}

// summarizeServices считает общую длительность и стоимость и строит строки услуг записи
// в порядке запроса
func summarizeServices(ids []int64, services map[int64]*domain.Service) (int, decimal.Decimal, []domain.AppointmentService) {
	duration := 0
	total := decimal.Zero
	lines := make([]domain.AppointmentService, 0, len(ids))

	for i, id := range ids {
		s := services[id]
		duration += s.Duration
		total = total.Add(s.Price)
		lines = append(lines, domain.AppointmentService{
			ServiceID: id,
			Price:     s.Price,
			Duration:  s.Duration,
			Order:     i,
		})
	}

	return duration, total, lines
}

// countOverlapping подсчитывает активные записи, пересекающие интервал [start, end)
func countOverlapping(start, end time.Time, appointments []*domain.Appointment) int {
	count := 0

	for _, apt := range appointments {
		if !apt.IsActive() {
			continue
		}

		// Строгие неравенства: граничные случаи не считаются
		if apt.StartTime.Before(end) && apt.EndTime.After(start) {
			count++
		}
	}

	return count
}

// startOfDay возвращает полночь календарной даты date в часовом поясе loc
func startOfDay(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(day, now time.Time) bool {
	return day.Before(startOfDay(now.In(day.Location()), day.Location()))
}
