package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/Diana0617/BC-sub011/pkg/types"
)

// ErrInvalidBusinessHours возвращается, когда конфигурация часов работы филиала не читается
var ErrInvalidBusinessHours = errors.New("invalid branch business hours")

// BranchStatus статус филиала
type BranchStatus string

const (
	BranchStatusActive   BranchStatus = "ACTIVE"
	BranchStatusInactive BranchStatus = "INACTIVE"
)

// Branch филиал бизнеса со своими часами работы
type Branch struct {
	ID            int64
	BusinessID    int64
	Name          string
	Status        BranchStatus
	BusinessHours BusinessHours
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsActive returns true if the branch accepts appointments
func (b *Branch) IsActive() bool {
	return b.Status == BranchStatusActive
}

// Break перерыв внутри смены
type Break struct {
	Start types.TimeString
	End   types.TimeString
}

// WorkingWindow нормализованное рабочее окно дня.
// Breaks читаются из конфигурации, но из доступности пока не вычитаются
type WorkingWindow struct {
	Start  types.TimeString
	End    types.TimeString
	Breaks []Break
}

// IsEmpty returns true if the window has no room for any slot
func (w WorkingWindow) IsEmpty() bool {
	return !w.Start.IsBefore(w.End)
}

// Contains returns true if [start, end) lies fully inside the window
func (w WorkingWindow) Contains(start, end types.TimeString) bool {
	return !start.IsBefore(w.Start) && !end.IsAfter(w.End) && start.IsBefore(end)
}

// Intersect возвращает пересечение двух окон. Перерывы берутся из w
func (w WorkingWindow) Intersect(other WorkingWindow) WorkingWindow {
	result := WorkingWindow{Start: w.Start, End: w.End, Breaks: w.Breaks}
	if other.Start.IsAfter(result.Start) {
		result.Start = other.Start
	}
	if other.End.IsBefore(result.End) {
		result.End = other.End
	}
	return result
}

// DayHours часы работы филиала на один день недели
type DayHours struct {
	Closed bool
	Window WorkingWindow
}

// BusinessHours часы работы филиала по дням недели (ключ - "monday", "tuesday", ...)
type BusinessHours map[string]DayHours

// ForDate возвращает часы работы на день недели даты.
// Отсутствующий день считается выходным
func (h BusinessHours) ForDate(date time.Time) DayHours {
	day, ok := h[WeekdayName(date)]
	if !ok {
		return DayHours{Closed: true}
	}
	return day
}

// WeekdayName возвращает название дня недели в нижнем регистре (0 = sunday)
func WeekdayName(date time.Time) string {
	return strings.ToLower(date.Weekday().String())
}

// rawShift смена в текущем формате
type rawShift struct {
	Start      string  `json:"start"`
	End        string  `json:"end"`
	BreakStart *string `json:"breakStart,omitempty"`
	BreakEnd   *string `json:"breakEnd,omitempty"`
}

// rawDay объединяет оба поддерживаемых формата дня:
// legacy {open, close} и текущий {shifts: [...]}
type rawDay struct {
	Open    *string    `json:"open,omitempty"`
	Close   *string    `json:"close,omitempty"`
	Closed  *bool      `json:"closed,omitempty"`
	Enabled *bool      `json:"enabled,omitempty"`
	Shifts  []rawShift `json:"shifts,omitempty"`
}

// ParseBusinessHours читает JSON часов работы филиала и нормализует оба формата
// в единое WorkingWindow. Вызывается один раз при чтении филиала из хранилища
func ParseBusinessHours(raw []byte) (BusinessHours, error) {
	hours := make(BusinessHours)
	if len(raw) == 0 || string(raw) == "null" {
		return hours, nil
	}

	var days map[string]*rawDay
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBusinessHours, err)
	}

	for name, day := range days {
		key := strings.ToLower(strings.TrimSpace(name))
		if day == nil {
			hours[key] = DayHours{Closed: true}
			continue
		}
		dayHours, err := normalizeDay(day)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidBusinessHours, key, err)
		}
		hours[key] = dayHours
	}

	return hours, nil
}

func normalizeDay(day *rawDay) (DayHours, error) {
	if (day.Closed != nil && *day.Closed) || (day.Enabled != nil && !*day.Enabled) {
		return DayHours{Closed: true}, nil
	}

	// Текущий формат: используется только первая смена
	if len(day.Shifts) > 0 {
		shift := day.Shifts[0]
		start, err := types.ParseTime(shift.Start)
		if err != nil {
			return DayHours{}, err
		}
		end, err := types.ParseTime(shift.End)
		if err != nil {
			return DayHours{}, err
		}

		window := WorkingWindow{Start: start, End: end}
		if shift.BreakStart != nil && shift.BreakEnd != nil && *shift.BreakStart != "" && *shift.BreakEnd != "" {
			breakStart, err := types.ParseTime(*shift.BreakStart)
			if err != nil {
				return DayHours{}, err
			}
			breakEnd, err := types.ParseTime(*shift.BreakEnd)
			if err != nil {
				return DayHours{}, err
			}
			window.Breaks = []Break{{Start: breakStart, End: breakEnd}}
		}
		return DayHours{Window: window}, nil
	}

	// Legacy формат
	if day.Open != nil && day.Close != nil && *day.Open != "" && *day.Close != "" {
		start, err := types.ParseTime(*day.Open)
		if err != nil {
			return DayHours{}, err
		}
		end, err := types.ParseTime(*day.Close)
		if err != nil {
			return DayHours{}, err
		}
		return DayHours{Window: WorkingWindow{Start: start, End: end}}, nil
	}

	return DayHours{Closed: true}, nil
}
