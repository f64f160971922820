package availability

import (
	"time"

	"github.com/Diana0617/BC-sub011/internal/domain"
	"github.com/Diana0617/BC-sub011/pkg/types"
)

const minutesPerDay = 24 * 60

// GenerateTimeSlots нарезает окно [start, end) на последовательные слоты длиной duration минут.
// Неполный хвостовой слот отбрасывается, количество слотов = floor((end-start)/duration)
func GenerateTimeSlots(start, end types.TimeString, duration int) []domain.Slot {
	slots := make([]domain.Slot, 0)
	if duration <= 0 {
		return slots
	}

	from, to := start.Minutes(), end.Minutes()
	if from < 0 || to < 0 {
		return slots
	}

	for m := from; m+duration <= to; m += duration {
		slots = append(slots, domain.Slot{
			StartTime: minutesToTime(m),
			EndTime:   minutesToTime(m + duration),
		})
	}

	return slots
}

// FilterOccupied убирает слоты, пересекающиеся с активными записями.
// day - полночь дня слотов в часовом поясе бизнеса. Порядок слотов сохраняется
func FilterOccupied(slots []domain.Slot, appointments []*domain.Appointment, day time.Time) []domain.Slot {
	busy := make([]domain.Slot, 0, len(appointments))
	for _, apt := range appointments {
		if !apt.IsActive() {
			continue
		}
		if interval, ok := appointmentInterval(apt, day); ok {
			busy = append(busy, interval)
		}
	}

	free := make([]domain.Slot, 0, len(slots))
	for _, slot := range slots {
		if !overlapsAny(slot, busy) {
			free = append(free, slot)
		}
	}

	return free
}

func overlapsAny(slot domain.Slot, busy []domain.Slot) bool {
	for _, b := range busy {
		if slot.Overlaps(b.StartTime, b.EndTime) {
			return true
		}
	}
	return false
}

// appointmentInterval переводит запись в интервал времени дня day.
// Части записи за пределами дня обрезаются
func appointmentInterval(apt *domain.Appointment, day time.Time) (domain.Slot, bool) {
	start := wallMinutes(apt.StartTime, day)
	end := wallMinutes(apt.EndTime, day)

	if end <= 0 || start >= minutesPerDay || end <= start {
		return domain.Slot{}, false
	}
	if start < 0 {
		start = 0
	}
	if end > minutesPerDay {
		end = minutesPerDay
	}

	return domain.Slot{StartTime: minutesToTime(start), EndTime: minutesToTime(end)}, true
}

// dropBeforeNotice убирает слоты, начинающиеся раньше earliest.
// earliest - минимально допустимое начало в часовом поясе бизнеса
func dropBeforeNotice(slots []domain.Slot, day, earliest time.Time) []domain.Slot {
	minStart := wallMinutes(earliest, day)
	if minStart <= 0 {
		return slots
	}

	result := make([]domain.Slot, 0, len(slots))
	for _, slot := range slots {
		if slot.StartTime.Minutes() >= minStart {
			result = append(result, slot)
		}
	}
	return result
}

// startOfDay возвращает полночь даты в часовом поясе loc
func startOfDay(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// wallMinutes минуты от полуночи дня day по настенным часам его часового пояса.
// Моменты других дат дают значения вне [0, minutesPerDay)
func wallMinutes(t, day time.Time) int {
	local := t.In(day.Location())
	return dayOffset(day, local)*minutesPerDay + local.Hour()*60 + local.Minute()
}

// dayOffset число календарных дней от даты from до даты to
func dayOffset(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}

// calendarDays число дат в диапазоне [first, last] включительно
func calendarDays(first, last time.Time) int {
	return dayOffset(first, last) + 1
}

func minutesToTime(m int) types.TimeString {
	t, _ := types.MustTimeString("00:00").AddMinutes(m)
	return t
}
