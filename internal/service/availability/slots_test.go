package availability

import (
	"fmt"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diana0617/BC-sub011/internal/domain"
	"github.com/Diana0617/BC-sub011/pkg/types"
)

func TestGenerateTimeSlots(t *testing.T) {
	slots := GenerateTimeSlots("10:00", "15:00", 30)
	require.Len(t, slots, 10)
	assert.Equal(t, domain.Slot{StartTime: "10:00", EndTime: "10:30"}, slots[0])
	assert.Equal(t, domain.Slot{StartTime: "14:30", EndTime: "15:00"}, slots[9])

	// хвост 20 минут отбрасывается
	slots = GenerateTimeSlots("09:00", "10:50", 30)
	require.Len(t, slots, 3)
	assert.Equal(t, types.TimeString("10:30"), slots[2].EndTime)

	assert.Empty(t, GenerateTimeSlots("10:00", "10:00", 30))
	assert.Empty(t, GenerateTimeSlots("12:00", "10:00", 30))
	assert.Empty(t, GenerateTimeSlots("10:00", "12:00", 0))
	assert.Empty(t, GenerateTimeSlots("bad", "12:00", 30))

	slots = GenerateTimeSlots("23:00", "24:00", 60)
	require.Len(t, slots, 1)
	assert.Equal(t, types.TimeString("24:00"), slots[0].EndTime)
}

// Слот никогда не выходит за конец окна, количество = floor((end-start)/duration)
func TestGenerateTimeSlots_CountProperty(t *testing.T) {
	for start := 0; start <= 24*60; start += 35 {
		for end := start; end <= 24*60; end += 50 {
			for _, duration := range []int{5, 15, 30, 45, 60, 90, 120} {
				s, e := minutesToTime(start), minutesToTime(end)
				slots := GenerateTimeSlots(s, e, duration)

				name := fmt.Sprintf("%s-%s/%d", s, e, duration)
				assert.Len(t, slots, (end-start)/duration, name)
				for i, slot := range slots {
					assert.False(t, slot.EndTime.IsAfter(e), name)
					assert.Equal(t, duration, slot.DurationMinutes(), name)
					if i > 0 {
						assert.True(t, slots[i-1].EndTime.Equal(slot.StartTime), name)
					}
				}
			}
		}
	}
}

func appointmentAt(day time.Time, start, end string, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		StartTime: types.MustTimeString(start).On(day, day.Location()),
		EndTime:   types.MustTimeString(end).On(day, day.Location()),
		Status:    status,
	}
}

func TestFilterOccupied(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	slots := GenerateTimeSlots("10:00", "13:00", 30)

	appointments := []*domain.Appointment{
		appointmentAt(day, "10:30", "11:30", domain.StatusConfirmed),
		appointmentAt(day, "12:10", "12:20", domain.StatusPending),
		appointmentAt(day, "10:00", "13:00", domain.StatusCanceled),
		appointmentAt(day, "10:00", "13:00", domain.StatusNoShow),
	}

	free := FilterOccupied(slots, appointments, day)

	got := make([]string, len(free))
	for i, s := range free {
		got[i] = s.StartTime.String()
	}
	assert.Equal(t, []string{"10:00", "11:30", "12:30"}, got)
}

// Слот внутри записи всегда исключен, слот без пересечения всегда остается
func TestFilterOccupied_Property(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	slots := GenerateTimeSlots("08:00", "20:00", 15)

	for aptStart := 8 * 60; aptStart < 20*60; aptStart += 25 {
		for _, length := range []int{15, 40, 90} {
			aptEnd := aptStart + length
			apt := &domain.Appointment{
				StartTime: day.Add(time.Duration(aptStart) * time.Minute),
				EndTime:   day.Add(time.Duration(aptEnd) * time.Minute),
				Status:    domain.StatusConfirmed,
			}

			free := FilterOccupied(slots, []*domain.Appointment{apt}, day)
			freeSet := map[types.TimeString]bool{}
			for _, s := range free {
				freeSet[s.StartTime] = true
			}

			for _, s := range slots {
				from, to := s.StartTime.Minutes(), s.EndTime.Minutes()
				switch {
				case from >= aptStart && to <= aptEnd:
					assert.False(t, freeSet[s.StartTime], "slot %s inside %d-%d", s.StartTime, aptStart, aptEnd)
				case to <= aptStart || from >= aptEnd:
					assert.True(t, freeSet[s.StartTime], "slot %s outside %d-%d", s.StartTime, aptStart, aptEnd)
				}
			}
		}
	}
}

func TestFilterOccupied_AppointmentCrossingMidnight(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	apt := &domain.Appointment{
		StartTime: day.Add(-time.Hour),
		EndTime:   day.Add(30 * time.Minute),
		Status:    domain.StatusConfirmed,
	}

	free := FilterOccupied(GenerateTimeSlots("00:00", "01:00", 30), []*domain.Appointment{apt}, day)
	require.Len(t, free, 1)
	assert.Equal(t, types.TimeString("00:30"), free[0].StartTime)
}

func TestDropBeforeNotice(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	slots := GenerateTimeSlots("10:00", "12:00", 30)

	earliest := day.Add(11*time.Hour + 10*time.Minute)
	kept := dropBeforeNotice(slots, day, earliest)
	require.Len(t, kept, 1)
	assert.Equal(t, types.TimeString("11:30"), kept[0].StartTime)

	assert.Len(t, dropBeforeNotice(slots, day, day.Add(-time.Hour)), 4)
	assert.Empty(t, dropBeforeNotice(slots, day, day.AddDate(0, 0, 1)))
}

func TestWallMinutes_DST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	day := time.Date(2025, 3, 9, 0, 0, 0, 0, loc)
	assert.Equal(t, 10*60, wallMinutes(time.Date(2025, 3, 9, 14, 0, 0, 0, time.UTC), day))
	// конец дня приходится на полночь следующих суток
	assert.Equal(t, minutesPerDay, wallMinutes(day.AddDate(0, 0, 1), day))

	autumn := time.Date(2025, 11, 2, 0, 0, 0, 0, loc)
	assert.Equal(t, 10*60, wallMinutes(time.Date(2025, 11, 2, 10, 0, 0, 0, loc), autumn))

	first := time.Date(2025, 3, 8, 0, 0, 0, 0, loc)
	assert.Equal(t, 3, calendarDays(first, time.Date(2025, 3, 10, 0, 0, 0, 0, loc)))
	assert.Equal(t, 1, calendarDays(first, first))
}
