package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAppointment_Transitions(t *testing.T) {
	tests := []struct {
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCanceled, true},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusInProgress, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCanceled, false},
		{StatusCompleted, StatusCanceled, false},
		{StatusCanceled, StatusConfirmed, false},
	}

	for _, tt := range tests {
		apt := &Appointment{Status: tt.from}
		assert.Equal(t, tt.want, apt.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestAppointment_IsActive(t *testing.T) {
	assert.True(t, (&Appointment{Status: StatusPending}).IsActive())
	assert.True(t, (&Appointment{Status: StatusRescheduled}).IsActive())
	assert.False(t, (&Appointment{Status: StatusCanceled}).IsActive())
	assert.False(t, (&Appointment{Status: StatusNoShow}).IsActive())
	assert.True(t, (&Appointment{Status: StatusCompleted}).IsFinal())
}

func TestAppointment_DurationMinutes(t *testing.T) {
	start := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	apt := &Appointment{StartTime: start, EndTime: start.Add(90 * time.Minute)}
	assert.Equal(t, 90, apt.DurationMinutes())
}

func TestSlot_Overlaps(t *testing.T) {
	slot := Slot{StartTime: "11:30", EndTime: "12:00"}

	assert.True(t, slot.Overlaps("11:20", "11:40"))
	assert.True(t, slot.Overlaps("11:00", "13:00"))
	assert.False(t, slot.Overlaps("11:00", "11:30"))
	assert.False(t, slot.Overlaps("12:00", "12:30"))
}

func TestBookingPolicy_IsDateTooFar(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	unlimited := DefaultBookingPolicy()
	assert.False(t, unlimited.IsDateTooFar(now.AddDate(1, 0, 0), now))

	limited := BookingPolicy{AdvanceBookingDays: 7}
	assert.False(t, limited.IsDateTooFar(time.Date(2025, 3, 17, 0, 0, 0, 0, time.UTC), now))
	assert.True(t, limited.IsDateTooFar(time.Date(2025, 3, 18, 0, 0, 0, 0, time.UTC), now))
}

func TestUserRole(t *testing.T) {
	assert.True(t, RoleBusiness.CanAttendAppointments())
	assert.True(t, RoleReceptionistSpecialist.CanAttendAppointments())
	assert.False(t, RoleReceptionist.CanAttendAppointments())
	assert.Equal(t, "Especialista", RoleSpecialist.DefaultSpecialization())
}
