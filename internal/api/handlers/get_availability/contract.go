package get_availability

import (
	"context"

	"github.com/Diana0617/BC-sub011/internal/service/availability"
)

type AvailabilityService interface {
	GenerateAvailableSlots(ctx context.Context, req *availability.SlotsRequest) (*availability.DayAvailability, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
