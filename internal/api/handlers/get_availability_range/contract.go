package get_availability_range

import (
	"context"

	"github.com/Diana0617/BC-sub011/internal/service/availability"
)

type AvailabilityService interface {
	GetAvailabilityRange(ctx context.Context, req *availability.RangeRequest) ([]*availability.DayAvailability, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
