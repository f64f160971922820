package validate_slot

import (
	"context"

	"github.com/Diana0617/BC-sub011/internal/service/availability"
)

type AvailabilityService interface {
	ValidateSlotAvailability(ctx context.Context, req *availability.ValidateRequest) (bool, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
