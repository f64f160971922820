package get_available_specialists

import (
	"context"

	"github.com/Diana0617/BC-sub011/internal/service/availability"
)

type AvailabilityService interface {
	GetAvailableSpecialists(ctx context.Context, req *availability.SpecialistsRequest) ([]availability.AvailableSpecialist, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
