package get_booking_policy

import (
	"context"

	"github.com/Diana0617/BC-sub011/internal/domain"
)

type RulesService interface {
	GetBusiness(ctx context.Context, businessID int64) (*domain.Business, error)
	BookingPolicy(ctx context.Context, businessID int64) (domain.BookingPolicy, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
