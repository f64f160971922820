package specialists

import (
	"context"

	"github.com/Diana0617/BC-sub011/internal/domain"
)

// SpecialistRepository интерфейс репозитория специалистов
type SpecialistRepository interface {
	FindProfileInBusiness(ctx context.Context, businessID int64, profileID domain.SpecialistProfileID) (*domain.SpecialistProfile, *domain.User, error)
	FindUserInBusiness(ctx context.Context, businessID int64, userID domain.UserID, roles []domain.UserRole) (*domain.User, error)
	FindProfileByUser(ctx context.Context, businessID int64, userID domain.UserID) (*domain.SpecialistProfile, error)
	CreateProfileIfNotExists(ctx context.Context, profile *domain.SpecialistProfile) error
	OffersService(ctx context.Context, userID domain.UserID, serviceID int64) (bool, error)
	ListByService(ctx context.Context, businessID, serviceID int64, roles []domain.UserRole) ([]domain.SpecialistCandidate, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
