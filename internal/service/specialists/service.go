package specialists

import (
	"context"
	"errors"
	"fmt"

	"github.com/Diana0617/BC-sub011/internal/domain"
	specialistRepo "github.com/Diana0617/BC-sub011/internal/infra/storage/specialist"
)

// Service нормализатор идентификаторов специалиста.
// Единственное место, где UserID и SpecialistProfileID переводятся друг в друга
type Service struct {
	repo   SpecialistRepository
	logger Logger
}

// NewService создает новый экземпляр нормализатора
func NewService(repo SpecialistRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Resolve переводит ссылку на специалиста в обе идентичности в рамках бизнеса.
// Ссылка по профилю ищет только профиль, ссылка по пользователю - только пользователя
// с ролью специалиста; для пользователя без профиля профиль создается
func (s *Service) Resolve(ctx context.Context, businessID int64, ref domain.SpecialistRef) (domain.SpecialistIdentity, error) {
	if businessID <= 0 {
		return domain.SpecialistIdentity{}, ErrInvalidInput
	}
	if err := ref.Validate(); err != nil {
		return domain.SpecialistIdentity{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if ref.IsProfile() {
		return s.resolveProfile(ctx, businessID, ref.ProfileID)
	}
	return s.resolveUser(ctx, businessID, ref.UserID)
}

// resolveProfile ID профиля, привязанного к активному пользователю бизнеса
func (s *Service) resolveProfile(ctx context.Context, businessID int64, profileID domain.SpecialistProfileID) (domain.SpecialistIdentity, error) {
	profile, user, err := s.repo.FindProfileInBusiness(ctx, businessID, profileID)
	if err != nil {
		if errors.Is(err, specialistRepo.ErrProfileNotFound) {
			s.logger.Warn("Resolve: profile id=%s not found in business=%d", profileID, businessID)
			return domain.SpecialistIdentity{}, ErrSpecialistNotFound
		}
		s.logger.Error("Resolve: profile lookup failed business=%d profile=%s: %v", businessID, profileID, err)
		return domain.SpecialistIdentity{}, fmt.Errorf("%w: Resolve - find profile: %w", ErrInternal, err)
	}

	return domain.SpecialistIdentity{
		UserID:    profile.UserID,
		ProfileID: profile.ID,
		Source:    domain.SourceSpecialistProfile,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}

// resolveUser ID активного пользователя бизнеса с ролью специалиста
func (s *Service) resolveUser(ctx context.Context, businessID int64, userID domain.UserID) (domain.SpecialistIdentity, error) {
	user, err := s.repo.FindUserInBusiness(ctx, businessID, userID, domain.SpecialistRoles)
	if err != nil {
		if errors.Is(err, specialistRepo.ErrUserNotFound) {
			s.logger.Warn("Resolve: specialist user=%s not found in business=%d", userID, businessID)
			return domain.SpecialistIdentity{}, ErrSpecialistNotFound
		}
		s.logger.Error("Resolve: user lookup failed business=%d user=%s: %v", businessID, userID, err)
		return domain.SpecialistIdentity{}, fmt.Errorf("%w: Resolve - find user: %w", ErrInternal, err)
	}

	profile, err := s.EnsureProfile(ctx, user)
	if err != nil {
		return domain.SpecialistIdentity{}, err
	}

	return domain.SpecialistIdentity{
		UserID:    user.ID,
		ProfileID: profile.ID,
		Source:    domain.SourceUserID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}, nil
}

// EnsureProfile находит профиль пользователя в бизнесе или создает его.
// Идемпотентна: повторный и параллельный вызов возвращают один и тот же профиль
func (s *Service) EnsureProfile(ctx context.Context, user *domain.User) (*domain.SpecialistProfile, error) {
	profile, err := s.repo.FindProfileByUser(ctx, user.BusinessID, user.ID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, specialistRepo.ErrProfileNotFound) {
		return nil, fmt.Errorf("%w: EnsureProfile - find profile: %w", ErrInternal, err)
	}

	s.logger.Info("EnsureProfile: creating profile for user=%d business=%d role=%s", user.ID, user.BusinessID, user.Role)

	err = s.repo.CreateProfileIfNotExists(ctx, &domain.SpecialistProfile{
		UserID:         user.ID,
		BusinessID:     user.BusinessID,
		Specialization: user.Role.DefaultSpecialization(),
		IsActive:       true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: EnsureProfile - create profile: %w", ErrInternal, err)
	}

	// Перечитываем: профиль мог создать параллельный запрос
	profile, err = s.repo.FindProfileByUser(ctx, user.BusinessID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: EnsureProfile - reselect profile: %w", ErrInternal, err)
	}

	return profile, nil
}

// OffersService проверяет, что специалист оказывает услугу
func (s *Service) OffersService(ctx context.Context, specialist domain.SpecialistIdentity, serviceID int64) (bool, error) {
	ok, err := s.repo.OffersService(ctx, specialist.UserID, serviceID)
	if err != nil {
		return false, fmt.Errorf("%w: OffersService: %w", ErrInternal, err)
	}
	return ok, nil
}

// ListForService возвращает специалистов бизнеса, оказывающих услугу, с обеими идентичностями
func (s *Service) ListForService(ctx context.Context, businessID, serviceID int64) ([]domain.SpecialistIdentity, error) {
	list, err := s.repo.ListByService(ctx, businessID, serviceID, domain.SpecialistRoles)
	if err != nil {
		return nil, fmt.Errorf("%w: ListForService: %w", ErrInternal, err)
	}

	result := make([]domain.SpecialistIdentity, 0, len(list))
	for _, c := range list {
		identity := c.Identity
		if identity.ProfileID == 0 {
			// Роль нужна для специализации по умолчанию
			profile, err := s.EnsureProfile(ctx, &domain.User{
				ID:         identity.UserID,
				BusinessID: businessID,
				FirstName:  identity.FirstName,
				LastName:   identity.LastName,
				Role:       c.Role,
			})
			if err != nil {
				return nil, err
			}
			identity.ProfileID = profile.ID
		}
		result = append(result, identity)
	}

	return result, nil
}
