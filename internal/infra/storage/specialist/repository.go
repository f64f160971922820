package specialist

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/Diana0617/BC-sub011/internal/domain"
	"github.com/Diana0617/BC-sub011/pkg/dbmetrics"
	"github.com/Diana0617/BC-sub011/pkg/psqlbuilder"
)

// Repository репозиторий пользователей-специалистов, их профилей и услуг
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория специалистов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindProfileInBusiness ищет профиль специалиста по его ID в бизнесе.
// Профиль возвращается только если связанный пользователь активен
func (r *Repository) FindProfileInBusiness(ctx context.Context, businessID int64, profileID domain.SpecialistProfileID) (*domain.SpecialistProfile, *domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"sp.id",
		"sp.user_id",
		"sp.business_id",
		"sp.specialization",
		"sp.is_active",
		"sp.created_at",
		"sp.updated_at",
		"u.first_name",
		"u.last_name",
		"u.email",
		"u.role",
		"u.status",
	).
		From("specialist_profiles sp").
		Join("users u ON u.id = sp.user_id").
		Where(squirrel.Eq{
			"sp.id":          int64(profileID),
			"sp.business_id": businessID,
			"u.status":       domain.UserStatusActive,
		}).
		ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: FindProfileInBusiness - build select query: %w", ErrBuildQuery, err)
	}

	var p domain.SpecialistProfile
	var u domain.User
	var rawProfileID, rawUserID int64
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rawProfileID,
		&rawUserID,
		&p.BusinessID,
		&p.Specialization,
		&p.IsActive,
		&createdAt,
		&updatedAt,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.Role,
		&u.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: FindProfileInBusiness - scan profile: %w", ErrScanRow, err)
	}

	p.ID = domain.SpecialistProfileID(rawProfileID)
	p.UserID = domain.UserID(rawUserID)
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	u.ID = p.UserID
	u.BusinessID = p.BusinessID

	return &p, &u, nil
}

// FindUserInBusiness ищет активного пользователя бизнеса с одной из ролей
func (r *Repository) FindUserInBusiness(ctx context.Context, businessID int64, userID domain.UserID, roles []domain.UserRole) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	roleStrings := make([]string, len(roles))
	for i, role := range roles {
		roleStrings[i] = string(role)
	}

	query, args, err := psqlbuilder.Select("id", "business_id", "first_name", "last_name", "email", "role", "status").
		From("users").
		Where(squirrel.Eq{
			"id":          int64(userID),
			"business_id": businessID,
			"status":      domain.UserStatusActive,
			"role":        roleStrings,
		}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindUserInBusiness - build select query: %w", ErrBuildQuery, err)
	}

	var u domain.User
	var rawID int64

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rawID, &u.BusinessID, &u.FirstName, &u.LastName, &u.Email, &u.Role, &u.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindUserInBusiness - scan user: %w", ErrScanRow, err)
	}
	u.ID = domain.UserID(rawID)

	return &u, nil
}

// FindProfileByUser ищет профиль пользователя в бизнесе
func (r *Repository) FindProfileByUser(ctx context.Context, businessID int64, userID domain.UserID) (*domain.SpecialistProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "user_id", "business_id", "specialization", "is_active", "created_at", "updated_at",
	).
		From("specialist_profiles").
		Where(squirrel.Eq{"user_id": int64(userID), "business_id": businessID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindProfileByUser - build select query: %w", ErrBuildQuery, err)
	}

	var p domain.SpecialistProfile
	var rawProfileID, rawUserID int64
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&rawProfileID, &rawUserID, &p.BusinessID, &p.Specialization, &p.IsActive, &createdAt, &updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindProfileByUser - scan profile: %w", ErrScanRow, err)
	}

	p.ID = domain.SpecialistProfileID(rawProfileID)
	p.UserID = domain.UserID(rawUserID)
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

// CreateProfileIfNotExists вставляет профиль, если для пары (user, business) его еще нет.
// Параллельные вызовы не создают дубликатов: конфликт по уникальному ключу игнорируется
func (r *Repository) CreateProfileIfNotExists(ctx context.Context, profile *domain.SpecialistProfile) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("specialist_profiles").
		Columns("user_id", "business_id", "specialization", "is_active").
		Values(int64(profile.UserID), profile.BusinessID, profile.Specialization, profile.IsActive).
		Suffix("ON CONFLICT (user_id, business_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateProfileIfNotExists - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateProfileIfNotExists - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// OffersService проверяет, что специалист (по UserID) активно оказывает услугу
func (r *Repository) OffersService(ctx context.Context, userID domain.UserID, serviceID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("specialist_services").
		Where(squirrel.Eq{
			"specialist_id": int64(userID),
			"service_id":    serviceID,
			"is_active":     true,
		}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: OffersService - build select query: %w", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: OffersService - scan: %w", ErrScanRow, err)
	}

	return true, nil
}

// ListByService возвращает активных специалистов бизнеса, оказывающих услугу, с их ролями.
// ProfileID равен 0, если профиль для пользователя еще не создан
func (r *Repository) ListByService(ctx context.Context, businessID, serviceID int64, roles []domain.UserRole) ([]domain.SpecialistCandidate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	roleStrings := make([]string, len(roles))
	for i, role := range roles {
		roleStrings[i] = string(role)
	}

	query, args, err := psqlbuilder.Select("u.id", "COALESCE(sp.id, 0)", "u.first_name", "u.last_name", "u.role").
		From("users u").
		Join("specialist_services ss ON ss.specialist_id = u.id").
		LeftJoin("specialist_profiles sp ON sp.user_id = u.id AND sp.business_id = u.business_id").
		Where(squirrel.Eq{
			"u.business_id": businessID,
			"u.status":      domain.UserStatusActive,
			"u.role":        roleStrings,
			"ss.service_id": serviceID,
			"ss.is_active":  true,
		}).
		OrderBy("u.first_name ASC", "u.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByService - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByService - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	candidates := make([]domain.SpecialistCandidate, 0)
	for rows.Next() {
		var userID, profileID int64
		var role string
		var c domain.SpecialistCandidate
		if err := rows.Scan(&userID, &profileID, &c.Identity.FirstName, &c.Identity.LastName, &role); err != nil {
			return nil, fmt.Errorf("%w: ListByService - scan row: %w", ErrScanRow, err)
		}
		c.Identity.UserID = domain.UserID(userID)
		c.Identity.ProfileID = domain.SpecialistProfileID(profileID)
		c.Identity.Source = domain.SourceUserID
		c.Role = domain.UserRole(role)
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByService - rows error: %w", ErrScanRow, err)
	}

	return candidates, nil
}
