package branch

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

// Repository репозиторий филиалов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория филиалов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает филиал бизнеса. Часы работы нормализуются сразу при чтении
func (r *Repository) GetByID(ctx context.Context, businessID, branchID int64) (*domain.Branch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_id",
		"name",
		"status",
		"business_hours",
		"created_at",
		"updated_at",
	).
		From("branches").
		Where(squirrel.Eq{"id": branchID, "business_id": businessID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var b domain.Branch
	var hours []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.BusinessID,
		&b.Name,
		&b.Status,
		&hours,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBranchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan branch: %w", ErrScanRow, err)
	}

	b.BusinessHours, err = domain.ParseBusinessHours(hours)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - branch %d: %w", ErrInvalidHours, branchID, err)
	}
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}
