package schedule

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

// Repository репозиторий расписаний специалистов по филиалам
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActive получает активное расписание профиля специалиста в филиале на день недели.
// Ключ - SpecialistProfileID, не UserID
func (r *Repository) GetActive(ctx context.Context, profileID domain.SpecialistProfileID, branchID int64, dayOfWeek string) (*domain.SpecialistBranchSchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"specialist_profile_id",
		"branch_id",
		"day_of_week",
		"start_time",
		"end_time",
		"is_active",
	).
		From("specialist_branch_schedules").
		Where(squirrel.Eq{
			"specialist_profile_id": int64(profileID),
			"branch_id":             branchID,
			"day_of_week":           dayOfWeek,
			"is_active":             true,
		}).
		OrderBy("start_time ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - build select query: %w", ErrBuildQuery, err)
	}

	var s domain.SpecialistBranchSchedule
	var rawProfileID int64

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&rawProfileID,
		&s.BranchID,
		&s.DayOfWeek,
		&s.StartTime,
		&s.EndTime,
		&s.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActive - scan schedule: %w", ErrScanRow, err)
	}
	s.SpecialistProfileID = domain.SpecialistProfileID(rawProfileID)

	return &s, nil
}
