package business

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

// Repository репозиторий бизнесов и их правил
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бизнесов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает бизнес по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "status", "timezone").
		From("businesses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var b domain.Business
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.Name, &b.Status, &b.Timezone)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBusinessNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan business: %w", ErrScanRow, err)
	}

	return &b, nil
}

// GetRuleValue возвращает сырое JSON значение активного правила бизнеса
func (r *Repository) GetRuleValue(ctx context.Context, businessID int64, ruleKey string) ([]byte, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("rule_value").
		From("business_rules").
		Where(squirrel.Eq{"business_id": businessID, "rule_key": ruleKey, "is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRuleValue - build select query: %w", ErrBuildQuery, err)
	}

	var value []byte
	err = executor.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetRuleValue - scan rule: %w", ErrScanRow, err)
	}

	return value, nil
}
