package rules

import (
	"context"

	"github.com/Diana0617/BC-sub011/internal/domain"
)

// RuleRepository источник бизнес-правил (репозиторий или кэш над ним)
type RuleRepository interface {
	GetRuleValue(ctx context.Context, businessID int64, ruleKey string) ([]byte, error)
}

// BusinessRepository интерфейс репозитория бизнесов
type BusinessRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
