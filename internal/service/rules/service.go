package rules

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/Diana0617/BC-sub011/internal/domain"
	businessRepo "github.com/Diana0617/BC-sub011/internal/infra/storage/business"
)

// Service чтение бизнес-правил и сборка политики записи
type Service struct {
	rules      RuleRepository
	businesses BusinessRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса правил
func NewService(rules RuleRepository, businesses BusinessRepository, logger Logger) *Service {
	return &Service{
		rules:      rules,
		businesses: businesses,
		logger:     logger,
	}
}

// GetBusiness получает бизнес по ID
func (s *Service) GetBusiness(ctx context.Context, businessID int64) (*domain.Business, error) {
	b, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			return nil, ErrBusinessNotFound
		}
		return nil, fmt.Errorf("%w: GetBusiness: %w", ErrInternal, err)
	}
	return b, nil
}

// GetRuleValue возвращает сырое JSON значение правила
func (s *Service) GetRuleValue(ctx context.Context, businessID int64, ruleKey string) ([]byte, error) {
	value, err := s.rules.GetRuleValue(ctx, businessID, ruleKey)
	if err != nil {
		if errors.Is(err, businessRepo.ErrRuleNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, fmt.Errorf("%w: GetRuleValue %s: %w", ErrInternal, ruleKey, err)
	}
	return value, nil
}

// BoolRule возвращает булево правило или def, если правила нет
func (s *Service) BoolRule(ctx context.Context, businessID int64, ruleKey string, def bool) (bool, error) {
	raw, err := s.GetRuleValue(ctx, businessID, ruleKey)
	if errors.Is(err, ErrRuleNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	return ParseBool(raw)
}

// IntRule возвращает целочисленное правило или def, если правила нет
func (s *Service) IntRule(ctx context.Context, businessID int64, ruleKey string, def int) (int, error) {
	raw, err := s.GetRuleValue(ctx, businessID, ruleKey)
	if errors.Is(err, ErrRuleNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	return ParseInt(raw)
}

// BookingPolicy собирает политику онлайн-записи бизнеса.
// Нечитаемое значение правила логируется и заменяется значением по умолчанию
func (s *Service) BookingPolicy(ctx context.Context, businessID int64) (domain.BookingPolicy, error) {
	policy := domain.DefaultBookingPolicy()

	var err error
	if policy.OnlineBookingEnabled, err = s.boolOrDefault(ctx, businessID, domain.RuleOnlineBookingEnabled, policy.OnlineBookingEnabled); err != nil {
		return policy, err
	}
	if policy.OnlinePaymentRequired, err = s.boolOrDefault(ctx, businessID, domain.RuleOnlinePaymentRequired, policy.OnlinePaymentRequired); err != nil {
		return policy, err
	}
	if policy.AdvanceBookingDays, err = s.intOrDefault(ctx, businessID, domain.RuleAdvanceBookingDays, policy.AdvanceBookingDays); err != nil {
		return policy, err
	}
	if policy.MinBookingNoticeMinutes, err = s.intOrDefault(ctx, businessID, domain.RuleMinBookingNoticeMinutes, policy.MinBookingNoticeMinutes); err != nil {
		return policy, err
	}

	return policy, nil
}

func (s *Service) boolOrDefault(ctx context.Context, businessID int64, key string, def bool) (bool, error) {
	v, err := s.BoolRule(ctx, businessID, key, def)
	if errors.Is(err, ErrInvalidRuleValue) {
		s.logger.Warn("BookingPolicy: business=%d rule %s: %v, using default %t", businessID, key, err, def)
		return def, nil
	}
	return v, err
}

func (s *Service) intOrDefault(ctx context.Context, businessID int64, key string, def int) (int, error) {
	v, err := s.IntRule(ctx, businessID, key, def)
	if errors.Is(err, ErrInvalidRuleValue) {
		s.logger.Warn("BookingPolicy: business=%d rule %s: %v, using default %d", businessID, key, err, def)
		return def, nil
	}
	if v < 0 {
		return def, nil
	}
	return v, err
}

// ParseBool читает булево значение правила.
// Поддерживаются true, "true", 1 и объект {"enabled": true} / {"value": true}
func ParseBool(raw []byte) (bool, error) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidRuleValue, err)
	}
	return toBool(v)
}

func toBool(v interface{}) (bool, error) {
	switch t := v.(type) {
	case bool:
		return t, nil
	case float64:
		return t != 0, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			return false, fmt.Errorf("%w: %q", ErrInvalidRuleValue, t)
		}
		return b, nil
	case map[string]interface{}:
		for _, key := range []string{"enabled", "value"} {
			if inner, ok := t[key]; ok {
				return toBool(inner)
			}
		}
	}
	return false, fmt.Errorf("%w: unsupported value %v", ErrInvalidRuleValue, v)
}

// ParseInt читает целое значение правила.
// Поддерживаются 7, "7" и объект {"value": 7}
func ParseInt(raw []byte) (int, error) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidRuleValue, err)
	}
	return toInt(v)
}

func toInt(v interface{}) (int, error) {
	switch t := v.(type) {
	case float64:
		return int(t), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidRuleValue, t)
		}
		return n, nil
	case map[string]interface{}:
		if inner, ok := t["value"]; ok {
			return toInt(inner)
		}
	}
	return 0, fmt.Errorf("%w: unsupported value %v", ErrInvalidRuleValue, v)
}
