package rules

import "errors"

var (
	// ErrRuleNotFound возвращается, когда у бизнеса нет правила
	ErrRuleNotFound = errors.New("rule not found")

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("business not found")

	// ErrInvalidRuleValue возвращается, когда значение правила не приводится к нужному типу
	ErrInvalidRuleValue = errors.New("invalid rule value")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("rules: internal error")
)
