package domain

import "github.com/shopspring/decimal"

// Service услуга из каталога бизнеса
type Service struct {
	ID         int64
	BusinessID int64
	Name       string
	Duration   int // минуты
	Price      decimal.Decimal
	IsActive   bool
}
