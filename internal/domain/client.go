package domain

import (
	"strings"
	"time"
)

// Client клиент бизнеса. Уникален по (business_id, email)
type Client struct {
	ID         int64
	BusinessID int64
	FirstName  string
	LastName   string
	Email      string
	Phone      *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NormalizeEmail приводит email к виду, в котором он хранится
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
