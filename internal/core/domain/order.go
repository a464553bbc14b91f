package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the receipt produced by a successful checkout. It is not persisted.
type Order struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	Items     []LineItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
	PlacedAt  time.Time       `json:"placed_at"`
}
