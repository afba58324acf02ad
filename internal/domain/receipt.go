package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Receipt is the immutable record of a completed checkout, captured at
// settlement time. Change is always Paid minus Total and never negative.
type Receipt struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Lines     []CartLine
	Total     decimal.Decimal
	Paid      decimal.Decimal
	Change    decimal.Decimal
}
