package payloads

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ComparisonReadyEvent is emitted when a generation run produces a ready comparison.
type ComparisonReadyEvent struct {
	ComparisonID        uuid.UUID `json:"comparisonId"`
	OrderID             uuid.UUID `json:"orderId"`
	TotalEligibleMovers int       `json:"totalEligibleMovers"`
	TotalPricedMovers   int       `json:"totalPricedMovers"`
	ExpiresAt           time.Time `json:"expiresAt"`
}

// ComparisonFailedEvent is emitted when a generation run aborts.
type ComparisonFailedEvent struct {
	ComparisonID uuid.UUID `json:"comparisonId"`
	OrderID      uuid.UUID `json:"orderId"`
	Reason       string    `json:"reason"`
}

// MoverSelectedEvent is emitted when the customer picks a mover from the comparison.
type MoverSelectedEvent struct {
	ComparisonID uuid.UUID       `json:"comparisonId"`
	OrderID      uuid.UUID       `json:"orderId"`
	EntryID      uuid.UUID       `json:"entryId"`
	MoverID      uuid.UUID       `json:"moverId"`
	QuoteID      uuid.UUID       `json:"quoteId"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
	Currency     string          `json:"currency"`
}

// QuoteSentEvent is emitted alongside the selection for the materialized quote.
type QuoteSentEvent struct {
	QuoteID    uuid.UUID       `json:"quoteId"`
	OrderID    uuid.UUID       `json:"orderId"`
	MoverID    uuid.UUID       `json:"moverId"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	Currency   string          `json:"currency"`
}

// ComparisonExpiredEvent is emitted when a ready comparison passes its deadline.
type ComparisonExpiredEvent struct {
	ComparisonID uuid.UUID `json:"comparisonId"`
	OrderID      uuid.UUID `json:"orderId"`
	ExpiredAt    time.Time `json:"expiredAt"`
}
