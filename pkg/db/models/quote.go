package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/movematch/movematch-backend/pkg/enums"
	"github.com/movematch/movematch-backend/pkg/types"
)

// Quote is a binding offer materialized when a customer selects a mover.
type Quote struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID            `gorm:"column:order_id;type:uuid;not null;index"`
	MoverID        uuid.UUID            `gorm:"column:mover_id;type:uuid;not null"`
	Status         enums.QuoteStatus    `gorm:"column:status;type:quote_status_enum;not null;default:'draft'"`
	TotalPrice     decimal.Decimal      `gorm:"column:total_price;type:numeric(12,2);not null"`
	Currency       enums.Currency       `gorm:"column:currency;type:text;not null;default:'ILS'"`
	PriceBreakdown types.PriceBreakdown `gorm:"column:price_breakdown;type:jsonb;serializer:json;not null"`
	ValidUntil     *time.Time           `gorm:"column:valid_until"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
