package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/movematch/movematch-backend/pkg/enums"
	"github.com/movematch/movematch-backend/pkg/types"
)

// ComparisonEntry is one mover's priced offer inside a comparison.
type ComparisonEntry struct {
	ID                uuid.UUID                   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ComparisonID      uuid.UUID                   `gorm:"column:comparison_id;type:uuid;not null;index"`
	MoverID           uuid.UUID                   `gorm:"column:mover_id;type:uuid;not null"`
	Status            enums.ComparisonEntryStatus `gorm:"column:status;type:comparison_entry_status_enum;not null;default:'calculated'"`
	Rank              int                         `gorm:"column:rank;not null"`
	TotalPrice        decimal.Decimal             `gorm:"column:total_price;type:numeric(12,2);not null"`
	Currency          enums.Currency              `gorm:"column:currency;type:text;not null;default:'ILS'"`
	PriceBreakdown    types.PriceBreakdown        `gorm:"column:price_breakdown;type:jsonb;serializer:json;not null"`
	MoverSnapshot     types.MoverSnapshot         `gorm:"column:mover_snapshot;type:jsonb;serializer:json;not null"`
	UsedCustomPricing bool                        `gorm:"column:used_custom_pricing;not null;default:false"`
	QuoteID           *uuid.UUID                  `gorm:"column:quote_id;type:uuid"`
	CreatedAt         time.Time                   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time                   `gorm:"column:updated_at;autoUpdateTime"`
}
