package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MoverItemPricing is a mover-specific override of an item type's catalog
// prices. At most one active row exists per (mover, item type). An override
// replaces all four components at once, never partially.
type MoverItemPricing struct {
	ID                   uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MoverID              uuid.UUID       `gorm:"column:mover_id;type:uuid;not null;index"`
	ItemTypeID           uuid.UUID       `gorm:"column:item_type_id;type:uuid;not null"`
	BasePrice            decimal.Decimal `gorm:"column:base_price;type:numeric(12,2);not null"`
	AssemblyPrice        decimal.Decimal `gorm:"column:assembly_price;type:numeric(12,2);not null;default:0"`
	DisassemblyPrice     decimal.Decimal `gorm:"column:disassembly_price;type:numeric(12,2);not null;default:0"`
	SpecialHandlingPrice decimal.Decimal `gorm:"column:special_handling_price;type:numeric(12,2);not null;default:0"`
	IsActive             bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt            time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the singular table name used by the schema.
func (MoverItemPricing) TableName() string {
	return "mover_item_pricing"
}
