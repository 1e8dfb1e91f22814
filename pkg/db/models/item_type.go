package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemType is a catalog entry for a movable item category. The default prices
// are the pricing fallback when a mover carries no override for the type;
// RequiresSpecialHandling forces the special-handling charge on every line of
// this type regardless of what the customer ticked.
type ItemType struct {
	ID                          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	NameHe                      string          `gorm:"column:name_he;not null"`
	NameEn                      *string         `gorm:"column:name_en"`
	DefaultPrice                decimal.Decimal `gorm:"column:default_price;type:numeric(12,2);not null;default:0"`
	DefaultAssemblyPrice        decimal.Decimal `gorm:"column:default_assembly_price;type:numeric(12,2);not null;default:0"`
	DefaultDisassemblyPrice     decimal.Decimal `gorm:"column:default_disassembly_price;type:numeric(12,2);not null;default:0"`
	DefaultSpecialHandlingPrice decimal.Decimal `gorm:"column:default_special_handling_price;type:numeric(12,2);not null;default:0"`
	RequiresSpecialHandling     bool            `gorm:"column:requires_special_handling;not null;default:false"`
	IsActive                    bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt                   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt                   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
