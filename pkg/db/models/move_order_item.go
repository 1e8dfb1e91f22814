package models

import (
	"time"

	"github.com/google/uuid"
)

// MoveOrderItem is one inventory line on a move order. ItemTypeID is nil for
// custom items the catalog never matched; those price at zero unless a mover
// override exists.
type MoveOrderItem struct {
	ID                      uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID                 uuid.UUID  `gorm:"column:order_id;type:uuid;not null;index"`
	ItemTypeID              *uuid.UUID `gorm:"column:item_type_id;type:uuid"`
	Quantity                int        `gorm:"column:quantity;not null;default:1"`
	RequiresAssembly        bool       `gorm:"column:requires_assembly;not null;default:false"`
	RequiresDisassembly     bool       `gorm:"column:requires_disassembly;not null;default:false"`
	RequiresSpecialHandling bool       `gorm:"column:requires_special_handling;not null;default:false"`
	Notes                   *string    `gorm:"column:notes"`
	CreatedAt               time.Time  `gorm:"column:created_at;autoCreateTime"`
}
