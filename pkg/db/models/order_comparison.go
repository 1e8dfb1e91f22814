package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/movematch/movematch-backend/pkg/enums"
)

// OrderComparison is the priced multi-mover comparison generated for an order.
// At most one comparison exists per order; regeneration replaces it in place.
type OrderComparison struct {
	ID                  uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID             uuid.UUID              `gorm:"column:order_id;type:uuid;not null;uniqueIndex"`
	Status              enums.ComparisonStatus `gorm:"column:status;type:comparison_status_enum;not null;default:'generating'"`
	TotalEligibleMovers int                    `gorm:"column:total_eligible_movers;not null;default:0"`
	TotalPricedMovers   int                    `gorm:"column:total_priced_movers;not null;default:0"`
	SelectedEntryID     *uuid.UUID             `gorm:"column:selected_entry_id;type:uuid"`
	ExpiresAt           time.Time              `gorm:"column:expires_at;not null"`
	GeneratedAt         time.Time              `gorm:"column:generated_at;not null"`

	Entries []ComparisonEntry `gorm:"foreignKey:ComparisonID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// IsExpired reports whether the comparison deadline has passed at the given time.
func (c OrderComparison) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
