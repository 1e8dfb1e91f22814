package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/movematch/movematch-backend/pkg/types"
)

// Mover represents a moving company listed on the marketplace.
type Mover struct {
	ID                  uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CompanyNameHe       string                `gorm:"column:company_name_he;not null"`
	CompanyNameEn       *string               `gorm:"column:company_name_en"`
	LogoURL             *string               `gorm:"column:logo_url"`
	IsActive            bool                  `gorm:"column:is_active;not null;default:true"`
	IsVerified          bool                  `gorm:"column:is_verified;not null;default:false"`
	Rating              decimal.Decimal       `gorm:"column:rating;type:numeric(3,2);not null;default:0"`
	ReviewCount         int                   `gorm:"column:review_count;not null;default:0"`
	CompletedOrderCount int                   `gorm:"column:completed_order_count;not null;default:0"`
	BaseLocation        *types.GeographyPoint `gorm:"column:base_location;type:geography(Point,4326)"`
	ServiceRadiusKM     *decimal.Decimal      `gorm:"column:service_radius_km;type:numeric(8,2)"`
	ServiceAreas        pq.StringArray        `gorm:"column:service_areas;type:text[];default:ARRAY[]::text[]"`
	CreatedAt           time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// Snapshot freezes the mover's display data for embedding in comparison entries.
func (m Mover) Snapshot() types.MoverSnapshot {
	snap := types.MoverSnapshot{
		CompanyNameHe:       m.CompanyNameHe,
		Rating:              m.Rating,
		ReviewCount:         m.ReviewCount,
		CompletedOrderCount: m.CompletedOrderCount,
		IsVerified:          m.IsVerified,
	}
	if m.CompanyNameEn != nil {
		snap.CompanyNameEn = *m.CompanyNameEn
	}
	if m.LogoURL != nil {
		snap.LogoURL = *m.LogoURL
	}
	return snap
}
