package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// MoverPricingFactors holds a mover's tunable pricing knobs. Exactly one row
// exists per mover; missing rows are created lazily with these defaults.
type MoverPricingFactors struct {
	ID                       uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MoverID                  uuid.UUID       `gorm:"column:mover_id;type:uuid;not null;uniqueIndex"`
	FloorSurchargePercent    decimal.Decimal `gorm:"column:floor_surcharge_percent;type:numeric(5,2);not null;default:5"`
	GroundFloorNumber        int             `gorm:"column:ground_floor_number;not null;default:0"`
	ElevatorDiscountPercent  decimal.Decimal `gorm:"column:elevator_discount_percent;type:numeric(5,2);not null;default:50"`
	DistanceSurchargePercent decimal.Decimal `gorm:"column:distance_surcharge_percent;type:numeric(5,2);not null;default:2"`
	TravelCostPerKM          decimal.Decimal `gorm:"column:travel_cost_per_km;type:numeric(12,2);not null;default:5.00"`
	TravelCostMinimum        decimal.Decimal `gorm:"column:travel_cost_minimum;type:numeric(12,2);not null;default:50.00"`
	PeakSeasonMultiplier     decimal.Decimal `gorm:"column:peak_season_multiplier;type:numeric(5,2);not null;default:1.25"`
	PeakSeasonMonths         pq.Int64Array   `gorm:"column:peak_season_months;type:bigint[];default:'{7,8}'"`
	WeekendSurchargePercent  decimal.Decimal `gorm:"column:weekend_surcharge_percent;type:numeric(5,2);not null;default:15"`
	FridaySurchargePercent   decimal.Decimal `gorm:"column:friday_surcharge_percent;type:numeric(5,2);not null;default:10"`
	MinimumOrderAmount       decimal.Decimal `gorm:"column:minimum_order_amount;type:numeric(12,2);not null;default:0"`
	CreatedAt                time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt                time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// DefaultPricingFactors returns the factors applied when a mover has never
// customized pricing.
func DefaultPricingFactors(moverID uuid.UUID) MoverPricingFactors {
	return MoverPricingFactors{
		MoverID:                  moverID,
		FloorSurchargePercent:    decimal.NewFromInt(5),
		GroundFloorNumber:        0,
		ElevatorDiscountPercent:  decimal.NewFromInt(50),
		DistanceSurchargePercent: decimal.NewFromInt(2),
		TravelCostPerKM:          decimal.NewFromInt(5),
		TravelCostMinimum:        decimal.NewFromInt(50),
		PeakSeasonMultiplier:     decimal.RequireFromString("1.25"),
		PeakSeasonMonths:         pq.Int64Array{7, 8},
		WeekendSurchargePercent:  decimal.NewFromInt(15),
		FridaySurchargePercent:   decimal.NewFromInt(10),
		MinimumOrderAmount:       decimal.Zero,
	}
}

// IsPeakMonth reports whether the given month falls in the mover's peak season.
func (f MoverPricingFactors) IsPeakMonth(month time.Month) bool {
	for _, m := range f.PeakSeasonMonths {
		if int64(month) == m {
			return true
		}
	}
	return false
}
