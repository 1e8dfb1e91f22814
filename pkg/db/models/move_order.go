package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/movematch/movematch-backend/pkg/enums"
	"github.com/movematch/movematch-backend/pkg/types"
)

// MoveOrder is a customer's request to move between two addresses.
type MoveOrder struct {
	ID         uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID             `gorm:"column:customer_id;type:uuid;not null;index"`
	Status     enums.MoveOrderStatus `gorm:"column:status;type:move_order_status_enum;not null;default:'draft'"`

	OriginCity          *string               `gorm:"column:origin_city"`
	OriginLocation      *types.GeographyPoint `gorm:"column:origin_location;type:geography(Point,4326)"`
	DestinationCity     *string               `gorm:"column:destination_city"`
	DestinationLocation *types.GeographyPoint `gorm:"column:destination_location;type:geography(Point,4326)"`
	DistanceKM          decimal.Decimal       `gorm:"column:distance_km;type:numeric(8,2);not null;default:0"`

	OriginFloor               int  `gorm:"column:origin_floor;not null;default:0"`
	OriginHasElevator         bool `gorm:"column:origin_has_elevator;not null;default:false"`
	DestinationFloor          int  `gorm:"column:destination_floor;not null;default:0"`
	DestinationHasElevator    bool `gorm:"column:destination_has_elevator;not null;default:false"`
	OriginCarryDistanceM      int  `gorm:"column:origin_carry_distance_m;not null;default:0"`
	DestinationCarryDistanceM int  `gorm:"column:destination_carry_distance_m;not null;default:0"`

	MoveDate        time.Time             `gorm:"column:move_date;type:date;not null"`
	MoveDateEnd     *time.Time            `gorm:"column:move_date_end;type:date"`
	DateFlexibility enums.DateFlexibility `gorm:"column:date_flexibility;type:date_flexibility_enum;not null;default:'exact'"`

	SelectedMoverID *uuid.UUID            `gorm:"column:selected_mover_id;type:uuid"`
	FinalPrice      *decimal.Decimal      `gorm:"column:final_price;type:numeric(12,2)"`
	PriceBreakdown  *types.PriceBreakdown `gorm:"column:price_breakdown;type:jsonb;serializer:json"`
	Currency        enums.Currency        `gorm:"column:currency;type:text;not null;default:'ILS'"`

	Items []MoveOrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
