package types

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/movematch/movematch-backend/pkg/enums"
)

// ItemLine is a single priced inventory line inside a breakdown. The handling
// costs are charged once per line, not per unit, and are zero when the
// matching service was not requested.
type ItemLine struct {
	ItemTypeID          uuid.UUID       `json:"itemTypeId"`
	Name                string          `json:"name"`
	Quantity            int             `json:"quantity"`
	UnitPrice           decimal.Decimal `json:"unitPrice"`
	AssemblyCost        decimal.Decimal `json:"assemblyCost"`
	DisassemblyCost     decimal.Decimal `json:"disassemblyCost"`
	SpecialHandlingCost decimal.Decimal `json:"specialHandlingCost"`
	LineTotal           decimal.Decimal `json:"lineTotal"`
	UsedCustomPricing   bool            `json:"usedCustomPricing"`
}

// PriceBreakdown is the full itemization of a mover's price for an order.
// Every amount is rounded to two decimal places when it is computed, so the
// stored breakdown always sums exactly to the total.
type PriceBreakdown struct {
	Items         []ItemLine      `json:"items"`
	ItemsSubtotal decimal.Decimal `json:"itemsSubtotal"`

	OriginFloorSurcharge      decimal.Decimal `json:"originFloorSurcharge"`
	DestinationFloorSurcharge decimal.Decimal `json:"destinationFloorSurcharge"`
	CarryDistanceSurcharge    decimal.Decimal `json:"carryDistanceSurcharge"`
	TravelCost                decimal.Decimal `json:"travelCost"`

	// BaseAmount is the sum of the subtotal, surcharges and travel cost and
	// is the basis for seasonal and day-of-week adjustments.
	BaseAmount decimal.Decimal `json:"baseAmount"`

	SeasonalAdjustment     decimal.Decimal `json:"seasonalAdjustment"`
	DayOfWeekSurcharge     decimal.Decimal `json:"dayOfWeekSurcharge"`
	MinimumOrderAdjustment decimal.Decimal `json:"minimumOrderAdjustment"`
	Discount               decimal.Decimal `json:"discount"`

	Total    decimal.Decimal `json:"total"`
	Currency enums.Currency  `json:"currency"`
}
