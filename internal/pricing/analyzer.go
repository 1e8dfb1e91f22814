package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/movematch/movematch-backend/pkg/db/models"
	"github.com/movematch/movematch-backend/pkg/enums"
	pkgerrors "github.com/movematch/movematch-backend/pkg/errors"
	"github.com/movematch/movematch-backend/pkg/logger"
	"github.com/movematch/movematch-backend/pkg/types"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// carryIncrementMeters is the step size for the distance-to-truck surcharge.
const carryIncrementMeters = 10

// LineInput is one inventory line to price. The default prices come from the
// item catalog; Known is false when the catalog does not recognize the item
// type (custom or retired items), in which case every component defaults to
// zero. ItemTypeID is uuid.Nil for custom items with no catalog reference.
type LineInput struct {
	ItemTypeID                  uuid.UUID
	Name                        string
	Quantity                    int
	DefaultPrice                decimal.Decimal
	DefaultAssemblyPrice        decimal.Decimal
	DefaultDisassemblyPrice     decimal.Decimal
	DefaultSpecialHandlingPrice decimal.Decimal
	RequiresAssembly            bool
	RequiresDisassembly         bool
	RequiresSpecialHandling     bool
	Known                       bool
}

// CalculateInput carries everything the analyzer needs about the move itself.
type CalculateInput struct {
	Items []LineInput

	OriginFloor               int
	OriginHasElevator         bool
	DestinationFloor          int
	DestinationHasElevator    bool
	OriginCarryDistanceM      int
	DestinationCarryDistanceM int

	DistanceKM decimal.Decimal
	MoveDate   time.Time
}

// Analyzer prices an order for a single mover. Factors and custom item prices
// are loaded eagerly at construction so Calculate never touches the database.
type Analyzer struct {
	moverID      uuid.UUID
	factors      models.MoverPricingFactors
	customPrices map[uuid.UUID]models.MoverItemPricing
	usedCustom   bool
	logg         *logger.Logger
}

// NewAnalyzer loads the mover's pricing configuration and returns a ready analyzer.
func NewAnalyzer(ctx context.Context, repo Repository, moverID uuid.UUID, logg *logger.Logger) (*Analyzer, error) {
	if repo == nil {
		return nil, fmt.Errorf("pricing repository required")
	}
	if moverID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mover id required")
	}

	factors, err := repo.GetOrCreateFactors(ctx, moverID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pricing factors")
	}

	rows, err := repo.FindActiveItemPricing(ctx, moverID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item pricing")
	}
	custom := make(map[uuid.UUID]models.MoverItemPricing, len(rows))
	for _, row := range rows {
		custom[row.ItemTypeID] = row
	}

	return &Analyzer{
		moverID:      moverID,
		factors:      *factors,
		customPrices: custom,
		logg:         logg,
	}, nil
}

// UsedCustomPricing reports whether the most recent Calculate call priced at
// least one line with a mover-specific override.
func (a *Analyzer) UsedCustomPricing() bool {
	return a.usedCustom
}

// Factors returns the loaded pricing factors.
func (a *Analyzer) Factors() models.MoverPricingFactors {
	return a.factors
}

// Calculate produces the full price breakdown for the move. Every monetary
// step is rounded to two decimal places before feeding the next one.
func (a *Analyzer) Calculate(ctx context.Context, input CalculateInput) (*types.PriceBreakdown, error) {
	if input.MoveDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "move date required")
	}
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive").
				WithDetails(map[string]any{"item_type_id": line.ItemTypeID})
		}
	}

	a.usedCustom = false
	breakdown := &types.PriceBreakdown{
		Currency: enums.CurrencyILS,
		Discount: decimal.Zero,
	}

	subtotal := decimal.Zero
	for _, line := range input.Items {
		unit := line.DefaultPrice
		assembly := line.DefaultAssemblyPrice
		disassembly := line.DefaultDisassemblyPrice
		specialHandling := line.DefaultSpecialHandlingPrice
		usedCustom := false
		if custom, ok := a.customPrices[line.ItemTypeID]; ok {
			unit = custom.BasePrice
			assembly = custom.AssemblyPrice
			disassembly = custom.DisassemblyPrice
			specialHandling = custom.SpecialHandlingPrice
			usedCustom = true
			a.usedCustom = true
		}
		if !line.Known && a.logg != nil {
			logCtx := a.logg.WithFields(ctx, map[string]any{
				"mover_id":     a.moverID.String(),
				"item_type_id": line.ItemTypeID.String(),
			})
			a.logg.Warn(logCtx, "pricing unknown item type at zero")
		}

		priced := types.ItemLine{
			ItemTypeID:          line.ItemTypeID,
			Name:                line.Name,
			Quantity:            line.Quantity,
			UnitPrice:           unit,
			AssemblyCost:        decimal.Zero,
			DisassemblyCost:     decimal.Zero,
			SpecialHandlingCost: decimal.Zero,
			UsedCustomPricing:   usedCustom,
		}
		if line.RequiresAssembly {
			priced.AssemblyCost = assembly
		}
		if line.RequiresDisassembly {
			priced.DisassemblyCost = disassembly
		}
		if line.RequiresSpecialHandling {
			priced.SpecialHandlingCost = specialHandling
		}
		priced.LineTotal = round2(unit.Mul(decimal.NewFromInt(int64(line.Quantity))).
			Add(priced.AssemblyCost).
			Add(priced.DisassemblyCost).
			Add(priced.SpecialHandlingCost))
		breakdown.Items = append(breakdown.Items, priced)
		subtotal = subtotal.Add(priced.LineTotal)
	}
	breakdown.ItemsSubtotal = round2(subtotal)

	breakdown.OriginFloorSurcharge = a.floorSurcharge(breakdown.ItemsSubtotal, input.OriginFloor, input.OriginHasElevator)
	breakdown.DestinationFloorSurcharge = a.floorSurcharge(breakdown.ItemsSubtotal, input.DestinationFloor, input.DestinationHasElevator)
	breakdown.CarryDistanceSurcharge = a.carrySurcharge(breakdown.ItemsSubtotal, input.OriginCarryDistanceM+input.DestinationCarryDistanceM)
	breakdown.TravelCost = a.travelCost(input.DistanceKM)

	breakdown.BaseAmount = round2(breakdown.ItemsSubtotal.
		Add(breakdown.OriginFloorSurcharge).
		Add(breakdown.DestinationFloorSurcharge).
		Add(breakdown.CarryDistanceSurcharge).
		Add(breakdown.TravelCost))

	breakdown.SeasonalAdjustment = a.seasonalAdjustment(breakdown.BaseAmount, input.MoveDate)
	breakdown.DayOfWeekSurcharge = a.dayOfWeekSurcharge(breakdown.BaseAmount, input.MoveDate)

	total := breakdown.BaseAmount.
		Add(breakdown.SeasonalAdjustment).
		Add(breakdown.DayOfWeekSurcharge)

	breakdown.MinimumOrderAdjustment = decimal.Zero
	if total.LessThan(a.factors.MinimumOrderAmount) {
		breakdown.MinimumOrderAdjustment = round2(a.factors.MinimumOrderAmount.Sub(total))
		total = a.factors.MinimumOrderAmount
	}
	breakdown.Total = round2(total)

	return breakdown, nil
}

// floorSurcharge charges per level above the mover's ground floor. An elevator
// waives the surcharge entirely.
func (a *Analyzer) floorSurcharge(subtotal decimal.Decimal, floor int, hasElevator bool) decimal.Decimal {
	if hasElevator {
		return decimal.Zero
	}
	levels := floor - a.factors.GroundFloorNumber
	if levels <= 0 || !subtotal.IsPositive() {
		return decimal.Zero
	}
	return round2(subtotal.
		Mul(a.factors.FloorSurchargePercent).
		Mul(decimal.NewFromInt(int64(levels))).
		Div(hundred))
}

// carrySurcharge charges per whole 10m increment of the combined carry
// distance between the truck and both doors.
func (a *Analyzer) carrySurcharge(subtotal decimal.Decimal, combinedMeters int) decimal.Decimal {
	if combinedMeters <= 0 || !subtotal.IsPositive() {
		return decimal.Zero
	}
	increments := combinedMeters / carryIncrementMeters
	if increments == 0 {
		return decimal.Zero
	}
	return round2(subtotal.
		Mul(a.factors.DistanceSurchargePercent).
		Div(hundred).
		Mul(decimal.NewFromInt(int64(increments))))
}

// travelCost is per-kilometer with a floor at the mover's minimum charge.
func (a *Analyzer) travelCost(distanceKM decimal.Decimal) decimal.Decimal {
	if distanceKM.IsNegative() {
		distanceKM = decimal.Zero
	}
	cost := round2(a.factors.TravelCostPerKM.Mul(distanceKM))
	if cost.LessThan(a.factors.TravelCostMinimum) {
		return a.factors.TravelCostMinimum
	}
	return cost
}

// seasonalAdjustment adds the peak-season share on top of the base amount.
func (a *Analyzer) seasonalAdjustment(base decimal.Decimal, moveDate time.Time) decimal.Decimal {
	if !a.factors.IsPeakMonth(moveDate.Month()) {
		return decimal.Zero
	}
	return round2(base.Mul(a.factors.PeakSeasonMultiplier.Sub(one)))
}

// dayOfWeekSurcharge prices the Israeli weekend: Friday carries its own rate,
// Saturday the weekend rate.
func (a *Analyzer) dayOfWeekSurcharge(base decimal.Decimal, moveDate time.Time) decimal.Decimal {
	switch moveDate.Weekday() {
	case time.Friday:
		return round2(base.Mul(a.factors.FridaySurchargePercent).Div(hundred))
	case time.Saturday:
		return round2(base.Mul(a.factors.WeekendSurchargePercent).Div(hundred))
	default:
		return decimal.Zero
	}
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
