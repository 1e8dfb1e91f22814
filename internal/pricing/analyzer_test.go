package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/movematch/movematch-backend/pkg/db/models"
	pkgerrors "github.com/movematch/movematch-backend/pkg/errors"
)

type stubPricingRepo struct {
	factors models.MoverPricingFactors
	custom  []models.MoverItemPricing
}

func (s *stubPricingRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubPricingRepo) GetOrCreateFactors(ctx context.Context, moverID uuid.UUID) (*models.MoverPricingFactors, error) {
	f := s.factors
	f.MoverID = moverID
	return &f, nil
}

func (s *stubPricingRepo) FindActiveItemPricing(ctx context.Context, moverID uuid.UUID) ([]models.MoverItemPricing, error) {
	return s.custom, nil
}

var (
	// Wednesday outside peak season.
	quietWednesday = time.Date(2025, time.November, 12, 0, 0, 0, 0, time.UTC)
	// Friday outside peak season.
	novFriday = time.Date(2025, time.November, 14, 0, 0, 0, 0, time.UTC)
	// Saturday outside peak season.
	novSaturday = time.Date(2025, time.November, 15, 0, 0, 0, 0, time.UTC)
	// Wednesday in July (peak).
	julyWednesday = time.Date(2025, time.July, 16, 0, 0, 0, 0, time.UTC)
	// Friday in August (peak + friday).
	augustFriday = time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
)

func newTestAnalyzer(t *testing.T, repo Repository) *Analyzer {
	t.Helper()
	analyzer, err := NewAnalyzer(context.Background(), repo, uuid.New(), nil)
	if err != nil {
		t.Fatalf("NewAnalyzer failed: %v", err)
	}
	return analyzer
}

func defaultFactorsRepo() *stubPricingRepo {
	return &stubPricingRepo{factors: models.DefaultPricingFactors(uuid.Nil)}
}

// twoSofas is 2 x 100.00 = 200.00 of items.
func twoSofas() []LineInput {
	return []LineInput{{
		ItemTypeID:   uuid.New(),
		Name:         "sofa",
		Quantity:     2,
		DefaultPrice: decimal.NewFromInt(100),
		Known:        true,
	}}
}

func assertAmount(t *testing.T, label string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("%s: expected %s got %s", label, want, got)
	}
}

func TestCalculate_SimpleGroundFloorMove(t *testing.T) {
	analyzer := newTestAnalyzer(t, defaultFactorsRepo())

	breakdown, err := analyzer.Calculate(context.Background(), CalculateInput{
		Items:      twoSofas(),
		DistanceKM: decimal.NewFromInt(10),
		MoveDate:   quietWednesday,
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	assertAmount(t, "items subtotal", breakdown.ItemsSubtotal, "200")
	assertAmount(t, "origin floor", breakdown.OriginFloorSurcharge, "0")
	assertAmount(t, "carry", breakdown.CarryDistanceSurcharge, "0")
	// 10km x 5.00 = 50.00 meets the minimum exactly.
	assertAmount(t, "travel", breakdown.TravelCost, "50")
	assertAmount(t, "base", breakdown.BaseAmount, "250")
	assertAmount(t, "seasonal", breakdown.SeasonalAdjustment, "0")
	assertAmount(t, "dow", breakdown.DayOfWeekSurcharge, "0")
	assertAmount(t, "total", breakdown.Total, "250")
	if analyzer.UsedCustomPricing() {
		t.Fatalf("no custom pricing should be recorded")
	}
}

func TestCalculate_FloorSurchargeAndElevatorWaiver(t *testing.T) {
	analyzer := newTestAnalyzer(t, defaultFactorsRepo())

	breakdown, err := analyzer.Calculate(context.Background(), CalculateInput{
		Items:                  twoSofas(),
		OriginFloor:            3,
		DestinationFloor:       5,
		DestinationHasElevator: true,
		DistanceKM:             decimal.NewFromInt(10),
		MoveDate:               quietWednesday,
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	// 200 x 5% x 3 floors = 30.00; the elevator waives the destination side.
	assertAmount(t, "origin floor", breakdown.OriginFloorSurcharge, "30")
	assertAmount(t, "destination floor", breakdown.DestinationFloorSurcharge, "0")
	assertAmount(t, "total", breakdown.Total, "280")
}

func TestCalculate_BasementLevelsDoNotCredit(t *testing.T) {
	analyzer := newTestAnalyzer(t, defaultFactorsRepo())

	breakdown, err := analyzer.Calculate(context.Background(), CalculateInput{
		Items:       twoSofas(),
		OriginFloor: -1,
		DistanceKM:  decimal.NewFromInt(10),
		MoveDate:    quietWednesday,
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	assertAmount(t, "origin floor", breakdown.OriginFloorSurcharge, "0")
}

func TestCalculate_CarryDistanceIncrements(t *testing.T) {
	analyzer := newTestAnalyzer(t, defaultFactorsRepo())

	// 18m + 7m = 25m combined -> two whole 10m increments.
	breakdown, err := analyzer.Calculate(context.Background(), CalculateInput{
		Items:                     twoSofas(),
		OriginCarryDistanceM:      18,
		DestinationCarryDistanceM: 7,
		DistanceKM:                decimal.NewFromInt(10),
		MoveDate:                  quietWednesday,
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	// 200 x 2% x 2 = 8.00
	assertAmount(t, "carry", breakdown.CarryDistanceSurcharge, "8")

	// Below a full increment nothing is charged.
	breakdown, err = analyzer.Calculate(context.Background(), CalculateInput{
		Items:                twoSofas(),
		OriginCarryDistanceM: 9,
		DistanceKM:           decimal.NewFromInt(10),
		MoveDate:             quietWednesday,
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	assertAmount(t, "carry below increment", breakdown.CarryDistanceSurcharge, "0")
}

func TestCalculate_TravelCostAboveMinimum(t *testing.T) {
	analyzer := newTestAnalyzer(t, defaultFactorsRepo())

	breakdown, err := analyzer.Calculate(context.Background(), CalculateInput{
		Items:      twoSofas(),
		DistanceKM: decimal.NewFromInt(20),
		MoveDate:   quietWednesday,
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	assertAmount(t, "travel", breakdown.TravelCost, "100")

	breakdown, err = analyzer.Calculate(context.Background(), CalculateInput{
		Items:      twoSofas(),
		DistanceKM: decimal.NewFromInt(2),
		MoveDate:   quietWednesday,
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	// 2km x 5.00 = 10.00 is below the 50.00 minimum.
	assertAmount(t, "travel minimum", breakdown.TravelCost, "50")
}

func TestCalculate_PeakSeasonAdjustment(t *testing.T) {
	analyzer := newTestAnalyzer(t, defaultFactorsRepo())

	breakdown, err := analyzer.Calculate(context.Background(), CalculateInput{
		Items:      twoSofas(),
		DistanceKM: decimal.NewFromInt(10),
		MoveDate:   julyWednesday,
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	// base 250 x (1.25 - 1) = 62.50
	assertAmount(t, "seasonal", breakdown.SeasonalAdjustment, "62.5")
	assertAmount(t, "total", breakdown.Total, "312.5")
}

func TestCalculate_DayOfWeekSurcharges(t *testing.T) {
	analyzer := newTestAnalyzer(t, defaultFactorsRepo())

	breakdown, err := analyzer.Calculate(context.Background(), CalculateInput{
		Items:      twoSofas(),
		DistanceKM: decimal.NewFromInt(10),
		MoveDate:   novFriday,
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	// Friday: 250 x 10% = 25.00
	assertAmount(t, "friday", breakdown.DayOfWeekSurcharge, "25")
	assertAmount(t, "friday total", breakdown.Total, "275")

	breakdown, err = analyzer.Calculate(context.Background(), CalculateInput{
		Items:      twoSofas(),
		DistanceKM: decimal.NewFromInt(10),
		MoveDate:   novSaturday,
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	// Saturday: 250 x 15% = 37.50
	assertAmount(t, "saturday", breakdown.DayOfWeekSurcharge, "37.5")
	assertAmount(t, "saturday total", breakdown.Total, "287.5")
}

func TestCalculate_PeakAndFridayStack(t *testing.T) {
	analyzer := newTestAnalyzer(t, defaultFactorsRepo())

	breakdown, err := analyzer.Calculate(context.Background(), CalculateInput{
		Items:      twoSofas(),
		DistanceKM: decimal.NewFromInt(10),
		MoveDate:   augustFriday,
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	// Both adjustments apply to the same base: 62.50 + 25.00 on 250.
	assertAmount(t, "seasonal", breakdown.SeasonalAdjustment, "62.5")
	assertAmount(t, "friday", breakdown.DayOfWeekSurcharge, "25")
	assertAmount(t, "total", breakdown.Total, "337.5")
}

func TestCalculate_MinimumOrderClampsUpward(t *testing.T) {
	repo := defaultFactorsRepo()
	repo.factors.MinimumOrderAmount = decimal.NewFromInt(500)
	analyzer := newTestAnalyzer(t, repo)

	breakdown, err := analyzer.Calculate(context.Background(), CalculateInput{
		Items:      twoSofas(),
		DistanceKM: decimal.NewFromInt(10),
		MoveDate:   quietWednesday,
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	assertAmount(t, "minimum adjustment", breakdown.MinimumOrderAdjustment, "250")
	assertAmount(t, "total", breakdown.Total, "500")
}

func TestCalculate_CustomPricingOverridesDefault(t *testing.T) {
	itemTypeID := uuid.New()
	repo := defaultFactorsRepo()
	repo.custom = []models.MoverItemPricing{{
		ItemTypeID: itemTypeID,
		BasePrice:  decimal.NewFromInt(150),
		IsActive:   true,
	}}
	analyzer := newTestAnalyzer(t, repo)

	breakdown, err := analyzer.Calculate(context.Background(), CalculateInput{
		Items: []LineInput{{
			ItemTypeID:   itemTypeID,
			Name:         "piano",
			Quantity:     1,
			DefaultPrice: decimal.NewFromInt(100),
			Known:        true,
		}},
		DistanceKM: decimal.NewFromInt(10),
		MoveDate:   quietWednesday,
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	assertAmount(t, "items subtotal", breakdown.ItemsSubtotal, "150")
	if !analyzer.UsedCustomPricing() {
		t.Fatalf("expected custom pricing flag")
	}
	if !breakdown.Items[0].UsedCustomPricing {
		t.Fatalf("expected line-level custom pricing flag")
	}
}

func TestCalculate_HandlingServicesChargeOnlyWhenRequested(t *testing.T) {
	analyzer := newTestAnalyzer(t, defaultFactorsRepo())

	sofa := LineInput{
		ItemTypeID:                  uuid.New(),
		Name:                        "sofa",
		Quantity:                    2,
		DefaultPrice:                decimal.NewFromInt(100),
		DefaultAssemblyPrice:        decimal.NewFromInt(40),
		DefaultDisassemblyPrice:     decimal.NewFromInt(30),
		DefaultSpecialHandlingPrice: decimal.NewFromInt(60),
		Known:                       true,
	}

	plain, err := analyzer.Calculate(context.Background(), CalculateInput{
		Items:      []LineInput{sofa},
		DistanceKM: decimal.NewFromInt(10),
		MoveDate:   quietWednesday,
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	// Nothing requested: only the units count.
	assertAmount(t, "plain line total", plain.Items[0].LineTotal, "200")
	assertAmount(t, "plain assembly", plain.Items[0].AssemblyCost, "0")

	sofa.RequiresDisassembly = true
	withDisassembly, err := analyzer.Calculate(context.Background(), CalculateInput{
		Items:      []LineInput{sofa},
		DistanceKM: decimal.NewFromInt(10),
		MoveDate:   quietWednesday,
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	// Disassembly is charged once per line, not per unit: 2x100 + 30.
	assertAmount(t, "disassembly cost", withDisassembly.Items[0].DisassemblyCost, "30")
	assertAmount(t, "line total", withDisassembly.Items[0].LineTotal, "230")
	if withDisassembly.Total.Equal(plain.Total) {
		t.Fatalf("requesting disassembly must change the total, both are %s", plain.Total)
	}

	sofa.RequiresAssembly = true
	sofa.RequiresSpecialHandling = true
	full, err := analyzer.Calculate(context.Background(), CalculateInput{
		Items:      []LineInput{sofa},
		DistanceKM: decimal.NewFromInt(10),
		MoveDate:   quietWednesday,
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	// 2x100 + 40 + 30 + 60.
	assertAmount(t, "full line total", full.Items[0].LineTotal, "330")
	assertAmount(t, "full subtotal", full.ItemsSubtotal, "330")
}

func TestCalculate_CustomPricingOverridesHandlingComponents(t *testing.T) {
	itemTypeID := uuid.New()
	repo := defaultFactorsRepo()
	repo.custom = []models.MoverItemPricing{{
		ItemTypeID:           itemTypeID,
		BasePrice:            decimal.NewFromInt(120),
		AssemblyPrice:        decimal.NewFromInt(55),
		DisassemblyPrice:     decimal.NewFromInt(45),
		SpecialHandlingPrice: decimal.NewFromInt(80),
		IsActive:             true,
	}}
	analyzer := newTestAnalyzer(t, repo)

	breakdown, err := analyzer.Calculate(context.Background(), CalculateInput{
		Items: []LineInput{{
			ItemTypeID:                  itemTypeID,
			Name:                        "wardrobe",
			Quantity:                    1,
			DefaultPrice:                decimal.NewFromInt(100),
			DefaultAssemblyPrice:        decimal.NewFromInt(40),
			DefaultDisassemblyPrice:     decimal.NewFromInt(30),
			DefaultSpecialHandlingPrice: decimal.NewFromInt(60),
			RequiresAssembly:            true,
			RequiresDisassembly:         true,
			Known:                       true,
		}},
		DistanceKM: decimal.NewFromInt(10),
		MoveDate:   quietWednesday,
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	// The override replaces every component: 120 + 55 + 45, handling unrequested.
	assertAmount(t, "assembly", breakdown.Items[0].AssemblyCost, "55")
	assertAmount(t, "disassembly", breakdown.Items[0].DisassemblyCost, "45")
	assertAmount(t, "special handling", breakdown.Items[0].SpecialHandlingCost, "0")
	assertAmount(t, "line total", breakdown.Items[0].LineTotal, "220")
}

func TestCalculate_UnknownItemTypePricesAsZero(t *testing.T) {
	analyzer := newTestAnalyzer(t, defaultFactorsRepo())

	breakdown, err := analyzer.Calculate(context.Background(), CalculateInput{
		Items: []LineInput{{
			ItemTypeID: uuid.New(),
			Name:       "retired item",
			Quantity:   3,
			Known:      false,
		}},
		DistanceKM: decimal.NewFromInt(10),
		MoveDate:   quietWednesday,
	})
	if err != nil {
		t.Fatalf("unknown item types must not be fatal: %v", err)
	}
	assertAmount(t, "items subtotal", breakdown.ItemsSubtotal, "0")
	// Only the travel minimum remains.
	assertAmount(t, "total", breakdown.Total, "50")
}

func TestCalculate_ValidationFailures(t *testing.T) {
	analyzer := newTestAnalyzer(t, defaultFactorsRepo())

	_, err := analyzer.Calculate(context.Background(), CalculateInput{
		Items:      twoSofas(),
		DistanceKM: decimal.NewFromInt(10),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing move date, got %v", err)
	}

	bad := twoSofas()
	bad[0].Quantity = 0
	_, err = analyzer.Calculate(context.Background(), CalculateInput{
		Items:      bad,
		DistanceKM: decimal.NewFromInt(10),
		MoveDate:   quietWednesday,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for zero quantity, got %v", err)
	}
}

func TestCalculate_ComponentsSumToTotal(t *testing.T) {
	analyzer := newTestAnalyzer(t, defaultFactorsRepo())

	breakdown, err := analyzer.Calculate(context.Background(), CalculateInput{
		Items:                     twoSofas(),
		OriginFloor:               4,
		DestinationFloor:          2,
		OriginCarryDistanceM:      33,
		DestinationCarryDistanceM: 12,
		DistanceKM:                decimal.RequireFromString("17.3"),
		MoveDate:                  augustFriday,
	})
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	sum := breakdown.BaseAmount.
		Add(breakdown.SeasonalAdjustment).
		Add(breakdown.DayOfWeekSurcharge).
		Add(breakdown.MinimumOrderAdjustment)
	if !sum.Equal(breakdown.Total) {
		t.Fatalf("components %s do not sum to total %s", sum, breakdown.Total)
	}

	base := breakdown.ItemsSubtotal.
		Add(breakdown.OriginFloorSurcharge).
		Add(breakdown.DestinationFloorSurcharge).
		Add(breakdown.CarryDistanceSurcharge).
		Add(breakdown.TravelCost)
	if !base.Equal(breakdown.BaseAmount) {
		t.Fatalf("base components %s do not sum to base %s", base, breakdown.BaseAmount)
	}
}
