package comparison

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/movematch/movematch-backend/pkg/db/models"
	"github.com/movematch/movematch-backend/pkg/types"
)

// PreviewItem is one inventory line in a pricing preview request.
type PreviewItem struct {
	ItemTypeID              uuid.UUID
	Quantity                int
	RequiresAssembly        bool
	RequiresDisassembly     bool
	RequiresSpecialHandling bool
}

// PreviewInput prices a hypothetical move for one mover without touching any order.
type PreviewInput struct {
	MoverID uuid.UUID
	Items   []PreviewItem

	OriginFloor               int
	OriginHasElevator         bool
	DestinationFloor          int
	DestinationHasElevator    bool
	OriginCarryDistanceM      int
	DestinationCarryDistanceM int

	DistanceKM decimal.Decimal
	MoveDate   time.Time
}

// EntryView is the API shape of one mover's offer.
type EntryView struct {
	ID                uuid.UUID            `json:"id"`
	MoverID           uuid.UUID            `json:"moverId"`
	Status            string               `json:"status"`
	Rank              int                  `json:"rank"`
	TotalPrice        decimal.Decimal      `json:"totalPrice"`
	Currency          string               `json:"currency"`
	PriceBreakdown    types.PriceBreakdown `json:"priceBreakdown"`
	MoverSnapshot     types.MoverSnapshot  `json:"moverSnapshot"`
	UsedCustomPricing bool                 `json:"usedCustomPricing"`
	QuoteID           *uuid.UUID           `json:"quoteId,omitempty"`
}

// View is the API shape of a comparison.
type View struct {
	ID                  uuid.UUID   `json:"id"`
	OrderID             uuid.UUID   `json:"orderId"`
	Status              string      `json:"status"`
	TotalEligibleMovers int         `json:"totalEligibleMovers"`
	TotalPricedMovers   int         `json:"totalPricedMovers"`
	SelectedEntryID     *uuid.UUID  `json:"selectedEntryId,omitempty"`
	ExpiresAt           time.Time   `json:"expiresAt"`
	GeneratedAt         time.Time   `json:"generatedAt"`
	Entries             []EntryView `json:"entries"`
}

// ToView maps a comparison row and its entries to the API shape.
func ToView(comparison *models.OrderComparison) View {
	view := View{
		ID:                  comparison.ID,
		OrderID:             comparison.OrderID,
		Status:              comparison.Status.String(),
		TotalEligibleMovers: comparison.TotalEligibleMovers,
		TotalPricedMovers:   comparison.TotalPricedMovers,
		SelectedEntryID:     comparison.SelectedEntryID,
		ExpiresAt:           comparison.ExpiresAt,
		GeneratedAt:         comparison.GeneratedAt,
		Entries:             make([]EntryView, 0, len(comparison.Entries)),
	}
	for _, entry := range comparison.Entries {
		view.Entries = append(view.Entries, EntryView{
			ID:                entry.ID,
			MoverID:           entry.MoverID,
			Status:            entry.Status.String(),
			Rank:              entry.Rank,
			TotalPrice:        entry.TotalPrice,
			Currency:          entry.Currency.String(),
			PriceBreakdown:    entry.PriceBreakdown,
			MoverSnapshot:     entry.MoverSnapshot,
			UsedCustomPricing: entry.UsedCustomPricing,
			QuoteID:           entry.QuoteID,
		})
	}
	return view
}
