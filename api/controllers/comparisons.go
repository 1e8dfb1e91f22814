package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/movematch/movematch-backend/api/responses"
	"github.com/movematch/movematch-backend/api/validators"
	"github.com/movematch/movematch-backend/internal/comparison"
	pkgerrors "github.com/movematch/movematch-backend/pkg/errors"
	"github.com/movematch/movematch-backend/pkg/logger"
)

const moveDateLayout = "2006-01-02"

// GenerateComparison kicks off pricing of an order against all eligible movers.
func GenerateComparison(svc comparison.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := pathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Generate(r.Context(), orderID, nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, comparison.ToView(result))
	}
}

// GetComparison returns the order's comparison with its ranked entries.
func GetComparison(svc comparison.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := pathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Get(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, comparison.ToView(result))
	}
}

type selectComparisonRequest struct {
	EntryID string `json:"entryId" validate:"required,uuid"`
}

// SelectComparisonEntry picks one mover's offer as the winning quote.
func SelectComparisonEntry(svc comparison.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := pathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req selectComparisonRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		entryID, err := uuid.Parse(req.EntryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "entryId must be a valid uuid"))
			return
		}

		result, err := svc.Select(r.Context(), orderID, entryID, nil)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, comparison.ToView(result))
	}
}

type previewItemRequest struct {
	ItemTypeID              string `json:"itemTypeId" validate:"required,uuid"`
	Quantity                int    `json:"quantity" validate:"required,min=1"`
	RequiresAssembly        bool   `json:"requiresAssembly"`
	RequiresDisassembly     bool   `json:"requiresDisassembly"`
	RequiresSpecialHandling bool   `json:"requiresSpecialHandling"`
}

type previewRequest struct {
	MoverID                   string               `json:"moverId" validate:"required,uuid"`
	Items                     []previewItemRequest `json:"items" validate:"required,min=1,dive"`
	OriginFloor               int                  `json:"originFloor"`
	OriginHasElevator         bool                 `json:"originHasElevator"`
	DestinationFloor          int                  `json:"destinationFloor"`
	DestinationHasElevator    bool                 `json:"destinationHasElevator"`
	OriginCarryDistanceM      int                  `json:"originCarryDistanceM" validate:"min=0"`
	DestinationCarryDistanceM int                  `json:"destinationCarryDistanceM" validate:"min=0"`
	DistanceKM                float64              `json:"distanceKm" validate:"min=0"`
	MoveDate                  string               `json:"moveDate" validate:"required"`
}

// PricingPreview prices a hypothetical move against one mover without creating anything.
func PricingPreview(svc comparison.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req previewRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := req.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		breakdown, err := svc.Preview(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, breakdown)
	}
}

func (req previewRequest) toInput() (comparison.PreviewInput, error) {
	moverID, err := uuid.Parse(req.MoverID)
	if err != nil {
		return comparison.PreviewInput{}, pkgerrors.New(pkgerrors.CodeValidation, "moverId must be a valid uuid")
	}
	moveDate, err := time.Parse(moveDateLayout, req.MoveDate)
	if err != nil {
		return comparison.PreviewInput{}, pkgerrors.New(pkgerrors.CodeValidation, "moveDate must use YYYY-MM-DD")
	}

	items := make([]comparison.PreviewItem, 0, len(req.Items))
	for _, item := range req.Items {
		itemTypeID, err := uuid.Parse(item.ItemTypeID)
		if err != nil {
			return comparison.PreviewInput{}, pkgerrors.New(pkgerrors.CodeValidation, "itemTypeId must be a valid uuid")
		}
		items = append(items, comparison.PreviewItem{
			ItemTypeID:              itemTypeID,
			Quantity:                item.Quantity,
			RequiresAssembly:        item.RequiresAssembly,
			RequiresDisassembly:     item.RequiresDisassembly,
			RequiresSpecialHandling: item.RequiresSpecialHandling,
		})
	}

	return comparison.PreviewInput{
		MoverID:                   moverID,
		Items:                     items,
		OriginFloor:               req.OriginFloor,
		OriginHasElevator:         req.OriginHasElevator,
		DestinationFloor:          req.DestinationFloor,
		DestinationHasElevator:    req.DestinationHasElevator,
		OriginCarryDistanceM:      req.OriginCarryDistanceM,
		DestinationCarryDistanceM: req.DestinationCarryDistanceM,
		DistanceKM:                decimal.NewFromFloat(req.DistanceKM),
		MoveDate:                  moveDate,
	}, nil
}

func pathUUID(r *http.Request, param string) (uuid.UUID, error) {
	raw := chi.URLParam(r, param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, param+" must be a valid uuid")
	}
	return id, nil
}
