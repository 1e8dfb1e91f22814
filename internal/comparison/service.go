package comparison

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/movematch/movematch-backend/internal/catalog"
	"github.com/movematch/movematch-backend/internal/eligibility"
	"github.com/movematch/movematch-backend/internal/movers"
	"github.com/movematch/movematch-backend/internal/orders"
	"github.com/movematch/movematch-backend/internal/pricing"
	"github.com/movematch/movematch-backend/internal/quotes"
	"github.com/movematch/movematch-backend/pkg/db/models"
	"github.com/movematch/movematch-backend/pkg/enums"
	pkgerrors "github.com/movematch/movematch-backend/pkg/errors"
	"github.com/movematch/movematch-backend/pkg/logger"
	"github.com/movematch/movematch-backend/pkg/metrics"
	"github.com/movematch/movematch-backend/pkg/outbox"
	"github.com/movematch/movematch-backend/pkg/outbox/payloads"
	"github.com/movematch/movematch-backend/pkg/types"
)

const generateLockScope = "comparison-generate"

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// EventEmitter appends domain events to the transactional outbox.
type EventEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// LockStore provides the mutual-exclusion primitives backing generation locks.
type LockStore interface {
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	LockKey(scope, id string) string
}

// Service runs the comparison lifecycle: generation, reads, selection and expiry.
type Service interface {
	Generate(ctx context.Context, orderID uuid.UUID, actor *outbox.ActorRef) (*models.OrderComparison, error)
	Get(ctx context.Context, orderID uuid.UUID) (*models.OrderComparison, error)
	Select(ctx context.Context, orderID, entryID uuid.UUID, actor *outbox.ActorRef) (*models.OrderComparison, error)
	Preview(ctx context.Context, input PreviewInput) (*types.PriceBreakdown, error)
	ExpireDue(ctx context.Context, now time.Time, limit int) (int, error)
}

// Deps carries everything the comparison service needs.
type Deps struct {
	Tx          TxRunner
	Repo        Repository
	Orders      orders.Repository
	Movers      movers.Repository
	Catalog     catalog.Repository
	Pricing     pricing.Repository
	Quotes      quotes.Repository
	Eligibility eligibility.Service
	Outbox      EventEmitter
	Locks       LockStore
	Metrics     *metrics.ComparisonMetrics
	Logger      *logger.Logger
	TTL         time.Duration
	LockTTL     time.Duration
	Now         func() time.Time
}

type service struct {
	deps Deps
}

// NewService wires the comparison service.
func NewService(deps Deps) (Service, error) {
	if deps.Tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if deps.Repo == nil {
		return nil, fmt.Errorf("comparison repository required")
	}
	if deps.Orders == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if deps.Movers == nil {
		return nil, fmt.Errorf("movers repository required")
	}
	if deps.Catalog == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if deps.Pricing == nil {
		return nil, fmt.Errorf("pricing repository required")
	}
	if deps.Quotes == nil {
		return nil, fmt.Errorf("quotes repository required")
	}
	if deps.Eligibility == nil {
		return nil, fmt.Errorf("eligibility service required")
	}
	if deps.Outbox == nil {
		return nil, fmt.Errorf("outbox emitter required")
	}
	if deps.Locks == nil {
		return nil, fmt.Errorf("lock store required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if deps.TTL <= 0 {
		deps.TTL = 48 * time.Hour
	}
	if deps.LockTTL <= 0 {
		deps.LockTTL = 30 * time.Second
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &service{deps: deps}, nil
}

type pricedCandidate struct {
	mover      models.Mover
	breakdown  types.PriceBreakdown
	usedCustom bool
}

// Generate prices the order against every eligible mover and stores the ranked
// result. Regeneration replaces any previous non-selected comparison in place.
func (s *service) Generate(ctx context.Context, orderID uuid.UUID, actor *outbox.ActorRef) (*models.OrderComparison, error) {
	started := s.deps.Now()
	logCtx := s.deps.Logger.WithOrderID(ctx, orderID.String())

	order, err := s.deps.Orders.FindByID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if !order.Status.AllowsComparison() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order status does not allow comparison").
			WithDetails(map[string]any{"status": order.Status.String()})
	}

	lockKey := s.deps.Locks.LockKey(generateLockScope, orderID.String())
	acquired, err := s.deps.Locks.SetNX(ctx, lockKey, "1", s.deps.LockTTL)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "acquire generation lock")
	}
	if !acquired {
		s.deps.Metrics.IncGeneration("conflict")
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "comparison generation already in progress")
	}
	defer func() {
		if delErr := s.deps.Locks.Del(context.WithoutCancel(ctx), lockKey); delErr != nil {
			s.deps.Logger.Warn(logCtx, "release generation lock failed")
		}
	}()

	existing, err := s.deps.Repo.FindByOrderID(ctx, orderID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load existing comparison")
	}
	if existing != nil && existing.Status == enums.ComparisonSelected {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "comparison already has a selected mover")
	}

	comparison := &models.OrderComparison{
		OrderID:     orderID,
		Status:      enums.ComparisonGenerating,
		ExpiresAt:   s.deps.Now().Add(s.deps.TTL),
		GeneratedAt: s.deps.Now(),
	}
	// The old comparison must not be gone unless the replacement landed.
	err = s.deps.Tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.deps.Repo.WithTx(tx)
		if existing != nil {
			if err := repo.DeleteByOrderID(ctx, orderID); err != nil {
				return err
			}
		}
		_, err := repo.Create(ctx, comparison)
		return err
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reset and create comparison")
	}
	logCtx = s.deps.Logger.WithComparisonID(logCtx, comparison.ID.String())

	result, err := s.generateEntries(logCtx, comparison, order, actor)
	if err != nil {
		s.failGeneration(logCtx, comparison, actor, err)
		s.deps.Metrics.IncGeneration("failed")
		s.deps.Metrics.ObserveGeneration(s.deps.Now().Sub(started))
		return nil, err
	}

	s.deps.Metrics.IncGeneration("ready")
	s.deps.Metrics.ObserveGeneration(s.deps.Now().Sub(started))
	return result, nil
}

func (s *service) generateEntries(ctx context.Context, comparison *models.OrderComparison, order *models.MoveOrder, actor *outbox.ActorRef) (*models.OrderComparison, error) {
	eligible, err := s.deps.Eligibility.FindEligibleMovers(ctx, order)
	if err != nil {
		return nil, err
	}

	lines, err := s.orderLines(ctx, order)
	if err != nil {
		return nil, err
	}
	input := pricing.CalculateInput{
		Items:                     lines,
		OriginFloor:               order.OriginFloor,
		OriginHasElevator:         order.OriginHasElevator,
		DestinationFloor:          order.DestinationFloor,
		DestinationHasElevator:    order.DestinationHasElevator,
		OriginCarryDistanceM:      order.OriginCarryDistanceM,
		DestinationCarryDistanceM: order.DestinationCarryDistanceM,
		DistanceKM:                order.DistanceKM,
		MoveDate:                  order.MoveDate,
	}

	candidates := make([]pricedCandidate, 0, len(eligible))
	failed := 0
	for _, mover := range eligible {
		breakdown, usedCustom, priceErr := s.priceMover(ctx, mover.ID, input)
		if priceErr != nil {
			failed++
			moverCtx := s.deps.Logger.WithMoverID(ctx, mover.ID.String())
			s.deps.Logger.Error(moverCtx, "pricing mover failed, skipping", priceErr)
			continue
		}
		candidates = append(candidates, pricedCandidate{
			mover:      mover,
			breakdown:  *breakdown,
			usedCustom: usedCustom,
		})
	}
	s.deps.Metrics.AddPricedMovers(len(candidates))
	s.deps.Metrics.AddFailedMovers(failed)

	// Cheapest first; ties keep the directory order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].breakdown.Total.LessThan(candidates[j].breakdown.Total)
	})

	entries := make([]models.ComparisonEntry, 0, len(candidates))
	for rank, candidate := range candidates {
		entries = append(entries, models.ComparisonEntry{
			ComparisonID:      comparison.ID,
			MoverID:           candidate.mover.ID,
			Status:            enums.EntryCalculated,
			Rank:              rank + 1,
			TotalPrice:        candidate.breakdown.Total,
			Currency:          candidate.breakdown.Currency,
			PriceBreakdown:    candidate.breakdown,
			MoverSnapshot:     candidate.mover.Snapshot(),
			UsedCustomPricing: candidate.usedCustom,
		})
	}

	err = s.deps.Tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.deps.Repo.WithTx(tx)
		if err := txRepo.CreateEntries(ctx, entries); err != nil {
			return fmt.Errorf("store entries: %w", err)
		}
		ok, err := txRepo.MarkReady(ctx, comparison.ID, len(eligible), len(candidates))
		if err != nil {
			return fmt.Errorf("mark ready: %w", err)
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "comparison left generating state")
		}
		if err := s.deps.Orders.WithTx(tx).UpdateStatus(ctx, order.ID, enums.OrderComparing); err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		return s.deps.Outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventComparisonReady,
			AggregateType: enums.AggregateComparison,
			AggregateID:   comparison.ID,
			Actor:         actor,
			Version:       1,
			Data: payloads.ComparisonReadyEvent{
				ComparisonID:        comparison.ID,
				OrderID:             order.ID,
				TotalEligibleMovers: len(eligible),
				TotalPricedMovers:   len(candidates),
				ExpiresAt:           comparison.ExpiresAt,
			},
		})
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist comparison")
	}

	fresh, err := s.deps.Repo.FindByOrderID(ctx, order.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload comparison")
	}
	return fresh, nil
}

func (s *service) priceMover(ctx context.Context, moverID uuid.UUID, input pricing.CalculateInput) (*types.PriceBreakdown, bool, error) {
	analyzer, err := pricing.NewAnalyzer(ctx, s.deps.Pricing, moverID, s.deps.Logger)
	if err != nil {
		return nil, false, err
	}
	breakdown, err := analyzer.Calculate(ctx, input)
	if err != nil {
		return nil, false, err
	}
	return breakdown, analyzer.UsedCustomPricing(), nil
}

// orderLines resolves the order's inventory against the catalog. Custom items
// carry no type reference and, like items whose type vanished from the
// catalog, are kept and priced at zero downstream.
func (s *service) orderLines(ctx context.Context, order *models.MoveOrder) ([]pricing.LineInput, error) {
	ids := make([]uuid.UUID, 0, len(order.Items))
	for _, item := range order.Items {
		if item.ItemTypeID != nil {
			ids = append(ids, *item.ItemTypeID)
		}
	}
	byID, err := s.deps.Catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item catalog")
	}

	lines := make([]pricing.LineInput, 0, len(order.Items))
	for _, item := range order.Items {
		line := pricing.LineInput{
			Quantity:                item.Quantity,
			RequiresAssembly:        item.RequiresAssembly,
			RequiresDisassembly:     item.RequiresDisassembly,
			RequiresSpecialHandling: item.RequiresSpecialHandling,
		}
		if item.Notes != nil {
			line.Name = *item.Notes
		}
		if item.ItemTypeID != nil {
			line.ItemTypeID = *item.ItemTypeID
			if itemType, ok := byID[*item.ItemTypeID]; ok {
				applyCatalogDefaults(&line, itemType)
			}
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// applyCatalogDefaults copies the catalog prices onto the line. A type the
// catalog flags for special handling is always charged for it, whether or not
// the customer asked.
func applyCatalogDefaults(line *pricing.LineInput, itemType models.ItemType) {
	line.Name = itemType.NameHe
	line.DefaultPrice = itemType.DefaultPrice
	line.DefaultAssemblyPrice = itemType.DefaultAssemblyPrice
	line.DefaultDisassemblyPrice = itemType.DefaultDisassemblyPrice
	line.DefaultSpecialHandlingPrice = itemType.DefaultSpecialHandlingPrice
	if itemType.RequiresSpecialHandling {
		line.RequiresSpecialHandling = true
	}
	line.Known = true
}

// failGeneration marks the comparison failed and queues the failure event.
// Best effort: the original error is what the caller sees.
func (s *service) failGeneration(ctx context.Context, comparison *models.OrderComparison, actor *outbox.ActorRef, cause error) {
	err := s.deps.Tx.WithTx(ctx, func(tx *gorm.DB) error {
		ok, err := s.deps.Repo.WithTx(tx).MarkFailed(ctx, comparison.ID)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		return s.deps.Outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventComparisonFailed,
			AggregateType: enums.AggregateComparison,
			AggregateID:   comparison.ID,
			Actor:         actor,
			Version:       1,
			Data: payloads.ComparisonFailedEvent{
				ComparisonID: comparison.ID,
				OrderID:      comparison.OrderID,
				Reason:       cause.Error(),
			},
		})
	})
	if err != nil {
		s.deps.Logger.Error(ctx, "marking comparison failed", err)
	}
}

// Get returns the order's comparison. A ready comparison past its deadline is
// flipped to expired before being returned.
func (s *service) Get(ctx context.Context, orderID uuid.UUID) (*models.OrderComparison, error) {
	comparison, err := s.deps.Repo.FindByOrderID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "comparison not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load comparison")
	}

	if comparison.Status == enums.ComparisonReady && comparison.IsExpired(s.deps.Now()) {
		if err := s.expireComparison(ctx, comparison); err != nil {
			return nil, err
		}
		comparison.Status = enums.ComparisonExpired
	}
	return comparison, nil
}

// Select picks one entry as the winning offer. The whole transition commits in
// a single transaction so a concurrent select sees either all of it or nothing.
func (s *service) Select(ctx context.Context, orderID, entryID uuid.UUID, actor *outbox.ActorRef) (*models.OrderComparison, error) {
	comparison, err := s.deps.Repo.FindByOrderID(ctx, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "comparison not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load comparison")
	}

	entry, err := s.deps.Repo.FindEntryByID(ctx, entryID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "comparison entry not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load comparison entry")
	}
	if entry.ComparisonID != comparison.ID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "comparison entry not found")
	}

	if comparison.Status != enums.ComparisonReady {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "comparison is not open for selection").
			WithDetails(map[string]any{"status": comparison.Status.String()})
	}
	if comparison.IsExpired(s.deps.Now()) {
		if err := s.expireComparison(ctx, comparison); err != nil {
			return nil, err
		}
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "comparison has expired")
	}

	err = s.deps.Tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.deps.Repo.WithTx(tx)

		ok, err := txRepo.MarkSelected(ctx, comparison.ID, entry.ID)
		if err != nil {
			return fmt.Errorf("mark comparison selected: %w", err)
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "comparison is not open for selection")
		}

		validUntil := comparison.ExpiresAt
		quote, err := s.deps.Quotes.WithTx(tx).Create(ctx, &models.Quote{
			OrderID:        orderID,
			MoverID:        entry.MoverID,
			Status:         enums.QuoteSent,
			TotalPrice:     entry.TotalPrice,
			Currency:       entry.Currency,
			PriceBreakdown: entry.PriceBreakdown,
			ValidUntil:     &validUntil,
		})
		if err != nil {
			return fmt.Errorf("create quote: %w", err)
		}

		if err := txRepo.MarkEntrySelected(ctx, entry.ID, quote.ID); err != nil {
			return fmt.Errorf("mark entry selected: %w", err)
		}
		if err := txRepo.RejectCalculatedSiblings(ctx, comparison.ID, entry.ID); err != nil {
			return fmt.Errorf("reject sibling entries: %w", err)
		}
		if err := s.deps.Orders.WithTx(tx).ApplySelection(ctx, orderID, entry.MoverID, entry.TotalPrice, entry.PriceBreakdown); err != nil {
			return fmt.Errorf("apply selection to order: %w", err)
		}

		if err := s.deps.Outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventComparisonMoverSelected,
			AggregateType: enums.AggregateComparison,
			AggregateID:   comparison.ID,
			Actor:         actor,
			Version:       1,
			Data: payloads.MoverSelectedEvent{
				ComparisonID: comparison.ID,
				OrderID:      orderID,
				EntryID:      entry.ID,
				MoverID:      entry.MoverID,
				QuoteID:      quote.ID,
				TotalPrice:   entry.TotalPrice,
				Currency:     entry.Currency.String(),
			},
		}); err != nil {
			return err
		}
		return s.deps.Outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventQuoteSent,
			AggregateType: enums.AggregateQuote,
			AggregateID:   quote.ID,
			Actor:         actor,
			Version:       1,
			Data: payloads.QuoteSentEvent{
				QuoteID:    quote.ID,
				OrderID:    orderID,
				MoverID:    entry.MoverID,
				TotalPrice: entry.TotalPrice,
				Currency:   entry.Currency.String(),
			},
		})
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply selection")
	}

	fresh, err := s.deps.Repo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload comparison")
	}
	return fresh, nil
}

// Preview prices a hypothetical move against one mover without persisting anything.
func (s *service) Preview(ctx context.Context, input PreviewInput) (*types.PriceBreakdown, error) {
	if input.MoverID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "mover id required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item required")
	}

	if _, err := s.deps.Movers.FindByID(ctx, input.MoverID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "mover not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load mover")
	}

	ids := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		ids = append(ids, item.ItemTypeID)
	}
	byID, err := s.deps.Catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item catalog")
	}

	lines := make([]pricing.LineInput, 0, len(input.Items))
	for _, item := range input.Items {
		line := pricing.LineInput{
			ItemTypeID:              item.ItemTypeID,
			Quantity:                item.Quantity,
			RequiresAssembly:        item.RequiresAssembly,
			RequiresDisassembly:     item.RequiresDisassembly,
			RequiresSpecialHandling: item.RequiresSpecialHandling,
		}
		if itemType, ok := byID[item.ItemTypeID]; ok {
			applyCatalogDefaults(&line, itemType)
		}
		lines = append(lines, line)
	}

	breakdown, _, err := s.priceMover(ctx, input.MoverID, pricing.CalculateInput{
		Items:                     lines,
		OriginFloor:               input.OriginFloor,
		OriginHasElevator:         input.OriginHasElevator,
		DestinationFloor:          input.DestinationFloor,
		DestinationHasElevator:    input.DestinationHasElevator,
		OriginCarryDistanceM:      input.OriginCarryDistanceM,
		DestinationCarryDistanceM: input.DestinationCarryDistanceM,
		DistanceKM:                input.DistanceKM,
		MoveDate:                  input.MoveDate,
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "price preview")
	}
	return breakdown, nil
}

// ExpireDue sweeps ready comparisons past their deadline. Returns the number expired.
func (s *service) ExpireDue(ctx context.Context, now time.Time, limit int) (int, error) {
	due, err := s.deps.Repo.FindExpiredReady(ctx, now, limit)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find expired comparisons")
	}

	expired := 0
	var sweepErr error
	for i := range due {
		if err := s.expireComparison(ctx, &due[i]); err != nil {
			// One bad row must not stall the whole sweep.
			sweepErr = multierr.Append(sweepErr, err)
			continue
		}
		expired++
	}
	return expired, sweepErr
}

func (s *service) expireComparison(ctx context.Context, comparison *models.OrderComparison) error {
	err := s.deps.Tx.WithTx(ctx, func(tx *gorm.DB) error {
		ok, err := s.deps.Repo.WithTx(tx).MarkExpired(ctx, comparison.ID)
		if err != nil {
			return err
		}
		if !ok {
			// Another writer already moved it out of ready.
			return nil
		}
		return s.deps.Outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventComparisonExpired,
			AggregateType: enums.AggregateComparison,
			AggregateID:   comparison.ID,
			Version:       1,
			Data: payloads.ComparisonExpiredEvent{
				ComparisonID: comparison.ID,
				OrderID:      comparison.OrderID,
				ExpiredAt:    s.deps.Now(),
			},
		})
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "expire comparison")
	}
	return nil
}
