package comparison

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/movematch/movematch-backend/internal/catalog"
	"github.com/movematch/movematch-backend/internal/movers"
	"github.com/movematch/movematch-backend/internal/orders"
	"github.com/movematch/movematch-backend/internal/pricing"
	"github.com/movematch/movematch-backend/internal/quotes"
	"github.com/movematch/movematch-backend/pkg/db/models"
	"github.com/movematch/movematch-backend/pkg/enums"
	pkgerrors "github.com/movematch/movematch-backend/pkg/errors"
	"github.com/movematch/movematch-backend/pkg/logger"
	"github.com/movematch/movematch-backend/pkg/outbox"
	"github.com/movematch/movematch-backend/pkg/types"
)

type stubTx struct {
	inTx  bool
	calls int
}

func (s *stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	s.calls++
	s.inTx = true
	defer func() { s.inTx = false }()
	return fn(nil)
}

type stubEmitter struct {
	events []outbox.DomainEvent
}

func (s *stubEmitter) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	s.events = append(s.events, event)
	return nil
}

func (s *stubEmitter) has(eventType enums.OutboxEventType) bool {
	for _, event := range s.events {
		if event.EventType == eventType {
			return true
		}
	}
	return false
}

type stubLocks struct {
	held     map[string]bool
	released []string
}

func newStubLocks() *stubLocks {
	return &stubLocks{held: map[string]bool{}}
}

func (s *stubLocks) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if s.held[key] {
		return false, nil
	}
	s.held[key] = true
	return true, nil
}

func (s *stubLocks) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.held, key)
		s.released = append(s.released, key)
	}
	return nil
}

func (s *stubLocks) LockKey(scope, id string) string {
	return fmt.Sprintf("mm:lock:%s:%s", scope, id)
}

type stubComparisonRepo struct {
	byID        map[uuid.UUID]*models.OrderComparison
	entries     map[uuid.UUID]*models.ComparisonEntry
	deletes     int
	deletesInTx int
	createsInTx int
	tx          *stubTx
}

func newStubComparisonRepo() *stubComparisonRepo {
	return &stubComparisonRepo{
		byID:    map[uuid.UUID]*models.OrderComparison{},
		entries: map[uuid.UUID]*models.ComparisonEntry{},
	}
}

func (s *stubComparisonRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubComparisonRepo) Create(ctx context.Context, comparison *models.OrderComparison) (*models.OrderComparison, error) {
	if s.tx != nil && s.tx.inTx {
		s.createsInTx++
	}
	if comparison.ID == uuid.Nil {
		comparison.ID = uuid.New()
	}
	s.byID[comparison.ID] = comparison
	return comparison, nil
}

func (s *stubComparisonRepo) attachEntries(comparison *models.OrderComparison) *models.OrderComparison {
	copied := *comparison
	copied.Entries = nil
	for _, entry := range s.entries {
		if entry.ComparisonID == comparison.ID {
			copied.Entries = append(copied.Entries, *entry)
		}
	}
	sort.Slice(copied.Entries, func(i, j int) bool {
		return copied.Entries[i].Rank < copied.Entries[j].Rank
	})
	return &copied
}

func (s *stubComparisonRepo) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.OrderComparison, error) {
	for _, comparison := range s.byID {
		if comparison.OrderID == orderID {
			return s.attachEntries(comparison), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubComparisonRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.OrderComparison, error) {
	if comparison, ok := s.byID[id]; ok {
		return s.attachEntries(comparison), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubComparisonRepo) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	if s.tx != nil && s.tx.inTx {
		s.deletesInTx++
	}
	for id, comparison := range s.byID {
		if comparison.OrderID == orderID {
			delete(s.byID, id)
			for entryID, entry := range s.entries {
				if entry.ComparisonID == id {
					delete(s.entries, entryID)
				}
			}
			s.deletes++
		}
	}
	return nil
}

func (s *stubComparisonRepo) CreateEntries(ctx context.Context, entries []models.ComparisonEntry) error {
	for i := range entries {
		if entries[i].ID == uuid.Nil {
			entries[i].ID = uuid.New()
		}
		entry := entries[i]
		s.entries[entry.ID] = &entry
	}
	return nil
}

func (s *stubComparisonRepo) MarkReady(ctx context.Context, id uuid.UUID, eligible, priced int) (bool, error) {
	comparison, ok := s.byID[id]
	if !ok || comparison.Status != enums.ComparisonGenerating {
		return false, nil
	}
	comparison.Status = enums.ComparisonReady
	comparison.TotalEligibleMovers = eligible
	comparison.TotalPricedMovers = priced
	return true, nil
}

func (s *stubComparisonRepo) MarkFailed(ctx context.Context, id uuid.UUID) (bool, error) {
	comparison, ok := s.byID[id]
	if !ok || comparison.Status != enums.ComparisonGenerating {
		return false, nil
	}
	comparison.Status = enums.ComparisonFailed
	return true, nil
}

func (s *stubComparisonRepo) MarkSelected(ctx context.Context, id, entryID uuid.UUID) (bool, error) {
	comparison, ok := s.byID[id]
	if !ok || comparison.Status != enums.ComparisonReady {
		return false, nil
	}
	comparison.Status = enums.ComparisonSelected
	comparison.SelectedEntryID = &entryID
	return true, nil
}

func (s *stubComparisonRepo) MarkExpired(ctx context.Context, id uuid.UUID) (bool, error) {
	comparison, ok := s.byID[id]
	if !ok || comparison.Status != enums.ComparisonReady {
		return false, nil
	}
	comparison.Status = enums.ComparisonExpired
	return true, nil
}

func (s *stubComparisonRepo) FindEntryByID(ctx context.Context, entryID uuid.UUID) (*models.ComparisonEntry, error) {
	if entry, ok := s.entries[entryID]; ok {
		copied := *entry
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubComparisonRepo) MarkEntrySelected(ctx context.Context, entryID, quoteID uuid.UUID) error {
	entry, ok := s.entries[entryID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	entry.Status = enums.EntrySelected
	entry.QuoteID = &quoteID
	return nil
}

func (s *stubComparisonRepo) RejectCalculatedSiblings(ctx context.Context, comparisonID, selectedEntryID uuid.UUID) error {
	for _, entry := range s.entries {
		if entry.ComparisonID == comparisonID && entry.ID != selectedEntryID && entry.Status == enums.EntryCalculated {
			entry.Status = enums.EntryRejected
		}
	}
	return nil
}

func (s *stubComparisonRepo) FindExpiredReady(ctx context.Context, now time.Time, limit int) ([]models.OrderComparison, error) {
	var due []models.OrderComparison
	for _, comparison := range s.byID {
		if comparison.Status == enums.ComparisonReady && now.After(comparison.ExpiresAt) {
			due = append(due, *comparison)
		}
	}
	return due, nil
}

type stubOrdersRepo struct {
	orders     map[uuid.UUID]*models.MoveOrder
	selections int
}

func (s *stubOrdersRepo) WithTx(tx *gorm.DB) orders.Repository { return s }

func (s *stubOrdersRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.MoveOrder, error) {
	if order, ok := s.orders[id]; ok {
		return order, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrdersRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.MoveOrderStatus) error {
	if order, ok := s.orders[id]; ok {
		order.Status = status
	}
	return nil
}

func (s *stubOrdersRepo) ApplySelection(ctx context.Context, id uuid.UUID, moverID uuid.UUID, total decimal.Decimal, breakdown types.PriceBreakdown) error {
	order, ok := s.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	order.Status = enums.OrderMoverSelected
	order.SelectedMoverID = &moverID
	order.FinalPrice = &total
	order.PriceBreakdown = &breakdown
	s.selections++
	return nil
}

type stubMoversRepo struct {
	movers []models.Mover
}

func (s *stubMoversRepo) WithTx(tx *gorm.DB) movers.Repository { return s }

func (s *stubMoversRepo) FindActive(ctx context.Context) ([]models.Mover, error) {
	return s.movers, nil
}

func (s *stubMoversRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Mover, error) {
	for i := range s.movers {
		if s.movers[i].ID == id {
			return &s.movers[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type stubCatalogRepo struct {
	items map[uuid.UUID]models.ItemType
}

func (s *stubCatalogRepo) WithTx(tx *gorm.DB) catalog.Repository { return s }

func (s *stubCatalogRepo) FindActive(ctx context.Context) ([]models.ItemType, error) {
	var rows []models.ItemType
	for _, item := range s.items {
		rows = append(rows, item)
	}
	return rows, nil
}

func (s *stubCatalogRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.ItemType, error) {
	result := make(map[uuid.UUID]models.ItemType, len(ids))
	for _, id := range ids {
		if item, ok := s.items[id]; ok {
			result[id] = item
		}
	}
	return result, nil
}

type stubPricingRepo struct {
	factorsByMover map[uuid.UUID]models.MoverPricingFactors
	failFor        map[uuid.UUID]bool
}

func (s *stubPricingRepo) WithTx(tx *gorm.DB) pricing.Repository { return s }

func (s *stubPricingRepo) GetOrCreateFactors(ctx context.Context, moverID uuid.UUID) (*models.MoverPricingFactors, error) {
	if s.failFor[moverID] {
		return nil, errors.New("factors unavailable")
	}
	if factors, ok := s.factorsByMover[moverID]; ok {
		return &factors, nil
	}
	factors := models.DefaultPricingFactors(moverID)
	return &factors, nil
}

func (s *stubPricingRepo) FindActiveItemPricing(ctx context.Context, moverID uuid.UUID) ([]models.MoverItemPricing, error) {
	return nil, nil
}

type stubQuotesRepo struct {
	created []*models.Quote
}

func (s *stubQuotesRepo) WithTx(tx *gorm.DB) quotes.Repository { return s }

func (s *stubQuotesRepo) Create(ctx context.Context, quote *models.Quote) (*models.Quote, error) {
	if quote.ID == uuid.Nil {
		quote.ID = uuid.New()
	}
	s.created = append(s.created, quote)
	return quote, nil
}

func (s *stubQuotesRepo) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.Quote, error) {
	var rows []models.Quote
	for _, quote := range s.created {
		if quote.OrderID == orderID {
			rows = append(rows, *quote)
		}
	}
	return rows, nil
}

type stubEligibility struct {
	movers []models.Mover
	err    error
}

func (s *stubEligibility) FindEligibleMovers(ctx context.Context, order *models.MoveOrder) ([]models.Mover, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.movers, nil
}

type fixture struct {
	svc         Service
	tx          *stubTx
	repo        *stubComparisonRepo
	orders      *stubOrdersRepo
	quotes      *stubQuotesRepo
	emitter     *stubEmitter
	locks       *stubLocks
	catalog     *stubCatalogRepo
	pricing     *stubPricingRepo
	eligibility *stubEligibility
	order       *models.MoveOrder
	moverA      models.Mover
	moverB      models.Mover
	moverC      models.Mover
	now         time.Time
}

// newFixture builds a service over three eligible movers whose minimum order
// amounts drive distinct totals: C (no minimum) is cheapest, then B, then A.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	now := time.Date(2026, time.November, 11, 10, 0, 0, 0, time.UTC)

	itemTypeID := uuid.New()
	order := &models.MoveOrder{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		Status:     enums.OrderSubmitted,
		DistanceKM: decimal.NewFromInt(10),
		MoveDate:   time.Date(2026, time.November, 18, 0, 0, 0, 0, time.UTC),
		Items: []models.MoveOrderItem{
			{ItemTypeID: &itemTypeID, Quantity: 1},
		},
	}

	moverA := models.Mover{ID: uuid.New(), CompanyNameHe: "hovalot A", IsActive: true}
	moverB := models.Mover{ID: uuid.New(), CompanyNameHe: "hovalot B", IsActive: true}
	moverC := models.Mover{ID: uuid.New(), CompanyNameHe: "hovalot C", IsActive: true}

	expensive := models.DefaultPricingFactors(moverA.ID)
	expensive.MinimumOrderAmount = decimal.NewFromInt(300)
	middling := models.DefaultPricingFactors(moverB.ID)
	middling.MinimumOrderAmount = decimal.NewFromInt(200)

	f := &fixture{
		tx:      &stubTx{},
		repo:    newStubComparisonRepo(),
		orders:  &stubOrdersRepo{orders: map[uuid.UUID]*models.MoveOrder{order.ID: order}},
		quotes:  &stubQuotesRepo{},
		emitter: &stubEmitter{},
		locks:   newStubLocks(),
		catalog: &stubCatalogRepo{items: map[uuid.UUID]models.ItemType{
			itemTypeID: {ID: itemTypeID, NameHe: "sofa", DefaultPrice: decimal.NewFromInt(100), IsActive: true},
		}},
		pricing: &stubPricingRepo{
			factorsByMover: map[uuid.UUID]models.MoverPricingFactors{
				moverA.ID: expensive,
				moverB.ID: middling,
			},
			failFor: map[uuid.UUID]bool{},
		},
		eligibility: &stubEligibility{movers: []models.Mover{moverA, moverB, moverC}},
		order:       order,
		moverA:      moverA,
		moverB:      moverB,
		moverC:      moverC,
		now:         now,
	}

	f.repo.tx = f.tx

	svc, err := NewService(Deps{
		Tx:          f.tx,
		Repo:        f.repo,
		Orders:      f.orders,
		Movers:      &stubMoversRepo{movers: []models.Mover{moverA, moverB, moverC}},
		Catalog:     f.catalog,
		Pricing:     f.pricing,
		Quotes:      f.quotes,
		Eligibility: f.eligibility,
		Outbox:      f.emitter,
		Locks:       f.locks,
		Logger:      logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		TTL:         48 * time.Hour,
		Now:         func() time.Time { return f.now },
	})
	if err != nil {
		t.Fatalf("NewService failed: %v", err)
	}
	f.svc = svc
	return f
}

func TestGenerate_RanksMoversCheapestFirst(t *testing.T) {
	f := newFixture(t)

	comparison, err := f.svc.Generate(context.Background(), f.order.ID, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if comparison.Status != enums.ComparisonReady {
		t.Fatalf("expected ready, got %s", comparison.Status)
	}
	if comparison.TotalEligibleMovers != 3 || comparison.TotalPricedMovers != 3 {
		t.Fatalf("unexpected counts: eligible=%d priced=%d", comparison.TotalEligibleMovers, comparison.TotalPricedMovers)
	}
	if len(comparison.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(comparison.Entries))
	}

	// Base price is 150 (100 item + 50 travel minimum); minimums clamp A to 300 and B to 200.
	wantOrder := []uuid.UUID{f.moverC.ID, f.moverB.ID, f.moverA.ID}
	for i, entry := range comparison.Entries {
		if entry.MoverID != wantOrder[i] {
			t.Fatalf("rank %d: unexpected mover", i+1)
		}
		if entry.Rank != i+1 {
			t.Fatalf("expected rank %d, got %d", i+1, entry.Rank)
		}
	}
	if !comparison.Entries[0].TotalPrice.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("cheapest total: expected 150, got %s", comparison.Entries[0].TotalPrice)
	}

	if f.order.Status != enums.OrderComparing {
		t.Fatalf("order should move to comparing, got %s", f.order.Status)
	}
	if !f.emitter.has(enums.EventComparisonReady) {
		t.Fatalf("expected comparison_ready event")
	}
	if len(f.locks.held) != 0 {
		t.Fatalf("generation lock should be released")
	}
	if want := f.now.Add(48 * time.Hour); !comparison.ExpiresAt.Equal(want) {
		t.Fatalf("expected expiry %s, got %s", want, comparison.ExpiresAt)
	}
}

func TestGenerate_LockContention(t *testing.T) {
	f := newFixture(t)
	key := f.locks.LockKey(generateLockScope, f.order.ID.String())
	f.locks.held[key] = true

	_, err := f.svc.Generate(context.Background(), f.order.ID, nil)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestGenerate_SkipsFailingMover(t *testing.T) {
	f := newFixture(t)
	f.pricing.failFor[f.moverB.ID] = true

	comparison, err := f.svc.Generate(context.Background(), f.order.ID, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if comparison.Status != enums.ComparisonReady {
		t.Fatalf("expected ready despite a failing mover, got %s", comparison.Status)
	}
	if comparison.TotalEligibleMovers != 3 || comparison.TotalPricedMovers != 2 {
		t.Fatalf("unexpected counts: eligible=%d priced=%d", comparison.TotalEligibleMovers, comparison.TotalPricedMovers)
	}
	for _, entry := range comparison.Entries {
		if entry.MoverID == f.moverB.ID {
			t.Fatalf("failing mover should not have an entry")
		}
	}
}

func TestGenerate_ZeroEligibleMoversIsReady(t *testing.T) {
	f := newFixture(t)
	f.eligibility.movers = nil

	comparison, err := f.svc.Generate(context.Background(), f.order.ID, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if comparison.Status != enums.ComparisonReady {
		t.Fatalf("expected ready, got %s", comparison.Status)
	}
	if len(comparison.Entries) != 0 || comparison.TotalEligibleMovers != 0 {
		t.Fatalf("expected an empty comparison")
	}
}

func TestGenerate_ReplacesPreviousComparison(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.Generate(context.Background(), f.order.ID, nil)
	if err != nil {
		t.Fatalf("first Generate failed: %v", err)
	}
	second, err := f.svc.Generate(context.Background(), f.order.ID, nil)
	if err != nil {
		t.Fatalf("second Generate failed: %v", err)
	}

	if f.repo.deletes != 1 {
		t.Fatalf("expected the previous comparison to be deleted once, got %d", f.repo.deletes)
	}
	if first.ID == second.ID {
		t.Fatalf("regeneration should create a fresh comparison")
	}
}

func TestGenerate_ResetAndCreateShareTransaction(t *testing.T) {
	f := newFixture(t)

	if _, err := f.svc.Generate(context.Background(), f.order.ID, nil); err != nil {
		t.Fatalf("first Generate failed: %v", err)
	}
	if _, err := f.svc.Generate(context.Background(), f.order.ID, nil); err != nil {
		t.Fatalf("second Generate failed: %v", err)
	}

	if f.repo.createsInTx != 2 {
		t.Fatalf("comparison creates must run inside a transaction, got %d of 2", f.repo.createsInTx)
	}
	if f.repo.deletesInTx != 1 {
		t.Fatalf("the regeneration delete must share the create's transaction, got %d", f.repo.deletesInTx)
	}
}

func TestGenerate_TiedTotalsKeepDirectoryOrder(t *testing.T) {
	f := newFixture(t)

	// Clamp A and B to the same minimum so their totals tie at 300.
	tied := models.DefaultPricingFactors(f.moverB.ID)
	tied.MinimumOrderAmount = decimal.NewFromInt(300)
	f.pricing.factorsByMover[f.moverB.ID] = tied

	comparison, err := f.svc.Generate(context.Background(), f.order.ID, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(comparison.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(comparison.Entries))
	}
	if !comparison.Entries[1].TotalPrice.Equal(comparison.Entries[2].TotalPrice) {
		t.Fatalf("fixture lost its tie: %s vs %s", comparison.Entries[1].TotalPrice, comparison.Entries[2].TotalPrice)
	}
	// A is listed before B in the eligibility result, so A keeps rank 2.
	if comparison.Entries[1].MoverID != f.moverA.ID {
		t.Fatalf("rank 2 should keep the earlier-listed mover on a tie")
	}
	if comparison.Entries[2].MoverID != f.moverB.ID {
		t.Fatalf("rank 3 should be the later-listed mover on a tie")
	}
}

func TestGenerate_DisassemblyRequestRaisesTotals(t *testing.T) {
	f := newFixture(t)

	itemTypeID := *f.order.Items[0].ItemTypeID
	itemType := f.catalog.items[itemTypeID]
	itemType.DefaultDisassemblyPrice = decimal.NewFromInt(30)
	f.catalog.items[itemTypeID] = itemType
	f.order.Items[0].RequiresDisassembly = true

	comparison, err := f.svc.Generate(context.Background(), f.order.ID, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// 100 item + 30 disassembly + 50 travel minimum.
	cheapest := comparison.Entries[0]
	if !cheapest.TotalPrice.Equal(decimal.NewFromInt(180)) {
		t.Fatalf("expected 180 with disassembly, got %s", cheapest.TotalPrice)
	}
	if !cheapest.PriceBreakdown.Items[0].DisassemblyCost.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("breakdown line should carry the disassembly cost, got %s", cheapest.PriceBreakdown.Items[0].DisassemblyCost)
	}
}

func TestGenerate_CustomItemWithoutTypePricesAtZero(t *testing.T) {
	f := newFixture(t)

	notes := "surfboard"
	f.order.Items = append(f.order.Items, models.MoveOrderItem{
		Quantity: 2,
		Notes:    &notes,
	})

	comparison, err := f.svc.Generate(context.Background(), f.order.ID, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	cheapest := comparison.Entries[0]
	if len(cheapest.PriceBreakdown.Items) != 2 {
		t.Fatalf("custom item must stay on the breakdown, got %d lines", len(cheapest.PriceBreakdown.Items))
	}
	custom := cheapest.PriceBreakdown.Items[1]
	if custom.Name != notes {
		t.Fatalf("custom line should keep its notes as name, got %q", custom.Name)
	}
	if !custom.LineTotal.IsZero() {
		t.Fatalf("custom line must price at zero, got %s", custom.LineTotal)
	}
	if !cheapest.TotalPrice.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("total should be unchanged at 150, got %s", cheapest.TotalPrice)
	}
}

func TestPreview_CatalogForcedSpecialHandling(t *testing.T) {
	f := newFixture(t)

	itemTypeID := *f.order.Items[0].ItemTypeID
	itemType := f.catalog.items[itemTypeID]
	itemType.RequiresSpecialHandling = true
	itemType.DefaultSpecialHandlingPrice = decimal.NewFromInt(60)
	f.catalog.items[itemTypeID] = itemType

	// The customer did not ask for special handling; the catalog mandates it.
	breakdown, err := f.svc.Preview(context.Background(), PreviewInput{
		MoverID:    f.moverC.ID,
		Items:      []PreviewItem{{ItemTypeID: itemTypeID, Quantity: 1}},
		DistanceKM: decimal.NewFromInt(10),
		MoveDate:   f.order.MoveDate,
	})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if !breakdown.Items[0].SpecialHandlingCost.Equal(decimal.NewFromInt(60)) {
		t.Fatalf("catalog-flagged type must charge special handling, got %s", breakdown.Items[0].SpecialHandlingCost)
	}
	if !breakdown.Total.Equal(decimal.NewFromInt(210)) {
		t.Fatalf("expected total 210, got %s", breakdown.Total)
	}
}

func TestGenerate_RejectsWrongOrderStatus(t *testing.T) {
	f := newFixture(t)
	f.order.Status = enums.OrderDraft

	_, err := f.svc.Generate(context.Background(), f.order.ID, nil)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestGenerate_FailureMarksComparisonFailed(t *testing.T) {
	f := newFixture(t)
	f.eligibility.err = errors.New("mover directory down")

	_, err := f.svc.Generate(context.Background(), f.order.ID, nil)
	if err == nil {
		t.Fatalf("expected error")
	}

	stored, findErr := f.repo.FindByOrderID(context.Background(), f.order.ID)
	if findErr != nil {
		t.Fatalf("comparison row should exist: %v", findErr)
	}
	if stored.Status != enums.ComparisonFailed {
		t.Fatalf("expected failed, got %s", stored.Status)
	}
	if !f.emitter.has(enums.EventComparisonFailed) {
		t.Fatalf("expected comparison_failed event")
	}
}

func TestSelect_AppliesSelectionEndToEnd(t *testing.T) {
	f := newFixture(t)

	comparison, err := f.svc.Generate(context.Background(), f.order.ID, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	winner := comparison.Entries[0]

	selected, err := f.svc.Select(context.Background(), f.order.ID, winner.ID, nil)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	if selected.Status != enums.ComparisonSelected {
		t.Fatalf("expected selected, got %s", selected.Status)
	}
	if selected.SelectedEntryID == nil || *selected.SelectedEntryID != winner.ID {
		t.Fatalf("selected entry id not recorded")
	}

	var selectedCount, rejectedCount int
	for _, entry := range selected.Entries {
		switch entry.Status {
		case enums.EntrySelected:
			selectedCount++
			if entry.QuoteID == nil {
				t.Fatalf("selected entry should link its quote")
			}
		case enums.EntryRejected:
			rejectedCount++
		}
	}
	if selectedCount != 1 || rejectedCount != 2 {
		t.Fatalf("expected 1 selected and 2 rejected, got %d/%d", selectedCount, rejectedCount)
	}

	if len(f.quotes.created) != 1 {
		t.Fatalf("expected one quote, got %d", len(f.quotes.created))
	}
	quote := f.quotes.created[0]
	if quote.Status != enums.QuoteSent {
		t.Fatalf("quote should be sent, got %s", quote.Status)
	}
	if !quote.TotalPrice.Equal(winner.TotalPrice) {
		t.Fatalf("quote price mismatch")
	}

	if f.order.Status != enums.OrderMoverSelected {
		t.Fatalf("order should be mover_selected, got %s", f.order.Status)
	}
	if f.order.SelectedMoverID == nil || *f.order.SelectedMoverID != winner.MoverID {
		t.Fatalf("order should record the selected mover")
	}
	if !f.emitter.has(enums.EventComparisonMoverSelected) || !f.emitter.has(enums.EventQuoteSent) {
		t.Fatalf("expected selection events")
	}
}

func TestSelect_SecondSelectionRejected(t *testing.T) {
	f := newFixture(t)

	comparison, err := f.svc.Generate(context.Background(), f.order.ID, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := f.svc.Select(context.Background(), f.order.ID, comparison.Entries[0].ID, nil); err != nil {
		t.Fatalf("first Select failed: %v", err)
	}
	_, err = f.svc.Select(context.Background(), f.order.ID, comparison.Entries[1].ID, nil)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if f.orders.selections != 1 {
		t.Fatalf("selection must be applied exactly once")
	}
}

func TestSelect_ForeignEntryNotFound(t *testing.T) {
	f := newFixture(t)

	if _, err := f.svc.Generate(context.Background(), f.order.ID, nil); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	foreign := &models.ComparisonEntry{
		ID:           uuid.New(),
		ComparisonID: uuid.New(),
		MoverID:      uuid.New(),
		Status:       enums.EntryCalculated,
		Rank:         1,
		TotalPrice:   decimal.NewFromInt(99),
	}
	f.repo.entries[foreign.ID] = foreign

	_, err := f.svc.Select(context.Background(), f.order.ID, foreign.ID, nil)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSelect_ExpiredComparisonPersistsExpiry(t *testing.T) {
	f := newFixture(t)

	comparison, err := f.svc.Generate(context.Background(), f.order.ID, nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	f.now = f.now.Add(49 * time.Hour)

	_, err = f.svc.Select(context.Background(), f.order.ID, comparison.Entries[0].ID, nil)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}

	stored, _ := f.repo.FindByOrderID(context.Background(), f.order.ID)
	if stored.Status != enums.ComparisonExpired {
		t.Fatalf("expiry should be persisted, got %s", stored.Status)
	}
	if !f.emitter.has(enums.EventComparisonExpired) {
		t.Fatalf("expected comparison_expired event")
	}
}

func TestGet_LazyExpiry(t *testing.T) {
	f := newFixture(t)

	if _, err := f.svc.Generate(context.Background(), f.order.ID, nil); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	f.now = f.now.Add(49 * time.Hour)

	got, err := f.svc.Get(context.Background(), f.order.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Status != enums.ComparisonExpired {
		t.Fatalf("expected expired, got %s", got.Status)
	}
}

func TestExpireDue_SweepsReadyComparisons(t *testing.T) {
	f := newFixture(t)

	if _, err := f.svc.Generate(context.Background(), f.order.ID, nil); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	f.now = f.now.Add(49 * time.Hour)

	expired, err := f.svc.ExpireDue(context.Background(), f.now, 100)
	if err != nil {
		t.Fatalf("ExpireDue failed: %v", err)
	}
	if expired != 1 {
		t.Fatalf("expected 1 expired, got %d", expired)
	}
	if !f.emitter.has(enums.EventComparisonExpired) {
		t.Fatalf("expected comparison_expired event")
	}
}

func TestPreview_PricesWithoutPersisting(t *testing.T) {
	f := newFixture(t)

	itemTypeID := *f.order.Items[0].ItemTypeID
	breakdown, err := f.svc.Preview(context.Background(), PreviewInput{
		MoverID:    f.moverC.ID,
		Items:      []PreviewItem{{ItemTypeID: itemTypeID, Quantity: 1}},
		DistanceKM: decimal.NewFromInt(10),
		MoveDate:   f.order.MoveDate,
	})
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if !breakdown.Total.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("expected total 150, got %s", breakdown.Total)
	}
	if len(f.repo.byID) != 0 {
		t.Fatalf("preview must not persist a comparison")
	}
}

func TestPreview_UnknownMover(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Preview(context.Background(), PreviewInput{
		MoverID:    uuid.New(),
		Items:      []PreviewItem{{ItemTypeID: uuid.New(), Quantity: 1}},
		DistanceKM: decimal.NewFromInt(5),
		MoveDate:   f.order.MoveDate,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
