package comparison

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/movematch/movematch-backend/pkg/db/models"
	"github.com/movematch/movematch-backend/pkg/enums"
)

// Repository persists comparisons and their priced entries.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, comparison *models.OrderComparison) (*models.OrderComparison, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.OrderComparison, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.OrderComparison, error)
	DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error
	CreateEntries(ctx context.Context, entries []models.ComparisonEntry) error
	MarkReady(ctx context.Context, id uuid.UUID, eligible, priced int) (bool, error)
	MarkFailed(ctx context.Context, id uuid.UUID) (bool, error)
	MarkSelected(ctx context.Context, id, entryID uuid.UUID) (bool, error)
	MarkExpired(ctx context.Context, id uuid.UUID) (bool, error)
	FindEntryByID(ctx context.Context, entryID uuid.UUID) (*models.ComparisonEntry, error)
	MarkEntrySelected(ctx context.Context, entryID, quoteID uuid.UUID) error
	RejectCalculatedSiblings(ctx context.Context, comparisonID, selectedEntryID uuid.UUID) error
	FindExpiredReady(ctx context.Context, now time.Time, limit int) ([]models.OrderComparison, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a comparison repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, comparison *models.OrderComparison) (*models.OrderComparison, error) {
	if err := r.db.WithContext(ctx).Create(comparison).Error; err != nil {
		return nil, err
	}
	return comparison, nil
}

func (r *repository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.OrderComparison, error) {
	var row models.OrderComparison
	err := r.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("rank ASC")
		}).
		Where("order_id = ?", orderID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.OrderComparison, error) {
	var row models.OrderComparison
	err := r.db.WithContext(ctx).
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("rank ASC")
		}).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// DeleteByOrderID removes the order's comparison and, via the FK cascade, its entries.
func (r *repository) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&models.OrderComparison{}).Error
}

func (r *repository) CreateEntries(ctx context.Context, entries []models.ComparisonEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&entries).Error
}

// MarkReady flips generating -> ready and stores the run counters. The guard on
// the current status makes the transition safe against concurrent writers.
func (r *repository) MarkReady(ctx context.Context, id uuid.UUID, eligible, priced int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.OrderComparison{}).
		Where("id = ? AND status = ?", id, enums.ComparisonGenerating).
		Updates(map[string]any{
			"status":                enums.ComparisonReady,
			"total_eligible_movers": eligible,
			"total_priced_movers":   priced,
		})
	return result.RowsAffected > 0, result.Error
}

func (r *repository) MarkFailed(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.OrderComparison{}).
		Where("id = ? AND status = ?", id, enums.ComparisonGenerating).
		Update("status", enums.ComparisonFailed)
	return result.RowsAffected > 0, result.Error
}

// MarkSelected flips ready -> selected. Losing the compare-and-set means another
// request selected first or the comparison left the ready state.
func (r *repository) MarkSelected(ctx context.Context, id, entryID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.OrderComparison{}).
		Where("id = ? AND status = ?", id, enums.ComparisonReady).
		Updates(map[string]any{
			"status":            enums.ComparisonSelected,
			"selected_entry_id": entryID,
		})
	return result.RowsAffected > 0, result.Error
}

func (r *repository) MarkExpired(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.OrderComparison{}).
		Where("id = ? AND status = ?", id, enums.ComparisonReady).
		Update("status", enums.ComparisonExpired)
	return result.RowsAffected > 0, result.Error
}

func (r *repository) FindEntryByID(ctx context.Context, entryID uuid.UUID) (*models.ComparisonEntry, error) {
	var row models.ComparisonEntry
	if err := r.db.WithContext(ctx).Where("id = ?", entryID).First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) MarkEntrySelected(ctx context.Context, entryID, quoteID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.ComparisonEntry{}).
		Where("id = ?", entryID).
		Updates(map[string]any{
			"status":   enums.EntrySelected,
			"quote_id": quoteID,
		}).Error
}

func (r *repository) RejectCalculatedSiblings(ctx context.Context, comparisonID, selectedEntryID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.ComparisonEntry{}).
		Where("comparison_id = ? AND id <> ? AND status = ?", comparisonID, selectedEntryID, enums.EntryCalculated).
		Update("status", enums.EntryRejected).Error
}

func (r *repository) FindExpiredReady(ctx context.Context, now time.Time, limit int) ([]models.OrderComparison, error) {
	var rows []models.OrderComparison
	query := r.db.WithContext(ctx).
		Where("status = ? AND expires_at < ?", enums.ComparisonReady, now).
		Order("expires_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
