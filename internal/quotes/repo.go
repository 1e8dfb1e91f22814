package quotes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/movematch/movematch-backend/pkg/db/models"
)

// Repository persists quotes materialized from comparison selections.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, quote *models.Quote) (*models.Quote, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.Quote, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a quote repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, quote *models.Quote) (*models.Quote, error) {
	if err := r.db.WithContext(ctx).Create(quote).Error; err != nil {
		return nil, err
	}
	return quote, nil
}

func (r *repository) FindByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.Quote, error) {
	var rows []models.Quote
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
