package orders

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/movematch/movematch-backend/pkg/db/models"
	"github.com/movematch/movematch-backend/pkg/enums"
	"github.com/movematch/movematch-backend/pkg/types"
)

// Repository exposes move-order reads and the writes the comparison engine needs.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id uuid.UUID) (*models.MoveOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.MoveOrderStatus) error
	ApplySelection(ctx context.Context, id uuid.UUID, moverID uuid.UUID, total decimal.Decimal, breakdown types.PriceBreakdown) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.MoveOrder, error) {
	var order models.MoveOrder
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.MoveOrderStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.MoveOrder{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *repository) ApplySelection(ctx context.Context, id uuid.UUID, moverID uuid.UUID, total decimal.Decimal, breakdown types.PriceBreakdown) error {
	return r.db.WithContext(ctx).
		Model(&models.MoveOrder{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":            enums.OrderMoverSelected,
			"selected_mover_id": moverID,
			"final_price":       total,
			"price_breakdown":   breakdown,
		}).Error
}
