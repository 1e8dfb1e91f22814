package pricing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/movematch/movematch-backend/pkg/db/models"
)

// Repository loads per-mover pricing configuration.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	GetOrCreateFactors(ctx context.Context, moverID uuid.UUID) (*models.MoverPricingFactors, error)
	FindActiveItemPricing(ctx context.Context, moverID uuid.UUID) ([]models.MoverItemPricing, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a pricing repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// GetOrCreateFactors returns the mover's pricing factors, creating the row
// with platform defaults the first time the mover is priced.
func (r *repository) GetOrCreateFactors(ctx context.Context, moverID uuid.UUID) (*models.MoverPricingFactors, error) {
	var factors models.MoverPricingFactors
	err := r.db.WithContext(ctx).Where("mover_id = ?", moverID).First(&factors).Error
	if err == nil {
		return &factors, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	factors = models.DefaultPricingFactors(moverID)
	if createErr := r.db.WithContext(ctx).Create(&factors).Error; createErr != nil {
		// A concurrent request may have created the row first.
		var existing models.MoverPricingFactors
		if findErr := r.db.WithContext(ctx).Where("mover_id = ?", moverID).First(&existing).Error; findErr == nil {
			return &existing, nil
		}
		return nil, createErr
	}
	return &factors, nil
}

func (r *repository) FindActiveItemPricing(ctx context.Context, moverID uuid.UUID) ([]models.MoverItemPricing, error) {
	var rows []models.MoverItemPricing
	err := r.db.WithContext(ctx).
		Where("mover_id = ? AND is_active = ?", moverID, true).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
