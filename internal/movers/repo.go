package movers

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/movematch/movematch-backend/pkg/db/models"
)

// Repository exposes the mover directory reads used by the comparison engine.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindActive(ctx context.Context) ([]models.Mover, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Mover, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a mover repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindActive(ctx context.Context) ([]models.Mover, error) {
	var rows []models.Mover
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Mover, error) {
	var mover models.Mover
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&mover).Error; err != nil {
		return nil, err
	}
	return &mover, nil
}
