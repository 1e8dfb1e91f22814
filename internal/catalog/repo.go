package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/movematch/movematch-backend/pkg/db/models"
)

// Repository exposes item-type catalog reads.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindActive(ctx context.Context) ([]models.ItemType, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.ItemType, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindActive(ctx context.Context) ([]models.ItemType, error) {
	var rows []models.ItemType
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name_he ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.ItemType, error) {
	result := make(map[uuid.UUID]models.ItemType, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var rows []models.ItemType
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.ID] = row
	}
	return result, nil
}
