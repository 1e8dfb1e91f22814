package availability

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/movematch/movematch-backend/pkg/db/models"
	"github.com/movematch/movematch-backend/pkg/enums"
)

// Repository reads mover schedules, blocked dates and booking load.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindSchedule(ctx context.Context, moverID uuid.UUID, weekday int) (*models.MoverWeeklySchedule, error)
	HasBlockedDate(ctx context.Context, moverID uuid.UUID, date time.Time) (bool, error)
	CountCapacityBookings(ctx context.Context, moverID uuid.UUID, date time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an availability repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// FindSchedule returns nil without error when the mover has no row for the
// weekday; callers fall back to the platform default in that case.
func (r *repository) FindSchedule(ctx context.Context, moverID uuid.UUID, weekday int) (*models.MoverWeeklySchedule, error) {
	var row models.MoverWeeklySchedule
	err := r.db.WithContext(ctx).
		Where("mover_id = ? AND weekday = ?", moverID, weekday).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) HasBlockedDate(ctx context.Context, moverID uuid.UUID, date time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.MoverBlockedDate{}).
		Where("mover_id = ? AND blocked_date = ?", moverID, date.Format(time.DateOnly)).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountCapacityBookings counts the bookings that occupy a slot on the date.
// Cancelled and completed bookings do not count against capacity.
func (r *repository) CountCapacityBookings(ctx context.Context, moverID uuid.UUID, date time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("mover_id = ? AND booking_date = ? AND status IN ?",
			moverID, date.Format(time.DateOnly), enums.CapacityBookingStatuses).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
