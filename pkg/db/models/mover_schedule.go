package models

import (
	"time"

	"github.com/google/uuid"
)

// MoverWeeklySchedule captures one weekday's availability for a mover.
// Weekday uses the Sunday=0 convention.
type MoverWeeklySchedule struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MoverID     uuid.UUID `gorm:"column:mover_id;type:uuid;not null;index"`
	Weekday     int       `gorm:"column:weekday;not null"`
	IsAvailable bool      `gorm:"column:is_available;not null;default:true"`
	MaxBookings int       `gorm:"column:max_bookings;not null;default:3"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// MoverBlockedDate marks a specific calendar day the mover will not work.
type MoverBlockedDate struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MoverID     uuid.UUID `gorm:"column:mover_id;type:uuid;not null;index"`
	BlockedDate time.Time `gorm:"column:blocked_date;type:date;not null"`
	Reason      *string   `gorm:"column:reason"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
}
