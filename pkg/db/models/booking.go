package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/movematch/movematch-backend/pkg/enums"
)

// Booking occupies one of a mover's daily slots.
type Booking struct {
	ID          uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MoverID     uuid.UUID           `gorm:"column:mover_id;type:uuid;not null;index"`
	OrderID     *uuid.UUID          `gorm:"column:order_id;type:uuid"`
	BookingDate time.Time           `gorm:"column:booking_date;type:date;not null"`
	Status      enums.BookingStatus `gorm:"column:status;type:booking_status_enum;not null;default:'tentative'"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
