package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/movematch/movematch-backend/pkg/errors"
	"github.com/movematch/movematch-backend/pkg/logger"
)

// defaultMaxBookings applies when a mover has no schedule row for a weekday.
const defaultMaxBookings = 3

// Service answers whether a mover can take a job on a given date.
type Service interface {
	IsAvailable(ctx context.Context, moverID uuid.UUID, date time.Time) (bool, error)
	IsAvailableInRange(ctx context.Context, moverID uuid.UUID, from, to time.Time) (bool, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService wires the availability service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("availability repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// weekdayIndex maps a date onto the 0-6 index used by schedule rows, with
// Sunday as 0. Go's time.Weekday shares that numbering.
func weekdayIndex(date time.Time) int {
	return int(date.Weekday())
}

// IsAvailable checks the weekly schedule, blocked dates and booking load for
// one calendar day. A mover with no schedule row for the weekday is treated
// as available with the default capacity.
func (s *service) IsAvailable(ctx context.Context, moverID uuid.UUID, date time.Time) (bool, error) {
	if moverID == uuid.Nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "mover id required")
	}
	if date.IsZero() {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "date required")
	}

	schedule, err := s.repo.FindSchedule(ctx, moverID, weekdayIndex(date))
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load weekly schedule")
	}
	maxBookings := defaultMaxBookings
	if schedule != nil {
		if !schedule.IsAvailable {
			return false, nil
		}
		maxBookings = schedule.MaxBookings
	}

	blocked, err := s.repo.HasBlockedDate(ctx, moverID, date)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check blocked dates")
	}
	if blocked {
		return false, nil
	}

	count, err := s.repo.CountCapacityBookings(ctx, moverID, date)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count bookings")
	}
	return count < int64(maxBookings), nil
}

// IsAvailableInRange reports whether the mover has at least one free day in
// the inclusive [from, to] window.
func (s *service) IsAvailableInRange(ctx context.Context, moverID uuid.UUID, from, to time.Time) (bool, error) {
	if from.IsZero() || to.IsZero() {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "date range required")
	}
	if to.Before(from) {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "range end before start")
	}

	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		ok, err := s.IsAvailable(ctx, moverID, day)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
