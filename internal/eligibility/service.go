package eligibility

import (
	"context"
	"fmt"
	"strings"

	"github.com/movematch/movematch-backend/internal/availability"
	"github.com/movematch/movematch-backend/internal/movers"
	"github.com/movematch/movematch-backend/pkg/db/models"
	"github.com/movematch/movematch-backend/pkg/enums"
	pkgerrors "github.com/movematch/movematch-backend/pkg/errors"
	"github.com/movematch/movematch-backend/pkg/geo"
	"github.com/movematch/movematch-backend/pkg/logger"
)

// Service filters the mover directory down to movers that can serve an order.
type Service interface {
	FindEligibleMovers(ctx context.Context, order *models.MoveOrder) ([]models.Mover, error)
}

type service struct {
	movers       movers.Repository
	availability availability.Service
	logg         *logger.Logger
}

// NewService wires the eligibility service.
func NewService(moverRepo movers.Repository, availabilitySvc availability.Service, logg *logger.Logger) (Service, error) {
	if moverRepo == nil {
		return nil, fmt.Errorf("mover repository required")
	}
	if availabilitySvc == nil {
		return nil, fmt.Errorf("availability service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{movers: moverRepo, availability: availabilitySvc, logg: logg}, nil
}

// FindEligibleMovers returns the active movers whose service area covers the
// order's origin and who have capacity on the requested date (or anywhere in
// the requested range). The result preserves directory order.
func (s *service) FindEligibleMovers(ctx context.Context, order *models.MoveOrder) ([]models.Mover, error) {
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order required")
	}

	active, err := s.movers.FindActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load active movers")
	}

	eligible := make([]models.Mover, 0, len(active))
	for _, mover := range active {
		if !s.coversOrigin(ctx, mover, order) {
			continue
		}

		available, err := s.hasCapacity(ctx, mover, order)
		if err != nil {
			return nil, err
		}
		if !available {
			continue
		}
		eligible = append(eligible, mover)
	}
	return eligible, nil
}

// coversOrigin prefers the geographic check when both sides carry coordinates
// and falls back to the legacy city-name list otherwise.
func (s *service) coversOrigin(ctx context.Context, mover models.Mover, order *models.MoveOrder) bool {
	if order.OriginLocation != nil && mover.BaseLocation != nil && mover.ServiceRadiusKM != nil {
		return geo.WithinRadiusKM(*mover.BaseLocation, *order.OriginLocation, mover.ServiceRadiusKM.InexactFloat64())
	}

	if order.OriginCity == nil || *order.OriginCity == "" {
		logCtx := s.logg.WithMoverID(ctx, mover.ID.String())
		s.logg.Warn(logCtx, "order has no origin city or coordinates, skipping mover")
		return false
	}
	city := strings.TrimSpace(*order.OriginCity)
	for _, area := range mover.ServiceAreas {
		if strings.EqualFold(strings.TrimSpace(area), city) {
			return true
		}
	}
	return false
}

func (s *service) hasCapacity(ctx context.Context, mover models.Mover, order *models.MoveOrder) (bool, error) {
	if order.DateFlexibility == enums.DateRange && order.MoveDateEnd != nil {
		return s.availability.IsAvailableInRange(ctx, mover.ID, order.MoveDate, *order.MoveDateEnd)
	}
	return s.availability.IsAvailable(ctx, mover.ID, order.MoveDate)
}
