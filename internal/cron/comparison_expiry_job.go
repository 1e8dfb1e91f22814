package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/movematch/movematch-backend/pkg/logger"
)

const expirySweepBatchSize = 200

type comparisonExpirer interface {
	ExpireDue(ctx context.Context, now time.Time, limit int) (int, error)
}

// ComparisonExpiryJobParams configure the comparison expiry sweeper.
type ComparisonExpiryJobParams struct {
	Logger  *logger.Logger
	Expirer comparisonExpirer
}

// NewComparisonExpiryJob builds the cron job that expires ready comparisons
// whose deadline passed without a selection.
func NewComparisonExpiryJob(params ComparisonExpiryJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Expirer == nil {
		return nil, fmt.Errorf("comparison expirer required")
	}
	return &comparisonExpiryJob{
		logg:    params.Logger,
		expirer: params.Expirer,
		now:     time.Now,
	}, nil
}

type comparisonExpiryJob struct {
	logg    *logger.Logger
	expirer comparisonExpirer
	now     func() time.Time
}

func (j *comparisonExpiryJob) Name() string { return "comparison-expiry" }

func (j *comparisonExpiryJob) Run(ctx context.Context) error {
	total := 0
	for {
		expired, err := j.expirer.ExpireDue(ctx, j.now().UTC(), expirySweepBatchSize)
		total += expired
		if err != nil {
			return fmt.Errorf("expire comparisons: %w", err)
		}
		if expired < expirySweepBatchSize {
			break
		}
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{"count": total})
	j.logg.Info(logCtx, "comparison expiry sweep complete")
	return nil
}
