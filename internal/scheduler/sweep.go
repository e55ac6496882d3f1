package scheduler

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/screenbites/concession_backend/internal/core/ports/services"
)

// SweepScheduler runs the expired-stock sweep once a day at a fixed local
// hour. It is a plain time loop; with a single instance per deployment there
// is nothing to coordinate, and a missed tick is caught up on the next one.
type SweepScheduler struct {
	stockService portssvc.StockService
	logger       *slog.Logger
	hour         int
	location     *time.Location
}

// NewSweepScheduler creates a scheduler firing daily at the given hour in the
// given timezone.
func NewSweepScheduler(stockService portssvc.StockService, logger *slog.Logger, hour int, timezone string) *SweepScheduler {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		logger.Warn("Invalid sweep timezone, falling back to UTC", slog.String("timezone", timezone))
		location = time.UTC
	}
	return &SweepScheduler{
		stockService: stockService,
		logger:       logger,
		hour:         hour,
		location:     location,
	}
}

// Run blocks until the context is canceled, sweeping once per day. Call it in
// its own goroutine.
func (s *SweepScheduler) Run(ctx context.Context) {
	s.logger.Info("Stock sweep scheduler started",
		slog.Int("hour", s.hour),
		slog.String("timezone", s.location.String()))

	for {
		wait := time.Until(s.nextRun(time.Now().In(s.location)))
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Stock sweep scheduler stopped")
			return
		case <-timer.C:
		}

		s.sweep(ctx)
	}
}

func (s *SweepScheduler) sweep(ctx context.Context) {
	summary, err := s.stockService.SweepExpiredStock(ctx, time.Now())
	if err != nil {
		s.logger.Error("Scheduled stock sweep failed", slog.String("error", err.Error()))
		return
	}
	s.logger.Info("Scheduled stock sweep finished",
		slog.Int("scanned", summary.LedgersScanned),
		slog.Int("swept", summary.LedgersSwept),
		slog.Int("failed", summary.LedgersFailed),
		slog.Int64("quantity_expired", summary.QuantityExpired))
}

// nextRun returns the next occurrence of the configured hour after now.
func (s *SweepScheduler) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, 0, 0, 0, s.location)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
