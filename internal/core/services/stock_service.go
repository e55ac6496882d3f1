package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/screenbites/concession_backend/internal/apperrors"
	"github.com/screenbites/concession_backend/internal/core/domain"
	portsrepo "github.com/screenbites/concession_backend/internal/core/ports/repositories"
	portssvc "github.com/screenbites/concession_backend/internal/core/ports/services"
	"github.com/screenbites/concession_backend/internal/dto"
)

// stockService implements the StockService interface. All stock movement goes
// through the monthly ledgers; products only ever see the derived closing
// balance.
type stockService struct {
	BaseService
	stockRepo   portsrepo.StockLedgerRepositoryFacade
	productRepo portsrepo.ProductReader
}

// NewStockService creates a new stock ledger service with the provided dependencies
func NewStockService(
	stockRepo portsrepo.StockLedgerRepositoryFacade,
	productRepo portsrepo.ProductReader,
) portssvc.StockService {
	return &stockService{
		stockRepo:   stockRepo,
		productRepo: productRepo,
	}
}

var _ portssvc.StockService = (*stockService)(nil)

func (s *stockService) RecordReceipt(ctx context.Context, theaterID, productID string, req dto.RecordStockReceiptRequest, actorUserID string) (*domain.MonthlyStockLedger, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.TheaterID != theaterID {
		return nil, apperrors.NewNotFoundError("product " + productID + " not found")
	}

	now := time.Now()
	receiptDate := now
	if req.Date != nil {
		receiptDate = *req.Date
	}
	if req.ExpireDate != nil && req.ExpireDate.Before(receiptDate) {
		return nil, apperrors.NewValidationFailedError("expiry date must not precede the receipt date")
	}
	year, month := receiptDate.Year(), int(receiptDate.Month())

	// Retry the read-modify-write cycle so concurrent receipts against the
	// same ledger merge instead of overwriting each other.
	var lastErr error
	for attempt := 0; attempt < maxMutateRetries; attempt++ {
		ledger, err := s.stockRepo.FindLedger(ctx, productID, year, month)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}

		isNew := ledger == nil
		if isNew {
			ledger, err = s.newMonthLedger(ctx, theaterID, productID, year, month, actorUserID, now)
			if err != nil {
				return nil, err
			}
		}

		ledger.AddReceipt(receiptDate, req.Quantity, req.ExpireDate)
		ledger.LastUpdatedAt = now
		ledger.LastUpdatedBy = actorUserID

		if isNew {
			err = s.stockRepo.SaveLedger(ctx, *ledger)
		} else {
			err = s.stockRepo.UpdateLedger(ctx, *ledger)
		}
		if err == nil {
			s.LogInfo(ctx, "Stock receipt recorded",
				slog.String("theater_id", theaterID),
				slog.String("product_id", productID),
				slog.Int64("quantity", req.Quantity),
				slog.Int64("closing_balance", ledger.ClosingBalance),
				slog.String("actor_id", actorUserID))
			return ledger, nil
		}
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to persist stock receipt",
				slog.String("product_id", productID))
			return nil, err
		}
		lastErr = err
	}

	s.LogError(ctx, lastErr, "Stock receipt kept losing the write race",
		slog.String("product_id", productID))
	return nil, lastErr
}

// newMonthLedger opens a fresh ledger for the month, carrying forward the
// prior month's closing balance when that ledger exists.
func (s *stockService) newMonthLedger(ctx context.Context, theaterID, productID string, year, month int, actorUserID string, now time.Time) (*domain.MonthlyStockLedger, error) {
	var carryForward int64
	prevYear, prevMonth := domain.PreviousMonth(year, month)
	prev, err := s.stockRepo.FindLedger(ctx, productID, prevYear, prevMonth)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	} else {
		carryForward = prev.ClosingBalance
	}

	ledger := &domain.MonthlyStockLedger{
		LedgerID:       uuid.NewString(),
		TheaterID:      theaterID,
		ProductID:      productID,
		Year:           year,
		Month:          month,
		CarryForward:   carryForward,
		ClosingBalance: carryForward,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
	return ledger, nil
}

func (s *stockService) GetLedger(ctx context.Context, theaterID, productID string, year, month int) (*domain.MonthlyStockLedger, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.TheaterID != theaterID {
		return nil, apperrors.NewNotFoundError("product " + productID + " not found")
	}
	if month < 1 || month > 12 {
		return nil, apperrors.NewValidationFailedError("month must be between 1 and 12")
	}
	return s.stockRepo.FindLedger(ctx, productID, year, month)
}

// SweepExpiredStock expires every due batch across all ledgers. Each ledger is
// swept independently; one that loses its write race or fails is counted and
// skipped, so the run always completes.
func (s *stockService) SweepExpiredStock(ctx context.Context, asOf time.Time) (*domain.SweepSummary, error) {
	ledgers, err := s.stockRepo.ListLedgersWithExpirableStock(ctx, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledgers with expirable stock")
		return nil, err
	}

	summary := &domain.SweepSummary{
		AsOf:           asOf,
		LedgersScanned: len(ledgers),
	}
	for i := range ledgers {
		ledger := ledgers[i]
		expired := ledger.ExpireAsOf(asOf)
		if expired == 0 {
			continue
		}
		ledger.LastUpdatedAt = time.Now()
		ledger.LastUpdatedBy = "system:stock-sweep"

		if err := s.stockRepo.UpdateLedger(ctx, ledger); err != nil {
			summary.LedgersFailed++
			s.LogError(ctx, err, "Failed to persist swept ledger",
				slog.String("ledger_id", ledger.LedgerID),
				slog.String("product_id", ledger.ProductID))
			continue
		}
		summary.LedgersSwept++
		summary.QuantityExpired += expired
	}

	s.LogInfo(ctx, "Expired stock sweep completed",
		slog.Time("as_of", asOf),
		slog.Int("scanned", summary.LedgersScanned),
		slog.Int("swept", summary.LedgersSwept),
		slog.Int("failed", summary.LedgersFailed),
		slog.Int64("quantity_expired", summary.QuantityExpired))
	return summary, nil
}
