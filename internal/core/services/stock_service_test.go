package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/screenbites/concession_backend/internal/apperrors"
	"github.com/screenbites/concession_backend/internal/core/domain"
	portssvc "github.com/screenbites/concession_backend/internal/core/ports/services"
	"github.com/screenbites/concession_backend/internal/core/services"
	"github.com/screenbites/concession_backend/internal/dto"
)

// --- Mock StockLedgerRepository ---
type MockStockLedgerRepository struct {
	mock.Mock
}

func (m *MockStockLedgerRepository) FindLedger(ctx context.Context, productID string, year, month int) (*domain.MonthlyStockLedger, error) {
	args := m.Called(ctx, productID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MonthlyStockLedger), args.Error(1)
}

func (m *MockStockLedgerRepository) ListLedgersWithExpirableStock(ctx context.Context, asOf time.Time) ([]domain.MonthlyStockLedger, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyStockLedger), args.Error(1)
}

func (m *MockStockLedgerRepository) SaveLedger(ctx context.Context, ledger domain.MonthlyStockLedger) error {
	args := m.Called(ctx, ledger)
	return args.Error(0)
}

func (m *MockStockLedgerRepository) UpdateLedger(ctx context.Context, ledger domain.MonthlyStockLedger) error {
	args := m.Called(ctx, ledger)
	return args.Error(0)
}

// --- Mock ProductReader ---
type MockProductReader struct {
	mock.Mock
}

func (m *MockProductReader) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductReader) ListProductsByTheater(ctx context.Context, theaterID string, limit, offset int) ([]domain.Product, error) {
	args := m.Called(ctx, theaterID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

// --- Test Suite ---
type StockServiceTestSuite struct {
	suite.Suite
	mockStockRepo   *MockStockLedgerRepository
	mockProductRepo *MockProductReader
	service         portssvc.StockService
	theaterID       string
	productID       string
}

func (suite *StockServiceTestSuite) SetupTest() {
	suite.mockStockRepo = new(MockStockLedgerRepository)
	suite.mockProductRepo = new(MockProductReader)
	suite.service = services.NewStockService(suite.mockStockRepo, suite.mockProductRepo)
	suite.theaterID = uuid.NewString()
	suite.productID = uuid.NewString()
}

func (suite *StockServiceTestSuite) product() *domain.Product {
	return &domain.Product{
		ProductID: suite.productID,
		TheaterID: suite.theaterID,
		Name:      "Popcorn Large",
		IsActive:  true,
	}
}

func (suite *StockServiceTestSuite) existingLedger(year, month int, carryForward int64) *domain.MonthlyStockLedger {
	l := &domain.MonthlyStockLedger{
		LedgerID:     uuid.NewString(),
		TheaterID:    suite.theaterID,
		ProductID:    suite.productID,
		Year:         year,
		Month:        month,
		CarryForward: carryForward,
		Version:      1,
	}
	l.Recalculate()
	return l
}

// --- Test Cases ---

func (suite *StockServiceTestSuite) TestRecordReceipt_NewMonthWithCarryForward() {
	ctx := context.Background()
	receiptDate := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	req := dto.RecordStockReceiptRequest{Quantity: 25, Date: &receiptDate}

	suite.mockProductRepo.On("FindProductByID", ctx, suite.productID).
		Return(suite.product(), nil).Once()
	suite.mockStockRepo.On("FindLedger", ctx, suite.productID, 2026, 3).
		Return(nil, apperrors.NewNotFoundError("no ledger")).Once()
	prev := suite.existingLedger(2026, 2, 40)
	prev.AddReceipt(time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC), 10, nil)
	suite.mockStockRepo.On("FindLedger", ctx, suite.productID, 2026, 2).
		Return(prev, nil).Once()
	suite.mockStockRepo.On("SaveLedger", ctx, mock.MatchedBy(func(l domain.MonthlyStockLedger) bool {
		return l.Year == 2026 && l.Month == 3 && l.CarryForward == 50 && l.ClosingBalance == 75
	})).Return(nil).Once()

	ledger, err := suite.service.RecordReceipt(ctx, suite.theaterID, suite.productID, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(ledger)
	suite.Equal(int64(50), ledger.CarryForward)
	suite.Equal(int64(75), ledger.ClosingBalance)
	suite.Len(ledger.StockDetails, 1)
	suite.Equal(int64(25), ledger.StockDetails[0].InvordStock)
	suite.mockStockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestRecordReceipt_NewMonthWithoutPriorLedger() {
	ctx := context.Background()
	receiptDate := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	req := dto.RecordStockReceiptRequest{Quantity: 10, Date: &receiptDate}

	suite.mockProductRepo.On("FindProductByID", ctx, suite.productID).
		Return(suite.product(), nil).Once()
	suite.mockStockRepo.On("FindLedger", ctx, suite.productID, 2026, 1).
		Return(nil, apperrors.NewNotFoundError("no ledger")).Once()
	// December of the previous year is checked for the carry forward.
	suite.mockStockRepo.On("FindLedger", ctx, suite.productID, 2025, 12).
		Return(nil, apperrors.NewNotFoundError("no ledger")).Once()
	suite.mockStockRepo.On("SaveLedger", ctx, mock.MatchedBy(func(l domain.MonthlyStockLedger) bool {
		return l.CarryForward == 0 && l.ClosingBalance == 10
	})).Return(nil).Once()

	ledger, err := suite.service.RecordReceipt(ctx, suite.theaterID, suite.productID, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(int64(0), ledger.CarryForward)
	suite.Equal(int64(10), ledger.ClosingBalance)
	suite.mockStockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestRecordReceipt_ExistingMonth() {
	ctx := context.Background()
	receiptDate := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	req := dto.RecordStockReceiptRequest{Quantity: 5, Date: &receiptDate}

	ledger := suite.existingLedger(2026, 3, 50)
	ledger.AddReceipt(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), 20, nil)

	suite.mockProductRepo.On("FindProductByID", ctx, suite.productID).
		Return(suite.product(), nil).Once()
	suite.mockStockRepo.On("FindLedger", ctx, suite.productID, 2026, 3).
		Return(ledger, nil).Once()
	suite.mockStockRepo.On("UpdateLedger", ctx, mock.MatchedBy(func(l domain.MonthlyStockLedger) bool {
		return l.ClosingBalance == 75 && len(l.StockDetails) == 2
	})).Return(nil).Once()

	got, err := suite.service.RecordReceipt(ctx, suite.theaterID, suite.productID, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(int64(75), got.ClosingBalance)
	suite.mockStockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestRecordReceipt_RetryOnConflict() {
	ctx := context.Background()
	receiptDate := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	req := dto.RecordStockReceiptRequest{Quantity: 5, Date: &receiptDate}

	suite.mockProductRepo.On("FindProductByID", ctx, suite.productID).
		Return(suite.product(), nil).Once()
	// First write loses the race; the re-read sees the concurrent receipt.
	suite.mockStockRepo.On("FindLedger", ctx, suite.productID, 2026, 3).
		Return(suite.existingLedger(2026, 3, 50), nil).Once()
	suite.mockStockRepo.On("UpdateLedger", ctx, mock.Anything).
		Return(apperrors.NewVersionConflictError("lost race")).Once()
	refreshed := suite.existingLedger(2026, 3, 50)
	refreshed.AddReceipt(time.Date(2026, 3, 19, 0, 0, 0, 0, time.UTC), 10, nil)
	refreshed.Version = 2
	suite.mockStockRepo.On("FindLedger", ctx, suite.productID, 2026, 3).
		Return(refreshed, nil).Once()
	suite.mockStockRepo.On("UpdateLedger", ctx, mock.MatchedBy(func(l domain.MonthlyStockLedger) bool {
		// Both the concurrent receipt and this one survive the retry.
		return l.ClosingBalance == 65 && len(l.StockDetails) == 2
	})).Return(nil).Once()

	got, err := suite.service.RecordReceipt(ctx, suite.theaterID, suite.productID, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(int64(65), got.ClosingBalance)
	suite.mockStockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestRecordReceipt_WrongTheater() {
	ctx := context.Background()
	product := suite.product()
	product.TheaterID = uuid.NewString()

	suite.mockProductRepo.On("FindProductByID", ctx, suite.productID).
		Return(product, nil).Once()

	ledger, err := suite.service.RecordReceipt(ctx, suite.theaterID, suite.productID, dto.RecordStockReceiptRequest{Quantity: 5}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(ledger)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockStockRepo.AssertNotCalled(suite.T(), "FindLedger")
}

func (suite *StockServiceTestSuite) TestRecordReceipt_ExpiryBeforeReceipt() {
	ctx := context.Background()
	receiptDate := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	expireDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	suite.mockProductRepo.On("FindProductByID", ctx, suite.productID).
		Return(suite.product(), nil).Once()

	ledger, err := suite.service.RecordReceipt(ctx, suite.theaterID, suite.productID, dto.RecordStockReceiptRequest{
		Quantity:   5,
		Date:       &receiptDate,
		ExpireDate: &expireDate,
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(ledger)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockStockRepo.AssertNotCalled(suite.T(), "SaveLedger")
}

func (suite *StockServiceTestSuite) TestGetLedger_InvalidMonth() {
	ctx := context.Background()

	suite.mockProductRepo.On("FindProductByID", ctx, suite.productID).
		Return(suite.product(), nil).Once()

	ledger, err := suite.service.GetLedger(ctx, suite.theaterID, suite.productID, 2026, 13)

	suite.Require().Error(err)
	suite.Nil(ledger)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *StockServiceTestSuite) TestSweepExpiredStock() {
	ctx := context.Background()
	asOf := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	pastExpiry := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	futureExpiry := time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)

	due := suite.existingLedger(2026, 3, 0)
	due.AddReceipt(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 30, &pastExpiry)
	due.AddReceipt(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 10, &futureExpiry)

	notDue := suite.existingLedger(2026, 3, 0)
	notDue.ProductID = uuid.NewString()
	notDue.AddReceipt(time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), 15, &futureExpiry)

	suite.mockStockRepo.On("ListLedgersWithExpirableStock", ctx, asOf).
		Return([]domain.MonthlyStockLedger{*due, *notDue}, nil).Once()
	suite.mockStockRepo.On("UpdateLedger", ctx, mock.MatchedBy(func(l domain.MonthlyStockLedger) bool {
		// The due batch is fully expired, the future one untouched.
		return l.LedgerID == due.LedgerID &&
			l.StockDetails[0].ExpiredStock == 30 &&
			l.StockDetails[1].ExpiredStock == 0 &&
			l.ClosingBalance == 10
	})).Return(nil).Once()

	summary, err := suite.service.SweepExpiredStock(ctx, asOf)

	suite.Require().NoError(err)
	suite.Equal(2, summary.LedgersScanned)
	suite.Equal(1, summary.LedgersSwept)
	suite.Equal(0, summary.LedgersFailed)
	suite.Equal(int64(30), summary.QuantityExpired)
	suite.mockStockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestSweepExpiredStock_ContinuesPastFailures() {
	ctx := context.Background()
	asOf := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	pastExpiry := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	first := suite.existingLedger(2026, 3, 0)
	first.AddReceipt(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 30, &pastExpiry)

	second := suite.existingLedger(2026, 3, 0)
	second.ProductID = uuid.NewString()
	second.AddReceipt(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 20, &pastExpiry)

	suite.mockStockRepo.On("ListLedgersWithExpirableStock", ctx, asOf).
		Return([]domain.MonthlyStockLedger{*first, *second}, nil).Once()
	suite.mockStockRepo.On("UpdateLedger", ctx, mock.MatchedBy(func(l domain.MonthlyStockLedger) bool {
		return l.LedgerID == first.LedgerID
	})).Return(apperrors.NewVersionConflictError("lost race")).Once()
	suite.mockStockRepo.On("UpdateLedger", ctx, mock.MatchedBy(func(l domain.MonthlyStockLedger) bool {
		return l.LedgerID == second.LedgerID
	})).Return(nil).Once()

	summary, err := suite.service.SweepExpiredStock(ctx, asOf)

	suite.Require().NoError(err)
	suite.Equal(2, summary.LedgersScanned)
	suite.Equal(1, summary.LedgersSwept)
	suite.Equal(1, summary.LedgersFailed)
	suite.Equal(int64(20), summary.QuantityExpired)
	suite.mockStockRepo.AssertExpectations(suite.T())
}

func (suite *StockServiceTestSuite) TestSweepExpiredStock_Idempotent() {
	ctx := context.Background()
	asOf := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)
	pastExpiry := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)

	swept := suite.existingLedger(2026, 3, 0)
	swept.AddReceipt(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 30, &pastExpiry)
	swept.ExpireAsOf(asOf)

	suite.mockStockRepo.On("ListLedgersWithExpirableStock", ctx, asOf).
		Return([]domain.MonthlyStockLedger{*swept}, nil).Once()

	summary, err := suite.service.SweepExpiredStock(ctx, asOf)

	// An already swept ledger is scanned but never rewritten.
	suite.Require().NoError(err)
	suite.Equal(1, summary.LedgersScanned)
	suite.Equal(0, summary.LedgersSwept)
	suite.Equal(int64(0), summary.QuantityExpired)
	suite.mockStockRepo.AssertNotCalled(suite.T(), "UpdateLedger")
}

// --- Run Suite ---
func TestStockService(t *testing.T) {
	suite.Run(t, new(StockServiceTestSuite))
}
