package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/screenbites/concession_backend/internal/apperrors"
	"github.com/screenbites/concession_backend/internal/core/domain"
	portssvc "github.com/screenbites/concession_backend/internal/core/ports/services"
	"github.com/screenbites/concession_backend/internal/core/services"
	"github.com/screenbites/concession_backend/internal/dto"
)

// --- Mock TheaterRepositoryFacade ---
type MockTheaterRepository struct {
	mock.Mock
}

func (m *MockTheaterRepository) FindTheaterByID(ctx context.Context, theaterID string) (*domain.Theater, error) {
	args := m.Called(ctx, theaterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Theater), args.Error(1)
}

func (m *MockTheaterRepository) ListTheaters(ctx context.Context, limit int, offset int) ([]domain.Theater, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Theater), args.Error(1)
}

func (m *MockTheaterRepository) SaveTheater(ctx context.Context, theater domain.Theater) error {
	args := m.Called(ctx, theater)
	return args.Error(0)
}

func (m *MockTheaterRepository) UpdateTheater(ctx context.Context, theater domain.Theater) error {
	args := m.Called(ctx, theater)
	return args.Error(0)
}

func (m *MockTheaterRepository) DeactivateTheater(ctx context.Context, theaterID string, updatedBy string, now time.Time) error {
	args := m.Called(ctx, theaterID, updatedBy, now)
	return args.Error(0)
}

// --- Test Suite ---
type TheaterServiceTestSuite struct {
	suite.Suite
	mockTheaterRepo *MockTheaterRepository
	mockRoleRepo    *MockArrayDocumentRepository[domain.Role]
	mockUserRepo    *MockArrayDocumentRepository[domain.TheaterUser]
	mockPageRepo    *MockArrayDocumentRepository[domain.PageAccess]
	mockQRRepo      *MockArrayDocumentRepository[domain.QRCodeName]
	service         portssvc.TheaterService
}

func (suite *TheaterServiceTestSuite) SetupTest() {
	suite.mockTheaterRepo = new(MockTheaterRepository)
	suite.mockRoleRepo = new(MockArrayDocumentRepository[domain.Role])
	suite.mockUserRepo = new(MockArrayDocumentRepository[domain.TheaterUser])
	suite.mockPageRepo = new(MockArrayDocumentRepository[domain.PageAccess])
	suite.mockQRRepo = new(MockArrayDocumentRepository[domain.QRCodeName])
	suite.service = services.NewTheaterService(
		suite.mockTheaterRepo,
		suite.mockRoleRepo,
		suite.mockUserRepo,
		suite.mockPageRepo,
		suite.mockQRRepo,
	)
}

func provisionRequest() dto.CreateTheaterRequest {
	return dto.CreateTheaterRequest{
		Name:          "Grand Plaza",
		City:          "Pune",
		AdminUsername: "plaza-admin",
		AdminPassword: "s3cret-password",
		AdminFullName: "Plaza Admin",
	}
}

// expectSeededDefaults stubs the document writes a successful provisioning
// performs: page catalog, admin role, and the materialized QR and user docs.
func (suite *TheaterServiceTestSuite) expectSeededDefaults(ctx context.Context) {
	suite.mockPageRepo.On("FindOrCreateByTheater", ctx, mock.Anything).
		Return(&domain.ArrayDocument[domain.PageAccess]{Version: 1}, nil).Once()
	suite.mockPageRepo.On("ReplaceItems", ctx, mock.Anything, mock.Anything, int64(1), mock.Anything).
		Return(nil).Once()
	suite.mockRoleRepo.On("FindOrCreateByTheater", ctx, mock.Anything).
		Return(roleDoc("", 1), nil).Once()
	suite.mockRoleRepo.On("ReplaceItems", ctx, mock.Anything, mock.Anything, int64(1), mock.Anything).
		Return(nil).Once()
	suite.mockQRRepo.On("FindOrCreateByTheater", ctx, mock.Anything).
		Return(&domain.ArrayDocument[domain.QRCodeName]{Version: 1}, nil).Once()
}

// --- Test Cases ---

func (suite *TheaterServiceTestSuite) TestCreateTheater_Success() {
	ctx := context.Background()

	suite.mockTheaterRepo.On("SaveTheater", ctx, mock.Anything).Return(nil).Once()
	suite.expectSeededDefaults(ctx)
	suite.mockUserRepo.On("FindOrCreateByTheater", ctx, mock.Anything).
		Return(&domain.ArrayDocument[domain.TheaterUser]{Version: 1}, nil).Twice()
	suite.mockUserRepo.On("ReplaceItems", ctx, mock.Anything, mock.Anything, int64(1), mock.Anything).
		Return(nil).Once()

	result, err := suite.service.CreateTheater(ctx, provisionRequest())

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.True(result.Theater.IsActive)
	suite.True(result.AdminRole.IsAdminRole)
	suite.True(result.AdminRole.IsDefault)
	suite.False(result.AdminRole.CanEdit)
	suite.False(result.AdminRole.CanDelete)
	suite.NotEmpty(result.AdminRole.Permissions)
	suite.Equal(result.AdminRole.RoleID, result.AdminUser.RoleID)
	suite.Len(result.AdminPin, 6)
	suite.mockTheaterRepo.AssertNotCalled(suite.T(), "DeactivateTheater")
	suite.mockTheaterRepo.AssertExpectations(suite.T())
}

func (suite *TheaterServiceTestSuite) TestCreateTheater_SeedFailureDeactivatesTheater() {
	ctx := context.Background()

	suite.mockTheaterRepo.On("SaveTheater", ctx, mock.Anything).Return(nil).Once()
	suite.mockPageRepo.On("FindOrCreateByTheater", ctx, mock.Anything).
		Return(nil, apperrors.NewAppError(500, "storage unavailable", nil)).Once()
	suite.mockTheaterRepo.On("DeactivateTheater", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Once()

	result, err := suite.service.CreateTheater(ctx, provisionRequest())

	suite.Require().Error(err)
	suite.Nil(result)
	suite.mockTheaterRepo.AssertExpectations(suite.T())
}

func (suite *TheaterServiceTestSuite) TestCreateTheater_AdminSeedFailureDeactivatesTheater() {
	ctx := context.Background()

	suite.mockTheaterRepo.On("SaveTheater", ctx, mock.Anything).Return(nil).Once()
	suite.expectSeededDefaults(ctx)
	suite.mockUserRepo.On("FindOrCreateByTheater", ctx, mock.Anything).
		Return(&domain.ArrayDocument[domain.TheaterUser]{Version: 1}, nil)
	suite.mockUserRepo.On("ReplaceItems", ctx, mock.Anything, mock.Anything, int64(1), mock.Anything).
		Return(apperrors.NewAppError(500, "storage unavailable", nil)).Once()
	suite.mockTheaterRepo.On("DeactivateTheater", ctx, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Once()

	result, err := suite.service.CreateTheater(ctx, provisionRequest())

	suite.Require().Error(err)
	suite.Nil(result)
	suite.mockTheaterRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestTheaterService(t *testing.T) {
	suite.Run(t, new(TheaterServiceTestSuite))
}
