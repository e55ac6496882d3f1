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
	"github.com/screenbites/concession_backend/internal/utils"
)

const (
	testPassword = "s3cret-password"
	testPin      = "482910"
)

// --- Mock TheaterReader ---
type MockTheaterReader struct {
	mock.Mock
}

func (m *MockTheaterReader) FindTheaterByID(ctx context.Context, theaterID string) (*domain.Theater, error) {
	args := m.Called(ctx, theaterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Theater), args.Error(1)
}

func (m *MockTheaterReader) ListTheaters(ctx context.Context, limit, offset int) ([]domain.Theater, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Theater), args.Error(1)
}

func userDoc(theaterID string, version int64, users ...domain.TheaterUser) *domain.ArrayDocument[domain.TheaterUser] {
	return &domain.ArrayDocument[domain.TheaterUser]{
		TheaterID: theaterID,
		Items:     users,
		Version:   version,
	}
}

// --- Test Suite ---
type TheaterUserServiceTestSuite struct {
	suite.Suite
	mockUserRepo    *MockArrayDocumentRepository[domain.TheaterUser]
	mockRoleRepo    *MockArrayDocumentRepository[domain.Role]
	mockTheaterRepo *MockTheaterReader
	service         portssvc.TheaterUserService
	theaterID       string

	// bcrypt hashes are expensive, so they are computed once for the suite
	passwordHash string
	pinHash      string
}

func (suite *TheaterUserServiceTestSuite) SetupSuite() {
	var err error
	suite.passwordHash, err = utils.HashPassword(testPassword)
	suite.Require().NoError(err)
	suite.pinHash, err = utils.HashPassword(testPin)
	suite.Require().NoError(err)
}

func (suite *TheaterUserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockArrayDocumentRepository[domain.TheaterUser])
	suite.mockRoleRepo = new(MockArrayDocumentRepository[domain.Role])
	suite.mockTheaterRepo = new(MockTheaterReader)
	suite.service = services.NewTheaterUserService(suite.mockUserRepo, suite.mockRoleRepo, suite.mockTheaterRepo, 3, 15*time.Minute)
	suite.theaterID = uuid.NewString()
}

// expectActiveTheater stubs the theater lookup every login performs.
func (suite *TheaterUserServiceTestSuite) expectActiveTheater(ctx context.Context) {
	suite.mockTheaterRepo.On("FindTheaterByID", ctx, suite.theaterID).
		Return(&domain.Theater{TheaterID: suite.theaterID, Name: "Main Street Cinema", IsActive: true}, nil).Once()
}

func (suite *TheaterUserServiceTestSuite) activeUser() domain.TheaterUser {
	return domain.TheaterUser{
		UserID:       uuid.NewString(),
		Username:     "jdoe",
		PasswordHash: suite.passwordHash,
		PinHash:      suite.pinHash,
		FullName:     "Jordan Doe",
		RoleID:       uuid.NewString(),
		IsActive:     true,
	}
}

// --- Test Cases ---

func (suite *TheaterUserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	roleID := uuid.NewString()
	req := dto.CreateTheaterUserRequest{
		Username: "newstaff",
		Password: testPassword,
		FullName: "New Staff",
		RoleID:   roleID,
	}

	suite.mockRoleRepo.On("FindByTheater", ctx, suite.theaterID).
		Return(roleDoc(suite.theaterID, 1, domain.Role{RoleID: roleID, Name: "Cashier", IsActive: true}), nil).Once()
	suite.mockUserRepo.On("FindOrCreateByTheater", ctx, suite.theaterID).
		Return(userDoc(suite.theaterID, 1), nil).Once()
	suite.mockUserRepo.On("ReplaceItems", ctx, suite.theaterID, mock.Anything, int64(1), mock.Anything).
		Return(nil).Once()

	user, pin, err := suite.service.CreateUser(ctx, suite.theaterID, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.Equal(req.Username, user.Username)
	suite.True(user.IsActive)
	suite.Len(pin, 6)
	// The clear PIN is returned exactly once; only its hash is stored.
	suite.True(utils.CheckPasswordHash(pin, user.PinHash))
	suite.NotEqual(pin, user.PinHash)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockRoleRepo.AssertExpectations(suite.T())
}

func (suite *TheaterUserServiceTestSuite) TestCreateUser_RoleMissing() {
	ctx := context.Background()
	req := dto.CreateTheaterUserRequest{
		Username: "newstaff",
		Password: testPassword,
		RoleID:   uuid.NewString(),
	}

	suite.mockRoleRepo.On("FindByTheater", ctx, suite.theaterID).
		Return(roleDoc(suite.theaterID, 1), nil).Once()

	user, pin, err := suite.service.CreateUser(ctx, suite.theaterID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(user)
	suite.Empty(pin)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "ReplaceItems")
}

func (suite *TheaterUserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	roleID := uuid.NewString()
	existing := suite.activeUser()
	req := dto.CreateTheaterUserRequest{
		Username: "JDOE",
		Password: testPassword,
		RoleID:   roleID,
	}

	suite.mockRoleRepo.On("FindByTheater", ctx, suite.theaterID).
		Return(roleDoc(suite.theaterID, 1, domain.Role{RoleID: roleID, Name: "Cashier", IsActive: true}), nil).Once()
	suite.mockUserRepo.On("FindOrCreateByTheater", ctx, suite.theaterID).
		Return(userDoc(suite.theaterID, 1, existing), nil).Once()

	user, _, err := suite.service.CreateUser(ctx, suite.theaterID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "ReplaceItems")
}

func (suite *TheaterUserServiceTestSuite) TestAuthenticate_PasswordSuccess() {
	ctx := context.Background()
	user := suite.activeUser()

	suite.expectActiveTheater(ctx)
	suite.mockUserRepo.On("FindByTheater", ctx, suite.theaterID).
		Return(userDoc(suite.theaterID, 1, user), nil).Once()
	suite.mockUserRepo.On("FindOrCreateByTheater", ctx, suite.theaterID).
		Return(userDoc(suite.theaterID, 1, user), nil).Once()
	suite.mockUserRepo.On("ReplaceItems", ctx, suite.theaterID, mock.MatchedBy(func(items []domain.TheaterUser) bool {
		return len(items) == 1 && items[0].LastLogin != nil && items[0].LoginAttempts == 0
	}), int64(1), mock.Anything).Return(nil).Once()

	authenticated, err := suite.service.Authenticate(ctx, dto.LoginRequest{
		TheaterID: suite.theaterID,
		Username:  user.Username,
		Password:  testPassword,
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(authenticated)
	suite.Equal(user.UserID, authenticated.UserID)
	suite.NotNil(authenticated.LastLogin)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *TheaterUserServiceTestSuite) TestAuthenticate_PinSuccess() {
	ctx := context.Background()
	user := suite.activeUser()

	suite.expectActiveTheater(ctx)
	suite.mockUserRepo.On("FindByTheater", ctx, suite.theaterID).
		Return(userDoc(suite.theaterID, 1, user), nil).Once()
	suite.mockUserRepo.On("FindOrCreateByTheater", ctx, suite.theaterID).
		Return(userDoc(suite.theaterID, 1, user), nil).Once()
	suite.mockUserRepo.On("ReplaceItems", ctx, suite.theaterID, mock.Anything, int64(1), mock.Anything).
		Return(nil).Once()

	authenticated, err := suite.service.Authenticate(ctx, dto.LoginRequest{
		TheaterID: suite.theaterID,
		Username:  user.Username,
		Pin:       testPin,
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(authenticated)
	suite.Equal(user.UserID, authenticated.UserID)
}

func (suite *TheaterUserServiceTestSuite) TestAuthenticate_UnknownUser() {
	ctx := context.Background()

	suite.expectActiveTheater(ctx)
	suite.mockUserRepo.On("FindByTheater", ctx, suite.theaterID).
		Return(userDoc(suite.theaterID, 1), nil).Once()

	authenticated, err := suite.service.Authenticate(ctx, dto.LoginRequest{
		TheaterID: suite.theaterID,
		Username:  "nobody",
		Password:  testPassword,
	})

	suite.Require().Error(err)
	suite.Nil(authenticated)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TheaterUserServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	user := suite.activeUser()

	suite.expectActiveTheater(ctx)
	suite.mockUserRepo.On("FindByTheater", ctx, suite.theaterID).
		Return(userDoc(suite.theaterID, 1, user), nil).Once()
	// The failed attempt is recorded against the document.
	suite.mockUserRepo.On("FindOrCreateByTheater", ctx, suite.theaterID).
		Return(userDoc(suite.theaterID, 1, user), nil).Once()
	suite.mockUserRepo.On("ReplaceItems", ctx, suite.theaterID, mock.MatchedBy(func(items []domain.TheaterUser) bool {
		return len(items) == 1 && items[0].LoginAttempts == 1 && items[0].LockUntil == nil
	}), int64(1), mock.Anything).Return(nil).Once()

	authenticated, err := suite.service.Authenticate(ctx, dto.LoginRequest{
		TheaterID: suite.theaterID,
		Username:  user.Username,
		Password:  "wrong-password",
	})

	suite.Require().Error(err)
	suite.Nil(authenticated)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *TheaterUserServiceTestSuite) TestAuthenticate_LockoutAtMaxAttempts() {
	ctx := context.Background()
	user := suite.activeUser()
	user.LoginAttempts = 2 // one failure away from the limit of 3

	suite.expectActiveTheater(ctx)
	suite.mockUserRepo.On("FindByTheater", ctx, suite.theaterID).
		Return(userDoc(suite.theaterID, 1, user), nil).Once()
	suite.mockUserRepo.On("FindOrCreateByTheater", ctx, suite.theaterID).
		Return(userDoc(suite.theaterID, 1, user), nil).Once()
	suite.mockUserRepo.On("ReplaceItems", ctx, suite.theaterID, mock.MatchedBy(func(items []domain.TheaterUser) bool {
		return len(items) == 1 && items[0].LockUntil != nil && items[0].LoginAttempts == 0
	}), int64(1), mock.Anything).Return(nil).Once()

	authenticated, err := suite.service.Authenticate(ctx, dto.LoginRequest{
		TheaterID: suite.theaterID,
		Username:  user.Username,
		Password:  "wrong-password",
	})

	suite.Require().Error(err)
	suite.Nil(authenticated)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *TheaterUserServiceTestSuite) TestAuthenticate_LockedAccount() {
	ctx := context.Background()
	user := suite.activeUser()
	lockUntil := time.Now().Add(10 * time.Minute)
	user.LockUntil = &lockUntil

	suite.expectActiveTheater(ctx)
	suite.mockUserRepo.On("FindByTheater", ctx, suite.theaterID).
		Return(userDoc(suite.theaterID, 1, user), nil).Once()

	authenticated, err := suite.service.Authenticate(ctx, dto.LoginRequest{
		TheaterID: suite.theaterID,
		Username:  user.Username,
		Password:  testPassword,
	})

	// A locked account fails identically to bad credentials.
	suite.Require().Error(err)
	suite.Nil(authenticated)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "ReplaceItems")
}

func (suite *TheaterUserServiceTestSuite) TestAuthenticate_InactiveAccount() {
	ctx := context.Background()
	user := suite.activeUser()
	user.IsActive = false

	suite.expectActiveTheater(ctx)
	suite.mockUserRepo.On("FindByTheater", ctx, suite.theaterID).
		Return(userDoc(suite.theaterID, 1, user), nil).Once()

	authenticated, err := suite.service.Authenticate(ctx, dto.LoginRequest{
		TheaterID: suite.theaterID,
		Username:  user.Username,
		Password:  testPassword,
	})

	suite.Require().Error(err)
	suite.Nil(authenticated)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *TheaterUserServiceTestSuite) TestAuthenticate_DeactivatedTheater() {
	ctx := context.Background()
	user := suite.activeUser()

	suite.mockTheaterRepo.On("FindTheaterByID", ctx, suite.theaterID).
		Return(&domain.Theater{TheaterID: suite.theaterID, IsActive: false}, nil).Once()

	authenticated, err := suite.service.Authenticate(ctx, dto.LoginRequest{
		TheaterID: suite.theaterID,
		Username:  user.Username,
		Password:  testPassword,
	})

	suite.Require().Error(err)
	suite.Nil(authenticated)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindByTheater")
}

func (suite *TheaterUserServiceTestSuite) TestRemoveUser_AbsentIsNoop() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindOrCreateByTheater", ctx, suite.theaterID).
		Return(userDoc(suite.theaterID, 1), nil).Once()

	err := suite.service.RemoveUser(ctx, suite.theaterID, uuid.NewString(), uuid.NewString())

	suite.Require().NoError(err)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "ReplaceItems")
}

// --- Run Suite ---
func TestTheaterUserService(t *testing.T) {
	suite.Run(t, new(TheaterUserServiceTestSuite))
}
