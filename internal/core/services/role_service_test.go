package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/screenbites/concession_backend/internal/apperrors"
	"github.com/screenbites/concession_backend/internal/core/domain"
	portssvc "github.com/screenbites/concession_backend/internal/core/ports/services"
	"github.com/screenbites/concession_backend/internal/core/services"
	"github.com/screenbites/concession_backend/internal/dto"
)

// --- Mock ArrayDocumentRepository ---
type MockArrayDocumentRepository[T domain.ArrayItem] struct {
	mock.Mock
}

func (m *MockArrayDocumentRepository[T]) FindOrCreateByTheater(ctx context.Context, theaterID string) (*domain.ArrayDocument[T], error) {
	args := m.Called(ctx, theaterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArrayDocument[T]), args.Error(1)
}

func (m *MockArrayDocumentRepository[T]) FindByTheater(ctx context.Context, theaterID string) (*domain.ArrayDocument[T], error) {
	args := m.Called(ctx, theaterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArrayDocument[T]), args.Error(1)
}

func (m *MockArrayDocumentRepository[T]) ReplaceItems(ctx context.Context, theaterID string, items []T, expectedVersion int64, now time.Time) error {
	args := m.Called(ctx, theaterID, items, expectedVersion, now)
	return args.Error(0)
}

func roleDoc(theaterID string, version int64, roles ...domain.Role) *domain.ArrayDocument[domain.Role] {
	return &domain.ArrayDocument[domain.Role]{
		TheaterID: theaterID,
		Items:     roles,
		Version:   version,
	}
}

// --- Test Suite ---
type RoleServiceTestSuite struct {
	suite.Suite
	mockRoleRepo *MockArrayDocumentRepository[domain.Role]
	service      portssvc.RoleService
	theaterID    string
}

func (suite *RoleServiceTestSuite) SetupTest() {
	suite.mockRoleRepo = new(MockArrayDocumentRepository[domain.Role])
	suite.service = services.NewRoleService(suite.mockRoleRepo)
	suite.theaterID = uuid.NewString()
}

// --- Test Cases ---

func (suite *RoleServiceTestSuite) TestCreateRole_Success() {
	ctx := context.Background()
	req := dto.CreateRoleRequest{
		Name:     "Shift Supervisor",
		Priority: 10,
		Permissions: []dto.PermissionInput{
			{Page: "inventory", PageName: "Inventory", HasAccess: true},
		},
	}

	suite.mockRoleRepo.On("FindOrCreateByTheater", ctx, suite.theaterID).
		Return(roleDoc(suite.theaterID, 1), nil).Once()
	suite.mockRoleRepo.On("ReplaceItems", ctx, suite.theaterID, mock.Anything, int64(1), mock.Anything).
		Return(nil).Once()

	role, err := suite.service.CreateRole(ctx, suite.theaterID, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(role)
	suite.NotEmpty(role.RoleID)
	suite.Equal(req.Name, role.Name)
	suite.True(role.IsActive)
	suite.True(role.CanDelete)
	suite.True(role.CanEdit)
	suite.False(role.IsAdminRole)
	suite.True(role.HasPageAccess("inventory"))
	suite.mockRoleRepo.AssertExpectations(suite.T())
}

func (suite *RoleServiceTestSuite) TestCreateRole_DuplicateName() {
	ctx := context.Background()
	existing := domain.Role{RoleID: uuid.NewString(), Name: "Shift Supervisor", IsActive: true}
	req := dto.CreateRoleRequest{Name: "shift supervisor"}

	suite.mockRoleRepo.On("FindOrCreateByTheater", ctx, suite.theaterID).
		Return(roleDoc(suite.theaterID, 1, existing), nil).Once()

	role, err := suite.service.CreateRole(ctx, suite.theaterID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(role)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	// Duplicates are a caller input problem, not a concurrency conflict.
	var appErr *apperrors.AppError
	suite.Require().True(errors.As(err, &appErr))
	suite.Equal(400, appErr.Code)
	suite.mockRoleRepo.AssertNotCalled(suite.T(), "ReplaceItems")
}

func (suite *RoleServiceTestSuite) TestCreateRole_DuplicatePermissionPage() {
	ctx := context.Background()
	req := dto.CreateRoleRequest{
		Name: "Shift Supervisor",
		Permissions: []dto.PermissionInput{
			{Page: "settings", HasAccess: true},
			{Page: "Settings", HasAccess: false},
		},
	}

	role, err := suite.service.CreateRole(ctx, suite.theaterID, req, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(role)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRoleRepo.AssertNotCalled(suite.T(), "FindOrCreateByTheater")
	suite.mockRoleRepo.AssertNotCalled(suite.T(), "ReplaceItems")
}

func (suite *RoleServiceTestSuite) TestUpdateRole_DuplicatePermissionPage() {
	ctx := context.Background()
	perms := []dto.PermissionInput{
		{Page: "inventory", HasAccess: true},
		{Page: "inventory", HasAccess: false},
	}

	role, err := suite.service.UpdateRole(ctx, suite.theaterID, uuid.NewString(), dto.UpdateRoleRequest{
		Permissions: &perms,
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(role)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRoleRepo.AssertNotCalled(suite.T(), "FindOrCreateByTheater")
	suite.mockRoleRepo.AssertNotCalled(suite.T(), "ReplaceItems")
}

func (suite *RoleServiceTestSuite) TestCreateRole_RetryOnConflict() {
	ctx := context.Background()
	req := dto.CreateRoleRequest{Name: "Cashier"}

	// First write loses the race, the second read sees the new version and wins.
	suite.mockRoleRepo.On("FindOrCreateByTheater", ctx, suite.theaterID).
		Return(roleDoc(suite.theaterID, 1), nil).Once()
	suite.mockRoleRepo.On("ReplaceItems", ctx, suite.theaterID, mock.Anything, int64(1), mock.Anything).
		Return(apperrors.NewVersionConflictError("lost race")).Once()
	suite.mockRoleRepo.On("FindOrCreateByTheater", ctx, suite.theaterID).
		Return(roleDoc(suite.theaterID, 2), nil).Once()
	suite.mockRoleRepo.On("ReplaceItems", ctx, suite.theaterID, mock.Anything, int64(2), mock.Anything).
		Return(nil).Once()

	role, err := suite.service.CreateRole(ctx, suite.theaterID, req, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(role)
	suite.mockRoleRepo.AssertExpectations(suite.T())
}

func (suite *RoleServiceTestSuite) TestGetRoleByID_NotFound() {
	ctx := context.Background()

	suite.mockRoleRepo.On("FindByTheater", ctx, suite.theaterID).
		Return(roleDoc(suite.theaterID, 1), nil).Once()

	role, err := suite.service.GetRoleByID(ctx, suite.theaterID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(role)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *RoleServiceTestSuite) TestUpdateRole_ProtectedRole() {
	ctx := context.Background()
	protected := domain.Role{
		RoleID:   uuid.NewString(),
		Name:     "Theater Admin",
		IsActive: true,
		CanEdit:  false,
	}
	newName := "Renamed"

	suite.mockRoleRepo.On("FindOrCreateByTheater", ctx, suite.theaterID).
		Return(roleDoc(suite.theaterID, 1, protected), nil).Once()

	role, err := suite.service.UpdateRole(ctx, suite.theaterID, protected.RoleID, dto.UpdateRoleRequest{Name: &newName}, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(role)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRoleRepo.AssertNotCalled(suite.T(), "ReplaceItems")
}

func (suite *RoleServiceTestSuite) TestUpdateRole_Success() {
	ctx := context.Background()
	existing := domain.Role{
		RoleID:   uuid.NewString(),
		Name:     "Cashier",
		IsActive: true,
		CanEdit:  true,
	}
	newName := "Senior Cashier"
	isAdmin := true

	suite.mockRoleRepo.On("FindOrCreateByTheater", ctx, suite.theaterID).
		Return(roleDoc(suite.theaterID, 3, existing), nil).Once()
	suite.mockRoleRepo.On("ReplaceItems", ctx, suite.theaterID, mock.Anything, int64(3), mock.Anything).
		Return(nil).Once()

	role, err := suite.service.UpdateRole(ctx, suite.theaterID, existing.RoleID, dto.UpdateRoleRequest{
		Name:        &newName,
		IsAdminRole: &isAdmin,
	}, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(role)
	suite.Equal(newName, role.Name)
	suite.True(role.IsAdminRole)
	suite.mockRoleRepo.AssertExpectations(suite.T())
}

func (suite *RoleServiceTestSuite) TestRemoveRole_AbsentIsNoop() {
	ctx := context.Background()

	suite.mockRoleRepo.On("FindOrCreateByTheater", ctx, suite.theaterID).
		Return(roleDoc(suite.theaterID, 1), nil).Once()

	err := suite.service.RemoveRole(ctx, suite.theaterID, uuid.NewString(), uuid.NewString())

	suite.Require().NoError(err)
	suite.mockRoleRepo.AssertNotCalled(suite.T(), "ReplaceItems")
}

func (suite *RoleServiceTestSuite) TestRemoveRole_ProtectedRole() {
	ctx := context.Background()
	protected := domain.Role{
		RoleID:    uuid.NewString(),
		Name:      "Theater Admin",
		IsActive:  true,
		CanDelete: false,
	}

	suite.mockRoleRepo.On("FindOrCreateByTheater", ctx, suite.theaterID).
		Return(roleDoc(suite.theaterID, 1, protected), nil).Once()

	err := suite.service.RemoveRole(ctx, suite.theaterID, protected.RoleID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockRoleRepo.AssertNotCalled(suite.T(), "ReplaceItems")
}

func (suite *RoleServiceTestSuite) TestResolvePermissions_AdminRole() {
	ctx := context.Background()
	admin := domain.Role{
		RoleID:      uuid.NewString(),
		Name:        "Theater Admin",
		IsActive:    true,
		IsAdminRole: true,
	}

	suite.mockRoleRepo.On("FindByTheater", ctx, suite.theaterID).
		Return(roleDoc(suite.theaterID, 1, admin), nil).Once()

	access, err := suite.service.ResolvePermissions(ctx, suite.theaterID, admin.RoleID)

	suite.Require().NoError(err)
	suite.Equal(domain.UserTypeTheaterAdmin, access.UserType)
	// Admin roles pass page checks implicitly, even without explicit grants.
	suite.True(access.CanAccess("inventory"))
}

func (suite *RoleServiceTestSuite) TestResolvePermissions_NonAdminRole() {
	ctx := context.Background()
	role := domain.Role{
		RoleID:   uuid.NewString(),
		Name:     "Cashier",
		IsActive: true,
		Permissions: []domain.Permission{
			{Page: "qr-codes", HasAccess: true},
			{Page: "roles", HasAccess: false},
		},
	}

	suite.mockRoleRepo.On("FindByTheater", ctx, suite.theaterID).
		Return(roleDoc(suite.theaterID, 1, role), nil).Once()

	access, err := suite.service.ResolvePermissions(ctx, suite.theaterID, role.RoleID)

	suite.Require().NoError(err)
	suite.Equal(domain.UserTypeTheaterUser, access.UserType)
	suite.True(access.CanAccess("qr-codes"))
	suite.False(access.CanAccess("roles"))
	suite.False(access.CanAccess("inventory"))
}

func (suite *RoleServiceTestSuite) TestResolvePermissions_DanglingRole() {
	ctx := context.Background()

	suite.mockRoleRepo.On("FindByTheater", ctx, suite.theaterID).
		Return(roleDoc(suite.theaterID, 1), nil).Once()

	access, err := suite.service.ResolvePermissions(ctx, suite.theaterID, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.UserTypeTheaterUser, access.UserType)
	suite.Empty(access.Pages)
	suite.False(access.CanAccess("inventory"))
}

func (suite *RoleServiceTestSuite) TestResolvePermissions_InactiveRole() {
	ctx := context.Background()
	inactive := domain.Role{
		RoleID:   uuid.NewString(),
		Name:     "Old Role",
		IsActive: false,
		Permissions: []domain.Permission{
			{Page: "inventory", HasAccess: true},
		},
	}

	suite.mockRoleRepo.On("FindByTheater", ctx, suite.theaterID).
		Return(roleDoc(suite.theaterID, 1, inactive), nil).Once()

	access, err := suite.service.ResolvePermissions(ctx, suite.theaterID, inactive.RoleID)

	suite.Require().NoError(err)
	suite.Equal(domain.UserTypeTheaterUser, access.UserType)
	suite.False(access.CanAccess("inventory"))
}

func (suite *RoleServiceTestSuite) TestResolvePermissions_NoDocument() {
	ctx := context.Background()

	suite.mockRoleRepo.On("FindByTheater", ctx, suite.theaterID).
		Return(nil, apperrors.NewNotFoundError("no document")).Once()

	access, err := suite.service.ResolvePermissions(ctx, suite.theaterID, uuid.NewString())

	suite.Require().NoError(err)
	suite.Equal(domain.UserTypeTheaterUser, access.UserType)
	suite.Empty(access.Pages)
}

func TestNewRoleService(t *testing.T) {
	mockRepo := new(MockArrayDocumentRepository[domain.Role])
	service := services.NewRoleService(mockRepo)
	assert.NotNil(t, service)
}

// --- Run Suite ---
func TestRoleService(t *testing.T) {
	suite.Run(t, new(RoleServiceTestSuite))
}
