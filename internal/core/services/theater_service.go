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
	"github.com/screenbites/concession_backend/internal/utils"
)

// theaterService implements the TheaterService interface. It owns tenant
// provisioning: a new theater always comes with its default page catalog, a
// protected admin role and one admin account.
type theaterService struct {
	BaseService
	theaterRepo portsrepo.TheaterRepositoryFacade
	roleRepo    portsrepo.ArrayDocumentRepository[domain.Role]
	userRepo    portsrepo.ArrayDocumentRepository[domain.TheaterUser]
	pageRepo    portsrepo.ArrayDocumentRepository[domain.PageAccess]
	qrRepo      portsrepo.ArrayDocumentRepository[domain.QRCodeName]
}

// NewTheaterService creates a new theater service with the provided dependencies
func NewTheaterService(
	theaterRepo portsrepo.TheaterRepositoryFacade,
	roleRepo portsrepo.ArrayDocumentRepository[domain.Role],
	userRepo portsrepo.ArrayDocumentRepository[domain.TheaterUser],
	pageRepo portsrepo.ArrayDocumentRepository[domain.PageAccess],
	qrRepo portsrepo.ArrayDocumentRepository[domain.QRCodeName],
) portssvc.TheaterService {
	return &theaterService{
		theaterRepo: theaterRepo,
		roleRepo:    roleRepo,
		userRepo:    userRepo,
		pageRepo:    pageRepo,
		qrRepo:      qrRepo,
	}
}

var _ portssvc.TheaterService = (*theaterService)(nil)

func (s *theaterService) CreateTheater(ctx context.Context, req dto.CreateTheaterRequest) (*portssvc.TheaterProvisionResult, error) {
	now := time.Now()
	theaterID := uuid.NewString()
	adminUserID := uuid.NewString()

	theater := domain.Theater{
		TheaterID:   theaterID,
		Name:        req.Name,
		Description: req.Description,
		City:        req.City,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     adminUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: adminUserID,
		},
	}

	if err := s.theaterRepo.SaveTheater(ctx, theater); err != nil {
		s.LogError(ctx, err, "Failed to save theater",
			slog.String("theater_id", theaterID))
		return nil, err
	}

	adminRole, err := s.seedDefaults(ctx, theaterID, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to seed theater defaults",
			slog.String("theater_id", theaterID))
		s.abortProvisioning(ctx, theaterID, adminUserID)
		return nil, err
	}

	adminUser, pin, err := s.seedAdminUser(ctx, theaterID, adminUserID, adminRole.RoleID, req, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to create initial admin account",
			slog.String("theater_id", theaterID))
		s.abortProvisioning(ctx, theaterID, adminUserID)
		return nil, err
	}

	s.LogInfo(ctx, "Theater provisioned successfully",
		slog.String("theater_id", theaterID),
		slog.String("admin_user_id", adminUser.UserID))
	return &portssvc.TheaterProvisionResult{
		Theater:   theater,
		AdminRole: *adminRole,
		AdminUser: *adminUser,
		AdminPin:  pin,
	}, nil
}

// abortProvisioning deactivates a theater whose seeding failed partway. The
// scoped documents live in separate tables behind separate repositories, so
// provisioning cannot run in one transaction; deactivating the row keeps the
// half-provisioned tenant from accepting logins until it is cleaned up.
func (s *theaterService) abortProvisioning(ctx context.Context, theaterID, adminUserID string) {
	if err := s.theaterRepo.DeactivateTheater(ctx, theaterID, adminUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate half-provisioned theater",
			slog.String("theater_id", theaterID))
	}
}

// seedDefaults creates the page catalog, the protected admin role and the
// empty documents for the remaining entity kinds.
func (s *theaterService) seedDefaults(ctx context.Context, theaterID string, now time.Time) (*domain.Role, error) {
	pages := domain.DefaultPages()
	permissions := make([]domain.Permission, 0, len(pages))
	for i := range pages {
		pages[i].PageID = uuid.NewString()
		pages[i].CreatedAt = now
		pages[i].LastUpdatedAt = now
		permissions = append(permissions, domain.Permission{
			Page:      pages[i].Page,
			PageName:  pages[i].PageName,
			Route:     pages[i].Route,
			HasAccess: true,
		})
	}

	err := mutateDocument(ctx, s.pageRepo, theaterID, now, func(doc *domain.ArrayDocument[domain.PageAccess]) error {
		if len(doc.Items) > 0 {
			return errNoChange
		}
		doc.Items = pages
		return nil
	})
	if err != nil {
		return nil, err
	}

	adminRole := domain.Role{
		RoleID:        uuid.NewString(),
		Name:          "Theater Admin",
		Description:   "Full access to every page of the theater",
		IsActive:      true,
		IsDefault:     true,
		IsAdminRole:   true,
		CanDelete:     false,
		CanEdit:       false,
		Permissions:   permissions,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	err = mutateDocument(ctx, s.roleRepo, theaterID, now, func(doc *domain.ArrayDocument[domain.Role]) error {
		if len(doc.Items) > 0 {
			return errNoChange
		}
		doc.Items = append(doc.Items, adminRole)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Materialize the remaining documents so later reads never miss.
	if _, err := s.qrRepo.FindOrCreateByTheater(ctx, theaterID); err != nil {
		return nil, err
	}
	if _, err := s.userRepo.FindOrCreateByTheater(ctx, theaterID); err != nil {
		return nil, err
	}

	return &adminRole, nil
}

func (s *theaterService) seedAdminUser(ctx context.Context, theaterID, adminUserID, adminRoleID string, req dto.CreateTheaterRequest, now time.Time) (*domain.TheaterUser, string, error) {
	passwordHash, err := utils.HashPassword(req.AdminPassword)
	if err != nil {
		return nil, "", apperrors.NewAppError(500, "failed to hash admin password", err)
	}
	pin, err := utils.GeneratePIN(pinDigits)
	if err != nil {
		return nil, "", apperrors.NewAppError(500, "failed to generate admin PIN", err)
	}
	pinHash, err := utils.HashPassword(pin)
	if err != nil {
		return nil, "", apperrors.NewAppError(500, "failed to hash admin PIN", err)
	}

	admin := domain.TheaterUser{
		UserID:        adminUserID,
		Username:      req.AdminUsername,
		PasswordHash:  passwordHash,
		PinHash:       pinHash,
		FullName:      req.AdminFullName,
		Email:         req.AdminEmail,
		RoleID:        adminRoleID,
		IsActive:      true,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	err = mutateDocument(ctx, s.userRepo, theaterID, now, func(doc *domain.ArrayDocument[domain.TheaterUser]) error {
		doc.Items = append(doc.Items, admin)
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return &admin, pin, nil
}

func (s *theaterService) GetTheaterByID(ctx context.Context, theaterID string) (*domain.Theater, error) {
	theater, err := s.theaterRepo.FindTheaterByID(ctx, theaterID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find theater by ID",
				slog.String("theater_id", theaterID))
		}
		return nil, err
	}
	return theater, nil
}

func (s *theaterService) ListTheaters(ctx context.Context, limit, offset int) ([]domain.Theater, error) {
	theaters, err := s.theaterRepo.ListTheaters(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list theaters")
		return nil, err
	}
	if theaters == nil {
		return []domain.Theater{}, nil
	}
	return theaters, nil
}

func (s *theaterService) UpdateTheater(ctx context.Context, theaterID string, req dto.UpdateTheaterRequest, updaterUserID string) (*domain.Theater, error) {
	theater, err := s.theaterRepo.FindTheaterByID(ctx, theaterID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		theater.Name = *req.Name
	}
	if req.Description != nil {
		theater.Description = *req.Description
	}
	if req.City != nil {
		theater.City = *req.City
	}
	theater.LastUpdatedAt = time.Now()
	theater.LastUpdatedBy = updaterUserID

	if err := s.theaterRepo.UpdateTheater(ctx, *theater); err != nil {
		s.LogError(ctx, err, "Failed to update theater",
			slog.String("theater_id", theaterID))
		return nil, err
	}
	theater.Version++

	s.LogInfo(ctx, "Theater updated successfully",
		slog.String("theater_id", theaterID),
		slog.String("updater_id", updaterUserID))
	return theater, nil
}

func (s *theaterService) DeactivateTheater(ctx context.Context, theaterID string, updaterUserID string) error {
	if err := s.theaterRepo.DeactivateTheater(ctx, theaterID, updaterUserID, time.Now()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate theater",
				slog.String("theater_id", theaterID))
		}
		return err
	}

	s.LogInfo(ctx, "Theater deactivated",
		slog.String("theater_id", theaterID),
		slog.String("updater_id", updaterUserID))
	return nil
}
