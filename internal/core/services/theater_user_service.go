package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/screenbites/concession_backend/internal/apperrors"
	"github.com/screenbites/concession_backend/internal/core/domain"
	portsrepo "github.com/screenbites/concession_backend/internal/core/ports/repositories"
	portssvc "github.com/screenbites/concession_backend/internal/core/ports/services"
	"github.com/screenbites/concession_backend/internal/dto"
	"github.com/screenbites/concession_backend/internal/utils"
)

const pinDigits = 6

// theaterUserService implements the TheaterUserService interface
type theaterUserService struct {
	BaseService
	userRepo         portsrepo.ArrayDocumentRepository[domain.TheaterUser]
	roleRepo         portsrepo.ArrayDocumentRepository[domain.Role]
	theaterRepo      portsrepo.TheaterReader
	maxLoginAttempts int
	lockoutDuration  time.Duration
}

// NewTheaterUserService creates a new staff account service with the provided dependencies
func NewTheaterUserService(
	userRepo portsrepo.ArrayDocumentRepository[domain.TheaterUser],
	roleRepo portsrepo.ArrayDocumentRepository[domain.Role],
	theaterRepo portsrepo.TheaterReader,
	maxLoginAttempts int,
	lockoutDuration time.Duration,
) portssvc.TheaterUserService {
	return &theaterUserService{
		userRepo:         userRepo,
		roleRepo:         roleRepo,
		theaterRepo:      theaterRepo,
		maxLoginAttempts: maxLoginAttempts,
		lockoutDuration:  lockoutDuration,
	}
}

var _ portssvc.TheaterUserService = (*theaterUserService)(nil)

func (s *theaterUserService) CreateUser(ctx context.Context, theaterID string, req dto.CreateTheaterUserRequest, creatorUserID string) (*domain.TheaterUser, string, error) {
	if err := s.checkRoleExists(ctx, theaterID, req.RoleID); err != nil {
		return nil, "", err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, "", apperrors.NewAppError(500, "failed to hash password", err)
	}
	pin, err := utils.GeneratePIN(pinDigits)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate PIN")
		return nil, "", apperrors.NewAppError(500, "failed to generate PIN", err)
	}
	pinHash, err := utils.HashPassword(pin)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash PIN")
		return nil, "", apperrors.NewAppError(500, "failed to hash PIN", err)
	}

	now := time.Now()
	user := domain.TheaterUser{
		UserID:        uuid.NewString(),
		Username:      req.Username,
		PasswordHash:  passwordHash,
		PinHash:       pinHash,
		FullName:      req.FullName,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		RoleID:        req.RoleID,
		IsActive:      true,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	err = mutateDocument(ctx, s.userRepo, theaterID, now, func(doc *domain.ArrayDocument[domain.TheaterUser]) error {
		for _, existing := range doc.Items {
			if strings.EqualFold(existing.Username, user.Username) {
				return apperrors.NewDuplicateError("username " + user.Username + " already exists")
			}
		}
		doc.Items = append(doc.Items, user)
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to create staff account",
				slog.String("theater_id", theaterID))
		}
		return nil, "", err
	}

	s.LogInfo(ctx, "Staff account created successfully",
		slog.String("theater_id", theaterID),
		slog.String("new_user_id", user.UserID),
		slog.String("creator_id", creatorUserID))
	return &user, pin, nil
}

func (s *theaterUserService) GetUserByID(ctx context.Context, theaterID, userID string) (*domain.TheaterUser, error) {
	doc, err := s.userRepo.FindByTheater(ctx, theaterID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("user " + userID + " not found")
		}
		return nil, err
	}
	idx := doc.FindItem(userID)
	if idx < 0 {
		return nil, apperrors.NewNotFoundError("user " + userID + " not found")
	}
	user := doc.Items[idx]
	return &user, nil
}

func (s *theaterUserService) ListUsers(ctx context.Context, theaterID string, limit, offset int) ([]domain.TheaterUser, error) {
	doc, err := s.userRepo.FindOrCreateByTheater(ctx, theaterID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list staff accounts",
			slog.String("theater_id", theaterID))
		return nil, err
	}
	return paginate(doc.Items, limit, offset), nil
}

func (s *theaterUserService) UpdateUser(ctx context.Context, theaterID, userID string, req dto.UpdateTheaterUserRequest, updaterUserID string) (*domain.TheaterUser, error) {
	if req.RoleID != nil {
		if err := s.checkRoleExists(ctx, theaterID, *req.RoleID); err != nil {
			return nil, err
		}
	}

	var newPasswordHash string
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			s.LogError(ctx, err, "Failed to hash password")
			return nil, apperrors.NewAppError(500, "failed to hash password", err)
		}
		newPasswordHash = hash
	}

	now := time.Now()
	var updated domain.TheaterUser

	err := mutateDocument(ctx, s.userRepo, theaterID, now, func(doc *domain.ArrayDocument[domain.TheaterUser]) error {
		idx := doc.FindItem(userID)
		if idx < 0 {
			return apperrors.NewNotFoundError("user " + userID + " not found")
		}
		user := &doc.Items[idx]

		if req.FullName != nil {
			user.FullName = *req.FullName
		}
		if req.Email != nil {
			user.Email = *req.Email
		}
		if req.PhoneNumber != nil {
			user.PhoneNumber = *req.PhoneNumber
		}
		if req.RoleID != nil {
			user.RoleID = *req.RoleID
		}
		if req.IsActive != nil {
			user.IsActive = *req.IsActive
		}
		if newPasswordHash != "" {
			user.PasswordHash = newPasswordHash
		}
		user.LastUpdatedAt = now
		updated = *user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Staff account updated successfully",
		slog.String("theater_id", theaterID),
		slog.String("target_user_id", userID),
		slog.String("updater_id", updaterUserID))
	return &updated, nil
}

func (s *theaterUserService) RemoveUser(ctx context.Context, theaterID, userID string, updaterUserID string) error {
	now := time.Now()
	err := mutateDocument(ctx, s.userRepo, theaterID, now, func(doc *domain.ArrayDocument[domain.TheaterUser]) error {
		idx := doc.FindItem(userID)
		if idx < 0 {
			// Removing an already absent account is a success.
			return errNoChange
		}
		doc.Items = append(doc.Items[:idx], doc.Items[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}

	s.LogInfo(ctx, "Staff account removed",
		slog.String("theater_id", theaterID),
		slog.String("target_user_id", userID),
		slog.String("updater_id", updaterUserID))
	return nil
}

// Authenticate verifies a password or PIN login. Failures all surface as the
// same unauthorized error so callers cannot probe which usernames exist or
// which accounts are locked.
func (s *theaterUserService) Authenticate(ctx context.Context, req dto.LoginRequest) (*domain.TheaterUser, error) {
	invalidCredentials := apperrors.NewUnauthorizedError("invalid credentials")

	theater, err := s.theaterRepo.FindTheaterByID(ctx, req.TheaterID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, invalidCredentials
		}
		return nil, err
	}
	if !theater.IsActive {
		s.LogWarn(ctx, "Login attempt against deactivated theater",
			slog.String("theater_id", req.TheaterID))
		return nil, invalidCredentials
	}

	doc, err := s.userRepo.FindByTheater(ctx, req.TheaterID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, invalidCredentials
		}
		return nil, err
	}

	var user *domain.TheaterUser
	for i := range doc.Items {
		if strings.EqualFold(doc.Items[i].Username, req.Username) {
			user = &doc.Items[i]
			break
		}
	}
	now := time.Now()

	if user == nil || !user.IsActive {
		return nil, invalidCredentials
	}
	if user.IsLocked(now) {
		s.LogWarn(ctx, "Login attempt on locked account",
			slog.String("theater_id", req.TheaterID),
			slog.String("target_user_id", user.UserID))
		return nil, invalidCredentials
	}

	var credentialOK bool
	if req.Pin != "" {
		credentialOK = utils.CheckPasswordHash(req.Pin, user.PinHash)
	} else {
		credentialOK = req.Password != "" && utils.CheckPasswordHash(req.Password, user.PasswordHash)
	}

	if !credentialOK {
		s.recordFailedAttempt(ctx, req.TheaterID, user.UserID, now)
		return nil, invalidCredentials
	}

	authenticated, err := s.recordSuccessfulLogin(ctx, req.TheaterID, user.UserID, now)
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Login successful",
		slog.String("theater_id", req.TheaterID),
		slog.String("target_user_id", authenticated.UserID))
	return authenticated, nil
}

// recordFailedAttempt bumps the failed login counter and locks the account
// once the limit is reached. Bookkeeping failures are logged but do not change
// the caller-facing outcome.
func (s *theaterUserService) recordFailedAttempt(ctx context.Context, theaterID, userID string, now time.Time) {
	err := mutateDocument(ctx, s.userRepo, theaterID, now, func(doc *domain.ArrayDocument[domain.TheaterUser]) error {
		idx := doc.FindItem(userID)
		if idx < 0 {
			return errNoChange
		}
		user := &doc.Items[idx]
		user.LoginAttempts++
		if user.LoginAttempts >= s.maxLoginAttempts {
			lockUntil := now.Add(s.lockoutDuration)
			user.LockUntil = &lockUntil
			user.LoginAttempts = 0
		}
		user.LastUpdatedAt = now
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record failed login attempt",
			slog.String("theater_id", theaterID),
			slog.String("target_user_id", userID))
	}
}

func (s *theaterUserService) recordSuccessfulLogin(ctx context.Context, theaterID, userID string, now time.Time) (*domain.TheaterUser, error) {
	var authenticated domain.TheaterUser
	err := mutateDocument(ctx, s.userRepo, theaterID, now, func(doc *domain.ArrayDocument[domain.TheaterUser]) error {
		idx := doc.FindItem(userID)
		if idx < 0 {
			return apperrors.NewUnauthorizedError("invalid credentials")
		}
		user := &doc.Items[idx]
		user.LoginAttempts = 0
		user.LockUntil = nil
		user.LastLogin = &now
		user.LastUpdatedAt = now
		authenticated = *user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &authenticated, nil
}

func (s *theaterUserService) checkRoleExists(ctx context.Context, theaterID, roleID string) error {
	doc, err := s.roleRepo.FindByTheater(ctx, theaterID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationFailedError("role " + roleID + " does not exist")
		}
		return err
	}
	if doc.FindItem(roleID) < 0 {
		return apperrors.NewValidationFailedError("role " + roleID + " does not exist")
	}
	return nil
}
