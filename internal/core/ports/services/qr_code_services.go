package services

import (
	"context"

	"github.com/screenbites/concession_backend/internal/core/domain"
	"github.com/screenbites/concession_backend/internal/dto"
)

// QRCodeService manages a theater's QR ordering point labels.
type QRCodeService interface {
	// CreateQRCodeName registers a QR code label. Names are unique within the
	// theater; a duplicate returns apperrors.ErrDuplicate.
	CreateQRCodeName(ctx context.Context, theaterID string, req dto.CreateQRCodeNameRequest, creatorUserID string) (*domain.QRCodeName, error)

	// GetQRCodeNameByID retrieves one label or apperrors.ErrNotFound.
	GetQRCodeNameByID(ctx context.Context, theaterID, qrID string) (*domain.QRCodeName, error)

	// ListQRCodeNames retrieves a page of the theater's labels.
	ListQRCodeNames(ctx context.Context, theaterID string, limit, offset int) ([]domain.QRCodeName, error)

	// UpdateQRCodeName applies the non-nil fields of the request.
	UpdateQRCodeName(ctx context.Context, theaterID, qrID string, req dto.UpdateQRCodeNameRequest, updaterUserID string) (*domain.QRCodeName, error)

	// RemoveQRCodeName removes a label. Idempotent.
	RemoveQRCodeName(ctx context.Context, theaterID, qrID string, updaterUserID string) error
}
