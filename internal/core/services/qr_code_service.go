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
)

// qrCodeService implements the QRCodeService interface
type qrCodeService struct {
	BaseService
	qrRepo portsrepo.ArrayDocumentRepository[domain.QRCodeName]
}

// NewQRCodeService creates a new QR code label service with the provided dependencies
func NewQRCodeService(qrRepo portsrepo.ArrayDocumentRepository[domain.QRCodeName]) portssvc.QRCodeService {
	return &qrCodeService{qrRepo: qrRepo}
}

var _ portssvc.QRCodeService = (*qrCodeService)(nil)

func (s *qrCodeService) CreateQRCodeName(ctx context.Context, theaterID string, req dto.CreateQRCodeNameRequest, creatorUserID string) (*domain.QRCodeName, error) {
	now := time.Now()
	code := domain.QRCodeName{
		QRID:          uuid.NewString(),
		Name:          req.Name,
		IsActive:      true,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	err := mutateDocument(ctx, s.qrRepo, theaterID, now, func(doc *domain.ArrayDocument[domain.QRCodeName]) error {
		for _, existing := range doc.Items {
			if strings.EqualFold(existing.Name, code.Name) {
				return apperrors.NewDuplicateError("QR code name " + code.Name + " already exists")
			}
		}
		doc.Items = append(doc.Items, code)
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to create QR code name",
				slog.String("theater_id", theaterID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "QR code name created successfully",
		slog.String("theater_id", theaterID),
		slog.String("qr_id", code.QRID),
		slog.String("creator_id", creatorUserID))
	return &code, nil
}

func (s *qrCodeService) GetQRCodeNameByID(ctx context.Context, theaterID, qrID string) (*domain.QRCodeName, error) {
	doc, err := s.qrRepo.FindByTheater(ctx, theaterID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("QR code " + qrID + " not found")
		}
		return nil, err
	}
	idx := doc.FindItem(qrID)
	if idx < 0 {
		return nil, apperrors.NewNotFoundError("QR code " + qrID + " not found")
	}
	code := doc.Items[idx]
	return &code, nil
}

func (s *qrCodeService) ListQRCodeNames(ctx context.Context, theaterID string, limit, offset int) ([]domain.QRCodeName, error) {
	doc, err := s.qrRepo.FindOrCreateByTheater(ctx, theaterID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list QR code names",
			slog.String("theater_id", theaterID))
		return nil, err
	}
	return paginate(doc.Items, limit, offset), nil
}

func (s *qrCodeService) UpdateQRCodeName(ctx context.Context, theaterID, qrID string, req dto.UpdateQRCodeNameRequest, updaterUserID string) (*domain.QRCodeName, error) {
	now := time.Now()
	var updated domain.QRCodeName

	err := mutateDocument(ctx, s.qrRepo, theaterID, now, func(doc *domain.ArrayDocument[domain.QRCodeName]) error {
		idx := doc.FindItem(qrID)
		if idx < 0 {
			return apperrors.NewNotFoundError("QR code " + qrID + " not found")
		}
		code := &doc.Items[idx]
		if req.Name != nil {
			for _, existing := range doc.Items {
				if existing.QRID != qrID && strings.EqualFold(existing.Name, *req.Name) {
					return apperrors.NewDuplicateError("QR code name " + *req.Name + " already exists")
				}
			}
			code.Name = *req.Name
		}
		if req.IsActive != nil {
			code.IsActive = *req.IsActive
		}
		code.LastUpdatedAt = now
		updated = *code
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "QR code name updated successfully",
		slog.String("theater_id", theaterID),
		slog.String("qr_id", qrID),
		slog.String("updater_id", updaterUserID))
	return &updated, nil
}

func (s *qrCodeService) RemoveQRCodeName(ctx context.Context, theaterID, qrID string, updaterUserID string) error {
	now := time.Now()
	err := mutateDocument(ctx, s.qrRepo, theaterID, now, func(doc *domain.ArrayDocument[domain.QRCodeName]) error {
		idx := doc.FindItem(qrID)
		if idx < 0 {
			// Removing an already absent label is a success.
			return errNoChange
		}
		doc.Items = append(doc.Items[:idx], doc.Items[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}

	s.LogInfo(ctx, "QR code name removed",
		slog.String("theater_id", theaterID),
		slog.String("qr_id", qrID),
		slog.String("updater_id", updaterUserID))
	return nil
}
