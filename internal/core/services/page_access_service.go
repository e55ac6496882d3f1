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

// pageAccessService implements the PageAccessService interface
type pageAccessService struct {
	BaseService
	pageRepo portsrepo.ArrayDocumentRepository[domain.PageAccess]
}

// NewPageAccessService creates a new page catalog service with the provided dependencies
func NewPageAccessService(pageRepo portsrepo.ArrayDocumentRepository[domain.PageAccess]) portssvc.PageAccessService {
	return &pageAccessService{pageRepo: pageRepo}
}

var _ portssvc.PageAccessService = (*pageAccessService)(nil)

func (s *pageAccessService) CreatePage(ctx context.Context, theaterID string, req dto.CreatePageAccessRequest, creatorUserID string) (*domain.PageAccess, error) {
	now := time.Now()
	page := domain.PageAccess{
		PageID:        uuid.NewString(),
		Page:          req.Page,
		PageName:      req.PageName,
		Route:         req.Route,
		IsActive:      true,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}

	err := mutateDocument(ctx, s.pageRepo, theaterID, now, func(doc *domain.ArrayDocument[domain.PageAccess]) error {
		for _, existing := range doc.Items {
			if strings.EqualFold(existing.Page, page.Page) {
				return apperrors.NewDuplicateError("page " + page.Page + " already exists")
			}
		}
		doc.Items = append(doc.Items, page)
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to create page entry",
				slog.String("theater_id", theaterID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Page entry created successfully",
		slog.String("theater_id", theaterID),
		slog.String("page_id", page.PageID),
		slog.String("creator_id", creatorUserID))
	return &page, nil
}

func (s *pageAccessService) GetPageByID(ctx context.Context, theaterID, pageID string) (*domain.PageAccess, error) {
	doc, err := s.pageRepo.FindByTheater(ctx, theaterID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("page " + pageID + " not found")
		}
		return nil, err
	}
	idx := doc.FindItem(pageID)
	if idx < 0 {
		return nil, apperrors.NewNotFoundError("page " + pageID + " not found")
	}
	page := doc.Items[idx]
	return &page, nil
}

func (s *pageAccessService) ListPages(ctx context.Context, theaterID string, limit, offset int) ([]domain.PageAccess, error) {
	doc, err := s.pageRepo.FindOrCreateByTheater(ctx, theaterID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list pages",
			slog.String("theater_id", theaterID))
		return nil, err
	}
	return paginate(doc.Items, limit, offset), nil
}

func (s *pageAccessService) UpdatePage(ctx context.Context, theaterID, pageID string, req dto.UpdatePageAccessRequest, updaterUserID string) (*domain.PageAccess, error) {
	now := time.Now()
	var updated domain.PageAccess

	err := mutateDocument(ctx, s.pageRepo, theaterID, now, func(doc *domain.ArrayDocument[domain.PageAccess]) error {
		idx := doc.FindItem(pageID)
		if idx < 0 {
			return apperrors.NewNotFoundError("page " + pageID + " not found")
		}
		page := &doc.Items[idx]
		if req.PageName != nil {
			page.PageName = *req.PageName
		}
		if req.Route != nil {
			page.Route = *req.Route
		}
		if req.IsActive != nil {
			page.IsActive = *req.IsActive
		}
		page.LastUpdatedAt = now
		updated = *page
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Page entry updated successfully",
		slog.String("theater_id", theaterID),
		slog.String("page_id", pageID),
		slog.String("updater_id", updaterUserID))
	return &updated, nil
}

func (s *pageAccessService) RemovePage(ctx context.Context, theaterID, pageID string, updaterUserID string) error {
	now := time.Now()
	err := mutateDocument(ctx, s.pageRepo, theaterID, now, func(doc *domain.ArrayDocument[domain.PageAccess]) error {
		idx := doc.FindItem(pageID)
		if idx < 0 {
			// Removing an already absent page is a success.
			return errNoChange
		}
		doc.Items = append(doc.Items[:idx], doc.Items[idx+1:]...)
		return nil
	})
	if err != nil {
		return err
	}

	s.LogInfo(ctx, "Page entry removed",
		slog.String("theater_id", theaterID),
		slog.String("page_id", pageID),
		slog.String("updater_id", updaterUserID))
	return nil
}
