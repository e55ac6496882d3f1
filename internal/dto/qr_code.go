package dto

import (
	"time"

	"github.com/screenbites/concession_backend/internal/core/domain"
)

// CreateQRCodeNameRequest defines the payload for registering a QR code label.
type CreateQRCodeNameRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateQRCodeNameRequest defines the payload for updating a QR code label.
type UpdateQRCodeNameRequest struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// QRCodeNameResponse is the API representation of a QR code label.
type QRCodeNameResponse struct {
	QRID      string    `json:"qrID"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToQRCodeNameResponse maps a domain QR code label to its API representation.
func ToQRCodeNameResponse(q domain.QRCodeName) QRCodeNameResponse {
	return QRCodeNameResponse{
		QRID:      q.QRID,
		Name:      q.Name,
		IsActive:  q.IsActive,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.LastUpdatedAt,
	}
}

// ToQRCodeNameResponses maps a slice of domain QR code labels.
func ToQRCodeNameResponses(codes []domain.QRCodeName) []QRCodeNameResponse {
	out := make([]QRCodeNameResponse, 0, len(codes))
	for _, q := range codes {
		out = append(out, ToQRCodeNameResponse(q))
	}
	return out
}
