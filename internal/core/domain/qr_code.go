package domain

import "time"

// QRCodeName identifies one QR ordering point (counter, screen or seat block)
// within a theater.
type QRCodeName struct {
	QRID          string    `json:"qrID"`
	Name          string    `json:"name"` // unique within the theater
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

func (q QRCodeName) GetItemID() string { return q.QRID }
