package domain

import "time"

// TheaterUser is a staff account scoped to one theater, stored as an item in
// the theater's users document. PasswordHash and PinHash are bcrypt hashes and
// must never leave the service layer.
type TheaterUser struct {
	UserID        string     `json:"userID"`
	Username      string     `json:"username"` // unique within the theater
	PasswordHash  string     `json:"passwordHash"`
	PinHash       string     `json:"pinHash"` // secondary short-code credential
	FullName      string     `json:"fullName"`
	Email         string     `json:"email"`
	PhoneNumber   string     `json:"phoneNumber"`
	RoleID        string     `json:"roleID"` // reference to a Role item in the same theater
	IsActive      bool       `json:"isActive"`
	LoginAttempts int        `json:"loginAttempts"`
	LockUntil     *time.Time `json:"lockUntil,omitempty"`
	LastLogin     *time.Time `json:"lastLogin,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastUpdatedAt time.Time  `json:"lastUpdatedAt"`
}

func (u TheaterUser) GetItemID() string { return u.UserID }

// IsLocked reports whether the account is locked out at the given instant.
func (u TheaterUser) IsLocked(now time.Time) bool {
	return u.LockUntil != nil && now.Before(*u.LockUntil)
}
