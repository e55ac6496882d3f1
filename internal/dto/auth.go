package dto

// LoginRequest defines the payload for staff login. Either the password or the
// short PIN must be supplied.
type LoginRequest struct {
	TheaterID string `json:"theaterID" binding:"required"`
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"omitempty,min=8"`
	Pin       string `json:"pin" binding:"omitempty,len=6,numeric"`
}

// LoginResponse carries the signed token and the caller's resolved access.
type LoginResponse struct {
	Token  string                 `json:"token"`
	User   TheaterUserResponse    `json:"user"`
	Access ResolvedAccessResponse `json:"access"`
}
