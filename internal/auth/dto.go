package auth

import "time"

// LoginRequest captures the admin credentials sent to the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=256"`
}

// SetupRequest creates the first database admin.
type SetupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=256"`
	SetupKey string `json:"setupKey" validate:"required"`
}

// AdminDTO is the public view of an authenticated admin.
type AdminDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Source   string `json:"source"`
}

// LoginResponse carries the signed token and its expiry.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      AdminDTO  `json:"user"`
}
