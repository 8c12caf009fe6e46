package handler

import "time"

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string    `json:"token,omitempty"`
	User  *userView `json:"user,omitempty"`
}

type userView struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type mintKeyRequest struct {
	UserID     int64  `json:"user_id"     validate:"required,gt=0"`
	Name       string `json:"name"        validate:"required"`
	TTLSeconds int64  `json:"ttl_seconds" validate:"gte=0"`
}

type mintKeyResponse struct {
	ID        string     `json:"id"`
	Secret    string     `json:"secret"` // shown exactly once
	Name      string     `json:"name"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type createTenantRequest struct {
	Name    string `json:"name"     validate:"required"`
	OwnerID int64  `json:"owner_id" validate:"required,gt=0"`
}

type createShopRequest struct {
	Name string `json:"name" validate:"required"`
}

type roleRequest struct {
	UserID int64  `json:"user_id" validate:"required,gt=0"`
	Role   string `json:"role"    validate:"required"`
	ShopID *int64 `json:"shop_id"`
}

type planEntryRequest struct {
	SKU      string `json:"sku"      validate:"required"`
	Month    string `json:"month"    validate:"required,len=7"`
	Quantity int64  `json:"quantity" validate:"gte=0"`
}

type statusResponse struct {
	Message string `json:"message"`
}

// errorResponse mirrors the envelope rendered by the central error handler;
// it exists here for the generated API documentation.
type errorResponse struct {
	Error string `json:"error"`
}
