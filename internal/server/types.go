package server

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/store"
)

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest is the payload for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of an account. The tier window fields
// are nil while the user is on the free tier.
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Tier        string     `json:"tier"`
	TierStartAt *time.Time `json:"tierStartAt,omitempty"`
	TierRenewAt *time.Time `json:"tierRenewAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// LoginResponse carries the user and a fresh bearer token.
type LoginResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"`
}

func userResponse(u *store.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Tier:        u.Tier,
		TierStartAt: u.TierStartAt,
		TierRenewAt: u.TierRenewAt,
		CreatedAt:   u.CreatedAt,
	}
}

// DocumentRequest is the payload for creating or updating a document.
type DocumentRequest struct {
	Kind       string          `json:"kind" validate:"required,oneof=resume cover_letter"`
	Title      string          `json:"title" validate:"required,min=1,max=300"`
	TemplateID string          `json:"templateId"`
	ColorID    string          `json:"colorId"`
	Data       json.RawMessage `json:"data" validate:"required"`
}

// RenderRequest is the payload for rendering a document to HTML.
type RenderRequest struct {
	Kind       string          `json:"kind" validate:"required,oneof=resume cover_letter"`
	TemplateID string          `json:"templateId"`
	ColorID    string          `json:"colorId"`
	Data       json.RawMessage `json:"data" validate:"required"`
}

// RenderResponse carries rendered HTML for one template.
type RenderResponse struct {
	TemplateID string `json:"templateId"`
	ColorID    string `json:"colorId"`
	HTML       string `json:"html"`
}

// StepValidateRequest asks whether a wizard step's data is complete.
type StepValidateRequest struct {
	Kind string          `json:"kind" validate:"required,oneof=resume cover_letter"`
	Step string          `json:"step" validate:"required"`
	Data json.RawMessage `json:"data" validate:"required"`
}

// StepValidateResponse reports step validation results. Errors is empty
// when the step is valid.
type StepValidateResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors,omitempty"`
}

// OrderRequest asks for an upgrade order to a paid tier.
type OrderRequest struct {
	Tier string `json:"tier" validate:"required,oneof=pro enterprise"`
}

// OrderResponse is a created or captured provider order.
type OrderResponse struct {
	OrderID    string `json:"orderId"`
	Status     string `json:"status"`
	ApproveURL string `json:"approveUrl,omitempty"`
	Tier       string `json:"tier"`
}
