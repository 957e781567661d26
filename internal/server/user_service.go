package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/store"
)

// DBClient is the slice of the store API the HTTP layer depends on.
// Handler tests substitute a fake.
type DBClient interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*store.User, error)
	GetUserByEmail(ctx context.Context, email string) (*store.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	SetUserTier(ctx context.Context, id uuid.UUID, tier string, startAt, renewAt time.Time) error

	CreateDocument(ctx context.Context, ownerID uuid.UUID, kind, title, templateID, colorID string, data json.RawMessage) (uuid.UUID, error)
	GetDocument(ctx context.Context, id, ownerID uuid.UUID) (*store.Document, error)
	UpdateDocument(ctx context.Context, id, ownerID uuid.UUID, title, templateID, colorID string, data json.RawMessage) (*store.Document, error)
	DeleteDocument(ctx context.Context, id, ownerID uuid.UUID) error
	ListDocuments(ctx context.Context, ownerID uuid.UUID, kind string) ([]store.Document, error)

	RecordPayment(ctx context.Context, userID uuid.UUID, orderID, tier, amount, currency, status string) (uuid.UUID, error)
	ListPayments(ctx context.Context, userID uuid.UUID) ([]store.Payment, error)
}

// UserService provides business logic for account operations.
type UserService struct {
	db             DBClient
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies.
func NewUserService(db DBClient, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		db:             db,
		passwordConfig: passwordConfig,
	}
}

// Register creates a new account on the free tier.
func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*UserResponse, error) {
	exists, err := s.db.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.db.CreateUser(ctx, req.Name, req.Email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("created user not found: %s", userID)
	}
	return userResponse(user), nil
}

// Login authenticates by email and password. Absent users and wrong
// passwords get the same generic error.
func (s *UserService) Login(ctx context.Context, req *LoginRequest) (*UserResponse, error) {
	user, err := s.db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	if user == nil {
		return nil, &ErrInvalidCredentials{}
	}

	if !s.passwordConfig.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	return userResponse(user), nil
}

// GetAccount returns the public view of an account.
func (s *UserService) GetAccount(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, &ErrUserNotFound{UserID: userID}
	}
	return userResponse(user), nil
}
