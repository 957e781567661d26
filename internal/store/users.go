package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// User is a registered account. PasswordHash never serializes to JSON.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Tier         string     `json:"tier"`
	TierStartAt  *time.Time `json:"tier_start_at,omitempty"`
	TierRenewAt  *time.Time `json:"tier_renew_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CreateUser inserts a new user and returns its id.
func (db *DB) CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, tier)
		 VALUES ($1, $2, $3, 'free')
		 RETURNING id`,
		name, email, passwordHash,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUser retrieves a user by id; nil when absent.
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return db.getUser(ctx, `WHERE id = $1`, id)
}

// GetUserByEmail retrieves a user by email; nil when absent.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return db.getUser(ctx, `WHERE email = $1`, email)
}

func (db *DB) getUser(ctx context.Context, where string, arg any) (*User, error) {
	var u User
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, tier, tier_start_at, tier_renew_at, created_at, updated_at
		 FROM users `+where,
		arg,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Tier, &u.TierStartAt, &u.TierRenewAt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// CheckEmailExists reports whether an account already uses the email.
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// SetUserTier records a tier change with its billing cycle window.
func (db *DB) SetUserTier(ctx context.Context, id uuid.UUID, tier string, startAt, renewAt time.Time) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE users SET tier = $2, tier_start_at = $3, tier_renew_at = $4, updated_at = NOW() WHERE id = $1`,
		id, tier, startAt, renewAt,
	)
	if err != nil {
		return fmt.Errorf("failed to set user tier: %w", err)
	}
	return nil
}
