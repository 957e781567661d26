package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Payment is one recorded payment-provider order for a user.
type Payment struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	OrderID   string    `json:"order_id"`
	Tier      string    `json:"tier"`
	Amount    string    `json:"amount"`
	Currency  string    `json:"currency"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordPayment stores a created provider order and returns its id.
func (db *DB) RecordPayment(ctx context.Context, userID uuid.UUID, orderID, tier, amount, currency, status string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO payments (user_id, order_id, tier, amount, currency, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		userID, orderID, tier, amount, currency, status,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to record payment: %w", err)
	}
	return id, nil
}

// ListPayments returns a user's payment history, most recent first.
func (db *DB) ListPayments(ctx context.Context, userID uuid.UUID) ([]Payment, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, order_id, tier, amount, currency, status, created_at
		 FROM payments WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.UserID, &p.OrderID, &p.Tier, &p.Amount, &p.Currency, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, nil
}
