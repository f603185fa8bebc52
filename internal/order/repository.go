package order

import (
	"context"
	"database/sql"
	"errors"

	"brewbar-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	ListByEmail(ctx context.Context, email string) ([]*Order, error)
	CustomerEmail(ctx context.Context, orderID int64) (string, error)
	UpdateStatus(ctx context.Context, orderID int64, status Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListByEmail(ctx context.Context, email string) ([]*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "ListByEmail"),
		zap.String("email", email),
	)

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, status, total, created_at, updated_at
		FROM orders
		WHERE email = $1
		ORDER BY created_at DESC
	`, email)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.Email, &o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt); err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, &o)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	return orders, nil
}

func (r *repository) CustomerEmail(ctx context.Context, orderID int64) (string, error) {
	var email string
	err := r.db.QueryRowContext(ctx,
		`SELECT email FROM orders WHERE id = $1`, orderID,
	).Scan(&email)

	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrOrderNotFound
	}
	return email, err
}

func (r *repository) UpdateStatus(ctx context.Context, orderID int64, status Status) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, orderID,
	)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}

	return nil
}
