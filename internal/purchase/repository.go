package purchase

import (
	"context"
	"database/sql"
	"errors"

	"brewbar-be/internal/logger"
	"brewbar-be/internal/order"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Purchase(ctx context.Context, itemID int64, quantity int, buyerEmail string, declaredTotal float64) (int64, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Purchase runs the whole buy as one transaction: lock the item row, check
// stock, insert the order and its line, decrement stock, commit. The row lock
// serializes concurrent purchases of the same item, so the stock read in step
// one stays valid until commit. The commit itself fires the item/order NOTIFY
// triggers, so change events and state change are atomic.
func (r *repository) Purchase(
	ctx context.Context,
	itemID int64,
	quantity int,
	buyerEmail string,
	declaredTotal float64,
) (int64, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Purchase"),
		zap.Int64("item_id", itemID),
		zap.Int("quantity", quantity),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return 0, asConflict(err)
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback purchase", zap.Error(rbErr))
			}
		}
	}()

	// 1. Lock the item row and read price + stock under the lock.
	var unitPrice float64
	var stock int
	err = tx.QueryRowContext(ctx, `
		SELECT unit_price, quantity_in_stock
		FROM items
		WHERE id = $1
		FOR UPDATE
	`, itemID).Scan(&unitPrice, &stock)

	if errors.Is(err, sql.ErrNoRows) {
		log.Warn("purchase for unknown item")
		return 0, ErrItemNotFound
	}
	if err != nil {
		log.Error("failed to lock item row", zap.Error(err))
		return 0, asConflict(err)
	}

	// 2. Stock check happens inside the same transaction as the decrement.
	if stock < quantity {
		log.Info("insufficient stock",
			zap.Int("available", stock),
		)
		return 0, ErrInsufficientStock
	}

	// 3. Order header. The total is the caller-declared one; see DESIGN.md.
	var orderID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (email, status, total)
		VALUES ($1, $2, $3)
		RETURNING id
	`, buyerEmail, order.StatusPending, declaredTotal).Scan(&orderID)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return 0, asConflict(err)
	}

	// 4. Decrement on the still-locked row; no re-read needed.
	_, err = tx.ExecContext(ctx, `
		UPDATE items
		SET quantity_in_stock = quantity_in_stock - $1
		WHERE id = $2
	`, quantity, itemID)
	if err != nil {
		log.Error("failed to decrement stock", zap.Error(err))
		return 0, asConflict(err)
	}

	// 5. Line captures the unit price read under the lock, not any later value.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO order_lines (order_id, item_id, unit_price, quantity)
		VALUES ($1, $2, $3, $4)
	`, orderID, itemID, unitPrice, quantity)
	if err != nil {
		log.Error("failed to insert order line", zap.Error(err))
		return 0, asConflict(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit purchase", zap.Error(err))
		return 0, asConflict(err)
	}
	committed = true

	log.Info("purchase committed",
		zap.Int64("order_id", orderID),
		zap.Float64("unit_price", unitPrice),
	)

	return orderID, nil
}

// asConflict maps Postgres serialization/deadlock failures to the retriable
// sentinel; anything else passes through untouched.
func asConflict(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "40001", "40P01":
			return ErrTransactionConflict
		}
	}
	return err
}
