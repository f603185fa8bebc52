package item

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"brewbar-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context) ([]*Item, error)
	GetByID(ctx context.Context, id int64) (*Item, error)
	Create(ctx context.Context, p CreateParams) (*Item, error)
	Update(ctx context.Context, id int64, p UpdateParams) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// List returns the catalog without image payloads; images are fetched per item.
func (r *repository) List(ctx context.Context) ([]*Item, error) {
	log := logger.FromCtx(ctx).With(zap.String("method", "List"))

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, description, category, unit_price, tax, quantity_in_stock
		FROM items
		ORDER BY name ASC
	`)
	if err != nil {
		log.Error("failed to query items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(
			&it.ID,
			&it.Name,
			&it.Description,
			&it.Category,
			&it.UnitPrice,
			&it.Tax,
			&it.QuantityInStock,
		); err != nil {
			log.Error("failed to scan item row", zap.Error(err))
			return nil, err
		}
		items = append(items, &it)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	return items, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Item, error) {
	var it Item
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, description, category, unit_price, tax, quantity_in_stock, img
		FROM items
		WHERE id = $1
	`, id).Scan(
		&it.ID,
		&it.Name,
		&it.Description,
		&it.Category,
		&it.UnitPrice,
		&it.Tax,
		&it.QuantityInStock,
		&it.Img,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &it, nil
}

func (r *repository) Create(ctx context.Context, p CreateParams) (*Item, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "Create"),
		zap.String("name", p.Name),
	)

	var it Item
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO items (name, description, category, unit_price, tax, quantity_in_stock, img)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, name, description, category, unit_price, tax, quantity_in_stock
	`,
		p.Name, p.Description, p.Category, p.UnitPrice, p.Tax, p.Stock, p.Img,
	).Scan(
		&it.ID,
		&it.Name,
		&it.Description,
		&it.Category,
		&it.UnitPrice,
		&it.Tax,
		&it.QuantityInStock,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrNameTaken
		}
		log.Error("failed to insert item", zap.Error(err))
		return nil, err
	}

	log.Info("item created", zap.Int64("item_id", it.ID))
	return &it, nil
}

func (r *repository) Update(ctx context.Context, id int64, p UpdateParams) error {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "Update"),
		zap.Int64("item_id", id),
	)

	set := []string{}
	args := []any{}

	add := func(column string, value any) {
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)+1))
		args = append(args, value)
	}

	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.Category != nil {
		add("category", *p.Category)
	}
	if p.UnitPrice != nil {
		add("unit_price", *p.UnitPrice)
	}
	if p.Tax != nil {
		add("tax", *p.Tax)
	}
	if p.Stock != nil {
		add("quantity_in_stock", *p.Stock)
	}
	if p.Img != nil {
		add("img", p.Img)
	}

	if len(set) == 0 {
		return ErrNoFields
	}

	query := fmt.Sprintf(
		"UPDATE items SET %s WHERE id = $%d",
		strings.Join(set, ", "), len(args)+1,
	)
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrNameTaken
		}
		log.Error("failed to update item", zap.Error(err))
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}

	log.Info("item updated", zap.Int("fields", len(set)))
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		var pqErr *pq.Error
		// order_lines references items with ON DELETE RESTRICT
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrInUse
		}
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
