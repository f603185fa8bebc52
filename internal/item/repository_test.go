package item

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "description", "category", "unit_price", "tax", "quantity_in_stock"}).
			AddRow(1, "Espresso", "double shot", "coffee", 2.5, 0.07, 30).
			AddRow(2, "Croissant", "butter", "pastry", 3.0, 0.07, 12)

		mock.ExpectQuery(`SELECT id, name, description, category, unit_price, tax, quantity_in_stock\s+FROM items`).
			WillReturnRows(rows)

		items, err := repo.List(ctx)
		assert.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, "Espresso", items[0].Name)
		assert.Equal(t, 30, items[0].QuantityInStock)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM items`).
			WillReturnError(errors.New("db down"))

		_, err := repo.List(ctx)
		assert.Error(t, err)
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "description", "category", "unit_price", "tax", "quantity_in_stock", "img"}).
			AddRow(7, "Mocha", "with cocoa", "coffee", 4.0, 0.07, 8, []byte{0x89, 0x50})

		mock.ExpectQuery(`SELECT id, name, description, category, unit_price, tax, quantity_in_stock, img\s+FROM items\s+WHERE id = \$1`).
			WithArgs(int64(7)).
			WillReturnRows(rows)

		it, err := repo.GetByID(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), it.ID)
		assert.Equal(t, []byte{0x89, 0x50}, it.Img)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM items`).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	params := CreateParams{
		Name:        "Flat White",
		Description: "silky",
		Category:    "coffee",
		UnitPrice:   3.8,
		Tax:         0.07,
		Stock:       20,
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO items`).
			WithArgs(params.Name, params.Description, params.Category, params.UnitPrice, params.Tax, params.Stock, params.Img).
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "category", "unit_price", "tax", "quantity_in_stock"}).
				AddRow(3, params.Name, params.Description, params.Category, params.UnitPrice, params.Tax, params.Stock))

		it, err := repo.Create(ctx, params)
		require.NoError(t, err)
		assert.Equal(t, int64(3), it.ID)
	})

	t.Run("DuplicateName", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO items`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "items_name_key"})

		_, err := repo.Create(ctx, params)
		assert.ErrorIs(t, err, ErrNameTaken)
	})
}

func TestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		price := 4.2
		stock := 5

		mock.ExpectExec(`UPDATE items SET unit_price = \$1, quantity_in_stock = \$2 WHERE id = \$3`).
			WithArgs(price, stock, int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(ctx, 1, UpdateParams{UnitPrice: &price, Stock: &stock})
		assert.NoError(t, err)
	})

	t.Run("NoFields", func(t *testing.T) {
		err := repo.Update(ctx, 1, UpdateParams{})
		assert.ErrorIs(t, err, ErrNoFields)
	})

	t.Run("NotFound", func(t *testing.T) {
		name := "Gone"
		mock.ExpectExec(`UPDATE items SET name = \$1 WHERE id = \$2`).
			WithArgs(name, int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, 404, UpdateParams{Name: &name})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM items WHERE id = \$1`).
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, 1))
	})

	t.Run("ReferencedByOrders", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM items WHERE id = \$1`).
			WithArgs(int64(2)).
			WillReturnError(&pq.Error{Code: "23503", Constraint: "order_lines_item_id_fkey"})

		err := repo.Delete(ctx, 2)
		assert.ErrorIs(t, err, ErrInUse)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM items WHERE id = \$1`).
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Delete(ctx, 3)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
