package user

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	username := "john"
	email := "john@example.com"
	hash := "hashed_password"

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO user_account \(username, email, password_hash\) VALUES \(\$1, \$2, \$3\) RETURNING id, username, email, password_hash, role`).
			WithArgs(username, email, hash).
			WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "role"}).
				AddRow(1, username, email, hash, "user"))

		u, err := repo.Create(ctx, username, email, hash)
		assert.NoError(t, err)
		assert.Equal(t, 1, u.ID)
		assert.Equal(t, email, u.Email)
		assert.Equal(t, RoleUser, u.Role)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO user_account`).
			WillReturnError(&pq.Error{Code: "23505", Constraint: "user_account_email_key"})

		_, err := repo.Create(ctx, username, email, hash)
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO user_account`).
			WillReturnError(errors.New("db error"))

		_, err := repo.Create(ctx, username, email, hash)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrEmailExists)
	})
}

func TestRepository_FindByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	email := "john@example.com"

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "role"}).
			AddRow(1, "john", email, "hashed", "admin")

		mock.ExpectQuery(`SELECT id, username, email, password_hash, role FROM user_account WHERE email = \$1`).
			WithArgs(email).
			WillReturnRows(rows)

		u, err := repo.FindByEmail(ctx, email)
		assert.NoError(t, err)
		assert.Equal(t, email, u.Email)
		assert.Equal(t, RoleAdmin, u.Role)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM user_account`).
			WithArgs(email).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByEmail(ctx, email)
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}
