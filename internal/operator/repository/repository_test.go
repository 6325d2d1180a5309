package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridloal/pos-caisse/internal/operator/domain"
)

func TestMemoryOperatorRepository(t *testing.T) {
	repo := NewMemoryOperatorRepository()
	ctx := context.TODO()

	op := &domain.Operator{Username: "alice", Role: domain.RoleCashier, PasswordHash: "h"}
	require.NoError(t, repo.CreateOperator(ctx, op))
	assert.NotEmpty(t, op.ID)

	t.Run("Lookup is case-insensitive", func(t *testing.T) {
		got, err := repo.GetOperatorByUsername(ctx, "ALICE")
		require.NoError(t, err)
		assert.Equal(t, op.ID, got.ID)
	})

	t.Run("Duplicate username", func(t *testing.T) {
		err := repo.CreateOperator(ctx, &domain.Operator{Username: "Alice"})
		assert.ErrorIs(t, err, ErrOperatorConflict)
	})

	t.Run("Not found", func(t *testing.T) {
		_, err := repo.GetOperatorByUsername(ctx, "bob")
		assert.ErrorIs(t, err, ErrOperatorNotFound)
	})
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestPostgresOperatorRepository_CreateOperator(t *testing.T) {
	ctx := context.TODO()
	insert := regexp.QuoteMeta(`INSERT INTO operators`)

	t.Run("Success", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgresOperatorRepository(db)
		now := time.Date(2025, 6, 12, 8, 0, 0, 0, time.UTC)
		mock.ExpectQuery(insert).
			WithArgs("alice", "Alice", "cashier", "hash", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("op-1", now, now))

		op := &domain.Operator{Username: "alice", Name: "Alice", Role: domain.RoleCashier, PasswordHash: "hash"}
		require.NoError(t, repo.CreateOperator(ctx, op))

		assert.Equal(t, "op-1", op.ID)
		assert.Equal(t, now, op.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Unique violation", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgresOperatorRepository(db)
		mock.ExpectQuery(insert).WillReturnError(&pgconn.PgError{Code: "23505"})

		err := repo.CreateOperator(ctx, &domain.Operator{Username: "alice", Role: domain.RoleCashier})

		assert.ErrorIs(t, err, ErrOperatorConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresOperatorRepository_GetOperatorByUsername(t *testing.T) {
	ctx := context.TODO()
	query := regexp.QuoteMeta(`FROM operators WHERE lower(username) = lower($1)`)
	columns := []string{"id", "username", "name", "role", "password_hash", "created_at", "updated_at"}

	t.Run("Found", func(t *testing.T) {
		db, mock := newMockDB(t)
		now := time.Now()
		mock.ExpectQuery(query).WithArgs("alice").
			WillReturnRows(sqlmock.NewRows(columns).AddRow("op-1", "alice", "Alice", "manager", "hash", now, now))

		op, err := NewPostgresOperatorRepository(db).GetOperatorByUsername(ctx, "alice")

		require.NoError(t, err)
		assert.Equal(t, domain.RoleManager, op.Role)
		assert.Equal(t, "hash", op.PasswordHash)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectQuery(query).WithArgs("bob").WillReturnRows(sqlmock.NewRows(columns))

		_, err := NewPostgresOperatorRepository(db).GetOperatorByUsername(ctx, "bob")

		assert.ErrorIs(t, err, ErrOperatorNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
