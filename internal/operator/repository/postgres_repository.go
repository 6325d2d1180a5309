package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ridloal/pos-caisse/internal/operator/domain"
	"github.com/ridloal/pos-caisse/internal/platform/logger"
)

const uniqueViolation = "23505"

type postgresOperatorRepository struct {
	db *sql.DB
}

func NewPostgresOperatorRepository(db *sql.DB) OperatorRepository {
	return &postgresOperatorRepository{db: db}
}

func (r *postgresOperatorRepository) CreateOperator(ctx context.Context, op *domain.Operator) error {
	query := `INSERT INTO operators (username, name, role, password_hash, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at, updated_at`

	op.CreatedAt = time.Now()
	op.UpdatedAt = op.CreatedAt

	err := r.db.QueryRowContext(ctx, query, op.Username, op.Name, string(op.Role), op.PasswordHash, op.CreatedAt, op.UpdatedAt).
		Scan(&op.ID, &op.CreatedAt, &op.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			logger.Warn("CreateOperator: unique violation", "username", op.Username)
			return ErrOperatorConflict
		}
		logger.Error("CreateOperator: failed to insert operator", err)
		return err
	}
	return nil
}

func (r *postgresOperatorRepository) GetOperatorByUsername(ctx context.Context, username string) (*domain.Operator, error) {
	query := `SELECT id, username, name, role, password_hash, created_at, updated_at
              FROM operators WHERE lower(username) = lower($1)`
	op := &domain.Operator{}
	var role string

	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&op.ID, &op.Username, &op.Name, &role, &op.PasswordHash, &op.CreatedAt, &op.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOperatorNotFound
		}
		logger.Error("GetOperatorByUsername: query failed", err)
		return nil, err
	}
	op.Role = domain.Role(role)
	return op, nil
}
