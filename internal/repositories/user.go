package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/nurbergenoovv/go-auth-template/internal/logger"
	"github.com/nurbergenoovv/go-auth-template/internal/middlewares"
	"github.com/nurbergenoovv/go-auth-template/internal/models"
)

type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// ext returns the transaction from the context if the request runs inside
// TxMiddleware, otherwise the plain connection pool.
func ext(ctx context.Context, db *sqlx.DB) sqlx.ExtContext {
	if tx := middlewares.GetTxFromContext(ctx); tx != nil {
		return tx
	}
	return db
}

func (r *UserReadRepository) GetByEmailOrUsername(ctx context.Context, email, username *string) (*models.UserDB, error) {
	const query = `
		SELECT user_id, username, first_name, last_name, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE ($1::VARCHAR IS NOT NULL AND email = $1)
		   OR ($2::VARCHAR IS NOT NULL AND username = $2)
		LIMIT 1
	`

	var user models.UserDB
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &user, query, email, username)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{email, username},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	const query = `
		SELECT user_id, username, first_name, last_name, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`

	var user models.UserDB
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &user, query, userID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserReadRepository) GetAll(ctx context.Context) ([]models.UserDB, error) {
	const query = `
		SELECT user_id, username, first_name, last_name, email, password_hash, role, created_at, updated_at
		FROM users
		ORDER BY created_at
	`

	var users []models.UserDB
	err := sqlx.SelectContext(ctx, ext(ctx, r.db), &users, query)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"rows", len(users),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return users, nil
}

type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

func (r *UserWriteRepository) Save(ctx context.Context, username, firstName, lastName, email, passwordHash string) (uuid.UUID, error) {
	const query = `
		INSERT INTO users (username, first_name, last_name, email, password_hash, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING user_id
	`
	args := []any{username, firstName, lastName, email, passwordHash, models.RoleUser}

	var userID uuid.UUID
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &userID, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username, firstName, lastName, email},
		"error", err,
	)

	if err != nil {
		return uuid.Nil, err
	}

	return userID, nil
}

func (r *UserWriteRepository) Update(ctx context.Context, userID uuid.UUID, firstName, lastName, email string) (*models.UserDB, error) {
	const query = `
		UPDATE users
		SET first_name = $2,
		    last_name = $3,
		    email = $4,
		    updated_at = NOW()
		WHERE user_id = $1
		RETURNING user_id, username, first_name, last_name, email, password_hash, role, created_at, updated_at
	`
	args := []any{userID, firstName, lastName, email}

	var user models.UserDB
	err := sqlx.GetContext(ctx, ext(ctx, r.db), &user, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserWriteRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	const query = `
		UPDATE users
		SET password_hash = $2,
		    updated_at = NOW()
		WHERE user_id = $1
	`

	res, err := ext(ctx, r.db).ExecContext(ctx, query, userID, passwordHash)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
