package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xuantrong94/chat-backend/pkg/utils"
)

type PostgresUserRepo struct {
	pool *pgxpool.Pool
}

var _ UserRepo = (*PostgresUserRepo)(nil)

func NewPostgresUserRepo(ctx context.Context, dsn string) (*PostgresUserRepo, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse db dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create db pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping db: %w", err)
	}

	return &PostgresUserRepo{pool: pool}, nil
}

func (r *PostgresUserRepo) Close() {
	r.pool.Close()
}

func (r *PostgresUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	const q = `
		SELECT id, email, full_name, COALESCE(avatar_url, ''), password, created_at, updated_at
		FROM users
		WHERE email = $1
		LIMIT 1;
	`
	return r.scanUser(r.pool.QueryRow(ctx, q, email))
}

func (r *PostgresUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*User, error) {
	const q = `
		SELECT id, email, full_name, COALESCE(avatar_url, ''), password, created_at, updated_at
		FROM users
		WHERE id = $1
		LIMIT 1;
	`
	return r.scanUser(r.pool.QueryRow(ctx, q, id))
}

func (r *PostgresUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1);`

	var exists bool
	if err := r.pool.QueryRow(ctx, q, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

func (r *PostgresUserRepo) Create(ctx context.Context, params CreateUserParams) (*User, error) {
	const q = `
		INSERT INTO users (email, full_name, avatar_url, password, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, NOW(), NOW())
		RETURNING id, email, full_name, COALESCE(avatar_url, ''), password, created_at, updated_at;
	`

	hash, err := utils.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := r.scanUser(r.pool.QueryRow(ctx, q, params.Email, params.FullName, params.AvatarURL, hash))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, ErrUserExists
		}
		return nil, err
	}

	return user, nil
}

func (r *PostgresUserRepo) ComparePassword(user *User, plain string) error {
	return utils.ComparePassword(plain, user.Password)
}

func (r *PostgresUserRepo) scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.AvatarURL, &u.Password, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}
