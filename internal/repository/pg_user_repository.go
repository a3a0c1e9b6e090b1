package repository

import (
	"context"
	"errors"

	"github.com/edricd/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgUserRepository is the PostgreSQL implementation of UserRepository.
type PgUserRepository struct {
	pool *pgxpool.Pool
}

// NewPgUserRepository creates a PgUserRepository backed by the given pool.
func NewPgUserRepository(pool *pgxpool.Pool) *PgUserRepository {
	return &PgUserRepository{pool: pool}
}

// Ping checks database connectivity.
func (r *PgUserRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// uniqueViolation is the SQLSTATE for unique constraint violations. It stays
// inside this adapter; callers only ever see ErrDuplicateUsername.
const uniqueViolation = "23505"

// Create inserts the user. Uniqueness of the username is enforced by the
// database constraint, so concurrent inserts of the same name have at most
// one winner.
func (r *PgUserRepository) Create(ctx context.Context, user *model.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, role) VALUES ($1, $2, NULLIF($3, ''))
		 RETURNING id, created_at`,
		user.Username, user.PasswordHash, user.Role,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateUsername
		}
		return err
	}
	return nil
}

// FindByUsername returns the user with the given username.
func (r *PgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, username, password_hash, role, last_login_at, created_at
		 FROM users WHERE username = $1`, username)

	var u model.User
	var role *string
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &u.LastLoginAt, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if role != nil {
		u.Role = *role
	}
	return &u, nil
}
