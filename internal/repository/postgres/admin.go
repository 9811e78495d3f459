package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ignite/phishguard/internal/auth"
	"github.com/ignite/phishguard/internal/domain"
)

// AdminRepo implements auth.AdminRepository against PostgreSQL.
type AdminRepo struct{ db *sql.DB }

// NewAdminRepo creates a Postgres-backed admin user repository.
func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{db: db} }

func (r *AdminRepo) GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error) {
	u := &domain.AdminUser{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, COALESCE(full_name,''), role, created_at
		FROM admin_users
		WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &u.Role, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, auth.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get admin user: %w", err)
	}
	return u, nil
}

func (r *AdminRepo) Create(ctx context.Context, u *domain.AdminUser) (*domain.AdminUser, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO admin_users (username, password_hash, full_name, role, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`, u.Username, u.PasswordHash, u.FullName, u.Role).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create admin user: %w", err)
	}
	return u, nil
}

func (r *AdminRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admin_users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count admin users: %w", err)
	}
	return n, nil
}
