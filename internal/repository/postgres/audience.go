package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ignite/phishguard/internal/domain"
	"github.com/ignite/phishguard/internal/service/audience"
)

// GroupRepo implements audience.GroupRepository against PostgreSQL.
type GroupRepo struct{ db *sql.DB }

// NewGroupRepo creates a Postgres-backed target group repository.
func NewGroupRepo(db *sql.DB) *GroupRepo { return &GroupRepo{db: db} }

func (r *GroupRepo) List(ctx context.Context) ([]domain.TargetGroup, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(description,''), created_at, COALESCE(created_by,0)
		FROM target_groups
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list target groups: %w", err)
	}
	defer rows.Close()

	var out []domain.TargetGroup
	for rows.Next() {
		var g domain.TargetGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedAt, &g.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan target group: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *GroupRepo) Get(ctx context.Context, id int64) (*domain.TargetGroup, error) {
	g := &domain.TargetGroup{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(description,''), created_at, COALESCE(created_by,0)
		FROM target_groups
		WHERE id = $1
	`, id).Scan(&g.ID, &g.Name, &g.Description, &g.CreatedAt, &g.CreatedBy)
	if err == sql.ErrNoRows {
		return nil, audience.ErrGroupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get target group: %w", err)
	}
	return g, nil
}

func (r *GroupRepo) Create(ctx context.Context, g *domain.TargetGroup) (*domain.TargetGroup, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO target_groups (name, description, created_by, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`, g.Name, g.Description, g.CreatedBy).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create target group: %w", err)
	}
	return g, nil
}

func (r *GroupRepo) Update(ctx context.Context, id int64, u audience.GroupUpdateFields) (*domain.TargetGroup, error) {
	b := newSetBuilder()
	if u.Name != nil {
		b.add("name", *u.Name)
	}
	if u.Description != nil {
		b.add("description", *u.Description)
	}
	if b.empty() {
		return r.Get(ctx, id)
	}

	q := fmt.Sprintf("UPDATE target_groups SET %s WHERE id = $%d", joinComma(b.sets), b.idx)
	args := append(b.args, id)

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("update target group: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return nil, audience.ErrGroupNotFound
	}
	return r.Get(ctx, id)
}

func (r *GroupRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM target_groups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete target group: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return audience.ErrGroupNotFound
	}
	return nil
}

// TargetUserRepo implements audience.UserRepository against PostgreSQL.
type TargetUserRepo struct{ db *sql.DB }

// NewTargetUserRepo creates a Postgres-backed target user repository.
func NewTargetUserRepo(db *sql.DB) *TargetUserRepo { return &TargetUserRepo{db: db} }

func (r *TargetUserRepo) ListByGroup(ctx context.Context, groupID int64) ([]domain.TargetUser, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, group_id, name, email, COALESCE(department,''), created_at
		FROM target_users
		WHERE group_id = $1
		ORDER BY id
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("list target users: %w", err)
	}
	defer rows.Close()

	var out []domain.TargetUser
	for rows.Next() {
		var u domain.TargetUser
		if err := rows.Scan(&u.ID, &u.GroupID, &u.Name, &u.Email, &u.Department, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan target user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *TargetUserRepo) Get(ctx context.Context, id int64) (*domain.TargetUser, error) {
	u := &domain.TargetUser{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, group_id, name, email, COALESCE(department,''), created_at
		FROM target_users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.GroupID, &u.Name, &u.Email, &u.Department, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, audience.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get target user: %w", err)
	}
	return u, nil
}

func (r *TargetUserRepo) Create(ctx context.Context, u *domain.TargetUser) (*domain.TargetUser, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO target_users (group_id, name, email, department, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`, u.GroupID, u.Name, u.Email, u.Department).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create target user: %w", err)
	}
	return u, nil
}

func (r *TargetUserRepo) Update(ctx context.Context, id int64, u audience.UserUpdateFields) (*domain.TargetUser, error) {
	b := newSetBuilder()
	if u.GroupID != nil {
		b.add("group_id", *u.GroupID)
	}
	if u.Name != nil {
		b.add("name", *u.Name)
	}
	if u.Email != nil {
		b.add("email", *u.Email)
	}
	if u.Department != nil {
		b.add("department", *u.Department)
	}
	if b.empty() {
		return r.Get(ctx, id)
	}

	q := fmt.Sprintf("UPDATE target_users SET %s WHERE id = $%d", joinComma(b.sets), b.idx)
	args := append(b.args, id)

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("update target user: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return nil, audience.ErrUserNotFound
	}
	return r.Get(ctx, id)
}

func (r *TargetUserRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM target_users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete target user: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return audience.ErrUserNotFound
	}
	return nil
}
