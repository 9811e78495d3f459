package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ignite/phishguard/internal/domain"
	"github.com/ignite/phishguard/internal/service/template"
)

// TemplateRepo implements template.Repository against PostgreSQL.
type TemplateRepo struct{ db *sql.DB }

// NewTemplateRepo creates a Postgres-backed template repository.
func NewTemplateRepo(db *sql.DB) *TemplateRepo { return &TemplateRepo{db: db} }

const templateColumns = `id, name, subject, body, COALESCE(from_name,''),
	COALESCE(from_email,''), COALESCE(type,''), COALESCE(landing_page,''),
	created_at, COALESCE(created_by,0)`

func scanTemplate(row interface{ Scan(...interface{}) error }) (*domain.Template, error) {
	t := &domain.Template{}
	err := row.Scan(
		&t.ID, &t.Name, &t.Subject, &t.Body, &t.FromName,
		&t.FromEmail, &t.Type, &t.LandingPage, &t.CreatedAt, &t.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TemplateRepo) List(ctx context.Context) ([]domain.Template, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+templateColumns+`
		FROM email_templates
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var out []domain.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *TemplateRepo) Get(ctx context.Context, id int64) (*domain.Template, error) {
	t, err := scanTemplate(r.db.QueryRowContext(ctx, `
		SELECT `+templateColumns+`
		FROM email_templates
		WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, template.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}
	return t, nil
}

func (r *TemplateRepo) Create(ctx context.Context, t *domain.Template) (*domain.Template, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO email_templates
			(name, subject, body, from_name, from_email, type, landing_page,
			 created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`, t.Name, t.Subject, t.Body, t.FromName, t.FromEmail, t.Type,
		t.LandingPage, t.CreatedBy,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create template: %w", err)
	}
	return t, nil
}

func (r *TemplateRepo) Update(ctx context.Context, id int64, u template.UpdateFields) (*domain.Template, error) {
	b := newSetBuilder()
	if u.Name != nil {
		b.add("name", *u.Name)
	}
	if u.Subject != nil {
		b.add("subject", *u.Subject)
	}
	if u.Body != nil {
		b.add("body", *u.Body)
	}
	if u.FromName != nil {
		b.add("from_name", *u.FromName)
	}
	if u.FromEmail != nil {
		b.add("from_email", *u.FromEmail)
	}
	if u.Type != nil {
		b.add("type", *u.Type)
	}
	if u.LandingPage != nil {
		b.add("landing_page", *u.LandingPage)
	}

	if b.empty() {
		return r.Get(ctx, id)
	}

	q := fmt.Sprintf("UPDATE email_templates SET %s WHERE id = $%d", joinComma(b.sets), b.idx)
	args := append(b.args, id)

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("update template: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return nil, template.ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *TemplateRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM email_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return template.ErrNotFound
	}
	return nil
}
