package memory

import (
	"context"
	"time"

	"github.com/ignite/phishguard/internal/domain"
	"github.com/ignite/phishguard/internal/service/template"
)

// TemplateRepo implements template.Repository in memory.
type TemplateRepo struct {
	t *table[domain.Template]
}

// NewTemplateRepo creates an empty in-memory template repository.
func NewTemplateRepo() *TemplateRepo {
	return &TemplateRepo{t: newTable[domain.Template]()}
}

func (r *TemplateRepo) List(_ context.Context) ([]domain.Template, error) {
	var out []domain.Template
	r.t.scan(func(_ int64, row *domain.Template) {
		out = append(out, *row)
	})
	return out, nil
}

func (r *TemplateRepo) Get(_ context.Context, id int64) (*domain.Template, error) {
	row, ok := r.t.get(id)
	if !ok {
		return nil, template.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (r *TemplateRepo) Create(_ context.Context, t *domain.Template) (*domain.Template, error) {
	row := *t
	row.CreatedAt = time.Now().UTC()
	row.ID = r.t.insert(&row)
	cp := row
	return &cp, nil
}

func (r *TemplateRepo) Update(_ context.Context, id int64, u template.UpdateFields) (*domain.Template, error) {
	var cp domain.Template
	ok := r.t.withRow(id, func(row *domain.Template) {
		if u.Name != nil {
			row.Name = *u.Name
		}
		if u.Subject != nil {
			row.Subject = *u.Subject
		}
		if u.Body != nil {
			row.Body = *u.Body
		}
		if u.FromName != nil {
			row.FromName = *u.FromName
		}
		if u.FromEmail != nil {
			row.FromEmail = *u.FromEmail
		}
		if u.Type != nil {
			row.Type = *u.Type
		}
		if u.LandingPage != nil {
			row.LandingPage = *u.LandingPage
		}
		cp = *row
	})
	if !ok {
		return nil, template.ErrNotFound
	}
	return &cp, nil
}

func (r *TemplateRepo) Delete(_ context.Context, id int64) error {
	if !r.t.delete(id) {
		return template.ErrNotFound
	}
	return nil
}
