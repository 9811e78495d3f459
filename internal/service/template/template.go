// Package template implements CRUD for simulated phishing email templates.
package template

import (
	"context"
	"errors"
	"fmt"

	"github.com/ignite/phishguard/internal/domain"
)

// ErrNotFound is returned when a template id does not resolve.
var ErrNotFound = errors.New("template not found")

// Repository defines the data access contract for templates.
// Implementations must be safe for concurrent use.
type Repository interface {
	List(ctx context.Context) ([]domain.Template, error)
	Get(ctx context.Context, id int64) (*domain.Template, error)
	Create(ctx context.Context, t *domain.Template) (*domain.Template, error)
	Update(ctx context.Context, id int64, u UpdateFields) (*domain.Template, error)
	Delete(ctx context.Context, id int64) error
}

// CreateInput holds the fields for creating a new template.
type CreateInput struct {
	Name        string `json:"name"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	FromName    string `json:"from_name"`
	FromEmail   string `json:"from_email"`
	Type        string `json:"type"`
	LandingPage string `json:"landing_page"`
	CreatedBy   int64  `json:"-"`
}

// UpdateFields holds the mutable template fields. Nil fields are not applied.
type UpdateFields struct {
	Name        *string `json:"name"`
	Subject     *string `json:"subject"`
	Body        *string `json:"body"`
	FromName    *string `json:"from_name"`
	FromEmail   *string `json:"from_email"`
	Type        *string `json:"type"`
	LandingPage *string `json:"landing_page"`
}

// Service implements template business logic.
type Service struct {
	repo Repository
}

// NewService creates a template service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all templates in insertion order.
func (s *Service) List(ctx context.Context) ([]domain.Template, error) {
	return s.repo.List(ctx)
}

// Get returns a single template.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Template, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and persists a new template.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Template, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if input.Subject == "" {
		return nil, fmt.Errorf("subject is required")
	}
	if input.Body == "" {
		return nil, fmt.Errorf("body is required")
	}

	t := &domain.Template{
		Name:        input.Name,
		Subject:     input.Subject,
		Body:        input.Body,
		FromName:    input.FromName,
		FromEmail:   input.FromEmail,
		Type:        input.Type,
		LandingPage: input.LandingPage,
		CreatedBy:   input.CreatedBy,
	}
	return s.repo.Create(ctx, t)
}

// Update modifies mutable template fields.
func (s *Service) Update(ctx context.Context, id int64, u UpdateFields) (*domain.Template, error) {
	return s.repo.Update(ctx, id, u)
}

// Delete removes a template.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
