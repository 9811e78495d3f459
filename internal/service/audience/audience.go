// Package audience implements CRUD for target groups and their member
// users, the recipients of phishing simulations.
package audience

import (
	"context"
	"errors"
	"fmt"

	"github.com/ignite/phishguard/internal/domain"
)

// Sentinel errors for the audience service layer.
var (
	ErrGroupNotFound = errors.New("target group not found")
	ErrUserNotFound  = errors.New("target user not found")
)

// GroupRepository defines the data access contract for target groups.
type GroupRepository interface {
	List(ctx context.Context) ([]domain.TargetGroup, error)
	Get(ctx context.Context, id int64) (*domain.TargetGroup, error)
	Create(ctx context.Context, g *domain.TargetGroup) (*domain.TargetGroup, error)
	Update(ctx context.Context, id int64, u GroupUpdateFields) (*domain.TargetGroup, error)
	Delete(ctx context.Context, id int64) error
}

// UserRepository defines the data access contract for target users.
type UserRepository interface {
	ListByGroup(ctx context.Context, groupID int64) ([]domain.TargetUser, error)
	Get(ctx context.Context, id int64) (*domain.TargetUser, error)
	Create(ctx context.Context, u *domain.TargetUser) (*domain.TargetUser, error)
	Update(ctx context.Context, id int64, u UserUpdateFields) (*domain.TargetUser, error)
	Delete(ctx context.Context, id int64) error
}

// GroupUpdateFields holds mutable group fields. Nil fields are not applied.
type GroupUpdateFields struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// UserUpdateFields holds mutable user fields. Nil fields are not applied.
type UserUpdateFields struct {
	GroupID    *int64  `json:"group_id"`
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Department *string `json:"department"`
}

// GroupCreateInput holds the fields for creating a target group.
type GroupCreateInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedBy   int64  `json:"-"`
}

// UserCreateInput holds the fields for creating a target user.
type UserCreateInput struct {
	GroupID    int64  `json:"group_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// Service implements audience business logic over both repositories.
type Service struct {
	groups GroupRepository
	users  UserRepository
}

// NewService creates an audience service.
func NewService(groups GroupRepository, users UserRepository) *Service {
	return &Service{groups: groups, users: users}
}

// ListGroups returns all target groups.
func (s *Service) ListGroups(ctx context.Context) ([]domain.TargetGroup, error) {
	return s.groups.List(ctx)
}

// GetGroup returns one target group.
func (s *Service) GetGroup(ctx context.Context, id int64) (*domain.TargetGroup, error) {
	return s.groups.Get(ctx, id)
}

// CreateGroup validates and persists a new target group.
func (s *Service) CreateGroup(ctx context.Context, input GroupCreateInput) (*domain.TargetGroup, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	return s.groups.Create(ctx, &domain.TargetGroup{
		Name:        input.Name,
		Description: input.Description,
		CreatedBy:   input.CreatedBy,
	})
}

// UpdateGroup modifies mutable group fields.
func (s *Service) UpdateGroup(ctx context.Context, id int64, u GroupUpdateFields) (*domain.TargetGroup, error) {
	return s.groups.Update(ctx, id, u)
}

// DeleteGroup removes a target group. Member users are not cascaded.
func (s *Service) DeleteGroup(ctx context.Context, id int64) error {
	return s.groups.Delete(ctx, id)
}

// UsersInGroup returns the group's members in insertion order.
func (s *Service) UsersInGroup(ctx context.Context, groupID int64) ([]domain.TargetUser, error) {
	return s.users.ListByGroup(ctx, groupID)
}

// GetUser returns one target user.
func (s *Service) GetUser(ctx context.Context, id int64) (*domain.TargetUser, error) {
	return s.users.Get(ctx, id)
}

// CreateUser validates and persists a new target user.
func (s *Service) CreateUser(ctx context.Context, input UserCreateInput) (*domain.TargetUser, error) {
	if input.GroupID == 0 {
		return nil, fmt.Errorf("group_id is required")
	}
	if input.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if input.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	return s.users.Create(ctx, &domain.TargetUser{
		GroupID:    input.GroupID,
		Name:       input.Name,
		Email:      input.Email,
		Department: input.Department,
	})
}

// UpdateUser modifies mutable user fields.
func (s *Service) UpdateUser(ctx context.Context, id int64, u UserUpdateFields) (*domain.TargetUser, error) {
	return s.users.Update(ctx, id, u)
}

// DeleteUser removes a target user.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	return s.users.Delete(ctx, id)
}
