package memory

import (
	"context"
	"time"

	"github.com/ignite/phishguard/internal/domain"
	"github.com/ignite/phishguard/internal/service/audience"
)

// GroupRepo implements audience.GroupRepository in memory.
type GroupRepo struct {
	t *table[domain.TargetGroup]
}

// NewGroupRepo creates an empty in-memory target-group repository.
func NewGroupRepo() *GroupRepo {
	return &GroupRepo{t: newTable[domain.TargetGroup]()}
}

func (r *GroupRepo) List(_ context.Context) ([]domain.TargetGroup, error) {
	var out []domain.TargetGroup
	r.t.scan(func(_ int64, row *domain.TargetGroup) {
		out = append(out, *row)
	})
	return out, nil
}

func (r *GroupRepo) Get(_ context.Context, id int64) (*domain.TargetGroup, error) {
	row, ok := r.t.get(id)
	if !ok {
		return nil, audience.ErrGroupNotFound
	}
	cp := *row
	return &cp, nil
}

func (r *GroupRepo) Create(_ context.Context, g *domain.TargetGroup) (*domain.TargetGroup, error) {
	row := *g
	row.CreatedAt = time.Now().UTC()
	row.ID = r.t.insert(&row)
	cp := row
	return &cp, nil
}

func (r *GroupRepo) Update(_ context.Context, id int64, u audience.GroupUpdateFields) (*domain.TargetGroup, error) {
	var cp domain.TargetGroup
	ok := r.t.withRow(id, func(row *domain.TargetGroup) {
		if u.Name != nil {
			row.Name = *u.Name
		}
		if u.Description != nil {
			row.Description = *u.Description
		}
		cp = *row
	})
	if !ok {
		return nil, audience.ErrGroupNotFound
	}
	return &cp, nil
}

func (r *GroupRepo) Delete(_ context.Context, id int64) error {
	if !r.t.delete(id) {
		return audience.ErrGroupNotFound
	}
	return nil
}

// TargetUserRepo implements audience.UserRepository in memory.
type TargetUserRepo struct {
	t *table[domain.TargetUser]
}

// NewTargetUserRepo creates an empty in-memory target-user repository.
func NewTargetUserRepo() *TargetUserRepo {
	return &TargetUserRepo{t: newTable[domain.TargetUser]()}
}

func (r *TargetUserRepo) ListByGroup(_ context.Context, groupID int64) ([]domain.TargetUser, error) {
	var out []domain.TargetUser
	r.t.scan(func(_ int64, row *domain.TargetUser) {
		if row.GroupID == groupID {
			out = append(out, *row)
		}
	})
	return out, nil
}

func (r *TargetUserRepo) Get(_ context.Context, id int64) (*domain.TargetUser, error) {
	row, ok := r.t.get(id)
	if !ok {
		return nil, audience.ErrUserNotFound
	}
	cp := *row
	return &cp, nil
}

func (r *TargetUserRepo) Create(_ context.Context, u *domain.TargetUser) (*domain.TargetUser, error) {
	row := *u
	row.CreatedAt = time.Now().UTC()
	row.ID = r.t.insert(&row)
	cp := row
	return &cp, nil
}

func (r *TargetUserRepo) Update(_ context.Context, id int64, u audience.UserUpdateFields) (*domain.TargetUser, error) {
	var cp domain.TargetUser
	ok := r.t.withRow(id, func(row *domain.TargetUser) {
		if u.GroupID != nil {
			row.GroupID = *u.GroupID
		}
		if u.Name != nil {
			row.Name = *u.Name
		}
		if u.Email != nil {
			row.Email = *u.Email
		}
		if u.Department != nil {
			row.Department = *u.Department
		}
		cp = *row
	})
	if !ok {
		return nil, audience.ErrUserNotFound
	}
	return &cp, nil
}

func (r *TargetUserRepo) Delete(_ context.Context, id int64) error {
	if !r.t.delete(id) {
		return audience.ErrUserNotFound
	}
	return nil
}
