package memory

import (
	"context"
	"time"

	"github.com/ignite/phishguard/internal/auth"
	"github.com/ignite/phishguard/internal/domain"
)

// AdminRepo implements auth.AdminRepository in memory.
type AdminRepo struct {
	t *table[domain.AdminUser]
}

// NewAdminRepo creates an empty in-memory admin repository.
func NewAdminRepo() *AdminRepo {
	return &AdminRepo{t: newTable[domain.AdminUser]()}
}

func (r *AdminRepo) GetByUsername(_ context.Context, username string) (*domain.AdminUser, error) {
	var found *domain.AdminUser
	r.t.scan(func(_ int64, row *domain.AdminUser) {
		if found == nil && row.Username == username {
			cp := *row
			found = &cp
		}
	})
	if found == nil {
		return nil, auth.ErrUserNotFound
	}
	return found, nil
}

func (r *AdminRepo) Create(_ context.Context, u *domain.AdminUser) (*domain.AdminUser, error) {
	row := *u
	row.CreatedAt = time.Now().UTC()
	row.ID = r.t.insert(&row)
	cp := row
	return &cp, nil
}

func (r *AdminRepo) Count(_ context.Context) (int, error) {
	n := 0
	r.t.scan(func(int64, *domain.AdminUser) { n++ })
	return n, nil
}
