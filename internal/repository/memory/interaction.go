package memory

import (
	"context"
	"time"

	"github.com/ignite/phishguard/internal/domain"
	"github.com/ignite/phishguard/internal/service/interaction"
)

// InteractionRepo implements interaction.Repository in memory.
type InteractionRepo struct {
	t *table[domain.Interaction]
}

// NewInteractionRepo creates an empty in-memory interaction repository.
func NewInteractionRepo() *InteractionRepo {
	return &InteractionRepo{t: newTable[domain.Interaction]()}
}

func (r *InteractionRepo) Create(_ context.Context, i *domain.Interaction) (*domain.Interaction, error) {
	row := *i
	row.ID = r.t.insert(&row)
	cp := row
	return &cp, nil
}

func (r *InteractionRepo) Get(_ context.Context, id int64) (*domain.Interaction, error) {
	row, ok := r.t.get(id)
	if !ok {
		return nil, interaction.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (r *InteractionRepo) Apply(_ context.Context, id int64, p domain.InteractionPatch) (*domain.Interaction, error) {
	var cp domain.Interaction
	ok := r.t.withRow(id, func(row *domain.Interaction) {
		p.ApplyTo(row)
		cp = *row
	})
	if !ok {
		return nil, interaction.ErrNotFound
	}
	return &cp, nil
}

func (r *InteractionRepo) ListByCampaign(_ context.Context, campaignID int64) ([]domain.Interaction, error) {
	var out []domain.Interaction
	r.t.scan(func(_ int64, row *domain.Interaction) {
		if row.CampaignID == campaignID {
			out = append(out, *row)
		}
	})
	return out, nil
}

func (r *InteractionRepo) List(_ context.Context) ([]domain.Interaction, error) {
	var out []domain.Interaction
	r.t.scan(func(_ int64, row *domain.Interaction) {
		out = append(out, *row)
	})
	return out, nil
}

// CredentialRepo implements interaction.CredentialRepository in memory.
type CredentialRepo struct {
	t *table[domain.CapturedCredential]
}

// NewCredentialRepo creates an empty in-memory credential log.
func NewCredentialRepo() *CredentialRepo {
	return &CredentialRepo{t: newTable[domain.CapturedCredential]()}
}

func (r *CredentialRepo) Capture(_ context.Context, c *domain.CapturedCredential) (*domain.CapturedCredential, error) {
	row := *c
	row.CapturedAt = time.Now().UTC()
	row.ID = r.t.insert(&row)
	cp := row
	return &cp, nil
}

func (r *CredentialRepo) GetByInteraction(_ context.Context, interactionID int64) (*domain.CapturedCredential, error) {
	var found *domain.CapturedCredential
	r.t.scan(func(_ int64, row *domain.CapturedCredential) {
		if found == nil && row.InteractionID == interactionID {
			cp := *row
			found = &cp
		}
	})
	if found == nil {
		return nil, interaction.ErrNotFound
	}
	return found, nil
}

func (r *CredentialRepo) List(_ context.Context) ([]domain.CapturedCredential, error) {
	var out []domain.CapturedCredential
	r.t.scan(func(_ int64, row *domain.CapturedCredential) {
		out = append(out, *row)
	})
	return out, nil
}
