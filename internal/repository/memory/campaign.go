package memory

import (
	"context"
	"time"

	"github.com/ignite/phishguard/internal/domain"
	"github.com/ignite/phishguard/internal/service/campaign"
)

// CampaignRepo implements campaign.Repository in memory.
type CampaignRepo struct {
	t *table[domain.Campaign]
}

// NewCampaignRepo creates an empty in-memory campaign repository.
func NewCampaignRepo() *CampaignRepo {
	return &CampaignRepo{t: newTable[domain.Campaign]()}
}

func (r *CampaignRepo) List(_ context.Context) ([]domain.Campaign, error) {
	var out []domain.Campaign
	r.t.scan(func(_ int64, row *domain.Campaign) {
		out = append(out, *row)
	})
	return out, nil
}

func (r *CampaignRepo) Get(_ context.Context, id int64) (*domain.Campaign, error) {
	row, ok := r.t.get(id)
	if !ok {
		return nil, campaign.ErrNotFound
	}
	cp := *row
	return &cp, nil
}

func (r *CampaignRepo) Create(_ context.Context, c *domain.Campaign) (*domain.Campaign, error) {
	row := *c
	row.CreatedAt = time.Now().UTC()
	row.ID = r.t.insert(&row)
	cp := row
	return &cp, nil
}

func (r *CampaignRepo) Update(_ context.Context, id int64, u campaign.UpdateFields) (*domain.Campaign, error) {
	var cp domain.Campaign
	ok := r.t.withRow(id, func(row *domain.Campaign) {
		if u.Name != nil {
			row.Name = *u.Name
		}
		if u.Description != nil {
			row.Description = *u.Description
		}
		if u.Status != nil {
			row.Status = *u.Status
		}
		if u.TemplateID != nil {
			row.TemplateID = *u.TemplateID
		}
		if u.TargetGroupID != nil {
			row.TargetGroupID = *u.TargetGroupID
		}
		if u.StartDate != nil {
			row.StartDate = u.StartDate
		}
		if u.EndDate != nil {
			row.EndDate = u.EndDate
		}
		cp = *row
	})
	if !ok {
		return nil, campaign.ErrNotFound
	}
	return &cp, nil
}

func (r *CampaignRepo) Delete(_ context.Context, id int64) error {
	if !r.t.delete(id) {
		return campaign.ErrNotFound
	}
	return nil
}
