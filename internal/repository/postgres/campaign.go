package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ignite/phishguard/internal/domain"
	"github.com/ignite/phishguard/internal/service/campaign"
)

// CampaignRepo implements campaign.Repository against PostgreSQL.
type CampaignRepo struct{ db *sql.DB }

// NewCampaignRepo creates a Postgres-backed campaign repository.
func NewCampaignRepo(db *sql.DB) *CampaignRepo { return &CampaignRepo{db: db} }

const campaignColumns = `id, name, COALESCE(description,''), status, template_id,
	target_group_id, start_date, end_date, created_at, COALESCE(created_by,0)`

func scanCampaign(row interface{ Scan(...interface{}) error }) (*domain.Campaign, error) {
	c := &domain.Campaign{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.Status, &c.TemplateID,
		&c.TargetGroupID, &c.StartDate, &c.EndDate, &c.CreatedAt, &c.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CampaignRepo) List(ctx context.Context) ([]domain.Campaign, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var out []domain.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *CampaignRepo) Get(ctx context.Context, id int64) (*domain.Campaign, error) {
	c, err := scanCampaign(r.db.QueryRowContext(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns
		WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, campaign.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return c, nil
}

func (r *CampaignRepo) Create(ctx context.Context, c *domain.Campaign) (*domain.Campaign, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO campaigns
			(name, description, status, template_id, target_group_id,
			 start_date, end_date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`, c.Name, c.Description, c.Status, c.TemplateID, c.TargetGroupID,
		c.StartDate, c.EndDate, c.CreatedBy,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	return c, nil
}

func (r *CampaignRepo) Update(ctx context.Context, id int64, u campaign.UpdateFields) (*domain.Campaign, error) {
	b := newSetBuilder()
	if u.Name != nil {
		b.add("name", *u.Name)
	}
	if u.Description != nil {
		b.add("description", *u.Description)
	}
	if u.Status != nil {
		b.add("status", *u.Status)
	}
	if u.TemplateID != nil {
		b.add("template_id", *u.TemplateID)
	}
	if u.TargetGroupID != nil {
		b.add("target_group_id", *u.TargetGroupID)
	}
	if u.StartDate != nil {
		b.add("start_date", *u.StartDate)
	}
	if u.EndDate != nil {
		b.add("end_date", *u.EndDate)
	}

	if b.empty() {
		return r.Get(ctx, id)
	}

	q := fmt.Sprintf("UPDATE campaigns SET %s WHERE id = $%d", joinComma(b.sets), b.idx)
	args := append(b.args, id)

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("update campaign: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return nil, campaign.ErrNotFound
	}
	return r.Get(ctx, id)
}

// Delete removes the campaign row only. Interactions keep their
// campaign_id; there is no FK cascade.
func (r *CampaignRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return campaign.ErrNotFound
	}
	return nil
}
