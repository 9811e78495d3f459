package campaign

import (
	"context"
	"time"

	"github.com/ignite/phishguard/internal/domain"
)

// Repository defines the data access contract for campaigns.
// Implementations must be safe for concurrent use.
type Repository interface {
	// List returns all campaigns in insertion order.
	List(ctx context.Context) ([]domain.Campaign, error)

	// Get returns a single campaign. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id int64) (*domain.Campaign, error)

	// Create inserts a new campaign and returns it with its id assigned.
	Create(ctx context.Context, c *domain.Campaign) (*domain.Campaign, error)

	// Update applies the non-nil fields. Returns ErrNotFound on unknown id.
	Update(ctx context.Context, id int64, u UpdateFields) (*domain.Campaign, error)

	// Delete removes a campaign. Interactions are NOT cascaded: the funnel
	// log outlives its campaign and simply stops rendering in joins.
	Delete(ctx context.Context, id int64) error
}

// CreateInput holds the fields for creating a new campaign.
type CreateInput struct {
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
	TemplateID    int64      `json:"template_id"`
	TargetGroupID int64      `json:"target_group_id"`
	StartDate     *time.Time `json:"start_date"`
	CreatedBy     int64      `json:"-"`
}

// UpdateFields holds the mutable fields for a campaign update.
// Nil fields are not applied.
type UpdateFields struct {
	Name          *string                `json:"name"`
	Description   *string                `json:"description"`
	Status        *domain.CampaignStatus `json:"status"`
	TemplateID    *int64                 `json:"template_id"`
	TargetGroupID *int64                 `json:"target_group_id"`
	StartDate     *time.Time             `json:"start_date"`
	EndDate       *time.Time             `json:"end_date"`
}
