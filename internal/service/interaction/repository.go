package interaction

import (
	"context"
	"time"

	"github.com/ignite/phishguard/internal/domain"
)

// Repository defines the data access contract for interactions.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Create inserts a new interaction and returns it with its id assigned.
	Create(ctx context.Context, i *domain.Interaction) (*domain.Interaction, error)

	// Get returns a single interaction. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id int64) (*domain.Interaction, error)

	// Apply merges the patch into the stored record. Returns ErrNotFound
	// if the id doesn't resolve.
	Apply(ctx context.Context, id int64, p domain.InteractionPatch) (*domain.Interaction, error)

	// ListByCampaign returns the campaign's interactions in insertion order.
	ListByCampaign(ctx context.Context, campaignID int64) ([]domain.Interaction, error)

	// List returns all interactions in insertion order.
	List(ctx context.Context) ([]domain.Interaction, error)
}

// CredentialRepository defines the append-only captured-credential log.
// The interaction reference is deliberately NOT validated against the
// interaction store; an orphan capture is preferable to losing the event.
type CredentialRepository interface {
	// Capture appends a credential record, stamping capturedAt.
	Capture(ctx context.Context, c *domain.CapturedCredential) (*domain.CapturedCredential, error)

	// GetByInteraction returns the first capture found for the interaction
	// in an unordered scan. With multiple captures for the same interaction,
	// which one is returned is unspecified. Returns ErrNotFound when none
	// exist.
	GetByInteraction(ctx context.Context, interactionID int64) (*domain.CapturedCredential, error)

	// List returns all captures in insertion order.
	List(ctx context.Context) ([]domain.CapturedCredential, error)
}

// CreateInput holds the fields for recording a new send.
type CreateInput struct {
	CampaignID int64
	UserID     int64
	SentAt     time.Time
	UserIP     string
	UserAgent  string
}
