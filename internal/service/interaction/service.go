package interaction

import (
	"context"
	"time"

	"github.com/ignite/phishguard/internal/domain"
	"github.com/ignite/phishguard/internal/pkg/logger"
)

// Service implements funnel-log business logic over the interaction and
// credential repositories. All public methods are safe for concurrent use
// if the underlying repositories are concurrency-safe.
type Service struct {
	repo  Repository
	creds CredentialRepository
}

// NewService creates an interaction service backed by the given repositories.
func NewService(repo Repository, creds CredentialRepository) *Service {
	return &Service{repo: repo, creds: creds}
}

// Create records one send: emailSent is true from birth, every other stage
// unset. No uniqueness is enforced on (campaign, user); each send event is
// its own record.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Interaction, error) {
	if input.CampaignID == 0 || input.UserID == 0 {
		return nil, ErrInvalidInput
	}
	sentAt := input.SentAt
	if sentAt.IsZero() {
		sentAt = time.Now().UTC()
	}

	i := &domain.Interaction{
		CampaignID: input.CampaignID,
		UserID:     input.UserID,
		EmailSent:  true,
		SentAt:     &sentAt,
		UserIP:     input.UserIP,
		UserAgent:  input.UserAgent,
	}
	return s.repo.Create(ctx, i)
}

// Get returns a single interaction.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Interaction, error) {
	return s.repo.Get(ctx, id)
}

// ListByCampaign returns a campaign's interactions in insertion order.
func (s *Service) ListByCampaign(ctx context.Context, campaignID int64) ([]domain.Interaction, error) {
	return s.repo.ListByCampaign(ctx, campaignID)
}

// RecordOpen marks the email as opened. A repeat hit moves openedAt to the
// newer time (last write wins).
func (s *Service) RecordOpen(ctx context.Context, id int64, at time.Time) (*domain.Interaction, error) {
	return s.repo.Apply(ctx, id, domain.InteractionPatch{Opened: &at})
}

// RecordClick marks the phishing link as clicked.
func (s *Service) RecordClick(ctx context.Context, id int64, at time.Time) (*domain.Interaction, error) {
	return s.repo.Apply(ctx, id, domain.InteractionPatch{Clicked: &at})
}

// RecordTrainingCompleted marks the awareness training as completed.
func (s *Service) RecordTrainingCompleted(ctx context.Context, id int64, at time.Time) (*domain.Interaction, error) {
	return s.repo.Apply(ctx, id, domain.InteractionPatch{TrainingCompleted: &at})
}

// CaptureCredentials advances the funnel to credentials-entered and appends
// the submission to the capture log. The two writes are not atomic; a
// capture-log failure is logged and surfaced, but the funnel update stands
// (best-effort simulation log, not a system of record).
func (s *Service) CaptureCredentials(ctx context.Context, id int64, username, password string, at time.Time) (*domain.CapturedCredential, error) {
	if _, err := s.repo.Apply(ctx, id, domain.InteractionPatch{CredentialsEntered: &at}); err != nil {
		return nil, err
	}

	cred, err := s.creds.Capture(ctx, &domain.CapturedCredential{
		InteractionID: id,
		Username:      username,
		Password:      password,
	})
	if err != nil {
		logger.Error("credential capture append failed", "interaction_id", id, "error", err)
		return nil, err
	}
	return cred, nil
}

// CredentialsFor returns the first capture recorded for an interaction.
func (s *Service) CredentialsFor(ctx context.Context, id int64) (*domain.CapturedCredential, error) {
	return s.creds.GetByInteraction(ctx, id)
}

// Credentials returns the whole capture log in insertion order.
func (s *Service) Credentials(ctx context.Context) ([]domain.CapturedCredential, error) {
	return s.creds.List(ctx)
}
