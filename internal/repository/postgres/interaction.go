package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ignite/phishguard/internal/domain"
	"github.com/ignite/phishguard/internal/service/interaction"
)

// InteractionRepo implements interaction.Repository against PostgreSQL.
type InteractionRepo struct{ db *sql.DB }

// NewInteractionRepo creates a Postgres-backed interaction repository.
func NewInteractionRepo(db *sql.DB) *InteractionRepo { return &InteractionRepo{db: db} }

const interactionColumns = `id, campaign_id, user_id,
	email_sent, email_opened, link_clicked, credentials_entered, training_completed,
	sent_at, opened_at, clicked_at, credentials_entered_at, training_completed_at,
	COALESCE(user_ip,''), COALESCE(user_agent,'')`

func scanInteraction(row interface{ Scan(...interface{}) error }) (*domain.Interaction, error) {
	i := &domain.Interaction{}
	err := row.Scan(
		&i.ID, &i.CampaignID, &i.UserID,
		&i.EmailSent, &i.EmailOpened, &i.LinkClicked, &i.CredentialsEntered, &i.TrainingCompleted,
		&i.SentAt, &i.OpenedAt, &i.ClickedAt, &i.CredentialsEnteredAt, &i.TrainingCompletedAt,
		&i.UserIP, &i.UserAgent,
	)
	if err != nil {
		return nil, err
	}
	return i, nil
}

func (r *InteractionRepo) Create(ctx context.Context, i *domain.Interaction) (*domain.Interaction, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO interactions
			(campaign_id, user_id, email_sent, sent_at, user_ip, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, i.CampaignID, i.UserID, i.EmailSent, i.SentAt, i.UserIP, i.UserAgent,
	).Scan(&i.ID)
	if err != nil {
		return nil, fmt.Errorf("create interaction: %w", err)
	}
	return i, nil
}

func (r *InteractionRepo) Get(ctx context.Context, id int64) (*domain.Interaction, error) {
	i, err := scanInteraction(r.db.QueryRowContext(ctx, `
		SELECT `+interactionColumns+`
		FROM interactions
		WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, interaction.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get interaction: %w", err)
	}
	return i, nil
}

// Apply advances funnel stages. Each stage in the patch sets its flag
// true and overwrites its timestamp; flags are never cleared, so the
// statement only ever adds.
func (r *InteractionRepo) Apply(ctx context.Context, id int64, p domain.InteractionPatch) (*domain.Interaction, error) {
	if p.IsZero() {
		return r.Get(ctx, id)
	}

	b := newSetBuilder()
	if p.Opened != nil {
		b.add("email_opened", true)
		b.add("opened_at", *p.Opened)
	}
	if p.Clicked != nil {
		b.add("link_clicked", true)
		b.add("clicked_at", *p.Clicked)
	}
	if p.CredentialsEntered != nil {
		b.add("credentials_entered", true)
		b.add("credentials_entered_at", *p.CredentialsEntered)
	}
	if p.TrainingCompleted != nil {
		b.add("training_completed", true)
		b.add("training_completed_at", *p.TrainingCompleted)
	}

	q := fmt.Sprintf("UPDATE interactions SET %s WHERE id = $%d", joinComma(b.sets), b.idx)
	args := append(b.args, id)

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("apply interaction patch: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return nil, interaction.ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *InteractionRepo) ListByCampaign(ctx context.Context, campaignID int64) ([]domain.Interaction, error) {
	return r.list(ctx, `
		SELECT `+interactionColumns+`
		FROM interactions
		WHERE campaign_id = $1
		ORDER BY id
	`, campaignID)
}

func (r *InteractionRepo) List(ctx context.Context) ([]domain.Interaction, error) {
	return r.list(ctx, `
		SELECT `+interactionColumns+`
		FROM interactions
		ORDER BY id
	`)
}

func (r *InteractionRepo) list(ctx context.Context, q string, args ...interface{}) ([]domain.Interaction, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list interactions: %w", err)
	}
	defer rows.Close()

	var out []domain.Interaction
	for rows.Next() {
		i, err := scanInteraction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		out = append(out, *i)
	}
	return out, rows.Err()
}

// CredentialRepo implements interaction.CredentialRepository against
// PostgreSQL. The interaction_id column carries no FK constraint on
// purpose; orphan submissions are kept for review.
type CredentialRepo struct{ db *sql.DB }

// NewCredentialRepo creates a Postgres-backed credential capture log.
func NewCredentialRepo(db *sql.DB) *CredentialRepo { return &CredentialRepo{db: db} }

func (r *CredentialRepo) Capture(ctx context.Context, c *domain.CapturedCredential) (*domain.CapturedCredential, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO captured_credentials (interaction_id, username, password, captured_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, captured_at
	`, c.InteractionID, c.Username, c.Password).Scan(&c.ID, &c.CapturedAt)
	if err != nil {
		return nil, fmt.Errorf("capture credential: %w", err)
	}
	return c, nil
}

func (r *CredentialRepo) GetByInteraction(ctx context.Context, interactionID int64) (*domain.CapturedCredential, error) {
	c := &domain.CapturedCredential{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, interaction_id, username, password, captured_at
		FROM captured_credentials
		WHERE interaction_id = $1
		ORDER BY id
		LIMIT 1
	`, interactionID).Scan(&c.ID, &c.InteractionID, &c.Username, &c.Password, &c.CapturedAt)
	if err == sql.ErrNoRows {
		return nil, interaction.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get captured credential: %w", err)
	}
	return c, nil
}

func (r *CredentialRepo) List(ctx context.Context) ([]domain.CapturedCredential, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, interaction_id, username, password, captured_at
		FROM captured_credentials
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list captured credentials: %w", err)
	}
	defer rows.Close()

	var out []domain.CapturedCredential
	for rows.Next() {
		var c domain.CapturedCredential
		if err := rows.Scan(&c.ID, &c.InteractionID, &c.Username, &c.Password, &c.CapturedAt); err != nil {
			return nil, fmt.Errorf("scan captured credential: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
