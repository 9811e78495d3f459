package domain

import "time"

// Interaction records one recipient's progression through the simulation
// funnel for one send. Funnel flags are independent: a click can be recorded
// without an open (pixel blocked), so consumers must not assume ordering.
type Interaction struct {
	ID         int64 `json:"id" db:"id"`
	CampaignID int64 `json:"campaign_id" db:"campaign_id"`
	UserID     int64 `json:"user_id" db:"user_id"`

	EmailSent          bool `json:"email_sent" db:"email_sent"`
	EmailOpened        bool `json:"email_opened" db:"email_opened"`
	LinkClicked        bool `json:"link_clicked" db:"link_clicked"`
	CredentialsEntered bool `json:"credentials_entered" db:"credentials_entered"`
	TrainingCompleted  bool `json:"training_completed" db:"training_completed"`

	SentAt               *time.Time `json:"sent_at" db:"sent_at"`
	OpenedAt             *time.Time `json:"opened_at" db:"opened_at"`
	ClickedAt            *time.Time `json:"clicked_at" db:"clicked_at"`
	CredentialsEnteredAt *time.Time `json:"credentials_entered_at" db:"credentials_entered_at"`
	TrainingCompletedAt  *time.Time `json:"training_completed_at" db:"training_completed_at"`

	UserIP    string `json:"user_ip" db:"user_ip"`
	UserAgent string `json:"user_agent" db:"user_agent"`
}

// InteractionPatch advances funnel stages. Setting a stage time sets the
// corresponding flag true and its timestamp together; a flag can never be
// reset through a patch. Repeated hits overwrite the stage timestamp
// (last write wins).
type InteractionPatch struct {
	Opened             *time.Time
	Clicked            *time.Time
	CredentialsEntered *time.Time
	TrainingCompleted  *time.Time
}

// IsZero reports whether the patch advances no stage.
func (p InteractionPatch) IsZero() bool {
	return p.Opened == nil && p.Clicked == nil &&
		p.CredentialsEntered == nil && p.TrainingCompleted == nil
}

// ApplyTo merges the patch into an interaction in place.
func (p InteractionPatch) ApplyTo(i *Interaction) {
	if p.Opened != nil {
		i.EmailOpened = true
		i.OpenedAt = p.Opened
	}
	if p.Clicked != nil {
		i.LinkClicked = true
		i.ClickedAt = p.Clicked
	}
	if p.CredentialsEntered != nil {
		i.CredentialsEntered = true
		i.CredentialsEnteredAt = p.CredentialsEntered
	}
	if p.TrainingCompleted != nil {
		i.TrainingCompleted = true
		i.TrainingCompletedAt = p.TrainingCompleted
	}
}

// CapturedCredential is one credential submission from a landing page,
// stored as typed for analysis. The interaction reference is deliberately
// not validated against the interaction store.
type CapturedCredential struct {
	ID            int64     `json:"id" db:"id"`
	InteractionID int64     `json:"interaction_id" db:"interaction_id"`
	Username      string    `json:"username" db:"username"`
	Password      string    `json:"password" db:"password"`
	CapturedAt    time.Time `json:"captured_at" db:"captured_at"`
}
