package domain

import "time"

// CampaignStatus enumerates the lifecycle states of a simulation campaign.
type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignScheduled CampaignStatus = "scheduled"
	CampaignActive    CampaignStatus = "active"
	CampaignCompleted CampaignStatus = "completed"
	CampaignPaused    CampaignStatus = "paused"
)

// Campaign is one scheduled phishing simulation: a template sent to a
// target group.
type Campaign struct {
	ID            int64          `json:"id" db:"id"`
	Name          string         `json:"name" db:"name"`
	Description   string         `json:"description" db:"description"`
	Status        CampaignStatus `json:"status" db:"status"`
	TemplateID    int64          `json:"template_id" db:"template_id"`
	TargetGroupID int64          `json:"target_group_id" db:"target_group_id"`
	StartDate     *time.Time     `json:"start_date" db:"start_date"`
	EndDate       *time.Time     `json:"end_date" db:"end_date"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	CreatedBy     int64          `json:"created_by" db:"created_by"`
}

// Template is a simulated phishing email plus the landing page its link
// leads to. Body placeholders ({{name}}, {{phishingUrl}}, {{trackingPixel}})
// are bound at send time; the landing page carries the literal
// {{captureUrl}} token substituted when the page is served.
type Template struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Subject     string    `json:"subject" db:"subject"`
	Body        string    `json:"body" db:"body"`
	FromName    string    `json:"from_name" db:"from_name"`
	FromEmail   string    `json:"from_email" db:"from_email"`
	Type        string    `json:"type" db:"type"`
	LandingPage string    `json:"landing_page" db:"landing_page"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	CreatedBy   int64     `json:"created_by" db:"created_by"`
}

// TargetGroup is a named set of recipients for a campaign.
type TargetGroup struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	CreatedBy   int64     `json:"created_by" db:"created_by"`
}

// TargetUser is one simulation recipient, member of exactly one group.
type TargetUser struct {
	ID         int64     `json:"id" db:"id"`
	GroupID    int64     `json:"group_id" db:"group_id"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"`
	Department string    `json:"department" db:"department"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// AdminUser is a platform operator. PasswordHash is a bcrypt hash; the
// plaintext never leaves the login handler.
type AdminUser struct {
	ID           int64     `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"full_name" db:"full_name"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
