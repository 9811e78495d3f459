package domain

import "time"

// ActivityType enumerates the event kinds in the recent-activity feed.
type ActivityType string

const (
	ActivityCredentialsCaptured ActivityType = "credentials_captured"
	ActivityCampaignCreated     ActivityType = "campaign_created"
	ActivityLinkClicked         ActivityType = "link_clicked"
)

// Activity is one entry in the merged recent-activity feed.
type Activity struct {
	Type      ActivityType `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
	Data      ActivityData `json:"data"`
}

// ActivityData carries the joined names for rendering an activity line.
// Fields not relevant to the activity type stay empty.
type ActivityData struct {
	Campaign   string     `json:"campaign,omitempty"`
	Template   string     `json:"template,omitempty"`
	User       string     `json:"user,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
	ClickedAt  *time.Time `json:"clicked_at,omitempty"`
	CapturedAt *time.Time `json:"captured_at,omitempty"`
}

// CampaignStatistics are the per-campaign funnel counts.
type CampaignStatistics struct {
	EmailsSent         int `json:"emailsSent"`
	EmailsOpened       int `json:"emailsOpened"`
	LinksClicked       int `json:"linksClicked"`
	CredentialsEntered int `json:"credentialsEntered"`
	TrainingCompleted  int `json:"trainingCompleted"`
}

// CampaignPerformance are the global funnel totals and derived rates.
// Rates are percentages rounded to one decimal, 0 when nothing was sent.
type CampaignPerformance struct {
	EmailsSent             int     `json:"emailsSent"`
	EmailsOpened           int     `json:"emailsOpened"`
	LinksClicked           int     `json:"linksClicked"`
	CredentialsEntered     int     `json:"credentialsEntered"`
	EmailOpenRate          float64 `json:"emailOpenRate"`
	LinkClickRate          float64 `json:"linkClickRate"`
	CredentialsEnteredRate float64 `json:"credentialsEnteredRate"`
}

// TemplateSuccessRate ranks a template by the share of its interactions
// that ended in captured credentials.
type TemplateSuccessRate struct {
	TemplateID  int64   `json:"templateId"`
	Name        string  `json:"name"`
	SuccessRate float64 `json:"successRate"`
}
