package campaign

import (
	"context"
	"fmt"
	"time"

	"github.com/ignite/phishguard/internal/domain"
	"github.com/ignite/phishguard/internal/mailer"
	"github.com/ignite/phishguard/internal/pkg/logger"
	"github.com/ignite/phishguard/internal/service/interaction"
)

// TemplateSource resolves the email template a campaign sends.
type TemplateSource interface {
	Get(ctx context.Context, id int64) (*domain.Template, error)
}

// AudienceSource resolves the recipients of a campaign's target group.
type AudienceSource interface {
	UsersInGroup(ctx context.Context, groupID int64) ([]domain.TargetUser, error)
}

// Service implements campaign business logic. It coordinates between the
// repository layer, the interaction log, and the mail collaborator.
type Service struct {
	repo         Repository
	templates    TemplateSource
	audience     AudienceSource
	interactions *interaction.Service
	mail         mailer.Mailer
	baseURL      string
}

// NewService creates a campaign service. baseURL is the externally
// reachable origin embedded in tracking pixels and phishing links.
func NewService(repo Repository, templates TemplateSource, audience AudienceSource, interactions *interaction.Service, mail mailer.Mailer, baseURL string) *Service {
	return &Service{
		repo:         repo,
		templates:    templates,
		audience:     audience,
		interactions: interactions,
		mail:         mail,
		baseURL:      baseURL,
	}
}

// List returns all campaigns.
func (s *Service) List(ctx context.Context) ([]domain.Campaign, error) {
	return s.repo.List(ctx)
}

// Get returns a single campaign.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Campaign, error) {
	return s.repo.Get(ctx, id)
}

// Create validates and persists a new campaign.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Campaign, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if input.TemplateID == 0 {
		return nil, fmt.Errorf("template_id is required")
	}
	if input.TargetGroupID == 0 {
		return nil, fmt.Errorf("target_group_id is required")
	}

	status := domain.CampaignStatus(input.Status)
	if status == "" {
		status = domain.CampaignDraft
	}

	c := &domain.Campaign{
		Name:          input.Name,
		Description:   input.Description,
		Status:        status,
		TemplateID:    input.TemplateID,
		TargetGroupID: input.TargetGroupID,
		StartDate:     input.StartDate,
		CreatedBy:     input.CreatedBy,
	}
	return s.repo.Create(ctx, c)
}

// Update modifies mutable campaign fields.
func (s *Service) Update(ctx context.Context, id int64, u UpdateFields) (*domain.Campaign, error) {
	return s.repo.Update(ctx, id, u)
}

// Delete removes a campaign. Its interactions remain in the funnel log.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// LaunchResult reports a fan-out.
type LaunchResult struct {
	Recipients int `json:"recipients"`
	Sent       int `json:"sent"`
	Failed     int `json:"failed"`
}

// Launch fans the campaign out to its target group: one interaction per
// recipient (emailSent from birth), one rendered email handed to the mail
// collaborator. Delivery failures do not roll back interaction creation;
// the funnel log is best-effort, and a recipient whose mail bounced simply
// never advances past sent.
func (s *Service) Launch(ctx context.Context, id int64) (*LaunchResult, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	tmpl, err := s.templates.Get(ctx, c.TemplateID)
	if err != nil {
		return nil, ErrNoTemplate
	}

	users, err := s.audience.UsersInGroup(ctx, c.TargetGroupID)
	if err != nil {
		return nil, ErrNoTargetGroup
	}
	if len(users) == 0 {
		return nil, ErrEmptyGroup
	}

	now := time.Now().UTC()
	res := &LaunchResult{Recipients: len(users)}

	for _, u := range users {
		rec, err := s.interactions.Create(ctx, interaction.CreateInput{
			CampaignID: c.ID,
			UserID:     u.ID,
			SentAt:     now,
		})
		if err != nil {
			logger.Error("interaction create failed", "campaign_id", c.ID, "user_id", u.ID, "error", err)
			res.Failed++
			continue
		}

		body, err := mailer.RenderBody(tmpl.Body, map[string]interface{}{
			"name":          u.Name,
			"email":         u.Email,
			"phishingUrl":   fmt.Sprintf("%s/api/phish/%d", s.baseURL, rec.ID),
			"trackingPixel": fmt.Sprintf("%s/api/track/%d", s.baseURL, rec.ID),
		})
		if err != nil {
			logger.Error("template render failed", "campaign_id", c.ID, "template_id", tmpl.ID, "error", err)
			res.Failed++
			continue
		}

		msg := mailer.Message{
			FromName:  tmpl.FromName,
			FromEmail: tmpl.FromEmail,
			To:        u.Email,
			Subject:   tmpl.Subject,
			HTMLBody:  body,
		}
		if err := s.mail.Send(ctx, msg); err != nil {
			logger.Warn("simulation mail delivery failed", "campaign_id", c.ID, "recipient", u.Email, "error", err)
			res.Failed++
			continue
		}
		res.Sent++
	}

	// Launching moves a draft/scheduled campaign to active.
	if c.Status == domain.CampaignDraft || c.Status == domain.CampaignScheduled {
		active := domain.CampaignActive
		start := c.StartDate
		if start == nil {
			start = &now
		}
		if _, err := s.repo.Update(ctx, c.ID, UpdateFields{Status: &active, StartDate: start}); err != nil {
			logger.Warn("campaign status transition failed", "campaign_id", c.ID, "error", err)
		}
	}

	logger.Info("campaign launched", "campaign_id", c.ID, "recipients", res.Recipients, "sent", res.Sent, "failed", res.Failed)
	return res, nil
}
