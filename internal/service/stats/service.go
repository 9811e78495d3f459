package stats

import (
	"context"
	"math"
	"sort"

	"github.com/ignite/phishguard/internal/domain"
)

// DefaultActivityLimit caps the recent-activity feed when the caller does
// not supply a limit.
const DefaultActivityLimit = 10

// InteractionSource reads the funnel log.
type InteractionSource interface {
	Get(ctx context.Context, id int64) (*domain.Interaction, error)
	ListByCampaign(ctx context.Context, campaignID int64) ([]domain.Interaction, error)
	List(ctx context.Context) ([]domain.Interaction, error)
}

// CredentialSource reads the captured-credential log.
type CredentialSource interface {
	List(ctx context.Context) ([]domain.CapturedCredential, error)
}

// CampaignSource reads campaign records.
type CampaignSource interface {
	List(ctx context.Context) ([]domain.Campaign, error)
	Get(ctx context.Context, id int64) (*domain.Campaign, error)
}

// TemplateSource reads template records.
type TemplateSource interface {
	List(ctx context.Context) ([]domain.Template, error)
	Get(ctx context.Context, id int64) (*domain.Template, error)
}

// UserSource reads target-user records for feed enrichment.
type UserSource interface {
	Get(ctx context.Context, id int64) (*domain.TargetUser, error)
}

// Service computes derived metrics. Unlike the tracking boundary, failures
// here surface to the (authenticated) caller.
type Service struct {
	interactions InteractionSource
	credentials  CredentialSource
	campaigns    CampaignSource
	templates    TemplateSource
	users        UserSource
}

// NewService creates a statistics service over the given sources.
func NewService(interactions InteractionSource, credentials CredentialSource, campaigns CampaignSource, templates TemplateSource, users UserSource) *Service {
	return &Service{
		interactions: interactions,
		credentials:  credentials,
		campaigns:    campaigns,
		templates:    templates,
		users:        users,
	}
}

// CampaignStatistics counts interactions with each funnel flag set for one
// campaign. Flags are independent (opened can trail clicked when the
// tracking pixel was blocked), so no cross-flag consistency is assumed.
// An unknown campaign id propagates the campaign store's not-found error.
func (s *Service) CampaignStatistics(ctx context.Context, campaignID int64) (*domain.CampaignStatistics, error) {
	if _, err := s.campaigns.Get(ctx, campaignID); err != nil {
		return nil, err
	}

	records, err := s.interactions.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	out := &domain.CampaignStatistics{}
	for _, i := range records {
		if i.EmailSent {
			out.EmailsSent++
		}
		if i.EmailOpened {
			out.EmailsOpened++
		}
		if i.LinkClicked {
			out.LinksClicked++
		}
		if i.CredentialsEntered {
			out.CredentialsEntered++
		}
		if i.TrainingCompleted {
			out.TrainingCompleted++
		}
	}
	return out, nil
}

// CampaignPerformance sums funnel counts across all campaigns and derives
// percentage rates against emails sent. Rates are 0 when nothing was sent.
func (s *Service) CampaignPerformance(ctx context.Context) (*domain.CampaignPerformance, error) {
	campaigns, err := s.campaigns.List(ctx)
	if err != nil {
		return nil, err
	}

	out := &domain.CampaignPerformance{}
	for _, c := range campaigns {
		st, err := s.CampaignStatistics(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		out.EmailsSent += st.EmailsSent
		out.EmailsOpened += st.EmailsOpened
		out.LinksClicked += st.LinksClicked
		out.CredentialsEntered += st.CredentialsEntered
	}

	if out.EmailsSent > 0 {
		out.EmailOpenRate = percent(out.EmailsOpened, out.EmailsSent)
		out.LinkClickRate = percent(out.LinksClicked, out.EmailsSent)
		out.CredentialsEnteredRate = percent(out.CredentialsEntered, out.EmailsSent)
	}
	return out, nil
}

// TemplateSuccessRates ranks templates by the share of their interactions
// (across every campaign using the template) that ended in captured
// credentials. Templates with no interactions rank with rate 0. The result
// is sorted descending by rate; ties keep original template order.
func (s *Service) TemplateSuccessRates(ctx context.Context) ([]domain.TemplateSuccessRate, error) {
	templates, err := s.templates.List(ctx)
	if err != nil {
		return nil, err
	}
	campaigns, err := s.campaigns.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.TemplateSuccessRate, 0, len(templates))
	for _, t := range templates {
		var total, captured int
		for _, c := range campaigns {
			if c.TemplateID != t.ID {
				continue
			}
			records, err := s.interactions.ListByCampaign(ctx, c.ID)
			if err != nil {
				return nil, err
			}
			total += len(records)
			for _, i := range records {
				if i.CredentialsEntered {
					captured++
				}
			}
		}

		rate := 0.0
		if total > 0 {
			rate = percent(captured, total)
		}
		out = append(out, domain.TemplateSuccessRate{
			TemplateID:  t.ID,
			Name:        t.Name,
			SuccessRate: rate,
		})
	}

	sort.SliceStable(out, func(a, b int) bool {
		return out[a].SuccessRate > out[b].SuccessRate
	})
	return out, nil
}

// RecentActivities merges credential captures, campaign creations, and link
// clicks into one feed, newest first, truncated to limit (DefaultActivityLimit
// when limit <= 0). Capture and click entries are enriched by joining the
// campaign and target user; entries whose joins cannot be resolved are
// silently dropped. Campaign creations need no join and are never dropped.
func (s *Service) RecentActivities(ctx context.Context, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}

	var activities []domain.Activity

	creds, err := s.credentials.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, cred := range creds {
		rec, err := s.interactions.Get(ctx, cred.InteractionID)
		if err != nil {
			continue // orphan capture, nothing to render
		}
		c, err := s.campaigns.Get(ctx, rec.CampaignID)
		if err != nil {
			continue
		}
		u, err := s.users.Get(ctx, rec.UserID)
		if err != nil {
			continue
		}
		data := domain.ActivityData{
			Campaign:   c.Name,
			User:       u.Email,
			CapturedAt: &cred.CapturedAt,
		}
		if t, err := s.templates.Get(ctx, c.TemplateID); err == nil {
			data.Template = t.Name
		}
		capturedAt := cred.CapturedAt
		activities = append(activities, domain.Activity{
			Type:      domain.ActivityCredentialsCaptured,
			Timestamp: capturedAt,
			Data:      data,
		})
	}

	campaigns, err := s.campaigns.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range campaigns {
		createdAt := c.CreatedAt
		activities = append(activities, domain.Activity{
			Type:      domain.ActivityCampaignCreated,
			Timestamp: createdAt,
			Data: domain.ActivityData{
				Campaign:  c.Name,
				CreatedAt: &createdAt,
			},
		})
	}

	records, err := s.interactions.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if !rec.LinkClicked || rec.ClickedAt == nil {
			continue
		}
		c, err := s.campaigns.Get(ctx, rec.CampaignID)
		if err != nil {
			continue
		}
		u, err := s.users.Get(ctx, rec.UserID)
		if err != nil {
			continue
		}
		activities = append(activities, domain.Activity{
			Type:      domain.ActivityLinkClicked,
			Timestamp: *rec.ClickedAt,
			Data: domain.ActivityData{
				Campaign:  c.Name,
				User:      u.Email,
				ClickedAt: rec.ClickedAt,
			},
		})
	}

	sort.SliceStable(activities, func(a, b int) bool {
		return activities[a].Timestamp.After(activities[b].Timestamp)
	})
	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}

// Dashboard bundles the admin landing-page summary.
type Dashboard struct {
	ActiveCampaignCount    int                          `json:"activeCampaignCount"`
	TemplateCount          int                          `json:"templateCount"`
	PhishingSuccessRate    float64                      `json:"phishingSuccessRate"`
	AwarenessTrainingRate  float64                      `json:"awarenessTrainingRate"`
	MostEffectiveTemplates []domain.TemplateSuccessRate `json:"mostEffectiveTemplates"`
	RecentActivities       []domain.Activity            `json:"recentActivities"`
}

// GetDashboard assembles the dashboard summary in one call.
func (s *Service) GetDashboard(ctx context.Context) (*Dashboard, error) {
	campaigns, err := s.campaigns.List(ctx)
	if err != nil {
		return nil, err
	}
	templates, err := s.templates.List(ctx)
	if err != nil {
		return nil, err
	}

	var active, sent, captured, trained int
	for _, c := range campaigns {
		if c.Status == domain.CampaignActive {
			active++
		}
		st, err := s.CampaignStatistics(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		sent += st.EmailsSent
		captured += st.CredentialsEntered
		trained += st.TrainingCompleted
	}

	var successRate, trainingRate float64
	if sent > 0 {
		successRate = percent(captured, sent)
		trainingRate = percent(trained, sent)
	}

	rates, err := s.TemplateSuccessRates(ctx)
	if err != nil {
		return nil, err
	}
	feed, err := s.RecentActivities(ctx, DefaultActivityLimit)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		ActiveCampaignCount:    active,
		TemplateCount:          len(templates),
		PhishingSuccessRate:    successRate,
		AwarenessTrainingRate:  trainingRate,
		MostEffectiveTemplates: rates,
		RecentActivities:       feed,
	}, nil
}

// percent is 100*n/d rounded half-up to one decimal.
func percent(n, d int) float64 {
	return math.Round(float64(n)/float64(d)*1000) / 10
}
