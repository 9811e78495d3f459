package stats_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ignite/phishguard/internal/domain"
	"github.com/ignite/phishguard/internal/repository/memory"
	"github.com/ignite/phishguard/internal/service/campaign"
	"github.com/ignite/phishguard/internal/service/interaction"
	"github.com/ignite/phishguard/internal/service/stats"
)

type fixture struct {
	svc          *stats.Service
	campaigns    *memory.CampaignRepo
	templates    *memory.TemplateRepo
	users        *memory.TargetUserRepo
	interactions *interaction.Service
	credentials  *memory.CredentialRepo
}

func newFixture() *fixture {
	campaigns := memory.NewCampaignRepo()
	templates := memory.NewTemplateRepo()
	users := memory.NewTargetUserRepo()
	interactionRepo := memory.NewInteractionRepo()
	credentials := memory.NewCredentialRepo()

	return &fixture{
		svc:          stats.NewService(interactionRepo, credentials, campaigns, templates, users),
		campaigns:    campaigns,
		templates:    templates,
		users:        users,
		interactions: interaction.NewService(interactionRepo, credentials),
		credentials:  credentials,
	}
}

// seedFunnel creates a campaign with sent interactions and advances
// opened/clicked/captured of them through the funnel.
func (f *fixture) seedFunnel(t *testing.T, templateName string, sent, opened, clicked, captured int) *domain.Campaign {
	t.Helper()
	ctx := context.Background()

	tmpl, err := f.templates.Create(ctx, &domain.Template{Name: templateName, Subject: "s", Body: "b"})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	camp, err := f.campaigns.Create(ctx, &domain.Campaign{
		Name: templateName + " campaign", Status: domain.CampaignActive,
		TemplateID: tmpl.ID, TargetGroupID: 1,
	})
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}

	now := time.Now().UTC()
	for i := 0; i < sent; i++ {
		user, err := f.users.Create(ctx, &domain.TargetUser{
			GroupID: 1, Name: "u", Email: "u@corp.example",
		})
		if err != nil {
			t.Fatalf("create user: %v", err)
		}
		rec, err := f.interactions.Create(ctx, interaction.CreateInput{
			CampaignID: camp.ID, UserID: user.ID,
		})
		if err != nil {
			t.Fatalf("create interaction: %v", err)
		}
		if i < opened {
			if _, err := f.interactions.RecordOpen(ctx, rec.ID, now); err != nil {
				t.Fatalf("record open: %v", err)
			}
		}
		if i < clicked {
			if _, err := f.interactions.RecordClick(ctx, rec.ID, now); err != nil {
				t.Fatalf("record click: %v", err)
			}
		}
		if i < captured {
			if _, err := f.interactions.CaptureCredentials(ctx, rec.ID, "u", "p", now); err != nil {
				t.Fatalf("capture: %v", err)
			}
		}
	}
	return camp
}

func TestCampaignStatistics(t *testing.T) {
	f := newFixture()
	camp := f.seedFunnel(t, "A", 8, 5, 3, 2)

	st, err := f.svc.CampaignStatistics(context.Background(), camp.ID)
	if err != nil {
		t.Fatalf("statistics: %v", err)
	}
	want := domain.CampaignStatistics{
		EmailsSent: 8, EmailsOpened: 5, LinksClicked: 3,
		CredentialsEntered: 2, TrainingCompleted: 0,
	}
	if *st != want {
		t.Errorf("stats = %+v, want %+v", *st, want)
	}
	if st.CredentialsEntered > st.EmailsSent {
		t.Errorf("captured exceeds sent")
	}
}

func TestCampaignStatisticsUnknownCampaign(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CampaignStatistics(context.Background(), 404)
	if !errors.Is(err, campaign.ErrNotFound) {
		t.Errorf("err = %v, want campaign.ErrNotFound", err)
	}
}

func TestCampaignPerformanceRates(t *testing.T) {
	f := newFixture()
	f.seedFunnel(t, "A", 6, 3, 2, 1)
	f.seedFunnel(t, "B", 2, 1, 1, 1)

	perf, err := f.svc.CampaignPerformance(context.Background())
	if err != nil {
		t.Fatalf("performance: %v", err)
	}
	if perf.EmailsSent != 8 || perf.EmailsOpened != 4 || perf.LinksClicked != 3 || perf.CredentialsEntered != 2 {
		t.Errorf("totals = %+v", perf)
	}
	if perf.EmailOpenRate != 50.0 {
		t.Errorf("openRate = %v, want 50.0", perf.EmailOpenRate)
	}
	if perf.LinkClickRate != 37.5 {
		t.Errorf("clickRate = %v, want 37.5", perf.LinkClickRate)
	}
	if perf.CredentialsEnteredRate != 25.0 {
		t.Errorf("capturedRate = %v, want 25.0", perf.CredentialsEnteredRate)
	}
}

func TestCampaignPerformanceZeroSent(t *testing.T) {
	f := newFixture()

	perf, err := f.svc.CampaignPerformance(context.Background())
	if err != nil {
		t.Fatalf("performance: %v", err)
	}
	if perf.EmailOpenRate != 0 || perf.LinkClickRate != 0 || perf.CredentialsEnteredRate != 0 {
		t.Errorf("rates on empty data = %+v, want zeros", perf)
	}
}

func TestTemplateSuccessRatesOrdering(t *testing.T) {
	f := newFixture()
	f.seedFunnel(t, "Weak", 4, 0, 0, 1)   // 25.0
	f.seedFunnel(t, "Strong", 4, 0, 0, 3) // 75.0
	f.seedFunnel(t, "Unused", 0, 0, 0, 0) // 0, no interactions

	rates, err := f.svc.TemplateSuccessRates(context.Background())
	if err != nil {
		t.Fatalf("success rates: %v", err)
	}
	if len(rates) != 3 {
		t.Fatalf("templates = %d, want 3", len(rates))
	}
	if rates[0].Name != "Strong" || rates[0].SuccessRate != 75.0 {
		t.Errorf("rates[0] = %+v", rates[0])
	}
	if rates[1].Name != "Weak" || rates[1].SuccessRate != 25.0 {
		t.Errorf("rates[1] = %+v", rates[1])
	}
	if rates[2].Name != "Unused" || rates[2].SuccessRate != 0 {
		t.Errorf("rates[2] = %+v", rates[2])
	}
}

func TestTemplateSuccessRatesStableTies(t *testing.T) {
	f := newFixture()
	f.seedFunnel(t, "First", 2, 0, 0, 1)  // 50.0
	f.seedFunnel(t, "Second", 4, 0, 0, 2) // 50.0

	rates, err := f.svc.TemplateSuccessRates(context.Background())
	if err != nil {
		t.Fatalf("success rates: %v", err)
	}
	if rates[0].Name != "First" || rates[1].Name != "Second" {
		t.Errorf("tie order not stable: %v, %v", rates[0].Name, rates[1].Name)
	}
}

func TestRecentActivitiesMergeAndLimit(t *testing.T) {
	f := newFixture()
	camp := f.seedFunnel(t, "A", 3, 0, 2, 1)
	ctx := context.Background()

	// Feed contents: 1 campaign_created + 2 link_clicked + 1
	// credentials_captured = 4 activities.
	all, err := f.svc.RecentActivities(ctx, 0)
	if err != nil {
		t.Fatalf("activities: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("activities = %d, want 4", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Timestamp.After(all[i-1].Timestamp) {
			t.Errorf("feed not sorted newest first at %d", i)
		}
	}

	limited, err := f.svc.RecentActivities(ctx, 2)
	if err != nil {
		t.Fatalf("activities limit=2: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limited = %d, want 2", len(limited))
	}

	// The capture entry is enriched with campaign, template and user.
	var capture *domain.Activity
	for i := range all {
		if all[i].Type == domain.ActivityCredentialsCaptured {
			capture = &all[i]
			break
		}
	}
	if capture == nil {
		t.Fatalf("no capture activity in feed")
	}
	if capture.Data.Campaign != camp.Name {
		t.Errorf("capture campaign = %q, want %q", capture.Data.Campaign, camp.Name)
	}
	if capture.Data.Template != "A" {
		t.Errorf("capture template = %q, want A", capture.Data.Template)
	}
	if capture.Data.User == "" {
		t.Errorf("capture user not resolved")
	}
}

// Entries whose joins cannot be resolved disappear from the feed;
// campaign_created entries never need a join and always render.
func TestRecentActivitiesDropsUnresolvable(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	camp, err := f.campaigns.Create(ctx, &domain.Campaign{
		Name: "Orphaned", Status: domain.CampaignActive, TemplateID: 1, TargetGroupID: 1,
	})
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}

	// Click whose target user was never created.
	rec, err := f.interactions.Create(ctx, interaction.CreateInput{CampaignID: camp.ID, UserID: 999})
	if err != nil {
		t.Fatalf("create interaction: %v", err)
	}
	if _, err := f.interactions.RecordClick(ctx, rec.ID, time.Now().UTC()); err != nil {
		t.Fatalf("record click: %v", err)
	}

	feed, err := f.svc.RecentActivities(ctx, 0)
	if err != nil {
		t.Fatalf("activities: %v", err)
	}
	if len(feed) != 1 {
		t.Fatalf("feed = %d entries, want 1 (only campaign_created)", len(feed))
	}
	if feed[0].Type != domain.ActivityCampaignCreated {
		t.Errorf("feed[0].Type = %s", feed[0].Type)
	}
}

func TestDashboard(t *testing.T) {
	f := newFixture()
	f.seedFunnel(t, "A", 4, 2, 2, 1)

	d, err := f.svc.GetDashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if d.ActiveCampaignCount != 1 {
		t.Errorf("activeCampaignCount = %d", d.ActiveCampaignCount)
	}
	if d.TemplateCount != 1 {
		t.Errorf("templateCount = %d", d.TemplateCount)
	}
	if d.PhishingSuccessRate != 25.0 {
		t.Errorf("phishingSuccessRate = %v, want 25.0", d.PhishingSuccessRate)
	}
	if d.AwarenessTrainingRate != 0 {
		t.Errorf("awarenessTrainingRate = %v, want 0", d.AwarenessTrainingRate)
	}
	if len(d.MostEffectiveTemplates) != 1 {
		t.Errorf("mostEffectiveTemplates = %d", len(d.MostEffectiveTemplates))
	}
}
