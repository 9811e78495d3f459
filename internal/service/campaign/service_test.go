package campaign_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ignite/phishguard/internal/domain"
	"github.com/ignite/phishguard/internal/mailer"
	"github.com/ignite/phishguard/internal/repository/memory"
	"github.com/ignite/phishguard/internal/service/audience"
	"github.com/ignite/phishguard/internal/service/campaign"
	"github.com/ignite/phishguard/internal/service/interaction"
)

// recordingMailer captures outbound messages; failTo makes delivery to
// one address fail.
type recordingMailer struct {
	sent   []mailer.Message
	failTo string
}

func (m *recordingMailer) Send(_ context.Context, msg mailer.Message) error {
	if m.failTo != "" && msg.To == m.failTo {
		return errors.New("smtp: mailbox unavailable")
	}
	m.sent = append(m.sent, msg)
	return nil
}

type fixture struct {
	svc          *campaign.Service
	campaigns    *memory.CampaignRepo
	templates    *memory.TemplateRepo
	groups       *memory.GroupRepo
	users        *memory.TargetUserRepo
	interactions *interaction.Service
	mail         *recordingMailer
}

func newFixture() *fixture {
	campaigns := memory.NewCampaignRepo()
	templates := memory.NewTemplateRepo()
	groups := memory.NewGroupRepo()
	users := memory.NewTargetUserRepo()
	interactions := interaction.NewService(memory.NewInteractionRepo(), memory.NewCredentialRepo())
	audienceSvc := audience.NewService(groups, users)
	mail := &recordingMailer{}

	svc := campaign.NewService(campaigns, templates, audienceSvc, interactions, mail, "http://phish.test")
	return &fixture{
		svc:          svc,
		campaigns:    campaigns,
		templates:    templates,
		groups:       groups,
		users:        users,
		interactions: interactions,
		mail:         mail,
	}
}

func (f *fixture) seed(t *testing.T, recipients ...string) *domain.Campaign {
	t.Helper()
	ctx := context.Background()

	tmpl, err := f.templates.Create(ctx, &domain.Template{
		Name:      "IT Notice",
		Subject:   "Password expires today",
		Body:      `<p>Hi {{name}}, reset <a href="{{phishingUrl}}">here</a>.</p><img src="{{trackingPixel}}">`,
		FromName:  "IT Support",
		FromEmail: "it@corp.example",
	})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	group, err := f.groups.Create(ctx, &domain.TargetGroup{Name: "Finance"})
	if err != nil {
		t.Fatalf("create group: %v", err)
	}
	for i, email := range recipients {
		_, err := f.users.Create(ctx, &domain.TargetUser{
			GroupID: group.ID,
			Name:    strings.Split(email, "@")[0],
			Email:   email,
		})
		if err != nil {
			t.Fatalf("create user %d: %v", i, err)
		}
	}
	camp, err := f.campaigns.Create(ctx, &domain.Campaign{
		Name:          "Q3 Exercise",
		Status:        domain.CampaignDraft,
		TemplateID:    tmpl.ID,
		TargetGroupID: group.ID,
	})
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}
	return camp
}

func TestLaunchFansOutToGroup(t *testing.T) {
	f := newFixture()
	camp := f.seed(t, "a@corp.example", "b@corp.example", "c@corp.example")
	ctx := context.Background()

	res, err := f.svc.Launch(ctx, camp.ID)
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	if res.Recipients != 3 || res.Sent != 3 || res.Failed != 0 {
		t.Errorf("result = %+v", res)
	}

	recs, err := f.interactions.ListByCampaign(ctx, camp.ID)
	if err != nil {
		t.Fatalf("list interactions: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("interactions = %d, want 3", len(recs))
	}
	for _, rec := range recs {
		if !rec.EmailSent || rec.SentAt == nil {
			t.Errorf("interaction %d not marked sent", rec.ID)
		}
	}

	if len(f.mail.sent) != 3 {
		t.Fatalf("mails sent = %d, want 3", len(f.mail.sent))
	}
	first := f.mail.sent[0]
	if first.Subject != "Password expires today" {
		t.Errorf("subject = %q", first.Subject)
	}
	if !strings.Contains(first.HTMLBody, "Hi a,") {
		t.Errorf("recipient name not rendered: %s", first.HTMLBody)
	}
	if !strings.Contains(first.HTMLBody, "http://phish.test/api/phish/") {
		t.Errorf("phishing link missing: %s", first.HTMLBody)
	}
	if !strings.Contains(first.HTMLBody, "http://phish.test/api/track/") {
		t.Errorf("tracking pixel missing: %s", first.HTMLBody)
	}
	if strings.Contains(first.HTMLBody, "{{") {
		t.Errorf("unrendered placeholder remains: %s", first.HTMLBody)
	}

	got, _ := f.campaigns.Get(ctx, camp.ID)
	if got.Status != domain.CampaignActive {
		t.Errorf("status = %s, want active", got.Status)
	}
	if got.StartDate == nil {
		t.Errorf("startDate not stamped on launch")
	}
}

// Delivery failure for one recipient must not roll back their
// interaction or stop the rest of the fan-out.
func TestLaunchPartialFailure(t *testing.T) {
	f := newFixture()
	camp := f.seed(t, "ok@corp.example", "bounce@corp.example")
	f.mail.failTo = "bounce@corp.example"
	ctx := context.Background()

	res, err := f.svc.Launch(ctx, camp.ID)
	if err != nil {
		t.Fatalf("launch: %v", err)
	}
	if res.Recipients != 2 || res.Sent != 1 || res.Failed != 1 {
		t.Errorf("result = %+v", res)
	}

	recs, _ := f.interactions.ListByCampaign(ctx, camp.ID)
	if len(recs) != 2 {
		t.Errorf("interactions = %d, want 2 (failed delivery keeps its record)", len(recs))
	}
}

func TestLaunchValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.svc.Launch(ctx, 999); !errors.Is(err, campaign.ErrNotFound) {
		t.Errorf("unknown campaign: err = %v", err)
	}

	// Campaign pointing at a missing template.
	group, _ := f.groups.Create(ctx, &domain.TargetGroup{Name: "G"})
	camp, _ := f.campaigns.Create(ctx, &domain.Campaign{
		Name: "Broken", Status: domain.CampaignDraft,
		TemplateID: 42, TargetGroupID: group.ID,
	})
	if _, err := f.svc.Launch(ctx, camp.ID); !errors.Is(err, campaign.ErrNoTemplate) {
		t.Errorf("missing template: err = %v", err)
	}

	// Valid template, empty group.
	tmpl, _ := f.templates.Create(ctx, &domain.Template{Name: "T", Subject: "s", Body: "b"})
	camp2, _ := f.campaigns.Create(ctx, &domain.Campaign{
		Name: "Empty", Status: domain.CampaignDraft,
		TemplateID: tmpl.ID, TargetGroupID: group.ID,
	})
	if _, err := f.svc.Launch(ctx, camp2.ID); !errors.Is(err, campaign.ErrEmptyGroup) {
		t.Errorf("empty group: err = %v", err)
	}
}

func TestCreateRequiresReferences(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, campaign.CreateInput{Name: "X", TargetGroupID: 1}); err == nil {
		t.Errorf("missing template_id accepted")
	}
	if _, err := f.svc.Create(ctx, campaign.CreateInput{Name: "X", TemplateID: 1}); err == nil {
		t.Errorf("missing target_group_id accepted")
	}

	// References are not validated for existence, only presence.
	camp, err := f.svc.Create(ctx, campaign.CreateInput{
		Name: "Dangling", TemplateID: 77, TargetGroupID: 88,
	})
	if err != nil {
		t.Fatalf("create with dangling refs: %v", err)
	}
	if camp.Status != domain.CampaignDraft {
		t.Errorf("default status = %s, want draft", camp.Status)
	}
}

// Deleting a campaign leaves its interaction log behind.
func TestDeleteKeepsInteractions(t *testing.T) {
	f := newFixture()
	camp := f.seed(t, "a@corp.example")
	ctx := context.Background()

	if _, err := f.svc.Launch(ctx, camp.ID); err != nil {
		t.Fatalf("launch: %v", err)
	}
	if err := f.svc.Delete(ctx, camp.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	recs, err := f.interactions.ListByCampaign(ctx, camp.ID)
	if err != nil {
		t.Fatalf("list interactions: %v", err)
	}
	if len(recs) != 1 {
		t.Errorf("interactions after delete = %d, want 1", len(recs))
	}
}
