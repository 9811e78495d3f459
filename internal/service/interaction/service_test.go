package interaction_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ignite/phishguard/internal/domain"
	"github.com/ignite/phishguard/internal/repository/memory"
	"github.com/ignite/phishguard/internal/service/interaction"
)

func newTestService() (*interaction.Service, *memory.CredentialRepo) {
	creds := memory.NewCredentialRepo()
	return interaction.NewService(memory.NewInteractionRepo(), creds), creds
}

func TestCreateDefaults(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	rec, err := svc.Create(ctx, interaction.CreateInput{CampaignID: 1, UserID: 2})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !rec.EmailSent {
		t.Errorf("emailSent = false, want true from birth")
	}
	if rec.SentAt == nil {
		t.Errorf("sentAt not defaulted")
	}
	if rec.EmailOpened || rec.LinkClicked || rec.CredentialsEntered || rec.TrainingCompleted {
		t.Errorf("later stages set on a fresh interaction: %+v", rec)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, interaction.CreateInput{UserID: 2}); !errors.Is(err, interaction.ErrInvalidInput) {
		t.Errorf("missing campaign: err = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.Create(ctx, interaction.CreateInput{CampaignID: 1}); !errors.Is(err, interaction.ErrInvalidInput) {
		t.Errorf("missing user: err = %v, want ErrInvalidInput", err)
	}
}

// Funnel stages are independent: a click can land with no open on
// record (blocked pixel), and neither flag implies the other.
func TestStagesAreIndependent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	rec, err := svc.Create(ctx, interaction.CreateInput{CampaignID: 1, UserID: 2})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	clicked, err := svc.RecordClick(ctx, rec.ID, time.Now().UTC())
	if err != nil {
		t.Fatalf("record click: %v", err)
	}
	if !clicked.LinkClicked {
		t.Errorf("linkClicked not set")
	}
	if clicked.EmailOpened {
		t.Errorf("click must not imply open")
	}
	if clicked.OpenedAt != nil {
		t.Errorf("openedAt set without an open event")
	}
}

func TestLastWriteWinsTimestamps(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	rec, _ := svc.Create(ctx, interaction.CreateInput{CampaignID: 1, UserID: 2})

	first := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	second := first.Add(90 * time.Minute)

	if _, err := svc.RecordOpen(ctx, rec.ID, first); err != nil {
		t.Fatalf("first open: %v", err)
	}
	got, err := svc.RecordOpen(ctx, rec.ID, second)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	if got.OpenedAt == nil || !got.OpenedAt.Equal(second) {
		t.Errorf("openedAt = %v, want %v", got.OpenedAt, second)
	}
}

// A capture does three things at once: sets the flag, stamps the
// timestamp and appends exactly one record to the credential log.
func TestCaptureCredentials(t *testing.T) {
	svc, creds := newTestService()
	ctx := context.Background()

	rec, _ := svc.Create(ctx, interaction.CreateInput{CampaignID: 1, UserID: 2})
	at := time.Date(2026, 5, 2, 14, 30, 0, 0, time.UTC)

	cred, err := svc.CaptureCredentials(ctx, rec.ID, "pat@corp.example", "hunter2", at)
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if cred.Username != "pat@corp.example" || cred.Password != "hunter2" {
		t.Errorf("stored credential = %q/%q", cred.Username, cred.Password)
	}

	got, err := svc.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.CredentialsEntered {
		t.Errorf("credentialsEntered not set")
	}
	if got.CredentialsEnteredAt == nil || !got.CredentialsEnteredAt.Equal(at) {
		t.Errorf("credentialsEnteredAt = %v, want %v", got.CredentialsEnteredAt, at)
	}

	all, err := creds.List(ctx)
	if err != nil {
		t.Fatalf("list credentials: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("credential log size = %d, want 1", len(all))
	}
}

func TestCaptureUnknownInteraction(t *testing.T) {
	svc, creds := newTestService()
	ctx := context.Background()

	_, err := svc.CaptureCredentials(ctx, 999999, "x", "y", time.Now().UTC())
	if !errors.Is(err, interaction.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	all, _ := creds.List(ctx)
	if len(all) != 0 {
		t.Errorf("credential recorded for unknown interaction")
	}
}

// The campaign reference on an interaction is loose: nothing stops a
// send from being logged against a campaign id that no longer exists.
func TestLooseCampaignReference(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	rec, err := svc.Create(ctx, interaction.CreateInput{CampaignID: 424242, UserID: 7})
	if err != nil {
		t.Fatalf("create with dangling campaign id: %v", err)
	}
	if rec.CampaignID != 424242 {
		t.Errorf("campaignID = %d", rec.CampaignID)
	}
}

func TestPatchNeverClearsFlags(t *testing.T) {
	rec := &domain.Interaction{EmailOpened: true, LinkClicked: true}
	at := time.Now().UTC()

	p := domain.InteractionPatch{TrainingCompleted: &at}
	p.ApplyTo(rec)

	if !rec.EmailOpened || !rec.LinkClicked {
		t.Errorf("earlier flags cleared by an unrelated patch")
	}
	if !rec.TrainingCompleted {
		t.Errorf("trainingCompleted not set")
	}
}
