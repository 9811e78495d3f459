package tracking

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/phishguard/internal/domain"
	"github.com/ignite/phishguard/internal/repository/memory"
	"github.com/ignite/phishguard/internal/service/interaction"
)

type fixture struct {
	handler      *Handler
	interactions *interaction.Service
	credentials  *memory.CredentialRepo
	campaigns    *memory.CampaignRepo
	templates    *memory.TemplateRepo
	router       chi.Router
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	interactions := memory.NewInteractionRepo()
	credentials := memory.NewCredentialRepo()
	campaigns := memory.NewCampaignRepo()
	templates := memory.NewTemplateRepo()

	svc := interaction.NewService(interactions, credentials)
	h := NewHandler(svc, campaigns, templates, nil, "/education")

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		h.Register(r)
	})
	r.Get("/education", h.HandleEducation)

	return &fixture{
		handler:      h,
		interactions: svc,
		credentials:  credentials,
		campaigns:    campaigns,
		templates:    templates,
		router:       r,
	}
}

// seedCampaign creates a template, campaign and one interaction,
// returning the interaction ID.
func (f *fixture) seedCampaign(t *testing.T, landingPage string) int64 {
	t.Helper()
	ctx := context.Background()

	tmpl, err := f.templates.Create(ctx, &domain.Template{
		Name:        "Password Reset",
		Subject:     "Action required",
		Body:        "<p>Hello {{name}}</p>",
		LandingPage: landingPage,
	})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	camp, err := f.campaigns.Create(ctx, &domain.Campaign{
		Name:          "Q3 Exercise",
		TemplateID:    tmpl.ID,
		TargetGroupID: 1,
		Status:        domain.CampaignActive,
	})
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}
	rec, err := f.interactions.Create(ctx, interaction.CreateInput{
		CampaignID: camp.ID,
		UserID:     1,
	})
	if err != nil {
		t.Fatalf("create interaction: %v", err)
	}
	return rec.ID
}

func (f *fixture) do(method, target string, body url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(body.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestHandleOpenServesPixel(t *testing.T) {
	f := newFixture(t)
	id := f.seedCampaign(t, "<form></form>")

	w := f.do(http.MethodGet, "/api/track/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/gif" {
		t.Errorf("Content-Type = %q, want image/gif", ct)
	}
	if !bytes.Equal(w.Body.Bytes(), pixelGIF) {
		t.Errorf("body is not the tracking pixel")
	}

	rec, err := f.interactions.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get interaction: %v", err)
	}
	if !rec.EmailOpened || rec.OpenedAt == nil {
		t.Errorf("open not recorded: opened=%v openedAt=%v", rec.EmailOpened, rec.OpenedAt)
	}
}

func TestHandleOpenIdenticalPixelForAnyID(t *testing.T) {
	f := newFixture(t)
	f.seedCampaign(t, "")

	valid := f.do(http.MethodGet, "/api/track/1", nil)
	missing := f.do(http.MethodGet, "/api/track/999999", nil)
	garbage := f.do(http.MethodGet, "/api/track/not-a-number", nil)

	for name, w := range map[string]*httptest.ResponseRecorder{
		"missing": missing, "garbage": garbage,
	} {
		if w.Code != valid.Code {
			t.Errorf("%s: status = %d, want %d", name, w.Code, valid.Code)
		}
		if !bytes.Equal(w.Body.Bytes(), valid.Body.Bytes()) {
			t.Errorf("%s: pixel bytes differ from valid response", name)
		}
		if w.Header().Get("Content-Type") != valid.Header().Get("Content-Type") {
			t.Errorf("%s: Content-Type differs from valid response", name)
		}
	}
}

func TestHandleClickServesLandingPage(t *testing.T) {
	f := newFixture(t)
	id := f.seedCampaign(t, `<form action="{{captureUrl}}" method="post"><a href="{{captureUrl}}">login</a></form>`)

	w := f.do(http.MethodGet, "/api/phish/1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if strings.Contains(body, "{{captureUrl}}") {
		t.Errorf("capture URL token not substituted: %s", body)
	}
	if got, want := strings.Count(body, "/api/capture/1"), 2; got != want {
		t.Errorf("capture URL occurrences = %d, want %d", got, want)
	}

	rec, err := f.interactions.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get interaction: %v", err)
	}
	if !rec.LinkClicked || rec.ClickedAt == nil {
		t.Errorf("click not recorded: clicked=%v clickedAt=%v", rec.LinkClicked, rec.ClickedAt)
	}
}

func TestHandleClickNotFoundChain(t *testing.T) {
	f := newFixture(t)
	f.seedCampaign(t, "") // empty landing page

	// An orphan interaction pointing at a campaign that does not exist.
	orphan, err := f.interactions.Create(context.Background(), interaction.CreateInput{
		CampaignID: 42, UserID: 1,
	})
	if err != nil {
		t.Fatalf("create orphan: %v", err)
	}

	cases := map[string]string{
		"garbage id":          "/api/phish/abc",
		"missing interaction": "/api/phish/999999",
		"empty landing page":  "/api/phish/1",
		"missing campaign":    "/api/phish/" + strconv.FormatInt(orphan.ID, 10),
	}
	for name, target := range cases {
		w := f.do(http.MethodGet, target, nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("%s: status = %d, want 404", name, w.Code)
		}
		if got := w.Body.String(); got != "Page not found" {
			t.Errorf("%s: body = %q, want %q", name, got, "Page not found")
		}
	}
}

func TestHandleCaptureRecordsAndRedirects(t *testing.T) {
	f := newFixture(t)
	id := f.seedCampaign(t, "<form></form>")

	form := url.Values{"username": {"jane@corp.example"}, "password": {"hunter2"}}
	w := f.do(http.MethodPost, "/api/capture/1", form)
	if w.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/education" {
		t.Errorf("Location = %q, want /education", loc)
	}

	rec, err := f.interactions.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get interaction: %v", err)
	}
	if !rec.CredentialsEntered || rec.CredentialsEnteredAt == nil {
		t.Errorf("capture not flagged on interaction")
	}
	cred, err := f.interactions.CredentialsFor(context.Background(), id)
	if err != nil {
		t.Fatalf("credentials for: %v", err)
	}
	if cred.Username != "jane@corp.example" || cred.Password != "hunter2" {
		t.Errorf("stored credential = %q/%q", cred.Username, cred.Password)
	}
	if cred.CapturedAt.IsZero() {
		t.Errorf("captured at not stamped")
	}
}

func TestHandleCaptureAlwaysRedirects(t *testing.T) {
	f := newFixture(t)

	for _, target := range []string{"/api/capture/999999", "/api/capture/nope"} {
		w := f.do(http.MethodPost, target, url.Values{"username": {"x"}, "password": {"y"}})
		if w.Code != http.StatusFound {
			t.Errorf("%s: status = %d, want 302", target, w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "/education" {
			t.Errorf("%s: Location = %q, want /education", target, loc)
		}
	}

	creds, err := f.credentials.List(context.Background())
	if err != nil {
		t.Fatalf("list credentials: %v", err)
	}
	if len(creds) != 0 {
		t.Errorf("credentials recorded for unknown interactions: %d", len(creds))
	}
}

func TestHandleEducation(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/education", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "phishing simulation") {
		t.Errorf("education page missing expected content")
	}
}

func TestRepeatedOpenUpdatesTimestamp(t *testing.T) {
	f := newFixture(t)
	id := f.seedCampaign(t, "")
	ctx := context.Background()

	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(2 * time.Hour)

	if _, err := f.interactions.RecordOpen(ctx, id, first); err != nil {
		t.Fatalf("first open: %v", err)
	}
	rec, err := f.interactions.RecordOpen(ctx, id, second)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	if rec.OpenedAt == nil || !rec.OpenedAt.Equal(second) {
		t.Errorf("openedAt = %v, want %v", rec.OpenedAt, second)
	}
	if !rec.EmailOpened {
		t.Errorf("emailOpened cleared by repeat open")
	}
}
