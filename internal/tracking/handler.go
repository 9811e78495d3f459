package tracking

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/phishguard/internal/domain"
	"github.com/ignite/phishguard/internal/pkg/logger"
	"github.com/ignite/phishguard/internal/service/interaction"
)

// pixelGIF is a 1x1 transparent GIF. Every open-tracking request gets
// exactly these bytes so the response is indistinguishable whether or
// not the interaction exists.
var pixelGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00, 0x80, 0x00,
	0x00, 0xff, 0xff, 0xff, 0x00, 0x00, 0x00, 0x2c, 0x00, 0x00, 0x00, 0x00,
	0x01, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x44, 0x01, 0x00, 0x3b,
}

// CampaignSource resolves the campaign an interaction belongs to.
type CampaignSource interface {
	Get(ctx context.Context, id int64) (*domain.Campaign, error)
}

// TemplateSource resolves the template carrying the landing page.
type TemplateSource interface {
	Get(ctx context.Context, id int64) (*domain.Template, error)
}

// Handler serves the recipient-facing simulation endpoints: the open
// pixel, the phishing landing page, credential capture and the
// education page shown afterwards.
type Handler struct {
	interactions  *interaction.Service
	campaigns     CampaignSource
	templates     TemplateSource
	publisher     *Publisher
	educationPath string
}

func NewHandler(interactions *interaction.Service, campaigns CampaignSource, templates TemplateSource, publisher *Publisher, educationPath string) *Handler {
	if educationPath == "" {
		educationPath = "/education"
	}
	return &Handler{
		interactions:  interactions,
		campaigns:     campaigns,
		templates:     templates,
		publisher:     publisher,
		educationPath: educationPath,
	}
}

// Register attaches the simulation endpoints to r. The caller mounts
// these outside any auth middleware; recipients hit them anonymously.
func (h *Handler) Register(r chi.Router) {
	r.Get("/track/{interactionID}", h.HandleOpen)
	r.Get("/phish/{interactionID}", h.HandleClick)
	r.Post("/capture/{interactionID}", h.HandleCapture)
}

// HandleOpen records an email open and serves the tracking pixel. The
// pixel is returned no matter what: a malformed ID, an unknown
// interaction or a storage failure must not leak anything to the
// mail client fetching the image.
func (h *Handler) HandleOpen(w http.ResponseWriter, r *http.Request) {
	id, err := parseInteractionID(r)
	if err != nil {
		servePixel(w)
		return
	}

	if _, err := h.interactions.RecordOpen(r.Context(), id, time.Now().UTC()); err != nil {
		logger.Debug("tracking: open not recorded", "interaction_id", id, "error", err)
		servePixel(w)
		return
	}

	h.publisher.Publish(Event{
		Type:          EventOpened,
		InteractionID: id,
		IPAddress:     realIP(r),
		UserAgent:     r.UserAgent(),
	})
	servePixel(w)
}

// HandleClick records a link click and serves the campaign template's
// landing page with the capture URL substituted in. Any gap in the
// chain (bad ID, missing interaction, campaign, template or landing
// page) yields a plain 404 so the URL reveals nothing when probed.
func (h *Handler) HandleClick(w http.ResponseWriter, r *http.Request) {
	id, err := parseInteractionID(r)
	if err != nil {
		serveNotFound(w)
		return
	}

	rec, err := h.interactions.RecordClick(r.Context(), id, time.Now().UTC())
	if err != nil {
		serveNotFound(w)
		return
	}

	camp, err := h.campaigns.Get(r.Context(), rec.CampaignID)
	if err != nil {
		serveNotFound(w)
		return
	}
	tmpl, err := h.templates.Get(r.Context(), camp.TemplateID)
	if err != nil || tmpl.LandingPage == "" {
		serveNotFound(w)
		return
	}

	h.publisher.Publish(Event{
		Type:          EventClicked,
		InteractionID: id,
		IPAddress:     realIP(r),
		UserAgent:     r.UserAgent(),
	})

	captureURL := fmt.Sprintf("/api/capture/%d", id)
	page := strings.ReplaceAll(tmpl.LandingPage, "{{captureUrl}}", captureURL)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(page))
}

// HandleCapture stores submitted credentials and redirects to the
// education page. The redirect happens unconditionally so the form
// behaves identically whether or not the submission was recorded.
func (h *Handler) HandleCapture(w http.ResponseWriter, r *http.Request) {
	id, err := parseInteractionID(r)
	if err != nil {
		http.Redirect(w, r, h.educationPath, http.StatusFound)
		return
	}

	if err := r.ParseForm(); err == nil {
		username := r.FormValue("username")
		password := r.FormValue("password")
		if _, err := h.interactions.CaptureCredentials(r.Context(), id, username, password, time.Now().UTC()); err != nil {
			logger.Debug("tracking: capture not recorded", "interaction_id", id, "error", err)
		} else {
			h.publisher.Publish(Event{
				Type:          EventCredentialsCaptured,
				InteractionID: id,
				IPAddress:     realIP(r),
				UserAgent:     r.UserAgent(),
			})
		}
	}

	http.Redirect(w, r, h.educationPath, http.StatusFound)
}

// HandleEducation serves the awareness page recipients land on after
// a simulated capture.
func (h *Handler) HandleEducation(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(educationPage))
}

func parseInteractionID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "interactionID")
	return strconv.ParseInt(raw, 10, 64)
}

func servePixel(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "image/gif")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
	w.WriteHeader(http.StatusOK)
	w.Write(pixelGIF)
}

func serveNotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte("Page not found"))
}

// realIP prefers proxy headers so events carry the recipient's
// address rather than the load balancer's.
func realIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if i := strings.IndexByte(xff, ','); i >= 0 {
			return strings.TrimSpace(xff[:i])
		}
		return strings.TrimSpace(xff)
	}
	if rip := r.Header.Get("X-Real-IP"); rip != "" {
		return rip
	}
	host := r.RemoteAddr
	if i := strings.LastIndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	return host
}
