package api

import (
	"net/http"
	"strconv"

	"github.com/ignite/phishguard/internal/pkg/httputil"
	"github.com/ignite/phishguard/internal/service/stats"
)

func (h *Handlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.stats.GetDashboard(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, dashboard)
}

func (h *Handlers) GetCampaignPerformance(w http.ResponseWriter, r *http.Request) {
	perf, err := h.stats.CampaignPerformance(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, perf)
}

// GetRecentActivities returns the merged activity feed. The optional
// limit query parameter caps the number of entries; invalid or missing
// values fall back to the default.
func (h *Handlers) GetRecentActivities(w http.ResponseWriter, r *http.Request) {
	limit := stats.DefaultActivityLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	activities, err := h.stats.RecentActivities(r.Context(), limit)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, activities)
}

// ListCapturedCredentials exposes the capture log to admins for
// post-exercise review.
func (h *Handlers) ListCapturedCredentials(w http.ResponseWriter, r *http.Request) {
	creds, err := h.interactions.Credentials(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, creds)
}
