package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/phishguard/internal/auth"
	"github.com/ignite/phishguard/internal/pkg/httputil"
	"github.com/ignite/phishguard/internal/service/audience"
	"github.com/ignite/phishguard/internal/service/campaign"
	"github.com/ignite/phishguard/internal/service/interaction"
	"github.com/ignite/phishguard/internal/service/stats"
	"github.com/ignite/phishguard/internal/service/template"
)

// Handlers bundles the admin API endpoints and their service
// dependencies.
type Handlers struct {
	campaigns    *campaign.Service
	templates    *template.Service
	audience     *audience.Service
	interactions *interaction.Service
	stats        *stats.Service
	auth         *auth.Manager
}

func NewHandlers(
	campaigns *campaign.Service,
	templates *template.Service,
	aud *audience.Service,
	interactions *interaction.Service,
	statsSvc *stats.Service,
	authManager *auth.Manager,
) *Handlers {
	return &Handlers{
		campaigns:    campaigns,
		templates:    templates,
		audience:     aud,
		interactions: interactions,
		stats:        statsSvc,
		auth:         authManager,
	}
}

// HealthCheck reports liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]string{"status": "ok"})
}

// authClaims pulls the authenticated admin's claims off the request.
func authClaims(r *http.Request) (*auth.Claims, bool) {
	return auth.FromContext(r.Context())
}

// urlID parses a numeric URL parameter. The second return is false if
// the parameter is missing or not a number; callers respond 400.
func urlID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
