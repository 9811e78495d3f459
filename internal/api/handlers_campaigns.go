package api

import (
	"errors"
	"net/http"

	"github.com/ignite/phishguard/internal/domain"
	"github.com/ignite/phishguard/internal/pkg/httputil"
	"github.com/ignite/phishguard/internal/pkg/logger"
	"github.com/ignite/phishguard/internal/service/audience"
	"github.com/ignite/phishguard/internal/service/campaign"
	"github.com/ignite/phishguard/internal/service/template"
)

// campaignDetail is the enriched GET response: the campaign plus its
// funnel statistics and resolved template and target group. Template
// or group may be null if they were deleted after the campaign ran.
type campaignDetail struct {
	domain.Campaign
	Stats       *domain.CampaignStatistics `json:"stats"`
	Template    *domain.Template           `json:"template"`
	TargetGroup *domain.TargetGroup        `json:"targetGroup"`
}

func (h *Handlers) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.campaigns.List(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, campaigns)
}

func (h *Handlers) GetCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "campaignID")
	if !ok {
		httputil.BadRequest(w, "invalid campaign id")
		return
	}

	camp, err := h.campaigns.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, campaign.ErrNotFound) {
			httputil.NotFound(w, "campaign not found")
			return
		}
		httputil.InternalError(w, err)
		return
	}

	detail := campaignDetail{Campaign: *camp}

	if stats, err := h.stats.CampaignStatistics(r.Context(), id); err == nil {
		detail.Stats = stats
	}
	if tmpl, err := h.templates.Get(r.Context(), camp.TemplateID); err == nil {
		detail.Template = tmpl
	} else if !errors.Is(err, template.ErrNotFound) {
		httputil.InternalError(w, err)
		return
	}
	if group, err := h.audience.GetGroup(r.Context(), camp.TargetGroupID); err == nil {
		detail.TargetGroup = group
	} else if !errors.Is(err, audience.ErrGroupNotFound) {
		httputil.InternalError(w, err)
		return
	}

	httputil.OK(w, detail)
}

func (h *Handlers) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var input campaign.CreateInput
	if !httputil.Decode(w, r, &input) {
		return
	}
	if claims, ok := authClaims(r); ok {
		input.CreatedBy = claims.UserID
	}

	created, err := h.campaigns.Create(r.Context(), input)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	logger.Info("campaign created", "campaign_id", created.ID, "name", created.Name)
	httputil.Created(w, created)
}

func (h *Handlers) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "campaignID")
	if !ok {
		httputil.BadRequest(w, "invalid campaign id")
		return
	}
	var fields campaign.UpdateFields
	if !httputil.Decode(w, r, &fields) {
		return
	}

	updated, err := h.campaigns.Update(r.Context(), id, fields)
	if err != nil {
		if errors.Is(err, campaign.ErrNotFound) {
			httputil.NotFound(w, "campaign not found")
			return
		}
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, updated)
}

func (h *Handlers) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "campaignID")
	if !ok {
		httputil.BadRequest(w, "invalid campaign id")
		return
	}
	if err := h.campaigns.Delete(r.Context(), id); err != nil {
		if errors.Is(err, campaign.ErrNotFound) {
			httputil.NotFound(w, "campaign not found")
			return
		}
		httputil.InternalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// LaunchCampaign fans the campaign out to its target group. Partial
// delivery failure still returns 200; the result carries the counts.
func (h *Handlers) LaunchCampaign(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "campaignID")
	if !ok {
		httputil.BadRequest(w, "invalid campaign id")
		return
	}

	result, err := h.campaigns.Launch(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, campaign.ErrNotFound):
			httputil.NotFound(w, "campaign not found")
		case errors.Is(err, campaign.ErrNoTemplate),
			errors.Is(err, campaign.ErrNoTargetGroup),
			errors.Is(err, campaign.ErrEmptyGroup):
			httputil.BadRequest(w, err.Error())
		default:
			httputil.InternalError(w, err)
		}
		return
	}

	logger.Info("campaign launched", "campaign_id", id,
		"recipients", result.Recipients, "sent", result.Sent, "failed", result.Failed)
	httputil.OK(w, result)
}

func (h *Handlers) ListCampaignInteractions(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "campaignID")
	if !ok {
		httputil.BadRequest(w, "invalid campaign id")
		return
	}
	interactions, err := h.interactions.ListByCampaign(r.Context(), id)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, interactions)
}

func (h *Handlers) GetCampaignStats(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "campaignID")
	if !ok {
		httputil.BadRequest(w, "invalid campaign id")
		return
	}
	stats, err := h.stats.CampaignStatistics(r.Context(), id)
	if err != nil {
		if errors.Is(err, campaign.ErrNotFound) {
			httputil.NotFound(w, "campaign not found")
			return
		}
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, stats)
}
