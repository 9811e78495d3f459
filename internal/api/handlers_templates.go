package api

import (
	"errors"
	"net/http"

	"github.com/ignite/phishguard/internal/pkg/httputil"
	"github.com/ignite/phishguard/internal/service/template"
)

func (h *Handlers) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templates.List(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, templates)
}

func (h *Handlers) GetTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "templateID")
	if !ok {
		httputil.BadRequest(w, "invalid template id")
		return
	}
	tmpl, err := h.templates.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, template.ErrNotFound) {
			httputil.NotFound(w, "template not found")
			return
		}
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, tmpl)
}

func (h *Handlers) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var input template.CreateInput
	if !httputil.Decode(w, r, &input) {
		return
	}
	if claims, ok := authClaims(r); ok {
		input.CreatedBy = claims.UserID
	}

	created, err := h.templates.Create(r.Context(), input)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	httputil.Created(w, created)
}

func (h *Handlers) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "templateID")
	if !ok {
		httputil.BadRequest(w, "invalid template id")
		return
	}
	var fields template.UpdateFields
	if !httputil.Decode(w, r, &fields) {
		return
	}

	updated, err := h.templates.Update(r.Context(), id, fields)
	if err != nil {
		if errors.Is(err, template.ErrNotFound) {
			httputil.NotFound(w, "template not found")
			return
		}
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, updated)
}

func (h *Handlers) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "templateID")
	if !ok {
		httputil.BadRequest(w, "invalid template id")
		return
	}
	if err := h.templates.Delete(r.Context(), id); err != nil {
		if errors.Is(err, template.ErrNotFound) {
			httputil.NotFound(w, "template not found")
			return
		}
		httputil.InternalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetTemplateSuccessRates ranks templates by click-through rate.
func (h *Handlers) GetTemplateSuccessRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.stats.TemplateSuccessRates(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, rates)
}
