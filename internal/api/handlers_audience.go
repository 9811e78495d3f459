package api

import (
	"errors"
	"net/http"

	"github.com/ignite/phishguard/internal/pkg/httputil"
	"github.com/ignite/phishguard/internal/service/audience"
)

func (h *Handlers) ListTargetGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.audience.ListGroups(r.Context())
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, groups)
}

func (h *Handlers) GetTargetGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "groupID")
	if !ok {
		httputil.BadRequest(w, "invalid group id")
		return
	}
	group, err := h.audience.GetGroup(r.Context(), id)
	if err != nil {
		if errors.Is(err, audience.ErrGroupNotFound) {
			httputil.NotFound(w, "target group not found")
			return
		}
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, group)
}

func (h *Handlers) CreateTargetGroup(w http.ResponseWriter, r *http.Request) {
	var input audience.GroupCreateInput
	if !httputil.Decode(w, r, &input) {
		return
	}
	if claims, ok := authClaims(r); ok {
		input.CreatedBy = claims.UserID
	}

	created, err := h.audience.CreateGroup(r.Context(), input)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	httputil.Created(w, created)
}

func (h *Handlers) UpdateTargetGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "groupID")
	if !ok {
		httputil.BadRequest(w, "invalid group id")
		return
	}
	var fields audience.GroupUpdateFields
	if !httputil.Decode(w, r, &fields) {
		return
	}

	updated, err := h.audience.UpdateGroup(r.Context(), id, fields)
	if err != nil {
		if errors.Is(err, audience.ErrGroupNotFound) {
			httputil.NotFound(w, "target group not found")
			return
		}
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, updated)
}

func (h *Handlers) DeleteTargetGroup(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "groupID")
	if !ok {
		httputil.BadRequest(w, "invalid group id")
		return
	}
	if err := h.audience.DeleteGroup(r.Context(), id); err != nil {
		if errors.Is(err, audience.ErrGroupNotFound) {
			httputil.NotFound(w, "target group not found")
			return
		}
		httputil.InternalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListGroupUsers(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "groupID")
	if !ok {
		httputil.BadRequest(w, "invalid group id")
		return
	}
	users, err := h.audience.UsersInGroup(r.Context(), id)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, users)
}

func (h *Handlers) GetTargetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "userID")
	if !ok {
		httputil.BadRequest(w, "invalid user id")
		return
	}
	user, err := h.audience.GetUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, audience.ErrUserNotFound) {
			httputil.NotFound(w, "target user not found")
			return
		}
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, user)
}

func (h *Handlers) CreateTargetUser(w http.ResponseWriter, r *http.Request) {
	var input audience.UserCreateInput
	if !httputil.Decode(w, r, &input) {
		return
	}

	created, err := h.audience.CreateUser(r.Context(), input)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	httputil.Created(w, created)
}

func (h *Handlers) UpdateTargetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "userID")
	if !ok {
		httputil.BadRequest(w, "invalid user id")
		return
	}
	var fields audience.UserUpdateFields
	if !httputil.Decode(w, r, &fields) {
		return
	}

	updated, err := h.audience.UpdateUser(r.Context(), id, fields)
	if err != nil {
		if errors.Is(err, audience.ErrUserNotFound) {
			httputil.NotFound(w, "target user not found")
			return
		}
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, updated)
}

func (h *Handlers) DeleteTargetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r, "userID")
	if !ok {
		httputil.BadRequest(w, "invalid user id")
		return
	}
	if err := h.audience.DeleteUser(r.Context(), id); err != nil {
		if errors.Is(err, audience.ErrUserNotFound) {
			httputil.NotFound(w, "target user not found")
			return
		}
		httputil.InternalError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
