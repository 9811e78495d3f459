package api

import (
	"errors"
	"net/http"

	"github.com/ignite/phishguard/internal/auth"
	"github.com/ignite/phishguard/internal/pkg/httputil"
	"github.com/ignite/phishguard/internal/pkg/logger"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// HandleLogin exchanges admin credentials for a bearer token.
func (h *Handlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	if req.Username == "" || req.Password == "" {
		httputil.BadRequest(w, "username and password are required")
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			httputil.Unauthorized(w, "invalid username or password")
			return
		}
		httputil.InternalError(w, err)
		return
	}

	logger.Info("admin login", "username", user.Username)
	httputil.OK(w, loginResponse{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Role:     user.Role,
	})
}

// HandleMe returns the authenticated admin's identity from the token.
func (h *Handlers) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		httputil.Unauthorized(w, "not authenticated")
		return
	}
	httputil.OK(w, map[string]interface{}{
		"userId":   claims.UserID,
		"username": claims.Username,
		"role":     claims.Role,
	})
}
