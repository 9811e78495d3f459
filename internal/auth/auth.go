// Package auth implements admin authentication: username/password login
// issuing short-lived JWT bearer tokens, and the middleware guarding the
// admin API. Tracking endpoints are deliberately outside its reach;
// recipients must stay anonymous until they act.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignite/phishguard/internal/domain"
	"github.com/ignite/phishguard/internal/pkg/httputil"
	"github.com/ignite/phishguard/internal/pkg/logger"
)

// Sentinel errors for the auth layer.
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("admin user not found")
)

// AdminRepository defines the data access contract for admin users.
type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.AdminUser, error)
	Create(ctx context.Context, u *domain.AdminUser) (*domain.AdminUser, error)
	Count(ctx context.Context) (int, error)
}

// Claims are the JWT claims carried by an admin session token.
type Claims struct {
	UserID   int64  `json:"uid"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues and verifies admin session tokens.
type Manager struct {
	repo   AdminRepository
	secret []byte
	ttl    time.Duration
}

// NewManager creates an auth manager. secret must be non-empty in any
// non-test deployment.
func NewManager(repo AdminRepository, secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	return &Manager{repo: repo, secret: []byte(secret), ttl: ttl}
}

// Bootstrap creates the initial admin account when the admin table is
// empty. Safe to call on every startup.
func (m *Manager) Bootstrap(ctx context.Context, username, password, fullName string) error {
	n, err := m.repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if n > 0 || password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}
	_, err = m.repo.Create(ctx, &domain.AdminUser{
		Username:     username,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         "admin",
	})
	if err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}
	logger.Info("bootstrap admin created", "username", username)
	return nil
}

// Login verifies the credentials and returns a signed session token.
// Unknown users and wrong passwords are indistinguishable to the caller.
func (m *Manager) Login(ctx context.Context, username, password string) (string, *domain.AdminUser, error) {
	u, err := m.repo.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	claims := Claims{
		UserID:   u.ID,
		Username: u.Username,
		Role:     u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, u, nil
}

// Verify parses and validates a bearer token string.
func (m *Manager) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}

type contextKey struct{}

// Middleware rejects requests without a valid Bearer token and stores the
// claims in the request context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			httputil.Unauthorized(w, "authentication required")
			return
		}
		claims, err := m.Verify(token)
		if err != nil {
			httputil.Unauthorized(w, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), contextKey{}, claims)))
	})
}

// FromContext returns the admin claims stored by Middleware.
func FromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(contextKey{}).(*Claims)
	return c, ok
}
