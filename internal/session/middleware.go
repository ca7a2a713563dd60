package session

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/employee-directory/internal/config"
	apperrors "github.com/spec-kit/employee-directory/pkg/util"
)

const (
	workspaceKey = "session_workspace"
	// IDKey holds the session id for request logging.
	IDKey = "session_id"
)

var errNoSession = errors.New("session: no workspace on request")

// Middleware resolves the session cookie to a workspace, creating one for
// new or expired browsers.
type Middleware struct {
	registry *Registry
	cfg      config.SessionConfig
}

// NewMiddleware constructs middleware.
func NewMiddleware(registry *Registry, cfg config.SessionConfig) *Middleware {
	return &Middleware{registry: registry, cfg: cfg}
}

// Handle attaches the workspace to the request.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	ws, created := m.registry.Resolve(c.Cookies(m.cfg.CookieName), c.Get(fiber.HeaderAcceptLanguage))
	if created {
		c.Cookie(&fiber.Cookie{
			Name:     m.cfg.CookieName,
			Value:    ws.ID,
			Path:     "/",
			HTTPOnly: true,
			Secure:   m.cfg.SecureCookie,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	c.Locals(workspaceKey, ws)
	c.Locals(IDKey, ws.ID)
	return c.Next()
}

// Current returns the workspace attached by Handle.
func Current(c *fiber.Ctx) (*Workspace, error) {
	ws, ok := c.Locals(workspaceKey).(*Workspace)
	if !ok || ws == nil {
		return nil, apperrors.NewInternalError(errNoSession)
	}
	return ws, nil
}
