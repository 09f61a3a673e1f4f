package auth

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/time-service/internal/config"
	apperrors "github.com/spec-kit/time-service/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// IdentityMiddleware resolves the principal forwarded by the authenticating proxy.
type IdentityMiddleware struct {
	identityHeader  string
	assertionHeader string
	verifier        *AssertionVerifier
	logger          *zap.Logger
}

// NewIdentityMiddleware constructs middleware from auth settings.
func NewIdentityMiddleware(cfg config.AuthConfig, logger *zap.Logger) *IdentityMiddleware {
	return &IdentityMiddleware{
		identityHeader:  cfg.IdentityHeader,
		assertionHeader: cfg.AssertionHeader,
		verifier:        NewAssertionVerifier(cfg.ProxySecret),
		logger:          logger,
	}
}

// Handle stores the principal in the request locals. A request without an
// identity continues as Unknown. When a proxy secret is configured only a
// valid signed assertion is trusted.
func (m *IdentityMiddleware) Handle(c *fiber.Ctx) error {
	var identity string
	if m.verifier != nil {
		if token := c.Get(m.assertionHeader); token != "" {
			subject, err := m.verifier.Verify(token)
			if err != nil {
				m.logger.Warn("rejected identity assertion", zap.Error(err), zap.String("ip", c.IP()))
				return apperrors.NewUnauthorized("invalid identity assertion")
			}
			identity = subject
		}
	} else {
		identity = c.Get(m.identityHeader)
	}

	principal := ParsePrincipal(identity)
	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the principal set by IdentityMiddleware.
// It falls back to Unknown so handlers always have an explicit principal.
func PrincipalFromContext(c *fiber.Ctx) Principal {
	if principal, ok := c.Locals(principalKey).(Principal); ok {
		return principal
	}
	return ParsePrincipal("")
}
