package context

import (
	"smarthr/internal/domain/entity"
	"smarthr/internal/domain/policy"

	"github.com/labstack/echo/v4"
)

// KeyPrincipal is the echo.Context key of the authenticated principal.
const KeyPrincipal ContextKey = "principal"

// SetPrincipal stores the authenticated caller in echo.Context.
func SetPrincipal(c echo.Context, p *policy.Principal) {
	c.Set(string(KeyPrincipal), p)
}

// GetPrincipal returns the caller set by the auth middleware, if any.
func GetPrincipal(c echo.Context) (*policy.Principal, bool) {
	p, ok := c.Get(string(KeyPrincipal)).(*policy.Principal)

	return p, ok && p != nil
}

// ClientInfo describes the caller's device for the audit log. RealIP honours
// the server's IP extractor, so it only trusts configured proxies.
func ClientInfo(c echo.Context) entity.ClientInfo {
	return entity.ClientInfo{
		IPAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}
}
