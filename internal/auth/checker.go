package auth

import (
	"context"
	"net/http"
	"strings"
)

const TokenHeader = "X-LIFTLOG-TOKEN"

var _ Checker = (*LoginChecker)(nil)
var _ Checker = (*LoginTestChecker)(nil)

// Checker tells whether a session token belongs to a live session.
type Checker interface {
	IsLogged(ctx context.Context, token string) (bool, error)
}

// TokenFromRequest reads the session token from the liftlog header, falling
// back to a bearer Authorization header (used by MCP clients).
func TokenFromRequest(r *http.Request) string {
	if token := strings.TrimSpace(r.Header.Get(TokenHeader)); token != "" {
		return token
	}
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
