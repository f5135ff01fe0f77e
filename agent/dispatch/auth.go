package dispatch

import (
	"crypto/subtle"
	"strings"

	contractx "github.com/salesloop/prepagent/agent/contract"
)

// AuthGate validates the shared service credential before any contract
// executes. A missing expected secret means the service is misconfigured and
// every request is rejected; omission is never open access.
type AuthGate struct {
	secret string
}

func NewAuthGate(secret string) *AuthGate {
	return &AuthGate{secret: strings.TrimSpace(secret)}
}

func (g *AuthGate) Authorize(credential string) *contractx.Error {
	if g.secret == "" {
		return contractx.Unauthorized("service not configured")
	}
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return contractx.Unauthorized("missing credential")
	}
	if subtle.ConstantTimeCompare([]byte(credential), []byte(g.secret)) != 1 {
		return contractx.Unauthorized("invalid credential")
	}
	return nil
}

// CredentialFromHeader extracts the bearer token from an Authorization
// header value. An unexpected scheme yields an empty credential, which the
// gate rejects.
func CredentialFromHeader(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
