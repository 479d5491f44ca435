package transport

import "net/http"

// Authenticator applies authentication to HTTP requests. Credentials
// are pre-issued and fixed at construction; no token refresh or
// negotiation happens at request time.
type Authenticator interface {
	Apply(req *http.Request)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request) {
	// No authentication applied
}

// BasicAuth carries a pre-encoded basic credential.
type BasicAuth struct {
	Credential string
}

// Apply implements the Authenticator interface for BasicAuth.
func (a *BasicAuth) Apply(req *http.Request) {
	req.Header.Set("Authorization", "Basic "+a.Credential)
}

// BearerAuth carries a bearer token.
type BearerAuth struct {
	Token string
}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+a.Token)
}
