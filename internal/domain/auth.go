package domain

import (
	"fmt"
	"net/http"
)

// Credentials stores the single Linear API credential. The key is
// fixed at process start and shared read-only by every tool call.
type Credentials struct {
	APIKey string
}

// Validate checks that the credential is usable.
func (c *Credentials) Validate() error {
	if c == nil || c.APIKey == "" {
		return fmt.Errorf("API key is required")
	}
	return nil
}

// NewAuthenticatedClient returns an HTTP client that attaches the API
// key to every outgoing request. All Linear API traffic goes through
// this client; nothing mutates its configuration after creation.
func NewAuthenticatedClient(creds *Credentials) (*http.Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	return &http.Client{
		Transport: &authenticatedTransport{
			base:   http.DefaultTransport,
			apiKey: creds.APIKey,
		},
	}, nil
}

// authenticatedTransport injects the Authorization header. Linear
// personal API keys are sent bare, without a Bearer prefix.
type authenticatedTransport struct {
	base   http.RoundTripper
	apiKey string
}

// RoundTrip adds authentication to the request and delegates to the
// base transport. The request is cloned first; RoundTrippers must not
// modify their argument.
func (t *authenticatedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	authReq := req.Clone(req.Context())
	authReq.Header.Set("Authorization", t.apiKey)
	return t.base.RoundTrip(authReq)
}
