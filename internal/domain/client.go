package domain

import (
	"context"
)

// GraphQLClient is the transport-level contract the Linear client
// implements. Every API operation reduces to one GraphQL document
// posted to the configured endpoint with the shared credential.
type GraphQLClient interface {
	// Endpoint returns the configured GraphQL endpoint URL.
	Endpoint() string

	// Query posts a GraphQL document with variables and decodes the
	// data payload into out. GraphQL-level errors are returned as Go
	// errors; a null lookup result is the caller's concern.
	Query(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error
}
