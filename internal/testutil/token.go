// Package testutil holds helpers shared by tests and the scenario harness.
package testutil

// FixedTokenGenerator names every subscription with the same token, so
// logs and snapshots from repeated runs compare equal.
//
// Thread-safety: FixedTokenGenerator is stateless and safe for concurrent use.
type FixedTokenGenerator struct {
	token string
}

// DefaultToken is used when no token is given.
const DefaultToken = "test-subscription-default"

// NewFixedTokenGenerator returns a generator for token, or DefaultToken
// when token is empty.
func NewFixedTokenGenerator(token string) *FixedTokenGenerator {
	if token == "" {
		token = DefaultToken
	}
	return &FixedTokenGenerator{token: token}
}

// Generate returns the fixed token. Implements engine.TokenGenerator.
func (g *FixedTokenGenerator) Generate() string {
	return g.token
}
