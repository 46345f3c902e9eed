package accounts

import "context"

// MimeType is one linked-account data kind: which account type contributes
// it, and how its rows are labeled and summarized.
type MimeType struct {
	AccountType   string `json:"account_type"`
	Mimetype      string `json:"mimetype"`
	Icon          string `json:"icon,omitempty"`
	SummaryColumn string `json:"summary_column"`
	DetailColumn  string `json:"detail_column,omitempty"`
}

// DataKind is a data-kind declaration as an authenticator publishes it.
type DataKind struct {
	Mimetype      string `json:"mimetype"`
	Icon          string `json:"icon,omitempty"`
	SummaryColumn string `json:"summary_column,omitempty"`
	DetailColumn  string `json:"detail_column,omitempty"`
}

// Authenticator is an installed account type and its declared kinds.
type Authenticator struct {
	AccountType string
	Kinds       []DataKind
}

// InfoResolver enumerates installed account authenticators.
type InfoResolver interface {
	Authenticators(ctx context.Context) ([]Authenticator, error)
}

// StaticResolver serves a fixed authenticator list.
type StaticResolver []Authenticator

// Authenticators implements InfoResolver.
func (s StaticResolver) Authenticators(context.Context) ([]Authenticator, error) {
	return s, nil
}
