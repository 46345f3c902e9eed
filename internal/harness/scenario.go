package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/contactlens/internal/accounts"
	"github.com/roach88/contactlens/internal/contact"
	"github.com/roach88/contactlens/internal/fixture"
	"github.com/roach88/contactlens/internal/predicate"
)

// Scenario defines a query scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Fixture is a fixture file applied before the first step.
	// Relative paths are resolved against the scenario file.
	Fixture string `yaml:"fixture,omitempty"`

	// Accounts declares the linked account types the registry serves.
	Accounts []Account `yaml:"accounts,omitempty"`

	// Watch, when set, subscribes before the first step and records a
	// snapshot after every mutation step.
	Watch *QuerySpec `yaml:"watch,omitempty"`

	// Steps run in order.
	Steps []Step `yaml:"steps"`

	// Token is the subscription token. Defaults to testutil.DefaultToken.
	Token string `yaml:"token,omitempty"`
}

// Account is one authenticator declaration.
type Account struct {
	AccountType string `yaml:"account_type"`
	Kinds       []Kind `yaml:"kinds"`
}

// Kind is a data kind an account contributes.
type Kind struct {
	Mimetype      string `yaml:"mimetype"`
	Icon          string `yaml:"icon,omitempty"`
	SummaryColumn string `yaml:"summary_column,omitempty"`
	DetailColumn  string `yaml:"detail_column,omitempty"`
}

// Step is a single scenario step. Exactly one field is set.
type Step struct {
	Seed   *fixture.Document `yaml:"seed,omitempty"`
	Star   *StarStep         `yaml:"star,omitempty"`
	Rename *RenameStep       `yaml:"rename,omitempty"`
	Delete *int64            `yaml:"delete,omitempty"`
	Query  *QuerySpec        `yaml:"query,omitempty"`
}

// StarStep sets the starred flag of a contact.
type StarStep struct {
	ID      int64 `yaml:"id"`
	Starred bool  `yaml:"starred"`
}

// RenameStep changes a contact's display name.
type RenameStep struct {
	ID          int64  `yaml:"id"`
	DisplayName string `yaml:"display_name"`
}

// QuerySpec is a predicate plus the requested columns.
type QuerySpec struct {
	Name      string        `yaml:"name"`
	Predicate PredicateSpec `yaml:"predicate"`
	Columns   []string      `yaml:"columns,omitempty"`
	Expect    *Expect       `yaml:"expect,omitempty"`
}

// PredicateSpec selects one predicate variant. Exactly one field is set.
type PredicateSpec struct {
	All           bool               `yaml:"all,omitempty"`
	IDsOrFavorite *IDsOrFavoriteSpec `yaml:"ids_or_favorite,omitempty"`
	Email         *string            `yaml:"email,omitempty"`
	Phone         *string            `yaml:"phone,omitempty"`
	Name          *string            `yaml:"name,omitempty"`
}

// IDsOrFavoriteSpec mirrors predicate.ByIDsOrFavorite.
type IDsOrFavoriteSpec struct {
	IDs      []int64 `yaml:"ids,omitempty"`
	Favorite *bool   `yaml:"favorite,omitempty"`
}

// Expect checks a query step's outcome.
type Expect struct {
	// IDs is the exact contact id order.
	IDs []int64 `yaml:"ids,omitempty"`

	// Count is the expected number of contacts.
	Count *int `yaml:"count,omitempty"`

	// Error is the expected querysql.InputError code. When set, the query
	// must fail.
	Error string `yaml:"error,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected and the fixture path is resolved against the file's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Fixture != "" && !filepath.IsAbs(scenario.Fixture) {
		scenario.Fixture = filepath.Join(filepath.Dir(path), scenario.Fixture)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	if s.Fixture != "" {
		if _, err := os.Stat(s.Fixture); os.IsNotExist(err) {
			return fmt.Errorf("fixture file not found: %s", s.Fixture)
		}
	}

	for i, a := range s.Accounts {
		if a.AccountType == "" {
			return fmt.Errorf("accounts[%d]: account_type is required", i)
		}
		for j, k := range a.Kinds {
			if k.Mimetype == "" {
				return fmt.Errorf("accounts[%d].kinds[%d]: mimetype is required", i, j)
			}
		}
	}

	if s.Watch != nil {
		if err := validateQuery("watch", s.Watch); err != nil {
			return err
		}
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(index int, step *Step) error {
	set := 0
	if step.Seed != nil {
		set++
		if err := step.Seed.Validate(); err != nil {
			return fmt.Errorf("steps[%d].seed: %w", index, err)
		}
	}
	if step.Star != nil {
		set++
	}
	if step.Rename != nil {
		set++
		if step.Rename.DisplayName == "" {
			return fmt.Errorf("steps[%d].rename: display_name is required", index)
		}
	}
	if step.Delete != nil {
		set++
	}
	if step.Query != nil {
		set++
		if err := validateQuery(fmt.Sprintf("steps[%d].query", index), step.Query); err != nil {
			return err
		}
	}
	if set != 1 {
		return fmt.Errorf("steps[%d]: exactly one of seed, star, rename, delete, query is required", index)
	}
	return nil
}

func validateQuery(where string, q *QuerySpec) error {
	if q.Name == "" {
		return fmt.Errorf("%s: name is required", where)
	}
	if _, err := q.Predicate.Predicate(); err != nil {
		return fmt.Errorf("%s.predicate: %w", where, err)
	}
	if _, err := q.ParseColumns(); err != nil {
		return fmt.Errorf("%s.columns: %w", where, err)
	}
	return nil
}

// Predicate converts the YAML selection into a predicate value. It does not run
// predicate.Validate, so scenarios can exercise input errors.
func (p PredicateSpec) Predicate() (predicate.Predicate, error) {
	var out []predicate.Predicate
	if p.All {
		out = append(out, predicate.All{})
	}
	if p.IDsOrFavorite != nil {
		ids := make([]contact.ID, len(p.IDsOrFavorite.IDs))
		for i, id := range p.IDsOrFavorite.IDs {
			ids[i] = contact.ID(id)
		}
		out = append(out, predicate.ByIDsOrFavorite{IDs: ids, Favorite: p.IDsOrFavorite.Favorite})
	}
	if p.Email != nil {
		out = append(out, predicate.ByEmail{Address: *p.Email})
	}
	if p.Phone != nil {
		out = append(out, predicate.ByPhone{Number: *p.Phone})
	}
	if p.Name != nil {
		out = append(out, predicate.ByNameSubstring{Text: *p.Name})
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("exactly one of all, ids_or_favorite, email, phone, name is required")
	}
	return out[0], nil
}

// ParseColumns parses the column names.
func (q *QuerySpec) ParseColumns() ([]contact.Column, error) {
	cols := make([]contact.Column, 0, len(q.Columns))
	for _, name := range q.Columns {
		c, err := contact.ParseColumn(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, nil
}

// resolver turns the scenario's account declarations into a static
// resolver.
func (s *Scenario) resolver() accounts.StaticResolver {
	out := make(accounts.StaticResolver, 0, len(s.Accounts))
	for _, a := range s.Accounts {
		auth := accounts.Authenticator{AccountType: a.AccountType}
		for _, k := range a.Kinds {
			auth.Kinds = append(auth.Kinds, accounts.DataKind{
				Mimetype:      k.Mimetype,
				Icon:          k.Icon,
				SummaryColumn: k.SummaryColumn,
				DetailColumn:  k.DetailColumn,
			})
		}
		out = append(out, auth)
	}
	return out
}
