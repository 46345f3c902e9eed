package harness

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/contactlens/internal/contact"
)

// Snapshot encodes a result's steps as canonical JSON:
//
//	{"scenario":name,"steps":[{"contacts":[...],"name":"..."}]}
//
// Steps that expected an input error carry "error" instead of "contacts".
func Snapshot(name string, result *Result) ([]byte, error) {
	steps := make([]any, len(result.Steps))
	for i, s := range result.Steps {
		step := map[string]any{"name": s.Name}
		if s.Error != "" {
			step["error"] = s.Error
		} else {
			list := make([]any, len(s.Contacts))
			for j, c := range s.Contacts {
				list[j] = c.CanonicalMap()
			}
			step["contacts"] = list
		}
		steps[i] = step
	}
	return contact.MarshalCanonical(map[string]any{
		"scenario": name,
		"steps":    steps,
	})
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario, opts ...Option) (*Result, error) {
	t.Helper()

	result, err := Run(context.Background(), scenario, opts...)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := Snapshot(name, result)
	if err != nil {
		return err
	}
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)
	return nil
}
