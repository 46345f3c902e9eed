package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/contactlens/internal/contact"
)

func TestRunWithGolden_Scenarios(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		scenario, err := LoadScenario(path)
		require.NoError(t, err)

		t.Run(scenario.Name, func(t *testing.T) {
			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestSnapshot_Format(t *testing.T) {
	result := NewResult()
	result.AddStep("one", []contact.PartialContact{{ID: 1, DisplayName: "Ann"}})
	result.Steps = append(result.Steps, StepResult{Name: "bad", Error: "INVALID_COLUMN"})
	result.AddStep("empty", nil)

	data, err := Snapshot("fmt", result)
	require.NoError(t, err)
	assert.Equal(t,
		`{"scenario":"fmt","steps":[{"contacts":[{"columns":[],"display_name":"Ann","id":1,"starred":false}],"name":"one"},{"error":"INVALID_COLUMN","name":"bad"},{"contacts":[],"name":"empty"}]}`,
		string(data))
}
