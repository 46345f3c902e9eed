package harness

import "github.com/roach88/contactlens/internal/contact"

// StepResult is what a step observed: a contact list, or the input error
// code of a query expected to fail.
type StepResult struct {
	Name     string
	Contacts []contact.PartialContact
	Error    string
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expectation held.
	Pass bool `json:"pass"`

	// Errors contains failed expectations. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Steps holds one entry per query step plus one per watch emission.
	Steps []StepResult `json:"-"`
}

// NewResult creates a passing result.
func NewResult() *Result {
	return &Result{Pass: true, Errors: []string{}}
}

// AddError records a failed expectation and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddStep records the contacts observed by a step.
func (r *Result) AddStep(name string, contacts []contact.PartialContact) {
	r.Steps = append(r.Steps, StepResult{Name: name, Contacts: contacts})
}
