package harness

import (
	"errors"
	"fmt"
	"slices"

	"github.com/roach88/contactlens/internal/contact"
	"github.com/roach88/contactlens/internal/querysql"
)

// AssertionError is a failed expectation.
type AssertionError struct {
	Step     string
	Type     string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: %s mismatch\n  Expected: %s\n  Actual: %s", e.Step, e.Type, e.Expected, e.Actual)
}

// EvaluateExpect checks contacts against expect and returns one message
// per failed check.
func EvaluateExpect(step string, expect Expect, contacts []contact.PartialContact) []string {
	var errs []string
	if err := assertIDs(step, expect.IDs, contacts); err != nil {
		errs = append(errs, err.Error())
	}
	if err := assertCount(step, expect.Count, contacts); err != nil {
		errs = append(errs, err.Error())
	}
	return errs
}

// assertIDs checks the exact id order. An empty expectation is skipped.
func assertIDs(step string, want []int64, contacts []contact.PartialContact) error {
	if want == nil {
		return nil
	}
	got := make([]int64, len(contacts))
	for i, c := range contacts {
		got[i] = int64(c.ID)
	}
	if slices.Equal(got, want) {
		return nil
	}
	return &AssertionError{
		Step:     step,
		Type:     "ids",
		Expected: fmt.Sprint(want),
		Actual:   fmt.Sprint(got),
	}
}

func assertCount(step string, want *int, contacts []contact.PartialContact) error {
	if want == nil || *want == len(contacts) {
		return nil
	}
	return &AssertionError{
		Step:     step,
		Type:     "count",
		Expected: fmt.Sprint(*want),
		Actual:   fmt.Sprint(len(contacts)),
	}
}

// checkError verifies that err is an input error with the given code. It
// returns an empty string on success.
func checkError(step, code string, err error) string {
	got := errorCode(err)
	if got == code {
		return ""
	}
	if got == "" && err != nil {
		got = err.Error()
	}
	if got == "" {
		got = "no error"
	}
	return (&AssertionError{Step: step, Type: "error", Expected: code, Actual: got}).Error()
}

// errorCode returns the input error code carried by err, or "".
func errorCode(err error) string {
	var ie *querysql.InputError
	if errors.As(err, &ie) {
		return string(ie.Code)
	}
	return ""
}
