package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/roach88/contactlens/internal/contact"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Query or scenario failure
	ExitCommandError = 2 // Command error (bad flags, unreadable config, missing database)
)

// ExitError is an error carrying a process exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps err with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error. Errors that are not
// an ExitError map to ExitFailure.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

// CLIResponse is the JSON envelope for CLI output.
type CLIResponse struct {
	Status string    `json:"status"` // "ok" or "error"
	Data   any       `json:"data,omitempty"`
	Error  *CLIError `json:"error,omitempty"`
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Success writes data in the configured format. In text mode data is
// printed with fmt.Println.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{Status: "ok", Data: data})
	}
	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error writes an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error:  &CLIError{Code: code, Message: message, Details: details},
		})
	}
	_, err := fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	return err
}

// Contacts writes a contact list: a JSON envelope, or one block per
// contact in text mode.
func (f *OutputFormatter) Contacts(contacts []contact.PartialContact) error {
	if f.Format == "json" {
		if contacts == nil {
			contacts = []contact.PartialContact{}
		}
		return f.Success(contacts)
	}
	if len(contacts) == 0 {
		_, err := fmt.Fprintln(f.Writer, "No contacts.")
		return err
	}
	for _, c := range contacts {
		if _, err := io.WriteString(f.Writer, formatContact(c)); err != nil {
			return err
		}
	}
	return nil
}

// formatContact renders one contact as a header line plus one indented
// line per non-empty field.
func formatContact(c contact.PartialContact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d\t%s", c.ID, c.DisplayName)
	if c.Starred {
		b.WriteString(" *")
	}
	b.WriteByte('\n')

	field := func(name string, values ...string) {
		if len(values) > 0 {
			fmt.Fprintf(&b, "\t%s: %s\n", name, strings.Join(values, ", "))
		}
	}

	if name := joinNonEmpty(" ", c.Name.Prefix, c.Name.Given, c.Name.Middle, c.Name.Family, c.Name.Suffix); name != "" {
		field("name", name)
	}
	if c.Nickname != "" {
		field("nickname", c.Nickname)
	}
	if org := joinNonEmpty(", ", c.Organization.Company, c.Organization.Title, c.Organization.Department); org != "" {
		field("organization", org)
	}
	field("phones", labeled(c.Phones)...)
	field("emails", labeled(c.Emails)...)
	field("web", labeled(c.WebAddresses)...)

	var postal []string
	for _, a := range c.PostalAddresses {
		postal = append(postal, fmt.Sprintf("%s (%s)", a.Value.Formatted, a.Label))
	}
	field("postal", postal...)

	var events []string
	for _, e := range c.Events {
		events = append(events, fmt.Sprintf("%s (%s)", e.Value, e.Label))
	}
	field("events", events...)

	var groups []string
	for _, g := range c.GroupMemberships {
		if g.Title != "" {
			groups = append(groups, g.Title)
		} else {
			groups = append(groups, fmt.Sprintf("#%d", g.GroupID))
		}
	}
	field("groups", groups...)

	var linked []string
	for _, l := range c.LinkedAccountValues {
		linked = append(linked, joinNonEmpty(" ", l.Summary, l.Detail))
	}
	field("linked", linked...)

	if c.Note != "" {
		field("note", c.Note)
	}
	if len(c.ImageData) > 0 {
		field("image", fmt.Sprintf("%d bytes", len(c.ImageData)))
	}
	return b.String()
}

func labeled(values []contact.LabeledValue[string]) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprintf("%s (%s)", v.Value, v.Label))
	}
	return out
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
