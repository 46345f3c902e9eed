package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/contactlens/internal/contact"
	"github.com/roach88/contactlens/internal/predicate"
	"github.com/roach88/contactlens/internal/querysql"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Database string
	Selection
}

// Selection is the predicate and column flags shared by query and watch.
type Selection struct {
	All      bool
	IDs      []int
	Favorite bool
	Email    string
	Phone    string
	Name     string
	Columns  []string
}

func (s *Selection) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVar(&s.All, "all", false, "match every contact (default when no predicate flag is set)")
	f.IntSliceVar(&s.IDs, "ids", nil, "match these contact ids")
	f.BoolVar(&s.Favorite, "favorite", false, "match on the starred flag (combine with --ids to require both)")
	f.StringVar(&s.Email, "email", "", "match contacts with this email address")
	f.StringVar(&s.Phone, "phone", "", "match contacts with this phone number")
	f.StringVar(&s.Name, "name", "", "match contacts whose name contains this text")
	f.StringSliceVar(&s.Columns, "columns", nil, "columns to project, e.g. phones,mails,linked:com.example.chat")
}

// Predicate builds the predicate from the flags that were set. Setting
// more than one predicate family is an error.
func (s *Selection) Predicate(cmd *cobra.Command) (predicate.Predicate, error) {
	changed := cmd.Flags().Changed
	var out []predicate.Predicate
	if s.All {
		out = append(out, predicate.All{})
	}
	if len(s.IDs) > 0 || changed("favorite") {
		p := predicate.ByIDsOrFavorite{}
		for _, id := range s.IDs {
			p.IDs = append(p.IDs, contact.ID(id))
		}
		if changed("favorite") {
			p.Favorite = predicate.Favorite(s.Favorite)
		}
		out = append(out, p)
	}
	if changed("email") {
		out = append(out, predicate.ByEmail{Address: s.Email})
	}
	if changed("phone") {
		out = append(out, predicate.ByPhone{Number: s.Phone})
	}
	if changed("name") {
		out = append(out, predicate.ByNameSubstring{Text: s.Name})
	}

	switch len(out) {
	case 0:
		return predicate.All{}, nil
	case 1:
		return out[0], nil
	default:
		return nil, fmt.Errorf("--all, --ids/--favorite, --email, --phone and --name are mutually exclusive")
	}
}

// ParseColumns parses --columns.
func (s *Selection) ParseColumns() ([]contact.Column, error) {
	cols := make([]contact.Column, 0, len(s.Columns))
	for _, name := range s.Columns {
		c, err := contact.ParseColumn(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return cols, nil
}

// parse returns the predicate and columns, mapping failures to command
// errors.
func (s *Selection) parse(cmd *cobra.Command) (predicate.Predicate, []contact.Column, error) {
	p, err := s.Predicate(cmd)
	if err != nil {
		return nil, nil, NewExitError(ExitCommandError, err.Error())
	}
	cols, err := s.ParseColumns()
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "invalid --columns", err)
	}
	return p, cols, nil
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Run a one-shot contact query",
		Long: `Run a predicate against the contact store and print the matching
contacts in display-name order, projected to the requested columns.

Examples:
  contactlens query --favorite
  contactlens query --ids 4,9 --columns phones,mails
  contactlens query --email alice@example.com --format json
  contactlens query --name ali --columns linked:com.example.chat`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")
	opts.Selection.register(cmd)

	return cmd
}

func runQuery(opts *QueryOptions, cmd *cobra.Command) error {
	p, cols, err := opts.Selection.parse(cmd)
	if err != nil {
		return err
	}

	sess, err := newSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	if err := sess.openOrchestrator(opts.Database); err != nil {
		return err
	}
	defer sess.Close()

	sess.logger.Debug("running query", "predicate", p.String(), "columns", len(cols))
	contacts, err := sess.orch.Query(cmd.Context(), p, cols)
	if err != nil {
		if querysql.IsInputError(err) {
			return WrapExitError(ExitCommandError, "invalid query", err)
		}
		return WrapExitError(ExitFailure, "query failed", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return out.Contacts(contacts)
}
