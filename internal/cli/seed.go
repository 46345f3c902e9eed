package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/contactlens/internal/fixture"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	Database string
}

// seedResult is the JSON payload of the seed command.
type seedResult struct {
	Database string `json:"database"`
	Groups   int    `json:"groups"`
	Contacts int    `json:"contacts"`
	Rows     int    `json:"rows"`
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed <fixture.yaml>",
		Short: "Load a YAML fixture into the contact store",
		Long: `Load groups, contacts, data rows and photos from a YAML fixture document
into the SQLite contact store, creating the database if needed.

Example:
  contactlens seed --db ./contacts.db ./testdata/contacts.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")

	return cmd
}

func runSeed(opts *SeedOptions, path string, cmd *cobra.Command) error {
	doc, err := fixture.Load(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load fixture", err)
	}

	sess, err := newSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	dbPath := sess.databasePath(opts.Database)
	if err := sess.openStore(dbPath); err != nil {
		return err
	}
	defer sess.Close()

	if err := doc.Apply(cmd.Context(), sess.store); err != nil {
		return WrapExitError(ExitFailure, "failed to seed store", err)
	}

	result := seedResult{Database: dbPath, Groups: len(doc.Groups), Contacts: len(doc.Contacts)}
	for _, c := range doc.Contacts {
		result.Rows += len(c.Data)
	}
	sess.logger.Info("seeded store", "database", dbPath, "contacts", result.Contacts)

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return out.Success(result)
	}
	return out.Success(fmt.Sprintf("Seeded %d contacts (%d data rows, %d groups) into %s",
		result.Contacts, result.Rows, result.Groups, dbPath))
}
