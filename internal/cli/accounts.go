package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/contactlens/internal/accounts"
)

// AccountsOptions holds flags for the accounts command.
type AccountsOptions struct {
	*RootOptions
	Dir         string
	AccountType string
}

// NewAccountsCommand creates the accounts command.
func NewAccountsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AccountsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List linked-account data kinds",
		Long: `List the data kinds contributed by linked account types, as declared by
the CUE files in the accounts directory. Reserved standard mimetypes and
kinds with invalid columns are left out.

Examples:
  contactlens accounts
  contactlens accounts --dir ./accounts --type com.example.chat`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccounts(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Dir, "dir", "", "directory of .cue account declarations (default from config)")
	cmd.Flags().StringVar(&opts.AccountType, "type", "", "only list kinds of this account type")

	return cmd
}

func runAccounts(opts *AccountsOptions, cmd *cobra.Command) error {
	sess, err := newSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	if opts.Dir != "" {
		sess.cfg.Accounts.Dir = opts.Dir
	}
	registry := sess.registry()

	ctx := cmd.Context()
	var kinds []accounts.MimeType
	if opts.AccountType != "" {
		kinds = registry.ForAccountType(ctx, opts.AccountType)
	} else {
		kinds = registry.MimeTypes(ctx)
	}
	if kinds == nil {
		kinds = []accounts.MimeType{}
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if opts.Format == "json" {
		return out.Success(kinds)
	}
	if len(kinds) == 0 {
		return out.Success("No linked-account kinds.")
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ACCOUNT TYPE\tMIMETYPE\tSUMMARY\tDETAIL\tICON")
	for _, k := range kinds {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", k.AccountType, k.Mimetype, k.SummaryColumn, k.DetailColumn, k.Icon)
	}
	return tw.Flush()
}
