package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/contactlens/internal/contact"
	"github.com/roach88/contactlens/internal/engine"
	"github.com/roach88/contactlens/internal/querysql"
)

// WatchOptions holds flags for the watch command.
type WatchOptions struct {
	*RootOptions
	Database string
	Count    int
	Poll     time.Duration
	Selection
}

// snapshotOutput is the JSON payload of one emitted snapshot.
type snapshotOutput struct {
	Subscription string                   `json:"subscription"`
	Seq          int64                    `json:"seq"`
	Contacts     []contact.PartialContact `json:"contacts"`
}

// NewWatchCommand creates the watch command.
func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream query snapshots as the store changes",
		Long: `Subscribe to a predicate and print a full snapshot now and after every
change to the contact store, including writes by other processes, until
interrupted or --count snapshots have been printed. With --format json
each snapshot is one JSON line.

Examples:
  contactlens watch --favorite --columns phones
  contactlens watch --name ali --format json --count 3`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")
	cmd.Flags().IntVar(&opts.Count, "count", 0, "stop after this many snapshots (0 = until interrupted)")
	cmd.Flags().DurationVar(&opts.Poll, "poll", time.Second, "how often to check for writes by other processes (0 disables)")
	opts.Selection.register(cmd)

	return cmd
}

func runWatch(opts *WatchOptions, cmd *cobra.Command) error {
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

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			sess.logger.Info("received signal, stopping watch", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	if opts.Poll > 0 {
		go sess.store.PollExternal(ctx, opts.Poll)
	}

	sub, err := sess.orch.Subscribe(ctx, p, cols)
	if err != nil {
		if querysql.IsInputError(err) {
			return WrapExitError(ExitCommandError, "invalid query", err)
		}
		return WrapExitError(ExitFailure, "subscribe failed", err)
	}
	defer sub.Cancel()
	sess.logger.Info("watching", "subscription", sub.Token(), "predicate", p.String())

	printed := 0
	for snap := range sub.C() {
		if err := writeSnapshot(opts, cmd, sub.Token(), snap); err != nil {
			return err
		}
		printed++
		if opts.Count > 0 && printed >= opts.Count {
			return nil
		}
	}
	return nil
}

func writeSnapshot(opts *WatchOptions, cmd *cobra.Command, token string, snap engine.Snapshot) error {
	w := cmd.OutOrStdout()
	if opts.Format == "json" {
		contacts := snap.Contacts
		if contacts == nil {
			contacts = []contact.PartialContact{}
		}
		return json.NewEncoder(w).Encode(CLIResponse{
			Status: "ok",
			Data:   snapshotOutput{Subscription: token, Seq: snap.Seq, Contacts: contacts},
		})
	}
	fmt.Fprintf(w, "--- snapshot %d (%d contacts)\n", snap.Seq, len(snap.Contacts))
	out := &OutputFormatter{Format: opts.Format, Writer: w}
	return out.Contacts(snap.Contacts)
}
