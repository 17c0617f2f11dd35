package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/gitops"
	"github.com/tally-dev/tally/internal/ledger"
	"github.com/tally-dev/tally/internal/store"
)

func newHistoryCommand(app *App) *cobra.Command {
	var limit int
	var source string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent changes",
		Long: `Show recent changes from the activity log (default), the workspace git
history (--source git) or the saved revisions of a sqlite workspace
(--source revisions).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(svc *ledger.Service) error {
				now := svc.Now()
				switch source {
				case "activity":
					entries, err := svc.History(limit)
					if err != nil {
						return err
					}
					rows := make([][]string, len(entries))
					for i, e := range entries {
						rows[i] = []string{humanize.RelTime(e.Timestamp, now, "ago", "from now"), e.Action, e.Entity, e.EntityID, e.Details, e.CommitHash}
					}
					return app.list(cmd, entries, []string{"When", "Action", "Entity", "ID", "Details", "Commit"}, rows)

				case "git":
					if !gitops.IsRepo(svc.Root()) {
						return errors.New("workspace is not a git repository")
					}
					commits, err := gitops.Log(svc.Root(), limit)
					if err != nil {
						return err
					}
					rows := make([][]string, len(commits))
					for i, c := range commits {
						rows[i] = []string{c.Hash, c.When.Format(time.DateTime), c.Author, c.Subject}
					}
					return app.list(cmd, commits, []string{"Commit", "Date", "Author", "Subject"}, rows)

				case "revisions":
					sq, ok := svc.Store().(*store.SQLiteStore)
					if !ok {
						return errors.New("revisions are only kept by the sqlite backend")
					}
					revs, err := sq.Revisions(cmd.Context(), limit)
					if err != nil {
						return err
					}
					rows := make([][]string, len(revs))
					for i, r := range revs {
						rows[i] = []string{fmt.Sprint(r.ID), r.SavedAt.Format(time.DateTime), humanize.Bytes(uint64(r.Size))}
					}
					return app.list(cmd, revs, []string{"Revision", "Saved", "Size"}, rows)
				}
				return fmt.Errorf("unknown history source %q (activity|git|revisions)", source)
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries")
	cmd.Flags().StringVar(&source, "source", "activity", "activity|git|revisions")
	return cmd
}
