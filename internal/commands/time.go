package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/analytics"
	"github.com/tally-dev/tally/internal/ledger"
	"github.com/tally-dev/tally/internal/model"
)

func newTimeCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "time",
		Short: "Track time",
	}
	cmd.AddCommand(newTimeStartCommand(app))
	cmd.AddCommand(newTimeStopCommand(app))
	cmd.AddCommand(newTimeLogCommand(app))
	cmd.AddCommand(newTimeListCommand(app))
	cmd.AddCommand(newDeleteCommand(app, "time entry", func(svc *ledger.Service, ctx context.Context, id string) error {
		return svc.DeleteTimeEntry(ctx, id)
	}))
	return cmd
}

func newTimeStartCommand(app *App) *cobra.Command {
	var params ledger.StartTimerParams
	var rate decimalFlag

	cmd := &cobra.Command{
		Use:   "start <project-id>",
		Short: "Start the timer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params.ProjectID = args[0]
			params.HourlyRate = rate.ptr()
			return app.run(cmd, func(svc *ledger.Service) error {
				e, err := svc.StartTimer(cmd.Context(), params)
				if err != nil {
					return err
				}
				return app.done(cmd, e, "Timer started at %s (%s)", e.Start.Format("15:04"), e.ID)
			})
		},
	}

	cmd.Flags().StringVarP(&params.Description, "description", "d", "", "what you are working on")
	cmd.Flags().BoolVar(&params.Billable, "billable", true, "bill this time")
	cmd.Flags().Var(&rate, "rate", "hourly rate, default from settings")
	return cmd
}

func newTimeStopCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the running timer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(svc *ledger.Service) error {
				e, err := svc.StopTimer(cmd.Context())
				if err != nil {
					return err
				}
				return app.done(cmd, e, "Timer stopped after %s", e.Duration().Truncate(time.Second))
			})
		},
	}
}

func newTimeLogCommand(app *App) *cobra.Command {
	var e model.TimeEntry
	var duration time.Duration
	var on dateFlag
	var rate decimalFlag

	cmd := &cobra.Command{
		Use:   "log <project-id> <duration>",
		Short: "Record time already spent, e.g. 1h30m",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			duration, err = time.ParseDuration(args[1])
			if err != nil || duration <= 0 {
				return fmt.Errorf("invalid duration %q", args[1])
			}
			e.ProjectID = args[0]
			e.HourlyRate = rate.ptr()
			return app.run(cmd, func(svc *ledger.Service) error {
				end := svc.Now()
				if !on.d.IsZero() {
					end = on.d.Add(17 * time.Hour)
				}
				e.Start = model.At(end.Add(-duration))
				e.End = model.At(end)
				added, err := svc.AddTimeEntry(cmd.Context(), e)
				if err != nil {
					return err
				}
				return app.done(cmd, added, "Logged %s (%s)", duration, added.ID)
			})
		},
	}

	cmd.Flags().StringVarP(&e.Description, "description", "d", "", "what you worked on")
	cmd.Flags().BoolVar(&e.Billable, "billable", true, "bill this time")
	cmd.Flags().Var(&on, "date", "day the work ended, default now")
	cmd.Flags().Var(&rate, "rate", "hourly rate, default from settings")
	return cmd
}

func newTimeListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show tracked time and billable revenue",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(svc *ledger.Service) error {
				p, doc, err := app.printer(cmd, svc)
				if err != nil {
					return err
				}
				summary := analytics.HoursAndRevenue(doc.TimeEntries, doc.Settings.HourlyRate, svc.Now())
				if app.JSON {
					return writeJSON(cmd, summary)
				}
				project := projectLabel(doc)
				p.Time(summary, project)
				p.Ranking("Hours per project", analytics.TimePerProject(doc.TimeEntries, svc.Config().Reports.TopN), project, true)

				rows := make([][]string, len(doc.TimeEntries))
				for i, e := range doc.TimeEntries {
					length := e.Duration().Truncate(time.Minute).String()
					if e.IsRunning() {
						length = "running"
					}
					rows[i] = []string{e.ID, project(e.ProjectID), e.Start.Format("2006-01-02 15:04"), length, yesNo(e.Billable), e.Description}
				}
				return app.list(cmd, doc.TimeEntries, []string{"ID", "Project", "Start", "Length", "Billable", "Description"}, rows)
			})
		},
	}
}
