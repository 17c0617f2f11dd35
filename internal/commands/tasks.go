package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/ledger"
	"github.com/tally-dev/tally/internal/model"
)

func newTaskCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks"},
		Short:   "Manage tasks",
	}
	cmd.AddCommand(newTaskAddCommand(app))
	cmd.AddCommand(newTaskListCommand(app))
	cmd.AddCommand(newTaskToggleCommand(app))
	cmd.AddCommand(newDeleteCommand(app, "task", func(svc *ledger.Service, ctx context.Context, id string) error {
		return svc.DeleteTask(ctx, id)
	}))
	return cmd
}

func newTaskAddCommand(app *App) *cobra.Command {
	var t model.Task
	var priority string
	var due dateFlag

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t.Title = strings.TrimSpace(args[0])
			t.Priority = model.Priority(priority)
			t.DueDate = due.d
			return app.run(cmd, func(svc *ledger.Service) error {
				added, err := svc.AddTask(cmd.Context(), t)
				if err != nil {
					return err
				}
				return app.done(cmd, added, "Added task %s (%s)", added.Title, added.ID)
			})
		},
	}

	cmd.Flags().StringVar(&t.ProjectID, "project", "", "project id")
	cmd.Flags().StringVar(&priority, "priority", "", "low|medium|high")
	cmd.Flags().Var(&due, "due", "due date (YYYY-MM-DD)")
	return cmd
}

func newTaskListCommand(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List open tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(svc *ledger.Service) error {
				doc, err := svc.Document(cmd.Context())
				if err != nil {
					return err
				}
				project := projectLabel(doc)
				out := []model.Task{}
				var rows [][]string
				for _, t := range doc.Tasks {
					if t.Completed && !all {
						continue
					}
					out = append(out, t)
					rows = append(rows, []string{t.ID, t.Title, project(t.ProjectID), string(t.Priority),
						t.DueDate.String(), yesNo(t.Completed)})
				}
				return app.list(cmd, out, []string{"ID", "Title", "Project", "Priority", "Due", "Done"}, rows)
			})
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "include completed tasks")
	return cmd
}

func newTaskToggleCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"toggle"},
		Short:   "Toggle a task between open and completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(svc *ledger.Service) error {
				t, err := svc.ToggleTask(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				state := "open"
				if t.Completed {
					state = "completed"
				}
				return app.done(cmd, t, "Task %s is %s", t.Title, state)
			})
		},
	}
}
