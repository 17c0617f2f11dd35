package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/analytics"
	"github.com/tally-dev/tally/internal/ledger"
	"github.com/tally-dev/tally/internal/model"
)

func newClientCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "client",
		Aliases: []string{"clients"},
		Short:   "Manage clients",
	}
	cmd.AddCommand(newClientAddCommand(app))
	cmd.AddCommand(newClientListCommand(app))
	cmd.AddCommand(newDeleteCommand(app, "client", func(svc *ledger.Service, ctx context.Context, id string) error {
		return svc.DeleteClient(ctx, id)
	}))
	return cmd
}

func newClientAddCommand(app *App) *cobra.Command {
	var c model.Client
	var status string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Name = strings.TrimSpace(args[0])
			c.Status = model.ClientStatus(status)
			return app.run(cmd, func(svc *ledger.Service) error {
				added, err := svc.AddClient(cmd.Context(), c)
				if err != nil {
					return err
				}
				return app.done(cmd, added, "Added client %s (%s)", added.Name, added.ID)
			})
		},
	}

	cmd.Flags().StringVar(&c.Email, "email", "", "email address")
	cmd.Flags().StringVar(&c.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&c.Company, "company", "", "company name")
	cmd.Flags().BoolVar(&c.Priority, "priority", false, "mark as a priority client")
	cmd.Flags().StringVar(&status, "status", "", "active or inactive")
	return cmd
}

func newClientListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List clients with paid totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(svc *ledger.Service) error {
				doc, err := svc.Document(cmd.Context())
				if err != nil {
					return err
				}
				totals := analytics.ClientTotals(doc)
				rows := make([][]string, len(totals))
				for i, t := range totals {
					status := string(t.Client.Status)
					if status == "" {
						status = string(model.ClientActive)
					}
					rows[i] = []string{t.Client.ID, t.Client.Name, t.Client.Company, status,
						fmt.Sprint(t.ProjectsCount), money(t.TotalPaid)}
				}
				return app.list(cmd, totals, []string{"ID", "Name", "Company", "Status", "Projects", "Paid"}, rows)
			})
		},
	}
}

func newProjectCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "Manage projects",
	}
	cmd.AddCommand(newProjectAddCommand(app))
	cmd.AddCommand(newProjectListCommand(app))
	cmd.AddCommand(newProjectStatusCommand(app))
	cmd.AddCommand(newDeleteCommand(app, "project", func(svc *ledger.Service, ctx context.Context, id string) error {
		return svc.DeleteProject(ctx, id)
	}))
	return cmd
}

func newProjectAddCommand(app *App) *cobra.Command {
	var p model.Project
	var status string
	var budget decimalFlag
	var deadline dateFlag

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p.Name = strings.TrimSpace(args[0])
			p.Status = model.ProjectStatus(status)
			p.Budget = budget.d
			p.Deadline = deadline.d
			return app.run(cmd, func(svc *ledger.Service) error {
				added, err := svc.AddProject(cmd.Context(), p)
				if err != nil {
					return err
				}
				return app.done(cmd, added, "Added project %s (%s)", added.Name, added.ID)
			})
		},
	}

	cmd.Flags().StringVar(&p.ClientID, "client", "", "client id")
	cmd.Flags().StringVar(&status, "status", "", "planned|in-progress|on-hold|delivered|paid")
	cmd.Flags().Var(&budget, "budget", "agreed budget")
	cmd.Flags().Var(&deadline, "deadline", "delivery date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&p.Description, "description", "", "description")
	return cmd
}

func newProjectListCommand(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(svc *ledger.Service) error {
				doc, err := svc.Document(cmd.Context())
				if err != nil {
					return err
				}
				client := clientLabel(doc)
				want := model.NormalizeProjectStatus(status)
				out := []model.Project{}
				var rows [][]string
				for _, p := range doc.Projects {
					if status != "" && p.Status != want {
						continue
					}
					out = append(out, p)
					rows = append(rows, []string{p.ID, p.Name, client(p.ClientID), string(p.Status),
						money(p.Budget), p.Deadline.String()})
				}
				return app.list(cmd, out, []string{"ID", "Name", "Client", "Status", "Budget", "Deadline"}, rows)
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "only projects with this status")
	return cmd
}

func newProjectStatusCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move a project to another status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(svc *ledger.Service) error {
				p, err := svc.SetProjectStatus(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				return app.done(cmd, p, "Project %s is now %s", p.Name, p.Status)
			})
		},
	}
}
