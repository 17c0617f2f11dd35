package commands

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/ledger"
	"github.com/tally-dev/tally/internal/model"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// list prints rows as a table, or v as JSON.
func (a *App) list(cmd *cobra.Command, v any, headers []string, rows [][]string) error {
	if a.JSON {
		return writeJSON(cmd, v)
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "nothing here yet")
		return err
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(cmd.OutOrStdout(), t.String())
	return err
}

func money(d decimal.Decimal) string { return d.StringFixed(2) }

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// projectLabel resolves project ids for display.
func projectLabel(doc *model.Document) func(id string) string {
	return func(id string) string {
		if p, ok := doc.ProjectByID(id); ok {
			return p.Name
		}
		if id == "" {
			return "-"
		}
		return id
	}
}

func clientLabel(doc *model.Document) func(id string) string {
	return func(id string) string {
		if c, ok := doc.ClientByID(id); ok {
			return c.Name
		}
		if id == "" {
			return "-"
		}
		return id
	}
}

// newDeleteCommand builds "<entity> rm <id>".
func newDeleteCommand(app *App, entity string, del func(svc *ledger.Service, ctx context.Context, id string) error) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a " + entity,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(svc *ledger.Service) error {
				if err := del(svc, cmd.Context(), args[0]); err != nil {
					return err
				}
				return app.done(cmd, map[string]string{"deleted": args[0]}, "Deleted %s %s", entity, args[0])
			})
		},
	}
}
