package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/analytics"
	"github.com/tally-dev/tally/internal/ledger"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/report"
)

func newSummaryCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show this month's headline numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(svc *ledger.Service) error {
				p, doc, err := app.printer(cmd, svc)
				if err != nil {
					return err
				}
				dash := analytics.Overview(doc, svc.Now())
				fin := analytics.FinanceOverview(doc)
				if app.JSON {
					return writeJSON(cmd, struct {
						Dashboard analytics.Dashboard `json:"dashboard"`
						Finances  analytics.Finances  `json:"finances"`
					}{dash, fin})
				}
				p.Overview(dash, fin)
				p.Payments(analytics.PartitionPayments(doc.Payments, svc.Now()), projectLabel(doc))
				return nil
			})
		},
	}
}

// analyticsReport is everything the analytics command computes.
type analyticsReport struct {
	Monthly        []analytics.MonthSummary  `json:"monthly"`
	Growth         string                    `json:"growth"`
	ExpenseByKind  []analytics.GroupTotal    `json:"expensesByCategory"`
	ProjectStatus  []analytics.GroupTotal    `json:"projectStatus"`
	TopClients     []analytics.GroupTotal    `json:"topClients"`
	HoursByProject []analytics.GroupTotal    `json:"hoursByProject"`
	Time           analytics.TimeSummary     `json:"time"`
	Expenses       analytics.ExpenseSums     `json:"expenses"`
	Invoices       analytics.Invoices        `json:"invoices"`
	Proposals      analytics.Proposals       `json:"proposals"`
	Equipment      analytics.EquipmentTotals `json:"equipment"`
}

func buildAnalytics(doc *model.Document, svc *ledger.Service, months int) analyticsReport {
	now := svc.Now()
	topN := svc.Config().Reports.TopN
	series := analytics.MonthlySeries(doc.Payments, doc.Expenses, months, now)
	return analyticsReport{
		Monthly:        series,
		Growth:         analytics.GrowthRate(series).StringFixed(1),
		ExpenseByKind:  analytics.ExpenseByCategory(doc.Expenses),
		ProjectStatus:  analytics.ProjectStatusCounts(doc.Projects),
		TopClients:     analytics.TopClients(doc, topN),
		HoursByProject: analytics.TimePerProject(doc.TimeEntries, topN),
		Time:           analytics.HoursAndRevenue(doc.TimeEntries, doc.Settings.HourlyRate, now),
		Expenses:       analytics.ExpenseTotals(doc.Expenses),
		Invoices:       analytics.InvoiceSummary(doc.Invoices),
		Proposals:      analytics.ProposalStats(doc.Proposals),
		Equipment:      analytics.EquipmentSummary(doc.Equipment),
	}
}

func newAnalyticsCommand(app *App) *cobra.Command {
	var months int
	var csvPath string

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show trends, breakdowns and rankings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(svc *ledger.Service) error {
				p, doc, err := app.printer(cmd, svc)
				if err != nil {
					return err
				}
				if months <= 0 {
					months = svc.Config().Reports.Months
				}
				r := buildAnalytics(doc, svc, months)

				if csvPath != "" {
					if err := writeSeriesCSV(cmd, csvPath, r.Monthly); err != nil {
						return err
					}
					if csvPath == "-" {
						return nil
					}
				}
				if app.JSON {
					return writeJSON(cmd, r)
				}

				project := projectLabel(doc)
				p.Monthly(r.Monthly)
				p.Breakdown("Expenses by category", r.ExpenseByKind, nil)
				p.Ranking("Top clients", r.TopClients, clientLabel(doc), false)
				p.Ranking("Hours per project", r.HoursByProject, project, true)
				p.Time(r.Time, project)
				p.Expenses(r.Expenses)
				p.Invoices(r.Invoices)
				p.Proposals(r.Proposals)
				p.Equipment(r.Equipment)

				rows := make([][]string, len(r.ProjectStatus))
				for i, g := range r.ProjectStatus {
					rows[i] = []string{g.Key, g.Total.String()}
				}
				fmt.Fprintln(cmd.OutOrStdout())
				return app.list(cmd, r.ProjectStatus, []string{"Project status", "Count"}, rows)
			})
		},
	}

	cmd.Flags().IntVarP(&months, "months", "m", 0, "months in the series, default from tally.yaml")
	cmd.Flags().StringVar(&csvPath, "csv", "", "also write the monthly series as CSV to this file (- for stdout only)")
	return cmd
}

func writeSeriesCSV(cmd *cobra.Command, path string, series []analytics.MonthSummary) error {
	if path == "-" {
		return report.WriteMonthlySeries(cmd.OutOrStdout(), series)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := report.WriteMonthlySeries(f, series); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func newTodayCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show what needs attention today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(svc *ledger.Service) error {
				p, doc, err := app.printer(cmd, svc)
				if err != nil {
					return err
				}
				agenda := analytics.DayAgenda(doc, svc.Now())
				if app.JSON {
					return writeJSON(cmd, agenda)
				}
				p.Agenda(agenda, projectLabel(doc))
				return nil
			})
		},
	}
}
