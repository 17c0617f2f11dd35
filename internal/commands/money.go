package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/analytics"
	"github.com/tally-dev/tally/internal/ledger"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/report"
)

func newPaymentCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "payment",
		Aliases: []string{"payments"},
		Short:   "Manage payments",
	}
	cmd.AddCommand(newPaymentAddCommand(app))
	cmd.AddCommand(newPaymentListCommand(app))
	cmd.AddCommand(newPaymentPaidCommand(app))
	cmd.AddCommand(newDeleteCommand(app, "payment", func(svc *ledger.Service, ctx context.Context, id string) error {
		return svc.DeletePayment(ctx, id)
	}))
	return cmd
}

func newPaymentAddCommand(app *App) *cobra.Command {
	var p model.Payment
	var amount decimalFlag
	var expected, paid dateFlag

	cmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Record an expected or received payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := amount.Set(args[0]); err != nil {
				return err
			}
			p.Amount = amount.d
			p.ExpectedDate = expected.d
			p.PaidDate = paid.d
			if !paid.d.IsZero() {
				p.IsPaid = true
			}
			return app.run(cmd, func(svc *ledger.Service) error {
				if p.ExpectedDate.IsZero() {
					p.ExpectedDate = svc.Today()
				}
				added, err := svc.AddPayment(cmd.Context(), p)
				if err != nil {
					return err
				}
				return app.done(cmd, added, "Added payment %s (%s)", money(added.Amount), added.ID)
			})
		},
	}

	cmd.Flags().StringVar(&p.ProjectID, "project", "", "project id")
	cmd.Flags().Var(&expected, "expected", "expected date (YYYY-MM-DD), default today")
	cmd.Flags().BoolVar(&p.IsPaid, "paid", false, "already received")
	cmd.Flags().Var(&paid, "paid-on", "date received (implies --paid)")
	cmd.Flags().StringVar(&p.Description, "description", "", "description")
	cmd.Flags().StringVar(&p.InvoiceID, "invoice", "", "invoice id")
	return cmd
}

func newPaymentListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List payments as paid, pending and overdue",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(svc *ledger.Service) error {
				doc, err := svc.Document(cmd.Context())
				if err != nil {
					return err
				}
				part := analytics.PartitionPayments(doc.Payments, svc.Now())
				if app.JSON {
					return writeJSON(cmd, part)
				}
				p := report.New(cmd.OutOrStdout(), doc.Settings.Currency)
				p.Payments(part, projectLabel(doc))
				project := projectLabel(doc)
				var rows [][]string
				for _, pay := range doc.Payments {
					state := "pending"
					if pay.IsPaid {
						state = "paid"
					}
					rows = append(rows, []string{pay.ID, project(pay.ProjectID), money(pay.Amount), state,
						pay.ExpectedDate.String(), pay.PaidDate.String()})
				}
				return app.list(cmd, doc.Payments, []string{"ID", "Project", "Amount", "State", "Expected", "Paid"}, rows)
			})
		},
	}
}

func newPaymentPaidCommand(app *App) *cobra.Command {
	var on dateFlag

	cmd := &cobra.Command{
		Use:   "paid <id>",
		Short: "Mark a payment as received",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(svc *ledger.Service) error {
				p, err := svc.MarkPaymentPaid(cmd.Context(), args[0], on.d)
				if err != nil {
					return err
				}
				return app.done(cmd, p, "Payment %s marked paid on %s", p.ID, p.PaidDate)
			})
		},
	}

	cmd.Flags().Var(&on, "on", "date received, default today")
	return cmd
}

func newExpenseCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "expense",
		Aliases: []string{"expenses"},
		Short:   "Manage expenses",
	}
	cmd.AddCommand(newExpenseAddCommand(app))
	cmd.AddCommand(newExpenseListCommand(app))
	cmd.AddCommand(newDeleteCommand(app, "expense", func(svc *ledger.Service, ctx context.Context, id string) error {
		return svc.DeleteExpense(ctx, id)
	}))
	return cmd
}

func newExpenseAddCommand(app *App) *cobra.Command {
	var e model.Expense
	var amount, tax decimalFlag
	var category string
	var date dateFlag

	cmd := &cobra.Command{
		Use:   "add <description> <amount>",
		Short: "Record an expense",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := amount.Set(args[1]); err != nil {
				return err
			}
			e.Description = strings.TrimSpace(args[0])
			e.Amount = amount.d
			e.Tax = tax.d
			e.Category = model.ExpenseCategory(category)
			e.Date = date.d
			return app.run(cmd, func(svc *ledger.Service) error {
				added, err := svc.AddExpense(cmd.Context(), e)
				if err != nil {
					return err
				}
				return app.done(cmd, added, "Added expense %s %s (%s)", added.Description, money(added.Amount), added.ID)
			})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "equipment|software|marketing|office|transport|education|other")
	cmd.Flags().Var(&date, "date", "date (YYYY-MM-DD), default today")
	cmd.Flags().Var(&tax, "tax", "tax included in the amount")
	cmd.Flags().BoolVar(&e.Deductible, "deductible", false, "tax deductible")
	cmd.Flags().StringVar(&e.ProjectID, "project", "", "project id")
	cmd.Flags().StringVar(&e.Receipt, "receipt", "", "receipt file or link")
	return cmd
}

func newExpenseListCommand(app *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List expenses",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(svc *ledger.Service) error {
				doc, err := svc.Document(cmd.Context())
				if err != nil {
					return err
				}
				list := doc.Expenses
				if month != "" {
					d, err := model.ParseDate(month + "-01")
					if err != nil {
						return fmt.Errorf("invalid --month %q (expected YYYY-MM)", month)
					}
					list = analytics.ExpensesInMonth(list, d.Year(), d.Month())
				}
				rows := make([][]string, len(list))
				for i, e := range list {
					rows[i] = []string{e.ID, e.Date.String(), e.Description, string(e.Category), money(e.Amount), yesNo(e.Deductible)}
				}
				return app.list(cmd, list, []string{"ID", "Date", "Description", "Category", "Amount", "Deductible"}, rows)
			})
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "only this month (YYYY-MM)")
	return cmd
}

func newInvoiceCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "invoice",
		Aliases: []string{"invoices"},
		Short:   "Manage invoices",
	}
	cmd.AddCommand(newInvoiceCreateCommand(app))
	cmd.AddCommand(newInvoiceListCommand(app))
	cmd.AddCommand(newInvoiceStatusCommand(app))
	cmd.AddCommand(newDeleteCommand(app, "invoice", func(svc *ledger.Service, ctx context.Context, id string) error {
		return svc.DeleteInvoice(ctx, id)
	}))
	return cmd
}

// parseItem reads "description:quantity:rate".
func parseItem(s string) (model.InvoiceItem, error) {
	i := strings.LastIndex(s, ":")
	j := -1
	if i > 0 {
		j = strings.LastIndex(s[:i], ":")
	}
	if j <= 0 {
		return model.InvoiceItem{}, fmt.Errorf("invalid item %q (expected description:quantity:rate)", s)
	}
	var qty, rate decimalFlag
	if err := qty.Set(s[j+1 : i]); err != nil {
		return model.InvoiceItem{}, fmt.Errorf("item %q: %w", s, err)
	}
	if err := rate.Set(s[i+1:]); err != nil {
		return model.InvoiceItem{}, fmt.Errorf("item %q: %w", s, err)
	}
	return model.InvoiceItem{Description: s[:j], Quantity: qty.d, Rate: rate.d}, nil
}

func newInvoiceCreateCommand(app *App) *cobra.Command {
	var params ledger.InvoiceParams
	var items []string
	var issue, due dateFlag

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a draft invoice",
		Example: `  tally invoice create --client cli_... --item "Design:10:50" --item "Hosting:1:25"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range items {
				it, err := parseItem(s)
				if err != nil {
					return err
				}
				params.Items = append(params.Items, it)
			}
			params.IssueDate = issue.d
			params.DueDate = due.d
			return app.run(cmd, func(svc *ledger.Service) error {
				inv, err := svc.CreateInvoice(cmd.Context(), params)
				if err != nil {
					return err
				}
				return app.done(cmd, inv, "Created invoice %s for %s (%s)", inv.InvoiceNumber, money(inv.Total), inv.ID)
			})
		},
	}

	cmd.Flags().StringVar(&params.ClientID, "client", "", "client id (required)")
	_ = cmd.MarkFlagRequired("client")
	cmd.Flags().StringVar(&params.ProjectID, "project", "", "project id")
	cmd.Flags().StringArrayVar(&items, "item", nil, "line item as description:quantity:rate (repeatable)")
	cmd.Flags().Var(&issue, "issued", "issue date, default today")
	cmd.Flags().Var(&due, "due", "due date, default 30 days after issue")
	cmd.Flags().StringVar(&params.Notes, "notes", "", "notes printed on the invoice")
	return cmd
}

func newInvoiceListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List invoices",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(svc *ledger.Service) error {
				doc, err := svc.Document(cmd.Context())
				if err != nil {
					return err
				}
				client := clientLabel(doc)
				rows := make([][]string, len(doc.Invoices))
				for i, inv := range doc.Invoices {
					rows[i] = []string{inv.ID, inv.InvoiceNumber, client(inv.ClientID), string(inv.Status),
						inv.IssueDate.String(), inv.DueDate.String(), money(inv.Total)}
				}
				return app.list(cmd, doc.Invoices, []string{"ID", "Number", "Client", "Status", "Issued", "Due", "Total"}, rows)
			})
		},
	}
}

func newInvoiceStatusCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <draft|sent|paid|overdue>",
		Short: "Change an invoice's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(svc *ledger.Service) error {
				inv, err := svc.SetInvoiceStatus(cmd.Context(), args[0], model.InvoiceStatus(args[1]))
				if err != nil {
					return err
				}
				return app.done(cmd, inv, "Invoice %s is now %s", inv.InvoiceNumber, inv.Status)
			})
		},
	}
}

func newProposalCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "proposal",
		Aliases: []string{"proposals"},
		Short:   "Manage proposals",
	}
	cmd.AddCommand(newProposalAddCommand(app))
	cmd.AddCommand(newProposalListCommand(app))
	cmd.AddCommand(newProposalStatusCommand(app))
	cmd.AddCommand(newDeleteCommand(app, "proposal", func(svc *ledger.Service, ctx context.Context, id string) error {
		return svc.DeleteProposal(ctx, id)
	}))
	return cmd
}

func newProposalAddCommand(app *App) *cobra.Command {
	var p model.Proposal
	var amount decimalFlag
	var validUntil dateFlag

	cmd := &cobra.Command{
		Use:   "add <title> <amount>",
		Short: "Add a proposal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := amount.Set(args[1]); err != nil {
				return err
			}
			p.Title = strings.TrimSpace(args[0])
			p.Amount = amount.d
			p.ValidUntil = validUntil.d
			if p.Scope == nil {
				p.Scope = []string{}
			}
			if p.Deliverables == nil {
				p.Deliverables = []string{}
			}
			return app.run(cmd, func(svc *ledger.Service) error {
				added, err := svc.AddProposal(cmd.Context(), p)
				if err != nil {
					return err
				}
				return app.done(cmd, added, "Added proposal %s (%s)", added.Title, added.ID)
			})
		},
	}

	cmd.Flags().StringVar(&p.ClientID, "client", "", "client id")
	cmd.Flags().Var(&validUntil, "valid-until", "expiry date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&p.Description, "description", "", "description")
	cmd.Flags().StringArrayVar(&p.Scope, "scope", nil, "scope item (repeatable)")
	cmd.Flags().StringArrayVar(&p.Deliverables, "deliverable", nil, "deliverable (repeatable)")
	return cmd
}

func newProposalListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List proposals",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(svc *ledger.Service) error {
				doc, err := svc.Document(cmd.Context())
				if err != nil {
					return err
				}
				client := clientLabel(doc)
				rows := make([][]string, len(doc.Proposals))
				for i, p := range doc.Proposals {
					rows[i] = []string{p.ID, p.Title, client(p.ClientID), string(p.Status), money(p.Amount), p.ValidUntil.String()}
				}
				return app.list(cmd, doc.Proposals, []string{"ID", "Title", "Client", "Status", "Amount", "Valid until"}, rows)
			})
		},
	}
}

func newProposalStatusCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <draft|sent|accepted|rejected>",
		Short: "Change a proposal's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(svc *ledger.Service) error {
				p, err := svc.SetProposalStatus(cmd.Context(), args[0], model.ProposalStatus(args[1]))
				if err != nil {
					return err
				}
				return app.done(cmd, p, "Proposal %s is now %s", p.Title, p.Status)
			})
		},
	}
}
