package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/analytics"
	"github.com/tally-dev/tally/internal/ledger"
	"github.com/tally-dev/tally/internal/model"
)

func newEquipmentCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "equipment",
		Short: "Manage equipment",
	}
	cmd.AddCommand(newEquipmentAddCommand(app))
	cmd.AddCommand(newEquipmentListCommand(app))
	cmd.AddCommand(newEquipmentMaintainCommand(app))
	cmd.AddCommand(newDeleteCommand(app, "equipment", func(svc *ledger.Service, ctx context.Context, id string) error {
		return svc.DeleteEquipment(ctx, id)
	}))
	return cmd
}

func newEquipmentAddCommand(app *App) *cobra.Command {
	var item model.EquipmentItem
	var price, value decimalFlag
	var purchased dateFlag
	var category, status string

	cmd := &cobra.Command{
		Use:   "add <name> <purchase-price>",
		Short: "Add an equipment item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := price.Set(args[1]); err != nil {
				return err
			}
			item.Name = strings.TrimSpace(args[0])
			item.PurchasePrice = price.d
			item.CurrentValue = price.d
			if value.set {
				item.CurrentValue = value.d
			}
			item.PurchaseDate = purchased.d
			item.Category = model.EquipmentCategory(category)
			item.Status = model.EquipmentStatus(status)
			return app.run(cmd, func(svc *ledger.Service) error {
				added, err := svc.AddEquipment(cmd.Context(), item)
				if err != nil {
					return err
				}
				return app.done(cmd, added, "Added equipment %s (%s)", added.Name, added.ID)
			})
		},
	}

	cmd.Flags().Var(&value, "value", "current value, default the purchase price")
	cmd.Flags().Var(&purchased, "purchased", "purchase date, default today")
	cmd.Flags().StringVar(&category, "category", "", "computer|camera|audio|software|furniture|other")
	cmd.Flags().StringVar(&status, "status", "", "active|maintenance|sold|retired")
	cmd.Flags().StringVar(&item.Notes, "notes", "", "notes")
	return cmd
}

func newEquipmentListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List equipment with depreciation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(svc *ledger.Service) error {
				p, doc, err := app.printer(cmd, svc)
				if err != nil {
					return err
				}
				if !app.JSON {
					p.Equipment(analytics.EquipmentSummary(doc.Equipment))
				}
				rows := make([][]string, len(doc.Equipment))
				for i, e := range doc.Equipment {
					rows[i] = []string{e.ID, e.Name, string(e.Category), string(e.Status),
						money(e.PurchasePrice), money(e.CurrentValue), analytics.Depreciation(e).StringFixed(2) + "%"}
				}
				return app.list(cmd, doc.Equipment, []string{"ID", "Name", "Category", "Status", "Price", "Value", "Depreciation"}, rows)
			})
		},
	}
}

func newEquipmentMaintainCommand(app *App) *cobra.Command {
	var rec model.MaintenanceRecord
	var cost decimalFlag
	var on dateFlag

	cmd := &cobra.Command{
		Use:   "maintain <id> <description>",
		Short: "Record maintenance on an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec.Description = strings.TrimSpace(args[1])
			rec.Cost = cost.d
			rec.Date = on.d
			return app.run(cmd, func(svc *ledger.Service) error {
				added, err := svc.AddMaintenance(cmd.Context(), args[0], rec)
				if err != nil {
					return err
				}
				return app.done(cmd, added, "Recorded maintenance %s (%s)", added.Description, added.ID)
			})
		},
	}

	cmd.Flags().Var(&cost, "cost", "cost of the work")
	cmd.Flags().Var(&on, "date", "date, default today")
	return cmd
}

func newGoalCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "goal",
		Aliases: []string{"goals"},
		Short:   "Manage goals",
	}
	cmd.AddCommand(newGoalAddCommand(app))
	cmd.AddCommand(newGoalListCommand(app))
	cmd.AddCommand(newDeleteCommand(app, "goal", func(svc *ledger.Service, ctx context.Context, id string) error {
		return svc.DeleteGoal(ctx, id)
	}))
	return cmd
}

func newGoalAddCommand(app *App) *cobra.Command {
	var g model.Goal
	var target decimalFlag
	var deadline dateFlag
	var goalType string

	cmd := &cobra.Command{
		Use:   "add <title> <target>",
		Short: "Add a goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := target.Set(args[1]); err != nil {
				return err
			}
			g.Title = strings.TrimSpace(args[0])
			g.TargetAmount = target.d
			g.Deadline = deadline.d
			g.Type = model.GoalType(goalType)
			return app.run(cmd, func(svc *ledger.Service) error {
				added, err := svc.AddGoal(cmd.Context(), g)
				if err != nil {
					return err
				}
				return app.done(cmd, added, "Added goal %s (%s)", added.Title, added.ID)
			})
		},
	}

	cmd.Flags().StringVar(&goalType, "type", string(model.GoalRevenue), "revenue|clients|projects|savings")
	cmd.Flags().Var(&deadline, "deadline", "deadline (YYYY-MM-DD)")
	return cmd
}

func newGoalListCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show goal progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(svc *ledger.Service) error {
				p, doc, err := app.printer(cmd, svc)
				if err != nil {
					return err
				}
				goals := analytics.Goals(doc, svc.Now())
				if app.JSON {
					return writeJSON(cmd, goals)
				}
				p.Goals(goals)
				return nil
			})
		},
	}
}
