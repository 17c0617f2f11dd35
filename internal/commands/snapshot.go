package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/ledger"
)

func newExportCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the whole document as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(svc *ledger.Service) error {
				data, err := svc.ExportSnapshot(cmd.Context())
				if err != nil {
					return err
				}
				if len(args) == 0 || args[0] == "-" {
					_, err = cmd.OutOrStdout().Write(data)
					return err
				}
				if err := os.WriteFile(args[0], data, 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", args[0], err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", args[0])
				return nil
			})
		},
	}
}

func newImportCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the whole document with a JSON export",
		Long:  "Replace the whole document with a JSON export. Older export shapes are accepted. An invalid file leaves the workspace untouched.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			return app.run(cmd, func(svc *ledger.Service) error {
				doc, err := svc.ImportSnapshot(cmd.Context(), data)
				if err != nil {
					return err
				}
				return app.done(cmd, map[string]int{
					"clients":  len(doc.Clients),
					"projects": len(doc.Projects),
					"payments": len(doc.Payments),
				}, "Imported %d clients, %d projects, %d payments", len(doc.Clients), len(doc.Projects), len(doc.Payments))
			})
		},
	}
}

func newBankCommand(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "bank",
		Short: "Import bank statement CSVs from the import/ directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(svc *ledger.Service) error {
				files, err := svc.ImportBank(cmd.Context(), format)
				if err != nil {
					return err
				}
				if app.JSON {
					if files == nil {
						files = []ledger.BankFile{}
					}
					return writeJSON(cmd, files)
				}
				if len(files) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No CSV files in import/")
					return nil
				}
				rows := make([][]string, len(files))
				for i, f := range files {
					rows[i] = []string{f.Name, fmt.Sprint(f.Transactions), fmt.Sprint(f.Expenses),
						fmt.Sprint(f.Payments), fmt.Sprint(f.Duplicates), fmt.Sprint(f.Skipped)}
				}
				return app.list(cmd, files, []string{"File", "Rows", "Expenses", "Payments", "Duplicates", "Skipped"}, rows)
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "chase", "statement format")
	return cmd
}
