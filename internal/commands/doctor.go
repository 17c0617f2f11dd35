package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/check"
	"github.com/tally-dev/tally/internal/ledger"
)

func newDoctorCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the document for inconsistencies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(svc *ledger.Service) error {
				doc, err := svc.Document(cmd.Context())
				if err != nil {
					return err
				}
				issues := check.Document(doc)
				if app.JSON {
					if issues == nil {
						issues = []check.Issue{}
					}
					if err := writeJSON(cmd, issues); err != nil {
						return err
					}
				} else {
					for _, is := range issues {
						fmt.Fprintln(cmd.OutOrStdout(), is.Error())
					}
				}
				errs := check.Errors(issues)
				if len(errs) > 0 {
					return fmt.Errorf("%d problems found", len(errs))
				}
				if !app.JSON {
					fmt.Fprintf(cmd.OutOrStdout(), "No problems found (%d warnings)\n", len(issues))
				}
				return nil
			})
		},
	}
}
