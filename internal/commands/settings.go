package commands

import (
	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/ledger"
)

func newSettingsCommand(app *App) *cobra.Command {
	var business, user, currency string
	var taxRate, hourlyRate decimalFlag

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change document settings",
		Example: `  tally settings
  tally settings --tax-rate 23 --hourly-rate 60 --currency EUR`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.run(cmd, func(svc *ledger.Service) error {
				doc, err := svc.Document(cmd.Context())
				if err != nil {
					return err
				}
				s := doc.Settings
				flags := cmd.Flags()
				changed := false
				if flags.Changed("business") {
					s.BusinessName, changed = business, true
				}
				if flags.Changed("user") {
					s.UserName, changed = user, true
				}
				if flags.Changed("currency") {
					s.Currency, changed = currency, true
				}
				if taxRate.set {
					s.TaxRate, changed = taxRate.d, true
				}
				if hourlyRate.set {
					s.HourlyRate, changed = hourlyRate.d, true
				}
				if changed {
					if err := svc.SaveSettings(cmd.Context(), s); err != nil {
						return err
					}
				}
				if app.JSON {
					return writeJSON(cmd, s)
				}
				rows := [][]string{
					{"Business", s.BusinessName},
					{"User", s.UserName},
					{"Currency", s.Currency},
					{"Tax rate", s.TaxRate.String() + "%"},
					{"Hourly rate", money(s.HourlyRate)},
				}
				return app.list(cmd, s, []string{"Setting", "Value"}, rows)
			})
		},
	}

	cmd.Flags().StringVar(&business, "business", "", "business name")
	cmd.Flags().StringVar(&user, "user", "", "your name")
	cmd.Flags().StringVar(&currency, "currency", "", "currency code")
	cmd.Flags().Var(&taxRate, "tax-rate", "tax rate in percent")
	cmd.Flags().Var(&hourlyRate, "hourly-rate", "default hourly rate")
	return cmd
}
