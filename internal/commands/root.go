package commands

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/buildinfo"
	"github.com/tally-dev/tally/internal/config"
	"github.com/tally-dev/tally/internal/ledger"
	"github.com/tally-dev/tally/internal/log"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/report"
)

// App holds the global flags shared by every subcommand.
type App struct {
	Workspace string
	Now       string // fixed clock, for reproducible output
	LogLevel  string
	JSON      bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	app := &App{}

	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Freelancer business ledger",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&app.Workspace, "workspace", "w", ".", "workspace directory")
	rootCmd.PersistentFlags().StringVar(&app.Now, "now", "", "pretend the current time is this date or RFC3339 time")
	rootCmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "log level (debug|info|warn|error), overrides tally.yaml")
	rootCmd.PersistentFlags().BoolVar(&app.JSON, "json", false, "print JSON instead of text")

	rootCmd.AddCommand(newInitCommand(app))
	rootCmd.AddCommand(newClientCommand(app))
	rootCmd.AddCommand(newProjectCommand(app))
	rootCmd.AddCommand(newTaskCommand(app))
	rootCmd.AddCommand(newPaymentCommand(app))
	rootCmd.AddCommand(newExpenseCommand(app))
	rootCmd.AddCommand(newTimeCommand(app))
	rootCmd.AddCommand(newInvoiceCommand(app))
	rootCmd.AddCommand(newProposalCommand(app))
	rootCmd.AddCommand(newEquipmentCommand(app))
	rootCmd.AddCommand(newGoalCommand(app))
	rootCmd.AddCommand(newSettingsCommand(app))
	rootCmd.AddCommand(newSummaryCommand(app))
	rootCmd.AddCommand(newAnalyticsCommand(app))
	rootCmd.AddCommand(newTodayCommand(app))
	rootCmd.AddCommand(newExportCommand(app))
	rootCmd.AddCommand(newImportCommand(app))
	rootCmd.AddCommand(newBankCommand(app))
	rootCmd.AddCommand(newDoctorCommand(app))
	rootCmd.AddCommand(newHistoryCommand(app))

	return rootCmd
}

func (a *App) root() (string, error) {
	dir, err := filepath.Abs(a.Workspace)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return dir, nil
}

// clock returns time.Now, or a fixed time when --now is set.
func (a *App) clock() (func() time.Time, error) {
	if a.Now == "" {
		return time.Now, nil
	}
	s := strings.TrimSpace(a.Now)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return func() time.Time { return t }, nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("invalid --now %q (expected YYYY-MM-DD or RFC3339)", a.Now)
	}
	t := d.Add(12 * time.Hour)
	return func() time.Time { return t }, nil
}

func (a *App) logger(cmd *cobra.Command, cfg *config.Config) (*log.Logger, error) {
	level := a.LogLevel
	if level == "" && cfg != nil {
		level = cfg.Log.Level
	}
	if level == "" {
		level = "warn"
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return log.New(log.Config{Level: lvl, Component: log.ComponentCLI, Output: cmd.ErrOrStderr()}), nil
}

// open loads the workspace and returns a service over it. Callers close it.
func (a *App) open(cmd *cobra.Command) (*ledger.Service, error) {
	root, err := a.root()
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadWorkspace(root)
	if err != nil {
		return nil, fmt.Errorf("%w (run `tally init` first?)", err)
	}
	now, err := a.clock()
	if err != nil {
		return nil, err
	}
	logger, err := a.logger(cmd, cfg)
	if err != nil {
		return nil, err
	}
	svc, err := ledger.Open(root, ledger.WithClock(now), ledger.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return svc, nil
}

// run opens the workspace, calls fn and closes the workspace again.
func (a *App) run(cmd *cobra.Command, fn func(svc *ledger.Service) error) error {
	svc, err := a.open(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()
	return fn(svc)
}

func (a *App) printer(cmd *cobra.Command, svc *ledger.Service) (*report.Printer, *model.Document, error) {
	doc, err := svc.Document(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	return report.New(cmd.OutOrStdout(), doc.Settings.Currency), doc, nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// done prints a one-line confirmation, or v as JSON.
func (a *App) done(cmd *cobra.Command, v any, format string, args ...any) error {
	if a.JSON {
		return writeJSON(cmd, v)
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), format+"\n", args...)
	return err
}
