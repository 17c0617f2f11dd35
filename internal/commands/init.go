package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tally-dev/tally/internal/config"
	"github.com/tally-dev/tally/internal/gitops"
	"github.com/tally-dev/tally/internal/log"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/store"
)

func newInitCommand(app *App) *cobra.Command {
	var name, owner, backend string
	var noGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new tally workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := app.Workspace
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			logger, err := app.logger(cmd, nil)
			if err != nil {
				return err
			}

			cfg := config.Default(name)
			cfg.Business.Owner = owner
			if backend != "" {
				cfg.Storage.Backend = backend
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			hash, err := runInit(cmd.Context(), absDir, cfg, !noGit, logger)
			if err != nil {
				return err
			}
			if hash != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized tally workspace at %s (%s)\n", absDir, hash)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized tally workspace at %s\n", absDir)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&owner, "owner", "", "your name")
	cmd.Flags().StringVar(&backend, "backend", "", "storage backend (file|sqlite)")
	cmd.Flags().BoolVar(&noGit, "no-git", false, "do not create a git repository")

	return cmd
}

// runInit lays out the workspace and returns the initial commit hash, or ""
// when git is off or unavailable.
func runInit(ctx context.Context, dir string, cfg *config.Config, useGit bool, logger *log.Logger) (string, error) {
	if _, err := os.Stat(filepath.Join(dir, config.FileName)); err == nil {
		return "", fmt.Errorf("%s already exists in %s", config.FileName, dir)
	}

	dirs := []string{
		"data",
		"logs",
		"import",
		filepath.Join("import", "processed"),
		"exports",
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return "", fmt.Errorf("writing config: %w", err)
	}

	st, err := store.Open(dir, cfg, logger)
	if err != nil {
		return "", err
	}
	doc := model.NewDocument()
	doc.Settings.BusinessName = cfg.Business.Name
	doc.Settings.UserName = cfg.Business.Owner
	err = st.Save(ctx, doc)
	if cerr := st.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("writing document: %w", err)
	}

	gitignore := ".env\nexports/\n*.tmp\n*.db-wal\n*.db-shm\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return "", fmt.Errorf("writing .gitignore: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return "", fmt.Errorf("writing .gitkeep: %w", err)
	}

	if !useGit {
		return "", nil
	}
	if !gitops.Available() {
		logger.Warn("git not found, workspace history disabled")
		return "", nil
	}
	if err := gitops.Init(dir); err != nil {
		return "", fmt.Errorf("git init: %w", err)
	}
	author := gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
	hash, err := gitops.CommitAll(dir, "init: Initialize "+cfg.Business.Name, author)
	if err != nil {
		return "", fmt.Errorf("initial commit: %w", err)
	}
	return hash, nil
}
