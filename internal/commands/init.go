package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spendmap/spendmap/internal/config"
	"github.com/spendmap/spendmap/internal/gitops"
	"github.com/spendmap/spendmap/internal/history"
	"github.com/spendmap/spendmap/internal/importer"
	"github.com/spendmap/spendmap/internal/mapping"
)

func newInitCommand(v *viper.Viper) *cobra.Command {
	var noGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new spendmap workspace",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			backend := mapping.Backend(v.GetString(config.KeyStoreBackend))
			return runInit(cmd, absDir, backend, !noGit && gitops.Available())
		},
	}

	cmd.Flags().BoolVar(&noGit, "no-git", false, "do not create a git repository")

	return cmd
}

func runInit(cmd *cobra.Command, dir string, backend mapping.Backend, useGit bool) error {
	dirs := []string{
		importer.Dir,
		importer.ProcessedDir,
		history.Dir,
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default()
	if backend == mapping.BackendSQLite {
		cfg.Store.Backend = string(backend)
		cfg.Store.Path = "mappings.db"
	}
	cfg.Git.AutoCommit = useGit
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// An empty store still gets its header so the file is ready for editing.
	store, cleanup, err := mapping.Open(mapping.Backend(cfg.Store.Backend), cfg.StorePath(dir))
	if err != nil {
		return fmt.Errorf("opening mapping store: %w", err)
	}
	defer cleanup()
	existing, err := store.Load(context.Background())
	if err != nil {
		return fmt.Errorf("reading mapping store: %w", err)
	}
	if len(existing) == 0 {
		if err := store.Save(context.Background(), nil); err != nil {
			return fmt.Errorf("writing mapping store: %w", err)
		}
	}

	// Raw statements carry account numbers; keep them out of history.
	gitignore := "import/\n.env\n*.db-journal\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	out := cmd.OutOrStdout()
	if !useGit {
		fmt.Fprintf(out, "Initialized spendmap workspace at %s\n", dir)
		return nil
	}

	if !gitops.IsRepo(dir) {
		if err := gitops.Init(dir); err != nil {
			return fmt.Errorf("git init: %w", err)
		}
	}
	author := gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
	hash, err := gitops.Commit(dir, "init: spendmap workspace", author)
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Fprintf(out, "Initialized spendmap workspace at %s (%s)\n", dir, hash)
	return nil
}
