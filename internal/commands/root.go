package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spendmap/spendmap/internal/buildinfo"
	"github.com/spendmap/spendmap/internal/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	v := config.NewViper()

	rootCmd := &cobra.Command{
		Use:     "spendmap",
		Short:   "Categorize UPI bank statements and summarize spending",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadDotEnv(v.GetString(config.KeyWorkspace))
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("workspace", "w", ".", "workspace directory")
	flags.StringP("config", "c", "", "config file (default <workspace>/spendmap.yaml)")
	flags.String("store", "", "mapping store path, overrides store.path")
	flags.String("backend", "", "mapping store backend: csv, sqlite or memory")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	flags.Bool("no-color", false, "disable colored output")

	_ = v.BindPFlag(config.KeyWorkspace, flags.Lookup("workspace"))
	_ = v.BindPFlag(config.KeyConfig, flags.Lookup("config"))
	_ = v.BindPFlag(config.KeyStorePath, flags.Lookup("store"))
	_ = v.BindPFlag(config.KeyStoreBackend, flags.Lookup("backend"))
	_ = v.BindPFlag(keyVerbose, flags.Lookup("verbose"))
	_ = v.BindPFlag(keyNoColor, flags.Lookup("no-color"))

	rootCmd.AddCommand(newInitCommand(v))
	rootCmd.AddCommand(newReportCommand(v))
	rootCmd.AddCommand(newMappingsCommand(v))
	rootCmd.AddCommand(newCategoriesCommand(v))

	return rootCmd
}

const (
	keyVerbose = "verbose"
	keyNoColor = "no-color"
)

// loadDotEnv reads <workspace>/.env into the environment when present.
// Variables already set are not overridden.
func loadDotEnv(workspace string) error {
	err := godotenv.Load(filepath.Join(workspace, ".env"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

func useColor(v *viper.Viper) bool {
	return !color.NoColor && !v.GetBool(keyNoColor)
}
