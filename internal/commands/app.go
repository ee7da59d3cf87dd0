package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spendmap/spendmap/internal/config"
	"github.com/spendmap/spendmap/internal/gitops"
	"github.com/spendmap/spendmap/internal/history"
	"github.com/spendmap/spendmap/internal/logger"
	"github.com/spendmap/spendmap/internal/mapping"
	"github.com/spendmap/spendmap/internal/model"
	"github.com/spendmap/spendmap/internal/pipeline"
	"github.com/spendmap/spendmap/internal/statement"
)

// app is the state shared by commands that work on a workspace.
type app struct {
	ctx       context.Context
	cfg       *config.Config
	workspace string
	log       zerolog.Logger
	store     mapping.Store
	cleanup   mapping.CleanupFunc
	in        io.Reader
	out       io.Writer
	color     bool
}

func openApp(cmd *cobra.Command, v *viper.Viper) (*app, error) {
	cfg, workspace, err := config.Resolve(v)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if v.GetBool(keyVerbose) {
		level = "debug"
	}
	log := logger.New(cmd.ErrOrStderr(), level)
	ctx := logger.WithContext(cmd.Context(), log)

	store, cleanup, err := mapping.Open(mapping.Backend(cfg.Store.Backend), cfg.StorePath(workspace))
	if err != nil {
		return nil, fmt.Errorf("opening mapping store: %w", err)
	}

	return &app{
		ctx:       ctx,
		cfg:       cfg,
		workspace: workspace,
		log:       log,
		store:     store,
		cleanup:   cleanup,
		in:        cmd.InOrStdin(),
		out:       cmd.OutOrStdout(),
		color:     useColor(v),
	}, nil
}

func (a *app) Close() {
	if err := a.cleanup(); err != nil {
		a.log.Warn().Err(err).Msg("closing mapping store")
	}
}

func (a *app) pipelineOptions() pipeline.Options {
	sc := a.cfg.Statement
	opts := statement.DefaultOptions()
	opts.HeaderTokens = sc.HeaderTokens
	opts.DateColumn = sc.DateColumn
	opts.RemarksColumn = sc.RemarksColumn
	opts.DebitColumn = sc.DebitColumn
	opts.MaxTrailingMissing = sc.MaxTrailingMissing
	return pipeline.Options{Statement: opts, DateLayouts: sc.DateLayouts}
}

// afterSave records saved changes in the history log and, when enabled,
// commits the store. Failures here are logged, never fatal.
func (a *app) afterSave(changes []model.MappingChange) {
	if len(changes) == 0 {
		return
	}
	hash := a.commitStore(changes)
	entries := history.FromChanges(time.Now().UTC(), changes, hash)
	if err := history.Append(a.workspace, entries); err != nil {
		a.log.Warn().Err(err).Msg("failed to write mapping history")
	}
}

func (a *app) commitStore(changes []model.MappingChange) string {
	if !a.cfg.Git.AutoCommit || a.cfg.Store.Backend == string(mapping.BackendMemory) {
		return ""
	}
	if !gitops.Available() || !gitops.IsRepo(a.workspace) {
		a.log.Debug().Str("workspace", a.workspace).Msg("not a git repository, skipping commit")
		return ""
	}
	rel, err := filepath.Rel(a.workspace, a.store.Location())
	if err != nil {
		a.log.Warn().Err(err).Msg("store is outside the workspace, skipping commit")
		return ""
	}

	author := gitops.Author{Name: a.cfg.Git.AuthorName, Email: a.cfg.Git.AuthorEmail}
	hash, err := gitops.Commit(a.workspace, commitMessage(changes), author, rel)
	if err != nil {
		a.log.Warn().Err(err).Msg("failed to commit mappings")
		return ""
	}
	if hash != "" {
		a.log.Info().Str("commit", hash).Msg("committed mappings")
	}
	return hash
}

func commitMessage(changes []model.MappingChange) string {
	added, updated := 0, 0
	for _, c := range changes {
		if c.IsNew() {
			added++
		} else {
			updated++
		}
	}
	if updated == 0 {
		return fmt.Sprintf("mappings: %d new", added)
	}
	return fmt.Sprintf("mappings: %d new, %d updated", added, updated)
}
