// Package cli wires the cobra command tree over the application
// services. Commands resolve the project base lazily so global flags
// are parsed before any storage is touched.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	charmLog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/evanmorris/clicky/internal/adapters/storage/jsonfile"
	"github.com/evanmorris/clicky/internal/adapters/storage/sqlite"
	"github.com/evanmorris/clicky/internal/app"
	"github.com/evanmorris/clicky/internal/config"
	"github.com/evanmorris/clicky/internal/domain"
	"github.com/evanmorris/clicky/internal/platform"
)

// App carries the resolved runtime state shared by all commands.
type App struct {
	Logger *charmLog.Logger

	pathFlag    string
	interactive bool

	Base    string
	Config  config.Config
	Session *app.Session

	closeStore func() error
}

// NewRootCmd creates the top-level "clicky" command and registers all
// subcommands against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	if a.Logger == nil {
		a.Logger = charmLog.New(io.Discard)
	}

	root := &cobra.Command{
		Use:           "clicky",
		Short:         "File-backed kanban board for a single project",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.Close()
		},
	}

	root.PersistentFlags().StringVar(&a.pathFlag, "path", "", "project base directory (overrides "+platform.EnvBasePath+" and the upward search)")
	root.PersistentFlags().BoolVarP(&a.interactive, "interactive", "i", false, "prompt for values instead of reading flags")

	root.AddCommand(
		newInitCmd(a),
		newCreateCmd(a),
		newShowCmd(a),
		newListCmd(a),
		newUpdateCmd(a),
		newMoveCmd(a),
		newDeleteCmd(a),
		newColumnCmd(a),
		newInfoCmd(a),
		newBoardCmd(a),
	)

	return root
}

// boardMarker is the file whose presence identifies a project base
// during the upward search.
func boardMarker() string {
	return filepath.Join(jsonfile.DirName, jsonfile.FileName)
}

// setup resolves the base directory, loads config, and opens the
// selected store. searchUp enables the ancestor walk; init disables it
// so a new board always lands in the directory the user named.
func (a *App) setup(searchUp bool) error {
	if a.Session != nil {
		return nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolve working dir: %w", err)
	}
	if searchUp {
		a.Base = platform.ResolveBase(a.pathFlag, os.Getenv, cwd, boardMarker())
	} else {
		a.Base = strings.TrimSpace(a.pathFlag)
		if a.Base == "" {
			a.Base = strings.TrimSpace(os.Getenv(platform.EnvBasePath))
		}
		if a.Base == "" {
			a.Base = cwd
		}
	}

	cfg, err := config.Load(config.ConfigPath(a.Base), config.Default(a.Base))
	if err != nil {
		return err
	}
	a.Config = cfg
	a.Logger.Debug("base resolved", "base", a.Base, "backend", cfg.Storage.Backend)

	store, closeStore, err := openStore(a.Base, cfg)
	if err != nil {
		return err
	}
	a.closeStore = closeStore
	a.Session = app.NewSession(store, nil)
	return nil
}

// Close releases the store if the selected backend holds resources.
func (a *App) Close() error {
	if a.closeStore == nil {
		return nil
	}
	fn := a.closeStore
	a.closeStore = nil
	return fn()
}

func openStore(base string, cfg config.Config) (app.BoardStore, func() error, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		store, err := sqlite.Open(cfg.Storage.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, store.Close, nil
	default:
		return jsonfile.New(base), nil, nil
	}
}

// columnTemplates maps config column templates to domain columns.
func columnTemplates(cfg config.Config) []domain.Column {
	if len(cfg.Board.Columns) == 0 {
		return nil
	}
	cols := make([]domain.Column, 0, len(cfg.Board.Columns))
	for _, t := range cfg.Board.Columns {
		cols = append(cols, domain.NewColumn(t.ID, t.Name, t.Order))
	}
	return cols
}

// friendlyError rewrites the common sentinels into actionable messages.
func friendlyError(err error) error {
	switch {
	case errors.Is(err, app.ErrBoardNotFound):
		return errors.New("no board found; run `clicky init` first")
	case errors.Is(err, app.ErrBoardExists):
		return errors.New("a board already exists here")
	default:
		return err
	}
}
