/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command registration.
//
// Design: Extensions register during init() but aren't initialised until
// first command execution. This two-phase pattern allows extensions to
// declare commands before the store exists. The service is created once
// and shared across all extensions via the Context.

package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/jpl-au/anondocs/extension"
	"github.com/jpl-au/anondocs/internal/config"
	"github.com/jpl-au/anondocs/internal/document"
	"github.com/jpl-au/anondocs/internal/log"
	"github.com/jpl-au/anondocs/internal/logging"
	"github.com/jpl-au/anondocs/internal/repo"
	"go.uber.org/zap"
)

// noStoreCommands lists commands that bypass automatic store initialisation.
// Built from the bootstrap commands plus extension-declared storeless commands.
var noStoreCommands map[string]bool

// buildNoStoreCommands creates the set of commands that skip store initialisation.
//
// When adding a new command: If it's a core bootstrap command, add it here.
// Otherwise, implement extension.Storeless in your extension.
func buildNoStoreCommands() map[string]bool {
	cmds := map[string]bool{
		"init":       true,
		"config":     true,
		"help":       true,
		"completion": true,
	}
	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Storeless); ok {
			for _, name := range s.NoStoreCommands() {
				cmds[name] = true
			}
		}
	}
	return cmds
}

var (
	extContext extension.Context
	extService *document.Service
	extLogger  *zap.Logger
	initOnce   sync.Once
	initErr    error
)

// Logger builds the operational logger from cfg. A bad level falls back to
// warn rather than failing the command.
func Logger(cfg *config.Config) *zap.Logger {
	l, err := logging.New(cfg.LogLevel())
	if err != nil {
		l, _ = logging.New(config.DefaultLogLevel)
	}
	return l
}

// OpenService opens the document service for the --db and --dir flags.
// Commands that manage their own lifecycle (serve) use it directly.
func OpenService(cfg *config.Config, l *zap.Logger) (*document.Service, error) {
	opts := []document.Option{document.WithConfig(cfg), document.WithLogger(l)}
	if d := Dir(); d != "" {
		return document.Open(filepath.Join(d, repo.Dir, repo.DBFileName(DB())), opts...)
	}
	return document.New(DB(), opts...)
}

// initExtensions creates the document service and injects it into extensions.
//
// repo.ErrNotInitialised is returned as-is so first-time users see
// "run 'anondocs init'" rather than a wrapped database error.
func initExtensions() error {
	initOnce.Do(func() {
		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		extLogger = Logger(cfg)

		svc, err := OpenService(cfg, extLogger)
		if errors.Is(err, repo.ErrNotInitialised) {
			initErr = err
			return
		}
		if err != nil {
			initErr = fmt.Errorf("opening database: %w", err)
			return
		}
		extService = svc

		log.SetProject(svc.Dir())

		extContext = extension.NewContext(svc, svc.DB(), cfg, extLogger)
		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
// Called once before Execute runs.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}
		noStoreCommands = buildNoStoreCommands()
	})
}
