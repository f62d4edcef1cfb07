package main

import (
	"context"
	"fmt"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"archiveboard/internal/catalog"
	"archiveboard/internal/config"
	"archiveboard/internal/dialect"
	"archiveboard/internal/fingerprint"
	"archiveboard/internal/logging"
	"archiveboard/internal/mediastore"
	"archiveboard/internal/orchestrator"
)

// commandContext lazily resolves configuration and the storage stack once
// per invocation, shared across a command's flags via closures.
type commandContext struct {
	configFlag *string
	jsonOutput *bool

	openOnce sync.Once
	cfg      *config.Config
	orch     *orchestrator.Orchestrator
	openErr  error
}

func newCommandContext(configFlag *string, jsonOutput *bool) *commandContext {
	return &commandContext{configFlag: configFlag, jsonOutput: jsonOutput}
}

// JSONMode returns true when the user passed --json.
func (c *commandContext) JSONMode() bool {
	return c != nil && c.jsonOutput != nil && *c.jsonOutput
}

// open resolves configuration, migrates the catalog database, opens the
// media store, and wires an Orchestrator over both. Subsequent calls reuse
// the same collaborators.
func (c *commandContext) open(ctx context.Context) (*orchestrator.Orchestrator, error) {
	c.openOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.openErr = fmt.Errorf("load config: %w", err)
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.openErr = err
			return
		}
		c.cfg = cfg

		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.openErr = fmt.Errorf("init logger: %w", err)
			return
		}

		driverName, d, err := resolveDialect(cfg)
		if err != nil {
			c.openErr = err
			return
		}

		cat, err := catalog.Open(ctx, driverName, cfg.DatabaseURL, d)
		if err != nil {
			c.openErr = err
			return
		}

		store, err := mediastore.Open(cfg.ImageDir)
		if err != nil {
			c.openErr = err
			return
		}

		c.orch = orchestrator.New(store, cat, fingerprint.DefaultVideoTools(), logger)
	})
	return c.orch, c.openErr
}

// resolveDialect maps Config.DatabaseDialect (already normalized to
// "sqlite" or "postgres" by config.Load) onto a driver name and Dialect.
func resolveDialect(cfg *config.Config) (string, dialect.Dialect, error) {
	switch cfg.DatabaseDialect {
	case "sqlite":
		return "sqlite", dialect.SQLite{MigrationLockPath: cfg.MigrationLockPath}, nil
	case "postgres", "postgresql":
		return "pgx", dialect.Postgres{}, nil
	default:
		return "", nil, fmt.Errorf("unsupported database dialect %q", cfg.DatabaseDialect)
	}
}
