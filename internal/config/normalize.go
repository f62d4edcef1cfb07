package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	var err error
	if c.ImageDir, err = expandPath(c.ImageDir); err != nil {
		return fmt.Errorf("image_dir: %w", err)
	}
	if c.LogDir, err = expandPath(c.LogDir); err != nil {
		return fmt.Errorf("log_dir: %w", err)
	}
	if strings.TrimSpace(c.MigrationLockPath) == "" {
		c.MigrationLockPath = defaultMigrationLockPath
	}
	if c.MigrationLockPath, err = expandPath(c.MigrationLockPath); err != nil {
		return fmt.Errorf("migration_lock_path: %w", err)
	}

	c.DatabaseURL = strings.TrimSpace(c.DatabaseURL)
	if c.DatabaseURL == "" {
		c.DatabaseURL = defaultDatabaseURL
	}

	c.DatabaseDialect = strings.ToLower(strings.TrimSpace(c.DatabaseDialect))
	if c.DatabaseDialect == "" {
		c.DatabaseDialect = inferDialect(c.DatabaseURL)
	}

	c.CDNBaseURL = strings.TrimSpace(c.CDNBaseURL)

	if c.Port <= 0 {
		c.Port = defaultPort
	}
	if c.BodyLimitBytes <= 0 {
		c.BodyLimitBytes = defaultBodyLimitBytes
	}

	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	switch c.LogFormat {
	case "":
		c.LogFormat = defaultLogFormat
	case "console", "json":
	default:
		return fmt.Errorf("log_format: unsupported value %q", c.LogFormat)
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}

	return nil
}

func inferDialect(databaseURL string) string {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return "postgres"
	default:
		return "sqlite"
	}
}
