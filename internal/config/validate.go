package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if c.ImageDir == "" {
		return errors.New("image_dir must be set")
	}
	if c.DatabaseURL == "" {
		return errors.New("database_url must be set")
	}
	switch c.DatabaseDialect {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database_dialect: unsupported value %q", c.DatabaseDialect)
	}
	if err := ensurePositiveMap(map[string]int64{
		"port":             int64(c.Port),
		"body_limit_bytes": c.BodyLimitBytes,
	}); err != nil {
		return err
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("log_format: unsupported value %q", c.LogFormat)
	}
	if c.MigrationLockPath == "" {
		return errors.New("migration_lock_path must be set")
	}
	return nil
}
