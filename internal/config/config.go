package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config encapsulates all configuration values for archiveboard.
type Config struct {
	DatabaseURL       string `toml:"database_url"`
	DatabaseDialect   string `toml:"database_dialect"`
	CDNBaseURL        string `toml:"cdn_base_url"`
	ImageDir          string `toml:"image_dir"`
	Port              int    `toml:"port"`
	BodyLimitBytes    int64  `toml:"body_limit_bytes"`
	LogDir            string `toml:"log_dir"`
	LogFormat         string `toml:"log_format"`
	LogLevel          string `toml:"log_level"`
	MigrationLockPath string `toml:"migration_lock_path"`
}

const (
	defaultDatabaseURL       = "archiveboard.sqlite3"
	defaultImageDir          = "~/.local/share/archiveboard/images"
	defaultLogDir            = "~/.local/share/archiveboard/logs"
	defaultPort              = 8080
	defaultBodyLimitBytes    = 20 << 20 // 20 MiB
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultMigrationLockPath = "~/.local/share/archiveboard/migrate.lock"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		DatabaseURL:       defaultDatabaseURL,
		DatabaseDialect:   "",
		ImageDir:          defaultImageDir,
		Port:              defaultPort,
		BodyLimitBytes:    defaultBodyLimitBytes,
		LogDir:            defaultLogDir,
		LogFormat:         defaultLogFormat,
		LogLevel:          defaultLogLevel,
		MigrationLockPath: defaultMigrationLockPath,
	}
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/archiveboard/config.toml")
}

// Load locates, parses, normalizes, and validates a configuration file. The
// returned config has all path fields expanded.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/archiveboard/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("archiveboard.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates required directories for archive operation.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.ImageDir, c.LogDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	if lockDir := filepath.Dir(c.MigrationLockPath); lockDir != "" && lockDir != "." {
		if err := os.MkdirAll(lockDir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", lockDir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	sample := `# archiveboard configuration
# ===========================

# Database backend. Set database_dialect to "sqlite" or "postgres", or leave
# empty to infer it from database_url's scheme (sqlite:// / postgres://).
database_url = "archiveboard.sqlite3"
database_dialect = ""

# Content-addressed asset store root.
image_dir = "~/.local/share/archiveboard/images"

# Optional CDN/base URL prefix used when reporting asset locations.
cdn_base_url = ""

# HTTP facade bind port (read by the CLI/facade layer, not the core).
port = 8080
body_limit_bytes = 20971520

# Logging
log_dir = "~/.local/share/archiveboard/logs"
log_format = "console"  # "console" or "json"
log_level = "info"      # debug, info, warn, error

# Guards concurrent schema migration across processes sharing one database file.
migration_lock_path = "~/.local/share/archiveboard/migrate.lock"
`

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func ensurePositiveMap(values map[string]int64) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
