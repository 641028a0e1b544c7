package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/wardrobe/internal/logger"
	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend = "backend"
	cfgKeyCatalog = "catalog"
	cfgKeyDataDir = "data_dir"
	cfgKeyLogMode = "log_mode"
	cfgKeyStrict  = "strict"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# wardrobe CLI configuration

# Storage backend
backend: sqlite

# Catalog payload (YAML or JSON). Relative paths resolve against this
# directory. Leave empty to use the built-in catalog.
catalog: ""

# Data directory (optional; overridable by --data-dir)
# data_dir:

# Logging: quiet, development, or production
log_mode: quiet

# Reject selection invariant violations instead of logging them
strict: false
`

// loadConfig reads config.yaml from configDir, creating the directory and a
// default file on first run. WARDROBE_LOG_MODE and WARDROBE_STRICT override
// the file.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyLogMode, logger.ModeQuiet)
	v.SetDefault(cfgKeyStrict, false)
	v.SetEnvPrefix("WARDROBE")
	_ = v.BindEnv(cfgKeyLogMode)
	_ = v.BindEnv(cfgKeyStrict)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates config.yaml if it does not exist.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
