package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	syncErrors "github.com/bashhack/syncshot/internal/errors"
)

const (
	// DefaultPeriod is the default time (in seconds) between sync cycles.
	DefaultPeriod = 10

	// DefaultMaxCommitRounds is the default number of commits one cycle may make
	// while draining a working tree that keeps changing. 0 means no limit.
	DefaultMaxCommitRounds = 50

	// EnvPrefix prefixes every environment variable syncshot reads.
	EnvPrefix = "SYNCSHOT_"

	// configFileName is looked up under the XDG config directories.
	configFileName = "syncshot/config.yaml"
)

// Config holds all syncshot application settings.
// Values are layered: defaults, then the YAML config file, then environment
// variables, then command-line flags.
type Config struct {
	// Repository configuration

	// RepoPath is the working copy to keep in sync.
	// If empty, the current working directory is used.
	RepoPath string

	// Period is the number of seconds to wait between sync cycles. Must be positive.
	Period int

	// Git command options

	// CommandTimeout is the number of seconds a single git command may run
	// before it is killed. 0 means commands are never killed.
	CommandTimeout int

	// MaxCommitRounds bounds the commits made while draining local changes
	// in one cycle. 0 means the drain runs until the tree is clean.
	MaxCommitRounds int

	// Debugging options

	// Debug enables debug-level logging.
	Debug bool

	// LogFile receives log records instead of stderr when set.
	LogFile string

	// ConfigFile is an explicit YAML config file. When empty, the XDG config
	// directories are searched for syncshot/config.yaml.
	ConfigFile string

	// Special flags

	// Version indicates whether to show version information and exit.
	Version bool

	// Build metadata

	// VersionInfo contains version, commit, and build date information.
	// This is typically injected at build time.
	VersionInfo VersionInfo
}

// VersionInfo contains build-time version metadata.
type VersionInfo struct {
	// Version is the semantic version number (e.g., "v1.2.3").
	Version string

	// Commit is the Git commit hash from which the binary was built.
	Commit string

	// Date is the build timestamp in human-readable format.
	Date string
}

// fileConfig is the YAML config file layout. Pointers distinguish an
// absent key from a zero value.
type fileConfig struct {
	Period          *int    `yaml:"period"`
	Debug           *bool   `yaml:"debug"`
	RepoPath        *string `yaml:"repo_path"`
	LogFile         *string `yaml:"log_file"`
	CommandTimeout  *int    `yaml:"command_timeout"`
	MaxCommitRounds *int    `yaml:"max_commit_rounds"`
}

// New creates a new Config with default values
func New() *Config {
	return &Config{
		Period:          DefaultPeriod,
		MaxCommitRounds: DefaultMaxCommitRounds,

		// Default version info, will be overridden if provided
		VersionInfo: VersionInfo{
			Version: "dev",
			Commit:  "unknown",
			Date:    "unknown",
		},
	}
}

// PeriodDuration returns Period as a time.Duration.
func (c *Config) PeriodDuration() time.Duration {
	return time.Duration(c.Period) * time.Second
}

// CommandTimeoutDuration returns CommandTimeout as a time.Duration.
func (c *Config) CommandTimeoutDuration() time.Duration {
	return time.Duration(c.CommandTimeout) * time.Second
}

// SetupFlags registers syncshot's command-line flags on fs. Flag values are
// only applied to the Config by ApplyFlags, and only when set explicitly.
func (c *Config) SetupFlags(fs *pflag.FlagSet) {
	fs.Int("period", c.Period, "Seconds between sync cycles (must be positive)")
	fs.Bool("debug", c.Debug, "Enable debug logging")
	fs.String("repo", c.RepoPath, "Path to repository (default: current directory)")
	fs.String("config", c.ConfigFile, "Path to YAML config file (default: $XDG_CONFIG_HOME/syncshot/config.yaml)")
	fs.String("log-file", c.LogFile, "Write log records to this file instead of stderr")
	fs.Int("command-timeout", c.CommandTimeout, "Seconds before a single git command is killed (0 = no limit)")
	fs.Int("max-commit-rounds", c.MaxCommitRounds, "Maximum commits per cycle while the tree keeps changing (0 = no limit)")
	fs.Bool("version", c.Version, "Print version information and exit")
}

// Load layers the config file, the environment and the flags that were set
// on fs over the current values.
func (c *Config) Load(fs *pflag.FlagSet) error {
	path, explicit := c.configFilePath(fs)
	if err := c.LoadFile(path, explicit); err != nil {
		return err
	}

	if err := c.LoadFromEnvironment(); err != nil {
		return err
	}

	return c.ApplyFlags(fs)
}

// configFilePath picks the config file: --config, then SYNCSHOT_CONFIG,
// then the first syncshot/config.yaml in the XDG config directories.
// explicit reports whether the user named the file.
func (c *Config) configFilePath(fs *pflag.FlagSet) (path string, explicit bool) {
	if fs != nil && fs.Changed("config") {
		path, _ = fs.GetString("config")
		return path, true
	}
	if path, ok := os.LookupEnv(EnvPrefix + "CONFIG"); ok && path != "" {
		return path, true
	}
	if c.ConfigFile != "" {
		return c.ConfigFile, true
	}

	found, err := xdg.SearchConfigFile(configFileName)
	if err != nil {
		return "", false
	}
	return found, false
}

// LoadFile applies the YAML config file at path. An empty path is a no-op.
// A missing file is only an error when explicit is true.
func (c *Config) LoadFile(path string, explicit bool) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return nil
		}
		return syncErrors.NewConfigError("config", path,
			syncErrors.Wrapf(syncErrors.ErrInvalidConfiguration, "reading config file: %v", err))
	}

	var fc fileConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fc); err != nil && err != io.EOF {
		return syncErrors.NewConfigError("config", path,
			syncErrors.Wrapf(syncErrors.ErrInvalidConfiguration, "parsing config file: %v", err))
	}

	if fc.Period != nil {
		c.Period = *fc.Period
	}
	if fc.Debug != nil {
		c.Debug = *fc.Debug
	}
	if fc.RepoPath != nil {
		c.RepoPath = *fc.RepoPath
	}
	if fc.LogFile != nil {
		c.LogFile = *fc.LogFile
	}
	if fc.CommandTimeout != nil {
		c.CommandTimeout = *fc.CommandTimeout
	}
	if fc.MaxCommitRounds != nil {
		c.MaxCommitRounds = *fc.MaxCommitRounds
	}

	c.ConfigFile = path
	return nil
}

// LoadFromEnvironment updates config from SYNCSHOT_* environment variables
func (c *Config) LoadFromEnvironment() error {
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	c.Period = getEnvInt("PERIOD", c.Period, collect)
	c.Debug = getEnvBool("DEBUG", c.Debug, collect)
	c.RepoPath = getEnvString("REPO_PATH", c.RepoPath)
	c.LogFile = getEnvString("LOG_FILE", c.LogFile)
	c.CommandTimeout = getEnvInt("COMMAND_TIMEOUT", c.CommandTimeout, collect)
	c.MaxCommitRounds = getEnvInt("MAX_COMMIT_ROUNDS", c.MaxCommitRounds, collect)

	return syncErrors.Join(errs...)
}

// ApplyFlags copies every flag explicitly set on fs into the config.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	if fs == nil {
		return nil
	}

	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "period":
			c.Period, err = fs.GetInt(f.Name)
		case "debug":
			c.Debug, err = fs.GetBool(f.Name)
		case "repo":
			c.RepoPath, err = fs.GetString(f.Name)
		case "config":
			c.ConfigFile, err = fs.GetString(f.Name)
		case "log-file":
			c.LogFile, err = fs.GetString(f.Name)
		case "command-timeout":
			c.CommandTimeout, err = fs.GetInt(f.Name)
		case "max-commit-rounds":
			c.MaxCommitRounds, err = fs.GetInt(f.Name)
		case "version":
			c.Version, err = fs.GetBool(f.Name)
		}
	})
	if err != nil {
		return syncErrors.NewConfigError("flags", nil, syncErrors.Wrap(syncErrors.ErrInvalidFlag, err.Error()))
	}
	return nil
}

// Finalize validates and finalizes the configuration
func (c *Config) Finalize() error {
	if c.Period <= 0 {
		err := fmt.Errorf("invalid period: %d (must be greater than 0)", c.Period)
		return syncErrors.NewConfigError("period", c.Period, syncErrors.Wrap(syncErrors.ErrInvalidConfiguration, err.Error()))
	}

	if c.CommandTimeout < 0 {
		err := fmt.Errorf("invalid command timeout: %d (must not be negative)", c.CommandTimeout)
		return syncErrors.NewConfigError("commandTimeout", c.CommandTimeout, syncErrors.Wrap(syncErrors.ErrInvalidConfiguration, err.Error()))
	}

	if c.MaxCommitRounds < 0 {
		err := fmt.Errorf("invalid max commit rounds: %d (must not be negative)", c.MaxCommitRounds)
		return syncErrors.NewConfigError("maxCommitRounds", c.MaxCommitRounds, syncErrors.Wrap(syncErrors.ErrInvalidConfiguration, err.Error()))
	}

	if c.RepoPath == "" {
		var err error
		c.RepoPath, err = os.Getwd()
		if err != nil {
			return syncErrors.NewConfigError("repoPath", "", syncErrors.Wrap(err, "failed to get current directory"))
		}
	}

	absRepoPath, err := filepath.Abs(c.RepoPath)
	if err != nil {
		return syncErrors.NewConfigError("repoPath", c.RepoPath, syncErrors.Wrap(err, "failed to resolve absolute path"))
	}
	c.RepoPath = absRepoPath

	if c.LogFile != "" {
		absLogFile, err := filepath.Abs(c.LogFile)
		if err != nil {
			return syncErrors.NewConfigError("logFile", c.LogFile, syncErrors.Wrap(err, "failed to resolve absolute path"))
		}
		c.LogFile = absLogFile
	}

	return nil
}

// getEnvString returns an environment variable string or a default value
func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(EnvPrefix + key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt returns an environment variable as int or a default value.
// A malformed value is reported to collect and the default kept.
func getEnvInt(key string, defaultValue int, collect func(error)) int {
	valueStr, exists := os.LookupEnv(EnvPrefix + key)
	if !exists {
		return defaultValue
	}

	value, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		collect(syncErrors.NewConfigError(EnvPrefix+key, valueStr,
			syncErrors.Wrap(syncErrors.ErrInvalidConfiguration, "not an integer")))
		return defaultValue
	}
	return value
}

// getEnvBool returns an environment variable as bool or a default value
func getEnvBool(key string, defaultValue bool, collect func(error)) bool {
	valueStr, exists := os.LookupEnv(EnvPrefix + key)
	if !exists {
		return defaultValue
	}

	switch strings.ToLower(strings.TrimSpace(valueStr)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		collect(syncErrors.NewConfigError(EnvPrefix+key, valueStr,
			syncErrors.Wrap(syncErrors.ErrInvalidConfiguration, "not a boolean")))
		return defaultValue
	}
}
