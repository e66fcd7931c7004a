// Package config loads soapmock's configuration from an optional YAML file
// and the environment. Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/getmockd/soapmock/pkg/lifecycle"
	"github.com/getmockd/soapmock/pkg/logging"
	"github.com/getmockd/soapmock/pkg/project"
	"github.com/getmockd/soapmock/pkg/runtime"
)

// DefaultBaseDir is used when no base directory is configured.
const DefaultBaseDir = "projets_mocks"

// Config holds every setting the core needs.
type Config struct {
	// BaseDir holds one sub-directory per project.
	BaseDir string `yaml:"base_dir" env:"SOAPMOCK_BASE_DIR,BASE_DIR" env-default:"projets_mocks"`

	// HostBaseDir is BaseDir as the Docker daemon sees it. Set it when
	// soapmock runs inside a container that talks to the host daemon.
	HostBaseDir string `yaml:"host_base_dir" env:"SOAPMOCK_HOST_BASE_DIR,HOST_BASE_DIR"`

	// Network is attached on start when it exists.
	Network string `yaml:"network" env:"SOAPMOCK_NETWORK,DOCKER_NETWORK"`

	Image string `yaml:"image" env:"SOAPMOCK_IMAGE" env-default:"outofcoffee/imposter"`

	// Runtime selects the container backend: "cli" or "docker".
	Runtime   string `yaml:"runtime" env:"SOAPMOCK_RUNTIME" env-default:"cli"`
	DockerBin string `yaml:"docker_bin" env:"SOAPMOCK_DOCKER_BIN" env-default:"docker"`

	SettleInterval time.Duration `yaml:"settle_interval" env:"SOAPMOCK_SETTLE" env-default:"10s"`
	CommandTimeout time.Duration `yaml:"command_timeout" env:"SOAPMOCK_COMMAND_TIMEOUT" env-default:"120s"`

	Log LogConfig `yaml:"log"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" env:"SOAPMOCK_LOG_LEVEL" env-default:"warn"`
	Format string `yaml:"format" env:"SOAPMOCK_LOG_FORMAT" env-default:"text"`
	File   string `yaml:"file" env:"SOAPMOCK_LOG_FILE"`
}

// LoggingConfig converts the level and format names. Unknown names fall back
// to info and text. Output writers are left for the caller.
func (c LogConfig) LoggingConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(c.Level)
	cfg.Format = logging.ParseFormat(c.Format)
	return cfg
}

// Load reads path when it is non-empty, otherwise the environment only.
// Environment variables override values from the file.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cleanenv cannot.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.BaseDir) == "" {
		errs = append(errs, errors.New("base_dir must not be empty"))
	}
	switch strings.ToLower(c.Runtime) {
	case runtime.KindCLI, runtime.KindDocker:
	default:
		errs = append(errs, fmt.Errorf("runtime must be %q or %q, got %q", runtime.KindCLI, runtime.KindDocker, c.Runtime))
	}
	if c.SettleInterval < 0 {
		errs = append(errs, errors.New("settle_interval must not be negative"))
	}
	if c.CommandTimeout < 0 {
		errs = append(errs, errors.New("command_timeout must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// Layout returns the project layout described by the configuration.
func (c *Config) Layout() project.Layout {
	return project.Layout{BaseDir: c.BaseDir, HostBaseDir: c.HostBaseDir}
}

// RuntimeOptions returns the options for runtime.New.
func (c *Config) RuntimeOptions() runtime.Options {
	return runtime.Options{
		Kind:           c.Runtime,
		DockerBin:      c.DockerBin,
		CommandTimeout: c.CommandTimeout,
	}
}

// LifecycleOptions returns the lifecycle options implied by the configuration.
func (c *Config) LifecycleOptions() []lifecycle.Option {
	return []lifecycle.Option{
		lifecycle.WithImage(c.Image),
		lifecycle.WithDefaultNetwork(c.Network),
		lifecycle.WithSettleInterval(c.SettleInterval),
	}
}
