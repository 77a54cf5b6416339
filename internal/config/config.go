package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rpggio/projectboard/internal/domain/project"
	"github.com/rpggio/projectboard/internal/state"
)

// Modes
const (
	ModeTUI = "tui"
	ModeMCP = "mcp"
)

// Storage drivers
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverS3       = "s3"
)

// Config defines application configuration.
type Config struct {
	Mode       string           `yaml:"mode"`
	Storage    StorageConfig    `yaml:"storage"`
	API        APIConfig        `yaml:"api"`
	Controller ControllerConfig `yaml:"controller"`
	Ops        OpsConfig        `yaml:"ops"`
	Log        LogConfig        `yaml:"log"`
}

type StorageConfig struct {
	Driver      string   `yaml:"driver"`
	Key         string   `yaml:"key"`
	SQLitePath  string   `yaml:"sqlite_path"`
	PostgresDSN string   `yaml:"postgres_dsn"`
	S3          S3Config `yaml:"s3"`
}

type S3Config struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Prefix          string `yaml:"prefix"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	PathStyle       bool   `yaml:"path_style"`
}

type APIConfig struct {
	Delay                   time.Duration `yaml:"delay"`
	SimulateError           bool          `yaml:"simulate_error"`
	SimulateInvalidResponse bool          `yaml:"simulate_invalid_response"`
}

type ControllerConfig struct {
	MutationPolicy string `yaml:"mutation_policy"`
}

type OpsConfig struct {
	Addr  string `yaml:"addr"`
	Token string `yaml:"token"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Mode: ModeTUI,
		Storage: StorageConfig{
			Driver:      DriverSQLite,
			Key:         project.DefaultStorageKey,
			SQLitePath:  "projectboard.db",
			PostgresDSN: "postgres://localhost/projectboard?sslmode=disable",
			S3: S3Config{
				Region: "us-east-1",
			},
		},
		API: APIConfig{
			Delay: project.DefaultDelay,
		},
		Controller: ControllerConfig{
			MutationPolicy: string(state.PolicyPermissive),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("PROJECTBOARD_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString := func(env string, dst *string) {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
	setBool := func(env string, dst *bool) error {
		v := os.Getenv(env)
		if v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", env, err)
		}
		*dst = b
		return nil
	}

	setString("PROJECTBOARD_MODE", &cfg.Mode)
	setString("PROJECTBOARD_STORAGE_DRIVER", &cfg.Storage.Driver)
	setString("PROJECTBOARD_STORAGE_KEY", &cfg.Storage.Key)
	setString("PROJECTBOARD_SQLITE_PATH", &cfg.Storage.SQLitePath)
	setString("PROJECTBOARD_POSTGRES_DSN", &cfg.Storage.PostgresDSN)
	setString("PROJECTBOARD_S3_BUCKET", &cfg.Storage.S3.Bucket)
	setString("PROJECTBOARD_S3_REGION", &cfg.Storage.S3.Region)
	setString("PROJECTBOARD_S3_PREFIX", &cfg.Storage.S3.Prefix)
	setString("PROJECTBOARD_S3_ENDPOINT", &cfg.Storage.S3.Endpoint)
	setString("PROJECTBOARD_S3_ACCESS_KEY_ID", &cfg.Storage.S3.AccessKeyID)
	setString("PROJECTBOARD_S3_SECRET_ACCESS_KEY", &cfg.Storage.S3.SecretAccessKey)
	if err := setBool("PROJECTBOARD_S3_PATH_STYLE", &cfg.Storage.S3.PathStyle); err != nil {
		return err
	}

	if v := os.Getenv("PROJECTBOARD_API_DELAY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid PROJECTBOARD_API_DELAY: %w", err)
		}
		cfg.API.Delay = d
	}
	if err := setBool("PROJECTBOARD_API_SIMULATE_ERROR", &cfg.API.SimulateError); err != nil {
		return err
	}
	if err := setBool("PROJECTBOARD_API_SIMULATE_INVALID", &cfg.API.SimulateInvalidResponse); err != nil {
		return err
	}

	setString("PROJECTBOARD_MUTATION_POLICY", &cfg.Controller.MutationPolicy)
	setString("PROJECTBOARD_OPS_ADDR", &cfg.Ops.Addr)
	setString("PROJECTBOARD_OPS_TOKEN", &cfg.Ops.Token)
	setString("PROJECTBOARD_LOG_LEVEL", &cfg.Log.Level)
	setString("PROJECTBOARD_LOG_PATH", &cfg.Log.Path)
	return nil
}

// Validate rejects values the application cannot start with.
func (c Config) Validate() error {
	var errs []error
	switch c.Mode {
	case ModeTUI, ModeMCP:
	default:
		errs = append(errs, fmt.Errorf("unknown mode %q", c.Mode))
	}
	switch c.Storage.Driver {
	case DriverMemory, DriverSQLite, DriverPostgres:
	case DriverS3:
		if c.Storage.S3.Bucket == "" {
			errs = append(errs, errors.New("storage.s3.bucket is required for the s3 driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage driver %q", c.Storage.Driver))
	}
	if _, err := state.ParseMutationPolicy(c.Controller.MutationPolicy); err != nil {
		errs = append(errs, err)
	}
	if c.API.Delay < 0 {
		errs = append(errs, errors.New("api.delay must not be negative"))
	}
	return errors.Join(errs...)
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
