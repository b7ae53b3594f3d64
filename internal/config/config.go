// Package config loads the odatagen settings from the environment, an
// optional .env file and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/syssam/odatagen"
	"github.com/syssam/odatagen/compiler/gen"
)

// Config holds the settings of one odatagen run.
type Config struct {
	Service ServiceConfig
	Gen     GenConfig
	Logging LoggingConfig
}

// ServiceConfig addresses the OData service the metadata is downloaded from.
type ServiceConfig struct {
	Host     string
	User     string
	Password string
}

// GenConfig controls code generation.
type GenConfig struct {
	// Metadata is the path of the cached metadata document.
	Metadata string
	Target   string
	Package  string
	Header   string
	// ConfigFile is the optional YAML file read by Load.
	ConfigFile string
	// Types holds extra EDM to Go type mappings.
	Types map[string]string
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string
	File       string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// File is the layout of the optional YAML config file.
type File struct {
	Package  string            `yaml:"package"`
	Target   string            `yaml:"target"`
	Header   string            `yaml:"header"`
	Metadata string            `yaml:"metadata"`
	Types    map[string]string `yaml:"types"`
}

// Load reads the given .env files (".env" when none are given), then the
// environment, then the YAML config file named by ODATAGEN_CONFIG. Missing
// files are not an error. Environment values take precedence over the YAML
// file.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		Service: ServiceConfig{
			Host:     getEnv("ODATA_HOST", ""),
			User:     getEnv("NAV_USER", ""),
			Password: getEnv("NAV_PASSWORD", ""),
		},
		Gen: GenConfig{
			Metadata:   getEnv("ODATA_METADATA", "odata_metadata.xml"),
			Target:     getEnv("ODATAGEN_TARGET", "entities"),
			Package:    getEnv("ODATAGEN_PACKAGE", ""),
			ConfigFile: getEnv("ODATAGEN_CONFIG", ".odatagen.yaml"),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			File:       getEnv("LOG_FILE", ""),
			MaxSize:    getEnvInt("LOG_MAX_SIZE", 10),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 3),
			MaxAge:     getEnvInt("LOG_MAX_AGE", 30),
			Compress:   getEnvBool("LOG_COMPRESS", false),
		},
	}

	f, err := LoadFile(cfg.Gen.ConfigFile)
	if err != nil {
		return nil, err
	}
	cfg.merge(f)
	return cfg, nil
}

// LoadFile reads a YAML config file. It returns nil (not an error) if the
// file does not exist.
func LoadFile(path string) (*File, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return &f, nil
}

// merge fills in the values the environment did not set.
func (c *Config) merge(f *File) {
	if f == nil {
		return
	}
	if f.Target != "" && os.Getenv("ODATAGEN_TARGET") == "" {
		c.Gen.Target = f.Target
	}
	if f.Package != "" && os.Getenv("ODATAGEN_PACKAGE") == "" {
		c.Gen.Package = f.Package
	}
	if f.Metadata != "" && os.Getenv("ODATA_METADATA") == "" {
		c.Gen.Metadata = f.Metadata
	}
	if f.Header != "" {
		c.Gen.Header = f.Header
	}
	if len(f.Types) > 0 {
		c.Gen.Types = f.Types
	}
}

// Validate checks the configuration. Service credentials are only required
// when the metadata has to be downloaded.
func (c *Config) Validate(download bool) error {
	var problems []string
	if download {
		if c.Service.Host == "" {
			problems = append(problems, "ODATA_HOST is required to download metadata")
		}
		if c.Service.User == "" {
			problems = append(problems, "NAV_USER is required to download metadata")
		}
		if c.Service.Password == "" {
			problems = append(problems, "NAV_PASSWORD is required to download metadata")
		}
	}
	if c.Gen.Target == "" {
		problems = append(problems, "ODATAGEN_TARGET cannot be empty")
	}
	if c.Gen.Metadata == "" {
		problems = append(problems, "ODATA_METADATA cannot be empty")
	}
	if c.Logging.File != "" && c.Logging.MaxSize <= 0 {
		problems = append(problems, "LOG_MAX_SIZE must be greater than 0")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w:\n  - %s", odatagen.ErrMissingConfig, strings.Join(problems, "\n  - "))
	}
	return nil
}

// GenOptions returns the generator options described by c.
func (c *Config) GenOptions() []gen.Option {
	opts := []gen.Option{gen.WithTarget(c.Gen.Target)}
	if c.Gen.Package != "" {
		opts = append(opts, gen.WithPackage(c.Gen.Package))
	}
	if c.Gen.Header != "" {
		opts = append(opts, gen.WithHeader(c.Gen.Header))
	}
	if len(c.Gen.Types) > 0 {
		opts = append(opts, gen.WithTypes(c.Gen.Types))
	}
	return opts
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
