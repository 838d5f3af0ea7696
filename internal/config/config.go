package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// this is a pointer so that if someone attempts to use it before loading it will
// panic and force them to load it first.
// it is also private so that it cannot be modified after loading.
var _loaded *Config

// Config is the main configuration structure
type Config struct {
	Common Common `yaml:"common"`
}

// Load loads the configuration following proper precedence: defaults → config file → environment variables
func Load() {
	// Start with defaults
	_loaded = &defaultConfig

	configFile := os.Getenv("USUARIOS_CONFIG_FILE")
	if configFile == "" {
		configFile = "usuarios.yaml"
	}

	// Missing or unreadable config file falls back to defaults
	_ = LoadFromFile(configFile)

	// Apply environment variable overrides (highest priority)
	ApplyEnvOverrides()
}

// LoadDefault resets the configuration to the built-in defaults. Intended for tests.
func LoadDefault() {
	config := defaultConfig
	_loaded = &config
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults and merge YAML values over them
	cfg := defaultConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	_loaded = &cfg
	return nil
}

// ApplyEnvOverrides applies environment variable overrides on top of the loaded config
func ApplyEnvOverrides() {
	config := *_loaded

	if dbHost := os.Getenv("USUARIOS_DB_HOST"); dbHost != "" {
		config.Common.Postgres.Host = dbHost
	}
	if dbPort := os.Getenv("USUARIOS_DB_PORT"); dbPort != "" {
		if port, err := strconv.Atoi(dbPort); err == nil {
			config.Common.Postgres.Port = port
		}
	}
	if dbUser := os.Getenv("USUARIOS_DB_USER"); dbUser != "" {
		config.Common.Postgres.User = dbUser
	}
	if dbPassword := os.Getenv("USUARIOS_DB_PASSWORD"); dbPassword != "" {
		config.Common.Postgres.Password = dbPassword
	}
	if dbName := os.Getenv("USUARIOS_DB_NAME"); dbName != "" {
		config.Common.Postgres.Database = dbName
	}

	if httpHost := os.Getenv("USUARIOS_HTTP_HOST"); httpHost != "" {
		config.Common.Http.Host = httpHost
	}
	if httpPort := os.Getenv("USUARIOS_HTTP_PORT"); httpPort != "" {
		if port, err := strconv.Atoi(httpPort); err == nil {
			config.Common.Http.Port = port
		}
	}

	if logLevel := os.Getenv("USUARIOS_LOG_LEVEL"); logLevel != "" {
		config.Common.Log.Level = logLevel
	}
	if logFormat := os.Getenv("USUARIOS_LOG_FORMAT"); logFormat != "" {
		config.Common.Log.Format = logFormat
	}

	_loaded = &config
}

// set sane defaults for all of the config options. when loading the config from
// the file, any options that are not set will be set to these defaults.
var defaultConfig = Config{
	Common: Common{
		Log: logConfig{
			Level:  "info",
			Format: "json",
		},
		Http: httpConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			MaxRequestSize: 5242880,
		},
		Postgres: postgresConfig{
			User:               "postgres",
			Password:           "postgres",
			Host:               "localhost",
			Port:               5432,
			Database:           "usuarios",
			SchemaName:         "public",
			ReadTimeout:        30,
			WriteTimeout:       30,
			MaxOpenConnections: 10,
		},
	},
}

type Common struct {
	Log      logConfig      `yaml:"log"`
	Http     httpConfig     `yaml:"http"`
	Postgres postgresConfig `yaml:"postgres"`
}

type logConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type httpConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	MaxRequestSize int64  `yaml:"max_request_size"`
}

type postgresConfig struct {
	User               string `yaml:"user"`
	Password           string `yaml:"password"`
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	Database           string `yaml:"database"`
	SchemaName         string `yaml:"schema_name"`
	ReadTimeout        int    `yaml:"read_timeout"`
	WriteTimeout       int    `yaml:"write_timeout"`
	MaxOpenConnections int    `yaml:"max_open_connections"`
}

func (c postgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		url.QueryEscape(c.Database),
	)
}

// there should be a getter for each top level field in the config struct.
// these getters will panic if the config has not been loaded.

func Logger() logConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Log
}

func Http() httpConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Http
}

func Postgres() postgresConfig {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded.Common.Postgres
}

func Get() *Config {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded
}
