// Package config loads the application configuration from a YAML file and a
// separately deployed, Fernet-encrypted secrets file. Credentials never live
// in the plain config: the secrets file is decrypted with the configured key
// and merged over the database section.
package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	defaultServerPort = 8080
	defaultSSLMode    = "disable"
)

// ServerConfig holds the API listener settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// FrontendConfig holds the frontend origin allowed by CORS.
type FrontendConfig struct {
	URL string `yaml:"url"`
}

// DatabaseConfig holds the PostgreSQL connection parameters. Password is
// expected to arrive via the encrypted secrets file, not the plain config.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// Config is the resolved application configuration.
type Config struct {
	Server    ServerConfig   `yaml:"server"`
	Frontend  FrontendConfig `yaml:"frontend"`
	Database  DatabaseConfig `yaml:"database"`
	SecretKey string         `yaml:"secret_key"`
}

// Load reads the config file, then decrypts and merges the secrets file.
// secretsPath may be empty for local setups that put the password directly
// in the config file.
func Load(configPath, secretsPath string) (*Config, error) {
	raw, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultServerPort
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = defaultSSLMode
	}

	if secretsPath != "" {
		if cfg.SecretKey == "" {
			return nil, fmt.Errorf("secret_key is required to decrypt %s", secretsPath)
		}
		secrets, err := loadSecrets(secretsPath, cfg.SecretKey)
		if err != nil {
			return nil, err
		}
		mergeDatabaseSecrets(&cfg.Database, secrets.Database)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.Database.Host == "" {
		missing = append(missing, "database.host")
	}
	if c.Database.Name == "" {
		missing = append(missing, "database.name")
	}
	if c.Database.User == "" {
		missing = append(missing, "database.user")
	}
	if c.Database.Password == "" {
		missing = append(missing, "database.password")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config is missing required values: %s", strings.Join(missing, ", "))
	}
	return nil
}

func mergeDatabaseSecrets(db *DatabaseConfig, secrets map[string]string) {
	for key, value := range secrets {
		switch key {
		case "host":
			db.Host = value
		case "port":
			if port, err := strconv.Atoi(value); err == nil {
				db.Port = port
			}
		case "name":
			db.Name = value
		case "user":
			db.User = value
		case "password":
			db.Password = value
		}
	}
}

// HTTPAddr returns the API listen address.
func (c *Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// DSN renders the PostgreSQL connection URL. The password is URL-escaped so
// special characters cannot break the DSN structure.
func (c *Config) DSN() string {
	port := c.Database.Port
	if port == 0 {
		port = 5432
	}
	hostPort := net.JoinHostPort(c.Database.Host, strconv.Itoa(port))

	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		c.Database.User,
		url.QueryEscape(c.Database.Password),
		hostPort,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
