// Package config resolves the service configuration once at startup from an
// optional YAML file, a .env file and the process environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DatabaseURLEnvVars are consulted in order; the first non-empty one wins.
var DatabaseURLEnvVars = []string{
	"DATABASE_URL",
	"POSTGRES_PRISMA_URL",
	"POSTGRES_URL",
	"POSTGRES_URL_NON_POOLING",
	"POSTGRES_URL_NO_SSL",
	"POSTGRES_URL_NON_POOLING_NO_SSL",
}

const (
	DefaultAdminUser  = "admin"
	DefaultVaultMount = "secret"
	DefaultS3Region   = "us-east-1"
)

type Config struct {
	DatabaseURL      string `yaml:"database_url"`
	DatabaseMaxConns int32  `yaml:"database_max_conns"`

	AdminUser     string `yaml:"admin_user"`
	AdminPassword string `yaml:"admin_password"`

	S3       S3Config       `yaml:"s3"`
	Telegram TelegramConfig `yaml:"telegram"`
	Vault    VaultConfig    `yaml:"vault"`

	// set when the admin user came from the file or the environment
	adminUserSet bool
}

type S3Config struct {
	Bucket        string `yaml:"bucket"`
	Prefix        string `yaml:"prefix"`
	Region        string `yaml:"region"`
	Endpoint      string `yaml:"endpoint"`
	AccessKey     string `yaml:"access_key"`
	SecretKey     string `yaml:"secret_key"`
	PublicBaseURL string `yaml:"public_base_url"`
}

type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID int64  `yaml:"chat_id"`
}

type VaultConfig struct {
	Address   string `yaml:"address"`
	Token     string `yaml:"token"`
	Mount     string `yaml:"mount"`
	AdminPath string `yaml:"admin_path"`
}

// StorageConfigured reports whether a database connection string was resolved.
func (c *Config) StorageConfigured() bool {
	return c.DatabaseURL != ""
}

// PhotoUploadsEnabled reports whether an S3 bucket is configured.
func (c *Config) PhotoUploadsEnabled() bool {
	return c.S3.Bucket != ""
}

// NotificationsEnabled reports whether Telegram credentials are complete.
func (c *Config) NotificationsEnabled() bool {
	return c.Telegram.Token != "" && c.Telegram.ChatID != 0
}

// Load reads the configuration. path may be empty, in which case only the
// environment is used. envFiles are loaded with godotenv before the
// environment is read; with none given, ./.env is tried. Variables already
// present in the environment are never overwritten by env files.
func Load(path string, envFiles ...string) (*Config, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load(envFiles...)

	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if dsn := FirstEnv(DatabaseURLEnvVars...); dsn != "" {
		c.DatabaseURL = dsn
	}
	if v := os.Getenv("DATABASE_MAX_CONNS"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid DATABASE_MAX_CONNS: %w", err)
		}
		c.DatabaseMaxConns = int32(n)
	}

	setFromEnv(&c.AdminUser, "ADMIN_USER")
	setFromEnv(&c.AdminPassword, "ADMIN_PASSWORD")
	c.adminUserSet = c.AdminUser != ""

	setFromEnv(&c.S3.Bucket, "S3_BUCKET")
	setFromEnv(&c.S3.Prefix, "S3_PREFIX")
	setFromEnv(&c.S3.Region, "AWS_REGION")
	setFromEnv(&c.S3.Endpoint, "S3_ENDPOINT")
	setFromEnv(&c.S3.AccessKey, "AWS_ACCESS_KEY_ID")
	setFromEnv(&c.S3.SecretKey, "AWS_SECRET_ACCESS_KEY")
	setFromEnv(&c.S3.PublicBaseURL, "S3_PUBLIC_BASE_URL")

	setFromEnv(&c.Telegram.Token, "TELEGRAM_BOT_TOKEN")
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		c.Telegram.ChatID = id
	}

	setFromEnv(&c.Vault.Address, "VAULT_ADDR")
	setFromEnv(&c.Vault.Token, "VAULT_TOKEN")
	setFromEnv(&c.Vault.Mount, "VAULT_MOUNT")
	setFromEnv(&c.Vault.AdminPath, "VAULT_ADMIN_PATH")
	return nil
}

func (c *Config) applyDefaults() {
	c.DatabaseURL = strings.TrimSpace(c.DatabaseURL)
	if c.AdminUser == "" {
		c.AdminUser = DefaultAdminUser
	}
	if c.S3.Bucket != "" && c.S3.Region == "" {
		c.S3.Region = DefaultS3Region
	}
	if c.Vault.Mount == "" {
		c.Vault.Mount = DefaultVaultMount
	}
}

// FirstEnv returns the first non-empty value among the named variables.
func FirstEnv(names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

func setFromEnv(dst *string, name string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}
