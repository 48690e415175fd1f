package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/spf13/viper"
)

const envPrefix = "SPARKS"

const (
	StorageDriverPostgres  = "postgres"
	StorageDriverFirestore = "firestore"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Log      *LogConfig      `mapstructure:"log"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Storage  *StorageConfig  `mapstructure:"storage"`
	Firebase *FirebaseConfig `mapstructure:"firebase"`
	Sentry   *SentryConfig   `mapstructure:"sentry"`

	v *viper.Viper
}

type APIConfig struct {
	Environment        string   `mapstructure:"environment"`
	Port               string   `mapstructure:"port"`
	BaseURL            string   `mapstructure:"base_url"`
	JWTSigningKey      string   `mapstructure:"jwt_signing_key"`
	AllowedCORSDomains []string `mapstructure:"allowed_cors_domains"`
	MaxImportBytes     int64    `mapstructure:"max_import_bytes"`
	// AllowSignup opens POST /auth/signup to anonymous callers. Keep it off outside local
	// development and create operators with `sparksctl operator create`.
	AllowSignup bool `mapstructure:"allow_signup"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// StorageConfig selects where students, colleges and audit entries live.
// Operators are always stored in Postgres.
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

type FirebaseConfig struct {
	ProjectID       string `mapstructure:"project_id"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

type SentryConfig struct {
	DSN     string `mapstructure:"dsn"`
	Release string `mapstructure:"release"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "dev")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("api.jwt_signing_key", "")
	v.SetDefault("api.allowed_cors_domains", []string{"http://localhost:3000"})
	v.SetDefault("api.max_import_bytes", 5<<20)
	v.SetDefault("api.allow_signup", false)
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("log.level", "info")
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.db", "sparks")
	v.SetDefault("postgres.ssl_mode", "disable")
	v.SetDefault("storage.driver", StorageDriverPostgres)
	v.SetDefault("firebase.project_id", "")
	v.SetDefault("firebase.credentials_file", "")
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.release", "")
}

// Load reads the YAML file at path. Every key can be overridden from the environment,
// e.g. SPARKS_POSTGRES_HOST for postgres.host.
func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf := &AppConfig{v: v}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config -> %w", err)
	}

	return conf, nil
}

func (c *AppConfig) Validate() error {
	if err := validation.ValidateStruct(c.API,
		validation.Field(&c.API.Port, validation.Required),
		validation.Field(&c.API.JWTSigningKey, validation.Required, validation.Length(16, 0)),
		validation.Field(&c.API.MaxImportBytes, validation.Min(int64(1))),
	); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	if err := validation.ValidateStruct(c.Storage,
		validation.Field(&c.Storage.Driver, validation.Required, validation.In(StorageDriverPostgres, StorageDriverFirestore)),
	); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	return nil
}

// WatchLogLevel calls fn with log.level every time the config file changes.
func (c *AppConfig) WatchLogLevel(fn func(level string)) {
	if c.v == nil {
		return
	}

	c.v.OnConfigChange(func(_ fsnotify.Event) {
		fn(c.v.GetString("log.level"))
	})
	c.v.WatchConfig()
}
