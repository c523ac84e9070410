// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file when
// present), loads them into structured Go types, and validates that required
// values are present so the rest of the module receives one explicit Config
// value instead of reading the environment ad hoc.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Provide sane defaults for optional blocks (pool sizing, observability).
package config

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before any variable is read below.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// EnvDevelopment is the ENV value that selects the local file-backed store.
const EnvDevelopment = "dev"

/*
	Env vars are flat (DB_USER, SQL_ECHO, ...). envKeys maps each recognised
	variable to a koanf key path using "." nesting, e.g.
	DB_USER -> database.user -> Config.Database.User.
	Variables not listed here are ignored.
*/
var envKeys = map[string]string{
	"ENV":                   "primary.env",
	"DB_USER":               "database.user",
	"DB_PASSWORD":           "database.password",
	"DB_HOST":               "database.host",
	"DB_PORT":               "database.port",
	"DB_NAME":               "database.name",
	"DB_SSL_MODE":           "database.ssl_mode",
	"DB_PATH":               "database.path",
	"DB_MAX_CONNS":          "database.max_conns",
	"SQL_ECHO":              "database.echo",
	"LOG_LEVEL":             "observability.logging.level",
	"LOG_FORMAT":            "observability.logging.format",
	"LOG_SLOW_QUERY":        "observability.logging.slow_query_threshold",
	"NEW_RELIC_LICENSE_KEY": "observability.new_relic.license_key",
}

// Config is the root configuration object.
//
// The `koanf:"..."` tags specify where koanf maps values from.
// Observability is a pointer because it is optional; defaults are injected
// when it is missing.
type Config struct {
	Primary       Primary              `koanf:"primary"`
	Database      DatabaseConfig       `koanf:"database"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env"`
}

// DatabaseConfig contains connection parameters for both stores.
//
// User, Password, Host and Name are only required for the networked
// (PostgreSQL) store. Path is only used in development.
type DatabaseConfig struct {
	User     string `koanf:"user" validate:"required"`
	Password string `koanf:"password" validate:"required"`
	Host     string `koanf:"host" validate:"required"`
	Port     int    `koanf:"port" validate:"min=1,max=65535"`
	Name     string `koanf:"name" validate:"required"`
	SSLMode  string `koanf:"ssl_mode" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns int32  `koanf:"max_conns" validate:"min=1"`

	// Path is the SQLite file used when Env is EnvDevelopment.
	Path string `koanf:"path"`

	// Echo enables statement logging (SQL_ECHO=true).
	Echo bool `koanf:"echo"`
}

// IsDevelopment reports whether the local file-backed store is selected.
func (c *Config) IsDevelopment() bool {
	return c.Primary.Env == EnvDevelopment
}

// Load reads configuration from the environment, applies defaults and
// validates it.
//
// Unlike a fatal startup loader, Load returns a *Error so callers (the CLI,
// tests) decide how to surface it.
func Load() (*Config, error) {
	k := koanf.New(".")

	// ProviderWithValue lets us rename keys and normalise values in one pass.
	// Returning an empty key drops the variable.
	err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		path, ok := envKeys[key]
		if !ok || value == "" {
			return "", nil
		}
		if key == "SQL_ECHO" {
			// Anything other than "true" (any case) means off.
			return path, strings.EqualFold(strings.TrimSpace(value), "true")
		}
		return path, value
	}), nil)
	if err != nil {
		return nil, &Error{Message: "could not load environment variables", Err: err}
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Port:     5432,
			SSLMode:  "disable",
			MaxConns: 10,
			Path:     "./dev.db",
		},
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, &Error{Message: "could not unmarshal config", Err: err}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.Observability == nil {
		cfg.Observability = DefaultObservabilityConfig()
	} else {
		cfg.Observability.applyDefaults()
	}

	cfg.Observability.ServiceName = ServiceName
	cfg.Observability.Environment = cfg.environmentLabel()

	if err := cfg.Observability.Validate(); err != nil {
		return nil, &Error{Message: "invalid observability config", Err: err}
	}

	return cfg, nil
}

// validate checks the database block. In development only the SQLite path
// matters; everywhere else the networked connection parameters are required.
func (c *Config) validate() error {
	if c.IsDevelopment() {
		if c.Database.Path == "" {
			return &Error{Message: "missing required configuration", Fields: []string{"DB_PATH"}}
		}
		return nil
	}

	validate := validator.New()
	// Report koanf key names ("ssl_mode") rather than Go field names.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("koanf")
	})

	err := validate.Struct(c.Database)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return &Error{Message: "database config validation failed", Err: err}
	}

	var missing, invalid []string
	for _, fe := range validationErrors {
		name := envName("database." + fe.Field())
		if fe.Tag() == "required" {
			missing = append(missing, name)
		} else {
			invalid = append(invalid, name)
		}
	}

	if len(missing) > 0 {
		return &Error{Message: "missing required database parameters", Fields: missing}
	}
	return &Error{Message: "invalid database parameters", Fields: invalid}
}

func (c *Config) environmentLabel() string {
	switch c.Primary.Env {
	case EnvDevelopment:
		return "development"
	case "":
		return "production"
	default:
		return c.Primary.Env
	}
}

// envName reverses envKeys so errors name the variable the operator sets.
func envName(path string) string {
	for name, p := range envKeys {
		if p == path {
			return name
		}
	}
	return path
}
