// Package config manages environment variables.
//
// It reads variables from the process environment (and a `.env` file
// when one exists), loads them into structured Go types, applies
// defaults, and validates the result so it can be shared read-only
// across the application runtime.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map the flat env names the website deployment already uses
//     (EMAIL_HOST, PORT, ...) onto nested config keys.
//   - Provide defaults for every optional value.
//   - Validate the final values so the app fails fast on bad config.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it gets loaded into the
	// process env before any variable is read.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// envKeys maps the env var names fixed by the deployment onto koanf key
// paths. They share no common prefix, so anything not listed here is
// ignored.
//
// e.g. EMAIL_HOST -> mail.host -> Config.Mail.Host
var envKeys = map[string]string{
	"ENV":                   "primary.env",
	"PORT":                  "server.port",
	"READ_TIMEOUT":          "server.read_timeout",
	"WRITE_TIMEOUT":         "server.write_timeout",
	"IDLE_TIMEOUT":          "server.idle_timeout",
	"ALLOWED_ORIGINS":       "server.allowed_origins",
	"DEBUG":                 "server.debug",
	"EMAIL_PROVIDER":        "mail.provider",
	"EMAIL_HOST":            "mail.host",
	"EMAIL_PORT":            "mail.port",
	"EMAIL_USER":            "mail.user",
	"EMAIL_PASSWORD":        "mail.password",
	"RECIPIENT_EMAIL":       "mail.recipient",
	"RESEND_API_KEY":        "mail.resend_api_key",
	"LOG_LEVEL":             "observability.logging.level",
	"LOG_FORMAT":            "observability.logging.format",
	"LOG_FILE":              "observability.logging.file",
	"NEW_RELIC_LICENSE_KEY": "observability.new_relic.license_key",
}

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If none of its
// variables are set, defaults are injected at load time.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Mail          MailConfig           `koanf:"mail" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=production development local test"`
}

// ServerConfig groups settings for the HTTP server runtime.
//
// Timeouts are stored in seconds.
type ServerConfig struct {
	Port           string `koanf:"port" validate:"required,numeric"`
	ReadTimeout    int    `koanf:"read_timeout" validate:"min=1"`
	WriteTimeout   int    `koanf:"write_timeout" validate:"min=1"`
	IdleTimeout    int    `koanf:"idle_timeout" validate:"min=1"`
	AllowedOrigins string `koanf:"allowed_origins" validate:"required"`

	// Debug is the raw flag value, see DebugEnabled.
	Debug string `koanf:"debug"`
}

// CORSAllowedOrigins splits the comma-separated ALLOWED_ORIGINS value.
func (s ServerConfig) CORSAllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(s.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// DebugEnabled reports whether debug mode was requested.
// Only a case-insensitive "true" turns it on.
func (s ServerConfig) DebugEnabled() bool {
	return strings.EqualFold(strings.TrimSpace(s.Debug), "true")
}

const (
	// ProviderSMTP delivers mail through an authenticated SMTP session.
	ProviderSMTP = "smtp"
	// ProviderResend delivers mail through the Resend HTTP API.
	ProviderResend = "resend"
)

// MailConfig holds the mail transport settings.
//
// User and the provider credential (Password for SMTP, ResendAPIKey for
// Resend) have no defaults: leaving them unset disables sending.
type MailConfig struct {
	Provider     string `koanf:"provider" validate:"oneof=smtp resend"`
	Host         string `koanf:"host" validate:"required,hostname_rfc1123|ip"`
	Port         int    `koanf:"port" validate:"min=1,max=65535"`
	User         string `koanf:"user"`
	Password     string `koanf:"password"`
	Recipient    string `koanf:"recipient"`
	ResendAPIKey string `koanf:"resend_api_key"`
}

// Address returns host:port for dialing the SMTP server.
func (m MailConfig) Address() string {
	return net.JoinHostPort(m.Host, strconv.Itoa(m.Port))
}

// Credentialed reports whether both the sender identity and the
// provider credential are present.
func (m MailConfig) Credentialed() bool {
	if m.User == "" {
		return false
	}
	if m.Provider == ProviderResend {
		return m.ResendAPIKey != ""
	}
	return m.Password != ""
}

// LoadConfig loads configuration from environment variables, unmarshals it
// into Config, applies defaults and validates the result.
//
// Behavior summary:
//   - Reads only the variables listed in envKeys
//   - Unmarshals into Config
//   - Fills defaults for anything left empty
//   - Validates struct tags, then the observability block
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider("", ".", func(s string) string {
		// An empty key tells the provider to skip the variable.
		return envKeys[s]
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	mainConfig.applyDefaults()

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// applyDefaults fills every optional value that was not provided.
func (c *Config) applyDefaults() {
	if c.Primary.Env == "" {
		c.Primary.Env = "development"
	}

	if c.Server.Port == "" {
		c.Server.Port = "5000"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	// SMTP delivery happens inside the request, so writes get more room.
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 60
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 120
	}
	if strings.TrimSpace(c.Server.AllowedOrigins) == "" {
		c.Server.AllowedOrigins = "*"
	}

	if c.Mail.Provider == "" {
		c.Mail.Provider = ProviderSMTP
	}
	c.Mail.Provider = strings.ToLower(c.Mail.Provider)
	if c.Mail.Host == "" {
		c.Mail.Host = "smtp.gmail.com"
	}
	if c.Mail.Port == 0 {
		c.Mail.Port = 587
	}
	if c.Mail.Recipient == "" {
		c.Mail.Recipient = c.Mail.User
	}

	if c.Observability == nil {
		c.Observability = DefaultObservabilityConfig()
	}
	c.Observability.applyDefaults()

	// Service name and environment always follow the primary config so
	// logs and traces are labelled consistently.
	c.Observability.ServiceName = ServiceName
	c.Observability.Environment = c.Primary.Env
}
