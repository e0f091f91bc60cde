package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Port                             string `mapstructure:"PORT"`
	GinMode                          string `mapstructure:"GIN_MODE"`
	FirebaseProjectID                string `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`
	ClientURL                        string `mapstructure:"CLIENT_URL"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	AMQPURL           string `mapstructure:"AMQP_URL"`
	NotificationQueue string `mapstructure:"NOTIFICATION_QUEUE"`

	SMTPHost   string `mapstructure:"SMTP_HOST"`
	SMTPPort   string `mapstructure:"SMTP_PORT"`
	SMTPUser   string `mapstructure:"SMTP_USER"`
	SMTPPass   string `mapstructure:"SMTP_PASS"`
	SMTPSender string `mapstructure:"SMTP_SENDER"`

	// CouncilAPIBaseURL is the municipality's open-data endpoint serving
	// the council-member roster.
	CouncilAPIBaseURL string `mapstructure:"COUNCIL_API_BASE_URL"`
	// CouncilCacheTTLSeconds bounds how long the roster is served from cache.
	CouncilCacheTTLSeconds int `mapstructure:"COUNCIL_CACHE_TTL_SECONDS"`

	// PanicHelpMessage is the fixed body prepended to the map URL in the
	// composed SMS deep link.
	PanicHelpMessage string `mapstructure:"PANIC_HELP_MESSAGE"`

	// MunicipalityName is printed on generated receipts.
	MunicipalityName string `mapstructure:"MUNICIPALITY_NAME"`
}

var appConfig *Config

// LoadConfig loads configuration from environment variables using Viper.
func LoadConfig() (*Config, error) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("NOTIFICATION_QUEUE", "citizen-portal.notifications")
	viper.SetDefault("SMTP_PORT", "2525")
	viper.SetDefault("COUNCIL_CACHE_TTL_SECONDS", 3600)
	viper.SetDefault("PANIC_HELP_MESSAGE", "HELP! I need urgent assistance. My approximate location is:")
	viper.SetDefault("MUNICIPALITY_NAME", "Municipal Citizen Services")

	for _, key := range []string{
		"PORT", "GIN_MODE",
		"FIREBASE_PROJECT_ID", "GOOGLE_APPLICATION_CREDENTIALS", "FIREBASE_SERVICE_ACCOUNT_JSON_BASE64",
		"CLIENT_URL",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
		"AMQP_URL", "NOTIFICATION_QUEUE",
		"SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS", "SMTP_SENDER",
		"COUNCIL_API_BASE_URL", "COUNCIL_CACHE_TTL_SECONDS",
		"PANIC_HELP_MESSAGE", "MUNICIPALITY_NAME",
	} {
		viper.BindEnv(key)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}

	if cfg.FirebaseProjectID == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID is required")
	}
	// No explicit credentials means Application Default Credentials,
	// which is the normal mode on GCP runtimes.
	if cfg.CouncilAPIBaseURL == "" {
		return nil, errors.New("COUNCIL_API_BASE_URL is required")
	}

	appConfig = &cfg
	return appConfig, nil
}

// GetConfig returns the loaded application configuration.
// It panics if LoadConfig has not been called successfully.
func GetConfig() *Config {
	if appConfig == nil {
		panic("config not loaded; call LoadConfig first")
	}
	return appConfig
}
