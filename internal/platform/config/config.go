package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración del proceso. Se carga una vez en main.
type Config struct {
	Port    string
	AppName string

	LogLevel  string
	LogFormat string

	// DBDSN opcional: si viene, la telemetría también se guarda en Postgres.
	DBDSN string

	NotifyConsole    bool
	NotifyWebhookURL string
	NotifyTimeout    time.Duration

	// APIToken opcional: si viene, las rutas exigen Authorization: Bearer <token>.
	APIToken string

	MetricsEnabled bool
}

// Load lee env vars y, si existe, un archivo aftercare.(yaml|json|toml)
// en el directorio actual o en configPath.
//
// Env soportadas: PORT, APP_NAME, LOG_LEVEL, LOG_FORMAT, DB_DSN,
// NOTIFY_CONSOLE, NOTIFY_WEBHOOK_URL, NOTIFY_TIMEOUT, API_TOKEN, METRICS_ENABLED.
func Load(configPath string) (Config, error) {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("app_name", "peds-aftercare")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("notify_console", true)
	v.SetDefault("notify_timeout", "5s")
	v.SetDefault("metrics_enabled", true)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName("aftercare")
	if strings.TrimSpace(configPath) != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Port:             strings.TrimSpace(v.GetString("port")),
		AppName:          strings.TrimSpace(v.GetString("app_name")),
		LogLevel:         v.GetString("log_level"),
		LogFormat:        v.GetString("log_format"),
		DBDSN:            strings.TrimSpace(v.GetString("db_dsn")),
		NotifyConsole:    v.GetBool("notify_console"),
		NotifyWebhookURL: strings.TrimSpace(v.GetString("notify_webhook_url")),
		NotifyTimeout:    v.GetDuration("notify_timeout"),
		APIToken:         strings.TrimSpace(v.GetString("api_token")),
		MetricsEnabled:   v.GetBool("metrics_enabled"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("config: port is required")
	}
	if c.NotifyTimeout <= 0 {
		return errors.New("config: notify_timeout must be positive")
	}
	if c.NotifyWebhookURL != "" &&
		!strings.HasPrefix(c.NotifyWebhookURL, "http://") &&
		!strings.HasPrefix(c.NotifyWebhookURL, "https://") {
		return fmt.Errorf("config: notify_webhook_url must be http(s): %q", c.NotifyWebhookURL)
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}
