package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port           int    `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"` // development | production
	WorkerPoolSize int    `mapstructure:"WORKER_POOL_SIZE"`

	// Database — postgres DSN or sqlite path (sqlite:// / *.db)
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis
	RedisURL string `mapstructure:"REDIS_URL"`

	// Alertas
	// VentanaCaducidadDias is the expiry-warning window: items expiring within
	// this many days (inclusive) are flagged POR_CADUCAR.
	VentanaCaducidadDias int `mapstructure:"ALERTA_CADUCIDAD_DIAS"`
	// HistorialLimite is the default page size for the alert history.
	HistorialLimite int `mapstructure:"ALERTA_HISTORIAL_LIMITE"`

	// SMTP — report delivery
	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`
	// ReporteEmailDestino receives the generated alert reports. Empty disables
	// the email worker path.
	ReporteEmailDestino string `mapstructure:"REPORTE_EMAIL_DESTINO"`

	// ReporteStoragePath is where generated PDF reports are written.
	ReporteStoragePath string `mapstructure:"REPORTE_STORAGE_PATH"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("WORKER_POOL_SIZE", 3)
	viper.SetDefault("DATABASE_URL", "sqlite://database/caruma.db")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("ALERTA_CADUCIDAD_DIAS", 7)
	viper.SetDefault("ALERTA_HISTORIAL_LIMITE", 50)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("REPORTE_STORAGE_PATH", "/tmp/caruma/reportes")

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
