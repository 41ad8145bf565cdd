// Package config centraliza la configuración por env vars.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	AppName string `env:"APP_NAME" envDefault:"cat-api"`
	Port    string `env:"PORT" envDefault:"8080"`

	// Selección de backend: DSN de Postgres gana; si no, path de SQLite;
	// si no hay ninguno, repos in-memory (modo dev).
	DBDSN      string `env:"DB_DSN"`
	SQLitePath string `env:"SQLITE_PATH"`

	// Cache opcional de lecturas por id.
	RedisAddr string `env:"REDIS_ADDR"`
	RedisPass string `env:"REDIS_PASS"`

	// Colaboradores externos del create.
	UploadDir string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	GeoIPPath string `env:"GEOIP_DB"` // GeoLite2-City.mmdb; vacío = sin fallback por IP

	// Verificación de tokens. Vacío = modo dev (headers de debug).
	JWTSecret string `env:"JWT_SECRET"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing env config: %w", err)
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}
