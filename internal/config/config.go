package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds the runtime configuration of the server and CLI.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"hangman"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	Port                    string        `env:"PORT" envDefault:"3000"`
	LogLevel                string        `env:"LOG_LEVEL" envDefault:"info"`
	RequestTimeout          time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Words Words
	Game  Game
	CORS  CORS
}

// Words selects the corpus source. DBPath wins over File; with neither
// set the embedded movie list is used.
type Words struct {
	File   string `env:"WORDS_FILE"`
	DBPath string `env:"WORDS_DB_PATH"`
}

// Game groups gameplay tunables.
type Game struct {
	HintCooldown time.Duration `env:"HINT_COOLDOWN" envDefault:"30s"`
	HistoryLimit int           `env:"HISTORY_LIMIT" envDefault:"50"`
}

// CORS holds Cross-Origin Resource Sharing configuration.
type CORS struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Content-Type"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"`
	MaxAge           int      `env:"CORS_MAX_AGE" envDefault:"3600"`
}

// Load parses environment variables into App config.
func Load() (*App, error) {
	cfg := &App{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Production reports whether APP_ENV is "production".
func (a *App) Production() bool { return a.Env == "production" }
