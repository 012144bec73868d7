package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

// Prefix for every environment variable, e.g. INJURY_ENGINE_MIN_PRIOR_GAMES.
const Prefix = "INJURY"

// Config represents the complete application configuration
type Config struct {
	Engine  Engine  `envconfig:"ENGINE"`
	Fetch   Fetch   `envconfig:"FETCH"`
	Logging Logging `envconfig:"LOG"`
	Output  Output  `envconfig:"OUTPUT"`
}

// Engine holds the windowing and season-scan knobs.
type Engine struct {
	BackYearLimit            int           `envconfig:"BACK_YEAR_LIMIT" default:"5" validate:"gte=0"`
	EarliestSeason           int           `envconfig:"EARLIEST_SEASON" default:"2000" validate:"gte=1920"`
	ForwardYearCap           int           `envconfig:"FORWARD_YEAR_CAP" default:"2025" validate:"gtefield=EarliestSeason"`
	ScanToForwardCap         bool          `envconfig:"SCAN_TO_FORWARD_CAP" default:"false"`
	MaxMissedWeeksBeforeGate int           `envconfig:"MAX_MISSED_WEEKS_BEFORE" default:"4" validate:"gte=0"`
	MinPriorGames            int           `envconfig:"MIN_PRIOR_GAMES" default:"4" validate:"gte=0,ltefield=MaxWindowGames"`
	MaxWindowGames           int           `envconfig:"MAX_WINDOW_GAMES" default:"6" validate:"gte=1,lte=6"`
	RequestPacingDelay       time.Duration `envconfig:"REQUEST_PACING_DELAY" default:"350ms" validate:"gte=0"`
}

// Fetch controls the game-log HTTP client.
type Fetch struct {
	BaseURL          string        `envconfig:"BASE_URL" default:"https://www.fantasypros.com/nfl/games" validate:"required,url"`
	PreferredScoring string        `envconfig:"PREFERRED_SCORING" default:"HALF" validate:"required"`
	UserAgent        string        `envconfig:"USER_AGENT" default:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"`
	RequestTimeout   time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s" validate:"gt=0"`
	MaxAttempts      int           `envconfig:"MAX_ATTEMPTS" default:"3" validate:"gte=1,lte=10"`
	RetryBase        time.Duration `envconfig:"RETRY_BASE" default:"400ms"`
	RetryMax         time.Duration `envconfig:"RETRY_MAX" default:"6s"`
	Cooldown         time.Duration `envconfig:"COOLDOWN" default:"7s"`
}

// Logging selects the slog handler.
type Logging struct {
	Level  string `envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format string `envconfig:"FORMAT" default:"text" validate:"oneof=text json"`
}

// Output names the optional sinks; empty values disable a sink.
type Output struct {
	RecordsTable    string `envconfig:"RECORDS_TABLE"`
	TimelineTable   string `envconfig:"TIMELINE_TABLE"`
	Bucket          string `envconfig:"BUCKET"`
	Prefix          string `envconfig:"PREFIX" default:"injury_windows_curated"`
	AthenaDB        string `envconfig:"ATHENA_DB"`
	AthenaWorkgroup string `envconfig:"ATHENA_WORKGROUP" default:"primary"`
	AthenaOutput    string `envconfig:"ATHENA_OUTPUT" validate:"omitempty,startswith=s3://"`
}

// Default returns the built-in configuration without reading the environment.
func Default() Config {
	return Config{
		Engine: Engine{
			BackYearLimit:            5,
			EarliestSeason:           2000,
			ForwardYearCap:           2025,
			MaxMissedWeeksBeforeGate: 4,
			MinPriorGames:            4,
			MaxWindowGames:           6,
			RequestPacingDelay:       350 * time.Millisecond,
		},
		Fetch: Fetch{
			BaseURL:          "https://www.fantasypros.com/nfl/games",
			PreferredScoring: "HALF",
			UserAgent:        "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			RequestTimeout:   10 * time.Second,
			MaxAttempts:      3,
			RetryBase:        400 * time.Millisecond,
			RetryMax:         6 * time.Second,
			Cooldown:         7 * time.Second,
		},
		Logging: Logging{Level: "info", Format: "text"},
		Output: Output{
			Prefix:          "injury_windows_curated",
			AthenaWorkgroup: "primary",
		},
	}
}

// Load reads INJURY_* environment variables over the defaults and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to load config from env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
