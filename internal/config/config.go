// Package config provides configuration loading and validation for the quiz solver.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Defaults used when neither the environment nor a config file sets a value.
const (
	DefaultPort              = 8080
	DefaultSessionDeadline   = 180 * time.Second
	DefaultRenderTimeout     = 30 * time.Second
	DefaultRenderSettle      = 1 * time.Second
	DefaultSubmitTimeout     = 30 * time.Second
	DefaultDownloadTimeout   = 60 * time.Second
	DefaultCommandTargetURL  = "https://tds-llm-analysis.s-anand.net/project2/uv.json"
	DefaultPlaceholderAnswer = "placeholder"
)

// Config holds everything a quiz session and the trigger endpoint need.
// It is passed explicitly to the components; nothing reads process state after Load.
type Config struct {
	Secret string `json:"secret,omitempty"` // Shared secret expected from callers
	Email  string `json:"email,omitempty"`  // Operator email, default identity for the CLI

	Port int `json:"port,omitempty"`

	SessionDeadline Duration `json:"session_deadline,omitempty"`
	RenderTimeout   Duration `json:"render_timeout,omitempty"`
	RenderSettle    Duration `json:"render_settle,omitempty"` // Wait after <body> is ready so scripts can fill the page
	SubmitTimeout   Duration `json:"submit_timeout,omitempty"`
	DownloadTimeout Duration `json:"download_timeout,omitempty"`

	CommandTargetURL  string `json:"command_target_url,omitempty"`
	PlaceholderAnswer string `json:"placeholder_answer,omitempty"`

	Verbose bool `json:"verbose,omitempty"`
}

// Duration is a time.Duration that reads "30s"-style strings from JSON.
type Duration time.Duration

// UnmarshalJSON accepts a Go duration string or a number of seconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var seconds float64
	if err := json.Unmarshal(data, &seconds); err != nil {
		return fmt.Errorf("duration must be a string or number of seconds")
	}
	*d = Duration(time.Duration(seconds * float64(time.Second)))
	return nil
}

// MarshalJSON writes the duration as a Go duration string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Defaults returns a Config with every optional field set to its default.
func Defaults() Config {
	return Config{
		Port:              DefaultPort,
		SessionDeadline:   Duration(DefaultSessionDeadline),
		RenderTimeout:     Duration(DefaultRenderTimeout),
		RenderSettle:      Duration(DefaultRenderSettle),
		SubmitTimeout:     Duration(DefaultSubmitTimeout),
		DownloadTimeout:   Duration(DefaultDownloadTimeout),
		CommandTargetURL:  DefaultCommandTargetURL,
		PlaceholderAnswer: DefaultPlaceholderAnswer,
	}
}

// Load reads configuration from environment variables, filling gaps with defaults.
// It does not validate; call Validate once all sources are merged.
func Load() *Config {
	d := Defaults()
	return &Config{
		Secret:            getEnvString("SECRET_KEY", ""),
		Email:             getEnvString("MY_EMAIL", ""),
		Port:              getEnvInt("PORT", d.Port),
		SessionDeadline:   Duration(getEnvDuration("SESSION_DEADLINE", d.SessionDeadline.Std())),
		RenderTimeout:     Duration(getEnvDuration("RENDER_TIMEOUT", d.RenderTimeout.Std())),
		RenderSettle:      Duration(getEnvDuration("RENDER_SETTLE", d.RenderSettle.Std())),
		SubmitTimeout:     Duration(getEnvDuration("SUBMIT_TIMEOUT", d.SubmitTimeout.Std())),
		DownloadTimeout:   Duration(getEnvDuration("DOWNLOAD_TIMEOUT", d.DownloadTimeout.Std())),
		CommandTargetURL:  getEnvString("COMMAND_TARGET_URL", d.CommandTargetURL),
		PlaceholderAnswer: getEnvString("PLACEHOLDER_ANSWER", d.PlaceholderAnswer),
		Verbose:           getEnvBool("VERBOSE", false),
	}
}

// LoadFile loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("config error: SECRET_KEY is required")
	}
	if c.Email == "" {
		return fmt.Errorf("config error: MY_EMAIL is required")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config error: port %d out of range", c.Port)
	}

	durations := map[string]Duration{
		"session_deadline": c.SessionDeadline,
		"render_timeout":   c.RenderTimeout,
		"submit_timeout":   c.SubmitTimeout,
		"download_timeout": c.DownloadTimeout,
	}
	for name, d := range durations {
		if d <= 0 {
			return fmt.Errorf("config error: '%s' must be positive", name)
		}
	}
	if c.RenderSettle < 0 {
		return fmt.Errorf("config error: 'render_settle' must be non-negative")
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
// A config file loaded with LoadFile is merged over the environment this way.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Secret == "" {
		result.Secret = defaults.Secret
	}
	if result.Email == "" {
		result.Email = defaults.Email
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.SessionDeadline == 0 {
		result.SessionDeadline = defaults.SessionDeadline
	}
	if result.RenderTimeout == 0 {
		result.RenderTimeout = defaults.RenderTimeout
	}
	if result.RenderSettle == 0 {
		result.RenderSettle = defaults.RenderSettle
	}
	if result.SubmitTimeout == 0 {
		result.SubmitTimeout = defaults.SubmitTimeout
	}
	if result.DownloadTimeout == 0 {
		result.DownloadTimeout = defaults.DownloadTimeout
	}
	if result.CommandTargetURL == "" {
		result.CommandTargetURL = defaults.CommandTargetURL
	}
	if result.PlaceholderAnswer == "" {
		result.PlaceholderAnswer = defaults.PlaceholderAnswer
	}

	// Bool fields: cannot distinguish unset from false, so either source enables it
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}
