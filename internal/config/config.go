// Package config loads medalerts settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the environment variable that points at the config file
// when --config is not given.
const EnvConfigPath = "MEDALERTS_CONFIG"

// DefaultPath is used when neither --config nor MEDALERTS_CONFIG is set.
const DefaultPath = "config.yaml"

const (
	defaultSerpAPIURL     = "https://serpapi.com/search"
	defaultSubjectPrefix  = "Med Device Sales Jobs"
	defaultPreviewPath    = "preview_email.html"
	defaultSeenPath       = "seen_jobs.json"
	defaultSMTPHost       = "smtp.gmail.com"
	defaultSMTPPort       = 465
	defaultMaxYears       = 2
	defaultTermsPerMetro  = 2
	defaultMaxResults     = 10
	slackWebhookURLPrefix = "https://hooks.slack.com/"
)

// Config is the root configuration. Field yaml tags name the keys in error
// messages; decoding goes through rawConfig.
type Config struct {
	SearchTerms            []string           `yaml:"search_terms" validate:"required,min=1,dive,required"`
	PriorityMetro          PriorityMetro      `yaml:"priority_metro"`
	SecondaryMetros        []string           `yaml:"secondary_metros" validate:"dive,required"`
	SecondaryTermsPerMetro int                `yaml:"secondary_terms_per_metro" validate:"gte=0"`
	MaxResultsPerQuery     int                `yaml:"max_results_per_query" validate:"gte=1,lte=100"`
	Provider               ProviderConfig     `yaml:"provider"`
	Store                  StoreConfig        `yaml:"store"`
	Filters                FilterConfig       `yaml:"filters"`
	Scoring                ScoringConfig      `yaml:"scoring"`
	Metros                 []MetroConfig      `yaml:"metros" validate:"dive"`
	Digest                 DigestConfig       `yaml:"digest"`
	Notification           NotificationConfig `yaml:"notification"`
	Schedule               ScheduleConfig     `yaml:"schedule"`
}

// PriorityMetro is the metro that gets the most queries and leads the digest.
type PriorityMetro struct {
	Name          string `yaml:"name" validate:"required"`
	QueriesPerRun int    `yaml:"queries_per_run" validate:"gte=1"`
}

// ProviderConfig configures the job-search provider and its client-side
// rate limit and retry policy.
type ProviderConfig struct {
	Type              string        `yaml:"type" validate:"oneof=serpapi"`
	APIKey            string        `yaml:"api_key"` // may be empty; resolved from env or keychain at startup
	BaseURL           string        `yaml:"base_url" validate:"required,url"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second" validate:"gte=0"` // 0 disables limiting
	Burst             int           `yaml:"burst" validate:"gte=1"`
	MaxRetries        int           `yaml:"max_retries" validate:"gte=0,lte=10"`
	RetryBaseDelay    time.Duration `yaml:"retry_base_delay"`
}

// StoreConfig selects the seen-set backend.
type StoreConfig struct {
	Type string `yaml:"type" validate:"oneof=json sqlite postgres"`
	Path string `yaml:"path" validate:"required_unless=Type postgres"`
	DSN  string `yaml:"dsn" validate:"required_if=Type postgres"`
}

// FilterConfig overrides the relevance filter's keyword tables. Empty lists
// keep the built-in defaults.
type FilterConfig struct {
	ExcludeTitleKeywords []string `yaml:"exclude_title_keywords"`
	RequireTitleKeywords []string `yaml:"require_title_keywords"`
	MaxYearsExperience   int      `yaml:"max_years_experience" validate:"gte=0"`
}

// ScoringConfig extends the scorer's known-company catalog.
type ScoringConfig struct {
	KnownCompanies []string `yaml:"known_companies" validate:"dive,required"`
}

// MetroConfig is one metro and its location aliases. When any are given they
// replace the built-in catalog; order is match order.
type MetroConfig struct {
	Name    string   `yaml:"name" validate:"required"`
	Aliases []string `yaml:"aliases" validate:"required,min=1,dive,required"`
}

// DigestConfig controls rendering.
type DigestConfig struct {
	SubjectPrefix string `yaml:"subject_prefix" validate:"required"`
	QuotesPath    string `yaml:"quotes_path"`
	MaxPerMetro   int    `yaml:"max_per_metro" validate:"gte=0"` // 0 means unlimited
	PreviewPath   string `yaml:"preview_path" validate:"required"`
}

// NotificationConfig controls which notifier is used and its settings.
type NotificationConfig struct {
	Type       string      `yaml:"type" validate:"oneof=log slack email"`
	WebhookURL string      `yaml:"webhook_url" validate:"required_if=Type slack"`
	Email      EmailConfig `yaml:"email"`
}

// EmailConfig holds SMTP settings. Password may come from the environment or
// the OS keychain instead of the file.
type EmailConfig struct {
	SMTPHost       string   `yaml:"smtp_host"`
	SMTPPort       int      `yaml:"smtp_port" validate:"gte=0,lte=65535"`
	Username       string   `yaml:"username"`
	Password       string   `yaml:"password"`
	KeyringAccount string   `yaml:"keyring_account"`
	From           string   `yaml:"from" validate:"omitempty,email"`
	To             []string `yaml:"to" validate:"dive,email"`
}

// ScheduleConfig controls the daemon loop.
type ScheduleConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// rawConfig is used for YAML unmarshaling (snake_case fields, durations as
// strings, pointers where absence means "use the default").
type rawConfig struct {
	SearchTerms            []string              `yaml:"search_terms"`
	PriorityMetro          PriorityMetro         `yaml:"priority_metro"`
	SecondaryMetros        []string              `yaml:"secondary_metros"`
	SecondaryTermsPerMetro *int                  `yaml:"secondary_terms_per_metro"`
	MaxResultsPerQuery     int                   `yaml:"max_results_per_query"`
	Provider               rawProviderConfig     `yaml:"provider"`
	Store                  StoreConfig           `yaml:"store"`
	Filters                rawFilterConfig       `yaml:"filters"`
	Scoring                ScoringConfig         `yaml:"scoring"`
	Metros                 []MetroConfig         `yaml:"metros"`
	Digest                 DigestConfig          `yaml:"digest"`
	Notification           rawNotificationConfig `yaml:"notification"`
	Schedule               rawScheduleConfig     `yaml:"schedule"`
}

type rawProviderConfig struct {
	Type              string  `yaml:"type"`
	APIKey            string  `yaml:"api_key"`
	BaseURL           string  `yaml:"base_url"`
	Timeout           string  `yaml:"timeout"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	Burst             int     `yaml:"burst"`
	MaxRetries        *int    `yaml:"max_retries"`
	RetryBaseDelay    string  `yaml:"retry_base_delay"`
}

type rawFilterConfig struct {
	ExcludeTitleKeywords []string `yaml:"exclude_title_keywords"`
	RequireTitleKeywords []string `yaml:"require_title_keywords"`
	MaxYearsExperience   *int     `yaml:"max_years_experience"`
}

type rawNotificationConfig struct {
	Type       string      `yaml:"type"`
	WebhookURL string      `yaml:"webhook_url"`
	Email      EmailConfig `yaml:"email"`
}

type rawScheduleConfig struct {
	Interval string `yaml:"interval"`
}

// ResolvePath picks the config file: the flag value, then $MEDALERTS_CONFIG,
// then ./config.yaml.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config bytes. ${VAR} references are expanded from the
// environment before decoding.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	timeout, err := parseDuration("provider.timeout", raw.Provider.Timeout, 30*time.Second)
	if err != nil {
		return nil, err
	}
	retryDelay, err := parseDuration("provider.retry_base_delay", raw.Provider.RetryBaseDelay, 2*time.Second)
	if err != nil {
		return nil, err
	}
	interval, err := parseDuration("schedule.interval", raw.Schedule.Interval, 24*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		SearchTerms:            raw.SearchTerms,
		PriorityMetro:          raw.PriorityMetro,
		SecondaryMetros:        raw.SecondaryMetros,
		SecondaryTermsPerMetro: intOr(raw.SecondaryTermsPerMetro, defaultTermsPerMetro),
		MaxResultsPerQuery:     raw.MaxResultsPerQuery,
		Provider: ProviderConfig{
			Type:              stringOr(raw.Provider.Type, "serpapi"),
			APIKey:            raw.Provider.APIKey,
			BaseURL:           stringOr(raw.Provider.BaseURL, defaultSerpAPIURL),
			Timeout:           timeout,
			RequestsPerSecond: raw.Provider.RequestsPerSecond,
			Burst:             raw.Provider.Burst,
			MaxRetries:        intOr(raw.Provider.MaxRetries, 2),
			RetryBaseDelay:    retryDelay,
		},
		Store: StoreConfig{
			Type: stringOr(raw.Store.Type, "json"),
			Path: raw.Store.Path,
			DSN:  raw.Store.DSN,
		},
		Filters: FilterConfig{
			ExcludeTitleKeywords: raw.Filters.ExcludeTitleKeywords,
			RequireTitleKeywords: raw.Filters.RequireTitleKeywords,
			MaxYearsExperience:   intOr(raw.Filters.MaxYearsExperience, defaultMaxYears),
		},
		Scoring: raw.Scoring,
		Metros:  raw.Metros,
		Digest: DigestConfig{
			SubjectPrefix: stringOr(raw.Digest.SubjectPrefix, defaultSubjectPrefix),
			QuotesPath:    raw.Digest.QuotesPath,
			MaxPerMetro:   raw.Digest.MaxPerMetro,
			PreviewPath:   stringOr(raw.Digest.PreviewPath, defaultPreviewPath),
		},
		Notification: NotificationConfig{
			Type:       stringOr(raw.Notification.Type, "log"),
			WebhookURL: raw.Notification.WebhookURL,
			Email:      raw.Notification.Email,
		},
		Schedule: ScheduleConfig{Interval: interval},
	}
	if cfg.MaxResultsPerQuery == 0 {
		cfg.MaxResultsPerQuery = defaultMaxResults
	}
	if cfg.Provider.Burst == 0 {
		cfg.Provider.Burst = 1
	}
	if cfg.Store.Type != "postgres" && cfg.Store.Path == "" {
		if cfg.Store.Type == "sqlite" {
			cfg.Store.Path = "seen_jobs.db"
		} else {
			cfg.Store.Path = defaultSeenPath
		}
	}
	if cfg.Notification.Email.SMTPHost == "" {
		cfg.Notification.Email.SMTPHost = defaultSMTPHost
	}
	if cfg.Notification.Email.SMTPPort == 0 {
		cfg.Notification.Email.SMTPPort = defaultSMTPPort
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

var structValidator = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validate(cfg *Config) error {
	if err := structValidator.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("invalid config: %w", err)
		}
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			field := strings.TrimPrefix(fe.Namespace(), "Config.")
			if fe.Param() != "" {
				msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", field, fe.Tag(), fe.Param()))
			} else {
				msgs = append(msgs, fmt.Sprintf("%s failed %s", field, fe.Tag()))
			}
		}
		return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
	}

	if cfg.Provider.Timeout <= 0 {
		return fmt.Errorf("provider.timeout must be positive, got %v", cfg.Provider.Timeout)
	}
	if cfg.Provider.RetryBaseDelay < 0 {
		return fmt.Errorf("provider.retry_base_delay must not be negative, got %v", cfg.Provider.RetryBaseDelay)
	}
	if cfg.Schedule.Interval < time.Minute {
		return fmt.Errorf("schedule.interval must be at least 1m, got %v", cfg.Schedule.Interval)
	}

	switch cfg.Notification.Type {
	case "slack":
		if !strings.HasPrefix(cfg.Notification.WebhookURL, slackWebhookURLPrefix) {
			return fmt.Errorf("notification.webhook_url must start with %s", slackWebhookURLPrefix)
		}
	case "email":
		if cfg.Notification.Email.From == "" {
			return fmt.Errorf("notification.email.from is required when type is \"email\"")
		}
		if len(cfg.Notification.Email.To) == 0 {
			return fmt.Errorf("notification.email.to needs at least one recipient when type is \"email\"")
		}
	}

	seen := make(map[string]bool, len(cfg.Metros))
	for _, m := range cfg.Metros {
		if seen[m.Name] {
			return fmt.Errorf("metros: duplicate metro %q", m.Name)
		}
		seen[m.Name] = true
	}
	return nil
}

func parseDuration(key, s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parse %s %q: %w", key, s, err)
	}
	return d, nil
}

func stringOr(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}
