package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const minimalConfig = `
search_terms:
  - medical device sales
  - clinical sales associate
priority_metro:
  name: "Chicago, IL"
  queries_per_run: 3
secondary_metros:
  - "Dallas, TX"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MinimalConfigAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.SearchTerms) != 2 {
		t.Errorf("SearchTerms = %v", cfg.SearchTerms)
	}
	if cfg.PriorityMetro.Name != "Chicago, IL" || cfg.PriorityMetro.QueriesPerRun != 3 {
		t.Errorf("PriorityMetro = %+v", cfg.PriorityMetro)
	}
	if cfg.SecondaryTermsPerMetro != 2 {
		t.Errorf("SecondaryTermsPerMetro = %d, want 2", cfg.SecondaryTermsPerMetro)
	}
	if cfg.MaxResultsPerQuery != 10 {
		t.Errorf("MaxResultsPerQuery = %d, want 10", cfg.MaxResultsPerQuery)
	}
	if cfg.Provider.Type != "serpapi" || cfg.Provider.BaseURL != defaultSerpAPIURL {
		t.Errorf("Provider = %+v", cfg.Provider)
	}
	if cfg.Provider.Timeout != 30*time.Second {
		t.Errorf("Provider.Timeout = %v, want 30s", cfg.Provider.Timeout)
	}
	if cfg.Provider.MaxRetries != 2 {
		t.Errorf("Provider.MaxRetries = %d, want 2", cfg.Provider.MaxRetries)
	}
	if cfg.Store.Type != "json" || cfg.Store.Path != "seen_jobs.json" {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.Filters.MaxYearsExperience != 2 {
		t.Errorf("MaxYearsExperience = %d, want 2", cfg.Filters.MaxYearsExperience)
	}
	if cfg.Digest.SubjectPrefix != "Med Device Sales Jobs" {
		t.Errorf("SubjectPrefix = %q", cfg.Digest.SubjectPrefix)
	}
	if cfg.Notification.Type != "log" {
		t.Errorf("Notification.Type = %q, want log", cfg.Notification.Type)
	}
	if cfg.Schedule.Interval != 24*time.Hour {
		t.Errorf("Schedule.Interval = %v, want 24h", cfg.Schedule.Interval)
	}
}

func TestLoad_ExplicitZeroIsKept(t *testing.T) {
	content := minimalConfig + `
secondary_terms_per_metro: 0
filters:
  max_years_experience: 0
provider:
  max_retries: 0
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SecondaryTermsPerMetro != 0 {
		t.Errorf("SecondaryTermsPerMetro = %d, want 0", cfg.SecondaryTermsPerMetro)
	}
	if cfg.Filters.MaxYearsExperience != 0 {
		t.Errorf("MaxYearsExperience = %d, want 0", cfg.Filters.MaxYearsExperience)
	}
	if cfg.Provider.MaxRetries != 0 {
		t.Errorf("MaxRetries = %d, want 0", cfg.Provider.MaxRetries)
	}
}

func TestLoad_FullConfig(t *testing.T) {
	content := minimalConfig + `
max_results_per_query: 20
provider:
  api_key: abc
  timeout: 10s
  requests_per_second: 0.5
  burst: 2
  retry_base_delay: 500ms
store:
  type: sqlite
  path: /tmp/seen.db
scoring:
  known_companies: [Acme Medical]
metros:
  - name: "Chicago, IL"
    aliases: [chicago, naperville]
digest:
  max_per_metro: 15
notification:
  type: email
  email:
    smtp_port: 587
    from: alerts@example.com
    to: [me@example.com]
schedule:
  interval: 12h
`
	cfg, err := Load(writeConfig(t, content))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider.APIKey != "abc" || cfg.Provider.Timeout != 10*time.Second || cfg.Provider.Burst != 2 {
		t.Errorf("Provider = %+v", cfg.Provider)
	}
	if cfg.Provider.RetryBaseDelay != 500*time.Millisecond {
		t.Errorf("RetryBaseDelay = %v", cfg.Provider.RetryBaseDelay)
	}
	if cfg.Store.Type != "sqlite" || cfg.Store.Path != "/tmp/seen.db" {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if len(cfg.Metros) != 1 || len(cfg.Metros[0].Aliases) != 2 {
		t.Errorf("Metros = %+v", cfg.Metros)
	}
	if cfg.Notification.Email.SMTPHost != "smtp.gmail.com" || cfg.Notification.Email.SMTPPort != 587 {
		t.Errorf("Email = %+v", cfg.Notification.Email)
	}
	if cfg.Digest.MaxPerMetro != 15 {
		t.Errorf("MaxPerMetro = %d", cfg.Digest.MaxPerMetro)
	}
	if cfg.Schedule.Interval != 12*time.Hour {
		t.Errorf("Interval = %v", cfg.Schedule.Interval)
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("TEST_SERPAPI_KEY", "from-env")
	cfg, err := Load(writeConfig(t, minimalConfig+"provider:\n  api_key: ${TEST_SERPAPI_KEY}\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider.APIKey != "from-env" {
		t.Errorf("APIKey = %q, want from-env", cfg.Provider.APIKey)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("Load: expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "search_terms: [broken"))
	if err == nil {
		t.Fatal("Load: expected error for invalid YAML")
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "no search terms",
			content: "priority_metro:\n  name: Chicago\n  queries_per_run: 1\n",
			wantErr: "search_terms",
		},
		{
			name:    "missing priority metro",
			content: "search_terms: [a]\n",
			wantErr: "priority_metro.name",
		},
		{
			name:    "unknown store type",
			content: minimalConfig + "store:\n  type: redis\n",
			wantErr: "store.type",
		},
		{
			name:    "postgres needs dsn",
			content: minimalConfig + "store:\n  type: postgres\n",
			wantErr: "store.dsn",
		},
		{
			name:    "slack needs webhook",
			content: minimalConfig + "notification:\n  type: slack\n",
			wantErr: "notification.webhook_url",
		},
		{
			name:    "slack webhook must be slack",
			content: minimalConfig + "notification:\n  type: slack\n  webhook_url: https://example.com/hook\n",
			wantErr: "hooks.slack.com",
		},
		{
			name:    "email needs from",
			content: minimalConfig + "notification:\n  type: email\n  email:\n    to: [me@example.com]\n",
			wantErr: "notification.email.from",
		},
		{
			name:    "email needs recipients",
			content: minimalConfig + "notification:\n  type: email\n  email:\n    from: a@example.com\n",
			wantErr: "notification.email.to",
		},
		{
			name:    "bad recipient",
			content: minimalConfig + "notification:\n  type: email\n  email:\n    from: a@example.com\n    to: [not-an-address]\n",
			wantErr: "email",
		},
		{
			name:    "bad duration",
			content: minimalConfig + "provider:\n  timeout: soon\n",
			wantErr: "provider.timeout",
		},
		{
			name:    "interval too short",
			content: minimalConfig + "schedule:\n  interval: 10s\n",
			wantErr: "schedule.interval",
		},
		{
			name:    "metro without aliases",
			content: minimalConfig + "metros:\n  - name: Denver\n",
			wantErr: "aliases",
		},
		{
			name:    "duplicate metro",
			content: minimalConfig + "metros:\n  - name: Denver\n    aliases: [denver]\n  - name: Denver\n    aliases: [boulder]\n",
			wantErr: "duplicate metro",
		},
		{
			name:    "negative years",
			content: minimalConfig + "filters:\n  max_years_experience: -1\n",
			wantErr: "filters.max_years_experience",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatalf("Load: expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	if got := ResolvePath(""); got != DefaultPath {
		t.Errorf("ResolvePath() = %q, want %q", got, DefaultPath)
	}

	t.Setenv(EnvConfigPath, "/etc/medalerts.yaml")
	if got := ResolvePath(""); got != "/etc/medalerts.yaml" {
		t.Errorf("ResolvePath() with env = %q", got)
	}
	if got := ResolvePath("flag.yaml"); got != "flag.yaml" {
		t.Errorf("ResolvePath(flag) = %q, want flag.yaml", got)
	}
}
