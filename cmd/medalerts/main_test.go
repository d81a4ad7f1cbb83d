package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/amishk599/medalerts/internal/config"
	"github.com/amishk599/medalerts/internal/secrets"
	"github.com/amishk599/medalerts/internal/store"
)

const serpBody = `{
	"jobs_results": [
		{
			"job_id": "abc",
			"title": "Associate Sales Representative",
			"company_name": "Stryker",
			"location": "Naperville, IL",
			"description": "Entry level. 1 year of experience preferred.",
			"detected_extensions": {"posted_at": "2 days ago"}
		},
		{
			"job_id": "def",
			"title": "Senior Sales Manager",
			"company_name": "Medtronic",
			"location": "Chicago, IL"
		}
	]
}`

func serpServer(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Query().Get("api_key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, serpBody)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, baseURL, dir string) *config.Config {
	t.Helper()
	yaml := fmt.Sprintf(`
search_terms: ["medical device sales", "associate sales rep"]
priority_metro:
  name: "Chicago, IL"
  queries_per_run: 1
secondary_terms_per_metro: 0
provider:
  api_key: test-key
  base_url: %s
  max_retries: 0
store:
  type: json
  path: %s
digest:
  preview_path: %s
`, baseURL, filepath.Join(dir, "seen_jobs.json"), filepath.Join(dir, "preview.html"))
	cfg, err := config.Parse([]byte(yaml))
	require.NoError(t, err)
	return cfg
}

func TestRunPipeline_DryRunPersistsAndPreviews(t *testing.T) {
	var calls atomic.Int32
	srv := serpServer(t, &calls)
	dir := t.TempDir()
	cfg := testConfig(t, srv.URL, dir)
	logger := newLogger(io.Discard, false)

	require.NoError(t, runPipeline(context.Background(), cfg, modeDryRun, logger))
	assert.EqualValues(t, 1, calls.Load())

	html, err := os.ReadFile(cfg.Digest.PreviewPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Associate Sales Representative")
	assert.NotContains(t, string(html), "Senior Sales Manager")

	// Second run: both listings are already seen, so no preview is rewritten.
	require.NoError(t, os.Remove(cfg.Digest.PreviewPath))
	require.NoError(t, runPipeline(context.Background(), cfg, modeDryRun, logger))
	assert.NoFileExists(t, cfg.Digest.PreviewPath)

	fs, err := store.NewFileStore(cfg.Store.Path)
	require.NoError(t, err)
	defer fs.Close()
	set, err := fs.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, set.Len())
	assert.NotNil(t, set.LastRun)
}

func TestRunPipeline_CheckPersistsNothing(t *testing.T) {
	var calls atomic.Int32
	srv := serpServer(t, &calls)
	dir := t.TempDir()
	cfg := testConfig(t, srv.URL, dir)

	require.NoError(t, runPipeline(context.Background(), cfg, modeCheck, newLogger(io.Discard, false)))

	assert.NoFileExists(t, cfg.Store.Path)
	assert.FileExists(t, cfg.Digest.PreviewPath)
}

func TestRunPipeline_InterruptedRunLeavesSeenSetUntouched(t *testing.T) {
	var calls atomic.Int32
	srv := serpServer(t, &calls)
	cfg := testConfig(t, srv.URL, t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runPipeline(ctx, cfg, modeDryRun, newLogger(io.Discard, false))
	require.ErrorIs(t, err, context.Canceled)
	assert.EqualValues(t, 0, calls.Load())
	assert.NoFileExists(t, cfg.Digest.PreviewPath)

	fs, err := store.NewFileStore(cfg.Store.Path)
	require.NoError(t, err)
	defer fs.Close()
	set, err := fs.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, set.Len())
	assert.Nil(t, set.LastRun)
}

func TestRunPipeline_MissingAPIKeyFailsBeforeQuery(t *testing.T) {
	var calls atomic.Int32
	srv := serpServer(t, &calls)
	cfg := testConfig(t, srv.URL, t.TempDir())
	cfg.Provider.APIKey = ""
	t.Setenv(secrets.EnvSerpAPIKey, "")
	keyring.MockInit()

	err := runPipeline(context.Background(), cfg, modeCheck, newLogger(io.Discard, false))
	require.Error(t, err)
	assert.EqualValues(t, 0, calls.Load())
}

func TestSMTPConfig_DefaultsUsernameToFrom(t *testing.T) {
	got, err := smtpConfig(config.EmailConfig{
		SMTPHost: "smtp.example.com",
		SMTPPort: 587,
		Password: "app-password",
		From:     "alerts@example.com",
		To:       []string{"me@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, "alerts@example.com", got.Username)
	assert.Equal(t, "app-password", got.Password)
	assert.Equal(t, 587, got.Port)
}

func TestAuditChoices(t *testing.T) {
	cfg := &config.Config{
		SearchTerms:     []string{"a", "b", "c"},
		PriorityMetro:   config.PriorityMetro{Name: "Chicago, IL", QueriesPerRun: 3},
		SecondaryMetros: []string{"Dallas, TX"},
	}
	day := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC) // YearDay 2

	got := auditChoices(cfg, day)
	require.Len(t, got, 2)
	assert.True(t, got[0].Priority)
	assert.Equal(t, "c", got[0].Term)
	assert.Equal(t, "Dallas, TX", got[1].Name)

	assert.Nil(t, auditChoices(&config.Config{}, day))
}

func TestMetroCatalog(t *testing.T) {
	assert.Nil(t, metroCatalog(&config.Config{}))

	got := metroCatalog(&config.Config{Metros: []config.MetroConfig{{Name: "Boston, MA", Aliases: []string{"boston"}}}})
	require.Len(t, got, 1)
	assert.Equal(t, "Boston, MA", got[0].Name)
}

func TestKeyringAccount(t *testing.T) {
	got, err := keyringAccount("serpapi")
	require.NoError(t, err)
	assert.Equal(t, secrets.SerpAPIAccount, got)

	got, err = keyringAccount("custom-account")
	require.NoError(t, err)
	assert.Equal(t, "custom-account", got)
}

func TestReadSecret(t *testing.T) {
	got, err := readSecret(strings.NewReader("  s3cret \nignored\n"))
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)

	got, err = readSecret(strings.NewReader("no-newline"))
	require.NoError(t, err)
	assert.Equal(t, "no-newline", got)
}
