package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/amishk599/medalerts/internal/adapter"
	"github.com/amishk599/medalerts/internal/config"
	"github.com/amishk599/medalerts/internal/digest"
	"github.com/amishk599/medalerts/internal/filter"
	"github.com/amishk599/medalerts/internal/metro"
	"github.com/amishk599/medalerts/internal/model"
	"github.com/amishk599/medalerts/internal/notifier"
	"github.com/amishk599/medalerts/internal/pipeline"
	"github.com/amishk599/medalerts/internal/rank"
	"github.com/amishk599/medalerts/internal/ratelimit"
	"github.com/amishk599/medalerts/internal/retry"
	"github.com/amishk599/medalerts/internal/secrets"
	"github.com/amishk599/medalerts/internal/seen"
	"github.com/amishk599/medalerts/internal/store"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "medalerts",
	Short: "Daily entry-level med-device sales job digest",
	Long:  "medalerts searches Google Jobs for entry-level medical device sales roles, drops listings it has already reported, and sends a digest grouped by metro.",
	// Bare `medalerts` does one run so cron entries can invoke the binary directly.
	RunE: runRun,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// A missing .env is fine; the environment may already be set.
		_ = godotenv.Load()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: MEDALERTS_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "collect and print the digest, write the HTML preview, do not send")
}

// loadConfig resolves the config path and parses it.
// Priority: --config > MEDALERTS_CONFIG > ./config.yaml
func loadConfig(path string) (*config.Config, error) {
	return config.Load(config.ResolvePath(path))
}

// setupLogger returns a text logger tagged with a fresh run_id.
func setupLogger(dbg bool) *slog.Logger {
	return newLogger(os.Stdout, dbg)
}

func newLogger(w io.Writer, dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel})).
		With("run_id", uuid.NewString())
}

// setupSearcher builds retry(ratelimit(serpapi)). A missing API key is fatal
// here, before any query is sent.
func setupSearcher(cfg *config.Config, logger *slog.Logger) (model.Searcher, error) {
	apiKey, err := secrets.Resolve(secrets.Credential{
		Name:    "SerpAPI key",
		Value:   cfg.Provider.APIKey,
		EnvVar:  secrets.EnvSerpAPIKey,
		Account: secrets.SerpAPIAccount,
	})
	if err != nil {
		return nil, err
	}

	httpClient := &http.Client{Timeout: cfg.Provider.Timeout}
	var s model.Searcher = adapter.NewSerpAPISearcher(apiKey, cfg.Provider.BaseURL, httpClient)
	s = ratelimit.NewLimitedSearcher(s, ratelimit.NewLimiter(cfg.Provider.RequestsPerSecond, cfg.Provider.Burst))
	s = retry.NewRetrySearcher(s, cfg.Provider.MaxRetries, cfg.Provider.RetryBaseDelay, logger)
	return s, nil
}

// openStore opens the configured seen-set backend. The returned close func is
// always safe to call.
func openStore(ctx context.Context, cfg *config.Config) (seen.Store, func(), error) {
	switch cfg.Store.Type {
	case "sqlite":
		s, err := store.NewSQLiteStore(cfg.Store.Path)
		if err != nil {
			return nil, func() {}, err
		}
		return s, func() { s.Close() }, nil
	case "postgres":
		s, err := store.NewPostgresStore(ctx, cfg.Store.DSN)
		if err != nil {
			return nil, func() {}, err
		}
		return s, func() { s.Close() }, nil
	default:
		s, err := store.NewFileStore(cfg.Store.Path)
		if err != nil {
			return nil, func() {}, err
		}
		return s, func() { s.Close() }, nil
	}
}

func metroCatalog(cfg *config.Config) []metro.Metro {
	if len(cfg.Metros) == 0 {
		return nil
	}
	catalog := make([]metro.Metro, 0, len(cfg.Metros))
	for _, m := range cfg.Metros {
		catalog = append(catalog, metro.Metro{Name: m.Name, Aliases: m.Aliases})
	}
	return catalog
}

func setupOrchestrator(cfg *config.Config, searcher model.Searcher, st seen.Store, logger *slog.Logger) *pipeline.Orchestrator {
	return pipeline.NewOrchestrator(
		searcher,
		filter.NewRelevanceFilter(cfg.Filters.ExcludeTitleKeywords, cfg.Filters.RequireTitleKeywords, cfg.Filters.MaxYearsExperience),
		rank.NewScorer(cfg.Scoring.KnownCompanies...),
		metro.NewResolver(metroCatalog(cfg)),
		st,
		cfg.MaxResultsPerQuery,
		logger,
	)
}

func queryPlan(cfg *config.Config) pipeline.Plan {
	return pipeline.Plan{
		Terms:                  cfg.SearchTerms,
		PriorityMetro:          cfg.PriorityMetro.Name,
		PriorityQueries:        cfg.PriorityMetro.QueriesPerRun,
		SecondaryMetros:        cfg.SecondaryMetros,
		SecondaryTermsPerMetro: cfg.SecondaryTermsPerMetro,
	}
}

func setupRenderer(cfg *config.Config, logger *slog.Logger) *digest.Renderer {
	quotes, err := digest.LoadQuotes(cfg.Digest.QuotesPath)
	if err != nil {
		logger.Warn("failed to load quotes, using default", "error", err)
	}
	return digest.NewRenderer(digest.Options{
		PriorityMetro: cfg.PriorityMetro.Name,
		SubjectPrefix: cfg.Digest.SubjectPrefix,
		MaxPerMetro:   cfg.Digest.MaxPerMetro,
		Quote:         digest.PickQuote(quotes, rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))),
	})
}

// setupNotifier builds the configured channel. Every run also logs each new
// listing, so slack and email are fanned out alongside the log notifier.
func setupNotifier(cfg *config.Config, logger *slog.Logger) (model.Notifier, error) {
	priority := cfg.PriorityMetro.Name
	logN := notifier.NewLogNotifier(priority, logger)

	switch cfg.Notification.Type {
	case "slack":
		logger.Info("using slack notifier")
		httpClient := &http.Client{Timeout: 30 * time.Second}
		return notifier.NewMultiNotifier(logN, notifier.NewSlackNotifier(cfg.Notification.WebhookURL, priority, httpClient, logger)), nil
	case "email":
		smtpCfg, err := smtpConfig(cfg.Notification.Email)
		if err != nil {
			return nil, err
		}
		logger.Info("using email notifier", "host", smtpCfg.Host, "to", smtpCfg.To)
		return notifier.NewMultiNotifier(logN, notifier.NewEmailNotifier(smtpCfg, logger)), nil
	default:
		return logN, nil
	}
}

func smtpConfig(e config.EmailConfig) (notifier.SMTPConfig, error) {
	username := e.Username
	if username == "" {
		username = e.From
	}
	account := e.KeyringAccount
	if account == "" {
		account = secrets.SMTPAccount(username, e.SMTPHost)
	}
	password, err := secrets.Resolve(secrets.Credential{
		Name:    "SMTP password",
		Value:   e.Password,
		EnvVar:  secrets.EnvSMTPPassword,
		Account: account,
	})
	if err != nil {
		return notifier.SMTPConfig{}, err
	}
	return notifier.SMTPConfig{
		Host:     e.SMTPHost,
		Port:     e.SMTPPort,
		Username: username,
		Password: password,
		From:     e.From,
		To:       e.To,
	}, nil
}

// fatal logs err and exits. Missing credentials get a hint.
func fatal(logger *slog.Logger, msg string, err error) {
	if errors.Is(err, model.ErrMissingCredential) {
		fmt.Fprintln(os.Stderr, "hint: set it in config, the environment, or with `medalerts secret set`")
	}
	logger.Error(msg, "error", err)
	os.Exit(1)
}
