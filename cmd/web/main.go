package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/harrysikes/shredai/internal/adherence"
	"github.com/harrysikes/shredai/internal/bodycomp"
	"github.com/harrysikes/shredai/internal/envstruct"
	"github.com/harrysikes/shredai/internal/logging"
	"github.com/harrysikes/shredai/internal/plan"
	"github.com/harrysikes/shredai/internal/profile"
	"github.com/harrysikes/shredai/internal/sqlite"
	"golang.org/x/sync/errgroup"
)

type application struct {
	logger           *slog.Logger
	sessionManager   *scs.SessionManager
	planService      *plan.Service
	adherenceService *adherence.Service
	profileService   *profile.Service
	bodycompService  *bodycomp.Service
}

type config struct {
	// Addr is the address to listen on. Choose the port dynamically with localhost:0.
	Addr string `env:"SHREDAI_ADDR" envDefault:"localhost:8080"`
	// SqliteURL is the path to the SQLite database, ":memory:" for an ephemeral one.
	SqliteURL string `env:"SHREDAI_SQLITE_URL" envDefault:"./shredai.sqlite3"`
	// OpenAIAPIKey enables LLM refinement of body-fat estimates when set.
	OpenAIAPIKey string `env:"SHREDAI_OPENAI_API_KEY" envDefault:""`
	// SweepEnabled toggles the nightly job that persists misses for lapsed days.
	SweepEnabled bool `env:"SHREDAI_SWEEP" envDefault:"true"`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err := envstruct.Populate(&cfg, lookupEnv); err != nil {
		return fmt.Errorf("populate config: %w", err)
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return fmt.Errorf("open db %s: %w", cfg.SqliteURL, err)
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	adherenceService := adherence.NewService(db, logger)
	profileService := profile.NewService(db, logger)
	planService := plan.NewService(adherenceService, profileService, logger)
	bodycompService := bodycomp.NewService(db, logger, cfg.OpenAIAPIKey, profileService, adherenceService)

	app := application{
		logger:           logger,
		sessionManager:   initializeSessionManager(db),
		planService:      planService,
		adherenceService: adherenceService,
		profileService:   profileService,
		bodycompService:  bodycompService,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.configureAndStartServer(ctx, cfg.Addr, app.routes())
	})
	if cfg.SweepEnabled {
		sweeper := adherence.NewSweeper(adherenceService, planService, logger)
		g.Go(func() error {
			return sweeper.Run(ctx)
		})
	}
	if err = g.Wait(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}

func initializeSessionManager(db *sqlite.Database) *scs.SessionManager {
	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(db.ReadWrite, 24*time.Hour) //nolint:mnd // day
	// Long-lived sessions because the session is the device identity.
	sessionManager.Lifetime = 365 * 24 * time.Hour //nolint:mnd // a year
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.Secure = true
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteStrictMode
	return sessionManager
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelDebug,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", slog.Any("error", err))
		os.Exit(1)
	}
}
