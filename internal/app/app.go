package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-co-op/gocron/v2"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-cricket/external/cricapi"
	"github.com/riskibarqy/fantasy-cricket/internal/config"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/contest"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasyteam"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/jobscheduler"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/player"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/user"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/account/anubis"
	cacherepo "github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-cricket/internal/infrastructure/repository/sqlstore"
	"github.com/riskibarqy/fantasy-cricket/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/fantasy-cricket/internal/platform/cache"
	idgen "github.com/riskibarqy/fantasy-cricket/internal/platform/id"
	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

// App owns the HTTP server, the optional database handle and the sync
// scheduler.
type App struct {
	cfg       config.Config
	logger    *logging.Logger
	server    *http.Server
	db        *sqlx.DB
	sync      *usecase.SyncService
	scheduler gocron.Scheduler
}

type repositories struct {
	users    user.Repository
	teams    fantasyteam.Repository
	contests contest.Repository
	runs     jobscheduler.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	a := &App{cfg: cfg, logger: logger}

	repos, err := a.buildRepositories(ctx)
	if err != nil {
		return nil, err
	}

	var provider usecase.MatchProvider = cricapi.NewClient(cricapi.ClientConfig{
		BaseURL:        cfg.CricAPIBaseURL,
		APIKey:         cfg.CricAPIKey,
		Timeout:        cfg.CricAPITimeout,
		MaxRetries:     cfg.CricAPIMaxRetries,
		RateLimit:      cfg.CricAPIRateLimit,
		RateBurst:      cfg.CricAPIRateBurst,
		Transport:      cfg.CricAPITransport,
		CircuitBreaker: cfg.CricAPICircuit,
		Logger:         logger,
	})
	if cfg.CacheEnabled {
		provider = cacherepo.NewMatchProvider(provider, basecache.NewStore(cfg.CacheTTL))
	}

	rules := fantasyteam.DefaultRules()
	rules.TotalCreditsBudget = player.CreditsFromFloat(cfg.TeamCreditsBudget)
	ids := idgen.NewUUIDGenerator()

	matchSvc := usecase.NewMatchService(provider, logger)
	teamSvc := usecase.NewTeamService(repos.teams, rules, ids, logger)
	contestSvc := usecase.NewContestService(repos.contests, repos.teams, ids, logger)
	a.sync = usecase.NewSyncService(matchSvc, repos.contests, repos.runs, ids, cfg.SyncWorkers, logger)
	userSvc := usecase.NewUserService(repos.users, logger)

	verifier := anubis.NewClient(anubis.ClientConfig{
		BaseURL:        cfg.AnubisBaseURL,
		IntrospectPath: cfg.AnubisIntrospectURL,
		AdminKey:       cfg.AnubisAdminKey,
		Timeout:        cfg.AnubisTimeout,
		CircuitBreaker: cfg.AnubisCircuit,
		Logger:         logger,
	})

	handler := httpapi.NewHandler(matchSvc, teamSvc, contestSvc, a.sync, userSvc, logger)
	router := httpapi.NewRouter(handler, verifier, httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
		AllowUnsetJobToken: !cfg.IsProduction(),
	}, logger)

	a.server = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	return a, nil
}

func (a *App) buildRepositories(ctx context.Context) (repositories, error) {
	if a.cfg.DBDriver == config.DBDriverMemory {
		users := memory.NewUserRepository()
		teams := memory.NewFantasyTeamRepository()
		a.logger.Warn("using in-memory repositories; data is lost on restart")
		return repositories{
			users:    users,
			teams:    teams,
			contests: memory.NewContestRepository(teams, users),
			runs:     memory.NewSyncRunRepository(),
		}, nil
	}

	db, err := openDatabase(ctx, a.cfg, a.logger)
	if err != nil {
		return repositories{}, err
	}
	a.db = db
	return repositories{
		users:    sqlstore.NewUserRepository(db),
		teams:    sqlstore.NewFantasyTeamRepository(db),
		contests: sqlstore.NewContestRepository(db),
		runs:     sqlstore.NewSyncRunRepository(db),
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.server
}

// Start launches the sync scheduler when it is enabled. ctx bounds every
// scheduled run.
func (a *App) Start(ctx context.Context) error {
	if !a.cfg.SyncSchedulerEnabled {
		a.logger.Info("sync scheduler disabled", "reason", "SYNC_SCHEDULER_ENABLED=false")
		return nil
	}

	scheduler, err := newSyncScheduler(ctx, a.sync, a.cfg.SyncInterval, a.logger)
	if err != nil {
		return err
	}
	a.scheduler = scheduler
	a.scheduler.Start()
	a.logger.Info("sync scheduler started", "interval", a.cfg.SyncInterval.String())
	return nil
}

// Close stops the scheduler, drains the HTTP server and closes the database.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.scheduler != nil {
		if err := a.scheduler.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("stop scheduler: %w", err))
		}
	}
	if err := a.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
