package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"recipe-planner/internal/auth"
	"recipe-planner/internal/clipper"
	"recipe-planner/internal/config"
	"recipe-planner/internal/database"
	"recipe-planner/internal/ingredient"
	"recipe-planner/internal/metrics"
	"recipe-planner/internal/recipe"
	"recipe-planner/internal/shared"
	"recipe-planner/internal/shopping"
	"recipe-planner/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// App holds the application's dependencies. Every engine call made through
// it is timed and recorded in Prometheus and the metrics table.
type App struct {
	cfg    *config.Config
	db     *database.DB
	logger *zap.Logger

	users        *user.Repository
	issuer       *auth.Issuer
	ingredients  *ingredient.Repository
	sequencer    *ingredient.Sequencer
	recipes      *recipe.Repository
	ledger       *shopping.Ledger
	clipper      *clipper.Clipper
	metricsStore *metrics.Store
}

// NewApp wires the repositories and engines on top of an open database.
// httpClient is used by the recipe clipper and may be nil.
func NewApp(cfg *config.Config, db *database.DB, logger *zap.Logger, httpClient *http.Client) (*App, error) {
	issuer, err := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create token issuer: %w", err)
	}

	metrics.WatchDatabase(cfg.DatabasePath)

	return &App{
		cfg:          cfg,
		db:           db,
		logger:       logger,
		users:        user.NewRepository(db, logger),
		issuer:       issuer,
		ingredients:  ingredient.NewRepository(db, logger),
		sequencer:    ingredient.NewSequencer(db, logger),
		recipes:      recipe.NewRepository(db, logger),
		ledger:       shopping.NewLedger(db, logger),
		clipper:      clipper.NewClipper(httpClient, logger),
		metricsStore: metrics.NewStore(db.SQL),
	}, nil
}

// track records one call. Use as: defer a.track("op", time.Now(), &err).
func (a *App) track(op string, start time.Time, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	outcome := shared.Outcome(err)
	elapsed := time.Since(start)

	metrics.ObserveOperation(op, outcome, elapsed)
	if rerr := a.metricsStore.Record(metrics.OperationMetric{
		Operation: op,
		Outcome:   outcome,
		LatencyMS: elapsed.Milliseconds(),
	}); rerr != nil {
		a.logger.Warn("failed to record metric", zap.String("op", op), zap.Error(rerr))
	}
}

// --- Users ---

// CreateUser registers a new user.
func (a *App) CreateUser(ctx context.Context, username string) (u *user.User, err error) {
	defer a.track("create user", time.Now(), &err)
	return a.users.Create(ctx, username)
}

// UserByUsername looks a user up by name.
func (a *App) UserByUsername(ctx context.Context, username string) (*user.User, error) {
	return a.users.GetByUsername(ctx, username)
}

// TelegramUser returns the user bound to a Telegram account, creating it on
// first contact.
func (a *App) TelegramUser(ctx context.Context, telegramID int64, username string) (*user.User, error) {
	return a.users.GetOrCreateByTelegramID(ctx, telegramID, username)
}

// IssueToken returns a bearer token for an existing user.
func (a *App) IssueToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if _, err := a.users.Get(ctx, userID); err != nil {
		return "", err
	}
	return a.issuer.Issue(userID)
}

// Authenticate resolves a bearer token to a known user.
func (a *App) Authenticate(ctx context.Context, token string) (*user.User, error) {
	id, err := a.issuer.Parse(token)
	if err != nil {
		return nil, err
	}
	return a.users.Get(ctx, id)
}

// --- Metrics ---

// Usage returns per-day operation totals for the last days.
func (a *App) Usage(days int) ([]metrics.DailyUsage, error) {
	return a.metricsStore.GetDailyUsage(days)
}

// Breakdown returns per-operation outcome counts for the last days.
func (a *App) Breakdown(days int) ([]metrics.OperationCount, error) {
	return a.metricsStore.GetBreakdown(days)
}

// PruneMetrics drops metric rows older than days.
func (a *App) PruneMetrics(days int) (int64, error) {
	return a.metricsStore.Cleanup(days)
}

// Health reports process and storage health.
func (a *App) Health() metrics.SysHealth {
	return metrics.GetSysHealth(a.cfg.DatabasePath)
}
