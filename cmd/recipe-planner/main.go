// Command recipe-planner manages ingredients, recipes and shopping lists
// from the command line.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"recipe-planner/internal/app"
	"recipe-planner/internal/config"
	"recipe-planner/internal/database"
	"recipe-planner/internal/logging"
	"recipe-planner/internal/shared"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string
	token      string
	asJSON     bool
	timeout    time.Duration
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "recipe-planner",
	Short: "Keep ingredients in shop order and build shopping lists from recipes",
	Long: `recipe-planner stores your ingredients in the order you walk the shop,
lets you keep recipes as ingredient quantities, and builds shopping lists that
remember which recipe asked for what.

Most commands act on behalf of a user identified by --token
(or RECIPE_PLANNER_TOKEN). Get one with "recipe-planner token <username>".`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file overlaid on the environment")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token (or set RECIPE_PLANNER_TOKEN)")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", time.Minute, "Operation timeout")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(unitCmd)
	rootCmd.AddCommand(ingredientCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(recipeCmd)
	rootCmd.AddCommand(metricsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", describe(err))
		os.Exit(exitCode(err))
	}
}

// env is everything a command needs, opened once per invocation.
type env struct {
	cfg    *config.Config
	db     *database.DB
	app    *app.App
	logger *zap.Logger
}

func open() (*env, error) {
	if configPath == "" {
		configPath = os.Getenv("RECIPE_PLANNER_CONFIG")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	db, err := database.NewDB(cfg.DatabasePath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	a, err := app.NewApp(cfg, db, logger, nil)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &env{cfg: cfg, db: db, app: a, logger: logger}, nil
}

func (e *env) Close() {
	e.db.Close()
	_ = e.logger.Sync()
}

// withApp opens the environment, runs fn with a timeout and closes again.
func withApp(fn func(ctx context.Context, e *env) error) error {
	e, err := open()
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return fn(ctx, e)
}

// asOwner is withApp for commands acting on behalf of the token's user.
func asOwner(fn func(ctx context.Context, e *env, owner uuid.UUID) error) error {
	return withApp(func(ctx context.Context, e *env) error {
		t := token
		if t == "" {
			t = os.Getenv("RECIPE_PLANNER_TOKEN")
		}
		if t == "" {
			return errors.New("no token given, use --token or RECIPE_PLANNER_TOKEN")
		}
		u, err := e.app.Authenticate(ctx, t)
		if err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
		return fn(ctx, e, u.ID)
	})
}

// emit prints v as JSON with --json and calls text otherwise.
func emit(v any, text func()) error {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	text()
	return nil
}

func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, shared.Invalid(fmt.Sprintf("%s must be a positive number, got %q", what, arg))
	}
	return id, nil
}

func parseAmount(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, shared.Invalid(fmt.Sprintf("quantity must be a number, got %q", arg))
	}
	return n, nil
}

// describe hides store internals behind a short message.
func describe(err error) string {
	if errors.Is(err, shared.ErrStore) {
		return "internal error: " + err.Error()
	}
	return err.Error()
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		return 3
	case errors.Is(err, shared.ErrNothingToSort), errors.Is(err, shared.ErrValidation):
		return 2
	default:
		return 1
	}
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}
