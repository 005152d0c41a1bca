// Package user stores the owners of ingredients, recipes and shopping lists.
package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"recipe-planner/internal/database"
	"recipe-planner/internal/shared"
	userdb "recipe-planner/internal/user/db"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// User is an account that owns data.
type User struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	TelegramID int64     `json:"telegram_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Repository handles persistence of users.
type Repository struct {
	queries *userdb.Queries
	db      *database.DB
	logger  *zap.Logger
}

// NewRepository creates a new user repository.
func NewRepository(d *database.DB, logger *zap.Logger) *Repository {
	return &Repository{
		queries: userdb.New(d.SQL),
		db:      d,
		logger:  logger,
	}
}

// Create registers a user with a unique username.
func (r *Repository) Create(ctx context.Context, username string) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, shared.Invalid("username must not be empty")
	}

	var created *User
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := r.queries.WithTx(tx)
		if _, err := q.GetUserByUsername(ctx, username); err == nil {
			return shared.Invalid(fmt.Sprintf("username %q is taken", username))
		} else if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to look up username: %w", err)
		}

		var err error
		created, err = insert(ctx, q, username, sql.NullInt64{})
		return err
	})
	if err != nil {
		return nil, r.fail("create user", err)
	}
	r.logger.Info("user created", zap.String("id", created.ID.String()), zap.String("username", username))
	return created, nil
}

// Get returns the user with the given id.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	row, err := r.queries.GetUser(ctx, id.String())
	return r.found("get user", row, err)
}

// GetByUsername returns the user with the given username.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*User, error) {
	row, err := r.queries.GetUserByUsername(ctx, strings.TrimSpace(username))
	return r.found("get user", row, err)
}

// GetOrCreateByTelegramID returns the user bound to a Telegram account,
// creating one on first contact.
func (r *Repository) GetOrCreateByTelegramID(ctx context.Context, telegramID int64, username string) (*User, error) {
	tgID := sql.NullInt64{Int64: telegramID, Valid: true}

	var u *User
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := r.queries.WithTx(tx)

		row, err := q.GetUserByTelegramID(ctx, tgID)
		if err == nil {
			u, err = toUser(row)
			return err
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to get user by telegram id: %w", err)
		}

		name := strings.TrimSpace(username)
		if name == "" {
			name = fmt.Sprintf("tg%d", telegramID)
		}
		if _, err := q.GetUserByUsername(ctx, name); err == nil {
			name = fmt.Sprintf("%s_tg%d", name, telegramID)
		} else if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to look up username: %w", err)
		}

		u, err = insert(ctx, q, name, tgID)
		return err
	})
	if err != nil {
		return nil, r.fail("get or create telegram user", err)
	}
	return u, nil
}

func (r *Repository) found(op string, row userdb.User, err error) (*User, error) {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.NotFound("user")
		}
		return nil, r.fail(op, fmt.Errorf("failed to get user: %w", err))
	}
	u, err := toUser(row)
	if err != nil {
		return nil, r.fail(op, err)
	}
	return u, nil
}

func (r *Repository) fail(op string, err error) error {
	err = shared.Classify(op, err)
	if errors.Is(err, shared.ErrStore) {
		r.logger.Error("user store failure", zap.String("op", op), zap.Error(err))
	}
	return err
}

func insert(ctx context.Context, q *userdb.Queries, username string, telegramID sql.NullInt64) (*User, error) {
	u := &User{
		ID:         uuid.New(),
		Username:   username,
		TelegramID: telegramID.Int64,
		CreatedAt:  time.Now().UTC(),
	}
	if err := q.InsertUser(ctx, userdb.InsertUserParams{
		ID:         u.ID.String(),
		Username:   u.Username,
		TelegramID: telegramID,
		CreatedAt:  u.CreatedAt,
	}); err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return u, nil
}

func toUser(row userdb.User) (*User, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse user id %q: %w", row.ID, err)
	}
	return &User{
		ID:         id,
		Username:   row.Username,
		TelegramID: row.TelegramID.Int64,
		CreatedAt:  row.CreatedAt,
	}, nil
}
