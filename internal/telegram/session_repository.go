package telegram

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sessiondb "recipe-planner/internal/telegram/db"

	"github.com/google/uuid"
)

// sessionTTL is how long a chat remembers its active list without activity.
const sessionTTL = 30 * 24 * time.Hour

// Session is the state kept for one Telegram chat.
type Session struct {
	TelegramID int64
	UserID     uuid.UUID
	Context    SessionContextData
	ExpiresAt  time.Time
}

// SessionContextData holds structured data stored in the context_data JSON field
type SessionContextData struct {
	ActiveListID int64 `json:"active_list_id,omitempty"`
}

// SessionRepository provides access to session persistence operations
type SessionRepository struct {
	queries *sessiondb.Queries
	now     func() time.Time
}

// NewSessionRepository creates a new SessionRepository instance
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{
		queries: sessiondb.New(db),
		now:     time.Now,
	}
}

// Save stores the chat's context and extends its expiry.
func (sr *SessionRepository) Save(ctx context.Context, telegramID int64, userID uuid.UUID, data SessionContextData) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	now := sr.now().UTC()
	if err := sr.queries.UpsertSession(ctx, sessiondb.UpsertSessionParams{
		TelegramID:  telegramID,
		UserID:      userID.String(),
		ContextData: string(jsonData),
		ExpiresAt:   now.Add(sessionTTL),
		CreatedAt:   now,
	}); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// GetActive returns the chat's unexpired session, or nil when there is none.
func (sr *SessionRepository) GetActive(ctx context.Context, telegramID int64) (*Session, error) {
	row, err := sr.queries.GetActiveSession(ctx, sessiondb.GetActiveSessionParams{
		TelegramID: telegramID,
		ExpiresAt:  sr.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	userID, err := uuid.Parse(row.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid session owner %q: %w", row.UserID, err)
	}

	s := &Session{TelegramID: row.TelegramID, UserID: userID, ExpiresAt: row.ExpiresAt}
	if err := json.Unmarshal([]byte(row.ContextData), &s.Context); err != nil {
		return nil, fmt.Errorf("invalid session context: %w", err)
	}
	return s, nil
}

// Delete forgets a chat's session.
func (sr *SessionRepository) Delete(ctx context.Context, telegramID int64) error {
	return sr.queries.DeleteSession(ctx, telegramID)
}

// CleanupExpired removes all expired sessions and reports how many went.
func (sr *SessionRepository) CleanupExpired(ctx context.Context) (int64, error) {
	return sr.queries.CleanupExpiredSessions(ctx, sr.now().UTC())
}
