package telegram

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"recipe-planner/internal/config"
	"recipe-planner/internal/metrics"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// messageTimeout bounds the work done for a single chat message.
const messageTimeout = time.Minute

// botAPI is the part of *tgbotapi.BotAPI the bot uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	HandleUpdate(r *http.Request) (*tgbotapi.Update, error)
}

// Bot receives webhook updates and answers them through the Handler.
type Bot struct {
	api     botAPI
	handler *Handler
	cfg     *config.Config
	logger  *zap.Logger

	wg sync.WaitGroup
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, handler *Handler, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	logger.Info("authorized on telegram", zap.String("account", api.Self.UserName))

	wh, err := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook url %s: %w", cfg.TelegramWebhookURL, err)
	}
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	logger.Info("webhook set", zap.String("description", resp.Description))

	return newBot(api, handler, cfg, logger), nil
}

func newBot(api botAPI, handler *Handler, cfg *config.Config, logger *zap.Logger) *Bot {
	return &Bot{api: api, handler: handler, cfg: cfg, logger: logger}
}

// RegisterHandlers registers the webhook, health and metrics endpoints.
func (b *Bot) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/webhook", b.handleWebhook)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("/metrics", metrics.Handler())
}

// Wait blocks until every message already accepted has been answered.
func (b *Bot) Wait() {
	b.wg.Wait()
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		b.logger.Warn("error parsing update", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		return
	}

	if !b.cfg.IsAllowed(update.Message.From.ID) {
		b.logger.Warn("unauthorized access attempt",
			zap.Int64("telegram_id", update.Message.From.ID),
			zap.String("username", update.Message.From.UserName),
		)
		return
	}

	b.wg.Add(1)
	go func(msg *tgbotapi.Message) {
		defer b.wg.Done()
		b.processMessage(msg)
	}(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), messageTimeout)
	defer cancel()

	in := Message{TelegramID: msg.From.ID, Username: msg.From.UserName, Text: msg.Text}

	// Imports fetch a page, so acknowledge first and edit the reply in place.
	if isURL(in.Text) {
		sent, err := b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, "✂️ Clipping recipe..."))
		if err != nil {
			b.logger.Warn("failed to send initial reply", zap.Error(err))
			return
		}
		b.send(tgbotapi.NewEditMessageText(msg.Chat.ID, sent.MessageID, b.handler.Handle(ctx, in)))
		return
	}

	b.send(tgbotapi.NewMessage(msg.Chat.ID, b.handler.Handle(ctx, in)))
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.logger.Warn("failed to send reply", zap.Error(err))
	}
}
