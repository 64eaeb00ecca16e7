package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"FinDash/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/time/rate"
)

// ErrDisabled is returned by a notifier built without credentials.
var ErrDisabled = errors.New("telegram notifier disabled")

// maxMessageLen is the Bot API limit for one text message.
const maxMessageLen = 4096

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier sends text messages to one chat through the Telegram Bot API.
type Notifier struct {
	api     sender
	chatID  int64
	limiter *rate.Limiter
	log     *logger.Logger
}

// Config contains Telegram notifier configuration.
type Config struct {
	Token       string
	ChatID      int64
	HTTPTimeout time.Duration
}

// New authorizes the bot and returns a notifier for cfg.ChatID.
func New(cfg Config, l *logger.Logger) (*Notifier, error) {
	if cfg.Token == "" || cfg.ChatID == 0 {
		return nil, fmt.Errorf("telegram token and chat id are required")
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}

	api, err := tgbotapi.NewBotAPIWithClient(cfg.Token, tgbotapi.APIEndpoint, &http.Client{Timeout: cfg.HTTPTimeout})
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	l.Info("telegram bot authorized", logger.String("account", api.Self.UserName))

	return newNotifier(api, cfg.ChatID, l), nil
}

func newNotifier(api sender, chatID int64, l *logger.Logger) *Notifier {
	return &Notifier{
		api:    api,
		chatID: chatID,
		// Bot API allows about one message per second per chat
		limiter: rate.NewLimiter(rate.Limit(1), 3),
		log:     l.With("telegram"),
	}
}

// Disabled returns a notifier that refuses to send.
func Disabled() *Notifier {
	return &Notifier{}
}

// Enabled reports whether messages can be sent.
func (n *Notifier) Enabled() bool {
	return n != nil && n.api != nil
}

// Send delivers text to the configured chat, truncating it to the API limit.
func (n *Notifier) Send(ctx context.Context, text string) error {
	if !n.Enabled() {
		return ErrDisabled
	}
	if err := n.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	runes := []rune(text)
	if len(runes) > maxMessageLen {
		text = string(runes[:maxMessageLen])
	}
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.DisableWebPagePreview = true

	if _, err := n.api.Send(msg); err != nil {
		n.log.Error("send message failed", logger.Int64("chat_id", n.chatID), logger.Error(err))
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}
