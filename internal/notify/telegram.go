package notify

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gopkg.in/telebot.v3"

	"github.com/nikmy/fleetsync/pkg/errors"
	"github.com/nikmy/fleetsync/pkg/logger"
	"github.com/nikmy/fleetsync/pkg/tools/throttle"
)

type TelegramConfig struct {
	Token   string        `yaml:"token"`
	ChatID  int64         `yaml:"chatID"`
	Timeout time.Duration `yaml:"timeout"`

	// OnlyFailures mutes success notifications.
	OnlyFailures bool `yaml:"onlyFailures"`

	// Interval is the minimal pause between two messages, zero sends
	// right away.
	Interval time.Duration `yaml:"interval"`
}

const telegramQueueSize = 64

type sender interface {
	Send(to telebot.Recipient, what any, opts ...any) (*telebot.Message, error)
}

// Telegram forwards notifications to an admin chat. An empty token disables it.
// Throttled sending stops when ctx is done.
func Telegram(ctx context.Context, log logger.Logger, cfg TelegramConfig) (Notifier, error) {
	if cfg.Token == "" {
		return nil, nil
	}

	settings := telebot.Settings{
		Token:   cfg.Token,
		Offline: true,
	}
	if cfg.Timeout > 0 {
		settings.Client = &http.Client{Timeout: cfg.Timeout}
	}

	bot, err := telebot.NewBot(settings)
	if err != nil {
		return nil, errors.WrapFail(err, "init telegram bot")
	}

	return newTelegram(ctx, log, cfg, bot), nil
}

func newTelegram(ctx context.Context, log logger.Logger, cfg TelegramConfig, s sender) *telegram {
	t := &telegram{
		bot:  s,
		chat: chat(cfg.ChatID),
		cfg:  cfg,
		log:  log.With("telegram_notifier"),
	}

	if cfg.Interval > 0 {
		t.queue = throttle.New(cfg.Interval, telegramQueueSize)
		t.queue.Run(ctx)
	}

	return t
}

type telegram struct {
	bot   sender
	chat  chat
	cfg   TelegramConfig
	log   logger.Logger
	queue *throttle.Throttler
}

func (t *telegram) Notify(_ context.Context, n Notification) {
	if t.cfg.OnlyFailures && n.Variant != VariantDestructive {
		return
	}

	text := format(n)
	if t.queue == nil {
		t.send(text)
		return
	}

	if !t.queue.Do(func() { t.send(text) }) {
		t.log.Warnf("telegram queue is full, dropped %q", n.Title)
	}
}

func (t *telegram) send(text string) {
	_, err := t.bot.Send(t.chat, text, &telebot.SendOptions{ParseMode: telebot.ModeMarkdown})
	if err != nil {
		t.log.Warn(errors.WrapFail(err, "send telegram notification"))
	}
}

func format(n Notification) string {
	mark := "✅"
	if n.Variant == VariantDestructive {
		mark = "❗"
	}
	return fmt.Sprintf("%s *%s*\n%s", mark, markdown.Replace(n.Title), markdown.Replace(n.Description))
}

// markdown escapes the entities of Telegram's legacy Markdown parse mode.
var markdown = strings.NewReplacer(`_`, `\_`, `*`, `\*`, "`", "\\`", `[`, `\[`)

type chat int64

func (c chat) Recipient() string {
	return strconv.FormatInt(int64(c), 10)
}
