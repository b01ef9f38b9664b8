// Package notify pushes admin notifications to a Telegram chat.
// All methods are nil-safe so callers never have to check whether the
// integration is configured.
package notify

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"sorteos-api/cliparse"
)

// Notifier sends messages to the configured admin chat. A nil Notifier
// silently drops every message.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// New builds a Notifier from the configuration. Returns (nil, nil) when no
// Telegram token is configured; the service runs fine without one.
func New(cfg cliparse.Config) (*Notifier, error) {
	if cfg.TelegramToken == "" {
		return nil, nil
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Telegram: %w", err)
	}
	slog.Info("Telegram notifications enabled", "bot", bot.Self.UserName)

	return &Notifier{bot: bot, chatID: cfg.TelegramChatID}, nil
}

// Send delivers a raw message. Delivery failures are logged, never returned;
// notifications must not affect request outcomes.
func (n *Notifier) Send(text string) {
	if n == nil {
		return
	}
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		slog.Error("failed to send Telegram notification", "error", err)
	}
}

// TicketsReserved announces a new reservation.
func (n *Notifier) TicketsReserved(raffleName, userName string, numbers []string) {
	n.Send(fmt.Sprintf(
		"🎟 Nuevo apartado en %q\nUsuario: %s\nBoletos: %s",
		raffleName, userName, strings.Join(numbers, ", "),
	))
}

// PaymentRegistered announces a payment. kind is the human label for the
// payment type ("pago en línea" or "transferencia").
func (n *Notifier) PaymentRegistered(raffleName, userName, kind string, amount float64, numbers []string) {
	n.Send(fmt.Sprintf(
		"💰 Pago registrado en %q\nUsuario: %s\nTipo: %s\nMonto: $%s\nBoletos: %s",
		raffleName, userName, kind,
		humanize.CommafWithDigits(amount, 2),
		strings.Join(numbers, ", "),
	))
}
