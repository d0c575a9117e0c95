// Package notify sends operator notifications about new registrations.
package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/ruteri/trainer-intake/interfaces"
)

// TelegramNotifier posts a short summary of every new registration to a chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier authenticates the bot token against the Telegram API.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// NewTelegramNotifierWithEndpoint is NewTelegramNotifier against a custom
// Bot API endpoint, formatted like tgbotapi.APIEndpoint.
func NewTelegramNotifierWithEndpoint(token string, chatID int64, endpoint string) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (t *TelegramNotifier) NotifyRegistration(ctx context.Context, app *interfaces.TrainerApplication) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(t.chatID, FormatRegistration(app))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

// FormatRegistration renders app as a Telegram HTML message. Every user
// supplied value is escaped.
func FormatRegistration(app *interfaces.TrainerApplication) string {
	var b strings.Builder
	b.WriteString("<b>Novo cadastro de personal</b>\n")
	line := func(label, value string) {
		fmt.Fprintf(&b, "%s: %s\n", label, html.EscapeString(value))
	}
	line("Nome", app.Name)
	line("CREF", app.Cref)
	line("WhatsApp", app.Whatsapp)
	line("Email", app.Email)
	line("Academias", app.Academies)
	if app.ResidentialAvailable {
		line("Residencial", "Sim")
	} else {
		line("Residencial", "Não")
	}
	if app.Instagram != nil {
		line("Instagram", *app.Instagram)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
