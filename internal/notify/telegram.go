package notify

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// botAPI is the part of *tgbotapi.BotAPI the sender uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramSender delivers reminders through a Telegram bot. A token is the
// numeric chat id the user registered.
type TelegramSender struct {
	bot botAPI
}

func NewTelegramSender(botToken string) (*TelegramSender, error) {
	if strings.TrimSpace(botToken) == "" {
		return nil, errors.New("telegram: bot token is empty")
	}
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram: create bot: %w", err)
	}
	return &TelegramSender{bot: api}, nil
}

func newTelegramSenderWithBot(bot botAPI) *TelegramSender {
	return &TelegramSender{bot: bot}
}

func (s *TelegramSender) Send(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	chatID, err := strconv.ParseInt(strings.TrimSpace(m.Token), 10, 64)
	if err != nil {
		return fmt.Errorf("telegram: chat id %q: %w", m.Token, ErrTokenInvalid)
	}

	msg := tgbotapi.NewMessage(chatID, RenderTelegram(m))
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := s.bot.Send(msg); err != nil {
		if isGone(err) {
			return fmt.Errorf("telegram: chat %d: %w", chatID, ErrTokenInvalid)
		}
		return fmt.Errorf("telegram: send to %d: %w", chatID, err)
	}
	return nil
}

// RenderTelegram formats a reminder as Telegram HTML.
func RenderTelegram(m Message) string {
	return fmt.Sprintf("<b>%s</b>\n%s", html.EscapeString(m.Title), html.EscapeString(m.Body))
}

// isGone reports whether Telegram says the chat can never receive messages:
// the user blocked the bot, or the chat does not exist.
func isGone(err error) bool {
	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code == 403 {
		return true
	}
	return apiErr.Code == 400 && strings.Contains(strings.ToLower(apiErr.Message), "chat not found")
}
