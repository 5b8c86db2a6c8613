package middleware

import (
	"errors"
	"strings"

	"wordsprout/internal/domain"
	"wordsprout/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// BotUserKey is the context key holding the linked *domain.User
const BotUserKey = "user"

// TelegramUsers resolves parent accounts by Telegram ID
type TelegramUsers interface {
	UserByTelegram(telegramID int64) (*domain.User, error)
}

// BotAuth creates authentication middleware for the bot
func BotAuth(users TelegramUsers, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			telegramID := c.Sender().ID

			user, err := users.UserByTelegram(telegramID)
			switch {
			case err == nil:
				c.Set(BotUserKey, user)
				return next(c)
			case errors.Is(err, service.ErrNotLinked):
				// /start and /link work before the account is linked
				if isPublicCommand(c.Text()) {
					return next(c)
				}
				return c.Send("🔒 Link your parent account first:\n/link email password")
			default:
				logger.Error("Failed to resolve linked account in middleware",
					zap.Int64("telegram_id", telegramID),
					zap.Error(err),
				)
				return c.Send("Something went wrong. Please try again later.")
			}
		}
	}
}

func isPublicCommand(text string) bool {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return false
	}
	command, _, _ := strings.Cut(fields[0], "@")
	return command == "/start" || command == "/link"
}
