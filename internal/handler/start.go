package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"wordsprout/internal/domain"
	"wordsprout/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const linkUsage = "Link your parent account to start tracking words:\n/link email password"

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("telegram_id", userID),
		zap.String("username", c.Sender().Username),
	)
	h.ResetState(userID)

	user := parent(c)
	if user == nil {
		return c.Send("👋 Welcome to WordSprout!\n\n" + linkUsage)
	}

	child, err := h.activeChild(user)
	if err != nil {
		h.logger.Error("Failed to load active child", zap.Error(err))
		return c.Send(errorText)
	}

	return h.reply(c, menuText(child, time.Now()), mainMenuMarkup())
}

func menuText(child *domain.Child, now time.Time) string {
	if child == nil {
		return "🏠 Main menu\n\nNo child profile yet. Tap \"Add child\" to create one."
	}
	return fmt.Sprintf("🏠 Main menu\n\n%s %s, %s\n\nSend me a word to add it.", child.Avatar, child.Name, child.AgeString(now))
}

// parseLinkArgs splits "/link email password" arguments
func parseLinkArgs(payload string) (email, password string, ok bool) {
	fields := strings.Fields(payload)
	if len(fields) != 2 {
		return "", "", false
	}
	return fields[0], fields[1], true
}

// handleLink handles /link email password
func (h *Handler) handleLink(c tele.Context) error {
	email, password, ok := parseLinkArgs(c.Message().Payload)
	if !ok {
		return c.Send(linkUsage)
	}

	// The message holds a password
	if err := c.Delete(); err != nil {
		h.logger.Warn("Failed to delete link message", zap.Error(err))
	}

	user, err := h.auth.LinkTelegram(email, password, c.Sender().ID)
	if err != nil {
		var verr domain.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.Send("⚠️ " + verr.Message)
		case errors.Is(err, service.ErrInvalidCredentials):
			return c.Send("⚠️ Invalid email or password.")
		}
		h.logger.Error("Failed to link account", zap.Error(err))
		return c.Send(errorText)
	}

	child, err := h.activeChild(user)
	if err != nil {
		h.logger.Error("Failed to load active child", zap.Error(err))
		return c.Send(errorText)
	}

	h.ResetState(c.Sender().ID)
	return c.Send("✅ Account linked!\n\n"+menuText(child, time.Now()), mainMenuMarkup())
}
