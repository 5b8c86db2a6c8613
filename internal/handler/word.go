package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wordsprout/internal/domain"
	"wordsprout/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	user := parent(c)
	if user == nil {
		return c.Send(linkUsage)
	}

	state := h.GetState(userID)

	switch state.State {
	case domain.StateWaitingChildName:
		name, err := domain.ValidateName("name", text)
		if err != nil {
			return c.Send("⚠️ Please send a name.")
		}

		cancelMarkup := &tele.ReplyMarkup{}
		cancelMarkup.Inline(cancelMarkup.Row(btnCancel))

		h.SetState(userID, &domain.StateData{
			State:     domain.StateWaitingBirthdate,
			ChildName: name,
		})

		return c.Send(fmt.Sprintf("🎂 When was %s born? (YYYY-MM-DD)", name), cancelMarkup)

	case domain.StateWaitingBirthdate:
		return h.createChild(c, user, state.ChildName, text)

	default:
		return h.addWord(c, user, text)
	}
}

// addWord stores text as a word for the active child
func (h *Handler) addWord(c tele.Context, user *domain.User, text string) error {
	word, child, err := h.addForActiveChild(context.Background(), user, text)
	if err != nil {
		var verr domain.ValidationError
		if errors.As(err, &verr) {
			return c.Send("⚠️ " + verr.Message)
		}
		h.logger.Error("Failed to add word",
			zap.Error(err),
			zap.String("user_id", user.ID.String()),
		)
		return c.Send("Could not save the word. Please try again.")
	}
	if child == nil {
		return c.Send("👶 Add a child first: /addchild")
	}

	h.logger.Info("Word added",
		zap.String("child_id", child.ID.String()),
		zap.String("word", word.Word),
	)

	return c.Send(fmt.Sprintf("✅ \"%s\" added for %s!\n\nSend the next word or go back to /start", word.Word, child.Name))
}

// addForActiveChild adds a word for the active child. A selection that went
// stale, such as a child deleted through the API, is refreshed and the add
// retried once. A nil child with a nil error means the parent has no children.
func (h *Handler) addForActiveChild(ctx context.Context, user *domain.User, text string) (*domain.Word, *domain.Child, error) {
	child, err := h.activeChild(user)
	if err != nil || child == nil {
		return nil, nil, err
	}

	word, err := h.words.Add(ctx, service.AddWordInput{ChildID: child.ID, UserID: user.ID, Word: text})
	if !errors.Is(err, domain.ErrNotFound) {
		return word, child, err
	}

	h.logger.Info("Active child no longer exists, refreshing selection",
		zap.String("user_id", user.ID.String()),
		zap.String("child_id", child.ID.String()),
	)
	if _, err := h.selector.Refresh(user.ID); err != nil {
		return nil, nil, err
	}
	child = h.selector.Current(user.ID)
	if child == nil {
		return nil, nil, nil
	}

	word, err = h.words.Add(ctx, service.AddWordInput{ChildID: child.ID, UserID: user.ID, Word: text})
	return word, child, err
}
