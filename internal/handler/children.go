package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"wordsprout/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleChildren lists the parent's children with a button to activate each
func (h *Handler) handleChildren(c tele.Context) error {
	user := parent(c)
	if user == nil {
		return c.Send(linkUsage)
	}

	children, err := h.selector.Refresh(user.ID)
	if err != nil {
		return c.Send(errorText)
	}

	if len(children) == 0 {
		markup := &tele.ReplyMarkup{}
		markup.Inline(markup.Row(btnAddChild), markup.Row(btnBack))
		return h.reply(c, "👶 No child profiles yet.", markup)
	}

	current := h.selector.Current(user.ID)
	now := time.Now()

	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	for _, child := range children {
		rows = append(rows, markup.Row(markup.Data(childButtonText(child, current, now), "child_"+child.ID.String())))
	}
	rows = append(rows, markup.Row(btnAddChild), markup.Row(btnBack))
	markup.Inline(rows...)

	return h.reply(c, "👶 Choose a child:", markup)
}

func childButtonText(child domain.Child, current *domain.Child, now time.Time) string {
	text := fmt.Sprintf("%s %s (%s)", child.Avatar, child.Name, child.AgeString(now))
	if current != nil && current.ID == child.ID {
		text = "✅ " + text
	}
	return text
}

// handleChildSelection makes the chosen child active
func (h *Handler) handleChildSelection(c tele.Context, data string) error {
	user := parent(c)
	if user == nil {
		return c.Respond(&tele.CallbackResponse{Text: "Link your account first"})
	}

	childID, err := uuid.Parse(strings.TrimPrefix(strings.TrimSpace(data), "child_"))
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown child"})
	}

	child, err := h.children.Get(childID, user.ID)
	if err != nil {
		h.logger.Warn("Failed to select child", zap.String("child_id", childID.String()), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Child not found"})
	}

	h.selector.Set(user.ID, child)
	return h.reply(c, menuText(child, time.Now()), mainMenuMarkup())
}

// handleAddChild starts the add child dialog
func (h *Handler) handleAddChild(c tele.Context) error {
	if parent(c) == nil {
		return c.Send(linkUsage)
	}

	h.SetState(c.Sender().ID, &domain.StateData{State: domain.StateWaitingChildName})

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnCancel))
	return h.reply(c, "👶 What is your child's name?", markup)
}

// createChild finishes the add child dialog once the birthdate is known
func (h *Handler) createChild(c tele.Context, user *domain.User, name, birthdate string) error {
	userID := c.Sender().ID

	child, err := h.children.Create(user.ID, name, birthdate, "")
	if err != nil {
		var verr domain.ValidationError
		if errors.As(err, &verr) {
			return c.Send("⚠️ " + verr.Message + "\n\nPlease send the birthdate as YYYY-MM-DD.")
		}
		h.logger.Error("Failed to create child", zap.Error(err))
		h.ResetState(userID)
		return c.Send(errorText)
	}

	h.ResetState(userID)
	h.selector.Set(user.ID, child)
	return c.Send(fmt.Sprintf("✅ %s %s added!\n\n", child.Avatar, child.Name)+menuText(child, time.Now()), mainMenuMarkup())
}
