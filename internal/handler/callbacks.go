package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"wordsprout/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// Another callback already edited the message
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("telegram_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		_ = c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("telegram_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Clean data from all non-printable characters
	data := cleanCallbackData(callback.Data)
	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.String("unique", callback.Unique),
		zap.Int64("telegram_id", c.Sender().ID),
	)

	// Buttons whose Unique did not come through
	if callback.Unique == "" {
		switch data {
		case btnViewDays.Unique, btnBackToDays.Unique:
			return h.handleViewDays(c)
		case btnChildren.Unique:
			return h.handleChildren(c)
		case btnAddChild.Unique:
			return h.handleAddChild(c)
		case btnStats.Unique:
			return h.handleStats(c)
		case btnMilestones.Unique:
			return h.handleMilestones(c)
		case btnFlashcard.Unique, btnMore.Unique:
			return h.handleFlashcard(c)
		case btnCancel.Unique:
			return h.handleCancel(c)
		case btnBack.Unique, btnMainMenu.Unique:
			return h.handleStart(c)
		}
	}

	// Handle by Data prefix (dynamic buttons)
	switch {
	case strings.HasPrefix(data, "page_"):
		return h.handlePagination(c, data)
	case strings.HasPrefix(data, "day_"):
		return h.handleDaySelection(c, data)
	case strings.HasPrefix(data, "child_"):
		return h.handleChildSelection(c, data)
	case strings.HasPrefix(data, "flip_"):
		return h.handleFlip(c, data)
	}

	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// daysMarkup builds the day list with pagination for one page
func daysMarkup(days []domain.Day, page, totalPages int, now time.Time) (string, *tele.ReplyMarkup) {
	text := "📅 Days with new words:\n\n"
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	for _, day := range days {
		btnText := fmt.Sprintf("%s (%d)", day.DisplayString(now), day.WordCount)
		rows = append(rows, markup.Row(markup.Data(btnText, "day_"+day.DateString())))
	}

	if totalPages > 1 {
		navRow := tele.Row{}
		if page > 1 {
			navRow = append(navRow, markup.Data("⬅️", fmt.Sprintf("page_%d", page-1)))
		}
		if page < totalPages {
			navRow = append(navRow, markup.Data("➡️", fmt.Sprintf("page_%d", page+1)))
		}
		if len(navRow) > 0 {
			rows = append(rows, navRow)
		}
	}

	rows = append(rows, markup.Row(btnBack))
	markup.Inline(rows...)
	return text, markup
}

// handleViewDays shows the first page of days with words
func (h *Handler) handleViewDays(c tele.Context) error {
	return h.showDays(c, 1)
}

// handlePagination handles page navigation
func (h *Handler) handlePagination(c tele.Context, data string) error {
	page, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(data), "page_"))
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid page"})
	}
	return h.showDays(c, page)
}

func (h *Handler) showDays(c tele.Context, page int) error {
	user := parent(c)
	if user == nil {
		return c.Send(linkUsage)
	}
	child, err := h.activeChild(user)
	if err != nil || child == nil {
		return c.Send("👶 Add a child first: /addchild")
	}

	days, totalPages, err := h.stats.Days(child.ID, user.ID, page)
	if err != nil {
		h.logger.Error("Failed to get days list", zap.Error(err))
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{Text: "Failed to load data"})
		}
		return c.Send(errorText)
	}

	if len(days) == 0 {
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{Text: "No words saved yet", ShowAlert: true})
		}
		return c.Send("No words saved yet. Send me one!")
	}

	text, markup := daysMarkup(days, page, totalPages, time.Now())
	return h.reply(c, text, markup)
}

// handleDaySelection shows words for selected day
func (h *Handler) handleDaySelection(c tele.Context, data string) error {
	user := parent(c)
	if user == nil {
		return c.Respond(&tele.CallbackResponse{Text: "Link your account first"})
	}
	child, err := h.activeChild(user)
	if err != nil || child == nil {
		return c.Respond(&tele.CallbackResponse{Text: "No child selected"})
	}

	dateStr := strings.TrimPrefix(strings.TrimSpace(data), "day_")
	words, err := h.stats.WordsOn(child.ID, user.ID, dateStr)
	if err != nil {
		h.logger.Error("Failed to get words by date", zap.String("date", dateStr), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Failed to load words"})
	}

	if len(words) == 0 {
		return c.Respond(&tele.CallbackResponse{Text: "No words on this day"})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📝 %s's words (%d):\n\n", child.Name, len(words))
	for i, word := range words {
		fmt.Fprintf(&b, "%d. %s", i+1, word.Word)
		if word.Notes != "" {
			fmt.Fprintf(&b, " · %s", word.Notes)
		}
		b.WriteString("\n")
	}

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(btnBackToDays, btnMainMenu),
	)

	return h.reply(c, b.String(), markup)
}

// handleCancel cancels current operation and resets state
func (h *Handler) handleCancel(c tele.Context) error {
	h.ResetState(c.Sender().ID)
	return h.handleStart(c)
}
