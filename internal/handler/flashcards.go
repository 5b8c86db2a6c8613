package handler

import (
	"fmt"
	"strings"
	"sync"

	"wordsprout/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// userLock returns the per-user lock that serializes flashcard callbacks
func (h *Handler) userLock(userID int64) *sync.Mutex {
	h.callbackMux.Lock()
	defer h.callbackMux.Unlock()

	lock, exists := h.callbackLocks[userID]
	if !exists {
		lock = &sync.Mutex{}
		h.callbackLocks[userID] = lock
	}
	return lock
}

// handleFlashcard shows a random word of the active child
func (h *Handler) handleFlashcard(c tele.Context) error {
	lock := h.userLock(c.Sender().ID)
	lock.Lock()
	defer lock.Unlock()

	user := parent(c)
	if user == nil {
		return c.Send(linkUsage)
	}
	child, err := h.activeChild(user)
	if err != nil || child == nil {
		return c.Send("👶 Add a child first: /addchild")
	}

	words, err := h.words.Flashcards(child.ID, user.ID, 1)
	if err != nil {
		h.logger.Error("Failed to get flashcard", zap.Error(err))
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{Text: "Failed to load data"})
		}
		return c.Send(errorText)
	}

	if len(words) == 0 {
		if c.Callback() != nil {
			return c.Respond(&tele.CallbackResponse{Text: "No words saved yet", ShowAlert: true})
		}
		return c.Send("No words saved yet. Send me one!")
	}

	text, markup := flashcardFront(child, words[0])
	return h.reply(c, text, markup)
}

// handleFlip turns a flashcard over
func (h *Handler) handleFlip(c tele.Context, data string) error {
	user := parent(c)
	if user == nil {
		return c.Respond(&tele.CallbackResponse{Text: "Link your account first"})
	}

	wordID, err := uuid.Parse(strings.TrimPrefix(strings.TrimSpace(data), "flip_"))
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown word"})
	}

	word, err := h.words.Get(wordID, user.ID)
	if err != nil {
		h.logger.Warn("Failed to flip flashcard", zap.String("word_id", wordID.String()), zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: "Word not found"})
	}

	category := ""
	if word.CategoryID != nil {
		categories, err := h.words.Categories()
		if err != nil {
			h.logger.Warn("Failed to load categories", zap.Error(err))
		}
		for _, cat := range categories {
			if cat.ID == *word.CategoryID {
				category = cat.Name
				break
			}
		}
	}

	text, markup := flashcardBack(*word, category)
	return h.reply(c, text, markup)
}

func flashcardFront(child *domain.Child, word domain.Word) (string, *tele.ReplyMarkup) {
	text := fmt.Sprintf("🃏 Ask %s to say:\n\n%s", child.Name, strings.ToUpper(word.Word))

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("🔄 Flip", "flip_"+word.ID.String()), btnMore),
		markup.Row(btnBack),
	)
	return text, markup
}

func flashcardBack(word domain.Word, category string) (string, *tele.ReplyMarkup) {
	var b strings.Builder
	fmt.Fprintf(&b, "🃏 %s\n\n", word.Word)
	if category != "" {
		fmt.Fprintf(&b, "🏷 %s\n", category)
	}
	fmt.Fprintf(&b, "📅 Learned %s\n", word.DateLearned.Format("Jan 2, 2006"))
	if word.Notes != "" {
		fmt.Fprintf(&b, "📝 %s\n", word.Notes)
	}

	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(btnMore),
		markup.Row(btnBack),
	)
	return b.String(), markup
}
