package api

import (
	"net/http"
	"strconv"

	"wordsprout/internal/domain"
)

type flashcardResponse struct {
	wordResponse
	Category      string `json:"category"`
	CategoryColor string `json:"category_color"`
}

type flashcardsResponse struct {
	Cards []flashcardResponse `json:"cards"`
}

// flashcards returns a shuffled review session for a child
func (h *Handler) flashcards(w http.ResponseWriter, r *http.Request) {
	childID, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			h.fail(w, r, domain.ValidationError{Field: "limit", Message: "limit must be a number"})
			return
		}
	}

	words, err := h.words.Flashcards(childID, currentUser(r), limit)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	categories, err := h.words.Categories()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	byID := make(map[string]domain.WordCategory, len(categories))
	for _, c := range categories {
		byID[c.ID.String()] = c
	}

	resp := flashcardsResponse{Cards: make([]flashcardResponse, 0, len(words))}
	for _, word := range words {
		card := flashcardResponse{wordResponse: toWordResponse(word)}
		if card.CategoryID != nil {
			if c, ok := byID[*card.CategoryID]; ok {
				card.Category = c.Name
				card.CategoryColor = c.Color
			}
		}
		resp.Cards = append(resp.Cards, card)
	}
	writeJSON(w, http.StatusOK, resp)
}
