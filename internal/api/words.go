package api

import (
	"errors"
	"net/http"
	"strings"

	"wordsprout/internal/domain"
	"wordsprout/internal/service"
	"wordsprout/internal/speech"

	"github.com/google/uuid"
)

const defaultVoiceLanguage = "en-US"

type addWordRequest struct {
	Word        string `json:"word"`
	CategoryID  string `json:"category_id"`
	DateLearned string `json:"date_learned"`
	Notes       string `json:"notes"`
}

type wordResponse struct {
	ID          string  `json:"id"`
	Word        string  `json:"word"`
	CategoryID  *string `json:"category_id"`
	DateLearned string  `json:"date_learned"`
	Notes       string  `json:"notes,omitempty"`
}

func toWordResponse(w domain.Word) wordResponse {
	resp := wordResponse{
		ID:          w.ID.String(),
		Word:        w.Word,
		DateLearned: w.DateLearned.Format(domain.DateLayout),
		Notes:       w.Notes,
	}
	if w.CategoryID != nil {
		id := w.CategoryID.String()
		resp.CategoryID = &id
	}
	return resp
}

func toWordResponses(words []domain.Word) []wordResponse {
	resp := make([]wordResponse, 0, len(words))
	for _, w := range words {
		resp = append(resp, toWordResponse(w))
	}
	return resp
}

func parseCategory(value string) (*uuid.UUID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, domain.ValidationError{Field: "category_id", Message: "invalid category"}
	}
	return &id, nil
}

func (h *Handler) listWords(w http.ResponseWriter, r *http.Request) {
	child, ok := h.ownedChild(w, r)
	if !ok {
		return
	}

	categoryID, err := parseCategory(r.URL.Query().Get("category"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	words, err := h.words.List(child.ID, child.UserID, domain.WordFilter{
		Search:     r.URL.Query().Get("search"),
		CategoryID: categoryID,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toWordResponses(words))
}

func (h *Handler) addWord(w http.ResponseWriter, r *http.Request) {
	childID, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req addWordRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	categoryID, err := parseCategory(req.CategoryID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	word, err := h.words.Add(r.Context(), service.AddWordInput{
		ChildID:     childID,
		UserID:      currentUser(r),
		Word:        req.Word,
		CategoryID:  categoryID,
		DateLearned: req.DateLearned,
		Notes:       req.Notes,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toWordResponse(*word))
}

func (h *Handler) deleteWord(w http.ResponseWriter, r *http.Request) {
	wordID, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.words.Delete(wordID, currentUser(r)); err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type voiceRequest struct {
	Language string `json:"language"`
	Results  []struct {
		Transcript string `json:"transcript"`
		IsFinal    bool   `json:"is_final"`
		Error      string `json:"error"`
	} `json:"results"`
}

type voiceFailure struct {
	Word  string `json:"word"`
	Error string `json:"error"`
}

type voiceResponse struct {
	Added  []wordResponse `json:"added"`
	Failed []voiceFailure `json:"failed"`
}

type recognitionError string

func (e recognitionError) Error() string { return string(e) }

// addVoiceWords stores words recognized on the client device
func (h *Handler) addVoiceWords(w http.ResponseWriter, r *http.Request) {
	child, ok := h.ownedChild(w, r)
	if !ok {
		return
	}

	var req voiceRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	results := make([]speech.Result, 0, len(req.Results))
	for _, res := range req.Results {
		result := speech.Result{Transcript: res.Transcript, IsFinal: res.IsFinal}
		if res.Error != "" {
			result.Err = recognitionError(res.Error)
		}
		results = append(results, result)
	}

	lang := req.Language
	if lang == "" {
		lang = defaultVoiceLanguage
	}

	recognizer := speech.NewReplay(results)
	stream, err := recognizer.Start(r.Context(), lang)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	defer recognizer.Stop()

	report, err := h.voice.AddTranscripts(r.Context(), child.ID, child.UserID, stream)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}

	resp := voiceResponse{Added: toWordResponses(report.Added), Failed: []voiceFailure{}}
	for _, f := range report.Failed {
		message := "could not save word"
		var verr domain.ValidationError
		if errors.As(f.Err, &verr) {
			message = verr.Message
		}
		resp.Failed = append(resp.Failed, voiceFailure{Word: f.Word, Error: message})
	}
	writeJSON(w, http.StatusOK, resp)
}
