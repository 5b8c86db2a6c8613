// Package categorize suggests word categories using the ConceptNet IsA relation.
package categorize

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"wordsprout/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// keywords maps ConceptNet IsA targets onto category names. Order matters:
// the first matching keyword wins.
var keywords = []struct {
	keyword  string
	category string
}{
	{"body part", "Body Parts"},
	{"animal", "Animals"},
	{"mammal", "Animals"},
	{"bird", "Animals"},
	{"fruit", "Food"},
	{"vegetable", "Food"},
	{"food", "Food"},
	{"drink", "Food"},
	{"toy", "Toys"},
	{"color", "Colors"},
	{"colour", "Colors"},
	{"number", "Numbers"},
	{"relative", "Family"},
	{"family", "Family"},
	{"parent", "Family"},
	{"action", "Actions"},
	{"verb", "Actions"},
}

type queryResponse struct {
	Edges []struct {
		End struct {
			Label    string `json:"label"`
			Language string `json:"language"`
		} `json:"end"`
	} `json:"edges"`
}

// Client queries a ConceptNet API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a ConceptNet client
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Suggest returns the id of the category that best matches word, or nil when nothing matches
func (c *Client) Suggest(ctx context.Context, word string, categories []domain.WordCategory) (*uuid.UUID, error) {
	term := strings.ToLower(strings.Join(strings.Fields(word), "_"))
	if term == "" || len(categories) == 0 {
		return nil, nil
	}

	q := url.Values{}
	q.Set("start", "/c/en/"+term)
	q.Set("rel", "/r/IsA")
	q.Set("limit", "20")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/query?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("conceptnet request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("conceptnet returned status %d", resp.StatusCode)
	}

	var body queryResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode conceptnet response: %w", err)
	}

	byName := make(map[string]uuid.UUID, len(categories))
	for _, cat := range categories {
		byName[strings.ToLower(cat.Name)] = cat.ID
	}

	for _, edge := range body.Edges {
		if edge.End.Language != "" && edge.End.Language != "en" {
			continue
		}
		name := match(edge.End.Label)
		if name == "" {
			continue
		}
		if id, ok := byName[strings.ToLower(name)]; ok {
			c.logger.Debug("Category suggested",
				zap.String("word", word),
				zap.String("label", edge.End.Label),
				zap.String("category", name),
			)
			return &id, nil
		}
	}

	return nil, nil
}

func match(label string) string {
	tokens := strings.FieldsFunc(strings.ToLower(label), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, k := range keywords {
		if containsPhrase(tokens, strings.Fields(k.keyword)) {
			return k.category
		}
	}
	return ""
}

// containsPhrase reports whether phrase occurs as consecutive whole words in tokens
func containsPhrase(tokens, phrase []string) bool {
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		found := true
		for j, word := range phrase {
			if !sameWord(tokens[i+j], word) {
				found = false
				break
			}
		}
		if found {
			return true
		}
	}
	return false
}

// sameWord matches a keyword and its plain plural
func sameWord(token, keyword string) bool {
	return token == keyword || token == keyword+"s"
}
