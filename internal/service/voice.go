package service

import (
	"context"
	"fmt"
	"strings"

	"wordsprout/internal/domain"
	"wordsprout/internal/speech"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WordAdder adds a single word for a child
type WordAdder interface {
	Add(ctx context.Context, in AddWordInput) (*domain.Word, error)
}

// VoiceReport is the outcome of adding words from a listening session
type VoiceReport struct {
	Added  []domain.Word
	Failed []WordFailure
}

// WordFailure is a recognized word that could not be stored
type WordFailure struct {
	Word string
	Err  error
}

// VoiceService turns recognized speech into words
type VoiceService struct {
	words  WordAdder
	logger *zap.Logger
}

// NewVoiceService creates a new voice service
func NewVoiceService(words WordAdder, logger *zap.Logger) *VoiceService {
	return &VoiceService{words: words, logger: logger}
}

// Collect drains a result stream and returns the distinct final transcripts in order.
// The first recognition error stops collection and is returned with what was gathered so far.
func (s *VoiceService) Collect(ctx context.Context, results <-chan speech.Result) ([]string, error) {
	var words []string
	seen := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return words, ctx.Err()
		case res, ok := <-results:
			if !ok {
				return words, nil
			}
			if res.Err != nil {
				return words, fmt.Errorf("speech recognition failed: %w", res.Err)
			}
			if !res.IsFinal {
				continue
			}
			text := strings.TrimSpace(res.Transcript)
			key := strings.ToLower(text)
			if text == "" || seen[key] {
				continue
			}
			seen[key] = true
			words = append(words, text)
		}
	}
}

// AddTranscripts collects final transcripts and adds each one as a word for the child.
// Failures are reported per word and do not stop the remaining words.
func (s *VoiceService) AddTranscripts(ctx context.Context, childID, userID uuid.UUID, results <-chan speech.Result) (*VoiceReport, error) {
	candidates, err := s.Collect(ctx, results)
	if err != nil {
		return nil, err
	}

	report := &VoiceReport{}
	for _, text := range candidates {
		word, err := s.words.Add(ctx, AddWordInput{ChildID: childID, UserID: userID, Word: text})
		if err != nil {
			s.logger.Warn("Failed to add recognized word", zap.String("word", text), zap.Error(err))
			report.Failed = append(report.Failed, WordFailure{Word: text, Err: err})
			continue
		}
		report.Added = append(report.Added, *word)
	}

	s.logger.Info("Voice words added",
		zap.String("child_id", childID.String()),
		zap.Int("added", len(report.Added)),
		zap.Int("failed", len(report.Failed)),
	)
	return report, nil
}
