// Package speech defines the contract for streaming speech recognizers.
// Decoding audio is left to the recognizer; consumers only see transcripts.
package speech

import (
	"context"
	"errors"
	"sync"
)

// ErrAlreadyStarted is returned when Start is called on a running recognizer
var ErrAlreadyStarted = errors.New("recognizer already started")

// Result is one recognition event. Interim results may be revised later;
// only results with IsFinal set are stable.
type Result struct {
	Transcript string
	IsFinal    bool
	Err        error
}

// Recognizer streams recognition results for one listening session.
// The channel is closed when the session ends, either by Stop, by ctx or by the recognizer itself.
type Recognizer interface {
	Start(ctx context.Context, lang string) (<-chan Result, error)
	Stop()
}

// Replay is a Recognizer that emits a fixed list of results, used when
// recognition already happened on the client device.
type Replay struct {
	results []Result

	mu      sync.Mutex
	started bool
	stop    chan struct{}
}

// NewReplay creates a recognizer that replays results in order
func NewReplay(results []Result) *Replay {
	return &Replay{results: results, stop: make(chan struct{})}
}

// Start begins emitting results. lang is ignored.
func (r *Replay) Start(ctx context.Context, lang string) (<-chan Result, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return nil, ErrAlreadyStarted
	}
	r.started = true

	out := make(chan Result)
	go func() {
		defer close(out)
		for _, res := range r.results {
			select {
			case out <- res:
			case <-r.stop:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// Stop ends the session early. It is safe to call more than once.
func (r *Replay) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	select {
	case <-r.stop:
	default:
		close(r.stop)
	}
}
