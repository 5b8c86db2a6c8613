// Package selector tracks which child each parent is currently working with.
package selector

import (
	"sync"

	"wordsprout/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChildLister loads a parent's children, oldest profile first
type ChildLister interface {
	List(userID uuid.UUID) ([]domain.Child, error)
}

// Listener is notified when a parent's active child changes. child is nil when cleared.
type Listener func(userID uuid.UUID, child *domain.Child)

// Selector holds the active child per parent
type Selector struct {
	children ChildLister
	logger   *zap.Logger

	mu        sync.RWMutex
	current   map[uuid.UUID]domain.Child
	listeners map[int]Listener
	nextID    int
}

// New creates an empty selector
func New(children ChildLister, logger *zap.Logger) *Selector {
	return &Selector{
		children:  children,
		logger:    logger,
		current:   make(map[uuid.UUID]domain.Child),
		listeners: make(map[int]Listener),
	}
}

// Current returns the active child of a parent, or nil
func (s *Selector) Current(userID uuid.UUID) *domain.Child {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.current[userID]
	if !ok {
		return nil
	}
	return &c
}

// Set makes child the active one. A nil child clears the selection.
func (s *Selector) Set(userID uuid.UUID, child *domain.Child) {
	s.mu.Lock()
	if child == nil {
		delete(s.current, userID)
	} else {
		s.current[userID] = *child
	}
	listeners := s.snapshot()
	s.mu.Unlock()

	for _, l := range listeners {
		l(userID, child)
	}
}

// Subscribe registers a listener and returns a function that removes it
func (s *Selector) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Refresh reloads the parent's children. When nothing is selected, or the
// selected child no longer exists, the oldest profile becomes active.
func (s *Selector) Refresh(userID uuid.UUID) ([]domain.Child, error) {
	children, err := s.children.List(userID)
	if err != nil {
		s.logger.Error("Failed to load children", zap.String("user_id", userID.String()), zap.Error(err))
		return nil, err
	}

	current := s.Current(userID)
	if current != nil {
		for i := range children {
			if children[i].ID == current.ID {
				if children[i] != *current {
					s.Set(userID, &children[i])
				}
				return children, nil
			}
		}
	}

	if len(children) == 0 {
		if current != nil {
			s.Set(userID, nil)
		}
		return children, nil
	}

	s.Set(userID, &children[0])
	return children, nil
}

func (s *Selector) snapshot() []Listener {
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	return listeners
}
