package selector

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"wordsprout/internal/domain"
	"wordsprout/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLister struct {
	mock.Mock
}

func (m *mockLister) List(userID uuid.UUID) ([]domain.Child, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Child), args.Error(1)
}

func TestSelector_SetAndCurrent(t *testing.T) {
	userID := uuid.New()
	child := testutil.NewTestChild(userID, "Ada", time.Now().AddDate(-1, 0, 0))

	s := New(new(mockLister), testutil.NewTestLogger())

	assert.Nil(t, s.Current(userID))

	s.Set(userID, child)
	require.NotNil(t, s.Current(userID))
	assert.Equal(t, child.ID, s.Current(userID).ID)
	assert.Nil(t, s.Current(uuid.New()))

	s.Set(userID, nil)
	assert.Nil(t, s.Current(userID))
}

func TestSelector_Subscribe(t *testing.T) {
	userID := uuid.New()
	child := testutil.NewTestChild(userID, "Ada", time.Now().AddDate(-1, 0, 0))

	s := New(new(mockLister), testutil.NewTestLogger())

	var notified []*domain.Child
	unsubscribe := s.Subscribe(func(id uuid.UUID, c *domain.Child) {
		assert.Equal(t, userID, id)
		// listeners may read the selector without deadlocking
		_ = s.Current(id)
		notified = append(notified, c)
	})

	s.Set(userID, child)
	unsubscribe()
	s.Set(userID, nil)

	require.Len(t, notified, 1)
	assert.Equal(t, child.ID, notified[0].ID)
}

func TestSelector_Refresh(t *testing.T) {
	userID := uuid.New()
	older := testutil.NewTestChild(userID, "Ada", time.Now().AddDate(-2, 0, 0))
	younger := testutil.NewTestChild(userID, "Bo", time.Now().AddDate(-1, 0, 0))

	tests := []struct {
		name       string
		current    *domain.Child
		children   []domain.Child
		expectedID *uuid.UUID
	}{
		{
			name:       "selects first child when none selected",
			children:   []domain.Child{*older, *younger},
			expectedID: &older.ID,
		},
		{
			name:       "keeps existing selection",
			current:    younger,
			children:   []domain.Child{*older, *younger},
			expectedID: &younger.ID,
		},
		{
			name:       "replaces a vanished selection",
			current:    younger,
			children:   []domain.Child{*older},
			expectedID: &older.ID,
		},
		{
			name:     "clears selection when no children remain",
			current:  older,
			children: []domain.Child{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lister := new(mockLister)
			lister.On("List", userID).Return(tt.children, nil)

			s := New(lister, testutil.NewTestLogger())
			if tt.current != nil {
				s.Set(userID, tt.current)
			}

			children, err := s.Refresh(userID)

			require.NoError(t, err)
			assert.Equal(t, tt.children, children)
			if tt.expectedID == nil {
				assert.Nil(t, s.Current(userID))
			} else {
				require.NotNil(t, s.Current(userID))
				assert.Equal(t, *tt.expectedID, s.Current(userID).ID)
			}
		})
	}
}

func TestSelector_Refresh_Error(t *testing.T) {
	userID := uuid.New()
	child := testutil.NewTestChild(userID, "Ada", time.Now().AddDate(-1, 0, 0))

	lister := new(mockLister)
	lister.On("List", userID).Return(nil, fmt.Errorf("offline"))

	s := New(lister, testutil.NewTestLogger())
	s.Set(userID, child)

	_, err := s.Refresh(userID)

	assert.Error(t, err)
	assert.Equal(t, child.ID, s.Current(userID).ID)
}

func TestSelector_Concurrent(t *testing.T) {
	s := New(new(mockLister), testutil.NewTestLogger())
	s.Subscribe(func(uuid.UUID, *domain.Child) {})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			userID := uuid.New()
			s.Set(userID, testutil.NewTestChild(userID, "Ada", time.Now()))
			_ = s.Current(userID)
		}()
	}
	wg.Wait()
}
