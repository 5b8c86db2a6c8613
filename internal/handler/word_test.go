package handler

import (
	"context"
	"testing"
	"time"

	"wordsprout/internal/domain"
	"wordsprout/internal/selector"
	"wordsprout/internal/service"
	"wordsprout/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type wordFlow struct {
	handler    *Handler
	selector   *selector.Selector
	user       *domain.User
	children   *testutil.MockChildRepository
	words      *testutil.MockWordRepository
	reconciler *testutil.MockReconciler
}

func newWordFlow() wordFlow {
	logger := testutil.NewTestLogger()
	f := wordFlow{
		user:       testutil.NewTestUser("parent@example.com"),
		children:   new(testutil.MockChildRepository),
		words:      new(testutil.MockWordRepository),
		reconciler: new(testutil.MockReconciler),
	}

	childService := service.NewChildService(f.children, new(testutil.MockMilestoneRepository), logger)
	wordService := service.NewWordService(f.words, f.children, new(testutil.MockCategoryRepository), f.reconciler, nil, logger)
	f.selector = selector.New(childService, logger)
	f.handler = NewHandler(nil, nil, childService, wordService, nil, nil, f.selector, logger)
	return f
}

func TestAddForActiveChild(t *testing.T) {
	birthdate := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("selected child", func(t *testing.T) {
		f := newWordFlow()
		mia := testutil.NewTestChild(f.user.ID, "Mia", birthdate)
		f.selector.Set(f.user.ID, mia)
		word := testutil.NewTestWord(mia.ID, f.user.ID, "ball", time.Now())
		f.children.On("GetChild", mia.ID, f.user.ID).Return(mia, nil)
		f.words.On("CreateWord", mock.AnythingOfType("*domain.Word")).Return(word, nil)
		f.reconciler.On("ReconcileAsync", mia.ID, f.user.ID).Return()

		added, child, err := f.handler.addForActiveChild(context.Background(), f.user, "ball")

		require.NoError(t, err)
		assert.Equal(t, word, added)
		assert.Equal(t, mia.ID, child.ID)
		f.children.AssertNotCalled(t, "ListChildren", mock.Anything)
	})

	t.Run("deleted child is replaced and the word retried", func(t *testing.T) {
		f := newWordFlow()
		gone := testutil.NewTestChild(f.user.ID, "Old", birthdate)
		mia := testutil.NewTestChild(f.user.ID, "Mia", birthdate)
		f.selector.Set(f.user.ID, gone)

		word := testutil.NewTestWord(mia.ID, f.user.ID, "ball", time.Now())
		f.children.On("GetChild", gone.ID, f.user.ID).Return(nil, nil)
		f.children.On("GetChild", mia.ID, f.user.ID).Return(mia, nil)
		f.children.On("ListChildren", f.user.ID).Return([]domain.Child{*mia}, nil)
		f.words.On("CreateWord", mock.MatchedBy(func(w *domain.Word) bool {
			return w.ChildID == mia.ID && w.Word == "ball"
		})).Return(word, nil)
		f.reconciler.On("ReconcileAsync", mia.ID, f.user.ID).Return()

		added, child, err := f.handler.addForActiveChild(context.Background(), f.user, "ball")

		require.NoError(t, err)
		assert.Equal(t, word, added)
		require.NotNil(t, child)
		assert.Equal(t, mia.ID, child.ID)
		assert.Equal(t, mia.ID, f.selector.Current(f.user.ID).ID)
		f.words.AssertNumberOfCalls(t, "CreateWord", 1)
	})

	t.Run("deleted child and no children left", func(t *testing.T) {
		f := newWordFlow()
		gone := testutil.NewTestChild(f.user.ID, "Old", birthdate)
		f.selector.Set(f.user.ID, gone)
		f.children.On("GetChild", gone.ID, f.user.ID).Return(nil, nil)
		f.children.On("ListChildren", f.user.ID).Return([]domain.Child{}, nil)

		added, child, err := f.handler.addForActiveChild(context.Background(), f.user, "ball")

		assert.NoError(t, err)
		assert.Nil(t, added)
		assert.Nil(t, child)
		assert.Nil(t, f.selector.Current(f.user.ID))
		f.words.AssertNotCalled(t, "CreateWord", mock.Anything)
	})

	t.Run("validation error is not retried", func(t *testing.T) {
		f := newWordFlow()
		mia := testutil.NewTestChild(f.user.ID, "Mia", birthdate)
		f.selector.Set(f.user.ID, mia)

		_, _, err := f.handler.addForActiveChild(context.Background(), f.user, "   ")

		var verr domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		f.children.AssertNotCalled(t, "ListChildren", mock.Anything)
	})
}
