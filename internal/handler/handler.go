package handler

import (
	"sync"

	"wordsprout/internal/domain"
	"wordsprout/internal/middleware"
	"wordsprout/internal/selector"
	"wordsprout/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot        *tele.Bot
	auth       *service.AuthService
	children   *service.ChildService
	words      *service.WordService
	milestones *service.MilestoneService
	stats      *service.StatsService
	selector   *selector.Selector
	logger     *zap.Logger

	// User states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex

	// Per-user locks for flashcard callbacks
	callbackLocks map[int64]*sync.Mutex
	callbackMux   sync.Mutex
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	auth *service.AuthService,
	children *service.ChildService,
	words *service.WordService,
	milestones *service.MilestoneService,
	stats *service.StatsService,
	sel *selector.Selector,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:        bot,
		auth:       auth,
		children:   children,
		words:      words,
		milestones: milestones,
		stats:      stats,
		selector:   sel,
		logger:     logger,
		states:     make(map[int64]*domain.StateData),

		callbackLocks: make(map[int64]*sync.Mutex),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	h.bot.Use(middleware.BotAuth(h.auth, h.logger))

	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/link", h.handleLink)
	h.bot.Handle("/children", h.handleChildren)
	h.bot.Handle("/addchild", h.handleAddChild)
	h.bot.Handle("/stats", h.handleStats)
	h.bot.Handle("/milestones", h.handleMilestones)
	h.bot.Handle("/days", h.handleViewDays)
	h.bot.Handle("/flashcard", h.handleFlashcard)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnChildren, h.handleChildren)
	h.bot.Handle(&btnAddChild, h.handleAddChild)
	h.bot.Handle(&btnStats, h.handleStats)
	h.bot.Handle(&btnMilestones, h.handleMilestones)
	h.bot.Handle(&btnViewDays, h.handleViewDays)
	h.bot.Handle(&btnFlashcard, h.handleFlashcard)
	h.bot.Handle(&btnMore, h.handleFlashcard)
	h.bot.Handle(&btnCancel, h.handleCancel)
	h.bot.Handle(&btnBack, h.handleStart)
	h.bot.Handle(&btnBackToDays, h.handleViewDays)
	h.bot.Handle(&btnMainMenu, h.handleStart)

	// Generic callback handler for dynamic data
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns user's current state
func (h *Handler) GetState(userID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[userID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets user's state
func (h *Handler) SetState(userID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[userID] = state
}

// ResetState resets user to idle state
func (h *Handler) ResetState(userID int64) {
	h.SetState(userID, &domain.StateData{State: domain.StateIdle})
}

// parent returns the linked account resolved by the auth middleware
func parent(c tele.Context) *domain.User {
	user, _ := c.Get(middleware.BotUserKey).(*domain.User)
	return user
}

// activeChild returns the selected child, selecting the oldest profile if needed
func (h *Handler) activeChild(user *domain.User) (*domain.Child, error) {
	if child := h.selector.Current(user.ID); child != nil {
		return child, nil
	}
	if _, err := h.selector.Refresh(user.ID); err != nil {
		return nil, err
	}
	return h.selector.Current(user.ID), nil
}

// reply edits the message behind a callback, or sends a new one for commands
func (h *Handler) reply(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if c.Callback() != nil {
		if err := c.Edit(text, markup); err != nil {
			if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
				return nil // Message was already modified, just acknowledged
			}
			return c.Send(text, markup)
		}
		return c.Respond()
	}
	return c.Send(text, markup)
}

// Inline keyboard buttons
var (
	btnChildren = tele.Btn{
		Unique: "children",
		Text:   "👶 Children",
	}
	btnAddChild = tele.Btn{
		Unique: "add_child",
		Text:   "➕ Add child",
	}
	btnStats = tele.Btn{
		Unique: "stats",
		Text:   "📊 Statistics",
	}
	btnMilestones = tele.Btn{
		Unique: "milestones",
		Text:   "🏆 Milestones",
	}
	btnViewDays = tele.Btn{
		Unique: "view_days",
		Text:   "📅 Days",
	}
	btnFlashcard = tele.Btn{
		Unique: "flashcard",
		Text:   "🃏 Flashcard",
	}
	btnMore = tele.Btn{
		Unique: "more",
		Text:   "🔀 More",
	}
	btnCancel = tele.Btn{
		Unique: "cancel",
		Text:   "❌ Cancel",
	}
	btnBack = tele.Btn{
		Unique: "back",
		Text:   "🏠 Back",
	}
	btnBackToDays = tele.Btn{
		Unique: "back_to_days",
		Text:   "◀️ To days",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnStats, btnMilestones),
		menu.Row(btnViewDays, btnFlashcard),
		menu.Row(btnChildren, btnAddChild),
	)
	return menu
}

func backMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnBack))
	return markup
}

const errorText = "Something went wrong. Please try again later."
