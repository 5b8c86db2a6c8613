package api

import (
	"net/http"
	"strconv"

	"wordsprout/internal/domain"

	"github.com/gorilla/mux"
)

type dashboardResponse struct {
	TotalWords         int `json:"total_words"`
	TodaysWords        int `json:"todays_words"`
	AchievedMilestones int `json:"achieved_milestones"`
}

type categoryCountResponse struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Count int    `json:"count"`
}

type recentWordResponse struct {
	Word     string `json:"word"`
	Date     string `json:"date"`
	Category string `json:"category"`
}

type monthResponse struct {
	Month string `json:"month"`
	Words int    `json:"words"`
}

type achievementResponse struct {
	Title string `json:"title"`
	Date  string `json:"date"`
}

type milestoneSummary struct {
	Total      int                   `json:"total"`
	Achieved   int                   `json:"achieved"`
	Percentage int                   `json:"percentage"`
	Recent     []achievementResponse `json:"recent"`
}

type statisticsResponse struct {
	TotalWords    int                     `json:"total_words"`
	ThisWeek      int                     `json:"this_week"`
	ThisMonth     int                     `json:"this_month"`
	CurrentStreak int                     `json:"current_streak"`
	LongestStreak int                     `json:"longest_streak"`
	ByCategory    []categoryCountResponse `json:"by_category"`
	RecentWords   []recentWordResponse    `json:"recent_words"`
	Growth        []monthResponse         `json:"growth"`
	Milestones    milestoneSummary        `json:"milestones"`
}

type dayResponse struct {
	Date      string `json:"date"`
	Display   string `json:"display"`
	WordCount int    `json:"word_count"`
}

type daysResponse struct {
	Days       []dayResponse `json:"days"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	child, ok := h.ownedChild(w, r)
	if !ok {
		return
	}

	d, err := h.stats.Dashboard(child.ID, child.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboardResponse{
		TotalWords:         d.TotalWords,
		TodaysWords:        d.TodaysWords,
		AchievedMilestones: d.AchievedMilestones,
	})
}

func (h *Handler) statistics(w http.ResponseWriter, r *http.Request) {
	child, ok := h.ownedChild(w, r)
	if !ok {
		return
	}

	s, err := h.stats.Statistics(child.ID, child.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	resp := statisticsResponse{
		TotalWords:    s.TotalWords,
		ThisWeek:      s.ThisWeek,
		ThisMonth:     s.ThisMonth,
		CurrentStreak: s.CurrentStreak,
		LongestStreak: s.LongestStreak,
		ByCategory:    make([]categoryCountResponse, 0, len(s.ByCategory)),
		RecentWords:   make([]recentWordResponse, 0, len(s.RecentWords)),
		Growth:        make([]monthResponse, 0, len(s.Growth)),
		Milestones: milestoneSummary{
			Total:      s.Milestones,
			Achieved:   s.Achieved,
			Percentage: s.Percentage,
			Recent:     make([]achievementResponse, 0, len(s.RecentAchieved)),
		},
	}
	for _, c := range s.ByCategory {
		resp.ByCategory = append(resp.ByCategory, categoryCountResponse{Name: c.Name, Color: c.Color, Count: c.Count})
	}
	for _, rw := range s.RecentWords {
		resp.RecentWords = append(resp.RecentWords, recentWordResponse{
			Word:     rw.Word,
			Date:     rw.Date.Format(domain.DateLayout),
			Category: rw.Category,
		})
	}
	for _, g := range s.Growth {
		resp.Growth = append(resp.Growth, monthResponse{Month: g.Month.Format("2006-01"), Words: g.Words})
	}
	for _, a := range s.RecentAchieved {
		resp.Milestones.Recent = append(resp.Milestones.Recent, achievementResponse{
			Title: a.Title,
			Date:  a.AchievedDate.Format(domain.DateLayout),
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) days(w http.ResponseWriter, r *http.Request) {
	child, ok := h.ownedChild(w, r)
	if !ok {
		return
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			h.fail(w, r, domain.ValidationError{Field: "page", Message: "page must be a number"})
			return
		}
		page = p
	}
	if page < 1 {
		page = 1
	}

	days, totalPages, err := h.stats.Days(child.ID, child.UserID, page)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	now := h.now()
	resp := daysResponse{Days: make([]dayResponse, 0, len(days)), Page: page, TotalPages: totalPages}
	for _, d := range days {
		resp.Days = append(resp.Days, dayResponse{
			Date:      d.DateString(),
			Display:   d.DisplayString(now),
			WordCount: d.WordCount,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) dayWords(w http.ResponseWriter, r *http.Request) {
	child, ok := h.ownedChild(w, r)
	if !ok {
		return
	}

	words, err := h.stats.WordsOn(child.ID, child.UserID, mux.Vars(r)["date"])
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toWordResponses(words))
}
