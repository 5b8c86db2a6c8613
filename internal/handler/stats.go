package handler

import (
	"fmt"
	"strings"

	"wordsprout/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStats shows the dashboard and statistics of the active child
func (h *Handler) handleStats(c tele.Context) error {
	user := parent(c)
	if user == nil {
		return c.Send(linkUsage)
	}
	child, err := h.activeChild(user)
	if err != nil {
		return c.Send(errorText)
	}
	if child == nil {
		return c.Send("👶 Add a child first: /addchild")
	}

	dashboard, err := h.stats.Dashboard(child.ID, user.ID)
	if err != nil {
		h.logger.Error("Failed to load dashboard", zap.Error(err))
		return c.Send(errorText)
	}
	stats, err := h.stats.Statistics(child.ID, user.ID)
	if err != nil {
		h.logger.Error("Failed to load statistics", zap.Error(err))
		return c.Send(errorText)
	}

	return h.reply(c, formatStats(child, dashboard, stats), backMarkup())
}

func formatStats(child *domain.Child, d *domain.Dashboard, s *domain.Statistics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 %s %s\n\n", child.Avatar, child.Name)
	fmt.Fprintf(&b, "Total words: %d\n", d.TotalWords)
	fmt.Fprintf(&b, "Today: %d\n", d.TodaysWords)
	fmt.Fprintf(&b, "This week: %d\n", s.ThisWeek)
	fmt.Fprintf(&b, "This month: %d\n", s.ThisMonth)
	fmt.Fprintf(&b, "🔥 Streak: %d (best %d)\n", s.CurrentStreak, s.LongestStreak)
	fmt.Fprintf(&b, "🏆 Milestones: %d/%d (%d%%)\n", s.Achieved, s.Milestones, s.Percentage)

	if len(s.ByCategory) > 0 {
		b.WriteString("\nBy category:\n")
		for _, c := range s.ByCategory {
			fmt.Fprintf(&b, "• %s: %d\n", c.Name, c.Count)
		}
	}
	if len(s.RecentWords) > 0 {
		b.WriteString("\nRecent words:\n")
		for _, w := range s.RecentWords {
			fmt.Fprintf(&b, "• %s (%s)\n", w.Word, w.Date.Format("Jan 2"))
		}
	}
	return b.String()
}

// handleMilestones shows the milestones of the active child
func (h *Handler) handleMilestones(c tele.Context) error {
	user := parent(c)
	if user == nil {
		return c.Send(linkUsage)
	}
	child, err := h.activeChild(user)
	if err != nil {
		return c.Send(errorText)
	}
	if child == nil {
		return c.Send("👶 Add a child first: /addchild")
	}

	milestones, err := h.milestones.List(child.ID, user.ID)
	if err != nil {
		h.logger.Error("Failed to load milestones", zap.Error(err))
		return c.Send(errorText)
	}
	next, err := h.milestones.Next(child.ID, user.ID)
	if err != nil {
		h.logger.Error("Failed to load next milestone", zap.Error(err))
		return c.Send(errorText)
	}

	return h.reply(c, formatMilestones(child, milestones, next), backMarkup())
}

func formatMilestones(child *domain.Child, milestones []domain.Milestone, next *domain.Milestone) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🏆 %s's milestones\n\n", child.Name)

	if len(milestones) == 0 {
		b.WriteString("No milestones yet.")
		return b.String()
	}

	var latest *domain.Milestone
	for i, m := range milestones {
		mark := "⬜"
		if m.Achieved {
			mark = "✅"
			if m.AchievedDate != nil && (latest == nil || m.AchievedDate.After(*latest.AchievedDate)) {
				latest = &milestones[i]
			}
		}
		fmt.Fprintf(&b, "%s %s %s", mark, m.Icon, m.Title)
		if m.IsVocabulary() {
			fmt.Fprintf(&b, " (%d/%d)", min(m.CurrentValue, m.TargetValue), m.TargetValue)
		}
		if m.Achieved && m.AchievedDate != nil {
			fmt.Fprintf(&b, " · %s", m.AchievedDate.Format("Jan 2, 2006"))
		}
		b.WriteString("\n")
	}

	if latest != nil {
		fmt.Fprintf(&b, "\n%s\n", domain.AchievedMessage(latest.Title))
	}
	if next != nil {
		fmt.Fprintf(&b, "\nNext up: %s %s", next.Icon, next.Title)
		if next.IsVocabulary() {
			fmt.Fprintf(&b, ", %d more word(s) to go", next.TargetValue-next.CurrentValue)
		}
	} else {
		b.WriteString("\n🎊 Every milestone achieved!")
	}
	return b.String()
}
