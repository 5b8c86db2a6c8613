package api

import (
	"net/http"

	"wordsprout/internal/domain"
)

type milestoneResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	Type         string  `json:"milestone_type"`
	TargetValue  int     `json:"target_value"`
	CurrentValue int     `json:"current_value"`
	Achieved     bool    `json:"achieved"`
	AchievedDate *string `json:"achieved_date"`
	Icon         string  `json:"icon"`
	Progress     int     `json:"progress"`
	Message      string  `json:"message,omitempty"`
}

func toMilestoneResponse(m domain.Milestone) milestoneResponse {
	resp := milestoneResponse{
		ID:           m.ID.String(),
		Title:        m.Title,
		Description:  m.Description,
		Type:         m.MilestoneType,
		TargetValue:  m.TargetValue,
		CurrentValue: m.CurrentValue,
		Achieved:     m.Achieved,
		Icon:         m.Icon,
		Progress:     domain.Percentage(min(m.CurrentValue, m.TargetValue), m.TargetValue),
	}
	if m.AchievedDate != nil {
		date := m.AchievedDate.Format(domain.DateLayout)
		resp.AchievedDate = &date
	}
	if m.Achieved {
		resp.Message = domain.AchievedMessage(m.Title)
	}
	return resp
}

type setAchievedRequest struct {
	Achieved bool `json:"achieved"`
}

func (h *Handler) listMilestones(w http.ResponseWriter, r *http.Request) {
	child, ok := h.ownedChild(w, r)
	if !ok {
		return
	}

	milestones, err := h.milestones.List(child.ID, child.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	resp := make([]milestoneResponse, 0, len(milestones))
	for _, m := range milestones {
		resp = append(resp, toMilestoneResponse(m))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) nextMilestone(w http.ResponseWriter, r *http.Request) {
	child, ok := h.ownedChild(w, r)
	if !ok {
		return
	}

	next, err := h.milestones.Next(child.ID, child.UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if next == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"next": nil})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"next": toMilestoneResponse(*next)})
}

func (h *Handler) setAchieved(w http.ResponseWriter, r *http.Request) {
	milestoneID, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var req setAchievedRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	m, err := h.milestones.SetAchieved(milestoneID, currentUser(r), req.Achieved)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toMilestoneResponse(*m))
}
