package api

import (
	"net/http"
	"time"

	"wordsprout/internal/domain"
)

type createChildRequest struct {
	Name      string `json:"name"`
	Birthdate string `json:"birthdate"`
	Avatar    string `json:"avatar"`
}

type childResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Birthdate string `json:"birthdate"`
	Avatar    string `json:"avatar"`
	Age       string `json:"age"`
}

func toChildResponse(c domain.Child, now time.Time) childResponse {
	return childResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Birthdate: c.Birthdate.Format(domain.DateLayout),
		Avatar:    c.Avatar,
		Age:       c.AgeString(now),
	}
}

type categoryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.words.Categories()
	if err != nil {
		h.fail(w, r, err)
		return
	}

	resp := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		resp = append(resp, categoryResponse{ID: c.ID.String(), Name: c.Name, Icon: c.Icon, Color: c.Color})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) listChildren(w http.ResponseWriter, r *http.Request) {
	children, err := h.children.List(currentUser(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	now := h.now()
	resp := make([]childResponse, 0, len(children))
	for _, c := range children {
		resp = append(resp, toChildResponse(c, now))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) createChild(w http.ResponseWriter, r *http.Request) {
	var req createChildRequest
	if err := decode(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	child, err := h.children.Create(currentUser(r), req.Name, req.Birthdate, req.Avatar)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toChildResponse(*child, h.now()))
}

func (h *Handler) deleteChild(w http.ResponseWriter, r *http.Request) {
	childID, err := pathID(r, "id")
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if err := h.children.Delete(childID, currentUser(r)); err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
