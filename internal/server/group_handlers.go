package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/PrAyAg9/diivido-sub000/internal/models"
)

type groupRequest struct {
	Name    string          `json:"name"`
	Members []models.Member `json:"members"`
}

func (s *Server) createGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	group := &models.Group{Name: req.Name, Members: req.Members}
	if err := s.groups.Create(r.Context(), group); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, group)
}

func (s *Server) getGroup(w http.ResponseWriter, r *http.Request) {
	group, err := s.groups.Get(r.Context(), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}

func (s *Server) listGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := s.groups.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"groups": groups})
}

func (s *Server) updateGroup(w http.ResponseWriter, r *http.Request) {
	var req groupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	group := &models.Group{
		ID:      chi.URLParam(r, "groupID"),
		Name:    req.Name,
		Members: req.Members,
	}
	if err := s.groups.Update(r.Context(), group); err != nil {
		writeError(w, err)
		return
	}

	updated, err := s.groups.Get(r.Context(), group.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteGroup(w http.ResponseWriter, r *http.Request) {
	if err := s.groups.Delete(r.Context(), chi.URLParam(r, "groupID")); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) addGroupMembers(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Members []models.Member `json:"members"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	groupID := chi.URLParam(r, "groupID")
	if err := s.groups.AddMembers(r.Context(), groupID, req.Members); err != nil {
		writeError(w, err)
		return
	}

	group, err := s.groups.Get(r.Context(), groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, group)
}
