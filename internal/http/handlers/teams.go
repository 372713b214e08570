package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/domain"
)

type teamResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description,omitempty"`
	Code           string `json:"code"`
	OwnerID        string `json:"ownerId"`
	MaxMembers     int    `json:"maxMembers"`
	CurrentMembers int    `json:"currentMembers"`
	Status         string `json:"status"`
}

func toTeamResponse(t *domain.Team) teamResponse {
	return teamResponse{
		ID:             t.ID,
		Name:           t.Name,
		Description:    t.Description,
		Code:           t.Code,
		OwnerID:        t.OwnerID,
		MaxMembers:     t.MaxMembers,
		CurrentMembers: t.CurrentMembers,
		Status:         string(t.Status),
	}
}

type createTeamRequest struct {
	OwnerID     string `json:"ownerId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateTeam makes a new team with the caller as LEADER.
func (a *App) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload")
		return
	}
	if req.OwnerID == "" || strings.TrimSpace(req.Name) == "" {
		a.error(w, http.StatusBadRequest, "BAD_REQUEST", "ownerId and name are required")
		return
	}

	team, err := a.Teams.Create(r.Context(), req.OwnerID, strings.TrimSpace(req.Name), req.Description)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, toTeamResponse(team))
}

type joinTeamRequest struct {
	UserID string `json:"userId"`
	Code   string `json:"code"`
}

// JoinTeam enrolls a user via the team's join code.
func (a *App) JoinTeam(w http.ResponseWriter, r *http.Request) {
	var req joinTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload")
		return
	}
	if req.UserID == "" || req.Code == "" {
		a.error(w, http.StatusBadRequest, "BAD_REQUEST", "userId and code are required")
		return
	}

	m, err := a.Teams.Join(r.Context(), req.Code, req.UserID)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{
		"teamId": m.TeamID,
		"userId": m.UserID,
		"role":   string(m.Role),
		"status": string(m.Status),
	})
}

type leaveTeamRequest struct {
	UserID string `json:"userId"`
}

// LeaveTeam flips the caller's membership to INACTIVE.
func (a *App) LeaveTeam(w http.ResponseWriter, r *http.Request) {
	var req leaveTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == "" {
		a.error(w, http.StatusBadRequest, "BAD_REQUEST", "userId is required")
		return
	}
	if err := a.Teams.Leave(r.Context(), chi.URLParam(r, "teamID"), req.UserID); err != nil {
		a.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetTeam returns a team with its roster.
func (a *App) GetTeam(w http.ResponseWriter, r *http.Request) {
	view, err := a.Teams.Get(r.Context(), chi.URLParam(r, "teamID"))
	if err != nil {
		a.domainError(w, err)
		return
	}

	members := make([]map[string]any, 0, len(view.Members))
	for _, m := range view.Members {
		members = append(members, map[string]any{
			"userId":   m.UserID,
			"name":     m.Name,
			"role":     string(m.Role),
			"status":   string(m.Status),
			"joinedAt": m.JoinedAt,
		})
	}
	resp := toTeamResponse(view.Team)
	a.json(w, http.StatusOK, map[string]any{"team": resp, "members": members})
}
