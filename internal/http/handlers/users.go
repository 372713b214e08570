package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/domain"
)

type userResponse struct {
	ID              string `json:"id"`
	AuthUserID      string `json:"authUserId"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	Phone           string `json:"phone,omitempty"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
	PlanType        string `json:"planType"`
	Active          bool   `json:"active"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:              u.ID,
		AuthUserID:      u.AuthUserID,
		Email:           u.Email,
		Name:            u.Name,
		Phone:           u.Phone,
		ProfileImageURL: u.ProfileImageURL,
		PlanType:        string(u.Tier),
		Active:          u.Active,
	}
}

// UserProfile returns the user row.
func (a *App) UserProfile(w http.ResponseWriter, r *http.Request) {
	user, err := a.Users.Profile(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, toUserResponse(user))
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// UpdateUserProfile changes name and phone. Blank fields keep their current
// values.
func (a *App) UpdateUserProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload")
		return
	}
	user, err := a.Users.UpdateProfile(r.Context(), chi.URLParam(r, "userID"), req.Name, req.Phone)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, toUserResponse(user))
}

type updateProfileImageRequest struct {
	ImageURL string `json:"imageUrl"`
}

// UpdateUserProfileImage stores a new profile image URL.
func (a *App) UpdateUserProfileImage(w http.ResponseWriter, r *http.Request) {
	var req updateProfileImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ImageURL == "" {
		a.error(w, http.StatusBadRequest, "BAD_REQUEST", "imageUrl is required")
		return
	}
	if err := a.Users.UpdateProfileImage(r.Context(), chi.URLParam(r, "userID"), req.ImageURL); err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]string{"imageUrl": req.ImageURL})
}

// DeactivateUser marks the user inactive. Profiles are never hard-deleted.
func (a *App) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	if err := a.Users.Deactivate(r.Context(), chi.URLParam(r, "userID")); err != nil {
		a.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UserDashboard returns the user row plus mission activity.
func (a *App) UserDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := a.Users.GetDashboard(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"user":       toUserResponse(dash.User),
		"inProgress": dash.InProgress,
		"completed":  dash.Completed,
	})
}

// UserPassport returns the completed-mission passport view.
func (a *App) UserPassport(w http.ResponseWriter, r *http.Request) {
	passport, err := a.Users.GetPassport(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"name":       passport.Name,
		"stampCount": passport.StampCount,
		"missions":   passport.Missions,
	})
}

// UserPlan returns the plan currently governing the user's refills, which
// may differ from their own tier when their team owner is on ENTERPRISE.
func (a *App) UserPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := a.Tickets.Plan(r.Context(), chi.URLParam(r, "userID"))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"planType":           string(plan.Tier),
		"initialGrant":       plan.InitialGrant,
		"maxBalance":         plan.MaxBalance,
		"refillIntervalMins": int(plan.RefillInterval.Minutes()),
	})
}
