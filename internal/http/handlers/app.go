// Package handlers implements the HTTP surface of the user management
// service: profiles, tickets, plans and teams.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/domain"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/service"
)

// App bundles the services handlers need.
type App struct {
	Users   *service.UserService
	Tickets *service.TicketService
	Teams   *service.TeamService
	Pool    *pgxpool.Pool
	Logger  zerolog.Logger
}

// NewApp wires the handler set.
func NewApp(users *service.UserService, tickets *service.TicketService, teams *service.TeamService, pool *pgxpool.Pool, logger zerolog.Logger) *App {
	return &App{Users: users, Tickets: tickets, Teams: teams, Pool: pool, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, map[string]string{"code": code, "message": message})
}

// domainError maps service errors onto HTTP statuses. Conflict-class domain
// errors surface their own message; anything unrecognized is a 500 with a
// generic body and a logged cause.
func (a *App) domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, domain.ErrInsufficientTickets):
		a.error(w, http.StatusConflict, "CONFLICT", domain.ErrInsufficientTickets.Error())
	case errors.Is(err, domain.ErrTeamFull):
		a.error(w, http.StatusConflict, "CONFLICT", domain.ErrTeamFull.Error())
	case errors.Is(err, domain.ErrAlreadyMember):
		a.error(w, http.StatusConflict, "CONFLICT", domain.ErrAlreadyMember.Error())
	case errors.Is(err, domain.ErrTeamInactive):
		a.error(w, http.StatusConflict, "CONFLICT", domain.ErrTeamInactive.Error())
	default:
		a.Logger.Error().Err(err).Msg("request failed")
		a.error(w, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}
