// Package httpapi assembles the chi router for the API binary.
package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/http/handlers"
	"github.com/KDT-Dev-Trip/BE-UserManagementService/internal/middleware"
)

// Options are the router's cross-cutting knobs.
type Options struct {
	Logger          zerolog.Logger
	AllowedOrigins  []string
	RateLimitPerMin int
}

// NewRouter wires middleware and all routes.
func NewRouter(app *handlers.App, opts Options) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.AllowedOrigins),
	)
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Get("/v1/healthz", app.Health)

	r.Route("/api/users/{userID}", func(r chi.Router) {
		r.Get("/", app.UserProfile)
		r.Put("/", app.UpdateUserProfile)
		r.Delete("/", app.DeactivateUser)
		r.Put("/profile-image", app.UpdateUserProfileImage)
		r.Get("/dashboard", app.UserDashboard)
		r.Get("/passport", app.UserPassport)
		r.Get("/plan", app.UserPlan)

		r.Route("/tickets", func(r chi.Router) {
			r.Get("/", app.TicketBalance)
			r.Post("/consume", app.ConsumeTicket)
			r.Get("/history", app.TicketHistory)
		})
	})

	r.Route("/api/teams", func(r chi.Router) {
		r.Post("/", app.CreateTeam)
		r.Post("/join", app.JoinTeam)
		r.Get("/{teamID}", app.GetTeam)
		r.Post("/{teamID}/leave", app.LeaveTeam)
	})

	return r
}
