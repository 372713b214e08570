package handlers

import "net/http"

// Health reports liveness plus database reachability.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	if a.Pool != nil {
		if err := a.Pool.Ping(r.Context()); err != nil {
			a.json(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "database": "down"})
			return
		}
	}
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
