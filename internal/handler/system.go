package handler

import (
	"context"
	"net/http"
	"time"
)

// Pinger reports whether storage is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemHandler serves the service banner and health probes.
type SystemHandler struct {
	storage string
	db      Pinger
	now     func() time.Time
}

// NewSystemHandler constructs a SystemHandler. storage names the backend
// shown on the banner.
func NewSystemHandler(storage string, db Pinger) *SystemHandler {
	return &SystemHandler{storage: storage, db: db, now: time.Now}
}

var endpoints = map[string]string{
	"root":     "GET /",
	"test":     "GET /api/test",
	"health":   "GET /health",
	"events":   "GET /api/events",
	"event":    "GET /api/events/{id}",
	"create":   "POST /api/events/create",
	"join":     "POST /api/events/{id}/join",
	"register": "POST /api/register",
	"login":    "POST /api/login",
	"me":       "GET /api/me",
}

// Root handles GET /
func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"app":       "petu",
		"status":    "online",
		"message":   "backend is running",
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"storage":   h.storage,
		"endpoints": endpoints,
	})
}

// APITest handles GET /api/test
func (h *SystemHandler) APITest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"message":    "test ok",
		"serverTime": h.now().UTC().Format(time.RFC3339),
	})
}

// Health handles GET /health
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
