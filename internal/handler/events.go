package handler

import (
	"net/http"

	"github.com/Shivanand-hulikatti/petu/internal/model"
	"github.com/Shivanand-hulikatti/petu/internal/service"
	"github.com/go-chi/chi/v5"
)

// SourceHeader tells clients whether a listing is real, empty or example data.
const SourceHeader = "X-Petu-Source"

// EventHandler holds the HTTP handlers for events.
type EventHandler struct {
	svc *service.EventService
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(svc *service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

type createEventResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Event   *model.Event `json:"event"`
	EventID string       `json:"eventId"`
}

type joinResponse struct {
	Success          bool         `json:"success"`
	Message          string       `json:"message"`
	EventID          string       `json:"eventId"`
	RequiresApproval bool         `json:"requiresApproval"`
	CurrentPlayers   int          `json:"currentPlayers"`
	PendingRequests  int          `json:"pendingRequests"`
	Status           model.Status `json:"status"`
}

// ListEvents handles GET /api/events
// Returns a JSON array of all events.
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListEvents(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	events := list.Events
	if events == nil {
		events = []model.Event{}
	}

	w.Header().Set(SourceHeader, string(list.Source))
	writeJSON(w, http.StatusOK, events)
}

// GetEvent handles GET /api/events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.GetEvent(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// CreateEvent handles POST /api/events/create
// The authenticated user, if any, becomes the default host.
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	event, err := h.svc.CreateEvent(r.Context(), req, IdentityFrom(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, createEventResponse{
		Success: true,
		Message: "event created",
		Event:   event,
		EventID: event.ID,
	})
}

// JoinEvent handles POST /api/events/{id}/join
func (h *EventHandler) JoinEvent(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.JoinEvent(r.Context(), chi.URLParam(r, "id"), IdentityFrom(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	msg := "joined event"
	if out.RequiresApproval {
		msg = "join request sent to the host"
	}
	writeJSON(w, http.StatusOK, joinResponse{
		Success:          true,
		Message:          msg,
		EventID:          out.EventID,
		RequiresApproval: out.RequiresApproval,
		CurrentPlayers:   out.CurrentPlayers,
		PendingRequests:  out.PendingRequests,
		Status:           out.Status,
	})
}
