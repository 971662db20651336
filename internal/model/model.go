// Package model defines the core domain types for petu: community events
// with a participant quorum, and the users who host and join them.
package model

import (
	"encoding/json"
	"time"

	"github.com/Shivanand-hulikatti/petu/internal/quorum"
)

// Event is a community activity with capacity and quorum bounds.
// JSON field names are the API vocabulary the browser client reads.
type Event struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Category         Category  `json:"category"`
	Date             string    `json:"date"`
	Location         string    `json:"location"`
	MaxPlayers       int       `json:"maxPlayers"`
	MinQuorum        int       `json:"minQuorum"`
	CurrentPlayers   int       `json:"currentPlayers"`
	PendingRequests  int       `json:"pendingRequests"`
	Status           Status    `json:"status"`
	RequiresApproval bool      `json:"requiresApproval"`
	HostName         string    `json:"hostName,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// minimum returns the quorum floor, substituting the default when unset.
func (e *Event) minimum() int {
	if e.MinQuorum <= 0 {
		return quorum.DefaultMinimum
	}
	return e.MinQuorum
}

// QuorumPercentage returns the 0-100 fill between quorum and capacity.
func (e *Event) QuorumPercentage() int {
	return quorum.Percentage(e.CurrentPlayers, e.MaxPlayers, e.minimum())
}

// QuorumLevel returns the badge bucket for the fill percentage.
func (e *Event) QuorumLevel() quorum.Level {
	return quorum.LevelOf(e.QuorumPercentage())
}

// Remaining returns the number of free places.
func (e *Event) Remaining() int {
	if r := e.MaxPlayers - e.CurrentPlayers; r > 0 {
		return r
	}
	return 0
}

// IsFull returns true when no places remain.
func (e *Event) IsFull() bool {
	return e.CurrentPlayers >= e.MaxPlayers
}

// MarshalJSON adds the display fields derived from category and counts.
func (e Event) MarshalJSON() ([]byte, error) {
	type plain Event
	return json.Marshal(struct {
		plain
		CategoryLabel    string       `json:"categoryLabel"`
		CategoryIcon     string       `json:"categoryIcon"`
		QuorumPercentage int          `json:"quorumPercentage"`
		QuorumLevel      quorum.Level `json:"quorumLevel"`
	}{
		plain:            plain(e),
		CategoryLabel:    e.Category.Label(),
		CategoryIcon:     e.Category.Icon(),
		QuorumPercentage: e.QuorumPercentage(),
		QuorumLevel:      e.QuorumLevel(),
	})
}

// User is a registered account. Hash never leaves the server.
type User struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Hash       string    `json:"-"`
	Lives      int       `json:"lives"`
	Reputation int       `json:"reputation"`
	Level      Level     `json:"level"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Defaults for a freshly registered user.
const (
	DefaultLives      = 3
	DefaultReputation = 0
)

// CreateEventRequest is the payload for creating a new event.
type CreateEventRequest struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Category         string `json:"category"`
	Date             string `json:"date"`
	Location         string `json:"location"`
	MaxPlayers       int    `json:"maxPlayers"`
	MinQuorum        int    `json:"minQuorum"`
	HostName         string `json:"hostName,omitempty"`
	RequiresApproval bool   `json:"requiresApproval,omitempty"`
}

// LoginRequest is the payload for POST /api/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the payload for POST /api/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// JoinOutcome is what a join attempt did to an event.
type JoinOutcome struct {
	EventID          string
	RequiresApproval bool
	CurrentPlayers   int
	PendingRequests  int
	Status           Status
}

// ListSource says where a list of events came from.
type ListSource string

const (
	SourceStore   ListSource = "store"
	SourceEmpty   ListSource = "empty"
	SourceExample ListSource = "example"
)

// EventList is a typed listing result; callers decide how to present an
// empty or example-backed list.
type EventList struct {
	Events []Event
	Source ListSource
}

// ErrorResponse is the standard JSON error envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Path    string `json:"path,omitempty"`
	Method  string `json:"method,omitempty"`
}
