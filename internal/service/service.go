// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the storage layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Shivanand-hulikatti/petu/internal/model"
	"github.com/Shivanand-hulikatti/petu/internal/repository"
)

// maxCapacity bounds maxPlayers on creation.
const maxCapacity = 100_000

// EventOptions tunes EventService behaviour.
type EventOptions struct {
	// ExampleFallback serves model.ExampleEvents when the store fails.
	ExampleFallback bool
	// DefaultHostName labels events created without a host.
	DefaultHostName string
}

// EventService orchestrates event-related business operations.
type EventService struct {
	store repository.Store
	opts  EventOptions
}

// NewEventService constructs an EventService with its dependencies.
func NewEventService(store repository.Store, opts EventOptions) *EventService {
	return &EventService{store: store, opts: opts}
}

// ListEvents returns all events, saying whether they came from storage,
// storage had none, or storage failed and examples were substituted.
func (s *EventService) ListEvents(ctx context.Context) (model.EventList, error) {
	events, err := s.store.ListEvents(ctx)
	if err != nil {
		if !s.opts.ExampleFallback {
			return model.EventList{}, fmt.Errorf("list events: %w", err)
		}
		slog.WarnContext(ctx, "listing failed, serving example events",
			slog.String("error", err.Error()),
		)
		return model.EventList{Events: model.ExampleEvents(), Source: model.SourceExample}, nil
	}
	if len(events) == 0 {
		return model.EventList{Events: []model.Event{}, Source: model.SourceEmpty}, nil
	}
	return model.EventList{Events: events, Source: model.SourceStore}, nil
}

// GetEvent returns a single event by ID.
func (s *EventService) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, invalid("id", "event id is required")
	}
	event, err := s.store.GetEvent(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// CreateEvent validates the request and persists a new pending event.
// host, when non-nil, is the authenticated creator.
func (s *EventService) CreateEvent(ctx context.Context, req model.CreateEventRequest, host *Identity) (*model.Event, error) {
	if err := validateCreate(&req); err != nil {
		return nil, err
	}

	hostName := req.HostName
	if hostName == "" && host != nil {
		hostName = host.Name
	}
	if hostName == "" {
		hostName = s.opts.DefaultHostName
	}

	event := model.Event{
		Title:            req.Title,
		Description:      req.Description,
		Category:         model.ParseCategory(req.Category),
		Date:             req.Date,
		Location:         req.Location,
		MaxPlayers:       req.MaxPlayers,
		MinQuorum:        req.MinQuorum,
		Status:           model.StatusPending,
		RequiresApproval: req.RequiresApproval,
		HostName:         hostName,
	}

	created, err := s.store.CreateEvent(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	slog.InfoContext(ctx, "event created",
		slog.String("event_id", created.ID),
		slog.String("category", string(created.Category)),
		slog.Int("max_players", created.MaxPlayers),
		slog.Int("min_quorum", created.MinQuorum),
	)
	return created, nil
}

func validateCreate(req *model.CreateEventRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Date = strings.TrimSpace(req.Date)
	req.Location = strings.TrimSpace(req.Location)
	req.HostName = strings.TrimSpace(req.HostName)

	var missing []string
	if req.Title == "" {
		missing = append(missing, "title")
	}
	if req.Date == "" {
		missing = append(missing, "date")
	}
	if req.Location == "" {
		missing = append(missing, "location")
	}
	if req.MaxPlayers == 0 {
		missing = append(missing, "maxPlayers")
	}
	if req.MinQuorum == 0 {
		missing = append(missing, "minQuorum")
	}
	if len(missing) > 0 {
		return invalid(missing[0], "missing required fields: %s", strings.Join(missing, ", "))
	}

	if req.MaxPlayers < 0 {
		return invalid("maxPlayers", "maxPlayers must be a positive integer")
	}
	if req.MaxPlayers > maxCapacity {
		return invalid("maxPlayers", "maxPlayers cannot exceed %d", maxCapacity)
	}
	if req.MinQuorum < 0 {
		return invalid("minQuorum", "minQuorum must be a positive integer")
	}
	if req.MaxPlayers < req.MinQuorum {
		return invalid("minQuorum", "minQuorum cannot be greater than maxPlayers")
	}
	return nil
}

// JoinEvent admits one participant, or files a request when the event
// needs host approval. Unknown events and full events are reported, never
// masked.
func (s *EventService) JoinEvent(ctx context.Context, id string, who *Identity) (*model.JoinOutcome, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, invalid("id", "event id is required")
	}

	out, err := s.store.JoinEvent(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrEventFull) {
			return nil, err
		}
		return nil, fmt.Errorf("join event: %w", err)
	}

	attrs := []any{
		slog.String("event_id", id),
		slog.Bool("requires_approval", out.RequiresApproval),
		slog.Int("current_players", out.CurrentPlayers),
		slog.String("status", string(out.Status)),
	}
	if who != nil {
		attrs = append(attrs, slog.String("user_id", who.UserID))
	}
	slog.InfoContext(ctx, "event joined", attrs...)
	return out, nil
}

// Ping reports whether storage is reachable.
func (s *EventService) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
