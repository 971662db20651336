package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Shivanand-hulikatti/petu/internal/model"
	"github.com/Shivanand-hulikatti/petu/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() model.CreateEventRequest {
	return model.CreateEventRequest{
		Title:      "5-a-side",
		Date:       "2025-01-01T20:00",
		Location:   "Field A",
		MaxPlayers: 10,
		MinQuorum:  4,
	}
}

func newEventService(store *memStore, fallback bool) *EventService {
	return NewEventService(store, EventOptions{ExampleFallback: fallback, DefaultHostName: "Usuario Petu"})
}

func TestCreateEventDefaults(t *testing.T) {
	t.Parallel()

	svc := newEventService(newMemStore(), false)
	e, err := svc.CreateEvent(context.Background(), validRequest(), nil)
	require.NoError(t, err)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "5-a-side", e.Title)
	assert.Equal(t, model.StatusPending, e.Status)
	assert.Equal(t, model.CategoryOther, e.Category)
	assert.Equal(t, "Usuario Petu", e.HostName)
	assert.Equal(t, 0, e.CurrentPlayers)
	assert.Equal(t, 0, e.QuorumPercentage())
}

func TestCreateEventHostName(t *testing.T) {
	t.Parallel()

	svc := newEventService(newMemStore(), false)
	host := &Identity{UserID: "u1", Name: "Ana"}

	e, err := svc.CreateEvent(context.Background(), validRequest(), host)
	require.NoError(t, err)
	assert.Equal(t, "Ana", e.HostName)

	req := validRequest()
	req.HostName = "  Club Deportivo "
	e, err = svc.CreateEvent(context.Background(), req, host)
	require.NoError(t, err)
	assert.Equal(t, "Club Deportivo", e.HostName)
}

func TestCreateEventValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*model.CreateEventRequest)
		field  string
	}{
		{name: "quorum above capacity", mutate: func(r *model.CreateEventRequest) { r.MaxPlayers, r.MinQuorum = 5, 8 }, field: "minQuorum"},
		{name: "missing title", mutate: func(r *model.CreateEventRequest) { r.Title = "   " }, field: "title"},
		{name: "missing date", mutate: func(r *model.CreateEventRequest) { r.Date = "" }, field: "date"},
		{name: "missing location", mutate: func(r *model.CreateEventRequest) { r.Location = "" }, field: "location"},
		{name: "missing max players", mutate: func(r *model.CreateEventRequest) { r.MaxPlayers = 0 }, field: "maxPlayers"},
		{name: "missing quorum", mutate: func(r *model.CreateEventRequest) { r.MinQuorum = 0 }, field: "minQuorum"},
		{name: "negative capacity", mutate: func(r *model.CreateEventRequest) { r.MaxPlayers = -1 }, field: "maxPlayers"},
		{name: "negative quorum", mutate: func(r *model.CreateEventRequest) { r.MinQuorum = -2 }, field: "minQuorum"},
		{name: "capacity too large", mutate: func(r *model.CreateEventRequest) { r.MaxPlayers = maxCapacity + 1 }, field: "maxPlayers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := newMemStore()
			req := validRequest()
			tt.mutate(&req)

			_, err := newEventService(store, false).CreateEvent(context.Background(), req, nil)
			require.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Empty(t, store.events, "nothing persisted")
		})
	}
}

func TestCreateEventAllowsQuorumEqualToCapacity(t *testing.T) {
	t.Parallel()

	req := validRequest()
	req.MaxPlayers, req.MinQuorum = 4, 4
	_, err := newEventService(newMemStore(), false).CreateEvent(context.Background(), req, nil)
	assert.NoError(t, err)
}

func TestListEventsSources(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newMemStore()
	svc := newEventService(store, false)

	list, err := svc.ListEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.SourceEmpty, list.Source)
	assert.NotNil(t, list.Events)
	assert.Empty(t, list.Events)

	_, err = svc.CreateEvent(ctx, validRequest(), nil)
	require.NoError(t, err)
	list, err = svc.ListEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.SourceStore, list.Source)
	assert.Len(t, list.Events, 1)
}

func TestListEventsFailureWithoutFallback(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.listErr = errors.New("db down")

	_, err := newEventService(store, false).ListEvents(context.Background())
	assert.ErrorIs(t, err, store.listErr)
}

func TestListEventsFailureWithFallback(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.listErr = errors.New("db down")

	list, err := newEventService(store, true).ListEvents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.SourceExample, list.Source)
	assert.Equal(t, model.ExampleEvents(), list.Events)
}

func TestGetEvent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newEventService(newMemStore(), false)
	created, err := svc.CreateEvent(ctx, validRequest(), nil)
	require.NoError(t, err)

	got, err := svc.GetEvent(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetEvent(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.GetEvent(ctx, " ")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestJoinEvent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newEventService(newMemStore(), false)

	req := validRequest()
	req.MaxPlayers, req.MinQuorum = 2, 2
	created, err := svc.CreateEvent(ctx, req, nil)
	require.NoError(t, err)

	out, err := svc.JoinEvent(ctx, created.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, out.CurrentPlayers)
	assert.Equal(t, model.StatusPending, out.Status)

	out, err = svc.JoinEvent(ctx, created.ID, &Identity{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, 2, out.CurrentPlayers)
	assert.Equal(t, model.StatusConfirmed, out.Status)

	_, err = svc.JoinEvent(ctx, created.ID, nil)
	assert.ErrorIs(t, err, repository.ErrEventFull)
}

func TestJoinEventUnknownIsReported(t *testing.T) {
	t.Parallel()

	svc := newEventService(newMemStore(), true)
	_, err := svc.JoinEvent(context.Background(), "missing", nil)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.JoinEvent(context.Background(), "", nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestJoinEventRequiringApproval(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newEventService(newMemStore(), false)

	req := validRequest()
	req.RequiresApproval = true
	created, err := svc.CreateEvent(ctx, req, nil)
	require.NoError(t, err)

	out, err := svc.JoinEvent(ctx, created.ID, nil)
	require.NoError(t, err)
	assert.True(t, out.RequiresApproval)
	assert.Equal(t, 0, out.CurrentPlayers)
	assert.Equal(t, 1, out.PendingRequests)
}

func TestPing(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	svc := newEventService(store, false)
	assert.NoError(t, svc.Ping(context.Background()))

	store.pingErr = errors.New("gone")
	assert.Error(t, svc.Ping(context.Background()))
}
