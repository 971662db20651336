package model

import (
	"encoding/json"
	"testing"

	"github.com/Shivanand-hulikatti/petu/internal/quorum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventMarshalJSONUsesAPIVocabulary(t *testing.T) {
	t.Parallel()

	e := Event{
		ID:               "evt-1",
		Title:            "5-a-side",
		Description:      "Friendly match",
		Category:         CategorySports,
		Date:             "2025-01-01T20:00",
		Location:         "Field A",
		MaxPlayers:       10,
		MinQuorum:        6,
		CurrentPlayers:   8,
		Status:           StatusConfirmed,
		RequiresApproval: true,
		HostName:         "Ana",
	}

	raw, err := json.Marshal(e)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))

	assert.Equal(t, "evt-1", got["id"])
	assert.Equal(t, "5-a-side", got["title"])
	assert.Equal(t, "Friendly match", got["description"])
	assert.Equal(t, "sports", got["category"])
	assert.Equal(t, "2025-01-01T20:00", got["date"])
	assert.Equal(t, "Field A", got["location"])
	assert.EqualValues(t, 10, got["maxPlayers"])
	assert.EqualValues(t, 6, got["minQuorum"])
	assert.EqualValues(t, 8, got["currentPlayers"])
	assert.Equal(t, "confirmed", got["status"])
	assert.Equal(t, true, got["requiresApproval"])
	assert.Equal(t, "Ana", got["hostName"])
	assert.Equal(t, "Deportes", got["categoryLabel"])
	assert.Equal(t, "fa-futbol", got["categoryIcon"])
	assert.EqualValues(t, 50, got["quorumPercentage"])
	assert.Equal(t, "medium", got["quorumLevel"])

	for _, spanish := range []string{"titulo", "descripcion", "max_participantes", "estado"} {
		assert.NotContains(t, got, spanish)
	}
}

func TestEventMarshalJSONRoundTripsCoreFields(t *testing.T) {
	t.Parallel()

	in := ExampleEvents()[0]
	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var out Event
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, in, out)
}

func TestEventQuorumUsesDefaultMinimum(t *testing.T) {
	t.Parallel()

	e := Event{MaxPlayers: 6, CurrentPlayers: 4}
	assert.Equal(t, quorum.Percentage(4, 6, quorum.DefaultMinimum), e.QuorumPercentage())
	assert.Equal(t, 50, e.QuorumPercentage())
}

func TestEventCapacityHelpers(t *testing.T) {
	t.Parallel()

	e := Event{MaxPlayers: 3, CurrentPlayers: 2}
	assert.Equal(t, 1, e.Remaining())
	assert.False(t, e.IsFull())

	e.CurrentPlayers = 3
	assert.Equal(t, 0, e.Remaining())
	assert.True(t, e.IsFull())
	assert.Equal(t, quorum.Full, e.QuorumLevel())
}

func TestCategoryLabels(t *testing.T) {
	t.Parallel()

	assert.Equal(t, CategoryOther, ParseCategory("  "))
	assert.Equal(t, CategoryGames, ParseCategory(" Games "))

	assert.True(t, CategoryMinga.Known())
	assert.Equal(t, "Minga", CategoryMinga.Label())

	unknown := ParseCategory("chess")
	assert.False(t, unknown.Known())
	assert.Equal(t, "chess", unknown.Label())
	assert.Equal(t, CategoryOther.Icon(), unknown.Icon())
	assert.Equal(t, "Otro", Category("").Label())
}

func TestStatusAdvance(t *testing.T) {
	t.Parallel()

	assert.Equal(t, StatusPending, StatusPending.Advance(3, 4))
	assert.Equal(t, StatusConfirmed, StatusPending.Advance(4, 4))
	assert.Equal(t, StatusConfirmed, StatusConfirmed.Advance(0, 4), "no reverse transition")
}

func TestStoredVocabulary(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pendiente", StoredStatus(StatusPending))
	assert.Equal(t, "confirmado", StoredStatus(StatusConfirmed))
	assert.Equal(t, StatusPending, StatusFromStored("pendiente"))
	assert.Equal(t, StatusConfirmed, StatusFromStored("confirmado"))
	assert.Equal(t, StatusPending, StatusFromStored(""))
	assert.Equal(t, Status("cancelado"), StatusFromStored("cancelado"))

	assert.Equal(t, "principiante", StoredLevel(LevelBeginner))
	assert.Equal(t, LevelIntermediate, LevelFromStored("intermedio"))
	assert.Equal(t, LevelBeginner, LevelFromStored(""))
}

func TestUserHashIsNotSerialised(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(User{ID: "u1", Email: "a@b.co", FullName: "A", Hash: "secret"})
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
	assert.Contains(t, string(raw), `"full_name":"A"`)
}
