package model

import "github.com/Shivanand-hulikatti/petu/internal/quorum"

// Status is an event's lifecycle tag in the API vocabulary.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
)

// Advance returns the status after the participant count changed.
// pending becomes confirmed once quorum is reached; there is no way back.
func (s Status) Advance(current, minQuorum int) Status {
	if s == StatusPending && quorum.Reached(current, minQuorum) {
		return StatusConfirmed
	}
	return s
}

// Level is a user's experience tier in the API vocabulary.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Storage columns use Spanish values; these tables translate at the boundary.
var (
	statusToStored = map[Status]string{
		StatusPending:   "pendiente",
		StatusConfirmed: "confirmado",
	}
	statusFromStored = invert(statusToStored)

	levelToStored = map[Level]string{
		LevelBeginner:     "principiante",
		LevelIntermediate: "intermedio",
		LevelAdvanced:     "avanzado",
	}
	levelFromStored = invert(levelToStored)
)

func invert[K, V comparable](m map[K]V) map[V]K {
	out := make(map[V]K, len(m))
	for k, v := range m {
		out[v] = k
	}
	return out
}

// StoredStatus returns the storage value of s. Unknown values pass through.
func StoredStatus(s Status) string {
	if v, ok := statusToStored[s]; ok {
		return v
	}
	return string(s)
}

// StatusFromStored returns the API value of a stored status. Unknown
// values pass through, and already-English values are accepted.
func StatusFromStored(v string) Status {
	if s, ok := statusFromStored[v]; ok {
		return s
	}
	if v == "" {
		return StatusPending
	}
	return Status(v)
}

// StoredLevel returns the storage value of l.
func StoredLevel(l Level) string {
	if v, ok := levelToStored[l]; ok {
		return v
	}
	return string(l)
}

// LevelFromStored returns the API value of a stored level.
func LevelFromStored(v string) Level {
	if l, ok := levelFromStored[v]; ok {
		return l
	}
	if v == "" {
		return LevelBeginner
	}
	return Level(v)
}
