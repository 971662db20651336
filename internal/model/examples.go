package model

// ExampleEvents is the placeholder list served when listing fails and the
// example fallback is switched on.
func ExampleEvents() []Event {
	return []Event{
		{
			ID:             "example-1",
			Title:          "Fútbol 5 - Ejemplo",
			Description:    "Partido amistoso (datos de ejemplo)",
			Category:       CategorySports,
			Date:           "Hoy, 20:00",
			Location:       "Cancha Central",
			CurrentPlayers: 8,
			MaxPlayers:     10,
			MinQuorum:      6,
			Status:         StatusConfirmed,
		},
	}
}
