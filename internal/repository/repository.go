// Package repository persists petu events and users. The storage schema
// keeps the Spanish column vocabulary (titulo, fecha, max_participantes...)
// and every store translates to the English domain model at this boundary.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/petu/internal/model"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrEventFull is returned when an event has no remaining capacity.
var ErrEventFull = errors.New("event is full")

// ErrEmailTaken is returned when an email is already registered.
var ErrEmailTaken = errors.New("email already registered")

// Store is the persistence capability the services need. Both the hosted
// Postgres backend and the embedded SQLite backend implement it.
type Store interface {
	ListEvents(ctx context.Context) ([]model.Event, error)
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	CreateEvent(ctx context.Context, event model.Event) (*model.Event, error)
	// JoinEvent admits one participant, or records a pending request when
	// the event requires approval. The capacity check and the increment
	// happen atomically.
	JoinEvent(ctx context.Context, id string) (*model.JoinOutcome, error)
	CreateUser(ctx context.Context, user model.User) (*model.User, error)
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	Ping(ctx context.Context) error
	Close() error
}

// eventColumns lists the eventos columns in eventRow order.
const eventColumns = `id, titulo, descripcion, categoria, fecha, ubicacion,
	max_participantes, min_quorum, participantes_actuales, solicitudes_pendientes,
	requiere_aprobacion, estado, anfitrion, creado_en`

// userColumns lists the usuarios columns in userRow order.
const userColumns = `id, email, nombre, contrasena, vidas, reputacion, nivel, creado_en`

// eventRow is one eventos row in storage vocabulary.
type eventRow struct {
	ID                    string    `db:"id"`
	Titulo                string    `db:"titulo"`
	Descripcion           string    `db:"descripcion"`
	Categoria             string    `db:"categoria"`
	Fecha                 string    `db:"fecha"`
	Ubicacion             string    `db:"ubicacion"`
	MaxParticipantes      int       `db:"max_participantes"`
	MinQuorum             int       `db:"min_quorum"`
	ParticipantesActuales int       `db:"participantes_actuales"`
	SolicitudesPendientes int       `db:"solicitudes_pendientes"`
	RequiereAprobacion    bool      `db:"requiere_aprobacion"`
	Estado                string    `db:"estado"`
	Anfitrion             string    `db:"anfitrion"`
	CreadoEn              time.Time `db:"creado_en"`
}

func (r eventRow) toEvent() model.Event {
	return model.Event{
		ID:               r.ID,
		Title:            r.Titulo,
		Description:      r.Descripcion,
		Category:         model.ParseCategory(r.Categoria),
		Date:             r.Fecha,
		Location:         r.Ubicacion,
		MaxPlayers:       r.MaxParticipantes,
		MinQuorum:        r.MinQuorum,
		CurrentPlayers:   r.ParticipantesActuales,
		PendingRequests:  r.SolicitudesPendientes,
		RequiresApproval: r.RequiereAprobacion,
		Status:           model.StatusFromStored(r.Estado),
		HostName:         r.Anfitrion,
		CreatedAt:        r.CreadoEn.UTC(),
	}
}

func eventRowFrom(e model.Event) eventRow {
	return eventRow{
		ID:                    e.ID,
		Titulo:                e.Title,
		Descripcion:           e.Description,
		Categoria:             string(e.Category),
		Fecha:                 e.Date,
		Ubicacion:             e.Location,
		MaxParticipantes:      e.MaxPlayers,
		MinQuorum:             e.MinQuorum,
		ParticipantesActuales: e.CurrentPlayers,
		SolicitudesPendientes: e.PendingRequests,
		RequiereAprobacion:    e.RequiresApproval,
		Estado:                model.StoredStatus(e.Status),
		Anfitrion:             e.HostName,
		CreadoEn:              e.CreatedAt.UTC(),
	}
}

// userRow is one usuarios row in storage vocabulary.
type userRow struct {
	ID         string    `db:"id"`
	Email      string    `db:"email"`
	Nombre     string    `db:"nombre"`
	Contrasena string    `db:"contrasena"`
	Vidas      int       `db:"vidas"`
	Reputacion int       `db:"reputacion"`
	Nivel      string    `db:"nivel"`
	CreadoEn   time.Time `db:"creado_en"`
}

func (r userRow) toUser() model.User {
	return model.User{
		ID:         r.ID,
		Email:      r.Email,
		FullName:   r.Nombre,
		Hash:       r.Contrasena,
		Lives:      r.Vidas,
		Reputation: r.Reputacion,
		Level:      model.LevelFromStored(r.Nivel),
		CreatedAt:  r.CreadoEn.UTC(),
	}
}

func userRowFrom(u model.User) userRow {
	return userRow{
		ID:         u.ID,
		Email:      u.Email,
		Nombre:     u.FullName,
		Contrasena: u.Hash,
		Vidas:      u.Lives,
		Reputacion: u.Reputation,
		Nivel:      model.StoredLevel(u.Level),
		CreadoEn:   u.CreatedAt.UTC(),
	}
}

// prepareEvent fills the fields a store assigns on creation.
func prepareEvent(e model.Event, id string, now time.Time) model.Event {
	e.ID = id
	e.CreatedAt = now.UTC()
	if e.Status == "" {
		e.Status = model.StatusPending
	}
	if e.Category == "" {
		e.Category = model.CategoryOther
	}
	return e
}

// prepareUser fills the fields a store assigns on registration.
func prepareUser(u model.User, id string, now time.Time) model.User {
	u.ID = id
	u.Email = normaliseEmail(u.Email)
	u.CreatedAt = now.UTC()
	if u.Level == "" {
		u.Level = model.LevelBeginner
	}
	return u
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// admit applies one join to the counters read under lock.
func admit(r eventRow) (eventRow, error) {
	if r.RequiereAprobacion {
		r.SolicitudesPendientes++
		return r, nil
	}
	if r.ParticipantesActuales >= r.MaxParticipantes {
		return r, ErrEventFull
	}
	r.ParticipantesActuales++
	r.Estado = model.StoredStatus(
		model.StatusFromStored(r.Estado).Advance(r.ParticipantesActuales, r.MinQuorum),
	)
	return r, nil
}

func outcomeOf(r eventRow) *model.JoinOutcome {
	return &model.JoinOutcome{
		EventID:          r.ID,
		RequiresApproval: r.RequiereAprobacion,
		CurrentPlayers:   r.ParticipantesActuales,
		PendingRequests:  r.SolicitudesPendientes,
		Status:           model.StatusFromStored(r.Estado),
	}
}
