package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/petu/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// PostgresStore keeps events and users in a hosted PostgreSQL database.
// It uses pgx directly (no ORM).
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a PostgresStore.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// ListEvents returns all events ordered by date, then creation time.
func (s *PostgresStore) ListEvents(ctx context.Context) ([]model.Event, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+eventColumns+`
		 FROM eventos
		 ORDER BY fecha ASC, creado_en ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	evRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[eventRow])
	if err != nil {
		return nil, fmt.Errorf("scan events: %w", err)
	}

	events := make([]model.Event, 0, len(evRows))
	for _, r := range evRows {
		events = append(events, r.toEvent())
	}
	return events, nil
}

// GetEvent returns a single event or ErrNotFound.
func (s *PostgresStore) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+eventColumns+` FROM eventos WHERE id = $1`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("get event: %w", err)
	}
	r, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[eventRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	e := r.toEvent()
	return &e, nil
}

// CreateEvent inserts a new event and returns it with a generated UUID.
func (s *PostgresStore) CreateEvent(ctx context.Context, event model.Event) (*model.Event, error) {
	e := prepareEvent(event, uuid.NewString(), time.Now().Truncate(time.Microsecond))
	r := eventRowFrom(e)

	_, err := s.db.Exec(ctx,
		`INSERT INTO eventos (`+eventColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		r.ID, r.Titulo, r.Descripcion, r.Categoria, r.Fecha, r.Ubicacion,
		r.MaxParticipantes, r.MinQuorum, r.ParticipantesActuales, r.SolicitudesPendientes,
		r.RequiereAprobacion, r.Estado, r.Anfitrion, r.CreadoEn,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return &e, nil
}

// JoinEvent admits one participant inside a transaction.
//
// SELECT ... FOR UPDATE takes a row lock on the event, so concurrent joins
// on the same event queue behind each other and each sees the count the
// previous one committed. Without the lock two joins could both read
// count = max-1 and both increment, overbooking the event.
func (s *PostgresStore) JoinEvent(ctx context.Context, id string) (*model.JoinOutcome, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	// No-op once committed.
	defer func() { _ = tx.Rollback(ctx) }()

	rows, err := tx.Query(ctx,
		`SELECT `+eventColumns+` FROM eventos WHERE id = $1 FOR UPDATE`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("lock event row: %w", err)
	}
	locked, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[eventRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock event row: %w", err)
	}

	updated, err := admit(locked)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx,
		`UPDATE eventos
		 SET participantes_actuales = $2, solicitudes_pendientes = $3, estado = $4
		 WHERE id = $1`,
		id, updated.ParticipantesActuales, updated.SolicitudesPendientes, updated.Estado,
	)
	if err != nil {
		return nil, fmt.Errorf("update event counters: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return outcomeOf(updated), nil
}

// CreateUser inserts a user; a duplicate email yields ErrEmailTaken.
func (s *PostgresStore) CreateUser(ctx context.Context, user model.User) (*model.User, error) {
	u := prepareUser(user, uuid.NewString(), time.Now().Truncate(time.Microsecond))
	r := userRowFrom(u)

	_, err := s.db.Exec(ctx,
		`INSERT INTO usuarios (`+userColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.ID, r.Email, r.Nombre, r.Contrasena, r.Vidas, r.Reputacion, r.Nivel, r.CreadoEn,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &u, nil
}

// UserByEmail returns the user with the given email or ErrNotFound.
func (s *PostgresStore) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+userColumns+` FROM usuarios WHERE email = $1`,
		normaliseEmail(email),
	)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	r, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[userRow])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	u := r.toUser()
	return &u, nil
}

// Ping checks the pool can reach the server.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close releases every pooled connection.
func (s *PostgresStore) Close() error {
	s.db.Close()
	return nil
}

var _ Store = (*PostgresStore)(nil)
