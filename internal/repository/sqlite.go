package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/petu/internal/model"
	"github.com/google/uuid"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// SQLiteStore keeps events and users in an embedded single-file database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore constructs a SQLiteStore over an opened, migrated handle.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEventRow(sc scanner) (eventRow, error) {
	var (
		r        eventRow
		approval int64
		created  int64
	)
	err := sc.Scan(
		&r.ID, &r.Titulo, &r.Descripcion, &r.Categoria, &r.Fecha, &r.Ubicacion,
		&r.MaxParticipantes, &r.MinQuorum, &r.ParticipantesActuales, &r.SolicitudesPendientes,
		&approval, &r.Estado, &r.Anfitrion, &created,
	)
	if err != nil {
		return eventRow{}, err
	}
	r.RequiereAprobacion = approval != 0
	r.CreadoEn = fromMillis(created)
	return r, nil
}

func scanUserRow(sc scanner) (userRow, error) {
	var (
		r       userRow
		created int64
	)
	err := sc.Scan(&r.ID, &r.Email, &r.Nombre, &r.Contrasena, &r.Vidas, &r.Reputacion, &r.Nivel, &created)
	if err != nil {
		return userRow{}, err
	}
	r.CreadoEn = fromMillis(created)
	return r, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ListEvents returns all events ordered by date, then creation time.
func (s *SQLiteStore) ListEvents(ctx context.Context) ([]model.Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+eventColumns+`
		 FROM eventos
		 ORDER BY fecha ASC, creado_en ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		r, err := scanEventRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, r.toEvent())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

// GetEvent returns a single event or ErrNotFound.
func (s *SQLiteStore) GetEvent(ctx context.Context, id string) (*model.Event, error) {
	r, err := scanEventRow(s.db.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM eventos WHERE id = ?`, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	e := r.toEvent()
	return &e, nil
}

// CreateEvent inserts a new event and returns it with a generated UUID.
func (s *SQLiteStore) CreateEvent(ctx context.Context, event model.Event) (*model.Event, error) {
	e := prepareEvent(event, uuid.NewString(), time.Now().Truncate(time.Millisecond))
	r := eventRowFrom(e)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO eventos (`+eventColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Titulo, r.Descripcion, r.Categoria, r.Fecha, r.Ubicacion,
		r.MaxParticipantes, r.MinQuorum, r.ParticipantesActuales, r.SolicitudesPendientes,
		boolToInt(r.RequiereAprobacion), r.Estado, r.Anfitrion, toMillis(r.CreadoEn),
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return &e, nil
}

// JoinEvent admits one participant. Transactions are opened with
// _txlock=immediate, so the read below already holds the database write
// lock and no other writer can change the counters before the update.
func (s *SQLiteStore) JoinEvent(ctx context.Context, id string) (out *model.JoinOutcome, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	locked, err := scanEventRow(tx.QueryRowContext(ctx,
		`SELECT `+eventColumns+` FROM eventos WHERE id = ?`, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read event: %w", err)
	}

	updated, err := admit(locked)
	if err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE eventos
		 SET participantes_actuales = ?, solicitudes_pendientes = ?, estado = ?
		 WHERE id = ? AND participantes_actuales = ?`,
		updated.ParticipantesActuales, updated.SolicitudesPendientes, updated.Estado,
		id, locked.ParticipantesActuales,
	)
	if err != nil {
		return nil, fmt.Errorf("update event counters: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Only reachable if the lock mode was overridden.
		return nil, fmt.Errorf("update event counters: concurrent modification")
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return outcomeOf(updated), nil
}

// CreateUser inserts a user; a duplicate email yields ErrEmailTaken.
func (s *SQLiteStore) CreateUser(ctx context.Context, user model.User) (*model.User, error) {
	u := prepareUser(user, uuid.NewString(), time.Now().Truncate(time.Millisecond))
	r := userRowFrom(u)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO usuarios (`+userColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Email, r.Nombre, r.Contrasena, r.Vidas, r.Reputacion, r.Nivel, toMillis(r.CreadoEn),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &u, nil
}

// UserByEmail returns the user with the given email or ErrNotFound.
func (s *SQLiteStore) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	r, err := scanUserRow(s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM usuarios WHERE email = ?`, normaliseEmail(email),
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	u := r.toUser()
	return &u, nil
}

// Ping checks the database file is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the SQLite handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}

var _ Store = (*SQLiteStore)(nil)
