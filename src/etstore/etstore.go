// Package etstore persists named Timestamps in SQLite.
package etstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"go.brendoncarroll.net/stdctx/logctx"

	"github.com/gotvc/et/src/et"
	"github.com/gotvc/et/src/internal/dbutil"
	"github.com/gotvc/et/src/internal/migrations"
	"github.com/gotvc/et/src/internal/testutil"
)

var ErrNotExist = errors.New("no timestamp stored by that name")

func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotExist)
}

const MaxNameLen = 255

var nameRegExp = regexp.MustCompile(`^[\w./-]+$`)

type ErrInvalidName struct {
	Name   string
	Reason string
}

func (e ErrInvalidName) Error() string {
	return fmt.Sprintf("invalid timestamp name: %q reason: %v", e.Name, e.Reason)
}

func CheckName(name string) error {
	if len(name) == 0 {
		return ErrInvalidName{Name: name, Reason: "empty"}
	}
	if len(name) > MaxNameLen {
		return ErrInvalidName{Name: name, Reason: "too long"}
	}
	if !nameRegExp.MatchString(name) {
		return ErrInvalidName{
			Name:   name,
			Reason: "contains invalid characters (must match " + nameRegExp.String() + " )",
		}
	}
	return nil
}

// Entry is a named Timestamp.
type Entry struct {
	Name string
	At   et.Timestamp
}

var schema = []migrations.Migration{
	{
		Name: "stamps",
		SQLText: `CREATE TABLE stamps (
			name TEXT NOT NULL PRIMARY KEY,
			at BLOB NOT NULL
		)`,
	},
}

// Store holds named Timestamps. Each Timestamp is stored in its positional binary encoding.
type Store struct {
	pool *dbutil.Pool
}

// Open opens, or creates, the store at path p.
func Open(ctx context.Context, p string) (*Store, error) {
	pool, err := dbutil.OpenPool(p)
	if err != nil {
		return nil, err
	}
	s, err := New(ctx, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	logctx.Infof(ctx, "opened timestamp store at %s", p)
	return s, nil
}

// New creates a Store using pool, applying any missing migrations.
func New(ctx context.Context, pool *dbutil.Pool) (*Store, error) {
	if err := dbutil.Borrow(ctx, pool, func(conn *dbutil.Conn) error {
		return migrations.EnsureAll(ctx, conn, schema)
	}); err != nil {
		return nil, fmt.Errorf("etstore: migrating: %w", err)
	}
	return &Store{pool: pool}, nil
}

func NewTestStore(t testing.TB) *Store {
	s, err := New(testutil.Context(t), dbutil.NewTestPool(t))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func (s *Store) Close() error {
	return s.pool.Close()
}

// Put stores at under name, replacing any Timestamp already stored there.
func (s *Store) Put(ctx context.Context, name string, at et.Timestamp) error {
	if err := CheckName(name); err != nil {
		return err
	}
	return dbutil.DoTx(ctx, s.pool, func(conn *dbutil.Conn) error {
		return dbutil.Exec(conn, `INSERT INTO stamps (name, at) VALUES (?, ?)
			ON CONFLICT (name) DO UPDATE SET at = excluded.at`, name, at)
	})
}

// Get returns the Timestamp stored under name, or ErrNotExist.
func (s *Store) Get(ctx context.Context, name string) (et.Timestamp, error) {
	return dbutil.DoTx1(ctx, s.pool, func(conn *dbutil.Conn) (et.Timestamp, error) {
		var at et.Timestamp
		if err := dbutil.Get(conn, &at, `SELECT at FROM stamps WHERE name = ?`, name); err != nil {
			if dbutil.IsErrNoRows(err) {
				err = fmt.Errorf("%w: %q", ErrNotExist, name)
			}
			return et.Timestamp{}, err
		}
		return at, nil
	})
}

// Delete removes the Timestamp stored under name, or returns ErrNotExist.
func (s *Store) Delete(ctx context.Context, name string) error {
	return dbutil.DoTx(ctx, s.pool, func(conn *dbutil.Conn) error {
		if err := dbutil.Exec(conn, `DELETE FROM stamps WHERE name = ?`, name); err != nil {
			return err
		}
		if conn.Changes() == 0 {
			return fmt.Errorf("%w: %q", ErrNotExist, name)
		}
		return nil
	})
}

// List returns all the entries in the store, sorted by name.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	return dbutil.DoTx1(ctx, s.pool, func(conn *dbutil.Conn) ([]Entry, error) {
		var ents []Entry
		for ent, err := range dbutil.Select(conn, scanEntry, `SELECT name, at FROM stamps ORDER BY name`) {
			if err != nil {
				return nil, err
			}
			ents = append(ents, ent)
		}
		return ents, nil
	})
}

func scanEntry(stmt *dbutil.Stmt, dst *Entry) error {
	at, err := dbutil.ColumnTimestamp(stmt, 1)
	if err != nil {
		return err
	}
	dst.Name = stmt.ColumnText(0)
	dst.At = at
	return nil
}
