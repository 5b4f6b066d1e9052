package dbutil

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/gotvc/et/src/et"
)

// Type aliases for convenience
type Pool = sqlitex.Pool
type Conn = sqlite.Conn
type Stmt = sqlite.Stmt

func OpenPool(p string) (*Pool, error) {
	// Set up connection options with WAL mode and foreign keys
	uri := "file:" + p + "?_pragma=foreign_keys(1)"

	pool, err := sqlitex.NewPool(uri, sqlitex.PoolOptions{
		PoolSize: 10, // Allow up to 10 concurrent connections
	})
	if err != nil {
		return nil, err
	}
	return pool, nil
}

// NewTestPool returns a single connection pool over a fresh database file in t.TempDir().
func NewTestPool(t testing.TB) *Pool {
	p := filepath.Join(t.TempDir(), "test.db")
	pool, err := sqlitex.NewPool("file:"+p+"?_pragma=foreign_keys(1)", sqlitex.PoolOptions{
		PoolSize: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	return pool
}

// Borrow retrieves a connection from the pool and calls fn with it.
// The connection is returned to the pool after fn is called.
func Borrow(ctx context.Context, pool *Pool, fn func(conn *Conn) error) error {
	conn, err := pool.Take(ctx)
	if err != nil {
		return err
	}
	defer pool.Put(conn)
	return fn(conn)
}

// Exec executes a query without returning rows
func Exec(conn *Conn, query string, args ...any) error {
	stmt, err := conn.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Finalize()

	for i, arg := range args {
		BindAny(stmt, i+1, arg)
	}
	if ok, err := stmt.Step(); err != nil {
		return err
	} else if ok {
		return fmt.Errorf("dbutil.Exec: not expecting rows")
	}
	return nil
}

var ErrNoRows = errors.New("no rows found")

func IsErrNoRows(err error) bool {
	return errors.Is(err, ErrNoRows)
}

// Get retrieves a single value from a query result
func Get(conn *Conn, dest any, query string, args ...any) error {
	stmt, err := conn.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Finalize()

	for i, arg := range args {
		BindAny(stmt, i+1, arg)
	}
	hasRow, err := stmt.Step()
	if err != nil {
		return err
	}
	if !hasRow {
		return ErrNoRows
	}
	return scanValue(stmt, 0, dest)
}

// Select returns an iterator over the results of the query.
// scan is called for each row.
func Select[T any](conn *Conn, scan func(stmt *Stmt, dst *T) error, query string, args ...any) iter.Seq2[T, error] {
	stmt, err := conn.Prepare(query)
	if err != nil {
		return func(yield func(T, error) bool) {
			var zero T
			yield(zero, err)
		}
	}
	for i, arg := range args {
		BindAny(stmt, i+1, arg)
	}
	return func(yield func(T, error) bool) {
		defer stmt.Finalize()
		for {
			var zero T
			hasRow, err := stmt.Step()
			if err != nil {
				yield(zero, err)
				return
			}
			if !hasRow {
				return
			}
			var val T
			if err := scan(stmt, &val); err != nil {
				yield(zero, err)
				return
			}
			if !yield(val, nil) {
				return
			}
		}
	}
}

func DoTx(ctx context.Context, pool *Pool, fn func(conn *Conn) error) error {
	return Borrow(ctx, pool, func(conn *Conn) (retErr error) {
		defer sqlitex.Transaction(conn)(&retErr)
		return fn(conn)
	})
}

func DoTx1[T any](ctx context.Context, pool *Pool, fn func(conn *Conn) (T, error)) (T, error) {
	var ret T
	err := DoTx(ctx, pool, func(conn *Conn) error {
		var err error
		ret, err = fn(conn)
		return err
	})
	return ret, err
}

// BindAny binds an argument to a statement.
// Timestamps are bound as their positional binary encoding.
func BindAny(stmt *Stmt, i int, arg any) {
	switch x := arg.(type) {
	case nil:
		stmt.BindNull(i)
	case string:
		stmt.BindText(i, x)
	case bool:
		stmt.BindBool(i, x)
	case int64:
		stmt.BindInt64(i, x)
	case []byte:
		if len(x) == 0 {
			x = []byte{}
		}
		stmt.BindBytes(i, x)
	case et.Timestamp:
		stmt.BindBytes(i, x.Marshal(nil))
	default:
		panic(fmt.Sprintf("dbutil: cannot bind %T", arg))
	}
}

// ColumnBytes returns a copy of the blob in column col.
func ColumnBytes(stmt *Stmt, col int) ([]byte, error) {
	buf := make([]byte, stmt.ColumnLen(col))
	if n := stmt.ColumnBytes(col, buf); n != len(buf) {
		return nil, fmt.Errorf("dbutil: short read for column %d", col)
	}
	return buf, nil
}

// ColumnTimestamp decodes the Timestamp stored in column col.
func ColumnTimestamp(stmt *Stmt, col int) (et.Timestamp, error) {
	data, err := ColumnBytes(stmt, col)
	if err != nil {
		return et.Timestamp{}, err
	}
	return et.Parse(data)
}

// scanValue scans a single value from a statement into dest
func scanValue(stmt *Stmt, col int, dest any) error {
	switch d := dest.(type) {
	case *string:
		*d = stmt.ColumnText(col)
		return nil
	case *int64:
		*d = stmt.ColumnInt64(col)
		return nil
	case *[]byte:
		data, err := ColumnBytes(stmt, col)
		if err != nil {
			return err
		}
		*d = data
		return nil
	case *bool:
		*d = stmt.ColumnInt(col) != 0
		return nil
	case *et.Timestamp:
		ts, err := ColumnTimestamp(stmt, col)
		if err != nil {
			return err
		}
		*d = ts
		return nil
	default:
		return fmt.Errorf("unsupported type for scanning: %T", dest)
	}
}
