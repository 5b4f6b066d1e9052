package dbutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gotvc/et/src/et"
	"github.com/gotvc/et/src/internal/testutil"
)

func TestTimestampColumn(t *testing.T) {
	ctx := testutil.Context(t)
	pool := NewTestPool(t)
	xs := []et.Timestamp{
		et.New(1609459200, 1),
		et.New(-10, 1_000_000_001),
	}
	err := DoTx(ctx, pool, func(conn *Conn) error {
		if err := Exec(conn, `CREATE TABLE t (id INTEGER PRIMARY KEY, at BLOB NOT NULL)`); err != nil {
			return err
		}
		for i, x := range xs {
			if err := Exec(conn, `INSERT INTO t (id, at) VALUES (?, ?)`, int64(i), x); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, err)

	y, err := DoTx1(ctx, pool, func(conn *Conn) (et.Timestamp, error) {
		var y et.Timestamp
		err := Get(conn, &y, `SELECT at FROM t WHERE id = ?`, int64(1))
		return y, err
	})
	require.NoError(t, err)
	require.Equal(t, xs[1], y)

	var ys []et.Timestamp
	err = Borrow(ctx, pool, func(conn *Conn) error {
		scan := func(stmt *Stmt, dst *et.Timestamp) error {
			var err error
			*dst, err = ColumnTimestamp(stmt, 0)
			return err
		}
		for y, err := range Select(conn, scan, `SELECT at FROM t ORDER BY id`) {
			if err != nil {
				return err
			}
			ys = append(ys, y)
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, xs, ys)
}

func TestGetNoRows(t *testing.T) {
	ctx := testutil.Context(t)
	pool := NewTestPool(t)
	err := Borrow(ctx, pool, func(conn *Conn) error {
		require.NoError(t, Exec(conn, `CREATE TABLE t (at BLOB)`))
		var x et.Timestamp
		return Get(conn, &x, `SELECT at FROM t`)
	})
	require.True(t, IsErrNoRows(err))
}

func TestCorruptTimestamp(t *testing.T) {
	ctx := testutil.Context(t)
	pool := NewTestPool(t)
	err := Borrow(ctx, pool, func(conn *Conn) error {
		require.NoError(t, Exec(conn, `CREATE TABLE t (at BLOB)`))
		require.NoError(t, Exec(conn, `INSERT INTO t (at) VALUES (?)`, []byte{1, 2, 3}))
		var x et.Timestamp
		return Get(conn, &x, `SELECT at FROM t`)
	})
	require.True(t, et.IsMalformed(err))
}

func TestTestPoolIsolated(t *testing.T) {
	ctx := testutil.Context(t)
	a, b := NewTestPool(t), NewTestPool(t)
	require.NoError(t, Borrow(ctx, a, func(conn *Conn) error {
		return Exec(conn, `CREATE TABLE t (at BLOB)`)
	}))
	err := Borrow(ctx, b, func(conn *Conn) error {
		return Exec(conn, `INSERT INTO t (at) VALUES (?)`, et.New(1, 2))
	})
	require.Error(t, err)
}
