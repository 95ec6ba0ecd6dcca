package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	q := `SELECT * FROM rosters WHERE id = $1 AND name = $2 LIMIT $10`

	assert.Equal(t, q, rebind(Postgres, q))
	assert.Equal(t, `SELECT * FROM rosters WHERE id = ?1 AND name = ?2 LIMIT ?10`, rebind(SQLite, q))
	assert.Equal(t, `SELECT '$'`, rebind(SQLite, `SELECT '$'`))
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "")
	assert.Error(t, err)
}

func TestMigrate_SQLiteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, "sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.Migrate(ctx))
	require.NoError(t, db.Migrate(ctx))
	assert.Equal(t, SQLite, db.Dialect())

	var n int
	err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM calculations WHERE rounds > $1`, 0).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, "sqlite", ":memory:")
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Migrate(ctx))

	err = db.WithTx(ctx, func(tx *Tx) error {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO rosters (name, created_at, updated_at) VALUES ($1, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`, "x"); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	var n int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM rosters`).Scan(&n))
	assert.Equal(t, 0, n)
}
