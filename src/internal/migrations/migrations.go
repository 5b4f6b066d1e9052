package migrations

import (
	"context"

	"go.brendoncarroll.net/exp/slices2"
	"go.brendoncarroll.net/stdctx/logctx"
	"zombiezen.com/go/sqlite/sqlitemigration"

	"github.com/gotvc/et/src/internal/dbutil"
)

type Migration struct {
	Name    string
	SQLText string
}

// EnsureAll ensures all migrations have been applied, in order.
// Migrations which have already been applied are skipped.
func EnsureAll(ctx context.Context, conn *dbutil.Conn, migrations []Migration) error {
	schema := sqlitemigration.Schema{
		Migrations: slices2.Map(migrations, func(mig Migration) string {
			return mig.SQLText
		}),
	}
	logctx.Infof(ctx, "ensuring %d migrations", len(migrations))
	return sqlitemigration.Migrate(ctx, conn, schema)
}
