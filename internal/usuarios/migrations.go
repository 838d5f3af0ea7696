package usuarios

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// UsuarioIndexes are created alongside the table. The unique email index is
// load-bearing: it closes the race between the service's email pre-check and
// the insert.
var UsuarioIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS usuarios_email_key ON usuarios (email)`,
	`CREATE INDEX IF NOT EXISTS usuarios_ativo_idx ON usuarios (ativo)`,
}

// CreateTables creates the usuarios table
func CreateTables(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().
		Model((*UsuarioSchema)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create usuarios table: %w", err)
	}
	return nil
}

// CreateIndexes creates the usuarios indexes
func CreateIndexes(ctx context.Context, db *bun.DB) error {
	for _, indexSQL := range UsuarioIndexes {
		if _, err := db.ExecContext(ctx, indexSQL); err != nil {
			return fmt.Errorf("failed to create index with SQL %q: %w", indexSQL, err)
		}
	}
	return nil
}
