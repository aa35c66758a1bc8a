package migrations

import (
	"context"
	"fmt"
	"io/fs"
	"strings"
)

// ClickhouseExecer is the subset of the ClickHouse driver API needed to
// apply migrations. Satisfied by *clickhouse.Conn.
type ClickhouseExecer interface {
	Exec(ctx context.Context, query string, args ...any) error
}

// RunClickhouse applies all embedded ClickHouse migrations in lexical
// order. Each file holds a single statement; the native protocol does not
// accept multi-statement batches.
func RunClickhouse(ctx context.Context, db ClickhouseExecer) error {
	files, err := listSQL(ClickhouseFS, "clickhouse")
	if err != nil {
		return err
	}

	for _, file := range files {
		data, err := fs.ReadFile(ClickhouseFS, "clickhouse/"+file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		if strings.TrimSpace(string(data)) == "" {
			continue
		}
		if err := db.Exec(ctx, string(data)); err != nil {
			return fmt.Errorf("apply migration %s: %w", file, err)
		}
	}

	return nil
}
