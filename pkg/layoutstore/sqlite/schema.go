package sqlite

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
)

var ErrSchemaMismatch = errors.New("layout schema mismatch")

// queriedColumns lists every column the queries in this package read or write.
var queriedColumns = map[string][]string{
	"layouts":        {"id", "route_path", "arrangement", "can_delete", "position"},
	"active_layouts": {"route_path", "layout_id"},
}

// CheckSchema reports the tables and columns the queries need but db lacks.
func CheckSchema(ctx context.Context, q *Queries) error {
	var missing []string
	for _, table := range sortedTables() {
		columns, err := q.TableColumns(ctx, table)
		if err != nil {
			return fmt.Errorf("columns of %s: %w", table, err)
		}
		if len(columns) == 0 {
			missing = append(missing, table)
			continue
		}

		for _, column := range queriedColumns[table] {
			if !slices.Contains(columns, column) {
				missing = append(missing, table+"."+column)
			}
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing %s: %w", strings.Join(missing, ", "), ErrSchemaMismatch)
	}
	return nil
}

func sortedTables() []string {
	tables := make([]string, 0, len(queriedColumns))
	for table := range queriedColumns {
		tables = append(tables, table)
	}
	slices.Sort(tables)
	return tables
}
