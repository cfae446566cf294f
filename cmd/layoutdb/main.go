// Command layoutdb inspects a layoutd sqlite database: it prints the schema
// version, checks that every column the daemon queries exists and dumps the
// schema. The database is opened read-only.
//
//	layoutdb                  # the daemon's database
//	layoutdb -db ./layouts.db
//	layoutdb -fresh           # schema produced by the migrations alone
package main

import (
	"codeberg.org/miketth/layoutd/pkg/layoutstore/sqlite"
	"codeberg.org/miketth/layoutd/pkg/layoutstore/sqlite/migrations"
	"context"
	"database/sql"
	"flag"
	"fmt"
	"github.com/adrg/xdg"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"io"
	"log"
	"os"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("error: %+v", err)
	}
}

func run() error {
	dbPath := flag.String("db", "", "layout database (default: $XDG_STATE_HOME/layoutd/layouts.db)")
	fresh := flag.Bool("fresh", false, "inspect an empty database with all migrations applied")
	verbose := flag.Bool("v", false, "log migration progress")
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		var err error
		if logger, err = zap.NewDevelopment(); err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
	}

	db, err := openDatabase(*dbPath, *fresh, logger.Sugar())
	if err != nil {
		return err
	}
	defer db.Close()

	return report(context.Background(), sqlite.New(db), os.Stdout)
}

func openDatabase(path string, fresh bool, log *zap.SugaredLogger) (*sql.DB, error) {
	if fresh {
		db, err := sql.Open("sqlite3", "file:layoutdb?mode=memory&cache=shared")
		if err != nil {
			return nil, fmt.Errorf("open db: %w", err)
		}
		if err := migrations.Migrate(db, log); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return db, nil
	}

	if path == "" {
		var err error
		if path, err = xdg.StateFile("layoutd/layouts.db"); err != nil {
			return nil, fmt.Errorf("get state file: %w", err)
		}
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("layout database: %w", err)
	}

	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return db, nil
}

// report writes the schema version and the schema of q's database to w. It
// fails when the daemon's queries would not work against that schema.
func report(ctx context.Context, q *sqlite.Queries, w io.Writer) error {
	version, dirty, err := q.SchemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if _, err := fmt.Fprintf(w, "-- schema version %d (dirty: %t)\n\n", version, dirty); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	tables, err := q.DumpTables(ctx)
	if err != nil {
		return fmt.Errorf("dump tables: %w", err)
	}
	rest, err := q.DumpRest(ctx)
	if err != nil {
		return fmt.Errorf("dump indexes: %w", err)
	}

	for _, statement := range append(tables, rest...) {
		if statement == nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s;\n\n", *statement); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}

	return sqlite.CheckSchema(ctx, q)
}
