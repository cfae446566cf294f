package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

type LayoutRow struct {
	ID          string
	RoutePath   string
	Arrangement string
	CanDelete   bool
}

type ActiveRow struct {
	RoutePath string
	LayoutID  string
}

const listLayouts = `
select id, route_path, arrangement, can_delete
from layouts
order by position
`

func (q *Queries) ListLayouts(ctx context.Context) ([]LayoutRow, error) {
	rows, err := q.db.QueryContext(ctx, listLayouts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []LayoutRow
	for rows.Next() {
		var i LayoutRow
		if err := rows.Scan(&i.ID, &i.RoutePath, &i.Arrangement, &i.CanDelete); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertLayout = `
insert into layouts (id, route_path, arrangement, can_delete, position)
values (?, ?, ?, ?, coalesce((select max(position) from layouts), 0) + 1)
on conflict (id) do update
set route_path  = excluded.route_path,
    arrangement = excluded.arrangement,
    can_delete  = excluded.can_delete
`

func (q *Queries) UpsertLayout(ctx context.Context, arg LayoutRow) error {
	_, err := q.db.ExecContext(ctx, upsertLayout, arg.ID, arg.RoutePath, arg.Arrangement, arg.CanDelete)
	return err
}

const deleteLayout = `
delete from layouts
where id = ?
`

func (q *Queries) DeleteLayout(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteLayout, id)
	return err
}

const listActive = `
select route_path, layout_id
from active_layouts
`

func (q *Queries) ListActive(ctx context.Context) ([]ActiveRow, error) {
	rows, err := q.db.QueryContext(ctx, listActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []ActiveRow
	for rows.Next() {
		var i ActiveRow
		if err := rows.Scan(&i.RoutePath, &i.LayoutID); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const setActive = `
insert into active_layouts (route_path, layout_id)
values (?, ?)
on conflict (route_path) do update
set layout_id = excluded.layout_id
`

func (q *Queries) SetActive(ctx context.Context, arg ActiveRow) error {
	_, err := q.db.ExecContext(ctx, setActive, arg.RoutePath, arg.LayoutID)
	return err
}

const clearActive = `
delete from active_layouts
where route_path = ?
`

func (q *Queries) ClearActive(ctx context.Context, routePath string) error {
	_, err := q.db.ExecContext(ctx, clearActive, routePath)
	return err
}

const tableColumns = `
select name
from pragma_table_info(?)
order by cid
`

func (q *Queries) TableColumns(ctx context.Context, table string) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, tableColumns, table)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		items = append(items, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const schemaVersion = `
select version, dirty
from schema_migrations
limit 1
`

// SchemaVersion returns the migration version recorded in db.
func (q *Queries) SchemaVersion(ctx context.Context) (int64, bool, error) {
	rows, err := q.db.QueryContext(ctx, schemaVersion)
	if err != nil {
		return 0, false, err
	}
	defer rows.Close()

	var version int64
	var dirty bool
	if rows.Next() {
		if err := rows.Scan(&version, &dirty); err != nil {
			return 0, false, err
		}
	}
	return version, dirty, rows.Err()
}

const dumpTables = `
select sql
from sqlite_master
where type = 'table'
  and name not like 'sqlite_%'
order by name
`

func (q *Queries) DumpTables(ctx context.Context) ([]*string, error) {
	return q.dump(ctx, dumpTables)
}

const dumpRest = `
select sql
from sqlite_master
where type != 'table'
  and name not like 'sqlite_%'
order by name
`

func (q *Queries) DumpRest(ctx context.Context) ([]*string, error) {
	return q.dump(ctx, dumpRest)
}

func (q *Queries) dump(ctx context.Context, query string) ([]*string, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query sqlite_master: %w", err)
	}
	defer rows.Close()

	var items []*string
	for rows.Next() {
		var statement sql.NullString
		if err := rows.Scan(&statement); err != nil {
			return nil, err
		}
		if statement.Valid {
			items = append(items, &statement.String)
		} else {
			items = append(items, nil)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
