package sqlite

import (
	"codeberg.org/miketth/layoutd/pkg/layouts"
	"codeberg.org/miketth/layoutd/pkg/layoutstore/sqlite/migrations"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

type LayoutStore struct {
	db      *sql.DB
	querier *Queries
}

func NewLayoutStore(filename string, log *zap.SugaredLogger) (*LayoutStore, error) {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := migrations.Migrate(db, log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	querier := New(db)
	if err := CheckSchema(context.Background(), querier); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &LayoutStore{
		db:      db,
		querier: querier,
	}, nil
}

func (s *LayoutStore) Close() error {
	return s.db.Close()
}

func (s *LayoutStore) LoadLayouts() ([]layouts.Layout, error) {
	rows, err := s.querier.ListLayouts(context.Background())
	if err != nil {
		return nil, fmt.Errorf("sqlite select: %w", err)
	}

	ret := make([]layouts.Layout, 0, len(rows))
	for _, row := range rows {
		var arrangement layouts.Arrangement
		if err := json.Unmarshal([]byte(row.Arrangement), &arrangement); err != nil {
			return nil, fmt.Errorf("decode arrangement of %q: %w", row.ID, err)
		}

		ret = append(ret, layouts.Layout{
			ID:          row.ID,
			RoutePath:   row.RoutePath,
			Arrangement: arrangement,
			CanDelete:   row.CanDelete,
		})
	}

	return ret, nil
}

func (s *LayoutStore) LoadActive() (map[string]string, error) {
	rows, err := s.querier.ListActive(context.Background())
	if err != nil {
		return nil, fmt.Errorf("sqlite select: %w", err)
	}

	ret := make(map[string]string, len(rows))
	for _, row := range rows {
		ret[row.RoutePath] = row.LayoutID
	}

	return ret, nil
}

func (s *LayoutStore) SaveLayout(layout layouts.Layout) error {
	arrangement := layout.Arrangement
	if arrangement == nil {
		arrangement = layouts.Arrangement{}
	}

	encoded, err := json.Marshal(arrangement)
	if err != nil {
		return fmt.Errorf("encode arrangement: %w", err)
	}

	if err := s.querier.UpsertLayout(context.Background(), LayoutRow{
		ID:          layout.ID,
		RoutePath:   layout.RoutePath,
		Arrangement: string(encoded),
		CanDelete:   layout.CanDelete,
	}); err != nil {
		return fmt.Errorf("sqlite update: %w", err)
	}

	return nil
}

func (s *LayoutStore) DeleteLayout(id string) error {
	if err := s.querier.DeleteLayout(context.Background(), id); err != nil {
		return fmt.Errorf("sqlite delete: %w", err)
	}

	return nil
}

func (s *LayoutStore) SetActive(route string, id string) error {
	if err := s.querier.SetActive(context.Background(), ActiveRow{
		RoutePath: route,
		LayoutID:  id,
	}); err != nil {
		return fmt.Errorf("sqlite update: %w", err)
	}

	return nil
}

func (s *LayoutStore) ClearActive(route string) error {
	if err := s.querier.ClearActive(context.Background(), route); err != nil {
		return fmt.Errorf("sqlite delete: %w", err)
	}

	return nil
}
