package repositories

import (
	"context"
	"database/sql"
	"delivery-zone-service/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the store directory schema. The DDL is valid on both
// PostgreSQL and SQLite.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStoresQuery := `
	CREATE TABLE IF NOT EXISTS stores (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		direction TEXT NOT NULL DEFAULT ''
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_stores_name
	ON stores(name);
	`

	statements := []string{
		createStoresQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type StoreSeed struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Direction string  `json:"direction"`
}

// Populate the database with store data from a JSON file.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed stores: read %q: %w", jsonPath, err)
	}

	var data []StoreSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed stores: parse json: %w", err)
	}

	return SeedStores(ctx, db, data)
}

// SeedStores validates and upserts stores by id.
func SeedStores(ctx context.Context, db *sql.DB, data []StoreSeed) error {
	if db == nil {
		return errors.New("seed stores: DB is nil")
	}

	rows := make([]StoreSeed, 0, len(data))
	for i, item := range data {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			return fmt.Errorf("seed stores: item at index %d: id cannot be empty", i+1)
		}

		name := strings.TrimSpace(item.Name)
		if name == "" {
			return fmt.Errorf("seed stores: store %q: name cannot be empty", id)
		}

		loc := domain.Coordinate{Lat: item.Lat, Lng: item.Lng}
		if err := loc.Validate(); err != nil {
			return fmt.Errorf("seed stores: store %q: %w", id, err)
		}

		item.ID = id
		item.Name = name
		item.Address = strings.TrimSpace(item.Address)
		item.Direction = strings.TrimSpace(item.Direction)
		rows = append(rows, item)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed stores: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// $N placeholders in order bind positionally on both pgx and SQLite.
	query := `
	INSERT INTO stores (
		id,
		name,
		address,
		lat,
		lng,
		direction
	)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (id) DO UPDATE SET
		name = excluded.name,
		address = excluded.address,
		lat = excluded.lat,
		lng = excluded.lng,
		direction = excluded.direction;
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed stores: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range rows {
		if _, err := stmt.ExecContext(ctx, s.ID, s.Name, s.Address, s.Lat, s.Lng, s.Direction); err != nil {
			return fmt.Errorf("seed stores: insert id=%s: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed stores: commit tx: %w", err)
	}

	return nil
}
