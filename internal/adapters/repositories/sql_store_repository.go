package repositories

import (
	"context"
	"database/sql"
	"delivery-zone-service/internal/domain"
	"delivery-zone-service/internal/platform/obs"
	"errors"
	"fmt"
)

// SQL-backed implementation of the StoreRepository port.
// It also satisfies StoreDirectory, so sessions can load pins straight from
// the local directory when no remote one is configured.
type SQLStoreRepository struct{ DB *sql.DB }

func NewSQLStoreRepository(db *sql.DB) *SQLStoreRepository {
	return &SQLStoreRepository{DB: db}
}

// Return all stores ordered by id.
func (s *SQLStoreRepository) ListStores(ctx context.Context) (_ []domain.Store, err error) {
	defer obs.Time(ctx, "stores.repo.ListStores")(&err)

	if s.DB == nil {
		return nil, errors.New("sql store repository: DB is nil")
	}

	query := `
	SELECT
		id,
		name,
		address,
		lat,
		lng,
		direction
	FROM stores
	ORDER BY id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stores: query stores table: %w", err)
	}
	defer rows.Close()

	stores := make([]domain.Store, 0, 64)
	for rows.Next() {
		var st domain.Store
		err := rows.Scan(&st.ID, &st.Name, &st.Address, &st.Lat, &st.Lng, &st.Direction)
		if err != nil {
			return nil, fmt.Errorf("list stores: scan row: %w", err)
		}
		stores = append(stores, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stores: row iteration: %w", err)
	}

	return stores, nil
}
