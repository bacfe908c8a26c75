package repositories

import (
	"context"
	"database/sql"
	"delivery-zone-service/internal/domain"
	"delivery-zone-service/internal/platform/db"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB opens a private in-memory SQLite database with the schema applied.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	d, err := db.OpenSQLite(context.Background(), "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	require.NoError(t, InitSchema(context.Background(), d))
	return d
}

func TestSQLStoreRepositoryListStores(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	err := SeedStores(ctx, d, []StoreSeed{
		{ID: "2", Name: " Campus ", Address: "Rajamankha Nai Rd", Lat: 13.8385, Lng: 100.0253, Direction: "https://maps.example/2"},
		{ID: "1", Name: "Central", Address: "Phetkasem Rd", Lat: 13.8145263, Lng: 100.04178689, Direction: "https://maps.example/1"},
	})
	require.NoError(t, err)

	repo := NewSQLStoreRepository(d)
	stores, err := repo.ListStores(ctx)
	require.NoError(t, err)

	assert.Equal(t, []domain.Store{
		{ID: "1", Name: "Central", Address: "Phetkasem Rd", Lat: 13.8145263, Lng: 100.04178689, Direction: "https://maps.example/1"},
		{ID: "2", Name: "Campus", Address: "Rajamankha Nai Rd", Lat: 13.8385, Lng: 100.0253, Direction: "https://maps.example/2"},
	}, stores)
}

func TestSQLStoreRepositoryEmpty(t *testing.T) {
	repo := NewSQLStoreRepository(openTestDB(t))

	stores, err := repo.ListStores(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, stores)
	assert.Empty(t, stores)
}

func TestSQLStoreRepositoryNilDB(t *testing.T) {
	_, err := NewSQLStoreRepository(nil).ListStores(context.Background())
	assert.Error(t, err)
}

func TestSeedStoresUpserts(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, SeedStores(ctx, d, []StoreSeed{{ID: "1", Name: "Old", Lat: 1, Lng: 1}}))
	require.NoError(t, SeedStores(ctx, d, []StoreSeed{{ID: "1", Name: "New", Lat: 2, Lng: 2}}))

	stores, err := NewSQLStoreRepository(d).ListStores(ctx)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "New", stores[0].Name)
	assert.Equal(t, 2.0, stores[0].Lat)
}

func TestSeedStoresValidation(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	tests := []struct {
		name string
		seed StoreSeed
	}{
		{"empty id", StoreSeed{ID: " ", Name: "x"}},
		{"empty name", StoreSeed{ID: "1", Name: ""}},
		{"latitude out of range", StoreSeed{ID: "1", Name: "x", Lat: 91}},
		{"longitude out of range", StoreSeed{ID: "1", Name: "x", Lng: -181}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, SeedStores(ctx, d, []StoreSeed{tt.seed}))
		})
	}

	err := SeedStores(ctx, d, []StoreSeed{{ID: "1", Name: "x", Lat: 91}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	stores, err := NewSQLStoreRepository(d).ListStores(ctx)
	require.NoError(t, err)
	assert.Empty(t, stores, "rejected seeds must not be written")
}

func TestSeedFromJSON(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "stores.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id": "1", "name": "Central", "address": "Phetkasem Rd", "lat": 13.8145263, "lng": 100.04178689, "direction": "https://maps.example/1"}
	]`), 0o600))

	require.NoError(t, SeedFromJSON(ctx, d, path))

	stores, err := NewSQLStoreRepository(d).ListStores(ctx)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "Central", stores[0].Name)

	assert.Error(t, SeedFromJSON(ctx, d, filepath.Join(t.TempDir(), "missing.json")))

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{not json`), 0o600))
	assert.Error(t, SeedFromJSON(ctx, d, bad))
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	d := openTestDB(t)
	assert.NoError(t, InitSchema(context.Background(), d))
	assert.Error(t, InitSchema(context.Background(), nil))
}
