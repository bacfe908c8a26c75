package ports

import (
	"context"
	"delivery-zone-service/internal/domain"
)

// Port: a boundary for retrieving Store entities from a data source.
type StoreRepository interface {
	// Retrieve all stores published by the directory.
	ListStores(ctx context.Context) ([]domain.Store, error)
}
