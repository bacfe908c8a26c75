package storedir

import (
	"context"
	"delivery-zone-service/internal/domain"
	"slices"
	"sync/atomic"
)

// StaticStoreDirectory serves a fixed store list or a fixed error.
type StaticStoreDirectory struct {
	stores []domain.Store
	err    error
	calls  atomic.Int64
}

func NewStaticStoreDirectory(stores []domain.Store) *StaticStoreDirectory {
	return &StaticStoreDirectory{stores: stores}
}

// NewFailingStoreDirectory returns a directory whose every call fails with err.
func NewFailingStoreDirectory(err error) *StaticStoreDirectory {
	return &StaticStoreDirectory{err: err}
}

func (d *StaticStoreDirectory) ListStores(ctx context.Context) ([]domain.Store, error) {
	d.calls.Add(1)

	if err := ctx.Err(); err != nil {
		return nil, &domain.FetchError{URL: "static", Err: err}
	}
	if d.err != nil {
		return nil, d.err
	}

	return slices.Clone(d.stores), nil
}

// Calls reports how many times ListStores ran.
func (d *StaticStoreDirectory) Calls() int { return int(d.calls.Load()) }
