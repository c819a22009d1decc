package storage

import (
	"context"
	"errors"

	"groStats/internal/model"
)

// Storage defines a sink for APY snapshots.
type Storage interface {
	PutApySnapshot(ctx context.Context, snap model.ApySnapshot) error
}

// History lists stored snapshots, newest first.
type History interface {
	ListApySnapshots(ctx context.Context, network string, limit int) ([]model.ApySnapshot, error)
}

// Multi writes every snapshot to all sinks and joins their errors.
type Multi []Storage

func (m Multi) PutApySnapshot(ctx context.Context, snap model.ApySnapshot) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.PutApySnapshot(ctx, snap); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
