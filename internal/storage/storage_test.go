package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groStats/internal/model"
)

func TestJsonlRoundTripNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewJsonlStorage(filepath.Join(t.TempDir(), "nested", "apy.jsonl"))

	for _, ts := range []uint64{100, 300, 200} {
		require.NoError(t, s.PutApySnapshot(ctx, model.ApySnapshot{Network: model.NetworkMainnet, Timestamp: ts, ApyGvt: "0.1"}))
	}
	require.NoError(t, s.PutApySnapshot(ctx, model.ApySnapshot{Network: model.NetworkAvalanche, Timestamp: 400}))

	got, err := s.ListApySnapshots(ctx, model.NetworkMainnet, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, uint64(300), got[0].Timestamp)
	assert.Equal(t, uint64(200), got[1].Timestamp)
	assert.Equal(t, "0.1", got[0].ApyGvt)

	all, err := s.ListApySnapshots(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestJsonlMissingFile(t *testing.T) {
	got, err := NewJsonlStorage(filepath.Join(t.TempDir(), "none.jsonl")).ListApySnapshots(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

type failingSink struct{ err error }

func (f failingSink) PutApySnapshot(context.Context, model.ApySnapshot) error { return f.err }

func TestMultiJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	path := filepath.Join(t.TempDir(), "apy.jsonl")
	jsonl := NewJsonlStorage(path)

	err := Multi{jsonl, nil, failingSink{err: boom}}.PutApySnapshot(context.Background(), model.ApySnapshot{Timestamp: 1})
	require.ErrorIs(t, err, boom)

	got, err := jsonl.ListApySnapshots(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
