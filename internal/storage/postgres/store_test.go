package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadQuery(t *testing.T) {
	for _, file := range []string{CreateApySnapshots, InsertApySnapshot, SelectApySnapshots} {
		sql, err := loadQuery(file)
		require.NoError(t, err, file)
		assert.Contains(t, sql, "apy_snapshots", file)
	}
}

func TestLoadQueryRejectsInvalidFiles(t *testing.T) {
	for _, file := range []string{
		"",
		"drop_apy_snapshots.sql",
		"select_missing.sql",
		"../select/select_apy_snapshots.sql",
		"select_apy_snapshots.txt",
	} {
		_, err := loadQuery(file)
		assert.ErrorIs(t, err, ErrInvalidQuery, file)
	}
}

func TestNewStoreRequiresDSN(t *testing.T) {
	_, err := NewStore(context.Background(), Config{}, nil)
	require.Error(t, err)
}

func TestNumeric(t *testing.T) {
	assert.Equal(t, "0", numeric("N/A"))
	assert.Equal(t, "0", numeric(""))
	assert.Equal(t, "1.25", numeric("1.25"))
}
