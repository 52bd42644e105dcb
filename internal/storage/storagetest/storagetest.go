// Package storagetest opens throwaway SQLite stores for tests.
package storagetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/config"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage"
)

// Config returns a SQLite configuration rooted in a per-test directory.
func Config(t testing.TB) *config.Config {
	t.Helper()
	return &config.Config{
		Dialect:    "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "finance.db"),
	}
}

// New creates, migrates and opens a fresh store. It is closed when the test ends.
func New(t testing.TB, opts ...storage.Option) *storage.Storage {
	t.Helper()
	return Open(t, Config(t), opts...)
}

// Open creates, migrates and opens the store described by env.
func Open(t testing.TB, env *config.Config, opts ...storage.Option) *storage.Storage {
	t.Helper()
	ctx := context.Background()

	_, err := storage.CreateStore(ctx, env)
	require.NoError(t, err)

	s, err := storage.Open(ctx, env, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}
