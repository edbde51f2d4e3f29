package store

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tubesift/tubesift/pkg/logger"
)

// NewTestStore creates a new in-memory SQLite store for testing.
func NewTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = AutoMigrate(db)
	require.NoError(t, err)

	return &Store{db: db, path: ":memory:", logger: logger.NewNoop()}
}
