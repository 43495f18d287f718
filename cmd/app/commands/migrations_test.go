package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsPath(t *testing.T) {
	assert.Equal(t, "file://migrations/postgresql", migrationsPath("postgres"))
	assert.Equal(t, "file://migrations/mysql", migrationsPath("mysql"))
}

func TestRunMigrations(t *testing.T) {
	logger := discardLogger()

	t.Run("invalid-driver", func(t *testing.T) {
		err := RunMigrations(logger, "invalid", "postgres://localhost")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to create migrate instance")
	})

	t.Run("invalid-connection-string", func(t *testing.T) {
		err := RunMigrations(logger, "postgres", "invalid-connection-string")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to create migrate instance")
	})
}
