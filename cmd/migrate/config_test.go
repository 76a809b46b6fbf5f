package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrationsDir(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		t.Setenv("MIGRATIONS_DIR", "")
		assert.Equal(t, "db/migrations", migrationsDir())
	})

	t.Run("env override", func(t *testing.T) {
		t.Setenv("MIGRATIONS_DIR", "/custom/migrations")
		assert.Equal(t, "/custom/migrations", migrationsDir())
	})
}
