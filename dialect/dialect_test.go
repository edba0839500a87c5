package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"postgres":   Postgres,
		"PostgreSQL": Postgres,
		"pgx":        Postgres,
		"mysql":      MySQL,
		"MariaDB":    MySQL,
		"sqlite3":    SQLite,
		" sqlite ":   SQLite,
		"oracle":     "oracle",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, Normalize(in))
		})
	}
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported(Postgres))
	assert.True(t, Supported(SQLite))
	assert.False(t, Supported("oracle"))
	assert.False(t, Supported("sqlite3"))
}
