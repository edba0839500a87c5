package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogger(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	tests := []struct {
		name           string
		verbose, debug bool
		want           slog.Level
	}{
		{"default", false, false, slog.LevelWarn},
		{"verbose", true, false, slog.LevelInfo},
		{"debug", false, true, slog.LevelDebug},
		{"both", true, true, slog.LevelDebug},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			level, err := InitLogger(&buf, "", tt.verbose, tt.debug)
			require.NoError(t, err)
			assert.Equal(t, tt.want, level.Level())
		})
	}
}

func TestInitLoggerFile(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	path := filepath.Join(t.TempDir(), "modelgen.log")
	var buf bytes.Buffer
	_, err := InitLogger(&buf, path, true, false)
	require.NoError(t, err)

	slog.Info("generated", Err(errors.New("boom")))
	assert.Contains(t, buf.String(), "err=boom")
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "msg=generated")

	_, err = InitLogger(&buf, filepath.Join(t.TempDir(), "missing", "x.log"), false, false)
	assert.Error(t, err)
}
