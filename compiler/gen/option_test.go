package gen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/modelgen"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := NewConfig()
		require.NoError(t, err)
		assert.Equal(t, DefaultPrefix, cfg.Prefix)
		assert.Equal(t, TableNamingSimple, cfg.TableNaming)
		assert.Equal(t, DefaultHeader, cfg.HeaderComment())
	})

	t.Run("options", func(t *testing.T) {
		cfg, err := NewConfig(
			WithPrefix("Base"),
			WithTarget("gen"),
			WithHeader("Code generated by make. DO NOT EDIT."),
			WithTableNaming("inflect"),
		)
		require.NoError(t, err)
		assert.Equal(t, "Base", cfg.Prefix)
		assert.Equal(t, "gen", cfg.Target)
		assert.Equal(t, "Code generated by make. DO NOT EDIT.", cfg.HeaderComment())
		assert.Equal(t, TableNamingInflect, cfg.TableNaming)
	})

	t.Run("invalid prefix", func(t *testing.T) {
		_, err := NewConfig(WithPrefix("1x"))
		require.Error(t, err)
		assert.True(t, modelgen.IsConfigError(err))
	})

	t.Run("empty target", func(t *testing.T) {
		_, err := NewConfig(WithTarget(""))
		assert.True(t, errors.Is(err, modelgen.ErrConfig))
	})

	t.Run("unknown table naming", func(t *testing.T) {
		_, err := NewConfig(WithTableNaming("plural"))
		var ce *modelgen.ConfigError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "table_naming", ce.Key)
	})

	t.Run("must panics", func(t *testing.T) {
		assert.Panics(t, func() { MustNewConfig(WithPrefix("")) })
	})
}

func TestConfigApplyAll(t *testing.T) {
	cfg := &Config{}
	err := cfg.ApplyAll(WithPrefix(""), WithTarget(""), WithHeader("h"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prefix")
	assert.Contains(t, err.Error(), "target")
	assert.Equal(t, "h", cfg.Header)
}
