package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/modelgen/compiler/load"
)

func TestConfigTableName(t *testing.T) {
	tests := []struct {
		name   string
		naming TableNaming
		entity *load.Entity
		want   string
	}{
		{"simple", TableNamingSimple, &load.Entity{Name: "User"}, "User"},
		{"explicit override", TableNamingSimple, &load.Entity{Name: "User", Table: "accounts"}, "accounts"},
		{"inflect", TableNamingInflect, &load.Entity{Name: "User"}, "users"},
		{"inflect compound", TableNamingInflect, &load.Entity{Name: "OrderItem"}, "order_items"},
		{"inflect with override", TableNamingInflect, &load.Entity{Name: "Person", Table: "person"}, "person"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{TableNaming: tt.naming}
			assert.Equal(t, tt.want, cfg.TableName(tt.entity))
		})
	}
}

func TestConfigOutputDir(t *testing.T) {
	e := &load.Entity{Name: "User", Dir: "/src/models"}
	assert.Equal(t, "/src/models", (&Config{}).OutputDir(e))
	assert.Equal(t, "out", (&Config{Target: "out"}).OutputDir(e))
	assert.Equal(t, ".", (&Config{}).OutputDir(&load.Entity{Name: "User"}))
}

func TestConfigHeaderComment(t *testing.T) {
	assert.Equal(t, DefaultHeader, (&Config{}).HeaderComment())
	assert.Equal(t, "generated", (&Config{Header: "generated"}).HeaderComment())
}
