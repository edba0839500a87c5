package load

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/modelgen"
	"github.com/syssam/modelgen/schema/sqltype"
)

func TestDiscover(t *testing.T) {
	entities, err := Discover(context.Background(), ".", "./testdata/entities")
	require.NoError(t, err)
	require.Len(t, entities, 3)

	names := make([]string, len(entities))
	for i, e := range entities {
		names[i] = e.Name
		assert.Equal(t, "github.com/syssam/modelgen/compiler/load/testdata/entities", e.Package)
		assert.Equal(t, "entities", e.PkgName)
		assert.NotEmpty(t, e.Pos)
	}
	assert.Equal(t, []string{"Invoice", "Order", "User"}, names)

	invoice, order, user := entities[0], entities[1], entities[2]
	assert.Empty(t, invoice.Table)
	assert.Equal(t, "users", user.Table)
	assert.Empty(t, user.Connection)

	abs, err := filepath.Abs("testdata/db.properties")
	require.NoError(t, err)
	assert.Equal(t, abs, order.Connection)
	assert.Equal(t, filepath.Join(filepath.Dir(abs), "entities"), order.Dir)
}

func TestDiscoverUnknownOption(t *testing.T) {
	_, err := Discover(context.Background(), ".", "./testdata/badoption")
	require.Error(t, err)
	assert.True(t, modelgen.IsConfigError(err))
	assert.Contains(t, err.Error(), "Account")
	assert.Contains(t, err.Error(), `"schema"`)
}

func TestEntityPackageName(t *testing.T) {
	assert.Equal(t, "models", (&Entity{Package: "github.com/acme/app/models"}).PackageName())
	assert.Equal(t, "domain", (&Entity{Package: "com.example.domain"}).PackageName())
	assert.Equal(t, "alias", (&Entity{Package: "github.com/acme/app/models", PkgName: "alias"}).PackageName())
	assert.Equal(t, "store", (&Entity{Name: "User", Dir: filepath.Join("app", "store")}).PackageName())
	assert.Empty(t, (&Entity{Name: "User"}).PackageName())
	assert.Equal(t, "com.example.User", (&Entity{Name: "User", Package: "com.example"}).String())
}

func TestSnapshot(t *testing.T) {
	s := &Snapshot{Dialect: "sqlite3", Created: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)}
	s.Add("users", []*Column{
		{Name: "id", Code: sqltype.Integer, Position: 1, DatabaseType: "INTEGER"},
		{Name: "user_name", Code: sqltype.Varchar, Position: 2},
	})
	s.Add("orders", []*Column{{Name: "id", Code: sqltype.BigInt, Position: 1}})
	s.Add("users", []*Column{
		{Name: "id", Code: sqltype.Integer, Position: 1, DatabaseType: "INTEGER"},
		{Name: "user_name", Code: sqltype.Varchar, Position: 2},
		{Name: "created_at", Code: sqltype.Timestamp, Position: 3},
	})
	require.Len(t, s.Tables, 2)
	assert.Equal(t, "orders", s.Tables[0].Name)

	path := filepath.Join(t.TempDir(), "schema.msgpack")
	require.NoError(t, WriteSnapshot(path, s))

	got, err := ReadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, SnapshotVersion, got.Version)
	assert.Equal(t, "sqlite3", got.Dialect)
	assert.True(t, s.Created.Equal(got.Created))

	t.Run("introspect", func(t *testing.T) {
		columns, err := got.Introspect(context.Background(), "USERS")
		require.NoError(t, err)
		require.Len(t, columns, 3)
		assert.Equal(t, "created_at", columns[2].Name)
		assert.Equal(t, sqltype.Timestamp, columns[2].Code)

		columns[0].Name = "changed"
		again, err := got.Introspect(context.Background(), "users")
		require.NoError(t, err)
		assert.Equal(t, "id", again[0].Name)
	})

	t.Run("missing table", func(t *testing.T) {
		_, err := got.Introspect(context.Background(), "payments")
		require.Error(t, err)
		assert.True(t, modelgen.IsSchemaError(err))
		assert.Contains(t, err.Error(), "payments")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadSnapshot(filepath.Join(t.TempDir(), "none.msgpack"))
		assert.True(t, modelgen.IsConfigError(err))
	})
}

func TestColumnString(t *testing.T) {
	assert.Equal(t, "id INTEGER (int4)", (&Column{Name: "id", Code: sqltype.Integer, DatabaseType: "int4"}).String())
	assert.Equal(t, "data BLOB", (&Column{Name: "data", Code: sqltype.Blob}).String())
}
