package golang

import (
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/modelgen/compiler/gen"
	"github.com/syssam/modelgen/compiler/load"
	"github.com/syssam/modelgen/schema/sqltype"
)

func usersUnit() *gen.Unit {
	entity := &load.Entity{Name: "User", Package: "github.com/acme/app/models"}
	return gen.Synthesize(entity, DefaultBase, []*load.Column{
		{Name: "id", Code: sqltype.Integer, Position: 1},
		{Name: "user_name", Code: sqltype.Varchar, Position: 2},
		{Name: "created_at", Code: sqltype.Timestamp, Position: 3},
		{Name: "price", Code: sqltype.Decimal, Position: 4},
		{Name: "payload", Code: sqltype.Blob, Position: 5},
	})
}

func TestRender(t *testing.T) {
	u := usersUnit()
	src, err := New().Render(u)
	require.NoError(t, err)

	code := string(src)
	assert.Contains(t, code, "// Code generated by modelgen. DO NOT EDIT.")
	assert.Contains(t, code, "package models")
	assert.Contains(t, code, `"github.com/syssam/modelgen/record"`)
	assert.Contains(t, code, "type ModelUser struct {\n\trecord.Model\n}")
	assert.Contains(t, code, "func (m *ModelUser) GetId() int {\n\treturn m.Model.GetInteger(\"id\")\n}")
	assert.Contains(t, code, "func (m *ModelUser) SetId(Id int) {\n\tm.Model.SetInteger(\"id\", Id)\n}")
	assert.Contains(t, code, "func (m *ModelUser) GetUserName() string {\n\treturn m.Model.GetString(\"user_name\")\n}")
	assert.Contains(t, code, "func (m *ModelUser) SetCreatedAt(CreatedAt time.Time) {\n\tm.Model.SetTimestamp(\"created_at\", CreatedAt)\n}")
	assert.Contains(t, code, "func (m *ModelUser) GetPrice() float64 {\n\treturn m.Model.GetDouble(\"price\")\n}")
	assert.Contains(t, code, "func (m *ModelUser) GetPayload() any {\n\treturn m.Model.Get(\"payload\")\n}")
	assert.Contains(t, code, "func (m *ModelUser) SetPayload(Payload any) {\n\tm.Model.Set(\"payload\", Payload)\n}")

	_, err = parser.ParseFile(token.NewFileSet(), "model_user.go", src, parser.AllErrors)
	require.NoError(t, err, "rendered source must parse")
}

func TestRenderDeterministic(t *testing.T) {
	first, err := New().Render(usersUnit())
	require.NoError(t, err)
	second, err := New().Render(usersUnit())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderNoColumns(t *testing.T) {
	u := gen.Synthesize(&load.Entity{Name: "Empty", Package: "github.com/acme/app/models"}, DefaultBase, nil)
	src, err := New().Render(u)
	require.NoError(t, err)
	assert.Contains(t, string(src), "type ModelEmpty struct")
	assert.NotContains(t, string(src), "func (m *ModelEmpty)")
}

func TestRenderInvalidColumns(t *testing.T) {
	entity := &load.Entity{Name: "User", Package: "github.com/acme/app/models"}
	t.Run("not an identifier", func(t *testing.T) {
		u := gen.Synthesize(entity, DefaultBase, []*load.Column{{Name: "user-name", Code: sqltype.Varchar}})
		_, err := New().Render(u)
		assert.ErrorContains(t, err, `column "user-name"`)
	})
	t.Run("colliding names", func(t *testing.T) {
		u := gen.Synthesize(entity, DefaultBase, []*load.Column{
			{Name: "user_id", Code: sqltype.Integer},
			{Name: "userId", Code: sqltype.Integer},
		})
		_, err := New().Render(u)
		assert.ErrorContains(t, err, "GetUserId")
	})
}

func TestTarget(t *testing.T) {
	tg := New()
	assert.Equal(t, "go", tg.Name())
	assert.Equal(t, DefaultBase, tg.Base())
	assert.Equal(t, "model_user.go", tg.FileName(usersUnit()))

	registered, err := gen.NewTarget(Name)
	require.NoError(t, err)
	assert.Equal(t, Name, registered.Name())

	custom := tg.WithBase(gen.BaseRef{Package: "github.com/acme/app/base", Name: "Entity", Read: "get", Write: "set"}).
		WithHeader("Code generated by make. DO NOT EDIT.")
	u := usersUnit()
	u.Base = custom.Base()
	src, err := custom.Render(u)
	require.NoError(t, err)
	assert.Contains(t, string(src), "// Code generated by make. DO NOT EDIT.")
	assert.Contains(t, string(src), "return m.Entity.GetInteger(\"id\")")
	assert.Equal(t, DefaultBase, tg.Base(), "WithBase must not modify the receiver")
}

func TestFormat(t *testing.T) {
	src, err := New().Render(usersUnit())
	require.NoError(t, err)
	formatted, err := New().Format("model_user.go", src)
	require.NoError(t, err)
	assert.Contains(t, string(formatted), "type ModelUser struct")
	assert.Contains(t, string(formatted), `"time"`)

	_, err = New().Format("broken.go", []byte("package models\nfunc {"))
	assert.Error(t, err)
}
