package schemagen

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/schemagen/examples/models"
	"github.com/reoring/schemagen/jsonschema"
)

func prop(t *testing.T, s *jsonschema.Schema, name string) *jsonschema.Schema {
	t.Helper()
	p, ok := s.Property(name)
	require.True(t, ok, "missing property %q", name)
	return p
}

func TestBuild_PersonInlinesFirstAndReferencesRepeat(t *testing.T) {
	s, err := Build(reflect.TypeOf(models.Person{}))
	require.NoError(t, err)

	assert.Equal(t, jsonschema.Draft04, s.Schema)
	assert.Equal(t, "Person", s.ID)
	assert.Equal(t, "object", s.Type)
	assert.Equal(t, []string{"name", "email", "born", "home", "work", "favorite", "tags"}, s.PropertyNames())
	assert.Equal(t, []string{"name"}, s.Required)

	home := prop(t, s, "home")
	assert.Equal(t, "Address", home.ID)
	assert.Equal(t, []string{"street", "city", "postcode"}, home.PropertyNames())
	assert.Equal(t, []string{"city"}, home.Required)
	assert.Empty(t, home.Schema)

	work := prop(t, s, "work")
	assert.Equal(t, &jsonschema.Schema{Ref: "Address"}, work)

	assert.Equal(t, "Primary contact address.", prop(t, s, "email").Description)
	born := prop(t, s, "born")
	assert.Equal(t, "string", born.Type)
	assert.Equal(t, "date-time", born.Format)

	fav := prop(t, s, "favorite")
	assert.Equal(t, "string", fav.Type)
	assert.Equal(t, []any{models.Red, models.Green, models.Blue}, fav.Enum)

	tags := prop(t, s, "tags")
	assert.Equal(t, "array", tags.Type)
	assert.Equal(t, "string", tags.Items.Type)
}

func TestBuild_SelfReference(t *testing.T) {
	s, err := Build(reflect.TypeOf(models.Node{}))
	require.NoError(t, err)

	assert.Equal(t, "Node", s.ID)
	children := prop(t, s, "children")
	assert.Equal(t, "array", children.Type)
	assert.Equal(t, "Node", children.Items.Ref)
}

func TestBuild_Variants(t *testing.T) {
	reg := NewRegistry().RegisterVariants((*models.Shape)(nil), models.Circle{}, models.Square{})
	s, err := Build(reflect.TypeOf(models.Drawing{}), WithHints(reg))
	require.NoError(t, err)

	shapes := prop(t, s, "shapes")
	require.Len(t, shapes.Items.OneOf, 2)
	assert.Equal(t, "Circle", shapes.Items.OneOf[0].ID)
	assert.Equal(t, "Square", shapes.Items.OneOf[1].ID)

	// without hints the interface is unconstrained
	s, err = Build(reflect.TypeOf(models.Drawing{}))
	require.NoError(t, err)
	assert.Equal(t, &jsonschema.Schema{}, prop(t, s, "shapes").Items)
}

type tree map[string]tree

func TestBuild_RecursiveContainer(t *testing.T) {
	s, err := Build(reflect.TypeOf(tree{}))
	require.NoError(t, err)

	assert.Equal(t, "tree", s.ID)
	assert.Equal(t, "object", s.Type)
	assert.Equal(t, "tree", s.AdditionalProperties.Ref)
}

type account struct {
	ID       string `json:"id"`
	Secret   string `json:"-"`
	Internal string `jsonschema:"-"`
	Owner    string `json:"owner" jsonschema:"name=holder,required"`
	hidden   string
}

func TestBuild_IgnoreAndRename(t *testing.T) {
	_ = account{}.hidden
	s, err := Build(reflect.TypeOf(account{}))
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "holder"}, s.PropertyNames())
	assert.Equal(t, []string{"holder"}, s.Required)
}

func TestBuild_Metadata(t *testing.T) {
	yes := true
	md := &Metadata{Types: map[string]TypeMetadata{
		QualifiedName(reflect.TypeOf(account{})): {
			Description: "A bank account.",
			Members: map[string]MemberPolicy{
				"ID":    {Name: "number", Required: &yes, Description: "Account number."},
				"Owner": {Ignore: true},
			},
		},
	}}
	s, err := Build(reflect.TypeOf(account{}), WithMetadata(md))
	require.NoError(t, err)

	assert.Equal(t, "A bank account.", s.Description)
	assert.Equal(t, []string{"number"}, s.PropertyNames())
	assert.Equal(t, []string{"number"}, s.Required)
	assert.Equal(t, "Account number.", prop(t, s, "number").Description)
}

func TestBuild_Comments(t *testing.T) {
	comments := map[string]string{
		"github.com/reoring/schemagen/examples/models.Address":      "Where mail goes.",
		"github.com/reoring/schemagen/examples/models.Address.City": "Town name.",
	}
	s, err := Build(reflect.TypeOf(models.Address{}), WithComments(comments))
	require.NoError(t, err)

	assert.Equal(t, "Where mail goes.", s.Description)
	assert.Equal(t, "Town name.", prop(t, s, "city").Description)
}

func TestBuild_FreshStatePerCall(t *testing.T) {
	typ := reflect.TypeOf(models.Person{})
	a, err := BuildText(typ)
	require.NoError(t, err)
	b, err := BuildText(typ)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.Contains(t, string(a), `"id": "Address"`)
}

type pipe struct {
	C chan int `json:"c"`
}

func TestBuild_Unsupported(t *testing.T) {
	_, err := Build(reflect.TypeOf(pipe{}))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = Build(nil)
	assert.Error(t, err)
}

type point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func TestBuildText_Golden(t *testing.T) {
	out, err := BuildText(reflect.TypeOf(point{}))
	require.NoError(t, err)

	want := `{
  "$schema": "http://json-schema.org/draft-04/schema#",
  "id": "point",
  "type": "object",
  "properties": {
    "x": {
      "type": "integer"
    },
    "y": {
      "type": "integer"
    }
  }
}
`
	assert.Equal(t, want, string(out))
}

type cycleA struct {
	B *cycleB `json:"b"`
}

type cycleB struct {
	A  *cycleA `json:"a"`
	A2 cycleA  `json:"a2"`
}

func TestBuild_MutualReference(t *testing.T) {
	s, err := Build(reflect.TypeOf(cycleA{}))
	require.NoError(t, err)

	assert.Equal(t, "cycleA", s.ID)
	b := prop(t, s, "b")
	assert.Equal(t, "cycleB", b.ID)
	assert.Equal(t, jsonschema.Ref("cycleA"), prop(t, b, "a"))
	assert.Equal(t, jsonschema.Ref("cycleA"), prop(t, b, "a2"))

	again, err := BuildText(reflect.TypeOf(cycleA{}))
	require.NoError(t, err)
	first, err := jsonschema.Render(s)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(again))
}

type linked struct {
	Value int     `json:"value"`
	Next  *linked `json:"next"`
}

func TestBuild_DirectSelfPointer(t *testing.T) {
	s, err := Build(reflect.TypeOf(linked{}))
	require.NoError(t, err)

	assert.Equal(t, "linked", s.ID)
	assert.Equal(t, []string{"value", "next"}, s.PropertyNames())
	assert.Equal(t, "integer", prop(t, s, "value").Type)
	assert.Equal(t, jsonschema.Ref("linked"), prop(t, s, "next"))
}

type kid struct {
	Name string `json:"name"`
}

type kids []kid

func TestBuild_NamedSliceOfStructs(t *testing.T) {
	s, err := Build(reflect.TypeOf(kids{}))
	require.NoError(t, err)

	assert.Equal(t, "kids", s.ID)
	assert.Equal(t, "array", s.Type)
	assert.Equal(t, "kid", s.Items.ID)
}

type selfPointer *selfPointer

func TestBuild_SelfPointerTypeTerminates(t *testing.T) {
	typ := reflect.TypeOf(selfPointer(nil))
	_, err := Build(typ)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	reg := NewRegistry()
	require.NoError(t, reg.Register(typ))
	got, err := reg.LoadType(QualifiedName(typ))
	require.NoError(t, err)
	assert.Equal(t, typ, got)
}

type escaped struct {
	Range string `json:"range" description:"min < max & max > 0"`
}

func TestBuildText_KeepsHTMLCharacters(t *testing.T) {
	out, err := BuildText(reflect.TypeOf(escaped{}))
	require.NoError(t, err)
	assert.Contains(t, string(out), `"description": "min < max & max > 0"`)
	assert.NotContains(t, string(out), `\u00`)
}
