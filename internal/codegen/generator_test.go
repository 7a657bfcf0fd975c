package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salad-rustgen/internal/diagnostic"
	"salad-rustgen/internal/module"
	"salad-rustgen/internal/rust"
	"salad-rustgen/internal/schema"
)

const testBaseURI = "https://example.com/"

func testConfig() Config {
	config := DefaultConfig()
	config.Package = "pkg"
	config.BaseURI = testBaseURI

	return config
}

func generate(t *testing.T, config Config, schemas ...schema.Named) *Result {
	t.Helper()

	gen, err := NewGenerator(config)
	require.NoError(t, err)

	result, err := gen.Generate(schemas)
	require.NoError(t, err)

	return result
}

func prim(name string) *schema.Primitive {
	return &schema.Primitive{Type: name}
}

func nullable(s schema.Schema) *schema.Union {
	return &schema.Union{Schemas: []schema.Schema{prim(schema.TypeNull), s}}
}

func record(name string, fields ...schema.Field) *schema.Record {
	return &schema.Record{Name: name, Namespace: namespaceOf(name), Fields: fields}
}

func namespaceOf(name string) string {
	return name[:strings.LastIndex(name, ".")]
}

func mustItem(t *testing.T, mod *module.Module, ident rust.Ident) rust.Item {
	t.Helper()

	item, _, ok := mod.Item(ident)
	require.True(t, ok, "item %s not found in %s", ident, mod.PathFromRoot())

	return item
}

func fieldTypes(t *testing.T, item rust.Item) map[string]string {
	t.Helper()

	st, ok := item.(rust.Struct)
	require.True(t, ok, "expected struct, got %T", item)

	fields, ok := st.Fields.(rust.NamedFields)
	require.True(t, ok)

	types := make(map[string]string, len(fields))
	for _, f := range fields {
		types[f.Ident.String()] = f.Type.String()
	}

	return types
}

func TestGenerate_RecordWithOptionalField(t *testing.T) {
	foo := record("pkg.Foo",
		schema.Field{Name: "bar", Type: prim(schema.TypeString)},
		schema.Field{Name: "baz", Type: nullable(prim(schema.TypeInt))},
	)

	result := generate(t, testConfig(), foo)

	assert.Equal(t, map[string]string{
		"bar": "crate::core::StrValue",
		"baz": "std::option::Option<crate::core::Int>",
	}, fieldTypes(t, mustItem(t, result.Root, "Foo")))

	files, err := result.Files()
	require.NoError(t, err)
	require.Len(t, files, 1)

	assert.Equal(t, "src/lib.rs", files[0].Filename)
	assert.Equal(t, `// Code generated by salad-rustgen. DO NOT EDIT.

pub mod core;

#[salad(root, base_uri = "https://example.com/")]
#[derive(Clone, Debug)]
pub enum DocumentRoot {}

#[derive(Clone, Debug)]
pub struct Foo {
    pub bar: crate::core::StrValue,
    pub baz: std::option::Option<crate::core::Int>,
}
`, string(files[0].Content))
}

func TestGenerate_Enum(t *testing.T) {
	kind := &schema.Enum{Name: "pkg.Kind", Namespace: "pkg", Symbols: []string{"a", "b"}}

	result := generate(t, testConfig(), kind)

	assert.Equal(t, `#[derive(Clone, Copy, Debug, PartialEq, Eq)]
pub enum Kind {
    /// Matches constant value `+"`a`"+`.
    #[salad(as_str = "a")]
    A,
    /// Matches constant value `+"`b`"+`.
    #[salad(as_str = "b")]
    B,
}
`, mustItem(t, result.Root, "Kind").Render(0))
}

func TestGenerate_SingleSymbolEnum(t *testing.T) {
	kind := &schema.Enum{
		Name:      "pkg.CommandLineTool_class",
		Namespace: "pkg",
		Symbols:   []string{"CommandLineTool"},
		Props:     schema.Props{Doc: []string{"The class."}},
	}

	result := generate(t, testConfig(), kind)

	assert.Equal(t, `/// The class.
///
/// Matches constant value `+"`CommandLineTool`"+`.
#[salad(as_str = "CommandLineTool")]
#[derive(Clone, Copy, Debug, PartialEq, Eq)]
pub struct CommandLineToolClass;
`, mustItem(t, result.Root, "CommandLineToolClass").Render(0))
}

func TestGenerate_EnumDroppedVariant(t *testing.T) {
	kind := &schema.Enum{Name: "pkg.Kind", Namespace: "pkg", Symbols: []string{"a_b", "a-b", "c"}}

	result := generate(t, testConfig(), kind)

	enum, ok := mustItem(t, result.Root, "Kind").(rust.Enum)
	require.True(t, ok)
	require.Len(t, enum.Variants, 2)
	assert.Equal(t, rust.Ident("AB"), enum.Variants[0].Ident)
	assert.Equal(t, rust.Ident("C"), enum.Variants[1].Ident)
	assert.True(t, result.Diagnostics.HasWarning(diagnostic.CodeDroppedVariant))
}

func TestGenerate_SynthesizedUnion(t *testing.T) {
	foo := record("pkg.Foo")
	bar := record("pkg.Bar")
	parent := record("pkg.Parent",
		schema.Field{Name: "field", Type: &schema.Union{Schemas: []schema.Schema{foo, bar}}},
		schema.Field{Name: "other", Type: &schema.Union{Schemas: []schema.Schema{prim(schema.TypeNull), foo, bar}}},
	)

	result := generate(t, testConfig(), parent, foo, bar)

	assert.Equal(t, map[string]string{
		"field": "crate::Parent_field",
		"other": "std::option::Option<crate::Parent_other>",
	}, fieldTypes(t, mustItem(t, result.Root, "Parent")))

	assert.Equal(t, `#[derive(Clone, Debug)]
pub enum Parent_field {
    Foo(crate::Foo),
    Bar(crate::Bar),
}
`, mustItem(t, result.Root, "Parent_field").Render(0))

	mustItem(t, result.Root, "Parent_other")
	assert.Empty(t, result.Diagnostics.Warnings)
}

func TestGenerate_NestedArrayUnion(t *testing.T) {
	foo := record("pkg.Foo")
	parent := record("pkg.Parent",
		schema.Field{Name: "steps", Type: &schema.Array{
			Items: &schema.Union{Schemas: []schema.Schema{foo, prim(schema.TypeString)}},
		}},
	)

	result := generate(t, testConfig(), parent, foo)

	assert.Equal(t, map[string]string{
		"steps": "crate::core::List<crate::Parent_steps_item>",
	}, fieldTypes(t, mustItem(t, result.Root, "Parent")))

	enum, ok := mustItem(t, result.Root, "Parent_steps_item").(rust.Enum)
	require.True(t, ok)
	require.Len(t, enum.Variants, 2)
	assert.Equal(t, rust.Ident("Foo"), enum.Variants[0].Ident)
	assert.Equal(t, rust.Ident("String"), enum.Variants[1].Ident)
}

func TestGenerate_DistinctUnionsAtOnePosition(t *testing.T) {
	a, b, c, d := record("pkg.A"), record("pkg.B"), record("pkg.C"), record("pkg.D")
	parent := record("pkg.Parent",
		schema.Field{Name: "f", Type: &schema.Union{Schemas: []schema.Schema{
			&schema.Array{Items: &schema.Union{Schemas: []schema.Schema{a, b}}},
			&schema.Array{Items: &schema.Union{Schemas: []schema.Schema{c, d}}},
		}}},
	)

	result := generate(t, testConfig(), parent, a, b, c, d)

	assert.Equal(t, `#[derive(Clone, Debug)]
pub enum Parent_f {
    Parent_f_item_itemList(crate::core::List<crate::Parent_f_item_item>),
    Parent_f_item_item2List(crate::core::List<crate::Parent_f_item_item2>),
}
`, mustItem(t, result.Root, "Parent_f").Render(0))

	assert.Equal(t, `#[derive(Clone, Debug)]
pub enum Parent_f_item_item {
    A(crate::A),
    B(crate::B),
}
`, mustItem(t, result.Root, "Parent_f_item_item").Render(0))

	assert.Equal(t, `#[derive(Clone, Debug)]
pub enum Parent_f_item_item2 {
    C(crate::C),
    D(crate::D),
}
`, mustItem(t, result.Root, "Parent_f_item_item2").Render(0))

	assert.Empty(t, result.Diagnostics.Warnings)
}

func TestGenerate_ArrayOfNullable(t *testing.T) {
	parent := record("pkg.Parent",
		schema.Field{Name: "values", Type: &schema.Array{Items: nullable(prim(schema.TypeInt))}},
	)

	result := generate(t, testConfig(), parent)

	assert.Equal(t, map[string]string{
		"values": "crate::core::List<std::option::Option<crate::core::Int>>",
	}, fieldTypes(t, mustItem(t, result.Root, "Parent")))
}

func TestGenerate_SameNameInDistinctNamespaces(t *testing.T) {
	a := record("pkg.a.Status")
	b := record("pkg.b.Status")

	result := generate(t, testConfig(), a, b)

	modA, ok := result.Root.Child("a")
	require.True(t, ok)
	modB, ok := result.Root.Child("b")
	require.True(t, ok)

	mustItem(t, modA, "Status")
	mustItem(t, modB, "Status")

	files, err := result.Files()
	require.NoError(t, err)

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Filename
	}

	assert.Equal(t, []string{"src/lib.rs", "src/a.rs", "src/b.rs"}, names)
}

func TestGenerate_NamespaceNamedLikeRootModule(t *testing.T) {
	thing := record("pkg.core.Thing")
	holder := record("pkg.Holder", schema.Field{Name: "thing", Type: &schema.Ref{Name: "pkg.core.Thing"}})

	result := generate(t, testConfig(), holder, thing)

	assert.Equal(t, map[string]string{
		"thing": "crate::core_::Thing",
	}, fieldTypes(t, mustItem(t, result.Root, "Holder")))

	mod, ok := result.Root.Child("core_")
	require.True(t, ok)
	mustItem(t, mod, "Thing")

	_, ok = result.Root.Child("core")
	assert.False(t, ok)

	require.Len(t, result.Diagnostics.Warnings, 1)
	assert.Equal(t, diagnostic.CodeRenamedModule, result.Diagnostics.Warnings[0].Code)
	assert.Equal(t, "pkg.core", result.Diagnostics.Warnings[0].Schema)

	files, err := result.Files()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "src/core_.rs", files[1].Filename)
	assert.Contains(t, string(files[0].Content), "pub mod core;\npub mod core_;\n")
}

func TestGenerate_NamedUnionVariants(t *testing.T) {
	a := record("pkg.a.Status")
	b := record("pkg.b.Status")
	either := &schema.NamedUnion{
		Name:      "pkg.Either",
		Namespace: "pkg",
		Schemas:   []schema.Schema{prim(schema.TypeNull), a, b, &schema.Array{Items: a}},
	}

	result := generate(t, testConfig(), either, a, b)

	assert.Equal(t, `#[derive(Clone, Debug)]
pub enum Either {
    Status(crate::a::Status),
    Status2(crate::b::Status),
    StatusList(crate::core::List<crate::a::Status>),
}
`, mustItem(t, result.Root, "Either").Render(0))
	assert.True(t, result.Diagnostics.HasWarning(diagnostic.CodeRenamedVariant))
}

func TestGenerate_DocumentRoot(t *testing.T) {
	tool := record("pkg.Tool")
	tool.Props.DocumentRoot = true
	workflow := record("pkg.sub.Workflow")
	workflow.Props.DocumentRoot = true

	result := generate(t, testConfig(), tool, workflow)

	require.Len(t, result.RootTypes, 2)
	assert.Equal(t, "crate::Tool", result.RootTypes[0].String())
	assert.Equal(t, "crate::sub::Workflow", result.RootTypes[1].String())

	assert.Equal(t, `#[salad(root, base_uri = "https://example.com/")]
#[derive(Clone, Debug)]
pub enum DocumentRoot {
    Tool(crate::Tool),
    Workflow(crate::sub::Workflow),
}
`, mustItem(t, result.Root, DocumentRootIdent).Render(0))

	assert.Equal(t, `#[salad(root, base_uri = "https://example.com/")]
#[derive(Clone, Debug)]
pub struct Tool;
`, mustItem(t, result.Root, "Tool").Render(0))
}

func TestGenerate_FieldAttributes(t *testing.T) {
	parent := record("pkg.Parent",
		schema.Field{Name: "id", Type: prim(schema.TypeString), Props: schema.Props{
			JSONLDPredicate: schema.JSONLDPredicate{Kind: schema.PredicateID},
		}},
		schema.Field{Name: "inputs", Type: &schema.Array{Items: prim(schema.TypeString)}, Props: schema.Props{
			Default: []any{},
			Doc:     []string{"Inputs."},
			JSONLDPredicate: schema.JSONLDPredicate{
				Kind:         schema.PredicateMap,
				MapSubject:   "id",
				MapPredicate: "type",
				Subscope:     "run",
			},
		}},
		schema.Field{Name: "type", Type: prim(schema.TypeBoolean), Props: schema.Props{Default: false}},
	)

	result := generate(t, testConfig(), parent)

	assert.Equal(t, `#[derive(Clone, Debug)]
pub struct Parent {
    #[salad(identifier)]
    pub id: crate::core::StrValue,
    /// Inputs.
    #[salad(default = [], map_key = "id", map_predicate = "type")]
    #[salad(subscope = "run")]
    pub inputs: crate::core::List<crate::core::StrValue>,
    #[salad(default = false)]
    pub r#type: crate::core::Bool,
}
`, mustItem(t, result.Root, "Parent").Render(0))
}

func TestGenerate_UnsupportedDefault(t *testing.T) {
	parent := record("pkg.Parent",
		schema.Field{Name: "opts", Type: prim(schema.TypeString), Props: schema.Props{
			Default: map[string]any{"a": 1},
		}},
	)

	gen, err := NewGenerator(testConfig())
	require.NoError(t, err)

	_, err = gen.Generate([]schema.Named{parent})
	require.ErrorIs(t, err, rust.ErrUnsupportedLiteral)
}

func TestGenerate_UnknownPrimitive(t *testing.T) {
	tests := []struct {
		name string
		ty   schema.Schema
	}{
		{name: "bare null", ty: prim(schema.TypeNull)},
		{name: "null only union", ty: &schema.Union{Schemas: []schema.Schema{prim(schema.TypeNull)}}},
		{name: "unmapped primitive", ty: prim("bytes")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent := record("pkg.Parent", schema.Field{Name: "value", Type: tt.ty})

			gen, err := NewGenerator(testConfig())
			require.NoError(t, err)

			_, err = gen.Generate([]schema.Named{parent})
			require.ErrorIs(t, err, ErrUnknownPrimitive)
		})
	}
}

func TestGenerate_UnresolvedType(t *testing.T) {
	status := record("pkg.Status")
	parent := record("pkg.Parent", schema.Field{Name: "status", Type: &schema.Ref{Name: "pkg.Statu"}})

	gen, err := NewGenerator(testConfig())
	require.NoError(t, err)

	_, err = gen.Generate([]schema.Named{parent, status})
	require.ErrorIs(t, err, ErrUnresolvedType)
	assert.Contains(t, err.Error(), "did you mean pkg.Status?")
}

func TestGenerate_ExternalNames(t *testing.T) {
	config := testConfig()
	config.Package = ""

	documented := record("org.w3id.cwl.salad.Documented")
	parent := record("pkg.Parent", schema.Field{Name: "any", Type: &schema.Ref{Name: "org.w3id.cwl.salad.Any"}})

	result := generate(t, config, documented, parent)

	parentMod, ok := result.Root.Child("pkg")
	require.True(t, ok)

	assert.Equal(t, map[string]string{"any": "crate::core::Any"},
		fieldTypes(t, mustItem(t, parentMod, "Parent")))
	assert.Len(t, result.Diagnostics.Infos, 1)
	assert.Equal(t, diagnostic.CodeSkippedSchema, result.Diagnostics.Infos[0].Code)

	_, ok = result.Root.Child("org")
	assert.False(t, ok)

	ref := record("pkg.Other", schema.Field{Name: "doc", Type: &schema.Ref{Name: "org.w3id.cwl.salad.Documented"}})

	gen, err := NewGenerator(config)
	require.NoError(t, err)

	_, err = gen.Generate([]schema.Named{documented, ref})
	require.ErrorIs(t, err, ErrUnresolvedType)
}

func TestGenerate_OutsidePackageIsExternal(t *testing.T) {
	parent := record("pkg.Parent", schema.Field{Name: "other", Type: &schema.Ref{Name: "elsewhere.Thing"}})

	gen, err := NewGenerator(testConfig())
	require.NoError(t, err)

	_, err = gen.Generate([]schema.Named{parent, record("elsewhere.Thing")})
	require.ErrorIs(t, err, ErrUnresolvedType)
}

func TestGenerate_PresetOverride(t *testing.T) {
	config := testConfig()
	config.Presets = map[string]string{"pkg.Expression": "crate::core::Expr<'static>"}

	expression := &schema.Enum{Name: "pkg.Expression", Namespace: "pkg", Symbols: []string{"a", "b"}}
	parent := record("pkg.Parent", schema.Field{Name: "expr", Type: expression})

	result := generate(t, config, expression, parent)

	assert.Equal(t, map[string]string{"expr": "crate::core::Expr<'static>"},
		fieldTypes(t, mustItem(t, result.Root, "Parent")))

	_, _, ok := result.Root.Item("Expression")
	assert.False(t, ok)
}

func TestNewGenerator_MalformedPreset(t *testing.T) {
	config := testConfig()
	config.Presets = map[string]string{"pkg.Bad": "crate::core::"}

	_, err := NewGenerator(config)
	require.ErrorIs(t, err, rust.ErrMalformedPath)
	assert.Contains(t, err.Error(), "pkg.Bad")
}

func TestGenerate_DuplicateSchema(t *testing.T) {
	foo := record("pkg.Foo")

	result := generate(t, testConfig(), foo, foo)

	assert.True(t, result.Diagnostics.HasWarning(diagnostic.CodeDuplicateSchema))
	mustItem(t, result.Root, "Foo")
}

func TestGenerate_DuplicateType(t *testing.T) {
	gen, err := NewGenerator(testConfig())
	require.NoError(t, err)

	_, err = gen.Generate([]schema.Named{record("pkg.foo"), record("pkg.Foo")})
	require.ErrorIs(t, err, module.ErrDuplicateType)
	assert.Contains(t, err.Error(), "pkg.foo and pkg.Foo")
}

func TestGenerate_AbstractSkipped(t *testing.T) {
	base := record("pkg.Base")
	base.Props.Abstract = true

	result := generate(t, testConfig(), base)

	_, _, ok := result.Root.Item("Base")
	assert.False(t, ok)
	assert.Len(t, result.Diagnostics.Infos, 1)
}

func TestResult_FilesWithMacroWrapper(t *testing.T) {
	config := testConfig()
	config.MacroWrapper = "salad_types"
	config.RootModules = nil

	result := generate(t, config, record("pkg.Foo", schema.Field{Name: "bar", Type: prim(schema.TypeLong)}))

	files, err := result.Files()
	require.NoError(t, err)
	require.Len(t, files, 1)

	assert.Contains(t, string(files[0].Content), `salad_types! {
    #[derive(Clone, Debug)]
    pub struct Foo {
        pub bar: crate::core::Long,
    }
}
`)
	assert.NotContains(t, string(files[0].Content), "pub mod")
}

func TestResolveUnion_SynthesizesOnce(t *testing.T) {
	gen, err := NewGenerator(testConfig())
	require.NoError(t, err)

	c := gen.newCompilation()

	foo := record("pkg.Foo")
	bar := record("pkg.Bar")
	parent := record("pkg.Parent")
	c.reg.enqueue([]schema.Named{foo, bar, parent})

	union := &schema.Union{Schemas: []schema.Schema{foo, bar}}

	first, err := c.resolve(union, parent, "field")
	require.NoError(t, err)

	second, err := c.resolve(union, parent, "field")
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.Equal(t, "crate::Parent_field", first.String())
	assert.Len(t, c.reg.pending, 4)
}

func TestResolveUnion_SingleMemberIsTransparent(t *testing.T) {
	gen, err := NewGenerator(testConfig())
	require.NoError(t, err)

	c := gen.newCompilation()

	path, err := c.resolve(&schema.Union{Schemas: []schema.Schema{prim(schema.TypeDouble)}}, record("pkg.P"), "x")
	require.NoError(t, err)
	assert.Equal(t, "crate::core::Double", path.String())

	path, err = c.resolve(nullable(prim(schema.TypeFloat)), record("pkg.P"), "x")
	require.NoError(t, err)
	assert.Equal(t, "std::option::Option<crate::core::Float>", path.String())
	assert.Empty(t, c.reg.pending)
}
