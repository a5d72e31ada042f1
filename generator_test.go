package metagen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildModel(t *testing.T, src string) *Model {
	t.Helper()
	m := NewModel(nil)
	NewParser([]byte(src), m).ParseAll()
	return m
}

func newGenerator(m *Model) *Generator {
	return NewGenerator(m, NewArena(0, 0, 1<<16))
}

func TestGenerator_MetaTypesSeededWithPrimitivesThenDiscoveryOrder(t *testing.T) {
	m := buildModel(t, `
struct Inner { int a; };
struct Outer { Inner child; float f; };
`)
	g := newGenerator(m)
	types := g.metaTypes()

	assert.Equal(t, []string{"char", "short", "int", "long", "float", "double", "Inner", "Outer"}, types)
}

func TestGenerator_MetaTypesDoesNotDuplicateRepeatedMemberTypes(t *testing.T) {
	m := buildModel(t, `
struct Pair { int a; int b; };
`)
	g := newGenerator(m)
	types := g.metaTypes()

	count := 0
	for _, typ := range types {
		if typ == "int" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestGenerator_MetaTypesReleasesScratchScopeBetweenCalls(t *testing.T) {
	m := buildModel(t, `struct Point { float x; float y; };`)
	g := newGenerator(m)

	first := g.metaTypes()
	second := g.metaTypes()

	assert.Equal(t, first, second, "the scoped scratch list must be rebuildable after its scope ends")
}

func TestGenerator_HeaderContainsEnumAndForwardDeclarations(t *testing.T) {
	m := buildModel(t, `
struct Point { float x; float y; };
enum class Color : int { Red, Green };
union Raw { int i; };
int get_count(void);
`)
	g := newGenerator(m)
	header := g.GenerateHeader()

	assert.True(t, strings.Contains(header, "meta_type_Point,"))
	assert.True(t, strings.Contains(header, "struct Point;"))
	assert.True(t, strings.Contains(header, "enum struct Color : int;"))
	assert.True(t, strings.Contains(header, "union Raw;"))
	assert.True(t, strings.Contains(header, "int get_count(void);"))
	assert.True(t, strings.Contains(header, "extern MemberDefinition members_of_Point[];"))
	assert.True(t, strings.Contains(header, "static const size_t num_members_for_Point = 2;"))
	assert.True(t, strings.Contains(header, "#define GENERATED_H"))
}

func TestGenerator_HeaderContainsEnumToStringFromStringPrototypes(t *testing.T) {
	m := buildModel(t, `
enum class Color : int { Red, Green };
enum Plain { A, B };
`)
	g := newGenerator(m)
	header := g.GenerateHeader()

	assert.True(t, strings.Contains(header, "const char *ColorToString(Color value);"))
	assert.True(t, strings.Contains(header, "Color ColorFromString(const char *value);"))
	assert.True(t, strings.Contains(header, "const char *PlainToString(enum Plain value);"))
	assert.True(t, strings.Contains(header, "enum Plain PlainFromString(const char *value);"))
}

func TestGenerator_SourceRecreatesStructAndOffsetExpressions(t *testing.T) {
	m := buildModel(t, `
struct Point { float x; float y; };
`)
	g := newGenerator(m)
	source := g.GenerateSource()

	assert.True(t, strings.Contains(source, "struct Point {"))
	assert.True(t, strings.Contains(source, "float x;"))
	assert.True(t, strings.Contains(source, `(size_t)&((Point *)0)->x`))
	assert.True(t, strings.Contains(source, `{meta_type_float, "x", (size_t)&((Point *)0)->x, 0, 1},`))
}

func TestGenerator_SerializeStructRecursesIntoNestedStructs(t *testing.T) {
	m := buildModel(t, `
struct Inner { int a; };
struct Outer { Inner child; };
`)
	g := newGenerator(m)
	source := g.GenerateSource()

	assert.True(t, strings.Contains(source, "case meta_type_Inner: {"))
	assert.True(t, strings.Contains(source, "case meta_type_Outer: {"))
	assert.True(t, strings.Contains(source, "serialize_struct_(*(char *)member_ptr, Inner, indent + 4, buffer, buf_size - bytes_written, bytes_written);"))
}

func TestGenerator_FunctionMetaDataRecordsParams(t *testing.T) {
	m := buildModel(t, `
static void log_message(char *msg, int level);
`)
	g := newGenerator(m)
	source := g.GenerateSource()

	assert.True(t, strings.Contains(source, "FunctionMetaData function_data_log_message = {"))
	assert.True(t, strings.Contains(source, `"static",`))
	assert.True(t, strings.Contains(source, `{"char", "msg"},`))
	assert.True(t, strings.Contains(source, `{"int", "level"}`))
}

func TestGenerator_IsIdempotent(t *testing.T) {
	m := buildModel(t, `
struct Point { float x; float y; };
int get_count(void);
`)
	g := newGenerator(m)
	assert.Equal(t, g.GenerateHeader(), g.GenerateHeader())
	assert.Equal(t, g.GenerateSource(), g.GenerateSource())
}

func TestRenderParamList_VoidWhenEmpty(t *testing.T) {
	assert.Equal(t, "void", renderParamList(nil))
}

func TestRenderParamList_PointerAndArray(t *testing.T) {
	params := []Variable{
		{Type: "char", Name: "buf", IsPointer: true, ArrayCount: 1},
		{Type: "int", Name: "sizes", ArrayCount: 4},
	}
	assert.Equal(t, "char *buf, int sizes[]", renderParamList(params))
}
