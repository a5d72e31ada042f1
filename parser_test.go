package metagen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func parseOne(t *testing.T, src string) *Model {
	t.Helper()
	m := NewModel(nil)
	NewParser([]byte(src), m).ParseAll()
	return m
}

func TestParser_StructWithScalarAndArrayMembers(t *testing.T) {
	m := parseOne(t, `
struct Point {
    float x;
    float y;
    int tags[5];
    char *name;
};
`)
	assert.Len(t, m.Structs, 1)
	s := m.Structs[0]
	assert.Equal(t, "Point", s.Name)
	assert.Len(t, s.Members, 4)

	assert.Equal(t, Variable{Type: "float", Name: "x", ArrayCount: 1}, s.Members[0])
	assert.Equal(t, Variable{Type: "float", Name: "y", ArrayCount: 1}, s.Members[1])
	assert.Equal(t, Variable{Type: "int", Name: "tags", ArrayCount: 5}, s.Members[2])
	assert.Equal(t, Variable{Type: "char", Name: "name", IsPointer: true, ArrayCount: 1}, s.Members[3])
}

func TestParser_StructSkipsMethodsAndDestructor(t *testing.T) {
	m := parseOne(t, `
struct Widget {
    int id;
    inline int helper() { return 1; }
    ~Widget();
};
`)
	assert.Len(t, m.Structs, 1)
	assert.Len(t, m.Structs[0].Members, 1)
	assert.Equal(t, "id", m.Structs[0].Members[0].Name)
}

func TestParser_StructSkipsPreprocessorDirectiveLines(t *testing.T) {
	m := parseOne(t, `
struct Foo {
#pragma pack(push, 1)
    int a;
};
`)
	assert.Len(t, m.Structs, 1)
	assert.Len(t, m.Structs[0].Members, 1)
}

func TestParser_Union(t *testing.T) {
	m := parseOne(t, `union Raw { int i; float f; };`)
	assert.Len(t, m.Unions, 1)
	assert.Equal(t, "Raw", m.Unions[0].Name)
}

func TestParser_PlainEnum(t *testing.T) {
	m := parseOne(t, `enum Color { Red, Green, Blue };`)
	assert.Len(t, m.Enums, 1)
	assert.Equal(t, "Color", m.Enums[0].Name)
	assert.False(t, m.Enums[0].IsEnumClass)
	assert.Equal(t, "", m.Enums[0].UnderlyingType)
}

func TestParser_EnumClassWithUnderlyingType(t *testing.T) {
	m := parseOne(t, `enum class Direction : int { North, South };`)
	assert.Len(t, m.Enums, 1)
	assert.Equal(t, "Direction", m.Enums[0].Name)
	assert.True(t, m.Enums[0].IsEnumClass)
	assert.Equal(t, "int", m.Enums[0].UnderlyingType)
}

func TestParser_FunctionWithVoidParams(t *testing.T) {
	m := parseOne(t, `int get_count(void);`)
	assert.Len(t, m.Functions, 1)
	assert.Equal(t, "get_count", m.Functions[0].Name)
	assert.Empty(t, m.Functions[0].Params)
}

func TestParser_FunctionWithVoidAsAParamName(t *testing.T) {
	m := parseOne(t, `int consume(int void_count);`)
	assert.Len(t, m.Functions, 1)
	assert.Len(t, m.Functions[0].Params, 1)
	assert.Equal(t, "void_count", m.Functions[0].Params[0].Name)
}

func TestParser_FunctionWithLinkageAndPointerParam(t *testing.T) {
	m := parseOne(t, `static void log_message(char *msg, int level);`)
	assert.Len(t, m.Functions, 1)
	f := m.Functions[0]
	assert.Equal(t, "static", f.Linkage)
	assert.Equal(t, "void", f.RetType)
	assert.Equal(t, "log_message", f.Name)
	assert.Len(t, f.Params, 2)
	assert.Equal(t, Variable{Type: "char", Name: "msg", IsPointer: true, ArrayCount: 1}, f.Params[0])
	assert.Equal(t, Variable{Type: "int", Name: "level", ArrayCount: 1}, f.Params[1])
}

func TestParser_SkippedFunctionNamesAreIgnored(t *testing.T) {
	m := parseOne(t, `int main(void);`)
	assert.Empty(t, m.Functions)
}

func TestParser_IfZeroBlockInsideFileIsInvisible(t *testing.T) {
	m := parseOne(t, `
#if 0
struct Hidden { int x; };
#endif
struct Visible { int y; };
`)
	assert.Len(t, m.Structs, 1)
	assert.Equal(t, "Visible", m.Structs[0].Name)
}

func TestParseFiles_SharesModelAcrossFiles(t *testing.T) {
	m := NewModel(nil)
	ParseFiles([][]byte{
		[]byte(`struct A { int x; };`),
		[]byte(`struct B { int y; };`),
	}, m)

	assert.Len(t, m.Structs, 2)
	assert.Equal(t, "A", m.Structs[0].Name)
	assert.Equal(t, "B", m.Structs[1].Name)
}
