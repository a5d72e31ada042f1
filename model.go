package metagen

// Recognized linkage keywords, checked in the order the parser reads
// them (see Parser.parseFunction).
var linkageKeywords = map[string]bool{
	"static":   true,
	"inline":   true,
	"internal": true,
}

// Identifiers that must never be forward-declared as functions: C
// control-flow keywords that can be mistaken for a function name by
// a shallow parser, and process entry points whose signature the
// platform itself constrains.
var skippedFunctionNames = map[string]bool{
	"if":                     true,
	"do":                     true,
	"while":                  true,
	"switch":                 true,
	"main":                   true,
	"WinMain":                true,
	"_mainCRTStartup":        true,
	"_WinMainCRTStartup":     true,
	"__DllMainCRTStartup":    true,
}

// Variable is a parsed declarator: its type name, its own name, a
// pointer flag, and an array extent (1 for a scalar).
type Variable struct {
	Type       string
	Name       string
	IsPointer  bool
	ArrayCount int
}

// newVariable returns a Variable with the array_count invariant (>= 1)
// already satisfied.
func newVariable() Variable {
	return Variable{ArrayCount: 1}
}

// StructRecord is a struct declaration: its name and ordered members.
type StructRecord struct {
	Name    string
	Members []Variable
}

// EnumRecord is an enum declaration: its name, optional underlying
// type, and whether it used the `enum class`/`enum struct` form.
type EnumRecord struct {
	Name          string
	UnderlyingType string
	IsEnumClass   bool
}

// UnionRecord is a union declaration: just its name, since the parser
// never descends into a union body.
type UnionRecord struct {
	Name string
}

// FunctionRecord is a function declaration: optional linkage, return
// type, name, and ordered parameters.
type FunctionRecord struct {
	Linkage  string
	RetType  string
	Name     string
	Params   []Variable
}

// Bounds from SPEC_FULL.md section 9 / the original tool's fixed
// arrays. They're enforced at the point of insertion rather than
// left to silently overflow a backing array.
const (
	MaxDeclarations = 256
	MaxParams       = 32
	MaxInputFiles   = 16
)

// Model accumulates every declaration discovered across however many
// input files are fed into the Parser, in discovery order. Names are
// never uniqued or deduplicated.
type Model struct {
	Structs   []StructRecord
	Enums     []EnumRecord
	Unions    []UnionRecord
	Functions []FunctionRecord

	registry *ErrorRegistry
}

// NewModel returns an empty Model that reports over-capacity
// insertions to registry (which may be nil to discard them --
// callers that truly don't care can pass nil).
func NewModel(registry *ErrorRegistry) *Model {
	return &Model{registry: registry}
}

func (m *Model) report(kind ErrorKind, tag string) {
	if m.registry != nil {
		m.registry.Push(kind, tag)
	}
}

func (m *Model) addStruct(s StructRecord) {
	if len(m.Structs) >= MaxDeclarations {
		m.report(ErrorKindCapacityExceeded, "struct:"+s.Name)
		return
	}
	m.Structs = append(m.Structs, s)
}

func (m *Model) addEnum(e EnumRecord) {
	if len(m.Enums) >= MaxDeclarations {
		m.report(ErrorKindCapacityExceeded, "enum:"+e.Name)
		return
	}
	m.Enums = append(m.Enums, e)
}

func (m *Model) addUnion(u UnionRecord) {
	if len(m.Unions) >= MaxDeclarations {
		m.report(ErrorKindCapacityExceeded, "union:"+u.Name)
		return
	}
	m.Unions = append(m.Unions, u)
}

func (m *Model) addFunction(f FunctionRecord) {
	if len(m.Functions) >= MaxDeclarations {
		m.report(ErrorKindCapacityExceeded, "function:"+f.Name)
		return
	}
	if len(f.Params) > MaxParams {
		m.report(ErrorKindCapacityExceeded, "function-params:"+f.Name)
		return
	}
	m.Functions = append(m.Functions, f)
}
