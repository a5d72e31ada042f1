package metagen

import (
	"bytes"
	"fmt"
)

const generatedHeaderGuard = "GENERATED_H"
const generatedSourceGuard = "GENERATED_CPP"

var primitiveTypes = []string{"char", "short", "int", "long", "float", "double"}

// Generator turns a Model into the header and source texts described
// in SPEC_FULL.md section 4.6. Both GenerateHeader and GenerateSource
// are pure functions of the Model: calling either of them twice on
// an unchanged Model produces byte-identical output (the idempotence
// property from section 8), and the order declarations were
// accumulated in is the only thing that determines output order (the
// stability property).
type Generator struct {
	model *Model
	arena *Arena
}

// NewGenerator wraps model for generation. arena backs the scoped
// scratch space metaTypes uses to build the distinct MetaType list;
// each scope it opens there is released before metaTypes returns.
func NewGenerator(model *Model, arena *Arena) *Generator {
	return &Generator{model: model, arena: arena}
}

// maxTypeNameLen bounds one entry of the scratch list metaTypes builds
// -- generously wide for a C identifier, matching the original tool's
// own practice of fixed-width name buffers (see indent_buf in
// serializeStructImplementation).
const maxTypeNameLen = 128

// metaTypes computes the ordered, deduplicated list of type names that
// belong in the MetaType enum: the six primitives, then, walking the
// structs in discovery order, each struct's own name (if new) followed
// by each of its member types (if new). This mirrors the original
// tool's set_primitive_type + is_meta_type_already_in_array walk
// exactly, including the interleaving of struct names among member
// types rather than two separate passes -- and, like the original
// (preprocessor.cpp:1350's push_temp_arr), it builds the list in a
// scoped scratch arena rather than a plain heap slice: the list is
// pure intermediate state needed only to dedupe before the enum is
// emitted, and not part of anything returned from generation.
func (g *Generator) metaTypes() []string {
	capacity := len(primitiveTypes)
	for _, s := range g.model.Structs {
		capacity += 1 + len(s.Members)
	}

	scope := g.arena.ScopeBegin(capacity * maxTypeNameLen)
	defer scope.End()

	var slots [][]byte
	contains := func(name string) bool {
		for _, slot := range slots {
			if slotString(slot) == name {
				return true
			}
		}
		return false
	}
	push := func(name string) {
		slot := scope.ScopeAlloc(maxTypeNameLen, 1)
		copy(slot, name)
		slots = append(slots, slot)
	}

	for _, p := range primitiveTypes {
		push(p)
	}
	for _, s := range g.model.Structs {
		if !contains(s.Name) {
			push(s.Name)
		}
		for _, m := range s.Members {
			if !contains(m.Type) {
				push(m.Type)
			}
		}
	}

	types := make([]string, len(slots))
	for i, slot := range slots {
		types[i] = slotString(slot)
	}
	return types
}

// slotString reads a name back out of a fixed-width scratch slot,
// trimming at the first zero byte (ScopeAlloc zeroes every slab before
// handing it out, so untouched tail bytes are already zero).
func slotString(slot []byte) string {
	if n := bytes.IndexByte(slot, 0); n >= 0 {
		return string(slot[:n])
	}
	return string(slot)
}

// GenerateHeader produces the declarations header described in
// SPEC_FULL.md section 4.6.
func (g *Generator) GenerateHeader() string {
	o := newOutputWriter("    ")

	o.writel(fmt.Sprintf("#if !defined(%s)", generatedHeaderGuard))
	o.blank()
	o.writel("#include <stdio.h>")
	o.blank()

	o.writel("enum MetaType {")
	for _, t := range g.metaTypes() {
		o.writel(fmt.Sprintf("    meta_type_%s,", t))
	}
	o.writel("};")
	o.blank()
	o.blank()

	o.writel("struct MemberDefinition {")
	o.writel("    MetaType type;")
	o.writel("    char *name;")
	o.writel("    size_t offset;")
	o.writel("    int is_ptr;")
	o.writel("    unsigned arr_size;")
	o.writel("};")
	o.blank()
	o.writel("#define get_num_of_members(type) num_members_for_##type")
	o.blank()

	o.blank()
	o.writel("//")
	o.writel("// Struct meta data.")
	o.writel("//")
	for _, s := range g.model.Structs {
		o.writel(fmt.Sprintf("// Meta Data for: %s", s.Name))
		o.writel(fmt.Sprintf("extern MemberDefinition members_of_%s[];", s.Name))
		o.writel(fmt.Sprintf("static const size_t num_members_for_%s = %d;", s.Name, len(s.Members)))
		o.blank()
	}

	o.blank()
	o.writel("//")
	o.writel("// Forward declared structs.")
	o.writel("//")
	for _, s := range g.model.Structs {
		o.writel(fmt.Sprintf("struct %s;", s.Name))
	}
	o.blank()

	o.writel("//")
	o.writel("// Forward declared enums.")
	o.writel("//")
	for _, e := range g.model.Enums {
		structPart := ""
		if e.IsEnumClass {
			structPart = "struct "
		}
		if e.UnderlyingType != "" {
			o.writel(fmt.Sprintf("enum %s%s : %s;", structPart, e.Name, e.UnderlyingType))
		} else {
			o.writel(fmt.Sprintf("enum %s%s;", structPart, e.Name))
		}

		enumType := e.Name
		if !e.IsEnumClass {
			enumType = "enum " + e.Name
		}
		o.writel(fmt.Sprintf("const char *%sToString(%s value);", e.Name, enumType))
		o.writel(fmt.Sprintf("%s %sFromString(const char *value);", enumType, e.Name))
	}
	o.blank()

	o.writel("//")
	o.writel("// Forward declared unions.")
	o.writel("//")
	for _, u := range g.model.Unions {
		o.writel(fmt.Sprintf("union %s;", u.Name))
	}
	o.blank()

	o.writel("//")
	o.writel("// Forward declared functions.")
	o.writel("//")
	for _, f := range g.model.Functions {
		o.writei("")
		if f.Linkage != "" {
			o.write(f.Linkage + " ")
		}
		o.write(fmt.Sprintf("%s %s(", f.RetType, f.Name))
		o.write(renderParamList(f.Params))
		o.writel(");")
	}
	o.blank()

	o.writel("//")
	o.writel("// Function meta data.")
	o.writel("//")
	o.writel("struct Variable {")
	o.writel("    char *ret_type;")
	o.writel("    char *name;")
	o.writel("};")
	o.blank()
	o.blank()
	o.writel(fmt.Sprintf("unsigned const MAX_NUMBER_OF_PARAMS = %d;", MaxParams))
	o.writel("struct FunctionMetaData {")
	o.writel("    char *linkage;")
	o.writel("    char *ret_type;")
	o.writel("    char *name;")
	o.writel("    unsigned param_count;")
	o.writel("    Variable params[MAX_NUMBER_OF_PARAMS];")
	o.writel("};")
	o.writel("#define get_func_meta_data(func) function_data_##func")
	for _, f := range g.model.Functions {
		o.writel(fmt.Sprintf("extern FunctionMetaData function_data_%s;", f.Name))
	}
	o.blank()

	o.writel("// size_t serialize_struct(void *var, type VariableType, char *buffer, size_t buf_size);")
	o.writel("#define serialize_struct(var, type, buffer, buf_size) serialize_struct_(var, type, 0, buffer, buf_size, 0)")
	o.writel("#define serialize_struct_(var, type, indent, buffer, buf_size, bytes_written) serialize_struct__((void *)&var, members_of_##type, indent, get_num_of_members(type), buffer, buf_size, bytes_written)")
	o.writel("size_t serialize_struct__(void *var, MemberDefinition members_of_Something[], unsigned indent, size_t num_members, char *buffer, size_t buf_size, size_t bytes_written);")
	o.blank()

	o.writel(fmt.Sprintf("#define %s", generatedHeaderGuard))
	o.writel(fmt.Sprintf("#endif // !defined(%s)", generatedHeaderGuard))

	return o.output()
}

// renderParamList renders a parameter list the way the header forward
// declarations need it: "void" when there are none, otherwise
// comma-separated "type [*]name[[]]" entries, with array parameters
// getting a trailing "[]" per SPEC_FULL.md section 4.6 item 6.
func renderParamList(params []Variable) string {
	if len(params) == 0 {
		return "void"
	}
	out := ""
	for i, param := range params {
		if i > 0 {
			out += ", "
		}
		ptr := ""
		if param.IsPointer {
			ptr = "*"
		}
		arr := ""
		if param.ArrayCount > 1 {
			arr = "[]"
		}
		out += fmt.Sprintf("%s %s%s%s", param.Type, ptr, param.Name, arr)
	}
	return out
}

// GenerateSource produces the implementation source described in
// SPEC_FULL.md section 4.6.
func (g *Generator) GenerateSource() string {
	o := newOutputWriter("    ")

	o.writel(fmt.Sprintf("#if !defined(%s)", generatedSourceGuard))
	o.blank()
	o.writel("#include \"generated.h\"")
	o.writel("#include <stdio.h>")
	o.writel("#include <string.h>")
	o.writel("#include <assert.h>")
	o.blank()

	o.writel("//")
	o.writel("// Recreated structs.")
	o.writel("//")
	for _, s := range g.model.Structs {
		o.writel(fmt.Sprintf("struct %s {", s.Name))
		for _, m := range s.Members {
			ptr := ""
			if m.IsPointer {
				ptr = "*"
			}
			arr := ""
			if m.ArrayCount > 1 {
				arr = fmt.Sprintf("[%d]", m.ArrayCount)
			}
			o.writel(fmt.Sprintf("    %s %s%s%s;", m.Type, ptr, m.Name, arr))
		}
		o.writel("};")
		o.blank()
	}

	o.writel("//")
	o.writel("// Struct meta data.")
	o.writel("//")
	for _, s := range g.model.Structs {
		o.writel(fmt.Sprintf("// Meta data for: %s", s.Name))
		o.writel(fmt.Sprintf("MemberDefinition members_of_%s[] = {", s.Name))
		for _, m := range s.Members {
			isPtr := 0
			if m.IsPointer {
				isPtr = 1
			}
			o.writel(fmt.Sprintf("    {meta_type_%s, \"%s\", (size_t)&((%s *)0)->%s, %d, %d},",
				m.Type, m.Name, s.Name, m.Name, isPtr, m.ArrayCount))
		}
		o.writel("};")
	}
	o.blank()

	o.writel("//")
	o.writel("// Function meta data.")
	o.writel("//")
	for _, f := range g.model.Functions {
		o.writel(fmt.Sprintf("FunctionMetaData function_data_%s = {", f.Name))
		if f.Linkage != "" {
			o.writel(fmt.Sprintf("    \"%s\",", f.Linkage))
		} else {
			o.writel("    0,")
		}
		o.writel(fmt.Sprintf("    \"%s\",", f.RetType))
		o.writel(fmt.Sprintf("    \"%s\",", f.Name))
		o.writel(fmt.Sprintf("    %d,", len(f.Params)))
		o.writel("    {")
		for i, param := range f.Params {
			comma := ","
			if i == len(f.Params)-1 {
				comma = ""
			}
			o.writel(fmt.Sprintf("        {\"%s\", \"%s\"}%s", param.Type, param.Name, comma))
		}
		o.writel("    }")
		o.writel("};")
		o.blank()
	}
	o.blank()

	o.writel(serializeStructImplementation(g.model.Structs))

	o.blank()
	o.writel(fmt.Sprintf("#define %s", generatedSourceGuard))
	o.writel(fmt.Sprintf("#endif // !defined(%s)", generatedSourceGuard))

	return o.output()
}

// serializeStructImplementation renders the fixed scaffold of
// serialize_struct__ described in SPEC_FULL.md section 4.6 item 5:
// primitive arms are constant text, and the default arm gets one
// case per struct, recursing into serialize_struct_.
func serializeStructImplementation(structs []StructRecord) string {
	o := newOutputWriter("    ")

	o.writel("size_t")
	o.writel("serialize_struct__(void *var, MemberDefinition members_of_Something[], unsigned indent, size_t num_members, char *buffer, size_t buf_size, size_t bytes_written)")
	o.writel("{")
	o.writel("    char indent_buf[256] = {0};")
	o.writel("    unsigned indent_index = 0, member_index = 0;")
	o.blank()
	o.writel("    assert((var) && (members_of_Something) && (num_members > 0) && (buffer) && (buf_size > 0));")
	o.writel("    memset(buffer + bytes_written, 0, buf_size - bytes_written);")
	o.writel("    for(indent_index = 0; (indent_index < indent); ++indent_index) {")
	o.writel("        indent_buf[indent_index] = ' ';")
	o.writel("    }")
	o.blank()
	o.writel("    for(member_index = 0; (member_index < num_members); ++member_index) {")
	o.writel("        MemberDefinition *member = members_of_Something + member_index;")
	o.blank()
	o.writel("        void *member_ptr = (char *)var + member->offset;")
	o.writel("        switch(member->type) {")
	o.writel("            case meta_type_float: {")
	o.writel("                for(unsigned arr_index = 0; (arr_index < member->arr_size); ++arr_index) {")
	o.writel("                    float *value = (member->is_ptr) ? *(float **)member_ptr : (float *)member_ptr;")
	o.writel("                    if(member->arr_size > 1) {")
	o.writel("                        bytes_written += sprintf((char *)buffer + bytes_written, \"\\n%sfloat %s[%d] : %f\", indent_buf, member->name, arr_index, value[arr_index]);")
	o.writel("                    } else {")
	o.writel("                        bytes_written += sprintf((char *)buffer + bytes_written, \"\\n%sfloat %s : %f\", indent_buf, member->name, value[arr_index]);")
	o.writel("                    }")
	o.writel("                }")
	o.writel("            } break;")
	o.blank()
	o.writel("            case meta_type_short: case meta_type_int: case meta_type_long: {")
	o.writel("                for(unsigned arr_index = 0; (arr_index < member->arr_size); ++arr_index) {")
	o.writel("                    int *value = (member->is_ptr) ? *(int **)member_ptr : (int *)member_ptr;")
	o.writel("                    if(member->arr_size > 1) {")
	o.writel("                        bytes_written += sprintf((char *)buffer + bytes_written, \"\\n%sint %s[%d] : %d\", indent_buf, member->name, arr_index, value[arr_index]);")
	o.writel("                    } else {")
	o.writel("                        bytes_written += sprintf((char *)buffer + bytes_written, \"\\n%sint %s : %d\", indent_buf, member->name, value[arr_index]);")
	o.writel("                    }")
	o.writel("                }")
	o.writel("            } break;")
	o.blank()
	o.writel("            case meta_type_char: {")
	o.writel("                if(member->is_ptr) {")
	o.writel("                    bytes_written += sprintf(buffer + bytes_written, \"\\n%schar * %s : %s\", indent_buf, member->name, *(char **)member_ptr);")
	o.writel("                } else {")
	o.writel("                    bytes_written += sprintf(buffer + bytes_written, \"\\n%schar %s : %c\", indent_buf, member->name, *(char *)member_ptr);")
	o.writel("                }")
	o.writel("            } break;")
	o.blank()
	o.writel("            case meta_type_double: {")
	o.writel("                for(unsigned arr_index = 0; (arr_index < member->arr_size); ++arr_index) {")
	o.writel("                    double *value = (member->is_ptr) ? *(double **)member_ptr : (double *)member_ptr;")
	o.writel("                    if(member->arr_size > 1) {")
	o.writel("                        bytes_written += sprintf((char *)buffer + bytes_written, \"\\n%sfloat %s[%d] : %f\", indent_buf, member->name, arr_index, value[arr_index]);")
	o.writel("                    } else {")
	o.writel("                        bytes_written += sprintf((char *)buffer + bytes_written, \"\\n%sfloat %s : %f\", indent_buf, member->name, value[arr_index]);")
	o.writel("                    }")
	o.writel("                }")
	o.writel("            } break;")
	o.blank()
	o.writel("            default: {")
	o.writel("                switch(member->type) {")
	for _, s := range structs {
		o.writel(fmt.Sprintf("                    case meta_type_%s: {", s.Name))
		o.writel("                        if(member->is_ptr) {")
		o.writel(fmt.Sprintf("                            bytes_written += serialize_struct_(**(char **)member_ptr, %s, indent + 4, buffer, buf_size - bytes_written, bytes_written);", s.Name))
		o.writel("                        } else {")
		o.writel(fmt.Sprintf("                            bytes_written += serialize_struct_(*(char *)member_ptr, %s, indent + 4, buffer, buf_size - bytes_written, bytes_written);", s.Name))
		o.writel("                        }")
		o.writel("                    } break;")
		o.blank()
	}
	o.writel("                }")
	o.writel("            } break; // default")
	o.writel("        }")
	o.writel("    }")
	o.blank()
	o.writel("    return(bytes_written);")
	o.writel("}")

	return o.output()
}
