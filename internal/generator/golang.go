package generator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bebopc/internal/schema"
)

// GoGenerator emits a single Go source file with one type per schema
// definition plus EncodeBebop/DecodeBebop methods over the runtime
// Writer/Reader. The output lives in the same package as the runtime
// helpers written by WriteAuxiliaryFiles.
type GoGenerator struct{}

func init() {
	Register(GoGenerator{})
}

func (GoGenerator) Name() string { return "go" }

var titleCaser = cases.Title(language.English, cases.NoLower)

// pascal converts a schema identifier to an exported Go name.
func pascal(name string) string {
	parts := strings.Split(name, "_")
	for i, part := range parts {
		parts[i] = titleCaser.String(part)
	}
	return strings.Join(parts, "")
}

type goEmitter struct {
	sb        strings.Builder
	schema    *schema.Schema
	tmp       int
	needsMath bool
}

func (e *goEmitter) printf(format string, args ...any) {
	fmt.Fprintf(&e.sb, format, args...)
}

func (e *goEmitter) nextTmp(prefix string) string {
	e.tmp++
	return fmt.Sprintf("%s%d", prefix, e.tmp)
}

func (GoGenerator) Emit(s *schema.Schema) (string, error) {
	e := &goEmitter{schema: s}

	for _, id := range s.Order {
		def := s.Def(id)
		if def == nil || def.Poisoned {
			continue
		}
		if err := e.emitDef(def); err != nil {
			return "", err
		}
	}

	var out strings.Builder
	out.WriteString("// Code generated by bebopc; DO NOT EDIT.\n\npackage bebop\n\n")
	if e.needsMath {
		out.WriteString("import \"math\"\n\n")
	}
	out.WriteString(e.sb.String())
	return out.String(), nil
}

func (e *goEmitter) emitDef(def *schema.Definition) error {
	switch def.Kind {
	case schema.KindConst:
		return e.emitConst(def)
	case schema.KindEnum:
		e.emitEnum(def)
	case schema.KindStruct:
		return e.emitStruct(def)
	case schema.KindMessage:
		return e.emitMessage(def)
	case schema.KindUnion:
		return e.emitUnion(def)
	}
	return nil
}

func (e *goEmitter) emitDoc(doc string, deprecated string) {
	if doc != "" {
		for _, line := range strings.Split(doc, "\n") {
			e.printf("// %s\n", line)
		}
	}
	if deprecated != "" {
		e.printf("//\n// Deprecated: %s\n", deprecated)
	}
}

func goScalarType(b schema.BaseType) string {
	switch b {
	case schema.Bool:
		return "bool"
	case schema.Byte:
		return "byte"
	case schema.Int16:
		return "int16"
	case schema.UInt16:
		return "uint16"
	case schema.Int32:
		return "int32"
	case schema.UInt32:
		return "uint32"
	case schema.Int64:
		return "int64"
	case schema.UInt64:
		return "uint64"
	case schema.Float32:
		return "float32"
	case schema.Float64:
		return "float64"
	case schema.String:
		return "string"
	case schema.Guid:
		return "[16]byte"
	case schema.Date:
		return "int64"
	}
	return "any"
}

func (e *goEmitter) goType(t *schema.TypeRef) string {
	switch t.Kind {
	case schema.TypeScalar:
		return goScalarType(t.Scalar)
	case schema.TypeDef:
		return pascal(e.schema.Def(t.Def).Name)
	case schema.TypeArray:
		return "[]" + e.goType(t.Elem)
	case schema.TypeMap:
		return "map[" + e.goType(t.Key) + "]" + e.goType(t.Value)
	case schema.TypeOption:
		return "*" + e.goType(t.Elem)
	}
	return "any"
}

func (e *goEmitter) emitConst(def *schema.Definition) error {
	e.emitDoc(def.Doc, def.Deprecated)
	name := pascal(def.Name)
	c := def.Const

	switch {
	case c.Type == schema.Bool:
		e.printf("const %s = %v\n\n", name, c.Value.Bool)
	case c.Type.IsInteger() && c.Type.IsSigned():
		e.printf("const %s %s = %d\n\n", name, goScalarType(c.Type), c.Value.Int)
	case c.Type.IsInteger():
		e.printf("const %s %s = %d\n\n", name, goScalarType(c.Type), c.Value.Uint)
	case c.Type.IsFloat():
		e.emitFloatConst(name, c)
	case c.Type == schema.String:
		e.printf("const %s = %s\n\n", name, strconv.Quote(c.Value.Str))
	case c.Type == schema.Guid:
		e.printf("var %s = [16]byte{", name)
		for i, b := range c.Value.Guid {
			if i > 0 {
				e.printf(", ")
			}
			e.printf("0x%02x", b)
		}
		e.printf("}\n\n")
	default:
		return fmt.Errorf("const %q: unsupported type %s", def.Name, c.Type)
	}
	return nil
}

func (e *goEmitter) emitFloatConst(name string, c *schema.ConstDef) {
	v := c.Value.Float
	typ := goScalarType(c.Type)
	switch {
	case math.IsInf(v, 1):
		e.needsMath = true
		e.printf("var %s = %s(math.Inf(1))\n\n", name, typ)
	case math.IsInf(v, -1):
		e.needsMath = true
		e.printf("var %s = %s(math.Inf(-1))\n\n", name, typ)
	case math.IsNaN(v):
		e.needsMath = true
		e.printf("var %s = %s(math.NaN())\n\n", name, typ)
	default:
		e.printf("const %s %s = %s\n\n", name, typ, strconv.FormatFloat(v, 'g', -1, 64))
	}
}

func (e *goEmitter) emitEnum(def *schema.Definition) {
	e.emitDoc(def.Doc, def.Deprecated)
	name := pascal(def.Name)
	base := def.Enum.Base
	e.printf("type %s %s\n\n", name, goScalarType(base))
	if len(def.Enum.Members) > 0 {
		e.printf("const (\n")
		for _, m := range def.Enum.Members {
			if base.IsSigned() {
				e.printf("\t%s%s %s = %d\n", name, pascal(m.Name), name, int64(m.Value))
			} else {
				e.printf("\t%s%s %s = %d\n", name, pascal(m.Name), name, m.Value)
			}
		}
		e.printf(")\n\n")
	}
}

func (e *goEmitter) emitStruct(def *schema.Definition) error {
	e.emitDoc(def.Doc, def.Deprecated)
	name := pascal(def.Name)
	e.printf("type %s struct {\n", name)
	for _, f := range def.Struct.Fields {
		e.printf("\t%s %s\n", pascal(f.Name), e.goType(f.Type))
	}
	e.printf("}\n\n")

	e.printf("func (v *%s) EncodeBebop(w *Writer) {\n", name)
	for _, f := range def.Struct.Fields {
		e.emitWrite(f.Type, "v."+pascal(f.Name), 1)
	}
	e.printf("}\n\n")

	e.printf("func (v *%s) DecodeBebop(r *Reader) error {\n", name)
	e.printf("\tvar err error\n\t_ = err\n")
	for _, f := range def.Struct.Fields {
		e.emitRead(f.Type, "v."+pascal(f.Name), 1)
	}
	e.printf("\treturn nil\n}\n\n")
	return nil
}

func (e *goEmitter) emitMessage(def *schema.Definition) error {
	e.emitDoc(def.Doc, def.Deprecated)
	name := pascal(def.Name)
	e.printf("type %s struct {\n", name)
	for _, f := range def.Message.Fields {
		if f.Deprecated != "" {
			e.printf("\t// Deprecated: %s\n", f.Deprecated)
		}
		e.printf("\t%s *%s\n", pascal(f.Name), e.goType(f.Type))
	}
	e.printf("}\n\n")

	e.printf("func (v *%s) EncodeBebop(w *Writer) {\n", name)
	e.printf("\tframe := w.BeginFrame()\n")
	for _, f := range def.Message.Fields {
		fieldName := "v." + pascal(f.Name)
		e.printf("\tif %s != nil {\n", fieldName)
		e.printf("\t\tw.WriteUint8(%d)\n", f.Index)
		e.emitWrite(f.Type, "(*"+fieldName+")", 2)
		e.printf("\t}\n")
	}
	e.printf("\tw.WriteUint8(0)\n\tw.EndFrame(frame)\n}\n\n")

	e.printf("func (v *%s) DecodeBebop(r *Reader) error {\n", name)
	e.printf("\tend, err := r.ReadFrame()\n\tif err != nil {\n\t\treturn err\n\t}\n")
	e.printf("\tfor r.Pos() < end {\n")
	e.printf("\t\tindex, err := r.ReadUint8()\n\t\tif err != nil {\n\t\t\treturn err\n\t\t}\n")
	e.printf("\t\tswitch index {\n")
	e.printf("\t\tcase 0:\n\t\t\tr.Seek(end)\n\t\t\treturn nil\n")
	for _, f := range def.Message.Fields {
		e.printf("\t\tcase %d:\n", f.Index)
		tmp := e.nextTmp("f")
		e.printf("\t\t\tvar %s %s\n", tmp, e.goType(f.Type))
		e.emitRead(f.Type, tmp, 3)
		e.printf("\t\t\tv.%s = &%s\n", pascal(f.Name), tmp)
	}
	e.printf("\t\tdefault:\n\t\t\tr.Seek(end)\n\t\t\treturn nil\n")
	e.printf("\t\t}\n\t}\n\tr.Seek(end)\n\treturn nil\n}\n\n")
	return nil
}

func (e *goEmitter) emitUnion(def *schema.Definition) error {
	e.emitDoc(def.Doc, def.Deprecated)
	name := pascal(def.Name)
	e.printf("type %s struct {\n", name)
	for _, br := range def.Union.Branches {
		branch := e.schema.Def(br.Def)
		e.printf("\t%s *%s\n", pascal(branch.Name), pascal(branch.Name))
	}
	e.printf("}\n\n")

	e.printf("func (v *%s) EncodeBebop(w *Writer) {\n", name)
	e.printf("\tframe := w.BeginFrame()\n\tswitch {\n")
	for _, br := range def.Union.Branches {
		branch := e.schema.Def(br.Def)
		e.printf("\tcase v.%s != nil:\n", pascal(branch.Name))
		e.printf("\t\tw.WriteUint8(%d)\n", br.Discriminator)
		e.printf("\t\tv.%s.EncodeBebop(w)\n", pascal(branch.Name))
	}
	e.printf("\t}\n\tw.EndFrame(frame)\n}\n\n")

	e.printf("func (v *%s) DecodeBebop(r *Reader) error {\n", name)
	e.printf("\tend, err := r.ReadFrame()\n\tif err != nil {\n\t\treturn err\n\t}\n")
	e.printf("\tdisc, err := r.ReadUint8()\n\tif err != nil {\n\t\treturn err\n\t}\n")
	e.printf("\tswitch disc {\n")
	for _, br := range def.Union.Branches {
		branch := e.schema.Def(br.Def)
		e.printf("\tcase %d:\n", br.Discriminator)
		e.printf("\t\tv.%s = new(%s)\n", pascal(branch.Name), pascal(branch.Name))
		e.printf("\t\tif err := v.%s.DecodeBebop(r); err != nil {\n\t\t\treturn err\n\t\t}\n", pascal(branch.Name))
	}
	e.printf("\tdefault:\n\t\tr.Seek(end)\n\t\treturn ErrUnknownDiscriminator\n")
	e.printf("\t}\n\tr.Seek(end)\n\treturn nil\n}\n\n")
	return nil
}
