package generator

import (
	"fmt"
	"strings"

	"bebopc/internal/schema"
)

// emitWrite appends the statements encoding expr as type t.
func (e *goEmitter) emitWrite(t *schema.TypeRef, expr string, depth int) {
	ind := strings.Repeat("\t", depth)

	switch t.Kind {
	case schema.TypeScalar:
		e.printf("%sw.%s(%s)\n", ind, writerMethod(t.Scalar), expr)

	case schema.TypeDef:
		def := e.schema.Def(t.Def)
		if def.Kind == schema.KindEnum {
			e.printf("%sw.%s(%s(%s))\n", ind, writerMethod(def.Enum.Base), goScalarType(def.Enum.Base), expr)
			return
		}
		e.printf("%s%s.EncodeBebop(w)\n", ind, expr)

	case schema.TypeArray:
		if isByteArray(t) {
			e.printf("%sw.WriteByteArray(%s)\n", ind, expr)
			return
		}
		item := e.nextTmp("item")
		e.printf("%sw.WriteUint32(uint32(len(%s)))\n", ind, expr)
		e.printf("%sfor _, %s := range %s {\n", ind, item, expr)
		e.emitWrite(t.Elem, item, depth+1)
		e.printf("%s}\n", ind)

	case schema.TypeMap:
		k := e.nextTmp("k")
		val := e.nextTmp("mv")
		e.printf("%sw.WriteUint32(uint32(len(%s)))\n", ind, expr)
		// map iteration order is unspecified; the contract only fixes
		// the entry layout, not their order
		e.printf("%sfor %s, %s := range %s {\n", ind, k, val, expr)
		e.emitWrite(t.Key, k, depth+1)
		e.emitWrite(t.Value, val, depth+1)
		e.printf("%s}\n", ind)

	case schema.TypeOption:
		e.printf("%sif %s == nil {\n%s\tw.WriteUint8(0)\n%s} else {\n", ind, expr, ind, ind)
		e.printf("%s\tw.WriteUint8(1)\n", ind)
		e.emitWrite(t.Elem, "(*"+expr+")", depth+1)
		e.printf("%s}\n", ind)
	}
}

// emitRead appends the statements decoding into lvalue, which must be
// addressable and of the Go type for t.
func (e *goEmitter) emitRead(t *schema.TypeRef, lvalue string, depth int) {
	ind := strings.Repeat("\t", depth)

	switch t.Kind {
	case schema.TypeScalar:
		e.printf("%sif %s, err = r.%s(); err != nil {\n%s\treturn err\n%s}\n",
			ind, lvalue, readerMethod(t.Scalar), ind, ind)

	case schema.TypeDef:
		def := e.schema.Def(t.Def)
		if def.Kind == schema.KindEnum {
			raw := e.nextTmp("raw")
			e.printf("%s%s, err := r.%s()\n%sif err != nil {\n%s\treturn err\n%s}\n",
				ind, raw, readerMethod(def.Enum.Base), ind, ind, ind)
			e.printf("%s%s = %s(%s)\n", ind, lvalue, pascal(def.Name), raw)
			return
		}
		e.printf("%sif err := %s.DecodeBebop(r); err != nil {\n%s\treturn err\n%s}\n",
			ind, lvalue, ind, ind)

	case schema.TypeArray:
		if isByteArray(t) {
			e.printf("%sif %s, err = r.ReadByteArray(); err != nil {\n%s\treturn err\n%s}\n",
				ind, lvalue, ind, ind)
			return
		}
		n := e.nextTmp("n")
		i := e.nextTmp("i")
		e.printf("%s%s, err := r.ReadUint32()\n%sif err != nil {\n%s\treturn err\n%s}\n", ind, n, ind, ind, ind)
		e.printf("%s%s = make(%s, %s)\n", ind, lvalue, e.goType(t), n)
		e.printf("%sfor %s := uint32(0); %s < %s; %s++ {\n", ind, i, i, n, i)
		e.emitRead(t.Elem, fmt.Sprintf("%s[%s]", lvalue, i), depth+1)
		e.printf("%s}\n", ind)

	case schema.TypeMap:
		n := e.nextTmp("n")
		i := e.nextTmp("i")
		k := e.nextTmp("k")
		val := e.nextTmp("mv")
		e.printf("%s%s, err := r.ReadUint32()\n%sif err != nil {\n%s\treturn err\n%s}\n", ind, n, ind, ind, ind)
		e.printf("%s%s = make(%s, %s)\n", ind, lvalue, e.goType(t), n)
		e.printf("%sfor %s := uint32(0); %s < %s; %s++ {\n", ind, i, i, n, i)
		e.printf("%s\tvar %s %s\n", ind, k, e.goType(t.Key))
		e.printf("%s\tvar %s %s\n", ind, val, e.goType(t.Value))
		e.emitRead(t.Key, k, depth+1)
		e.emitRead(t.Value, val, depth+1)
		e.printf("%s\t%s[%s] = %s\n", ind, lvalue, k, val)
		e.printf("%s}\n", ind)

	case schema.TypeOption:
		tag := e.nextTmp("tag")
		inner := e.nextTmp("opt")
		e.printf("%s%s, err := r.ReadUint8()\n%sif err != nil {\n%s\treturn err\n%s}\n", ind, tag, ind, ind, ind)
		e.printf("%sif %s != 0 {\n", ind, tag)
		e.printf("%s\tvar %s %s\n", ind, inner, e.goType(t.Elem))
		e.emitRead(t.Elem, inner, depth+1)
		e.printf("%s\t%s = &%s\n", ind, lvalue, inner)
		e.printf("%s}\n", ind)
	}
}

func isByteArray(t *schema.TypeRef) bool {
	return t.Kind == schema.TypeArray &&
		t.Elem.Kind == schema.TypeScalar && t.Elem.Scalar == schema.Byte
}

func writerMethod(b schema.BaseType) string {
	switch b {
	case schema.Bool:
		return "WriteBool"
	case schema.Byte:
		return "WriteUint8"
	case schema.Int16:
		return "WriteInt16"
	case schema.UInt16:
		return "WriteUint16"
	case schema.Int32:
		return "WriteInt32"
	case schema.UInt32:
		return "WriteUint32"
	case schema.Int64:
		return "WriteInt64"
	case schema.UInt64:
		return "WriteUint64"
	case schema.Float32:
		return "WriteFloat32"
	case schema.Float64:
		return "WriteFloat64"
	case schema.String:
		return "WriteString"
	case schema.Guid:
		return "WriteGuid"
	case schema.Date:
		return "WriteDate"
	}
	return "WriteUint8"
}

func readerMethod(b schema.BaseType) string {
	switch b {
	case schema.Bool:
		return "ReadBool"
	case schema.Byte:
		return "ReadUint8"
	case schema.Int16:
		return "ReadInt16"
	case schema.UInt16:
		return "ReadUint16"
	case schema.Int32:
		return "ReadInt32"
	case schema.UInt32:
		return "ReadUint32"
	case schema.Int64:
		return "ReadInt64"
	case schema.UInt64:
		return "ReadUint64"
	case schema.Float32:
		return "ReadFloat32"
	case schema.Float64:
		return "ReadFloat64"
	case schema.String:
		return "ReadString"
	case schema.Guid:
		return "ReadGuid"
	case schema.Date:
		return "ReadDate"
	}
	return "ReadUint8"
}
