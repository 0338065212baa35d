package wire

import (
	"fmt"

	"bebopc/internal/schema"
)

// Codec encodes and decodes dynamic values against a validated schema.
// It interprets the IR directly and is the executable form of the
// wire-format contract: the byte streams it produces are exactly the
// ones generated code must produce.
type Codec struct {
	Schema *schema.Schema
}

func NewCodec(s *schema.Schema) *Codec {
	return &Codec{Schema: s}
}

// Encode serializes v as a value of the named definition.
func (c *Codec) Encode(defName string, v any) ([]byte, error) {
	def, ok := c.Schema.Lookup(defName)
	if !ok {
		return nil, fmt.Errorf("wire: no definition %q", defName)
	}
	w := NewWriter()
	if err := c.encodeDef(w, def, v); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Decode deserializes buf as a value of the named definition.
func (c *Codec) Decode(defName string, buf []byte) (any, error) {
	def, ok := c.Schema.Lookup(defName)
	if !ok {
		return nil, fmt.Errorf("wire: no definition %q", defName)
	}
	r := NewReader(buf)
	return c.decodeDef(r, def)
}

func (c *Codec) defByID(id schema.DefID) (*schema.Definition, error) {
	def := c.Schema.Def(id)
	if def == nil {
		return nil, fmt.Errorf("wire: dangling definition reference %d", id)
	}
	return def, nil
}

func (c *Codec) encodeDef(w *Writer, def *schema.Definition, v any) error {
	switch def.Kind {
	case schema.KindEnum:
		return c.encodeEnum(w, def, v)
	case schema.KindStruct:
		return c.encodeStruct(w, def, v)
	case schema.KindMessage:
		return c.encodeMessage(w, def, v)
	case schema.KindUnion:
		return c.encodeUnion(w, def, v)
	}
	return fmt.Errorf("wire: %q is not an encodable definition", def.Name)
}

func (c *Codec) encodeStruct(w *Writer, def *schema.Definition, v any) error {
	rec, ok := v.(Record)
	if !ok {
		return fmt.Errorf("wire: struct %q needs a Record, got %T", def.Name, v)
	}
	for _, f := range def.Struct.Fields {
		fv, ok := rec[f.Name]
		if !ok {
			return fmt.Errorf("wire: struct %q is missing field %q", def.Name, f.Name)
		}
		if err := c.encodeType(w, f.Type, fv); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
	}
	return nil
}

func (c *Codec) encodeMessage(w *Writer, def *schema.Definition, v any) error {
	rec, ok := v.(Record)
	if !ok {
		return fmt.Errorf("wire: message %q needs a Record, got %T", def.Name, v)
	}
	frame := w.BeginFrame()
	for _, f := range def.Message.Fields {
		fv, present := rec[f.Name]
		if !present {
			continue
		}
		w.WriteUint8(f.Index)
		if err := c.encodeType(w, f.Type, fv); err != nil {
			return fmt.Errorf("field %q: %w", f.Name, err)
		}
	}
	w.WriteUint8(0) // end-of-message sentinel
	w.EndFrame(frame)
	return nil
}

func (c *Codec) encodeUnion(w *Writer, def *schema.Definition, v any) error {
	uv, ok := v.(UnionValue)
	if !ok {
		return fmt.Errorf("wire: union %q needs a UnionValue, got %T", def.Name, v)
	}
	for _, br := range def.Union.Branches {
		if br.Discriminator != uv.Discriminator {
			continue
		}
		branch, err := c.defByID(br.Def)
		if err != nil {
			return err
		}
		frame := w.BeginFrame()
		w.WriteUint8(br.Discriminator)
		if err := c.encodeDef(w, branch, uv.Value); err != nil {
			return err
		}
		w.EndFrame(frame)
		return nil
	}
	return fmt.Errorf("wire: union %q has no branch %d", def.Name, uv.Discriminator)
}

func (c *Codec) encodeEnum(w *Writer, def *schema.Definition, v any) error {
	return c.encodeScalar(w, def.Enum.Base, v)
}

func (c *Codec) encodeType(w *Writer, t *schema.TypeRef, v any) error {
	switch t.Kind {
	case schema.TypeScalar:
		return c.encodeScalar(w, t.Scalar, v)

	case schema.TypeDef:
		def, err := c.defByID(t.Def)
		if err != nil {
			return err
		}
		return c.encodeDef(w, def, v)

	case schema.TypeArray:
		// Array(Byte) specializes to a raw byte run
		if t.Elem.Kind == schema.TypeScalar && t.Elem.Scalar == schema.Byte {
			b, ok := v.([]byte)
			if !ok {
				return fmt.Errorf("wire: byte array needs []byte, got %T", v)
			}
			w.WriteByteArray(b)
			return nil
		}
		items, ok := v.([]any)
		if !ok {
			return fmt.Errorf("wire: array needs []any, got %T", v)
		}
		w.WriteUint32(uint32(len(items)))
		for i, item := range items {
			if err := c.encodeType(w, t.Elem, item); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		return nil

	case schema.TypeMap:
		entries, ok := v.([]MapEntry)
		if !ok {
			return fmt.Errorf("wire: map needs []MapEntry, got %T", v)
		}
		w.WriteUint32(uint32(len(entries)))
		for i, e := range entries {
			if err := c.encodeType(w, t.Key, e.Key); err != nil {
				return fmt.Errorf("entry %d key: %w", i, err)
			}
			if err := c.encodeType(w, t.Value, e.Value); err != nil {
				return fmt.Errorf("entry %d value: %w", i, err)
			}
		}
		return nil

	case schema.TypeOption:
		opt, ok := v.(Opt)
		if !ok {
			return fmt.Errorf("wire: optional needs an Opt, got %T", v)
		}
		if !opt.Present {
			w.WriteUint8(0)
			return nil
		}
		w.WriteUint8(1)
		return c.encodeType(w, t.Elem, opt.Value)
	}
	return fmt.Errorf("wire: cannot encode type kind %d", t.Kind)
}

func (c *Codec) encodeScalar(w *Writer, base schema.BaseType, v any) error {
	switch base {
	case schema.Bool:
		b, ok := v.(bool)
		if !ok {
			return scalarTypeError(base, v)
		}
		w.WriteBool(b)
	case schema.Byte:
		b, ok := v.(byte)
		if !ok {
			return scalarTypeError(base, v)
		}
		w.WriteUint8(b)
	case schema.Int16:
		x, ok := v.(int16)
		if !ok {
			return scalarTypeError(base, v)
		}
		w.WriteInt16(x)
	case schema.UInt16:
		x, ok := v.(uint16)
		if !ok {
			return scalarTypeError(base, v)
		}
		w.WriteUint16(x)
	case schema.Int32:
		x, ok := v.(int32)
		if !ok {
			return scalarTypeError(base, v)
		}
		w.WriteInt32(x)
	case schema.UInt32:
		x, ok := v.(uint32)
		if !ok {
			return scalarTypeError(base, v)
		}
		w.WriteUint32(x)
	case schema.Int64:
		x, ok := v.(int64)
		if !ok {
			return scalarTypeError(base, v)
		}
		w.WriteInt64(x)
	case schema.UInt64:
		x, ok := v.(uint64)
		if !ok {
			return scalarTypeError(base, v)
		}
		w.WriteUint64(x)
	case schema.Float32:
		x, ok := v.(float32)
		if !ok {
			return scalarTypeError(base, v)
		}
		w.WriteFloat32(x)
	case schema.Float64:
		x, ok := v.(float64)
		if !ok {
			return scalarTypeError(base, v)
		}
		w.WriteFloat64(x)
	case schema.String:
		s, ok := v.(string)
		if !ok {
			return scalarTypeError(base, v)
		}
		w.WriteString(s)
	case schema.Guid:
		g, ok := v.([16]byte)
		if !ok {
			return scalarTypeError(base, v)
		}
		w.WriteGuid(g)
	case schema.Date:
		ticks, ok := v.(int64)
		if !ok {
			return scalarTypeError(base, v)
		}
		w.WriteDate(ticks)
	default:
		return fmt.Errorf("wire: cannot encode base type %v", base)
	}
	return nil
}

func scalarTypeError(base schema.BaseType, v any) error {
	return fmt.Errorf("wire: %s value has Go type %T", base, v)
}
