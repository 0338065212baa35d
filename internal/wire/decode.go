package wire

import (
	"fmt"

	"bebopc/internal/schema"
)

func (c *Codec) decodeDef(r *Reader, def *schema.Definition) (any, error) {
	switch def.Kind {
	case schema.KindEnum:
		return c.decodeScalar(r, def.Enum.Base)
	case schema.KindStruct:
		return c.decodeStruct(r, def)
	case schema.KindMessage:
		return c.decodeMessage(r, def)
	case schema.KindUnion:
		return c.decodeUnion(r, def)
	}
	return nil, fmt.Errorf("wire: %q is not a decodable definition", def.Name)
}

func (c *Codec) decodeStruct(r *Reader, def *schema.Definition) (any, error) {
	rec := make(Record, len(def.Struct.Fields))
	for _, f := range def.Struct.Fields {
		v, err := c.decodeType(r, f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		rec[f.Name] = v
	}
	return rec, nil
}

// decodeMessage reads indexed fields until the sentinel. An index the
// schema does not know means the writer had a newer schema: skip to the
// end of the body and return what was read.
func (c *Codec) decodeMessage(r *Reader, def *schema.Definition) (any, error) {
	end, err := r.ReadFrame()
	if err != nil {
		return nil, err
	}

	byIndex := make(map[uint8]*schema.MessageField, len(def.Message.Fields))
	for i := range def.Message.Fields {
		f := &def.Message.Fields[i]
		byIndex[f.Index] = f
	}

	rec := make(Record)
	for {
		if r.Pos() >= end {
			break
		}
		idx, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		if idx == 0 {
			break
		}
		f, known := byIndex[idx]
		if !known {
			r.Seek(end)
			break
		}
		v, err := c.decodeType(r, f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.Name, err)
		}
		rec[f.Name] = v
	}
	r.Seek(end)
	return rec, nil
}

func (c *Codec) decodeUnion(r *Reader, def *schema.Definition) (any, error) {
	end, err := r.ReadFrame()
	if err != nil {
		return nil, err
	}
	disc, err := r.ReadUint8()
	if err != nil {
		return nil, err
	}

	for _, br := range def.Union.Branches {
		if br.Discriminator != disc {
			continue
		}
		branch, err := c.defByID(br.Def)
		if err != nil {
			return nil, err
		}
		v, err := c.decodeDef(r, branch)
		if err != nil {
			return nil, err
		}
		r.Seek(end)
		return UnionValue{Discriminator: disc, Value: v}, nil
	}

	r.Seek(end)
	return nil, fmt.Errorf("%w: %d in union %q", ErrUnknownDiscriminator, disc, def.Name)
}

func (c *Codec) decodeType(r *Reader, t *schema.TypeRef) (any, error) {
	switch t.Kind {
	case schema.TypeScalar:
		return c.decodeScalar(r, t.Scalar)

	case schema.TypeDef:
		def, err := c.defByID(t.Def)
		if err != nil {
			return nil, err
		}
		return c.decodeDef(r, def)

	case schema.TypeArray:
		if t.Elem.Kind == schema.TypeScalar && t.Elem.Scalar == schema.Byte {
			return r.ReadByteArray()
		}
		n, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		items := make([]any, 0, n)
		for i := uint32(0); i < n; i++ {
			v, err := c.decodeType(r, t.Elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			items = append(items, v)
		}
		return items, nil

	case schema.TypeMap:
		n, err := r.ReadUint32()
		if err != nil {
			return nil, err
		}
		entries := make([]MapEntry, 0, n)
		for i := uint32(0); i < n; i++ {
			k, err := c.decodeType(r, t.Key)
			if err != nil {
				return nil, fmt.Errorf("entry %d key: %w", i, err)
			}
			v, err := c.decodeType(r, t.Value)
			if err != nil {
				return nil, fmt.Errorf("entry %d value: %w", i, err)
			}
			entries = append(entries, MapEntry{Key: k, Value: v})
		}
		return entries, nil

	case schema.TypeOption:
		tag, err := r.ReadUint8()
		if err != nil {
			return nil, err
		}
		if tag == 0 {
			return None(), nil
		}
		v, err := c.decodeType(r, t.Elem)
		if err != nil {
			return nil, err
		}
		return Some(v), nil
	}
	return nil, fmt.Errorf("wire: cannot decode type kind %d", t.Kind)
}

func (c *Codec) decodeScalar(r *Reader, base schema.BaseType) (any, error) {
	switch base {
	case schema.Bool:
		return r.ReadBool()
	case schema.Byte:
		return r.ReadUint8()
	case schema.Int16:
		return r.ReadInt16()
	case schema.UInt16:
		return r.ReadUint16()
	case schema.Int32:
		return r.ReadInt32()
	case schema.UInt32:
		return r.ReadUint32()
	case schema.Int64:
		return r.ReadInt64()
	case schema.UInt64:
		return r.ReadUint64()
	case schema.Float32:
		return r.ReadFloat32()
	case schema.Float64:
		return r.ReadFloat64()
	case schema.String:
		return r.ReadString()
	case schema.Guid:
		return r.ReadGuid()
	case schema.Date:
		return r.ReadDate()
	}
	return nil, fmt.Errorf("wire: cannot decode base type %v", base)
}
