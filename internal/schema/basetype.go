package schema

// BaseType enumerates the built-in scalar types of the schema language.
type BaseType uint8

const (
	InvalidBase BaseType = iota
	Bool
	Byte
	Int16
	UInt16
	Int32
	UInt32
	Int64
	UInt64
	Float32
	Float64
	String
	Guid
	Date
)

var baseTypeNames = map[string]BaseType{
	"bool":    Bool,
	"byte":    Byte,
	"uint8":   Byte,
	"int16":   Int16,
	"uint16":  UInt16,
	"int32":   Int32,
	"uint32":  UInt32,
	"int64":   Int64,
	"uint64":  UInt64,
	"float32": Float32,
	"float64": Float64,
	"string":  String,
	"guid":    Guid,
	"date":    Date,
}

// LookupBaseType resolves a type name like "int32". Base type names are
// ordinary identifiers in the grammar, recognized here during parsing.
func LookupBaseType(name string) (BaseType, bool) {
	bt, ok := baseTypeNames[name]
	return bt, ok
}

func (b BaseType) String() string {
	switch b {
	case Bool:
		return "bool"
	case Byte:
		return "byte"
	case Int16:
		return "int16"
	case UInt16:
		return "uint16"
	case Int32:
		return "int32"
	case UInt32:
		return "uint32"
	case Int64:
		return "int64"
	case UInt64:
		return "uint64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case String:
		return "string"
	case Guid:
		return "guid"
	case Date:
		return "date"
	}
	return "invalid"
}

// EncodedSize is the fixed wire size in bytes, or 0 for String whose
// size depends on the value (its 4-byte length prefix is the minimum).
func (b BaseType) EncodedSize() uint32 {
	switch b {
	case Bool, Byte:
		return 1
	case Int16, UInt16:
		return 2
	case Int32, UInt32, Float32:
		return 4
	case Int64, UInt64, Float64, Date:
		return 8
	case Guid:
		return 16
	case String:
		return 0
	}
	return 0
}

// IsInteger reports whether the type is an integer scalar.
func (b BaseType) IsInteger() bool {
	switch b {
	case Byte, Int16, UInt16, Int32, UInt32, Int64, UInt64:
		return true
	default:
		return false
	}
}

// IsSigned reports whether the integer type carries a sign.
func (b BaseType) IsSigned() bool {
	switch b {
	case Int16, Int32, Int64:
		return true
	default:
		return false
	}
}

// IsFloat reports whether the type is a floating-point scalar.
func (b BaseType) IsFloat() bool {
	return b == Float32 || b == Float64
}

// IntegerRange returns the inclusive value range for integer types.
// min is the most negative value as an int64; max is returned as uint64
// so uint64's full range is representable.
func (b BaseType) IntegerRange() (min int64, max uint64) {
	switch b {
	case Byte:
		return 0, 0xFF
	case Int16:
		return -0x8000, 0x7FFF
	case UInt16:
		return 0, 0xFFFF
	case Int32:
		return -0x80000000, 0x7FFFFFFF
	case UInt32:
		return 0, 0xFFFFFFFF
	case Int64:
		return -0x8000000000000000, 0x7FFFFFFFFFFFFFFF
	case UInt64:
		return 0, 0xFFFFFFFFFFFFFFFF
	}
	return 0, 0
}
