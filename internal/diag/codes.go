package diag

import (
	"fmt"
)

// Code is a compact identifier for a diagnostic kind. Codes are banded
// per phase so a bare number already tells you where it came from.
type Code uint16

const (
	UnknownCode Code = 0

	// Lexical (1000-1999)
	LexInfo                     Code = 1000
	LexUnrecognizedChar         Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Syntax (2000-2999)
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectSemicolon    Code = 2002
	SynExpectIdentifier   Code = 2003
	SynMalformedAttribute Code = 2004
	SynMalformedLiteral   Code = 2005
	SynExpectType         Code = 2006
	SynUnexpectedTopLevel Code = 2007
	SynExpectFieldIndex   Code = 2008
	SynExpectUnionBranch  Code = 2009
	SynExpectImportPath   Code = 2010

	// Semantic (3000-3999)
	SemaInfo                   Code = 3000
	SemaDuplicateDefinition    Code = 3001
	SemaUnknownType            Code = 3002
	SemaDuplicateFieldIndex    Code = 3003
	SemaFieldIndexOutOfRange   Code = 3004
	SemaFieldIndexNotIncreasing Code = 3005
	SemaReservedFieldIndexZero Code = 3006
	SemaDuplicateOpcode        Code = 3007
	SemaInvalidUnionBranch     Code = 3008
	SemaInfiniteStruct         Code = 3009
	SemaConstTypeMismatch      Code = 3010
	SemaConstOutOfRange        Code = 3011
	SemaInvalidGuid            Code = 3012
	SemaEnumValueOutOfRange    Code = 3013
	SemaDuplicateEnumValue     Code = 3014
	SemaDuplicateField         Code = 3015
	SemaInvalidOpcode          Code = 3016
	SemaInvalidAttribute       Code = 3017
	SemaEmptyUnion             Code = 3018
	SemaInvalidEnumBase        Code = 3019
	SemaDeprecatedUsage        Code = 3020

	// I/O (4000-4999)
	IOLoadFileError Code = 4001
	IOImportCycle   Code = 4002
	IOImportMissing Code = 4003

	// Project (5000-5999)
	ProjInfo            Code = 5000
	ProjInvalidManifest Code = 5001
	ProjNoInputs        Code = 5002

	// Generator (6000-6999)
	GenInfo               Code = 6000
	GenUnknownGenerator   Code = 6001
	GenUnsupportedFeature Code = 6002
	GenWriteError         Code = 6003
)

var codeDescription = map[Code]string{
	UnknownCode:                 "unknown error",
	LexInfo:                     "lexer note",
	LexUnrecognizedChar:         "unrecognized character",
	LexUnterminatedString:       "unterminated string literal",
	LexUnterminatedBlockComment: "unterminated block comment",
	LexBadNumber:                "malformed number literal",
	SynInfo:                     "parser note",
	SynUnexpectedToken:          "unexpected token",
	SynExpectSemicolon:          "missing semicolon",
	SynExpectIdentifier:         "expected identifier",
	SynMalformedAttribute:       "malformed attribute",
	SynMalformedLiteral:         "malformed literal",
	SynExpectType:               "expected type",
	SynUnexpectedTopLevel:       "unexpected top-level construct",
	SynExpectFieldIndex:         "expected field index",
	SynExpectUnionBranch:        "expected union branch",
	SynExpectImportPath:         "expected import path",
	SemaInfo:                    "semantic note",
	SemaDuplicateDefinition:     "duplicate definition",
	SemaUnknownType:             "unknown type",
	SemaDuplicateFieldIndex:     "duplicate field index",
	SemaFieldIndexOutOfRange:    "field index out of range",
	SemaFieldIndexNotIncreasing: "field index not increasing",
	SemaReservedFieldIndexZero:  "field index zero is reserved",
	SemaDuplicateOpcode:         "duplicate opcode",
	SemaInvalidUnionBranch:      "invalid union branch",
	SemaInfiniteStruct:          "struct requires infinite storage",
	SemaConstTypeMismatch:       "constant type mismatch",
	SemaConstOutOfRange:         "constant out of range",
	SemaInvalidGuid:             "malformed GUID literal",
	SemaEnumValueOutOfRange:     "enum value out of range",
	SemaDuplicateEnumValue:      "duplicate enum value",
	SemaDuplicateField:          "duplicate field name",
	SemaInvalidOpcode:           "invalid opcode attribute",
	SemaInvalidAttribute:        "unrecognized attribute",
	SemaEmptyUnion:              "union has no branches",
	SemaInvalidEnumBase:         "invalid enum base type",
	SemaDeprecatedUsage:         "use of deprecated element",
	IOLoadFileError:             "cannot load file",
	IOImportCycle:               "import cycle",
	IOImportMissing:             "imported file not found",
	ProjInfo:                    "project note",
	ProjInvalidManifest:         "invalid project manifest",
	ProjNoInputs:                "no schema inputs",
	GenInfo:                     "generator note",
	GenUnknownGenerator:         "unknown generator",
	GenUnsupportedFeature:       "unsupported feature",
	GenWriteError:               "cannot write generated output",
}

// ID renders the stable short form, e.g. "SEM3009".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("GEN%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// IsFatal reports whether c is an I/O or project failure (the 4xxx and
// 5xxx bands) rather than a problem found in schema text.
func (c Code) IsFatal() bool {
	return c >= 4000 && c < 6000
}
