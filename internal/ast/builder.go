package ast

import (
	"bebopc/internal/source"
)

type Hints struct{ Files, Defs, Types uint }

// Builder owns the arenas a parse populates. One builder can hold many
// files; definition and type IDs are unique across all of them.
type Builder struct {
	Files           *Files
	Defs            *Arena[Def]
	Types           *Arena[Type]
	StringsInterner *source.Interner
}

func NewBuilder(hints Hints) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 3
	}
	if hints.Defs == 0 {
		hints.Defs = 1 << 6
	}
	if hints.Types == 0 {
		hints.Types = 1 << 7
	}
	return &Builder{
		Files:           NewFiles(hints.Files),
		Defs:            NewArena[Def](hints.Defs),
		Types:           NewArena[Type](hints.Types),
		StringsInterner: source.NewInterner(),
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) NewDef(def Def) DefID {
	return DefID(b.Defs.Allocate(def))
}

func (b *Builder) NewType(t Type) TypeID {
	return TypeID(b.Types.Allocate(t))
}

func (b *Builder) Def(id DefID) *Def {
	return b.Defs.Get(uint32(id))
}

func (b *Builder) Type(id TypeID) *Type {
	return b.Types.Get(uint32(id))
}

func (b *Builder) PushDef(file FileID, def DefID) {
	f := b.Files.Get(file)
	f.Defs = append(f.Defs, def)
}

func (b *Builder) PushImport(file FileID, imp Import) {
	f := b.Files.Get(file)
	f.Imports = append(f.Imports, imp)
}

// Name resolves a StringID back to its text.
func (b *Builder) Name(id source.StringID) string {
	return b.StringsInterner.MustLookup(id)
}
