package token

var keywords = map[string]Kind{
	"enum":     KwEnum,
	"struct":   KwStruct,
	"message":  KwMessage,
	"union":    KwUnion,
	"const":    KwConst,
	"readonly": KwReadonly,
	"mut":      KwMut,
	"import":   KwImport,
	"true":     KwTrue,
	"false":    KwFalse,
	"inf":      KwInf,
	"nan":      KwNan,
}

// LookupKeyword returns the keyword kind for ident, if it is one.
// Keywords are case-sensitive; only lowercase forms are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
