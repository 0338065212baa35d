package sema

import (
	"math"
	"strconv"
	"strings"

	"bebopc/internal/ast"
)

// parseIntegerLiteral decodes an integer literal's text into a sign flag
// and magnitude. Supports decimal and 0x hex, with an optional leading
// '-' (the lexer folds the sign into the literal).
func parseIntegerLiteral(lit ast.Literal) (negative bool, magnitude uint64, ok bool) {
	text := lit.Text
	if strings.HasPrefix(text, "-") {
		negative = true
		text = text[1:]
	}

	base := 10
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		base = 16
		text = text[2:]
	}

	magnitude, err := strconv.ParseUint(text, base, 64)
	if err != nil {
		return false, 0, false
	}
	return negative, magnitude, true
}

// parseFloatLiteral decodes a float literal, accepting inf, -inf, nan,
// and ordinary decimal forms.
func parseFloatLiteral(lit ast.Literal) (float64, bool) {
	switch lit.Text {
	case "inf":
		return math.Inf(1), true
	case "-inf":
		return math.Inf(-1), true
	case "nan":
		return math.NaN(), true
	}
	v, err := strconv.ParseFloat(lit.Text, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
