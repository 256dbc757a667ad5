package obj

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// CanonicalFileName makes name safe to use as a single path element.
func CanonicalFileName(name string) string {
	name = width.Fold.String(norm.NFC.String(name))
	return strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return '_'
		}
		return r
	}, name)
}

// materialName strips the leading marker of a material id.
func materialName(id string) string {
	_, n := utf8.DecodeRuneInString(id)
	return id[n:]
}

func writeHeader(w io.Writer, kind string) {
	fmt.Fprintf(w, "# %s\n", kind)
	fmt.Fprintf(w, "# %s\n", ToolName)
	fmt.Fprintf(w, "# %s\n", Author)
	fmt.Fprintf(w, "# %s\n", Version)
}

// ftoa formats f with six decimals like %f, without trailing zeros.
// Negative zero is printed as 0.
func ftoa(f float32) string {
	s := strconv.FormatFloat(float64(f), 'f', 6, 32)
	s = strings.TrimSuffix(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}
