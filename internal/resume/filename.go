package resume

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// FileSuffix is appended to the sanitized name in default file names.
const FileSuffix = "_CV"

// SanitizeName reduces a person's name to a portable file name stem.
// Accents are stripped ("Naṣr" becomes "Nasr"), whitespace runs become a
// single underscore and anything outside [A-Za-z0-9._-] is dropped.
func SanitizeName(name string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range norm.NFD.String(name) {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case unicode.IsSpace(r) || r == '_':
			pendingSep = b.Len() > 0
		case r < unicode.MaxASCII && (isAlnum(r) || r == '-' || r == '.'):
			if pendingSep {
				b.WriteByte('_')
				pendingSep = false
			}
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), ".-")
}

// DefaultFilename returns "<name>_CV.pdf", or "<name>_CV_<stamp>.pdf" when a
// timestamp is given. Names that sanitize to nothing yield "CV.pdf".
func DefaultFilename(name, stamp string) string {
	stem := SanitizeName(name)
	if stem == "" {
		stem = strings.TrimPrefix(FileSuffix, "_")
	} else {
		stem += FileSuffix
	}
	if stamp != "" {
		stem += "_" + stamp
	}
	return stem + ".pdf"
}

func isAlnum(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}
