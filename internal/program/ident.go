package program

import (
	"unicode/utf8"

	"github.com/smasher164/xid"
	"golang.org/x/text/unicode/norm"

	"quasicode/internal/token"
)

// normalizeIdent returns name in NFC form and whether it is a usable
// identifier: an XID start rune or '_' followed by XID continue runes, and
// not a keyword.
func normalizeIdent(name string) (string, bool) {
	name = norm.NFC.String(name)
	if name == "" {
		return name, false
	}
	first, size := utf8.DecodeRuneInString(name)
	if first != '_' && !xid.Start(first) {
		return name, false
	}
	for _, r := range name[size:] {
		if !xid.Continue(r) {
			return name, false
		}
	}
	if _, kw := token.LookupKeyword(name); kw {
		return name, false
	}
	return name, true
}
