package token

var keywords = map[string]Kind{}

func init() {
	for k := KwInt; k <= KwEnd; k++ {
		keywords[kindNames[k]] = k
	}
}

// LookupKeyword reports the keyword kind for ident. Keywords are case
// sensitive; only the lowercase spelling is recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// IsTypeKeyword reports whether k names a built-in primitive type.
func IsTypeKeyword(k Kind) bool {
	switch k {
	case KwInt, KwDouble, KwBoolean, KwAny:
		return true
	default:
		return false
	}
}
