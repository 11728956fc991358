package types

import (
	"fmt"
	"strings"
)

// String renders the canonical spelling used in diagnostics.
func (t Type) String() string {
	var b strings.Builder
	t.format(&b)
	return b.String()
}

func (t Type) format(b *strings.Builder) {
	switch t.Kind {
	case KindInt:
		b.WriteString("int")
	case KindDouble:
		b.WriteString("double")
	case KindBoolean:
		b.WriteString("boolean")
	case KindAny:
		b.WriteString("any")
	case KindArray:
		b.WriteByte('[')
		t.Element().format(b)
		b.WriteByte(']')
	case KindClass:
		b.WriteString(t.Name)
	case KindFunction:
		b.WriteString("<Function ")
		b.WriteString(t.Name)
		b.WriteByte('>')
	case KindError:
		b.WriteString("<Error>")
	case KindVoid:
		b.WriteString("<Void>")
	default:
		panic(fmt.Errorf("types: format dispatch for %s reached end", t.Kind))
	}
}

// FormatList renders a parameter list as "(int, [any])".
func FormatList(ts []Type) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, t := range ts {
		if i > 0 {
			b.WriteString(", ")
		}
		t.format(&b)
	}
	b.WriteByte(')')
	return b.String()
}
