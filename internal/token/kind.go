package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// EOL marks a logical line break.
	EOL

	// Ident represents an identifier token.
	Ident
	StringLit
	IntLit
	FloatLit

	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Dot
	Minus
	Plus
	Slash
	Star
	Colon
	BangEq
	Eq
	EqEq
	Gt
	GtEq
	Lt
	LtEq

	KwInt
	KwDouble
	KwBoolean
	KwAny
	KwNew
	KwTrue
	KwFalse
	KwNull
	KwLoop
	KwFrom
	KwTo
	KwWhile
	KwUntil
	KwIf
	KwThen
	KwElse
	KwBreak
	KwContinue
	KwMod
	KwDiv
	KwAnd
	KwOr
	KwNot
	KwIs
	KwOutput
	KwInput
	KwFunction
	KwReturn
	KwExit
	KwClass
	KwExtends
	KwPrivate
	KwPublic
	KwStatic
	KwThis
	KwSuper
	KwEnd
)

var kindNames = [...]string{
	Invalid:    "invalid",
	EOF:        "eof",
	EOL:        "eol",
	Ident:      "identifier",
	StringLit:  "string",
	IntLit:     "integer",
	FloatLit:   "float",
	LParen:     "(",
	RParen:     ")",
	LBrace:     "{",
	RBrace:     "}",
	LBracket:   "[",
	RBracket:   "]",
	Comma:      ",",
	Dot:        ".",
	Minus:      "-",
	Plus:       "+",
	Slash:      "/",
	Star:       "*",
	Colon:      ":",
	BangEq:     "!=",
	Eq:         "=",
	EqEq:       "==",
	Gt:         ">",
	GtEq:       ">=",
	Lt:         "<",
	LtEq:       "<=",
	KwInt:      "int",
	KwDouble:   "double",
	KwBoolean:  "boolean",
	KwAny:      "any",
	KwNew:      "new",
	KwTrue:     "true",
	KwFalse:    "false",
	KwNull:     "null",
	KwLoop:     "loop",
	KwFrom:     "from",
	KwTo:       "to",
	KwWhile:    "while",
	KwUntil:    "until",
	KwIf:       "if",
	KwThen:     "then",
	KwElse:     "else",
	KwBreak:    "break",
	KwContinue: "continue",
	KwMod:      "mod",
	KwDiv:      "div",
	KwAnd:      "and",
	KwOr:       "or",
	KwNot:      "not",
	KwIs:       "is",
	KwOutput:   "output",
	KwInput:    "input",
	KwFunction: "function",
	KwReturn:   "return",
	KwExit:     "exit",
	KwClass:    "class",
	KwExtends:  "extends",
	KwPrivate:  "private",
	KwPublic:   "public",
	KwStatic:   "static",
	KwThis:     "this",
	KwSuper:    "super",
	KwEnd:      "end",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "invalid"
}
