package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	LParen   // (
	RParen   // )
	LBracket // [
	RBracket // ]
	LBrace   // {
	RBrace   // }
	Quote    // '
	Unquote  // $
	// Hash is a bare '#' introducing a list annotation, e.g. #(min 3).
	Hash
	// Annotation is '#name'; Text holds the name without '#'.
	Annotation

	Comment   // ; до конца строки, Text включает ';'
	StringLit // "..." , Text — исходный литерал с кавычками
	IntLit
	FloatLit
	BoolLit
	KeySymbol // :name, Text без ':'
	Symbol
	// RangeLit is an atom of the form a..b or a..b|s.
	RangeLit
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case LParen:
		return "LParen"
	case RParen:
		return "RParen"
	case LBracket:
		return "LBracket"
	case RBracket:
		return "RBracket"
	case LBrace:
		return "LBrace"
	case RBrace:
		return "RBrace"
	case Quote:
		return "Quote"
	case Unquote:
		return "Unquote"
	case Hash:
		return "Hash"
	case Annotation:
		return "Annotation"
	case Comment:
		return "Comment"
	case StringLit:
		return "StringLit"
	case IntLit:
		return "IntLit"
	case FloatLit:
		return "FloatLit"
	case BoolLit:
		return "BoolLit"
	case KeySymbol:
		return "KeySymbol"
	case Symbol:
		return "Symbol"
	case RangeLit:
		return "RangeLit"
	default:
		return "Unknown"
	}
}
