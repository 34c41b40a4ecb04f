package token

import (
	"tanfmt/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	// BlankBefore is set when at least one empty line separates the token
	// from the previous one.
	BlankBefore bool
}

// IsLiteral reports whether the token is a self-contained atom.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case StringLit, IntLit, FloatLit, BoolLit, KeySymbol, Symbol, RangeLit:
		return true
	default:
		return false
	}
}

// IsOpen reports whether the token opens a delimited group.
func (t Token) IsOpen() bool {
	return t.Kind == LParen || t.Kind == LBracket || t.Kind == LBrace
}

// IsClose reports whether the token closes a delimited group.
func (t Token) IsClose() bool {
	return t.Kind == RParen || t.Kind == RBracket || t.Kind == RBrace
}

// Closer returns the closing kind matching an opening kind.
func Closer(open Kind) Kind {
	switch open {
	case LParen:
		return RParen
	case LBracket:
		return RBracket
	case LBrace:
		return RBrace
	default:
		return Invalid
	}
}
