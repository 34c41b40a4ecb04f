package lexer

import (
	"tanfmt/internal/source"
	"tanfmt/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий значимый токен (комментарии тоже значимы:
// форматтер должен их сохранить). После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	blank := lx.skipWhitespace()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan(), BlankBefore: blank}
	}

	var tok token.Token
	switch ch := lx.cursor.Peek(); ch {
	case '(':
		tok = lx.single(token.LParen)
	case ')':
		tok = lx.single(token.RParen)
	case '[':
		tok = lx.single(token.LBracket)
	case ']':
		tok = lx.single(token.RBracket)
	case '{':
		tok = lx.single(token.LBrace)
	case '}':
		tok = lx.single(token.RBrace)
	case '\'':
		tok = lx.single(token.Quote)
	case '$':
		tok = lx.single(token.Unquote)
	case '#':
		tok = lx.scanAnnotation()
	case ';':
		tok = lx.scanComment()
	case '"':
		tok = lx.scanString()
	default:
		tok = lx.scanAtom()
	}

	tok.BlankBefore = blank
	return tok
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// All drains the lexer, EOF excluded.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return out
		}
		out = append(out, tok)
	}
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File {
	return lx.file
}

func (lx *Lexer) single(kind token.Kind) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) text(sp source.Span) string {
	return lx.file.Text(sp)
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Pos(), End: lx.cursor.Pos()}
}
