package lexer

import (
	"tanfmt/internal/diag"
	"tanfmt/internal/token"
)

// scanString читает "..." целиком; строки могут быть многострочными.
// Допустимые escape: \\ \" \n \t \r. Неизвестный escape репортится,
// но токен остаётся строкой, чтобы парсер мог продолжить.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '"':
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp)}
		case '\\':
			escStart := lx.cursor.Mark()
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				continue
			}
			if !isEscape(lx.cursor.Peek()) {
				lx.cursor.BumpRune()
				lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(escStart), "invalid escape sequence in string literal")
				continue
			}
			lx.cursor.Bump()
		default:
			lx.cursor.Bump()
		}
	}
	// EOF без закрывающей кавычки
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

func isEscape(b byte) bool {
	switch b {
	case '\\', '"', 'n', 't', 'r':
		return true
	default:
		return false
	}
}
