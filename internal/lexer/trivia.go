package lexer

import "tanfmt/internal/token"

// skipWhitespace пропускает пробелы, табы и переводы строк.
// Возвращает true, если встретилась пустая строка (два и более '\n').
func (lx *Lexer) skipWhitespace() bool {
	newlines := 0
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\r', '\f':
			lx.cursor.Bump()
		case '\n':
			newlines++
			lx.cursor.Bump()
		default:
			return newlines >= 2
		}
	}
	return newlines >= 2
}

// scanComment читает ';' до конца строки; хвостовые пробелы отбрасываются.
func (lx *Lexer) scanComment() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.SkipUntil('\n')
	sp := lx.cursor.SpanFrom(start)
	for sp.End > sp.Start {
		b := lx.file.Content[sp.End-1]
		if b != ' ' && b != '\t' && b != '\r' {
			break
		}
		sp.End--
	}
	return token.Token{Kind: token.Comment, Span: sp, Text: lx.text(sp)}
}
