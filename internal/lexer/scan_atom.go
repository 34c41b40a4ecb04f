package lexer

import (
	"errors"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"tanfmt/internal/diag"
	"tanfmt/internal/source"
	"tanfmt/internal/token"
)

// scanAnnotation: '#' перед '(' — это Hash, '#name' — Annotation.
func (lx *Lexer) scanAnnotation() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '#'
	if lx.cursor.Peek() == '(' {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Hash, Span: sp, Text: "#"}
	}
	nameStart := lx.cursor.Mark()
	lx.eatAtomBody()
	if lx.cursor.Mark() == nameStart {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "'#' must be followed by a name or a list")
		return token.Token{Kind: token.Invalid, Span: sp, Text: "#"}
	}
	sp := lx.cursor.SpanFrom(start)
	name := string(lx.file.Content[uint32(nameStart):sp.End])
	return token.Token{Kind: token.Annotation, Span: sp, Text: norm.NFC.String(name)}
}

// scanAtom читает всё до разделителя и классифицирует текст.
func (lx *Lexer) scanAtom() token.Token {
	start := lx.cursor.Mark()
	lx.eatAtomBody()
	if lx.cursor.Mark() == start {
		// одиночный байт, который не может начинать атом
		lx.cursor.BumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unexpected character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	kind := lx.classifyAtom(text, sp)
	switch kind {
	case token.Symbol:
		text = norm.NFC.String(text)
	case token.KeySymbol:
		text = norm.NFC.String(text[1:])
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}

func (lx *Lexer) eatAtomBody() {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isDelimiter(b) {
			return
		}
		lx.cursor.BumpRune()
	}
}

func (lx *Lexer) classifyAtom(text string, sp source.Span) token.Kind {
	switch {
	case text == "true" || text == "false":
		return token.BoolLit
	case len(text) > 1 && text[0] == ':':
		return token.KeySymbol
	}

	if idx := strings.Index(text, ".."); idx > 0 && idx+2 < len(text) {
		if !validRange(text[idx+2:]) {
			lx.errLex(diag.LexBadRange, sp, "invalid range literal "+strconv.Quote(text))
			return token.Invalid
		}
		return token.RangeLit
	}

	if startsNumber(text) {
		_, err := strconv.ParseInt(text, 0, 64)
		if err == nil {
			return token.IntLit
		}
		if errors.Is(err, strconv.ErrRange) && !strings.ContainsAny(text, ".eE") {
			lx.errLex(diag.LexBadNumber, sp, "integer literal out of range "+strconv.Quote(text))
			return token.Invalid
		}
		if _, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64); err == nil {
			return token.FloatLit
		}
		lx.errLex(diag.LexBadNumber, sp, "invalid number literal "+strconv.Quote(text))
		return token.Invalid
	}
	return token.Symbol
}

// validRange проверяет хвост после "..": end или end|step, без пустых частей.
func validRange(rest string) bool {
	end, step, hasStep := strings.Cut(rest, "|")
	if end == "" || strings.Contains(end, "..") {
		return false
	}
	if hasStep && (step == "" || strings.Contains(step, "|")) {
		return false
	}
	return true
}

func startsNumber(text string) bool {
	if isDec(text[0]) {
		return true
	}
	return len(text) > 1 && (text[0] == '-' || text[0] == '+') && isDec(text[1])
}
