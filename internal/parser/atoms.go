package parser

import (
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"tanfmt/internal/diag"
	"tanfmt/internal/expr"
	"tanfmt/internal/source"
	"tanfmt/internal/token"
)

func (p *Parser) parseAtom(tok token.Token) *expr.Expr {
	switch tok.Kind {
	case token.StringLit:
		return p.place(expr.NewString(expr.UnquoteString(tok.Text)), tok.Span)
	case token.BoolLit:
		return p.place(expr.NewBool(tok.Text == "true"), tok.Span)
	case token.KeySymbol:
		return p.place(expr.NewKeySymbol(tok.Text), tok.Span)
	case token.RangeLit:
		return p.parseRange(tok)
	default:
		e, ok := p.number(tok.Text, tok.Kind)
		if !ok {
			p.report(diag.LexBadNumber, diag.SevError, tok.Span, "invalid number literal "+strconv.Quote(tok.Text))
			return nil
		}
		return p.place(e, tok.Span)
	}
}

// number превращает текст атома в Int/Float/Symbol по виду токена.
func (p *Parser) number(text string, kind token.Kind) (*expr.Expr, bool) {
	switch kind {
	case token.IntLit:
		v, err := strconv.ParseInt(text, 0, 64)
		return expr.NewInt(v), err == nil
	case token.FloatLit:
		v, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
		return expr.NewFloat(v), err == nil
	default:
		return expr.NewSymbol(text), true
	}
}

// parseRange: a..b|s → (Range a b s). Части получают собственные спаны.
func (p *Parser) parseRange(tok token.Token) *expr.Expr {
	startText, rest, _ := strings.Cut(tok.Text, "..")
	endText, stepText, hasStep := strings.Cut(rest, "|")

	parts := []string{startText, endText}
	if hasStep {
		parts = append(parts, stepText)
	}

	items := []*expr.Expr{p.place(expr.NewSymbol("Range"), tok.Span)}
	off := tok.Span.Start
	for i, part := range parts {
		e, ok := p.number(part, classifyPart(part))
		if !ok {
			p.report(diag.LexBadRange, diag.SevError, tok.Span, "invalid range component "+strconv.Quote(part))
			return nil
		}
		n, err := safecast.Conv[uint32](len(part))
		if err != nil {
			panic(fmt.Errorf("range component overflow: %w", err))
		}
		items = append(items, p.place(e, source.Span{File: tok.Span.File, Start: off, End: off + n}))
		off += n
		if i == 0 {
			off += 2 // ".."
		} else {
			off++ // "|"
		}
	}
	return p.place(expr.NewList(items...), tok.Span)
}

func classifyPart(part string) token.Kind {
	if part == "" {
		return token.Symbol
	}
	c := part[0]
	if c == '-' || c == '+' {
		if len(part) == 1 {
			return token.Symbol
		}
		c = part[1]
	}
	if c < '0' || c > '9' {
		return token.Symbol
	}
	if _, err := strconv.ParseInt(part, 0, 64); err == nil {
		return token.IntLit
	}
	return token.FloatLit
}
