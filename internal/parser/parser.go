package parser

import (
	"slices"

	"tanfmt/internal/diag"
	"tanfmt/internal/expr"
	"tanfmt/internal/lexer"
	"tanfmt/internal/source"
	"tanfmt/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Exprs []*expr.Expr
	// Errors — сколько ошибок зарепортил сам парсер (без лексера)
	Errors uint
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
}

// ParseFile — входная точка для разбора одного файла.
// Требует уже созданный lexer (на основе source.File).
func ParseFile(lx *lexer.Lexer, opts Options) Result {
	p := Parser{
		lx:   lx,
		file: lx.File(),
		opts: opts,
	}
	exprs := p.parseSeq(token.EOF, token.Token{})
	return Result{Exprs: exprs, Errors: p.opts.CurrentErrors}
}

// Parse is a shortcut that lexes and parses f, reporting into bag.
// ok is false when bag holds errors afterwards.
func Parse(f *source.File, bag *diag.Bag) (exprs []*expr.Expr, ok bool) {
	rep := diag.BagReporter{Bag: bag}
	lx := lexer.New(f, lexer.Options{Reporter: rep})
	res := ParseFile(lx, Options{Reporter: rep})
	return res.Exprs, !bag.HasErrors()
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseSeq читает элементы до closer (или EOF на верхнем уровне).
// Пустая строка между элементами превращается в TextSeparator.
func (p *Parser) parseSeq(closer token.Kind, open token.Token) []*expr.Expr {
	var items []*expr.Expr
	for {
		if p.opts.Enough() {
			p.drain()
			return items
		}
		tok := p.lx.Peek()
		switch {
		case tok.Kind == closer:
			return items
		case tok.Kind == token.EOF:
			p.report(unclosedCode(closer), diag.SevError, open.Span, "unclosed "+open.Text)
			return items
		case tok.IsClose():
			p.advance()
			p.report(diag.SynUnexpectedClosing, diag.SevError, tok.Span, "unexpected closing "+tok.Text)
			continue
		}

		if tok.BlankBefore && len(items) > 0 {
			items = append(items, p.separator(tok))
		}
		if e := p.parseExpr(); e != nil {
			items = append(items, e)
		}
	}
}

func (p *Parser) drain() {
	for !p.at(token.EOF) {
		p.advance()
	}
}

func unclosedCode(closer token.Kind) diag.Code {
	switch closer {
	case token.RBracket:
		return diag.SynUnclosedBracket
	case token.RBrace:
		return diag.SynUnclosedBrace
	default:
		return diag.SynUnclosedParen
	}
}
