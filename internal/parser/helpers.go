package parser

import (
	"tanfmt/internal/diag"
	"tanfmt/internal/expr"
	"tanfmt/internal/source"
	"tanfmt/internal/token"
)

// advance — съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan — для EOF используем позицию сразу после последнего токена
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if sev >= diag.SevError {
		p.opts.CurrentErrors++
	}
	if p.opts.Reporter == nil {
		return false
	}
	p.opts.Reporter.Report(code, sev, sp, msg, nil)
	return true
}

// place проставляет узлу Span и Range.
func (p *Parser) place(e *expr.Expr, sp source.Span) *expr.Expr {
	e.Span = sp
	start, end := p.file.Resolve(sp)
	e.Range = &expr.Range{Start: start, End: end}
	return e
}

// separator строит маркер пустой строки перед tok. Позиции у него нет:
// он не должен притягивать inline-комментарии.
func (p *Parser) separator(tok token.Token) *expr.Expr {
	sep := expr.NewSeparator()
	sep.Span = source.Span{File: tok.Span.File, Start: tok.Span.Start, End: tok.Span.Start}
	return sep
}
