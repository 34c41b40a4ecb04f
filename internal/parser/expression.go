package parser

import (
	"tanfmt/internal/diag"
	"tanfmt/internal/expr"
	"tanfmt/internal/token"
)

// parseExpr читает аннотации и следующий за ними узел.
func (p *Parser) parseExpr() *expr.Expr {
	var ann map[string]*expr.Expr
	annStart := p.lx.Peek().Span

	for p.atOr(token.Annotation, token.Hash) {
		key, value, ok := p.parseAnnotation()
		if !ok {
			continue
		}
		if ann == nil {
			ann = make(map[string]*expr.Expr, 1)
		}
		ann[key] = value
	}

	if ann != nil && p.atDangling() {
		p.report(diag.SynDanglingAnn, diag.SevError, annStart.Cover(p.lastSpan), "annotation is not followed by an expression")
		return nil
	}

	e := p.parsePrimary()
	if e == nil || ann == nil {
		return e
	}
	if e.Ann == nil {
		e.Ann = ann
	} else {
		for k, v := range ann {
			e.Ann[k] = v
		}
	}
	return e
}

// parseAnnotation: #name → name: true (или type: Name для имён с заглавной),
// #(k ...) → k: (k ...).
func (p *Parser) parseAnnotation() (key string, value *expr.Expr, ok bool) {
	tok := p.advance()
	if tok.Kind == token.Annotation {
		if isTypeName(tok.Text) {
			return "type", p.place(expr.NewSymbol(tok.Text), tok.Span), true
		}
		return tok.Text, p.place(expr.NewBool(true), tok.Span), true
	}

	// Hash: лексер гарантирует, что дальше '('
	open := p.advance()
	list := p.parseList(open, token.RParen)
	if list == nil {
		return "", nil, false
	}
	head, isSym := list.Head()
	if !isSym {
		p.report(diag.SynUnexpectedToken, diag.SevError, list.Span, "annotation list must start with a symbol")
		return "", nil, false
	}
	return head, list, true
}

func (p *Parser) parsePrimary() *expr.Expr {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.LParen:
		p.advance()
		list := p.parseList(tok, token.RParen)
		if list != nil && len(list.List) == 0 {
			list.Kind = expr.Unit
		}
		return list
	case token.LBracket:
		p.advance()
		return p.parseSugar(tok, token.RBracket, "Array")
	case token.LBrace:
		p.advance()
		return p.parseSugar(tok, token.RBrace, "Map")
	case token.Quote:
		return p.parsePrefixed("quot")
	case token.Unquote:
		return p.parsePrefixed("unquot")
	case token.Comment:
		p.advance()
		return p.place(expr.NewComment(tok.Text), tok.Span)
	case token.Invalid:
		// лексер уже зарепортил
		p.advance()
		return nil
	default:
		if tok.IsLiteral() {
			p.advance()
			return p.parseAtom(tok)
		}
		p.advance()
		p.report(diag.SynUnexpectedToken, diag.SevError, tok.Span, "unexpected token "+tok.Kind.String())
		return nil
	}
}

// parseList читает элементы после open до closer включительно.
func (p *Parser) parseList(open token.Token, closer token.Kind) *expr.Expr {
	items := p.parseSeq(closer, open)
	sp := open.Span
	if p.at(closer) {
		sp = sp.Cover(p.advance().Span)
	} else {
		sp = sp.Cover(p.lastSpan)
	}
	return p.place(expr.NewList(items...), sp)
}

// parseSugar: [a b] → (Array a b), {k v} → (Map k v)
func (p *Parser) parseSugar(open token.Token, closer token.Kind, head string) *expr.Expr {
	list := p.parseList(open, closer)
	sym := p.place(expr.NewSymbol(head), open.Span)
	list.List = append([]*expr.Expr{sym}, list.List...)
	return list
}

// parsePrefixed: 'x → (quot x), $x → (unquot x)
func (p *Parser) parsePrefixed(head string) *expr.Expr {
	tok := p.advance()
	if p.atDangling() {
		p.report(diag.SynDanglingPrefix, diag.SevError, tok.Span, "prefix "+tok.Text+" is not followed by an expression")
		return nil
	}
	inner := p.parseExpr()
	if inner == nil {
		return nil
	}
	sym := p.place(expr.NewSymbol(head), tok.Span)
	return p.place(expr.NewList(sym, inner), tok.Span.Cover(inner.Span))
}

// atDangling: nothing a prefix or an annotation could apply to follows.
// A comment runs to the end of the line and is not an operand.
func (p *Parser) atDangling() bool {
	return p.lx.Peek().IsClose() || p.atOr(token.EOF, token.Comment)
}

func isTypeName(name string) bool {
	return name != "" && name[0] >= 'A' && name[0] <= 'Z'
}
