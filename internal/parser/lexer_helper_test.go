package parser_test

import (
	"tanfmt/internal/diag"
	"tanfmt/internal/lexer"
	"tanfmt/internal/source"
)

func newLexer(sf *source.File, bag *diag.Bag) *lexer.Lexer {
	return lexer.New(sf, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
}
