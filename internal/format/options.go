package format

import "tanfmt/internal/dialect"

// DefaultIndentWidth is used when Options.IndentWidth is not set.
const DefaultIndentWidth = 4

type Options struct {
	IndentWidth int
	Dialect     dialect.Dialect
}

func (o Options) withDefaults() Options {
	if o.IndentWidth <= 0 {
		o.IndentWidth = DefaultIndentWidth
	}
	return o
}
