package driver

import (
	"io"
	"os"

	"tanfmt/internal/diag"
	"tanfmt/internal/expr"
	"tanfmt/internal/lexer"
	"tanfmt/internal/parser"
	"tanfmt/internal/source"
	"tanfmt/internal/token"
)

// StdinPath selects standard input for the single-file commands.
const StdinPath = "-"

// Inspection is what the tokenize, parse and layout commands look at. Syntax
// errors do not fail the load; they stay in Bag next to whatever was read.
type Inspection struct {
	FileSet *source.FileSet
	File    *source.File
	Bag     *diag.Bag
	Tokens  []token.Token // only from Tokenize
	Exprs   []*expr.Expr  // only from Parse
}

func inspect(path string, maxDiagnostics int) (*Inspection, error) {
	fs := source.NewFileSet()
	var id source.FileID
	if path == StdinPath {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		id = fs.AddNormalized("<stdin>", content, source.FileVirtual)
	} else {
		var err error
		if id, err = fs.Load(path); err != nil {
			return nil, err
		}
	}
	return &Inspection{
		FileSet: fs,
		File:    fs.Get(id),
		Bag:     diag.NewBag(maxDiagnostics),
	}, nil
}

// Tokenize lexes one file, comments included.
func Tokenize(path string, maxDiagnostics int) (*Inspection, error) {
	in, err := inspect(path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	lx := lexer.New(in.File, lexer.Options{Reporter: diag.BagReporter{Bag: in.Bag}})
	in.Tokens = lx.All()
	return in, nil
}

// Parse loads path and parses it; diagnostics come back sorted.
func Parse(path string, maxDiagnostics int) (*Inspection, error) {
	in, err := inspect(path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	in.Exprs, _ = parser.Parse(in.File, in.Bag)
	in.Bag.Sort()
	return in, nil
}
