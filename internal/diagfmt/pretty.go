package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"tanfmt/internal/diag"
	"tanfmt/internal/source"
)

type palette struct {
	err, warn, info, note, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики для терминала:
//
//	path:line:col: ERROR LEX1002: message
//	   |
//	 3 | (foo "bar
//	   |      ^^^^
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if err := writeDiagnostic(w, d, fs, opts, p); err != nil {
			return err
		}
	}
	return nil
}

// Short returns the one-line header of d without excerpt.
func Short(d diag.Diagnostic, fs *source.FileSet) string {
	return header(d.Primary, fs, PathModeAuto) + ": " + d.Severity.String() + " " + d.Code.ID() + ": " + d.Message
}

func header(sp source.Span, fs *source.FileSet, mode PathMode) string {
	f := fs.Get(sp.File)
	start, _ := f.Resolve(sp)
	return displayPath(f, fs, mode) + ":" + strconv.FormatUint(uint64(start.Line), 10) + ":" + strconv.FormatUint(uint64(start.Col), 10)
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) error {
	var sb strings.Builder
	sb.WriteString(header(d.Primary, fs, opts.PathMode))
	sb.WriteString(": ")
	sb.WriteString(p.severity(d.Severity).Sprint(d.Severity.String()))
	sb.WriteString(" ")
	sb.WriteString(d.Code.ID())
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	sb.WriteString("\n")
	excerpt(&sb, d.Primary, fs, opts.Context, p)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			sb.WriteString(p.note.Sprint("note"))
			sb.WriteString(": ")
			sb.WriteString(header(n.Span, fs, opts.PathMode))
			sb.WriteString(": ")
			sb.WriteString(n.Msg)
			sb.WriteString("\n")
			excerpt(&sb, n.Span, fs, 0, p)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// excerpt пишет строку span-а с гаттером и подчёркиванием.
func excerpt(sb *strings.Builder, sp source.Span, fs *source.FileSet, context int8, p palette) {
	f := fs.Get(sp.File)
	start, end := f.Resolve(sp)

	first := start.Line
	if c := uint32(max(context, 0)); first > c {
		first -= c
	} else {
		first = 1
	}
	last := start.Line + uint32(max(context, 0))
	lineCount := f.LineCount()
	if last > lineCount {
		last = lineCount
	}

	width := len(strconv.FormatUint(uint64(last), 10))
	pad := strings.Repeat(" ", width)
	bar := p.gutter.Sprint("|")

	fmt.Fprintf(sb, "%s %s\n", pad, bar)
	for ln := first; ln <= last; ln++ {
		text := strings.ReplaceAll(f.GetLine(ln), "\t", " ")
		num := p.gutter.Sprintf("%*d", width, ln)
		fmt.Fprintf(sb, "%s %s %s\n", num, bar, text)
		if ln != start.Line {
			continue
		}
		lead := runewidth.StringWidth(prefixCols(text, start.Col))
		span := 1
		if end.Line == start.Line && end.Col > start.Col {
			span = max(runewidth.StringWidth(columnSlice(text, start.Col, end.Col)), 1)
		} else if end.Line > start.Line {
			span = max(runewidth.StringWidth(text)-lead, 1)
		}
		fmt.Fprintf(sb, "%s %s %s%s\n", pad, bar, strings.Repeat(" ", lead), p.caret.Sprint(strings.Repeat("^", span)))
	}
}

// prefixCols возвращает часть строки до байтовой колонки col (1-based).
func prefixCols(line string, col uint32) string {
	i := min(int(col)-1, len(line))
	return line[:max(i, 0)]
}

func columnSlice(line string, from, to uint32) string {
	a := min(max(int(from)-1, 0), len(line))
	b := min(max(int(to)-1, a), len(line))
	return line[a:b]
}
