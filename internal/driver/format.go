package driver

import (
	"bytes"
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"strconv"
	"time"

	"tanfmt/internal/dialect"
	"tanfmt/internal/diag"
	"tanfmt/internal/expr"
	"tanfmt/internal/format"
	"tanfmt/internal/observ"
	"tanfmt/internal/parser"
	"tanfmt/internal/project"
	"tanfmt/internal/source"
	"tanfmt/internal/version"
)

// FormatOptions configures code formatting.
type FormatOptions struct {
	Check          bool
	Stdout         bool
	MaxDiagnostics int
	// Options.Dialect is used only when AutoDialect is false.
	Options      format.Options
	AutoDialect  bool
	DataSuffixes []string
	Filter       FileFilter
	Jobs         int
	Cache        *DiskCache
	Progress     ProgressSink
	Timings      *observ.Aggregate
}

// FormatResult captures the result of formatting a single file.
type FormatResult struct {
	Path      string
	Changed   bool
	Cached    bool
	Dialect   dialect.Dialect
	Err       error
	Formatted []byte
	// FileSet and Bag are set when the file did not parse.
	FileSet *source.FileSet
	Bag     *diag.Bag
}

// FormatPaths formats provided files or directories (recursively collecting
// files that match opts.Filter).
// When opts.Check is true, files are not modified; Changed indicates whether
// formatting would update the file contents. When opts.Stdout is true,
// formatted content is returned in the results without touching files on disk.
// Per-file failures land in FormatResult.Err; the returned error is reserved
// for collection failures and cancellation.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	files, err := CollectSourceFiles(ctx, paths, opts.Filter)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("format: %w", ErrNoSourceFiles)
	}
	return FormatFiles(ctx, files, opts)
}

// FormatFiles formats an already collected file list in parallel. Results
// keep the order of files.
func FormatFiles(ctx context.Context, files []string, opts FormatOptions) ([]FormatResult, error) {
	logger := LoggerFromContext(ctx)
	emitQueued(opts.Progress, files)

	results := make([]FormatResult, len(files))
	done := make([]bool, len(files))
	err := forEachIndexed(ctx, len(files), opts.Jobs, func(ctx context.Context, i int) error {
		results[i] = formatSingleFile(ctx, files[i], opts)
		done[i] = true
		return nil
	})

	out := results[:0]
	for i := range results {
		if done[i] {
			out = append(out, results[i])
		}
	}
	if err != nil {
		return out, err
	}

	changed, failed := 0, 0
	for _, r := range out {
		switch {
		case r.Err != nil:
			failed++
		case r.Changed:
			changed++
		}
	}
	logger.Debug("format finished", "files", len(out), "changed", changed, "errors", failed)
	return out, nil
}

func formatSingleFile(ctx context.Context, path string, opts FormatOptions) (result FormatResult) {
	logger := LoggerFromContext(ctx)
	timer := observ.NewTimer()
	start := time.Now()
	result.Path = path

	stage := StageRead
	defer func() {
		status := StatusDone
		switch {
		case result.Err != nil:
			status = StatusError
			logger.Debug("format failed", "path", path, "err", result.Err)
		case result.Changed:
			status = StatusChanged
		}
		emit(opts.Progress, Event{File: path, Stage: stage, Status: status, Err: result.Err, Elapsed: time.Since(start)})
		if opts.Timings != nil {
			opts.Timings.Add(timer.Report())
		}
	}()

	emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusWorking})
	idx := timer.Begin("read")
	raw, err := os.ReadFile(path)
	timer.End(idx, "")
	if err != nil {
		result.Err = err
		return result
	}

	key := cacheKey(raw, path, opts)
	if formatted, d, ok := lookupCache(opts.Cache, key, raw); ok {
		logger.Debug("cache hit", "path", path)
		result.Cached = true
		result.Dialect = d
		result.Changed = !bytes.Equal(raw, formatted)
		stage = finish(path, formatted, &result, opts)
		return result
	}

	stage = StageParse
	emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusWorking})
	fileSet := source.NewFileSet()
	sf := fileSet.Get(fileSet.AddNormalized(path, raw, 0))
	bag := diag.NewBag(maxDiagnostics(opts.MaxDiagnostics))
	idx = timer.Begin("parse")
	exprs, ok := parser.Parse(sf, bag)
	timer.End(idx, "")
	if !ok {
		bag.Sort()
		result.FileSet = fileSet
		result.Bag = bag
		result.Err = &format.SyntaxError{Path: path, Bag: bag}
		return result
	}

	stage = StageFormat
	emit(opts.Progress, Event{File: path, Stage: StageFormat, Status: StatusWorking})
	fopts := opts.Options
	var why string
	fopts.Dialect, why = resolveDialect(path, exprs, opts.AutoDialect, opts.Options.Dialect, opts.DataSuffixes)
	result.Dialect = fopts.Dialect
	logger.Debug("dialect", "path", path, "dialect", fopts.Dialect, "reason", why)
	idx = timer.Begin("format")
	text, err := format.Format(exprs, fopts)
	timer.End(idx, "")
	if err != nil {
		result.Err = fmt.Errorf("%s: %w", path, err)
		return result
	}
	formatted := []byte(text)
	result.Changed = !bytes.Equal(raw, formatted)

	if opts.Cache != nil {
		payload := &FormatPayload{
			Dialect:    uint8(fopts.Dialect),
			Canonical:  !result.Changed,
			OutputHash: sha256.Sum256(formatted),
		}
		if result.Changed {
			payload.Output = formatted
		}
		if err := opts.Cache.Put(key, payload); err != nil {
			logger.Warn("cache write failed", "path", path, "err", err)
		}
	}

	stage = finish(path, formatted, &result, opts)
	return result
}

// finish applies the output mode and returns the last stage reached.
func finish(path string, formatted []byte, result *FormatResult, opts FormatOptions) Stage {
	switch {
	case opts.Check:
		return StageFormat
	case opts.Stdout:
		result.Formatted = formatted
		return StageFormat
	case !result.Changed:
		return StageFormat
	}

	emit(opts.Progress, Event{File: path, Stage: StageWrite, Status: StatusWorking})
	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(path, formatted, mode.Perm()); err != nil {
		result.Err = err
		result.Changed = false
	}
	return StageWrite
}

// ResolveDialect picks the dialect for one file: an explicit choice wins,
// then the file name, then evidence collected from the parsed file.
func ResolveDialect(path string, exprs []*expr.Expr, auto bool, explicit dialect.Dialect, dataSuffixes []string) dialect.Dialect {
	d, _ := resolveDialect(path, exprs, auto, explicit, dataSuffixes)
	return d
}

func resolveDialect(path string, exprs []*expr.Expr, auto bool, explicit dialect.Dialect, dataSuffixes []string) (dialect.Dialect, string) {
	if !auto {
		return explicit, "configured"
	}
	if d, ok := dialect.ForPath(path, dataSuffixes); ok {
		return d, "file name"
	}
	v := dialect.Collect(exprs).Verdict()
	if v.Deciding == nil {
		return v.Dialect, "no evidence"
	}
	return v.Dialect, v.Deciding.Reason
}

// cacheKey covers everything that can change the output for raw: the
// explicit or path-derived dialect, the indent width and the tool version.
func cacheKey(raw []byte, path string, opts FormatOptions) project.Digest {
	choice := "auto"
	if !opts.AutoDialect {
		choice = opts.Options.Dialect.String()
	} else if d, ok := dialect.ForPath(path, opts.DataSuffixes); ok {
		choice = d.String()
	}
	indent := opts.Options.IndentWidth
	if indent <= 0 {
		indent = format.DefaultIndentWidth
	}
	return project.Combine(sha256.Sum256(raw), choice, strconv.Itoa(indent), version.Version)
}

func lookupCache(cache *DiskCache, key project.Digest, raw []byte) ([]byte, dialect.Dialect, bool) {
	if cache == nil {
		return nil, dialect.Code, false
	}
	var payload FormatPayload
	ok, err := cache.Get(key, &payload)
	if err != nil || !ok {
		return nil, dialect.Code, false
	}
	if payload.Canonical {
		return raw, dialect.Dialect(payload.Dialect), true
	}
	return payload.Output, dialect.Dialect(payload.Dialect), true
}

func maxDiagnostics(n int) int {
	if n <= 0 {
		return 256
	}
	return n
}
