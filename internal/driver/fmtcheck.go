package driver

import (
	"context"
	"fmt"
	"os"

	"tanfmt/internal/diag"
	"tanfmt/internal/format"
	"tanfmt/internal/parser"
	"tanfmt/internal/source"
)

// CheckResult is the round-trip verdict for one file.
type CheckResult struct {
	Path    string
	OK      bool
	Message string
	Err     error
}

// CheckPaths verifies for every file that formatting preserves the parsed
// expressions and is idempotent. Nothing is written.
func CheckPaths(ctx context.Context, paths []string, opts FormatOptions) ([]CheckResult, error) {
	files, err := CollectSourceFiles(ctx, paths, opts.Filter)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("check: %w", ErrNoSourceFiles)
	}
	emitQueued(opts.Progress, files)

	results := make([]CheckResult, len(files))
	err = forEachIndexed(ctx, len(files), opts.Jobs, func(_ context.Context, i int) error {
		results[i] = checkSingleFile(files[i], opts)
		return nil
	})
	return results, err
}

func checkSingleFile(path string, opts FormatOptions) CheckResult {
	res := CheckResult{Path: path}
	emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusWorking})
	defer func() {
		status := StatusDone
		if !res.OK {
			status = StatusError
		}
		emit(opts.Progress, Event{File: path, Stage: StageFormat, Status: status, Err: res.Err})
	}()

	raw, err := os.ReadFile(path)
	if err != nil {
		res.Err = err
		res.Message = err.Error()
		return res
	}
	fileSet := source.NewFileSet()
	sf := fileSet.Get(fileSet.AddNormalized(path, raw, 0))

	fopts := opts.Options
	if opts.AutoDialect {
		bag := diag.NewBag(maxDiagnostics(opts.MaxDiagnostics))
		exprs, ok := parser.Parse(sf, bag)
		if !ok {
			res.Err = &format.SyntaxError{Path: path, Bag: bag}
			res.Message = "fmt-check: initial parse failed: " + res.Err.Error()
			return res
		}
		fopts.Dialect = ResolveDialect(path, exprs, true, fopts.Dialect, opts.DataSuffixes)
	}

	res.OK, res.Message = format.CheckRoundTrip(sf, fopts, maxDiagnostics(opts.MaxDiagnostics))
	return res
}
