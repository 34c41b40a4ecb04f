package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
	maxFuzzInput = 16 << 10
)

// inlineSeeds cover each syntax form at least once.
var inlineSeeds = []string{
	"",
	"(foo 1 2)",
	"(let x 1 ; one\n y 2)",
	"(cond (> x 0) \"pos\" else \"neg\")",
	"[1 2 3] {:a 1 :b [x y]}",
	"'(a $b) 0..10|2",
	"#pub #Int #(min 1) x",
	"(do a)\n\n\n(b) ; tail",
	"\"esc \\\" \\n \\t\"",
	"(Func [a b] (+ a b))",
}

// formatSeeds are inputs whose formatted output is known to be stable.
var formatSeeds = []string{
	"",
	"(foo 1 ; note\n 2)",
	"(let x 1 y 2)",
	"(let x (if c a) y [1 2 3])",
	"(cond a 1 b 2)",
	"; header\n\n(do (let x 1 y 2) (if c a b))\n\n\n(for [i 0..10] (print i))",
	"#pub (Func [a b] (+ a b))",
	"{:name \"tan\" :tags [a b] :nested {:x 1.0}}",
	"'(a $b)",
	"(do a) ; c\n(b)",
}

// crasherSeeds once broke formatting: output that failed to parse or lost
// source text.
var crasherSeeds = []string{
	"($ ;\n)",
	"'; c\nx",
	"((f ; c\n x) y)",
	"(#pub f x)",
	"((g #inline x) y)",
	"(Range 1 ; c\n 2)",
	"(quot a ; c\n b)",
	"(do\n x) ; c",
	"(let a (do x) ; c)",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	for _, s := range crasherSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.tan файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".tan" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) > maxSeedBytes {
		src = src[:maxSeedBytes]
	}
	return append([]byte(nil), src...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
