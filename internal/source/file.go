package source

import "slices"

// FileID indexes a file inside its FileSet.
type FileID uint32

// FileFlags records how the content reached the FileSet.
type FileFlags uint8

const (
	FileVirtual        FileFlags = 1 << iota // не с диска: stdin, тесты
	FileHadBOM                               // UTF-8 BOM был срезан
	FileNormalizedCRLF                       // \r\n заменены на \n
)

// File is one loaded source. Content is already normalized; LineIdx holds
// the offset of every '\n' in it.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Flags   FileFlags
}

// LineCol is a 1-based position.
type LineCol struct {
	Line uint32
	Col  uint32 // в байтах
}

// LineCount is the number of lines, counting a last line without '\n'.
func (f *File) LineCount() uint32 {
	return uint32(len(f.LineIdx)) + 1 //nolint:gosec // LineIdx is bounded by uint32 content offsets
}

// Resolve converts a span of this file into line and column positions.
func (f *File) Resolve(span Span) (start, end LineCol) {
	return f.position(span.Start), f.position(span.End)
}

func (f *File) position(off uint32) LineCol {
	// число '\n' строго до off = номер строки - 1
	n, _ := slices.BinarySearch(f.LineIdx, off)
	line := uint32(n) + 1 //nolint:gosec // n <= len(LineIdx)
	return LineCol{Line: line, Col: off - f.lineStart(line) + 1}
}

// lineStart is the offset of the first byte of a 1-based line.
func (f *File) lineStart(line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	return f.LineIdx[line-2] + 1
}

// GetLine returns a 1-based line without its '\n'; "" when out of range.
func (f *File) GetLine(line uint32) string {
	if line == 0 || line > f.LineCount() {
		return ""
	}
	start := f.lineStart(line)
	end := uint32(len(f.Content)) //nolint:gosec // content offsets fit uint32
	if line-1 < uint32(len(f.LineIdx)) { //nolint:gosec // same
		end = f.LineIdx[line-1]
	}
	return string(f.Content[start:end])
}

// Text returns the bytes under span as a string.
func (f *File) Text(span Span) string {
	return string(f.Content[span.Start:span.End])
}

// DisplayPath returns the file path relative to baseDir when possible.
func (f *File) DisplayPath(baseDir string) string {
	if baseDir == "" || f.Flags&FileVirtual != 0 {
		return f.Path
	}
	if rel, err := RelativePath(f.Path, baseDir); err == nil {
		return rel
	}
	return f.Path
}
