package lexer

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"tanfmt/internal/source"
)

// Cursor walks the bytes of one file. Spans it hands out belong to that file.
type Cursor struct {
	src  []byte
	file source.FileID
	off  uint32
	end  uint32
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{src: f.Content, file: f.ID, end: end}
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return c.off >= c.end
}

// Pos is the byte offset of the next unread byte.
func (c *Cursor) Pos() uint32 {
	return c.off
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.src[c.off]
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.src[c.off]
	c.off++
	return b
}

// PeekRune decodes the rune at the cursor; size is 0 at EOF.
func (c *Cursor) PeekRune() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	if b := c.src[c.off]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(c.src[c.off:c.end])
}

// BumpRune advances past one rune (one byte for invalid UTF-8).
func (c *Cursor) BumpRune() {
	_, size := c.PeekRune()
	c.off += uint32(size) //nolint:gosec // size is at most utf8.UTFMax
}

// SkipUntil advances to the next b, or to EOF when there is none.
func (c *Cursor) SkipUntil(b byte) {
	if i := bytes.IndexByte(c.src[c.off:c.end], b); i >= 0 {
		c.off += uint32(i) //nolint:gosec // bounded by end
		return
	}
	c.off = c.end
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.file, Start: uint32(m), End: c.off}
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.off = uint32(m)
}
