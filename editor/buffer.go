package editor

import (
	"unicode"

	"github.com/napalu/noshell/internal/util"
)

// Buffer is the editable content of one line and a cursor with 0 <= cursor <= Len.
// Mutators report whether anything changed.
type Buffer struct {
	runes  []rune
	cursor int
}

// String returns the content
func (b *Buffer) String() string {
	return string(b.runes)
}

// Len returns the content length in runes
func (b *Buffer) Len() int {
	return len(b.runes)
}

// Cursor returns the cursor offset in runes
func (b *Buffer) Cursor() int {
	return b.cursor
}

// Insert splices r at the cursor and advances it.
func (b *Buffer) Insert(r ...rune) bool {
	if len(r) == 0 {
		return false
	}
	b.runes = util.InsertSlice(b.runes, b.cursor, r...)
	b.cursor += len(r)

	return true
}

// Set replaces the content and moves the cursor to the end.
func (b *Buffer) Set(s string) bool {
	old := string(b.runes)
	b.runes = []rune(s)
	moved := b.cursor != len(b.runes)
	b.cursor = len(b.runes)

	return old != s || moved
}

// Left moves the cursor one rune left
func (b *Buffer) Left() bool {
	if b.cursor == 0 {
		return false
	}
	b.cursor--

	return true
}

// Right moves the cursor one rune right
func (b *Buffer) Right() bool {
	if b.cursor == len(b.runes) {
		return false
	}
	b.cursor++

	return true
}

// Home moves the cursor to the start
func (b *Buffer) Home() bool {
	if b.cursor == 0 {
		return false
	}
	b.cursor = 0

	return true
}

// End moves the cursor to the end
func (b *Buffer) End() bool {
	if b.cursor == len(b.runes) {
		return false
	}
	b.cursor = len(b.runes)

	return true
}

// Backspace removes the rune before the cursor
func (b *Buffer) Backspace() bool {
	if b.cursor == 0 {
		return false
	}
	b.runes = util.RemoveSlice(b.runes, b.cursor-1, b.cursor)
	b.cursor--

	return true
}

// Delete removes the rune at the cursor
func (b *Buffer) Delete() bool {
	if b.cursor == len(b.runes) {
		return false
	}
	b.runes = util.RemoveSlice(b.runes, b.cursor, b.cursor+1)

	return true
}

// KillToEnd removes everything from the cursor to the end
func (b *Buffer) KillToEnd() bool {
	if b.cursor == len(b.runes) {
		return false
	}
	b.runes = b.runes[:b.cursor]

	return true
}

// DeleteWord removes the whitespace-delimited word before the cursor, including the
// whitespace between it and the cursor.
func (b *Buffer) DeleteWord() bool {
	start := b.cursor
	for start > 0 && unicode.IsSpace(b.runes[start-1]) {
		start--
	}
	for start > 0 && !unicode.IsSpace(b.runes[start-1]) {
		start--
	}
	if start == b.cursor {
		return false
	}
	b.runes = util.RemoveSlice(b.runes, start, b.cursor)
	b.cursor = start

	return true
}

// Replace substitutes the runes in [from, to) with s and puts the cursor after s.
func (b *Buffer) Replace(from, to int, s string) bool {
	from = max(0, min(from, len(b.runes)))
	to = max(from, min(to, len(b.runes)))

	r := []rune(s)
	if string(b.runes[from:to]) == s {
		if b.cursor == from+len(r) {
			return false
		}
		b.cursor = from + len(r)
		return true
	}

	b.runes = util.InsertSlice(util.RemoveSlice(b.runes, from, to), from, r...)
	b.cursor = from + len(r)

	return true
}

// Clear empties the buffer
func (b *Buffer) Clear() bool {
	if len(b.runes) == 0 {
		return false
	}
	b.runes = nil
	b.cursor = 0

	return true
}
