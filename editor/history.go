package editor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/napalu/noshell/errs"
	"github.com/napalu/noshell/types/queue"
)

// DefaultHistoryCapacity is the number of entries kept when no capacity is given
const DefaultHistoryCapacity = 1000

// History is a bounded FIFO of submitted lines, oldest first. When full, adding a line
// evicts the oldest entry. A History loaded with LoadHistory also appends every accepted
// entry to its file.
type History struct {
	entries          *queue.Q[string]
	ignoreEmpty      bool
	ignoreDuplicates bool
	file             io.WriteCloser
	path             string
}

// ConfigureHistoryFunc configures a History
type ConfigureHistoryFunc func(h *History)

// WithIgnoreEmpty controls whether empty lines are dropped. Enabled by default.
func WithIgnoreEmpty(ignore bool) ConfigureHistoryFunc {
	return func(h *History) {
		h.ignoreEmpty = ignore
	}
}

// WithIgnoreDuplicates controls whether a line identical to the newest entry is dropped.
// Enabled by default.
func WithIgnoreDuplicates(ignore bool) ConfigureHistoryFunc {
	return func(h *History) {
		h.ignoreDuplicates = ignore
	}
}

// NewHistory creates an in-memory History. A capacity below 1 selects DefaultHistoryCapacity.
func NewHistory(capacity int, configs ...ConfigureHistoryFunc) *History {
	if capacity < 1 {
		capacity = DefaultHistoryCapacity
	}

	h := &History{
		entries:          queue.NewBounded[string](capacity),
		ignoreEmpty:      true,
		ignoreDuplicates: true,
	}
	for _, config := range configs {
		config(h)
	}

	return h
}

// LoadHistory creates a History backed by the file at path. A missing file is not an
// error. When the file cannot be read or holds an invalid entry the returned History
// is empty but usable and the error, wrapping errs.ErrHistoryLoad, is meant for logging.
// A corrupt file is moved aside to path + ".bak" before a fresh one is started.
func LoadHistory(path string, capacity int, configs ...ConfigureHistoryFunc) (*History, error) {
	h := NewHistory(capacity, configs...)
	h.path = path

	entries, loadErr := readHistoryFile(path)
	if loadErr != nil {
		var corrupt *corruptEntryError
		if errors.As(loadErr, &corrupt) {
			_ = os.Rename(path, path+".bak")
		}
		entries = nil
		loadErr = errs.ErrHistoryLoad.WithArgs(path).Wrap(loadErr)
	}

	for _, e := range entries {
		h.entries.Enqueue(e)
	}

	// keep the file bounded by the capacity
	if len(entries) > h.entries.Len() {
		if err := writeHistoryFile(path, h.entries.Slice()); err != nil && loadErr == nil {
			loadErr = errs.ErrHistoryLoad.WithArgs(path).Wrap(err)
		}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o600)
	if err != nil {
		if loadErr == nil {
			loadErr = errs.ErrHistoryLoad.WithArgs(path).Wrap(err)
		}
		return h, loadErr
	}
	h.file = f

	return h, loadErr
}

// Add appends line unless a policy rejects it and reports whether it was accepted.
// The returned error is set only when the entry could not be persisted.
func (h *History) Add(line string) (bool, error) {
	if h.ignoreEmpty && strings.TrimSpace(line) == "" {
		return false, nil
	}
	if last, ok := h.entries.Back(); ok && h.ignoreDuplicates && last == line {
		return false, nil
	}

	h.entries.Enqueue(line)

	if h.file != nil {
		if _, err := io.WriteString(h.file, escapeEntry(line)+"\n"); err != nil {
			return true, errs.ErrIOFailure.Wrap(err)
		}
	}

	return true, nil
}

// Len returns the number of entries
func (h *History) Len() int {
	return h.entries.Len()
}

// Cap returns the maximum number of entries
func (h *History) Cap() int {
	return h.entries.Cap()
}

// At returns the entry at index, 0 being the oldest.
func (h *History) At(index int) (string, bool) {
	return h.entries.At(index)
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []string {
	return h.entries.Slice()
}

// Path returns the backing file, empty for an in-memory History
func (h *History) Path() string {
	return h.path
}

// Close releases the backing file. The History remains usable in memory.
func (h *History) Close() error {
	if h.file == nil {
		return nil
	}
	err := h.file.Close()
	h.file = nil

	return err
}

// maxEntrySize bounds one encoded history line
const maxEntrySize = 1 << 20

type corruptEntryError struct {
	line   int
	reason string
}

func (e *corruptEntryError) Error() string {
	return fmt.Sprintf("%s on line %d", e.reason, e.line)
}

func readHistoryFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 4096), maxEntrySize)
	n := 0
	for scanner.Scan() {
		n++
		entry, ok := unescapeEntry(scanner.Text())
		if !ok {
			return nil, &corruptEntryError{line: n, reason: "invalid escape sequence"}
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); errors.Is(err, bufio.ErrTooLong) {
		return nil, &corruptEntryError{line: n + 1, reason: "entry too long"}
	} else if err != nil {
		return nil, err
	}

	return entries, nil
}

func writeHistoryFile(path string, entries []string) error {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(escapeEntry(e))
		b.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(b.String()), 0o600)
}

// escapeEntry encodes backslash and newline so every entry fits on one line.
func escapeEntry(s string) string {
	if !strings.ContainsAny(s, "\\\n") {
		return s
	}

	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

func unescapeEntry(s string) (string, bool) {
	if !strings.ContainsRune(s, '\\') {
		return s, true
	}

	var b strings.Builder
	escaped := false
	for _, r := range s {
		if !escaped {
			if r == '\\' {
				escaped = true
			} else {
				b.WriteRune(r)
			}
			continue
		}

		switch r {
		case '\\':
			b.WriteRune('\\')
		case 'n':
			b.WriteRune('\n')
		default:
			return "", false
		}
		escaped = false
	}
	if escaped {
		return "", false
	}

	return b.String(), true
}
