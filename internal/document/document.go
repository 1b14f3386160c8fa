// Package document provides the document model used to resolve picker
// launch targets: normalized text, line ending convention, and
// offset/point conversion.
package document

import (
	"path/filepath"
	"sort"
	"strings"
)

// Document is an immutable snapshot of an open file.
//
// Text is stored normalized: every line terminator is a single '\n',
// regardless of the document's on-disk convention. Offsets index into
// this normalized text, matching how editor hosts track positions.
// The original convention is remembered so offsets can be mapped back
// to the on-disk representation.
type Document struct {
	path       string
	name       string
	text       string
	lineEnding LineEnding

	// lineStarts[i] is the offset of the first character of line i.
	lineStarts []Offset
}

// Option is a functional option for configuring a Document.
type Option func(*Document)

// WithLineEnding overrides the detected line ending convention.
func WithLineEnding(le LineEnding) Option {
	return func(d *Document) {
		d.lineEnding = le
	}
}

// New creates a document from a file path and raw content.
// The line ending convention is detected from the content unless
// overridden with WithLineEnding.
func New(path string, content []byte, opts ...Option) *Document {
	text := string(content)
	d := &Document{
		path:       path,
		name:       displayName(path),
		lineEnding: DetectLineEnding(text),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.text = normalize(text)
	d.lineStarts = indexLines(d.text)
	return d
}

// NewScratch creates a document with no backing file.
func NewScratch(content string, opts ...Option) *Document {
	return New("", []byte(content), opts...)
}

func displayName(path string) string {
	if path == "" {
		return "Untitled"
	}
	return filepath.Base(path)
}

// normalize rewrites all line terminators as '\n'.
func normalize(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// indexLines returns the offsets of all line starts in normalized text.
// There is always at least one line.
func indexLines(text string) []Offset {
	starts := []Offset{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, Offset(i+1))
		}
	}
	return starts
}

// Path returns the absolute file path, or "" for scratch documents.
func (d *Document) Path() string {
	return d.path
}

// HasPath returns true if the document is backed by a file.
func (d *Document) HasPath() bool {
	return d.path != ""
}

// Name returns the display name (file name, or "Untitled").
func (d *Document) Name() string {
	return d.name
}

// LineEnding returns the document's line ending convention.
func (d *Document) LineEnding() LineEnding {
	return d.lineEnding
}

// Text returns the normalized document text.
func (d *Document) Text() string {
	return d.text
}

// Len returns the length of the normalized text.
func (d *Document) Len() Offset {
	return Offset(len(d.text))
}

// IsEmpty returns true if the document contains no text.
func (d *Document) IsEmpty() bool {
	return len(d.text) == 0
}

// LineCount returns the number of lines. An empty document has one line.
func (d *Document) LineCount() uint32 {
	return uint32(len(d.lineStarts))
}

// LineText returns the text of the given line without its terminator.
// Returns "" for out-of-range lines.
func (d *Document) LineText(line uint32) string {
	if line >= d.LineCount() {
		return ""
	}
	start := d.lineStarts[line]
	end := d.LineEndOffset(line)
	return d.text[start:end]
}

// LineStartOffset returns the offset of the first character of the line.
// Out-of-range lines are clamped to the last line.
func (d *Document) LineStartOffset(line uint32) Offset {
	if line >= d.LineCount() {
		line = d.LineCount() - 1
	}
	return d.lineStarts[line]
}

// LineEndOffset returns the offset just past the last character of the
// line, not counting the terminator.
func (d *Document) LineEndOffset(line uint32) Offset {
	if line >= d.LineCount() {
		line = d.LineCount() - 1
	}
	if line+1 < d.LineCount() {
		return d.lineStarts[line+1] - 1
	}
	return d.Len()
}

// OffsetToPoint converts an offset to a line/column point.
// Offsets are clamped to the valid range [0, Len()].
func (d *Document) OffsetToPoint(offset Offset) Point {
	if offset < 0 {
		offset = 0
	}
	if offset > d.Len() {
		offset = d.Len()
	}

	// Find the last line start <= offset.
	line := sort.Search(len(d.lineStarts), func(i int) bool {
		return d.lineStarts[i] > offset
	}) - 1

	return Point{
		Line:   uint32(line),
		Column: uint32(offset - d.lineStarts[line]),
	}
}

// PointToOffset converts a line/column point to an offset.
// The line is clamped to the valid range; the column is clamped to the
// line length.
func (d *Document) PointToOffset(point Point) Offset {
	line := point.Line
	if line >= d.LineCount() {
		line = d.LineCount() - 1
	}

	start := d.lineStarts[line]
	end := d.LineEndOffset(line)

	offset := start + Offset(point.Column)
	if offset > end {
		offset = end
	}
	return offset
}

// Clamp returns the offset clamped to the valid range [0, Len()].
func (d *Document) Clamp(offset Offset) Offset {
	if offset < 0 {
		return 0
	}
	if offset > d.Len() {
		return d.Len()
	}
	return offset
}
