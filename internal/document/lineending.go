package document

import "fmt"

// LineEnding specifies the line ending convention of a document.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingLF:
		return "\\n"
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingLF:
		return "\n"
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Width returns the number of characters the terminator occupies
// in the document's on-disk representation.
func (le LineEnding) Width() int {
	if le == LineEndingCRLF {
		return 2
	}
	return 1
}

// ParseLineEnding parses a line ending name as used in configuration
// and on the command line.
func ParseLineEnding(s string) (LineEnding, error) {
	switch s {
	case "lf", "unix":
		return LineEndingLF, nil
	case "crlf", "windows":
		return LineEndingCRLF, nil
	case "cr", "mac":
		return LineEndingCR, nil
	default:
		return LineEndingLF, fmt.Errorf("unknown line ending %q (want lf, crlf, or cr)", s)
	}
}

// DetectLineEnding returns a LineEnding based on the most common line ending
// in the text. Returns LineEndingLF if no line endings are found.
func DetectLineEnding(text string) LineEnding {
	var lfCount, crlfCount, crCount int

	i := 0
	for i < len(text) {
		switch {
		case i+1 < len(text) && text[i] == '\r' && text[i+1] == '\n':
			crlfCount++
			i += 2
		case text[i] == '\r':
			crCount++
			i++
		case text[i] == '\n':
			lfCount++
			i++
		default:
			i++
		}
	}

	if crlfCount > 0 && crlfCount >= lfCount && crlfCount >= crCount {
		return LineEndingCRLF
	}
	if crCount > 0 && crCount >= lfCount && crCount >= crlfCount {
		return LineEndingCR
	}
	return LineEndingLF
}
