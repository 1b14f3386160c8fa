// Package resolver converts selection anchors into picker launch targets.
//
// External pickers address a position in a file as "<path>@<offset>",
// where the offset counts every line terminator as a single unit. The
// document model already stores text that way, but a Windows-convention
// file carries a two-character terminator on disk, so each complete line
// preceding the anchor shifts the on-disk position by one extra
// character. Adjust compensates by adding the anchor's row number.
package resolver

import (
	"errors"
	"fmt"

	"github.com/pfclarke/pickat/internal/document"
)

// ErrNoPath is returned when a target is requested for a document that
// has no backing file.
var ErrNoPath = errors.New("document has no file path")

// Resolver computes launch targets for a single document.
type Resolver struct {
	doc *document.Document
}

// New creates a resolver for the given document.
func New(doc *document.Document) *Resolver {
	return &Resolver{doc: doc}
}

// Adjust maps a document offset to the picker's offset convention.
// For Windows line endings the offset grows by one per preceding line;
// all other conventions pass through unchanged.
func (r *Resolver) Adjust(offset document.Offset) document.Offset {
	offset = r.doc.Clamp(offset)
	if r.doc.LineEnding() != document.LineEndingCRLF {
		return offset
	}
	row := r.doc.OffsetToPoint(offset).Line
	return offset + document.Offset(row)
}

// Target builds the "<path>@<offset>" launch target for an anchor offset.
// Returns ErrNoPath for documents without a backing file.
func (r *Resolver) Target(offset document.Offset) (string, error) {
	if !r.doc.HasPath() {
		return "", ErrNoPath
	}
	return fmt.Sprintf("%s@%d", r.doc.Path(), r.Adjust(offset)), nil
}

// Targets builds one launch target per selection anchor, preserving
// selection order.
func (r *Resolver) Targets(set *document.SelectionSet) ([]string, error) {
	if set == nil || set.Count() == 0 {
		return nil, nil
	}
	if !r.doc.HasPath() {
		return nil, ErrNoPath
	}

	targets := make([]string, 0, set.Count())
	for _, sel := range set.All() {
		target, err := r.Target(sel.Anchor)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	return targets, nil
}
