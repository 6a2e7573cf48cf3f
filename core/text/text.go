// Package text defines the passage data model and the in-memory passage index.
//
// A Text is an ordered sequence of Passages numbered contiguously from 1.
// Texts are constructed once during startup preload and are immutable
// afterwards; the Index is read-only at request time and needs no locking.
package text

import (
	"strings"

	"github.com/FocuswithJustin/CedarVerse/core/errors"
)

// SourceKind identifies where a text's content comes from.
type SourceKind string

const (
	// SourceBundled is a text downloaded once from a static archive and cached locally.
	SourceBundled SourceKind = "bundled"
	// SourceAPI is a text fetched from a third-party content service.
	SourceAPI SourceKind = "api"
)

// Passage is a numbered, addressable unit of a text.
// Immutable once constructed.
type Passage struct {
	TextID  string // owning text identifier
	Number  int    // 1-based sequence number
	Content string // plain-text content
}

// Text is a named work with its ordered passages.
type Text struct {
	ID       string // canonical identifier, e.g. "bhagavad_gita"
	Title    string // display title, e.g. "Bhagavad Gita"
	Source   SourceKind
	Passages []Passage
}

// Normalize converts a user-supplied text name to a canonical identifier:
// lowercased, with spaces collapsed to underscores.
func Normalize(name string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	return strings.Join(fields, "_")
}

// New constructs a Text from raw passage contents, assigning contiguous
// 1-based numbers. Returns a ParseError if contents is empty.
func New(id, title string, source SourceKind, contents []string) (*Text, error) {
	if len(contents) == 0 {
		return nil, errors.NewParse(id, "", "no passages after segmentation")
	}
	t := &Text{
		ID:       id,
		Title:    title,
		Source:   source,
		Passages: make([]Passage, 0, len(contents)),
	}
	for i, c := range contents {
		t.Passages = append(t.Passages, Passage{
			TextID:  id,
			Number:  i + 1,
			Content: c,
		})
	}
	return t, nil
}
