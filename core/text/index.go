package text

import (
	"math/rand"
	"strings"

	"github.com/FocuswithJustin/CedarVerse/core/errors"
)

// DefaultSearchLimit caps the number of search results returned.
const DefaultSearchLimit = 5

// Info summarizes one loaded text.
type Info struct {
	ID       string
	Title    string
	Source   SourceKind
	Passages int
}

// Index maps (text identifier, passage number) to passage content for every
// loaded text. It is populated by Add during preload and read-only afterwards.
type Index struct {
	texts map[string]*Text
	order []string // insertion order, used for listing and search
}

// NewIndex creates an empty passage index.
func NewIndex() *Index {
	return &Index{
		texts: make(map[string]*Text),
	}
}

// Add registers a loaded text. Returns a ValidationError if a text with the
// same identifier is already present or the text has no passages.
func (idx *Index) Add(t *Text) error {
	if t == nil || len(t.Passages) == 0 {
		return errors.NewValidation("text", "text has no passages")
	}
	if _, exists := idx.texts[t.ID]; exists {
		return errors.NewValidation("text", "duplicate text identifier: "+t.ID)
	}
	idx.texts[t.ID] = t
	idx.order = append(idx.order, t.ID)
	return nil
}

// Len returns the number of loaded texts.
func (idx *Index) Len() int {
	return len(idx.order)
}

// Titles returns a summary of every loaded text, in load order.
func (idx *Index) Titles() []Info {
	infos := make([]Info, 0, len(idx.order))
	for _, id := range idx.order {
		t := idx.texts[id]
		infos = append(infos, Info{
			ID:       t.ID,
			Title:    t.Title,
			Source:   t.Source,
			Passages: len(t.Passages),
		})
	}
	return infos
}

// Lookup resolves a user-supplied text name to its loaded Text.
// Matching is case-insensitive and tolerant of spaces vs underscores.
func (idx *Index) Lookup(name string) (*Text, error) {
	id := Normalize(name)
	if t, ok := idx.texts[id]; ok {
		return t, nil
	}
	return nil, errors.NewNotFound("text", name)
}

// Get returns passage n of the named text. Passage numbers are 1-based;
// n=0, negative n, or n beyond the last passage yield a NotFoundError.
func (idx *Index) Get(name string, n int) (Passage, error) {
	t, err := idx.Lookup(name)
	if err != nil {
		return Passage{}, err
	}
	if n < 1 || n > len(t.Passages) {
		return Passage{}, &errors.NotFoundError{
			Resource: "passage",
			ID:       t.Title,
		}
	}
	return t.Passages[n-1], nil
}

// Count returns the number of passages in the named text.
func (idx *Index) Count(name string) (int, error) {
	t, err := idx.Lookup(name)
	if err != nil {
		return 0, err
	}
	return len(t.Passages), nil
}

// Random returns a uniformly random passage. With a non-empty name the draw
// is over that text's passages; with an empty name a text is chosen uniformly
// first and then a passage within it, so short texts are not drowned out by
// long ones.
func (idx *Index) Random(name string) (Passage, error) {
	var t *Text
	if name != "" {
		var err error
		t, err = idx.Lookup(name)
		if err != nil {
			return Passage{}, err
		}
	} else {
		if len(idx.order) == 0 {
			return Passage{}, errors.NewNotFound("text", "")
		}
		t = idx.texts[idx.order[rand.Intn(len(idx.order))]]
	}
	return t.Passages[rand.Intn(len(t.Passages))], nil
}

// Search scans bundled texts for passages containing query as a
// case-insensitive substring, in load then passage order, returning at most
// limit results (DefaultSearchLimit when limit <= 0). API-backed texts are
// excluded from search.
func (idx *Index) Search(query string, limit int) []Passage {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	q := strings.ToLower(query)
	if q == "" {
		return nil
	}

	var results []Passage
	for _, id := range idx.order {
		t := idx.texts[id]
		if t.Source != SourceBundled {
			continue
		}
		for _, p := range t.Passages {
			if strings.Contains(strings.ToLower(p.Content), q) {
				results = append(results, p)
				if len(results) >= limit {
					return results
				}
			}
		}
	}
	return results
}

// Title returns the display title for a text identifier, or the identifier
// itself if the text is not loaded.
func (idx *Index) Title(id string) string {
	if t, ok := idx.texts[id]; ok {
		return t.Title
	}
	return id
}
