// Package format shapes passage text to fit Discord message constraints.
package format

import (
	"fmt"
	"strings"
)

const (
	// DefaultLimit is Discord's maximum message length.
	DefaultLimit = 2000
	// DefaultSnippetLen bounds search result snippets.
	DefaultSnippetLen = 300
)

// Split breaks s into ordered chunks of at most limit characters each,
// splitting only at spaces. A single word longer than the limit is broken
// hard at the limit; otherwise no chunk splits a word. Chunks are trimmed of
// the boundary whitespace, so joining them with single spaces reconstructs
// the original word sequence.
func Split(s string, limit int) []string {
	if limit <= 0 {
		limit = DefaultLimit
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return []string{s}
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		// Step over boundary whitespace so every window begins on a word.
		// The cut below then always lands past start and the scan advances
		// even when an overlong word follows a space.
		for start < len(runes) && runes[start] == ' ' {
			start++
		}
		if start >= len(runes) {
			break
		}

		end := start + limit
		if end >= len(runes) {
			if chunk := strings.TrimSpace(string(runes[start:])); chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}

		// Break at the last space before the limit; fall back to a hard
		// break when a single word spans the whole window.
		cut := lastSpace(runes, start, end)
		if cut == -1 {
			cut = end
		}
		if chunk := strings.TrimSpace(string(runes[start:cut])); chunk != "" {
			chunks = append(chunks, chunk)
		}
		start = cut
	}
	return chunks
}

// lastSpace returns the index of the last space in runes[start:end), or -1.
func lastSpace(runes []rune, start, end int) int {
	for i := end - 1; i >= start; i-- {
		if runes[i] == ' ' {
			return i
		}
	}
	return -1
}

// Passage renders the reply header and body for a quoted passage.
func Passage(title, label, body string) string {
	return fmt.Sprintf("**%s — Passage %s**\n%s", title, label, body)
}

// Label renders a passage number for single-chunk replies.
func Label(n int) string {
	return fmt.Sprintf("%d", n)
}

// PartLabel renders a passage number with its chunk ordinal for replies that
// span multiple messages.
func PartLabel(n, part int) string {
	return fmt.Sprintf("%d part %d", n, part)
}

// Snippet returns at most max characters of s cut back to a word boundary,
// with a trailing ellipsis when the text was truncated. max <= 0 selects
// DefaultSnippetLen.
func Snippet(s string, max int) string {
	if max <= 0 {
		max = DefaultSnippetLen
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	head := string(runes[:max])
	if i := strings.LastIndex(head, " "); i > 0 {
		head = head[:i]
	}
	return head + "..."
}
