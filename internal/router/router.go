// Package router maps slash commands onto the passage index and formats
// replies. It is transport-independent: handlers take plain arguments and
// return reply messages, so the full command surface tests without any
// Discord scaffolding. Lookup failures become plain-language replies here;
// raw errors never reach the user.
package router

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/FocuswithJustin/CedarVerse/core/errors"
	"github.com/FocuswithJustin/CedarVerse/core/text"
	"github.com/FocuswithJustin/CedarVerse/internal/format"
	"github.com/FocuswithJustin/CedarVerse/internal/logging"
)

// Reply is the outcome of one command invocation. Messages are sent in
// order; Ephemeral replies are visible only to the invoking user.
type Reply struct {
	Messages  []string
	Ephemeral bool
}

// Router dispatches the four slash commands against a warm passage index.
type Router struct {
	index        *text.Index
	messageLimit int
	searchLimit  int
}

// New creates a Router. Zero limits select the Discord defaults.
func New(idx *text.Index, messageLimit, searchLimit int) *Router {
	if messageLimit <= 0 {
		messageLimit = format.DefaultLimit
	}
	if searchLimit <= 0 {
		searchLimit = text.DefaultSearchLimit
	}
	return &Router{
		index:        idx,
		messageLimit: messageLimit,
		searchLimit:  searchLimit,
	}
}

// NewRequestContext attaches a fresh request ID for one command invocation.
func NewRequestContext(ctx context.Context) context.Context {
	return logging.WithRequestID(ctx, uuid.New().String())
}

// ListTexts handles /list_texts.
func (r *Router) ListTexts(ctx context.Context) Reply {
	defer r.logServed(ctx, "list_texts", time.Now())

	var lines []string
	for _, info := range r.index.Titles() {
		lines = append(lines, fmt.Sprintf("- %s (%s)", info.Title, info.Source))
	}
	if len(lines) == 0 {
		return Reply{Messages: []string{"No texts are loaded."}, Ephemeral: true}
	}
	return Reply{Messages: []string{strings.Join(lines, "\n")}}
}

// Quote handles /quote <text> <number>.
func (r *Router) Quote(ctx context.Context, textName string, number int) Reply {
	defer r.logServed(ctx, "quote", time.Now())

	t, err := r.index.Lookup(textName)
	if err != nil {
		return r.notFoundReply(ctx, textName, err)
	}

	p, err := r.index.Get(t.ID, number)
	if err != nil {
		return Reply{
			Messages:  []string{fmt.Sprintf("Invalid passage number. %s has %d passages.", t.Title, len(t.Passages))},
			Ephemeral: true,
		}
	}
	return Reply{Messages: r.renderPassage(t.Title, p)}
}

// RandomPassage handles /random_passage [text].
func (r *Router) RandomPassage(ctx context.Context, textName string) Reply {
	defer r.logServed(ctx, "random_passage", time.Now())

	p, err := r.index.Random(textName)
	if err != nil {
		return r.notFoundReply(ctx, textName, err)
	}
	return Reply{Messages: r.renderPassage(r.index.Title(p.TextID), p)}
}

// Search handles /search <query>.
func (r *Router) Search(ctx context.Context, query string) Reply {
	defer r.logServed(ctx, "search", time.Now())

	results := r.index.Search(query, r.searchLimit)
	if len(results) == 0 {
		return Reply{Messages: []string{"No matches found."}, Ephemeral: true}
	}

	blocks := make([]string, 0, len(results))
	for _, p := range results {
		title := r.index.Title(p.TextID)
		snippet := format.Snippet(p.Content, format.DefaultSnippetLen)
		blocks = append(blocks, format.Passage(title, format.Label(p.Number), snippet))
	}
	return Reply{Messages: []string{strings.Join(blocks, "\n\n")}}
}

// renderPassage chunks a passage body and prefixes each chunk with its
// header. The chunk budget reserves room for the header so no rendered
// message exceeds the platform limit.
func (r *Router) renderPassage(title string, p text.Passage) []string {
	// The header reserve depends on the widest part label, which depends on
	// the chunk count, which depends on the reserve. Re-split with the label
	// sized for the observed chunk count until the count stops growing; the
	// budget only shrinks between rounds, so this settles quickly.
	parts := 1
	var chunks []string
	for {
		label := format.Label(p.Number)
		if parts > 1 {
			label = format.PartLabel(p.Number, parts)
		}
		reserve := len([]rune(format.Passage(title, label, ""))) + 1
		budget := r.messageLimit - reserve
		if budget < 1 {
			budget = 1
		}
		chunks = format.Split(p.Content, budget)
		if len(chunks) <= parts {
			break
		}
		parts = len(chunks)
	}

	messages := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		label := format.Label(p.Number)
		if len(chunks) > 1 {
			label = format.PartLabel(p.Number, i+1)
		}
		messages = append(messages, format.Passage(title, label, chunk))
	}
	return messages
}

// notFoundReply maps a lookup failure to a user-facing message and logs
// anything that is not a plain not-found condition.
func (r *Router) notFoundReply(ctx context.Context, textName string, err error) Reply {
	if !errors.Is(err, errors.ErrNotFound) {
		logging.ErrorContext(ctx, "command failed", "error", err.Error())
		return Reply{Messages: []string{"Something went wrong serving that command."}, Ephemeral: true}
	}
	if textName == "" {
		return Reply{Messages: []string{"No texts are loaded."}, Ephemeral: true}
	}
	return Reply{Messages: []string{fmt.Sprintf("Text not found: %s", textName)}, Ephemeral: true}
}

func (r *Router) logServed(ctx context.Context, command string, start time.Time) {
	logging.CommandServed(ctx, command, time.Since(start))
}
