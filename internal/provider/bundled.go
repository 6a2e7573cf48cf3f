package provider

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/CedarVerse/core/errors"
	"github.com/FocuswithJustin/CedarVerse/core/text"
	"github.com/FocuswithJustin/CedarVerse/internal/cachestore"
	"github.com/FocuswithJustin/CedarVerse/internal/config"
	"github.com/FocuswithJustin/CedarVerse/internal/logging"
)

// Bundled loads a text from a static archive URL, read-through cached on the
// local filesystem. The cleaned raw text is cached, so a process restart
// segments from disk without touching the network.
type Bundled struct {
	Store  *cachestore.Store
	Client *http.Client
}

// Load implements Provider.
func (b *Bundled) Load(ctx context.Context, spec config.Text) (*text.Text, error) {
	id := spec.ID()

	content, hit, err := b.Store.Get(id)
	if err != nil {
		return nil, err
	}
	if !hit {
		body, err := fetch(ctx, b.Client, id, spec.URL, "")
		if err != nil {
			return nil, err
		}

		if strings.HasSuffix(spec.URL, ".xz") {
			body, err = decompressXZ(id, body)
			if err != nil {
				return nil, err
			}
		}

		content = stripGutenbergBoilerplate(normalizeNewlines(string(body)))
		digest, err := b.Store.Put(id, content)
		if err != nil {
			return nil, err
		}
		logging.Debug("cached bundled text", "text_id", id, "bytes", len(content), "blake3", digest)
	}

	passages, err := segment(id, spec.Format, content)
	if err != nil {
		return nil, err
	}
	return text.New(id, spec.Title, text.SourceBundled, passages)
}

// decompressXZ expands an xz-compressed archive body.
func decompressXZ(textID string, body []byte) ([]byte, error) {
	r, err := xz.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, &errors.ParseError{Text: textID, Format: "xz", Message: "invalid xz stream", Err: err}
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, &errors.ParseError{Text: textID, Format: "xz", Message: "truncated xz stream", Err: err}
	}
	return buf.Bytes(), nil
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

const (
	gutenbergStartMarker = "*** START OF"
	gutenbergEndMarker   = "*** END OF"
)

// stripGutenbergBoilerplate removes the Project Gutenberg license header and
// footer when the customary markers are present. Texts without markers pass
// through unchanged.
func stripGutenbergBoilerplate(s string) string {
	if i := strings.Index(s, gutenbergStartMarker); i >= 0 {
		if nl := strings.IndexByte(s[i:], '\n'); nl >= 0 {
			s = s[i+nl+1:]
		}
	}
	if i := strings.Index(s, gutenbergEndMarker); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
