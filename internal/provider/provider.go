// Package provider fetches raw corpus text and segments it into passages.
//
// Two provider kinds exist, matching the two source kinds: Bundled downloads
// a static archive once (read-through via the cache store) and API issues a
// request to a third-party content service. Both return a fully constructed
// text.Text; failures are FetchError (network/HTTP) or ParseError
// (unsegmentable content). Fetches are single-attempt: preload failures abort
// startup, so there is nothing to retry into.
package provider

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/FocuswithJustin/CedarVerse/core/errors"
	"github.com/FocuswithJustin/CedarVerse/core/text"
	"github.com/FocuswithJustin/CedarVerse/internal/config"
)

// maxFetchBytes bounds a single fetched document. The largest bundled corpus
// is well under 2 MiB; the cap guards against a misconfigured URL.
const maxFetchBytes = 32 << 20

// Provider loads one configured text into its passage sequence.
type Provider interface {
	Load(ctx context.Context, spec config.Text) (*text.Text, error)
}

// defaultClient builds the HTTP client used when none is supplied.
func defaultClient() *http.Client {
	return &http.Client{Timeout: 30 * time.Second}
}

// fetch issues a single GET and returns the response body. A non-2xx status
// or transport failure becomes a FetchError naming the text.
func fetch(ctx context.Context, client *http.Client, textID, url, bearer string) ([]byte, error) {
	if client == nil {
		client = defaultClient()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewFetch(textID, url, err)
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.NewFetch(textID, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewFetchStatus(textID, url, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, errors.NewFetch(textID, url, err)
	}
	return body, nil
}
