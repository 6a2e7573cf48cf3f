package provider

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ulikunitz/xz"

	cverrors "github.com/FocuswithJustin/CedarVerse/core/errors"
	"github.com/FocuswithJustin/CedarVerse/core/text"
	"github.com/FocuswithJustin/CedarVerse/internal/cachestore"
	"github.com/FocuswithJustin/CedarVerse/internal/config"
)

const gutenbergFixture = `The Project Gutenberg eBook of the Dhammapada

This eBook is for the use of anyone anywhere in the United States.

*** START OF THE PROJECT GUTENBERG EBOOK THE DHAMMAPADA ***

All that we are is the result of what we have thought.

If a man speaks or acts with an evil thought, pain follows him.

If a man speaks or acts with a pure thought, happiness follows him.

*** END OF THE PROJECT GUTENBERG EBOOK THE DHAMMAPADA ***

Updated editions will replace the previous one.`

func newStore(t *testing.T) *cachestore.Store {
	t.Helper()
	store, err := cachestore.New(t.TempDir())
	if err != nil {
		t.Fatalf("cachestore.New failed: %v", err)
	}
	return store
}

func TestBundled_Load(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprint(w, gutenbergFixture)
	}))
	defer srv.Close()

	store := newStore(t)
	spec := config.Text{Title: "Dhammapada", Source: "bundled", URL: srv.URL + "/159-0.txt"}
	b := &Bundled{Store: store, Client: srv.Client()}

	tx, err := b.Load(context.Background(), spec)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tx.ID != "dhammapada" || tx.Source != text.SourceBundled {
		t.Errorf("unexpected text metadata: %+v", tx)
	}
	if len(tx.Passages) != 3 {
		t.Fatalf("expected 3 passages, got %d", len(tx.Passages))
	}
	if want := "All that we are is the result of what we have thought."; tx.Passages[0].Content != want {
		t.Errorf("passage 1 = %q, want %q", tx.Passages[0].Content, want)
	}

	// Boilerplate outside the markers never reaches the passages.
	for _, p := range tx.Passages {
		if strings.Contains(p.Content, "Project Gutenberg") {
			t.Errorf("boilerplate leaked into passage %d: %q", p.Number, p.Content)
		}
	}

	// Second load is served from cache.
	if _, err := b.Load(context.Background(), spec); err != nil {
		t.Fatalf("cached Load failed: %v", err)
	}
	if hits != 1 {
		t.Errorf("expected 1 network fetch, got %d", hits)
	}
	if !store.Has("dhammapada") {
		t.Error("cache entry missing after load")
	}
}

func TestBundled_LoadNoMarkers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "first verse\r\n\r\nsecond verse\r\n")
	}))
	defer srv.Close()

	b := &Bundled{Store: newStore(t), Client: srv.Client()}
	tx, err := b.Load(context.Background(), config.Text{Title: "Upanishads", Source: "bundled", URL: srv.URL})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(tx.Passages) != 2 {
		t.Fatalf("expected 2 passages, got %d", len(tx.Passages))
	}
	if tx.Passages[1].Content != "second verse" {
		t.Errorf("CRLF not normalized: %q", tx.Passages[1].Content)
	}
}

func TestBundled_LoadXZ(t *testing.T) {
	var buf bytes.Buffer
	w, err := xz.NewWriter(&buf)
	if err != nil {
		t.Fatalf("xz.NewWriter failed: %v", err)
	}
	if _, err := w.Write([]byte("alpha\n\nbeta\n\ngamma")); err != nil {
		t.Fatalf("xz write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("xz close failed: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(buf.Bytes())
	}))
	defer srv.Close()

	b := &Bundled{Store: newStore(t), Client: srv.Client()}
	tx, err := b.Load(context.Background(), config.Text{Title: "Gita", Source: "bundled", URL: srv.URL + "/gita.txt.xz"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(tx.Passages) != 3 {
		t.Fatalf("expected 3 passages, got %d", len(tx.Passages))
	}
}

func TestBundled_LoadBadXZ(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "this is not xz data")
	}))
	defer srv.Close()

	b := &Bundled{Store: newStore(t), Client: srv.Client()}
	_, err := b.Load(context.Background(), config.Text{Title: "Gita", Source: "bundled", URL: srv.URL + "/gita.txt.xz"})
	if !errors.Is(err, cverrors.ErrParse) {
		t.Errorf("expected ErrParse for bad xz stream, got %v", err)
	}
}

func TestBundled_LoadZefania(t *testing.T) {
	const zefania = `<?xml version="1.0" encoding="utf-8"?>
<XMLBIBLE biblename="Test Bible">
  <BIBLEBOOK bnumber="1" bname="Genesis">
    <CHAPTER cnumber="1">
      <VERS vnumber="1">In the beginning God created the heaven and the earth.</VERS>
      <VERS vnumber="2">And the earth was without form, and void.</VERS>
    </CHAPTER>
    <CHAPTER cnumber="2">
      <VERS vnumber="1">Thus the heavens and the earth were finished.</VERS>
    </CHAPTER>
  </BIBLEBOOK>
</XMLBIBLE>`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, zefania)
	}))
	defer srv.Close()

	for _, format := range []string{"zefania", ""} {
		b := &Bundled{Store: newStore(t), Client: srv.Client()}
		tx, err := b.Load(context.Background(), config.Text{Title: "Test Bible", Source: "bundled", URL: srv.URL, Format: format})
		if err != nil {
			t.Fatalf("Load(format=%q) failed: %v", format, err)
		}
		if len(tx.Passages) != 3 {
			t.Fatalf("format=%q: expected 3 verses, got %d", format, len(tx.Passages))
		}
		// Verses come out in document order.
		if !strings.HasPrefix(tx.Passages[0].Content, "In the beginning") {
			t.Errorf("format=%q: verse order wrong: %q", format, tx.Passages[0].Content)
		}
		if !strings.HasPrefix(tx.Passages[2].Content, "Thus the heavens") {
			t.Errorf("format=%q: verse order wrong: %q", format, tx.Passages[2].Content)
		}
	}
}

func TestBundled_LoadHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	b := &Bundled{Store: newStore(t), Client: srv.Client()}
	_, err := b.Load(context.Background(), config.Text{Title: "Missing", Source: "bundled", URL: srv.URL})
	if !errors.Is(err, cverrors.ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
	var fe *cverrors.FetchError
	if !errors.As(err, &fe) || fe.Status != http.StatusNotFound {
		t.Errorf("FetchError should carry the status, got %+v", fe)
	}
	if b.Store.Has("missing") {
		t.Error("failed fetch must not create a cache entry")
	}
}

func TestBundled_LoadEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	b := &Bundled{Store: newStore(t), Client: srv.Client()}
	_, err := b.Load(context.Background(), config.Text{Title: "Empty", Source: "bundled", URL: srv.URL})
	if !errors.Is(err, cverrors.ErrParse) {
		t.Errorf("expected ErrParse for empty body, got %v", err)
	}
}

func TestBundled_Dhammapada423(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("*** START OF THE PROJECT GUTENBERG EBOOK ***\n")
	for i := 1; i <= 423; i++ {
		fmt.Fprintf(&sb, "\nVerse %d of the Dhammapada.\n", i)
	}
	sb.WriteString("\n*** END OF THE PROJECT GUTENBERG EBOOK ***\n")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sb.String())
	}))
	defer srv.Close()

	b := &Bundled{Store: newStore(t), Client: srv.Client()}
	tx, err := b.Load(context.Background(), config.Text{Title: "Dhammapada", Source: "bundled", URL: srv.URL})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(tx.Passages) != 423 {
		t.Fatalf("expected 423 verses, got %d", len(tx.Passages))
	}
	if tx.Passages[422].Number != 423 {
		t.Errorf("last passage number = %d", tx.Passages[422].Number)
	}
}

func TestStripGutenbergBoilerplate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "both markers",
			in:   "header\n*** START OF X ***\nbody\n*** END OF X ***\nfooter",
			want: "body",
		},
		{
			name: "no markers",
			in:   "plain body",
			want: "plain body",
		},
		{
			name: "start only",
			in:   "header\n*** START OF X ***\nbody",
			want: "body",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripGutenbergBoilerplate(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
