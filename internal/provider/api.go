package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/FocuswithJustin/CedarVerse/core/errors"
	"github.com/FocuswithJustin/CedarVerse/core/text"
	"github.com/FocuswithJustin/CedarVerse/internal/config"
)

// API loads a text from a third-party content service. API corpora are
// fetched fresh each preload and never written to the cache store.
type API struct {
	Client *http.Client

	// Endpoints maps a service name to its request URL. Overridable in tests.
	Endpoints map[string]string
}

// NewAPI creates an API provider with the stock service endpoints.
func NewAPI(client *http.Client) *API {
	return &API{
		Client: client,
		Endpoints: map[string]string{
			"bible-api": "https://bible-api.com/Genesis",
			"sefaria":   "https://www.sefaria.org/api/texts/Genesis.1?lang=bi",
			"alquran":   "https://api.alquran.cloud/v1/surah/1/en.pickthall",
			"nephi":     "https://api.nephi.org/book_of_mormon/1",
		},
	}
}

// Load implements Provider.
func (a *API) Load(ctx context.Context, spec config.Text) (*text.Text, error) {
	id := spec.ID()

	url, ok := a.Endpoints[spec.Service]
	if !ok {
		return nil, errors.NewValidation("service", "no endpoint for service "+spec.Service)
	}

	body, err := fetch(ctx, a.Client, id, url, spec.APIKey())
	if err != nil {
		return nil, err
	}

	var passages []string
	switch spec.Service {
	case "bible-api":
		passages, err = parseBibleAPI(id, body)
	case "sefaria":
		passages, err = parseSefaria(id, body)
	case "alquran":
		passages, err = parseAlQuran(id, body)
	case "nephi":
		passages, err = parseNephi(id, body)
	default:
		return nil, errors.NewValidation("service", "unknown service "+spec.Service)
	}
	if err != nil {
		return nil, err
	}

	return text.New(id, spec.Title, text.SourceAPI, passages)
}

// parseBibleAPI extracts verses from a bible-api.com response, rendering each
// as "BookName C:V text".
func parseBibleAPI(textID string, body []byte) ([]string, error) {
	var payload struct {
		Verses []struct {
			BookName string `json:"book_name"`
			Chapter  int    `json:"chapter"`
			Verse    int    `json:"verse"`
			Text     string `json:"text"`
		} `json:"verses"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &errors.ParseError{Text: textID, Format: "JSON", Message: "invalid bible-api response", Err: err}
	}
	if len(payload.Verses) == 0 {
		return nil, errors.NewParse(textID, "JSON", "bible-api response has no verses")
	}

	passages := make([]string, 0, len(payload.Verses))
	for _, v := range payload.Verses {
		passages = append(passages, fmt.Sprintf("%s %d:%d %s", v.BookName, v.Chapter, v.Verse, trimVerse(v.Text)))
	}
	return passages, nil
}

// parseSefaria extracts the verse strings from a sefaria.org texts response.
func parseSefaria(textID string, body []byte) ([]string, error) {
	var payload struct {
		Text []string `json:"text"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &errors.ParseError{Text: textID, Format: "JSON", Message: "invalid sefaria response", Err: err}
	}

	passages := make([]string, 0, len(payload.Text))
	for _, v := range payload.Text {
		if v = trimVerse(v); v != "" {
			passages = append(passages, v)
		}
	}
	if len(passages) == 0 {
		return nil, errors.NewParse(textID, "JSON", "sefaria response has no text")
	}
	return passages, nil
}

// parseAlQuran extracts ayah text from an alquran.cloud surah response.
func parseAlQuran(textID string, body []byte) ([]string, error) {
	var payload struct {
		Data struct {
			Ayahs []struct {
				Text string `json:"text"`
			} `json:"ayahs"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &errors.ParseError{Text: textID, Format: "JSON", Message: "invalid alquran response", Err: err}
	}
	if len(payload.Data.Ayahs) == 0 {
		return nil, errors.NewParse(textID, "JSON", "alquran response has no ayahs")
	}

	passages := make([]string, 0, len(payload.Data.Ayahs))
	for _, a := range payload.Data.Ayahs {
		passages = append(passages, trimVerse(a.Text))
	}
	return passages, nil
}

// parseNephi extracts verse text from an api.nephi.org chapter response.
func parseNephi(textID string, body []byte) ([]string, error) {
	var payload struct {
		Verses []struct {
			Text string `json:"text"`
		} `json:"verses"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &errors.ParseError{Text: textID, Format: "JSON", Message: "invalid nephi response", Err: err}
	}
	if len(payload.Verses) == 0 {
		return nil, errors.NewParse(textID, "JSON", "nephi response has no verses")
	}

	passages := make([]string, 0, len(payload.Verses))
	for _, v := range payload.Verses {
		passages = append(passages, trimVerse(v.Text))
	}
	return passages, nil
}

func trimVerse(s string) string {
	// Some services pad verse text with trailing newlines.
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == ' ') {
		s = s[:len(s)-1]
	}
	return s
}
