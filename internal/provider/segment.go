package provider

import (
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/FocuswithJustin/CedarVerse/core/errors"
)

// versePath selects Zefania verse elements in document order.
var versePath = xpath.MustCompile("//VERS")

// segment splits cleaned raw content into passage contents according to the
// configured format. An empty format means plaintext unless the content
// sniffs as Zefania XML.
func segment(textID, format, content string) ([]string, error) {
	switch format {
	case "zefania":
		return segmentZefania(textID, content)
	case "", "plaintext":
		if looksLikeZefania(content) {
			return segmentZefania(textID, content)
		}
		return segmentPlaintext(textID, content)
	default:
		return nil, errors.NewParse(textID, format, "unknown segmentation format")
	}
}

// segmentPlaintext splits content on blank lines into trimmed, non-empty
// blocks. Single newlines within a block are preserved.
func segmentPlaintext(textID, content string) ([]string, error) {
	var passages []string
	for _, block := range strings.Split(content, "\n\n") {
		block = strings.TrimSpace(block)
		if block != "" {
			passages = append(passages, block)
		}
	}
	if len(passages) == 0 {
		return nil, errors.NewParse(textID, "plaintext", "no passages after segmentation")
	}
	return passages, nil
}

// looksLikeZefania sniffs for a Zefania XML bible document.
func looksLikeZefania(content string) bool {
	head := content
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.Contains(head, "<XMLBIBLE")
}

// segmentZefania extracts the text of every VERS element in document order.
func segmentZefania(textID, content string) ([]string, error) {
	doc, err := xmlquery.Parse(strings.NewReader(content))
	if err != nil {
		return nil, &errors.ParseError{Text: textID, Format: "zefania", Message: "invalid XML", Err: err}
	}

	var passages []string
	for _, node := range xmlquery.QuerySelectorAll(doc, versePath) {
		verse := strings.TrimSpace(node.InnerText())
		if verse != "" {
			passages = append(passages, verse)
		}
	}
	if len(passages) == 0 {
		return nil, errors.NewParse(textID, "zefania", "document contains no VERS elements")
	}
	return passages, nil
}
