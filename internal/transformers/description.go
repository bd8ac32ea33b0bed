package transformers

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
	nethtml "golang.org/x/net/html"
)

const defaultDescriptionLength = 4000

// descriptionSanitizer keeps a compact copy of the description markup and
// derives the plain text stored on the listing.
type descriptionSanitizer struct {
	minifier  *minify.M
	maxLength int
}

func newDescriptionSanitizer(maxLength int) *descriptionSanitizer {
	if maxLength <= 0 {
		maxLength = defaultDescriptionLength
	}
	m := minify.New()
	m.Add("text/html", &html.Minifier{KeepEndTags: true})
	return &descriptionSanitizer{minifier: m, maxLength: maxLength}
}

// Sanitize returns the minified markup and its visible text, truncated to the
// configured number of runes.
func (d *descriptionSanitizer) Sanitize(raw string) (string, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ""
	}

	minified, err := d.minifier.String("text/html", raw)
	if err != nil {
		minified = raw
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return minified, truncateRunes(strings.Join(strings.Fields(raw), " "), d.maxLength)
	}
	return minified, truncateRunes(visibleText(doc), d.maxLength)
}

func visibleText(doc *goquery.Document) string {
	var words []string
	var walk func(n *nethtml.Node)
	walk = func(n *nethtml.Node) {
		if n.Type == nethtml.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == nethtml.TextNode {
			words = append(words, strings.Fields(n.Data)...)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return strings.Join(words, " ")
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return strings.TrimSpace(string(runes[:limit]))
}
