// Package extractor pulls candidate listing fields out of heterogeneous
// listing markup. Each field is resolved by an ordered chain of strategies;
// the first one producing a non-empty value wins.
package extractor

import (
	"bytes"
	"net/url"
	"strings"

	apperrors "dominium-listings/internal/errors"
	"dominium-listings/internal/models"
	"dominium-listings/pkg/logger"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// PlaceholderTitle is used when a document has no title-bearing element at all.
const PlaceholderTitle = "Об'єкт DOMINIUM"

// strategy maps a parsed document to a candidate value, or "" when it has none.
type strategy func(doc *goquery.Document) string

// Extractor is stateless and safe for concurrent use.
type Extractor struct {
	placeholderTitle string
}

func New() *Extractor {
	return &Extractor{placeholderTitle: PlaceholderTitle}
}

// Extract parses content and returns every field it could find. Missing fields
// are recorded as deficiencies; only unparseable markup is an error.
func (e *Extractor) Extract(content []byte, source string) (*models.ExtractedFields, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, &apperrors.ParseError{Source: source, Err: err}
	}
	return e.ExtractDocument(doc, source), nil
}

// ExtractDocument runs every field chain over an already parsed document.
func (e *Extractor) ExtractDocument(doc *goquery.Document, source string) *models.ExtractedFields {
	fields := &models.ExtractedFields{}
	deficient := func(field string) {
		fields.Deficiencies = append(fields.Deficiencies, field+" not found")
	}

	fields.Title = e.extractTitle(doc)
	if fields.Title == "" {
		deficient("title")
	}

	fields.Address = firstNonEmpty(doc, addressStrategies)
	if fields.Address == "" {
		deficient("address")
	}

	fields.RawPrice = firstNonEmpty(doc, priceStrategies)
	if fields.RawPrice == "" {
		deficient("price")
	}

	if rooms, ok := extractRooms(doc); ok {
		fields.Rooms = rooms
	} else {
		fields.Rooms = 1
		deficient("rooms")
	}

	if area, ok := extractArea(doc); ok {
		fields.Area = area
	} else {
		deficient("area")
	}

	fields.DescriptionHTML = firstNonEmpty(doc, descriptionStrategies)
	if fields.DescriptionHTML == "" {
		deficient("description")
	}

	fields.MainImageURL, fields.Gallery = extractImages(doc, baseURL(source))
	if fields.MainImageURL == "" {
		deficient("images")
	}

	fields.Coordinates = extractCoordinates(doc)

	fields.PropertyType = ClassifyPropertyType(fields.Title)
	fields.DealType = ClassifyDealType(fields.Title)

	if len(fields.Deficiencies) > 0 {
		logger.GlobalLogger.Warnf("Extraction incomplete: source=%s, missing=%s", source, strings.Join(fields.Deficiencies, ", "))
	}
	return fields
}

func (e *Extractor) extractTitle(doc *goquery.Document) string {
	if title := firstNonEmpty(doc, titleStrategies); title != "" {
		return title
	}
	// Blank headings are reported as an empty title; only a document without
	// any title-bearing element gets the placeholder.
	if doc.Find("h1, h2, title, meta[property='og:title']").Length() == 0 {
		return e.placeholderTitle
	}
	return ""
}

func firstNonEmpty(doc *goquery.Document, strategies []strategy) string {
	for _, s := range strategies {
		if v := strings.TrimSpace(s(doc)); v != "" {
			return v
		}
	}
	return ""
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// selectText returns the first non-blank text among the selector's matches.
func selectText(selector string) strategy {
	return func(doc *goquery.Document) string {
		var out string
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			out = normalizeSpace(s.Text())
			return out == ""
		})
		return out
	}
}

// selectAttr returns the first non-blank attribute value among the matches,
// trying attrs in order on each element.
func selectAttr(selector string, attrs ...string) strategy {
	return func(doc *goquery.Document) string {
		var out string
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			out = firstAttr(s, attrs)
			return out == ""
		})
		return out
	}
}

func firstAttr(s *goquery.Selection, attrs []string) string {
	for _, attr := range attrs {
		if v, ok := s.Attr(attr); ok {
			if v = normalizeSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

var skippedTextParents = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// textNodes returns the normalized visible text nodes in document order.
func textNodes(doc *goquery.Document) []string {
	var out []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedTextParents[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			if t := normalizeSpace(n.Data); t != "" {
				out = append(out, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return out
}

func baseURL(source string) *url.URL {
	u, err := url.Parse(strings.TrimSpace(source))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil
	}
	return u
}
