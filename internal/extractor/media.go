package extractor

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var descriptionStrategies = []strategy{
	secondContentBlock,
	innerHTML("[itemprop='description']"),
	innerHTML(".description"),
	joinedParagraphs(".pdf-description p"),
}

var mainImageStrategies = []strategy{
	selectAttr(".pdf-img img", "src", "data-src"),
	selectAttr("img.main-image", "src", "data-src"),
}

// secondContentBlock follows the PDF-export layout, where the first
// pdf-block holds the header and the second the description.
func secondContentBlock(doc *goquery.Document) string {
	block := doc.Find("div.pdf-block").Eq(1)
	if block.Length() == 0 || normalizeSpace(block.Text()) == "" {
		return ""
	}
	out, err := goquery.OuterHtml(block)
	if err != nil {
		return ""
	}
	return out
}

func innerHTML(selector string) strategy {
	return func(doc *goquery.Document) string {
		var out string
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if normalizeSpace(s.Text()) == "" {
				return true
			}
			h, err := s.Html()
			if err != nil {
				return true
			}
			out = strings.TrimSpace(h)
			return out == ""
		})
		return out
	}
}

func joinedParagraphs(selector string) strategy {
	return func(doc *goquery.Document) string {
		var parts []string
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			if normalizeSpace(s.Text()) == "" {
				return
			}
			if h, err := goquery.OuterHtml(s); err == nil {
				parts = append(parts, h)
			}
		})
		return strings.Join(parts, "\n")
	}
}

// extractImages returns the main image and the de-duplicated gallery. Gallery
// links come before embedded images; first-seen order is kept. Without an
// explicit main image the first gallery entry is promoted.
func extractImages(doc *goquery.Document, base *url.URL) (string, []string) {
	main := resolveURL(base, firstNonEmpty(doc, mainImageStrategies))

	gallery := []string{}
	seen := make(map[string]bool)
	add := func(raw string) {
		u := resolveURL(base, raw)
		if u == "" || seen[u] {
			return
		}
		seen[u] = true
		gallery = append(gallery, u)
	}

	doc.Find("#estate-images a, .gallery a").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		add(href)
	})
	doc.Find("#estate-images img, .gallery img").Each(func(_ int, s *goquery.Selection) {
		add(firstAttr(s, []string{"src", "data-src"}))
	})

	if main == "" && len(gallery) > 0 {
		main = gallery[0]
	}
	return main, gallery
}

// resolveURL trims raw, drops non-fetchable references and makes it absolute
// when a base is known.
func resolveURL(base *url.URL, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.HasPrefix(raw, "#") {
		return ""
	}
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "data:") || strings.HasPrefix(lower, "mailto:") {
		return ""
	}
	if base == nil {
		return raw
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return base.ResolveReference(ref).String()
}
