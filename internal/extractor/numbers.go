package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	roomsPhrase = regexp.MustCompile(`(?i)(\d+)\s*-?\s*(кімн|rooms?\b|bedrooms?\b)`)
	areaPhrase  = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(м²|м2|m²|m2|кв\.?\s*м|sq\.?\s*m|sqm)`)
	firstInt    = regexp.MustCompile(`\d+`)
	firstNumber = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
)

var roomsStrategies = []strategy{
	iconText("img[src*='_room-icon']"),
	labeledCell("Кіл. кімнат", "Кількість кімнат", "Кімнат", "Rooms"),
	phraseInText(roomsPhrase),
}

var areaStrategies = []strategy{
	iconText("img[src*='_area-icon']"),
	labeledCell("Площа", "Загальна площа", "Area"),
	phraseInText(areaPhrase),
}

// extractRooms walks the rooms chain; a candidate counts only when it holds a
// positive integer.
func extractRooms(doc *goquery.Document) (int, bool) {
	for _, s := range roomsStrategies {
		if n, ok := parseRooms(s(doc)); ok {
			return n, true
		}
	}
	return 0, false
}

func extractArea(doc *goquery.Document) (float64, bool) {
	for _, s := range areaStrategies {
		if f, ok := parseArea(s(doc)); ok {
			return f, true
		}
	}
	return 0, false
}

func parseRooms(text string) (int, bool) {
	match := firstInt.FindString(text)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func parseArea(text string) (float64, bool) {
	compact := strings.Join(strings.Fields(text), "")
	match := firstNumber.FindString(compact)
	if match == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(match, ",", "."), 64)
	if err != nil || f <= 0 {
		return 0, false
	}
	return f, true
}

// iconText returns the text of the span wrapping an icon image.
func iconText(selector string) strategy {
	return func(doc *goquery.Document) string {
		icon := doc.Find(selector).First()
		if icon.Length() == 0 {
			return ""
		}
		holder := icon.Closest("span")
		if holder.Length() == 0 {
			holder = icon.Parent()
		}
		return normalizeSpace(holder.Text())
	}
}

// labeledCell finds a th/dt whose text contains one of labels and returns the
// value cell that follows it.
func labeledCell(labels ...string) strategy {
	return func(doc *goquery.Document) string {
		var out string
		doc.Find("th, dt").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := strings.ToLower(normalizeSpace(s.Text()))
			for _, label := range labels {
				if strings.Contains(text, strings.ToLower(label)) {
					out = normalizeSpace(s.NextAllFiltered("td, dd").First().Text())
					return out == ""
				}
			}
			return true
		})
		return out
	}
}

// phraseInText returns the first capture group of re over visible text nodes.
func phraseInText(re *regexp.Regexp) strategy {
	return func(doc *goquery.Document) string {
		for _, text := range textNodes(doc) {
			if m := re.FindStringSubmatch(text); m != nil {
				return m[1]
			}
		}
		return ""
	}
}
