package extractor

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

var titleStrategies = []strategy{
	selectText("h1"),
	selectText("h2"),
	selectAttr("meta[property='og:title']", "content"),
	selectText("title"),
}

var addressStrategies = []strategy{
	selectText("[data-address]"),
	selectAttr("[data-address]", "data-address"),
	selectAttr("[data-location]", "data-location"),
	selectText("[itemprop='streetAddress']"),
	selectText("[itemprop='address']"),
	selectText(".pdf-address"),
	selectText(".estate-address"),
	selectText(".object__address"),
	selectText(".property-address"),
	selectText(".address"),
	selectText(".contact-address"),
	selectText(".hero-address"),
	selectAttr("meta[property='og:street-address']", "content", "value"),
	selectAttr("meta[name='geo.placename']", "content", "value"),
	selectAttr("meta[name='address']", "content", "value"),
	markedAddressText,
}

var priceStrategies = []strategy{
	selectText(".pdf-header-contacts strong"),
	selectText("[data-price]"),
	selectAttr("[data-price]", "data-price"),
	priceMeta("meta[itemprop='price']"),
	priceMeta("meta[property='product:price:amount']"),
}

const maxAddressTextLength = 160

var addressMarker = regexp.MustCompile(`(?i)(вул|просп|провул|бульв|район|р-н|(^|[\s,])м\.|\bstreet\b|\bst\.|\bavenue\b|\bave\.|\bdistrict\b)`)

// markedAddressText finds a short text node that looks like an address.
func markedAddressText(doc *goquery.Document) string {
	for _, text := range textNodes(doc) {
		if utf8.RuneCountInString(text) > maxAddressTextLength {
			continue
		}
		if addressMarker.MatchString(text) {
			return text
		}
	}
	return ""
}

// priceMeta reads a structured-data price and appends its declared currency
// so the currency can still be detected downstream.
func priceMeta(selector string) strategy {
	read := selectAttr(selector, "content", "value")
	currency := selectAttr("meta[itemprop='priceCurrency'], meta[property='product:price:currency']", "content")
	return func(doc *goquery.Document) string {
		amount := read(doc)
		if amount == "" {
			return ""
		}
		if code := currency(doc); code != "" && !strings.Contains(amount, code) {
			return amount + " " + code
		}
		return amount
	}
}
