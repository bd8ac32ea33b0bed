package extractor

import (
	"strings"
	"unicode"
)

const (
	DealRent  = "Rent"
	DealSale  = "Sale"
	DealOther = "Other"

	PropertyHouse      = "House"
	PropertyApartment  = "Apartment"
	PropertyLand       = "Land"
	PropertyCommercial = "Commercial"
	PropertyOther      = "Other"
)

type keywordRule struct {
	label    string
	prefixes []string
}

// Rules are checked in order; a title word matches when it starts with a prefix.
var dealTypeRules = []keywordRule{
	{DealRent, []string{"оренд", "здається", "здаю", "здають", "здам", "здача", "зняти", "зніму", "rent", "lease"}},
	{DealSale, []string{"продаж", "продам", "продається", "продаю", "продають", "купити", "куплю", "sale", "sell", "buy"}},
}

var propertyTypeRules = []keywordRule{
	{PropertyHouse, []string{"будин", "котедж", "дуплекс", "таунхаус", "house", "cottage", "duplex", "townhouse", "villa"}},
	{PropertyApartment, []string{"квартир", "апартамент", "apartment", "flat", "studio"}},
	{PropertyLand, []string{"земельн", "ділянк", "соток", "land", "plot"}},
	{PropertyCommercial, []string{"комерц", "офіс", "магазин", "commercial", "office", "shop", "retail"}},
}

func ClassifyDealType(title string) string {
	return classify(title, dealTypeRules, DealOther)
}

func ClassifyPropertyType(title string) string {
	return classify(title, propertyTypeRules, PropertyOther)
}

func classify(title string, rules []keywordRule, fallback string) string {
	words := strings.FieldsFunc(strings.ToLower(title), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, rule := range rules {
		for _, word := range words {
			for _, prefix := range rule.prefixes {
				if strings.HasPrefix(word, prefix) {
					return rule.label
				}
			}
		}
	}
	return fallback
}
