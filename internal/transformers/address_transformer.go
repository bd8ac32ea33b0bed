package transformers

import (
	"strings"
)

// Street-type abbreviations expanded before geocoding; an empty value drops the token.
var addressAbbreviations = map[string]string{
	"вул.":   "вулиця",
	"вул":    "вулиця",
	"просп.": "проспект",
	"пр-т":   "проспект",
	"бульв.": "бульвар",
	"б-р":    "бульвар",
	"пров.":  "провулок",
	"пл.":    "площа",
	"р-н":    "район",
	"м.":     "",
	"st.":    "street",
	"ave.":   "avenue",
}

type addressTransformer struct {
	countrySuffix  string
	countryStem    string
	districtTokens []string
}

func NewAddressTransformer(countrySuffix string, districtTokens []string) AddressTransformer {
	tokens := make([]string, 0, len(districtTokens))
	for _, token := range districtTokens {
		if token = strings.ToLower(strings.TrimSpace(token)); token != "" {
			tokens = append(tokens, token)
		}
	}
	return &addressTransformer{
		countrySuffix:  strings.TrimSpace(countrySuffix),
		countryStem:    stem(strings.ToLower(strings.TrimSpace(countrySuffix)), 6),
		districtTokens: tokens,
	}
}

// NormalizeAddress collapses whitespace, drops empty comma parts and expands
// common street abbreviations.
func (t *addressTransformer) NormalizeAddress(input string) string {
	return strings.Join(t.parts(input), ", ")
}

// GeocodeVariants lists lookup candidates in the order they should be tried:
// the full address, the address without district parts, then every suffix
// following a district part. Each candidate is followed by its
// country-qualified form when the country is not already named.
func (t *addressTransformer) GeocodeVariants(address string) []string {
	parts := t.parts(address)
	if len(parts) == 0 {
		return nil
	}

	var variants []string
	seen := make(map[string]bool)
	add := func(candidate string) {
		candidate = strings.Trim(strings.TrimSpace(candidate), ", ")
		if candidate == "" {
			return
		}
		for _, v := range []string{candidate, t.withCountry(candidate)} {
			if v != "" && !seen[v] {
				seen[v] = true
				variants = append(variants, v)
			}
		}
	}

	add(strings.Join(parts, ", "))

	var withoutDistrict []string
	for _, part := range parts {
		if !t.isDistrict(part) {
			withoutDistrict = append(withoutDistrict, part)
		}
	}
	if len(withoutDistrict) > 0 && len(withoutDistrict) != len(parts) {
		add(strings.Join(withoutDistrict, ", "))
	}

	for idx, part := range parts {
		if t.isDistrict(part) && idx+1 < len(parts) {
			add(strings.Join(parts[idx+1:], ", "))
		}
	}
	return variants
}

func (t *addressTransformer) parts(input string) []string {
	var parts []string
	for _, raw := range strings.Split(input, ",") {
		var words []string
		for _, word := range strings.Fields(raw) {
			if expanded, ok := addressAbbreviations[strings.ToLower(word)]; ok {
				if expanded != "" {
					words = append(words, expanded)
				}
				continue
			}
			words = append(words, word)
		}
		if part := strings.Join(words, " "); part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

func (t *addressTransformer) isDistrict(part string) bool {
	lower := strings.ToLower(part)
	for _, token := range t.districtTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

func (t *addressTransformer) withCountry(candidate string) string {
	if t.countrySuffix == "" || strings.Contains(strings.ToLower(candidate), t.countryStem) {
		return ""
	}
	return candidate + ", " + t.countrySuffix
}

func stem(s string, n int) string {
	runes := []rune(s)
	if len(runes) > n {
		runes = runes[:n]
	}
	return string(runes)
}
