package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"dominium-listings/internal/models"

	"github.com/PuerkitoBio/goquery"
)

var (
	latitudeAttrs  = []string{"data-lat", "data-latitude", "data-latitude-dec", "data-latitude-decimal"}
	longitudeAttrs = []string{"data-lon", "data-lng", "data-longitude", "data-lng-dec", "data-longitude-decimal"}

	coordinateSeparator = regexp.MustCompile(`[;,]`)
	scriptLatitude      = regexp.MustCompile(`(?i)\blatitude["']?\s*[:=]\s*["']?(-?\d+(?:\.\d+)?)`)
	scriptLongitude     = regexp.MustCompile(`(?i)\blongitude["']?\s*[:=]\s*["']?(-?\d+(?:\.\d+)?)`)
)

type coordinateStrategy func(doc *goquery.Document) *models.Coordinates

var coordinateStrategies = []coordinateStrategy{
	coordinatesFromDataAttrs,
	coordinatesFromCompoundMeta,
	coordinatesFromPlaceMeta,
	coordinatesFromScripts,
}

func extractCoordinates(doc *goquery.Document) *models.Coordinates {
	for _, s := range coordinateStrategies {
		if c := s(doc); c != nil {
			return c
		}
	}
	return nil
}

// coordinatesFromDataAttrs needs both components on the same element.
func coordinatesFromDataAttrs(doc *goquery.Document) *models.Coordinates {
	selector := "[" + strings.Join(latitudeAttrs, "], [") + "]"
	var found *models.Coordinates
	doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		found = parseCoordinates(firstAttr(s, latitudeAttrs), firstAttr(s, longitudeAttrs))
		return found == nil
	})
	return found
}

func coordinatesFromCompoundMeta(doc *goquery.Document) *models.Coordinates {
	value := selectAttr("meta[name='geo.position'], meta[name='ICBM']", "content")(doc)
	parts := coordinateSeparator.Split(value, -1)
	if len(parts) != 2 {
		return nil
	}
	return parseCoordinates(parts[0], parts[1])
}

func coordinatesFromPlaceMeta(doc *goquery.Document) *models.Coordinates {
	lat := selectAttr("meta[property='place:location:latitude']", "content")(doc)
	lon := selectAttr("meta[property='place:location:longitude']", "content")(doc)
	return parseCoordinates(lat, lon)
}

func coordinatesFromScripts(doc *goquery.Document) *models.Coordinates {
	var found *models.Coordinates
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		lat := scriptLatitude.FindStringSubmatch(text)
		lon := scriptLongitude.FindStringSubmatch(text)
		if lat != nil && lon != nil {
			found = parseCoordinates(lat[1], lon[1])
		}
		return found == nil
	})
	return found
}

func parseCoordinates(lat, lon string) *models.Coordinates {
	latitude, ok := parseCoordinate(lat)
	if !ok {
		return nil
	}
	longitude, ok := parseCoordinate(lon)
	if !ok {
		return nil
	}
	c := models.Coordinates{Latitude: latitude, Longitude: longitude}
	if !c.Valid() {
		return nil
	}
	return &c
}

func parseCoordinate(raw string) (float64, bool) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if raw == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
