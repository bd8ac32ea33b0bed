package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	apperrors "dominium-listings/internal/errors"
	"dominium-listings/internal/extractor"
	"dominium-listings/internal/models"
	"dominium-listings/internal/transformers"
	"dominium-listings/internal/validators"
	"dominium-listings/pkg/fetcher"
)

type importFixture struct {
	svc        *ImportService
	listings   *fakeListings
	images     *fakeImages
	taxonomy   *fakeTaxonomy
	downloader *fakeDownloader
	throttle   *fakeThrottle
	rates      *fixedRates
	fetcher    *fakeDocumentFetcher
}

func newImportFixture() *importFixture {
	f := &importFixture{
		listings:   &fakeListings{},
		images:     &fakeImages{},
		taxonomy:   newFakeTaxonomy(),
		downloader: &fakeDownloader{failures: map[string]error{}},
		throttle:   &fakeThrottle{allow: true},
		rates:      &fixedRates{},
		fetcher:    &fakeDocumentFetcher{},
	}
	trans := transformers.NewListingTransformer(extractor.New(), transformers.NewPriceTransformer(), nil, 4000)
	imageSvc := NewImageService(f.downloader, &fakeStore{}, f.images)
	f.svc = NewImportService(trans, f.rates, validators.NewListingValidator(), f.listings, f.taxonomy, imageSvc, f.fetcher, f.throttle)
	return f
}

func listingPage(title, extra string) string {
	return fmt.Sprintf(`<html><head><meta itemprop="price" content="120000"></head><body>
<h1>%s</h1>
<div class="address">Kyiv, Test St, 1</div>
<p>55 m²</p><p>2 rooms</p>
%s
</body></html>`, title, extra)
}

func TestImportDocumentsContinuesPastInvalidItem(t *testing.T) {
	f := newImportFixture()
	docs := []models.RawDocument{
		{Source: "one.html", Content: []byte(listingPage("Sale apartment", ""))},
		{Source: "two.html", Content: []byte(listingPage("   ", ""))},
		{Source: "three.html", Content: []byte(listingPage("House for rent", ""))},
	}

	result, err := f.svc.ImportDocuments(context.Background(), "client-1", docs, models.ImportOptions{})
	if err != nil {
		t.Fatalf("ImportDocuments returned error: %v", err)
	}
	if len(result.Created) != 2 {
		t.Fatalf("created %d listings; want 2", len(result.Created))
	}
	if len(result.Errors) != 1 {
		t.Fatalf("got %d item errors; want 1", len(result.Errors))
	}
	itemErr := result.Errors[0]
	if itemErr.Index != 2 || itemErr.Source != "two.html" {
		t.Errorf("item error = %+v; want index 2 for two.html", itemErr)
	}
	if _, ok := itemErr.Errors["title"]; !ok {
		t.Errorf("item errors = %v; want a title violation", itemErr.Errors)
	}
	if f.rates.calls != 1 {
		t.Errorf("rates resolved %d times; want once per batch", f.rates.calls)
	}
	if len(f.throttle.keys) != 1 || f.throttle.keys[0] != "import-rate:client-1" {
		t.Errorf("throttle keys = %v; want [import-rate:client-1]", f.throttle.keys)
	}
}

func TestImportDocumentResolvesTaxonomyAndPrice(t *testing.T) {
	f := newImportFixture()
	doc := models.RawDocument{Source: "flat.html", Content: []byte(listingPage("Sale apartment", ""))}

	outcome, err := f.svc.ImportDocument(context.Background(), "client-1", doc, models.ImportOptions{})
	if err != nil {
		t.Fatalf("ImportDocument returned error: %v", err)
	}
	if outcome.Errors != nil {
		t.Fatalf("outcome errors = %v; want none", outcome.Errors)
	}
	l := outcome.Listing
	if l.PropertyTypeID != "pt-apartment" || l.DealTypeID != "dt-sale" {
		t.Errorf("taxonomy ids = %q/%q; want pt-apartment/dt-sale", l.PropertyTypeID, l.DealTypeID)
	}
	if l.Price.String() != "120000" {
		t.Errorf("Price = %s; want 120000", l.Price)
	}
	if l.Rooms != 2 || l.Area != 55 {
		t.Errorf("rooms/area = %d/%v; want 2/55", l.Rooms, l.Area)
	}
	if l.Slug == "" {
		t.Error("Slug is empty")
	}
	if len(outcome.Warnings) != 0 {
		t.Errorf("warnings = %v; want none", outcome.Warnings)
	}
}

func TestImportDocumentSetsGeohashFromCoordinates(t *testing.T) {
	f := newImportFixture()
	page := listingPage("Sale apartment", `<div data-lat="50.45" data-lng="30.52"></div>`)

	outcome, err := f.svc.ImportDocument(context.Background(), "c", models.RawDocument{Source: "geo.html", Content: []byte(page)}, models.ImportOptions{})
	if err != nil {
		t.Fatalf("ImportDocument returned error: %v", err)
	}
	l := outcome.Listing
	if l.Latitude == nil || *l.Latitude != 50.45 {
		t.Errorf("Latitude = %v; want 50.45", l.Latitude)
	}
	if len(l.Geohash) != geohashPrecision {
		t.Errorf("Geohash = %q; want %d characters", l.Geohash, geohashPrecision)
	}
}

func TestImportDocumentImageFailureIsSingleWarning(t *testing.T) {
	f := newImportFixture()
	missing := "https://img.test/missing.jpg"
	f.downloader.failures[missing] = errors.New("unexpected status 404 Not Found")
	page := listingPage("Sale apartment", `<div class="pdf-img"><img src="`+missing+`"></div>`)

	outcome, err := f.svc.ImportDocument(context.Background(), "c", models.RawDocument{Source: "img.html", Content: []byte(page)}, models.ImportOptions{})
	if err != nil {
		t.Fatalf("ImportDocument returned error: %v", err)
	}
	if outcome.Listing == nil {
		t.Fatalf("listing not created: %v", outcome.Errors)
	}
	want := missing + ": unexpected status 404 Not Found"
	if len(outcome.Warnings) != 1 || outcome.Warnings[0] != want {
		t.Errorf("warnings = %v; want [%q]", outcome.Warnings, want)
	}
	if len(f.images.created) != 0 {
		t.Errorf("stored %d images; want 0", len(f.images.created))
	}
}

func TestImportDocumentStoresMainFirstAndDeduplicates(t *testing.T) {
	f := newImportFixture()
	gallery := `<div class="gallery"><a href="https://img.test/a.jpg"></a><a href="https://img.test/b.jpg"></a></div>`
	page := listingPage("Sale apartment", gallery)

	outcome, err := f.svc.ImportDocument(context.Background(), "c", models.RawDocument{Source: "g.html", Content: []byte(page)}, models.ImportOptions{})
	if err != nil {
		t.Fatalf("ImportDocument returned error: %v", err)
	}
	if len(f.images.created) != 2 {
		t.Fatalf("stored %d images; want 2", len(f.images.created))
	}
	first, second := f.images.created[0], f.images.created[1]
	if first.SourceURL != "https://img.test/a.jpg" || !first.IsMain || first.Position != 0 {
		t.Errorf("first image = %+v; want a.jpg as main at position 0", first)
	}
	if second.IsMain || second.Position != 1 {
		t.Errorf("second image = %+v; want non-main at position 1", second)
	}
	if first.ListingID != outcome.Listing.ID {
		t.Errorf("image listing id = %q; want %q", first.ListingID, outcome.Listing.ID)
	}
}

func TestTransferImagesFirstStoredMainWins(t *testing.T) {
	images := &fakeImages{}
	downloader := &fakeDownloader{failures: map[string]error{"https://img.test/main.jpg": errors.New("timeout")}}
	svc := NewImageService(downloader, &fakeStore{}, images)

	warnings := svc.TransferImages(context.Background(), "L1", "https://img.test/main.jpg",
		[]string{"", "https://img.test/g1.jpg", "https://img.test/g1.jpg"})

	if len(warnings) != 1 {
		t.Errorf("warnings = %v; want 1", warnings)
	}
	if len(images.created) != 1 {
		t.Fatalf("stored %d images; want 1", len(images.created))
	}
	if images.created[0].IsMain {
		t.Errorf("gallery image promoted to main: %+v", images.created[0])
	}
	if len(downloader.calls) != 2 {
		t.Errorf("downloads = %v; want main plus one gallery image", downloader.calls)
	}
}

func TestImportThrottled(t *testing.T) {
	f := newImportFixture()
	f.throttle.allow = false
	doc := models.RawDocument{Source: "x.html", Content: []byte(listingPage("Sale apartment", ""))}

	_, err := f.svc.ImportDocument(context.Background(), "c", doc, models.ImportOptions{})
	if !errors.Is(err, apperrors.ErrThrottled) {
		t.Fatalf("err = %v; want ErrThrottled", err)
	}
	if _, err := f.svc.ImportDocuments(context.Background(), "c", []models.RawDocument{doc}, models.ImportOptions{}); !errors.Is(err, apperrors.ErrThrottled) {
		t.Errorf("batch err = %v; want ErrThrottled", err)
	}
	if len(f.listings.created) != 0 || f.rates.calls != 0 {
		t.Errorf("throttled import did work: listings=%d rate calls=%d", len(f.listings.created), f.rates.calls)
	}
}

func TestImportDocumentSaveFailure(t *testing.T) {
	f := newImportFixture()
	f.listings.err = errors.New("database query failed: duplicate key")
	doc := models.RawDocument{Source: "x.html", Content: []byte(listingPage("Sale apartment", ""))}

	outcome, err := f.svc.ImportDocument(context.Background(), "c", doc, models.ImportOptions{})
	if err != nil {
		t.Fatalf("ImportDocument returned error: %v", err)
	}
	if outcome.Errors["save"] != "database query failed: duplicate key" {
		t.Errorf("outcome errors = %v; want save error", outcome.Errors)
	}
}

func TestImportDocumentRejectsInvalidUTF8(t *testing.T) {
	f := newImportFixture()
	doc := models.RawDocument{Source: "bad.html", Content: []byte{0xff, 0xfe, 0x00}}

	result, err := f.svc.ImportDocuments(context.Background(), "c", []models.RawDocument{doc}, models.ImportOptions{})
	if err != nil {
		t.Fatalf("ImportDocuments returned error: %v", err)
	}
	if len(result.Errors) != 1 || result.Errors[0].Error == "" || result.Errors[0].Index != 1 {
		t.Errorf("errors = %+v; want one item error at index 1", result.Errors)
	}
}

func TestImportFromURL(t *testing.T) {
	t.Run("invalid url", func(t *testing.T) {
		f := newImportFixture()
		outcome, err := f.svc.ImportFromURL(context.Background(), "c", "ftp://example.com/x", models.ImportOptions{})
		if err != nil {
			t.Fatalf("ImportFromURL returned error: %v", err)
		}
		if outcome.Errors["url"] == "" {
			t.Errorf("outcome errors = %v; want url error", outcome.Errors)
		}
	})

	t.Run("not found", func(t *testing.T) {
		f := newImportFixture()
		f.fetcher.err = &fetcher.HTTPError{URL: "https://example.com/gone", StatusCode: 404, Err: errors.New("Not Found")}
		_, err := f.svc.ImportFromURL(context.Background(), "c", "https://example.com/gone", models.ImportOptions{})
		var fetchErr *apperrors.SourceFetchError
		if !errors.As(err, &fetchErr) {
			t.Fatalf("err = %v; want *SourceFetchError", err)
		}
		if fetchErr.StatusCode != 404 {
			t.Errorf("StatusCode = %d; want 404", fetchErr.StatusCode)
		}
		if apperrors.MapError(err).HTTPStatus != 502 {
			t.Errorf("mapped status = %d; want 502", apperrors.MapError(err).HTTPStatus)
		}
	})

	t.Run("imported", func(t *testing.T) {
		f := newImportFixture()
		f.fetcher.body = []byte(listingPage("Sale apartment", `<div class="gallery"><a href="/img/1.jpg"></a></div>`))
		outcome, err := f.svc.ImportFromURL(context.Background(), "c", " https://example.com/listing/9 ", models.ImportOptions{})
		if err != nil {
			t.Fatalf("ImportFromURL returned error: %v", err)
		}
		if outcome.Listing == nil || outcome.Listing.SourceLabel != "https://example.com/listing/9" {
			t.Fatalf("outcome = %+v; want listing sourced from the url", outcome)
		}
		if len(f.images.created) != 1 || f.images.created[0].SourceURL != "https://example.com/img/1.jpg" {
			t.Errorf("images = %+v; want the resolved gallery url", f.images.created)
		}
	})
}
