package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"dominium-listings/internal/models"
	"dominium-listings/internal/repositories"

	"github.com/shopspring/decimal"
)

type fakeListings struct {
	created []*models.Listing
	err     error
}

func (r *fakeListings) Create(_ context.Context, l *models.Listing) error {
	if r.err != nil {
		return r.err
	}
	l.ID = fmt.Sprintf("L%d", len(r.created)+1)
	r.created = append(r.created, l)
	return nil
}

func (r *fakeListings) FindByID(_ context.Context, id string) (*models.Listing, error) {
	for _, l := range r.created {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type fakeImages struct {
	created []*models.ListingImage
}

func (r *fakeImages) Create(_ context.Context, img *models.ListingImage) error {
	img.ID = fmt.Sprintf("I%d", len(r.created)+1)
	r.created = append(r.created, img)
	return nil
}

func (r *fakeImages) FindByListing(_ context.Context, listingID string) ([]models.ListingImage, error) {
	var out []models.ListingImage
	for _, img := range r.created {
		if img.ListingID == listingID {
			out = append(out, *img)
		}
	}
	return out, nil
}

type fakeTaxonomy struct {
	propertyTypes map[string]*models.PropertyType
	dealTypes     map[string]*models.DealType
}

func newFakeTaxonomy() *fakeTaxonomy {
	return &fakeTaxonomy{
		propertyTypes: map[string]*models.PropertyType{},
		dealTypes:     map[string]*models.DealType{},
	}
}

func (r *fakeTaxonomy) GetOrCreatePropertyType(_ context.Context, name string) (*models.PropertyType, error) {
	key := repositories.TaxonomyKey(name)
	if pt, ok := r.propertyTypes[key]; ok {
		return pt, nil
	}
	pt := &models.PropertyType{ID: "pt-" + key, Name: name, Key: key, Slug: repositories.Slugify(name)}
	r.propertyTypes[key] = pt
	return pt, nil
}

func (r *fakeTaxonomy) GetOrCreateDealType(_ context.Context, name string) (*models.DealType, error) {
	key := repositories.TaxonomyKey(name)
	if dt, ok := r.dealTypes[key]; ok {
		return dt, nil
	}
	dt := &models.DealType{ID: "dt-" + key, Name: name, Key: key}
	r.dealTypes[key] = dt
	return dt, nil
}

type fakeStore struct {
	saved []string
}

func (s *fakeStore) Save(_ context.Context, name string, _ []byte) (string, error) {
	s.saved = append(s.saved, name)
	return fmt.Sprintf("ref-%d", len(s.saved)), nil
}

type fakeDownloader struct {
	failures map[string]error
	calls    []string
}

func (d *fakeDownloader) Download(_ context.Context, url string) ([]byte, error) {
	d.calls = append(d.calls, url)
	if err, ok := d.failures[url]; ok {
		return nil, err
	}
	return []byte("\x89PNG"), nil
}

type fakeThrottle struct {
	allow bool
	keys  []string
}

func (g *fakeThrottle) Allow(key string) bool {
	g.keys = append(g.keys, key)
	return g.allow
}

type fixedRates struct {
	calls int
}

func (p *fixedRates) GetRates(context.Context, bool) models.ExchangeRates {
	p.calls++
	return models.DefaultExchangeRates()
}

type fakeDocumentFetcher struct {
	body []byte
	err  error
}

func (f *fakeDocumentFetcher) Fetch(context.Context, string) ([]byte, error) {
	return f.body, f.err
}

type fakeRateFetcher struct {
	rates map[string]decimal.Decimal
	err   error
	calls int
}

func (f *fakeRateFetcher) Fetch(context.Context) (map[string]decimal.Decimal, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.rates, nil
}

type fakeBackend struct {
	mu      sync.Mutex
	calls   []string
	answers map[int]*models.Coordinates
	fail    bool
}

func (b *fakeBackend) Lookup(_ context.Context, query, _ string) (*models.Coordinates, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, query)
	if b.fail {
		return nil, errors.New("geocoder unavailable")
	}
	return b.answers[len(b.calls)], nil
}
