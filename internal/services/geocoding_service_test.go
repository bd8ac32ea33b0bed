package services

import (
	"context"
	"testing"

	"dominium-listings/internal/models"
	"dominium-listings/internal/transformers"
)

func newGeocodingService(b *fakeBackend) *GeocodingService {
	addr := transformers.NewAddressTransformer("Україна", []string{"район", "р-н", "district"})
	return NewGeocodingService(b, addr, nil, "dominium-test")
}

func TestGeocodeTriesVariantsAndMemoizes(t *testing.T) {
	b := &fakeBackend{answers: map[int]*models.Coordinates{2: {Latitude: 50.45, Longitude: 30.52}}}
	svc := newGeocodingService(b)
	address := "Київ, Печерський район, вул. Хрещатик, 1"

	got := svc.Geocode(context.Background(), address)
	if got == nil || got.Latitude != 50.45 || got.Longitude != 30.52 {
		t.Fatalf("Geocode = %+v; want (50.45, 30.52)", got)
	}
	if len(b.calls) != 2 {
		t.Fatalf("backend called %d times; want 2", len(b.calls))
	}

	again := svc.Geocode(context.Background(), address)
	if again == nil || *again != *got {
		t.Errorf("memoized Geocode = %+v; want %+v", again, got)
	}
	if len(b.calls) != 2 {
		t.Errorf("backend called %d times after memo hit; want 2", len(b.calls))
	}
}

func TestGeocodeSwallowsBackendFailures(t *testing.T) {
	b := &fakeBackend{fail: true}
	svc := newGeocodingService(b)
	address := "Львів, вул. Городоцька, 5"

	if got := svc.Geocode(context.Background(), address); got != nil {
		t.Errorf("Geocode = %+v; want nil", got)
	}
	want := len(svc.addrTrans.GeocodeVariants(address))
	if len(b.calls) != want {
		t.Errorf("backend called %d times; want one call per variant (%d)", len(b.calls), want)
	}

	// failures are not memoized
	svc.Geocode(context.Background(), address)
	if len(b.calls) != 2*want {
		t.Errorf("backend called %d times; want %d", len(b.calls), 2*want)
	}
}

func TestGeocodeBlankAddress(t *testing.T) {
	b := &fakeBackend{}
	if got := newGeocodingService(b).Geocode(context.Background(), "   "); got != nil {
		t.Errorf("Geocode = %+v; want nil", got)
	}
	if len(b.calls) != 0 {
		t.Errorf("backend called %d times; want 0", len(b.calls))
	}
}
