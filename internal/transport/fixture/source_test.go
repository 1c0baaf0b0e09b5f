package fixture

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/kailas-cloud/nearbite/internal/domain"
	"github.com/kailas-cloud/nearbite/internal/domain/geo"
)

func TestSource_IgnoresCenterAndRadius(t *testing.T) {
	fsys := fstest.MapFS{
		"r.json": {Data: []byte(`{"data": [
			{"restaurant_name": "A", "cuisines": ["Burgers"], "geo": {"lat": 1, "lon": 2}},
			{"restaurant_name": "B", "geo": {"lat": 3, "lon": 4}}
		]}`)},
	}
	src := New(fsys, "r.json", nil)

	near, err := src.Search(context.Background(), geo.Coordinates{Lat: 1, Lon: 2}, 0.1)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	far, err := src.Search(context.Background(), geo.Coordinates{Lat: -45, Lon: 170}, 500)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(near) != 2 || len(far) != 2 {
		t.Fatalf("expected 2 records regardless of center, got %d and %d", len(near), len(far))
	}
	if len(near[1].Cuisines()) != 0 {
		t.Errorf("missing cuisines should be empty, got %v", near[1].Cuisines())
	}
}

func TestSource_MissingFile(t *testing.T) {
	src := New(fstest.MapFS{}, "missing.json", nil)

	_, err := src.Search(context.Background(), geo.Coordinates{}, 5)

	var ne *domain.NetworkError
	if !errors.As(err, &ne) {
		t.Fatalf("expected *domain.NetworkError, got %v", err)
	}
	if ne.URL != "file://missing.json" {
		t.Errorf("URL = %q", ne.URL)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("cause should be fs.ErrNotExist, got %v", err)
	}
}

func TestSource_BadEnvelope(t *testing.T) {
	src := New(fstest.MapFS{"r.json": {Data: []byte(`[1,2,3]`)}}, "r.json", nil)

	if _, err := src.Search(context.Background(), geo.Coordinates{}, 5); !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestSource_CanceledContext(t *testing.T) {
	src := New(fstest.MapFS{"r.json": {Data: []byte(`{"data": []}`)}}, "r.json", nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := src.Search(ctx, geo.Coordinates{}, 5); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestNewFromPath_Bundled(t *testing.T) {
	records, err := NewFromPath("", nil).Search(context.Background(), geo.Coordinates{}, 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(records) == 0 {
		t.Fatal("bundled sample should not be empty")
	}
}

func TestNewFromPath_Disk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "local.json")
	body := `{"data": [{"restaurant_name": "Disk", "geo": {"lat": 1, "lon": 1}}]}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	records, err := NewFromPath(path, nil).Search(context.Background(), geo.Coordinates{}, 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(records) != 1 || records[0].Name() != "Disk" {
		t.Fatalf("unexpected records: %+v", records)
	}
}
