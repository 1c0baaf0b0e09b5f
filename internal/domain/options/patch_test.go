package options

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/nearbite/internal/domain"
)

func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func TestNewPatch_Empty(t *testing.T) {
	if _, err := NewPatch(nil, nil, nil); !errors.Is(err, domain.ErrInvalidOptions) {
		t.Fatalf("expected ErrInvalidOptions, got %v", err)
	}
}

func TestApply_PartialUpdate(t *testing.T) {
	base, err := New(3, []string{"Burgers"}, false)
	if err != nil {
		t.Fatal(err)
	}

	p, err := NewPatch(nil, nil, boolPtr(true))
	if err != nil {
		t.Fatal(err)
	}
	next, err := base.Apply(p)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if !next.OnlyShowTagMatches() {
		t.Error("match-only should be on")
	}
	if next.SearchDistance() != 3 {
		t.Errorf("distance changed: %v", next.SearchDistance())
	}
	if !next.SearchTags().Contains("Burgers") {
		t.Error("tags changed")
	}
	if base.OnlyShowTagMatches() {
		t.Error("base options mutated")
	}
}

func TestApply_ReplacesTags(t *testing.T) {
	base, _ := New(5, []string{"Burgers"}, false)
	tags := []string{"Sushi", "Thai"}
	p, _ := NewPatch(nil, &tags, nil)

	next, err := base.Apply(p)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if got := next.SearchTags().Sorted(); len(got) != 2 || got[0] != "Sushi" || got[1] != "Thai" {
		t.Errorf("tags = %v", got)
	}

	empty := []string{}
	p, _ = NewPatch(nil, &empty, nil)
	cleared, _ := next.Apply(p)
	if cleared.SearchTags().Len() != 0 {
		t.Errorf("tags should be cleared, got %v", cleared.SearchTags().Sorted())
	}
}

func TestApply_RejectsNegativeDistance(t *testing.T) {
	base := Default()
	p, _ := NewPatch(floatPtr(-2), nil, boolPtr(true))

	got, err := base.Apply(p)
	if !errors.Is(err, domain.ErrInvalidOptions) {
		t.Fatalf("expected ErrInvalidOptions, got %v", err)
	}
	if got.OnlyShowTagMatches() || got.SearchDistance() != DefaultSearchDistance {
		t.Error("rejected patch must not be partially applied")
	}
}
