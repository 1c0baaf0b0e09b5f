package options

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/nearbite/internal/domain"
	"github.com/kailas-cloud/nearbite/internal/domain/cuisine"
)

// DefaultSearchDistance is the initial search radius in miles.
const DefaultSearchDistance = 5.0

// Options is the user-adjustable search state.
type Options struct {
	searchDistance     float64
	searchTags         cuisine.TagSet
	onlyShowTagMatches bool
}

// Default returns the initial options: 5 miles, no tags, match-only off.
func Default() Options {
	return Options{
		searchDistance: DefaultSearchDistance,
		searchTags:     cuisine.NewTagSet(),
	}
}

// New validates and creates Options.
func New(distance float64, tags []string, onlyShowTagMatches bool) (Options, error) {
	o := Default()
	if err := o.SetSearchDistance(distance); err != nil {
		return Options{}, err
	}
	o.SetSearchTags(cuisine.NewTagSet(tags...))
	o.SetOnlyShowTagMatches(onlyShowTagMatches)
	return o, nil
}

// SearchDistance returns the search radius in miles.
func (o Options) SearchDistance() float64 { return o.searchDistance }

// SearchTags returns a copy of the cuisine tags of interest.
func (o Options) SearchTags() cuisine.TagSet { return o.searchTags.Clone() }

// OnlyShowTagMatches reports whether match-only mode is on.
func (o Options) OnlyShowTagMatches() bool { return o.onlyShowTagMatches }

// SetOnlyShowTagMatches replaces the match-only flag.
func (o *Options) SetOnlyShowTagMatches(v bool) {
	o.onlyShowTagMatches = v
}

// SetSearchTags replaces the tag set.
func (o *Options) SetSearchTags(tags cuisine.TagSet) {
	o.searchTags = tags.Clone()
}

// SetSearchDistance replaces the radius. Negative or non-finite values are rejected.
func (o *Options) SetSearchDistance(miles float64) error {
	if miles < 0 || math.IsNaN(miles) || math.IsInf(miles, 0) {
		return fmt.Errorf("%w: search distance must be a non-negative number, got %v",
			domain.ErrInvalidOptions, miles)
	}
	o.searchDistance = miles
	return nil
}
