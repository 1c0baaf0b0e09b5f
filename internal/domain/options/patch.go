package options

import (
	"fmt"

	"github.com/kailas-cloud/nearbite/internal/domain"
	"github.com/kailas-cloud/nearbite/internal/domain/cuisine"
)

// Patch is a partial options update. Nil fields are unchanged.
type Patch struct {
	searchDistance     *float64
	searchTags         *[]string
	onlyShowTagMatches *bool
}

// NewPatch validates and creates a Patch. At least one field must be provided.
func NewPatch(distance *float64, tags *[]string, onlyShowTagMatches *bool) (Patch, error) {
	if distance == nil && tags == nil && onlyShowTagMatches == nil {
		return Patch{}, fmt.Errorf("%w: at least one field must be provided", domain.ErrInvalidOptions)
	}
	return Patch{searchDistance: distance, searchTags: tags, onlyShowTagMatches: onlyShowTagMatches}, nil
}

// Apply returns o with p applied. o is unchanged when p is rejected.
func (o Options) Apply(p Patch) (Options, error) {
	next := o
	next.searchTags = o.searchTags.Clone()

	if p.searchDistance != nil {
		if err := next.SetSearchDistance(*p.searchDistance); err != nil {
			return o, err
		}
	}
	if p.searchTags != nil {
		next.SetSearchTags(cuisine.NewTagSet(*p.searchTags...))
	}
	if p.onlyShowTagMatches != nil {
		next.SetOnlyShowTagMatches(*p.onlyShowTagMatches)
	}
	return next, nil
}
