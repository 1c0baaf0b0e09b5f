// Package cuisine decides whether restaurants satisfy a cuisine tag filter.
package cuisine

import (
	"slices"

	"github.com/kailas-cloud/nearbite/internal/domain/restaurant"
)

// TagSet is a set of cuisine names. The zero value is an empty set.
type TagSet map[string]struct{}

// NewTagSet builds a set from tags, dropping empty strings and duplicates.
func NewTagSet(tags ...string) TagSet {
	s := make(TagSet, len(tags))
	for _, t := range tags {
		if t != "" {
			s[t] = struct{}{}
		}
	}
	return s
}

// Contains reports whether tag is in the set.
func (s TagSet) Contains(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Len returns the number of tags.
func (s TagSet) Len() int { return len(s) }

// Sorted returns the tags in lexical order.
func (s TagSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// Clone returns an independent copy.
func (s TagSet) Clone() TagSet {
	out := make(TagSet, len(s))
	for t := range s {
		out[t] = struct{}{}
	}
	return out
}

// Matches reports whether r has at least one cuisine in wanted.
// An empty wanted set matches nothing.
func Matches(r restaurant.Restaurant, wanted TagSet) bool {
	if len(wanted) == 0 {
		return false
	}
	for _, c := range r.Cuisines() {
		if wanted.Contains(c) {
			return true
		}
	}
	return false
}

// Filter returns the records that match wanted, in input order.
func Filter(records []restaurant.Restaurant, wanted TagSet) []restaurant.Restaurant {
	out := make([]restaurant.Restaurant, 0, len(records))
	for _, r := range records {
		if Matches(r, wanted) {
			out = append(out, r)
		}
	}
	return out
}
