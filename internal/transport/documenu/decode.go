package documenu

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/kailas-cloud/nearbite/internal/domain/geo"
	"github.com/kailas-cloud/nearbite/internal/domain/restaurant"
)

var errNoData = errors.New("response has no data array")

// envelope is the top-level search response. Entries are decoded one by one
// so a single bad entry cannot fail the batch.
type envelope struct {
	Data *[]json.RawMessage `json:"data"`
}

type entryDTO struct {
	Name     string     `json:"restaurant_name"`
	Phone    string     `json:"restaurant_phone"`
	Website  string     `json:"restaurant_website"`
	Address  addressDTO `json:"address"`
	Cuisines []string   `json:"cuisines"`
	Geo      *geoDTO    `json:"geo"`
}

type addressDTO struct {
	Street string `json:"street"`
}

type geoDTO struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// Batch is the outcome of decoding one response body.
type Batch struct {
	Restaurants []restaurant.Restaurant
	Skipped     int
}

// Decode parses a search response body. Entries that fail to decode, have no
// name, or have no usable coordinates are skipped and counted. A missing
// cuisines list becomes an empty one.
func Decode(r io.Reader) (Batch, error) {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return Batch{}, fmt.Errorf("decode response: %w", err)
	}
	if env.Data == nil {
		return Batch{}, errNoData
	}

	batch := Batch{Restaurants: make([]restaurant.Restaurant, 0, len(*env.Data))}
	for _, raw := range *env.Data {
		rec, ok := decodeEntry(raw)
		if !ok {
			batch.Skipped++
			continue
		}
		batch.Restaurants = append(batch.Restaurants, rec)
	}
	return batch, nil
}

func decodeEntry(raw json.RawMessage) (restaurant.Restaurant, bool) {
	var e entryDTO
	if err := json.Unmarshal(raw, &e); err != nil {
		return restaurant.Restaurant{}, false
	}
	if e.Name == "" || e.Geo == nil || e.Geo.Lat == nil || e.Geo.Lon == nil {
		return restaurant.Restaurant{}, false
	}
	loc := geo.Coordinates{Lat: *e.Geo.Lat, Lon: *e.Geo.Lon}
	if !loc.Valid() {
		return restaurant.Restaurant{}, false
	}
	cuisines := e.Cuisines
	if cuisines == nil {
		cuisines = []string{}
	}
	return restaurant.New(e.Name, e.Address.Street, e.Phone, e.Website, cuisines, loc), true
}
