package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/honeybarrel/backend/internal/domain"
)

// listingHit is one element of the listings search response array
type listingHit struct {
	Source *listingSource `json:"_source"`
}

type listingSource struct {
	ID         looseString       `json:"id"`
	Name       looseString       `json:"name"`
	Price      looseNumber       `json:"price"`
	ImageURL   looseString       `json:"imageUrl"`
	SpiritType looseString       `json:"spiritType"`
	Blurhash   looseString       `json:"blurhash"`
	Attributes listingAttributes `json:"attributes"`
}

type listingAttributes struct {
	Producer looseString `json:"Producer"`
	Type     looseString `json:"Type"`
	Region   looseString `json:"Region"`
	Country  looseString `json:"Country"`
}

// looseString accepts a JSON string, number, bool or null
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}
	// Numbers and booleans keep their literal text
	var v json.RawMessage
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = looseString(v)
	return nil
}

// looseNumber accepts a JSON number, a numeric string, or null.
// Unparseable strings decode to zero.
type looseNumber float64

func (n *looseNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			*n = 0
			return nil
		}
		*n = looseNumber(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = looseNumber(f)
	return nil
}

// decodeListings parses a listings page. The body must be a JSON array.
// Every hit yields one entry so the page length matches the raw hit
// count; hits without _source become blank entries, which never score.
func decodeListings(body []byte) ([]domain.CatalogEntry, error) {
	var hits []listingHit
	if err := json.Unmarshal(body, &hits); err != nil {
		return nil, err
	}

	entries := make([]domain.CatalogEntry, 0, len(hits))
	for _, hit := range hits {
		if hit.Source == nil {
			entries = append(entries, domain.CatalogEntry{})
			continue
		}
		entries = append(entries, mapToCatalogEntry(hit.Source))
	}
	return entries, nil
}

// mapToCatalogEntry converts a wire record to our domain CatalogEntry
func mapToCatalogEntry(src *listingSource) domain.CatalogEntry {
	return domain.CatalogEntry{
		ID:         string(src.ID),
		Name:       string(src.Name),
		Price:      float64(src.Price),
		ImageURL:   string(src.ImageURL),
		SpiritType: string(src.SpiritType),
		Blurhash:   string(src.Blurhash),
		Region:     string(src.Attributes.Region),
		Country:    string(src.Attributes.Country),
		Producer:   string(src.Attributes.Producer),
		Type:       string(src.Attributes.Type),
	}
}
