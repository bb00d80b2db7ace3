package domain

// Attribute field names, in the order they are scored
const (
	FieldName     = "name"
	FieldProducer = "producer"
	FieldType     = "type"
	FieldRegion   = "region"
	FieldCountry  = "country"
)

// CatalogEntry is one listing fetched from the catalog
type CatalogEntry struct {
	ID         string
	Name       string
	Price      float64
	ImageURL   string
	SpiritType string
	Blurhash   string
	Region     string
	Country    string
	Producer   string
	Type       string // attributes.Type; scored but not part of the public result
}

// AttributeField is one scorable field of a CatalogEntry
type AttributeField struct {
	Name       string
	Raw        string
	Normalized string
}

// ScoredCandidate is a CatalogEntry annotated with its best similarity to a query
type ScoredCandidate struct {
	Entry          CatalogEntry
	Similarity     float64
	BestMatchField string // empty when no field scored above zero
}

// MatchResult is the public record returned for a qualifying listing
type MatchResult struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	ImageURL   string  `json:"imageUrl"`
	SpiritType string  `json:"spiritType"`
	Blurhash   string  `json:"blurhash"`
	Region     string  `json:"region"`
	Country    string  `json:"country"`
	Producer   string  `json:"producer"`
	Similarity float64 `json:"similarity"`
}

// SearchOutcome holds the ranked matches of a single search.
// An empty Matches slice means no listing qualified; it is not an error.
type SearchOutcome struct {
	Query           string
	NormalizedQuery string
	Matches         []MatchResult
	PagesFetched    int
	Faults          []*FetchError
}

// SearchRequest is the inbound search payload
type SearchRequest struct {
	BottleName string `json:"bottleName"`
	MaxPages   int    `json:"maxPages,omitempty"`
}

// SearchResponse mirrors the shape the extension popup consumes
type SearchResponse struct {
	Matches []MatchResult `json:"matches"`
	Query   *string       `json:"query"`
	Error   string        `json:"error,omitempty"`
}
