package usecase

import (
	"log"

	"github.com/honeybarrel/backend/internal/domain"
)

// CandidateMatcher scores catalog entries against a normalized query
type CandidateMatcher struct {
	normalizer         *Normalizer
	enableDebugLogging bool
}

// NewCandidateMatcher creates a matcher sharing the query's normalizer
func NewCandidateMatcher(normalizer *Normalizer, enableDebugLogging bool) *CandidateMatcher {
	return &CandidateMatcher{
		normalizer:         normalizer,
		enableDebugLogging: enableDebugLogging,
	}
}

// Fields returns the scorable attribute fields of an entry in scoring
// order, dropping those that normalize to empty.
func (m *CandidateMatcher) Fields(entry domain.CatalogEntry) []domain.AttributeField {
	raw := [...]struct{ name, value string }{
		{domain.FieldName, entry.Name},
		{domain.FieldProducer, entry.Producer},
		{domain.FieldType, entry.Type},
		{domain.FieldRegion, entry.Region},
		{domain.FieldCountry, entry.Country},
	}

	fields := make([]domain.AttributeField, 0, len(raw))
	for _, f := range raw {
		normalized := m.normalizer.Normalize(f.value)
		if normalized == "" {
			continue
		}
		fields = append(fields, domain.AttributeField{
			Name:       f.name,
			Raw:        f.value,
			Normalized: normalized,
		})
	}
	return fields
}

// Score finds the field most similar to normalizedQuery. Ties keep the
// earlier field: a later field must score strictly higher to win.
func (m *CandidateMatcher) Score(entry domain.CatalogEntry, normalizedQuery string) domain.ScoredCandidate {
	candidate := domain.ScoredCandidate{Entry: entry}

	for _, field := range m.Fields(entry) {
		similarity := Similarity(normalizedQuery, field.Normalized)

		if m.enableDebugLogging {
			log.Printf("[MATCH] %q vs %q (field: %s) -> %.3f", normalizedQuery, field.Normalized, field.Name, similarity)
		}

		if similarity > candidate.Similarity {
			candidate.Similarity = similarity
			candidate.BestMatchField = field.Name
		}
	}

	return candidate
}
