package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/honeybarrel/backend/internal/domain"
)

// pageResponse is one scripted reply of MockCatalogSource
type pageResponse struct {
	entries []domain.CatalogEntry
	err     error
}

// MockCatalogSource is a mock implementation of domain.CatalogSource.
// Requests past the scripted pages receive fallback.
type MockCatalogSource struct {
	mu       sync.Mutex
	pages    []pageResponse
	fallback *pageResponse
	offsets  []int
	sizes    []int
	onFetch  func(call int)
}

func NewMockCatalogSource(pages ...pageResponse) *MockCatalogSource {
	return &MockCatalogSource{pages: pages}
}

func (m *MockCatalogSource) FetchPage(ctx context.Context, offset, pageSize int) ([]domain.CatalogEntry, error) {
	m.mu.Lock()
	call := len(m.offsets)
	m.offsets = append(m.offsets, offset)
	m.sizes = append(m.sizes, pageSize)
	m.mu.Unlock()

	if m.onFetch != nil {
		m.onFetch(call)
	}

	if call < len(m.pages) {
		return m.pages[call].entries, m.pages[call].err
	}
	if m.fallback != nil {
		return m.fallback.entries, m.fallback.err
	}
	return nil, nil
}

func (m *MockCatalogSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.offsets)
}

// entries builds n listings named "<prefix> n"
func entries(prefix string, n int) []domain.CatalogEntry {
	out := make([]domain.CatalogEntry, n)
	for i := range out {
		out[i] = domain.CatalogEntry{
			ID:   fmt.Sprintf("%s-%d", prefix, i),
			Name: fmt.Sprintf("%s %d", prefix, i),
		}
	}
	return out
}
