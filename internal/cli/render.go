package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/honeybarrel/backend/internal/domain"
)

var (
	accent = lipgloss.NewStyle().Foreground(lipgloss.Color("#D97706"))
	muted  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	bold   = lipgloss.NewStyle().Bold(true)
)

// searchResponse mirrors the HTTP API body for a finished search
func searchResponse(query string, outcome *domain.SearchOutcome, err error) domain.SearchResponse {
	response := domain.SearchResponse{
		Matches: []domain.MatchResult{},
		Query:   &query,
	}
	if outcome != nil && outcome.Matches != nil {
		response.Matches = outcome.Matches
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			response.Error = "Search cancelled"
		} else {
			response.Error = err.Error()
		}
	}
	return response
}

func writeJSON(w io.Writer, query string, outcome *domain.SearchOutcome, err error) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(searchResponse(query, outcome, err))
}

// renderOutcome prints matches for humans. Styles apply only when styled.
func renderOutcome(w io.Writer, query string, outcome *domain.SearchOutcome, err error, styled bool) {
	style := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}

	response := searchResponse(query, outcome, err)

	if len(response.Matches) == 0 {
		fmt.Fprintf(w, "No matches found for: %s\n", query)
	} else {
		fmt.Fprintf(w, "Found %d matches for: %s\n\n", len(response.Matches), style(bold, query))
		for i, match := range response.Matches {
			fmt.Fprintf(w, "%d. %s  %s\n", i+1, style(bold, match.Name), style(accent, fmt.Sprintf("%.0f%%", match.Similarity*100)))

			details := fmt.Sprintf("   $%.2f", match.Price)
			for _, part := range []string{match.Producer, match.SpiritType, match.Region, match.Country} {
				if part != "" {
					details += " · " + part
				}
			}
			fmt.Fprintln(w, style(muted, details))
		}
	}

	if outcome != nil {
		summary := fmt.Sprintf("\n%d pages scanned", outcome.PagesFetched)
		if len(outcome.Faults) > 0 {
			summary += fmt.Sprintf(", %d page faults", len(outcome.Faults))
		}
		fmt.Fprintln(w, style(muted, summary))
	}

	if response.Error != "" {
		fmt.Fprintf(w, "warning: %s\n", response.Error)
	}
}
