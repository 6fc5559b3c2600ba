// Package research turns raw model responses into typed results. The parser
// side inverts the contract the prompts package establishes: a deep-dive
// response is summary JSON + delimiter + markdown body, and the list queries
// return one JSON array, nominally pure but often wrapped in prose or fences.
package research

import (
	"encoding/json"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/CrispOyster/Earnings-Scout-v4/internal/interfaces"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/models"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/services/prompts"
)

// Parser splits raw deep-dive responses into a SearchResult. Parse failures
// in the summary are recovered: the markdown body always survives.
type Parser struct {
	logger arbor.ILogger
}

// NewParser creates a response parser.
func NewParser(logger arbor.ILogger) *Parser {
	return &Parser{logger: logger}
}

// ParseDeepDive splits a raw deep-dive response on the part delimiter and
// decodes the leading summary JSON. A missing delimiter or a malformed
// summary never fails the operation - the whole text (or the post-delimiter
// remainder) becomes the markdown body and Summary stays nil.
func (p *Parser) ParseDeepDive(raw string) models.SearchResult {
	parts := strings.Split(raw, prompts.PartDelimiter)

	if len(parts) < 2 {
		// No delimiter: the entire response is the report body.
		return models.SearchResult{Text: strings.TrimSpace(raw)}
	}

	// Should the delimiter literal appear again, the remainder is re-joined
	// so no report text is lost.
	body := strings.TrimSpace(strings.Join(parts[1:], prompts.PartDelimiter))

	result := models.SearchResult{Text: body}

	summary, err := p.parseSummary(parts[0])
	if err != nil {
		perr := &models.SummaryParseError{Err: err}
		p.logger.Warn().Err(perr).Msg("Discarding malformed infographic summary")
		return result
	}

	result.Summary = summary
	return result
}

// parseSummary decodes the candidate JSON ahead of the delimiter. The summary
// is all-or-nothing: a decode or shape-validation failure discards it whole.
func (p *Parser) parseSummary(candidate string) (*models.InfographicSummary, error) {
	cleaned := strings.TrimSpace(StripFences(candidate))

	var summary models.InfographicSummary
	if err := json.Unmarshal([]byte(cleaned), &summary); err != nil {
		return nil, err
	}
	if err := summary.Validate(); err != nil {
		return nil, err
	}
	return &summary, nil
}

// SplitBody bisects a report body at the first trade plan heading. When the
// heading never appears the whole body is analysis and the trade plan pane is
// empty - that is a valid state, not an error.
func SplitBody(body string) (analysis, tradePlan string) {
	idx := strings.Index(body, prompts.TradePlanHeading)
	if idx < 0 {
		return body, ""
	}
	return body[:idx], body[idx:]
}

// StripFences removes markdown code fence markers from a candidate payload.
func StripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	return strings.ReplaceAll(s, "```", "")
}

// BuildCitations converts transport grounding sources into a citation set,
// deduplicated by URI. The first occurrence wins and order is stable, so a
// repeated source with a different title keeps the first-seen title.
func BuildCitations(sources []interfaces.ModelSource, entryPointHTML string) *models.CitationSet {
	if len(sources) == 0 && entryPointHTML == "" {
		return nil
	}

	seen := make(map[string]bool, len(sources))
	citations := make([]models.Citation, 0, len(sources))
	for _, src := range sources {
		if src.URI == "" || seen[src.URI] {
			continue
		}
		seen[src.URI] = true
		citations = append(citations, models.Citation{URI: src.URI, Title: src.Title})
	}

	return &models.CitationSet{
		Sources:              citations,
		SearchEntryPointHTML: entryPointHTML,
	}
}
