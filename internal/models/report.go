package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Citation is one web source reference from grounding metadata.
type Citation struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// CitationSet holds the deduplicated source references for a report plus the
// optional search entry point snippet the transport returned alongside them.
type CitationSet struct {
	Sources []Citation `json:"sources"`
	// SearchEntryPointHTML is a renderable HTML fragment provided by the
	// transport. Carried through untouched.
	SearchEntryPointHTML string `json:"search_entry_point_html,omitempty"`
}

// VibeGauge is the model's read of management sentiment on a 1-10 scale.
type VibeGauge struct {
	Score    float64 `json:"score" validate:"required"`
	Quote    string  `json:"quote" validate:"required"`
	Analysis string  `json:"analysis" validate:"required"`
}

// Flag is a short titled observation (risk or catalyst).
type Flag struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

// Consensus is the Wall Street analyst consensus as free display text.
type Consensus struct {
	Rating      string `json:"rating" validate:"required"`
	PriceTarget string `json:"priceTarget" validate:"required"`
}

// Valuation is the model's simplified DCF estimate. Zero values mean the model
// could not estimate; that is a valid sentinel, not an error.
type Valuation struct {
	FairValue    float64 `json:"fairValue"`
	CurrentPrice float64 `json:"currentPrice"`
	Verdict      string  `json:"verdict"`
}

// InfographicSummary is the structured highlight block embedded as JSON ahead
// of the markdown report. It is either fully well-formed or entirely absent
// from a SearchResult - a partial summary is never kept.
type InfographicSummary struct {
	Title         string     `json:"title" validate:"required"`
	CompanyDomain string     `json:"website,omitempty"`
	Vibe          VibeGauge  `json:"vibe" validate:"required"`
	RiskFlag      Flag       `json:"redFlag" validate:"required"`
	CatalystFlag  Flag       `json:"greenFlag" validate:"required"`
	Consensus     Consensus  `json:"consensus" validate:"required"`
	Valuation     *Valuation `json:"dcf,omitempty"`
}

// Validate enforces the all-or-nothing shape contract using go-playground/validator.
func (s *InfographicSummary) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}

// SearchResult is one ticker's parsed research output.
type SearchResult struct {
	// Text is the full markdown report body (delimiter and summary removed).
	Text      string              `json:"text"`
	Summary   *InfographicSummary `json:"summary,omitempty"`
	Citations *CitationSet        `json:"citations,omitempty"`
}

// StoredReport is a SearchResult persisted to the report history. Immutable
// once created; deletion is the only mutation.
type StoredReport struct {
	ID        string       `json:"id" badgerhold:"key"`
	Ticker    string       `json:"ticker" badgerholdIndex:"Ticker"`
	Timestamp time.Time    `json:"timestamp" badgerholdIndex:"Timestamp"`
	Result    SearchResult `json:"result"`
}

// ReportID derives the deterministic history key for a ticker at a creation
// instant. Format: {TICKER}_{unix-millis}.
func ReportID(ticker string, at time.Time) string {
	return fmt.Sprintf("%s_%d", strings.ToUpper(strings.TrimSpace(ticker)), at.UnixMilli())
}
