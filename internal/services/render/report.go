package render

import (
	"github.com/CrispOyster/Earnings-Scout-v4/internal/models"
	"github.com/CrispOyster/Earnings-Scout-v4/internal/services/research"
)

// logoURLBase resolves a company domain to a logo image.
const logoURLBase = "https://logo.clearbit.com/"

// SummaryView is the infographic block with gauge geometry resolved.
type SummaryView struct {
	Title        string           `json:"title"`
	LogoURL      string           `json:"logo_url,omitempty"`
	Vibe         VibeView         `json:"vibe"`
	RiskFlag     models.Flag      `json:"risk_flag"`
	CatalystFlag models.Flag      `json:"catalyst_flag"`
	Consensus    models.Consensus `json:"consensus"`
	Valuation    *ValuationView   `json:"valuation,omitempty"`
}

// ReportView is a fully rendered deep dive: infographic views plus the two
// report halves as HTML.
type ReportView struct {
	Ticker        string              `json:"ticker"`
	Summary       *SummaryView        `json:"summary,omitempty"`
	AnalysisHTML  string              `json:"analysis_html"`
	TradePlanHTML string              `json:"trade_plan_html,omitempty"`
	Citations     *models.CitationSet `json:"citations,omitempty"`
	InWatchlist   bool                `json:"in_watchlist"`
}

// Reports renders parsed search results into views.
type Reports struct {
	md *Markdown
}

// NewReports builds the report renderer.
func NewReports() *Reports {
	return &Reports{md: NewMarkdown()}
}

// Render builds the full report view. The body is split into analysis and
// trade plan halves before Markdown conversion so each renders independently.
func (r *Reports) Render(ticker string, result *models.SearchResult, inWatchlist bool) (*ReportView, error) {
	analysis, tradePlan := research.SplitBody(result.Text)

	analysisHTML, err := r.md.Render(analysis)
	if err != nil {
		return nil, err
	}

	view := &ReportView{
		Ticker:       ticker,
		AnalysisHTML: analysisHTML,
		Citations:    result.Citations,
		InWatchlist:  inWatchlist,
	}

	if tradePlan != "" {
		html, err := r.md.Render(tradePlan)
		if err != nil {
			return nil, err
		}
		view.TradePlanHTML = html
	}

	if result.Summary != nil {
		view.Summary = newSummaryView(result.Summary)
	}

	return view, nil
}

func newSummaryView(s *models.InfographicSummary) *SummaryView {
	view := &SummaryView{
		Title:        s.Title,
		Vibe:         NewVibeView(s.Vibe),
		RiskFlag:     s.RiskFlag,
		CatalystFlag: s.CatalystFlag,
		Consensus:    s.Consensus,
		Valuation:    NewValuationView(s.Valuation),
	}
	if s.CompanyDomain != "" {
		view.LogoURL = logoURLBase + s.CompanyDomain
	}
	return view
}
