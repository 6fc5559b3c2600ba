package models

// TrendingFilter selects the objective for a trending stocks query.
type TrendingFilter string

const (
	TrendingFilterGeneral TrendingFilter = "general"
	TrendingFilterVolume  TrendingFilter = "volume"
	TrendingFilterPrice   TrendingFilter = "price"
)

// ParseTrendingFilter maps a query string value to a filter, defaulting to general.
func ParseTrendingFilter(s string) TrendingFilter {
	switch TrendingFilter(s) {
	case TrendingFilterVolume:
		return TrendingFilterVolume
	case TrendingFilterPrice:
		return TrendingFilterPrice
	default:
		return TrendingFilterGeneral
	}
}

// TrendingStock is one entry in the model's trending list. Price, change and
// volume are display strings as returned by the model; no numeric validation
// is applied beyond what the renderer tolerates.
type TrendingStock struct {
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Sector    string    `json:"sector"`
	Price     string    `json:"price"`
	Change    string    `json:"change"`
	Volume    string    `json:"volume"`
	Reason    string    `json:"reason"`
	Sparkline []float64 `json:"sparkline"`
}

// HistoryPoint is one historical quarter in an earnings metric series.
type HistoryPoint struct {
	Period   string  `json:"period"`
	Estimate float64 `json:"estimate"`
	Actual   float64 `json:"actual"`
}

// EarningsEvent is one scheduled or reported earnings entry. Nullable numbers
// stay nil when the model had no value (upcoming reports).
type EarningsEvent struct {
	Symbol             string         `json:"symbol"`
	Name               string         `json:"name"`
	Date               string         `json:"date"`
	Time               string         `json:"time"`
	EPSEstimate        *float64       `json:"epsEstimate"`
	EPSActual          *float64       `json:"epsActual"`
	RevenueEstimate    string         `json:"revenueEstimate"`
	RevenueActual      *string        `json:"revenueActual"`
	RevenueEstimateNum *float64       `json:"revenueEstimateNum"`
	RevenueActualNum   *float64       `json:"revenueActualNum"`
	EPSHistory         []HistoryPoint `json:"epsHistory,omitempty"`
	RevenueHistory     []HistoryPoint `json:"revenueHistory,omitempty"`
}
