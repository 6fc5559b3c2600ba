// Package render converts parsed results into the view structures the
// dashboard consumes: gauge geometry, sentiment bands, sparkline paths,
// grouped listings and report HTML.
package render

import (
	"math"

	"github.com/CrispOyster/Earnings-Scout-v4/internal/models"
)

// Sentiment bands for the 1-10 vibe score. 5 and 6 are both neutral: the
// split is two thresholds, not a midpoint.
const (
	SentimentBullish = "Bullish"
	SentimentBearish = "Bearish"
	SentimentNeutral = "Neutral"
)

// SentimentBand maps a vibe score onto its display band.
func SentimentBand(score float64) string {
	switch {
	case score >= 7:
		return SentimentBullish
	case score <= 4:
		return SentimentBearish
	default:
		return SentimentNeutral
	}
}

// VibeView is the rendered sentiment gauge.
type VibeView struct {
	Score    float64 `json:"score"`
	Band     string  `json:"band"`
	FillPct  float64 `json:"fill_pct"` // score as a 0-100 bar width
	Quote    string  `json:"quote"`
	Analysis string  `json:"analysis"`
}

// NewVibeView builds the sentiment gauge view from a parsed vibe block.
func NewVibeView(vibe models.VibeGauge) VibeView {
	fill := vibe.Score * 10
	if fill < 0 {
		fill = 0
	} else if fill > 100 {
		fill = 100
	}
	return VibeView{
		Score:    vibe.Score,
		Band:     SentimentBand(vibe.Score),
		FillPct:  fill,
		Quote:    vibe.Quote,
		Analysis: vibe.Analysis,
	}
}

// valuationHeadroom scales the gauge so the longer bar stops short of the
// full track width.
const valuationHeadroom = 1.1

// ValuationView is the rendered valuation gauge: two bars proportional to the
// larger of current price and fair value, plus the upside percentage.
type ValuationView struct {
	CurrentPrice float64 `json:"current_price"`
	FairValue    float64 `json:"fair_value"`
	CurrentPct   float64 `json:"current_pct"` // bar width, 0-100
	FairPct      float64 `json:"fair_pct"`    // bar width, 0-100
	UpsidePct    float64 `json:"upside_pct"`  // signed, one decimal
	Undervalued  bool    `json:"undervalued"`
	Verdict      string  `json:"verdict"`
}

// NewValuationView builds the valuation gauge, or nil when either value is
// zero or the block is absent. Zero is the model's "could not estimate"
// sentinel; rendering zero-width bars would mislead, so the block is omitted
// entirely.
func NewValuationView(v *models.Valuation) *ValuationView {
	if v == nil || v.CurrentPrice == 0 || v.FairValue == 0 {
		return nil
	}

	maxVal := math.Max(v.CurrentPrice, v.FairValue) * valuationHeadroom
	upside := (v.FairValue - v.CurrentPrice) / v.CurrentPrice * 100

	undervalued := v.FairValue > v.CurrentPrice
	verdict := "Overvalued"
	if undervalued {
		verdict = "Undervalued"
	}

	return &ValuationView{
		CurrentPrice: v.CurrentPrice,
		FairValue:    v.FairValue,
		CurrentPct:   v.CurrentPrice / maxVal * 100,
		FairPct:      v.FairValue / maxVal * 100,
		UpsidePct:    math.Round(upside*10) / 10,
		Undervalued:  undervalued,
		Verdict:      verdict,
	}
}

// earningsHeadroom scales beat/miss bars relative to the largest value seen
// across the current quarter and history.
const earningsHeadroom = 1.2

// EarningsMetricView is one estimate-vs-actual bar pair with optional
// historical trend bars.
type EarningsMetricView struct {
	Label      string       `json:"label"`
	EstimateW  float64      `json:"estimate_w"` // bar width, 0-100
	ActualW    float64      `json:"actual_w"`   // bar width, 0-100
	HasActual  bool         `json:"has_actual"`
	Beat       bool         `json:"beat"`
	DisplayEst string       `json:"display_est"`
	DisplayAct string       `json:"display_act"`
	History    []HistoryBar `json:"history,omitempty"`
}

// HistoryBar is one historical quarter in the trend strip.
type HistoryBar struct {
	Period    string  `json:"period"`
	ActualH   float64 `json:"actual_h"`   // bar height, 0-100
	EstimateH float64 `json:"estimate_h"` // estimate tick position, 0-100
	Beat      bool    `json:"beat"`
}

// NewEarningsMetricView builds a beat/miss bar view. Absent estimates and
// actuals render as zero-width bars with placeholder display strings; a beat
// is actual >= estimate.
func NewEarningsMetricView(label string, est, act *float64, history []models.HistoryPoint, displayEst, displayAct string) EarningsMetricView {
	maxVal := 0.0
	if est != nil {
		maxVal = math.Max(maxVal, math.Abs(*est))
	}
	if act != nil {
		maxVal = math.Max(maxVal, math.Abs(*act))
	}
	for _, h := range history {
		maxVal = math.Max(maxVal, math.Max(math.Abs(h.Estimate), math.Abs(h.Actual)))
	}

	scaleMax := maxVal * earningsHeadroom
	if scaleMax == 0 {
		scaleMax = 1
	}

	view := EarningsMetricView{
		Label:      label,
		DisplayEst: displayEst,
		DisplayAct: displayAct,
	}
	if view.DisplayEst == "" {
		view.DisplayEst = "-"
	}

	if est != nil {
		view.EstimateW = math.Min(math.Abs(*est)/scaleMax*100, 100)
	}
	if act != nil {
		view.HasActual = true
		view.ActualW = math.Min(math.Abs(*act)/scaleMax*100, 100)
		view.Beat = est != nil && *act >= *est
	}

	for _, h := range history {
		view.History = append(view.History, HistoryBar{
			Period:    h.Period,
			ActualH:   math.Min(math.Abs(h.Actual)/scaleMax*100, 100),
			EstimateH: math.Min(math.Abs(h.Estimate)/scaleMax*100, 100),
			Beat:      h.Actual >= h.Estimate,
		})
	}

	return view
}
