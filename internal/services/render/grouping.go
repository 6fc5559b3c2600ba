package render

import (
	"sort"
	"strconv"
	"strings"

	"github.com/CrispOyster/Earnings-Scout-v4/internal/models"
)

// defaultSector buckets stocks the model returned without a sector label.
const defaultSector = "Uncategorized"

// TrendingRow is one stock in a sector group, with its sparkline geometry
// resolved up front.
type TrendingRow struct {
	models.TrendingStock
	Sparkline *SparklineView `json:"sparkline_view,omitempty"`
	Positive  bool           `json:"positive"`
}

// SectorGroup is the trending list bucketed under one sector heading.
type SectorGroup struct {
	Sector string        `json:"sector"`
	Stocks []TrendingRow `json:"stocks"`
}

// Sparkline viewBox dimensions shared by all trending rows.
const (
	sparklineWidth  = 100.0
	sparklineHeight = 40.0
)

// GroupTrending buckets stocks by sector and orders the groups
// alphabetically so the layout is stable across refreshes. Stocks keep the
// model's order within each group.
func GroupTrending(stocks []models.TrendingStock) []SectorGroup {
	byName := make(map[string][]TrendingRow)
	for _, s := range stocks {
		sector := strings.TrimSpace(s.Sector)
		if sector == "" {
			sector = defaultSector
		}
		byName[sector] = append(byName[sector], TrendingRow{
			TrendingStock: s,
			Sparkline:     NewSparklineView(s.Sparkline, sparklineWidth, sparklineHeight),
			Positive:      !strings.HasPrefix(strings.TrimSpace(s.Change), "-"),
		})
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]SectorGroup, 0, len(names))
	for _, name := range names {
		groups = append(groups, SectorGroup{Sector: name, Stocks: byName[name]})
	}
	return groups
}

// CalendarRow is one earnings event with its beat/miss bar views.
type CalendarRow struct {
	models.EarningsEvent
	Session string              `json:"session"` // AM or PM badge
	EPS     EarningsMetricView  `json:"eps"`
	Revenue *EarningsMetricView `json:"revenue,omitempty"`
}

// DateGroup is the earnings calendar bucketed under one date heading.
type DateGroup struct {
	Date   string        `json:"date"`
	Events []CalendarRow `json:"events"`
}

// GroupCalendar buckets events by reporting date. Dates keep first-appearance
// order: the model already emits the week chronologically and re-sorting
// display strings like "Mon, Jan 6" would scramble it.
func GroupCalendar(events []models.EarningsEvent) []DateGroup {
	index := make(map[string]int)
	var groups []DateGroup
	for _, ev := range events {
		row := CalendarRow{
			EarningsEvent: ev,
			Session:       SessionBadge(ev.Time),
			EPS:           NewEarningsMetricView("EPS", ev.EPSEstimate, ev.EPSActual, ev.EPSHistory, fmtEPS(ev.EPSEstimate), fmtEPS(ev.EPSActual)),
		}
		if ev.RevenueEstimateNum != nil || ev.RevenueActualNum != nil || len(ev.RevenueHistory) > 0 {
			rev := NewEarningsMetricView("Revenue", ev.RevenueEstimateNum, ev.RevenueActualNum, ev.RevenueHistory, ev.RevenueEstimate, strVal(ev.RevenueActual))
			row.Revenue = &rev
		}

		i, ok := index[ev.Date]
		if !ok {
			i = len(groups)
			index[ev.Date] = i
			groups = append(groups, DateGroup{Date: ev.Date})
		}
		groups[i].Events = append(groups[i].Events, row)
	}
	return groups
}

// SessionBadge condenses a free-form reporting time into an AM or PM badge.
// The model phrases after-hours reports as "After Close", "after market" and
// similar, so a substring check covers the variants.
func SessionBadge(reportTime string) string {
	t := strings.ToLower(reportTime)
	if strings.Contains(t, "after") || strings.Contains(t, "close") {
		return "PM"
	}
	return "AM"
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func fmtEPS(v *float64) string {
	if v == nil {
		return ""
	}
	return "$" + strconv.FormatFloat(*v, 'f', 2, 64)
}
