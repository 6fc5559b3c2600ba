package research

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/CrispOyster/Earnings-Scout-v4/internal/models"
)

// extractArray slices the first '[' through the last ']' out of a raw list
// response, after removing code fences. The model is instructed to emit pure
// JSON but sometimes wraps it in commentary anyway.
func extractArray(raw string) string {
	text := strings.TrimSpace(StripFences(raw))

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}

// decodeList parses a raw list response into generic elements. A JSON parse
// failure fails the whole slot: no sub-element boundary is reliable inside a
// broken array, so there is no partial recovery. A parseable top-level value
// that is not an array decodes to an empty list instead of an error.
func decodeList(raw, slot string) ([]any, error) {
	payload := extractArray(raw)

	var value any
	if err := json.Unmarshal([]byte(payload), &value); err != nil {
		return nil, &models.MalformedListError{Slot: slot, Err: err}
	}

	items, ok := value.([]any)
	if !ok {
		return nil, nil
	}
	return items, nil
}

// NormalizeTrending coerces a raw trending response into typed records.
// Elements that are not objects are discarded; missing fields default.
func NormalizeTrending(raw string) ([]models.TrendingStock, error) {
	items, err := decodeList(raw, "trending")
	if err != nil {
		return nil, err
	}

	stocks := make([]models.TrendingStock, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		stocks = append(stocks, models.TrendingStock{
			Symbol:    asString(obj["symbol"]),
			Name:      asString(obj["name"]),
			Sector:    asString(obj["sector"]),
			Price:     asString(obj["price"]),
			Change:    asString(obj["change"]),
			Volume:    asString(obj["volume"]),
			Reason:    asString(obj["reason"]),
			Sparkline: asFloatSlice(obj["sparkline"]),
		})
	}
	return stocks, nil
}

// NormalizeCalendar coerces a raw calendar response into typed events.
func NormalizeCalendar(raw string) ([]models.EarningsEvent, error) {
	items, err := decodeList(raw, "calendar")
	if err != nil {
		return nil, err
	}

	events := make([]models.EarningsEvent, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		events = append(events, models.EarningsEvent{
			Symbol:             asString(obj["symbol"]),
			Name:               asString(obj["name"]),
			Date:               asString(obj["date"]),
			Time:               asString(obj["time"]),
			EPSEstimate:        asFloatPtr(obj["epsEstimate"]),
			EPSActual:          asFloatPtr(obj["epsActual"]),
			RevenueEstimate:    asString(obj["revenueEstimate"]),
			RevenueActual:      asStringPtr(obj["revenueActual"]),
			RevenueEstimateNum: asFloatPtr(obj["revenueEstimateNum"]),
			RevenueActualNum:   asFloatPtr(obj["revenueActualNum"]),
			EPSHistory:         asHistory(obj["epsHistory"]),
			RevenueHistory:     asHistory(obj["revenueHistory"]),
		})
	}
	return events, nil
}

// maxHistoryPoints caps the historical quarters carried per metric.
const maxHistoryPoints = 4

func asHistory(v any) []models.HistoryPoint {
	items, ok := v.([]any)
	if !ok {
		return nil
	}

	points := make([]models.HistoryPoint, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		estimate := asFloatPtr(obj["estimate"])
		actual := asFloatPtr(obj["actual"])
		if estimate == nil || actual == nil {
			continue
		}
		points = append(points, models.HistoryPoint{
			Period:   asString(obj["period"]),
			Estimate: *estimate,
			Actual:   *actual,
		})
		if len(points) == maxHistoryPoints {
			break
		}
	}
	if len(points) == 0 {
		return nil
	}
	return points
}

// asString coerces a JSON value to a display string. The model emits prices
// as either numbers or strings; both render the same.
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return fmt.Sprintf("%t", t)
	default:
		return ""
	}
}

func asStringPtr(v any) *string {
	if v == nil {
		return nil
	}
	s := asString(v)
	if s == "" {
		return nil
	}
	return &s
}

func asFloatPtr(v any) *float64 {
	switch t := v.(type) {
	case float64:
		return &t
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return &f
		}
	}
	return nil
}

func asFloatSlice(v any) []float64 {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	values := make([]float64, 0, len(items))
	for _, item := range items {
		if f, ok := item.(float64); ok {
			values = append(values, f)
		}
	}
	if len(values) == 0 {
		return nil
	}
	return values
}
