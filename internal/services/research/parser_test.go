package research

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/CrispOyster/Earnings-Scout-v4/internal/interfaces"
)

func createTestLogger() arbor.ILogger {
	return arbor.NewLogger()
}

const validSummaryJSON = `{
	"title": "NVIDIA Q3 FY25 Earnings",
	"website": "nvidia.com",
	"vibe": {"score": 8.5, "quote": "Demand for Hopper is incredible.", "analysis": "Management tone was confident throughout."},
	"redFlag": {"title": "Export Controls", "description": "China restrictions could cap data center growth."},
	"greenFlag": {"title": "Blackwell Ramp", "description": "Next-gen platform is sold out for quarters."},
	"consensus": {"rating": "Strong Buy", "priceTarget": "$175.00"},
	"dcf": {"fairValue": 168.40, "currentPrice": 142.50, "verdict": "Undervalued"}
}`

func TestParseDeepDive_FullResponse(t *testing.T) {
	parser := NewParser(createTestLogger())

	raw := validSummaryJSON + "\n|||SPLIT|||\n# Part 1\n\nAnalysis here.\n\n## Part 2: Trade Plan\n\nEntry at $140."
	result := parser.ParseDeepDive(raw)

	require.NotNil(t, result.Summary)
	assert.Equal(t, "NVIDIA Q3 FY25 Earnings", result.Summary.Title)
	assert.Equal(t, 8.5, result.Summary.Vibe.Score)
	require.NotNil(t, result.Summary.Valuation)
	assert.Equal(t, 142.50, result.Summary.Valuation.CurrentPrice)
	assert.Contains(t, result.Text, "# Part 1")
	assert.Contains(t, result.Text, "## Part 2")
	assert.NotContains(t, result.Text, "|||SPLIT|||")
}

func TestParseDeepDive_FencedSummary(t *testing.T) {
	parser := NewParser(createTestLogger())

	raw := "```json\n" + validSummaryJSON + "\n```\n|||SPLIT|||\nBody text."
	result := parser.ParseDeepDive(raw)

	require.NotNil(t, result.Summary)
	assert.Equal(t, "Body text.", result.Text)
}

func TestParseDeepDive_MissingDelimiter(t *testing.T) {
	parser := NewParser(createTestLogger())

	result := parser.ParseDeepDive("  Just a markdown report with no summary.  ")

	assert.Nil(t, result.Summary)
	assert.Equal(t, "Just a markdown report with no summary.", result.Text)
}

func TestParseDeepDive_MalformedSummaryKeepsBody(t *testing.T) {
	parser := NewParser(createTestLogger())

	raw := `{"title": "broken` + "\n|||SPLIT|||\nThe body survives."
	result := parser.ParseDeepDive(raw)

	assert.Nil(t, result.Summary)
	assert.Equal(t, "The body survives.", result.Text)
}

func TestParseDeepDive_IncompleteSummaryDiscardedWhole(t *testing.T) {
	parser := NewParser(createTestLogger())

	// Valid JSON but missing required blocks: all-or-nothing discard.
	raw := `{"title": "Only a title"}` + "\n|||SPLIT|||\nBody."
	result := parser.ParseDeepDive(raw)

	assert.Nil(t, result.Summary)
	assert.Equal(t, "Body.", result.Text)
}

func TestParseDeepDive_RepeatedDelimiterRejoinsBody(t *testing.T) {
	parser := NewParser(createTestLogger())

	raw := validSummaryJSON + "|||SPLIT|||first|||SPLIT|||second"
	result := parser.ParseDeepDive(raw)

	assert.Equal(t, "first|||SPLIT|||second", result.Text)
}

func TestSplitBody(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		wantAnalysis  string
		wantTradePlan string
	}{
		{
			name:          "heading present",
			body:          "Analysis text.\n## Part 2: Trade Plan\nEntries.",
			wantAnalysis:  "Analysis text.\n",
			wantTradePlan: "## Part 2: Trade Plan\nEntries.",
		},
		{
			name:          "heading absent",
			body:          "Only analysis.",
			wantAnalysis:  "Only analysis.",
			wantTradePlan: "",
		},
		{
			name:          "heading first",
			body:          "## Part 2\nStraight to the plan.",
			wantAnalysis:  "",
			wantTradePlan: "## Part 2\nStraight to the plan.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, tradePlan := SplitBody(tt.body)
			assert.Equal(t, tt.wantAnalysis, analysis)
			assert.Equal(t, tt.wantTradePlan, tradePlan)
		})
	}
}

func TestBuildCitations_DedupsByURI(t *testing.T) {
	sources := []interfaces.ModelSource{
		{URI: "https://a.example/1", Title: "First"},
		{URI: "https://b.example/2", Title: "Second"},
		{URI: "https://a.example/1", Title: "Duplicate with new title"},
		{URI: "", Title: "No URI"},
	}

	set := BuildCitations(sources, "<div>entry</div>")

	require.NotNil(t, set)
	require.Len(t, set.Sources, 2)
	assert.Equal(t, "First", set.Sources[0].Title)
	assert.Equal(t, "https://b.example/2", set.Sources[1].URI)
	assert.Equal(t, "<div>entry</div>", set.SearchEntryPointHTML)
}

func TestBuildCitations_EmptyReturnsNil(t *testing.T) {
	assert.Nil(t, BuildCitations(nil, ""))
}

func TestBuildCitations_EntryPointOnly(t *testing.T) {
	set := BuildCitations(nil, "<div>chips</div>")
	require.NotNil(t, set)
	assert.Empty(t, set.Sources)
	assert.Equal(t, "<div>chips</div>", set.SearchEntryPointHTML)
}
