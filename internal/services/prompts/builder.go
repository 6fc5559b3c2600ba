// Package prompts builds the natural-language instructions sent to the model
// transport. The prompt texts define the response contract the parser inverts:
// the part delimiter, the embedded summary JSON shape, the trade plan heading
// and the competitor link convention all originate here.
//
// Templates are embedded TOML files with user override support: a file of the
// same name in the configured templates directory takes precedence.
package prompts

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/CrispOyster/Earnings-Scout-v4/internal/models"
)

//go:embed *.toml
var fs embed.FS

// Protocol constants shared between the request builder and the response
// parser. They are part of the model contract, not presentation.
const (
	// PartDelimiter separates the summary JSON from the markdown report in a
	// deep-dive response. Chosen to never appear in normal prose.
	PartDelimiter = "|||SPLIT|||"

	// TradePlanHeading marks the start of the trade plan half of the report
	// body. Matched as a literal substring.
	TradePlanHeading = "## Part 2"

	// AnalyzeLinkPrefix is the link-target convention for inline ticker
	// navigation: [AMD](#analyze-AMD).
	AnalyzeLinkPrefix = "#analyze-"
)

// template is one loaded prompt template.
type template struct {
	Type       string            `toml:"type"`
	Prompt     string            `toml:"prompt"`
	Objectives map[string]string `toml:"objectives"`
}

// Builder constructs the three prompt shapes from embedded templates.
type Builder struct {
	templatesDir string
}

// NewBuilder creates a prompt builder. templatesDir may be empty; when set,
// files there override the embedded defaults.
func NewBuilder(templatesDir string) *Builder {
	return &Builder{templatesDir: templatesDir}
}

// load resolves a template by name: user override first, embedded default second.
func (b *Builder) load(name string) (*template, error) {
	if b.templatesDir != "" {
		userPath := filepath.Join(b.templatesDir, name+".toml")
		if data, err := os.ReadFile(userPath); err == nil {
			return parseTemplate(data)
		}
	}

	data, err := fs.ReadFile(name + ".toml")
	if err != nil {
		return nil, fmt.Errorf("prompt template %s not found: %w", name, err)
	}
	return parseTemplate(data)
}

func parseTemplate(data []byte) (*template, error) {
	var tmpl template
	if err := toml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("failed to parse prompt template: %w", err)
	}
	if strings.TrimSpace(tmpl.Prompt) == "" {
		return nil, fmt.Errorf("prompt template has empty prompt text")
	}
	return &tmpl, nil
}

// DeepDive builds the single-ticker research prompt. The ticker must already
// be normalized by the caller.
func (b *Builder) DeepDive(ticker string) (string, error) {
	tmpl, err := b.load("deep_dive")
	if err != nil {
		return "", err
	}
	return substitute(tmpl.Prompt, map[string]string{"ticker": ticker}), nil
}

// Trending builds the trending stocks prompt for the given filter. Unknown
// filters fall back to the general objective.
func (b *Builder) Trending(filter models.TrendingFilter) (string, error) {
	tmpl, err := b.load("trending")
	if err != nil {
		return "", err
	}

	objective, ok := tmpl.Objectives[string(filter)]
	if !ok {
		objective = tmpl.Objectives[string(models.TrendingFilterGeneral)]
	}
	if objective == "" {
		return "", fmt.Errorf("trending template missing objective for filter %q", filter)
	}

	return substitute(tmpl.Prompt, map[string]string{"objective": objective}), nil
}

// Calendar builds the 14-day earnings calendar prompt anchored at now.
func (b *Builder) Calendar(now time.Time) (string, error) {
	tmpl, err := b.load("calendar")
	if err != nil {
		return "", err
	}
	// Same display format the calendar asks the model to use, e.g. "Oct 24".
	today := now.Format("Jan 2")
	return substitute(tmpl.Prompt, map[string]string{"today": today}), nil
}

// substitute replaces {key} placeholders for known keys only, leaving other
// braces (JSON examples in the prompt body) untouched.
func substitute(text string, values map[string]string) string {
	for key, value := range values {
		text = strings.ReplaceAll(text, "{"+key+"}", value)
	}
	return strings.TrimSpace(text)
}
