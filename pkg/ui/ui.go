// Package ui renders the result of a run. The text format prints a styled
// per-group table; json and yaml print a machine readable document with
// every counter and group outcome.
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/tuckfix/pkg/reconcile"
	"github.com/arthur-debert/tuckfix/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Renderer writes a report.
type Renderer interface {
	RenderReport(report *reconcile.Report) error
}

// Document is the machine readable form of a report.
type Document struct {
	Counters map[string]int      `json:"counters" yaml:"counters"`
	Groups   []types.GroupResult `json:"groups" yaml:"groups"`
	Failed   bool                `json:"failed" yaml:"failed"`
}

// NewDocument converts report for encoding.
func NewDocument(report *reconcile.Report) Document {
	groups := report.Results
	if groups == nil {
		groups = []types.GroupResult{}
	}
	return Document{
		Counters: report.Stats.Map(),
		Groups:   groups,
		Failed:   report.Failed(),
	}
}

// NewRenderer creates a renderer for format writing to output.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatText:
		return &textRenderer{output: output}, nil
	case FormatJSON:
		return &jsonRenderer{output: output}, nil
	case FormatYAML:
		return &yamlRenderer{output: output}, nil
	default:
		return nil, fmt.Errorf("unknown format: %v", format)
	}
}

type textRenderer struct {
	output io.Writer
}

func (r *textRenderer) RenderReport(report *reconcile.Report) error {
	if len(report.Results) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("Groups"))
	sb.WriteString("\n")
	for _, res := range report.Results {
		sb.WriteString("  ")
		sb.WriteString(GroupStyle.Render(res.Group))
		sb.WriteString(" ")
		sb.WriteString(outcomeStyle(res.Outcome).Render(res.Outcome.String()))
		if res.Attempts > 0 {
			sb.WriteString(" ")
			sb.WriteString(MutedStyle.Render(attempts(res.Attempts)))
		}
		sb.WriteString("\n")
	}

	_, err := io.WriteString(r.output, sb.String())
	return err
}

func outcomeStyle(o types.Outcome) lipgloss.Style {
	switch o {
	case types.OutcomeResolved:
		return SuccessStyle
	case types.OutcomeLinkFailed, types.OutcomeAborted:
		return ErrorStyle
	default:
		return WarningStyle
	}
}

func attempts(n int) string {
	if n == 1 {
		return "(1 attempt)"
	}
	return fmt.Sprintf("(%d attempts)", n)
}

type jsonRenderer struct {
	output io.Writer
}

func (r *jsonRenderer) RenderReport(report *reconcile.Report) error {
	encoder := json.NewEncoder(r.output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewDocument(report))
}

type yamlRenderer struct {
	output io.Writer
}

func (r *yamlRenderer) RenderReport(report *reconcile.Report) error {
	encoder := yaml.NewEncoder(r.output)
	encoder.SetIndent(2)
	if err := encoder.Encode(NewDocument(report)); err != nil {
		return err
	}
	return encoder.Close()
}
