package ui_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/tuckfix/pkg/reconcile"
	"github.com/arthur-debert/tuckfix/pkg/stats"
	"github.com/arthur-debert/tuckfix/pkg/types"
	"github.com/arthur-debert/tuckfix/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleReport() *reconcile.Report {
	st := stats.New()
	st.Add(stats.GroupsProcessed, 2)
	st.Increment(stats.GroupsLinked)
	st.Increment(stats.RenamedFolders)
	st.Increment(stats.Warnings)

	return &reconcile.Report{
		Stats: st,
		Results: []types.GroupResult{
			{Group: "nvim", Outcome: types.OutcomeResolved, Attempts: 1},
			{Group: "stubborn", Outcome: types.OutcomeStillConflicted, Attempts: 5, Error: "still conflicted"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected ui.Format
		wantErr  bool
	}{
		{input: "", expected: ui.FormatText},
		{input: "text", expected: ui.FormatText},
		{input: "plain", expected: ui.FormatText},
		{input: "JSON", expected: ui.FormatJSON},
		{input: "yaml", expected: ui.FormatYAML},
		{input: "yml", expected: ui.FormatYAML},
		{input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ui.ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "text", ui.FormatText.String())
	assert.Equal(t, "json", ui.FormatJSON.String())
	assert.Equal(t, "yaml", ui.FormatYAML.String())
	assert.Equal(t, "unknown", ui.Format(99).String())
}

func TestColorEnabled(t *testing.T) {
	notATerminal, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = notATerminal.Close() })

	t.Setenv("NO_COLOR", "")
	assert.True(t, ui.ColorEnabled("always", nil))
	assert.False(t, ui.ColorEnabled("never", os.Stderr))
	assert.False(t, ui.ColorEnabled("auto", nil))
	assert.False(t, ui.ColorEnabled("auto", notATerminal))

	t.Setenv("NO_COLOR", "1")
	assert.False(t, ui.ColorEnabled("auto", os.Stderr))
	assert.True(t, ui.ColorEnabled("always", os.Stderr), "an explicit choice wins over NO_COLOR")
}

func TestTextRenderer(t *testing.T) {
	ui.SetColor(false)

	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderReport(sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "Groups\n")
	assert.Contains(t, out, "nvim")
	assert.Contains(t, out, "resolved (1 attempt)")
	assert.Contains(t, out, "still_conflicted (5 attempts)")
	assert.NotContains(t, out, "\x1b[", "no escape codes without color")
}

func TestTextRenderer_NothingToShow(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatText, &buf)
	require.NoError(t, err)

	require.NoError(t, r.RenderReport(&reconcile.Report{Stats: stats.New()}))
	assert.Empty(t, buf.String())
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderReport(sampleReport()))

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	counters := doc["counters"].(map[string]interface{})
	assert.Equal(t, float64(2), counters["groupsProcessed"])
	assert.Equal(t, float64(0), counters["errors"], "zero counters are included")
	assert.Equal(t, true, doc["failed"])

	groups := doc["groups"].([]interface{})
	require.Len(t, groups, 2)
	assert.Equal(t, "still_conflicted", groups[1].(map[string]interface{})["outcome"])
}

func TestJSONRenderer_EmptyGroupsIsAList(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatJSON, &buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderReport(&reconcile.Report{Stats: stats.New()}))

	assert.Contains(t, buf.String(), `"groups": []`)
}

func TestYAMLRenderer(t *testing.T) {
	var buf bytes.Buffer
	r, err := ui.NewRenderer(ui.FormatYAML, &buf)
	require.NoError(t, err)
	require.NoError(t, r.RenderReport(sampleReport()))

	var doc ui.Document
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, 1, doc.Counters["renamedFolders"])
	assert.Equal(t, "nvim", doc.Groups[0].Group)
	assert.Equal(t, types.OutcomeResolved, doc.Groups[0].Outcome)
	assert.True(t, doc.Failed)
}
