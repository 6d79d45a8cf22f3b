package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededSamples(t *testing.T) {
	now := time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC)
	samples := seededSamples(now)

	require.Len(t, samples, 8)
	assert.Equal(t, 30.0, samples[0].BlanketAvgC)
	assert.Equal(t, 40.0, samples[7].BlanketAvgC)
	assert.Equal(t, now, samples[7].TakenAt)
	assert.Equal(t, now.Add(-35*time.Minute), samples[0].TakenAt)
}

func TestRenderCommand_WritesSnapshot(t *testing.T) {
	dir := t.TempDir()
	page := filepath.Join(dir, "page.html")
	chartFile := filepath.Join(dir, "chart.svg")

	rootCmd.SetArgs([]string{"render", "--config", filepath.Join(dir, "none.yml"), "--out", page, "--chart-out", chartFile})
	require.NoError(t, rootCmd.Execute())

	html, err := os.ReadFile(page)
	require.NoError(t, err)
	out := string(html)
	assert.Contains(t, out, "MEDIUM SPEED, BLANKET SETPOINT 40°C")
	assert.Contains(t, out, `id="label-blower">MEDIUM<`)
	assert.NotContains(t, out, "app.js")

	svg, err := os.ReadFile(chartFile)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(svg), "<svg"))
}
