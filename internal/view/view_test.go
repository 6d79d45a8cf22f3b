package view

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blanket_warmer/internal/models"
)

func testPage() Page {
	return Page{
		Title: "Blanket warmer 01",
		Panel: models.PanelState{
			ID:      "panel-1",
			PowerOn: true,
			Blower: models.SliderView{
				Name: "blower", Value: 50, Min: 0, Max: 100, Step: 1, Percent: 50,
				Label: "MEDIUM", Track: "linear-gradient(to right, lightblue, dodgerblue 50%, #fff 50%)",
				Icon: "/static/wind.svg",
			},
			Setpoint: models.SliderView{
				Name: "setpoint", Value: 40, Min: 36, Max: 40, Step: 1, Percent: 100,
				Label: "40°C", Track: "linear-gradient(to right, orange, red 100%, #fff 100%)",
				Icon: "/static/fire.svg",
			},
			Status: "MEDIUM SPEED, BLANKET SETPOINT 40°C",
		},
		Gauges: []models.GaugeView{
			{Key: "heater", Label: "Suhu Pemanas", Value: 30, Max: 60, Angle: 90, NeedleX: 100, NeedleY: 20, Text: "30°C"},
		},
		ChartURL: "/chart.svg",
		Live:     true,
	}
}

func TestRender_Page(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, testPage()))
	out := buf.String()

	assert.Contains(t, out, "<title>Blanket warmer 01</title>")
	assert.Contains(t, out, `data-panel="panel-1"`)
	assert.Contains(t, out, `id="label-blower">MEDIUM<`)
	assert.Contains(t, out, `id="label-setpoint">40°C<`)
	assert.Contains(t, out, `min="36" max="40" step="1" value="40"`)
	assert.Contains(t, out, "linear-gradient(to right, lightblue, dodgerblue 50%, #fff 50%)")
	assert.Contains(t, out, "--thumb")
	assert.NotContains(t, out, "slider__input--fallback")
	assert.Contains(t, out, "MEDIUM SPEED, BLANKET SETPOINT 40°C")
	assert.Contains(t, out, "power--on")
	assert.Contains(t, out, `x2="100.00" y2="20.00"`)
	assert.Contains(t, out, `stroke="url(#grad-heater)"`)
	assert.Contains(t, out, "Suhu Pemanas")
	assert.Contains(t, out, `src="/chart.svg"`)
	assert.Contains(t, out, "/static/app.js")
}

func TestRender_SnapshotHasNoScriptOrChart(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	p := testPage()
	p.Live = false
	p.ChartURL = ""
	p.Panel.PowerOn = false

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, p))
	out := buf.String()

	assert.NotContains(t, out, "app.js")
	assert.NotContains(t, out, `id="chart"`)
	assert.Contains(t, out, "power--off")
	assert.Contains(t, out, ">OFF<")
}

func TestRender_MissingIconFallsBack(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	p := testPage()
	p.Panel.Blower.Icon = "/static/missing.svg"

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, p))
	out := buf.String()

	assert.Contains(t, out, "slider__input--fallback")
	assert.NotContains(t, out, "missing.svg")
}

func TestIconAvailable(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	assert.True(t, r.IconAvailable("/static/wind.svg"))
	assert.True(t, r.IconAvailable("/static/fire.svg"))
	assert.True(t, r.IconAvailable("https://cdn.example.com/wind.svg"))
	assert.False(t, r.IconAvailable("/static/nope.svg"))
	assert.False(t, r.IconAvailable(""))

	p := testPage()
	p.Panel.Setpoint.Icon = ""
	assert.Equal(t, []string{"setpoint:"}, r.MissingIcons(p.Panel.Blower, p.Panel.Setpoint))
}

func TestStatic_ServesAssets(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	for _, name := range []string{"style.css", "app.js", "wind.svg", "fire.svg"} {
		_, err := r.Static().Open(name)
		assert.NoError(t, err, name)
	}
}
