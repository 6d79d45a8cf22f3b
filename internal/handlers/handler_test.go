package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"blanket_warmer/internal/models"
	"blanket_warmer/internal/service"

	"github.com/gin-gonic/gin"
)

func TestHealth(t *testing.T) {
	r := newTestRouter(t, &service.Service{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Fatalf("health: %d %s", w.Code, w.Body.String())
	}
}

func TestPage_RendersFreshPanel(t *testing.T) {
	s := &service.Service{
		Panels:   realPanels(t),
		Readings: &mockReadings{gauges: staticGauges()},
	}
	r := newTestRouter(t, s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("page status=%d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("content type %q", ct)
	}
	body := w.Body.String()
	for _, want := range []string{
		"<h1>Blanket warmer 01</h1>",
		`id="label-blower">MEDIUM<`,
		`id="label-setpoint">40°C<`,
		"MEDIUM SPEED, BLANKET SETPOINT 40°C",
		"Suhu Pemanas",
		`x2="30.72" y2="60.00"`,
		`src="/chart.svg"`,
		"power--on",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestPage_ReadingsFailureDropsPanel(t *testing.T) {
	panels := &mockPanels{state: models.PanelState{ID: "p1"}}
	s := &service.Service{
		Panels:   panels,
		Readings: &mockReadings{err: errBoom},
	}
	r := newTestRouter(t, s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if len(panels.dropped) != 1 || panels.dropped[0] != "p1" {
		t.Fatalf("panel should be dropped, got %v", panels.dropped)
	}
}

func TestPage_CreateFailure(t *testing.T) {
	s := &service.Service{Panels: &mockPanels{createErr: errBoom}}
	r := newTestRouter(t, s)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusInternalServerError || w.Body.String() != errRenderPage {
		t.Fatalf("got %d %q", w.Code, w.Body.String())
	}
}

func TestStaticAssets(t *testing.T) {
	r := newTestRouter(t, &service.Service{})

	for _, path := range []string{"/static/style.css", "/static/app.js", "/static/wind.svg", "/static/fire.svg"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("%s: status %d", path, w.Code)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/nope.svg", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("missing asset: status %d", w.Code)
	}
}

func TestChartSVG(t *testing.T) {
	now := time.Now().UTC()
	samples := []models.Sample{
		{Seq: 1, TakenAt: now.Add(-5 * time.Minute), BlanketAvgC: 30, BodyC: 36},
		{Seq: 2, TakenAt: now, BlanketAvgC: 35, BodyC: 36},
	}

	cases := []struct {
		name     string
		readings *mockReadings
		wantCode int
	}{
		{"renders", &mockReadings{samples: samples}, http.StatusOK},
		{"too_few_samples", &mockReadings{samples: samples[:1]}, http.StatusNoContent},
		{"history_error", &mockReadings{historyErr: errBoom}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(t, &service.Service{Readings: tc.readings})
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/chart.svg", nil))
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d want %d body=%s", w.Code, tc.wantCode, w.Body.String())
			}
			if tc.wantCode == http.StatusOK {
				if ct := w.Header().Get("Content-Type"); ct != "image/svg+xml" {
					t.Fatalf("content type %q", ct)
				}
				if !strings.Contains(w.Body.String(), "<svg") {
					t.Fatalf("expected svg body")
				}
			}
		})
	}
}

func TestSwaggerDoc(t *testing.T) {
	r := newTestRouter(t, &service.Service{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("doc.json status %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "/api/v1/panels/{id}/sliders/{name}") {
		t.Fatalf("doc.json missing slider route")
	}
}

func TestRoutes_WithoutViewSkipPage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	panels := &mockPanels{state: models.PanelState{ID: "p1"}}
	h := NewHandler(&service.Service{Panels: panels, Readings: &mockReadings{}}, nil, Options{}, nil)
	r := h.InitRoutes()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("page without view: status %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/panels/p1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("api without view: status %d", w.Code)
	}
}

func TestSwaggerDoc_LogsPathMatchesRoute(t *testing.T) {
	r := newTestRouter(t, &service.Service{EventLog: &mockEventLog{}})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if !strings.Contains(w.Body.String(), `"/api/v1/logs"`) {
		t.Fatalf("doc.json missing logs route")
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/logs", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("documented logs path: status %d", w.Code)
	}
}
