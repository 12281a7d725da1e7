package restserver

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/chrissnell/carbonchart/internal/chart"
	"github.com/chrissnell/carbonchart/internal/series"
	"github.com/chrissnell/carbonchart/pkg/config"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

func testSpec(t *testing.T) *chart.Spec {
	t.Helper()
	co2 := series.Series{Years: []int{2000, 2001}, Values: []float64{5, 7}}
	temp := series.Series{Years: []int{2000, 2001}, Values: []float64{-5, 5}}
	spec, err := chart.Build(co2, temp, "ON", "Toronto", chart.Style{})
	if err != nil {
		t.Fatalf("chart.Build() error = %v", err)
	}
	return spec
}

func newTestController(t *testing.T) *Controller {
	t.Helper()
	var wg sync.WaitGroup
	ctrl, err := NewController(context.Background(), &wg, config.ServerData{Port: 0}, testSpec(t), zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("NewController() error = %v", err)
	}
	return ctrl
}

func TestRoutes(t *testing.T) {
	ctrl := newTestController(t)

	tests := []struct {
		name        string
		method      string
		target      string
		status      int
		contentType string
		contains    string
	}{
		{name: "chart page", method: http.MethodGet, target: "/", status: http.StatusOK, contentType: "text/html; charset=utf-8", contains: "Toronto, ON"},
		{name: "chart json", method: http.MethodGet, target: "/api/chart", status: http.StatusOK, contentType: "application/json", contains: `"y2AxisLabel":"Temperatures in Celsius"`},
		{name: "chart png", method: http.MethodGet, target: "/chart.png?w=6&h=4", status: http.StatusOK, contentType: "image/png", contains: "PNG"},
		{name: "bad png size", method: http.MethodGet, target: "/chart.png?w=abc", status: http.StatusBadRequest, contentType: "application/json", contains: "invalid w parameter"},
		{name: "png too large", method: http.MethodGet, target: "/chart.png?h=500", status: http.StatusBadRequest, contentType: "application/json", contains: "invalid h parameter"},
		{name: "unknown path", method: http.MethodGet, target: "/latest", status: http.StatusNotFound, contentType: "application/json", contains: "not found"},
		{name: "wrong method", method: http.MethodPost, target: "/api/chart", status: http.StatusMethodNotAllowed, contentType: "application/json", contains: "method not allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			rec := httptest.NewRecorder()
			ctrl.Server.Handler.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status = %d, expected %d", rec.Code, tt.status)
			}
			if got := rec.Header().Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, expected %q", got, tt.contentType)
			}
			if !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("body does not contain %q", tt.contains)
			}
		})
	}
}

func TestGetChartMsgPack(t *testing.T) {
	ctrl := newTestController(t)

	req := httptest.NewRequest(http.MethodGet, "/api/chart?format=msgpack", nil)
	rec := httptest.NewRecorder()
	ctrl.Server.Handler.ServeHTTP(rec, req)

	var got chart.Spec
	dec := msgpack.NewDecoder(bytes.NewReader(rec.Body.Bytes()))
	dec.SetCustomStructTag("json")
	if err := dec.Decode(&got); err != nil {
		t.Fatalf("msgpack decode error = %v", err)
	}
	if got.Title != "Carbon dioxide levels and anomaly temperatures for Toronto, ON" {
		t.Errorf("Title = %q", got.Title)
	}
	if len(got.Traces) != 2 || !got.Traces[1].Secondary || got.Traces[0].Values[1] != 7 {
		t.Errorf("Traces = %+v", got.Traces)
	}
}

func TestRequestID(t *testing.T) {
	ctrl := newTestController(t)

	rec := httptest.NewRecorder()
	ctrl.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/chart", nil))
	if id := rec.Header().Get(requestIDHeader); len(id) != 36 {
		t.Errorf("generated %s = %q, expected a UUID", requestIDHeader, id)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/chart", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	ctrl.Server.Handler.ServeHTTP(rec, req)
	if id := rec.Header().Get(requestIDHeader); id != "abc-123" {
		t.Errorf("%s = %q, expected the client's ID", requestIDHeader, id)
	}
}

func TestNewControllerRequiresSpec(t *testing.T) {
	var wg sync.WaitGroup
	if _, err := NewController(context.Background(), &wg, config.ServerData{}, nil, zap.NewNop().Sugar()); err == nil {
		t.Error("NewController() without a chart returned nil error")
	}
}

func TestBrowserRenderer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	open := true
	r := NewBrowserRenderer(config.ServerData{ListenAddr: "127.0.0.1", Port: 0, OpenBrowser: &open}, zap.NewNop().Sugar())

	opened := make(chan string, 1)
	r.Open = func(url string) error {
		opened <- url
		return nil
	}

	spec := testSpec(t)
	done := make(chan error, 1)
	go func() { done <- r.Render(ctx, spec) }()

	var url string
	select {
	case url = <-opened:
	case err := <-done:
		t.Fatalf("Render() returned early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("browser was never opened")
	}

	resp, err := http.Get(url + "api/chart")
	if err != nil {
		t.Fatalf("GET %s error = %v", url, err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	var served chart.Spec
	if err := json.Unmarshal(body, &served); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if served.Province != "ON" || served.Station != "Toronto" {
		t.Errorf("served spec = %+v", served)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Render() error = %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Render() did not return after cancellation")
	}
}
