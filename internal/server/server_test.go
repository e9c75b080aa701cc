package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iwvelando/business-case/internal/config"
	"github.com/iwvelando/business-case/internal/costmodel"
	"github.com/iwvelando/business-case/internal/preset"
	"github.com/iwvelando/business-case/internal/simulator"
	"github.com/iwvelando/business-case/pkg/constants"
	"github.com/iwvelando/business-case/pkg/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	return NewHandler(zap.NewNop(), config.Default(), constants.DefaultMaxBodySizeBytes, "test")
}

func doRequest(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeState(t *testing.T, rr *httptest.ResponseRecorder) simulator.State {
	t.Helper()
	var state simulator.State
	if err := json.Unmarshal(rr.Body.Bytes(), &state); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return state
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var payload map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return payload["error"]
}

func TestHandleDefaults(t *testing.T) {
	rr := doRequest(t, newTestHandler(t), http.MethodGet, "/api/defaults", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}

	state := decodeState(t, rr)
	if state.Outputs.TotalCost != 15816 {
		t.Errorf("total = %v, want 15816", state.Outputs.TotalCost)
	}
	if state.ActivePreset != constants.DefaultActivePreset {
		t.Errorf("active preset = %q", state.ActivePreset)
	}
	if len(state.ScaleSamples) != len(constants.DefaultPopulations) {
		t.Errorf("expected %d scale samples, got %d", len(constants.DefaultPopulations), len(state.ScaleSamples))
	}
	if len(state.RateBreakdown) != 7 {
		t.Errorf("expected 7 rate breakdown steps, got %d", len(state.RateBreakdown))
	}
	if state.View != simulator.ViewSummary {
		t.Errorf("view = %q", state.View)
	}

	row := testutil.FindSavingsRow(state.Savings, 1000)
	if row == nil {
		t.Fatal("missing savings row for 1000 students")
	}
	if row.ComparisonCost != 500000 || row.SavingAmount != 484184 {
		t.Errorf("unexpected savings row %+v", row)
	}
	bar := testutil.FindComparisonBar(state.Comparison, costmodel.BarCustomDevelopment)
	if bar == nil || bar.Cost != constants.DefaultComparisonCostFixed {
		t.Errorf("unexpected custom development bar %+v", bar)
	}
}

func TestHandleCompute(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantTotal   float64
		wantPreset  string
		wantView    simulator.View
		checkInputs func(t *testing.T, state simulator.State)
	}{
		{
			name:       "empty body object keeps defaults",
			body:       `{}`,
			wantTotal:  15816,
			wantPreset: "recommended",
			wantView:   simulator.ViewSummary,
		},
		{
			// 15050 + 1863 + round(0.15 * 16913)
			name:       "preset then override",
			body:       `{"preset":"marketRate","inputs":{"storageFee":0},"view":"cost"}`,
			wantTotal:  19450,
			wantPreset: "marketRate",
			wantView:   simulator.ViewCost,
		},
		{
			// 7200 + (1863 + 5000) + round(0.10 * 14063)
			name:       "override clamped to slider max",
			body:       `{"preset":"minimumViable","inputs":{"storageFee":99999}}`,
			wantTotal:  15469,
			wantPreset: "minimumViable",
			wantView:   simulator.ViewSummary,
			checkInputs: func(t *testing.T, state simulator.State) {
				if state.Inputs.StorageFee != constants.MaxStorageFee {
					t.Errorf("storage fee = %v, want %v", state.Inputs.StorageFee, constants.MaxStorageFee)
				}
			},
		},
		{
			name:       "override overrides preset field",
			body:       `{"preset":"marketRate","inputs":{"hourlyRate":10}}`,
			wantPreset: "marketRate",
			wantView:   simulator.ViewSummary,
			checkInputs: func(t *testing.T, state simulator.State) {
				if state.Inputs.HourlyRate != constants.MinHourlyRate {
					t.Errorf("hourly rate = %v, want %v", state.Inputs.HourlyRate, constants.MinHourlyRate)
				}
			},
		},
	}

	h := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, h, http.MethodPost, "/api/compute", tt.body)
			if rr.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
			}
			state := decodeState(t, rr)
			if tt.wantTotal != 0 && state.Outputs.TotalCost != tt.wantTotal {
				t.Errorf("total = %v, want %v", state.Outputs.TotalCost, tt.wantTotal)
			}
			if state.ActivePreset != tt.wantPreset {
				t.Errorf("active preset = %q, want %q", state.ActivePreset, tt.wantPreset)
			}
			if state.View != tt.wantView {
				t.Errorf("view = %q, want %q", state.View, tt.wantView)
			}
			if tt.checkInputs != nil {
				tt.checkInputs(t, state)
			}
		})
	}
}

func TestHandleComputeErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"malformed json", `{"inputs":`, http.StatusBadRequest, "failed to decode request"},
		{"unknown request key", `{"bogus":1}`, http.StatusBadRequest, "failed to decode request"},
		{"unknown preset", `{"preset":"luxury"}`, http.StatusBadRequest, preset.ErrUnknownPreset.Error()},
		{"unknown field", `{"inputs":{"tax":1}}`, http.StatusBadRequest, simulator.ErrUnknownField.Error()},
		{"unknown view", `{"view":"nowhere"}`, http.StatusBadRequest, simulator.ErrUnknownView.Error()},
	}

	h := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, h, http.MethodPost, "/api/compute", tt.body)
			if rr.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, rr.Code, rr.Body.String())
			}
			if msg := decodeError(t, rr); !strings.Contains(msg, tt.wantError) {
				t.Fatalf("error %q does not contain %q", msg, tt.wantError)
			}
		})
	}
}

func TestHandleComputeBodyTooLarge(t *testing.T) {
	h := NewHandler(zap.NewNop(), config.Default(), 16, "test")

	rr := doRequest(t, h, http.MethodPost, "/api/compute", `{"preset":"recommended","view":"summary"}`)
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestHandleComputeMethodNotAllowed(t *testing.T) {
	rr := doRequest(t, newTestHandler(t), http.MethodGet, "/api/compute", "")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rr.Code)
	}
	if msg := decodeError(t, rr); msg == "" {
		t.Fatalf("expected error message")
	}
}

func TestHandlePresets(t *testing.T) {
	rr := doRequest(t, newTestHandler(t), http.MethodGet, "/api/presets", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var presets []preset.Preset
	if err := json.Unmarshal(rr.Body.Bytes(), &presets); err != nil {
		t.Fatalf("failed to decode presets: %v", err)
	}
	if len(presets) != len(preset.Builtin()) {
		t.Fatalf("expected %d presets, got %d", len(preset.Builtin()), len(presets))
	}
	if presets[0].Key != "recommended" {
		t.Errorf("first preset = %q", presets[0].Key)
	}
}

func TestHandleSliders(t *testing.T) {
	rr := doRequest(t, newTestHandler(t), http.MethodGet, "/api/sliders", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var sliders []simulator.Slider
	if err := json.Unmarshal(rr.Body.Bytes(), &sliders); err != nil {
		t.Fatalf("failed to decode sliders: %v", err)
	}
	if len(sliders) != len(simulator.Sliders()) {
		t.Fatalf("expected %d sliders, got %d", len(simulator.Sliders()), len(sliders))
	}
}

func TestHandleReference(t *testing.T) {
	h := newTestHandler(t)

	rr := doRequest(t, h, http.MethodGet, "/api/reference/glossary", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var terms []map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &terms); err != nil {
		t.Fatalf("failed to decode glossary: %v", err)
	}
	if len(terms) == 0 {
		t.Fatal("expected glossary terms")
	}

	rr = doRequest(t, h, http.MethodGet, "/api/reference/unicorns", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}

func TestHandleSchema(t *testing.T) {
	rr := doRequest(t, newTestHandler(t), http.MethodGet, "/api/schema", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var schema map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &schema); err != nil {
		t.Fatalf("failed to decode schema: %v", err)
	}
	if _, ok := schema["properties"]; !ok {
		t.Fatal("schema missing properties")
	}
}

func TestHandleVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    string
	}{
		{"explicit", "v1.2.3", "v1.2.3"},
		{"blank falls back", "  ", "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(nil, nil, 0, tt.version)
			rr := doRequest(t, h, http.MethodGet, "/api/version", "")
			if rr.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rr.Code)
			}
			var payload map[string]string
			if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
				t.Fatalf("failed to decode version: %v", err)
			}
			if payload["version"] != tt.want {
				t.Fatalf("version = %q, want %q", payload["version"], tt.want)
			}
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	rr := doRequest(t, newTestHandler(t), http.MethodGet, "/api/nothing", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}

func TestHandlerUsesConfiguredPresets(t *testing.T) {
	conf := config.Default()
	conf.Presets = []preset.Preset{
		{Key: "only", Name: "Only", HourlyRate: 40, ImplementationHours: 100, SubscriptionFee: 1000, ContingencyRate: 0},
	}
	conf.ActivePreset = "only"
	conf.Inputs.StorageFee = 0

	h := NewHandler(zap.NewNop(), conf, 0, "")
	rr := doRequest(t, h, http.MethodPost, "/api/compute", `{"preset":"only"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	state := decodeState(t, rr)
	if state.Outputs.TotalCost != 5000 {
		t.Fatalf("total = %v, want 5000", state.Outputs.TotalCost)
	}

	rr = doRequest(t, h, http.MethodPost, "/api/compute", `{"preset":"recommended"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for preset outside the configured catalog, got %d", rr.Code)
	}
}
