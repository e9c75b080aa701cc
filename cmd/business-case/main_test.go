package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/business-case/internal/config"
	"github.com/iwvelando/business-case/internal/preset"
	"github.com/iwvelando/business-case/internal/simulator"
	"github.com/iwvelando/business-case/pkg/constants"
	"go.uber.org/zap"
)

const exampleConfig = "../../" + constants.ExampleConfigFile

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	var err error
	stdout := captureStdout(t, func() {
		err = cmd.Execute()
	})
	return stdout + out.String(), err
}

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name     string
		config   config.LoggingConfig
		override string
		wantErr  bool
	}{
		{"defaults", config.LoggingConfig{}, "", false},
		{"console debug", config.LoggingConfig{Level: "debug", Format: "console"}, "", false},
		{"override wins", config.LoggingConfig{Level: "bogus"}, "warn", false},
		{"warning alias", config.LoggingConfig{Level: "warning"}, "", false},
		{"invalid level", config.LoggingConfig{Level: "verbose"}, "", true},
		{"invalid format", config.LoggingConfig{Format: "xml"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.config, tt.override)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("initializeLogger() error = %v", err)
			}
			if logger == nil {
				t.Fatal("expected logger")
			}
		})
	}
}

func TestInitializeLoggerOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "business-case.log")
	logger, err := initializeLogger(config.LoggingConfig{Level: "info", OutputFile: path}, "")
	if err != nil {
		t.Fatalf("initializeLogger() error = %v", err)
	}
	logger.Info("hello", zap.String("op", "test"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("log file missing entry: %s", data)
	}
}

func TestParseOverrides(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []override
		wantErr error
	}{
		{
			name:  "ordered pairs",
			input: []string{"storageFee=0", " hourlyRate = 60 "},
			want: []override{
				{field: simulator.FieldStorageFee, value: 0},
				{field: simulator.FieldHourlyRate, value: 60},
			},
		},
		{name: "empty", input: nil, want: []override{}},
		{name: "unknown field", input: []string{"tax=1"}, wantErr: simulator.ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseOverrides(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseOverrides() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d overrides, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("override %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}

	for _, bad := range []string{"hourlyRate", "hourlyRate=abc", "hourlyRate=NaN", "storageFee=+Inf", "contingencyRate=-inf"} {
		if _, err := parseOverrides([]string{bad}); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestNewSimulatorAppliesPresetThenOverrides(t *testing.T) {
	conf := config.Default()
	overrides := []override{
		{field: simulator.FieldStorageFee, value: 0},
		{field: simulator.FieldHourlyRate, value: 500},
	}

	sim, err := newSimulator(zap.NewNop(), conf, "marketRate", overrides)
	if err != nil {
		t.Fatalf("newSimulator() error = %v", err)
	}
	inputs := sim.Inputs()
	if inputs.HourlyRate != constants.MaxHourlyRate {
		t.Errorf("hourly rate = %v, want clamped %v", inputs.HourlyRate, constants.MaxHourlyRate)
	}
	if inputs.StorageFee != 0 {
		t.Errorf("storage fee = %v, want 0", inputs.StorageFee)
	}
	if sim.ActivePreset() != "marketRate" {
		t.Errorf("active preset = %q", sim.ActivePreset())
	}

	if _, err := newSimulator(zap.NewNop(), conf, "luxury", nil); !errors.Is(err, preset.ErrUnknownPreset) {
		t.Fatalf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestLoadConfigurationFallsBackForDefaultPath(t *testing.T) {
	dir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	defer func() {
		_ = os.Chdir(oldWD)
	}()

	conf, err := loadConfiguration(constants.DefaultConfigFile)
	if err != nil {
		t.Fatalf("loadConfiguration() error = %v", err)
	}
	if conf.Inputs.HourlyRate != constants.DefaultHourlyRate {
		t.Fatalf("expected default inputs, got %+v", conf.Inputs)
	}

	if _, err := loadConfiguration(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for explicit missing path")
	}
}

func TestReportCommandCSV(t *testing.T) {
	out, err := executeCommand(t, "report",
		"--config", exampleConfig,
		"--log-level", "error",
		"--output-format", "csv",
		"--set", "storageFee=0",
	)
	if err != nil {
		t.Fatalf("report error = %v", err)
	}
	if !strings.HasPrefix(out, `"table","label","population","metric","value"`) {
		t.Fatalf("unexpected csv header: %q", out)
	}
	// 0.15 * (10750 + 1863) = 1891.95
	if !strings.Contains(out, "14505.0000") {
		t.Fatalf("csv missing total 14505: %s", out)
	}
}

func TestRootCommandRunsReport(t *testing.T) {
	out, err := executeCommand(t,
		"--config", exampleConfig,
		"--log-level", "error",
		"--preset", "minimumViable",
	)
	if err != nil {
		t.Fatalf("root error = %v", err)
	}
	if !strings.Contains(out, "preset: minimumViable") {
		t.Fatalf("pretty output missing preset: %s", out)
	}
}

func TestReportCommandErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad output format", []string{"report", "--config", exampleConfig, "--output-format", "xml"}},
		{"unknown preset", []string{"report", "--config", exampleConfig, "--log-level", "error", "--preset", "luxury"}},
		{"bad override", []string{"report", "--config", exampleConfig, "--set", "nope"}},
		{"non-finite override", []string{"report", "--config", exampleConfig, "--set", "hourlyRate=NaN"}},
		{"missing config", []string{"report", "--config", "does-not-exist.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := executeCommand(t, tt.args...); err == nil {
				t.Fatalf("expected error for %v", tt.args)
			}
		})
	}
}

func TestPresetsCommand(t *testing.T) {
	out, err := executeCommand(t, "presets", "--config", exampleConfig)
	if err != nil {
		t.Fatalf("presets error = %v", err)
	}
	for _, p := range preset.Builtin() {
		if !strings.Contains(out, p.Key) {
			t.Errorf("presets output missing %q", p.Key)
		}
	}
	if !strings.Contains(out, "recommended *") {
		t.Errorf("active preset not marked: %s", out)
	}
}

func TestSchemaCommand(t *testing.T) {
	out, err := executeCommand(t, "schema")
	if err != nil {
		t.Fatalf("schema error = %v", err)
	}

	var schema map[string]interface{}
	if err := json.Unmarshal([]byte(out), &schema); err != nil {
		t.Fatalf("schema output is not json: %v", err)
	}
	if _, ok := schema["properties"]; !ok {
		t.Fatal("schema missing properties")
	}
}
