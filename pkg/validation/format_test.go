package validation

import (
	"strings"
	"testing"
)

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{"pretty report", "pretty", false},
		{"csv report", "csv", false},
		{"json is not a report format", "json", true},
		{"empty after config and flag", "", true},
		{"upper case flag value", "CSV", true},
		{"title case config value", "Pretty", true},
		{"padded flag value", " csv", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if tt.wantErr && err == nil {
				t.Fatalf("ValidateOutputFormat(%q) expected error", tt.format)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("ValidateOutputFormat(%q) error = %v", tt.format, err)
			}
		})
	}
}

func TestValidateOutputFormatErrorNamesChoices(t *testing.T) {
	err := ValidateOutputFormat("xml")
	if err == nil {
		t.Fatal("expected error for xml")
	}
	msg := err.Error()
	for _, want := range []string{`"xml"`, "pretty, csv"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %s", msg, want)
		}
	}
}

func TestOutputFormatsAreAccepted(t *testing.T) {
	if len(OutputFormats) != 2 {
		t.Fatalf("expected pretty and csv, got %v", OutputFormats)
	}
	for _, format := range OutputFormats {
		if err := ValidateOutputFormat(format); err != nil {
			t.Errorf("listed format %q rejected: %v", format, err)
		}
	}
}
