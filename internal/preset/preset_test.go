package preset

import (
	"errors"
	"testing"

	"github.com/iwvelando/business-case/internal/costmodel"
)

func TestBuiltinCatalog(t *testing.T) {
	catalog := BuiltinCatalog()

	wantKeys := []string{"recommended", "minimumViable", "phased", "enhancedImplementation", "marketRate", "enterpriseCircle"}
	keys := catalog.Keys()
	if len(keys) != len(wantKeys) {
		t.Fatalf("expected %d presets, got %d", len(wantKeys), len(keys))
	}
	for i, key := range wantKeys {
		if keys[i] != key {
			t.Errorf("preset %d key = %q, want %q", i, keys[i], key)
		}
	}
}

func TestLookup(t *testing.T) {
	catalog := BuiltinCatalog()

	p, err := catalog.Lookup("minimumViable")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if p.HourlyRate != 40 || p.ImplementationHours != 180 || p.ContingencyRate != 0.10 {
		t.Errorf("unexpected minimumViable values: %+v", p)
	}

	if _, err := catalog.Lookup("gold-plated"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestApplyToLeavesOtherFieldsUntouched(t *testing.T) {
	inputs := costmodel.CostInputs{
		HourlyRate:            65,
		ImplementationHours:   120,
		SubscriptionFee:       3000,
		StorageFee:            777,
		ContingencyRate:       0.25,
		ComparisonCostFixed:   99000,
		ComparisonCostPerUnit: 321,
	}
	p, _ := BuiltinCatalog().Lookup("minimumViable")

	got := p.ApplyTo(inputs)

	want := costmodel.CostInputs{
		HourlyRate:            40,
		ImplementationHours:   180,
		SubscriptionFee:       1863,
		StorageFee:            777,
		ContingencyRate:       0.10,
		ComparisonCostFixed:   99000,
		ComparisonCostPerUnit: 321,
	}
	if got != want {
		t.Fatalf("ApplyTo() = %+v, want %+v", got, want)
	}
	if !p.Matches(got) {
		t.Errorf("expected applied inputs to match preset")
	}
	if p.Matches(inputs) {
		t.Errorf("expected original inputs not to match preset")
	}
}

func TestNewCatalogRejectsBadKeys(t *testing.T) {
	tests := []struct {
		name    string
		presets []Preset
	}{
		{"empty key", []Preset{{Name: "No key"}}},
		{"duplicate key", []Preset{{Key: "a"}, {Key: "a"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewCatalog(tt.presets); err == nil {
				t.Errorf("expected error")
			}
		})
	}
}

func TestListReturnsCopy(t *testing.T) {
	catalog := BuiltinCatalog()
	list := catalog.List()
	list[0].HourlyRate = 999

	p, _ := catalog.Lookup("recommended")
	if p.HourlyRate != 50 {
		t.Fatalf("catalog mutated through List(): %v", p.HourlyRate)
	}
}
