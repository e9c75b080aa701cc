// Package preset holds the named input scenarios of the business case.
package preset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/business-case/internal/costmodel"
)

// ErrUnknownPreset is returned when a preset key is not in the catalog.
var ErrUnknownPreset = errors.New("unknown preset")

// Preset is an immutable bundle of input overrides.
type Preset struct {
	Key                 string  `json:"key" yaml:"key"`
	Name                string  `json:"name" yaml:"name"`
	Description         string  `json:"description" yaml:"description"`
	HourlyRate          float64 `json:"hourlyRate" yaml:"hourlyRate"`
	ImplementationHours float64 `json:"implementationHours" yaml:"implementationHours"`
	SubscriptionFee     float64 `json:"subscriptionFee" yaml:"subscriptionFee"`
	ContingencyRate     float64 `json:"contingencyRate" yaml:"contingencyRate"`
}

// ApplyTo returns inputs with the four preset fields replaced. Storage and
// comparison costs are left as they were.
func (p Preset) ApplyTo(inputs costmodel.CostInputs) costmodel.CostInputs {
	inputs.HourlyRate = p.HourlyRate
	inputs.ImplementationHours = p.ImplementationHours
	inputs.SubscriptionFee = p.SubscriptionFee
	inputs.ContingencyRate = p.ContingencyRate
	return inputs
}

// Matches reports whether inputs currently carry exactly this preset's values.
func (p Preset) Matches(inputs costmodel.CostInputs) bool {
	return inputs.HourlyRate == p.HourlyRate &&
		inputs.ImplementationHours == p.ImplementationHours &&
		inputs.SubscriptionFee == p.SubscriptionFee &&
		inputs.ContingencyRate == p.ContingencyRate
}

// Catalog is an ordered, read-only set of presets.
type Catalog struct {
	presets []Preset
	index   map[string]int
}

// NewCatalog builds a catalog, rejecting empty or duplicate keys.
func NewCatalog(presets []Preset) (*Catalog, error) {
	c := &Catalog{
		presets: make([]Preset, 0, len(presets)),
		index:   make(map[string]int, len(presets)),
	}
	for _, p := range presets {
		key := strings.TrimSpace(p.Key)
		if key == "" {
			return nil, fmt.Errorf("preset %q has no key", p.Name)
		}
		if _, dup := c.index[key]; dup {
			return nil, fmt.Errorf("duplicate preset key %q", key)
		}
		p.Key = key
		c.index[key] = len(c.presets)
		c.presets = append(c.presets, p)
	}
	return c, nil
}

// Lookup returns the preset with the given key.
func (c *Catalog) Lookup(key string) (Preset, error) {
	i, ok := c.index[key]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, key)
	}
	return c.presets[i], nil
}

// List returns the presets in catalog order.
func (c *Catalog) List() []Preset {
	return append([]Preset(nil), c.presets...)
}

// Keys returns the preset keys in catalog order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.presets))
	for _, p := range c.presets {
		keys = append(keys, p.Key)
	}
	return keys
}

// Len returns the number of presets.
func (c *Catalog) Len() int {
	return len(c.presets)
}

// Builtin returns the standard scenarios.
func Builtin() []Preset {
	return []Preset{
		{
			Key:                 "recommended",
			Name:                "Recommended Approach",
			Description:         "The optimal balance of quality and cost-effectiveness based on SFIA framework analysis",
			HourlyRate:          50,
			ImplementationHours: 215,
			SubscriptionFee:     1863,
			ContingencyRate:     0.15,
		},
		{
			Key:                 "minimumViable",
			Name:                "Minimum Viable Solution",
			Description:         "A streamlined approach focused on core features with reduced scope and contingency",
			HourlyRate:          40,
			ImplementationHours: 180,
			SubscriptionFee:     1863,
			ContingencyRate:     0.10,
		},
		{
			Key:                 "phased",
			Name:                "Phased Implementation",
			Description:         "Reduced initial investment focused on core MVP features",
			HourlyRate:          55,
			ImplementationHours: 80,
			SubscriptionFee:     2800,
			ContingencyRate:     0.15,
		},
		{
			Key:                 "enhancedImplementation",
			Name:                "Enhanced Implementation",
			Description:         "An extended implementation with additional features and higher quality assurance",
			HourlyRate:          60,
			ImplementationHours: 250,
			SubscriptionFee:     1863,
			ContingencyRate:     0.20,
		},
		{
			Key:                 "marketRate",
			Name:                "Standard Market Rate",
			Description:         "Implementation at standard commercial market rates without special considerations",
			HourlyRate:          70,
			ImplementationHours: 215,
			SubscriptionFee:     1863,
			ContingencyRate:     0.15,
		},
		{
			Key:                 "enterpriseCircle",
			Name:                "Enterprise Circle.so Plan",
			Description:         "Using Circle.so's standard enterprise pricing without non-profit discount",
			HourlyRate:          50,
			ImplementationHours: 215,
			SubscriptionFee:     4680,
			ContingencyRate:     0.15,
		},
	}
}

// BuiltinCatalog returns a catalog of the standard scenarios.
func BuiltinCatalog() *Catalog {
	c, err := NewCatalog(Builtin())
	if err != nil {
		panic(fmt.Sprintf("invalid builtin presets: %v", err))
	}
	return c
}
