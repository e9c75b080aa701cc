// Package reference exposes the static tables of the business case: delivery
// phases, case studies, platform comparison, timeline, architecture, user
// needs and glossary. The tables are embedded and parsed once.
package reference

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed reference.yaml
var rawTables []byte

// ErrUnknownTable is returned by Table for a name that does not exist.
var ErrUnknownTable = errors.New("unknown reference table")

// Phase is one delivery phase.
type Phase struct {
	Phase       string   `yaml:"phase" json:"phase"`
	Timeframe   string   `yaml:"timeframe" json:"timeframe"`
	Description string   `yaml:"description" json:"description"`
	Features    []string `yaml:"features" json:"features"`
	Cost        float64  `yaml:"cost" json:"cost"`
	Breakdown   []string `yaml:"breakdown,omitempty" json:"breakdown,omitempty"`
}

// CaseStudy is a digital scale example.
type CaseStudy struct {
	Key                   string `yaml:"key" json:"key"`
	Name                  string `yaml:"name" json:"name"`
	FoundedYear           int    `yaml:"foundedYear" json:"foundedYear"`
	Description           string `yaml:"description" json:"description"`
	TraditionalStaffRatio int    `yaml:"traditionalStaffRatio" json:"traditionalStaffRatio"`
	DigitalStaffRatio     int    `yaml:"digitalStaffRatio" json:"digitalStaffRatio"`
	EfficiencyMultiplier  int    `yaml:"efficiencyMultiplier" json:"efficiencyMultiplier"`
	Impact                string `yaml:"impact" json:"impact"`
}

// Platform is one row of the platform comparison and feature matrix.
type Platform struct {
	Name                string          `yaml:"name" json:"name"`
	Category            string          `yaml:"category" json:"category"`
	ThreeYearTCO        float64         `yaml:"threeYearTCO" json:"threeYearTCO"`
	ImplementationWeeks int             `yaml:"implementationWeeks" json:"implementationWeeks"`
	CostPer500k         float64         `yaml:"costPer500k" json:"costPer500k"`
	FeatureScore        int             `yaml:"featureScore" json:"featureScore"`
	TotalFeatures       int             `yaml:"totalFeatures" json:"totalFeatures"`
	Scalability         string          `yaml:"scalability" json:"scalability"`
	Features            map[string]bool `yaml:"features" json:"features"`
}

// Milestone is one period of the project timeline.
type Milestone struct {
	Period string   `yaml:"period" json:"period"`
	Name   string   `yaml:"name" json:"name"`
	Tasks  []string `yaml:"tasks" json:"tasks"`
}

// Component is one part of the system architecture.
type Component struct {
	Name        string   `yaml:"name" json:"name"`
	Role        string   `yaml:"role" json:"role"`
	Description string   `yaml:"description" json:"description"`
	Benefits    []string `yaml:"benefits" json:"benefits"`
}

// UserNeed lists what one user group needs.
type UserNeed struct {
	UserType string   `yaml:"userType" json:"userType"`
	Needs    []string `yaml:"needs" json:"needs"`
	Quote    string   `yaml:"quote" json:"quote"`
}

// Term is one glossary entry.
type Term struct {
	Term       string `yaml:"term" json:"term"`
	Definition string `yaml:"definition" json:"definition"`
}

// Tables holds every reference table.
type Tables struct {
	Phases       []Phase     `yaml:"phases" json:"phases"`
	CaseStudies  []CaseStudy `yaml:"caseStudies" json:"caseStudies"`
	Platforms    []Platform  `yaml:"platforms" json:"platforms"`
	Timeline     []Milestone `yaml:"timeline" json:"timeline"`
	Architecture []Component `yaml:"architecture" json:"architecture"`
	UserNeeds    []UserNeed  `yaml:"userNeeds" json:"userNeeds"`
	Glossary     []Term      `yaml:"glossary" json:"glossary"`
}

var (
	loadOnce sync.Once
	loaded   Tables
	loadErr  error
)

// Parse decodes reference tables from YAML.
func Parse(data []byte) (Tables, error) {
	var tables Tables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return Tables{}, fmt.Errorf("failed to parse reference tables: %w", err)
	}
	return tables, nil
}

// Load returns the embedded tables, parsing them on first use.
func Load() (Tables, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(rawTables)
	})
	return loaded, loadErr
}

// Names lists the table names accepted by Table.
func Names() []string {
	return []string{"phases", "caseStudies", "platforms", "timeline", "architecture", "userNeeds", "glossary"}
}

// Table returns one embedded table by name.
func Table(name string) (interface{}, error) {
	tables, err := Load()
	if err != nil {
		return nil, err
	}
	switch name {
	case "phases":
		return append([]Phase(nil), tables.Phases...), nil
	case "caseStudies":
		return append([]CaseStudy(nil), tables.CaseStudies...), nil
	case "platforms":
		return append([]Platform(nil), tables.Platforms...), nil
	case "timeline":
		return append([]Milestone(nil), tables.Timeline...), nil
	case "architecture":
		return append([]Component(nil), tables.Architecture...), nil
	case "userNeeds":
		return append([]UserNeed(nil), tables.UserNeeds...), nil
	case "glossary":
		return append([]Term(nil), tables.Glossary...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
}
