package simulator

import (
	"errors"
	"fmt"
)

// ErrUnknownView is returned when selecting a view that does not exist.
var ErrUnknownView = errors.New("unknown view")

// View is the display tab currently selected. It has no effect on the
// computed figures.
type View string

const (
	ViewSummary            View = "summary"
	ViewUserNeeds          View = "user-needs"
	ViewArchitecture       View = "architecture"
	ViewImplementation     View = "implementation"
	ViewCost               View = "cost"
	ViewScale              View = "scale"
	ViewPlatformComparison View = "platform-comparison"
	ViewFeatureMatrix      View = "feature-matrix"
	ViewRatingBreakdown    View = "rating-breakdown"
	ViewGlossary           View = "glossary"
)

var views = []View{
	ViewSummary,
	ViewUserNeeds,
	ViewArchitecture,
	ViewImplementation,
	ViewCost,
	ViewScale,
	ViewPlatformComparison,
	ViewFeatureMatrix,
	ViewRatingBreakdown,
	ViewGlossary,
}

// Views returns every view in tab order.
func Views() []View {
	return append([]View(nil), views...)
}

// ParseView validates a view name.
func ParseView(name string) (View, error) {
	for _, v := range views {
		if string(v) == name {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, name)
}
