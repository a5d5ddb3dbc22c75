// Package timeline computes the annual month grid the site draws for each project.
package timeline

import "github.com/vibetank/vibetank/internal/types"

// Months are the column labels of the grid.
var Months = [12]string{
	"JAN", "FEB", "MAR", "APR", "MAY", "JUN",
	"JUL", "AUG", "SEP", "OCT", "NOV", "DEC",
}

// markerMonths is how many columns an intermittent marker spans so its
// label fits.
const markerMonths = 2

// markerGapPercent separates adjacent markers.
const markerGapPercent = 0.5

// BarKind distinguishes the shapes drawn on a project row.
type BarKind string

const (
	BarRange     BarKind = "range"
	BarMarker    BarKind = "marker"
	BarConnector BarKind = "connector"
)

// Bar is one positioned shape in percent of the grid width.
type Bar struct {
	Kind         BarKind
	Month        int // first month covered
	LeftPercent  float64
	WidthPercent float64
	// Lead is set on the shape that carries the project name.
	Lead bool
}

// ActiveMonths lists the months a project is active in: the intermittent
// months when set, otherwise the inclusive start..end range.
func ActiveMonths(p types.Project) []int {
	if len(p.IntermittentMonths) > 0 {
		return append([]int(nil), p.IntermittentMonths...)
	}
	if p.StartMonth > p.EndMonth {
		return nil
	}
	months := make([]int, 0, p.EndMonth-p.StartMonth+1)
	for m := p.StartMonth; m <= p.EndMonth; m++ {
		months = append(months, m)
	}
	return months
}

// IsActive reports whether the project is active in month.
func IsActive(p types.Project, month int) bool {
	for _, m := range ActiveMonths(p) {
		if m == month {
			return true
		}
	}
	return false
}

// Bars returns the shapes for a project row. Contiguous projects get one
// range bar. Intermittent projects get a marker per month, then a
// connector from the first listed month through the last.
func Bars(p types.Project) []Bar {
	if len(p.IntermittentMonths) == 0 {
		return []Bar{{
			Kind:         BarRange,
			Month:        p.StartMonth,
			LeftPercent:  percent(p.StartMonth),
			WidthPercent: percent(p.EndMonth - p.StartMonth + 1),
			Lead:         true,
		}}
	}

	months := p.IntermittentMonths
	bars := make([]Bar, 0, len(months)+1)
	for i, m := range months {
		bars = append(bars, Bar{
			Kind:         BarMarker,
			Month:        m,
			LeftPercent:  percent(m),
			WidthPercent: percent(markerMonths) - markerGapPercent,
			Lead:         i == 0,
		})
	}

	first, last := months[0], months[len(months)-1]
	bars = append(bars, Bar{
		Kind:         BarConnector,
		Month:        first,
		LeftPercent:  percent(first),
		WidthPercent: percent(last - first + 1),
	})
	return bars
}

func percent(months int) float64 {
	return float64(months) / 12 * 100
}
