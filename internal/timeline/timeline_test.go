package timeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibetank/vibetank/internal/types"
)

func TestActiveMonths(t *testing.T) {
	tests := []struct {
		name    string
		project types.Project
		want    []int
	}{
		{name: "single month", project: types.Project{StartMonth: 4, EndMonth: 4}, want: []int{4}},
		{name: "range", project: types.Project{StartMonth: 1, EndMonth: 3}, want: []int{1, 2, 3}},
		{name: "whole year", project: types.Project{StartMonth: 0, EndMonth: 11}, want: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
		{name: "intermittent wins", project: types.Project{StartMonth: 0, EndMonth: 11, IntermittentMonths: []int{3, 11}}, want: []int{3, 11}},
		{name: "backwards range", project: types.Project{StartMonth: 5, EndMonth: 2}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ActiveMonths(tt.project))
		})
	}
}

func TestIsActive(t *testing.T) {
	p := types.Project{IntermittentMonths: []int{3, 11}}
	assert.True(t, IsActive(p, 3))
	assert.False(t, IsActive(p, 4))
	assert.True(t, IsActive(types.Project{StartMonth: 2, EndMonth: 6}, 6))
}

func TestBars_Contiguous(t *testing.T) {
	bars := Bars(types.Project{StartMonth: 3, EndMonth: 5})
	require.Len(t, bars, 1)

	assert.Equal(t, BarRange, bars[0].Kind)
	assert.InDelta(t, 25.0, bars[0].LeftPercent, 1e-9)
	assert.InDelta(t, 25.0, bars[0].WidthPercent, 1e-9)
	assert.True(t, bars[0].Lead)
}

func TestBars_FullYear(t *testing.T) {
	bars := Bars(types.Project{StartMonth: 0, EndMonth: 11})
	require.Len(t, bars, 1)
	assert.InDelta(t, 0.0, bars[0].LeftPercent, 1e-9)
	assert.InDelta(t, 100.0, bars[0].WidthPercent, 1e-9)
}

func TestBars_Intermittent(t *testing.T) {
	bars := Bars(types.Project{IntermittentMonths: []int{3, 11}})
	require.Len(t, bars, 3)

	assert.Equal(t, BarMarker, bars[0].Kind)
	assert.True(t, bars[0].Lead)
	assert.InDelta(t, 25.0, bars[0].LeftPercent, 1e-9)
	assert.InDelta(t, 100.0/6-0.5, bars[0].WidthPercent, 1e-9)

	assert.Equal(t, BarMarker, bars[1].Kind)
	assert.False(t, bars[1].Lead)
	assert.Equal(t, 11, bars[1].Month)

	connector := bars[2]
	assert.Equal(t, BarConnector, connector.Kind)
	assert.InDelta(t, 25.0, connector.LeftPercent, 1e-9)
	assert.InDelta(t, 75.0, connector.WidthPercent, 1e-9)
}

func TestMonths(t *testing.T) {
	assert.Equal(t, "JAN", Months[0])
	assert.Equal(t, "DEC", Months[11])
}
