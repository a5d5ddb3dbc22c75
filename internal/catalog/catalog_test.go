package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_Seed(t *testing.T) {
	doc := Document()

	require.NotNil(t, doc.ProfileInfo)
	assert.Equal(t, "TANK", doc.ProfileInfo.Name)
	assert.Len(t, doc.Projects, 4)
	assert.Len(t, doc.Goals2026, 4)
}

func TestProjects_UniqueIDsAndValid(t *testing.T) {
	seen := map[int]bool{}
	for _, p := range Projects() {
		assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
		assert.NoError(t, p.Validate(), "project %d", p.ID)
	}
}

func TestGoals_Valid(t *testing.T) {
	for _, g := range Goals() {
		assert.NoError(t, g.Validate(), "goal %d", g.ID)
	}
}

func TestProjectByID(t *testing.T) {
	p, ok := ProjectByID(1)
	require.True(t, ok)
	assert.Equal(t, "/logos/kt-skylife.png", p.IconImage)
	assert.NotEmpty(t, p.Script)

	_, ok = ProjectByID(99)
	assert.False(t, ok)
}

func TestAccessorsReturnCopies(t *testing.T) {
	projects := Projects()
	projects[0].Name = "mutated"
	projects[0].Tags[0] = "mutated"

	goals := Goals()
	goals[0].Features[0] = "mutated"

	fresh := Projects()
	assert.Equal(t, "KT Skylife", fresh[0].Name)
	assert.Equal(t, "Vue2 Migration", fresh[0].Tags[0])
	assert.Equal(t, "AI Diagnostics", Goals()[0].Features[0])

	p, _ := ProjectByID(2)
	p.Outputs[0].URL = "https://example.invalid"
	again, _ := ProjectByID(2)
	assert.Equal(t, "https://admin.reko-hr.com", again.Outputs[0].URL)
}
