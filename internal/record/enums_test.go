package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	assert.Len(t, Statuses(), 10)
	for _, s := range Statuses() {
		assert.True(t, s.Valid(), s)
		assert.NotEqual(t, string(s), s.Label(), "status %s has no label", s)
		assert.NotEmpty(t, s.Color())
	}

	assert.True(t, StatusApproved.Done())
	assert.True(t, StatusCompleted.Done())
	assert.False(t, StatusSubmitted.Done())
	assert.True(t, StatusAwaitingApproval.Open())
	assert.False(t, StatusOverdue.Open())

	_, err := ParseStatus("archived")
	assert.Error(t, err)
	st, err := ParseStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, st)
}

func TestImportanceRank(t *testing.T) {
	assert.Greater(t, ImportanceCritical.Rank(), ImportanceHigh.Rank())
	assert.Greater(t, ImportanceHigh.Rank(), ImportanceMedium.Rank())
	assert.Greater(t, ImportanceMedium.Rank(), ImportanceLow.Rank())
	assert.Equal(t, 0, Importance("urgent").Rank())
	assert.True(t, ImportanceHigh.Urgent())
	assert.False(t, ImportanceMedium.Urgent())
}

func TestParseType(t *testing.T) {
	for _, s := range []string{"daily", "monthly", "permanent", "workflow"} {
		_, err := ParseType(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseType("weekly")
	assert.Error(t, err)
}

func TestCategories(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 9)
	assert.Equal(t, PurchaseCategory, cats[0].ID)

	c, ok := LookupCategory("finance")
	require.True(t, ok)
	assert.Equal(t, "المالية والتحصيل", c.Label)
	assert.Equal(t, "unknown", CategoryLabel("unknown"))

	cats[0].Label = "mutated"
	assert.NotEqual(t, "mutated", CategoryLabel(PurchaseCategory))
}
