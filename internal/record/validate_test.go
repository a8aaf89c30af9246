package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		task  Task
		field string
	}{
		{"missing title", Task{Category: "finance"}, "title"},
		{"blank title", Task{Title: "  ", Category: "finance"}, "title"},
		{"missing category", Task{Title: "x"}, "category"},
		{"unknown category", Task{Title: "x", Category: "garden"}, "category"},
		{"bad status", Task{Title: "x", Category: "finance", Status: "archived"}, "status"},
		{"bad importance", Task{Title: "x", Category: "finance", Importance: "urgent"}, "importance"},
		{"bad type", Task{Title: "x", Category: "finance", Type: "weekly"}, "type"},
		{"bad date", Task{Title: "x", Category: "finance", Date: "14/05/2024"}, "date"},
		{"purchase data on non-purchase", Task{Title: "x", Category: "finance", PurchaseData: &PurchaseData{}}, "purchaseData"},
		{"negative price", Task{Title: "x", Category: PurchaseCategory, PurchaseData: &PurchaseData{
			Items: []PurchaseItem{{ID: "1", Price: -2}},
		}}, "items"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.task.Validate()
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestValidate_OK(t *testing.T) {
	task := Task{Title: "x", Category: "finance"}
	assert.NoError(t, task.Validate())

	purchase, err := NewPurchase(fixedNow)
	require.NoError(t, err)
	purchase.Title = "توريد"
	assert.NoError(t, purchase.Validate())
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Field: "title", Message: "is required"}
	assert.Equal(t, "title: is required", err.Error())
}
