package record

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 14, 9, 30, 0, 0, time.UTC)

func TestApplyDefaults(t *testing.T) {
	t.Run("regular task", func(t *testing.T) {
		task := Task{Title: "x", Category: "finance"}
		task.ApplyDefaults(fixedNow)

		assert.Equal(t, StatusPending, task.Status)
		assert.Equal(t, ImportanceMedium, task.Importance)
		assert.Equal(t, TypePermanent, task.Type)
		assert.Equal(t, "2024-05-14", task.Date)
	})

	t.Run("purchase request", func(t *testing.T) {
		task := Task{Title: "x", Category: PurchaseCategory}
		task.ApplyDefaults(fixedNow)

		assert.Equal(t, StatusAwaitingApproval, task.Status)
		assert.Equal(t, ImportanceHigh, task.Importance)
		assert.Equal(t, TypeWorkflow, task.Type)
	})

	t.Run("keeps explicit values", func(t *testing.T) {
		task := Task{Category: "finance", Status: StatusDraft, Date: "2023-01-01"}
		task.ApplyDefaults(fixedNow)

		assert.Equal(t, StatusDraft, task.Status)
		assert.Equal(t, "2023-01-01", task.Date)
	})
}

func TestChecklistProgress(t *testing.T) {
	tests := []struct {
		name  string
		items []ChecklistItem
		want  int
	}{
		{"empty", nil, 0},
		{"one of two", []ChecklistItem{{Completed: true}, {}}, 50},
		{"one of three rounds", []ChecklistItem{{Completed: true}, {}, {}}, 33},
		{"two of three rounds up", []ChecklistItem{{Completed: true}, {Completed: true}, {}}, 67},
		{"all", []ChecklistItem{{Completed: true}, {Completed: true}}, 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ChecklistProgress(tc.items))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Run("checklist drives progress", func(t *testing.T) {
		task := Task{Progress: 90, Checklist: []ChecklistItem{{ID: "a", Completed: true}, {ID: "b"}}}
		task.Normalize()
		assert.Equal(t, 50, task.Progress)
	})

	t.Run("manual progress kept without checklist", func(t *testing.T) {
		task := Task{Progress: 45}
		task.Normalize()
		assert.Equal(t, 45, task.Progress)
		assert.NotNil(t, task.Checklist)
		assert.NotNil(t, task.Logs)
	})

	t.Run("manual progress clamped", func(t *testing.T) {
		task := Task{Progress: 140}
		task.Normalize()
		assert.Equal(t, 100, task.Progress)
	})

	t.Run("purchase totals recomputed", func(t *testing.T) {
		task := Task{
			Category: PurchaseCategory,
			PurchaseData: &PurchaseData{Items: []PurchaseItem{
				{ID: "1", Quantity: 2, Price: 26, Total: 999},
				{ID: "2", Quantity: 50, Price: 0, Total: 50},
			}, GrandTotal: 7},
		}
		task.Normalize()

		assert.Equal(t, 52.0, task.PurchaseData.Items[0].Total)
		assert.Equal(t, 0.0, task.PurchaseData.Items[1].Total)
		assert.Equal(t, 52.0, task.PurchaseData.GrandTotal)
	})
}

func TestClone_IsDeep(t *testing.T) {
	actual := 3.5
	orig := Task{
		ID:         "t1",
		Checklist:  []ChecklistItem{{ID: "c1"}},
		Logs:       []TaskLog{{ID: "l1"}},
		ActualTime: &actual,
		PurchaseData: &PurchaseData{
			Items: []PurchaseItem{{ID: "i1", Quantity: 1}},
			Terms: []string{"a"},
		},
	}

	c := orig.Clone()
	c.Checklist[0].Completed = true
	c.Logs[0].Action = "changed"
	*c.ActualTime = 9
	c.PurchaseData.Items[0].Quantity = 5
	c.PurchaseData.Terms[0] = "b"

	assert.False(t, orig.Checklist[0].Completed)
	assert.Empty(t, orig.Logs[0].Action)
	assert.Equal(t, 3.5, *orig.ActualTime)
	assert.Equal(t, 1.0, orig.PurchaseData.Items[0].Quantity)
	assert.Equal(t, "a", orig.PurchaseData.Terms[0])
}

func TestTask_JSONRoundTrip(t *testing.T) {
	actual := 2.0
	task := Task{
		ID:          "pr-1",
		Title:       "توريد أدوية طوارئ ربع سنوي",
		Category:    PurchaseCategory,
		SubCategory: "توريد أدوية",
		Importance:  ImportanceCritical,
		Type:        TypeWorkflow,
		Status:      StatusAwaitingApproval,
		Date:        "2024-05-14",
		Assignee:    "خالد عبد الله",
		Notes:       "عاجل",
		Checklist:   []ChecklistItem{{ID: "c1", Text: "قائمة", Completed: true}},
		Attachments: []string{"quote.pdf"},
		Progress:    20,
		ActualTime:  &actual,
		CreatedAt:   fixedNow.Format(TimestampLayout),
		PurchaseData: &PurchaseData{
			SerialNumber: "PR-2024-1002",
			Recipient:    DefaultRecipient,
			Items:        []PurchaseItem{{ID: "item-1", Name: "DIPROFOS 2 ML", Unit: "امبول", Quantity: 2, Price: 26, ItemCode: "DPR-01", Total: 52}},
			Terms:        []string{"التسليم خلال 48 ساعة"},
			GrandTotal:   52,
		},
		Logs: []TaskLog{{ID: "l1", User: "أحمد", Action: "إنشاء طلب شراء جديد", Timestamp: "2024-05-14 09:30"}},
	}

	data, err := json.Marshal(task)
	require.NoError(t, err)

	var decoded Task
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, task, decoded)
}

func TestTask_JSONTokens(t *testing.T) {
	task := Task{Status: StatusInProgress, Importance: ImportanceLow, Type: TypeDaily}
	data, err := json.Marshal(task)
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"status":"in_progress"`)
	assert.Contains(t, s, `"importance":"low"`)
	assert.Contains(t, s, `"type":"daily"`)
	assert.NotContains(t, s, "purchaseData")
}

func TestNewLog(t *testing.T) {
	entry := NewLog("", "x", fixedNow)
	assert.Equal(t, DefaultActor, entry.User)
	assert.Equal(t, "2024-05-14 09:30", entry.Timestamp)
	assert.NotEmpty(t, entry.ID)

	assert.Equal(t, "إنشاء طلب شراء جديد", CreatedAction(&Task{Category: PurchaseCategory}))
	assert.Contains(t, StatusChangedAction(StatusPending, StatusApproved), "معتمد")
}
