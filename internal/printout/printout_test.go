package printout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/amalmed/opstrack/internal/record"
)

func purchase() record.Task {
	t := record.Task{
		ID:       "pr-1",
		Title:    "توريد أدوية طوارئ ربع سنوي",
		Category: record.PurchaseCategory,
		Status:   record.StatusAwaitingApproval,
		Date:     "2024-05-14",
		Assignee: "خالد عبد الله",
		Notes:    "عاجل لتغطية عيادات الطوارئ",
		PurchaseData: &record.PurchaseData{
			SerialNumber: "PR-2024-1002",
			Recipient:    record.DefaultRecipient,
			Items: []record.PurchaseItem{
				{ID: "1", Name: "DIPROFOS 2 ML", Unit: "امبول", Quantity: 2, Price: 26, ItemCode: "DPR-01"},
				{ID: "2", Name: "NEBULIZER M", Unit: "حبة", Quantity: 1500, Price: 1.5, ItemCode: "NEB-05"},
			},
			Terms: []string{"التسليم خلال 48 ساعة", "مطابقة المواصفات الفنية"},
		},
	}
	t.Normalize()
	return t
}

func TestRender(t *testing.T) {
	task := purchase()
	out, err := Render(&task, Options{})
	require.NoError(t, err)

	for _, want := range []string{
		FacilityName,
		FacilityNameEN,
		DocumentTitle,
		"الرقم: PR-2024-1002",
		"التاريخ: 2024-05-14",
		record.DefaultRecipient,
		"DIPROFOS 2 ML",
		"DPR-01",
		"2,250",
		"2,302 " + Currency,
		"عاجل لتغطية عيادات الطوارئ",
		"1/ التسليم خلال 48 ساعة",
		"2/ مطابقة المواصفات الفنية",
		signRequester,
		signFinance,
		signManager,
		"خالد عبد الله",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, ApprovedStamp)
}

func TestRender_ApprovedStamp(t *testing.T) {
	task := purchase()
	task.Status = record.StatusApproved
	out, err := Render(&task, Options{Width: 100})
	require.NoError(t, err)
	assert.Contains(t, out, ApprovedStamp)
}

func TestRender_OmitsEmptyNotes(t *testing.T) {
	task := purchase()
	task.Notes = ""
	out, err := Render(&task, Options{})
	require.NoError(t, err)
	assert.NotContains(t, out, notesHeading)
}

func TestRender_ItemRows(t *testing.T) {
	task := purchase()
	out, err := Render(&task, Options{})
	require.NoError(t, err)

	var itemLines int
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "DIPROFOS") || strings.Contains(line, "NEBULIZER") {
			itemLines++
		}
	}
	assert.Equal(t, 2, itemLines)
}

func TestRender_NotPurchase(t *testing.T) {
	task := record.Task{Title: "x", Category: "finance"}
	_, err := Render(&task, Options{})
	assert.ErrorIs(t, err, ErrNotPurchase)
}

func TestAmount(t *testing.T) {
	assert.Equal(t, "52", Amount(52, language.Und))
	assert.Equal(t, "1,250.5", Amount(1250.5, language.English))
	assert.Equal(t, "0", Amount(0, language.English))
	assert.Equal(t, "0.33", Amount(1.0/3, language.English))
}
