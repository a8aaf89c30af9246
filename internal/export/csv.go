// Package export writes one-way projections of the task collection for other
// tools: CSV for spreadsheets and iCalendar for calendar apps.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/amalmed/opstrack/internal/record"
)

// Unassigned fills the assignee column of tasks without an owner.
const Unassigned = "unassigned"

// bom marks the stream as UTF-8 for spreadsheet applications.
const bom = "\uFEFF"

// CSVHeader is the first row of every CSV export.
var CSVHeader = []string{"title", "category", "status", "importance", "assignee", "date", "grand_total"}

// CSVRow renders one task as CSV fields.
func CSVRow(t *record.Task) []string {
	assignee := t.Assignee
	if assignee == "" {
		assignee = Unassigned
	}
	return []string{
		t.Title,
		record.CategoryLabel(t.Category),
		t.Status.Label(),
		t.Importance.Label(),
		assignee,
		t.Date,
		strconv.FormatFloat(t.GrandTotal(), 'f', -1, 64),
	}
}

// WriteCSV writes a BOM, the header row and one row per task, in order.
func WriteCSV(w io.Writer, tasks []record.Task) error {
	if _, err := io.WriteString(w, bom); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	for i := range tasks {
		if err := cw.Write(CSVRow(&tasks[i])); err != nil {
			return fmt.Errorf("failed to write csv row %s: %w", tasks[i].ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}
