package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/amalmed/opstrack/internal/record"
)

// taskFields are the editable task attributes shared by add, edit and purchase new.
type taskFields struct {
	title       string
	category    string
	subCategory string
	importance  string
	taskType    string
	status      string
	date        string
	assignee    string
	notes       string
	department  string
	branch      string
	progress    int
	actualTime  float64
	attachments []string
}

func (f *taskFields) register(fs *pflag.FlagSet, withCategory bool) {
	fs.StringVarP(&f.title, "title", "t", "", "Task title")
	if withCategory {
		fs.StringVarP(&f.category, "category", "c", "", "Category id (see 'opstrack list --categories')")
	}
	fs.StringVar(&f.subCategory, "sub", "", "Sub-category")
	fs.StringVarP(&f.importance, "importance", "i", "", "critical, high, medium or low")
	fs.StringVar(&f.taskType, "type", "", "daily, monthly, permanent or workflow")
	fs.StringVarP(&f.status, "status", "s", "", "Status token, e.g. pending or in_progress")
	fs.StringVarP(&f.date, "date", "d", "", "Date as YYYY-MM-DD (default today)")
	fs.StringVarP(&f.assignee, "assignee", "a", "", "Owner name")
	fs.StringVarP(&f.notes, "notes", "n", "", "Free-text notes")
	fs.StringVar(&f.department, "department", "", "Department")
	fs.StringVar(&f.branch, "branch", "", "Branch")
	fs.IntVar(&f.progress, "progress", 0, "Manual progress 0-100 (ignored when the task has a checklist)")
	fs.Float64Var(&f.actualTime, "actual-time", 0, "Hours spent")
	fs.StringArrayVar(&f.attachments, "attach", nil, "Attachment name (repeatable)")
}

var fieldFlags = []string{"title", "category", "sub", "importance", "type", "status", "date", "assignee", "notes", "department", "branch", "progress", "actual-time", "attach"}

// changed reports whether any field flag was set.
func (f *taskFields) changed(fs *pflag.FlagSet) bool {
	for _, name := range fieldFlags {
		if fs.Lookup(name) != nil && fs.Changed(name) {
			return true
		}
	}
	return false
}

// apply copies every flag the user set onto t.
func (f *taskFields) apply(fs *pflag.FlagSet, t *record.Task) error {
	set := fs.Changed
	if set("title") {
		t.Title = f.title
	}
	if set("category") {
		t.Category = f.category
	}
	if set("sub") {
		t.SubCategory = f.subCategory
	}
	if set("importance") {
		imp, err := record.ParseImportance(f.importance)
		if err != nil {
			return err
		}
		t.Importance = imp
	}
	if set("type") {
		typ, err := record.ParseType(f.taskType)
		if err != nil {
			return err
		}
		t.Type = typ
	}
	if set("status") {
		st, err := record.ParseStatus(f.status)
		if err != nil {
			return err
		}
		t.Status = st
	}
	if set("date") {
		t.Date = f.date
	}
	if set("assignee") {
		t.Assignee = f.assignee
	}
	if set("notes") {
		t.Notes = f.notes
	}
	if set("department") {
		t.Department = f.department
	}
	if set("branch") {
		t.Branch = f.branch
	}
	if set("progress") {
		if f.progress < 0 || f.progress > 100 {
			return fmt.Errorf("progress must be between 0 and 100")
		}
		t.Progress = f.progress
	}
	if set("actual-time") {
		v := f.actualTime
		t.ActualTime = &v
	}
	if set("attach") {
		t.Attachments = append([]string(nil), f.attachments...)
	}
	return nil
}

// parseItemSpec reads "name|unit|quantity|price|code"; trailing parts may be omitted.
func parseItemSpec(spec string) (map[record.ItemField]string, error) {
	parts := strings.Split(spec, "|")
	if len(parts) > 5 {
		return nil, fmt.Errorf("item %q: want name|unit|quantity|price|code", spec)
	}
	order := []record.ItemField{record.FieldName, record.FieldUnit, record.FieldQuantity, record.FieldPrice, record.FieldItemCode}
	out := make(map[record.ItemField]string, len(parts))
	for i, p := range parts {
		out[order[i]] = strings.TrimSpace(p)
	}
	return out, nil
}

// itemFieldOrder is the order fields are applied in, so errors are reported predictably.
var itemFieldOrder = []record.ItemField{record.FieldName, record.FieldUnit, record.FieldItemCode, record.FieldQuantity, record.FieldPrice}

// resolveRef accepts an id or a 1-based position and returns the id.
func resolveRef(ref string, ids []string, what string) (string, error) {
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(ids) {
		return ids[n-1], nil
	}
	return "", fmt.Errorf("%s %w: %s", what, record.ErrItemNotFound, ref)
}

func checklistIDs(t *record.Task) []string {
	out := make([]string, len(t.Checklist))
	for i, c := range t.Checklist {
		out[i] = c.ID
	}
	return out
}

func purchaseItemIDs(t *record.Task) []string {
	if t.PurchaseData == nil {
		return nil
	}
	out := make([]string, len(t.PurchaseData.Items))
	for i, it := range t.PurchaseData.Items {
		out[i] = it.ID
	}
	return out
}

// parseIndex converts a 1-based position into a 0-based index.
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid position %q: want 1, 2, 3...", s)
	}
	return n - 1, nil
}
