package record

import (
	"fmt"
	"strings"
	"time"
)

// ValidationError reports a record that cannot be saved. It is surfaced to the
// caller and never silently corrected.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the fields that must hold before a task is saved.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if strings.TrimSpace(t.Category) == "" {
		return &ValidationError{Field: "category", Message: "is required"}
	}
	if _, ok := LookupCategory(t.Category); !ok {
		return &ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", t.Category)}
	}
	if t.Status != "" && !t.Status.Valid() {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", t.Status)}
	}
	if t.Importance != "" && !t.Importance.Valid() {
		return &ValidationError{Field: "importance", Message: fmt.Sprintf("unknown importance %q", t.Importance)}
	}
	if t.Type != "" && !t.Type.Valid() {
		return &ValidationError{Field: "type", Message: fmt.Sprintf("unknown task type %q", t.Type)}
	}
	if t.Date != "" {
		if _, err := time.Parse(DateLayout, t.Date); err != nil {
			return &ValidationError{Field: "date", Message: fmt.Sprintf("%q is not a YYYY-MM-DD date", t.Date)}
		}
	}
	if t.PurchaseData != nil {
		if !t.IsPurchase() {
			return &ValidationError{Field: "purchaseData", Message: "only purchase requests carry purchase data"}
		}
		for _, it := range t.PurchaseData.Items {
			if it.Quantity < 0 || it.Price < 0 {
				return &ValidationError{Field: "items", Message: fmt.Sprintf("item %s has a negative quantity or price", it.ID)}
			}
		}
	}
	return nil
}
