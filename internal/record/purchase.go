package record

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/amalmed/opstrack/internal/ids"
)

// DefaultRecipient is addressed on new purchase requests.
const DefaultRecipient = "السيد- مدير عام مجمع الأمل الحديث الطبي"

// DefaultTerms are the clauses attached to new purchase requests.
var DefaultTerms = []string{"التسليم بمقر المجمع", "مطابقة المواصفات المعتمدة"}

// ErrLastItem is returned when removing the only line item of a purchase request.
var ErrLastItem = errors.New("a purchase request keeps at least one item")

// PurchaseItem is one line of a purchase request. Total is always Quantity * Price.
type PurchaseItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
	ItemCode string  `json:"itemCode"`
	Total    float64 `json:"total"`
}

// PurchaseData is the procurement record carried by purchase-category tasks.
// GrandTotal is always the sum of the item totals.
type PurchaseData struct {
	SerialNumber string         `json:"serialNumber"`
	Recipient    string         `json:"recipient"`
	Items        []PurchaseItem `json:"items"`
	Terms        []string       `json:"terms"`
	GrandTotal   float64        `json:"grandTotal"`
}

// Clone returns a deep copy.
func (p *PurchaseData) Clone() PurchaseData {
	c := *p
	c.Items = slices.Clone(p.Items)
	c.Terms = slices.Clone(p.Terms)
	return c
}

// Recalculate recomputes every item total and the grand total.
func (p *PurchaseData) Recalculate() {
	if p.Items == nil {
		p.Items = []PurchaseItem{}
	}
	if p.Terms == nil {
		p.Terms = []string{}
	}
	var sum float64
	for i := range p.Items {
		p.Items[i].Total = p.Items[i].Quantity * p.Items[i].Price
		sum += p.Items[i].Total
	}
	p.GrandTotal = sum
}

// ApplyPurchaseProgress sets the progress a saved purchase request reports: 100
// once approved, 20 while it is still in the approval cycle. A checklist, when
// present, drives progress instead.
func (t *Task) ApplyPurchaseProgress() {
	if !t.IsPurchase() || len(t.Checklist) > 0 {
		return
	}
	if t.Status == StatusApproved {
		t.Progress = 100
	} else {
		t.Progress = 20
	}
}

// NewPurchase returns a purchase request template: a fresh serial number, the
// default recipient and terms, and one empty line item.
func NewPurchase(now time.Time) (Task, error) {
	serial, err := ids.SerialNumber(now.Year())
	if err != nil {
		return Task{}, fmt.Errorf("failed to generate serial number: %w", err)
	}
	t := Task{
		Category:    PurchaseCategory,
		SubCategory: "توريد عام",
		PurchaseData: &PurchaseData{
			SerialNumber: serial,
			Recipient:    DefaultRecipient,
			Items:        []PurchaseItem{{ID: ids.ItemID()}},
			Terms:        slices.Clone(DefaultTerms),
		},
	}
	t.ApplyDefaults(now)
	t.Normalize()
	return t, nil
}

// ItemField names an editable column of a purchase item.
type ItemField string

const (
	FieldName     ItemField = "name"
	FieldUnit     ItemField = "unit"
	FieldItemCode ItemField = "itemCode"
	FieldQuantity ItemField = "quantity"
	FieldPrice    ItemField = "price"
)

// ParseItemField converts a column name into an ItemField.
func ParseItemField(s string) (ItemField, error) {
	switch f := ItemField(s); f {
	case FieldName, FieldUnit, FieldItemCode, FieldQuantity, FieldPrice:
		return f, nil
	}
	return "", &ValidationError{Field: "field", Message: fmt.Sprintf("unknown item field %q", s)}
}

func (t *Task) purchase() (*PurchaseData, error) {
	if t.PurchaseData == nil {
		return nil, &ValidationError{Field: "purchaseData", Message: "task is not a purchase request"}
	}
	return t.PurchaseData, nil
}

// AddPurchaseItem appends an empty line item.
func (t *Task) AddPurchaseItem() (PurchaseItem, error) {
	pd, err := t.purchase()
	if err != nil {
		return PurchaseItem{}, err
	}
	item := PurchaseItem{ID: ids.ItemID()}
	pd.Items = append(pd.Items, item)
	pd.Recalculate()
	return item, nil
}

// RemovePurchaseItem deletes a line item and recomputes the grand total.
func (t *Task) RemovePurchaseItem(itemID string) error {
	pd, err := t.purchase()
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(pd.Items, func(it PurchaseItem) bool { return it.ID == itemID })
	if idx < 0 {
		return fmt.Errorf("purchase %w: %s", ErrItemNotFound, itemID)
	}
	if len(pd.Items) == 1 {
		return ErrLastItem
	}
	pd.Items = slices.Delete(pd.Items, idx, idx+1)
	pd.Recalculate()
	return nil
}

// SetPurchaseItemField sets one column of a line item, then recomputes the item
// total and the grand total. Quantity and price must be non-negative numbers.
func (t *Task) SetPurchaseItemField(itemID string, field ItemField, value string) error {
	pd, err := t.purchase()
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(pd.Items, func(it PurchaseItem) bool { return it.ID == itemID })
	if idx < 0 {
		return fmt.Errorf("purchase %w: %s", ErrItemNotFound, itemID)
	}
	item := &pd.Items[idx]

	switch field {
	case FieldName:
		item.Name = value
	case FieldUnit:
		item.Unit = value
	case FieldItemCode:
		item.ItemCode = value
	case FieldQuantity, FieldPrice:
		n, err := parseAmount(string(field), value)
		if err != nil {
			return err
		}
		if field == FieldQuantity {
			item.Quantity = n
		} else {
			item.Price = n
		}
	default:
		return &ValidationError{Field: "field", Message: fmt.Sprintf("unknown item field %q", field)}
	}

	pd.Recalculate()
	return nil
}

func parseAmount(field, value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &ValidationError{Field: field, Message: fmt.Sprintf("%q is not a number", value)}
	}
	if n < 0 {
		return 0, &ValidationError{Field: field, Message: "must not be negative"}
	}
	return n, nil
}

// AddTerm appends a clause.
func (t *Task) AddTerm(text string) error {
	pd, err := t.purchase()
	if err != nil {
		return err
	}
	pd.Terms = append(pd.Terms, text)
	return nil
}

// SetTerm replaces the clause at index.
func (t *Task) SetTerm(index int, text string) error {
	pd, err := t.purchase()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(pd.Terms) {
		return fmt.Errorf("term %w: %d", ErrItemNotFound, index)
	}
	pd.Terms[index] = text
	return nil
}

// RemoveTerm deletes the clause at index.
func (t *Task) RemoveTerm(index int) error {
	pd, err := t.purchase()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(pd.Terms) {
		return fmt.Errorf("term %w: %d", ErrItemNotFound, index)
	}
	pd.Terms = slices.Delete(pd.Terms, index, index+1)
	return nil
}
