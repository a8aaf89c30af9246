package persist

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/amalmed/opstrack/internal/record"
)

//go:embed seed.yaml
var seedYAML []byte

type seedFile struct {
	Tasks []seedTask `yaml:"tasks"`
}

type seedTask struct {
	ID          string        `yaml:"id"`
	Title       string        `yaml:"title"`
	Category    string        `yaml:"category"`
	SubCategory string        `yaml:"subCategory"`
	Importance  string        `yaml:"importance"`
	Type        string        `yaml:"type"`
	Status      string        `yaml:"status"`
	Notes       string        `yaml:"notes"`
	Assignee    string        `yaml:"assignee"`
	Progress    int           `yaml:"progress"`
	Purchase    *seedPurchase `yaml:"purchase"`
}

type seedPurchase struct {
	SerialNumber string     `yaml:"serialNumber"`
	Recipient    string     `yaml:"recipient"`
	Items        []seedItem `yaml:"items"`
	Terms        []string   `yaml:"terms"`
}

type seedItem struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	Unit     string  `yaml:"unit"`
	Quantity float64 `yaml:"quantity"`
	Price    float64 `yaml:"price"`
	ItemCode string  `yaml:"itemCode"`
}

// Seed returns the built-in starter collection dated now.
func Seed(now time.Time) ([]record.Task, error) {
	var f seedFile
	if err := yaml.Unmarshal(seedYAML, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed list: %w", err)
	}

	tasks := make([]record.Task, 0, len(f.Tasks))
	for _, s := range f.Tasks {
		t := record.Task{
			ID:          s.ID,
			Title:       s.Title,
			Category:    s.Category,
			SubCategory: s.SubCategory,
			Importance:  record.Importance(s.Importance),
			Type:        record.Type(s.Type),
			Status:      record.Status(s.Status),
			Date:        now.Format(record.DateLayout),
			Notes:       s.Notes,
			Assignee:    s.Assignee,
			Progress:    s.Progress,
			CreatedAt:   now.UTC().Format(record.TimestampLayout),
		}
		if s.Purchase != nil {
			pd := &record.PurchaseData{
				SerialNumber: s.Purchase.SerialNumber,
				Recipient:    s.Purchase.Recipient,
				Terms:        s.Purchase.Terms,
			}
			for _, it := range s.Purchase.Items {
				pd.Items = append(pd.Items, record.PurchaseItem{
					ID:       it.ID,
					Name:     it.Name,
					Unit:     it.Unit,
					Quantity: it.Quantity,
					Price:    it.Price,
					ItemCode: it.ItemCode,
				})
			}
			t.PurchaseData = pd
		}
		t.Normalize()
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("seed task %s: %w", s.ID, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}
