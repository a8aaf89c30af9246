package persist

import (
	"fmt"
	"math"

	"github.com/amalmed/opstrack/internal/record"
)

// SchemaVersion is the layout written by this build.
//
//	1: purchase items carry quantity and total but no price.
//	2: purchase items carry price; total is quantity * price.
const SchemaVersion = 2

// Migrate upgrades tasks written at version from to SchemaVersion in place and
// returns how many tasks changed.
func Migrate(tasks []record.Task, from int) (int, error) {
	if from > SchemaVersion {
		return 0, fmt.Errorf("schema version %d is newer than supported version %d", from, SchemaVersion)
	}
	changed := 0
	if from < 2 {
		for i := range tasks {
			if backfillPrices(&tasks[i]) {
				changed++
			}
		}
	}
	for i := range tasks {
		tasks[i].Normalize()
	}
	return changed, nil
}

// backfillPrices derives price for items saved before price existed, keeping
// every legacy total. Price is total / quantity rounded to the cent when that
// still reproduces the total, and the exact quotient otherwise. An item with a
// total but no quantity becomes one unit priced at the total.
func backfillPrices(t *record.Task) bool {
	if t.PurchaseData == nil {
		return false
	}
	changed := false
	for i := range t.PurchaseData.Items {
		it := &t.PurchaseData.Items[i]
		if it.Price != 0 || it.Total == 0 {
			continue
		}
		if it.Quantity <= 0 {
			it.Quantity = 1
			it.Price = it.Total
			changed = true
			continue
		}
		price := roundCents(it.Total / it.Quantity)
		if roundCents(price*it.Quantity) != roundCents(it.Total) {
			price = it.Total / it.Quantity
		}
		it.Price = price
		changed = true
	}
	return changed
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
