package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

// Depreciation is the percentage of value an item has lost since purchase.
// A zero purchase price gives 0.
func Depreciation(item model.EquipmentItem) decimal.Decimal {
	if item.PurchasePrice.IsZero() {
		return decimal.Zero
	}
	return percent(item.PurchasePrice.Sub(item.CurrentValue), item.PurchasePrice).Round(2)
}

// EquipmentTotals summarizes owned gear.
type EquipmentTotals struct {
	Count               int
	ActiveCount         int
	ActiveValue         decimal.Decimal // current value of active items
	CurrentValue        decimal.Decimal
	Invested            decimal.Decimal
	Depreciation        decimal.Decimal
	DepreciationPercent decimal.Decimal
	MaintenanceCount    int
	MaintenanceCost     decimal.Decimal
}

// EquipmentSummary totals value, depreciation and maintenance over items.
func EquipmentSummary(items []model.EquipmentItem) EquipmentTotals {
	t := EquipmentTotals{
		Count:           len(items),
		ActiveValue:     decimal.Zero,
		CurrentValue:    decimal.Zero,
		Invested:        decimal.Zero,
		MaintenanceCost: decimal.Zero,
	}
	for _, it := range items {
		if it.Status == model.EquipmentActive {
			t.ActiveCount++
			t.ActiveValue = t.ActiveValue.Add(it.CurrentValue)
		}
		t.CurrentValue = t.CurrentValue.Add(it.CurrentValue)
		t.Invested = t.Invested.Add(it.PurchasePrice)
		for _, m := range it.MaintenanceHistory {
			t.MaintenanceCount++
			t.MaintenanceCost = t.MaintenanceCost.Add(m.Cost)
		}
	}
	t.Depreciation = t.Invested.Sub(t.CurrentValue)
	t.DepreciationPercent = percent(t.Depreciation, t.Invested).Round(2)
	return t
}
