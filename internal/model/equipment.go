package model

import "github.com/shopspring/decimal"

// EquipmentCategory groups owned gear.
type EquipmentCategory string

const (
	EquipmentComputer  EquipmentCategory = "computer"
	EquipmentCamera    EquipmentCategory = "camera"
	EquipmentAudio     EquipmentCategory = "audio"
	EquipmentSoftware  EquipmentCategory = "software"
	EquipmentFurniture EquipmentCategory = "furniture"
	EquipmentOther     EquipmentCategory = "other"
)

// Valid reports whether c is a known category.
func (c EquipmentCategory) Valid() bool {
	switch c {
	case EquipmentComputer, EquipmentCamera, EquipmentAudio, EquipmentSoftware, EquipmentFurniture, EquipmentOther:
		return true
	}
	return false
}

// EquipmentStatus is where an item is in its life.
type EquipmentStatus string

const (
	EquipmentActive      EquipmentStatus = "active"
	EquipmentMaintenance EquipmentStatus = "maintenance"
	EquipmentSold        EquipmentStatus = "sold"
	EquipmentRetired     EquipmentStatus = "retired"
)

// Valid reports whether s is a known status.
func (s EquipmentStatus) Valid() bool {
	switch s {
	case EquipmentActive, EquipmentMaintenance, EquipmentSold, EquipmentRetired:
		return true
	}
	return false
}

// MaintenanceRecord is embedded in its item and has no identity outside it.
type MaintenanceRecord struct {
	ID          string          `json:"id"`
	Date        Date            `json:"date"`
	Description string          `json:"description"`
	Cost        decimal.Decimal `json:"cost"`
}

// EquipmentItem is a piece of gear owned by the business.
type EquipmentItem struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Category           EquipmentCategory   `json:"category"`
	PurchaseDate       Date                `json:"purchaseDate"`
	PurchasePrice      decimal.Decimal     `json:"purchasePrice"`
	CurrentValue       decimal.Decimal     `json:"currentValue"`
	Status             EquipmentStatus     `json:"status"`
	Notes              string              `json:"notes,omitempty"`
	MaintenanceHistory []MaintenanceRecord `json:"maintenanceHistory,omitempty"`
}
