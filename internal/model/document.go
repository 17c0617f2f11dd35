// Package model defines the tally data document and its records.
package model

import "github.com/shopspring/decimal"

func init() {
	// Documents are exchanged with tools that expect JSON numbers for amounts.
	decimal.MarshalJSONWithoutQuotes = true
}

// Settings is the workspace-wide configuration stored inside the document.
type Settings struct {
	UserName     string          `json:"userName"`
	BusinessName string          `json:"businessName"`
	Currency     string          `json:"currency"`
	TaxRate      decimal.Decimal `json:"taxRate"`    // percent, e.g. 23
	HourlyRate   decimal.Decimal `json:"hourlyRate"` // default rate for time entries
	DarkMode     bool            `json:"darkMode"`
}

// DefaultSettings returns the settings of a fresh document.
func DefaultSettings() Settings {
	return Settings{
		Currency:   "EUR",
		TaxRate:    decimal.NewFromInt(23),
		HourlyRate: decimal.NewFromInt(50),
		DarkMode:   true,
	}
}

// Document is the whole persisted state: every entity list plus settings.
type Document struct {
	Clients     []Client        `json:"clients"`
	Projects    []Project       `json:"projects"`
	Tasks       []Task          `json:"tasks"`
	Payments    []Payment       `json:"payments"`
	TimeEntries []TimeEntry     `json:"timeEntries"`
	Equipment   []EquipmentItem `json:"equipment"`
	Invoices    []Invoice       `json:"invoices"`
	Expenses    []Expense       `json:"expenses"`
	Proposals   []Proposal      `json:"proposals"`
	Goals       []Goal          `json:"goals"`
	Settings    Settings        `json:"settings"`
}

// NewDocument returns an empty document with default settings.
func NewDocument() *Document {
	d := &Document{Settings: DefaultSettings()}
	d.Normalize()
	return d
}

// Normalize replaces nil lists with empty ones so every document serializes
// with the same shape.
func (d *Document) Normalize() {
	if d.Clients == nil {
		d.Clients = []Client{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.Tasks == nil {
		d.Tasks = []Task{}
	}
	if d.Payments == nil {
		d.Payments = []Payment{}
	}
	if d.TimeEntries == nil {
		d.TimeEntries = []TimeEntry{}
	}
	if d.Equipment == nil {
		d.Equipment = []EquipmentItem{}
	}
	if d.Invoices == nil {
		d.Invoices = []Invoice{}
	}
	if d.Expenses == nil {
		d.Expenses = []Expense{}
	}
	if d.Proposals == nil {
		d.Proposals = []Proposal{}
	}
	if d.Goals == nil {
		d.Goals = []Goal{}
	}
}

// ProjectByID returns the project with id.
func (d *Document) ProjectByID(id string) (Project, bool) {
	for _, p := range d.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// ClientByID returns the client with id.
func (d *Document) ClientByID(id string) (Client, bool) {
	for _, c := range d.Clients {
		if c.ID == id {
			return c, true
		}
	}
	return Client{}, false
}
