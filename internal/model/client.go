package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ClientStatus marks whether a client is still being worked with.
type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
)

// Valid reports whether s is a known status. Empty is allowed.
func (s ClientStatus) Valid() bool {
	return s == "" || s == ClientActive || s == ClientInactive
}

// Client is a customer. Paid totals and project counts are derived, not stored.
type Client struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Email    string       `json:"email,omitempty"`
	Phone    string       `json:"phone,omitempty"`
	Company  string       `json:"company,omitempty"`
	Priority bool         `json:"priority,omitempty"`
	Status   ClientStatus `json:"status"`
	Notes    string       `json:"notes,omitempty"`
}

// IsActive treats a missing status as active; one of the two historical
// schemas never stored it.
func (c Client) IsActive() bool {
	return c.Status == ClientActive || c.Status == ""
}

// ProjectStatus is the single project lifecycle vocabulary.
type ProjectStatus string

const (
	ProjectPlanned    ProjectStatus = "planned"
	ProjectInProgress ProjectStatus = "in-progress"
	ProjectOnHold     ProjectStatus = "on-hold"
	ProjectDelivered  ProjectStatus = "delivered"
	ProjectPaid       ProjectStatus = "paid"
)

// ProjectStatuses lists the vocabulary in lifecycle order.
var ProjectStatuses = []ProjectStatus{ProjectPlanned, ProjectInProgress, ProjectOnHold, ProjectDelivered, ProjectPaid}

// NormalizeProjectStatus maps the older active/completed vocabulary onto the
// current one. Unknown values are returned unchanged.
func NormalizeProjectStatus(s string) ProjectStatus {
	switch s {
	case "active":
		return ProjectInProgress
	case "completed":
		return ProjectPaid
	}
	return ProjectStatus(s)
}

// Valid reports whether s belongs to the vocabulary.
func (s ProjectStatus) Valid() bool {
	for _, v := range ProjectStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Project is a piece of work for a client, stored flat with a client foreign key.
type Project struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	ClientID    string          `json:"clientId"`
	Status      ProjectStatus   `json:"status"`
	Budget      decimal.Decimal `json:"budget"`
	Earned      decimal.Decimal `json:"earned"`
	Deadline    Date            `json:"deadline"`
	Description string          `json:"description,omitempty"`
	Color       string          `json:"color,omitempty"`
}

// IsCompleted reports whether the project counts as finished.
func (p Project) IsCompleted() bool { return p.Status == ProjectPaid }

// IsOpen reports whether work on the project is still ongoing.
func (p Project) IsOpen() bool {
	return p.Status == ProjectPlanned || p.Status == ProjectInProgress
}

// UnmarshalJSON also accepts the older expectedValue/deliveryDate keys and
// the active/completed statuses.
func (p *Project) UnmarshalJSON(data []byte) error {
	type plain Project
	var aux struct {
		plain
		ExpectedValue *decimal.Decimal `json:"expectedValue"`
		DeliveryDate  Date             `json:"deliveryDate"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = Project(aux.plain)
	p.Status = NormalizeProjectStatus(string(p.Status))
	if aux.ExpectedValue != nil && p.Budget.IsZero() {
		p.Budget = *aux.ExpectedValue
	}
	if p.Deadline.IsZero() {
		p.Deadline = aux.DeliveryDate
	}
	return nil
}

// Priority ranks tasks.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task is a to-do item, optionally tied to a project.
type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ProjectID string    `json:"projectId,omitempty"`
	Completed bool      `json:"completed"`
	Priority  Priority  `json:"priority,omitempty"`
	DueDate   Date      `json:"dueDate"`
	CreatedAt Timestamp `json:"createdAt"`
}

// UnmarshalJSON also accepts the older deadline key.
func (t *Task) UnmarshalJSON(data []byte) error {
	type plain Task
	var aux struct {
		plain
		Deadline Date `json:"deadline"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*t = Task(aux.plain)
	if t.DueDate.IsZero() {
		t.DueDate = aux.Deadline
	}
	return nil
}
