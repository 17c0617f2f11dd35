package model

import "github.com/shopspring/decimal"

// GoalType selects which document data feeds a goal's current amount.
type GoalType string

const (
	GoalRevenue  GoalType = "revenue"
	GoalClients  GoalType = "clients"
	GoalProjects GoalType = "projects"
	GoalSavings  GoalType = "savings"
)

// Valid reports whether t is a known goal type.
func (t GoalType) Valid() bool {
	switch t {
	case GoalRevenue, GoalClients, GoalProjects, GoalSavings:
		return true
	}
	return false
}

// Goal is a target. Its current amount is never stored; it is recomputed
// from the document every time it is shown.
type Goal struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Type         GoalType        `json:"type"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	Deadline     Date            `json:"deadline"`
	Color        string          `json:"color,omitempty"`
}
