package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Payment is money expected or received for a project.
type Payment struct {
	ID           string          `json:"id"`
	ProjectID    string          `json:"projectId"`
	Amount       decimal.Decimal `json:"amount"`
	IsPaid       bool            `json:"isPaid"`
	ExpectedDate Date            `json:"expectedDate"`
	PaidDate     Date            `json:"paidDate"`
	Description  string          `json:"description,omitempty"`
	InvoiceID    string          `json:"invoiceId,omitempty"`
	Reference    string          `json:"reference,omitempty"`
}

// EffectiveDate is the paid date when known, otherwise the expected date.
func (p Payment) EffectiveDate() Date {
	if !p.PaidDate.IsZero() {
		return p.PaidDate
	}
	return p.ExpectedDate
}

// UnmarshalJSON also accepts the older status + date shape, where status is
// one of paid, pending or overdue.
func (p *Payment) UnmarshalJSON(data []byte) error {
	type plain Payment
	var aux struct {
		plain
		Status string `json:"status"`
		Date   Date   `json:"date"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*p = Payment(aux.plain)
	switch aux.Status {
	case "paid":
		p.IsPaid = true
		if p.PaidDate.IsZero() {
			p.PaidDate = aux.Date
		}
	case "pending", "overdue":
		p.IsPaid = false
		if p.ExpectedDate.IsZero() {
			p.ExpectedDate = aux.Date
		}
	default:
		if p.ExpectedDate.IsZero() {
			p.ExpectedDate = aux.Date
		}
	}
	return nil
}

// ExpenseCategory classifies business expenses.
type ExpenseCategory string

const (
	ExpenseEquipment ExpenseCategory = "equipment"
	ExpenseSoftware  ExpenseCategory = "software"
	ExpenseMarketing ExpenseCategory = "marketing"
	ExpenseOffice    ExpenseCategory = "office"
	ExpenseTransport ExpenseCategory = "transport"
	ExpenseEducation ExpenseCategory = "education"
	ExpenseOther     ExpenseCategory = "other"
)

// ExpenseCategories lists every known category in display order.
var ExpenseCategories = []ExpenseCategory{
	ExpenseEquipment, ExpenseSoftware, ExpenseMarketing, ExpenseOffice,
	ExpenseTransport, ExpenseEducation, ExpenseOther,
}

// Valid reports whether c is a known category.
func (c ExpenseCategory) Valid() bool {
	for _, v := range ExpenseCategories {
		if c == v {
			return true
		}
	}
	return false
}

// Expense is money spent on the business.
type Expense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    ExpenseCategory `json:"category"`
	Date        Date            `json:"date"`
	ProjectID   string          `json:"projectId,omitempty"`
	Receipt     string          `json:"receipt,omitempty"`
	Tax         decimal.Decimal `json:"tax"`
	Deductible  bool            `json:"deductible"`
	Reference   string          `json:"reference,omitempty"`
}

// InvoiceStatus tracks an invoice from draft to settlement.
type InvoiceStatus string

const (
	InvoiceDraft   InvoiceStatus = "draft"
	InvoiceSent    InvoiceStatus = "sent"
	InvoicePaid    InvoiceStatus = "paid"
	InvoiceOverdue InvoiceStatus = "overdue"
)

// Valid reports whether s is a known invoice status.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceDraft, InvoiceSent, InvoicePaid, InvoiceOverdue:
		return true
	}
	return false
}

// InvoiceItem is one billed line.
type InvoiceItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// Invoice bills a client, optionally for one project.
type Invoice struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	ClientID      string          `json:"clientId"`
	ProjectID     string          `json:"projectId,omitempty"`
	Items         []InvoiceItem   `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	IssueDate     Date            `json:"issueDate"`
	DueDate       Date            `json:"dueDate"`
	Status        InvoiceStatus   `json:"status"`
	Notes         string          `json:"notes,omitempty"`
}

// ProposalStatus tracks a quote sent to a client.
type ProposalStatus string

const (
	ProposalDraft    ProposalStatus = "draft"
	ProposalSent     ProposalStatus = "sent"
	ProposalAccepted ProposalStatus = "accepted"
	ProposalRejected ProposalStatus = "rejected"
)

// Valid reports whether s is a known proposal status.
func (s ProposalStatus) Valid() bool {
	switch s {
	case ProposalDraft, ProposalSent, ProposalAccepted, ProposalRejected:
		return true
	}
	return false
}

// Proposal is a quote for future work.
type Proposal struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	ClientID     string          `json:"clientId"`
	Amount       decimal.Decimal `json:"amount"`
	Status       ProposalStatus  `json:"status"`
	CreatedDate  Date            `json:"createdDate"`
	ValidUntil   Date            `json:"validUntil"`
	Description  string          `json:"description,omitempty"`
	Scope        []string        `json:"scope"`
	Deliverables []string        `json:"deliverables"`
}
