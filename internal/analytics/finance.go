package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

// Finances is the all-time money picture.
type Finances struct {
	Revenue      decimal.Decimal // paid payments
	Outstanding  decimal.Decimal // unpaid payments
	Expenses     decimal.Decimal
	Profit       decimal.Decimal
	ProfitMargin decimal.Decimal // percent of revenue, 0 without revenue
}

// FinanceOverview totals payments and expenses across the whole document.
func FinanceOverview(doc *model.Document) Finances {
	f := Finances{
		Revenue:      decimal.Zero,
		Outstanding:  decimal.Zero,
		Expenses:     decimal.Zero,
		Profit:       decimal.Zero,
		ProfitMargin: decimal.Zero,
	}
	if doc == nil {
		return f
	}
	for _, p := range doc.Payments {
		if p.IsPaid {
			f.Revenue = f.Revenue.Add(p.Amount)
		} else {
			f.Outstanding = f.Outstanding.Add(p.Amount)
		}
	}
	f.Expenses = sum(doc.Expenses, expenseAmount)
	f.Profit = f.Revenue.Sub(f.Expenses)
	if f.Revenue.Sign() > 0 {
		f.ProfitMargin = percent(f.Profit, f.Revenue).Round(2)
	}
	return f
}

// ExpenseSums totals a set of expenses.
type ExpenseSums struct {
	Count      int
	Total      decimal.Decimal
	Deductible decimal.Decimal
	Tax        decimal.Decimal
}

// ExpenseTotals sums amounts, deductible amounts and tax.
func ExpenseTotals(expenses []model.Expense) ExpenseSums {
	s := ExpenseSums{Count: len(expenses), Total: decimal.Zero, Deductible: decimal.Zero, Tax: decimal.Zero}
	for _, e := range expenses {
		s.Total = s.Total.Add(e.Amount)
		s.Tax = s.Tax.Add(e.Tax)
		if e.Deductible {
			s.Deductible = s.Deductible.Add(e.Amount)
		}
	}
	return s
}

// ExpenseByCategory sums expenses per category, leaving out empty ones.
func ExpenseByCategory(expenses []model.Expense) []GroupTotal {
	return BreakdownBy(expenses,
		func(e model.Expense) string { return string(e.Category) },
		expenseAmount)
}

// ExpensesInMonth keeps expenses dated in the given month.
func ExpensesInMonth(expenses []model.Expense, year int, month time.Month) []model.Expense {
	var out []model.Expense
	for _, e := range expenses {
		if e.Date.InMonth(year, month) {
			out = append(out, e)
		}
	}
	return out
}

func expenseAmount(e model.Expense) decimal.Decimal { return e.Amount }

// ProjectStatusCounts counts projects per status, leaving out empty ones.
func ProjectStatusCounts(projects []model.Project) []GroupTotal {
	return BreakdownBy(projects,
		func(p model.Project) string { return string(p.Status) },
		func(model.Project) decimal.Decimal { return decimal.NewFromInt(1) })
}

// ClientTotal is a client with its recomputed totals.
type ClientTotal struct {
	Client        model.Client
	TotalPaid     decimal.Decimal
	ProjectsCount int
}

// ClientTotals recomputes, for every client, the paid payments reached
// through its projects and the number of its projects.
func ClientTotals(doc *model.Document) []ClientTotal {
	if doc == nil {
		return []ClientTotal{}
	}
	owner := projectOwners(doc.Projects)
	paid := make(map[string]decimal.Decimal)
	count := make(map[string]int)
	for _, p := range doc.Projects {
		count[p.ClientID]++
	}
	for _, p := range doc.Payments {
		if !p.IsPaid {
			continue
		}
		if c, ok := owner[p.ProjectID]; ok {
			paid[c] = paid[c].Add(p.Amount)
		}
	}
	out := make([]ClientTotal, 0, len(doc.Clients))
	for _, c := range doc.Clients {
		total, ok := paid[c.ID]
		if !ok {
			total = decimal.Zero
		}
		out = append(out, ClientTotal{Client: c, TotalPaid: total, ProjectsCount: count[c.ID]})
	}
	return out
}

// TopClients ranks client ids by paid revenue. Payments whose project is
// unknown are not attributed to anyone.
func TopClients(doc *model.Document, n int) []GroupTotal {
	if doc == nil {
		return []GroupTotal{}
	}
	owner := projectOwners(doc.Projects)
	var attributed []model.Payment
	for _, p := range paidPayments(doc.Payments) {
		if _, ok := owner[p.ProjectID]; ok {
			attributed = append(attributed, p)
		}
	}
	return TopN(attributed,
		func(p model.Payment) string { return owner[p.ProjectID] },
		paymentAmount,
		n)
}

func projectOwners(projects []model.Project) map[string]string {
	owner := make(map[string]string, len(projects))
	for _, p := range projects {
		owner[p.ID] = p.ClientID
	}
	return owner
}

// Proposals summarizes quotes.
type Proposals struct {
	Count          int
	TotalProposed  decimal.Decimal
	AcceptedAmount decimal.Decimal
	WinRate        decimal.Decimal // percent accepted by count, 0 without proposals
}

// ProposalStats totals proposals and their acceptance rate.
func ProposalStats(proposals []model.Proposal) Proposals {
	s := Proposals{Count: len(proposals), TotalProposed: decimal.Zero, AcceptedAmount: decimal.Zero, WinRate: decimal.Zero}
	accepted := 0
	for _, p := range proposals {
		s.TotalProposed = s.TotalProposed.Add(p.Amount)
		if p.Status == model.ProposalAccepted {
			accepted++
			s.AcceptedAmount = s.AcceptedAmount.Add(p.Amount)
		}
	}
	s.WinRate = percent(decimal.NewFromInt(int64(accepted)), decimal.NewFromInt(int64(len(proposals)))).Round(2)
	return s
}

// InvoiceAmounts are the computed money fields of an invoice.
type InvoiceAmounts struct {
	Items    []model.InvoiceItem
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// InvoiceTotals sets each item amount to quantity x rate and derives
// subtotal, tax at taxRate percent (rounded to cents) and total. The input
// slice is not modified.
func InvoiceTotals(items []model.InvoiceItem, taxRate decimal.Decimal) InvoiceAmounts {
	out := InvoiceAmounts{Items: make([]model.InvoiceItem, len(items)), Subtotal: decimal.Zero}
	for i, it := range items {
		it.Amount = it.Quantity.Mul(it.Rate)
		out.Items[i] = it
		out.Subtotal = out.Subtotal.Add(it.Amount)
	}
	out.Tax = out.Subtotal.Mul(taxRate).Div(hundred).Round(2)
	out.Total = out.Subtotal.Add(out.Tax)
	return out
}

// Invoices summarizes billing.
type Invoices struct {
	Count       int
	Billed      decimal.Decimal // paid invoices
	Outstanding decimal.Decimal // sent and overdue invoices
	Drafts      int
}

// InvoiceSummary totals invoices by status.
func InvoiceSummary(invoices []model.Invoice) Invoices {
	s := Invoices{Count: len(invoices), Billed: decimal.Zero, Outstanding: decimal.Zero}
	for _, inv := range invoices {
		switch inv.Status {
		case model.InvoicePaid:
			s.Billed = s.Billed.Add(inv.Total)
		case model.InvoiceSent, model.InvoiceOverdue:
			s.Outstanding = s.Outstanding.Add(inv.Total)
		case model.InvoiceDraft:
			s.Drafts++
		}
	}
	return s
}
