package commands

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tally-dev/tally/internal/model"
)

// decimalFlag is a flag value holding an amount.
type decimalFlag struct {
	d   decimal.Decimal
	set bool
}

func (f *decimalFlag) String() string { return f.d.String() }
func (f *decimalFlag) Type() string   { return "amount" }

func (f *decimalFlag) Set(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount %q", s)
	}
	f.d, f.set = d, true
	return nil
}

// ptr returns nil when the flag was not given.
func (f *decimalFlag) ptr() *decimal.Decimal {
	if !f.set {
		return nil
	}
	d := f.d
	return &d
}

// dateFlag is a flag value holding a YYYY-MM-DD date.
type dateFlag struct {
	d model.Date
}

func (f *dateFlag) String() string { return f.d.String() }
func (f *dateFlag) Type() string   { return "date" }

func (f *dateFlag) Set(s string) error {
	d, err := model.ParseDate(s)
	if err != nil {
		return err
	}
	f.d = d
	return nil
}
