package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
)

// DateLayout is the canonical text form of a cleaned calendar date.
const DateLayout = "2006-01-02"

type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "Income"
	TransactionTypeExpense  TransactionType = "Expense"
	TransactionTypeTransfer TransactionType = "Transfer"
)

// TransactionTypes lists the accepted values of the Type column.
var TransactionTypes = []TransactionType{
	TransactionTypeIncome,
	TransactionTypeExpense,
	TransactionTypeTransfer,
}

func (t TransactionType) Valid() bool {
	for _, v := range TransactionTypes {
		if t == v {
			return true
		}
	}
	return false
}

const (
	StatusReconciled = "Reconciled"
	StatusPending    = "Pending"
	StatusCleared    = "Cleared"
)

// Statuses lists the Status values that do not raise a warning.
var Statuses = []string{StatusReconciled, StatusPending, StatusCleared}

func KnownStatus(s string) bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// ParseDate parses a calendar date in any common layout and truncates it to
// midnight UTC. Ambiguous numeric dates are read month first; day-first dates
// that cannot be month first, such as 15/01/2024, are read day first.
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	parsed, err := dateparse.ParseIn(trimmed, time.UTC, dateparse.RetryAmbiguousDateWithSwap(true))
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), nil
}

// ParseAmount parses a signed decimal amount.
func ParseAmount(value string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	return decimal.NewFromString(trimmed)
}

// FieldError reports a cell that could not be coerced to its field type.
type FieldError struct {
	Column string
	Value  string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Column, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// RawTransaction is one exported record with its Date and Amount coerced.
// Text fields keep the exact cell content.
type RawTransaction struct {
	Type     string
	Date     time.Time
	Name     string
	Amount   decimal.Decimal
	Currency string
	Category string
	Account  string
	Status   string
}

// NewRawTransaction builds the record for row i of t. The table must carry every
// required column.
func NewRawTransaction(t *Table, i int) (RawTransaction, error) {
	dateText := t.Value(i, ColumnDate)
	date, err := ParseDate(dateText)
	if err != nil {
		return RawTransaction{}, &FieldError{Column: ColumnDate, Value: dateText, Err: err}
	}

	amountText := t.Value(i, ColumnAmount)
	amount, err := ParseAmount(amountText)
	if err != nil {
		return RawTransaction{}, &FieldError{Column: ColumnAmount, Value: amountText, Err: err}
	}

	return RawTransaction{
		Type:     t.Value(i, ColumnType),
		Date:     date,
		Name:     t.Value(i, ColumnName),
		Amount:   amount,
		Currency: t.Value(i, ColumnCurrency),
		Category: t.Value(i, ColumnCategory),
		Account:  t.Value(i, ColumnAccount),
		Status:   t.Value(i, ColumnStatus),
	}, nil
}

// Clean renames the record into its cleaned form.
func (r RawTransaction) Clean() CleanedTransaction {
	return CleanedTransaction{
		Type:     TransactionType(r.Type),
		Date:     r.Date,
		Item:     r.Name,
		Amount:   r.Amount,
		Currency: r.Currency,
		Category: r.Category,
		Account:  r.Account,
		Status:   r.Status,
	}
}

// CleanedTransaction is a reconciled record in the reporting schema.
type CleanedTransaction struct {
	Type     TransactionType
	Date     time.Time
	Item     string
	Amount   decimal.Decimal
	Currency string
	Category string
	Account  string
	Status   string
}

// Values renders the record in CleanedColumns order.
func (c CleanedTransaction) Values() []string {
	return []string{
		string(c.Type),
		c.Date.Format(DateLayout),
		c.Item,
		c.Amount.String(),
		c.Currency,
		c.Category,
		c.Account,
		c.Status,
	}
}
