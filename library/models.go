package library

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Loan lengths in days. DVDs go out for a short loan, everything else is
// treated as a book.
const (
	DVDLoanDays  = 3
	BookLoanDays = 7
)

// LibraryItem is a catalog entry. Items are immutable once created and are
// owned by the Catalog.
type LibraryItem struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title"`
	MediaType    string          `json:"media_type"`
	DailyLateFee decimal.Decimal `json:"daily_late_fee"`
}

// LoanPeriod returns the number of days the item may be kept.
func (it *LibraryItem) LoanPeriod() int {
	return LoanPeriodFor(it.MediaType)
}

func (it *LibraryItem) String() string {
	return fmt.Sprintf("ID: %d | %s | %s | Late Fee: $%s/day",
		it.ID, it.Title, it.MediaType, FormatAmount(it.DailyLateFee))
}

// LoanPeriodFor maps a media type to its loan length. Only "dvd" (in any
// case) gets the short loan.
func LoanPeriodFor(mediaType string) int {
	if strings.EqualFold(mediaType, "dvd") {
		return DVDLoanDays
	}
	return BookLoanDays
}

// CheckoutRecord is one active loan. Item points at the catalog-owned entry
// the record was resolved against; the record never copies catalog data.
type CheckoutRecord struct {
	Item           *LibraryItem `json:"-"`
	LoanPeriodDays int          `json:"loan_period_days"`
	DaysLate       int          `json:"days_late"`
}

// ItemID is the id of the referenced catalog item.
func (r *CheckoutRecord) ItemID() int64 { return r.Item.ID }

// LateFee is the fee owed for this record at its current DaysLate.
func (r *CheckoutRecord) LateFee() decimal.Decimal {
	return LateFee(r.Item.DailyLateFee, r.DaysLate)
}

func (r *CheckoutRecord) String() string {
	return fmt.Sprintf("%s | Loan: %d days | Days Late: %d | Fee: $%s",
		r.Item.Title, r.LoanPeriodDays, r.DaysLate, FormatAmount(r.LateFee()))
}

// SavedCheckout is the persisted shape of a CheckoutRecord: the item is
// stored by id only and resolved against the catalog on load.
type SavedCheckout struct {
	ItemID         int64
	LoanPeriodDays int
	DaysLate       int
}
