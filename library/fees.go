package library

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var amountPrinter = message.NewPrinter(language.AmericanEnglish)

// LateFee charges dailyLateFee for every late day. Zero or negative late
// days cost nothing.
func LateFee(dailyLateFee decimal.Decimal, daysLate int) decimal.Decimal {
	if daysLate <= 0 {
		return decimal.Zero
	}
	return dailyLateFee.Mul(decimal.NewFromInt(int64(daysLate)))
}

// TotalFees sums the late fee of every record.
func TotalFees(records []*CheckoutRecord) decimal.Decimal {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.LateFee())
	}
	return total
}

// FormatAmount renders a money amount with two fraction digits.
func FormatAmount(amount decimal.Decimal) string {
	return amountPrinter.Sprint(number.Decimal(amount.Round(2).InexactFloat64(), number.Scale(2)))
}
