package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLateFee(t *testing.T) {
	tests := []struct {
		name     string
		daily    string
		daysLate int
		want     string
	}{
		{name: "four days", daily: "2.50", daysLate: 4, want: "10.00"},
		{name: "on time", daily: "2.50", daysLate: 0, want: "0"},
		{name: "negative days", daily: "2.50", daysLate: -3, want: "0"},
		{name: "free item", daily: "0", daysLate: 9, want: "0"},
		{name: "cents stay exact", daily: "0.10", daysLate: 3, want: "0.30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LateFee(fee(tt.daily), tt.daysLate)
			assert.True(t, fee(tt.want).Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestTotalFees(t *testing.T) {
	dune := &LibraryItem{ID: 1, Title: "Dune", MediaType: "Book", DailyLateFee: fee("0.50")}
	matrix := &LibraryItem{ID: 2, Title: "Matrix", MediaType: "DVD", DailyLateFee: fee("1.00")}
	records := []*CheckoutRecord{
		{Item: dune, LoanPeriodDays: 7, DaysLate: 5},
		{Item: matrix, LoanPeriodDays: 3, DaysLate: 5},
	}

	assert.True(t, fee("7.50").Equal(TotalFees(records)))
	assert.True(t, TotalFees(nil).IsZero())
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "10.00", FormatAmount(fee("10")))
	assert.Equal(t, "7.50", FormatAmount(fee("7.5")))
	assert.Equal(t, "0.00", FormatAmount(fee("0")))
	assert.Equal(t, "0.13", FormatAmount(fee("0.125")))
	assert.Equal(t, "1,250.00", FormatAmount(fee("1250")))
}
