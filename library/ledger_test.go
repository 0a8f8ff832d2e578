package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledgerFixture struct {
	catalog      *Catalog
	ledger       *Ledger
	store        *FileStore
	checkoutPath string
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	catalogPath, checkoutPath := tempFiles(t)
	writeFile(t, catalogPath, "1,Dune,Book,0.50\n2,Matrix,DVD,1.00\n3,Emma,Book,0.25\n")
	store := NewFileStore(catalogPath, checkoutPath, discardLogger())
	catalog := NewCatalog(store)
	require.NoError(t, catalog.Load())
	return &ledgerFixture{
		catalog:      catalog,
		ledger:       NewLedger(store, discardLogger()),
		store:        store,
		checkoutPath: checkoutPath,
	}
}

func (f *ledgerFixture) item(t *testing.T, id int64) *LibraryItem {
	t.Helper()
	it, ok := f.catalog.FindByID(id)
	require.True(t, ok, "item %d", id)
	return it
}

func TestLoanPeriodFor(t *testing.T) {
	tests := []struct {
		mediaType string
		want      int
	}{
		{"DVD", 3},
		{"dvd", 3},
		{"Dvd", 3},
		{"Book", 7},
		{"", 7},
		{"audiobook", 7},
		{"dvds", 7},
	}
	for _, tt := range tests {
		t.Run(tt.mediaType, func(t *testing.T) {
			assert.Equal(t, tt.want, LoanPeriodFor(tt.mediaType))
		})
	}
}

func TestLedgerCheckoutTwice(t *testing.T) {
	f := newLedgerFixture(t)
	dune := f.item(t, 1)

	rec, err := f.ledger.Checkout(dune)
	require.NoError(t, err)
	assert.Equal(t, 7, rec.LoanPeriodDays)
	assert.Equal(t, 0, rec.DaysLate)

	_, err = f.ledger.Checkout(dune)
	assert.ErrorIs(t, err, ErrAlreadyCheckedOut)
	assert.Equal(t, 1, f.ledger.Len())
}

func TestLedgerCheckoutDVDLoan(t *testing.T) {
	f := newLedgerFixture(t)

	rec, err := f.ledger.Checkout(f.item(t, 2))
	require.NoError(t, err)
	assert.Equal(t, 3, rec.LoanPeriodDays)
	assert.Same(t, f.item(t, 2), rec.Item)
}

func TestLedgerReturnTwice(t *testing.T) {
	f := newLedgerFixture(t)
	_, err := f.ledger.Checkout(f.item(t, 1))
	require.NoError(t, err)

	require.NoError(t, f.ledger.Return(1))
	_, ok := f.ledger.FindByID(1)
	assert.False(t, ok)

	assert.ErrorIs(t, f.ledger.Return(1), ErrNotCheckedOut)
	assert.ErrorIs(t, f.ledger.Return(42), ErrNotCheckedOut)
}

func TestLedgerReturnKeepsOrder(t *testing.T) {
	f := newLedgerFixture(t)
	for _, id := range []int64{1, 2, 3} {
		_, err := f.ledger.Checkout(f.item(t, id))
		require.NoError(t, err)
	}

	require.NoError(t, f.ledger.Return(2))

	recs := f.ledger.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, int64(1), recs[0].ItemID())
	assert.Equal(t, int64(3), recs[1].ItemID())
}

func TestLedgerApplyLateDays(t *testing.T) {
	f := newLedgerFixture(t)
	for _, id := range []int64{1, 2} {
		_, err := f.ledger.Checkout(f.item(t, id))
		require.NoError(t, err)
	}

	f.ledger.ApplyLateDays(4)
	for _, r := range f.ledger.Records() {
		assert.Equal(t, 4, r.DaysLate)
	}

	f.ledger.ApplyLateDays(0)
	for _, r := range f.ledger.Records() {
		assert.Equal(t, 0, r.DaysLate)
	}
}

func TestLedgerSaveOverwrites(t *testing.T) {
	f := newLedgerFixture(t)
	writeFile(t, f.checkoutPath, "9,9,9\n8,8,8\n7,7,7\n")

	_, err := f.ledger.Checkout(f.item(t, 2))
	require.NoError(t, err)
	f.ledger.ApplyLateDays(2)
	require.NoError(t, f.ledger.Save())

	assert.Equal(t, "2,3,2\n", readFile(t, f.checkoutPath))
}

func TestLedgerSaveEmpty(t *testing.T) {
	f := newLedgerFixture(t)
	require.NoError(t, f.ledger.Save())
	assert.Equal(t, "", readFile(t, f.checkoutPath))
}

func TestLedgerSaveLoadRoundTrip(t *testing.T) {
	f := newLedgerFixture(t)
	for _, id := range []int64{3, 1, 2} {
		_, err := f.ledger.Checkout(f.item(t, id))
		require.NoError(t, err)
	}
	f.ledger.ApplyLateDays(6)
	require.NoError(t, f.ledger.Save())

	reloaded := NewLedger(f.store, discardLogger())
	require.NoError(t, reloaded.Load(f.catalog))

	want := []SavedCheckout{{3, 7, 6}, {1, 7, 6}, {2, 3, 6}}
	got := reloaded.Records()
	require.Len(t, got, len(want))
	for i, w := range want {
		assert.Equal(t, w.ItemID, got[i].ItemID())
		assert.Equal(t, w.LoanPeriodDays, got[i].LoanPeriodDays)
		assert.Equal(t, w.DaysLate, got[i].DaysLate)
	}
}

func TestLedgerLoadKeepsSavedLoanPeriod(t *testing.T) {
	f := newLedgerFixture(t)
	writeFile(t, f.checkoutPath, "2,10,1\n")

	require.NoError(t, f.ledger.Load(f.catalog))
	rec, ok := f.ledger.FindByID(2)
	require.True(t, ok)
	assert.Equal(t, 10, rec.LoanPeriodDays)
	assert.Equal(t, 1, rec.DaysLate)
}

func TestLedgerLoadDropsUnknownItems(t *testing.T) {
	f := newLedgerFixture(t)
	writeFile(t, f.checkoutPath, "1,7,2\n42,7,2\n2,3,2\n")

	require.NoError(t, f.ledger.Load(f.catalog))
	recs := f.ledger.Records()
	require.Len(t, recs, 2)
	assert.Equal(t, int64(1), recs[0].ItemID())
	assert.Equal(t, int64(2), recs[1].ItemID())
}

func TestLedgerLoadSkipsMalformedAndDuplicateLines(t *testing.T) {
	f := newLedgerFixture(t)
	writeFile(t, f.checkoutPath, "1,7\nx,7,0\n3,7,1\n3,7,5\n1,7,0,9\n")

	require.NoError(t, f.ledger.Load(f.catalog))
	recs := f.ledger.Records()
	require.Len(t, recs, 1)
	assert.Equal(t, int64(3), recs[0].ItemID())
	assert.Equal(t, 1, recs[0].DaysLate)
}

func TestLedgerLoadReplacesCurrentList(t *testing.T) {
	f := newLedgerFixture(t)
	_, err := f.ledger.Checkout(f.item(t, 3))
	require.NoError(t, err)
	writeFile(t, f.checkoutPath, "1,7,0\n")

	require.NoError(t, f.ledger.Load(f.catalog))
	_, ok := f.ledger.FindByID(3)
	assert.False(t, ok)
	_, ok = f.ledger.FindByID(1)
	assert.True(t, ok)
}

func TestLedgerLoadMissingFileKeepsList(t *testing.T) {
	f := newLedgerFixture(t)
	_, err := f.ledger.Checkout(f.item(t, 1))
	require.NoError(t, err)

	assert.ErrorIs(t, f.ledger.Load(f.catalog), ErrNoFile)
	assert.Equal(t, 1, f.ledger.Len())
}
