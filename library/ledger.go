package library

import (
	"errors"
	"fmt"
	"log/slog"
)

// Ledger holds the active checkouts, at most one per item id.
type Ledger struct {
	store   Store
	logger  *slog.Logger
	records []*CheckoutRecord
}

func NewLedger(store Store, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{store: store, logger: logger}
}

// Checkout opens a loan for item with the loan length its media type
// dictates.
func (l *Ledger) Checkout(item *LibraryItem) (*CheckoutRecord, error) {
	if _, ok := l.FindByID(item.ID); ok {
		return nil, fmt.Errorf("item %d: %w", item.ID, ErrAlreadyCheckedOut)
	}
	rec := &CheckoutRecord{Item: item, LoanPeriodDays: item.LoanPeriod()}
	l.records = append(l.records, rec)
	return rec, nil
}

func (l *Ledger) FindByID(id int64) (*CheckoutRecord, bool) {
	for _, r := range l.records {
		if r.ItemID() == id {
			return r, true
		}
	}
	return nil, false
}

// Return closes the loan for id.
func (l *Ledger) Return(id int64) error {
	for i, r := range l.records {
		if r.ItemID() == id {
			l.records = append(l.records[:i], l.records[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("item %d: %w", id, ErrNotCheckedOut)
}

// ApplyLateDays sets the same late-day count on every active record.
func (l *Ledger) ApplyLateDays(days int) {
	for _, r := range l.records {
		r.DaysLate = days
	}
}

// Records returns the active loans in checkout order.
func (l *Ledger) Records() []*CheckoutRecord {
	out := make([]*CheckoutRecord, len(l.records))
	copy(out, l.records)
	return out
}

func (l *Ledger) Len() int { return len(l.records) }

// Save overwrites the stored checkout list with the current one.
func (l *Ledger) Save() error {
	saved := make([]SavedCheckout, 0, len(l.records))
	for _, r := range l.records {
		saved = append(saved, SavedCheckout{ItemID: r.ItemID(), LoanPeriodDays: r.LoanPeriodDays, DaysLate: r.DaysLate})
	}
	if err := l.store.SaveCheckouts(saved); err != nil {
		return fmt.Errorf("save checkouts: %w", err)
	}
	return nil
}

// Load replaces the ledger with the stored list, resolving every item id
// against catalog. Saved entries whose item is no longer in the catalog are
// dropped, as are repeats of an id already loaded. When nothing was saved the ledger is left as it is and ErrNoFile
// is returned.
func (l *Ledger) Load(catalog *Catalog) error {
	saved, err := l.store.LoadCheckouts()
	if errors.Is(err, ErrNoFile) {
		return ErrNoFile
	}
	if err != nil {
		return fmt.Errorf("load checkouts: %w", err)
	}

	l.records = l.records[:0]
	for _, s := range saved {
		item, ok := catalog.FindByID(s.ItemID)
		if !ok {
			l.logger.Debug("dropping checkout for unknown item", slog.Int64("item_id", s.ItemID))
			continue
		}
		if _, dup := l.FindByID(s.ItemID); dup {
			l.logger.Debug("dropping duplicate checkout", slog.Int64("item_id", s.ItemID))
			continue
		}
		l.records = append(l.records, &CheckoutRecord{
			Item:           item,
			LoanPeriodDays: s.LoanPeriodDays,
			DaysLate:       s.DaysLate,
		})
	}
	return nil
}
