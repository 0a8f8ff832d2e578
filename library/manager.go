package library

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
)

// LibraryManager is a thin façade over the catalog, the checkout ledger and
// their store, keeping CLI code simple.
type LibraryManager struct {
	store   Store
	catalog *Catalog
	ledger  *Ledger
	logger  *slog.Logger
}

// NewLibraryManager wires a catalog and ledger to store. Nothing is loaded
// until LoadCatalog is called.
func NewLibraryManager(store Store, logger *slog.Logger) *LibraryManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &LibraryManager{
		store:   store,
		catalog: NewCatalog(store),
		ledger:  NewLedger(store, logger),
		logger:  logger,
	}
}

// Close closes the underlying store.
func (lm *LibraryManager) Close() error { return lm.store.Close() }

func (lm *LibraryManager) Catalog() *Catalog { return lm.catalog }
func (lm *LibraryManager) Ledger() *Ledger   { return lm.ledger }

// ------------------ Catalog helpers ------------------

// LoadCatalog reads the stored catalog. ErrNoFile means the catalog starts
// empty.
func (lm *LibraryManager) LoadCatalog() error {
	err := lm.catalog.Load()
	if err == nil {
		lm.logger.Info("catalog loaded", slog.Int("items", lm.catalog.Len()))
	}
	return err
}

func (lm *LibraryManager) AddItem(id int64, title, mediaType string, dailyLateFee decimal.Decimal) (*LibraryItem, error) {
	item := &LibraryItem{ID: id, Title: title, MediaType: mediaType, DailyLateFee: dailyLateFee}
	if err := lm.catalog.Add(item); err != nil {
		return nil, err
	}
	lm.logger.Info("item added", slog.Int64("item_id", id))
	return item, nil
}

func (lm *LibraryManager) ListItems() []*LibraryItem { return lm.catalog.Items() }

func (lm *LibraryManager) GetItem(id int64) (*LibraryItem, error) {
	item, ok := lm.catalog.FindByID(id)
	if !ok {
		return nil, fmt.Errorf("item %d: %w", id, ErrItemNotFound)
	}
	return item, nil
}

// ------------------ Circulation ------------------

func (lm *LibraryManager) CheckoutItem(id int64) (*CheckoutRecord, error) {
	item, err := lm.GetItem(id)
	if err != nil {
		return nil, err
	}
	rec, err := lm.ledger.Checkout(item)
	if err != nil {
		return nil, err
	}
	lm.logger.Info("item checked out", slog.Int64("item_id", id), slog.Int("loan_days", rec.LoanPeriodDays))
	return rec, nil
}

func (lm *LibraryManager) ReturnItem(id int64) error {
	if err := lm.ledger.Return(id); err != nil {
		return err
	}
	lm.logger.Info("item returned", slog.Int64("item_id", id))
	return nil
}

func (lm *LibraryManager) CheckedOut() []*CheckoutRecord { return lm.ledger.Records() }

// Receipt is a fee statement over every active checkout.
type Receipt struct {
	DaysLate int
	Records  []*CheckoutRecord
	Total    decimal.Decimal
}

// Receipt applies daysLate to every checkout and totals the fees.
func (lm *LibraryManager) Receipt(daysLate int) Receipt {
	lm.ledger.ApplyLateDays(daysLate)
	records := lm.ledger.Records()
	return Receipt{DaysLate: daysLate, Records: records, Total: TotalFees(records)}
}

// ------------------ Persistence ------------------

func (lm *LibraryManager) SaveCheckouts() error {
	if err := lm.ledger.Save(); err != nil {
		return err
	}
	lm.logger.Info("checkouts saved", slog.Int("records", lm.ledger.Len()))
	return nil
}

// LoadCheckouts replaces the active checkouts with the saved list.
// ErrNoFile means nothing was saved and the current list is kept.
func (lm *LibraryManager) LoadCheckouts() error {
	if err := lm.ledger.Load(lm.catalog); err != nil {
		return err
	}
	lm.logger.Info("checkouts loaded", slog.Int("records", lm.ledger.Len()))
	return nil
}
