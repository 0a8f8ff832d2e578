package library

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Store persists the catalog and the checkout list. Implementations only
// move rows; the lookup and integrity rules live in Catalog and Ledger.
type Store interface {
	// LoadItems returns catalog items in stored order, or ErrNoFile when
	// nothing has been stored yet.
	LoadItems() ([]*LibraryItem, error)
	// AppendItem durably adds one item.
	AppendItem(item *LibraryItem) error
	// LoadCheckouts returns saved checkouts in stored order, or ErrNoFile
	// when the list was never saved.
	LoadCheckouts() ([]SavedCheckout, error)
	// SaveCheckouts replaces whatever was saved before.
	SaveCheckouts(checkouts []SavedCheckout) error
	Close() error
}

// FileStore keeps the catalog and the checkout list in two comma-separated
// text files.
type FileStore struct {
	catalogPath  string
	checkoutPath string
	logger       *slog.Logger
}

// NewFileStore returns a store backed by the given files. Neither file has
// to exist yet.
func NewFileStore(catalogPath, checkoutPath string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{catalogPath: catalogPath, checkoutPath: checkoutPath, logger: logger}
}

// Close is a no-op; files are opened per operation.
func (fst *FileStore) Close() error { return nil }

// ---------------------------------------------------------------------------
// Catalog file: id,title,mediaType,dailyLateFee
// ---------------------------------------------------------------------------

func (fst *FileStore) LoadItems() ([]*LibraryItem, error) {
	var items []*LibraryItem
	err := readLines(fst.catalogPath, func(n int, line string) {
		item, err := parseCatalogLine(line)
		switch {
		case errors.Is(err, errFieldCount):
			fst.logger.Debug("skipping catalog line", slog.Int("line", n), slog.String("reason", err.Error()))
		case err != nil:
			fst.logger.Warn("skipping catalog line", slog.Any("error", &ParseError{Line: n, Text: line, Err: err}))
		default:
			items = append(items, item)
		}
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// AppendItem writes one line to the end of the catalog file, creating it if
// needed.
func (fst *FileStore) AppendItem(item *LibraryItem) error {
	f, err := os.OpenFile(fst.catalogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open catalog: %w", err)
	}
	if _, err := f.WriteString(formatCatalogLine(item)); err != nil {
		f.Close()
		return fmt.Errorf("append catalog: %w", err)
	}
	return f.Close()
}

func parseCatalogLine(line string) (*LibraryItem, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 4 {
		return nil, errFieldCount
	}
	id, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse id: %w", err)
	}
	fee, err := decimal.NewFromString(strings.TrimSpace(parts[3]))
	if err != nil {
		return nil, fmt.Errorf("parse late fee: %w", err)
	}
	return &LibraryItem{ID: id, Title: parts[1], MediaType: parts[2], DailyLateFee: fee}, nil
}

func formatCatalogLine(item *LibraryItem) string {
	return fmt.Sprintf("%d,%s,%s,%s\n", item.ID, item.Title, item.MediaType, item.DailyLateFee.String())
}

// ---------------------------------------------------------------------------
// Checkout file: itemId,loanPeriodDays,daysLate
// ---------------------------------------------------------------------------

func (fst *FileStore) LoadCheckouts() ([]SavedCheckout, error) {
	var saved []SavedCheckout
	err := readLines(fst.checkoutPath, func(n int, line string) {
		sc, err := parseCheckoutLine(line)
		if err != nil {
			fst.logger.Warn("skipping checkout line", slog.Any("error", &ParseError{Line: n, Text: line, Err: err}))
			return
		}
		saved = append(saved, sc)
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// SaveCheckouts truncates the checkout file and writes every record.
func (fst *FileStore) SaveCheckouts(checkouts []SavedCheckout) error {
	f, err := os.Create(fst.checkoutPath)
	if err != nil {
		return fmt.Errorf("create checkout file: %w", err)
	}
	w := bufio.NewWriter(f)
	for _, c := range checkouts {
		fmt.Fprintf(w, "%d,%d,%d\n", c.ItemID, c.LoanPeriodDays, c.DaysLate)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write checkout file: %w", err)
	}
	return f.Close()
}

func parseCheckoutLine(line string) (SavedCheckout, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 3 {
		return SavedCheckout{}, errFieldCount
	}
	var nums [3]int64
	for i, p := range parts {
		v, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return SavedCheckout{}, err
		}
		nums[i] = v
	}
	return SavedCheckout{ItemID: nums[0], LoanPeriodDays: int(nums[1]), DaysLate: int(nums[2])}, nil
}

// readLines calls fn for every non-blank line of path with its 1-based line
// number. A missing file yields ErrNoFile.
func readLines(path string, fn func(n int, line string)) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNoFile
	}
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fn(n, line)
	}
	return sc.Err()
}
