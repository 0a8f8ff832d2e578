package library

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

// Database is a Store backed by SQLite. It keeps the same semantics as the
// flat files: items are append-only and may repeat ids, and saving the
// checkout list replaces it wholesale.
type Database struct {
	db *sql.DB

	addItemStmt     *sql.Stmt
	addCheckoutStmt *sql.Stmt
}

// NewDatabase opens (or creates) the SQLite database at dbPath, applies schema
// migrations, and prepares common statements.
func NewDatabase(dbPath string) (*Database, error) {
	// Ensure directory exists so first-run succeeds.
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := applyMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	database := &Database{db: db}
	if err := database.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return database, nil
}

// Close releases prepared statements and closes the DB.
func (d *Database) Close() error {
	if d.addItemStmt != nil {
		d.addItemStmt.Close()
	}
	if d.addCheckoutStmt != nil {
		d.addCheckoutStmt.Close()
	}
	return d.db.Close()
}

// ---------------------------------------------------------------------------
// Schema migration
// ---------------------------------------------------------------------------

const schemaVersion = 1

func applyMigrations(db *sql.DB) error {
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);`); err != nil {
		return err
	}

	var current int
	_ = db.QueryRow(`SELECT value FROM meta WHERE key='schema_version';`).Scan(&current)
	if current >= schemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// seq preserves insertion order; item_id is deliberately not unique.
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS items (
            seq INTEGER PRIMARY KEY AUTOINCREMENT,
            item_id INTEGER NOT NULL,
            title TEXT NOT NULL,
            media_type TEXT NOT NULL,
            daily_late_fee TEXT NOT NULL
        );`,
		`CREATE TABLE IF NOT EXISTS checkouts (
            position INTEGER PRIMARY KEY,
            item_id INTEGER NOT NULL,
            loan_period_days INTEGER NOT NULL,
            days_late INTEGER NOT NULL DEFAULT 0
        );`,
		`INSERT INTO meta(key,value) VALUES('schema_version',?)
            ON CONFLICT(key) DO UPDATE SET value=excluded.value;`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt, schemaVersion); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}

	return tx.Commit()
}

// ---------------------------------------------------------------------------
// Prepared statements
// ---------------------------------------------------------------------------

func (d *Database) prepareStatements() error {
	var err error
	if d.addItemStmt, err = d.db.Prepare(`INSERT INTO items(item_id,title,media_type,daily_late_fee) VALUES(?,?,?,?)`); err != nil {
		return err
	}
	if d.addCheckoutStmt, err = d.db.Prepare(`INSERT INTO checkouts(position,item_id,loan_period_days,days_late) VALUES(?,?,?,?)`); err != nil {
		return err
	}
	return nil
}

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

// LoadItems returns ErrNoFile while the items table is empty.
func (d *Database) LoadItems() ([]*LibraryItem, error) {
	rows, err := d.db.Query(`SELECT item_id,title,media_type,daily_late_fee FROM items ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*LibraryItem
	for rows.Next() {
		var (
			it  LibraryItem
			fee string
		)
		if err := rows.Scan(&it.ID, &it.Title, &it.MediaType, &fee); err != nil {
			return nil, err
		}
		if it.DailyLateFee, err = decimal.NewFromString(fee); err != nil {
			return nil, fmt.Errorf("item %d: parse late fee: %w", it.ID, err)
		}
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoFile
	}
	return items, nil
}

func (d *Database) AppendItem(item *LibraryItem) error {
	_, err := d.addItemStmt.Exec(item.ID, item.Title, item.MediaType, item.DailyLateFee.String())
	return err
}

// ---------------------------------------------------------------------------
// Checkouts
// ---------------------------------------------------------------------------

// LoadCheckouts returns ErrNoFile until SaveCheckouts has run once.
func (d *Database) LoadCheckouts() ([]SavedCheckout, error) {
	var saved string
	err := d.db.QueryRow(`SELECT value FROM meta WHERE key='checkouts_saved'`).Scan(&saved)
	if err == sql.ErrNoRows {
		return nil, ErrNoFile
	}
	if err != nil {
		return nil, err
	}

	rows, err := d.db.Query(`SELECT item_id,loan_period_days,days_late FROM checkouts ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SavedCheckout
	for rows.Next() {
		var c SavedCheckout
		if err := rows.Scan(&c.ItemID, &c.LoanPeriodDays, &c.DaysLate); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SaveCheckouts replaces the stored list in one transaction.
func (d *Database) SaveCheckouts(checkouts []SavedCheckout) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM checkouts`); err != nil {
		return err
	}
	stmt := tx.Stmt(d.addCheckoutStmt)
	for i, c := range checkouts {
		if _, err := stmt.Exec(i, c.ItemID, c.LoanPeriodDays, c.DaysLate); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(`INSERT INTO meta(key,value) VALUES('checkouts_saved','1')
        ON CONFLICT(key) DO UPDATE SET value=excluded.value;`); err != nil {
		return err
	}
	return tx.Commit()
}
