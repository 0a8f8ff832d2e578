// Command import_catalog copies the flat-file catalog and saved checkout
// list into a fresh SQLite database for use with LIBRARY_STORE=sqlite.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"library-checkout/config"
	"library-checkout/library"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading configuration: %v\n", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger(os.Stderr)

	// Start from an empty database so repeated imports do not duplicate items.
	fmt.Println("Cleaning up existing database files...")
	for _, file := range []string{cfg.DBFile, cfg.DBFile + "-shm", cfg.DBFile + "-wal"} {
		if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
			fmt.Printf("Warning: Could not remove %s: %v\n", file, err)
		}
	}

	db, err := library.NewDatabase(cfg.DBFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	src := library.NewFileStore(cfg.CatalogFile, cfg.CheckoutFile, logger)

	fmt.Printf("Importing catalog from %s...\n", cfg.CatalogFile)
	items, err := src.LoadItems()
	if errors.Is(err, library.ErrNoFile) {
		fmt.Fprintf(os.Stderr, "Catalog file %s not found\n", cfg.CatalogFile)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading catalog: %v\n", err)
		os.Exit(1)
	}

	successCount := 0
	errorCount := 0
	for _, item := range items {
		if err := db.AppendItem(item); err != nil {
			fmt.Printf("ERROR - item %d: %v\n", item.ID, err)
			errorCount++
			continue
		}
		successCount++
	}

	checkouts, err := src.LoadCheckouts()
	switch {
	case errors.Is(err, library.ErrNoFile):
		fmt.Printf("No checkout list at %s, skipping\n", cfg.CheckoutFile)
	case err != nil:
		fmt.Printf("Error reading checkout list: %v\n", err)
		errorCount++
	default:
		if err := db.SaveCheckouts(checkouts); err != nil {
			fmt.Printf("Error saving checkout list: %v\n", err)
			errorCount++
		} else {
			fmt.Printf("Imported %d checkout(s)\n", len(checkouts))
		}
	}

	fmt.Printf("\nImport complete!\n")
	fmt.Printf("Successfully imported: %d items\n", successCount)
	fmt.Printf("Errors: %d\n", errorCount)

	if successCount > 0 {
		fmt.Println("\nImported items:")
		fmt.Printf("%-5s %-50s %-10s\n", "ID", "Title", "Type")
		fmt.Println(strings.Repeat("-", 67))
		for _, item := range items {
			fmt.Printf("%-5d %-50s %-10s\n", item.ID, truncateString(item.Title, 50), truncateString(item.MediaType, 10))
		}
	}
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
