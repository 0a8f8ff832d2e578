package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"library-checkout/library"

	"github.com/shopspring/decimal"
	"golang.org/x/term"
)

// shell is the interactive menu. Every action reads its fields line by line
// and reports domain errors without leaving the loop.
type shell struct {
	sc    *bufio.Scanner
	out   io.Writer
	mgr   *library.LibraryManager
	clear bool
}

func runShell(in io.Reader, out io.Writer, mgr *library.LibraryManager, noCatalog bool) error {
	s := &shell{
		sc:    bufio.NewScanner(in),
		out:   out,
		mgr:   mgr,
		clear: isTerminal(out),
	}

	if noCatalog {
		fmt.Fprintln(out, "Catalog file not found. Creating empty catalog.")
	}

	for {
		s.clearScreen()
		fmt.Fprintln(out, "===== LIBRARY CHECKOUT SYSTEM =====")
		fmt.Fprintln(out, "1. Add a library item")
		fmt.Fprintln(out, "2. View available items")
		fmt.Fprintln(out, "3. Check out an item")
		fmt.Fprintln(out, "4. Return an item")
		fmt.Fprintln(out, "5. View my checkout receipt")
		fmt.Fprintln(out, "6. Save my checkout list")
		fmt.Fprintln(out, "7. Load my previous checkout list")
		fmt.Fprintln(out, "8. Exit")
		fmt.Fprint(out, "\nChoose an option: ")

		if !s.sc.Scan() {
			break
		}

		switch strings.TrimSpace(s.sc.Text()) {
		case "1":
			s.handleAddItem()
		case "2":
			s.handleViewCatalog()
		case "3":
			s.handleCheckout()
		case "4":
			s.handleReturn()
		case "5":
			s.handleReceipt()
		case "6":
			s.handleSave()
		case "7":
			s.handleLoad()
		case "8":
			fmt.Fprintln(out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(out, "Invalid choice.")
		}
		s.pause()
	}
	return s.sc.Err()
}

// prompt prints label and returns the next trimmed line. ok is false at end
// of input.
func (s *shell) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.sc.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.sc.Text()), true
}

func (s *shell) promptID(label string) (int64, bool) {
	text, ok := s.prompt(label)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		fmt.Fprintf(s.out, "Invalid item ID: %s\n", text)
		return 0, false
	}
	return id, true
}

func (s *shell) handleAddItem() {
	fmt.Fprintln(s.out, "=== Add New Library Item ===")
	id, ok := s.promptID("Enter ID: ")
	if !ok {
		return
	}
	title, ok := s.prompt("Enter Title: ")
	if !ok {
		return
	}
	mediaType, ok := s.prompt("Enter Type (Book/DVD): ")
	if !ok {
		return
	}
	feeText, ok := s.prompt("Enter Daily Late Fee: ")
	if !ok {
		return
	}
	fee, err := decimal.NewFromString(feeText)
	if err != nil {
		fmt.Fprintf(s.out, "Invalid late fee: %s\n", feeText)
		return
	}

	if _, err := s.mgr.AddItem(id, title, mediaType, fee); err != nil {
		fmt.Fprintf(s.out, "Error adding item: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "Item added and saved!")
}

func (s *shell) handleViewCatalog() {
	fmt.Fprintln(s.out, "=== Library Catalog ===")
	printCatalog(s.out, s.mgr.ListItems())
}

func (s *shell) handleCheckout() {
	fmt.Fprintln(s.out, "=== Check Out an Item ===")
	id, ok := s.promptID("Enter the ID of the item: ")
	if !ok {
		return
	}

	_, err := s.mgr.CheckoutItem(id)
	switch {
	case errors.Is(err, library.ErrItemNotFound):
		fmt.Fprintln(s.out, "Item does not exist!")
	case errors.Is(err, library.ErrAlreadyCheckedOut):
		fmt.Fprintln(s.out, "Item is already checked out!")
	case err != nil:
		fmt.Fprintf(s.out, "Error checking out item: %v\n", err)
	default:
		fmt.Fprintln(s.out, "Item checked out successfully!")
	}
}

func (s *shell) handleReturn() {
	fmt.Fprintln(s.out, "=== Return Item ===")
	id, ok := s.promptID("Enter the ID of the item to return: ")
	if !ok {
		return
	}

	if err := s.mgr.ReturnItem(id); err != nil {
		if errors.Is(err, library.ErrNotCheckedOut) {
			fmt.Fprintln(s.out, "That item is not checked out.")
		} else {
			fmt.Fprintf(s.out, "Error returning item: %v\n", err)
		}
		return
	}
	fmt.Fprintln(s.out, "Item returned successfully.")
}

func (s *shell) handleReceipt() {
	fmt.Fprintln(s.out, "=== My Receipt ===")
	if len(s.mgr.CheckedOut()) == 0 {
		fmt.Fprintln(s.out, "You have no checked-out items.")
		return
	}

	text, ok := s.prompt("Enter number of days late (apply to all items): ")
	if !ok {
		return
	}
	days, err := strconv.Atoi(text)
	if err != nil {
		fmt.Fprintf(s.out, "Invalid number of days: %s\n", text)
		return
	}
	printReceipt(s.out, s.mgr.Receipt(days))
}

func (s *shell) handleSave() {
	if err := s.mgr.SaveCheckouts(); err != nil {
		fmt.Fprintf(s.out, "Error saving checkout list: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, "Checkout list saved.")
}

func (s *shell) handleLoad() {
	err := s.mgr.LoadCheckouts()
	switch {
	case errors.Is(err, library.ErrNoFile):
		fmt.Fprintln(s.out, "No checkout file found.")
	case err != nil:
		fmt.Fprintf(s.out, "Error loading checkout list: %v\n", err)
	default:
		fmt.Fprintln(s.out, "Checkout list loaded!")
	}
}

// pause waits for Enter before the screen is cleared again.
func (s *shell) pause() {
	if !s.clear {
		return
	}
	fmt.Fprint(s.out, "\nPress Enter to continue...")
	s.sc.Scan()
}

func (s *shell) clearScreen() {
	if s.clear {
		fmt.Fprint(s.out, "\033[2J\033[H")
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func printCatalog(w io.Writer, items []*library.LibraryItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No items in catalog.")
		return
	}
	fmt.Fprintf(w, "%-5s %-30s %-10s %s\n", "ID", "Title", "Type", "Late Fee/Day")
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for _, it := range items {
		fmt.Fprintf(w, "%-5d %-30s %-10s $%s\n",
			it.ID, truncateString(it.Title, 30), truncateString(it.MediaType, 10), library.FormatAmount(it.DailyLateFee))
	}
}

func printReceipt(w io.Writer, r library.Receipt) {
	if len(r.Records) == 0 {
		fmt.Fprintln(w, "You have no checked-out items.")
		return
	}
	for _, rec := range r.Records {
		fmt.Fprintln(w, rec.String())
	}
	fmt.Fprintf(w, "\nTotal Estimated Fees: $%s\n", library.FormatAmount(r.Total))
}

func truncateString(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}
	return s[:maxLength-3] + "..."
}
