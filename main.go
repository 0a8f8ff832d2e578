package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"library-checkout/config"
	"library-checkout/library"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// app carries what every command needs once flags and environment are
// resolved.
type app struct {
	cfg       config.Config
	logger    *slog.Logger
	mgr       *library.LibraryManager
	noCatalog bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading configuration: %v\n", err)
		os.Exit(1)
	}

	a := &app{cfg: cfg}
	err = newRootCmd(a).Execute()
	if a.mgr != nil {
		a.mgr.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "library",
		Short: "Track library item checkouts and late fees",
		Long: "Without a subcommand an interactive menu is started. Files default to\n" +
			"catalog.txt and myCheckouts.txt and can be changed with flags or LIBRARY_* variables.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd.InOrStdin(), cmd.OutOrStdout(), a.mgr, a.noCatalog)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfg.CatalogFile, "catalog", a.cfg.CatalogFile, "catalog file")
	pf.StringVar(&a.cfg.CheckoutFile, "checkouts", a.cfg.CheckoutFile, "saved checkout list file")
	pf.StringVar(&a.cfg.Store, "store", a.cfg.Store, "storage backend: file or sqlite")
	pf.StringVar(&a.cfg.DBFile, "db", a.cfg.DBFile, "SQLite database used by the sqlite store")
	pf.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "debug, info, warn or error")

	root.AddCommand(newCatalogCmd(a), newCheckoutCmd(a), newReturnCmd(a), newReceiptCmd(a))
	return root
}

// open builds the logger and store and loads the catalog.
func (a *app) open(logOut io.Writer) error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	a.logger = a.cfg.NewLogger(logOut).With(slog.String("session", uuid.NewString()))

	store, err := openStore(a.cfg, a.logger)
	if err != nil {
		return err
	}
	a.mgr = library.NewLibraryManager(store, a.logger)

	switch err := a.mgr.LoadCatalog(); {
	case errors.Is(err, library.ErrNoFile):
		a.noCatalog = true
		a.logger.Info("no catalog found, starting empty")
	case err != nil:
		return err
	}
	return nil
}

func openStore(cfg config.Config, logger *slog.Logger) (library.Store, error) {
	if cfg.Store == config.StoreSQLite {
		db, err := library.NewDatabase(cfg.DBFile)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		return db, nil
	}
	return library.NewFileStore(cfg.CatalogFile, cfg.CheckoutFile, logger), nil
}

func newCatalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List or extend the catalog",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print every catalog item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printCatalog(cmd.OutOrStdout(), a.mgr.ListItems())
			return nil
		},
	})

	var (
		id        int64
		title     string
		mediaType string
		fee       string
	)
	add := &cobra.Command{
		Use:   "add",
		Short: "Append an item to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dailyFee, err := decimal.NewFromString(strings.TrimSpace(fee))
			if err != nil {
				return fmt.Errorf("invalid late fee %q", fee)
			}
			item, err := a.mgr.AddItem(id, title, mediaType, dailyFee)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", item)
			return nil
		},
	}
	add.Flags().Int64Var(&id, "id", 0, "item id")
	add.Flags().StringVar(&title, "title", "", "item title")
	add.Flags().StringVar(&mediaType, "type", "Book", "media type (Book/DVD)")
	add.Flags().StringVar(&fee, "fee", "0", "daily late fee")
	_ = add.MarkFlagRequired("id")
	_ = add.MarkFlagRequired("title")
	cmd.AddCommand(add)

	return cmd
}

// loadSaved restores the saved checkout list; a missing list is fine.
func (a *app) loadSaved() error {
	if err := a.mgr.LoadCheckouts(); err != nil && !errors.Is(err, library.ErrNoFile) {
		return err
	}
	return nil
}

func newCheckoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "checkout ID",
		Short: "Check out an item and save the checkout list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.loadSaved(); err != nil {
				return err
			}
			rec, err := a.mgr.CheckoutItem(id)
			if err != nil {
				return err
			}
			if err := a.mgr.SaveCheckouts(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Checked out '%s' for %d days\n", rec.Item.Title, rec.LoanPeriodDays)
			return nil
		},
	}
}

func newReturnCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "return ID",
		Short: "Return an item and save the checkout list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.loadSaved(); err != nil {
				return err
			}
			if err := a.mgr.ReturnItem(id); err != nil {
				return err
			}
			if err := a.mgr.SaveCheckouts(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Item %d returned\n", id)
			return nil
		},
	}
}

func newReceiptCmd(a *app) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "receipt",
		Short: "Print late fees for the saved checkout list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.loadSaved(); err != nil {
				return err
			}
			printReceipt(cmd.OutOrStdout(), a.mgr.Receipt(days))
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "days late, applied to every item")
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid item ID: %s", s)
	}
	return id, nil
}
