package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fjod/go_store/internal/cart"
	"github.com/fjod/go_store/internal/catalog"
	"github.com/fjod/go_store/internal/checkout"
	"github.com/fjod/go_store/internal/journal"
	"github.com/fjod/go_store/internal/receipt"
)

const recentSalesLimit = 10

// SalesViewer supplies the recent-sales screen.
type SalesViewer interface {
	RecentSales(ctx context.Context, limit int) ([]journal.SaleSummary, error)
}

// Menu is the interactive console surface: a numbered home screen over
// line input. All blocking reads live here; the checkout engine only
// sees sanitized decimal tenders through SubmitPayment.
type Menu struct {
	in      *bufio.Scanner
	out     io.Writer
	session *cart.Session
	engine  *checkout.Engine
	sales   SalesViewer
	logger  zerolog.Logger
}

func New(in io.Reader, out io.Writer, session *cart.Session, engine *checkout.Engine, sales SalesViewer, logger zerolog.Logger) *Menu {
	return &Menu{
		in:      bufio.NewScanner(in),
		out:     out,
		session: session,
		engine:  engine,
		sales:   sales,
		logger:  logger,
	}
}

// Run loops over the home screen until the user exits or input ends.
func (m *Menu) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(m.out, "\n=== Online Store ===")
		fmt.Fprintln(m.out, "1. Display Products")
		fmt.Fprintln(m.out, "2. View Cart")
		fmt.Fprintln(m.out, "3. Checkout")
		fmt.Fprintln(m.out, "4. Recent Sales")
		fmt.Fprintln(m.out, "5. Exit")
		fmt.Fprintln(m.out, "Choose an option: ")

		choice, ok := m.readLine()
		if !ok {
			return m.in.Err()
		}

		switch choice {
		case "1":
			m.displayProducts()
		case "2":
			m.displayCart()
		case "3":
			m.checkout(ctx)
		case "4":
			m.recentSales(ctx)
		case "5":
			fmt.Fprintln(m.out, "Thanks for visiting!")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid option. Try again.")
		}
	}
}

func (m *Menu) readLine() (string, bool) {
	if !m.in.Scan() {
		return "", false
	}
	return m.in.Text(), true
}

func (m *Menu) displayProducts() {
	fmt.Fprintln(m.out, "\nAvailable Products:")
	fmt.Fprintf(m.out, "%-10s %-30s %-10s %-20s\n", "SKU", "Name", "Price", "Department")
	fmt.Fprintln(m.out, "-------------------------------------------------------------------------------")
	for _, p := range m.session.Catalog.Products() {
		fmt.Fprintf(m.out, "%-10s %-30s $%-10s %-20s\n", p.SKU, p.Name, p.Price.StringFixed(2), p.Department)
	}

	fmt.Fprintln(m.out, "\nEnter SKU to add to cart or press Enter to return:")
	sku, ok := m.readLine()
	if !ok {
		return
	}
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return
	}

	p, err := m.session.AddProduct(sku)
	if errors.Is(err, catalog.ErrProductNotFound) {
		fmt.Fprintln(m.out, "Invalid SKU.")
		return
	}
	if err != nil {
		m.logger.Error().Err(err).Str("sku", sku).Msg("add to cart failed")
		return
	}
	fmt.Fprintln(m.out, p.Name+" added to cart.")
}

func (m *Menu) displayCart() {
	fmt.Fprintln(m.out, "\nYour Cart:")
	if m.session.Cart.IsEmpty() {
		fmt.Fprintln(m.out, "Cart is empty.")
		return
	}
	for _, line := range m.session.Cart.Lines() {
		fmt.Fprintln(m.out, receipt.FormatLine(line))
	}
	fmt.Fprintf(m.out, "Total: $%s\n", m.session.Cart.Total().StringFixed(2))
}

func (m *Menu) checkout(ctx context.Context) {
	attempt, err := m.engine.Begin(m.session)
	if errors.Is(err, checkout.ErrEmptyCart) {
		fmt.Fprintln(m.out, "Your cart is empty. Add items first.")
		return
	}
	if err != nil {
		m.logger.Error().Err(err).Msg("checkout could not start")
		fmt.Fprintln(m.out, "Checkout failed. Returning to home screen.")
		return
	}

	fmt.Fprintln(m.out, "\n==== Checkout ====")
	fmt.Fprintln(m.out, "Items:")
	for _, line := range attempt.Lines() {
		fmt.Fprintln(m.out, receipt.FormatLine(line))
	}
	fmt.Fprintf(m.out, "Total: $%s\n", attempt.Total().StringFixed(2))

	fmt.Fprint(m.out, "Confirm checkout? (yes/no): ")
	confirm, ok := m.readLine()
	if !ok || !strings.EqualFold(strings.TrimSpace(confirm), "yes") {
		fmt.Fprintln(m.out, "Checkout cancelled.")
		return
	}

	fmt.Fprint(m.out, "Enter cash amount: $")
	for {
		paid, ok := m.readTender()
		if !ok {
			fmt.Fprintln(m.out, "\nCheckout aborted: input closed.")
			return
		}

		outcome, err := m.engine.SubmitPayment(ctx, attempt, paid)
		if err != nil {
			m.logger.Error().Err(err).Msg("payment submission failed")
			fmt.Fprintln(m.out, "Checkout failed. Returning to home screen.")
			return
		}
		if !outcome.Accepted {
			fmt.Fprintf(m.out, "Insufficient amount. Please enter at least $%s: ", outcome.Outstanding.StringFixed(2))
			continue
		}

		fmt.Fprintln(m.out, "\n"+outcome.Rendered)
		for _, w := range outcome.Warnings {
			fmt.Fprintln(m.out, "Warning: "+w)
		}
		if outcome.ReceiptPath != "" {
			fmt.Fprintln(m.out, "Receipt saved to: "+outcome.ReceiptPath)
		}
		fmt.Fprintln(m.out, "\nThank you for your purchase! Returning to home screen...")
		return
	}
}

// readTender keeps reading until the line parses as a non-negative
// decimal amount. Sufficiency is the engine's call, not ours.
func (m *Menu) readTender() (decimal.Decimal, bool) {
	for {
		line, ok := m.readLine()
		if !ok {
			return decimal.Zero, false
		}
		paid, err := decimal.NewFromString(strings.TrimSpace(line))
		if err != nil || paid.IsNegative() {
			fmt.Fprint(m.out, "Invalid amount. Enter cash amount: $")
			continue
		}
		return paid, true
	}
}

func (m *Menu) recentSales(ctx context.Context) {
	fmt.Fprintln(m.out, "\nRecent Sales:")
	sales, err := m.sales.RecentSales(ctx, recentSalesLimit)
	if err != nil {
		m.logger.Error().Err(err).Msg("recent sales query failed")
		fmt.Fprintln(m.out, "Could not read the sales journal.")
		return
	}
	if len(sales) == 0 {
		fmt.Fprintln(m.out, "No sales recorded yet.")
		return
	}
	fmt.Fprintf(m.out, "%-36s %-20s %-10s %s\n", "Sale", "Date", "Total", "Items")
	for _, s := range sales {
		fmt.Fprintf(m.out, "%-36s %-20s $%-9s %d\n", s.ID, s.CreatedAt.Format("2006-01-02 15:04:05"), s.Total.StringFixed(2), s.Items)
	}
}
