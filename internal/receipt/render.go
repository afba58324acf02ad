package receipt

import (
	"fmt"
	"strings"

	"github.com/fjod/go_store/internal/domain"
)

// dateLayout is the human-readable timestamp printed on the receipt.
const dateLayout = "2006-01-02 15:04:05"

// FormatLine renders one cart line in the fixed column layout used on
// screen and on receipts: name, quantity, line total.
func FormatLine(l domain.CartLine) string {
	return fmt.Sprintf("%-30s x%-3d $%-10s", l.Product.Name, l.Quantity, l.LineTotal().StringFixed(2))
}

// Render produces the receipt text. The layout is a compatibility
// contract; amounts are rounded to exactly two decimals.
func Render(r domain.Receipt) string {
	b := &strings.Builder{}
	fmt.Fprintln(b, "=== Sales Receipt ===")
	fmt.Fprintf(b, "Date: %s\n", r.CreatedAt.Format(dateLayout))
	fmt.Fprintln(b)
	fmt.Fprintln(b, "Items:")
	for _, line := range r.Lines {
		fmt.Fprintln(b, FormatLine(line))
	}
	fmt.Fprintln(b)
	fmt.Fprintf(b, "Total: $%s\n", r.Total.StringFixed(2))
	fmt.Fprintf(b, "Paid:  $%s\n", r.Paid.StringFixed(2))
	fmt.Fprintf(b, "Change:$%s\n", r.Change.StringFixed(2))
	return b.String()
}
