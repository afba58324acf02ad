package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fjod/go_store/internal/domain"
)

// fieldCount is the exact number of pipe-separated fields per record:
// sku|name|price|department.
const fieldCount = 4

// LoadStats reports how a catalog load went.
type LoadStats struct {
	Loaded  int
	Skipped int
}

// Load reads pipe-delimited product records from r. The first line is a
// header and is skipped. Records with the wrong field count, an
// unparsable price, or a negative price are skipped with a diagnostic;
// loading continues.
func Load(r io.Reader, logger zerolog.Logger) (*Catalog, LoadStats, error) {
	c := New()
	var stats LoadStats

	scanner := bufio.NewScanner(r)
	header := true
	for scanner.Scan() {
		line := scanner.Text()
		if header {
			header = false
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "|")
		if len(fields) != fieldCount {
			stats.Skipped++
			logger.Warn().Str("line", line).Msg("skipping malformed catalog record")
			continue
		}

		price, err := decimal.NewFromString(strings.TrimSpace(fields[2]))
		if err != nil || price.IsNegative() {
			stats.Skipped++
			logger.Warn().Str("line", line).Msg("skipping catalog record with invalid price")
			continue
		}

		c.put(domain.Product{
			SKU:        fields[0],
			Name:       fields[1],
			Price:      price,
			Department: fields[3],
		})
		stats.Loaded++
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("failed to read catalog source: %w", err)
	}

	return c, stats, nil
}

// LoadFile loads the catalog from a file on disk.
func LoadFile(path string, logger zerolog.Logger) (*Catalog, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	return Load(f, logger)
}
