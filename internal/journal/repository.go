package journal

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/fjod/go_store/internal/domain"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// createdAtLayout is how sale timestamps are stored in SQLite.
const createdAtLayout = time.RFC3339

// Repository is the durable sales journal: one row per completed
// checkout plus its lines. It survives the receipt text file being
// lost or unwritable.
type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// a single connection keeps :memory: databases coherent
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) RunMigrations() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not read embedded migrations: %w", err)
	}

	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

// Record inserts the receipt and its lines in one transaction.
func (r *Repository) Record(ctx context.Context, rec domain.Receipt, rendered string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sales (id, created_at, total, paid, change_due, receipt_text)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		rec.ID.String(),
		rec.CreatedAt.UTC().Format(createdAtLayout),
		rec.Total.StringFixed(2),
		rec.Paid.StringFixed(2),
		rec.Change.StringFixed(2),
		rendered,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sale: %w", err)
	}

	for _, line := range rec.Lines {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO sale_lines (sale_id, sku, name, quantity, line_total)
			VALUES (?, ?, ?, ?, ?)
		`,
			rec.ID.String(),
			line.Product.SKU,
			line.Product.Name,
			line.Quantity,
			line.LineTotal().StringFixed(2),
		)
		if err != nil {
			return fmt.Errorf("failed to insert sale line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sale: %w", err)
	}
	return nil
}

// SaleSummary is one completed checkout as shown in the recent-sales
// view.
type SaleSummary struct {
	ID        string
	CreatedAt time.Time
	Total     decimal.Decimal
	Items     int
}

// RecentSales returns the latest completed checkouts, newest first.
func (r *Repository) RecentSales(ctx context.Context, limit int) ([]SaleSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.created_at, s.total, COUNT(l.sale_id)
		FROM sales s
		LEFT JOIN sale_lines l ON l.sale_id = s.id
		GROUP BY s.id, s.created_at, s.total
		ORDER BY s.created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	var sales []SaleSummary
	for rows.Next() {
		var (
			s         SaleSummary
			createdAt string
			total     string
		)
		if err := rows.Scan(&s.ID, &createdAt, &total, &s.Items); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		s.CreatedAt, err = time.Parse(createdAtLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse sale timestamp: %w", err)
		}
		s.Total, err = decimal.NewFromString(total)
		if err != nil {
			return nil, fmt.Errorf("failed to parse sale total: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sales: %w", err)
	}

	return sales, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
