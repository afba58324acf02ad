package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fjod/go_store/internal/cart"
	"github.com/fjod/go_store/internal/domain"
	"github.com/fjod/go_store/internal/receipt"
)

// Journal records a completed checkout in durable storage, independent
// of the receipt text file.
type Journal interface {
	Record(ctx context.Context, r domain.Receipt, rendered string) error
}

// Engine settles a non-empty cart against a cash tender and produces a
// receipt. It never blocks waiting for input: payment arrives through
// SubmitPayment, and an insufficient tender leaves the attempt in
// AWAITING_PAYMENT for the caller to resubmit.
type Engine struct {
	store   receipt.Store
	journal Journal
	logger  zerolog.Logger
	clock   func() time.Time
}

func NewEngine(store receipt.Store, journal Journal, logger zerolog.Logger) *Engine {
	return &Engine{
		store:   store,
		journal: journal,
		logger:  logger,
		clock:   time.Now,
	}
}

// Attempt is one checkout in progress. Lines and total are snapshotted
// at Begin time; later cart mutations do not affect the attempt.
type Attempt struct {
	session *cart.Session
	lines   []domain.CartLine
	total   decimal.Decimal
	status  Status
}

func (a *Attempt) Status() Status {
	return a.status
}

func (a *Attempt) Lines() []domain.CartLine {
	return a.lines
}

func (a *Attempt) Total() decimal.Decimal {
	return a.total
}

// Outstanding is the amount still due. The whole total is reported, not
// the shortfall delta.
func (a *Attempt) Outstanding() decimal.Decimal {
	return a.total
}

// PaymentOutcome is the result of submitting a tender. When the tender
// is insufficient, Accepted is false and Outstanding carries the amount
// still due; nothing else is set and no side effects happened. When
// accepted, Receipt and Rendered are set, ReceiptPath points at the
// persisted file if the write succeeded, and Warnings carries any
// non-fatal persistence failures.
type PaymentOutcome struct {
	Accepted    bool
	Outstanding decimal.Decimal
	Receipt     *domain.Receipt
	Rendered    string
	ReceiptPath string
	Warnings    []string
}

// Begin starts a checkout for the session's cart. An empty cart is
// refused with ErrEmptyCart and no side effects.
func (e *Engine) Begin(session *cart.Session) (*Attempt, error) {
	if session.Cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	return &Attempt{
		session: session,
		lines:   session.Cart.Lines(),
		total:   session.Cart.Total(),
		status:  StatusAwaitingPayment,
	}, nil
}

// SubmitPayment evaluates a cash tender against the attempt's total.
// Any paid below total is insufficient, regardless of where the value
// came from. On acceptance the engine stamps the clock, renders and
// persists the receipt, and clears the cart; persistence failures are
// reported as warnings and never roll the checkout back.
func (e *Engine) SubmitPayment(ctx context.Context, a *Attempt, paid decimal.Decimal) (*PaymentOutcome, error) {
	if a.status.IsTerminal() {
		return nil, ErrAttemptFinished
	}

	if paid.LessThan(a.total) {
		e.logger.Info().
			Str("status", a.status.String()).
			Str("outstanding", a.total.StringFixed(2)).
			Msg("insufficient payment, awaiting new tender")
		return &PaymentOutcome{Accepted: false, Outstanding: a.Outstanding()}, nil
	}

	if !CanTransitionTo(a.status, StatusSettled) {
		return nil, IllegalTransitionError
	}
	a.status = StatusSettled

	now := e.clock()
	rec := domain.Receipt{
		ID:        uuid.New(),
		CreatedAt: now,
		Lines:     a.lines,
		Total:     a.total,
		Paid:      paid,
		Change:    paid.Sub(a.total),
	}
	rendered := receipt.Render(rec)

	outcome := &PaymentOutcome{
		Accepted: true,
		Receipt:  &rec,
		Rendered: rendered,
	}

	path, err := e.store.Save(rendered, now)
	if err != nil {
		e.logger.Warn().Err(err).Msg("receipt persistence failed")
		outcome.Warnings = append(outcome.Warnings, fmt.Sprintf("failed to save receipt: %v", err))
	} else {
		outcome.ReceiptPath = path
	}

	if e.journal != nil {
		if err := e.journal.Record(ctx, rec, rendered); err != nil {
			e.logger.Warn().Err(err).Msg("sales journal write failed")
			outcome.Warnings = append(outcome.Warnings, fmt.Sprintf("failed to record sale: %v", err))
		}
	}
	a.status = StatusPersisted

	// The cart is cleared even when persistence failed; the checkout
	// itself has completed.
	a.session.Cart.Clear()
	a.status = StatusCartCleared

	return outcome, nil
}
