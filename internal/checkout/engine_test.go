package checkout

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjod/go_store/internal/cart"
	"github.com/fjod/go_store/internal/catalog"
	"github.com/fjod/go_store/internal/domain"
)

type fakeStore struct {
	saved    []string
	savedAt  []time.Time
	failWith error
}

func (f *fakeStore) Save(rendered string, at time.Time) (string, error) {
	if f.failWith != nil {
		return "", f.failWith
	}
	f.saved = append(f.saved, rendered)
	f.savedAt = append(f.savedAt, at)
	return "Receipts/" + at.Format("200601021504") + ".txt", nil
}

type fakeJournal struct {
	recorded []domain.Receipt
	failWith error
}

func (f *fakeJournal) Record(_ context.Context, r domain.Receipt, _ string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.recorded = append(f.recorded, r)
	return nil
}

func testSession(t *testing.T) *cart.Session {
	t.Helper()
	src := "sku|name|price|department\n" +
		"SKU1|Widget|9.99|Home\n" +
		"SKU2|Gadget|5.00|Home\n"
	cat, _, err := catalog.Load(strings.NewReader(src), zerolog.Nop())
	require.NoError(t, err)
	return cart.NewSession(cat)
}

func testEngine(store *fakeStore, journal *fakeJournal) *Engine {
	e := NewEngine(store, journal, zerolog.Nop())
	e.clock = func() time.Time {
		return time.Date(2026, 8, 29, 14, 30, 5, 0, time.UTC)
	}
	return e
}

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestBegin_EmptyCartRefused(t *testing.T) {
	session := testSession(t)
	store := &fakeStore{}
	journal := &fakeJournal{}
	engine := testEngine(store, journal)

	_, err := engine.Begin(session)

	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.True(t, session.Cart.IsEmpty())
	assert.Empty(t, store.saved)
	assert.Empty(t, journal.recorded)
}

func TestSubmitPayment_ExactTenderSucceedsFirstAttempt(t *testing.T) {
	session := testSession(t)
	_, err := session.AddProduct("SKU1")
	require.NoError(t, err)

	engine := testEngine(&fakeStore{}, &fakeJournal{})
	attempt, err := engine.Begin(session)
	require.NoError(t, err)

	outcome, err := engine.SubmitPayment(context.Background(), attempt, money("9.99"))
	require.NoError(t, err)

	assert.True(t, outcome.Accepted)
	assert.True(t, outcome.Receipt.Change.IsZero())
	assert.Equal(t, StatusCartCleared, attempt.Status())
}

func TestSubmitPayment_InsufficientThenSufficient(t *testing.T) {
	session := testSession(t)
	_, err := session.AddProduct("SKU1")
	require.NoError(t, err)
	_, err = session.AddProduct("SKU1")
	require.NoError(t, err)

	store := &fakeStore{}
	engine := testEngine(store, &fakeJournal{})
	attempt, err := engine.Begin(session)
	require.NoError(t, err)

	outcome, err := engine.SubmitPayment(context.Background(), attempt, money("10.00"))
	require.NoError(t, err)
	assert.False(t, outcome.Accepted)
	// the still-outstanding total is reported, not the delta
	assert.True(t, outcome.Outstanding.Equal(money("19.98")))
	assert.Equal(t, StatusAwaitingPayment, attempt.Status())
	assert.False(t, session.Cart.IsEmpty())

	outcome, err = engine.SubmitPayment(context.Background(), attempt, money("20.00"))
	require.NoError(t, err)
	assert.True(t, outcome.Accepted)
	assert.True(t, outcome.Receipt.Paid.Equal(money("20.00")))
	assert.True(t, outcome.Receipt.Change.Equal(money("0.02")))
	require.Len(t, store.saved, 1)
	assert.Contains(t, store.saved[0], "Paid:  $20.00")
}

func TestSubmitPayment_RoundTripReceiptContract(t *testing.T) {
	session := testSession(t)
	for i := 0; i < 2; i++ {
		_, err := session.AddProduct("SKU1")
		require.NoError(t, err)
	}

	store := &fakeStore{}
	journal := &fakeJournal{}
	engine := testEngine(store, journal)
	attempt, err := engine.Begin(session)
	require.NoError(t, err)
	assert.True(t, attempt.Total().Equal(money("19.98")))

	outcome, err := engine.SubmitPayment(context.Background(), attempt, money("20.00"))
	require.NoError(t, err)

	assert.Contains(t, outcome.Rendered, "Total: $19.98")
	assert.Contains(t, outcome.Rendered, "Paid:  $20.00")
	assert.Contains(t, outcome.Rendered, "Change:$0.02")
	assert.Equal(t, "Receipts/202608291430.txt", outcome.ReceiptPath)
	require.Len(t, journal.recorded, 1)
	assert.True(t, journal.recorded[0].Total.Equal(money("19.98")))
}

func TestSubmitPayment_CartClearedEvenWhenPersistenceFails(t *testing.T) {
	session := testSession(t)
	_, err := session.AddProduct("SKU2")
	require.NoError(t, err)

	store := &fakeStore{failWith: errors.New("disk full")}
	journal := &fakeJournal{failWith: errors.New("db locked")}
	engine := testEngine(store, journal)
	attempt, err := engine.Begin(session)
	require.NoError(t, err)

	outcome, err := engine.SubmitPayment(context.Background(), attempt, money("5.00"))
	require.NoError(t, err)

	assert.True(t, outcome.Accepted)
	assert.Len(t, outcome.Warnings, 2)
	assert.Empty(t, outcome.ReceiptPath)
	assert.True(t, session.Cart.IsEmpty())
	assert.Equal(t, StatusCartCleared, attempt.Status())
}

func TestSubmitPayment_JournalSurvivesFileStoreFailure(t *testing.T) {
	session := testSession(t)
	_, err := session.AddProduct("SKU2")
	require.NoError(t, err)

	journal := &fakeJournal{}
	engine := testEngine(&fakeStore{failWith: errors.New("disk full")}, journal)
	attempt, err := engine.Begin(session)
	require.NoError(t, err)

	outcome, err := engine.SubmitPayment(context.Background(), attempt, money("10.00"))
	require.NoError(t, err)

	assert.Len(t, outcome.Warnings, 1)
	require.Len(t, journal.recorded, 1)
	assert.True(t, journal.recorded[0].Paid.Equal(money("10.00")))
}

func TestBegin_SnapshotIsolatedFromLaterCartMutation(t *testing.T) {
	session := testSession(t)
	_, err := session.AddProduct("SKU1")
	require.NoError(t, err)

	engine := testEngine(&fakeStore{}, &fakeJournal{})
	attempt, err := engine.Begin(session)
	require.NoError(t, err)

	_, err = session.AddProduct("SKU2")
	require.NoError(t, err)

	assert.True(t, attempt.Total().Equal(money("9.99")))
	require.Len(t, attempt.Lines(), 1)
}

func TestSubmitPayment_FinishedAttemptRejected(t *testing.T) {
	session := testSession(t)
	_, err := session.AddProduct("SKU1")
	require.NoError(t, err)

	engine := testEngine(&fakeStore{}, &fakeJournal{})
	attempt, err := engine.Begin(session)
	require.NoError(t, err)

	_, err = engine.SubmitPayment(context.Background(), attempt, money("10.00"))
	require.NoError(t, err)

	_, err = engine.SubmitPayment(context.Background(), attempt, money("10.00"))
	assert.ErrorIs(t, err, ErrAttemptFinished)
}

func TestSubmitPayment_NegativeTenderIsInsufficient(t *testing.T) {
	session := testSession(t)
	_, err := session.AddProduct("SKU2")
	require.NoError(t, err)

	engine := testEngine(&fakeStore{}, &fakeJournal{})
	attempt, err := engine.Begin(session)
	require.NoError(t, err)

	outcome, err := engine.SubmitPayment(context.Background(), attempt, money("-3.00"))
	require.NoError(t, err)
	assert.False(t, outcome.Accepted)
	assert.True(t, outcome.Outstanding.Equal(money("5.00")))
}
