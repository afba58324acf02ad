package checkout

// Status tracks a single checkout attempt from payment request to the
// cart being cleared.
type Status string

const (
	StatusAwaitingPayment Status = "AWAITING_PAYMENT"
	StatusSettled         Status = "SETTLED"
	StatusPersisted       Status = "PERSISTED"
	StatusCartCleared     Status = "CART_CLEARED"
)

func (s Status) IsTerminal() bool {
	return s == StatusCartCleared
}

// String representation (for logging)
func (s Status) String() string {
	return string(s)
}

var transitions = map[Status]Status{
	StatusAwaitingPayment: StatusSettled,
	StatusSettled:         StatusPersisted,
	StatusPersisted:       StatusCartCleared,
}

// CanTransitionTo reports whether from may advance to to. Staying in
// AWAITING_PAYMENT is always allowed: an insufficient tender is a loop
// continuation, not an error.
func CanTransitionTo(from, to Status) bool {
	if from == StatusAwaitingPayment && to == StatusAwaitingPayment {
		return true
	}
	return transitions[from] == to
}
