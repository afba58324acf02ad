package checkout

import "errors"

var (
	ErrEmptyCart           = errors.New("cart is empty, nothing to checkout")
	ErrAttemptFinished     = errors.New("checkout attempt already finished")
	IllegalTransitionError = errors.New("illegal transition of checkout status")
)
