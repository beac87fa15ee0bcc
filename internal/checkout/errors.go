package checkout

import (
	"errors"
	"fmt"
)

var ErrEmptyDraft = errors.New("draft has no lines, nothing to order")

// ValidationError marks input the customer has to fix before an order can be
// created. No side effect has happened when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is a customer-input problem rather than a
// transport or storage failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve) || errors.Is(err, ErrEmptyDraft)
}
