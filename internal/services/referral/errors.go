package referral

import "errors"

// ErrCodeGenerationExhausted is returned when no unique code could be found
// within the retry budget.
var ErrCodeGenerationExhausted = errors.New("code generation retry budget exhausted")
