package card

import "github.com/jellydator/validation"

// Validation errors carry stable codes so hosts can branch without parsing
// messages.
var (
	ErrNotNumeric    = validation.NewError("card_not_numeric", "must contain only digits")
	ErrBadMonth      = validation.NewError("card_invalid_month", "expiration month must be between 01 and 12")
	ErrExpired       = validation.NewError("card_expired", "expiration date is in the past")
	ErrUnknownIssuer = validation.NewError("card_unknown_issuer", "card number prefix does not match a known issuer")
)
