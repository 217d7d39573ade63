package card

import (
	"regexp"
	"strconv"
	"time"

	"github.com/jellydator/validation"
)

var digitsRe = regexp.MustCompile(`^[0-9]*$`)

// Numeric rejects any non-digit character.
func Numeric() validation.Rule {
	return validation.Match(digitsRe).ErrorObject(ErrNotNumeric)
}

// ExpirationMonth checks the first two digits of an MMYY string once both
// are present.
func ExpirationMonth() validation.Rule {
	return validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if len(s) < 2 {
			return nil
		}
		mm, err := strconv.Atoi(s[:2])
		if err != nil || mm < 1 || mm > 12 {
			return ErrBadMonth
		}
		return nil
	})
}

// NotExpired checks a full MMYY string against the current month. A card
// expires at the end of its expiration month.
func NotExpired() validation.Rule {
	return validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if len(s) < 4 {
			return nil
		}
		mm, err1 := strconv.Atoi(s[:2])
		yy, err2 := strconv.Atoi(s[2:4])
		if err1 != nil || err2 != nil {
			return ErrNotNumeric
		}
		now := time.Now()
		year := 2000 + yy
		if year < now.Year() || (year == now.Year() && mm < int(now.Month())) {
			return ErrExpired
		}
		return nil
	})
}

// FieldValidator holds an ordered list of validation rules for one field.
// The first failing rule short-circuits. Length-based completeness is
// deliberately not a rule: mid-entry input stays valid-but-incomplete so the
// host can give live feedback without false invalid flashes.
type FieldValidator struct {
	targetLength int
	rules        []validation.Rule
}

// NewFieldValidator builds a validator for a field whose complete raw input
// is targetLength characters.
func NewFieldValidator(targetLength int, rules ...validation.Rule) FieldValidator {
	return FieldValidator{targetLength: targetLength, rules: rules}
}

// Validate runs the rules in order and returns the first failure, or nil.
func (v FieldValidator) Validate(text string) error {
	return validation.Validate(text, v.rules...)
}

// Complete reports whether text is valid and has reached the target length.
func (v FieldValidator) Complete(text string) bool {
	return v.Validate(text) == nil && len(text) == v.targetLength
}

// TargetLength returns the complete raw input length for the field.
func (v FieldValidator) TargetLength() int {
	return v.targetLength
}
