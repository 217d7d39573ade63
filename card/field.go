package card

import (
	"strings"

	"forage/model"
)

// State is the observable state of an input field. It is owned exclusively
// by the field holding it and mutated on every character of input.
type State struct {
	RawDigits        string
	IsEmpty          bool
	IsValid          bool
	IsComplete       bool
	IsFirstResponder bool
	// Err is the first failing validation rule, nil while valid.
	Err error
}

const pinLength = 4

// PINField tracks a 4-digit EBT PIN. The raw digits stay inside the field;
// the vault collector reads them through PlainText at submit time and they
// are never logged or sent to the processor directly.
type PINField struct {
	state     State
	validator FieldValidator
}

func NewPINField() *PINField {
	f := &PINField{validator: NewFieldValidator(pinLength, Numeric())}
	f.state = State{IsEmpty: true, IsValid: true}
	return f
}

// SetText replaces the field content with the digits of text, capped at the
// PIN length, and revalidates.
func (f *PINField) SetText(text string) State {
	digits := keepDigits(text)
	if len(digits) > pinLength {
		digits = digits[:pinLength]
	}
	err := f.validator.Validate(digits)
	f.state.RawDigits = digits
	f.state.IsEmpty = digits == ""
	f.state.IsValid = err == nil
	f.state.IsComplete = f.validator.Complete(digits)
	f.state.Err = err
	return f.state
}

func (f *PINField) State() State { return f.state }

// PlainText exposes the raw PIN to the vault collector.
func (f *PINField) PlainText() string { return f.state.RawDigits }

func (f *PINField) Focus() { f.state.IsFirstResponder = true }
func (f *PINField) Blur()  { f.state.IsFirstResponder = false }

func (f *PINField) Clear() State {
	focused := f.state.IsFirstResponder
	f.state = State{IsEmpty: true, IsValid: true, IsFirstResponder: focused}
	return f.state
}

// Test card prefixes accepted outside production. The 4444/5555 cards fail
// later at PIN entry for capture and balance respectively; 9999 and 654321
// cards pass every check. Integrations use them to exercise error paths.
var testCardPrefixes = []string{
	"44444444444444",
	"55555555555555",
	"9999",
	"654321",
}

const (
	testCardMinLength = 16
	testCardMaxLength = 19
)

func isTestCard(digits string) bool {
	for _, prefix := range testCardPrefixes {
		if strings.HasPrefix(digits, prefix) {
			return true
		}
	}
	return false
}

// PANField tracks an EBT card number as it is typed: it trims input to the
// issuer's expected length, derives the issuing US state, and maintains the
// masked display text plus cursor position.
type PANField struct {
	state    State
	env      model.Environment
	template MaskTemplate
	masked   string
	cursor   int
	usState  string
}

func NewPANField() *PANField {
	return NewPANFieldInEnvironment(model.EnvSandbox)
}

// NewPANFieldInEnvironment builds a PAN field bound to a processor
// environment. Outside production the well-known test card numbers bypass
// issuer validation and are complete anywhere from 16 to 19 digits.
func NewPANFieldInEnvironment(env model.Environment) *PANField {
	return &PANField{
		state:    State{IsEmpty: true, IsValid: true},
		env:      env,
		template: MaskPANUnset,
	}
}

// SetText replaces the field content, treating the edit as an append at the
// end of the text.
func (f *PANField) SetText(text string) State {
	return f.Edit(text, len(text), false)
}

// Edit replaces the field content following a single-character edit at
// cursor. wasDelete distinguishes a deletion from an insertion for cursor
// placement.
func (f *PANField) Edit(text string, cursor int, wasDelete bool) State {
	digits := keepDigits(text)
	matched := LookupIIN(digits)
	testCard := f.env != model.EnvProd && isTestCard(digits)

	ceiling := noMatchCeiling
	switch {
	case matched != nil:
		ceiling = matched.PANLength
	case testCard:
		ceiling = testCardMaxLength
	}
	if len(digits) > ceiling {
		digits = digits[:ceiling]
	}

	f.validate(digits, matched, testCard)
	f.template = panMaskFor(digits, matched)
	f.masked = ApplyMask(f.template, digits)
	f.cursor = CursorAfterEdit(f.template, digits, cursor, wasDelete)
	return f.state
}

// validate mirrors the live-typing semantics: fewer than 6 digits is valid
// but incomplete, a matched issuer is valid and complete at its expected
// length, and an unmatched 6-digit prefix is invalid. Test cards skip issuer
// validation entirely outside production.
func (f *PANField) validate(digits string, matched *StateIIN, testCard bool) {
	f.state.RawDigits = digits
	f.state.IsEmpty = digits == ""
	f.state.Err = nil

	switch {
	case testCard:
		f.state.IsValid = true
		f.state.IsComplete = len(digits) >= testCardMinLength && len(digits) <= testCardMaxLength
		f.usState = ""
	case len(digits) < 6:
		f.state.IsValid = true
		f.state.IsComplete = false
		f.usState = ""
	case matched != nil:
		f.state.IsValid = true
		f.state.IsComplete = len(digits) == matched.PANLength
		f.usState = matched.State
	default:
		f.state.IsValid = false
		f.state.IsComplete = false
		f.state.Err = ErrUnknownIssuer
		f.usState = ""
	}
}

func (f *PANField) State() State { return f.state }

// Classification reclassifies the current digits against the issuer table.
func (f *PANField) Classification() Classification { return Classify(f.state.RawDigits) }

// USState returns the issuing state derived from the IIN, "" when unknown.
func (f *PANField) USState() string { return f.usState }

// MaskedText returns the display text under the active mask template.
func (f *PANField) MaskedText() string { return f.masked }

// Cursor returns the display cursor offset after the last edit.
func (f *PANField) Cursor() int { return f.cursor }

func (f *PANField) Focus() { f.state.IsFirstResponder = true }
func (f *PANField) Blur()  { f.state.IsFirstResponder = false }

func (f *PANField) Clear() State {
	focused := f.state.IsFirstResponder
	*f = PANField{
		state:    State{IsEmpty: true, IsValid: true, IsFirstResponder: focused},
		env:      f.env,
		template: MaskPANUnset,
	}
	return f.state
}

const expirationLength = 4

// ExpirationField tracks a card expiration date entered as MMYY and
// displayed as MM/YY.
type ExpirationField struct {
	state     State
	validator FieldValidator
	masked    string
	cursor    int
}

func NewExpirationField() *ExpirationField {
	return &ExpirationField{
		state:     State{IsEmpty: true, IsValid: true},
		validator: NewFieldValidator(expirationLength, Numeric(), ExpirationMonth(), NotExpired()),
	}
}

// SetText replaces the field content, treating the edit as an append.
func (f *ExpirationField) SetText(text string) State {
	return f.Edit(text, len(text), false)
}

// Edit replaces the field content following a single-character edit.
func (f *ExpirationField) Edit(text string, cursor int, wasDelete bool) State {
	digits := StripMask(MaskExpiration, text)
	if len(digits) > expirationLength {
		digits = digits[:expirationLength]
	}
	err := f.validator.Validate(digits)
	f.state.RawDigits = digits
	f.state.IsEmpty = digits == ""
	f.state.IsValid = err == nil
	f.state.IsComplete = f.validator.Complete(digits)
	f.state.Err = err
	f.masked = ApplyMask(MaskExpiration, digits)
	f.cursor = CursorAfterEdit(MaskExpiration, digits, cursor, wasDelete)
	return f.state
}

func (f *ExpirationField) State() State { return f.state }

// MaskedText returns the MM/YY display text.
func (f *ExpirationField) MaskedText() string { return f.masked }

// Cursor returns the display cursor offset after the last edit.
func (f *ExpirationField) Cursor() int { return f.cursor }

// Month and Year return the parsed expiration parts; both are 0 until the
// field is complete.
func (f *ExpirationField) Month() int {
	if !f.state.IsComplete {
		return 0
	}
	return int(f.state.RawDigits[0]-'0')*10 + int(f.state.RawDigits[1]-'0')
}

func (f *ExpirationField) Year() int {
	if !f.state.IsComplete {
		return 0
	}
	return 2000 + int(f.state.RawDigits[2]-'0')*10 + int(f.state.RawDigits[3]-'0')
}

func (f *ExpirationField) Focus() { f.state.IsFirstResponder = true }
func (f *ExpirationField) Blur()  { f.state.IsFirstResponder = false }

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
