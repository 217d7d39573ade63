package card

import "strings"

// MaskTemplate is a display pattern where '#' marks a position consumed from
// the raw input and every other rune is emitted literally. A template with no
// '#' at all degrades to literal-only emission; that is not an error.
type MaskTemplate string

// Mask templates used by the SDK's fields.
const (
	MaskPANUnset   MaskTemplate = "###################"
	MaskPAN16      MaskTemplate = "#### #### #### ####"
	MaskPAN18      MaskTemplate = "###### #### ##### ## #"
	MaskPAN19      MaskTemplate = "###### #### #### ### ##"
	MaskPANNoMatch MaskTemplate = "#### #### #### #### ###"
	MaskExpiration MaskTemplate = "##/##"
)

// PlaceholderCount returns the number of raw characters the template can
// hold. Invariant for field templates: placeholder count equals the field's
// expected raw-digit length.
func (t MaskTemplate) PlaceholderCount() int {
	return strings.Count(string(t), "#")
}

// ApplyMask walks the template left to right, consuming one raw rune per '#'
// and emitting literals in between. Emission stops as soon as the raw input
// is exhausted, so trailing literals never dangle.
func ApplyMask(t MaskTemplate, raw string) string {
	var b strings.Builder
	rawRunes := []rune(raw)
	i := 0
	for _, ch := range t {
		if i >= len(rawRunes) {
			break
		}
		if ch == '#' {
			b.WriteRune(rawRunes[i])
			i++
		} else {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// StripMask reverses ApplyMask: it walks template and masked text in
// lockstep, collecting the numeric characters aligned with '#' positions and
// skipping characters that align with literals.
func StripMask(t MaskTemplate, masked string) string {
	var b strings.Builder
	maskedRunes := []rune(masked)
	i := 0
	for _, ch := range t {
		if i >= len(maskedRunes) {
			break
		}
		if ch == '#' {
			for i < len(maskedRunes) {
				r := maskedRunes[i]
				i++
				if r >= '0' && r <= '9' {
					b.WriteRune(r)
					break
				}
			}
		} else if ch == maskedRunes[i] {
			i++
		}
	}
	return b.String()
}

// CursorAfterEdit recomputes the visible cursor offset after raw has been
// re-masked following a single-character edit at cursor. A deletion keeps the
// cursor in place; an insertion skips one extra position when the mask just
// put a literal under or ahead of the cursor, so repeated edits never
// desynchronize the visible cursor from the logical edit point.
func CursorAfterEdit(t MaskTemplate, raw string, cursor int, wasDelete bool) int {
	masked := ApplyMask(t, raw)
	atEnd := cursor-len(masked) >= 0

	if wasDelete && atEnd {
		return len(masked)
	}

	// A placeholder input probes whether masking one character further would
	// insert a literal.
	maskedWithNext := ApplyMask(t, raw+" ")

	if !atEnd && !wasDelete && isLiteralBefore(t, cursor) {
		cursor++
	}
	if atEnd && len(maskedWithNext) > len(masked)+1 {
		cursor++
	}
	if cursor > len(masked) {
		cursor = len(masked)
	}
	if cursor < 0 {
		cursor = 0
	}
	return cursor
}

func isLiteralBefore(t MaskTemplate, cursor int) bool {
	runes := []rune(t)
	return cursor > 0 && cursor-1 < len(runes) && runes[cursor-1] != '#'
}

// panMaskFor picks the display template for the digits typed so far.
func panMaskFor(digits string, matched *StateIIN) MaskTemplate {
	if len(digits) < 6 {
		return MaskPANUnset
	}
	if matched == nil {
		return MaskPANNoMatch
	}
	switch matched.PANLength {
	case 16:
		return MaskPAN16
	case 18:
		return MaskPAN18
	default:
		return MaskPAN19
	}
}
