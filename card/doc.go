/*
Package card implements the EBT card-state engine: issuer identification
number (IIN) classification, input masking, and field validation.

The engine is UI-framework independent. A host application binds its own
input widgets to PANField, PINField or ExpirationField, forwards raw text on
every edit, and reads back the derived State for live feedback:

	pan := card.NewPANField()
	pan.SetText("5076801234123412")
	st := pan.State()   // IsValid, IsComplete, ...
	pan.USState()       // "ALABAMA"
	pan.MaskedText()    // "5076 8012 3412 3412"

A field's IsComplete always implies IsValid; mid-entry input is valid but
incomplete, so the host can defer error styling until the user stops typing.
*/
package card
