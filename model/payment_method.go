package model

// Balance holds the SNAP and EBT Cash balances of a card, as dollar-string
// amounts.
type Balance struct {
	Snap    string `json:"snap"`
	Cash    string `json:"non_snap"`
	Updated string `json:"updated"`
}

// Card is the tokenized EBT card attached to a payment method. Token carries
// the vault token pair; the raw PAN never appears here.
type Card struct {
	Last4   string `json:"last_4"`
	Created string `json:"created"`
	State   string `json:"state,omitempty"`
	Token   string `json:"token"`
}

// PaymentMethod represents a tokenized EBT card held by the processor.
type PaymentMethod struct {
	Ref        string   `json:"ref"`
	Type       string   `json:"type"`
	Balance    *Balance `json:"balance,omitempty"`
	Card       Card     `json:"card"`
	CustomerID string   `json:"customer_id,omitempty"`
	Reusable   bool     `json:"reusable,omitempty"`
}

// EncryptionKey is the short-lived key alias pair fetched fresh per
// operation. It is never cached beyond a single orchestration call.
type EncryptionKey struct {
	Alias   string `json:"alias"`
	BTAlias string `json:"bt_alias"`
}
