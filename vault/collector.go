package vault

import (
	"context"
	"net/http"

	"forage/model"
)

// Type identifies the active vault backend. Used purely for metrics tagging.
type Type string

const (
	TypeVGS         Type = "vgs"
	TypeBasisTheory Type = "basis_theory"
)

// Action names the operation performed against the vault proxy.
type Action string

const (
	ActionBalanceCheck   Action = "balance"
	ActionCapturePayment Action = "capture"
	ActionCollectPin     Action = "collect_pin"
)

// EndpointSuffix returns the proxy path suffix for the action.
func (a Action) EndpointSuffix() string {
	switch a {
	case ActionBalanceCheck:
		return "/balance/"
	case ActionCapturePayment:
		return "/capture/"
	default:
		return "/collect_pin/"
	}
}

const (
	// tokenDelimiter separates the VGS and Basis Theory halves of a dual
	// vault token.
	tokenDelimiter = ","
	// TokenKey is the extra-field name carrying the card's vault token.
	TokenKey = "card_number_token"
)

// Response is the normalized envelope produced by any collector. Either Body
// (success path) or Err is meaningfully populated, never both.
type Response struct {
	StatusCode int
	Body       []byte
	Err        error
}

// PinSource supplies the sensitive field value at submit time. card.PINField
// satisfies it.
type PinSource interface {
	PlainText() string
}

// Doer abstracts the HTTP transport for testing.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Collector submits sensitive field data plus non-sensitive extras to a
// vault's secure collection endpoint. A collector instance is owned
// exclusively by one field's lifetime and is never shared across fields.
type Collector interface {
	// SetCustomHeaders attaches the per-operation headers (idempotency key,
	// merchant id, authorization bearer) and the backend's encryption-key
	// header derived from key.
	SetCustomHeaders(headers map[string]string, key model.EncryptionKey)

	// CollectAndSubmit sends the held field value and extraFields to the
	// proxy at path. It never blocks past the transport timeout and never
	// leaks raw transport errors: failures surface inside the Response.
	CollectAndSubmit(ctx context.Context, path string, action Action, extraFields map[string]string) *Response

	// PaymentMethodToken selects this backend's half of a dual vault token.
	PaymentMethodToken(token string) (string, error)

	// Type identifies the backend for metrics tagging only.
	Type() Type
}
