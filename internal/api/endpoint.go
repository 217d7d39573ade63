// Package api is the thin HTTP layer between the SDK and the processor:
// endpoint descriptors, request building, JSON decoding, and the uniform
// error-translation contract.
package api

import (
	"fmt"

	"forage/model"

	"github.com/google/uuid"
)

// API versions pinned per endpoint family.
const (
	apiVersion        = "2023-03-31"
	messageAPIVersion = "2023-02-01"
)

// Endpoint describes one processor request.
type Endpoint struct {
	Scheme  string
	Host    string
	Path    string
	Method  string
	Body    interface{}
	Headers map[string]string
}

// TokenizeBody is the JSON body of a tokenize request. The PAN travels here
// because tokenization is the one call allowed to carry it: its entire
// purpose is to exchange the PAN for a vault token.
type TokenizeBody struct {
	Type       string            `json:"type"`
	Reusable   bool              `json:"reusable"`
	Card       map[string]string `json:"card"`
	CustomerID string            `json:"customer_id"`
}

// Auth carries the per-call authentication material.
type Auth struct {
	BearerToken string
	MerchantID  string
}

func baseHeaders(auth Auth, version string) map[string]string {
	return map[string]string{
		"Merchant-Account": auth.MerchantID,
		"IDEMPOTENCY-KEY":  uuid.NewString(),
		"Authorization":    "Bearer " + auth.BearerToken,
		"API-VERSION":      version,
		"accept":           "application/json",
	}
}

// VaultHeaders builds the headers a vault proxy call forwards to the
// processor. Each call mints a fresh idempotency key, so retrying a failed
// submit is a new attempt rather than a replay of the old one.
func VaultHeaders(auth Auth) map[string]string {
	return baseHeaders(auth, apiVersion)
}

// Tokenize builds POST /api/payment_methods/.
func Tokenize(env model.Environment, auth Auth, pan, cardType, customerID string, reusable bool) Endpoint {
	return Endpoint{
		Scheme: "https",
		Host:   env.Hostname(),
		Path:   "/api/payment_methods/",
		Method: "POST",
		Body: TokenizeBody{
			Type:       cardType,
			Reusable:   reusable,
			Card:       map[string]string{"number": pan},
			CustomerID: customerID,
		},
		Headers: baseHeaders(auth, apiVersion),
	}
}

// EncryptionKey builds GET /iso_server/encryption_alias/.
func EncryptionKey(env model.Environment, auth Auth) Endpoint {
	return Endpoint{
		Scheme:  "https",
		Host:    env.Hostname(),
		Path:    "/iso_server/encryption_alias/",
		Method:  "GET",
		Headers: baseHeaders(auth, apiVersion),
	}
}

// Message builds GET /api/message/{contentID}/ for poll iterations.
func Message(env model.Environment, auth Auth, contentID string) Endpoint {
	return Endpoint{
		Scheme:  "https",
		Host:    env.Hostname(),
		Path:    fmt.Sprintf("/api/message/%s/", contentID),
		Method:  "GET",
		Headers: baseHeaders(auth, messageAPIVersion),
	}
}

// GetPaymentMethod builds GET /api/payment_methods/{ref}/.
func GetPaymentMethod(env model.Environment, auth Auth, ref string) Endpoint {
	return Endpoint{
		Scheme:  "https",
		Host:    env.Hostname(),
		Path:    fmt.Sprintf("/api/payment_methods/%s/", ref),
		Method:  "GET",
		Headers: baseHeaders(auth, apiVersion),
	}
}

// GetPayment builds GET /api/payments/{ref}/.
func GetPayment(env model.Environment, auth Auth, ref string) Endpoint {
	return Endpoint{
		Scheme:  "https",
		Host:    env.Hostname(),
		Path:    fmt.Sprintf("/api/payments/%s/", ref),
		Method:  "GET",
		Headers: baseHeaders(auth, apiVersion),
	}
}
