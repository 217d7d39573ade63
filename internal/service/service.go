// Package service orchestrates the multi-step payment operations: fetch the
// encryption key, submit through the vault, interpret the async message,
// poll until terminal, then fetch the final resource.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"forage/card"
	"forage/internal/api"
	"forage/model"
	"forage/telemetry"
	"forage/vault"
)

// Operation names for metrics tagging.
const (
	OpTokenize = "tokenize"
	OpBalance  = "balance"
	OpCapture  = "capture"
)

// PinField is what the orchestrator needs from a PIN input: the completeness
// precondition and, through the collector, the raw value. card.PINField
// satisfies it.
type PinField interface {
	vault.PinSource
	State() card.State
}

// Service runs payment operations against one processor environment.
type Service struct {
	env      model.Environment
	provider *api.Provider
	logger   *slog.Logger
	metrics  telemetry.MetricsCollector
	poll     PollConfig
}

func New(env model.Environment, provider *api.Provider, logger *slog.Logger, metrics telemetry.MetricsCollector, poll PollConfig) *Service {
	if metrics == nil {
		metrics = telemetry.NoopMetricsCollector{}
	}
	return &Service{
		env:      env,
		provider: provider,
		logger:   telemetry.NewLogger(loggerHandler(logger), "ForageService"),
		metrics:  metrics,
		poll:     poll,
	}
}

// TokenizeCard exchanges a PAN for a reusable payment method. This is the
// one call that carries the PAN to the processor directly; every later
// operation references the returned vault token.
func (s *Service) TokenizeCard(ctx context.Context, auth api.Auth, pan, customerID string, reusable bool) (*model.PaymentMethod, error) {
	var pm model.PaymentMethod
	ep := api.Tokenize(s.env, auth, pan, "ebt", customerID, reusable)
	if err := s.provider.Execute(ctx, ep, &pm); err != nil {
		s.recordOutcome(OpTokenize, err)
		return nil, err
	}
	s.recordOutcome(OpTokenize, nil)
	return &pm, nil
}

// CheckBalance submits the PIN through the vault against the payment method
// and returns the settled SNAP and cash balances.
func (s *Service) CheckBalance(ctx context.Context, auth api.Auth, paymentMethodRef string, collector vault.Collector, pin PinField) (*model.Balance, error) {
	if !pin.State().IsComplete {
		return nil, model.ErrIncompletePin
	}

	key, err := s.fetchEncryptionKey(ctx, auth)
	if err != nil {
		s.recordOutcome(OpBalance, err)
		return nil, err
	}

	var pm model.PaymentMethod
	if err := s.provider.Execute(ctx, api.GetPaymentMethod(s.env, auth, paymentMethodRef), &pm); err != nil {
		s.recordOutcome(OpBalance, err)
		return nil, err
	}

	path := fmt.Sprintf("/api/payment_methods/%s%s", paymentMethodRef, vault.ActionBalanceCheck.EndpointSuffix())
	msg, err := s.submitAndPoll(ctx, auth, collector, *key, path, vault.ActionBalanceCheck, pm.Card.Token)
	if err != nil {
		s.recordOutcome(OpBalance, err)
		return nil, err
	}
	s.logger.Info("balance message settled", slog.String("content_id", msg.ContentID))

	var settled model.PaymentMethod
	if err := s.provider.Execute(ctx, api.GetPaymentMethod(s.env, auth, paymentMethodRef), &settled); err != nil {
		s.recordOutcome(OpBalance, err)
		return nil, err
	}
	if settled.Balance == nil {
		err := model.NewDecodeError(0)
		s.recordOutcome(OpBalance, err)
		return nil, err
	}
	s.recordOutcome(OpBalance, nil)
	return settled.Balance, nil
}

// CapturePayment submits the PIN through the vault against the payment and
// returns the payment in its settled state.
func (s *Service) CapturePayment(ctx context.Context, auth api.Auth, paymentRef string, collector vault.Collector, pin PinField) (*model.Payment, error) {
	if !pin.State().IsComplete {
		return nil, model.ErrIncompletePin
	}

	key, err := s.fetchEncryptionKey(ctx, auth)
	if err != nil {
		s.recordOutcome(OpCapture, err)
		return nil, err
	}

	var payment model.Payment
	if err := s.provider.Execute(ctx, api.GetPayment(s.env, auth, paymentRef), &payment); err != nil {
		s.recordOutcome(OpCapture, err)
		return nil, err
	}
	var pm model.PaymentMethod
	if err := s.provider.Execute(ctx, api.GetPaymentMethod(s.env, auth, payment.PaymentMethodRef), &pm); err != nil {
		s.recordOutcome(OpCapture, err)
		return nil, err
	}

	path := fmt.Sprintf("/api/payments/%s%s", paymentRef, vault.ActionCapturePayment.EndpointSuffix())
	msg, err := s.submitAndPoll(ctx, auth, collector, *key, path, vault.ActionCapturePayment, pm.Card.Token)
	if err != nil {
		s.recordOutcome(OpCapture, err)
		return nil, err
	}
	s.logger.Info("capture message settled", slog.String("content_id", msg.ContentID))

	var settled model.Payment
	if err := s.provider.Execute(ctx, api.GetPayment(s.env, auth, paymentRef), &settled); err != nil {
		s.recordOutcome(OpCapture, err)
		return nil, err
	}
	s.recordOutcome(OpCapture, nil)
	return &settled, nil
}

func (s *Service) fetchEncryptionKey(ctx context.Context, auth api.Auth) (*model.EncryptionKey, error) {
	var key model.EncryptionKey
	if err := s.provider.Execute(ctx, api.EncryptionKey(s.env, auth), &key); err != nil {
		return nil, err
	}
	return &key, nil
}

// submitAndPoll runs one vault submission through to a terminal message.
func (s *Service) submitAndPoll(ctx context.Context, auth api.Auth, collector vault.Collector, key model.EncryptionKey, path string, action vault.Action, cardToken string) (*model.Message, error) {
	collector.SetCustomHeaders(api.VaultHeaders(auth), key)

	resp := collector.CollectAndSubmit(ctx, path, action, map[string]string{
		vault.TokenKey: cardToken,
	})
	if resp.Err != nil {
		return nil, resp.Err
	}

	var msg model.Message
	if err := api.Decode(resp.Body, resp.StatusCode, &msg); err != nil {
		return nil, err
	}
	if msg.Failed {
		return nil, msg.Err()
	}
	if !msg.Pending() {
		return &msg, nil
	}
	return s.pollMessage(ctx, auth, msg.ContentID)
}

func (s *Service) recordOutcome(operation string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	s.metrics.RecordOperationResult(operation, outcome)
}

func loggerHandler(logger *slog.Logger) slog.Handler {
	if logger == nil {
		return nil
	}
	return logger.Handler()
}
