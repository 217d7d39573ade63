package forage

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"forage/card"
	"forage/internal/api"
	"forage/internal/service"
	"forage/model"
	"forage/telemetry"
	"forage/vault"
)

// Config is everything the SDK needs to talk to the processor. MerchantID
// and SessionToken are required; the rest defaults sensibly.
type Config struct {
	MerchantID   string
	SessionToken string

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
	// Logger receives structured SDK logs. Nil discards them.
	Logger *slog.Logger
	// Metrics receives vault response measurements and operation outcomes.
	Metrics telemetry.MetricsCollector
	// Flags selects the vault backend for new fields. Nil routes to VGS.
	Flags vault.FlagProvider
	// Poll bounds the async message polling loop. Zero values take the
	// defaults of one second and ten attempts.
	Poll service.PollConfig
}

// state is the immutable snapshot swapped atomically on credential updates,
// so an in-flight operation sees one consistent set of credentials.
type state struct {
	cfg Config
	env model.Environment
	svc *service.Service
}

// SDK is one configured connection to the payment processor.
type SDK struct {
	state atomic.Pointer[state]
}

// New builds an SDK from cfg. The environment is derived from the session
// token prefix; unrecognized prefixes fall back to sandbox.
func New(cfg Config) (*SDK, error) {
	if cfg.MerchantID == "" {
		return nil, &model.ForageError{Code: model.CodeIllegalState, Message: "merchant id is required"}
	}
	if cfg.SessionToken == "" {
		return nil, &model.ForageError{Code: model.CodeIllegalState, Message: "session token is required"}
	}
	s := &SDK{}
	s.state.Store(buildState(cfg))
	return s, nil
}

func buildState(cfg Config) *state {
	env := model.EnvironmentFromToken(cfg.SessionToken)
	logger := cfg.Logger
	warnIfExpiring(logger, cfg.SessionToken)

	var client api.Doer
	if cfg.HTTPClient != nil {
		client = cfg.HTTPClient
	}
	provider := api.NewProvider(client, logger)
	return &state{
		cfg: cfg,
		env: env,
		svc: service.New(env, provider, logger, cfg.Metrics, cfg.Poll),
	}
}

func warnIfExpiring(logger *slog.Logger, token string) {
	if logger == nil {
		return
	}
	exp, ok := api.SessionTokenExpiry(token)
	if !ok {
		return
	}
	if remaining := time.Until(exp); remaining < time.Minute {
		logger.Warn("session token is expired or about to expire",
			slog.Time("expires_at", exp))
	}
}

// UpdateSessionToken swaps in a fresh session token. The environment is
// re-derived, so a token for a different environment redirects subsequent
// calls there.
func (s *SDK) UpdateSessionToken(token string) {
	cfg := s.snapshot().cfg
	cfg.SessionToken = token
	s.state.Store(buildState(cfg))
}

// UpdateMerchantID swaps in a different merchant account.
func (s *SDK) UpdateMerchantID(merchantID string) {
	cfg := s.snapshot().cfg
	cfg.MerchantID = merchantID
	s.state.Store(buildState(cfg))
}

// Environment returns the processor environment currently in effect.
func (s *SDK) Environment() model.Environment {
	return s.snapshot().env
}

func (s *SDK) snapshot() *state {
	st := s.state.Load()
	if st == nil {
		panic(&model.ForageError{Code: model.CodeIllegalState, Message: "SDK used before Setup"})
	}
	return st
}

func (st *state) auth() api.Auth {
	return api.Auth{BearerToken: st.cfg.SessionToken, MerchantID: st.cfg.MerchantID}
}

// NewPANField builds a PAN input bound to the SDK's current environment, so
// test card numbers are accepted everywhere except production.
func (s *SDK) NewPANField() *card.PANField {
	return card.NewPANFieldInEnvironment(s.snapshot().env)
}

// TokenizeRequest tokenizes the card number held by PAN.
type TokenizeRequest struct {
	PAN        *card.PANField
	CustomerID string
	Reusable   bool
}

// TokenizeCard exchanges the entered card number for a payment method whose
// vault token stands in for the PAN everywhere else.
func (s *SDK) TokenizeCard(ctx context.Context, req TokenizeRequest) (*model.PaymentMethod, error) {
	st := s.snapshot()
	return st.svc.TokenizeCard(ctx, st.auth(), req.PAN.State().RawDigits, req.CustomerID, req.Reusable)
}

// BalanceRequest checks the balance of a tokenized card using the PIN held
// by PIN.
type BalanceRequest struct {
	PaymentMethodRef string
	PIN              *card.PINField
}

// CheckBalance submits the PIN through the vault and returns the card's
// settled SNAP and cash balances. An incomplete PIN fails locally before any
// network traffic.
func (s *SDK) CheckBalance(ctx context.Context, req BalanceRequest) (*model.Balance, error) {
	st := s.snapshot()
	collector := st.newCollector(req.PIN)
	return st.svc.CheckBalance(ctx, st.auth(), req.PaymentMethodRef, collector, req.PIN)
}

// CaptureRequest captures a previously created payment using the PIN held
// by PIN.
type CaptureRequest struct {
	PaymentRef string
	PIN        *card.PINField
}

// CapturePayment confirms the payment with the cardholder's PIN and returns
// the payment in its settled state.
func (s *SDK) CapturePayment(ctx context.Context, req CaptureRequest) (*model.Payment, error) {
	st := s.snapshot()
	collector := st.newCollector(req.PIN)
	return st.svc.CapturePayment(ctx, st.auth(), req.PaymentRef, collector, req.PIN)
}

func (st *state) newCollector(pin vault.PinSource) vault.Collector {
	opts := vault.Options{
		Logger:  st.cfg.Logger,
		Metrics: st.cfg.Metrics,
		Flags:   st.cfg.Flags,
	}
	if st.cfg.HTTPClient != nil {
		opts.Client = st.cfg.HTTPClient
	}
	return vault.NewCollector(st.env, pin, opts)
}

// shared is the process-wide instance configured by Setup, matching the
// usual mobile SDK shape where one merchant session is active at a time.
var shared atomic.Pointer[SDK]

// Setup configures the shared SDK instance. It may be called again to
// reconfigure from scratch.
func Setup(cfg Config) error {
	sdk, err := New(cfg)
	if err != nil {
		return err
	}
	shared.Store(sdk)
	return nil
}

// Shared returns the instance configured by Setup. Calling it earlier is a
// programming error and panics with the illegal-state code.
func Shared() *SDK {
	sdk := shared.Load()
	if sdk == nil {
		panic(&model.ForageError{Code: model.CodeIllegalState, Message: "forage.Setup must be called before using the SDK"})
	}
	return sdk
}
