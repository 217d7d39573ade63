package vault

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"forage/model"
	"forage/telemetry"
)

const basisTheoryProxyURL = "https://api.basistheory.com/proxy"

// BasisTheoryConfig carries the per-environment Basis Theory credentials:
// the public API key authenticating the request and the proxy key selecting
// the pre-configured inbound proxy route.
type BasisTheoryConfig struct {
	PublicKey string
	ProxyKey  string
}

// BasisTheoryCollector proxies sensitive submissions through a Basis Theory
// pre-configured proxy.
type BasisTheoryCollector struct {
	config  BasisTheoryConfig
	pin     PinSource
	client  Doer
	logger  *slog.Logger
	metrics telemetry.MetricsCollector
	headers map[string]string
}

func NewBasisTheoryCollector(config BasisTheoryConfig, pin PinSource, client Doer, logger *slog.Logger, metrics telemetry.MetricsCollector) *BasisTheoryCollector {
	if client == nil {
		client = http.DefaultClient
	}
	return &BasisTheoryCollector{
		config:  config,
		pin:     pin,
		client:  client,
		logger:  telemetry.NewLogger(loggerHandler(logger), "BasisTheory"),
		metrics: metrics,
	}
}

func (c *BasisTheoryCollector) SetCustomHeaders(headers map[string]string, key model.EncryptionKey) {
	merged := make(map[string]string, len(headers)+3)
	for k, v := range headers {
		merged[k] = v
	}
	merged["X-KEY"] = key.BTAlias
	merged["BT-API-KEY"] = c.config.PublicKey
	merged["BT-PROXY-KEY"] = c.config.ProxyKey
	c.headers = merged
}

// PaymentMethodToken returns the part after the delimiter. A token without a
// delimiter predates dual vaulting and has no Basis Theory half.
func (c *BasisTheoryCollector) PaymentMethodToken(token string) (string, error) {
	_, after, found := strings.Cut(token, tokenDelimiter)
	if !found || after == "" {
		return "", model.NewDecodeError(0)
	}
	return after, nil
}

func (c *BasisTheoryCollector) CollectAndSubmit(ctx context.Context, path string, action Action, extraFields map[string]string) *Response {
	body := map[string]string{"pin": c.pin.PlainText()}
	for k, v := range extraFields {
		if k == TokenKey {
			token, err := c.PaymentMethodToken(v)
			if err != nil {
				c.logger.Error("card has no token for this vault")
				return &Response{Err: err}
			}
			body[k] = token
			continue
		}
		body[k] = v
	}

	measurement := telemetry.NewMeasurement(c.metrics, string(TypeBasisTheory), string(action)).
		SetPath(path).
		Start()
	// The pre-configured proxy forwards the trailing path to the processor.
	resp := submitProxy(ctx, c.client, basisTheoryProxyURL+path, body, c.headers)
	measurement.End().SetHTTPStatusCode(resp.StatusCode).LogResult()

	if resp.Err != nil {
		c.logger.Error("failed to send data to vault proxy",
			slog.Int("http_status", resp.StatusCode), slog.Any("error", resp.Err))
	}
	return resp
}

func (c *BasisTheoryCollector) Type() Type { return TypeBasisTheory }
