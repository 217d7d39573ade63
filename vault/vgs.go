package vault

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"forage/internal/api"
	"forage/model"
	"forage/telemetry"
)

// VGSConfig locates one VGS vault deployment.
type VGSConfig struct {
	VaultID string
	// Environment is the VGS-side environment, "sandbox" or "live".
	Environment string
}

func (c VGSConfig) proxyHost() string {
	return fmt.Sprintf("%s.%s.verygoodproxy.com", c.VaultID, c.Environment)
}

// VGSCollector proxies sensitive submissions through a VGS inbound route.
type VGSCollector struct {
	config  VGSConfig
	pin     PinSource
	client  Doer
	logger  *slog.Logger
	metrics telemetry.MetricsCollector
	headers map[string]string
}

func NewVGSCollector(config VGSConfig, pin PinSource, client Doer, logger *slog.Logger, metrics telemetry.MetricsCollector) *VGSCollector {
	if client == nil {
		client = http.DefaultClient
	}
	return &VGSCollector{
		config:  config,
		pin:     pin,
		client:  client,
		logger:  telemetry.NewLogger(loggerHandler(logger), "VGS"),
		metrics: metrics,
	}
}

func (c *VGSCollector) SetCustomHeaders(headers map[string]string, key model.EncryptionKey) {
	merged := make(map[string]string, len(headers)+1)
	for k, v := range headers {
		merged[k] = v
	}
	merged["X-KEY"] = key.Alias
	c.headers = merged
}

// PaymentMethodToken returns the part before the delimiter; single tokens
// pass through unchanged.
func (c *VGSCollector) PaymentMethodToken(token string) (string, error) {
	if before, _, found := strings.Cut(token, tokenDelimiter); found {
		return before, nil
	}
	return token, nil
}

func (c *VGSCollector) CollectAndSubmit(ctx context.Context, path string, action Action, extraFields map[string]string) *Response {
	body := map[string]string{"pin": c.pin.PlainText()}
	for k, v := range extraFields {
		if k == TokenKey {
			token, err := c.PaymentMethodToken(v)
			if err != nil || token == "" {
				c.logger.Error("vault token not found on card")
			}
			body[k] = token
			continue
		}
		body[k] = v
	}

	measurement := telemetry.NewMeasurement(c.metrics, string(TypeVGS), string(action)).
		SetPath(path).
		Start()
	resp := submitProxy(ctx, c.client, "https://"+c.config.proxyHost()+path, body, c.headers)
	measurement.End().SetHTTPStatusCode(resp.StatusCode).LogResult()

	if resp.Err != nil {
		c.logger.Error("failed to send data to vault proxy",
			slog.Int("http_status", resp.StatusCode), slog.Any("error", resp.Err))
	}
	return resp
}

func (c *VGSCollector) Type() Type { return TypeVGS }

// submitProxy performs the proxy POST shared by both backends and folds the
// outcome into a normalized Response. Raw transport errors never escape.
func submitProxy(ctx context.Context, client Doer, url string, body map[string]string, headers map[string]string) *Response {
	encoded, err := json.Marshal(body)
	if err != nil {
		return &Response{Err: model.NewDecodeError(0)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(encoded))
	if err != nil {
		return &Response{Err: model.NewTransportError(err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	httpResp, err := client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return &Response{Err: ctx.Err()}
		}
		return &Response{Err: model.NewTransportError(err)}
	}
	defer httpResp.Body.Close()

	payload, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return &Response{StatusCode: httpResp.StatusCode, Err: model.NewTransportError(err)}
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return &Response{
			StatusCode: httpResp.StatusCode,
			Err:        api.TranslateHTTPError(httpResp.StatusCode, payload),
		}
	}
	return &Response{StatusCode: httpResp.StatusCode, Body: payload}
}

func loggerHandler(logger *slog.Logger) slog.Handler {
	if logger == nil {
		return nil
	}
	return logger.Handler()
}
