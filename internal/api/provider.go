package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"forage/model"
	"forage/telemetry"
)

// Doer abstracts the HTTP transport so tests can stub it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Provider executes endpoint descriptors and decodes responses into typed
// models under the uniform error-translation contract: every failure becomes
// a *model.ForageError, except context cancellation which is returned as-is
// so callers can suppress completion for canceled requests.
type Provider struct {
	client Doer
	logger *slog.Logger
}

func NewProvider(client Doer, logger *slog.Logger) *Provider {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = telemetry.NewLogger(nil, "HTTP")
	}
	return &Provider{client: client, logger: logger}
}

// Execute dispatches ep and, when out is non-nil, decodes the JSON response
// body into it. Status codes outside 200-299 fail with the status preserved;
// a missing or undecodable body fails with a decode-failure kind.
func (p *Provider) Execute(ctx context.Context, ep Endpoint, out interface{}) error {
	req, err := p.buildRequest(ctx, ep)
	if err != nil {
		return err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			// Canceled by the initiator: the completion path is skipped.
			return ctx.Err()
		}
		p.logger.Error("request failed", slog.String("path", ep.Path), slog.Any("error", err))
		return model.NewTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return model.NewTransportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ferr := TranslateHTTPError(resp.StatusCode, body)
		p.logger.Error("processor returned an error",
			slog.String("path", ep.Path),
			slog.Int("status", resp.StatusCode),
			slog.String("code", ferr.Code))
		return ferr
	}

	if out == nil {
		return nil
	}
	return Decode(body, resp.StatusCode, out)
}

func (p *Provider) buildRequest(ctx context.Context, ep Endpoint) (*http.Request, error) {
	u := url.URL{Scheme: ep.Scheme, Host: ep.Host, Path: ep.Path}

	var body io.Reader
	if ep.Body != nil {
		encoded, err := json.Marshal(ep.Body)
		if err != nil {
			return nil, model.NewDecodeError(0)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, ep.Method, u.String(), body)
	if err != nil {
		return nil, model.NewTransportError(err)
	}
	if ep.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range ep.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

// Decode unmarshals a response body into out, translating failures into the
// decode-failure kind with the originating status preserved.
func Decode(body []byte, statusCode int, out interface{}) error {
	if len(body) == 0 {
		return model.NewDecodeError(statusCode)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return model.NewDecodeError(statusCode)
	}
	return nil
}

// TranslateHTTPError maps a non-2xx response to a ForageError, preferring
// the processor's structured error body when one decodes.
func TranslateHTTPError(statusCode int, body []byte) *model.ForageError {
	var er model.ErrorResponse
	if len(body) > 0 && json.Unmarshal(body, &er) == nil {
		if first := er.First(); first != nil {
			return model.NewHTTPError(statusCode, first.Code, first.Message)
		}
	}
	return model.NewHTTPError(statusCode, "", http.StatusText(statusCode))
}
