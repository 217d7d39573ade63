package forage

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forage/card"
	"forage/model"
)

type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func jsonClient(status int, body string, capture *[]*http.Request) *http.Client {
	return &http.Client{Transport: rtFunc(func(r *http.Request) (*http.Response, error) {
		if capture != nil {
			*capture = append(*capture, r)
		}
		return &http.Response{
			StatusCode: status,
			Body:       io.NopCloser(bytes.NewReader([]byte(body))),
		}, nil
	})}
}

func TestNew(t *testing.T) {
	t.Run("requires a merchant id", func(t *testing.T) {
		_, err := New(Config{SessionToken: "sandbox_tok"})
		assert.Equal(t, model.CodeIllegalState, model.ErrorCode(err))
	})

	t.Run("requires a session token", func(t *testing.T) {
		_, err := New(Config{MerchantID: "mid/123"})
		assert.Equal(t, model.CodeIllegalState, model.ErrorCode(err))
	})

	t.Run("derives the environment from the token prefix", func(t *testing.T) {
		sdk, err := New(Config{MerchantID: "mid/123", SessionToken: "dev_tok"})
		require.NoError(t, err)
		assert.Equal(t, model.EnvDev, sdk.Environment())
	})

	t.Run("pan fields inherit the environment", func(t *testing.T) {
		sandbox, err := New(Config{MerchantID: "mid/123", SessionToken: "sandbox_tok"})
		require.NoError(t, err)
		assert.True(t, sandbox.NewPANField().SetText("9999000000000000").IsValid)

		prod, err := New(Config{MerchantID: "mid/123", SessionToken: "prod_tok"})
		require.NoError(t, err)
		assert.False(t, prod.NewPANField().SetText("9999000000000000").IsValid)
	})
}

func TestCredentialUpdates(t *testing.T) {
	sdk, err := New(Config{MerchantID: "mid/123", SessionToken: "sandbox_tok"})
	require.NoError(t, err)

	t.Run("session token update re-derives the environment", func(t *testing.T) {
		sdk.UpdateSessionToken("prod_tok")
		assert.Equal(t, model.EnvProd, sdk.Environment())
	})

	t.Run("merchant update keeps the environment", func(t *testing.T) {
		sdk.UpdateMerchantID("mid/456")
		assert.Equal(t, model.EnvProd, sdk.Environment())
		assert.Equal(t, "mid/456", sdk.snapshot().cfg.MerchantID)
	})
}

func TestUseBeforeSetupPanics(t *testing.T) {
	t.Run("zero value sdk panics with the illegal state code", func(t *testing.T) {
		var s SDK
		defer func() {
			r := recover()
			require.NotNil(t, r)
			fe, ok := r.(*model.ForageError)
			require.True(t, ok)
			assert.Equal(t, model.CodeIllegalState, fe.Code)
		}()
		s.Environment()
	})

	t.Run("shared accessor panics until Setup", func(t *testing.T) {
		shared.Store(nil)
		assert.Panics(t, func() { Shared() })

		require.NoError(t, Setup(Config{MerchantID: "mid/123", SessionToken: "sandbox_tok"}))
		assert.NotPanics(t, func() { Shared() })
	})
}

func TestTokenizeCardThroughSDK(t *testing.T) {
	var requests []*http.Request
	client := jsonClient(201, `{"ref": "pm_1", "card": {"last_4": "7890", "token": "tok_vgs,tok_bt"}}`, &requests)

	sdk, err := New(Config{MerchantID: "mid/123", SessionToken: "sandbox_tok", HTTPClient: client})
	require.NoError(t, err)

	pan := card.NewPANField()
	pan.SetText("5076801234567890")

	pm, err := sdk.TokenizeCard(context.Background(), TokenizeRequest{PAN: pan, CustomerID: "cust_1", Reusable: true})
	require.NoError(t, err)
	assert.Equal(t, "pm_1", pm.Ref)

	require.Len(t, requests, 1)
	req := requests[0]
	assert.Equal(t, "api.sandbox.joinforage.app", req.URL.Host)
	assert.Equal(t, "/api/payment_methods/", req.URL.Path)
	assert.Equal(t, "mid/123", req.Header.Get("Merchant-Account"))
	assert.Equal(t, "Bearer sandbox_tok", req.Header.Get("Authorization"))
}
