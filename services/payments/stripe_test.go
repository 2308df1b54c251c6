package payments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/config"
)

func newTestProvider(baseURL string) *StripeProvider {
	return NewStripeProvider(config.PaymentConfig{
		SecretKey: "sk_test_secret",
		Currency:  "usd",
		BaseURL:   baseURL,
		Timeout:   2 * time.Second,
	}, zap.NewNop())
}

func TestStripeProvider_CreateIntent(t *testing.T) {
	t.Run("sends form-encoded request and parses client secret", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/payment_intents", r.URL.Path)
			assert.Equal(t, "Bearer sk_test_secret", r.Header.Get("Authorization"))
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

			require.NoError(t, r.ParseForm())
			assert.Equal(t, "5000", r.PostForm.Get("amount"))
			assert.Equal(t, "usd", r.PostForm.Get("currency"))
			assert.Equal(t, []string{"card"}, r.PostForm["payment_method_types[]"])

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":"pi_123","client_secret":"pi_123_secret_abc","amount":5000,"currency":"usd","status":"requires_payment_method"}`))
		}))
		defer server.Close()

		provider := newTestProvider(server.URL)
		intent, err := provider.CreateIntent(context.Background(), 5000, "usd")

		require.NoError(t, err)
		assert.Equal(t, "pi_123", intent.ID)
		assert.Equal(t, "pi_123_secret_abc", intent.ClientSecret)
	})

	t.Run("uses configured currency when none given", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "usd", r.PostForm.Get("currency"))
			w.Write([]byte(`{"id":"pi_1","client_secret":"cs_1"}`))
		}))
		defer server.Close()

		provider := newTestProvider(server.URL)
		_, err := provider.CreateIntent(context.Background(), 100, "")
		assert.NoError(t, err)
	})

	t.Run("rejects non-positive amount without calling the provider", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		provider := newTestProvider(server.URL)
		intent, err := provider.CreateIntent(context.Background(), 0, "usd")

		assert.Error(t, err)
		assert.Nil(t, intent)
		assert.False(t, called)
	})

	t.Run("surfaces provider rejections", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
			w.Write([]byte(`{"error":{"message":"Your card was declined."}}`))
		}))
		defer server.Close()

		provider := newTestProvider(server.URL)
		intent, err := provider.CreateIntent(context.Background(), 100, "usd")

		assert.Error(t, err)
		assert.Nil(t, intent)
		assert.Contains(t, err.Error(), "402")
	})

	t.Run("rejects response without client secret", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"id":"pi_1"}`))
		}))
		defer server.Close()

		provider := newTestProvider(server.URL)
		intent, err := provider.CreateIntent(context.Background(), 100, "usd")

		assert.Error(t, err)
		assert.Nil(t, intent)
		assert.Contains(t, err.Error(), "client secret")
	})
}
