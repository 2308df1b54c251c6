package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/config"
)

const defaultBaseURL = "https://api.stripe.com/v1"

// StripeProvider implements the Provider interface against the Stripe
// payment-intents API
type StripeProvider struct {
	cfg        config.PaymentConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewStripeProvider creates a new Stripe provider. The HTTP client carries
// a bounded timeout so a hung provider call cannot block a request
// indefinitely.
func NewStripeProvider(cfg config.PaymentConfig, logger *zap.Logger) *StripeProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}

	return &StripeProvider{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// CreateIntent asks Stripe for a payment intent and returns its client secret
func (p *StripeProvider) CreateIntent(ctx context.Context, amount int64, currency string) (*Intent, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive, got %d", amount)
	}
	if currency == "" {
		currency = p.cfg.Currency
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	form.Add("payment_method_types[]", "card")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.cfg.BaseURL+"/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+p.cfg.SecretKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read payment response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		p.logger.Warn("payment provider rejected intent",
			zap.Int("status", resp.StatusCode),
			zap.Int64("amount", amount))
		return nil, fmt.Errorf("payment provider returned status %d: %s",
			resp.StatusCode, truncate(string(body), 200))
	}

	var intent Intent
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("failed to decode payment response: %w", err)
	}
	if intent.ClientSecret == "" {
		return nil, fmt.Errorf("payment response missing client secret")
	}

	p.logger.Debug("payment intent created",
		zap.String("intent_id", intent.ID),
		zap.Int64("amount", amount),
		zap.String("currency", currency))

	return &intent, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
