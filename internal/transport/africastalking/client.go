// Package africastalking is a client for the Africa's Talking REST API: the
// application balance check and bulk SMS submission.
package africastalking

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/rentbill/internal/domain"
	"github.com/kailas-cloud/rentbill/internal/domain/notification"
	"github.com/kailas-cloud/rentbill/internal/metrics"
)

// API hosts.
const (
	ProductionBaseURL = "https://api.africastalking.com"
	SandboxBaseURL    = "https://api.sandbox.africastalking.com"
)

const (
	providerName = "africastalking"
	maxErrorBody = 4 << 10
)

// Config holds the provider account settings.
type Config struct {
	Username string
	APIKey   string
	SenderID string // optional alphanumeric sender or short code
	BaseURL  string // empty = chosen from the username
	Timeout  time.Duration
	Logger   *zap.Logger
}

// Client talks to one Africa's Talking application.
type Client struct {
	http     *http.Client
	baseURL  string
	username string
	apiKey   string
	senderID string
	logger   *zap.Logger
}

// IsSandbox reports whether the username belongs to the sandbox environment.
func IsSandbox(username string) bool {
	return strings.Contains(strings.ToLower(username), "sandbox")
}

// Environment names the environment for display: "Sandbox" or "Production".
func Environment(username string) string {
	if IsSandbox(username) {
		return "Sandbox"
	}
	return "Production"
}

// NewClient creates a client. Username and API key are both required.
func NewClient(cfg *Config) (*Client, error) {
	if cfg.Username == "" || cfg.APIKey == "" {
		return nil, domain.ErrMissingCredentials
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = ProductionBaseURL
		if IsSandbox(cfg.Username) {
			baseURL = SandboxBaseURL
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		http:     &http.Client{Timeout: cfg.Timeout},
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: cfg.Username,
		apiKey:   cfg.APIKey,
		senderID: cfg.SenderID,
		logger:   logger,
	}, nil
}

// Environment names the environment of this client's account.
func (c *Client) Environment() string { return Environment(c.username) }

// applicationData mirrors GET /version1/user.
type applicationData struct {
	UserData struct {
		Balance string `json:"balance"`
	} `json:"UserData"`
}

// sendResponse mirrors POST /version1/messaging.
type sendResponse struct {
	SMSMessageData struct {
		Message    string `json:"Message"`
		Recipients []struct {
			StatusCode int    `json:"statusCode"`
			Number     string `json:"number"`
			Status     string `json:"status"`
			Cost       string `json:"cost"`
			MessageID  string `json:"messageId"`
		} `json:"Recipients"`
	} `json:"SMSMessageData"`
}

// FetchBalance fetches the application data and returns the account balance,
// "Unknown" when the provider does not report one.
func (c *Client) FetchBalance(ctx context.Context) (string, error) {
	q := url.Values{"username": {c.username}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/version1/user?"+q.Encode(), http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	body, err := c.do(req, "balance")
	if err != nil {
		return "", fmt.Errorf("fetch application data: %w", err)
	}

	var data applicationData
	if err := json.Unmarshal(body, &data); err != nil {
		return "", fmt.Errorf("decode application data: %w", err)
	}
	if data.UserData.Balance == "" {
		return "Unknown", nil
	}
	return data.UserData.Balance, nil
}

// SendSMS submits one message to the given recipients.
func (c *Client) SendSMS(ctx context.Context, message string, recipients []string) (notification.Delivery, error) {
	form := url.Values{
		"username": {c.username},
		"to":       {strings.Join(recipients, ",")},
		"message":  {message},
	}
	if c.senderID != "" {
		form.Set("from", c.senderID)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/version1/messaging",
		strings.NewReader(form.Encode()))
	if err != nil {
		return notification.Delivery{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, err := c.do(req, "send")
	if err != nil {
		return notification.Delivery{}, fmt.Errorf("send sms: %w", err)
	}

	var resp sendResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return notification.Delivery{}, fmt.Errorf("decode sms response: %w", err)
	}

	delivery := notification.Delivery{
		Summary: resp.SMSMessageData.Message,
		Raw:     string(body),
	}
	for _, r := range resp.SMSMessageData.Recipients {
		delivery.Recipients = append(delivery.Recipients, notification.Recipient{
			Number:     r.Number,
			Status:     r.Status,
			StatusCode: r.StatusCode,
			Cost:       r.Cost,
			MessageID:  r.MessageID,
		})
		metrics.SMSRecipientsTotal.WithLabelValues(providerName, r.Status).Inc()
	}
	return delivery, nil
}

// do sends an authenticated request and returns the body of a 2xx response.
func (c *Client) do(req *http.Request, operation string) ([]byte, error) {
	req.Header.Set("apiKey", c.apiKey)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	metrics.ProviderRequestDuration.WithLabelValues(providerName, operation).Observe(duration.Seconds())

	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues(providerName, operation, "error").Inc()
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues(providerName, operation, "error").Inc()
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.ProviderRequestsTotal.WithLabelValues(providerName, operation, "rejected").Inc()
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		return nil, domain.NewProviderError(resp.StatusCode, strings.TrimSpace(string(body)))
	}

	metrics.ProviderRequestsTotal.WithLabelValues(providerName, operation, "success").Inc()
	c.logger.Debug("Provider request completed",
		zap.String("provider", providerName),
		zap.String("operation", operation),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", duration),
	)
	return body, nil
}
