// Package notify posts overdue-rent alerts to an operator-configured webhook.
package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client exposes the alert delivery operation used by the scheduler.
type Client interface {
	SendOverdueAlert(ctx context.Context, alert OverdueAlert) error
}

// OverdueTenant is one tenant behind on rent, as carried in the alert body.
type OverdueTenant struct {
	TenantName       string  `json:"tenant_name"`
	Room             string  `json:"room"`
	Bed              string  `json:"bed"`
	RemainingBalance float64 `json:"remaining_balance"`
	NextDueDate      string  `json:"next_due_date,omitempty"`
}

// OverdueAlert is the webhook payload.
type OverdueAlert struct {
	GeneratedAt string          `json:"generated_at"`
	Tenants     []OverdueTenant `json:"tenants"`
}

// WebhookClient is a resty-backed implementation of Client.
type WebhookClient struct {
	httpClient *resty.Client
	webhookURL string
}

// NewWebhookClient builds an alert client targeting the provided URL.
func NewWebhookClient(webhookURL string) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &WebhookClient{
		httpClient: restyClient,
		webhookURL: webhookURL,
	}
}

// SendOverdueAlert delivers the alert, treating any 4xx/5xx as an error.
func (c *WebhookClient) SendOverdueAlert(ctx context.Context, alert OverdueAlert) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(alert).
		Post(c.webhookURL)
	if err != nil {
		return fmt.Errorf("post overdue alert: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("overdue alert webhook error: status=%d, body=%s", resp.StatusCode(), resp.String())
	}
	return nil
}
