package notifier

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// DeliveryError reports a failed webhook delivery: either a transport error
// (Err set) or an unexpected response.
type DeliveryError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *DeliveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("webhook delivery: %v", e.Err)
	}
	return fmt.Sprintf("webhook delivery: status %d, body: %s", e.StatusCode, e.Body)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// DiscordNotifier posts messages to a Discord webhook.
type DiscordNotifier struct {
	WebhookURL string
	Client     *resty.Client
}

// NewDiscordNotifier creates a notifier with optional proxy support.
func NewDiscordNotifier(webhookURL, proxyURL string) *DiscordNotifier {
	client := resty.New().SetTimeout(30 * time.Second)
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &DiscordNotifier{WebhookURL: webhookURL, Client: client}
}

// Send posts the message once. Success is 204 No Content with an empty body.
func (d *DiscordNotifier) Send(ctx context.Context, msg *Message) error {
	if d.WebhookURL == "" {
		return &DeliveryError{Err: errors.New("webhook url not set")}
	}
	resp, err := d.Client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(msg).
		Post(d.WebhookURL)
	if err != nil {
		return &DeliveryError{Err: err}
	}
	if resp.StatusCode() != http.StatusNoContent || len(resp.Body()) != 0 {
		return &DeliveryError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}
