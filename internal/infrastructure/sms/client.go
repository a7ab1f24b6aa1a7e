// Package sms wraps the outbound SMS gateway. The gateway exposes a
// GET-with-query-parameters send endpoint and signals success purely through
// the HTTP status code.
package sms

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// Config captures the gateway endpoint and account credentials.
type Config struct {
	BaseURL  string
	Login    string
	Password string
	Sender   string
}

// Client sends one-time codes through the gateway.
type Client struct {
	http *resty.Client
	cfg  Config
	log  zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	return &Client{
		http: resty.New().SetBaseURL(cfg.BaseURL),
		cfg:  cfg,
		log:  log,
	}
}

// Send dispatches the code to the phone. Any non-200 response or transport
// error is reported as a delivery failure; the caller decides whether to
// surface or retry.
func (c *Client) Send(ctx context.Context, phone, code string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"login":    c.cfg.Login,
			"password": c.cfg.Password,
			"phone":    phone,
			"text":     fmt.Sprintf("Код авторизации - %s", code),
			"sender":   c.cfg.Sender,
		}).
		Get("/messages/v2/send")
	if err != nil {
		return fmt.Errorf("sms gateway request: %w", err)
	}

	if resp.StatusCode() != 200 {
		c.log.Warn().
			Int("status", resp.StatusCode()).
			Str("phone", phone).
			Msg("sms gateway rejected message")
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode())
	}

	c.log.Debug().Str("phone", phone).Msg("sms dispatched")
	return nil
}
