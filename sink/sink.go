// Package sink delivers canonical notifications to chat webhook endpoints,
// each sink with its own payload format and success-status contract.
package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gocloudLa/terraform-aws-wrapper-notifications/event"
	"github.com/pkg/errors"
)

// Sink is one outbound chat webhook destination.
type Sink interface {
	// Name identifies the sink in delivery results and logs.
	Name() string

	// Send formats and posts one notification.
	// Failures outside the sink's success contract are of type *DeliveryError.
	Send(ctx context.Context, n *event.Notification) error
}

// webhook holds what all webhook sinks share: an endpoint and an HTTP client
// with a bounded per-call timeout.
type webhook struct {
	name   string
	url    string
	client http.Client
}

func newWebhook(name, url string, timeout time.Duration) webhook {
	return webhook{
		name:   name,
		url:    url,
		client: http.Client{Timeout: timeout},
	}
}

// post encodes payload as JSON and posts it to the webhook endpoint.
// Any response status not accepted by accepted, as well as transport
// failures including timeouts, results in a *DeliveryError.
func (w *webhook) post(ctx context.Context, payload any, accepted func(int) bool) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "can't encode webhook payload to JSON")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "can't create HTTP request")
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return &DeliveryError{Sink: w.name, cause: err}
	}

	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if accepted(resp.StatusCode) {
		return nil
	}

	var buf bytes.Buffer
	// Limit the captured response body to avoid memory exhaustion.
	_, _ = io.Copy(&buf, &io.LimitedReader{R: resp.Body, N: 1 << 20})

	return &DeliveryError{
		Sink:       w.name,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(buf.String()),
	}
}
