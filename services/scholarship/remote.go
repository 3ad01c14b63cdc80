package scholarship

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// RemoteClassifier calls an HTTP inference endpoint with the eight schema
// inputs as a JSON object and expects {"label": "...", "model": "..."}.
type RemoteClassifier struct {
	client   *resty.Client
	endpoint string
}

type remoteResponse struct {
	Label string `json:"label"`
	Model string `json:"model"`
	Error string `json:"error"`
}

// NewRemoteClassifier builds a client for endpoint. Requests are not retried:
// a failed inference is reported and a new user action starts a new one.
func NewRemoteClassifier(endpoint string, timeout time.Duration) *RemoteClassifier {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	return &RemoteClassifier{client: client, endpoint: endpoint}
}

func (c *RemoteClassifier) Classify(ctx context.Context, q Query) (Result, error) {
	var body remoteResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(q.Features()).
		SetResult(&body).
		SetError(&body).
		Post(c.endpoint)
	if err != nil {
		return Result{}, ErrModelUnavailable(fmt.Errorf("call inference endpoint: %w", err))
	}

	switch {
	case resp.StatusCode() == http.StatusUnprocessableEntity:
		return Result{}, ErrNoLabel(fmt.Errorf("inference endpoint: %s", body.Error))
	case resp.IsError():
		return Result{}, ErrModelUnavailable(fmt.Errorf("inference endpoint returned %d", resp.StatusCode()))
	}

	model := body.Model
	if model == "" {
		model = "remote"
	}
	return Result{Label: body.Label, Model: model}, nil
}
