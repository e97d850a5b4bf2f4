package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/buildmat/buildmat-backend/pkg/config"
	pkgerrors "github.com/buildmat/buildmat-backend/pkg/errors"
)

// Submitter delivers a submission to the order-creation API. Response
// handling beyond the created order id lives with that collaborator.
type Submitter interface {
	Submit(ctx context.Context, submission Submission) (string, error)
}

// HTTPSubmitter posts submissions to the configured order API.
type HTTPSubmitter struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSubmitter builds the HTTP client for the order API.
func NewHTTPSubmitter(cfg config.SubmissionConfig) (*HTTPSubmitter, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("submission base url required")
	}
	return &HTTPSubmitter{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type submitResponse struct {
	OrderID string `json:"order_id"`
}

// Submit posts the payload and returns the created order id.
func (s *HTTPSubmitter) Submit(ctx context.Context, submission Submission) (string, error) {
	body, err := json.Marshal(submission)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode submission")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build submission request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "submit order")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", pkgerrors.New(pkgerrors.CodeDependency, fmt.Sprintf("order api returned status %d", resp.StatusCode))
	}

	var parsed submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode order api response")
	}
	return parsed.OrderID, nil
}
