package checkout

import (
	"context"
	"fmt"

	"github.com/buildmat/buildmat-backend/internal/cart"
	"github.com/buildmat/buildmat-backend/internal/schedule"
	pkgerrors "github.com/buildmat/buildmat-backend/pkg/errors"
	"github.com/buildmat/buildmat-backend/pkg/metrics"
)

type cartStore interface {
	Items(ctx context.Context, sessionKey string) ([]cart.Item, error)
	Clear(ctx context.Context, sessionKey string) error
}

// SubmitResult is the outcome of an order submission attempt.
type SubmitResult struct {
	OrderID    string          `json:"order_id,omitempty"`
	Validation schedule.Result `json:"validation"`
}

// Service runs the final step of the wizard: validate the whole cart, map
// it to the wire payload, submit, and clear the cart.
type Service interface {
	Submit(ctx context.Context, sessionKey string, form OrderForm) (SubmitResult, error)
}

type service struct {
	carts        cartStore
	submitter    Submitter
	requirements schedule.Requirements
	metrics      *metrics.EngineMetrics
}

// NewService builds a checkout service. Metrics may be nil.
func NewService(carts cartStore, submitter Submitter, requirements schedule.Requirements, m *metrics.EngineMetrics) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if submitter == nil {
		return nil, fmt.Errorf("submitter required")
	}
	return &service{carts: carts, submitter: submitter, requirements: requirements, metrics: m}, nil
}

// Submit validates the cart against the scheduling gate and, if it passes,
// sends the mapped payload to the order API. The cart is cleared after a
// successful submission; the clear itself is best-effort since the order is
// already accepted.
func (s *service) Submit(ctx context.Context, sessionKey string, form OrderForm) (SubmitResult, error) {
	items, err := s.carts.Items(ctx, sessionKey)
	if err != nil {
		return SubmitResult{}, err
	}
	if len(items) == 0 {
		return SubmitResult{}, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	validation := schedule.Validate(items, s.requirements)
	if !validation.OK {
		for _, issues := range validation.Issues {
			for _, issue := range issues {
				s.metrics.IncValidationFailure(issue.Kind.String())
			}
		}
		return SubmitResult{Validation: validation},
			pkgerrors.New(pkgerrors.CodeStateConflict, "cart is not ready for submission").WithDetails(validation.Issues)
	}

	orderID, err := s.submitter.Submit(ctx, BuildSubmission(items, form))
	if err != nil {
		s.metrics.IncSubmission("error")
		return SubmitResult{Validation: validation}, err
	}
	s.metrics.IncSubmission("ok")

	_ = s.carts.Clear(ctx, sessionKey)

	return SubmitResult{OrderID: orderID, Validation: validation}, nil
}
