package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/buildmat/buildmat-backend/api/middleware"
	"github.com/buildmat/buildmat-backend/internal/checkout"
	"github.com/buildmat/buildmat-backend/internal/schedule"
	pkgerrors "github.com/buildmat/buildmat-backend/pkg/errors"
)

type stubCheckoutService struct {
	result   checkout.SubmitResult
	err      error
	lastKey  string
	lastForm checkout.OrderForm
}

func (s *stubCheckoutService) Submit(ctx context.Context, sessionKey string, form checkout.OrderForm) (checkout.SubmitResult, error) {
	s.lastKey = sessionKey
	s.lastForm = form
	return s.result, s.err
}

func TestSubmitSuccess(t *testing.T) {
	svc := &stubCheckoutService{result: checkout.SubmitResult{
		OrderID:    "ord-123",
		Validation: schedule.Result{OK: true},
	}}
	handler := Submit(svc, nil)

	body := strings.NewReader(`{"project_id":"proj-1","delivery_address":"12 Site Rd","contact_phone":"+15550100"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", body)
	req = req.WithContext(middleware.WithSessionKey(req.Context(), "session-1"))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if svc.lastKey != "session-1" {
		t.Fatalf("expected session key to flow through, got %q", svc.lastKey)
	}
	if svc.lastForm.ProjectID != "proj-1" || svc.lastForm.DeliveryAddress != "12 Site Rd" {
		t.Fatalf("unexpected form %+v", svc.lastForm)
	}

	var envelope struct {
		Data checkout.SubmitResult `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.OrderID != "ord-123" {
		t.Fatalf("unexpected order id %q", envelope.Data.OrderID)
	}
}

func TestSubmitRequiresProjectAndAddress(t *testing.T) {
	handler := Submit(&stubCheckoutService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{}`))
	req = req.WithContext(middleware.WithSessionKey(req.Context(), "session-1"))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestSubmitUnbalancedCartConflict(t *testing.T) {
	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "cart is not ready for submission")}
	handler := Submit(svc, nil)

	body := strings.NewReader(`{"project_id":"proj-1","delivery_address":"12 Site Rd"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", body)
	req = req.WithContext(middleware.WithSessionKey(req.Context(), "session-1"))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}
