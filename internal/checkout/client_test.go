package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/buildmat/buildmat-backend/pkg/config"
	pkgerrors "github.com/buildmat/buildmat-backend/pkg/errors"
)

func TestHTTPSubmitterPostsAndParsesOrderID(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var sub Submission
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			t.Errorf("decode submission: %v", err)
		}
		if sub.ProjectID != "prj-9" {
			t.Errorf("unexpected project id %q", sub.ProjectID)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"order_id": "ord-77"})
	}))
	defer srv.Close()

	submitter, err := NewHTTPSubmitter(config.SubmissionConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	orderID, err := submitter.Submit(context.Background(), Submission{ProjectID: "prj-9"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orderID != "ord-77" {
		t.Fatalf("unexpected order id %q", orderID)
	}
}

func TestHTTPSubmitterMapsServerErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	submitter, err := NewHTTPSubmitter(config.SubmissionConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = submitter.Submit(context.Background(), Submission{})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
