package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestReadinessAllChecksPass(t *testing.T) {
	handler := NewHandler("version=test")
	handler.RegisterChecker(NewSimpleChecker("postgres", func() error { return nil }))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != StatusOK {
		t.Errorf("got status %q, want %q", resp.Status, StatusOK)
	}
	if resp.Version != "version=test" {
		t.Errorf("got version %q, want %q", resp.Version, "version=test")
	}
	if len(resp.Checks) != 1 || resp.Checks[0].Name != "postgres" {
		t.Errorf("unexpected checks: %+v", resp.Checks)
	}
}

func TestReadinessFailingCheck(t *testing.T) {
	handler := NewHandler("version=test")
	handler.RegisterChecker(NewSimpleChecker("postgres", func() error { return nil }))
	handler.RegisterChecker(NewSimpleChecker("kafka", func() error { return errors.New("broker unreachable") }))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("got status %d, want 503", rec.Code)
	}

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != StatusDegraded {
		t.Errorf("got status %q, want %q", resp.Status, StatusDegraded)
	}

	var kafkaCheck *Check
	for i := range resp.Checks {
		if resp.Checks[i].Name == "kafka" {
			kafkaCheck = &resp.Checks[i]
		}
	}
	if kafkaCheck == nil {
		t.Fatal("kafka check missing from response")
	}
	if kafkaCheck.Status != StatusDegraded || kafkaCheck.Error == "" {
		t.Errorf("unexpected kafka check: %+v", kafkaCheck)
	}
}

func TestLiveness(t *testing.T) {
	rec := httptest.NewRecorder()
	LivenessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/livez", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	if rec.Body.String() != `{"status":"ok"}` {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}
