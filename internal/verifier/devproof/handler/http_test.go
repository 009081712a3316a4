package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jobpilot/backend/internal/verifier/devproof"
)

func TestIssue_RoundTripsThroughStore(t *testing.T) {
	store := devproof.NewStore(0)
	h := NewDevProofHandler(store, nil)

	rec := httptest.NewRecorder()
	h.Issue(rec, httptest.NewRequest(http.MethodPost, "/dev/proof", strings.NewReader(`{"mobile_no":"+91 98765-43210"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", rec.Code, rec.Body.String())
	}
	var env struct {
		Data issueResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	p, err := store.Verify(context.Background(), env.Data.IDToken)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if p.PhoneNumber != "+919876543210" {
		t.Errorf("phone = %q", p.PhoneNumber)
	}
}

func TestIssue_RejectsBadMobile(t *testing.T) {
	h := NewDevProofHandler(devproof.NewStore(0), nil)
	for _, body := range []string{`{}`, `{"mobile_no":"123"}`} {
		rec := httptest.NewRecorder()
		h.Issue(rec, httptest.NewRequest(http.MethodPost, "/dev/proof", strings.NewReader(body)))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %s status = %d, want 400", body, rec.Code)
		}
	}
}
