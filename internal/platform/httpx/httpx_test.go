package httpx

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jobpilot/backend/internal/platform/apperr"
)

func TestError_StatusAndMessage(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"conflict", apperr.Conflict("mobile in use"), http.StatusConflict, "mobile in use"},
		{"forbidden", apperr.Forbidden("verification incomplete"), http.StatusForbidden, "verification incomplete"},
		{"upload", apperr.UploadFailed("image upload failed", errors.New("s3")), http.StatusBadGateway, "image upload failed"},
		{"internal hides cause", apperr.Internal(errors.New("pq: password=secret")), http.StatusInternalServerError, "internal server error"},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Error(rec, httptest.NewRequest(http.MethodGet, "/x", nil), nil, tc.err)
			if rec.Code != tc.status {
				t.Errorf("status = %d, want %d", rec.Code, tc.status)
			}
			var env Envelope
			if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
				t.Fatal(err)
			}
			if env.Success || env.Message != tc.message {
				t.Errorf("envelope = %+v", env)
			}
		})
	}
}

type signup struct {
	Email  string `json:"email" validate:"required,email"`
	Gender string `json:"gender" validate:"required,oneof=m f o"`
	Mobile string `json:"mobile_no" validate:"required,mobile"`
}

func TestDecode(t *testing.T) {
	v := NewValidator()
	if err := v.Register("mobile", func(s string) bool { return strings.HasPrefix(s, "+") }); err != nil {
		t.Fatal(err)
	}
	testCases := []struct {
		name    string
		body    string
		message string
	}{
		{"ok", `{"email":"a@b.co","gender":"m","mobile_no":"+15550100"}`, ""},
		{"empty", ``, "request body is empty"},
		{"malformed", `{"email":`, "invalid JSON body"},
		{"missing email", `{"gender":"m","mobile_no":"+1"}`, "email is required"},
		{"bad gender", `{"email":"a@b.co","gender":"x","mobile_no":"+1"}`, "gender must be one of m, f, o"},
		{"custom tag", `{"email":"a@b.co","gender":"f","mobile_no":"555"}`, "mobile_no must be in E.164 format"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var dst signup
			err := Decode(httptest.NewRecorder(), r, v, &dst)
			if tc.message == "" {
				if err != nil {
					t.Fatalf("Decode: %v", err)
				}
				return
			}
			if !apperr.Is(err, apperr.KindBadRequest) || apperr.PublicMessage(err) != tc.message {
				t.Fatalf("err = %v, want %q", err, tc.message)
			}
		})
	}
}
