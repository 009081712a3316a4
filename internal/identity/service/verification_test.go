package service

import (
	"context"
	"errors"
	"testing"

	"jobpilot/backend/internal/platform/apperr"
	"jobpilot/backend/internal/verifier"
)

func TestApplyMobileProof_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	reg, err := f.svc.Register(ctx, validRegistration("asha@example.com", "+919876543210"))
	if err != nil {
		t.Fatal(err)
	}
	f.proofs.principals["proof-1"] = &verifier.Principal{Subject: "fb-uid", PhoneNumber: "+919876543210"}

	in := MobileProofInput{ProofToken: "proof-1", MobileNo: "+91 98765 43210"}
	first, err := f.svc.ApplyMobileProof(ctx, in)
	if err != nil {
		t.Fatalf("first apply: %v", err)
	}
	second, err := f.svc.ApplyMobileProof(ctx, in)
	if err != nil {
		t.Fatalf("second apply: %v", err)
	}
	if *first != *second {
		t.Errorf("results differ: %+v vs %+v", first, second)
	}
	if first.UserID != reg.UserID || !first.IsMobileVerified || first.IsEmailVerified {
		t.Errorf("result = %+v", first)
	}
}

func TestApplyMobileProof_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.proofs.principals["orphan"] = &verifier.Principal{PhoneNumber: "+919811111111"}

	testCases := []struct {
		name string
		in   MobileProofInput
		want apperr.Kind
	}{
		{"missing token", MobileProofInput{MobileNo: "+919811111111"}, apperr.KindBadRequest},
		{"missing mobile", MobileProofInput{ProofToken: "orphan"}, apperr.KindBadRequest},
		{"unknown proof", MobileProofInput{ProofToken: "forged", MobileNo: "+919811111111"}, apperr.KindUnauthorized},
		{"no such user", MobileProofInput{ProofToken: "orphan", MobileNo: "+919811111111"}, apperr.KindNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.ApplyMobileProof(ctx, tc.in)
			if !apperr.Is(err, tc.want) {
				t.Fatalf("err = %v, want %s", err, tc.want)
			}
		})
	}
}

func TestApplyMobileProof_VerifierFailureIsInternal(t *testing.T) {
	f := newFixture(t)
	f.proofs.err = errors.New("jwks unreachable")
	_, err := f.svc.ApplyMobileProof(context.Background(), MobileProofInput{ProofToken: "t", MobileNo: "+919811111111"})
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("err = %v, want internal", err)
	}
}

func TestApplyMobileProof_PhoneMismatchProceeds(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.svc.Register(ctx, validRegistration("asha@example.com", "+919876543210")); err != nil {
		t.Fatal(err)
	}
	f.proofs.principals["other-phone"] = &verifier.Principal{PhoneNumber: "+14155550100"}
	res, err := f.svc.ApplyMobileProof(ctx, MobileProofInput{ProofToken: "other-phone", MobileNo: "+919876543210"})
	if err != nil {
		t.Fatalf("ApplyMobileProof: %v", err)
	}
	if !res.IsMobileVerified {
		t.Error("mismatch must not block verification")
	}
}

func TestApplyEmailProof(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	if _, err := f.svc.Register(ctx, validRegistration("asha@example.com", "+919876543210")); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		res, err := f.svc.ApplyEmailProof(ctx, " ASHA@example.com")
		if err != nil {
			t.Fatalf("apply %d: %v", i, err)
		}
		if !res.IsEmailVerified || res.IsMobileVerified {
			t.Fatalf("apply %d result = %+v", i, res)
		}
	}
	if _, err := f.svc.ApplyEmailProof(ctx, "nobody@example.com"); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("unknown email err = %v, want not found", err)
	}
	if _, err := f.svc.ApplyEmailProof(ctx, ""); !apperr.Is(err, apperr.KindBadRequest) {
		t.Errorf("empty email err = %v, want bad request", err)
	}
}
