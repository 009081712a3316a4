package security

import (
	"errors"
	"testing"
)

func TestHasher_HashAndCompare(t *testing.T) {
	h := NewHasher(4)
	hash, err := h.Hash("Secret#123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "" || hash == "Secret#123" {
		t.Fatalf("Hash returned %q", hash)
	}
	if err := h.Compare(hash, "Secret#123"); err != nil {
		t.Fatalf("Compare: %v", err)
	}
}

func TestHasher_CompareWrongPassword(t *testing.T) {
	h := NewHasher(4)
	hash, _ := h.Hash("Secret#123")
	if err := h.Compare(hash, "wrong"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("Compare wrong password: want ErrPasswordMismatch, got %v", err)
	}
}

func TestHasher_CompareMalformedHash(t *testing.T) {
	h := NewHasher(4)
	err := h.Compare("not-a-bcrypt-hash", "x")
	if err == nil || errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("malformed hash should fail with a bcrypt error, got %v", err)
	}
}

func TestNewHasher_ClampsCost(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 10},
		{-1, 10},
		{2, 4},
		{12, 12},
		{40, 31},
	}
	for _, tc := range tests {
		if got := NewHasher(tc.in).Cost; got != tc.want {
			t.Errorf("NewHasher(%d).Cost = %d, want %d", tc.in, got, tc.want)
		}
	}
}
