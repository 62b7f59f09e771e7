package password

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestGetHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "regular password",
			password: "password123",
		},
		{
			name:     "password with special chars",
			password: "p@ssw0rd!@#$%^&*()",
		},
		{
			name:     "unicode password",
			password: "пароль-₹-gym",
		},
		{
			name:     "longer than bcrypt limit",
			password: strings.Repeat("a", 73),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotHash, err := GetHash(tt.password)

			if (err != nil) != tt.wantErr {
				t.Fatalf("GetHash() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			if gotHash == "" {
				t.Fatal("GetHash() returned empty hash")
			}
			if cost, err := bcrypt.Cost([]byte(gotHash)); err != nil || cost != Cost {
				t.Errorf("hash cost = %d (err %v), want %d", cost, err, Cost)
			}
			if err := CompareHash(gotHash, tt.password); err != nil {
				t.Errorf("Generated hash doesn't work with original password: %v", err)
			}
		})
	}
}

func TestCompareHash(t *testing.T) {
	correctHash, err := GetHash("correct_password")
	if err != nil {
		t.Fatalf("Failed to create test hash: %v", err)
	}

	tests := []struct {
		name     string
		hash     string
		password string
		wantErr  error
		anyErr   bool
	}{
		{
			name:     "matching password",
			hash:     correctHash,
			password: "correct_password",
		},
		{
			name:     "wrong password",
			hash:     correctHash,
			password: "wrong_password",
			wantErr:  ErrMismatch,
		},
		{
			name:     "empty password",
			hash:     correctHash,
			password: "",
			wantErr:  ErrMismatch,
		},
		{
			name:     "broken hash",
			hash:     "not-a-bcrypt-hash",
			password: "correct_password",
			anyErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CompareHash(tt.hash, tt.password)

			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("CompareHash() error = %v, want %v", err, tt.wantErr)
				}
			case tt.anyErr:
				if err == nil || errors.Is(err, ErrMismatch) {
					t.Errorf("CompareHash() error = %v, want non-mismatch error", err)
				}
			default:
				if err != nil {
					t.Errorf("CompareHash() should succeed, got error: %v", err)
				}
			}
		})
	}
}

func TestGetHash_SamePasswordDifferentSalt(t *testing.T) {
	hash1, err := GetHash("password1")
	if err != nil {
		t.Fatalf("GetHash failed: %v", err)
	}

	hash2, err := GetHash("password1")
	if err != nil {
		t.Fatalf("GetHash failed: %v", err)
	}

	if hash1 == hash2 {
		t.Error("Same password produced identical hashes")
	}
}
