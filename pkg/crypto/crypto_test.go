package crypto

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword("s3cret-pass", hash) {
		t.Fatal("correct password rejected")
	}
	if CheckPassword("wrong-pass", hash) {
		t.Fatal("wrong password accepted")
	}
}

func TestRandomDigits(t *testing.T) {
	digits, err := RandomDigits(4)
	if err != nil {
		t.Fatalf("random digits: %v", err)
	}
	if len(digits) != 4 {
		t.Fatalf("len = %d, want 4", len(digits))
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			t.Fatalf("non-digit %q in %q", r, digits)
		}
	}
}

func TestGenerateInviteTokenIsUnique(t *testing.T) {
	a, err := GenerateInviteToken()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	b, err := GenerateInviteToken()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if a == "" || a == b {
		t.Fatalf("tokens must be non-empty and distinct, got %q and %q", a, b)
	}
}
