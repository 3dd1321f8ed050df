package credentials

import (
	"errors"
	"testing"
)

func TestHashProducesDifferentDigests(t *testing.T) {
	first, err := Hash("Secret123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := Hash("Secret123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if first == second {
		t.Fatal("expected salted digests to differ for the same plaintext")
	}

	for _, digest := range []string{first, second} {
		ok, err := Verify("Secret123", digest)
		if err != nil {
			t.Fatalf("Verify returned error: %v", err)
		}
		if !ok {
			t.Fatalf("Verify failed for digest %q", digest)
		}
	}
}

func TestVerifyMismatchIsNotAnError(t *testing.T) {
	digest, err := Hash("Secret123")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	ok, err := Verify("WrongPass", digest)
	if err != nil {
		t.Fatalf("Verify returned error on mismatch: %v", err)
	}
	if ok {
		t.Fatal("expected mismatch to verify as false")
	}
}

func TestVerifyMalformedDigest(t *testing.T) {
	ok, err := Verify("Secret123", "not-a-bcrypt-digest")
	if ok {
		t.Fatal("expected malformed digest to verify as false")
	}
	if !errors.Is(err, ErrMalformedDigest) {
		t.Fatalf("expected ErrMalformedDigest, got %v", err)
	}
}
