package secrets

import (
	"bytes"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	plaintext := []byte("binance-secret-key-material")

	ciphertext, err := Encrypt("passphrase", plaintext)
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if bytes.Contains(ciphertext, plaintext) {
		t.Error("ciphertext contains plaintext")
	}

	got, err := Decrypt("passphrase", ciphertext)
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Errorf("round trip = %q, want %q", got, plaintext)
	}
}

func TestEncryptIsSalted(t *testing.T) {
	a, err := Encrypt("passphrase", []byte("same input"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	b, err := Encrypt("passphrase", []byte("same input"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("two encryptions of the same plaintext are identical")
	}
}

func TestDecryptWrongPassphrase(t *testing.T) {
	ciphertext, err := Encrypt("right", []byte("data"))
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if _, err := Decrypt("wrong", ciphertext); err == nil {
		t.Error("Decrypt with wrong passphrase succeeded")
	}
}

func TestDecryptTruncated(t *testing.T) {
	for _, n := range []int{0, 5, saltSize, saltSize + 3} {
		if _, err := Decrypt("passphrase", make([]byte, n)); err == nil {
			t.Errorf("Decrypt of %d-byte input succeeded", n)
		}
	}
}

func TestEncryptEmptyPassphrase(t *testing.T) {
	if _, err := Encrypt("", []byte("data")); err == nil {
		t.Error("Encrypt with empty passphrase succeeded")
	}
}
