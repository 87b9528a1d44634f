package password

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("secret1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "secret1" || hash == "" {
		t.Fatalf("hash must not equal plaintext, got %q", hash)
	}
	if !Verify("secret1", hash) {
		t.Fatal("correct password did not verify")
	}
	if Verify("secret2", hash) {
		t.Fatal("wrong password verified")
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("secret1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	second, err := Hash("secret1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password must differ")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	for _, stored := range []string{"", "plaintext", "$2a$garbage", strings.Repeat("x", 100)} {
		if Verify("secret1", stored) {
			t.Fatalf("malformed hash %q verified", stored)
		}
	}
}
