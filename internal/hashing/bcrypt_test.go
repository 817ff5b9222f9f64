package hashing

import "testing"

func TestHashAndCompare(t *testing.T) {
	b := NewBcrypt(4)

	hash, err := b.Hash("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "secret123" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !b.Compare(hash, "secret123") {
		t.Error("correct password must match")
	}
	if b.Compare(hash, "secret124") {
		t.Error("wrong password must not match")
	}
	if b.Compare("not-a-hash", "secret123") {
		t.Error("malformed hash must not match")
	}
}
