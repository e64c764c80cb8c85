package password

import (
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	h := NewHasher()

	hash, err := h.Hash("hunter2")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if len(hash) == 0 {
		t.Fatal("expected a non-empty hash")
	}

	if !h.Verify(hash, "hunter2") {
		t.Fatal("correct password rejected")
	}
	if h.Verify(hash, "wrong") {
		t.Fatal("wrong password accepted")
	}
}

func TestEmptyPasswordMeansOpenRoom(t *testing.T) {
	h := NewHasher()

	hash, err := h.Hash("")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash != nil {
		t.Fatal("empty password should produce no hash")
	}

	if !h.Verify(nil, "anything") {
		t.Fatal("nil hash should accept any password")
	}
}

func TestTooLongPassword(t *testing.T) {
	h := NewHasher()

	if _, err := h.Hash(strings.Repeat("a", 73)); err != ErrTooLong {
		t.Fatalf("err = %v, want ErrTooLong", err)
	}
}
