package crypto

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func newTestHasher() *Hasher {
	return NewHasher(bcrypt.MinCost)
}

func TestHash(t *testing.T) {
	hash, err := newTestHasher().Hash("correct-horse-battery-staple")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}

	if hash == "" {
		t.Fatal("Hash() returned empty string")
	}
	if !strings.HasPrefix(hash, "$2a$04$") {
		t.Errorf("Hash() = %q, want bcrypt modular crypt format with cost 4", hash)
	}
	if strings.Contains(hash, "correct-horse-battery-staple") {
		t.Error("Hash() leaked plaintext into hash")
	}
}

func TestVerifyCorrect(t *testing.T) {
	h := newTestHasher()
	hash, err := h.Hash("Str0ng!Pass")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}

	if !h.Verify("Str0ng!Pass", hash) {
		t.Error("Verify() returned false for correct password")
	}
}

func TestVerifyWrong(t *testing.T) {
	h := newTestHasher()
	hash, err := h.Hash("correct-password")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}

	if h.Verify("wrong-password", hash) {
		t.Error("Verify() returned true for wrong password")
	}
}

func TestHashProducesDifferentHashes(t *testing.T) {
	h := newTestHasher()

	hash1, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}
	hash2, err := h.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() unexpected error: %v", err)
	}

	if hash1 == hash2 {
		t.Error("Hash() produced identical hashes for same password (salt should differ)")
	}
}

func TestVerifyInvalidHash(t *testing.T) {
	h := newTestHasher()
	for _, hash := range []string{"", "invalid-hash-format", "$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA"} {
		if h.Verify("password", hash) {
			t.Errorf("Verify() returned true for malformed hash %q", hash)
		}
	}
}

func TestHashTooLong(t *testing.T) {
	_, err := newTestHasher().Hash(strings.Repeat("a", 73))
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("Hash() error = %v, want ErrPasswordTooLong", err)
	}
}

func TestNewHasherClampsCost(t *testing.T) {
	if got := NewHasher(0).cost; got != bcrypt.DefaultCost {
		t.Errorf("NewHasher(0).cost = %d, want %d", got, bcrypt.DefaultCost)
	}
	if got := NewHasher(bcrypt.MinCost).cost; got != bcrypt.MinCost {
		t.Errorf("NewHasher(MinCost).cost = %d, want %d", got, bcrypt.MinCost)
	}
}

func TestDummyHashPrecomputed(t *testing.T) {
	h := newTestHasher()
	if len(h.dummy) == 0 {
		t.Fatal("NewHasher() left the dummy hash empty")
	}
	if cost, err := bcrypt.Cost(h.dummy); err != nil || cost != h.cost {
		t.Errorf("dummy hash cost = %d (err %v), want %d", cost, err, h.cost)
	}

	before := string(h.dummy)
	h.Burn("anything")
	h.Burn("")
	if string(h.dummy) != before {
		t.Error("Burn() changed the dummy hash")
	}
}
