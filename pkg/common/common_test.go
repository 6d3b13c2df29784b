package common

import "testing"

func TestIfEmptyStr(t *testing.T) {
	if got := IfEmptyStr("", "postgres"); got != "postgres" {
		t.Errorf("empty src = %q, want default", got)
	}
	if got := IfEmptyStr("  ", "postgres"); got != "postgres" {
		t.Errorf("blank src = %q, want default", got)
	}
	if got := IfEmptyStr("sqlite", "postgres"); got != "sqlite" {
		t.Errorf("src = %q, want sqlite", got)
	}
}

func TestSecureEqual(t *testing.T) {
	h := Sha256HashWithSalt("letmein", "salt")
	if !SecureEqual(h, Sha256HashWithSalt("letmein", "salt")) {
		t.Error("equal hashes must compare equal")
	}
	if SecureEqual(h, Sha256HashWithSalt("letmeout", "salt")) {
		t.Error("different inputs must not compare equal")
	}
}

func TestUUIDBase32Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := UUIDBase32()
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
