package player

import "testing"

func TestFingerprint_Deterministic(t *testing.T) {
	a := Fingerprint("Alice", 25, RoleBatsman)
	b := Fingerprint("Alice", 25, RoleBatsman)
	if a != b {
		t.Fatalf("expected identical fingerprints, got %s vs %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64-char hex digest, got %d chars", len(a))
	}
}

func TestFingerprint_NormalizesName(t *testing.T) {
	base := Fingerprint("Alice", 25, RoleBatsman)

	for _, name := range []string{" alice ", "ALICE", "\tAlice\n", "aLiCe"} {
		if got := Fingerprint(name, 25, RoleBatsman); got != base {
			t.Fatalf("expected %q to normalize to the same fingerprint", name)
		}
	}
}

func TestFingerprint_DiffersOnAgeAndType(t *testing.T) {
	base := Fingerprint("Alice", 25, RoleBatsman)

	if got := Fingerprint("Alice", 26, RoleBatsman); got == base {
		t.Fatalf("expected different fingerprint for different age")
	}
	if got := Fingerprint("Alice", 25, RoleBowler); got == base {
		t.Fatalf("expected different fingerprint for different role type")
	}
	if got := Fingerprint("Alicia", 25, RoleBatsman); got == base {
		t.Fatalf("expected different fingerprint for different name")
	}
}
