package fieldmask

import (
	"errors"
	"testing"
)

func newMasker(t *testing.T) *AESMasker {
	t.Helper()
	m, err := NewAESMasker([]byte("0123456789abcdef0123456789abcdef"))
	if err != nil {
		t.Fatalf("NewAESMasker: %v", err)
	}
	return m
}

func TestMaskRoundTrip(t *testing.T) {
	m := newMasker(t)

	for _, plain := range []string{"", "a", "budi@example.com", "203.0.113.7"} {
		masked, err := m.Mask(plain)
		if err != nil {
			t.Fatalf("Mask(%q): %v", plain, err)
		}
		if masked == plain && plain != "" {
			t.Errorf("Mask(%q) left the value unchanged", plain)
		}
		got, err := m.Unmask(masked)
		if err != nil {
			t.Fatalf("Unmask(%q): %v", masked, err)
		}
		if got != plain {
			t.Errorf("round trip = %q, want %q", got, plain)
		}
	}
}

func TestMaskIsRandomized(t *testing.T) {
	m := newMasker(t)

	a, err := m.Mask("same input")
	if err != nil {
		t.Fatal(err)
	}
	b, err := m.Mask("same input")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two Mask calls on the same input produced the same output")
	}
}

func TestMaskDeterministic(t *testing.T) {
	m := newMasker(t)

	a, err := m.MaskDeterministic("budi@example.com")
	if err != nil {
		t.Fatal(err)
	}
	b, err := m.MaskDeterministic("budi@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("deterministic mask of equal inputs differs, unique index would break")
	}

	other, err := m.MaskDeterministic("siti@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if other == a {
		t.Error("different inputs masked to the same value")
	}

	plain, err := m.Unmask(a)
	if err != nil {
		t.Fatalf("Unmask: %v", err)
	}
	if plain != "budi@example.com" {
		t.Errorf("Unmask = %q, want the original email", plain)
	}
}

func TestUnmaskRejectsGarbage(t *testing.T) {
	m := newMasker(t)

	for _, masked := range []string{"not base64!!", "c2hvcnQ="} {
		if _, err := m.Unmask(masked); !errors.Is(err, ErrInvalidMaskedValue) {
			t.Errorf("Unmask(%q) err = %v, want ErrInvalidMaskedValue", masked, err)
		}
	}
}

func TestNewAESMaskerRejectsBadKey(t *testing.T) {
	if _, err := NewAESMasker([]byte("short")); err == nil {
		t.Error("expected an error for a 5 byte key")
	}
}

func TestNoop(t *testing.T) {
	var m Masker = Noop{}

	masked, err := m.MaskDeterministic("plain")
	if err != nil || masked != "plain" {
		t.Errorf("MaskDeterministic = %q, %v; want passthrough", masked, err)
	}
	plain, err := m.Unmask("plain")
	if err != nil || plain != "plain" {
		t.Errorf("Unmask = %q, %v; want passthrough", plain, err)
	}
}
