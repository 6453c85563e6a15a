package buildhash

import "testing"

func TestComputeDeterministic(t *testing.T) {
	raw := [][]byte{[]byte("a: 1"), []byte("b: 2"), nil, []byte("c: 3")}

	h1 := Compute("1.0.0", raw)
	h2 := Compute("1.0.0", raw)

	if h1 == "" {
		t.Fatal("Compute() returned empty hash")
	}
	if h1 != h2 {
		t.Errorf("Compute() not deterministic: %q vs %q", h1, h2)
	}
}

func TestComputeChangesWithContent(t *testing.T) {
	base := Compute("1.0.0", [][]byte{[]byte("a: 1"), nil})

	tests := []struct {
		name    string
		version string
		raw     [][]byte
	}{
		{"different version", "1.0.1", [][]byte{[]byte("a: 1"), nil}},
		{"different content", "1.0.0", [][]byte{[]byte("a: 2"), nil}},
		{"content moved between files", "1.0.0", [][]byte{nil, []byte("a: 1")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compute(tt.version, tt.raw); got == base {
				t.Errorf("Compute() = %q, want a hash different from base", got)
			}
		})
	}
}

func TestComputeBoundaryAmbiguity(t *testing.T) {
	// "ab" + "c" must not hash the same as "a" + "bc".
	h1 := Compute("v", [][]byte{[]byte("ab"), []byte("c")})
	h2 := Compute("v", [][]byte{[]byte("a"), []byte("bc")})

	if h1 == h2 {
		t.Error("file boundaries do not affect the hash")
	}
}
