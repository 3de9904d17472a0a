package credentials

import "testing"

func TestArgon2_TrimmedCaseSensitiveEquality(t *testing.T) {
	h := NewArgon2(LightParams)

	hash, err := h.Hash(" 2222 ")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	cases := []struct {
		in   string
		want bool
	}{
		{"2222", true},
		{"  2222\t", true},
		{"2223", false},
		{"", false},
	}
	for _, c := range cases {
		if got := h.Compare(c.in, hash); got != c.want {
			t.Fatalf("Compare(%q) = %v, want %v", c.in, got, c.want)
		}
	}

	hash, _ = h.Hash("Pamuk")
	if h.Compare("pamuk", hash) {
		t.Fatalf("comparison must be case sensitive")
	}
}

func TestArgon2_EmptyOrGarbageHash(t *testing.T) {
	h := NewArgon2(LightParams)
	if h.Compare("1234", "") {
		t.Fatalf("empty hash must never match")
	}
	if h.Compare("1234", "not-a-hash") {
		t.Fatalf("garbage hash must never match")
	}
}
