package usecase

import (
	"strings"
	"testing"
)

func TestGenerateSellerCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code, err := generateSellerCode()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if !validSellerCode(code) {
			t.Fatalf("generated code failed validation: %q", code)
		}
		if len(code) != 23 {
			t.Fatalf("unexpected length %d for %q", len(code), code)
		}
		for _, r := range []string{"O", "0", "I", "1"} {
			if strings.Contains(code[3:], r) {
				t.Fatalf("ambiguous symbol %s in %q", r, code)
			}
		}
		if seen[code] {
			t.Fatalf("duplicate code generated: %q", code)
		}
		seen[code] = true
	}
}

func TestValidSellerCode(t *testing.T) {
	cases := []struct {
		name string
		code string
		want bool
	}{
		{"well formed", "SK-ABCDE-FGHJK-LMNPQ-RSTUV", true},
		{"digits allowed", "SK-23456-789AB-CDEFG-HJKLM", true},
		{"empty", "", false},
		{"garbage", "not-a-code", false},
		{"lowercase", "sk-abcde-fghjk-lmnpq-rstuv", false},
		{"missing prefix", "ABCDE-FGHJK-LMNPQ-RSTUV", false},
		{"short group", "SK-ABCD-FGHJK-LMNPQ-RSTUV", false},
		{"three groups", "SK-ABCDE-FGHJK-LMNPQ", false},
		{"five groups", "SK-ABCDE-FGHJK-LMNPQ-RSTUV-WXYZ2", false},
		{"ambiguous zero", "SK-ABCD0-FGHJK-LMNPQ-RSTUV", false},
		{"ambiguous oh", "SK-ABCDO-FGHJK-LMNPQ-RSTUV", false},
		{"ambiguous one", "SK-ABCD1-FGHJK-LMNPQ-RSTUV", false},
		{"trailing space", "SK-ABCDE-FGHJK-LMNPQ-RSTUV ", false},
		{"embedded", "xSK-ABCDE-FGHJK-LMNPQ-RSTUVx", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := validSellerCode(tc.code); got != tc.want {
				t.Errorf("validSellerCode(%q) = %v, want %v", tc.code, got, tc.want)
			}
		})
	}
}

func TestHashSellerCode(t *testing.T) {
	const code = "SK-ABCDE-FGHJK-LMNPQ-RSTUV"

	h1 := hashSellerCode(code)
	h2 := hashSellerCode(code)
	if h1 != h2 {
		t.Fatalf("hash not deterministic: %s vs %s", h1, h2)
	}
	if len(h1) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(h1))
	}
	if h1 == hashSellerCode("SK-ABCDE-FGHJK-LMNPQ-RSTUW") {
		t.Fatal("distinct codes hashed to the same value")
	}
	if h1 == code {
		t.Fatal("hash must not equal plaintext")
	}
}
