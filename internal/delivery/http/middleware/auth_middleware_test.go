package middleware

import "testing"

func TestBearerTokenFromHeader(t *testing.T) {
	cases := []struct {
		name   string
		header string
		token  string
		ok     bool
	}{
		{"plain", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"case insensitive scheme", "bearer tok", "tok", true},
		{"padded", "  Bearer   tok  ", "tok", true},
		{"empty", "", "", false},
		{"scheme only", "Bearer", "", false},
		{"blank token", "Bearer   ", "", false},
		{"wrong scheme", "Basic dXNlcg==", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tok, ok := BearerTokenFromHeader(tc.header)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if tok != tc.token {
				t.Fatalf("token = %q, want %q", tok, tc.token)
			}
		})
	}
}
