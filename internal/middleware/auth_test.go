package middleware

import "testing"

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		name  string
		authz string
		want  string
		ok    bool
	}{
		{"plain", "Bearer abc.def.ghi", "abc.def.ghi", true},
		{"lowercase scheme", "bearer abc.def.ghi", "abc.def.ghi", true},
		{"double quoted", `Bearer "abc.def.ghi"`, "abc.def.ghi", true},
		{"single quoted", "Bearer 'abc.def.ghi'", "abc.def.ghi", true},
		{"trailing comma junk", "Bearer abc.def.ghi, charset=utf-8", "abc.def.ghi", true},
		{"trailing space junk", "Bearer abc.def.ghi extra", "abc.def.ghi", true},
		{"padded", "Bearer   abc.def.ghi  ", "abc.def.ghi", true},
		{"empty header", "", "", false},
		{"no scheme", "abc.def.ghi", "", false},
		{"wrong scheme", "Basic abc.def.ghi", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractBearerToken(tc.authz)
			if ok != tc.ok || got != tc.want {
				t.Errorf("ExtractBearerToken(%q) = (%q, %v), want (%q, %v)", tc.authz, got, ok, tc.want, tc.ok)
			}
		})
	}
}
