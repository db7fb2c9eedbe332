package game

import "testing"

func TestParseAttributes(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want Attributes
	}{
		{
			name: "modern object",
			raw:  `{"attack":2,"defense":1,"speed":0}`,
			want: Attributes{Attack: 2, Defense: 1, Speed: 0},
		},
		{
			name: "legacy double-encoded string",
			raw:  `"{\"attack\":3,\"defense\":0,\"speed\":0}"`,
			want: Attributes{Attack: 3, Defense: 0, Speed: 0},
		},
		{
			name: "garbage falls back to defaults",
			raw:  "not-json",
			want: DefaultAttributes(),
		},
		{
			name: "string wrapping garbage falls back to defaults",
			raw:  `"still not json"`,
			want: DefaultAttributes(),
		},
		{
			name: "empty payload",
			raw:  "",
			want: DefaultAttributes(),
		},
		{
			name: "missing fields default to 1",
			raw:  `{"attack":2}`,
			want: Attributes{Attack: 2, Defense: 1, Speed: 1},
		},
		{
			name: "explicit zero kept",
			raw:  `{"attack":0,"defense":0,"speed":3}`,
			want: Attributes{Attack: 0, Defense: 0, Speed: 3},
		},
		{
			name: "negative values clamped to zero",
			raw:  `{"attack":-5,"defense":2,"speed":-1}`,
			want: Attributes{Attack: 0, Defense: 2, Speed: 0},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseAttributes(tc.raw); got != tc.want {
				t.Fatalf("ParseAttributes(%q) = %+v, want %+v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestEncodeAttributes_RoundTrip(t *testing.T) {
	a := Attributes{Attack: 2, Defense: 0, Speed: 1}
	if got := ParseAttributes(EncodeAttributes(a)); got != a {
		t.Fatalf("round trip changed attributes: %+v -> %+v", a, got)
	}
}

func TestMaxHealth(t *testing.T) {
	if got := MaxHealth(Attributes{Attack: 2, Defense: 1, Speed: 0}); got != 180 {
		t.Fatalf("expected 180 for defense 1, got %d", got)
	}
	if got := MaxHealth(Attributes{Defense: 0}); got != 150 {
		t.Fatalf("expected 150 for defense 0, got %d", got)
	}
	if got := MaxHealth(Attributes{Defense: 3}); got != 240 {
		t.Fatalf("expected 240 for defense 3, got %d", got)
	}
}
