package httpapi

import "testing"

func TestParseNonNegativeInt(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"42", 42, false},
		{"", 0, true},
		{"-1", 0, true},
		{"12a", 0, true},
	}
	for _, c := range cases {
		got, err := parseNonNegativeInt(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("parseNonNegativeInt(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseNonNegativeInt(%q): unexpected error %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("parseNonNegativeInt(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}
