package domain

import "testing"

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+7 999 000-00-00", "+79990000000"},
		{"8 (999) 000-00-00", "+79990000000"},
		{"79990000000", "+79990000000"},
		{"9990000000", "+79990000000"},
		{"+7-999-000-00-00", "+79990000000"},
		{"8999 000 00 00", "+79990000000"},
		{"abc", "+7"},
		{"", "+7"},
	}

	for _, tc := range cases {
		if got := NormalizePhone(tc.in); got != tc.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizePhone_Idempotent(t *testing.T) {
	inputs := []string{"+7 999 000-00-00", "89990000000", "garbage 123", "+79990000000"}
	for _, in := range inputs {
		once := NormalizePhone(in)
		twice := NormalizePhone(once)
		if once != twice {
			t.Errorf("NormalizePhone not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizePhone_Shape(t *testing.T) {
	inputs := []string{"+7 999 000-00-00", "tel: 8 (912) 345-67-89", "000", "x"}
	for _, in := range inputs {
		got := NormalizePhone(in)
		if len(got) == 0 || got[0] != '+' {
			t.Fatalf("NormalizePhone(%q) = %q, want leading +", in, got)
		}
		for i := 1; i < len(got); i++ {
			if got[i] < '0' || got[i] > '9' {
				t.Fatalf("NormalizePhone(%q) = %q, contains non-digit after +", in, got)
			}
		}
	}
}
