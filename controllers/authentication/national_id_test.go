package authentication

import "testing"

func TestValidNationalID(t *testing.T) {
	cases := []struct {
		id    string
		valid bool
	}{
		{"1712345675", true},  // check digit 5
		{"1712345678", false}, // wrong check digit
		{"9912345675", false}, // invalid province
		{"1762345675", false}, // third digit >= 6
		{"171234567", false},  // too short
		{"17123456789", false},
		{"17123A5675", false},
		{"", false},
	}

	for _, c := range cases {
		if got := ValidNationalID(c.id); got != c.valid {
			t.Errorf("ValidNationalID(%q) = %v, want %v", c.id, got, c.valid)
		}
	}
}
