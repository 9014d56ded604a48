package codicefiscale

import (
	"errors"
	"testing"
)

func TestComputeCheckChar(t *testing.T) {
	cases := []struct {
		name     string
		partial  string
		expected string
	}{
		{name: "male_rome", partial: "RSSMRA80A01H501", expected: "U"},
		{name: "female_milan", partial: "BNCMRA92D55F205", expected: "F"},
		{name: "male_turin", partial: "VRDGPP85T10L219", expected: "G"},
		{name: "omocode_variant", partial: "RSSMRA80A01H50M", expected: "M"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			checkChar, err := ComputeCheckChar(tc.partial)
			if err != nil {
				t.Fatalf("ComputeCheckChar(%q) failed: %v", tc.partial, err)
			}
			if checkChar != tc.expected {
				t.Errorf("check char: got %q, want %q", checkChar, tc.expected)
			}
		})
	}
}

func TestComputeCheckChar_Malformed(t *testing.T) {
	cases := []struct {
		name    string
		partial string
	}{
		{name: "empty", partial: ""},
		{name: "too_short", partial: "RSSMRA80A01H50"},
		{name: "too_long", partial: "RSSMRA80A01H501U"},
		{name: "lowercase", partial: "rssmra80a01h501"},
		{name: "punctuation", partial: "RSSMRA80A01H50!"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputeCheckChar(tc.partial)
			if err == nil {
				t.Fatalf("ComputeCheckChar(%q) should fail", tc.partial)
			}
			if !errors.Is(err, ErrMalformedInput) {
				t.Errorf("error should wrap ErrMalformedInput, got: %v", err)
			}
		})
	}
}

func TestOddValuesCoverAlphabet(t *testing.T) {
	for ch := byte('A'); ch <= 'Z'; ch++ {
		if _, ok := oddValues[ch]; !ok {
			t.Errorf("odd table missing letter %c", ch)
		}
	}
	for ch := byte('0'); ch <= '9'; ch++ {
		if _, ok := oddValues[ch]; !ok {
			t.Errorf("odd table missing digit %c", ch)
		}
	}
}
