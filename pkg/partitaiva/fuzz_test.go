package partitaiva

import (
	"strings"
	"testing"
)

// FuzzDecode exercises the decoder with arbitrary input.
// Run with: go test -fuzz=FuzzDecode -fuzztime=30s ./pkg/partitaiva/...
func FuzzDecode(f *testing.F) {
	seeds := []string{
		// Valid numbers
		"01234567897",
		"00000000000",
		"12345678903",
		"98765432103",

		// Valid with whitespace
		"01 234 567 897",
		"0123456789\t7",
		" 01234567897 ",

		// Checksum mismatches
		"01234567890",
		"12345678999",

		// Shape failures
		"",
		"1234567890",
		"123456789012",
		"1234567890A",
		"1234567890a",
		"partita iva",
		"Ω1234567890",
		strings.Repeat("1", 1000),
		strings.Repeat(" ", 1000),
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, candidate string) {
		// Decode must never panic and must agree with IsValid.
		decoded := Decode(candidate)

		if decoded.RawInput != candidate {
			t.Errorf("RawInput not preserved: got %q, want %q", decoded.RawInput, candidate)
		}
		if decoded.Valid != IsValid(candidate) {
			t.Errorf("Decode and IsValid disagree on %q", candidate)
		}
		if decoded.Valid && !decoded.WellFormed {
			t.Errorf("valid input must be well-formed: %q", candidate)
		}
		if !decoded.WellFormed {
			if decoded.BaseNumber != "" || decoded.SuppliedCheckDigit != "" || decoded.ComputedCheckDigit != "" {
				t.Errorf("components populated for shapeless input %q: %+v", candidate, decoded)
			}
			return
		}

		// A well-formed candidate always decomposes into 10+1 digits, and
		// re-encoding the base must reproduce the computed check digit.
		if len(decoded.BaseNumber) != BaseLength || len(decoded.SuppliedCheckDigit) != 1 {
			t.Errorf("bad decomposition of %q: %+v", candidate, decoded)
		}
		encoded, err := Encode(decoded.BaseNumber)
		if err != nil {
			t.Errorf("Encode rejected a well-formed base %q: %v", decoded.BaseNumber, err)
			return
		}
		if encoded != decoded.BaseNumber+decoded.ComputedCheckDigit {
			t.Errorf("Encode and Decode disagree on %q: %q vs %q", candidate, encoded, decoded.BaseNumber+decoded.ComputedCheckDigit)
		}

		// Purity: a second call yields the identical result.
		if Decode(candidate) != decoded {
			t.Errorf("Decode is not deterministic for %q", candidate)
		}
	})
}
