package codicefiscale

import "testing"

func TestIsOmocode(t *testing.T) {
	cases := []struct {
		name     string
		code     string
		expected bool
	}{
		{name: "canonical", code: "RSSMRA80A01H501U", expected: false},
		{name: "one_substitution", code: "RSSMRA80A01H50MM", expected: true},
		{name: "lowercase_substitution", code: "rssmra80a01h50mm", expected: true},
		{name: "not_a_code", code: "hello", expected: false},
		{name: "empty", code: "", expected: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsOmocode(tc.code); got != tc.expected {
				t.Errorf("IsOmocode(%q): got %v, want %v", tc.code, got, tc.expected)
			}
		})
	}
}

func TestVariants(t *testing.T) {
	variants, err := Variants("RSSMRA80A01H501U")
	if err != nil {
		t.Fatalf("Variants failed: %v", err)
	}

	if len(variants) != 127 {
		t.Fatalf("variant count: got %d, want 127", len(variants))
	}

	seen := make(map[string]bool, len(variants))
	foundSingle := false
	for _, variant := range variants {
		if variant == "RSSMRA80A01H501U" {
			t.Error("variants must not include the canonical code")
		}
		if seen[variant] {
			t.Errorf("duplicate variant %q", variant)
		}
		seen[variant] = true

		if !IsValid(variant) {
			t.Errorf("variant %q should have a valid check character", variant)
		}
		if !IsOmocode(variant) {
			t.Errorf("variant %q should be an omocode", variant)
		}
		if variant == "RSSMRA80A01H50MM" {
			foundSingle = true
		}
	}
	if !foundSingle {
		t.Error("expected single-substitution variant RSSMRA80A01H50MM")
	}
}

func TestVariants_FromOmocodeInput(t *testing.T) {
	// Variants of an omocode are generated from its canonical form, so both
	// calls enumerate the same set.
	fromCanonical, err := Variants("RSSMRA80A01H501U")
	if err != nil {
		t.Fatalf("Variants failed: %v", err)
	}
	fromOmocode, err := Variants("RSSMRA80A01H50MM")
	if err != nil {
		t.Fatalf("Variants failed: %v", err)
	}

	if len(fromCanonical) != len(fromOmocode) {
		t.Fatalf("variant sets differ in size: %d vs %d", len(fromCanonical), len(fromOmocode))
	}
	for i := range fromCanonical {
		if fromCanonical[i] != fromOmocode[i] {
			t.Fatalf("variant sets differ at %d: %q vs %q", i, fromCanonical[i], fromOmocode[i])
		}
	}
}

func TestVariants_Malformed(t *testing.T) {
	if _, err := Variants("not a fiscal code"); err == nil {
		t.Error("Variants should reject malformed input")
	}
}

func TestVariantsDecodeLikeCanonical(t *testing.T) {
	codec := NewCodec(nil)

	canonical, err := codec.Decode("RSSMRA80A01H501U")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	variants, err := Variants("RSSMRA80A01H501U")
	if err != nil {
		t.Fatalf("Variants failed: %v", err)
	}

	// Spot-check a handful; the full set is covered by TestVariants.
	for _, variant := range variants[:8] {
		decoded, err := codec.Decode(variant)
		if err != nil {
			t.Fatalf("Decode(%q) failed: %v", variant, err)
		}
		if !decoded.Omocode {
			t.Errorf("%q should decode as omocode", variant)
		}
		if !decoded.BirthDate.Equal(canonical.BirthDate) {
			t.Errorf("%q: birth date drifted: %v", variant, decoded.BirthDate)
		}
		if decoded.BirthplaceCode != canonical.BirthplaceCode {
			t.Errorf("%q: birthplace code drifted: %q", variant, decoded.BirthplaceCode)
		}
		if decoded.Gender != canonical.Gender {
			t.Errorf("%q: gender drifted: %q", variant, decoded.Gender)
		}
	}
}
