package partitaiva

import (
	"fmt"
	"strings"
	"unicode"
)

// BaseLength is the number of digits in a base number, excluding the check
// digit.
const BaseLength = 10

// FullLength is the number of digits in a complete VAT number.
const FullLength = 11

// Normalize strips all whitespace from candidate and uppercases any letters.
// IsValid and Decode apply it before their structural shape check; letters
// are never valid in this format, but uppercasing them first makes the shape
// check fail predictably.
func Normalize(candidate string) string {
	var normalized strings.Builder
	normalized.Grow(len(candidate))
	for _, r := range candidate {
		if unicode.IsSpace(r) {
			continue
		}
		normalized.WriteRune(unicode.ToUpper(r))
	}
	return normalized.String()
}

// ComputeCheckDigit calculates the check digit for a 10-digit base number.
//
// Positions are 1-indexed from the left: digits at odd positions are added
// directly, digits at even positions are doubled, with 9 subtracted whenever
// the doubling reaches two digits. The check digit brings the total up to
// the next multiple of 10.
func ComputeCheckDigit(baseNumber string) (string, error) {
	if len(baseNumber) != BaseLength {
		return "", fmt.Errorf("%w: must be exactly %d digits", ErrMalformedInput, BaseLength)
	}

	oddSum := 0
	evenSum := 0
	for i := 0; i < len(baseNumber); i++ {
		ch := baseNumber[i]
		if ch < '0' || ch > '9' {
			return "", fmt.Errorf("%w: must contain only digits", ErrMalformedInput)
		}
		digitValue := int(ch - '0')

		if i%2 == 0 {
			// odd position, 1-based
			oddSum += digitValue
		} else {
			doubled := digitValue * 2
			if doubled >= 10 {
				doubled -= 9
			}
			evenSum += doubled
		}
	}

	checkDigit := (10 - (oddSum+evenSum)%10) % 10
	return string(rune('0' + checkDigit)), nil
}

// IsValid reports whether candidate is a valid VAT number: exactly 11
// decimal digits after normalization, with the last digit matching the
// checksum of the first ten. IsValid never fails; any malformed input is
// simply invalid.
func IsValid(candidate string) bool {
	normalized := Normalize(candidate)
	if len(normalized) != FullLength || !isDigits(normalized) {
		return false
	}

	expectedCheckDigit, err := ComputeCheckDigit(normalized[:BaseLength])
	if err != nil {
		return false
	}
	return normalized[BaseLength:] == expectedCheckDigit
}

// Encode appends the check digit to a 10-digit base number, producing the
// complete 11-digit VAT number. Unlike IsValid, no normalization is applied:
// the base must already be clean.
func Encode(baseNumber string) (string, error) {
	if len(baseNumber) != BaseLength || !isDigits(baseNumber) {
		return "", fmt.Errorf("%w: base number must be exactly %d digits", ErrMalformedInput, BaseLength)
	}

	checkDigit, err := ComputeCheckDigit(baseNumber)
	if err != nil {
		return "", err
	}
	return baseNumber + checkDigit, nil
}

// Decode decomposes a candidate VAT number into its components. It never
// fails: input that does not have the 11-digit shape yields a Decoded with
// WellFormed and Valid false and empty component fields. RawInput always
// preserves the original, unnormalized input.
func Decode(candidate string) Decoded {
	decoded := Decoded{RawInput: candidate}

	normalized := Normalize(candidate)
	if len(normalized) != FullLength || !isDigits(normalized) {
		return decoded
	}

	decoded.WellFormed = true
	decoded.BaseNumber = normalized[:BaseLength]
	decoded.SuppliedCheckDigit = normalized[BaseLength:]

	computedCheckDigit, err := ComputeCheckDigit(decoded.BaseNumber)
	if err != nil {
		return decoded
	}
	decoded.ComputedCheckDigit = computedCheckDigit
	decoded.Valid = decoded.SuppliedCheckDigit == computedCheckDigit
	return decoded
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
