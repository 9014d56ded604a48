package codicefiscale

import (
	"fmt"
	"strings"
)

// omocodeLetters maps digit d to its omocodia substitution letter,
// omocodeLetters[d].
const omocodeLetters = "LMNPQRSTUV"

// omocodePositions are the 0-based positions of the seven numeric characters
// eligible for omocodia substitution, rightmost first as substitutions are
// applied in practice.
var omocodePositions = [7]int{14, 13, 12, 10, 9, 7, 6}

// IsOmocode reports whether code is structurally a fiscal code carrying at
// least one omocodia substitution letter. It does not verify the checksum.
func IsOmocode(code string) bool {
	normalized := Normalize(code)
	if !codePattern.MatchString(normalized) {
		return false
	}
	for _, position := range omocodePositions {
		if normalized[position] >= 'A' && normalized[position] <= 'Z' {
			return true
		}
	}
	return false
}

// canonicalize replaces omocodia substitution letters with the digits they
// stand for. The input must already match codePattern.
func canonicalize(code string) string {
	chars := []byte(code)
	for _, position := range omocodePositions {
		ch := chars[position]
		if ch >= '0' && ch <= '9' {
			continue
		}
		chars[position] = byte('0' + strings.IndexByte(omocodeLetters, ch))
	}
	return string(chars)
}

// Variants returns the 127 omocodia variants of a fiscal code: every
// non-empty combination of the seven substitutable positions, each with its
// check character recomputed. The input may itself be an omocode; variants
// are generated from its canonical form, which is not included in the
// result.
func Variants(code string) ([]string, error) {
	normalized := Normalize(code)
	if !codePattern.MatchString(normalized) {
		return nil, fmt.Errorf("%w: not a structurally valid fiscal code", ErrMalformedInput)
	}

	canonical := canonicalize(normalized)

	variants := make([]string, 0, 1<<len(omocodePositions)-1)
	for mask := 1; mask < 1<<len(omocodePositions); mask++ {
		chars := []byte(canonical[:Length-1])
		for bit, position := range omocodePositions {
			if mask&(1<<bit) == 0 {
				continue
			}
			chars[position] = omocodeLetters[chars[position]-'0']
		}
		checkChar, err := ComputeCheckChar(string(chars))
		if err != nil {
			return nil, err
		}
		variants = append(variants, string(chars)+checkChar)
	}
	return variants, nil
}
