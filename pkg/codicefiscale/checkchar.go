package codicefiscale

import "fmt"

// oddValues is the official conversion table for characters at odd 1-based
// positions. Digits and letters have distinct values; the table is not
// alphabetical by design of the original ministry specification.
var oddValues = map[byte]int{
	'0': 1, '1': 0, '2': 5, '3': 7, '4': 9,
	'5': 13, '6': 15, '7': 17, '8': 19, '9': 21,
	'A': 1, 'B': 0, 'C': 5, 'D': 7, 'E': 9,
	'F': 13, 'G': 15, 'H': 17, 'I': 19, 'J': 21,
	'K': 2, 'L': 4, 'M': 18, 'N': 20, 'O': 11,
	'P': 3, 'Q': 6, 'R': 8, 'S': 12, 'T': 14,
	'U': 16, 'V': 10, 'W': 22, 'X': 25, 'Y': 24,
	'Z': 23,
}

// evenValue converts a character at an even 1-based position: digits map to
// their value, letters to their alphabet position.
func evenValue(ch byte) int {
	if ch >= '0' && ch <= '9' {
		return int(ch - '0')
	}
	return int(ch - 'A')
}

// ComputeCheckChar calculates the check character for the first 15
// characters of a fiscal code. Characters at odd 1-based positions are
// converted through the odd table, characters at even positions through the
// even table; the sum modulo 26 selects a letter A-Z.
func ComputeCheckChar(partial string) (string, error) {
	if len(partial) != Length-1 {
		return "", fmt.Errorf("%w: must be exactly %d characters", ErrMalformedInput, Length-1)
	}

	sum := 0
	for i := 0; i < len(partial); i++ {
		ch := partial[i]
		if _, ok := oddValues[ch]; !ok {
			return "", fmt.Errorf("%w: must contain only digits and uppercase letters", ErrMalformedInput)
		}
		if i%2 == 0 {
			// odd position, 1-based
			sum += oddValues[ch]
		} else {
			sum += evenValue(ch)
		}
	}

	return string(rune('A' + sum%26)), nil
}
