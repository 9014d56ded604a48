// Package partitaiva validates, encodes, and decodes Italian VAT numbers
// (Partita IVA).
//
// A complete VAT number is exactly 11 decimal digits: a 10-digit base number
// identifying the registrant, followed by a single check digit computed with
// a Luhn-style mod-10 checksum. Example: base "0123456789" carries check
// digit "7", giving the complete number "01234567897".
//
// All operations are pure functions of their input: no shared state, no I/O,
// safe for concurrent use.
package partitaiva

import "errors"

// ErrMalformedInput reports input that violates the length or
// character-class precondition of ComputeCheckDigit or Encode. The wrapping
// message names the violated precondition; inspect with errors.Is.
var ErrMalformedInput = errors.New("malformed input")

// Decoded is the decomposition of a candidate VAT number.
//
// Component fields are populated only when the normalized input has the
// exact 11-digit numeric shape: a checksum mismatch on a well-formed number
// still yields populated components with Valid false, while a shape failure
// leaves them empty.
type Decoded struct {
	RawInput           string `json:"raw_input"`
	WellFormed         bool   `json:"is_well_formed"`
	BaseNumber         string `json:"base_number,omitempty"`
	SuppliedCheckDigit string `json:"supplied_check_digit,omitempty"`
	ComputedCheckDigit string `json:"computed_check_digit,omitempty"`
	Valid              bool   `json:"is_valid"`
}
