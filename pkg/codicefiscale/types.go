// Package codicefiscale validates, encodes, and decodes Italian fiscal codes
// (Codice Fiscale).
//
// A fiscal code is 16 characters: three letters from the surname, three from
// the first name, two digits of the birth year, a month letter, two digits of
// the birth day (offset by 40 for women), the four-character Belfiore code of
// the birthplace, and a check character. Seven of the numeric positions may
// carry omocodia substitution letters when two people would otherwise share
// the same code.
//
// Encoding and decoding resolve birthplaces through a places.Registry;
// validation and check-character computation are pure functions.
package codicefiscale

import (
	"errors"
	"regexp"
	"time"

	"github.com/coolbeans/fiscale/pkg/places"
)

// Length is the number of characters in a fiscal code.
const Length = 16

// ErrMalformedInput reports input that violates a length or character-class
// precondition. Inspect with errors.Is.
var ErrMalformedInput = errors.New("malformed input")

// ErrUnknownPlace reports a birthplace that the code book cannot resolve.
var ErrUnknownPlace = errors.New("unknown birthplace")

// monthCodes maps month 1-12 to its code letter, index month-1.
const monthCodes = "ABCDEHLMPRST"

// codePattern is the structural shape of a normalized fiscal code, omocodia
// substitutions included. It does not check the calendar or the checksum.
var codePattern = regexp.MustCompile(`^[A-Z]{6}[0-9LMNPQRSTUV]{2}[ABCDEHLMPRST][0-9LMNPQRSTUV]{2}[A-Z][0-9LMNPQRSTUV]{3}[A-Z]$`)

// Person carries the personal data a fiscal code encodes.
type Person struct {
	LastName   string    `json:"lastname"`
	FirstName  string    `json:"firstname"`
	Gender     string    `json:"gender"` // "M" or "F"
	BirthDate  time.Time `json:"birthdate"`
	Birthplace string    `json:"birthplace"` // place name or Belfiore code
}

// Decoded is the decomposition of a valid fiscal code.
type Decoded struct {
	Code           string        `json:"code"`
	Omocode        bool          `json:"omocode"`
	LastNameCode   string        `json:"lastname_code"`
	FirstNameCode  string        `json:"firstname_code"`
	Gender         string        `json:"gender"`
	BirthDate      time.Time     `json:"birthdate"`
	BirthplaceCode string        `json:"birthplace_code"`
	Birthplace     *places.Place `json:"birthplace,omitempty"`
	CheckChar      string        `json:"check_char"`
}
