package codicefiscale

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/coolbeans/fiscale/pkg/places"
)

const vowels = "AEIOU"

// Normalize strips all whitespace from candidate and uppercases it. Applied
// before any structural check.
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

// Codec encodes and decodes fiscal codes against a place code book.
type Codec struct {
	places *places.Registry
}

// NewCodec creates a codec backed by the given registry. A nil registry
// falls back to the hardcoded seed code book.
func NewCodec(registry *places.Registry) *Codec {
	if registry == nil {
		registry = places.NewSeededRegistry()
	}
	return &Codec{places: registry}
}

// Encode builds the 16-character fiscal code for a person.
func (c *Codec) Encode(person Person) (string, error) {
	lastNameCode, err := surnameCode(person.LastName)
	if err != nil {
		return "", fmt.Errorf("last name: %w", err)
	}
	firstNameCode, err := nameCode(person.FirstName)
	if err != nil {
		return "", fmt.Errorf("first name: %w", err)
	}

	gender := strings.ToUpper(strings.TrimSpace(person.Gender))
	if gender != "M" && gender != "F" {
		return "", fmt.Errorf("%w: gender must be M or F", ErrMalformedInput)
	}
	if person.BirthDate.IsZero() {
		return "", fmt.Errorf("%w: birth date is required", ErrMalformedInput)
	}

	day := person.BirthDate.Day()
	if gender == "F" {
		day += 40
	}
	datePart := fmt.Sprintf("%02d%c%02d",
		person.BirthDate.Year()%100,
		monthCodes[person.BirthDate.Month()-1],
		day)

	place, err := c.resolvePlace(person.Birthplace)
	if err != nil {
		return "", err
	}

	partial := lastNameCode + firstNameCode + datePart + place.Code
	checkChar, err := ComputeCheckChar(partial)
	if err != nil {
		return "", err
	}
	return partial + checkChar, nil
}

// Decode decomposes a fiscal code. Omocodia substitutions are accepted and
// normalized away before the numeric parts are interpreted; the check
// character is verified against the code as written. The birthplace pointer
// is nil when the code book has no entry for the Belfiore code.
func (c *Codec) Decode(code string) (Decoded, error) {
	return decode(code, c.places)
}

// IsValid reports whether candidate is a valid fiscal code: correct shape
// after normalization, a real calendar date, and a matching check character.
// It never fails on malformed input, and does not require the birthplace to
// appear in any code book.
func IsValid(candidate string) bool {
	_, err := decode(candidate, nil)
	return err == nil
}

func decode(code string, registry *places.Registry) (Decoded, error) {
	normalized := Normalize(code)
	if len(normalized) != Length {
		return Decoded{}, fmt.Errorf("%w: must be exactly %d characters", ErrMalformedInput, Length)
	}
	if !codePattern.MatchString(normalized) {
		return Decoded{}, fmt.Errorf("%w: not a structurally valid fiscal code", ErrMalformedInput)
	}

	expectedCheckChar, err := ComputeCheckChar(normalized[:Length-1])
	if err != nil {
		return Decoded{}, err
	}
	if normalized[Length-1:] != expectedCheckChar {
		return Decoded{}, fmt.Errorf("check character mismatch: want %s", expectedCheckChar)
	}

	canonical := canonicalize(normalized)

	year := int(canonical[6]-'0')*10 + int(canonical[7]-'0')
	month := strings.IndexByte(monthCodes, canonical[8]) + 1
	day := int(canonical[9]-'0')*10 + int(canonical[10]-'0')

	gender := "M"
	if day > 40 {
		gender = "F"
		day -= 40
	}
	if day < 1 || day > 31 {
		return Decoded{}, fmt.Errorf("%w: day %d out of range", ErrMalformedInput, day)
	}

	// Two-digit years after the current one belong to the previous century.
	currentYear := time.Now().Year()
	fullYear := currentYear/100*100 + year
	if fullYear > currentYear {
		fullYear -= 100
	}

	birthDate := time.Date(fullYear, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if birthDate.Day() != day || birthDate.Month() != time.Month(month) {
		return Decoded{}, fmt.Errorf("%w: no such calendar date", ErrMalformedInput)
	}

	decoded := Decoded{
		Code:           normalized,
		Omocode:        canonical != normalized,
		LastNameCode:   normalized[0:3],
		FirstNameCode:  normalized[3:6],
		Gender:         gender,
		BirthDate:      birthDate,
		BirthplaceCode: canonical[11:15],
		CheckChar:      normalized[Length-1:],
	}
	if registry != nil {
		if place, ok := registry.Get(decoded.BirthplaceCode); ok {
			decoded.Birthplace = place
		}
	}
	return decoded, nil
}

// resolvePlace accepts a Belfiore code or a place name.
func (c *Codec) resolvePlace(birthplace string) (*places.Place, error) {
	query := strings.ToUpper(strings.TrimSpace(birthplace))
	if query == "" {
		return nil, fmt.Errorf("%w: birthplace is required", ErrMalformedInput)
	}

	if place, ok := c.places.Get(query); ok {
		return place, nil
	}
	if place, ok := c.places.Lookup(query); ok {
		return place, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPlace, birthplace)
}

// surnameCode takes the consonants of the surname followed by its vowels,
// padded with X to three characters.
func surnameCode(lastName string) (string, error) {
	letters := places.NormalizeName(lastName)
	if letters == "" {
		return "", fmt.Errorf("%w: no usable letters", ErrMalformedInput)
	}
	consonants, nameVowels := splitLetters(letters)
	return pad3(consonants + nameVowels), nil
}

// nameCode is surnameCode with the rule of the four consonants: when the
// first name has at least four consonants, the first, third, and fourth are
// taken.
func nameCode(firstName string) (string, error) {
	letters := places.NormalizeName(firstName)
	if letters == "" {
		return "", fmt.Errorf("%w: no usable letters", ErrMalformedInput)
	}
	consonants, nameVowels := splitLetters(letters)
	if len(consonants) >= 4 {
		return string([]byte{consonants[0], consonants[2], consonants[3]}), nil
	}
	return pad3(consonants + nameVowels), nil
}

func splitLetters(letters string) (consonants string, nameVowels string) {
	for i := 0; i < len(letters); i++ {
		if strings.IndexByte(vowels, letters[i]) >= 0 {
			nameVowels += string(letters[i])
		} else {
			consonants += string(letters[i])
		}
	}
	return consonants, nameVowels
}

func pad3(letters string) string {
	for len(letters) < 3 {
		letters += "X"
	}
	return letters[:3]
}
