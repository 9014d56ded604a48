// Package places maintains the code book of Belfiore (cadastral) codes that
// Italian fiscal codes use to identify birthplaces.
//
// Each entry maps a four-character Belfiore code to an Italian municipality
// or, for codes starting with Z, a foreign country. The registry ships with
// a hardcoded seed and can load additional entries from YAML code books,
// optionally watching the directory for changes.
package places

import (
	"fmt"
	"regexp"
	"strings"
)

// codePattern is the Belfiore code shape: one letter and three digits.
var codePattern = regexp.MustCompile(`^[A-Z][0-9]{3}$`)

// Place is one entry of the code book.
type Place struct {
	Code     string `yaml:"code" json:"code"`
	Name     string `yaml:"name" json:"name"`
	Province string `yaml:"province,omitempty" json:"province,omitempty"`
	Foreign  bool   `yaml:"foreign,omitempty" json:"foreign,omitempty"`
}

// Validate checks that the place has a well-shaped code and a name, and that
// the Foreign flag agrees with the code's Z prefix.
func (place *Place) Validate() error {
	if !codePattern.MatchString(place.Code) {
		return fmt.Errorf("code %q must be one letter followed by three digits", place.Code)
	}
	if strings.TrimSpace(place.Name) == "" {
		return fmt.Errorf("place %s has no name", place.Code)
	}
	if place.Foreign != strings.HasPrefix(place.Code, "Z") {
		return fmt.Errorf("place %s: foreign flag does not match code prefix", place.Code)
	}
	return nil
}

// codeBook is the YAML file layout: a single top-level list of places.
type codeBook struct {
	Places []Place `yaml:"places"`
}

// NormalizeName canonicalizes a place name for lookup: uppercase, common
// Latin diacritics folded to their base letter, everything outside A-Z
// dropped. "Forlì-Cesena" and "FORLICESENA" resolve to the same key.
func NormalizeName(name string) string {
	var normalized strings.Builder
	normalized.Grow(len(name))
	for _, r := range strings.ToUpper(name) {
		if folded, ok := diacriticFold[r]; ok {
			r = folded
		}
		if r >= 'A' && r <= 'Z' {
			normalized.WriteRune(r)
		}
	}
	return normalized.String()
}

// diacriticFold maps the accented letters that occur in Italian and common
// foreign place names to their unaccented base.
var diacriticFold = map[rune]rune{
	'À': 'A', 'Á': 'A', 'Â': 'A', 'Ã': 'A', 'Ä': 'A', 'Å': 'A',
	'È': 'E', 'É': 'E', 'Ê': 'E', 'Ë': 'E',
	'Ì': 'I', 'Í': 'I', 'Î': 'I', 'Ï': 'I',
	'Ò': 'O', 'Ó': 'O', 'Ô': 'O', 'Õ': 'O', 'Ö': 'O',
	'Ù': 'U', 'Ú': 'U', 'Û': 'U', 'Ü': 'U',
	'Ç': 'C', 'Ñ': 'N', 'Ý': 'Y',
}
