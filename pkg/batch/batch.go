// Package batch sweeps files of identifiers through the VAT and fiscal code
// validators and reports per-line outcomes.
//
// Input files carry one identifier per line; blank lines and lines starting
// with # are skipped. Each line is classified by shape and checked with the
// matching validator.
package batch

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/coolbeans/fiscale/pkg/codicefiscale"
	"github.com/coolbeans/fiscale/pkg/partitaiva"
)

// Kind is the identifier class a line was recognized as.
type Kind string

const (
	KindVAT        Kind = "vat"
	KindFiscalCode Kind = "fiscal_code"
	KindUnknown    Kind = "unknown"
)

// Entry is the outcome for a single input line.
type Entry struct {
	Line  int    `json:"line"`
	Input string `json:"input"`
	Kind  Kind   `json:"kind"`
	Valid bool   `json:"valid"`
}

// Report aggregates the outcomes of one sweep.
type Report struct {
	Total        int     `json:"total"`
	Valid        int     `json:"valid"`
	Invalid      int     `json:"invalid"`
	Unrecognized int     `json:"unrecognized"`
	Entries      []Entry `json:"entries"`
}

// Classify decides which validator a candidate belongs to, by shape alone:
// 11 digits after normalization is a VAT number, 16 alphanumerics a fiscal
// code. Classification does not imply validity.
func Classify(candidate string) Kind {
	normalized := partitaiva.Normalize(candidate)
	if len(normalized) == partitaiva.FullLength && allDigits(normalized) {
		return KindVAT
	}
	if len(normalized) == codicefiscale.Length && allAlphanumeric(normalized) {
		return KindFiscalCode
	}
	return KindUnknown
}

// CheckFile sweeps a file of identifiers.
func CheckFile(path string) (*Report, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer file.Close()

	report := &Report{}
	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		report.add(lineNumber, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return report, nil
}

// Check sweeps a slice of identifiers, numbering entries from 1.
func Check(candidates []string) *Report {
	report := &Report{}
	for i, candidate := range candidates {
		report.add(i+1, candidate)
	}
	return report
}

func (report *Report) add(lineNumber int, candidate string) {
	entry := Entry{
		Line:  lineNumber,
		Input: candidate,
		Kind:  Classify(candidate),
	}

	switch entry.Kind {
	case KindVAT:
		entry.Valid = partitaiva.IsValid(candidate)
	case KindFiscalCode:
		entry.Valid = codicefiscale.IsValid(candidate)
	default:
		report.Unrecognized++
	}

	report.Total++
	if entry.Kind != KindUnknown {
		if entry.Valid {
			report.Valid++
		} else {
			report.Invalid++
		}
	}
	report.Entries = append(report.Entries, entry)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func allAlphanumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if (ch < '0' || ch > '9') && (ch < 'A' || ch > 'Z') {
			return false
		}
	}
	return true
}
