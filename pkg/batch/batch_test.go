package batch

import (
	"os"
	"path/filepath"
	"testing"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name      string
		candidate string
		expected  Kind
	}{
		{name: "vat", candidate: "01234567897", expected: KindVAT},
		{name: "vat_with_spaces", candidate: "01 234 567 897", expected: KindVAT},
		{name: "vat_wrong_checksum_still_vat_shaped", candidate: "01234567890", expected: KindVAT},
		{name: "fiscal_code", candidate: "RSSMRA80A01H501U", expected: KindFiscalCode},
		{name: "fiscal_code_lowercase", candidate: "rssmra80a01h501u", expected: KindFiscalCode},
		{name: "ten_digits", candidate: "0123456789", expected: KindUnknown},
		{name: "empty", candidate: "", expected: KindUnknown},
		{name: "prose", candidate: "not an identifier", expected: KindUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.candidate); got != tc.expected {
				t.Errorf("Classify(%q): got %s, want %s", tc.candidate, got, tc.expected)
			}
		})
	}
}

func TestCheck(t *testing.T) {
	report := Check([]string{
		"01234567897",      // valid VAT
		"01234567890",      // VAT, checksum mismatch
		"RSSMRA80A01H501U", // valid fiscal code
		"RSSMRA80A01H501Z", // fiscal code, wrong check char
		"garbage",          // unrecognized
	})

	if report.Total != 5 {
		t.Errorf("Total: got %d, want 5", report.Total)
	}
	if report.Valid != 2 {
		t.Errorf("Valid: got %d, want 2", report.Valid)
	}
	if report.Invalid != 2 {
		t.Errorf("Invalid: got %d, want 2", report.Invalid)
	}
	if report.Unrecognized != 1 {
		t.Errorf("Unrecognized: got %d, want 1", report.Unrecognized)
	}
	if len(report.Entries) != 5 {
		t.Fatalf("Entries: got %d, want 5", len(report.Entries))
	}

	if !report.Entries[0].Valid || report.Entries[0].Kind != KindVAT {
		t.Errorf("entry 0: %+v", report.Entries[0])
	}
	if report.Entries[1].Valid {
		t.Errorf("entry 1 should be invalid: %+v", report.Entries[1])
	}
	if !report.Entries[2].Valid || report.Entries[2].Kind != KindFiscalCode {
		t.Errorf("entry 2: %+v", report.Entries[2])
	}
	if report.Entries[4].Kind != KindUnknown || report.Entries[4].Valid {
		t.Errorf("entry 4: %+v", report.Entries[4])
	}
}

func TestCheckFile(t *testing.T) {
	content := `# sample identifiers
01234567897

RSSMRA80A01H501U
not-a-code
`
	path := filepath.Join(t.TempDir(), "input.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	report, err := CheckFile(path)
	if err != nil {
		t.Fatalf("CheckFile failed: %v", err)
	}

	// Comment and blank lines are skipped, not counted.
	if report.Total != 3 {
		t.Errorf("Total: got %d, want 3", report.Total)
	}
	if report.Valid != 2 {
		t.Errorf("Valid: got %d, want 2", report.Valid)
	}
	if report.Unrecognized != 1 {
		t.Errorf("Unrecognized: got %d, want 1", report.Unrecognized)
	}

	// Line numbers refer to the file, skipped lines included.
	if report.Entries[0].Line != 2 {
		t.Errorf("first entry line: got %d, want 2", report.Entries[0].Line)
	}
	if report.Entries[1].Line != 4 {
		t.Errorf("second entry line: got %d, want 4", report.Entries[1].Line)
	}
}

func TestCheckFile_Missing(t *testing.T) {
	if _, err := CheckFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("CheckFile should fail on a missing file")
	}
}
