package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/coolbeans/fiscale/pkg/batch"
	"github.com/coolbeans/fiscale/pkg/codicefiscale"
	"github.com/coolbeans/fiscale/pkg/partitaiva"
	"github.com/coolbeans/fiscale/pkg/places"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "fiscale",
		Short: "Italian fiscal identifier toolkit",
		Long: `Fiscale validates, encodes, and decodes Italian identification
numbers: the Partita IVA (11-digit VAT number) and the Codice
Fiscale (16-character personal fiscal code).

Birthplaces are resolved through a built-in Belfiore code book;
additional YAML code books can be layered on with --places-dir.`,
		Version: version,
	}

	rootCmd.PersistentFlags().String("format", "text", "Output format: text or json")
	rootCmd.PersistentFlags().String("places-dir", "", "Directory of extra YAML place code books")

	rootCmd.AddCommand(vatCmd())
	rootCmd.AddCommand(cfCmd())
	rootCmd.AddCommand(placesCmd())
	rootCmd.AddCommand(checkCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildRegistry returns the seeded code book, with any extra directory of
// YAML code books layered on top.
func buildRegistry(cmd *cobra.Command) (*places.Registry, error) {
	registry := places.NewSeededRegistry()

	dir, _ := cmd.Flags().GetString("places-dir")
	if dir != "" {
		if err := registry.LoadDirectory(dir); err != nil {
			return nil, fmt.Errorf("loading place code books: %w", err)
		}
	}
	return registry, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func vatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vat",
		Short: "Validate, encode, and decode VAT numbers (Partita IVA)",
	}

	validateCmd := &cobra.Command{
		Use:   "validate [number]",
		Short: "Check a VAT number's shape and check digit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatStr, _ := cmd.Flags().GetString("format")
			strict, _ := cmd.Flags().GetBool("strict")

			valid := partitaiva.IsValid(args[0])

			if formatStr == "json" {
				if err := printJSON(map[string]any{"code": args[0], "valid": valid}); err != nil {
					return err
				}
			} else if valid {
				fmt.Printf("%s: valid\n", args[0])
			} else {
				fmt.Printf("%s: invalid\n", args[0])
			}

			if strict && !valid {
				os.Exit(1)
			}
			return nil
		},
	}
	validateCmd.Flags().Bool("strict", false, "Exit non-zero when the number is invalid")

	encodeCmd := &cobra.Command{
		Use:   "encode [base-number]",
		Short: "Append the check digit to a 10-digit base number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatStr, _ := cmd.Flags().GetString("format")

			encoded, err := partitaiva.Encode(args[0])
			if err != nil {
				return err
			}

			if formatStr == "json" {
				return printJSON(map[string]string{"base_number": args[0], "code": encoded})
			}
			fmt.Println(encoded)
			return nil
		},
	}

	decodeCmd := &cobra.Command{
		Use:   "decode [number]",
		Short: "Decompose a VAT number into base number and check digits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatStr, _ := cmd.Flags().GetString("format")

			decoded := partitaiva.Decode(args[0])

			if formatStr == "json" {
				return printJSON(decoded)
			}

			fmt.Printf("Input:            %s\n", decoded.RawInput)
			fmt.Printf("Well-formed:      %v\n", decoded.WellFormed)
			if decoded.WellFormed {
				fmt.Printf("Base number:      %s\n", decoded.BaseNumber)
				fmt.Printf("Check digit:      %s (computed %s)\n", decoded.SuppliedCheckDigit, decoded.ComputedCheckDigit)
			}
			fmt.Printf("Valid:            %v\n", decoded.Valid)
			return nil
		},
	}

	cmd.AddCommand(validateCmd)
	cmd.AddCommand(encodeCmd)
	cmd.AddCommand(decodeCmd)
	return cmd
}

func cfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cf",
		Short: "Validate, encode, and decode fiscal codes (Codice Fiscale)",
	}

	validateCmd := &cobra.Command{
		Use:   "validate [code]",
		Short: "Check a fiscal code's shape, date, and check character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatStr, _ := cmd.Flags().GetString("format")
			strict, _ := cmd.Flags().GetBool("strict")

			valid := codicefiscale.IsValid(args[0])
			omocode := valid && codicefiscale.IsOmocode(args[0])

			if formatStr == "json" {
				if err := printJSON(map[string]any{"code": args[0], "valid": valid, "omocode": omocode}); err != nil {
					return err
				}
			} else if valid && omocode {
				fmt.Printf("%s: valid (omocode)\n", args[0])
			} else if valid {
				fmt.Printf("%s: valid\n", args[0])
			} else {
				fmt.Printf("%s: invalid\n", args[0])
			}

			if strict && !valid {
				os.Exit(1)
			}
			return nil
		},
	}
	validateCmd.Flags().Bool("strict", false, "Exit non-zero when the code is invalid")

	encodeCmd := &cobra.Command{
		Use:   "encode",
		Short: "Build a fiscal code from personal data",
		Example: `  fiscale cf encode --lastname Rossi --firstname Mario \
      --gender M --birthdate 1980-01-01 --birthplace Roma`,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatStr, _ := cmd.Flags().GetString("format")
			lastName, _ := cmd.Flags().GetString("lastname")
			firstName, _ := cmd.Flags().GetString("firstname")
			gender, _ := cmd.Flags().GetString("gender")
			birthdateStr, _ := cmd.Flags().GetString("birthdate")
			birthplace, _ := cmd.Flags().GetString("birthplace")

			birthDate, err := parseBirthdate(birthdateStr)
			if err != nil {
				return err
			}

			registry, err := buildRegistry(cmd)
			if err != nil {
				return err
			}

			code, err := codicefiscale.NewCodec(registry).Encode(codicefiscale.Person{
				LastName:   lastName,
				FirstName:  firstName,
				Gender:     gender,
				BirthDate:  birthDate,
				Birthplace: birthplace,
			})
			if err != nil {
				return err
			}

			if formatStr == "json" {
				return printJSON(map[string]string{"code": code})
			}
			fmt.Println(code)
			return nil
		},
	}
	encodeCmd.Flags().String("lastname", "", "Last name")
	encodeCmd.Flags().String("firstname", "", "First name")
	encodeCmd.Flags().String("gender", "", "Gender: M or F")
	encodeCmd.Flags().String("birthdate", "", "Birth date (YYYY-MM-DD or DD/MM/YYYY)")
	encodeCmd.Flags().String("birthplace", "", "Birthplace name or Belfiore code")
	for _, required := range []string{"lastname", "firstname", "gender", "birthdate", "birthplace"} {
		_ = encodeCmd.MarkFlagRequired(required)
	}

	decodeCmd := &cobra.Command{
		Use:   "decode [code]",
		Short: "Extract gender, birth date, and birthplace from a fiscal code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatStr, _ := cmd.Flags().GetString("format")

			registry, err := buildRegistry(cmd)
			if err != nil {
				return err
			}

			decoded, err := codicefiscale.NewCodec(registry).Decode(args[0])
			if err != nil {
				return err
			}

			if formatStr == "json" {
				return printJSON(decoded)
			}

			fmt.Printf("Code:             %s\n", decoded.Code)
			fmt.Printf("Gender:           %s\n", decoded.Gender)
			fmt.Printf("Birth date:       %s\n", decoded.BirthDate.Format("2006-01-02"))
			if decoded.Birthplace != nil {
				if decoded.Birthplace.Foreign {
					fmt.Printf("Birthplace:       %s (%s, foreign)\n", decoded.Birthplace.Name, decoded.BirthplaceCode)
				} else {
					fmt.Printf("Birthplace:       %s (%s, %s)\n", decoded.Birthplace.Name, decoded.Birthplace.Province, decoded.BirthplaceCode)
				}
			} else {
				fmt.Printf("Birthplace:       %s (not in code book)\n", decoded.BirthplaceCode)
			}
			fmt.Printf("Omocode:          %v\n", decoded.Omocode)
			return nil
		},
	}

	variantsCmd := &cobra.Command{
		Use:   "variants [code]",
		Short: "List the 127 omocodia variants of a fiscal code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatStr, _ := cmd.Flags().GetString("format")

			variants, err := codicefiscale.Variants(args[0])
			if err != nil {
				return err
			}

			if formatStr == "json" {
				return printJSON(map[string]any{"code": args[0], "variants": variants})
			}
			for _, variant := range variants {
				fmt.Println(variant)
			}
			return nil
		},
	}

	cmd.AddCommand(validateCmd)
	cmd.AddCommand(encodeCmd)
	cmd.AddCommand(decodeCmd)
	cmd.AddCommand(variantsCmd)
	return cmd
}

func placesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "places",
		Short: "Inspect the Belfiore place code book",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the loaded code book",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatStr, _ := cmd.Flags().GetString("format")
			province, _ := cmd.Flags().GetString("province")

			registry, err := buildRegistry(cmd)
			if err != nil {
				return err
			}

			var list []*places.Place
			if province != "" {
				list = registry.ListByProvince(province)
			} else {
				list = registry.List()
			}

			if formatStr == "json" {
				return printJSON(list)
			}
			for _, place := range list {
				if place.Foreign {
					fmt.Printf("%s  %s (foreign)\n", place.Code, place.Name)
				} else {
					fmt.Printf("%s  %s (%s)\n", place.Code, place.Name, place.Province)
				}
			}
			fmt.Printf("%d places\n", len(list))
			return nil
		},
	}
	listCmd.Flags().String("province", "", "Only list places of this province")

	lookupCmd := &cobra.Command{
		Use:   "lookup [name-or-code]",
		Short: "Resolve a place by name or Belfiore code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatStr, _ := cmd.Flags().GetString("format")

			registry, err := buildRegistry(cmd)
			if err != nil {
				return err
			}

			place, ok := registry.Get(args[0])
			if !ok {
				place, ok = registry.Lookup(args[0])
			}
			if !ok {
				return fmt.Errorf("place %q not found in code book", args[0])
			}

			if formatStr == "json" {
				return printJSON(place)
			}
			if place.Foreign {
				fmt.Printf("%s  %s (foreign)\n", place.Code, place.Name)
			} else {
				fmt.Printf("%s  %s (%s)\n", place.Code, place.Name, place.Province)
			}
			return nil
		},
	}

	cmd.AddCommand(listCmd)
	cmd.AddCommand(lookupCmd)
	return cmd
}

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file]",
		Short: "Batch-validate a file of identifiers",
		Long: `Batch-validate a file carrying one identifier per line. Lines are
classified by shape: 11 digits as a VAT number, 16 alphanumerics as
a fiscal code. Blank lines and # comments are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatStr, _ := cmd.Flags().GetString("format")
			strict, _ := cmd.Flags().GetBool("strict")

			report, err := batch.CheckFile(args[0])
			if err != nil {
				return err
			}

			if formatStr == "json" {
				if err := printJSON(report); err != nil {
					return err
				}
			} else {
				for _, entry := range report.Entries {
					switch {
					case entry.Kind == batch.KindUnknown:
						fmt.Printf("line %d: %s: unrecognized\n", entry.Line, entry.Input)
					case entry.Valid:
						fmt.Printf("line %d: %s: valid %s\n", entry.Line, entry.Input, kindLabel(entry.Kind))
					default:
						fmt.Printf("line %d: %s: invalid %s\n", entry.Line, entry.Input, kindLabel(entry.Kind))
					}
				}
				fmt.Printf("\n%d checked: %d valid, %d invalid, %d unrecognized\n",
					report.Total, report.Valid, report.Invalid, report.Unrecognized)
			}

			if strict && (report.Invalid > 0 || report.Unrecognized > 0) {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().Bool("strict", false, "Exit non-zero when any line fails")
	return cmd
}

func kindLabel(kind batch.Kind) string {
	if kind == batch.KindVAT {
		return "VAT number"
	}
	return "fiscal code"
}

// parseBirthdate accepts ISO and Italian day-first dates.
func parseBirthdate(value string) (time.Time, error) {
	layouts := []string{"2006-01-02", "02/01/2006", "2/1/2006"}
	trimmed := strings.TrimSpace(value)
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized birth date %q (want YYYY-MM-DD or DD/MM/YYYY)", value)
}
