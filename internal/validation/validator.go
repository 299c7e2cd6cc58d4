// =============================================================================
// Yard Ledger - Check-Digit Validators
// =============================================================================
//
// Pure validation functions gating data integrity before anything reaches the
// ledger:
//
//   - Container numbers use the ISO 6346 owner-code check digit: letters map
//     to numeric values that skip 11 and its multiples, each of the first ten
//     characters is weighted by 2^position, and the weighted sum mod 11 (with
//     10 collapsing to 0) must equal the final digit.
//
//   - Driver IDs (CPF) use the Brazilian two-stage weighted check: stage one
//     over the first nine digits with weights 10..2, stage two over the first
//     ten digits with weights 11..2, both times multiplied by 10, mod 11,
//     with 10 collapsing to 0.
//
// Both validators are total functions over strings: any input yields a bool,
// never a panic, and there is no I/O.
//
// =============================================================================

package validation

import (
	"regexp"
	"strings"
)

// containerPattern is the normalized shape of a container number: four owner
// letters followed by six serial digits and the check digit.
var containerPattern = regexp.MustCompile(`^[A-Z]{4}\d{7}$`)

// letterValues maps letters to their ISO 6346 numeric values. The sequence
// skips 11, 22 and 33, which is why the mapping is not contiguous.
var letterValues = map[byte]int{
	'A': 10, 'B': 12, 'C': 13, 'D': 14, 'E': 15, 'F': 16, 'G': 17, 'H': 18,
	'I': 19, 'J': 20, 'K': 21, 'L': 23, 'M': 24, 'N': 25, 'O': 26, 'P': 27,
	'Q': 28, 'R': 29, 'S': 30, 'T': 31, 'U': 32, 'V': 34, 'W': 35, 'X': 36,
	'Y': 37, 'Z': 38,
}

// NormalizeContainerNumber strips every non-alphanumeric character and
// uppercases the rest. This is the canonical form stored in the ledger.
func NormalizeContainerNumber(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateContainerNumber reports whether raw carries a valid ISO 6346 check
// digit. It fails closed: anything that does not normalize to four letters
// plus seven digits is invalid.
func ValidateContainerNumber(raw string) bool {
	num := NormalizeContainerNumber(raw)
	if !containerPattern.MatchString(num) {
		return false
	}

	sum := 0
	weight := 1
	for i := 0; i < 10; i++ {
		c := num[i]
		v, ok := letterValues[c]
		if !ok {
			v = int(c - '0')
		}
		sum += v * weight
		weight *= 2
	}

	check := sum % 11
	if check == 10 {
		check = 0
	}
	return check == int(num[10]-'0')
}

// DigitsOnly returns only the decimal digits of raw, in order.
func DigitsOnly(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidateNationalID reports whether raw is a valid CPF. Input may carry
// display punctuation; only digits are considered. Eleven identical digits
// form a syntactically correct but rejected degenerate case.
func ValidateNationalID(raw string) bool {
	id := DigitsOnly(raw)
	if len(id) != 11 {
		return false
	}
	if strings.Count(id, id[:1]) == 11 {
		return false
	}

	// Stage 1: weights 10..2 over the first nine digits.
	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(id[i]-'0') * (10 - i)
	}
	check := (sum * 10) % 11
	if check == 10 {
		check = 0
	}
	if check != int(id[9]-'0') {
		return false
	}

	// Stage 2: weights 11..2 over the first ten digits.
	sum = 0
	for i := 0; i < 10; i++ {
		sum += int(id[i]-'0') * (11 - i)
	}
	check = (sum * 10) % 11
	if check == 10 {
		check = 0
	}
	return check == int(id[10]-'0')
}

// FormatNationalID renders an 11-digit CPF in its display form
// (###.###.###-##). Anything else is returned as its bare digits.
func FormatNationalID(raw string) string {
	id := DigitsOnly(raw)
	if len(id) != 11 {
		return id
	}
	return id[:3] + "." + id[3:6] + "." + id[6:9] + "-" + id[9:]
}
